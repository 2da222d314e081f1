package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"symdiff.dev/pkg/symdiff/internal/domain"
	m "symdiff.dev/pkg/symdiff/internal/model"
)

// errChangesDetected signals a non-zero exit without an error message,
// mirroring diff(1) and git-diff exit semantics.
var errChangesDetected = errors.New("changes detected")

var diffVariantsFlag []string
var diffParallelFlag int
var diffFormatFlag string
var diffExitCodeFlag bool

// diffCmd represents the diff command.
var diffCmd = newDiffCmd()

func newDiffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff OLD NEW",
		Short: "Compare two files or directory trees",
		Long:  diffLongDescription,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := parsePaths(args)

			result, err := workflow.Compare(cmd.Context(), domain.CompareArgs{
				OldPath:  paths[0],
				NewPath:  paths[1],
				Variants: viper.GetStringSlice(variantsConfigKey),
				Threads:  viper.GetInt(parallelConfigKey),
			})
			if err != nil {
				return err
			}

			if err := emitResult(cmd, result); err != nil {
				return err
			}

			if diffExitCodeFlag && result.Stats.HasChanges() {
				cmd.SilenceErrors = true
				cmd.SilenceUsage = true

				return errChangesDetected
			}

			return nil
		},
	}

	configureDiffFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(diffCmd)
}

func configureDiffFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&diffVariantsFlag, variantsFlagName, viper.GetStringSlice(variantsConfigKey), "build variants to compare under (can be repeated or comma-separated)")
	bindFlagToConfig(cmd.Flags().Lookup(variantsFlagName), variantsConfigKey)

	cmd.Flags().IntVarP(&diffParallelFlag, parallelFlagName, "p", viper.GetInt(parallelConfigKey), "number of variant passes to run in parallel")
	bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), parallelConfigKey)

	cmd.Flags().StringVarP(&diffFormatFlag, formatFlagName, "f", viper.GetString(formatConfigKey), "report format: table, yaml or json")
	bindFlagToConfig(cmd.Flags().Lookup(formatFlagName), formatConfigKey)

	cmd.Flags().BoolVar(&diffExitCodeFlag, exitCodeFlagName, false, "exit with status 1 when changes are found")
}

// emitResult renders a result in the configured format and, when --output
// is set, also saves it as a YAML report for later merge/view.
func emitResult(cmd *cobra.Command, result m.DiffResult) error {
	if output := viper.GetString(outputFlagName); output != "" {
		if err := reportStore.SaveResult(m.Path(output), result); err != nil {
			return err
		}
	}

	switch format := viper.GetString(formatConfigKey); format {
	case "yaml":
		data, err := yaml.Marshal(result)
		if err != nil {
			return fmt.Errorf("encode report: %w", err)
		}

		cmd.Print(string(data))

		return nil
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("encode report: %w", err)
		}

		cmd.Println(string(data))

		return nil
	case "", "table":
		return ui.DisplayResult(cmd.Context(), result)
	default:
		return fmt.Errorf("unknown format %q (expected table, yaml or json)", format)
	}
}
