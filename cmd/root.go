// Package cmd provides the root command and CLI setup for symdiff.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"symdiff.dev/pkg/symdiff/internal/adapter"
	"symdiff.dev/pkg/symdiff/internal/controller"
	"symdiff.dev/pkg/symdiff/internal/domain"
	m "symdiff.dev/pkg/symdiff/internal/model"
	"symdiff.dev/pkg/symdiff/internal/provider"
)

var fsAdapter adapter.SourceFS
var reportStore adapter.ReportStore
var workflow domain.Workflow
var ui controller.UI

// outputFlag is a root-level flag shared by commands that write reports.
var outputFlag string

// verboseFlag raises the log level to debug when set.
var verboseFlag bool

// logFileFlag overrides the log file path.
var logFileFlag string

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewSimpleUI(rootCmd)
	fsAdapter = adapter.NewLocalSourceFS()
	reportStore = adapter.NewReportStore()
	workflow = domain.NewWorkflow(
		fsAdapter,
		reportStore,
		provider.NewGoProvider(),
		provider.NewTextProvider(),
	)
}

const rootLongDescription = `Symdiff compares two revisions of source code structurally instead of
line by line. It builds a tree of symbol-level changes, classifies the
impact of each change (breaking public API, breaking internal API,
non-breaking, formatting-only), and can reconcile comparisons made under
multiple build variants into a single report.

Inputs may be two files or two directory trees.`

const diffLongDescription = `Compare OLD and NEW and print a structural change report.

When --variants is given, one comparison pass runs per variant (a build
tag such as net8 or linux) and the per-variant results are reconciled:
changes present under every variant are reported once, changes present
under only some variants are annotated with the variants they apply to.`

const mergeLongDescription = `Reconcile previously saved per-variant reports into one report.

Each report must identify the single variant it was produced under;
use --labels to supply or override the variant label per report, in
the order the reports are given.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "symdiff",
		Short: "Structural source diff tool",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(logFileFlag, verboseFlag)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

// newRootCmd builds a fresh root command with its flags configured.
// Tests use it to get isolated flag state.
func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&outputFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"write the report to this file instead of stdout",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", viper.GetBool(logVerboseKey), "enable debug logging")
	bindFlagToConfig(cmd.PersistentFlags().Lookup("verbose"), logVerboseKey)

	cmd.PersistentFlags().StringVar(&logFileFlag, "log-file", viper.GetString(logFilenameKey), "path of the log file")
	bindFlagToConfig(cmd.PersistentFlags().Lookup("log-file"), logFilenameKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
