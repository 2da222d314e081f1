package cmd

import (
	"github.com/spf13/cobra"

	"symdiff.dev/pkg/symdiff/internal/domain"
)

var mergeLabelsFlag []string

// mergeCmd represents the merge command.
var mergeCmd = newMergeCmd()

func newMergeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge REPORT [REPORT...]",
		Short: "Reconcile per-variant reports into one",
		Long:  mergeLongDescription,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := workflow.MergeReports(cmd.Context(), domain.MergeReportsArgs{
				Reports: parsePaths(args),
				Labels:  mergeLabelsFlag,
			})
			if err != nil {
				return err
			}

			return emitResult(cmd, result)
		},
	}

	cmd.Flags().StringSliceVarP(&mergeLabelsFlag, labelsFlagName, "l", nil, "variant label per report, in argument order")

	return cmd
}

func init() {
	rootCmd.AddCommand(mergeCmd)
}
