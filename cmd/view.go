package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"symdiff.dev/pkg/symdiff/internal/controller"
	m "symdiff.dev/pkg/symdiff/internal/model"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view REPORT",
		Short: "View a previously saved report",
		Long:  "View a previously saved report. On a terminal the report opens in a scrollable viewer.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := reportStore.LoadResult(m.Path(args[0]))
			if err != nil {
				return err
			}

			if controller.IsTTY(os.Stdout) {
				return controller.NewTUI(os.Stdout).DisplayResult(cmd.Context(), result)
			}

			return ui.DisplayResult(cmd.Context(), result)
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
