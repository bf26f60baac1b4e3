package cli

import (
	"fmt"
	"strings"

	"timetrack-cli/internal/docs"

	"github.com/spf13/cobra"
)

func newDocsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "docs [topic]",
		Short: "Show the user guide (topics: " + strings.Join(docs.Topics(), ", ") + ")",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return writeOut(cmd, app, pageViews(docs.Pages()))
			}
			md, ok := docs.Get(args[0])
			if !ok {
				return writeErr(cmd, fmt.Errorf("unknown docs topic: %q (have %s)", args[0], strings.Join(docs.Topics(), ", ")))
			}
			_, err := fmt.Fprint(cmd.OutOrStdout(), md)
			return err
		},
	}
}
