package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/bidsapp/internal/app"
)

func (c *CLI) newCmdlineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cmdline [app]",
		Short: "Print the command an app runs for the given input values",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, _ := cmd.Flags().GetStringArray("set")
			asArgs, _ := cmd.Flags().GetBool("args")

			opts := app.CommandLineOptions{Set: set}
			if files := c.files(); len(files) > 0 {
				opts.File = files[0]
			}
			if len(args) == 1 {
				opts.App = args[0]
			}

			res, err := c.app.CommandLine(cmd.Context(), opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !asArgs {
				_, err = fmt.Fprintln(out, res.Line)
				return err
			}
			for _, arg := range res.Args {
				if _, err := fmt.Fprintln(out, arg); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringArrayP("set", "s", nil, "Input value as name=value (repeatable)")
	cmd.Flags().Bool("args", false, "Print the argument vector, one argument per line")
	return cmd
}
