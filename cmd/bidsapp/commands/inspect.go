package commands

import (
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/bidsapp/internal/app"
	"go.trai.ch/bidsapp/internal/core/domain"
	"go.trai.ch/bidsapp/internal/ui/report"
)

func (c *CLI) newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [apps...]",
		Short: "Describe the declared apps and compare them with their recorded digests",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("output")
			record, _ := cmd.Flags().GetBool("record")
			watch, _ := cmd.Flags().GetBool("watch")
			if err := checkFormat(format); err != nil {
				return err
			}

			opts := app.InspectOptions{
				Files:  c.files(),
				Apps:   args,
				Record: record,
			}
			out := cmd.OutOrStdout()

			if watch {
				return c.app.Watch(cmd.Context(), opts, func(reports []domain.AppReport, err error) {
					if err != nil {
						c.logger.Error(err)
						return
					}
					if err := render(out, format, reports); err != nil {
						c.logger.Error(err)
					}
				})
			}

			reports, err := c.app.Inspect(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return render(out, format, reports)
		},
	}
	cmd.Flags().StringP("output", "o", "text", "Output format: text or yaml")
	cmd.Flags().Bool("record", false, "Record the current digests")
	cmd.Flags().BoolP("watch", "w", false, "Inspect again whenever a declaration file changes")
	return cmd
}

func render(w io.Writer, format string, reports []domain.AppReport) error {
	if format == "yaml" {
		return report.YAML(w, reports)
	}
	return report.Text(w, reports)
}
