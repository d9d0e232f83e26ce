package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/bidsapp/internal/ui/report"
)

func (c *CLI) newSchemaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the fields every BIDS App definition starts from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, _ := cmd.Flags().GetString("output")
			if err := checkFormat(format); err != nil {
				return err
			}
			schema := c.app.Schema()
			if format == "yaml" {
				return report.YAML(cmd.OutOrStdout(), schema)
			}
			return report.SchemaText(cmd.OutOrStdout(), schema)
		},
	}
	cmd.Flags().StringP("output", "o", "text", "Output format: text or yaml")
	return cmd
}
