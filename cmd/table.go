package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/bedrock-oss/wikigen/internal/table"
	"github.com/bedrock-oss/wikigen/internal/util"
)

func newTableCommand() *cobra.Command {
	var sortColumn int
	var columns []string

	cmd := &cobra.Command{
		Use:   "table --column HEADER,cell,... [--column ...]",
		Short: "Render columns as a Markdown pipe table",
		Long: "Each --column is a comma separated list: the header followed by its cells. " +
			"Rows are sorted by the --sort column; -1 keeps input order.",
		Example: "  wikigen table --sort 0 --column Name,b,a --column Val,2,1",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := options()
			if err != nil {
				return err
			}
			cols := make([][]string, 0, len(columns))
			for _, c := range columns {
				cols = append(cols, strings.Split(c, ","))
			}
			lines, err := table.Render(sortColumn, cols...)
			if err != nil {
				return WrapCLIError(ExitCodeValidation, err)
			}
			if opts.JSONOutput {
				return respond(cmd, opts, true, "table rendered", map[string]interface{}{
					"lines": lines,
				})
			}
			util.PrintLines(cmd.OutOrStdout(), lines...)
			return nil
		},
	}

	cmd.Flags().IntVar(&sortColumn, "sort", table.NoSort, "Index of the column to sort rows by, -1 for no sorting")
	cmd.Flags().StringArrayVar(&columns, "column", nil, "Column as HEADER,cell,cell (repeatable)")
	return cmd
}
