package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bedrock-oss/wikigen/internal/version"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the wikigen version",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := options()
			if err != nil {
				return err
			}

			if opts.JSONOutput {
				return respond(cmd, opts, true, "version", map[string]interface{}{
					"version": version.Current,
				})
			}

			fmt.Fprintln(cmd.OutOrStdout(), version.Current)
			return nil
		},
	}
}
