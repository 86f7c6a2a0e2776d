package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bedrock-oss/wikigen/internal/splice"
)

func newSpliceCommand() *cobra.Command {
	var fragmentsPath string

	cmd := &cobra.Command{
		Use:   "splice <page>",
		Short: "Replace the marker regions of a page with explicit fragments",
		Long: "Read a YAML list of fragments ({text: ...} or {lines: [...]}) and write them into the " +
			"regions of the page, first fragment into the first region. Use '-' to read fragments from stdin.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := options()
			if err != nil {
				return err
			}
			if fragmentsPath == "" {
				return NewCLIError(ExitCodeValidation, "--fragments is required")
			}

			var data []byte
			if fragmentsPath == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				// #nosec G304 -- fragment file provided via command flag
				data, err = os.ReadFile(fragmentsPath)
			}
			if err != nil {
				return classify(fmt.Errorf("failed to read fragments: %w", err))
			}
			fragments, err := splice.DecodeFragments(data)
			if err != nil {
				return WrapCLIError(ExitCodeValidation, err)
			}

			jobs, err := loadJobs(opts)
			if err != nil {
				return err
			}
			markers := splice.Markers{Start: jobs.Markers.Start, End: jobs.Markers.End}
			if err := markers.Validate(); err != nil {
				return WrapCLIError(ExitCodeSchema, err)
			}

			unlock, err := lockWiki(opts, "splice")
			if err != nil {
				return err
			}
			defer unlock()

			path := opts.PagePath(args[0])
			report, err := splice.New(opts, markers).Splice(path, fragments...)
			if err != nil {
				return classify(err)
			}

			message := fmt.Sprintf("%s: %s (%d regions)", opts.RelPath(path), spliceStatus(report, opts.DryRun), report.Regions)
			result := map[string]interface{}{
				"path":            opts.RelPath(path),
				"regions":         report.Regions,
				"changed_regions": report.Changed,
				"written":         report.Written,
				"dry_run":         opts.DryRun,
			}
			if report.Diff != "" {
				result["diff"] = report.Diff
			}
			if err := respond(cmd, opts, true, message, result); err != nil {
				return err
			}
			if !opts.JSONOutput && report.Diff != "" {
				fmt.Fprint(cmd.OutOrStdout(), report.Diff)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&fragmentsPath, "fragments", "f", "", "YAML file listing the fragments, '-' for stdin")
	return cmd
}

func spliceStatus(r *splice.Report, dry bool) string {
	switch {
	case r.Written:
		return "updated"
	case r.HasChanges() && dry:
		return "would update"
	}
	return "already up to date"
}
