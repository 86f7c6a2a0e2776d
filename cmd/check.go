package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bedrock-oss/wikigen/internal/config"
	"github.com/bedrock-oss/wikigen/internal/lint"
	"github.com/bedrock-oss/wikigen/internal/splice"
	"github.com/bedrock-oss/wikigen/internal/util"
)

func newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check [page...]",
		Short: "Verify the marker regions of wiki pages",
		Long: "Check that start and end markers pair up and that generated tables parse as GFM tables. " +
			"Without arguments every page receiving spliced fragments is checked.",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := options()
			if err != nil {
				return err
			}
			jobs, err := loadJobs(opts)
			if err != nil {
				return err
			}
			markers := splice.Markers{Start: jobs.Markers.Start, End: jobs.Markers.End}

			pages := args
			if len(pages) == 0 {
				pages = splicedPages(jobs)
			}

			reports := make([]*lint.Report, 0, len(pages))
			var errs []error
			for _, rel := range pages {
				path := opts.PagePath(rel)
				// #nosec G304 -- page paths come from arguments or the wiki configuration
				data, err := os.ReadFile(path)
				if err != nil {
					errs = append(errs, fmt.Errorf("failed to read %s: %w", opts.RelPath(path), err))
					continue
				}
				report, err := lint.Check(opts.RelPath(path), data, markers)
				if err != nil {
					errs = append(errs, err)
					continue
				}
				if report.HasErrors() {
					errs = append(errs, fmt.Errorf("%s: %w", report.Path, lint.ErrInvalidRegion))
				}
				reports = append(reports, report)
			}
			runErr := errors.Join(errs...)

			if opts.JSONOutput {
				if err := respond(cmd, opts, runErr == nil, "check complete", map[string]interface{}{
					"pages":  reports,
					"errors": util.ErrorStrings(errs...),
				}); err != nil {
					return err
				}
				return classify(runErr)
			}

			out := cmd.OutOrStdout()
			for _, r := range reports {
				fmt.Fprintf(out, "%s: %d regions, %d tables\n", r.Path, r.Regions, r.Tables)
				for _, f := range r.Findings {
					fmt.Fprintf(out, "  %s: region %d (line %d): %s\n", f.Severity, f.Region, f.Line, f.Message)
				}
			}
			for _, e := range errs {
				fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", e)
			}
			return classify(runErr)
		},
	}
}

// splicedPages lists the configured pages that carry marker regions.
func splicedPages(jobs *config.Jobs) []string {
	seen := map[string]bool{}
	var out []string
	for _, p := range []string{
		jobs.Pages.BlockSounds,
		jobs.Pages.NBTCommands,
		jobs.Pages.CreativeCategories,
		jobs.Pages.FogIDs,
	} {
		if p != "" && !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}
