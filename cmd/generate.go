package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bedrock-oss/wikigen/internal/content"
)

func newGenerateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "generate [section...]",
		Short: "Extract pack data and update the wiki pages",
		Long: "Regenerate every configured section, or only the named ones. Known sections: " +
			sectionList() + ". A failing page is reported and the remaining pages are still processed.",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := options()
			if err != nil {
				return err
			}
			sections, err := content.ParseSections(args)
			if err != nil {
				return WrapCLIError(ExitCodeValidation, err)
			}
			jobs, err := loadJobs(opts)
			if err != nil {
				return err
			}
			unlock, err := lockWiki(opts, "generate")
			if err != nil {
				return err
			}
			defer unlock()

			gen := content.NewGenerator(opts, jobs)
			outcomes, runErr := gen.Run(cmd.Context(), sections)

			if opts.JSONOutput {
				items := make([]map[string]interface{}, 0, len(outcomes))
				for _, o := range outcomes {
					item := map[string]interface{}{
						"section": o.Section,
						"path":    opts.RelPath(o.Path),
						"changed": o.Changed,
					}
					if o.Report != nil {
						item["changed_regions"] = o.Report.Changed
						item["written"] = o.Report.Written
						if o.Report.Diff != "" {
							item["diff"] = o.Report.Diff
						}
					}
					if o.Err != nil {
						item["error"] = o.Err.Error()
					}
					items = append(items, item)
				}
				if err := respond(cmd, opts, runErr == nil, "generation complete", map[string]interface{}{
					"dry_run":  opts.DryRun,
					"sections": items,
				}); err != nil {
					return err
				}
				return classify(runErr)
			}

			out := cmd.OutOrStdout()
			for _, o := range outcomes {
				fmt.Fprintf(out, "%-20s %-9s %s\n", o.Section, outcomeStatus(o, opts.DryRun), opts.RelPath(o.Path))
			}
			printDiffs(cmd, outcomes)
			if runErr != nil {
				for _, e := range flatten(runErr) {
					fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", e)
				}
				return classify(runErr)
			}
			return nil
		},
	}
}

// printDiffs prints each pending page diff once, even when several
// sections share the page.
func printDiffs(cmd *cobra.Command, outcomes []content.Outcome) {
	seen := map[string]bool{}
	for _, o := range outcomes {
		if o.Report == nil || o.Report.Diff == "" || seen[o.Path] {
			continue
		}
		seen[o.Path] = true
		fmt.Fprint(cmd.OutOrStdout(), o.Report.Diff)
	}
}

func outcomeStatus(o content.Outcome, dry bool) string {
	switch {
	case o.Err != nil:
		return "failed"
	case o.Changed && dry:
		return "would-update"
	case o.Changed:
		return "updated"
	}
	return "unchanged"
}

func sectionList() string {
	names := make([]string, 0, len(content.Sections))
	for _, s := range content.Sections {
		names = append(names, string(s))
	}
	return strings.Join(names, ", ")
}

// flatten unpacks joined errors so each failure is printed on its own line.
func flatten(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}

