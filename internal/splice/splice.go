package splice

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/bedrock-oss/wikigen/internal/config"
	"github.com/bedrock-oss/wikigen/internal/util"
)

// Report summarises the outcome of splicing one document.
type Report struct {
	Path    string `json:"path"`
	Regions int    `json:"regions"`
	// Changed lists the 0-based indices of regions whose content was replaced by different text.
	Changed []int `json:"changed_regions"`
	Written bool  `json:"written"`
	// Diff holds the pending change as a unified diff in dry-run mode.
	Diff string `json:"diff,omitempty"`
}

// HasChanges reports whether any region received new content.
func (r *Report) HasChanges() bool {
	return len(r.Changed) > 0
}

// Apply replaces the content of every region of data with the fragment at
// the same position and returns the new document. Nothing outside the
// regions changes, and the marker lines are kept as they are.
func Apply(path string, data []byte, m Markers, fragments []Fragment) ([]byte, *Report, error) {
	layout, err := Inspect(path, data, m)
	if err != nil {
		return nil, nil, err
	}
	return layout.Fill(fragments)
}

// Fill builds the spliced document from the layout and the fragments.
func (l *Layout) Fill(fragments []Fragment) ([]byte, *Report, error) {
	if len(fragments) != len(l.Regions) {
		return nil, nil, &ArityMismatchError{Path: l.Path, Regions: len(l.Regions), Fragments: len(fragments)}
	}

	rendered := make([][]string, len(fragments))
	for i, f := range fragments {
		rendered[i] = f.render(l.newline)
		if err := l.checkMarkers(i, rendered[i]); err != nil {
			return nil, nil, err
		}
	}

	report := &Report{Path: l.Path, Regions: len(l.Regions), Changed: []int{}}
	var sb strings.Builder
	next := 0
	for i, region := range l.Regions {
		// StartLine is 1-based, so it is also the index of the first content line.
		for _, line := range l.lines[next:region.StartLine] {
			sb.WriteString(line)
		}
		old := l.lines[region.StartLine : region.EndLine-1]
		if !sameLines(old, rendered[i]) {
			report.Changed = append(report.Changed, i)
		}
		for _, line := range rendered[i] {
			sb.WriteString(line)
		}
		next = region.EndLine - 1
	}
	for _, line := range l.lines[next:] {
		sb.WriteString(line)
	}
	return []byte(sb.String()), report, nil
}

// checkMarkers rejects fragment lines that a later scan would take for
// markers, since writing them would unbalance the document.
func (l *Layout) checkMarkers(region int, rendered []string) error {
	start := strings.TrimSpace(l.markers.Start)
	end := strings.TrimSpace(l.markers.End)
	n := 0
	for _, block := range rendered {
		for _, line := range strings.Split(strings.TrimSuffix(block, l.newline), "\n") {
			n++
			if t := strings.TrimSpace(line); t == start || t == end {
				return &MarkerInFragmentError{Path: l.Path, Region: region, Line: n, Marker: t}
			}
		}
	}
	return nil
}

func sameLines(a, b []string) bool {
	return strings.Join(a, "") == strings.Join(b, "")
}

// Splicer rewrites wiki pages on disk.
type Splicer struct {
	opts    *config.Options
	markers Markers
	log     *logrus.Entry
}

// New constructs a splicer using the given markers.
func New(opts *config.Options, m Markers) *Splicer {
	return &Splicer{
		opts:    opts,
		markers: m,
		log:     opts.Logger().WithField("component", "splice"),
	}
}

// Markers returns the sentinels used by the splicer.
func (s *Splicer) Markers() Markers {
	return s.markers
}

// Splice replaces the regions of the document at path with fragments, in
// order. The document is left untouched when validation fails.
func (s *Splicer) Splice(path string, fragments ...Fragment) (*Report, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	// #nosec G304 -- page paths come from the wiki configuration
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	out, report, err := Apply(path, data, s.markers, fragments)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"action": "splice",
			"path":   path,
		}).WithError(err).Warn("Document rejected")
		return nil, err
	}

	if string(out) == string(data) {
		s.log.WithFields(logrus.Fields{
			"action":  "splice",
			"path":    path,
			"regions": report.Regions,
		}).Info("Document already up to date")
		return report, nil
	}

	if s.opts.DryRun {
		diff, err := UnifiedDiff(s.opts.RelPath(path), data, out)
		if err != nil {
			return nil, fmt.Errorf("failed to diff %s: %w", path, err)
		}
		report.Diff = diff
		s.log.WithFields(logrus.Fields{
			"action":  "splice",
			"path":    path,
			"changed": report.Changed,
			"dryRun":  true,
		}).Info("Skipping write in dry-run mode")
		return report, nil
	}

	if err := util.WriteFileAtomic(path, out, info.Mode().Perm()); err != nil {
		return nil, err
	}
	report.Written = true
	s.log.WithFields(logrus.Fields{
		"action":  "splice",
		"path":    path,
		"regions": report.Regions,
		"changed": report.Changed,
	}).Info("Document updated")
	return report, nil
}
