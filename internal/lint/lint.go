// Package lint checks the marker structure of wiki pages and the Markdown
// tables generated into their regions.
package lint

import (
	"errors"
	"fmt"
	"strings"

	"rsc.io/markdown"

	"github.com/bedrock-oss/wikigen/internal/splice"
)

// ErrInvalidRegion marks a page with at least one error finding.
var ErrInvalidRegion = errors.New("invalid region content")

// Severity grades a finding.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Finding is a problem spotted in one region.
type Finding struct {
	Region   int      `json:"region"`
	Line     int      `json:"line"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Report describes one checked page.
type Report struct {
	Path     string    `json:"path"`
	Regions  int       `json:"regions"`
	Tables   int       `json:"tables"`
	Findings []Finding `json:"findings"`
}

// HasErrors reports whether any finding is an error.
func (r *Report) HasErrors() bool {
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Check inspects the regions of a page. Marker problems are returned as the
// splice error; region content problems are reported as findings.
func Check(path string, data []byte, m splice.Markers) (*Report, error) {
	layout, err := splice.Inspect(path, data, m)
	if err != nil {
		return nil, err
	}
	report := &Report{Path: path, Regions: len(layout.Regions), Findings: []Finding{}}
	for i, region := range layout.Regions {
		report.checkRegion(i, region)
	}
	return report, nil
}

func (r *Report) checkRegion(index int, region splice.Region) {
	if len(region.Content) == 0 {
		r.Findings = append(r.Findings, Finding{
			Region:   index,
			Line:     region.StartLine,
			Severity: SeverityWarning,
			Message:  "region is empty",
		})
		return
	}

	runs := pipeRuns(region.Content)
	if len(runs) == 0 {
		return
	}

	var p markdown.Parser
	p.Table = true
	doc := p.Parse(strings.Join(region.Content, "\n") + "\n")
	tables := 0
	for _, b := range doc.Blocks {
		if _, ok := b.(*markdown.Table); ok {
			tables++
		}
	}
	r.Tables += tables

	if tables < len(runs) {
		r.Findings = append(r.Findings, Finding{
			Region:   index,
			Line:     region.StartLine + 1 + runs[tables],
			Severity: SeverityError,
			Message:  fmt.Sprintf("%d pipe row block(s) but only %d parse as tables", len(runs), tables),
		})
	}
}

// pipeRuns returns the offsets of each run of consecutive lines starting with '|'.
func pipeRuns(lines []string) []int {
	var runs []int
	inRun := false
	for i, line := range lines {
		isPipe := strings.HasPrefix(strings.TrimSpace(line), "|")
		if isPipe && !inRun {
			runs = append(runs, i)
		}
		inRun = isPipe
	}
	return runs
}
