package splice

import (
	"errors"
	"strings"
)

// Markers holds the sentinel lines delimiting regions.
type Markers struct {
	Start string `yaml:"start" json:"start"`
	End   string `yaml:"end" json:"end"`
}

// DefaultMarkers are the sentinels used across the wiki.
var DefaultMarkers = Markers{
	Start: "<!-- page_dumper_start -->",
	End:   "<!-- page_dumper_end -->",
}

// Validate checks that both markers are usable sentinels.
func (m Markers) Validate() error {
	start := strings.TrimSpace(m.Start)
	end := strings.TrimSpace(m.End)
	if start == "" || end == "" {
		return errors.New("start and end markers must not be empty")
	}
	if start == end {
		return errors.New("start and end markers must differ")
	}
	if strings.ContainsAny(start+end, "\r\n") {
		return errors.New("markers must fit on a single line")
	}
	return nil
}

// Region is one marker-delimited range of a document.
type Region struct {
	// StartLine and EndLine are the 1-based lines of the marker pair.
	StartLine int `json:"start_line"`
	EndLine   int `json:"end_line"`
	// Content holds the lines strictly between the markers, without terminators.
	Content []string `json:"content"`
}

// Layout is the marker structure of a document.
type Layout struct {
	Path    string   `json:"path"`
	Regions []Region `json:"regions"`

	lines   []string
	newline string
	markers Markers
}

// Inspect locates every region of the document. It fails with a
// *MalformedDocumentError when the markers do not pair up.
func Inspect(path string, data []byte, m Markers) (*Layout, error) {
	lines := splitLines(string(data))
	start := strings.TrimSpace(m.Start)
	end := strings.TrimSpace(m.End)

	layout := &Layout{Path: path, lines: lines, newline: detectNewline(lines), markers: m}
	starts, ends, outOfOrder := 0, 0, 0
	open := -1
	for i, line := range lines {
		switch strings.TrimSpace(line) {
		case start:
			starts++
			if open >= 0 {
				if outOfOrder == 0 {
					outOfOrder = i + 1
				}
				continue
			}
			open = i
		case end:
			ends++
			if open < 0 {
				if outOfOrder == 0 {
					outOfOrder = i + 1
				}
				continue
			}
			layout.Regions = append(layout.Regions, Region{
				StartLine: open + 1,
				EndLine:   i + 1,
				Content:   trimTerminators(lines[open+1 : i]),
			})
			open = -1
		}
	}

	if starts != ends {
		return nil, &MalformedDocumentError{Path: path, Starts: starts, Ends: ends}
	}
	if outOfOrder > 0 {
		return nil, &MalformedDocumentError{Path: path, Starts: starts, Ends: ends, Line: outOfOrder}
	}
	return layout, nil
}

// splitLines splits text after every '\n', keeping the terminators.
// The last element has no terminator when text does not end with a newline.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func detectNewline(lines []string) string {
	for _, line := range lines {
		if strings.HasSuffix(line, "\r\n") {
			return "\r\n"
		}
		if strings.HasSuffix(line, "\n") {
			return "\n"
		}
	}
	return "\n"
}

func trimTerminators(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = strings.TrimRight(line, "\r\n")
	}
	return out
}
