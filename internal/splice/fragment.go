package splice

import "strings"

type fragmentKind int

const (
	kindScalar fragmentKind = iota
	kindLines
)

// Fragment is the replacement content for exactly one region.
// Build one with Scalar or Lines; the zero value is an empty scalar.
type Fragment struct {
	kind  fragmentKind
	text  string
	lines []string
}

// Scalar returns a fragment inserted as a single block followed by one newline.
// Newlines inside text are kept verbatim.
func Scalar(text string) Fragment {
	return Fragment{kind: kindScalar, text: text}
}

// Lines returns a fragment inserted as one line per element.
func Lines(lines ...string) Fragment {
	cp := make([]string, len(lines))
	copy(cp, lines)
	return Fragment{kind: kindLines, lines: cp}
}

// IsLines reports whether the fragment was built with Lines.
func (f Fragment) IsLines() bool {
	return f.kind == kindLines
}

// String returns the fragment content joined with newlines.
func (f Fragment) String() string {
	if f.kind == kindLines {
		return strings.Join(f.lines, "\n")
	}
	return f.text
}

// render produces the lines to insert, each terminated with nl.
func (f Fragment) render(nl string) []string {
	if f.kind == kindScalar {
		text := f.text
		if nl != "\n" {
			text = strings.ReplaceAll(strings.ReplaceAll(text, "\r\n", "\n"), "\n", nl)
		}
		return []string{text + nl}
	}
	out := make([]string, len(f.lines))
	for i, line := range f.lines {
		out[i] = line + nl
	}
	return out
}
