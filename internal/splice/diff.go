package splice

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
)

// UnifiedDiff renders the change from before to after as a unified diff
// with three lines of context. It returns an empty string when nothing
// differs.
func UnifiedDiff(name string, before, after []byte) (string, error) {
	if string(before) == string(after) {
		return "", nil
	}
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(before)),
		B:        difflib.SplitLines(string(after)),
		FromFile: fmt.Sprintf("a/%s", name),
		ToFile:   fmt.Sprintf("b/%s", name),
		Context:  3,
	}
	return difflib.GetUnifiedDiffString(diff)
}
