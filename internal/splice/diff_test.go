package splice

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnifiedDiff(t *testing.T) {
	before := doc("intro", start, "old", end, "outro")
	after := doc("intro", start, "new", end, "outro")

	diff, err := UnifiedDiff("docs/page.md", before, after)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(diff, "--- a/docs/page.md\n+++ b/docs/page.md\n"), diff)
	assert.Contains(t, diff, "-old\n")
	assert.Contains(t, diff, "+new\n")
	assert.Contains(t, diff, " outro\n")

	diff, err = UnifiedDiff("docs/page.md", before, before)
	require.NoError(t, err)
	assert.Empty(t, diff)
}
