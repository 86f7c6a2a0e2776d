package lint

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bedrock-oss/wikigen/internal/splice"
)

const (
	start = "<!-- page_dumper_start -->"
	end   = "<!-- page_dumper_end -->"
)

func page(lines ...string) []byte {
	return []byte(strings.Join(lines, "\n") + "\n")
}

func TestCheckValidTables(t *testing.T) {
	data := page("# Fog IDs", start,
		"| ID         | Biome used in |",
		"| ---------- | ------------- |",
		"| fog_plains | plains        |",
		"*Last updated for 1.21.0*",
		end,
		start, "plain text only", end)

	report, err := Check("fog.md", data, splice.DefaultMarkers)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Regions)
	assert.Equal(t, 1, report.Tables)
	assert.Empty(t, report.Findings)
	assert.False(t, report.HasErrors())
}

func TestCheckBrokenTable(t *testing.T) {
	data := page(start,
		"| ID | Biome |",
		"| fog_plains | plains |",
		end)

	report, err := Check("fog.md", data, splice.DefaultMarkers)
	require.NoError(t, err)
	require.Len(t, report.Findings, 1)
	assert.Equal(t, SeverityError, report.Findings[0].Severity)
	assert.Equal(t, 2, report.Findings[0].Line)
	assert.True(t, report.HasErrors())
}

func TestCheckEmptyRegion(t *testing.T) {
	report, err := Check("x.md", page(start, end), splice.DefaultMarkers)
	require.NoError(t, err)
	require.Len(t, report.Findings, 1)
	assert.Equal(t, SeverityWarning, report.Findings[0].Severity)
	assert.False(t, report.HasErrors())
}

func TestCheckMalformed(t *testing.T) {
	_, err := Check("x.md", page(start, start, end), splice.DefaultMarkers)
	assert.ErrorIs(t, err, splice.ErrMalformedDocument)
}

func TestPipeRuns(t *testing.T) {
	assert.Equal(t, []int{0, 3}, pipeRuns([]string{"| a |", "| - |", "", " | b |"}))
	assert.Nil(t, pipeRuns([]string{"text"}))
}
