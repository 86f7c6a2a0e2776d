package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderSortsBodyRows(t *testing.T) {
	lines, err := Render(0, []string{"H1", "b", "a"}, []string{"H2", "2", "1"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"| H1 | H2 | ",
		"| -- | -- | ",
		"| a  | 1  | ",
		"| b  | 2  | ",
	}, lines)
}

func TestRenderNoSortKeepsOrder(t *testing.T) {
	lines, err := Render(NoSort, []string{"Name", "zeta", "alpha"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"| Name  |",
		"| ----- |",
		"| zeta  |",
		"| alpha |",
	}, lines)
}

func TestRenderStableOnTies(t *testing.T) {
	lines, err := Render(0, []string{"K", "a", "a", "a"}, []string{"V", "3", "1", "2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"| a | 3 | ", "| a | 1 | ", "| a | 2 | "}, lines[2:])
}

func TestRenderPadsShortColumns(t *testing.T) {
	lines, err := Render(1, []string{"ID", "fog_b", "fog_a"}, []string{"Biome used in", "plains"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"| ID    | Biome used in | ",
		"| ----- | ------------- | ",
		"| fog_a |               | ",
		"| fog_b | plains        | ",
	}, lines)
}

func TestRenderWidthCountsRunes(t *testing.T) {
	lines, err := Render(NoSort, []string{"É", "ü"}, []string{""})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"| É |   | ",
		"| - | - | ",
		"| ü |   | ",
	}, lines)
}

func TestRenderHeaderOnly(t *testing.T) {
	lines, err := Render(0, []string{"*Last updated for 1.21.0*"})
	require.NoError(t, err)
	assert.Len(t, lines, 2)
	assert.Equal(t, "| *Last updated for 1.21.0* |", lines[0])
}

func TestRenderErrors(t *testing.T) {
	_, err := Render(0)
	assert.Error(t, err)

	_, err = Render(2, []string{"a"}, []string{"b"})
	assert.Error(t, err)
}
