package page

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bedrock-oss/wikigen/internal/config"
)

func samplePage(path string) *Page {
	return &Page{
		Path: path,
		FrontMatter: FrontMatter{
			Title:       "Biome Tags",
			Category:    "Documentation",
			Mentions:    []string{"MedicalJewel105"},
			Description: "Automatically generated biome tags.",
		},
		Body: "## Biome tag per Biome\n",
	}
}

func TestEncodeAndParse(t *testing.T) {
	data, err := samplePage("tags.md").Encode()
	require.NoError(t, err)
	assert.Equal(t, "---\n"+
		"title: Biome Tags\n"+
		"category: Documentation\n"+
		"mentions:\n"+
		"    - MedicalJewel105\n"+
		"description: Automatically generated biome tags.\n"+
		"---\n\n"+
		"## Biome tag per Biome\n", string(data))

	parsed, err := Parse("tags.md", data)
	require.NoError(t, err)
	assert.Equal(t, samplePage("tags.md").FrontMatter, parsed.FrontMatter)
	assert.Equal(t, "## Biome tag per Biome\n", parsed.Body)
}

func TestEncodeHiddenPage(t *testing.T) {
	p := &Page{FrontMatter: FrontMatter{Title: "Vanilla Usage Items - Full", Hidden: true}, Body: "text"}
	data, err := p.Encode()
	require.NoError(t, err)
	assert.Equal(t, "---\ntitle: Vanilla Usage Items - Full\nhidden: true\n---\n\ntext\n", string(data))
}

func TestParseCRLFAndErrors(t *testing.T) {
	p, err := Parse("x.md", []byte("---\r\ntitle: X\r\n---\r\n\r\nbody\r\n"))
	require.NoError(t, err)
	assert.Equal(t, "X", p.FrontMatter.Title)
	assert.Equal(t, "body\r\n", p.Body)

	_, err = Parse("x.md", []byte("no front matter"))
	assert.Error(t, err)

	_, err = Parse("x.md", []byte("---\ntitle: [\n---\n"))
	assert.Error(t, err)
}

func newWriter(dry bool) *Writer {
	opts := config.New()
	opts.DryRun = dry
	return NewWriter(opts)
}

func TestWriterWritesAndSkipsUnchanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docs", "tags.md")

	changed, err := newWriter(false).Write(samplePage(path))
	require.NoError(t, err)
	assert.True(t, changed)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	changed, err = newWriter(false).Write(samplePage(path))
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestWriterKeepsExistingMentions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tags.md")
	existing := "---\ntitle: Biome Tags\nmentions:\n    - SirLich\n    - MedicalJewel105\n---\n\nold body\n"
	require.NoError(t, os.WriteFile(path, []byte(existing), 0o600))

	p := samplePage(path)
	changed, err := newWriter(false).Write(p)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, []string{"MedicalJewel105", "SirLich"}, p.FrontMatter.Mentions)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	parsed, err := Parse(path, data)
	require.NoError(t, err)
	assert.Equal(t, []string{"MedicalJewel105", "SirLich"}, parsed.FrontMatter.Mentions)
}

func TestWriterDryRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tags.md")
	changed, err := newWriter(true).Write(samplePage(path))
	require.NoError(t, err)
	assert.True(t, changed)

	_, err = os.Stat(path)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
