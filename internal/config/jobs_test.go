package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultJobsAreValid(t *testing.T) {
	jobs := DefaultJobs()
	require.NoError(t, ValidateJobs(&jobs))
	assert.False(t, jobs.Preview())
	assert.Equal(t, "<!-- page_dumper_start -->", jobs.Markers.Start)
}

func TestLoadJobsMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultConfigFile)

	jobs, err := LoadJobs(path, true)
	require.NoError(t, err)
	assert.Equal(t, DefaultJobs().Pages, jobs.Pages)
	assert.Equal(t, filepath.Join(dir, "packs", "rp"), jobs.PackPath(jobs.Packs.Resource))

	_, err = LoadJobs(path, false)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadJobsOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultConfigFile)
	require.NoError(t, os.WriteFile(path, []byte(`mode: beta
limits:
  examples: -1
pages:
  fog_ids: docs/fog.md
`), 0o600))

	jobs, err := LoadJobs(path, false)
	require.NoError(t, err)
	assert.True(t, jobs.Preview())
	assert.Equal(t, -1, jobs.Limits.Examples)
	assert.Equal(t, 3, jobs.Limits.EntityExamples)
	assert.Equal(t, "docs/fog.md", jobs.Pages.FogIDs)
	assert.Equal(t, DefaultJobs().Pages.Items, jobs.Pages.Items)
	assert.Equal(t, "/abs/rp", jobs.PackPath("/abs/rp"))
}

func TestLoadJobsRejectsInvalid(t *testing.T) {
	testCases := map[string]string{
		"unknown mode":  "mode: nightly\n",
		"zero limit":    "limits:\n  examples: 0\n",
		"empty marker":  "markers:\n  start: \"\"\n  end: x\n",
		"empty pack":    "packs:\n  resource: \"\"\n",
		"too low limit": "limits:\n  entity_examples: -2\n",
	}
	for name, content := range testCases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), DefaultConfigFile)
			require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
			_, err := LoadJobs(path, false)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidJobs)
		})
	}
}

func TestLoadJobsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFile)
	require.NoError(t, os.WriteFile(path, []byte("mode: [\n"), 0o600))
	_, err := LoadJobs(path, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedJobs)
	assert.NotErrorIs(t, err, ErrInvalidJobs)
}

func TestJobsEncodeRoundTrip(t *testing.T) {
	jobs := DefaultJobs()
	data, err := jobs.Encode()
	require.NoError(t, err)
	assert.Contains(t, string(data), "block_sounds: docs/blocks/block-sounds.md")

	path := filepath.Join(t.TempDir(), DefaultConfigFile)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	loaded, err := LoadJobs(path, false)
	require.NoError(t, err)
	assert.Equal(t, jobs.Pages, loaded.Pages)
	assert.Equal(t, jobs.Limits, loaded.Limits)
}
