package jsonc

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalAcceptsCommentsAndTrailingCommas(t *testing.T) {
	data := []byte(`{
	// line comment
	"a": 1, /* block */
	"b": [1, 2,],
}`)
	var v struct {
		A int   `json:"a"`
		B []int `json:"b"`
	}
	require.NoError(t, Unmarshal(data, &v))
	assert.Equal(t, 1, v.A)
	assert.Equal(t, []int{1, 2}, v.B)
}

func TestStandardizeLeavesInputIntact(t *testing.T) {
	data := []byte(`{"a": 1, // c
}`)
	original := string(data)
	_, err := Standardize(data)
	require.NoError(t, err)
	assert.Equal(t, original, string(data))
}

func TestObjectKeepsOrder(t *testing.T) {
	var obj Object
	require.NoError(t, Unmarshal([]byte(`{"zeta": 1, "alpha": {"x": true}, "mid": "s"}`), &obj))
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, obj.Keys())

	raw, ok := obj.Get("alpha")
	require.True(t, ok)
	assert.JSONEq(t, `{"x": true}`, string(raw))

	_, ok = obj.Get("missing")
	assert.False(t, ok)
}

func TestObjectNullAndErrors(t *testing.T) {
	var wrapper struct {
		O Object `json:"o"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"o": null}`), &wrapper))
	assert.Empty(t, wrapper.O)

	var obj Object
	assert.Error(t, json.Unmarshal([]byte(`[1, 2]`), &obj))
}

func TestIndentKeepsMemberOrder(t *testing.T) {
	out, err := Indent(json.RawMessage(`{"b": 1, "a": [true]}`))
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"b\": 1,\n    \"a\": [\n        true\n    ]\n}", out)
}

func TestIsEmptyObject(t *testing.T) {
	assert.True(t, IsEmptyObject(json.RawMessage(`{ }`)))
	assert.False(t, IsEmptyObject(json.RawMessage(`{"a": 1}`)))
	assert.False(t, IsEmptyObject(json.RawMessage(`[]`)))
	assert.False(t, IsEmptyObject(json.RawMessage(`not json`)))
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"v": 3, /* c */}`), 0o600))

	var v struct {
		V int `json:"v"`
	}
	require.NoError(t, ReadFile(path, &v))
	assert.Equal(t, 3, v.V)

	err := ReadFile(filepath.Join(dir, "missing.json"), &v)
	assert.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, os.WriteFile(path, []byte(`{"v": }`), 0o600))
	err = ReadFile(path, &v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "manifest.json")
}
