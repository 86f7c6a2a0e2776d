// Package jsonc decodes the commented JSON used by pack definition files.
package jsonc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/tailscale/hujson"
)

// Standardize strips comments and trailing commas, returning plain JSON.
func Standardize(data []byte) ([]byte, error) {
	std, err := hujson.Standardize(bytes.Clone(data))
	if err != nil {
		return nil, err
	}
	return std, nil
}

// Unmarshal decodes JSONC data into v.
func Unmarshal(data []byte, v any) error {
	std, err := Standardize(data)
	if err != nil {
		return err
	}
	return json.Unmarshal(std, v)
}

// ReadFile decodes the JSONC file at path into v.
func ReadFile(path string, v any) error {
	// #nosec G304 -- pack paths come from the job configuration
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

// Member is one key/value pair of an Object.
type Member struct {
	Key   string
	Value json.RawMessage
}

// Object is a JSON object that remembers the order of its members.
type Object []Member

// UnmarshalJSON implements json.Unmarshaler.
func (o *Object) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("expected JSON object")
	}
	out := Object{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected object key %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		out = append(out, Member{Key: key, Value: raw})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*o = out
	return nil
}

// Get returns the value stored under key.
func (o Object) Get(key string) (json.RawMessage, bool) {
	for _, m := range o {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// Keys returns the member names in document order.
func (o Object) Keys() []string {
	keys := make([]string, len(o))
	for i, m := range o {
		keys[i] = m.Key
	}
	return keys
}

// Indent renders raw JSON with four-space indentation, keeping member order.
func Indent(raw json.RawMessage) (string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "    "); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// IsEmptyObject reports whether raw is an object without members.
func IsEmptyObject(raw json.RawMessage) bool {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return false
	}
	return buf.String() == "{}"
}
