package splice

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrInvalidFragments indicates a fragment file that cannot be decoded.
var ErrInvalidFragments = errors.New("invalid fragment file")

type fragmentItem struct {
	Text  *string  `yaml:"text"`
	Lines []string `yaml:"lines"`
}

// DecodeFragments reads a YAML sequence of fragments. Each item holds either
// a "text" scalar or a "lines" list:
//
//	- text: |-
//	    <CodeHeader></CodeHeader>
//	- lines: ["| a |", "| - |"]
func DecodeFragments(data []byte) ([]Fragment, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFragments, err)
	}
	if root.Kind == 0 {
		return []Fragment{}, nil
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) != 1 || root.Content[0].Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("%w: expected a list of fragments", ErrInvalidFragments)
	}
	items := root.Content[0].Content

	out := make([]Fragment, 0, len(items))
	for i, node := range items {
		var item fragmentItem
		if err := node.Decode(&item); err != nil {
			return nil, fmt.Errorf("%w: item %d (line %d): %v", ErrInvalidFragments, i+1, node.Line, err)
		}
		hasLines := hasKey(node, "lines")
		switch {
		case item.Text != nil && hasLines:
			return nil, fmt.Errorf("%w: item %d (line %d) sets both text and lines", ErrInvalidFragments, i+1, node.Line)
		case item.Text != nil:
			out = append(out, Scalar(*item.Text))
		case hasLines:
			out = append(out, Lines(item.Lines...))
		default:
			return nil, fmt.Errorf("%w: item %d (line %d) needs text or lines", ErrInvalidFragments, i+1, node.Line)
		}
	}
	return out, nil
}

func hasKey(node *yaml.Node, key string) bool {
	if node.Kind != yaml.MappingNode {
		return false
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return true
		}
	}
	return false
}
