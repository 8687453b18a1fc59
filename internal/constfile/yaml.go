package constfile

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

type yamlFile struct {
	Constants []yamlConstant `yaml:"constants"`
}

type yamlConstant struct {
	Name  string    `yaml:"name"`
	Type  string    `yaml:"type,omitempty"`
	Value yaml.Node `yaml:"value"`
}

func parseYAML(path string, data []byte) ([]entry, error) {
	var file yamlFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, &LoadError{
			Code:    ErrCodeParse,
			Message: fmt.Sprintf("failed to parse YAML: %v", err),
			Path:    path,
			Err:     err,
		}
	}

	entries := make([]entry, 0, len(file.Constants))
	for _, c := range file.Constants {
		e := entry{
			name:     c.Name,
			typeName: c.Type,
			line:     c.Value.Line,
			column:   c.Value.Column,
		}
		if c.Value.Kind == 0 {
			return nil, e.fail(path, ErrCodeInvalid, fmt.Sprintf("constant %q has no value", c.Name), nil)
		}

		v, err := yamlScalar(&c.Value)
		if err != nil {
			return nil, e.fail(path, ErrCodeUnsupported, fmt.Sprintf("constant %q: %v", c.Name, err), err)
		}
		e.value = v
		entries = append(entries, e)
	}
	return entries, nil
}

// yamlScalar decodes a scalar node into a host value according to its
// resolved tag.
func yamlScalar(node *yaml.Node) (any, error) {
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	if node.Kind != yaml.ScalarNode {
		return nil, fmt.Errorf("value must be a scalar, got %s", yamlKindName(node.Kind))
	}

	switch tag := node.ShortTag(); tag {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		err := node.Decode(&b)
		return b, err
	case "!!int":
		var n int64
		if err := node.Decode(&n); err == nil {
			return n, nil
		}
		var u uint64
		if err := node.Decode(&u); err != nil {
			return nil, fmt.Errorf("integer %q out of range", node.Value)
		}
		return u, nil
	case "!!float":
		var f float64
		err := node.Decode(&f)
		return f, err
	case "!!str":
		return node.Value, nil
	case "!!binary":
		b, err := base64.StdEncoding.DecodeString(node.Value)
		if err != nil {
			return nil, fmt.Errorf("invalid !!binary value: %w", err)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unsupported YAML tag %s", tag)
	}
}

func yamlKindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "list"
	case yaml.MappingNode:
		return "map"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	}
	return "unknown"
}
