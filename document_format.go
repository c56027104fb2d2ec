package jsontools

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/damian-dev1/json-tools-and-utilities/domain/model"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// DocumentFormat is a hierarchical output format for a repaired document.
type DocumentFormat int

const (
	// DocumentFormatJSON writes indented JSON
	DocumentFormatJSON DocumentFormat = iota
	// DocumentFormatYAML writes YAML with the original key order
	DocumentFormatYAML
	// DocumentFormatTOML writes TOML. Nulls are dropped and keys are sorted.
	DocumentFormatTOML
)

// String returns the string representation of DocumentFormat
func (f DocumentFormat) String() string {
	switch f {
	case DocumentFormatYAML:
		return "yaml"
	case DocumentFormatTOML:
		return "toml"
	default:
		return "json"
	}
}

// ParseDocumentFormat maps "json", "yaml"/"yml" or "toml" to DocumentFormat.
func ParseDocumentFormat(name string) (DocumentFormat, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "json":
		return DocumentFormatJSON, nil
	case "yaml", "yml":
		return DocumentFormatYAML, nil
	case "toml":
		return DocumentFormatTOML, nil
	default:
		return DocumentFormatJSON, fmt.Errorf("%w: document format %q", ErrUnsupportedFormat, name)
	}
}

// EncodeDocument writes value to w in format.
func EncodeDocument(w io.Writer, value any, format DocumentFormat) error {
	switch format {
	case DocumentFormatJSON:
		text, err := model.Pretty(value)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, text+"\n")
		return err
	case DocumentFormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(yamlNode(value)); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	case DocumentFormatTOML:
		root, ok := tomlValue(value).(map[string]any)
		if !ok {
			root = map[string]any{model.ValueKey: tomlValue(value)}
		}
		if err := toml.NewEncoder(w).Encode(root); err != nil {
			return fmt.Errorf("failed to encode toml: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("%w: document format %d", ErrUnsupportedFormat, format)
	}
}

// yamlNode builds a node tree so that object keys keep their order.
func yamlNode(v any) *yaml.Node {
	switch x := v.(type) {
	case *model.Object:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, k := range x.Keys() {
			child, _ := x.Get(k)
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
				yamlNode(child))
		}
		return n
	case []any:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, child := range x {
			n.Content = append(n.Content, yamlNode(child))
		}
		return n
	case json.Number:
		tag := "!!float"
		if _, err := x.Int64(); err == nil {
			tag = "!!int"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: x.String()}
	case bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: fmt.Sprint(x)}
	case string:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: x}
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}

// tomlValue converts v to plain maps and native numbers. TOML has no null,
// so nil members and elements are left out.
func tomlValue(v any) any {
	switch x := v.(type) {
	case *model.Object:
		m := make(map[string]any, x.Len())
		for _, k := range x.Keys() {
			child, _ := x.Get(k)
			if child == nil {
				continue
			}
			m[k] = tomlValue(child)
		}
		return m
	case []any:
		out := make([]any, 0, len(x))
		for _, child := range x {
			if child == nil {
				continue
			}
			out = append(out, tomlValue(child))
		}
		return out
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return n
		}
		if f, err := x.Float64(); err == nil {
			return f
		}
		return x.String()
	default:
		return v
	}
}
