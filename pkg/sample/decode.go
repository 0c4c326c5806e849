package sample

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/buger/jsonparser"
	"gopkg.in/yaml.v3"

	"github.com/usestring/schemagen-mcp/pkg/contenttype"
)

// ErrMalformed indicates a document that cannot be decoded or does not have
// the expected shape.
var ErrMalformed = errors.New("malformed document")

// maxYAMLDepth bounds alias expansion; a YAML alias may point at one of its
// own ancestors.
const maxYAMLDepth = 256

// Decode decodes data according to its category. Unknown categories are
// sniffed from the content.
func Decode(data []byte, category contenttype.Category) (*Value, error) {
	if category == contenttype.Unknown {
		category = contenttype.Sniff(data)
	}

	switch category {
	case contenttype.JSON:
		return DecodeJSON(data)
	case contenttype.YAML:
		return DecodeYAML(data)
	default:
		return nil, fmt.Errorf("%w: unrecognized document format", ErrMalformed)
	}
}

// DecodeJSON decodes a JSON document, keeping object key order.
func DecodeJSON(data []byte) (*Value, error) {
	// jsonparser is lenient about trailing garbage and some syntax errors,
	// so the document is checked with encoding/json first.
	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %v", ErrMalformed, err)
	}

	value, dataType, _, err := jsonparser.Get(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %v", ErrMalformed, err)
	}

	v, err := parseJSON(value, dataType)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %v", ErrMalformed, err)
	}
	return v, nil
}

func parseJSON(data []byte, dataType jsonparser.ValueType) (*Value, error) {
	switch dataType {
	case jsonparser.Null:
		return &Value{Kind: Null}, nil

	case jsonparser.Boolean:
		b, err := jsonparser.ParseBoolean(data)
		if err != nil {
			return nil, err
		}
		return NewBool(b), nil

	case jsonparser.Number:
		return &Value{Kind: Number, Str: string(data)}, nil

	case jsonparser.String:
		s, err := jsonparser.ParseString(data)
		if err != nil {
			return nil, err
		}
		return NewString(s), nil

	case jsonparser.Array:
		arr := NewArray()
		var itemErr error
		_, err := jsonparser.ArrayEach(data, func(item []byte, itemType jsonparser.ValueType, _ int, err error) {
			if itemErr != nil {
				return
			}
			if err != nil {
				itemErr = err
				return
			}
			child, err := parseJSON(item, itemType)
			if err != nil {
				itemErr = err
				return
			}
			arr.Items = append(arr.Items, child)
		})
		if err != nil {
			return nil, err
		}
		if itemErr != nil {
			return nil, itemErr
		}
		return arr, nil

	case jsonparser.Object:
		obj := NewObject()
		err := jsonparser.ObjectEach(data, func(key []byte, val []byte, valType jsonparser.ValueType, _ int) error {
			child, err := parseJSON(val, valType)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			obj.Set(string(key), child)
			return nil
		})
		if err != nil {
			return nil, err
		}
		return obj, nil

	default:
		return nil, fmt.Errorf("unexpected token type %s", dataType)
	}
}

// DecodeYAML decodes a YAML document, keeping mapping key order.
// Only the first document of a stream is used.
func DecodeYAML(data []byte) (*Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: invalid YAML: %v", ErrMalformed, err)
	}
	if doc.Kind == 0 {
		return nil, fmt.Errorf("%w: empty YAML document", ErrMalformed)
	}

	v, err := fromNode(&doc, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid YAML: %v", ErrMalformed, err)
	}
	return v, nil
}

func fromNode(n *yaml.Node, depth int) (*Value, error) {
	if depth > maxYAMLDepth {
		return nil, fmt.Errorf("line %d: nesting exceeds %d levels", n.Line, maxYAMLDepth)
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return &Value{Kind: Null}, nil
		}
		return fromNode(n.Content[0], depth+1)

	case yaml.AliasNode:
		return fromNode(n.Alias, depth+1)

	case yaml.SequenceNode:
		arr := NewArray()
		for _, item := range n.Content {
			child, err := fromNode(item, depth+1)
			if err != nil {
				return nil, err
			}
			arr.Items = append(arr.Items, child)
		}
		return arr, nil

	case yaml.MappingNode:
		obj := NewObject()
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, val := n.Content[i], n.Content[i+1]
			if key.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping keys must be scalars", key.Line)
			}
			child, err := fromNode(val, depth+1)
			if err != nil {
				return nil, err
			}
			obj.Set(key.Value, child)
		}
		return obj, nil

	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!null":
			return &Value{Kind: Null}, nil
		case "!!bool":
			var b bool
			if err := n.Decode(&b); err != nil {
				return nil, fmt.Errorf("line %d: %w", n.Line, err)
			}
			return NewBool(b), nil
		case "!!int", "!!float":
			return &Value{Kind: Number, Str: n.Value}, nil
		default:
			return NewString(n.Value), nil
		}

	default:
		return nil, fmt.Errorf("line %d: unsupported YAML node", n.Line)
	}
}
