package value

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML decodes a YAML node into v, keeping mapping keys in
// document order.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	decoded, err := fromYAMLNode(node, 0)
	if err != nil {
		return err
	}
	*v = decoded
	return nil
}

// MarshalYAML encodes v as a YAML node, keeping dict keys in insertion order.
func (v Value) MarshalYAML() (any, error) {
	return v.yamlNode(), nil
}

// FromYAML decodes a single YAML document into a Value.
func FromYAML(data []byte) (Value, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return Null, fmt.Errorf("parse yaml: %w", err)
	}
	v, err := fromYAMLNode(&node, 0)
	if err != nil {
		return Null, fmt.Errorf("parse yaml: %w", err)
	}
	return v, nil
}

// maxYAMLDepth bounds alias expansion.
const maxYAMLDepth = 256

func fromYAMLNode(node *yaml.Node, depth int) (Value, error) {
	if depth > maxYAMLDepth {
		return Null, errors.New("yaml document nested too deeply")
	}
	switch node.Kind {
	case 0:
		return Null, nil
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return Null, nil
		}
		return fromYAMLNode(node.Content[0], depth+1)
	case yaml.AliasNode:
		return fromYAMLNode(node.Alias, depth+1)
	case yaml.SequenceNode:
		items := make([]Value, len(node.Content))
		for i, child := range node.Content {
			item, err := fromYAMLNode(child, depth+1)
			if err != nil {
				return Null, err
			}
			items[i] = item
		}
		return listOf(items), nil
	case yaml.MappingNode:
		m := NewOrderedMap[Value](len(node.Content) / 2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, err := fromYAMLNode(node.Content[i], depth+1)
			if err != nil {
				return Null, err
			}
			item, err := fromYAMLNode(node.Content[i+1], depth+1)
			if err != nil {
				return Null, err
			}
			m.Set(key.String(), item)
		}
		return dictOf(m), nil
	case yaml.ScalarNode:
		return fromYAMLScalar(node)
	}
	return Null, fmt.Errorf("line %d: unsupported yaml node kind %d", node.Line, node.Kind)
}

func fromYAMLScalar(node *yaml.Node) (Value, error) {
	switch node.ShortTag() {
	case "!!null":
		return Null, nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return Null, err
		}
		return Bool(b), nil
	case "!!int":
		var i int64
		if err := node.Decode(&i); err == nil {
			return Int(i), nil
		}
		var f float64
		if err := node.Decode(&f); err != nil {
			return Null, err
		}
		return Number(f), nil
	case "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return Null, err
		}
		return Number(f), nil
	default:
		return String(node.Value), nil
	}
}

func (v Value) yamlNode() *yaml.Node {
	switch v.kind {
	case KindBool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v.b)}
	case KindInt:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(v.i, 10)}
	case KindFloat:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: yamlFloat(v.f)}
	case KindString:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.s}
	case KindList:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.list {
			node.Content = append(node.Content, item.yamlNode())
		}
		return node
	case KindDict:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for k, item := range v.dict.All() {
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
				item.yamlNode(),
			)
		}
		return node
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}

func yamlFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
