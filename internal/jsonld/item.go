package jsonld

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Property URIs understood by the exporter.
const (
	PhotoProperty = "https://tropy.org/v1/tropy#photo"
	PathProperty  = "https://tropy.org/v1/tropy#path"
)

// Untitled is returned by Item.Title when no title property carries a string.
const Untitled = "[Untitled]"

// TitleProperties are the Dublin Core title URIs, elements and terms namespaces.
var TitleProperties = []string{
	"http://purl.org/dc/terms/title",
	"http://purl.org/dc/elements/1.1/title",
}

// ValueKind tags the shape of a Value.
type ValueKind int

const (
	KindOther   ValueKind = iota
	KindString            // plain JSON string
	KindLiteral           // {"@value": "..."} with a string payload
	KindList              // {"@list": [...]}
	KindNode              // any other object, read as a nested node
)

// Value is one entry of an expanded property value array.
type Value struct {
	Kind ValueKind
	Text string
	List []Value
	Node *Item
}

// ValueOf classifies a decoded JSON value.
func ValueOf(raw any) Value {
	switch v := raw.(type) {
	case string:
		return Value{Kind: KindString, Text: v}
	case map[string]any:
		if lit, ok := v["@value"]; ok {
			if s, ok := lit.(string); ok {
				return Value{Kind: KindLiteral, Text: s}
			}
			return Value{Kind: KindOther}
		}
		if list, ok := v["@list"]; ok {
			entries, _ := list.([]any)
			values := make([]Value, 0, len(entries))
			for _, e := range entries {
				values = append(values, ValueOf(e))
			}
			return Value{Kind: KindList, List: values}
		}
		node := NewItem(v)
		return Value{Kind: KindNode, Node: &node}
	default:
		return Value{Kind: KindOther}
	}
}

// AsString returns the string payload of a plain string or a string literal.
func (v Value) AsString() (string, bool) {
	switch v.Kind {
	case KindString, KindLiteral:
		return v.Text, true
	default:
		return "", false
	}
}

// Property is one property URI with its ordered values.
type Property struct {
	URI    string
	Values []Value
}

// Item is an expanded JSON-LD node. Properties keep the order they were
// produced in; NewItem sorts them by URI, which is the order JSON-LD
// expansion emits them.
type Item struct {
	Properties []Property
}

// NewItem builds an Item from a decoded expanded node object.
func NewItem(node map[string]any) Item {
	keys := make([]string, 0, len(node))
	for k := range node {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	item := Item{Properties: make([]Property, 0, len(keys))}
	for _, k := range keys {
		var raw []any
		switch v := node[k].(type) {
		case []any:
			raw = v
		default:
			raw = []any{v}
		}
		values := make([]Value, 0, len(raw))
		for _, r := range raw {
			values = append(values, ValueOf(r))
		}
		item.Properties = append(item.Properties, Property{URI: k, Values: values})
	}
	return item
}

// UnmarshalJSON decodes an expanded node object.
func (it *Item) UnmarshalJSON(data []byte) error {
	var node map[string]any
	if err := json.Unmarshal(data, &node); err != nil {
		return fmt.Errorf("failed to decode item: %w", err)
	}
	*it = NewItem(node)
	return nil
}

// Get returns the values of the first property with the given URI.
func (it Item) Get(uri string) ([]Value, bool) {
	for _, p := range it.Properties {
		if p.URI == uri {
			return p.Values, true
		}
	}
	return nil, false
}

// Title returns the first value of the first title property, scanning in
// property order. Properties whose first value is not a string are skipped.
func (it Item) Title() string {
	for _, p := range it.Properties {
		if !isTitle(p.URI) || len(p.Values) == 0 {
			continue
		}
		if s, ok := p.Values[0].AsString(); ok {
			return s
		}
	}
	return Untitled
}

// Photos returns the photo nodes listed under the photo property, in order.
func (it Item) Photos() []Item {
	values, ok := it.Get(PhotoProperty)
	if !ok || len(values) == 0 {
		return nil
	}
	if values[0].Kind == KindList {
		values = values[0].List
	}

	photos := make([]Item, 0, len(values))
	for _, v := range values {
		if v.Kind == KindNode && v.Node != nil {
			photos = append(photos, *v.Node)
		}
	}
	return photos
}

// Path returns the local file path of a photo node.
func (it Item) Path() (string, bool) {
	values, ok := it.Get(PathProperty)
	if !ok || len(values) == 0 {
		return "", false
	}
	s, ok := values[0].AsString()
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}

func isTitle(uri string) bool {
	for _, t := range TitleProperties {
		if t == uri {
			return true
		}
	}
	return false
}
