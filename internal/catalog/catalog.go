package catalog

import (
	"bytes"
	"encoding/json"

	"github.com/backmassage/mediacat/internal/naming"
)

// Catalog maps each category to its top-level nodes.
type Catalog struct {
	groups map[naming.Category][]Node
}

// NewCatalog returns a catalog with every category present and empty.
func NewCatalog() *Catalog {
	c := &Catalog{groups: make(map[naming.Category][]Node, len(naming.Categories))}
	for _, cat := range naming.Categories {
		c.groups[cat] = []Node{}
	}
	return c
}

// Add appends nodes to a category.
func (c *Catalog) Add(cat naming.Category, nodes ...Node) {
	c.groups[cat] = append(c.groups[cat], nodes...)
}

// Group returns the nodes of a category.
func (c *Catalog) Group(cat naming.Category) []Node {
	return c.groups[cat]
}

// Walk calls fn for every entry of every category, in serialization order.
func (c *Catalog) Walk(fn func(naming.Category, *Entry)) {
	for _, cat := range naming.Categories {
		Walk(c.groups[cat], func(e *Entry) { fn(cat, e) })
	}
}

// MarshalJSON writes the categories in naming.Categories order. Empty
// categories are written as [].
func (c *Catalog) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, cat := range naming.Categories {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := encode(string(cat))
		if err != nil {
			return nil, err
		}
		nodes := c.groups[cat]
		if nodes == nil {
			nodes = []Node{}
		}
		val, err := encode(nodes)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// encode marshals v without HTML escaping; "&" in query strings stays
// literal.
func encode(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
