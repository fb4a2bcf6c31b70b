package dom

import (
	"slices"
	"strings"
)

// Node is a detached element tree used for rebuilt regions of the page.
type Node struct {
	Tag      string
	Attrs    map[string]string
	Text     string
	Children []*Node
}

// Attr is a single attribute for El.
type Attr struct {
	Key   string
	Value string
}

// A builds an attribute.
func A(key, value string) Attr { return Attr{Key: key, Value: value} }

// El builds a node with attributes and children.
func El(tag string, attrs []Attr, children ...*Node) *Node {
	n := &Node{Tag: tag, Children: children}
	if len(attrs) > 0 {
		n.Attrs = make(map[string]string, len(attrs))
		for _, a := range attrs {
			n.Attrs[a.Key] = a.Value
		}
	}
	return n
}

// T builds a text-only node.
func T(tag, text string, attrs ...Attr) *Node {
	n := El(tag, attrs)
	n.Text = text
	return n
}

// Attr returns the attribute value or "".
func (n *Node) Attr(key string) string {
	if n == nil {
		return ""
	}
	return n.Attrs[key]
}

// HasAttr reports whether the attribute is present.
func (n *Node) HasAttr(key string) bool {
	if n == nil {
		return false
	}
	_, ok := n.Attrs[key]
	return ok
}

// SetAttr sets an attribute, allocating the map on first use.
func (n *Node) SetAttr(key, value string) {
	if n.Attrs == nil {
		n.Attrs = make(map[string]string)
	}
	n.Attrs[key] = value
}

// RemoveAttr deletes an attribute.
func (n *Node) RemoveAttr(key string) {
	delete(n.Attrs, key)
}

// HasClass reports whether the class attribute contains name.
func (n *Node) HasClass(name string) bool {
	return slices.Contains(strings.Fields(n.Attr("class")), name)
}

// AddClass adds name to the class attribute if missing.
func (n *Node) AddClass(name string) {
	if n.HasClass(name) {
		return
	}
	classes := strings.Fields(n.Attr("class"))
	n.SetAttr("class", strings.Join(append(classes, name), " "))
}

// RemoveClass removes name from the class attribute.
func (n *Node) RemoveClass(name string) {
	classes := slices.DeleteFunc(strings.Fields(n.Attr("class")), func(c string) bool {
		return c == name
	})
	n.SetAttr("class", strings.Join(classes, " "))
}

// Walk visits n and its descendants depth-first until fn returns false.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n) {
		return false
	}
	for _, c := range n.Children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// FindAll returns every node in the tree matching pred.
func FindAll(roots []*Node, pred func(*Node) bool) []*Node {
	var out []*Node
	for _, r := range roots {
		r.Walk(func(n *Node) bool {
			if pred(n) {
				out = append(out, n)
			}
			return true
		})
	}
	return out
}

// TextContent concatenates the text of n and its descendants.
func (n *Node) TextContent() string {
	var b strings.Builder
	n.Walk(func(c *Node) bool {
		b.WriteString(c.Text)
		return true
	})
	return b.String()
}

// Clone deep-copies the tree.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := &Node{Tag: n.Tag, Text: n.Text}
	if n.Attrs != nil {
		c.Attrs = make(map[string]string, len(n.Attrs))
		for k, v := range n.Attrs {
			c.Attrs[k] = v
		}
	}
	if n.Children != nil {
		c.Children = make([]*Node, len(n.Children))
		for i, ch := range n.Children {
			c.Children[i] = ch.Clone()
		}
	}
	return c
}

// IsControl reports whether the node is a named form control that FormData
// serializes: inputs (radios and checkboxes only when checked), selects and
// textareas.
func (n *Node) IsControl() bool {
	if n.Attr("name") == "" || n.HasAttr("disabled") {
		return false
	}
	switch n.Tag {
	case "input":
		switch n.Attr("type") {
		case "radio", "checkbox":
			return n.HasAttr("checked")
		}
		return true
	case "select", "textarea":
		return true
	}
	return false
}
