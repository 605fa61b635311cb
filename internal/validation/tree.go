package validation

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Node is anything exposing its own error messages and a named, ordered set
// of child nodes of the same shape.
type Node interface {
	Errors() []string
	Children() []Child
}

// Child is a named sub-node.
type Child struct {
	Name string
	Node Node
}

// Tree is the aggregated error report for a Node. Fields without errors are
// absent.
type Tree struct {
	Messages []string
	Fields   []Entry
}

// Entry is a named subtree.
type Entry struct {
	Name string
	Tree *Tree
}

// Collect walks n and returns its error tree, or nil when neither n nor any
// descendant has errors.
func Collect(n Node) *Tree {
	t := &Tree{}
	if msgs := n.Errors(); len(msgs) > 0 {
		t.Messages = append([]string(nil), msgs...)
	}

	for _, c := range n.Children() {
		if sub := Collect(c.Node); sub != nil {
			t.Fields = append(t.Fields, Entry{Name: c.Name, Tree: sub})
		}
	}

	if len(t.Messages) == 0 && len(t.Fields) == 0 {
		return nil
	}
	return t
}

// Field returns the subtree for name, or nil.
func (t *Tree) Field(name string) *Tree {
	if t == nil {
		return nil
	}
	for _, e := range t.Fields {
		if e.Name == name {
			return e.Tree
		}
	}
	return nil
}

// Lookup follows path through nested fields.
func (t *Tree) Lookup(path ...string) *Tree {
	cur := t
	for _, name := range path {
		cur = cur.Field(name)
	}
	return cur
}

// MarshalJSON implements json.Marshaler. A node with only messages encodes
// as a list of strings. A node with fields encodes as an object: its own
// messages under their index ("0", "1", ...) followed by the fields in order.
func (t *Tree) MarshalJSON() ([]byte, error) {
	if len(t.Fields) == 0 {
		msgs := t.Messages
		if msgs == nil {
			msgs = []string{}
		}
		return json.Marshal(msgs)
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	writeMember := func(name string, value any) error {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		key, err := json.Marshal(name)
		if err != nil {
			return err
		}
		val, err := json.Marshal(value)
		if err != nil {
			return err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
		return nil
	}

	for i, msg := range t.Messages {
		if err := writeMember(strconv.Itoa(i), msg); err != nil {
			return nil, err
		}
	}
	for _, e := range t.Fields {
		if err := writeMember(e.Name, e.Tree); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
