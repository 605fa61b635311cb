package validation

import (
	"reflect"
	"strings"
)

// Form is the mutable error holder for one bound input. Its children mirror
// the input's fields in declaration order, so the collected tree does not
// depend on the order in which errors were found.
type Form struct {
	name     string
	errors   []string
	children []*Form
}

// NewForm returns an empty form node.
func NewForm(name string) *Form {
	return &Form{name: name}
}

// FormFor returns a form whose children mirror the fields of input, which
// must be a struct or a pointer to one. Nested struct fields become nested
// forms. Field names come from json tags, falling back to the Go name.
func FormFor(input any) *Form {
	f := NewForm("")
	addFields(f, reflect.TypeOf(input))
	return f
}

func addFields(f *Form, t reflect.Type) {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return
	}

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := fieldName(sf)
		if name == "" {
			continue
		}
		child := f.Field(name)
		addFields(child, sf.Type)
	}
}

// fieldName returns the json name of sf, or "" when the field is skipped.
func fieldName(sf reflect.StructField) string {
	tag := sf.Tag.Get("json")
	name, _, _ := strings.Cut(tag, ",")
	switch name {
	case "-":
		return ""
	case "":
		return sf.Name
	default:
		return name
	}
}

// Name returns the form's field name; the root form has none.
func (f *Form) Name() string { return f.name }

// AddError records a message on this node.
func (f *Form) AddError(msg string) {
	f.errors = append(f.errors, msg)
}

// Field returns the child named name, creating it at the end when missing.
func (f *Form) Field(name string) *Form {
	for _, c := range f.children {
		if c.name == name {
			return c
		}
	}
	c := NewForm(name)
	f.children = append(f.children, c)
	return c
}

// Path returns the descendant reached by following names.
func (f *Form) Path(names ...string) *Form {
	cur := f
	for _, name := range names {
		cur = cur.Field(name)
	}
	return cur
}

// Valid reports whether neither this node nor any descendant has errors.
func (f *Form) Valid() bool {
	if len(f.errors) > 0 {
		return false
	}
	for _, c := range f.children {
		if !c.Valid() {
			return false
		}
	}
	return true
}

// Errors implements Node.
func (f *Form) Errors() []string { return f.errors }

// Children implements Node.
func (f *Form) Children() []Child {
	out := make([]Child, 0, len(f.children))
	for _, c := range f.children {
		out = append(out, Child{Name: c.name, Node: c})
	}
	return out
}

var _ Node = (*Form)(nil)
