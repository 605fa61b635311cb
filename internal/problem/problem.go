package problem

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Problem type keys. Each key must have an entry in titles.
const (
	TypeValidationError   = "validation_error"
	TypeInvalidBodyFormat = "invalid_body_format"
)

// TypeBlank is the sentinel type meaning "no specific category"; the title
// is then the standard reason phrase of the status code.
const TypeBlank = "about:blank"

// UnknownStatusTitle is used as the title when a blank-typed problem carries
// a status code without a standard reason phrase.
const UnknownStatusTitle = "Unknown status code"

// ErrUnknownType is returned when a problem is constructed with a type that
// has no registered title.
var ErrUnknownType = errors.New("unknown problem type")

// titles maps every known problem type to its fixed human-readable title.
// Read-only after package initialisation.
var titles = map[string]string{
	TypeValidationError:   "There was a validation error",
	TypeInvalidBodyFormat: "Invalid JSON format sent",
}

// Title returns the registered title for typ and whether typ is known.
func Title(typ string) (string, bool) {
	title, ok := titles[typ]
	return title, ok
}

// reserved names always come from the fixed fields, never from extras.
var reserved = map[string]bool{
	"status": true,
	"type":   true,
	"title":  true,
}

// Problem describes a structured API error: an HTTP status, a type, a
// title derived from the type, and any number of extra fields such as
// "errors" or "detail".
type Problem struct {
	status int
	typ    string
	title  string
	extra  []Field
}

// Field is a single named member of a problem payload.
type Field struct {
	Name  string
	Value any
}

// New creates a Problem for the given status code. An empty typ produces an
// about:blank problem titled with the status text; any other typ must be a
// registered type, otherwise ErrUnknownType is returned.
func New(status int, typ string) (*Problem, error) {
	p := &Problem{status: status}

	if typ == "" {
		p.typ = TypeBlank
		p.title = http.StatusText(status)
		if p.title == "" {
			p.title = UnknownStatusTitle
		}
		return p, nil
	}

	title, ok := titles[typ]
	if !ok {
		return nil, fmt.Errorf("%w: no title for type %q", ErrUnknownType, typ)
	}
	p.typ = typ
	p.title = title
	return p, nil
}

// MustNew is like New but panics when typ is not registered. It is meant for
// call sites that pass one of the Type constants.
func MustNew(status int, typ string) *Problem {
	p, err := New(status, typ)
	if err != nil {
		// ALLOW-PANIC: unregistered problem types are programming errors
		panic(err)
	}
	return p
}

// StatusCode returns the HTTP status code of the problem.
func (p *Problem) StatusCode() int { return p.status }

// Type returns the problem type key, or about:blank.
func (p *Problem) Type() string { return p.typ }

// Title returns the problem title.
func (p *Problem) Title() string { return p.title }

// Set stores an extra field. Setting the same name twice keeps the
// position of the first write and the value of the last one.
func (p *Problem) Set(name string, value any) {
	for i := range p.extra {
		if p.extra[i].Name == name {
			p.extra[i].Value = value
			return
		}
	}
	p.extra = append(p.extra, Field{Name: name, Value: value})
}

// Get returns the value of an extra field.
func (p *Problem) Get(name string) (any, bool) {
	for _, f := range p.extra {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Payload returns the ordered fields of the problem: extra fields first,
// then status, type and title. Extras named like a fixed field are dropped
// so the fixed values always win.
func (p *Problem) Payload() Payload {
	fields := make(Payload, 0, len(p.extra)+3)
	for _, f := range p.extra {
		if reserved[f.Name] {
			continue
		}
		fields = append(fields, f)
	}
	return append(fields,
		Field{Name: "status", Value: p.status},
		Field{Name: "type", Value: p.typ},
		Field{Name: "title", Value: p.title},
	)
}

// Payload is an ordered set of problem fields. It encodes to a JSON object
// with members in slice order.
type Payload []Field

// Get returns the value stored under name.
func (pl Payload) Get(name string) (any, bool) {
	for _, f := range pl {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// with returns a copy of the payload where name holds value.
func (pl Payload) with(name string, value any) Payload {
	out := make(Payload, len(pl))
	copy(out, pl)
	for i := range out {
		if out[i].Name == name {
			out[i].Value = value
		}
	}
	return out
}

// MarshalJSON implements json.Marshaler.
func (pl Payload) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range pl {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f.Value)
		if err != nil {
			return nil, fmt.Errorf("encode problem field %q: %w", f.Name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
