package api

import (
	"bytes"
	"encoding/json"

	"github.com/phrazzld/widget-api/internal/validation"
)

// bindWidget applies the decoded body to input and records binding
// failures on the returned form. With clearMissing set, fields absent from
// the body are reset to their zero value; otherwise they keep their
// current value. The returned set names the fields that failed to bind.
func bindWidget(input *WidgetInput, fields map[string]json.RawMessage, clearMissing bool) (*validation.Form, map[string]bool) {
	form := validation.FormFor(input)
	failed := make(map[string]bool)

	for name := range fields {
		if name != "name" && name != "description" {
			form.AddError(msgExtraFields)
			break
		}
	}

	if raw, ok := fields["name"]; ok {
		if s, _, ok := decodeText(raw); ok {
			input.Name = s
		} else {
			form.Field("name").AddError(msgInvalidValue)
			failed["name"] = true
		}
	} else if clearMissing {
		input.Name = ""
	}

	if raw, ok := fields["description"]; ok {
		if s, isNull, ok := decodeText(raw); !ok {
			form.Field("description").AddError(msgInvalidValue)
			failed["description"] = true
		} else if isNull {
			input.Description = nil
		} else {
			input.Description = &s
		}
	} else if clearMissing {
		input.Description = nil
	}

	return form, failed
}

// decodeText reads a text field. Strings are taken as is, numbers by their
// literal text and null as empty. Objects, arrays and booleans do not bind.
func decodeText(raw json.RawMessage) (text string, isNull bool, ok bool) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return "", false, false
	}
	switch t := v.(type) {
	case nil:
		return "", true, true
	case string:
		return t, false, true
	case json.Number:
		return t.String(), false, true
	default:
		return "", false, false
	}
}

// mergeFieldErrors copies the messages of src's fields into dst, skipping
// the fields named in skip.
func mergeFieldErrors(dst, src *validation.Form, skip map[string]bool) {
	for _, msg := range src.Errors() {
		dst.AddError(msg)
	}
	for _, c := range src.Children() {
		if skip[c.Name] {
			continue
		}
		for _, msg := range c.Node.Errors() {
			dst.Field(c.Name).AddError(msg)
		}
	}
}
