package shared

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"unicode/utf8"

	"github.com/phrazzld/widget-api/internal/problem"
)

// MaxBodyBytes bounds the size of accepted request bodies.
const MaxBodyBytes = 1 << 20

// errNotObject is the cause recorded when the top-level JSON value is not an object.
var errNotObject = errors.New("request body is not a JSON object")

var errInvalidUTF8 = errors.New("request body is not valid UTF-8")

// DecodeBody reads the request body as a single JSON object and returns its
// members undecoded. Anything else (empty body, invalid UTF-8, malformed or
// trailing data, null, arrays, scalars) is a 400 invalid_body_format problem.
func DecodeBody(w http.ResponseWriter, r *http.Request) (map[string]json.RawMessage, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		return nil, problem.InvalidBodyFormat(fmt.Errorf("read body: %w", err))
	}

	if !utf8.Valid(body) {
		return nil, problem.InvalidBodyFormat(errInvalidUTF8)
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, problem.InvalidBodyFormat(errNotObject)
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	var fields map[string]json.RawMessage
	if err := dec.Decode(&fields); err != nil {
		return nil, problem.InvalidBodyFormat(err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, problem.InvalidBodyFormat(errors.New("unexpected data after JSON object"))
	}
	return fields, nil
}
