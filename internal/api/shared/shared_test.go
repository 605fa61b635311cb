package shared

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/widget-api/internal/problem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceID(t *testing.T) {
	assert.Empty(t, GetTraceID(context.Background()))

	id := NewTraceID()
	assert.Len(t, id, 36)
	assert.NotEqual(t, id, NewTraceID())
	assert.Equal(t, id, GetTraceID(WithTraceID(context.Background(), id)))
}

func TestDecodeBody(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    map[string]string
		wantErr bool
	}{
		{name: "object", body: `{"name":"bolt","description":null}`, want: map[string]string{"name": `"bolt"`, "description": "null"}},
		{name: "empty object", body: ` {} `, want: map[string]string{}},
		{name: "empty body", body: "", wantErr: true},
		{name: "whitespace", body: "  \n", wantErr: true},
		{name: "syntax error", body: `{"name":`, wantErr: true},
		{name: "null", body: `null`, wantErr: true},
		{name: "array", body: `[{"name":"bolt"}]`, wantErr: true},
		{name: "string", body: `"bolt"`, wantErr: true},
		{name: "number", body: `42`, wantErr: true},
		{name: "trailing data", body: `{"name":"bolt"} {}`, wantErr: true},
		{name: "trailing brace", body: `{"name":"bolt"}}`, wantErr: true},
		{name: "trailing bracket", body: `{"name":"bolt"}]`, wantErr: true},
		{name: "trailing word", body: `{"name":"bolt"} x`, wantErr: true},
		{name: "trailing whitespace", body: "{\"name\":\"bolt\"}\n\t", want: map[string]string{"name": `"bolt"`}},
		{name: "invalid utf8", body: "{\"name\":\"bo\xfflt\"}", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/widgets", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			fields, err := DecodeBody(w, r)

			if tt.wantErr {
				require.Error(t, err)
				p, ok := problem.From(err)
				require.True(t, ok)
				assert.Equal(t, http.StatusBadRequest, p.StatusCode())
				assert.Equal(t, problem.TypeInvalidBodyFormat, p.Type())
				return
			}
			require.NoError(t, err)
			got := make(map[string]string, len(fields))
			for k, v := range fields {
				got[k] = string(v)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeBodyTooLarge(t *testing.T) {
	body := `{"name":"` + strings.Repeat("x", MaxBodyBytes) + `"}`
	r := httptest.NewRequest(http.MethodPost, "/widgets", strings.NewReader(body))

	_, err := DecodeBody(httptest.NewRecorder(), r)

	p, ok := problem.From(err)
	require.True(t, ok)
	assert.Equal(t, problem.TypeInvalidBodyFormat, p.Type())
}

func TestRespondWithJSON(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	RespondWithJSON(w, r, http.StatusCreated, map[string]int{"id": 1})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	var got map[string]int
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 1, got["id"])
}
