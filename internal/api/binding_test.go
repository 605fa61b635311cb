package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/widget-api/internal/problem"
	"github.com/phrazzld/widget-api/internal/service/auth"
	"github.com/phrazzld/widget-api/internal/store"
	"github.com/phrazzld/widget-api/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawFields(t *testing.T, body string) map[string]json.RawMessage {
	t.Helper()
	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(body), &fields))
	return fields
}

func strPtr(s string) *string { return &s }

func TestDecodeText(t *testing.T) {
	tests := []struct {
		raw        string
		wantText   string
		wantIsNull bool
		wantOK     bool
	}{
		{`"bolt"`, "bolt", false, true},
		{`""`, "", false, true},
		{`null`, "", true, true},
		{`42`, "42", false, true},
		{`1.50`, "1.50", false, true},
		{`true`, "", false, false},
		{`["a"]`, "", false, false},
		{`{"a":1}`, "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			text, isNull, ok := decodeText(json.RawMessage(tt.raw))
			assert.Equal(t, tt.wantText, text)
			assert.Equal(t, tt.wantIsNull, isNull)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestBindWidget(t *testing.T) {
	t.Run("full replace clears missing fields", func(t *testing.T) {
		input := WidgetInput{Name: "old", Description: strPtr("old description")}
		form, failed := bindWidget(&input, rawFields(t, `{"name":"new"}`), true)

		assert.True(t, form.Valid())
		assert.Empty(t, failed)
		assert.Equal(t, "new", input.Name)
		assert.Nil(t, input.Description)
	})

	t.Run("merge keeps missing fields", func(t *testing.T) {
		input := WidgetInput{Name: "old", Description: strPtr("old description")}
		form, _ := bindWidget(&input, rawFields(t, `{"name":"new"}`), false)

		assert.True(t, form.Valid())
		assert.Equal(t, "new", input.Name)
		require.NotNil(t, input.Description)
		assert.Equal(t, "old description", *input.Description)
	})

	t.Run("explicit null clears description", func(t *testing.T) {
		input := WidgetInput{Name: "old", Description: strPtr("old description")}
		_, _ = bindWidget(&input, rawFields(t, `{"description":null}`), false)

		assert.Nil(t, input.Description)
		assert.Equal(t, "old", input.Name)
	})

	t.Run("extra fields are a root error", func(t *testing.T) {
		input := WidgetInput{}
		form, _ := bindWidget(&input, rawFields(t, `{"name":"bolt","color":"red","size":3}`), true)

		assert.Equal(t, []string{msgExtraFields}, form.Errors())
		assert.Equal(t, "bolt", input.Name)
	})

	t.Run("type mismatch keeps prior value", func(t *testing.T) {
		input := WidgetInput{Name: "old"}
		form, failed := bindWidget(&input, rawFields(t, `{"name":["x"]}`), true)

		assert.Equal(t, []string{msgInvalidValue}, form.Field("name").Errors())
		assert.True(t, failed["name"])
		assert.Equal(t, "old", input.Name)
	})
}

func TestWidgetInputValidation(t *testing.T) {
	v := validation.NewValidator()

	tests := []struct {
		name  string
		input WidgetInput
		want  string
	}{
		{"valid", WidgetInput{Name: "bolt", Description: strPtr("small")}, `null`},
		{"blank name", WidgetInput{Description: strPtr("")}, `{"name":["Name field should not be blank"]}`},
		{"long name", WidgetInput{Name: "abcdefghijklmnopqrstu"}, `{"name":["Name can not be longer then 20 characters!"]}`},
		{"twenty runes", WidgetInput{Name: strings.Repeat("é", 20)}, `null`},
		{
			"long description",
			WidgetInput{Name: "bolt", Description: strPtr(strings.Repeat("x", 101))},
			`{"description":["Description can not be longer then 100 characters!"]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validation.FormFor(&tt.input)
			require.NoError(t, v.Validate(form, &tt.input))

			got, err := json.Marshal(validation.Collect(form))
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}

func TestMergeFieldErrors(t *testing.T) {
	dst := validation.FormFor(&WidgetInput{})
	dst.Field("name").AddError(msgInvalidValue)

	src := validation.FormFor(&WidgetInput{})
	src.Field("name").AddError(msgNameBlank)
	src.Field("description").AddError("too long")

	mergeFieldErrors(dst, src, map[string]bool{"name": true})

	assert.Equal(t, []string{msgInvalidValue}, dst.Field("name").Errors())
	assert.Equal(t, []string{"too long"}, dst.Field("description").Errors())
}

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{fmt.Errorf("wrapped: %w", auth.ErrExpiredToken), http.StatusUnauthorized},
		{store.ErrWidgetNotFound, http.StatusNotFound},
		{store.ErrUserNotFound, http.StatusNotFound},
		{store.ErrInvalidEntity, http.StatusBadRequest},
		{fmt.Errorf("create: %w: name too long", store.ErrInvalidEntity), http.StatusBadRequest},
		{store.ErrEmailExists, http.StatusConflict},
		{store.ErrWidgetNameExists, http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestWrap(t *testing.T) {
	builder := problem.NewBuilder("https://localhost:8000/docs")

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "problem error is written as is",
			err:        problem.NotFound("No widget found for id 7"),
			wantStatus: http.StatusNotFound,
			wantBody:   `{"detail":"No widget found for id 7","status":404,"type":"about:blank","title":"Not Found"}`,
		},
		{
			name:       "invalid credentials",
			err:        auth.ErrInvalidCredentials,
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"status":401,"type":"about:blank","title":"Unauthorized"}`,
		},
		{
			name:       "unexpected error hides its message",
			err:        errors.New("dial tcp postgres://admin:hunter2@db:5432 refused"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"status":500,"type":"about:blank","title":"Internal Server Error"}`,
		},
		{
			name:       "typed problem links to docs",
			err:        problem.InvalidBodyFormat(errors.New("eof")),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"status":400,"type":"https://localhost:8000/docs/errors#invalid_body_format","title":"Invalid JSON format sent"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := Wrap(builder, func(w http.ResponseWriter, r *http.Request) error { return tt.err })

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, problem.ContentType, rec.Header().Get("Content-Type"))
			assert.Equal(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestWrapSuccess(t *testing.T) {
	h := Wrap(problem.NewBuilder("https://localhost:8000/docs"), func(w http.ResponseWriter, r *http.Request) error {
		w.WriteHeader(http.StatusAccepted)
		return nil
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Empty(t, rec.Body.String())
}
