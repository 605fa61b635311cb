package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/widget-api/internal/problem"
)

// widgetIDParam returns the raw {id} path parameter and its parsed value.
// ok is false when the parameter is not a positive integer.
func widgetIDParam(r *http.Request) (raw string, id int64, ok bool) {
	raw = chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return raw, 0, false
	}
	return raw, id, true
}

// widgetNotFound is the 404 problem for a widget id, echoed as received.
func widgetNotFound(raw string) *problem.Error {
	return problem.NotFound(fmt.Sprintf("No widget found for id %s", raw))
}
