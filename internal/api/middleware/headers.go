package middleware

import (
	"net/http"
	"time"
)

// DayHeader is the response header naming the current weekday.
const DayHeader = "X-Day"

// Day sets the X-Day header to the weekday reported by now, e.g. "Monday".
func Day(now func() time.Time) func(http.Handler) http.Handler {
	if now == nil {
		now = time.Now
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(DayHeader, now().Weekday().String())
			next.ServeHTTP(w, r)
		})
	}
}
