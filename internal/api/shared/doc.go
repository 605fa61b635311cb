// Package shared holds request and response helpers used by both the api
// handlers and the middleware: body decoding, JSON responses and the
// request trace ID.
package shared
