// Package middleware contains the HTTP middleware of the widget API: the
// bearer-token AuthGate, request tracing, the X-Day header, panic recovery
// and token endpoint rate limiting.
package middleware
