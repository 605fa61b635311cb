// Package api handles incoming HTTP requests for the widget API. Handlers
// return errors instead of writing them; Wrap turns every error into an
// application/problem+json response so each request has exactly one error
// boundary.
package api
