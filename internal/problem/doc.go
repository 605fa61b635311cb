// Package problem implements the application/problem+json error contract of
// the API.
//
// A Problem is built once per failing request from a status code and an
// optional type key. Known type keys have fixed titles; the blank type
// (about:blank) takes the standard HTTP reason phrase. Extra members such as
// "errors" and "detail" are added with Set and always appear before the fixed
// status, type and title members, which cannot be overridden.
//
// Handlers return a *Error to unwind to the response boundary, where a
// Builder renders the problem and rewrites its type into a documentation
// link.
package problem
