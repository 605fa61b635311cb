// Package domain contains the entities managed by the API (widgets and the
// users that authenticate against it) and their invariants, independent of
// storage and transport.
package domain
