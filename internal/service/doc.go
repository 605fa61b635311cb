// Package service holds the application use cases that sit between the HTTP
// handlers and the store interfaces: widget persistence rules (name
// uniqueness, idempotent delete) and user provisioning.
package service
