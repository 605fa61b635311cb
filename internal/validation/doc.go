// Package validation aggregates validation failures of a bound request body
// into a nested error tree.
//
// Any value implementing Node (its own messages plus named child nodes) can
// be collected. Form is the implementation used by the handlers: FormFor
// builds its skeleton from a struct, binding code adds type errors, and
// Validator adds go-playground/validator constraint failures.
package validation
