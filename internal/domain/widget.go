package domain

import (
	"errors"
	"unicode/utf8"
)

// Widget field limits. They match the widgets table column sizes.
const (
	MaxWidgetNameLength        = 20
	MaxWidgetDescriptionLength = 100
)

// Widget validation errors
var (
	ErrEmptyWidgetName          = errors.New("widget name cannot be empty")
	ErrWidgetNameTooLong        = errors.New("widget name is too long")
	ErrWidgetDescriptionTooLong = errors.New("widget description is too long")
)

// Widget is the resource managed by the API. ID is assigned by storage.
type Widget struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// Validate checks the widget against the storage limits.
func (w *Widget) Validate() error {
	if w.Name == "" {
		return ErrEmptyWidgetName
	}
	if utf8.RuneCountInString(w.Name) > MaxWidgetNameLength {
		return ErrWidgetNameTooLong
	}
	if w.Description != nil && utf8.RuneCountInString(*w.Description) > MaxWidgetDescriptionLength {
		return ErrWidgetDescriptionTooLong
	}
	return nil
}

// NormalizeDescription maps an empty description to nil.
func NormalizeDescription(description *string) *string {
	if description == nil || *description == "" {
		return nil
	}
	d := *description
	return &d
}
