package apperr

import (
	"errors"
	"fmt"
)

// ===============================
// Error Kinds
// ===============================

type Kind string

const (
	KindValidation Kind = "validation"
	KindConflict   Kind = "conflict"
	KindReference  Kind = "reference"
	KindNotFound   Kind = "not_found"
	KindDependency Kind = "dependency"
)

// Error carries enough detail (entity, field, offending value) for the caller
// to correct its input. All kinds are recoverable.
type Error struct {
	Kind   Kind
	Entity string
	Field  string
	Value  string
	Msg    string
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s.%s: %s", e.Kind, e.Entity, e.Field, e.Msg)
	}
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.Entity, e.Msg)
}

// ===============================
// Constructors
// ===============================

func Validation(entity, field, msg string) *Error {
	return &Error{Kind: KindValidation, Entity: entity, Field: field, Msg: msg}
}

func Conflict(entity, field, value string) *Error {
	return &Error{
		Kind:   KindConflict,
		Entity: entity,
		Field:  field,
		Value:  value,
		Msg:    "already in use",
	}
}

func Reference(entity, field string, id uint) *Error {
	return &Error{
		Kind:   KindReference,
		Entity: entity,
		Field:  field,
		Value:  fmt.Sprint(id),
		Msg:    "referenced record does not exist",
	}
}

func NotFound(entity string, id uint) *Error {
	return &Error{
		Kind:   KindNotFound,
		Entity: entity,
		Value:  fmt.Sprint(id),
		Msg:    "record not found",
	}
}

func Dependency(entity, dependent string) *Error {
	return &Error{
		Kind:   KindDependency,
		Entity: entity,
		Msg:    fmt.Sprintf("has existing %s records", dependent),
	}
}

// ===============================
// Inspection
// ===============================

func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return ""
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
