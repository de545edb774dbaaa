package domain

import "fmt"

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors accumulates field errors so a caller sees every problem
// with its input at once.
type ValidationErrors []FieldError

func (v *ValidationErrors) Add(field, message string) {
	*v = append(*v, FieldError{Field: field, Message: message})
}

func (v *ValidationErrors) Addf(field, format string, args ...any) {
	v.Add(field, fmt.Sprintf(format, args...))
}

func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "validation failed"
	}
	if len(v) == 1 {
		return fmt.Sprintf("%s: %s", v[0].Field, v[0].Message)
	}
	return fmt.Sprintf("%s: %s (and %d more)", v[0].Field, v[0].Message, len(v)-1)
}

// ActionResult is the envelope returned by the ingest endpoints.
type ActionResult[T any] struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Errors  ValidationErrors `json:"errors,omitempty"`
	Data    *T               `json:"data,omitempty"`
}

func Succeeded[T any](message string, data *T) ActionResult[T] {
	return ActionResult[T]{Success: true, Message: message, Data: data}
}

func Failed[T any](message string, errs ValidationErrors) ActionResult[T] {
	return ActionResult[T]{Success: false, Message: message, Errors: errs}
}
