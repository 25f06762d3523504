package sanitize

import "runtime/debug"

// AnnotatedError attaches structured fields and a captured stack trace to an
// error so the sanitizer can emit them as part of the error record. The
// attached fields are sanitized with the same rules as any plain object.
type AnnotatedError struct {
	err    error
	fields map[string]any
	stack  string
}

// Annotate wraps err with structured fields, capturing the current stack.
func Annotate(err error, fields map[string]any) *AnnotatedError {
	return &AnnotatedError{
		err:    err,
		fields: fields,
		stack:  string(debug.Stack()),
	}
}

func (e *AnnotatedError) Error() string { return e.err.Error() }

// Unwrap exposes the wrapped error to errors.Is and errors.As.
func (e *AnnotatedError) Unwrap() error { return e.err }

// Name identifies the error in sanitized records.
func (e *AnnotatedError) Name() string { return "AnnotatedError" }

// Stack returns the stack captured when the error was annotated.
func (e *AnnotatedError) Stack() string { return e.stack }

// Fields returns the structured fields attached to the error.
func (e *AnnotatedError) Fields() map[string]any { return e.fields }

// errorName resolves the display name for an error record. Errors that do not
// identify themselves report the generic name "Error".
func errorName(err error) string {
	if n, ok := err.(interface{ Name() string }); ok {
		return n.Name()
	}
	return "Error"
}
