package serverutils

import "fmt"

// AppError is the base for the request-level error taxonomy. Controllers never
// leak internals: the middleware maps these to HTTP status codes and every
// user-visible message is a plain natural-language sentence.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewValidationError covers missing required identifiers and banned content.
// Nothing partial is ever persisted when one of these is returned.
func NewValidationError(message string) *AppError {
	return &AppError{Code: 400, Message: message}
}

// NewNotFoundError covers unknown project/session lookups. Fails fast.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message}
}

// NewRetrievalError marks index or rewrite failures. Callers recover locally
// with an empty-context fallback; it reaches the middleware only when the
// whole request cannot proceed.
func NewRetrievalError(message string, err error) *AppError {
	return &AppError{Code: 502, Message: message, Err: err}
}

// NewToolInvocationError marks a gateway call that exhausted its retries.
func NewToolInvocationError(message string, err error) *AppError {
	return &AppError{Code: 502, Message: message, Err: err}
}

// NewInternalError wraps everything else.
func NewInternalError(err error) *AppError {
	return &AppError{Code: 500, Message: "internal server error", Err: err}
}
