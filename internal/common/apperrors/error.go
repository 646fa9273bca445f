// Package apperrors provides chainable application errors that carry an
// HTTP status code. Packages declare a base error and derive more
// specific errors from it with New; errors.Is matches any ancestor.
package apperrors

type Error interface {
	Error() string
	ErrorAll() string
	New(msg string) Error
	Msg(msg string) Error
	MsgErr(msg string, err ...error) Error
	Err(err ...error) Error
	Unwrap() []error
	Is(target error) bool
	SetExpandError(expand bool) Error
	SetStatusCode(code int) Error
	StatusCode() int
}
