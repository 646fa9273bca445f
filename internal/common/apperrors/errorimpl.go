package apperrors

import "strings"

// appError implements the Error interface.
type appError struct {
	msg           string
	base          Error
	wrappedErrors []error
	statuscode    int
	expandError   bool
}

func (e *appError) Error() string {
	return e.msg
}

// ErrorAll renders the message together with all wrapped errors when the
// error is marked expandable. Used for server-side logs and debug-mode
// responses; production responses show Error() only.
func (e *appError) ErrorAll() string {
	if !e.expandError || len(e.wrappedErrors) == 0 {
		return e.msg
	}
	parts := make([]string, 0, len(e.wrappedErrors))
	for _, err := range e.wrappedErrors {
		parts = append(parts, err.Error())
	}
	return e.msg + ": " + strings.Join(parts, "; ")
}

func (e *appError) Unwrap() []error {
	return e.wrappedErrors
}

// New derives a child error. The child inherits the status code and
// keeps a reference to its ancestor so errors.Is matches the chain.
func (e *appError) New(msg string) Error {
	return &appError{
		msg:        msg,
		statuscode: e.statuscode,
		base:       e,
	}
}

// Msg derives a child with a different message. Deriving rather than
// mutating keeps package-level sentinels safe to share.
func (e *appError) Msg(msg string) Error {
	child := e.New(msg)
	child.SetExpandError(e.expandError)
	return child
}

func (e *appError) MsgErr(msg string, err ...error) Error {
	return e.Msg(msg).Err(err...)
}

func (e *appError) Err(err ...error) Error {
	child := e.New(e.msg)
	child.SetExpandError(e.expandError)
	c := child.(*appError)
	c.wrappedErrors = append(c.wrappedErrors, err...)
	return child
}

func (e *appError) Is(target error) bool {
	if e == target || e.base == target {
		return true
	}
	if e.base != nil && e.base.Is(target) {
		return true
	}
	for _, err := range e.wrappedErrors {
		if err == target {
			return true
		}
	}
	return false
}

func (e *appError) SetExpandError(expand bool) Error {
	e.expandError = expand
	return e
}

func (e *appError) SetStatusCode(code int) Error {
	e.statuscode = code
	return e
}

func (e *appError) StatusCode() int {
	return e.statuscode
}

func New(msg string) Error {
	return &appError{msg: msg}
}
