package helper

import (
	"errors"
	"net/http"
	"portrait-backend/internal/common/enum"
	types "portrait-backend/internal/common/type"
)

// ParseResponse fills the message from the status text when a service left it empty.
func ParseResponse(r *types.Response) *types.Response {
	if r.Code == 0 {
		r.Code = http.StatusOK
	}
	if r.Message == "" {
		r.Message = http.StatusText(r.Code)
	}
	return r
}

// SanitizeError renders err for a client. Outside development the raw message
// is replaced by the generic text for the status code; the full error is
// expected to be logged by the caller.
func SanitizeError(err error, code int, env enum.EnvEnum) string {
	if err == nil {
		return http.StatusText(code)
	}

	var pub *PublicError
	if errors.As(err, &pub) {
		return pub.Message
	}

	if env.IsDevelopment() {
		return err.Error()
	}
	return http.StatusText(code)
}

// PublicError carries a message that is safe to show in any environment,
// typically a validation failure.
type PublicError struct {
	Message string
	Err     error
}

func NewPublicError(message string, err ...error) *PublicError {
	pe := &PublicError{Message: message}
	if len(err) > 0 {
		pe.Err = err[0]
	}
	return pe
}

func (e *PublicError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *PublicError) Unwrap() error {
	return e.Err
}
