package record

import (
	"errors"
	"net/http"
)

var (
	ErrMalformedInput   = errors.New("malformed input")
	ErrMissingField     = errors.New("missing field")
	ErrInvalidFieldType = errors.New("invalid field type")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Kind names the ingest failure carried by err, for logs and error bodies.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMalformedInput):
		return "MalformedInput"
	case errors.Is(err, ErrMissingField):
		return "MissingField"
	case errors.Is(err, ErrInvalidFieldType):
		return "InvalidFieldType"
	case errors.Is(err, ErrStoreUnavailable):
		return "StoreUnavailable"
	default:
		return "Internal"
	}
}

// StatusCode maps err to an HTTP status for invokers that translate failures themselves.
// The Lambda handler does not use it; it returns the error to the runtime.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrMalformedInput),
		errors.Is(err, ErrMissingField),
		errors.Is(err, ErrInvalidFieldType):
		return http.StatusBadRequest
	case errors.Is(err, ErrStoreUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
