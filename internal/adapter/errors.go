package adapter

import "errors"

var (
	// ErrURLNotAllowed is returned before any network activity when the
	// request URL uses a scheme outside ALLOWED_SCHEMES or targets a host
	// listed in EXCLUDED_DOMAINS.
	ErrURLNotAllowed = errors.New("url not allowed")

	ErrBadRequest      = errors.New("bad request")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrTooManyRequests = errors.New("too many requests")
	ErrServerError     = errors.New("server error")
)
