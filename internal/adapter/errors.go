package adapter

import "errors"

var (
	// ErrTransport marks failures where the request never produced a usable
	// response: DNS errors, refused connections, timeouts, 5xx replies.
	// Queued mutations survive these and are retried on the next cycle.
	ErrTransport = errors.New("transport failure")

	// ErrOffline is returned when a call is attempted while the connectivity
	// monitor reports the server unreachable.
	ErrOffline = errors.New("server unreachable")

	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("client unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("version conflict")
)

// Retryable reports whether err describes a transient condition. Validation
// rejections and auth failures are permanent; only transport-level failures
// qualify.
func Retryable(err error) bool {
	return errors.Is(err, ErrTransport) || errors.Is(err, ErrOffline)
}
