package http

import (
	"errors"
	"net/http"

	"github.com/savichev/memodeck/internal/service"
	"github.com/savichev/memodeck/internal/store"
)

// statusFromError maps service and storage errors onto HTTP status codes.
// Transient storage failures map to 503 so clients keep their queued
// mutations and retry later.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, store.ErrStorageUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, store.ErrEntityNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidDataProvided):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
