// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating with
// the memodeck sync server.
//
// The primary abstraction is [SyncTransport], which decouples the service layer
// from the underlying protocol. The package ships a JSON-over-HTTP
// implementation ([NewHTTPSyncTransport]) built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrUnauthorized] for 401). [Retryable] reports whether a
// failed call may be attempted again without losing queued mutations.
package adapter

import (
	"context"
	"time"

	"github.com/savichev/memodeck/internal/config"
	"github.com/savichev/memodeck/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/sync_transport_mock.go -package=mock

// SyncTransport defines transport-agnostic communication with the memodeck
// server. Implementations are responsible for serialisation, authentication
// header management, and mapping transport-level errors to the sentinel values
// defined in this package.
type SyncTransport interface {
	// SetToken stores the bearer token that will be attached to all subsequent
	// authenticated requests. It should be called immediately after a
	// successful Register or Login.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// Register sends a registration request to the server with the provided
	// user credentials. On success it stores the returned bearer token via
	// SetToken and returns the user value. Returns an error if the request
	// fails or the server responds with a non-2xx status.
	Register(ctx context.Context, user models.User) (models.User, error)

	// Login authenticates the user with the server. On success it stores the
	// returned bearer token via SetToken and returns the token together with
	// the user id extracted from it.
	Login(ctx context.Context, user models.User) (models.Token, error)

	// PushSync uploads a batch of local changes and returns the per-entity
	// outcome. A request that never reached the server (or died with a 5xx)
	// is reported as a wrapped [ErrTransport]; the caller keeps its queue.
	PushSync(ctx context.Context, req models.SyncRequest) (models.SyncResponse, error)

	// PullChanges fetches every server-side change recorded after since.
	// A nil since requests the full snapshot.
	PullChanges(ctx context.Context, since *time.Time) (models.SyncChanges, error)

	// Ping probes server reachability without authentication.
	Ping(ctx context.Context) error
}

// Connectivity reports whether the sync server is currently reachable and on
// what kind of network. The orchestrator consults it before every cycle and
// the sync job listens on Events to trigger a cycle on reconnect.
type Connectivity interface {
	// IsOnline returns the last observed reachability state.
	IsOnline() bool

	// NetworkType returns the kind of network the device is currently on.
	NetworkType() config.NetworkType

	// Events returns a channel that receives the new state on every
	// online/offline transition.
	Events() <-chan bool
}
