// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sethvargo/go-retry"

	"github.com/savichev/memodeck/models"
)

// retryBase is the first fibonacci backoff step between retry attempts.
const retryBase = 500 * time.Millisecond

type HTTPClientConfig struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
}

type httpSyncTransport struct {
	client     *resty.Client
	maxRetries uint64

	mu    sync.RWMutex
	token string
}

func NewHTTPSyncTransport(cfg HTTPClientConfig) SyncTransport {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout)

	return &httpSyncTransport{client: cli, maxRetries: uint64(cfg.MaxRetries)}
}

func (h *httpSyncTransport) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpSyncTransport) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpSyncTransport) Register(ctx context.Context, user models.User) (models.User, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		Post("/api/auth/register")
	if err != nil {
		return models.User{}, fmt.Errorf("register request: %w: %w", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	token, err := parseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.User{}, fmt.Errorf("register parse bearer token: %w", err)
	}
	userID, err := parseUserIDFromJWT(token)
	if err != nil {
		return models.User{}, fmt.Errorf("register parse user id: %w", err)
	}

	h.SetToken(token)
	return models.User{UserID: userID, Login: user.Login, Name: user.Name}, nil
}

func (h *httpSyncTransport) Login(ctx context.Context, user models.User) (models.Token, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		Post("/api/auth/login")
	if err != nil {
		return models.Token{}, fmt.Errorf("login request: %w: %w", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Token{}, err
	}

	token, err := parseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.Token{}, fmt.Errorf("login parse bearer token: %w", err)
	}
	userID, err := parseUserIDFromJWT(token)
	if err != nil {
		return models.Token{}, fmt.Errorf("login parse user id: %w", err)
	}

	h.SetToken(token)
	return models.Token{SignedString: token, UserID: userID}, nil
}

func (h *httpSyncTransport) PushSync(ctx context.Context, req models.SyncRequest) (models.SyncResponse, error) {
	var out models.SyncResponse

	err := h.withRetry(ctx, func(ctx context.Context) error {
		resp, err := h.authedRequest(ctx).
			SetHeader("Content-Type", "application/json").
			SetBody(req).
			Post("/api/sync")
		if err != nil {
			return fmt.Errorf("push request: %w: %w", ErrTransport, err)
		}
		if err = mapHTTPError(resp); err != nil {
			return err
		}

		var sr models.SyncResponse
		if err = json.Unmarshal(resp.Body(), &sr); err != nil {
			return fmt.Errorf("decode push response: %w", err)
		}
		out = sr
		return nil
	})

	return out, err
}

func (h *httpSyncTransport) PullChanges(ctx context.Context, since *time.Time) (models.SyncChanges, error) {
	var out models.SyncChanges

	err := h.withRetry(ctx, func(ctx context.Context) error {
		req := h.authedRequest(ctx)
		if since != nil {
			req.SetQueryParam("since", since.UTC().Format(time.RFC3339Nano))
		}

		resp, err := req.Get("/api/sync/changes")
		if err != nil {
			return fmt.Errorf("pull request: %w: %w", ErrTransport, err)
		}
		if err = mapHTTPError(resp); err != nil {
			return err
		}

		var changes models.SyncChanges
		if err = json.Unmarshal(resp.Body(), &changes); err != nil {
			return fmt.Errorf("decode pull response: %w", err)
		}
		out = changes
		return nil
	})

	return out, err
}

func (h *httpSyncTransport) Ping(ctx context.Context) error {
	resp, err := h.client.R().SetContext(ctx).Get("/ping")
	if err != nil {
		return fmt.Errorf("ping request: %w: %w", ErrTransport, err)
	}
	return mapHTTPError(resp)
}

// withRetry runs fn with fibonacci backoff, retrying only transport-level
// failures up to the configured attempt limit.
func (h *httpSyncTransport) withRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	backoff := retry.WithMaxRetries(h.maxRetries, retry.NewFibonacci(retryBase))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := fn(ctx)
		if err != nil && Retryable(err) {
			return retry.RetryableError(err)
		}
		return err
	})
}

func (h *httpSyncTransport) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

func parseBearerToken(value string) (string, error) {
	parts := strings.Split(strings.TrimSpace(value), " ")
	if len(parts) != 2 || parts[1] == "" {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}

func parseUserIDFromJWT(tokenString string) (int64, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("invalid token claims")
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return 0, err
	}

	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(resp.StatusCode())
	}

	switch resp.StatusCode() {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", ErrBadRequest, body)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, body)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, body)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrConflict, body)
	default:
		if resp.StatusCode() >= http.StatusInternalServerError {
			return fmt.Errorf("%w: http %d: %s", ErrTransport, resp.StatusCode(), body)
		}
		return fmt.Errorf("http %d: %s", resp.StatusCode(), body)
	}
}
