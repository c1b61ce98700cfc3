package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/savichev/memodeck/internal/logger"
	"github.com/savichev/memodeck/internal/service"
)

// ─────────────────────────────────────────────
// NewHandler
// ─────────────────────────────────────────────

func TestNewHandler_ReturnsNonNil(t *testing.T) {
	h := NewHandler(&service.Services{}, logger.Nop())

	require.NotNil(t, h)
}

func TestNewHandler_StoresServices(t *testing.T) {
	svc := &service.Services{}
	h := NewHandler(svc, logger.Nop())

	assert.Equal(t, svc, h.services)
}

// ─────────────────────────────────────────────
// Init — route registration
// ─────────────────────────────────────────────

func TestInit_ReturnsRouter(t *testing.T) {
	router := NewHandler(&service.Services{}, logger.Nop()).Init()

	require.NotNil(t, router)
}

// routeCase describes a single expected route.
type routeCase struct {
	method string
	path   string
}

// expectedRoutes lists every route that Init() must register.
var expectedRoutes = []routeCase{
	// auth
	{http.MethodPost, "/api/auth/register"},
	{http.MethodPost, "/api/auth/login"},
	// sync (auth middleware will return 401, not 404/405)
	{http.MethodPost, "/api/sync"},
	{http.MethodGet, "/api/sync/changes"},
	// health
	{http.MethodGet, "/ping"},
}

func TestInit_RegistersAllRoutes(t *testing.T) {
	router := NewHandler(&service.Services{}, logger.Nop()).Init()

	for _, tc := range expectedRoutes {
		tc := tc
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.NotEqual(t, http.StatusNotFound, rec.Code, "route not registered")
			assert.NotEqual(t, http.StatusMethodNotAllowed, rec.Code, "wrong method registered")
		})
	}
}

func TestPing_ReturnsOK(t *testing.T) {
	router := NewHandler(&service.Services{}, logger.Nop()).Init()

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
