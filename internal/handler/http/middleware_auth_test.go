package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/savichev/memodeck/internal/logger"
	"github.com/savichev/memodeck/internal/mock"
	"github.com/savichev/memodeck/internal/service"
	"github.com/savichev/memodeck/internal/utils"
	"github.com/savichev/memodeck/models"
)

func newAuthMiddlewareHandler(t *testing.T) (*Handler, *mock.MockAuthService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	authSvc := mock.NewMockAuthService(ctrl)
	h := NewHandler(&service.Services{AuthService: authSvc}, logger.Nop())
	return h, authSvc
}

func TestAuthMiddleware_ValidTokenStoresUserID(t *testing.T) {
	h, authSvc := newAuthMiddlewareHandler(t)

	authSvc.EXPECT().
		ParseToken(gomock.Any(), "valid-token").
		Return(models.Token{UserID: 42}, nil)

	var gotUserID int64
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, found := utils.GetUserIDFromContext(r.Context())
		require.True(t, found)
		gotUserID = userID
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/sync/changes", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()

	h.auth(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(42), gotUserID)
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	h, _ := newAuthMiddlewareHandler(t)

	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next handler must not be reached")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/sync/changes", nil)
	rec := httptest.NewRecorder()

	h.auth(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	h, _ := newAuthMiddlewareHandler(t)

	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next handler must not be reached")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/sync/changes", nil)
	req.Header.Set("Authorization", "Bearer")
	rec := httptest.NewRecorder()

	h.auth(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	h, authSvc := newAuthMiddlewareHandler(t)

	authSvc.EXPECT().
		ParseToken(gomock.Any(), "expired-token").
		Return(models.Token{}, service.ErrTokenIsExpiredOrInvalid)

	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next handler must not be reached")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/sync/changes", nil)
	req.Header.Set("Authorization", "Bearer expired-token")
	rec := httptest.NewRecorder()

	h.auth(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetTokenFromAuthHeader(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{name: "valid bearer", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "missing token part", header: "Bearer", wantErr: ErrInvalidAuthorizationHeader},
		{name: "empty token value", header: "Bearer ", wantErr: ErrEmptyToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := getTokenFromAuthHeader(tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
