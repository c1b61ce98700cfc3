// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/savichev/memodeck/internal/logger"
	"github.com/savichev/memodeck/internal/mock"
	"github.com/savichev/memodeck/internal/service"
	"github.com/savichev/memodeck/internal/store"
	"github.com/savichev/memodeck/models"
)

func newTestAuthHandler(t *testing.T) (*Handler, *mock.MockAuthService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	authSvc := mock.NewMockAuthService(ctrl)
	h := NewHandler(&service.Services{AuthService: authSvc}, logger.Nop())
	return h, authSvc
}

// ─────────────────────────────────────────────
// POST /api/auth/register
// ─────────────────────────────────────────────

func TestRegister_ReturnsBearerToken(t *testing.T) {
	h, authSvc := newTestAuthHandler(t)

	registered := models.User{UserID: 7, Login: "alice"}
	authSvc.EXPECT().
		RegisterUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, user models.User) (models.User, error) {
			assert.Equal(t, "alice", user.Login)
			assert.Equal(t, "secret", user.Password)
			return registered, nil
		})
	authSvc.EXPECT().
		CreateToken(gomock.Any(), registered).
		Return(models.Token{SignedString: "signed-jwt", UserID: 7}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
		bytes.NewBufferString(`{"login":"alice","password":"secret"}`))
	rec := httptest.NewRecorder()

	h.register(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Bearer signed-jwt", rec.Header().Get("Authorization"))
}

func TestRegister_InvalidJSON(t *testing.T) {
	h, _ := newTestAuthHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader("{broken"))
	rec := httptest.NewRecorder()

	h.register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegister_LoginTaken(t *testing.T) {
	h, authSvc := newTestAuthHandler(t)

	authSvc.EXPECT().
		RegisterUser(gomock.Any(), gomock.Any()).
		Return(models.User{}, store.ErrLoginAlreadyExists)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
		bytes.NewBufferString(`{"login":"alice","password":"secret"}`))
	rec := httptest.NewRecorder()

	h.register(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegister_MissingCredentials(t *testing.T) {
	h, authSvc := newTestAuthHandler(t)

	authSvc.EXPECT().
		RegisterUser(gomock.Any(), gomock.Any()).
		Return(models.User{}, service.ErrInvalidDataProvided)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewBufferString(`{}`))
	rec := httptest.NewRecorder()

	h.register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ─────────────────────────────────────────────
// POST /api/auth/login
// ─────────────────────────────────────────────

func TestLogin_ReturnsBearerToken(t *testing.T) {
	h, authSvc := newTestAuthHandler(t)

	found := models.User{UserID: 12, Login: "alice"}
	authSvc.EXPECT().Login(gomock.Any(), gomock.Any()).Return(found, nil)
	authSvc.EXPECT().CreateToken(gomock.Any(), found).
		Return(models.Token{SignedString: "signed-jwt", UserID: 12}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		bytes.NewBufferString(`{"login":"alice","password":"secret"}`))
	rec := httptest.NewRecorder()

	h.login(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Bearer signed-jwt", rec.Header().Get("Authorization"))
}

func TestLogin_WrongPassword(t *testing.T) {
	h, authSvc := newTestAuthHandler(t)

	authSvc.EXPECT().Login(gomock.Any(), gomock.Any()).
		Return(models.User{}, service.ErrWrongPassword)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		bytes.NewBufferString(`{"login":"alice","password":"nope"}`))
	rec := httptest.NewRecorder()

	h.login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin_UnknownUser(t *testing.T) {
	h, authSvc := newTestAuthHandler(t)

	authSvc.EXPECT().Login(gomock.Any(), gomock.Any()).
		Return(models.User{}, store.ErrNoUserWasFound)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		bytes.NewBufferString(`{"login":"ghost","password":"secret"}`))
	rec := httptest.NewRecorder()

	h.login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin_TokenCreationFailure(t *testing.T) {
	h, authSvc := newTestAuthHandler(t)

	authSvc.EXPECT().Login(gomock.Any(), gomock.Any()).Return(models.User{UserID: 1}, nil)
	authSvc.EXPECT().CreateToken(gomock.Any(), gomock.Any()).
		Return(models.Token{}, assert.AnError)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		bytes.NewBufferString(`{"login":"alice","password":"secret"}`))
	rec := httptest.NewRecorder()

	h.login(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
