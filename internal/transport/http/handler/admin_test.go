package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/onboarding-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAdminService struct{ mock.Mock }

func (m *mockAdminService) Login(ctx context.Context, req domain.AdminLoginRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func TestAdminLoginHandler_OK(t *testing.T) {
	svc := &mockAdminService{}
	svc.On("Login", mock.Anything, mock.Anything).Return("jwt-token", nil)

	rec := postJSON(t, NewAdminHandler(svc).Login, "/v1/admin/login", map[string]string{
		"email": "ops@x.com", "password": "s3cret",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	var env TokenEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "jwt-token", env.Bearer)
}

func TestAdminLoginHandler_BadCredentials(t *testing.T) {
	svc := &mockAdminService{}
	svc.On("Login", mock.Anything, mock.Anything).Return("", domain.ErrUnauthorized)

	rec := postJSON(t, NewAdminHandler(svc).Login, "/v1/admin/login", map[string]string{
		"email": "ops@x.com", "password": "wrong",
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminLoginHandler_MissingFields(t *testing.T) {
	svc := &mockAdminService{}

	rec := postJSON(t, NewAdminHandler(svc).Login, "/v1/admin/login", map[string]string{
		"email": "ops@x.com",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
}
