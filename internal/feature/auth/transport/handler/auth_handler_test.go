package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookstore_backend/internal/feature/auth/domain/entity"
	"bookstore_backend/internal/feature/auth/transport/middleware"
	"bookstore_backend/internal/feature/auth/usecase"
)

// mockAuthUsecase is a mock implementation of the AuthUsecase interface.
type mockAuthUsecase struct {
	RegisterFunc func(ctx context.Context, name, email, password string) (*entity.User, string, error)
	LoginFunc    func(ctx context.Context, email, password string) (*entity.User, string, error)
}

func (m *mockAuthUsecase) Register(ctx context.Context, name, email, password string) (*entity.User, string, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, name, email, password)
	}
	return nil, "", errors.New("register failed")
}

func (m *mockAuthUsecase) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return nil, "", errors.New("login failed")
}

func newTestHandler(uc AuthUsecase) *AuthHandler {
	return NewAuthHandler(uc, CookieTTL{Register: time.Hour, Login: 24 * time.Hour}, false)
}

func postJSON(t *testing.T, router *gin.Engine, path string, body gin.H) *httptest.ResponseRecorder {
	t.Helper()

	b, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, path, bytes.NewBuffer(b))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Register(t *testing.T) {
	gin.SetMode(gin.TestMode)

	alice := &entity.User{ID: 1, Name: "Alice", Email: "alice@test.io", Password: "$2a$12$hash"}

	tests := []struct {
		name           string
		requestBody    gin.H
		mockFunc       func(ctx context.Context, name, email, password string) (*entity.User, string, error)
		expectedStatus int
		wantCookie     bool
	}{
		{
			name:        "success: user registration",
			requestBody: gin.H{"name": "Alice", "email": "alice@test.io", "password": "secret123"},
			mockFunc: func(ctx context.Context, name, email, password string) (*entity.User, string, error) {
				return alice, "signed-token", nil
			},
			expectedStatus: http.StatusCreated,
			wantCookie:     true,
		},
		{
			name:           "failure: missing name",
			requestBody:    gin.H{"email": "alice@test.io", "password": "secret123"},
			mockFunc:       nil, // Usecase is not called
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "failure: invalid email address",
			requestBody:    gin.H{"name": "Alice", "email": "invalid-email", "password": "secret123"},
			mockFunc:       nil, // Usecase is not called
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "failure: short password",
			requestBody:    gin.H{"name": "Alice", "email": "alice@test.io", "password": "short"},
			mockFunc:       nil, // Usecase is not called
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "failure: duplicate email",
			requestBody: gin.H{"name": "Alice", "email": "existing@test.io", "password": "secret123"},
			mockFunc: func(ctx context.Context, name, email, password string) (*entity.User, string, error) {
				return nil, "", usecase.ErrEmailAlreadyExists
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:        "failure: storage error",
			requestBody: gin.H{"name": "Alice", "email": "alice@test.io", "password": "secret123"},
			mockFunc: func(ctx context.Context, name, email, password string) (*entity.User, string, error) {
				return nil, "", errors.New("connection refused")
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockAuthUsecase{RegisterFunc: tt.mockFunc}
			handler := newTestHandler(mockUC)

			router := gin.New()
			router.POST("/register", handler.Register)

			w := postJSON(t, router, "/register", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)

			// パスワードがレスポンスに含まれないことを常に検証
			assert.NotContains(t, w.Body.String(), "password")
			assert.NotContains(t, w.Body.String(), "$2a$")

			setCookie := w.Header().Get("Set-Cookie")
			if tt.wantCookie {
				assert.Contains(t, setCookie, middleware.CookieName+"=signed-token")
				assert.Contains(t, setCookie, "HttpOnly")
				assert.Contains(t, setCookie, "SameSite=Strict")
			} else {
				assert.Empty(t, setCookie)
			}
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	gin.SetMode(gin.TestMode)

	alice := &entity.User{ID: 1, Name: "Alice", Email: "alice@test.io", Password: "$2a$12$hash"}

	tests := []struct {
		name           string
		requestBody    gin.H
		mockFunc       func(ctx context.Context, email, password string) (*entity.User, string, error)
		expectedStatus int
		wantCookie     bool
	}{
		{
			name:        "success: login",
			requestBody: gin.H{"email": "alice@test.io", "password": "secret123"},
			mockFunc: func(ctx context.Context, email, password string) (*entity.User, string, error) {
				return alice, "signed-token", nil
			},
			expectedStatus: http.StatusOK,
			wantCookie:     true,
		},
		{
			name:           "failure: invalid email address",
			requestBody:    gin.H{"email": "invalid", "password": "secret123"},
			mockFunc:       nil, // Usecase is not called
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "failure: bad credentials",
			requestBody: gin.H{"email": "alice@test.io", "password": "wrong-password"},
			mockFunc: func(ctx context.Context, email, password string) (*entity.User, string, error) {
				return nil, "", usecase.ErrInvalidCredentials
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:        "failure: storage error",
			requestBody: gin.H{"email": "alice@test.io", "password": "secret123"},
			mockFunc: func(ctx context.Context, email, password string) (*entity.User, string, error) {
				return nil, "", errors.New("connection refused")
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockAuthUsecase{LoginFunc: tt.mockFunc}
			handler := newTestHandler(mockUC)

			router := gin.New()
			router.POST("/login", handler.Login)

			w := postJSON(t, router, "/login", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.NotContains(t, w.Body.String(), "$2a$")

			setCookie := w.Header().Get("Set-Cookie")
			if tt.wantCookie {
				assert.Contains(t, setCookie, middleware.CookieName+"=signed-token")
				assert.Contains(t, setCookie, "HttpOnly")
			} else {
				assert.Empty(t, setCookie)
			}
		})
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	gin.SetMode(gin.TestMode)

	handler := newTestHandler(&mockAuthUsecase{})

	router := gin.New()
	router.POST("/logout", handler.Logout)

	req, err := http.NewRequest(http.MethodPost, "/logout", nil)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	setCookie := w.Header().Get("Set-Cookie")
	assert.True(t, strings.Contains(setCookie, middleware.CookieName+"="), "expected cookie header, got %q", setCookie)
	assert.Contains(t, setCookie, "Max-Age=0", "expected cookie to be expired")
}

func TestAuthHandler_Me(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("authenticated user", func(t *testing.T) {
		handler := newTestHandler(&mockAuthUsecase{})

		router := gin.New()
		router.GET("/me", func(c *gin.Context) {
			// AuthRequiredの代わりに解決済みユーザーを直接注入
			c.Set(middleware.ContextUserKey, &entity.User{ID: 7, Name: "Alice", Email: "alice@test.io"})
		}, handler.Me)

		req, err := http.NewRequest(http.MethodGet, "/me", nil)
		require.NoError(t, err)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Success bool `json:"success"`
			Data    struct {
				ID    uint   `json:"id"`
				Name  string `json:"name"`
				Email string `json:"email"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.True(t, body.Success)
		assert.Equal(t, uint(7), body.Data.ID)
		assert.Equal(t, "Alice", body.Data.Name)
		assert.Equal(t, "alice@test.io", body.Data.Email)
	})

	t.Run("missing context user", func(t *testing.T) {
		handler := newTestHandler(&mockAuthUsecase{})

		router := gin.New()
		router.GET("/me", handler.Me)

		req, err := http.NewRequest(http.MethodGet, "/me", nil)
		require.NoError(t, err)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
