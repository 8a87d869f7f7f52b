package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"bookstore_backend/internal/app/config"
	authadapters "bookstore_backend/internal/feature/auth/adapters"
	authentity "bookstore_backend/internal/feature/auth/domain/entity"
	authhandler "bookstore_backend/internal/feature/auth/transport/handler"
	authusecase "bookstore_backend/internal/feature/auth/usecase"
	bookentity "bookstore_backend/internal/feature/books/domain/entity"
	bookhandler "bookstore_backend/internal/feature/books/transport/handler"
	bookusecase "bookstore_backend/internal/feature/books/usecase"
	useradapters "bookstore_backend/internal/feature/users/adapters"
	userhandler "bookstore_backend/internal/feature/users/transport/handler"
	userusecase "bookstore_backend/internal/feature/users/usecase"
	"bookstore_backend/internal/platform/password"
	"bookstore_backend/internal/platform/token"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

// stubBookRepo は配線確認用の空リポジトリです。
type stubBookRepo struct{}

func (stubBookRepo) Insert(ctx context.Context, book *bookentity.Book) error { return nil }
func (stubBookRepo) Find(ctx context.Context, filter bookusecase.Filter, offset, limit int) ([]bookentity.Book, int64, error) {
	return nil, 0, nil
}
func (stubBookRepo) FindByID(ctx context.Context, id string) (*bookentity.Book, error) {
	return nil, bookusecase.ErrBookNotFound
}
func (stubBookRepo) Update(ctx context.Context, id string, update bookentity.BookUpdate) (*bookentity.Book, error) {
	return nil, bookusecase.ErrBookNotFound
}
func (stubBookRepo) Delete(ctx context.Context, id string) error { return bookusecase.ErrBookNotFound }
func (stubBookRepo) Search(ctx context.Context, query string) ([]bookentity.Book, error) {
	return nil, nil
}
func (stubBookRepo) FindByGenre(ctx context.Context, genre string) ([]bookentity.Book, error) {
	return nil, nil
}
func (stubBookRepo) FindByAuthor(ctx context.Context, author string) ([]bookentity.Book, error) {
	return nil, nil
}
func (stubBookRepo) IncrementStock(ctx context.Context, id string, quantity int) (*bookentity.Book, error) {
	return nil, bookusecase.ErrBookNotFound
}

// newTestServer assembles the full stack over an in-memory SQLite database.
func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&authentity.User{}))

	cfg := &config.Config{
		Port:               "8080",
		CORSAllowedOrigins: "http://localhost:5173",
		JWTSecret:          "router-test-secret",
		RegisterTokenTTL:   time.Hour,
		LoginTokenTTL:      24 * time.Hour,
	}

	codec := token.NewCodec(cfg.JWTSecret)
	hasher := password.NewHasher()
	userRepo := authadapters.NewUserMySQL(db)
	authUC := authusecase.NewAuthUsecase(userRepo, codec, hasher, cfg.RegisterTokenTTL, cfg.LoginTokenTTL)
	authH := authhandler.NewAuthHandler(authUC, authhandler.CookieTTL{
		Register: cfg.RegisterTokenTTL,
		Login:    cfg.LoginTokenTTL,
	}, cfg.CookieSecure)

	userH := userhandler.NewUserHandler(userusecase.NewUserUsecase(useradapters.NewUserGorm(db)))
	bookH := bookhandler.NewBookHandler(bookusecase.NewBookUsecase(stubBookRepo{}))

	return NewRouter(cfg, authH, userH, bookH, authUC)
}

func doJSON(r *gin.Engine, method, path, body string, cookie string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	r.ServeHTTP(w, req)
	return w
}

// sessionCookie extracts the token cookie pair from a Set-Cookie header.
func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	for _, sc := range w.Result().Header.Values("Set-Cookie") {
		if strings.HasPrefix(sc, "token=") {
			return strings.SplitN(sc, ";", 2)[0]
		}
	}
	t.Fatal("no token cookie in response")
	return ""
}

func TestRouter_RegisterThenMe(t *testing.T) {
	r := newTestServer(t)

	w := doJSON(r, http.MethodPost, "/api/v1/auth/register",
		`{"name":"Alice","email":"alice@example.com","password":"password123"}`, "")
	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, w.Body.String(), "password")
	assert.NotContains(t, w.Body.String(), "$2a$")

	cookie := sessionCookie(t, w)

	me := doJSON(r, http.MethodGet, "/api/v1/auth/me", "", cookie)
	require.Equal(t, http.StatusOK, me.Code)
	assert.Contains(t, me.Body.String(), "alice@example.com")
	assert.NotContains(t, me.Body.String(), "password")
}

func TestRouter_RegisterThenLogin(t *testing.T) {
	r := newTestServer(t)

	w := doJSON(r, http.MethodPost, "/api/v1/auth/register",
		`{"name":"Bob","email":"bob@example.com","password":"password123"}`, "")
	require.Equal(t, http.StatusCreated, w.Code)

	login := doJSON(r, http.MethodPost, "/api/v1/auth/login",
		`{"email":"bob@example.com","password":"password123"}`, "")
	require.Equal(t, http.StatusOK, login.Code)

	cookie := sessionCookie(t, login)
	me := doJSON(r, http.MethodGet, "/api/v1/auth/me", "", cookie)
	require.Equal(t, http.StatusOK, me.Code)
	assert.Contains(t, me.Body.String(), "bob@example.com")
}

func TestRouter_LoginWrongPassword(t *testing.T) {
	r := newTestServer(t)

	doJSON(r, http.MethodPost, "/api/v1/auth/register",
		`{"name":"Carol","email":"carol@example.com","password":"password123"}`, "")

	login := doJSON(r, http.MethodPost, "/api/v1/auth/login",
		`{"email":"carol@example.com","password":"wrong-password"}`, "")
	assert.Equal(t, http.StatusUnauthorized, login.Code)
}

func TestRouter_DuplicateRegister(t *testing.T) {
	r := newTestServer(t)

	first := doJSON(r, http.MethodPost, "/api/v1/auth/register",
		`{"name":"Dave","email":"dave@example.com","password":"password123"}`, "")
	require.Equal(t, http.StatusCreated, first.Code)

	second := doJSON(r, http.MethodPost, "/api/v1/auth/register",
		`{"name":"Dave Again","email":"dave@example.com","password":"password456"}`, "")
	assert.Equal(t, http.StatusConflict, second.Code)
}

func TestRouter_MeWithoutCredentials(t *testing.T) {
	r := newTestServer(t)

	w := doJSON(r, http.MethodGet, "/api/v1/auth/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "access denied")
}

func TestRouter_MeWithGarbageCookie(t *testing.T) {
	r := newTestServer(t)

	w := doJSON(r, http.MethodGet, "/api/v1/auth/me", "", "token=not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "access denied")

	// Invalid cookie-sourced token gets the cookie cleared
	cleared := false
	for _, sc := range w.Result().Header.Values("Set-Cookie") {
		if strings.HasPrefix(sc, "token=") && strings.Contains(sc, "Max-Age=0") {
			cleared = true
		}
	}
	assert.True(t, cleared, "expected session cookie to be cleared")
}

func TestRouter_Logout(t *testing.T) {
	r := newTestServer(t)

	w := doJSON(r, http.MethodPost, "/api/v1/auth/logout", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	cleared := false
	for _, sc := range w.Result().Header.Values("Set-Cookie") {
		if strings.HasPrefix(sc, "token=") && strings.Contains(sc, "Max-Age=0") {
			cleared = true
		}
	}
	assert.True(t, cleared, "expected session cookie to be cleared")
}

func TestRouter_UsersListHidesPasswords(t *testing.T) {
	r := newTestServer(t)

	doJSON(r, http.MethodPost, "/api/v1/auth/register",
		`{"name":"Eve","email":"eve@example.com","password":"password123"}`, "")

	w := doJSON(r, http.MethodGet, "/api/v1/users", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "eve@example.com")
	assert.NotContains(t, w.Body.String(), "password")
	assert.NotContains(t, w.Body.String(), "$2a$")
}

func TestRouter_HealthIsPublic(t *testing.T) {
	r := newTestServer(t)

	w := doJSON(r, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}

func TestRouter_BookRoutesWired(t *testing.T) {
	r := newTestServer(t)

	list := doJSON(r, http.MethodGet, "/api/v1/books", "", "")
	assert.Equal(t, http.StatusOK, list.Code)

	missing := doJSON(r, http.MethodGet, "/api/v1/books/64f000000000000000000001", "", "")
	assert.Equal(t, http.StatusNotFound, missing.Code)
}
