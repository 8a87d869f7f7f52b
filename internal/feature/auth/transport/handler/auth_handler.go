// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bookstore_backend/internal/feature/auth/domain/entity"
	"bookstore_backend/internal/feature/auth/transport/http/dto"
	"bookstore_backend/internal/feature/auth/transport/middleware"
	"bookstore_backend/internal/feature/auth/usecase"
	"bookstore_backend/internal/platform/http/response"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Register は新規ユーザーを登録し、ユーザーとトークンを返します。
	Register(ctx context.Context, name, email, password string) (*entity.User, string, error)
	// Login はユーザーを認証し、成功時にユーザーとトークンを返します。
	Login(ctx context.Context, email, password string) (*entity.User, string, error)
}

// CookieTTL は発行するセッションCookieの有効期間です。
// 登録時とログイン時でトークンTTLと揃えます。
type CookieTTL struct {
	Register time.Duration
	Login    time.Duration
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
// AuthUsecaseインターフェースに依存し、JSONリクエスト/レスポンスを処理します。
type AuthHandler struct {
	auth         AuthUsecase
	cookieTTL    CookieTTL
	cookieSecure bool
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタで、外部からAuthUsecaseと設定を注入します。
func NewAuthHandler(auth AuthUsecase, cookieTTL CookieTTL, cookieSecure bool) *AuthHandler {
	return &AuthHandler{auth: auth, cookieTTL: cookieTTL, cookieSecure: cookieSecure}
}

// Register はユーザー登録APIエンドポイントを処理します。
// - リクエストJSONをRegisterReqにバインド
// - バリデーションエラー時は400を返却
// - メール重複時は409を返却
// - 成功時はセッションCookieを設定し201を返却（トークンはボディに含めない）
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, response.Error("validation failed"))
		return
	}

	user, signed, err := h.auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrEmailAlreadyExists) {
			slog.Warn("register conflict", "email", req.Email, "remote_addr", c.ClientIP())
			c.JSON(http.StatusConflict, response.Error("email already registered"))
			return
		}
		slog.Error("register failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, response.Error("registration failed"))
		return
	}

	middleware.SetTokenCookie(c, signed, int(h.cookieTTL.Register.Seconds()), h.cookieSecure)

	slog.Info("user registered", "user_id", user.ID, "email", user.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, response.OK("user registered successfully", dto.AuthRes{User: dto.NewUserRes(user)}))
}

// Login はユーザーログインAPIエンドポイントを処理します。
// - リクエストJSONをLoginReqにバインド
// - バリデーションエラー時は400を返却
// - 認証失敗時は401を返却（メール未登録とパスワード不一致は区別しない）
// - 成功時はセッションCookieを設定し200を返却
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, response.Error("validation failed"))
		return
	}

	user, signed, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			// ユーザー列挙攻撃を防止するため、失敗理由を公開しない
			slog.Warn("login failed", "email", req.Email, "remote_addr", c.ClientIP())
			c.JSON(http.StatusUnauthorized, response.Error("invalid email or password"))
			return
		}
		slog.Error("login error", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, response.Error("login failed"))
		return
	}

	middleware.SetTokenCookie(c, signed, int(h.cookieTTL.Login.Seconds()), h.cookieSecure)

	slog.Info("user login successful", "user_id", user.ID, "email", user.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, response.OK("login successful", dto.AuthRes{User: dto.NewUserRes(user)}))
}

// Logout はセッションCookieを破棄します。
func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.ClearTokenCookie(c)

	slog.Info("user logged out", "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, response.OK("logout successful", nil))
}

// Me は認証済みユーザー自身のプロフィールを返します。
// AuthRequiredミドルウェアが解決したユーザーをコンテキストから取得します。
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		// ミドルウェアを通らずに到達した場合のみ発生する
		c.JSON(http.StatusUnauthorized, response.Error("access denied"))
		return
	}

	c.JSON(http.StatusOK, response.OK("user profile retrieved", dto.NewProfileRes(user)))
}
