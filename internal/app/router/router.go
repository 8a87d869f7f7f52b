// Package router はHTTPルーティングの組み立てを担当します。
package router

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"bookstore_backend/internal/app/config"
	authhandler "bookstore_backend/internal/feature/auth/transport/handler"
	"bookstore_backend/internal/feature/auth/transport/middleware"
	bookhandler "bookstore_backend/internal/feature/books/transport/handler"
	userhandler "bookstore_backend/internal/feature/users/transport/handler"
	platformhandler "bookstore_backend/internal/platform/http/handler"
)

// NewRouter wires every endpoint onto a gin engine.
func NewRouter(
	cfg *config.Config,
	authH *authhandler.AuthHandler,
	userH *userhandler.UserHandler,
	bookH *bookhandler.BookHandler,
	verifier middleware.Verifier,
) *gin.Engine {
	r := gin.Default()

	// クッキー認証なのでAllowCredentialsが必須
	r.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.CORSAllowedOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 導通確認用
	r.GET("/health", platformhandler.Health)
	r.HEAD("/health", platformhandler.Health)
	r.OPTIONS("/health", platformhandler.Health)

	v1 := r.Group("/api/v1")

	// 認証不要
	auth := v1.Group("/auth")
	auth.POST("/register", authH.Register)
	auth.POST("/login", authH.Login)
	auth.POST("/logout", authH.Logout)
	// 認証必須
	auth.GET("/me", middleware.AuthRequired(verifier), authH.Me)

	users := v1.Group("/users")
	users.GET("", userH.List)
	users.GET("/:id", userH.Get)

	books := v1.Group("/books")
	books.POST("", bookH.Create)
	books.GET("", bookH.List)
	// 固定パスは :id より先に登録する
	books.GET("/search", bookH.Search)
	books.GET("/genre/:genre", bookH.ListByGenre)
	books.GET("/author/:author", bookH.ListByAuthor)
	books.GET("/:id", bookH.Get)
	books.PUT("/:id", bookH.Update)
	books.DELETE("/:id", bookH.Delete)
	books.PATCH("/:id/stock", bookH.AdjustStock)

	return r
}
