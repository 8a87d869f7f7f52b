// Package handler はユーザー一覧機能のHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bookstore_backend/internal/feature/users/domain/entity"
	"bookstore_backend/internal/feature/users/usecase"
	"bookstore_backend/internal/platform/http/response"
)

// UserUsecase defines the account listing operations the handler depends on.
type UserUsecase interface {
	List(ctx context.Context) ([]entity.User, error)
	Get(ctx context.Context, id uint) (*entity.User, error)
}

// UserHandler serves the read-only user endpoints.
type UserHandler struct {
	users UserUsecase
}

// NewUserHandler はUserHandlerを生成します。
func NewUserHandler(users UserUsecase) *UserHandler {
	return &UserHandler{users: users}
}

// List handles GET /users.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		slog.Error("failed to list users", "error", err)
		c.JSON(http.StatusInternalServerError, response.Error("failed to fetch users"))
		return
	}
	c.JSON(http.StatusOK, response.OK("users fetched successfully", users))
}

// Get handles GET /users/:id.
func (h *UserHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error("invalid user id"))
		return
	}

	user, err := h.users.Get(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, response.Error("user not found"))
			return
		}
		slog.Error("failed to fetch user", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, response.Error("failed to fetch user"))
		return
	}
	c.JSON(http.StatusOK, response.OK("user fetched successfully", user))
}
