// Package handler はbooksフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"bookstore_backend/internal/feature/books/domain/entity"
	"bookstore_backend/internal/feature/books/transport/http/dto"
	"bookstore_backend/internal/feature/books/usecase"
	"bookstore_backend/internal/platform/http/response"
)

// BookUsecase は書籍カタログ操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type BookUsecase interface {
	Create(ctx context.Context, book *entity.Book) error
	List(ctx context.Context, filter usecase.Filter, page, limit int) (*usecase.Page, error)
	Get(ctx context.Context, id string) (*entity.Book, error)
	Update(ctx context.Context, id string, update entity.BookUpdate) (*entity.Book, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, query string) ([]entity.Book, error)
	ListByGenre(ctx context.Context, genre string) ([]entity.Book, error)
	ListByAuthor(ctx context.Context, author string) ([]entity.Book, error)
	AdjustStock(ctx context.Context, id string, quantity int) (*entity.Book, error)
}

// BookHandler は書籍カタログのHTTPリクエストを処理します。
type BookHandler struct {
	books BookUsecase
}

// NewBookHandler はBookHandlerの新しいインスタンスを生成します。
func NewBookHandler(books BookUsecase) *BookHandler {
	return &BookHandler{books: books}
}

// Create は書籍登録APIエンドポイントを処理します。
func (h *BookHandler) Create(c *gin.Context) {
	var req dto.CreateBookReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error("validation failed"))
		return
	}

	book := req.ToEntity()
	if err := h.books.Create(c.Request.Context(), book); err != nil {
		if errors.Is(err, usecase.ErrDuplicateISBN) {
			c.JSON(http.StatusConflict, response.Error("isbn already exists"))
			return
		}
		slog.Error("book create failed", "error", err)
		c.JSON(http.StatusInternalServerError, response.Error("failed to create book"))
		return
	}

	c.JSON(http.StatusCreated, response.OK("book created successfully", book))
}

// List は絞り込み・ページネーション付きの書籍一覧を返します。
func (h *BookHandler) List(c *gin.Context) {
	var q dto.ListBooksQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, response.Error("invalid query parameters"))
		return
	}

	filter := usecase.Filter{
		Title:         q.Title,
		Author:        q.Author,
		Genre:         q.Genre,
		MinPrice:      q.MinPrice,
		MaxPrice:      q.MaxPrice,
		MinStock:      q.MinStock,
		PublishedYear: q.PublishedYear,
	}

	page, err := h.books.List(c.Request.Context(), filter, q.Page, q.Limit)
	if err != nil {
		slog.Error("book list failed", "error", err)
		c.JSON(http.StatusInternalServerError, response.Error("failed to list books"))
		return
	}

	c.JSON(http.StatusOK, response.OK("books retrieved", dto.NewBookListRes(page)))
}

// Get はIDで書籍を返します。
func (h *BookHandler) Get(c *gin.Context) {
	book, err := h.books.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.OK("book retrieved", book))
}

// Update は書籍の部分更新を処理します。
func (h *BookHandler) Update(c *gin.Context) {
	var req dto.UpdateBookReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error("validation failed"))
		return
	}

	book, err := h.books.Update(c.Request.Context(), c.Param("id"), req.ToUpdate())
	if err != nil {
		if errors.Is(err, usecase.ErrDuplicateISBN) {
			c.JSON(http.StatusConflict, response.Error("isbn already exists"))
			return
		}
		h.renderLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.OK("book updated successfully", book))
}

// Delete は書籍を削除します。
func (h *BookHandler) Delete(c *gin.Context) {
	if err := h.books.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.renderLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.OK("book deleted successfully", nil))
}

// Search はフリーテキスト検索を処理します。
func (h *BookHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, response.Error("query parameter q is required"))
		return
	}

	books, err := h.books.Search(c.Request.Context(), query)
	if err != nil {
		slog.Error("book search failed", "error", err, "query", query)
		c.JSON(http.StatusInternalServerError, response.Error("search failed"))
		return
	}

	c.JSON(http.StatusOK, response.OK("search results", books))
}

// ListByGenre はジャンル別の書籍一覧を返します。
func (h *BookHandler) ListByGenre(c *gin.Context) {
	books, err := h.books.ListByGenre(c.Request.Context(), c.Param("genre"))
	if err != nil {
		slog.Error("book genre listing failed", "error", err)
		c.JSON(http.StatusInternalServerError, response.Error("failed to list books"))
		return
	}

	c.JSON(http.StatusOK, response.OK("books retrieved", books))
}

// ListByAuthor は著者別の書籍一覧を返します。
func (h *BookHandler) ListByAuthor(c *gin.Context) {
	books, err := h.books.ListByAuthor(c.Request.Context(), c.Param("author"))
	if err != nil {
		slog.Error("book author listing failed", "error", err)
		c.JSON(http.StatusInternalServerError, response.Error("failed to list books"))
		return
	}

	c.JSON(http.StatusOK, response.OK("books retrieved", books))
}

// AdjustStock は在庫数の増減を処理します。
func (h *BookHandler) AdjustStock(c *gin.Context) {
	var req dto.StockReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error("validation failed"))
		return
	}

	book, err := h.books.AdjustStock(c.Request.Context(), c.Param("id"), req.Quantity)
	if err != nil {
		h.renderLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.OK("stock updated successfully", book))
}

// renderLookupError はID起点の操作で共通のエラーレスポンスを返します。
func (h *BookHandler) renderLookupError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrInvalidBookID):
		c.JSON(http.StatusBadRequest, response.Error("invalid book id"))
	case errors.Is(err, usecase.ErrBookNotFound):
		c.JSON(http.StatusNotFound, response.Error("book not found"))
	default:
		slog.Error("book operation failed", "error", err)
		c.JSON(http.StatusInternalServerError, response.Error("operation failed"))
	}
}
