package dto

import (
	"bookstore_backend/internal/feature/books/domain/entity"
	"bookstore_backend/internal/feature/books/usecase"
)

// BookListRes is the paginated listing view of the catalog.
type BookListRes struct {
	Books      []entity.Book `json:"books"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalPages int           `json:"total_pages"`
}

// NewBookListRes maps a usecase page to the transport view.
func NewBookListRes(page *usecase.Page) BookListRes {
	return BookListRes{
		Books:      page.Books,
		Total:      page.Total,
		Page:       page.PageNumber,
		Limit:      page.Limit,
		TotalPages: page.TotalPages,
	}
}
