// Package dto defines data transfer objects for the books feature's HTTP transport layer.
package dto

import "bookstore_backend/internal/feature/books/domain/entity"

// CreateBookReq represents the request body for creating a catalog entry.
type CreateBookReq struct {
	Title         string  `json:"title" binding:"required"`
	Author        string  `json:"author" binding:"required"`
	Description   string  `json:"description"`
	ISBN          string  `json:"isbn"`
	PublishedYear int     `json:"published_year" binding:"omitempty,min=1000"`
	Genre         string  `json:"genre"`
	Price         float64 `json:"price" binding:"omitempty,min=0"`
	Stock         int     `json:"stock" binding:"omitempty,min=0"`
}

// ToEntity converts the request into a book entity.
func (r CreateBookReq) ToEntity() *entity.Book {
	return &entity.Book{
		Title:         r.Title,
		Author:        r.Author,
		Description:   r.Description,
		ISBN:          r.ISBN,
		PublishedYear: r.PublishedYear,
		Genre:         r.Genre,
		Price:         r.Price,
		Stock:         r.Stock,
	}
}

// UpdateBookReq represents a partial update; absent fields are left unchanged.
type UpdateBookReq struct {
	Title         *string  `json:"title"`
	Author        *string  `json:"author"`
	Description   *string  `json:"description"`
	ISBN          *string  `json:"isbn"`
	PublishedYear *int     `json:"published_year" binding:"omitempty,min=1000"`
	Genre         *string  `json:"genre"`
	Price         *float64 `json:"price" binding:"omitempty,min=0"`
	Stock         *int     `json:"stock" binding:"omitempty,min=0"`
}

// ToUpdate converts the request into a partial update.
func (r UpdateBookReq) ToUpdate() entity.BookUpdate {
	return entity.BookUpdate{
		Title:         r.Title,
		Author:        r.Author,
		Description:   r.Description,
		ISBN:          r.ISBN,
		PublishedYear: r.PublishedYear,
		Genre:         r.Genre,
		Price:         r.Price,
		Stock:         r.Stock,
	}
}

// StockReq represents the body of a stock adjustment. Quantity is a signed
// increment, negative values reduce stock.
type StockReq struct {
	Quantity int `json:"quantity" binding:"required"`
}

// ListBooksQuery binds list filters and pagination from the query string.
type ListBooksQuery struct {
	Title         string   `form:"title"`
	Author        string   `form:"author"`
	Genre         string   `form:"genre"`
	MinPrice      *float64 `form:"min_price"`
	MaxPrice      *float64 `form:"max_price"`
	MinStock      *int     `form:"min_stock"`
	PublishedYear int      `form:"published_year"`
	Page          int      `form:"page"`
	Limit         int      `form:"limit"`
}
