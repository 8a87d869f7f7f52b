// Package usecase は書籍カタログのビジネスロジックを実装します。
package usecase

import (
	"context"

	"bookstore_backend/internal/feature/books/domain/entity"
)

const (
	// defaultPage は省略時のページ番号です。
	defaultPage = 1
	// defaultLimit は省略時の1ページあたりの件数です。
	defaultLimit = 10
	// maxLimit は1ページあたりの件数の上限です。
	maxLimit = 100
)

// Filter は書籍一覧の動的絞り込み条件です。ゼロ値のフィールドは無視されます。
// Title・Author・Genreは大文字小文字を区別しない部分一致です。
type Filter struct {
	Title         string
	Author        string
	Genre         string
	MinPrice      *float64
	MaxPrice      *float64
	MinStock      *int
	PublishedYear int
}

// Page はページネーション結果です。
type Page struct {
	Books      []entity.Book
	Total      int64
	PageNumber int
	Limit      int
	TotalPages int
}

// BookRepository は書籍エンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type BookRepository interface {
	// Insert は新しい書籍を永続化します。ISBNが既に存在する場合、ErrDuplicateISBNを返します。
	Insert(ctx context.Context, book *entity.Book) error

	// Find は絞り込み条件に一致する書籍を新しい順に取得し、総件数も返します。
	Find(ctx context.Context, filter Filter, offset, limit int) ([]entity.Book, int64, error)

	// FindByID はIDで書籍を取得します。存在しない場合、ErrBookNotFoundを返します。
	FindByID(ctx context.Context, id string) (*entity.Book, error)

	// Update は部分更新を適用し、更新後の書籍を返します。
	Update(ctx context.Context, id string, update entity.BookUpdate) (*entity.Book, error)

	// Delete は書籍を削除します。存在しない場合、ErrBookNotFoundを返します。
	Delete(ctx context.Context, id string) error

	// Search はタイトル・著者・説明・ジャンルを横断して部分一致検索します。
	Search(ctx context.Context, query string) ([]entity.Book, error)

	// FindByGenre はジャンルに部分一致する書籍を新しい順に返します。
	FindByGenre(ctx context.Context, genre string) ([]entity.Book, error)

	// FindByAuthor は著者に部分一致する書籍を新しい順に返します。
	FindByAuthor(ctx context.Context, author string) ([]entity.Book, error)

	// IncrementStock は在庫数を符号付きで増減し、更新後の書籍を返します。
	IncrementStock(ctx context.Context, id string, quantity int) (*entity.Book, error)
}

// BookUsecase は書籍カタログのビジネスロジックを実装します。
type BookUsecase struct {
	books BookRepository
}

// NewBookUsecase はBookUsecaseの新しいインスタンスを生成します。
func NewBookUsecase(books BookRepository) *BookUsecase {
	return &BookUsecase{books: books}
}

// Create は新しい書籍をカタログに追加します。
func (u *BookUsecase) Create(ctx context.Context, book *entity.Book) error {
	return u.books.Insert(ctx, book)
}

// List は絞り込み条件とページネーションを適用して書籍一覧を返します。
// page・limitが範囲外の場合はデフォルト値に丸めます。
func (u *BookUsecase) List(ctx context.Context, filter Filter, page, limit int) (*Page, error) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	offset := (page - 1) * limit
	books, total, err := u.books.Find(ctx, filter, offset, limit)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &Page{
		Books:      books,
		Total:      total,
		PageNumber: page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// Get はIDで書籍を取得します。
func (u *BookUsecase) Get(ctx context.Context, id string) (*entity.Book, error) {
	return u.books.FindByID(ctx, id)
}

// Update は書籍の部分更新を適用し、更新後の書籍を返します。
func (u *BookUsecase) Update(ctx context.Context, id string, update entity.BookUpdate) (*entity.Book, error) {
	return u.books.Update(ctx, id, update)
}

// Delete は書籍をカタログから削除します。
func (u *BookUsecase) Delete(ctx context.Context, id string) error {
	return u.books.Delete(ctx, id)
}

// Search はフリーテキストで書籍を検索します。
func (u *BookUsecase) Search(ctx context.Context, query string) ([]entity.Book, error) {
	return u.books.Search(ctx, query)
}

// ListByGenre はジャンルで書籍を取得します。
func (u *BookUsecase) ListByGenre(ctx context.Context, genre string) ([]entity.Book, error) {
	return u.books.FindByGenre(ctx, genre)
}

// ListByAuthor は著者で書籍を取得します。
func (u *BookUsecase) ListByAuthor(ctx context.Context, author string) ([]entity.Book, error) {
	return u.books.FindByAuthor(ctx, author)
}

// AdjustStock は在庫数を符号付きの数量で増減します。
func (u *BookUsecase) AdjustStock(ctx context.Context, id string, quantity int) (*entity.Book, error) {
	return u.books.IncrementStock(ctx, id, quantity)
}
