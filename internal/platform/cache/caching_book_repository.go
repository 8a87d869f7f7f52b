// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"bookstore_backend/internal/feature/books/domain/entity"
	"bookstore_backend/internal/feature/books/usecase"
)

// CachingBookRepository decorates a BookRepository with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying repository. Reads of listings and single books go
// through the cache; every write invalidates the namespace.
type CachingBookRepository struct {
	inner     usecase.BookRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// CachingBookRepositoryがBookRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.BookRepository = (*CachingBookRepository)(nil)

// cachedPage is the serialized form of one listing query result.
type cachedPage struct {
	Books []entity.Book `json:"books"`
	Total int64         `json:"total"`
}

// NewCachingBookRepository decorates a BookRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "books".
func NewCachingBookRepository(rdb *redis.Client, ttl time.Duration, inner usecase.BookRepository, namespace string) *CachingBookRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "books"
	}
	return &CachingBookRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Insert persists a book and invalidates cached listings.
func (c *CachingBookRepository) Insert(ctx context.Context, book *entity.Book) error {
	if err := c.inner.Insert(ctx, book); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// Find retrieves a listing page, checking the cache first then falling back
// to the document store.
func (c *CachingBookRepository) Find(ctx context.Context, filter usecase.Filter, offset, limit int) ([]entity.Book, int64, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.Find(ctx, filter, offset, limit)
	}

	key := c.listKey(filter, offset, limit)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var page cachedPage
		if err := json.Unmarshal(b, &page); err == nil {
			return page.Books, page.Total, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to the document store
	books, total, err := c.inner.Find(ctx, filter, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(cachedPage{Books: books, Total: total}); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return books, total, nil
}

// FindByID retrieves one book, checking the cache first.
func (c *CachingBookRepository) FindByID(ctx context.Context, id string) (*entity.Book, error) {
	if c.rdb == nil {
		return c.inner.FindByID(ctx, id)
	}

	key := c.idKey(id)

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var book entity.Book
		if err := json.Unmarshal(b, &book); err == nil {
			return &book, nil
		}
		_ = c.rdb.Del(ctx, key).Err()
	}

	book, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(book); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return book, nil
}

// Update applies a partial update and invalidates cached entries.
func (c *CachingBookRepository) Update(ctx context.Context, id string, update entity.BookUpdate) (*entity.Book, error) {
	book, err := c.inner.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx)
	return book, nil
}

// Delete removes a book and invalidates cached entries.
func (c *CachingBookRepository) Delete(ctx context.Context, id string) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// Search always hits the document store; free-text queries are too varied to
// be worth caching.
func (c *CachingBookRepository) Search(ctx context.Context, query string) ([]entity.Book, error) {
	return c.inner.Search(ctx, query)
}

// FindByGenre always hits the document store.
func (c *CachingBookRepository) FindByGenre(ctx context.Context, genre string) ([]entity.Book, error) {
	return c.inner.FindByGenre(ctx, genre)
}

// FindByAuthor always hits the document store.
func (c *CachingBookRepository) FindByAuthor(ctx context.Context, author string) ([]entity.Book, error) {
	return c.inner.FindByAuthor(ctx, author)
}

// IncrementStock adjusts stock and invalidates cached entries.
func (c *CachingBookRepository) IncrementStock(ctx context.Context, id string, quantity int) (*entity.Book, error) {
	book, err := c.inner.IncrementStock(ctx, id, quantity)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx)
	return book, nil
}

// invalidate drops every cached entry in the namespace.
// Best effort: a failed invalidation only shortens cache accuracy, the TTL
// still bounds staleness.
func (c *CachingBookRepository) invalidate(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	_ = c.deleteByPattern(ctx, c.namespace+":*")
}

// listKey generates a cache key for a specific listing query.
func (c *CachingBookRepository) listKey(filter usecase.Filter, offset, limit int) string {
	minPrice, maxPrice := "", ""
	if filter.MinPrice != nil {
		minPrice = fmt.Sprintf("%g", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		maxPrice = fmt.Sprintf("%g", *filter.MaxPrice)
	}
	minStock := ""
	if filter.MinStock != nil {
		minStock = fmt.Sprintf("%d", *filter.MinStock)
	}
	return fmt.Sprintf("%s:list:%s:%s:%s:%s:%s:%s:%d:%d:%d",
		c.namespace,
		safe(filter.Title),
		safe(filter.Author),
		safe(filter.Genre),
		minPrice,
		maxPrice,
		minStock,
		filter.PublishedYear,
		offset,
		limit,
	)
}

// idKey generates a cache key for a single book.
func (c *CachingBookRepository) idKey(id string) string {
	return fmt.Sprintf("%s:id:%s", c.namespace, safe(id))
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingBookRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
