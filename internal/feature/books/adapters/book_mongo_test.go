package adapters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/v2/bson"

	"bookstore_backend/internal/feature/books/domain/entity"
	"bookstore_backend/internal/feature/books/usecase"
)

// フィルタ構築はMongoサーバーなしで検証できる純粋関数としてテストします。

func TestBuildListFilter(t *testing.T) {
	minPrice := 10.0
	maxPrice := 50.0
	minStock := 3

	tests := []struct {
		name     string
		filter   usecase.Filter
		expected bson.M
	}{
		{
			name:     "empty filter matches everything",
			filter:   usecase.Filter{},
			expected: bson.M{},
		},
		{
			name:   "title only",
			filter: usecase.Filter{Title: "go"},
			expected: bson.M{
				"title": bson.M{"$regex": "go", "$options": "i"},
			},
		},
		{
			name:   "price range",
			filter: usecase.Filter{MinPrice: &minPrice, MaxPrice: &maxPrice},
			expected: bson.M{
				"price": bson.M{"$gte": 10.0, "$lte": 50.0},
			},
		},
		{
			name:   "min price only",
			filter: usecase.Filter{MinPrice: &minPrice},
			expected: bson.M{
				"price": bson.M{"$gte": 10.0},
			},
		},
		{
			name:   "stock and year",
			filter: usecase.Filter{MinStock: &minStock, PublishedYear: 2021},
			expected: bson.M{
				"stock":          bson.M{"$gte": 3},
				"published_year": 2021,
			},
		},
		{
			name: "all text fields",
			filter: usecase.Filter{
				Title:  "go",
				Author: "donovan",
				Genre:  "tech",
			},
			expected: bson.M{
				"title":  bson.M{"$regex": "go", "$options": "i"},
				"author": bson.M{"$regex": "donovan", "$options": "i"},
				"genre":  bson.M{"$regex": "tech", "$options": "i"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, buildListFilter(tt.filter))
		})
	}
}

func TestBuildSetDoc(t *testing.T) {
	t.Run("nil fields are omitted", func(t *testing.T) {
		title := "Updated Title"
		price := 29.9

		set := buildSetDoc(entity.BookUpdate{Title: &title, Price: &price})

		assert.Equal(t, "Updated Title", set["title"])
		assert.Equal(t, 29.9, set["price"])
		assert.NotContains(t, set, "author")
		assert.NotContains(t, set, "stock")
		assert.Contains(t, set, "updated_at", "updates must touch the timestamp")
	})

	t.Run("empty update still touches timestamp", func(t *testing.T) {
		set := buildSetDoc(entity.BookUpdate{})

		assert.Len(t, set, 1)
		assert.Contains(t, set, "updated_at")
	})

	t.Run("zero values are applied when set explicitly", func(t *testing.T) {
		stock := 0
		set := buildSetDoc(entity.BookUpdate{Stock: &stock})

		assert.Equal(t, 0, set["stock"])
	})
}
