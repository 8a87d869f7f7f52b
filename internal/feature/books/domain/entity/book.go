// Package entity defines the domain entities for the books feature.
package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Book represents one catalog entry stored in the document store.
type Book struct {
	ID            bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Title         string        `bson:"title" json:"title"`
	Author        string        `bson:"author" json:"author"`
	Description   string        `bson:"description,omitempty" json:"description,omitempty"`
	ISBN          string        `bson:"isbn,omitempty" json:"isbn,omitempty"`
	PublishedYear int           `bson:"published_year,omitempty" json:"published_year,omitempty"`
	Genre         string        `bson:"genre,omitempty" json:"genre,omitempty"`
	Price         float64       `bson:"price" json:"price"`
	Stock         int           `bson:"stock" json:"stock"`
	CreatedAt     time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time     `bson:"updated_at" json:"updated_at"`
}

// BookUpdate carries a partial update; nil fields are left unchanged.
type BookUpdate struct {
	Title         *string
	Author        *string
	Description   *string
	ISBN          *string
	PublishedYear *int
	Genre         *string
	Price         *float64
	Stock         *int
}
