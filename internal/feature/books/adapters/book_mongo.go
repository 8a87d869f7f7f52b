// Package adapters はbooksフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"bookstore_backend/internal/feature/books/domain/entity"
	"bookstore_backend/internal/feature/books/usecase"
)

// CollectionName は書籍コレクション名です。
const CollectionName = "books"

// bookMongo はBookRepositoryインターフェースのMongoDB実装です。
type bookMongo struct {
	coll *mongo.Collection
}

// bookMongoがBookRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.BookRepository = (*bookMongo)(nil)

// NewBookMongo は指定されたデータベースでbookMongoの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタです。
func NewBookMongo(db *mongo.Database) *bookMongo {
	return &bookMongo{coll: db.Collection(CollectionName)}
}

// EnsureIndexes は検索用インデックスとISBNのユニーク制約を作成します。
// ISBNのユニーク制約はsparse指定のため、ISBN未設定の書籍は複数登録できます。
func (r *bookMongo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "title", Value: 1}}},
		{Keys: bson.D{{Key: "author", Value: 1}}},
		{Keys: bson.D{{Key: "genre", Value: 1}}},
		{
			Keys:    bson.D{{Key: "isbn", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create book indexes: %w", err)
	}
	return nil
}

// Insert は書籍をコレクションに追加します。
// ISBNが重複する場合、usecase.ErrDuplicateISBNを返します。
func (r *bookMongo) Insert(ctx context.Context, book *entity.Book) error {
	now := time.Now()
	book.CreatedAt = now
	book.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, book)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return usecase.ErrDuplicateISBN
		}
		return err
	}
	if oid, ok := res.InsertedID.(bson.ObjectID); ok {
		book.ID = oid
	}
	return nil
}

// Find は絞り込み条件に一致する書籍を新しい順に取得し、総件数も返します。
func (r *bookMongo) Find(ctx context.Context, filter usecase.Filter, offset, limit int) ([]entity.Book, int64, error) {
	query := buildListFilter(filter)

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSkip(int64(offset)).
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	books := []entity.Book{}
	if err := cursor.All(ctx, &books); err != nil {
		return nil, 0, err
	}
	return books, total, nil
}

// FindByID はIDで書籍を取得します。
// IDの形式が不正な場合usecase.ErrInvalidBookIDを、存在しない場合usecase.ErrBookNotFoundを返します。
func (r *bookMongo) FindByID(ctx context.Context, id string) (*entity.Book, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, usecase.ErrInvalidBookID
	}

	var book entity.Book
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&book); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, usecase.ErrBookNotFound
		}
		return nil, err
	}
	return &book, nil
}

// Update は部分更新を適用し、更新後の書籍を返します。
func (r *bookMongo) Update(ctx context.Context, id string, update entity.BookUpdate) (*entity.Book, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, usecase.ErrInvalidBookID
	}

	set := buildSetDoc(update)

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var book entity.Book
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&book)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, usecase.ErrBookNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, usecase.ErrDuplicateISBN
		}
		return nil, err
	}
	return &book, nil
}

// Delete は書籍を削除します。存在しない場合、usecase.ErrBookNotFoundを返します。
func (r *bookMongo) Delete(ctx context.Context, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return usecase.ErrInvalidBookID
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return usecase.ErrBookNotFound
	}
	return nil
}

// Search はタイトル・著者・説明・ジャンルを横断して部分一致検索します。
func (r *bookMongo) Search(ctx context.Context, query string) ([]entity.Book, error) {
	return r.findSorted(ctx, bson.M{
		"$or": []bson.M{
			{"title": regexFilter(query)},
			{"author": regexFilter(query)},
			{"description": regexFilter(query)},
			{"genre": regexFilter(query)},
		},
	})
}

// FindByGenre はジャンルに部分一致する書籍を新しい順に返します。
func (r *bookMongo) FindByGenre(ctx context.Context, genre string) ([]entity.Book, error) {
	return r.findSorted(ctx, bson.M{"genre": regexFilter(genre)})
}

// FindByAuthor は著者に部分一致する書籍を新しい順に返します。
func (r *bookMongo) FindByAuthor(ctx context.Context, author string) ([]entity.Book, error) {
	return r.findSorted(ctx, bson.M{"author": regexFilter(author)})
}

// IncrementStock は在庫数を符号付きで増減し、更新後の書籍を返します。
func (r *bookMongo) IncrementStock(ctx context.Context, id string, quantity int) (*entity.Book, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, usecase.ErrInvalidBookID
	}

	update := bson.M{
		"$inc": bson.M{"stock": quantity},
		"$set": bson.M{"updated_at": time.Now()},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var book entity.Book
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&book); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, usecase.ErrBookNotFound
		}
		return nil, err
	}
	return &book, nil
}

// findSorted はフィルタに一致する書籍を作成日時の降順で返します。
func (r *bookMongo) findSorted(ctx context.Context, query bson.M) ([]entity.Book, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	books := []entity.Book{}
	if err := cursor.All(ctx, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// buildListFilter は絞り込み条件からMongoDBのフィルタドキュメントを構築します。
// ゼロ値のフィールドは条件に含めません。
func buildListFilter(filter usecase.Filter) bson.M {
	query := bson.M{}

	if filter.Title != "" {
		query["title"] = regexFilter(filter.Title)
	}
	if filter.Author != "" {
		query["author"] = regexFilter(filter.Author)
	}
	if filter.Genre != "" {
		query["genre"] = regexFilter(filter.Genre)
	}
	if filter.MinPrice != nil || filter.MaxPrice != nil {
		price := bson.M{}
		if filter.MinPrice != nil {
			price["$gte"] = *filter.MinPrice
		}
		if filter.MaxPrice != nil {
			price["$lte"] = *filter.MaxPrice
		}
		query["price"] = price
	}
	if filter.MinStock != nil {
		query["stock"] = bson.M{"$gte": *filter.MinStock}
	}
	if filter.PublishedYear != 0 {
		query["published_year"] = filter.PublishedYear
	}

	return query
}

// buildSetDoc は部分更新から$setドキュメントを構築します。nilフィールドは無視されます。
func buildSetDoc(update entity.BookUpdate) bson.M {
	set := bson.M{"updated_at": time.Now()}

	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Author != nil {
		set["author"] = *update.Author
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.ISBN != nil {
		set["isbn"] = *update.ISBN
	}
	if update.PublishedYear != nil {
		set["published_year"] = *update.PublishedYear
	}
	if update.Genre != nil {
		set["genre"] = *update.Genre
	}
	if update.Price != nil {
		set["price"] = *update.Price
	}
	if update.Stock != nil {
		set["stock"] = *update.Stock
	}

	return set
}

// regexFilter は大文字小文字を区別しない部分一致フィルタを返します。
func regexFilter(v string) bson.M {
	return bson.M{"$regex": v, "$options": "i"}
}
