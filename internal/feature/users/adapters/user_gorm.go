// Package adapters はユーザー一覧機能の永続化実装を提供します。
package adapters

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"bookstore_backend/internal/feature/users/domain/entity"
	"bookstore_backend/internal/feature/users/usecase"
)

// userGorm はGORMを利用したUserRepositoryの実装です。
// It reads the users table through a credential-free view model, so password
// hashes never cross this boundary.
type userGorm struct {
	db *gorm.DB
}

// userGormがUserRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.UserRepository = (*userGorm)(nil)

// NewUserGorm はuserGormを生成します。
func NewUserGorm(db *gorm.DB) usecase.UserRepository {
	return &userGorm{db: db}
}

// FindAll returns every account ordered by ID.
func (r *userGorm) FindAll(ctx context.Context) ([]entity.User, error) {
	var users []entity.User
	if err := r.db.WithContext(ctx).
		Select("id", "name", "email").
		Order("id").
		Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// FindByID returns one account, or ErrUserNotFound.
func (r *userGorm) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).
		Select("id", "name", "email").
		First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user by id: %w", err)
	}
	return &user, nil
}
