// Package usecase はユーザー一覧機能のアプリケーションロジックを提供します。
package usecase

import (
	"context"

	"bookstore_backend/internal/feature/users/domain/entity"
)

// UserRepository provides read access to registered accounts.
type UserRepository interface {
	FindAll(ctx context.Context) ([]entity.User, error)
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// UserUsecase exposes account listing for administrative views.
type UserUsecase struct {
	users UserRepository
}

// NewUserUsecase はUserUsecaseを生成します。
func NewUserUsecase(users UserRepository) *UserUsecase {
	return &UserUsecase{users: users}
}

// List returns every registered account without credentials.
func (u *UserUsecase) List(ctx context.Context) ([]entity.User, error) {
	return u.users.FindAll(ctx)
}

// Get returns a single account by ID.
func (u *UserUsecase) Get(ctx context.Context, id uint) (*entity.User, error) {
	return u.users.FindByID(ctx, id)
}
