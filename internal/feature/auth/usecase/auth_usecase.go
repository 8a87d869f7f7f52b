// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookstore_backend/internal/feature/auth/domain/entity"
	"bookstore_backend/internal/platform/token"
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 同じメールアドレスのユーザーが既に存在する場合、ErrEmailAlreadyExistsを返します。
	// メール一意性の最終的な保証はストレージ層のユニーク制約です。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID は指定されたIDに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// TokenCodec はトークンの発行と検証のインターフェースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（platform/token）ではなくコンシューマー（usecase）が定義します。
type TokenCodec interface {
	// Issue は指定されたIdentityの署名済みトークンを生成します。
	Issue(identity token.Identity, ttl time.Duration) (string, error)
	// Parse は署名済みトークンを検証し、埋め込まれたIdentityを返します。
	Parse(signed string) (token.Identity, error)
}

// PasswordHasher はパスワードのハッシュ化と照合を抽象化します。
type PasswordHasher interface {
	// Hash は平文パスワードのハッシュを返します。
	Hash(plaintext string) (string, error)
	// Verify は平文パスワードがハッシュと一致するかを返します。
	Verify(plaintext, hashed string) bool
}

// ユーザーが存在しない場合のタイミング攻撃緩和用ダミーハッシュ。
// bcrypt照合が常に実行されることを保証する。
const dummyPasswordHash = "$2a$12$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AuthUsecase は認証ビジネスロジックを実装します。
type AuthUsecase struct {
	users       UserRepository
	codec       TokenCodec
	hasher      PasswordHasher
	registerTTL time.Duration
	loginTTL    time.Duration
}

// NewAuthUsecase はAuthUsecaseの新しいインスタンスを生成します。
// registerTTL・loginTTLはそれぞれ登録時・ログイン時に発行するトークンの有効期間です。
func NewAuthUsecase(users UserRepository, codec TokenCodec, hasher PasswordHasher,
	registerTTL, loginTTL time.Duration) *AuthUsecase {
	return &AuthUsecase{
		users:       users,
		codec:       codec,
		hasher:      hasher,
		registerTTL: registerTTL,
		loginTTL:    loginTTL,
	}
}

// Register はハッシュ化されたパスワードで新規ユーザーを登録し、
// 新しいIdentityに紐づくトークンを発行します。
// メールアドレスが既に使用されている場合、ErrEmailAlreadyExistsを返します。
// 事前のFindByEmailチェックは早期リターンのための最適化であり、
// 同時登録の競合はストレージ層のユニーク制約（Createのエラー）が防ぎます。
func (u *AuthUsecase) Register(ctx context.Context, name, email, plaintextPassword string) (*entity.User, string, error) {
	// 既存ユーザーの事前チェック（早期リターンのみ、正当性の保証ではない）
	if _, err := u.users.FindByEmail(ctx, email); err == nil {
		return nil, "", ErrEmailAlreadyExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, "", err
	}

	hashed, err := u.hasher.Hash(plaintextPassword)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{Name: name, Email: email, Password: hashed}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	signed, err := u.codec.Issue(identityOf(user), u.registerTTL)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, signed, nil
}

// Login はユーザーを認証し、成功時にユーザーと署名済みトークンを返します。
// メール未登録とパスワード不一致はどちらもErrInvalidCredentialsとなり区別できません。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt照合を実行します。
func (u *AuthUsecase) Login(ctx context.Context, email, plaintextPassword string) (*entity.User, string, error) {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, "", err
	}

	passwordHash := dummyPasswordHash
	if err == nil {
		passwordHash = user.Password
	}

	// タイミング攻撃防止のため、常にパスワードを照合
	ok := u.hasher.Verify(plaintextPassword, passwordHash)
	if err != nil || !ok {
		return nil, "", ErrInvalidCredentials
	}

	signed, tokenErr := u.codec.Issue(identityOf(user), u.loginTTL)
	if tokenErr != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", tokenErr)
	}

	return user, signed, nil
}

// VerifyAndResolve はトークンを検証し、クレームのIDをストレージと照合して
// 現在のユーザーを解決します。
// トークン不正時はtoken.ErrInvalidTokenを、対応するユーザーが既に存在しない場合は
// ErrUserNotFoundを返します。復号したIdentityはリクエスト単位でのみ使用され、
// キャッシュされません。
func (u *AuthUsecase) VerifyAndResolve(ctx context.Context, signed string) (*entity.User, error) {
	identity, err := u.codec.Parse(signed)
	if err != nil {
		return nil, err
	}
	return u.users.FindByID(ctx, identity.ID)
}

// identityOf はユーザーエンティティからトークンに埋め込むIdentityを構築します。
func identityOf(user *entity.User) token.Identity {
	return token.Identity{ID: user.ID, Email: user.Email, Name: user.Name}
}
