// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"

	"todo_backend/internal/feature/auth/domain/entity"
	"todo_backend/internal/platform/hash"
	jwtmw "todo_backend/internal/platform/jwt"
)

const (
	// minPasswordLength はパスワードの最低文字数を定義します。
	minPasswordLength = 6
)

// dummyDigest はユーザーが存在しない場合のタイミング攻撃緩和用ダミーハッシュです。
// bcrypt比較が常に実行されることを保証します。
const dummyDigest = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 同じメールアドレスのユーザーが既に存在する場合、ErrEmailAlreadyExistsを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID は指定されたIDに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// TokenIssuer はトークンの発行・検証のインターフェースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（platform/jwt）ではなくコンシューマー（usecase）が定義します。
type TokenIssuer interface {
	// GenerateAccessToken は指定されたユーザーの署名済みアクセストークンを生成します。
	GenerateAccessToken(userID uint) (string, error)
	// GenerateRefreshToken は指定されたユーザーの署名済みリフレッシュトークンを生成します。
	GenerateRefreshToken(userID uint) (string, error)
	// Verify はトークンを指定クラスとして検証し、ユーザーIDを返します。
	Verify(token, class string) (uint, error)
}

// UserInfo is the public projection of a user returned on login.
// The password hash never leaves the usecase layer.
type UserInfo struct {
	ID    uint
	Email string
	Name  string
}

// LoginResult carries the token pair and the public user projection.
type LoginResult struct {
	AccessToken  string
	RefreshToken string
	User         UserInfo
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users  UserRepository
	tokens TokenIssuer
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, tokens TokenIssuer) *authUsecase {
	return &authUsecase{
		users:  users,
		tokens: tokens,
	}
}

// validatePassword はパスワードがセキュリティ要件を満たしているかチェックします。
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

// Register はハッシュ化されたパスワードで新規ユーザーを登録し、ユーザーIDを返します。
// このデザインでは登録時にトークンは発行しません（自動ログインなし）。
func (u *authUsecase) Register(ctx context.Context, email, password, name string) (uint, error) {
	// パスワード強度を検証（トランスポート層のバリデーションのバックストップ）
	if err := validatePassword(password); err != nil {
		return 0, err
	}

	// メールアドレスの重複を事前チェック
	// ユニークインデックスが最終的な保証なので、ここはレースしても安全
	if _, err := u.users.FindByEmail(ctx, email); err == nil {
		return 0, ErrEmailAlreadyExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return 0, fmt.Errorf("failed to look up user: %w", err)
	}

	hashed, err := hash.Hash(password)
	if err != nil {
		return 0, err
	}

	user := &entity.User{Email: email, Password: hashed, Name: name}
	if err := u.users.Create(ctx, user); err != nil {
		return 0, err
	}
	return user.ID, nil
}

// Login はユーザーを認証し、成功時にトークンペアと公開プロフィールを返します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
func (u *authUsecase) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	// メールアドレスでユーザーを検索
	user, err := u.users.FindByEmail(ctx, email)

	digest := dummyDigest
	if err == nil {
		digest = user.Password
	}

	// タイミング攻撃防止のため、常にパスワードを検証
	ok := hash.Verify(password, digest)

	// ユーザー未検出またはパスワード不一致の場合、汎用エラーを返す
	if err != nil || !ok {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := u.tokens.GenerateAccessToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, err := u.tokens.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: UserInfo{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
		},
	}, nil
}

// Refresh はリフレッシュトークンを検証し、新しいアクセストークンを発行します。
// リフレッシュトークン自体はローテーションしません（クライアントは従来のものを使い続ける）。
func (u *authUsecase) Refresh(ctx context.Context, refreshToken string) (string, error) {
	userID, err := u.tokens.Verify(refreshToken, jwtmw.ClassRefresh)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	accessToken, err := u.tokens.GenerateAccessToken(userID)
	if err != nil {
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}
	return accessToken, nil
}
