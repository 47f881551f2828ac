package usecase

import (
	"context"
	"errors"
	"testing"

	"todo_backend/internal/feature/auth/domain/entity"
	"todo_backend/internal/platform/hash"
	jwtmw "todo_backend/internal/platform/jwt"
)

// mockUserRepository is a mock implementation of the UserRepository interface.
// It simulates database operations during testing.
type mockUserRepository struct {
	// CreateFunc is called when the Create method is invoked.
	CreateFunc func(ctx context.Context, user *entity.User) error
	// FindByEmailFunc is called when the FindByEmail method is invoked.
	FindByEmailFunc func(ctx context.Context, email string) (*entity.User, error)
	// FindByIDFunc is called when the FindByID method is invoked.
	FindByIDFunc func(ctx context.Context, id uint) (*entity.User, error)
}

// Create is the mock implementation of the Create method.
func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	user.ID = 1 // Default: assign an ID like the store would
	return nil
}

// FindByEmail is the mock implementation of the FindByEmail method.
func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, ErrUserNotFound // Default: user not found
}

// FindByID is the mock implementation of the FindByID method.
func (m *mockUserRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, ErrUserNotFound
}

// mockTokenIssuer is a mock implementation of the TokenIssuer interface.
type mockTokenIssuer struct {
	GenerateAccessTokenFunc  func(userID uint) (string, error)
	GenerateRefreshTokenFunc func(userID uint) (string, error)
	VerifyFunc               func(token, class string) (uint, error)
}

func (m *mockTokenIssuer) GenerateAccessToken(userID uint) (string, error) {
	if m.GenerateAccessTokenFunc != nil {
		return m.GenerateAccessTokenFunc(userID)
	}
	return "mock-access-token", nil
}

func (m *mockTokenIssuer) GenerateRefreshToken(userID uint) (string, error) {
	if m.GenerateRefreshTokenFunc != nil {
		return m.GenerateRefreshTokenFunc(userID)
	}
	return "mock-refresh-token", nil
}

func (m *mockTokenIssuer) Verify(token, class string) (uint, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(token, class)
	}
	return 0, jwtmw.ErrInvalidToken
}

func TestAuthUsecase_Register(t *testing.T) {
	t.Run("successful registration", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				// Verify that the password is hashed
				if len(user.Password) == 0 || user.Password == "password123" {
					t.Errorf("password is not hashed")
				}
				if !hash.Verify("password123", user.Password) {
					t.Errorf("stored digest does not verify against the plaintext")
				}
				if user.Name != "Alice" {
					t.Errorf("expected name 'Alice', got %q", user.Name)
				}
				user.ID = 7
				return nil
			},
		}

		uc := NewAuthUsecase(mockRepo, &mockTokenIssuer{})
		userID, err := uc.Register(context.Background(), "test@example.com", "password123", "Alice")

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if userID != 7 {
			t.Errorf("expected user ID 7, got %d", userID)
		}
	})

	t.Run("duplicate email detected by lookup", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return &entity.User{ID: 1, Email: email}, nil
			},
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				t.Error("Create must not be called for a duplicate email")
				return nil
			},
		}

		uc := NewAuthUsecase(mockRepo, &mockTokenIssuer{})
		_, err := uc.Register(context.Background(), "existing@example.com", "password123", "")

		if !errors.Is(err, ErrEmailAlreadyExists) {
			t.Errorf("expected ErrEmailAlreadyExists, got %v", err)
		}
	})

	t.Run("duplicate email detected by unique index", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				return ErrEmailAlreadyExists
			},
		}

		uc := NewAuthUsecase(mockRepo, &mockTokenIssuer{})
		_, err := uc.Register(context.Background(), "racy@example.com", "password123", "")

		if !errors.Is(err, ErrEmailAlreadyExists) {
			t.Errorf("expected ErrEmailAlreadyExists, got %v", err)
		}
	})

	t.Run("password too short", func(t *testing.T) {
		uc := NewAuthUsecase(&mockUserRepository{}, &mockTokenIssuer{})
		_, err := uc.Register(context.Background(), "test@example.com", "short", "")

		if !errors.Is(err, ErrPasswordTooShort) {
			t.Errorf("expected ErrPasswordTooShort, got %v", err)
		}
	})

	t.Run("repository create failure", func(t *testing.T) {
		expectedErr := errors.New("database error")
		mockRepo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				return expectedErr
			},
		}

		uc := NewAuthUsecase(mockRepo, &mockTokenIssuer{})
		_, err := uc.Register(context.Background(), "test@example.com", "password123", "")

		if !errors.Is(err, expectedErr) {
			t.Errorf("expected error '%v', got: %v", expectedErr, err)
		}
	})
}

func TestAuthUsecase_Login(t *testing.T) {
	// Hashed password for testing
	password := "password123"
	hashedPassword, err := hash.Hash(password)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testUser := &entity.User{
		ID:       1,
		Email:    "test@example.com",
		Password: hashedPassword,
		Name:     "Alice",
	}

	findTestUser := func(ctx context.Context, email string) (*entity.User, error) {
		if email == testUser.Email {
			return testUser, nil
		}
		return nil, ErrUserNotFound
	}

	t.Run("successful login", func(t *testing.T) {
		mockRepo := &mockUserRepository{FindByEmailFunc: findTestUser}
		mockTokens := &mockTokenIssuer{
			GenerateAccessTokenFunc: func(userID uint) (string, error) {
				if userID != testUser.ID {
					t.Errorf("unexpected userID: got %d", userID)
				}
				return "access-token", nil
			},
			GenerateRefreshTokenFunc: func(userID uint) (string, error) {
				if userID != testUser.ID {
					t.Errorf("unexpected userID: got %d", userID)
				}
				return "refresh-token", nil
			},
		}

		uc := NewAuthUsecase(mockRepo, mockTokens)
		result, err := uc.Login(context.Background(), "test@example.com", password)

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.AccessToken != "access-token" {
			t.Errorf("expected access token 'access-token', got %q", result.AccessToken)
		}
		if result.RefreshToken != "refresh-token" {
			t.Errorf("expected refresh token 'refresh-token', got %q", result.RefreshToken)
		}
		if result.User.ID != testUser.ID || result.User.Email != testUser.Email || result.User.Name != testUser.Name {
			t.Errorf("unexpected user projection: %+v", result.User)
		}
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		mockRepo := &mockUserRepository{FindByEmailFunc: findTestUser}
		uc := NewAuthUsecase(mockRepo, &mockTokenIssuer{})

		_, errWrongPassword := uc.Login(context.Background(), "test@example.com", "wrong-password")
		_, errUnknownEmail := uc.Login(context.Background(), "nobody@example.com", password)

		if !errors.Is(errWrongPassword, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials for wrong password, got %v", errWrongPassword)
		}
		if !errors.Is(errUnknownEmail, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials for unknown email, got %v", errUnknownEmail)
		}
		if errWrongPassword.Error() != errUnknownEmail.Error() {
			t.Error("login failures must be indistinguishable")
		}
	})

	t.Run("token generation failure", func(t *testing.T) {
		mockRepo := &mockUserRepository{FindByEmailFunc: findTestUser}
		mockTokens := &mockTokenIssuer{
			GenerateAccessTokenFunc: func(userID uint) (string, error) {
				return "", errors.New("signing error")
			},
		}

		uc := NewAuthUsecase(mockRepo, mockTokens)
		_, err := uc.Login(context.Background(), "test@example.com", password)

		if err == nil {
			t.Fatal("expected error")
		}
		if errors.Is(err, ErrInvalidCredentials) {
			t.Error("signing failure must not look like bad credentials")
		}
	})
}

func TestAuthUsecase_Refresh(t *testing.T) {
	t.Run("successful refresh", func(t *testing.T) {
		mockTokens := &mockTokenIssuer{
			VerifyFunc: func(token, class string) (uint, error) {
				if token != "valid-refresh-token" {
					t.Errorf("unexpected token %q", token)
				}
				if class != jwtmw.ClassRefresh {
					t.Errorf("expected refresh class, got %q", class)
				}
				return 42, nil
			},
			GenerateAccessTokenFunc: func(userID uint) (string, error) {
				if userID != 42 {
					t.Errorf("expected userID 42, got %d", userID)
				}
				return "new-access-token", nil
			},
		}

		uc := NewAuthUsecase(&mockUserRepository{}, mockTokens)
		accessToken, err := uc.Refresh(context.Background(), "valid-refresh-token")

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if accessToken != "new-access-token" {
			t.Errorf("expected 'new-access-token', got %q", accessToken)
		}
	})

	t.Run("invalid refresh token", func(t *testing.T) {
		uc := NewAuthUsecase(&mockUserRepository{}, &mockTokenIssuer{})
		_, err := uc.Refresh(context.Background(), "garbage")

		if !errors.Is(err, ErrInvalidRefreshToken) {
			t.Errorf("expected ErrInvalidRefreshToken, got %v", err)
		}
	})
}
