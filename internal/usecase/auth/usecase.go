package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	domain "task-manager-api/internal/domain/user"
	"task-manager-api/pkg/auth"
	apperrors "task-manager-api/pkg/errors"

	"github.com/go-playground/validator/v10"
)

// Repository defines the user persistence operations the auth flow needs.
// The full user repository satisfies it.
type Repository interface {
	Create(ctx context.Context, u *domain.User) (int64, error)       // Persist a new user
	GetByID(ctx context.Context, id int64) (*domain.User, error)     // Retrieve user by ID
	GetByEmail(ctx context.Context, email string) (*domain.User, error) // Retrieve user by email
}

// PasswordHasher abstracts the salted one-way password transform.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(hash, plaintext string) error
}

// TokenIssuer abstracts bearer token issuance.
type TokenIssuer interface {
	Issue(userID int64) (string, error)
}

// AuthUsecase orchestrates registration, login, and profile retrieval using
// the credential hasher, token service, and user persistence.
type AuthUsecase struct {
	repo     Repository
	hasher   PasswordHasher
	tokens   TokenIssuer
	log      *zap.Logger
	validate *validator.Validate
}

// New creates a new instance of AuthUsecase.
func New(r Repository, h PasswordHasher, t TokenIssuer, log *zap.Logger) *AuthUsecase {
	return &AuthUsecase{repo: r, hasher: h, tokens: t, log: log, validate: validator.New()}
}

// formatValidationError converts validator.ValidationErrors into a human-readable error.
func formatValidationError(err error) error {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		var messages []string
		for _, e := range validationErrors {
			switch e.Tag() {
			case "required":
				messages = append(messages, fmt.Sprintf("%s is required", e.Field()))
			case "email":
				messages = append(messages, fmt.Sprintf("%s must be a valid email", e.Field()))
			case "min":
				messages = append(messages, fmt.Sprintf("%s must be at least %s characters", e.Field(), e.Param()))
			case "max":
				messages = append(messages, fmt.Sprintf("%s must be at most %s characters", e.Field(), e.Param()))
			default:
				messages = append(messages, fmt.Sprintf("%s is invalid", e.Field()))
			}
		}
		return apperrors.NewValidationError("", strings.Join(messages, ", "))
	}
	return err
}

// Register creates a new user after checking email uniqueness and hashing
// the password. A duplicate email fails before any write.
func (uc *AuthUsecase) Register(ctx context.Context, in RegisterRequest) (*RegisterResponse, error) {
	uc.log.Info("registering user", zap.String("email", in.Email))

	if err := uc.validate.Struct(in); err != nil {
		uc.log.Warn("register validation failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	existing, err := uc.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		uc.log.Error("failed to check existing email", zap.String("email", in.Email), zap.Error(err))
		return nil, apperrors.NewInternalError("failed to validate email uniqueness", err)
	}
	if existing != nil {
		uc.log.Warn("email already registered", zap.String("email", in.Email))
		return nil, apperrors.NewAlreadyExistsError("user", "El usuario ya existe")
	}

	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		uc.log.Error("failed to hash password", zap.Error(err))
		return nil, apperrors.NewInternalError("failed to hash password", err)
	}

	id, err := uc.repo.Create(ctx, &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
	})
	if err != nil {
		uc.log.Error("failed to create user", zap.Error(err))
		return nil, apperrors.NewInternalError("failed to create user", err)
	}

	return &RegisterResponse{ID: id}, nil
}

// Login verifies the credentials and issues a signed bearer token.
func (uc *AuthUsecase) Login(ctx context.Context, in LoginRequest) (*LoginResponse, error) {
	uc.log.Info("login attempt", zap.String("email", in.Email))

	if err := uc.validate.Struct(in); err != nil {
		uc.log.Warn("login validation failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	u, err := uc.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		uc.log.Error("failed to look up user", zap.String("email", in.Email), zap.Error(err))
		return nil, apperrors.NewInternalError("failed to look up user", err)
	}
	if u == nil {
		uc.log.Warn("login for unknown user", zap.String("email", in.Email))
		return nil, apperrors.NewNotFoundError("user", "Usuario no encontrado")
	}

	if err := uc.hasher.Verify(u.PasswordHash, in.Password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			uc.log.Warn("invalid credentials", zap.Int64("user_id", u.ID))
			return nil, apperrors.NewUnauthenticatedError("Credenciales inválidas")
		}
		uc.log.Error("failed to verify password", zap.Int64("user_id", u.ID), zap.Error(err))
		return nil, apperrors.NewInternalError("failed to verify password", err)
	}

	token, err := uc.tokens.Issue(u.ID)
	if err != nil {
		uc.log.Error("failed to issue token", zap.Int64("user_id", u.ID), zap.Error(err))
		return nil, apperrors.NewInternalError("failed to issue token", err)
	}

	uc.log.Info("login successful", zap.Int64("user_id", u.ID))
	return &LoginResponse{Token: token}, nil
}

// Profile returns the authenticated user's record, hash excluded.
func (uc *AuthUsecase) Profile(ctx context.Context, userID int64) (*ProfileResponse, error) {
	u, err := uc.repo.GetByID(ctx, userID)
	if err != nil {
		uc.log.Error("failed to get profile", zap.Int64("user_id", userID), zap.Error(err))
		return nil, apperrors.NewInternalError("failed to get profile", err)
	}
	if u == nil {
		uc.log.Warn("profile for unknown user", zap.Int64("user_id", userID))
		return nil, apperrors.NewNotFoundError("user", "Usuario no encontrado")
	}

	return &ProfileResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}, nil
}
