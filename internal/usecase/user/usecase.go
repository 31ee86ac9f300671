package user

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	domain "task-manager-api/internal/domain/user"
	apperrors "task-manager-api/pkg/errors"

	"github.com/go-playground/validator/v10"
)

// Repository defines the interface for user data access operations.
// It abstracts the data layer, allowing different implementations
// (e.g., plain DB, cached) to be used interchangeably.
type Repository interface {
	Create(ctx context.Context, u *domain.User) (int64, error)          // Create a new user
	GetByID(ctx context.Context, id int64) (*domain.User, error)        // Retrieve user by ID
	GetByEmail(ctx context.Context, email string) (*domain.User, error) // Retrieve user by email
	List(ctx context.Context) ([]domain.User, error)                    // List all users
}

// PasswordHasher abstracts the salted one-way password transform.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
}

// UserUsecase implements the business logic for user management operations.
type UserUsecase struct {
	repo     Repository
	hasher   PasswordHasher
	log      *zap.Logger
	validate *validator.Validate
}

// New creates a new instance of UserUsecase.
func New(r Repository, h PasswordHasher, log *zap.Logger) *UserUsecase {
	return &UserUsecase{repo: r, hasher: h, log: log, validate: validator.New()}
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

// CreateUser creates a new user after validating the request, checking email
// uniqueness, and hashing the password.
func (uc *UserUsecase) CreateUser(ctx context.Context, in CreateUserRequest) (*CreateUserResponse, error) {
	uc.log.Info("creating user", zap.String("name", in.Name), zap.String("email", in.Email))

	if err := uc.validate.Struct(in); err != nil {
		uc.log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	existing, err := uc.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		uc.log.Error("failed to check existing email", zap.String("email", in.Email), zap.Error(err))
		return nil, apperrors.NewInternalError("failed to validate email uniqueness", err)
	}
	if existing != nil {
		uc.log.Warn("email already exists", zap.String("email", in.Email))
		return nil, apperrors.NewAlreadyExistsError("user", "El correo ya está registrado")
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
	return &CreateUserResponse{ID: id}, nil
}

// GetUser retrieves a user by ID.
func (uc *UserUsecase) GetUser(ctx context.Context, in GetUserRequest) (*User, error) {
	if in.ID <= 0 {
		uc.log.Warn("get user validation failed", zap.Int64("id", in.ID), zap.String("reason", "invalid id"))
		return nil, apperrors.NewValidationError("id", "invalid user id")
	}

	u, err := uc.repo.GetByID(ctx, in.ID)
	if err != nil {
		uc.log.Error("failed to get user", zap.Int64("id", in.ID), zap.Error(err))
		return nil, apperrors.NewInternalError("failed to get user", err)
	}
	if u == nil {
		return nil, apperrors.NewNotFoundError("user", "Usuario no encontrado")
	}

	return &User{ID: u.ID, Name: u.Name, Email: u.Email}, nil
}

// GetUserByEmail retrieves a user by email address.
func (uc *UserUsecase) GetUserByEmail(ctx context.Context, in GetUserByEmailRequest) (*User, error) {
	if err := uc.validate.Struct(in); err != nil {
		uc.log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	u, err := uc.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		uc.log.Error("failed to get user by email", zap.String("email", in.Email), zap.Error(err))
		return nil, apperrors.NewInternalError("failed to get user by email", err)
	}
	if u == nil {
		return nil, apperrors.NewNotFoundError("user", "Usuario no encontrado")
	}

	return &User{ID: u.ID, Name: u.Name, Email: u.Email}, nil
}

// ListUsers retrieves all registered users.
func (uc *UserUsecase) ListUsers(ctx context.Context) (*ListUsersResponse, error) {
	uc.log.Info("listing users")

	domainUsers, err := uc.repo.List(ctx)
	if err != nil {
		uc.log.Error("failed to list users", zap.Error(err))
		return nil, apperrors.NewInternalError("failed to list users", err)
	}

	users := make([]User, len(domainUsers))
	for i, du := range domainUsers {
		users[i] = User{ID: du.ID, Name: du.Name, Email: du.Email}
	}

	return &ListUsersResponse{Users: users}, nil
}
