package auth

import "context"

// Usecase defines the interface for authentication business logic.
type Usecase interface {
	Register(ctx context.Context, in RegisterRequest) (*RegisterResponse, error)
	Login(ctx context.Context, in LoginRequest) (*LoginResponse, error)
	Profile(ctx context.Context, userID int64) (*ProfileResponse, error)
}
