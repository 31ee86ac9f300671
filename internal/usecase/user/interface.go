package user

import "context"

// Usecase defines the interface for user business logic operations.
type Usecase interface {
	CreateUser(ctx context.Context, in CreateUserRequest) (*CreateUserResponse, error)
	GetUser(ctx context.Context, in GetUserRequest) (*User, error)
	GetUserByEmail(ctx context.Context, in GetUserByEmailRequest) (*User, error)
	ListUsers(ctx context.Context) (*ListUsersResponse, error)
}
