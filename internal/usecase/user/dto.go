package user

// CreateUserRequest represents the request payload for creating a new user.
// Same contract as registration: presence and email format only, plus the
// bcrypt 72-byte password ceiling.
type CreateUserRequest struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,max=72"`
}

// CreateUserResponse represents the response payload after creating a user.
type CreateUserResponse struct {
	ID int64
}

// GetUserRequest represents the request payload for retrieving a user by ID.
type GetUserRequest struct {
	ID int64
}

// GetUserByEmailRequest represents the request payload for the email lookup.
type GetUserByEmailRequest struct {
	Email string `validate:"required,email"`
}

// User represents a user DTO for API responses. It never carries the
// password hash.
type User struct {
	ID    int64
	Name  string
	Email string
}

// ListUsersResponse represents the response payload for user listing.
type ListUsersResponse struct {
	Users []User
}
