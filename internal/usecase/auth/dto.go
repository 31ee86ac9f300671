package auth

// RegisterRequest represents the request payload for registering a new user.
// Only presence and email format are checked; the API accepts any name or
// password length (the bcrypt 72-byte ceiling is the one hard limit).
type RegisterRequest struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,max=72"`
}

// RegisterResponse represents the response payload after registration.
type RegisterResponse struct {
	ID int64
}

// LoginRequest represents the request payload for logging in.
type LoginRequest struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// LoginResponse carries the signed bearer token issued on login.
type LoginResponse struct {
	Token string
}

// ProfileResponse represents the authenticated user's profile.
// The password hash is never part of this projection.
type ProfileResponse struct {
	ID    int64
	Name  string
	Email string
}
