package user

// User represents a user entity in the system.
type User struct {
	ID           int64  `json:"id"`    // ID is the unique identifier for the user
	Name         string `json:"name"`  // Name is the full name of the user
	Email        string `json:"email"` // Email is the unique email address of the user
	PasswordHash string `json:"-"`     // PasswordHash is the bcrypt hash, never serialized
}
