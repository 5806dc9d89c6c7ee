package models

// User represents a registered account stored in the users table.
type User struct {
	ID           int64  `json:"id" db:"id"`             // Primary key
	Username     string `json:"username" db:"username"` // Unique username, matched case-sensitively
	PasswordHash string `json:"-" db:"password_hash"`   // bcrypt hash, never rendered or logged
}
