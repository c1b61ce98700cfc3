package models

import "time"

// User represents an account row on the server and the credential payload
// exchanged during register/login.
type User struct {
	// UserID is the server-assigned account identifier.
	UserID int64 `json:"user_id,omitempty"`

	// Login is the unique account name.
	Login string `json:"login"`

	// Password is the plaintext password, present only in inbound
	// register/login requests. Never persisted and never logged.
	Password string `json:"password,omitempty"`

	// PasswordHash is the bcrypt hash stored in the users table. Never
	// serialized in responses.
	PasswordHash string `json:"-"`

	// Name is an optional display name.
	Name string `json:"name,omitempty"`

	// CreatedAt is the account creation timestamp.
	CreatedAt *time.Time `json:"created_at,omitempty"`
}
