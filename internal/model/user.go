package model

import "time"

// User represents an operator account in the `users` table.  The
// engine does not own authentication; this record exists only so the
// login boundary can verify credentials and issue access tokens.
//
// Fields:
//  ID           – primary key identifier.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  Role         – role name (OPERATOR or ADMIN).
//  IsActive     – whether the account may log in.
//  CreatedAt    – timestamp of creation.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Role         string    // users.role
	IsActive     bool      // users.is_active
	CreatedAt    time.Time // users.created_at
}
