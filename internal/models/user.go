// Package models contains the persistent domain types shared by
// repositories and services.
package models

// Role discriminates the two kinds of accounts. Repositories map each
// role to a fixed table; role strings are never interpolated into SQL.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleTeacher
}

// Student is an account in the students table. PasswordHash is an
// opaque bcrypt hash; the plaintext is never stored or logged.
type Student struct {
	ID           int64
	Username     string
	PasswordHash []byte
	RollNo       string
	Name         string
	Batch        string
}

// Teacher is an account in the teachers table.
type Teacher struct {
	ID           int64
	Username     string
	PasswordHash []byte
	Name         string
	Department   string
}
