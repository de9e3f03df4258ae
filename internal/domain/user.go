package domain

import (
	"context"
	"errors"
	"strings"
)

// Sentinel errors shared across services and repositories.
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already in use")
	ErrEventNotFound  = errors.New("event not found")
	ErrInvalidInput   = errors.New("invalid input")
)

// User represents a registered user. Email is the identifying attribute and
// is unique case-insensitively; users are immutable after creation.
type User struct {
	Name  string
	Email string
	Phone string
}

// NewUser returns a new User with the given fields.
func NewUser(name, email, phone string) *User {
	return &User{
		Name:  name,
		Email: email,
		Phone: phone,
	}
}

// Equal reports whether two users are the same record (all fields match).
func (u *User) Equal(other *User) bool {
	if u == nil || other == nil {
		return u == other
	}
	return u.Name == other.Name && u.Email == other.Email && u.Phone == other.Phone
}

// EmailEquals reports whether the user's email matches the given one,
// compared case-insensitively. Login and registration both use this rule.
func (u *User) EmailEquals(email string) bool {
	return strings.EqualFold(u.Email, email)
}

// UserRepository defines the interface for user storage.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]*User, error)
}

// UserService defines the business logic for registration and login.
type UserService interface {
	Register(ctx context.Context, name, email, phone string) (*User, error)
	Login(ctx context.Context, email string) (*User, error)
}
