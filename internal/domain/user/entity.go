// Package user contains the user domain model. Users are either anonymous
// (created by the session bootstrap when no token is presented) or
// registered with an email and password.
package user

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// User is the aggregate root for an account.
type User struct {
	id           uuid.UUID
	email        string
	name         string
	passwordHash string
	anonymous    bool
	createdAt    time.Time
	lastSeenAt   time.Time
}

// NewAnonymous creates an anonymous user. Anonymous users carry no
// credentials; their identity lives entirely in the issued token.
func NewAnonymous() *User {
	now := time.Now()
	return &User{
		id:         uuid.New(),
		anonymous:  true,
		createdAt:  now,
		lastSeenAt: now,
	}
}

// NewRegistered creates a registered user with a bcrypt password hash.
func NewRegistered(email, name, password string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}
	if len(password) < 8 {
		return nil, ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &User{
		id:           uuid.New(),
		email:        email,
		name:         strings.TrimSpace(name),
		passwordHash: string(hash),
		createdAt:    now,
		lastSeenAt:   now,
	}, nil
}

// VerifyPassword checks a plaintext password against the stored hash.
func (u *User) VerifyPassword(password string) error {
	if u.anonymous {
		return ErrAnonymousUser
	}
	if bcrypt.CompareHashAndPassword([]byte(u.passwordHash), []byte(password)) != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// Touch records activity on the account.
func (u *User) Touch() {
	u.lastSeenAt = time.Now()
}

// ID returns the user's unique identifier
func (u *User) ID() uuid.UUID {
	return u.id
}

// Email returns the user's email (empty for anonymous users)
func (u *User) Email() string {
	return u.email
}

// Name returns the user's display name
func (u *User) Name() string {
	return u.name
}

// PasswordHash returns the stored bcrypt hash
func (u *User) PasswordHash() string {
	return u.passwordHash
}

// IsAnonymous reports whether the user is an anonymous account
func (u *User) IsAnonymous() bool {
	return u.anonymous
}

// CreatedAt returns when the account was created
func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

// LastSeenAt returns the last recorded activity time
func (u *User) LastSeenAt() time.Time {
	return u.lastSeenAt
}

// Reconstruct rebuilds a User from persisted state.
func Reconstruct(
	id uuid.UUID,
	email, name, passwordHash string,
	anonymous bool,
	createdAt, lastSeenAt time.Time,
) *User {
	return &User{
		id:           id,
		email:        email,
		name:         name,
		passwordHash: passwordHash,
		anonymous:    anonymous,
		createdAt:    createdAt,
		lastSeenAt:   lastSeenAt,
	}
}
