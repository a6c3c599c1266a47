package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrEmailAlreadyExists indicates that the user with the given email already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")
	// ErrUserNotFound indicates that the user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrWrongPassword indicates the wrong password for the given user.
	ErrWrongPassword = errors.New("wrong password")
	// ErrUserAccessDenied indicates an attempt to read another user's data.
	ErrUserAccessDenied = errors.New("no permission to access this user")
)

// User holds user data.
type User struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"hashed_password"`
	MobileNumber   string    `json:"mobile_number"`
	Country        string    `json:"country"`
	CreatedAt      time.Time `json:"created_at,omitempty"`
}

// CreateUserParams is the input data to create a user.
type CreateUserParams struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	HashedPassword string `json:"hashed_password"`
	MobileNumber   string `json:"mobile_number"`
	Country        string `json:"country"`
}

// UserWithoutPassword is User data excluding password data.
type UserWithoutPassword struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	MobileNumber string    `json:"mobile_number"`
	Country      string    `json:"country"`
	CreatedAt    time.Time `json:"created_at"`
}

// AuthUser is the verified caller identity handed to the ledger operations.
// The linked account ids are uuid.Nil when the user holds no account of that type.
type AuthUser struct {
	ID               uuid.UUID `json:"id"`
	CurrentAccountID uuid.UUID `json:"current_account_id"`
	SavingsAccountID uuid.UUID `json:"savings_account_id"`
}
