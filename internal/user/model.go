package user

import (
	"errors"
	"time"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailAlreadyUsed   = errors.New("email already used")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInactiveUser       = errors.New("user is inactive")
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordTooShort   = errors.New("password is too short")
	ErrInvalidRole        = errors.New("invalid role")
	ErrLodgeRequired      = errors.New("lodge_manager role requires a lodge_id")
)

// Role determines what a principal may do.
// Managers additionally carry the lodge they manage.
type Role string

const (
	RoleCustomer     Role = "customer"
	RoleAdmin        Role = "admin"
	RoleLodgeManager Role = "lodge_manager"
)

// ValidRoles lists every accepted role value.
var ValidRoles = []Role{RoleCustomer, RoleAdmin, RoleLodgeManager}

// User represents a registered account.
type User struct {
	ID           string // UUID
	Email        string
	PasswordHash string
	DisplayName  string
	Role         Role
	LodgeID      *string // set when Role is lodge_manager
	PhotoURL     *string
	PhoneNumber  *string
	Address      *string
	City         *string
	Country      *string
	ZipCode      *string
	CreatedAt    time.Time
	LastLoginAt  *time.Time
	IsActive     bool
}

// Filter defines filter options for listing users.
type Filter struct {
	Email       string
	DisplayName string
	Role        string
	IsActive    *bool // pointer to distinguish between false and not set

	Page     int
	PageSize int
}
