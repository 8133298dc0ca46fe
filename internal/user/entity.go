// AngelaMos | 2026
// entity.go

package user

import (
	"time"
)

type User struct {
	ID              string     `db:"id"`
	Email           string     `db:"email"`
	PasswordHash    string     `db:"password_hash"`
	Name            string     `db:"name"`
	Phone           string     `db:"phone"`
	Role            string     `db:"role"`
	KYCStatus       string     `db:"kyc_status"`
	IsEmailVerified bool       `db:"is_email_verified"`
	TokenVersion    int        `db:"token_version"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
	DeletedAt       *time.Time `db:"deleted_at"`
}

func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsOwner() bool {
	return u.Role == RoleOwner
}

const (
	RoleTenant = "tenant"
	RoleOwner  = "owner"
	RoleAdmin  = "admin"
)

const (
	KYCNotSubmitted = "not_submitted"
	KYCPending      = "pending"
	KYCVerified     = "verified"
	KYCRejected     = "rejected"
)
