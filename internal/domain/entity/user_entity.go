package entity

import (
	"time"
)

// User is the aggregate root for the user domain.
//
// Email is always stored lower-cased. Password holds a bcrypt hash and must
// never leave the store layer in a response. RefreshTokenHash is a bcrypt
// hash of the signature segment of the currently valid refresh token; nil
// means the user has no outstanding refresh token.
type User struct {
	ID               string
	Email            string
	FirstName        string
	LastName         string
	Password         string
	RefreshTokenHash *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
