package handlers

import (
	"github.com/rzkmak/auth-service/internal/domain/entity"
)

// ProfileBody is the public shape of a user. Fields are an explicit
// whitelist: the password hash and refresh fingerprint can never appear
// here because they are never copied in.
type ProfileBody struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func NewProfileBody(u *entity.User) ProfileBody {
	return ProfileBody{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}
