package user

import (
	"net/url"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/devtna/jlsfinder/core"
)

// Roles
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is an account record. The password is stored and compared as-is;
// see DESIGN.md for the accepted limitation carried over from the hosted
// deployment this replaces.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"password,omitempty"`
	Role      string    `json:"role"`
	Username  string    `json:"username,omitempty"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Public returns a copy safe for API responses: the password is dropped.
func (u User) Public() User {
	u.Password = ""
	return u
}

// NewUser contains the information needed at sign-up.
type NewUser struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
	Username        string `json:"username" validate:"required,alphanum_"`
}

func (nu *NewUser) Validate(validate *validator.Validate) error {
	nu.Email = core.CleanString(nu.Email, true /* lower */)
	nu.Username = core.CleanString(nu.Username)
	return validate.Struct(nu)
}

// ProfileUpdate defines what a user may change on their own record.
// Nil fields are left untouched.
type ProfileUpdate struct {
	Username  *string `json:"username" validate:"omitempty,alphanum_"`
	AvatarURL *string `json:"avatarUrl" validate:"omitempty,url"`
	Password  *string `json:"password" validate:"omitempty,min=6"`
}

func (pu *ProfileUpdate) Validate(validate *validator.Validate) error {
	if pu.Username != nil {
		cleaned := core.CleanString(*pu.Username)
		pu.Username = &cleaned
	}
	return validate.Struct(pu)
}

// Merge applies the set fields onto a copy of usr.
func (pu ProfileUpdate) Merge(usr User) User {
	if pu.Username != nil {
		usr.Username = *pu.Username
	}
	if pu.AvatarURL != nil {
		usr.AvatarURL = *pu.AvatarURL
	}
	if pu.Password != nil {
		usr.Password = *pu.Password
	}
	return usr
}

// AvatarURL builds the generated avatar reference assigned at sign-up.
func AvatarURL(username string) string {
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(username) + "&background=BC002D&color=fff"
}

func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}
