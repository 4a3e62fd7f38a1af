package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type User struct {
	ID                  int        `json:"id"`
	Name                string     `json:"name"`
	Email               string     `json:"email"`
	PasswordHash        string     `json:"password,omitempty"`
	Active              bool       `json:"active"`
	RoleID              int        `json:"role_id"`
	FacebookUserID      *string    `json:"facebook_user_id"`
	FacebookAccessToken *string    `json:"-"`
	Deleted             bool       `json:"deleted"`
	DeletedAt           *time.Time `json:"deleted_at"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// HasFacebookConnection indica se o usuário já conectou uma conta do Facebook
func (u *User) HasFacebookConnection() bool {
	return u != nil && u.FacebookAccessToken != nil && *u.FacebookAccessToken != ""
}

type Claims struct {
	UserID     int
	UserName   string
	UserEmail  string
	UserActive bool
	UserRoleID int
	jwt.RegisteredClaims
}
