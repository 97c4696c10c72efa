package user

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

type User struct {
	gorm.Model
	Name            string     `gorm:"not null" json:"name"`
	Email           string     `gorm:"uniqueIndex;not null" json:"email"`
	Password        string     `json:"-"`
	Phone           string     `json:"phone,omitempty"`
	Role            string     `gorm:"not null;default:member" json:"role"`
	EmailVerified   bool       `gorm:"default:false" json:"email_verified"`
	VerifyToken     string     `gorm:"index" json:"-"`
	VerifyExpiresAt *time.Time `json:"-"`
	LastLoginAt     *time.Time `json:"last_login_at,omitempty"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
