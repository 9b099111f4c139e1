package users

import (
	"time"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAdmin     Role = "admin"
	RoleArtist    Role = "artist"
	RoleStaff     Role = "staff"
	RoleOrganizer Role = "organizer"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleArtist, RoleStaff, RoleOrganizer:
		return true
	}
	return false
}

type AccountStatus string

const (
	StatusActive   AccountStatus = "active"
	StatusInactive AccountStatus = "inactive"
)

type User struct {
	ID           uint    `gorm:"primaryKey"`
	Username     string  `gorm:"size:64;not null;uniqueIndex:idx_users_username"`
	Email        string  `gorm:"not null;uniqueIndex:idx_users_email"`
	Password     *string `gorm:""`
	AuthProvider string  `gorm:"type:varchar(20);not null;default:'local'"`
	GoogleSub    *string `gorm:"uniqueIndex:idx_users_google_sub"`

	Role   Role          `gorm:"type:varchar(16);not null;default:'user'"`
	Status AccountStatus `gorm:"type:varchar(16);not null;default:'active'"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Active reports whether the account may perform state-mutating calls.
func (u *User) Active() bool {
	return u.Status == StatusActive
}
