package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Username     string    `json:"username" gorm:"uniqueIndex;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Role struct {
	ID   uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name string    `json:"name" gorm:"uniqueIndex;not null"`
}

// UserRole is the user/role assignment. Relations are id pairs resolved
// through explicit lookups; neither side holds a navigation reference.
type UserRole struct {
	UserID uuid.UUID `json:"userId" gorm:"type:uuid;primaryKey"`
	RoleID uuid.UUID `json:"roleId" gorm:"type:uuid;primaryKey"`
}

const (
	RoleUser      = "User"
	RoleModerator = "Moderator"
	RoleAdmin     = "Admin"
)
