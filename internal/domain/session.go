package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session pairs an issued token with its active/revoked state. The token
// column is indexed because activity checks run on every authenticated
// request. Rows are never flipped back to active; a fresh login creates a
// new row.
type Session struct {
	ID         uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID     uuid.UUID  `json:"userId" gorm:"type:uuid;index;not null"`
	Token      string     `json:"-" gorm:"size:1000;index;not null"`
	Active     bool       `json:"active" gorm:"not null"`
	LoginTime  time.Time  `json:"loginTime" gorm:"not null"`
	LogoutTime *time.Time `json:"logoutTime"`
}
