package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Game struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	// Uniqueness is enforced case-insensitively by an expression index on
	// LOWER(title), created at migration time.
	Title       string         `json:"title" gorm:"not null"`
	Description string         `json:"description"`
	Genres      datatypes.JSON `json:"genres"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// GameRating holds one user's rating of one game. Re-rating updates the
// existing row.
type GameRating struct {
	ID      uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID  uuid.UUID `json:"userId" gorm:"type:uuid;uniqueIndex:idx_ratings_user_game;not null"`
	GameID  uuid.UUID `json:"gameId" gorm:"type:uuid;uniqueIndex:idx_ratings_user_game;not null"`
	Rating  int       `json:"rating" gorm:"not null"`
	RatedAt time.Time `json:"ratedAt" gorm:"not null"`
}

// FavoriteGame is keyed by user + game; there is no independent identity.
type FavoriteGame struct {
	UserID uuid.UUID `json:"userId" gorm:"type:uuid;primaryKey"`
	GameID uuid.UUID `json:"gameId" gorm:"type:uuid;primaryKey"`
}

type PlayedGame struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID     uuid.UUID `json:"userId" gorm:"type:uuid;uniqueIndex:idx_played_user_game;not null"`
	GameID     uuid.UUID `json:"gameId" gorm:"type:uuid;uniqueIndex:idx_played_user_game;not null"`
	PlayedDate time.Time `json:"playedDate" gorm:"not null"`
	Review     string    `json:"review" gorm:"size:200"`
}

const MaxReviewLength = 200
