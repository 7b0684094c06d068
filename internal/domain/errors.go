package domain

import "errors"

// Authentication errors
var (
	ErrDuplicateCredential = errors.New("username or email already exists")
	ErrNotFound            = errors.New("not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidToken        = errors.New("invalid token")
	ErrRevokedToken        = errors.New("no active session for token")
	ErrInsufficientRole    = errors.New("insufficient role")
)

// Catalog errors
var (
	ErrGameExists       = errors.New("game with this title already exists")
	ErrInvalidRating    = errors.New("rating must be between 0 and 5")
	ErrAlreadyFavorited = errors.New("game already in favorites")
	ErrAlreadyPlayed    = errors.New("game already in played list")
	ErrReviewTooLong    = errors.New("review cannot exceed 200 characters")
)
