package repository

import (
	"context"

	"github.com/gameboxed/gameboxed/internal/domain"
	"github.com/google/uuid"
)

type UserRepository interface {
	// Create inserts the user and its default role assignment in one
	// transaction. A username or email collision surfaces as
	// domain.ErrDuplicateCredential via the storage constraint, never via
	// a pre-check.
	Create(ctx context.Context, user *domain.User, roleID uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetAll(ctx context.Context) ([]*domain.User, error)
	GetRoles(ctx context.Context, userID uuid.UUID) ([]string, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type RoleRepository interface {
	GetOrCreateByName(ctx context.Context, name string) (*domain.Role, error)
	GetAll(ctx context.Context) ([]*domain.Role, error)
}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	// Revoke flips the matching active session to revoked and stamps the
	// logout time. domain.ErrNotFound when no active session matches.
	Revoke(ctx context.Context, token string) error
	RevokeAllForUser(ctx context.Context, userID uuid.UUID) error
	IsActive(ctx context.Context, token string) (bool, error)
	GetByToken(ctx context.Context, token string) (*domain.Session, error)
}

type GameRepository interface {
	Create(ctx context.Context, game *domain.Game) error
	GetAll(ctx context.Context) ([]*domain.Game, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Game, error)
	ExistsByTitle(ctx context.Context, title string) (bool, error)
	// Search returns exact title matches ahead of contains matches, capped
	// at limit.
	Search(ctx context.Context, term string, limit int) ([]*domain.Game, error)
	AverageRating(ctx context.Context, gameID uuid.UUID) (float64, int, error)
}

type RatingRepository interface {
	Upsert(ctx context.Context, rating *domain.GameRating) error
	GetByUserAndGame(ctx context.Context, userID, gameID uuid.UUID) (*domain.GameRating, error)
}

type CollectionRepository interface {
	AddFavorite(ctx context.Context, userID, gameID uuid.UUID) error
	RemoveFavorite(ctx context.Context, userID, gameID uuid.UUID) error
	ListFavorites(ctx context.Context, userID uuid.UUID) ([]*domain.Game, error)
	AddPlayed(ctx context.Context, played *domain.PlayedGame) error
	RemovePlayed(ctx context.Context, userID, gameID uuid.UUID) error
	ListPlayed(ctx context.Context, userID uuid.UUID) ([]*domain.PlayedGame, error)
	IsPlayed(ctx context.Context, userID, gameID uuid.UUID) (bool, error)
}

type Repositories struct {
	User       UserRepository
	Role       RoleRepository
	Session    SessionRepository
	Game       GameRepository
	Rating     RatingRepository
	Collection CollectionRepository
}
