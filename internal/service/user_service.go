package service

import (
	"context"
	"time"

	"github.com/gameboxed/gameboxed/internal/domain"
	"github.com/gameboxed/gameboxed/internal/repository"
	"github.com/google/uuid"
)

type UserService struct {
	userRepo       repository.UserRepository
	sessionRepo    repository.SessionRepository
	gameRepo       repository.GameRepository
	collectionRepo repository.CollectionRepository
}

func NewUserService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, gameRepo repository.GameRepository, collectionRepo repository.CollectionRepository) *UserService {
	return &UserService{
		userRepo:       userRepo,
		sessionRepo:    sessionRepo,
		gameRepo:       gameRepo,
		collectionRepo: collectionRepo,
	}
}

// ListUsers returns every registered user. The HTTP layer restricts this
// to the Admin role.
func (s *UserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.userRepo.GetAll(ctx)
}

type UpdateProfileInput struct {
	Username string
	Email    string
}

func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Username = foldCredential(input.Username)
	user.Email = foldCredential(input.Email)
	user.UpdatedAt = time.Now()

	// Collisions with another user's username or email surface from the
	// unique indexes as domain.ErrDuplicateCredential.
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// DeleteAccount revokes every active session before the user row goes
// away, so no session can outlive its user.
func (s *UserService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}

	if err := s.sessionRepo.RevokeAllForUser(ctx, userID); err != nil {
		return err
	}

	return s.userRepo.Delete(ctx, userID)
}

func (s *UserService) AddFavorite(ctx context.Context, userID, gameID uuid.UUID) error {
	if _, err := s.gameRepo.GetByID(ctx, gameID); err != nil {
		return err
	}
	return s.collectionRepo.AddFavorite(ctx, userID, gameID)
}

func (s *UserService) RemoveFavorite(ctx context.Context, userID, gameID uuid.UUID) error {
	return s.collectionRepo.RemoveFavorite(ctx, userID, gameID)
}

func (s *UserService) GetFavorites(ctx context.Context, userID uuid.UUID) ([]*domain.Game, error) {
	return s.collectionRepo.ListFavorites(ctx, userID)
}

type AddPlayedInput struct {
	GameID uuid.UUID
	Review string
}

func (s *UserService) AddPlayed(ctx context.Context, userID uuid.UUID, input AddPlayedInput) error {
	if len(input.Review) > domain.MaxReviewLength {
		return domain.ErrReviewTooLong
	}

	if _, err := s.gameRepo.GetByID(ctx, input.GameID); err != nil {
		return err
	}

	return s.collectionRepo.AddPlayed(ctx, &domain.PlayedGame{
		ID:         uuid.New(),
		UserID:     userID,
		GameID:     input.GameID,
		PlayedDate: time.Now(),
		Review:     input.Review,
	})
}

func (s *UserService) RemovePlayed(ctx context.Context, userID, gameID uuid.UUID) error {
	return s.collectionRepo.RemovePlayed(ctx, userID, gameID)
}

func (s *UserService) GetPlayed(ctx context.Context, userID uuid.UUID) ([]*domain.PlayedGame, error) {
	return s.collectionRepo.ListPlayed(ctx, userID)
}
