package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/gameboxed/gameboxed/internal/domain"
	"github.com/gameboxed/gameboxed/internal/repository"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type GameService struct {
	gameRepo       repository.GameRepository
	ratingRepo     repository.RatingRepository
	collectionRepo repository.CollectionRepository
}

func NewGameService(gameRepo repository.GameRepository, ratingRepo repository.RatingRepository, collectionRepo repository.CollectionRepository) *GameService {
	return &GameService{
		gameRepo:       gameRepo,
		ratingRepo:     ratingRepo,
		collectionRepo: collectionRepo,
	}
}

type AddGameInput struct {
	Title       string
	Description string
	Genres      []string
}

func (s *GameService) AddGame(ctx context.Context, input AddGameInput) (*domain.Game, error) {
	exists, err := s.gameRepo.ExistsByTitle(ctx, input.Title)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrGameExists
	}

	genresJSON, err := json.Marshal(input.Genres)
	if err != nil {
		return nil, err
	}

	game := &domain.Game{
		ID:          uuid.New(),
		Title:       input.Title,
		Description: input.Description,
		Genres:      datatypes.JSON(genresJSON),
		CreatedAt:   time.Now(),
	}

	if err := s.gameRepo.Create(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

func (s *GameService) GetAllGames(ctx context.Context) ([]*domain.Game, error) {
	return s.gameRepo.GetAll(ctx)
}

func (s *GameService) GetGame(ctx context.Context, id uuid.UUID) (*domain.Game, error) {
	return s.gameRepo.GetByID(ctx, id)
}

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 100
)

// SearchGames ranks exact title matches ahead of contains matches.
func (s *GameService) SearchGames(ctx context.Context, term string, limit int) ([]*domain.Game, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}
	return s.gameRepo.Search(ctx, strings.TrimSpace(term), limit)
}

// RateGame upserts the user's rating and marks the game played if it is
// not already on the user's played list.
func (s *GameService) RateGame(ctx context.Context, userID, gameID uuid.UUID, rating int) error {
	if rating < 0 || rating > 5 {
		return domain.ErrInvalidRating
	}

	if _, err := s.gameRepo.GetByID(ctx, gameID); err != nil {
		return err
	}

	gameRating := &domain.GameRating{
		ID:      uuid.New(),
		UserID:  userID,
		GameID:  gameID,
		Rating:  rating,
		RatedAt: time.Now(),
	}
	if err := s.ratingRepo.Upsert(ctx, gameRating); err != nil {
		return err
	}

	played, err := s.collectionRepo.IsPlayed(ctx, userID, gameID)
	if err != nil {
		return err
	}
	if !played {
		return s.collectionRepo.AddPlayed(ctx, &domain.PlayedGame{
			ID:         uuid.New(),
			UserID:     userID,
			GameID:     gameID,
			PlayedDate: time.Now(),
		})
	}

	return nil
}

type RatingSummary struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

func (s *GameService) GetAverageRating(ctx context.Context, gameID uuid.UUID) (*RatingSummary, error) {
	if _, err := s.gameRepo.GetByID(ctx, gameID); err != nil {
		return nil, err
	}

	avg, count, err := s.gameRepo.AverageRating(ctx, gameID)
	if err != nil {
		return nil, err
	}

	return &RatingSummary{Average: avg, Count: count}, nil
}
