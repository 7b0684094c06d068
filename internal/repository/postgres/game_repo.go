package postgres

import (
	"context"
	"errors"

	"github.com/gameboxed/gameboxed/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type gameRepository struct {
	db *gorm.DB
}

func NewGameRepository(db *gorm.DB) *gameRepository {
	return &gameRepository{db: db}
}

func (r *gameRepository) Create(ctx context.Context, game *domain.Game) error {
	err := r.db.WithContext(ctx).Create(game).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrGameExists
	}
	return err
}

func (r *gameRepository) GetAll(ctx context.Context) ([]*domain.Game, error) {
	var games []*domain.Game
	err := r.db.WithContext(ctx).Order("title ASC").Find(&games).Error
	if err != nil {
		return nil, err
	}
	return games, nil
}

func (r *gameRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Game, error) {
	var game domain.Game
	err := r.db.WithContext(ctx).First(&game, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &game, nil
}

func (r *gameRepository) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Game{}).
		Where("LOWER(title) = LOWER(?)", title).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Search lists exact title matches first, then fills the remaining slots
// with contains matches, never exceeding limit.
func (r *gameRepository) Search(ctx context.Context, term string, limit int) ([]*domain.Game, error) {
	var games []*domain.Game
	err := r.db.WithContext(ctx).
		Where("LOWER(title) = LOWER(?)", term).
		Limit(limit).
		Find(&games).Error
	if err != nil {
		return nil, err
	}

	if remaining := limit - len(games); remaining > 0 {
		var rest []*domain.Game
		err := r.db.WithContext(ctx).
			Where("title ILIKE ? AND LOWER(title) <> LOWER(?)", "%"+term+"%", term).
			Order("title ASC").
			Limit(remaining).
			Find(&rest).Error
		if err != nil {
			return nil, err
		}
		games = append(games, rest...)
	}

	return games, nil
}

func (r *gameRepository) AverageRating(ctx context.Context, gameID uuid.UUID) (float64, int, error) {
	var result struct {
		Avg   *float64
		Count int64
	}
	err := r.db.WithContext(ctx).
		Model(&domain.GameRating{}).
		Select("AVG(rating) as avg, COUNT(*) as count").
		Where("game_id = ?", gameID).
		Scan(&result).Error
	if err != nil {
		return 0, 0, err
	}
	if result.Avg == nil {
		return 0, 0, nil
	}
	return *result.Avg, int(result.Count), nil
}
