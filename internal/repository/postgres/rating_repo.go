package postgres

import (
	"context"
	"errors"

	"github.com/gameboxed/gameboxed/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *ratingRepository {
	return &ratingRepository{db: db}
}

// Upsert keeps one rating per user+game; re-rating updates the score and
// timestamp in place.
func (r *ratingRepository) Upsert(ctx context.Context, rating *domain.GameRating) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "game_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"rating", "rated_at"}),
	}).Create(rating).Error
}

func (r *ratingRepository) GetByUserAndGame(ctx context.Context, userID, gameID uuid.UUID) (*domain.GameRating, error) {
	var rating domain.GameRating
	err := r.db.WithContext(ctx).First(&rating, "user_id = ? AND game_id = ?", userID, gameID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rating, nil
}
