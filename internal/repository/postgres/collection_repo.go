package postgres

import (
	"context"
	"errors"

	"github.com/gameboxed/gameboxed/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type collectionRepository struct {
	db *gorm.DB
}

func NewCollectionRepository(db *gorm.DB) *collectionRepository {
	return &collectionRepository{db: db}
}

func (r *collectionRepository) AddFavorite(ctx context.Context, userID, gameID uuid.UUID) error {
	err := r.db.WithContext(ctx).Create(&domain.FavoriteGame{UserID: userID, GameID: gameID}).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrAlreadyFavorited
	}
	return err
}

func (r *collectionRepository) RemoveFavorite(ctx context.Context, userID, gameID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&domain.FavoriteGame{}, "user_id = ? AND game_id = ?", userID, gameID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *collectionRepository) ListFavorites(ctx context.Context, userID uuid.UUID) ([]*domain.Game, error) {
	var games []*domain.Game
	err := r.db.WithContext(ctx).
		Model(&domain.Game{}).
		Joins("JOIN favorite_games ON favorite_games.game_id = games.id").
		Where("favorite_games.user_id = ?", userID).
		Order("games.title ASC").
		Find(&games).Error
	if err != nil {
		return nil, err
	}
	return games, nil
}

func (r *collectionRepository) AddPlayed(ctx context.Context, played *domain.PlayedGame) error {
	err := r.db.WithContext(ctx).Create(played).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrAlreadyPlayed
	}
	return err
}

func (r *collectionRepository) RemovePlayed(ctx context.Context, userID, gameID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&domain.PlayedGame{}, "user_id = ? AND game_id = ?", userID, gameID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *collectionRepository) ListPlayed(ctx context.Context, userID uuid.UUID) ([]*domain.PlayedGame, error) {
	var played []*domain.PlayedGame
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("played_date DESC").
		Find(&played).Error
	if err != nil {
		return nil, err
	}
	return played, nil
}

func (r *collectionRepository) IsPlayed(ctx context.Context, userID, gameID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.PlayedGame{}).
		Where("user_id = ? AND game_id = ?", userID, gameID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
