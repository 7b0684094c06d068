package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/gameboxed/gameboxed/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *sessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *domain.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

// Revoke is a single conditional update: the `active = true` guard makes
// the Active→Revoked transition atomic, and a second revoke of the same
// token matches zero rows.
func (r *sessionRepository) Revoke(ctx context.Context, token string) error {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&domain.Session{}).
		Where("token = ? AND active = ?", token, true).
		Updates(map[string]interface{}{
			"active":      false,
			"logout_time": &now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *sessionRepository) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&domain.Session{}).
		Where("user_id = ? AND active = ?", userID, true).
		Updates(map[string]interface{}{
			"active":      false,
			"logout_time": &now,
		}).Error
}

// IsActive runs on every authenticated request; the token column index
// keeps it a point lookup.
func (r *sessionRepository) IsActive(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Session{}).
		Where("token = ? AND active = ?", token, true).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *sessionRepository) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	var session domain.Session
	err := r.db.WithContext(ctx).First(&session, "token = ?", token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}
