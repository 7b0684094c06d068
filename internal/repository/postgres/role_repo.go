package postgres

import (
	"context"
	"errors"

	"github.com/gameboxed/gameboxed/internal/domain"
	"gorm.io/gorm"
)

type roleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) *roleRepository {
	return &roleRepository{db: db}
}

// GetOrCreateByName looks a role up by name, creating it if missing. Two
// callers racing on the same name are resolved by the unique index: the
// loser re-reads the winner's row.
func (r *roleRepository) GetOrCreateByName(ctx context.Context, name string) (*domain.Role, error) {
	var role domain.Role
	err := r.db.WithContext(ctx).Where("name = ?", name).FirstOrCreate(&role, domain.Role{Name: name}).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		err = r.db.WithContext(ctx).First(&role, "name = ?", name).Error
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *roleRepository) GetAll(ctx context.Context) ([]*domain.Role, error) {
	var roles []*domain.Role
	err := r.db.WithContext(ctx).Order("name ASC").Find(&roles).Error
	if err != nil {
		return nil, err
	}
	return roles, nil
}
