package postgres

import (
	"context"

	"github.com/gameboxed/gameboxed/internal/domain"
	"github.com/gameboxed/gameboxed/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewConnection(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
		// Unique violations must surface as gorm.ErrDuplicatedKey so the
		// repositories can map them instead of pre-checking.
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	// Auto-migrate tables
	err = db.AutoMigrate(
		&domain.User{},
		&domain.Role{},
		&domain.UserRole{},
		&domain.Session{},
		&domain.Game{},
		&domain.GameRating{},
		&domain.FavoriteGame{},
		&domain.PlayedGame{},
	)
	if err != nil {
		return nil, err
	}

	// Case-insensitive title uniqueness; AutoMigrate cannot express an
	// index over LOWER(title).
	err = db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_games_title_lower ON games (LOWER(title))").Error
	if err != nil {
		return nil, err
	}

	return db, nil
}

// SeedRoles makes sure the reference role set exists. Safe to run on every
// boot; the unique index on role name absorbs concurrent first boots.
func SeedRoles(db *gorm.DB) error {
	roleRepo := NewRoleRepository(db)
	ctx := context.Background()
	for _, name := range []string{domain.RoleUser, domain.RoleModerator, domain.RoleAdmin} {
		if _, err := roleRepo.GetOrCreateByName(ctx, name); err != nil {
			return err
		}
	}
	return nil
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		User:       NewUserRepository(db),
		Role:       NewRoleRepository(db),
		Session:    NewSessionRepository(db),
		Game:       NewGameRepository(db),
		Rating:     NewRatingRepository(db),
		Collection: NewCollectionRepository(db),
	}
}
