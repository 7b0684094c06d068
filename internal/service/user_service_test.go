package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gameboxed/gameboxed/internal/domain"
	repoPostgres "github.com/gameboxed/gameboxed/internal/repository/postgres"
	"github.com/gameboxed/gameboxed/internal/service"
	"github.com/gameboxed/gameboxed/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(t *testing.T) (*service.UserService, *testutil.TestDB) {
	t.Helper()

	testDB := testutil.NewTestDB(t)
	repos := repoPostgres.NewRepositories(testDB.DB)
	svc := service.NewUserService(repos.User, repos.Session, repos.Game, repos.Collection)
	return svc, testDB
}

func TestUserService_UpdateProfile(t *testing.T) {
	svc, testDB := newUserService(t)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	other, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	updated, err := svc.UpdateProfile(ctx, user.ID, service.UpdateProfileInput{
		Username: "NewName",
		Email:    "New@Example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "newname", updated.Username)
	assert.Equal(t, "new@example.com", updated.Email)

	// Taking another user's email collides with the constraint.
	_, err = svc.UpdateProfile(ctx, user.ID, service.UpdateProfileInput{
		Username: "newname",
		Email:    other.Email,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateCredential)

	_, err = svc.UpdateProfile(ctx, uuid.New(), service.UpdateProfileInput{
		Username: "ghost",
		Email:    "ghost@example.com",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserService_DeleteAccount(t *testing.T) {
	svc, testDB := newUserService(t)
	repos := repoPostgres.NewRepositories(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	require.NoError(t, repos.Session.Create(ctx, &domain.Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		Token:     "live-session",
		Active:    true,
		LoginTime: time.Now(),
	}))

	require.NoError(t, svc.DeleteAccount(ctx, user.ID))

	// Sessions are revoked before the user goes away.
	active, err := repos.Session.IsActive(ctx, "live-session")
	require.NoError(t, err)
	assert.False(t, active)

	_, err = repos.User.GetByID(ctx, user.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, svc.DeleteAccount(ctx, user.ID), domain.ErrNotFound)
}

func TestUserService_Favorites(t *testing.T) {
	svc, testDB := newUserService(t)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	game := testutil.NewGameBuilder().WithTitle("Favorite Me").Build(t, testDB.DB)

	require.NoError(t, svc.AddFavorite(ctx, user.ID, game.ID))

	// Already favorited.
	assert.ErrorIs(t, svc.AddFavorite(ctx, user.ID, game.ID), domain.ErrAlreadyFavorited)

	// Unknown game.
	assert.ErrorIs(t, svc.AddFavorite(ctx, user.ID, uuid.New()), domain.ErrNotFound)

	favorites, err := svc.GetFavorites(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, game.ID, favorites[0].ID)

	require.NoError(t, svc.RemoveFavorite(ctx, user.ID, game.ID))
	assert.ErrorIs(t, svc.RemoveFavorite(ctx, user.ID, game.ID), domain.ErrNotFound)

	favorites, err = svc.GetFavorites(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, favorites)
}

func TestUserService_Played(t *testing.T) {
	svc, testDB := newUserService(t)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	game := testutil.NewGameBuilder().WithTitle("Played Me").Build(t, testDB.DB)

	require.NoError(t, svc.AddPlayed(ctx, user.ID, service.AddPlayedInput{
		GameID: game.ID,
		Review: "Great game",
	}))

	// One played entry per user and game.
	err := svc.AddPlayed(ctx, user.ID, service.AddPlayedInput{GameID: game.ID})
	assert.ErrorIs(t, err, domain.ErrAlreadyPlayed)

	played, err := svc.GetPlayed(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, played, 1)
	assert.Equal(t, "Great game", played[0].Review)

	require.NoError(t, svc.RemovePlayed(ctx, user.ID, game.ID))

	played, err = svc.GetPlayed(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, played)
}

func TestUserService_AddPlayedReviewTooLong(t *testing.T) {
	svc, testDB := newUserService(t)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	game := testutil.NewGameBuilder().Build(t, testDB.DB)

	err := svc.AddPlayed(ctx, user.ID, service.AddPlayedInput{
		GameID: game.ID,
		Review: strings.Repeat("a", domain.MaxReviewLength+1),
	})
	assert.ErrorIs(t, err, domain.ErrReviewTooLong)

	// Exactly at the limit is fine.
	err = svc.AddPlayed(ctx, user.ID, service.AddPlayedInput{
		GameID: game.ID,
		Review: strings.Repeat("a", domain.MaxReviewLength),
	})
	assert.NoError(t, err)
}
