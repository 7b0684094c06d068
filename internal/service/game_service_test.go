package service_test

import (
	"context"
	"testing"

	"github.com/gameboxed/gameboxed/internal/domain"
	repoPostgres "github.com/gameboxed/gameboxed/internal/repository/postgres"
	"github.com/gameboxed/gameboxed/internal/service"
	"github.com/gameboxed/gameboxed/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGameService(t *testing.T) (*service.GameService, *testutil.TestDB) {
	t.Helper()

	testDB := testutil.NewTestDB(t)
	repos := repoPostgres.NewRepositories(testDB.DB)
	svc := service.NewGameService(repos.Game, repos.Rating, repos.Collection)
	return svc, testDB
}

func TestGameService_AddGame(t *testing.T) {
	svc, _ := newGameService(t)
	ctx := context.Background()

	game, err := svc.AddGame(ctx, service.AddGameInput{
		Title:       "Hollow Knight",
		Description: "A metroidvania",
		Genres:      []string{"Action", "Adventure"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Hollow Knight", game.Title)

	got, err := svc.GetGame(ctx, game.ID)
	require.NoError(t, err)
	assert.Equal(t, game.ID, got.ID)

	// Duplicate title, case-insensitive.
	_, err = svc.AddGame(ctx, service.AddGameInput{Title: "hollow knight"})
	assert.ErrorIs(t, err, domain.ErrGameExists)
}

func TestGameService_GetAllGames(t *testing.T) {
	svc, testDB := newGameService(t)
	ctx := context.Background()

	testutil.SeedGames(t, testDB.DB, 3)

	games, err := svc.GetAllGames(ctx)
	require.NoError(t, err)
	assert.Len(t, games, 3)
}

func TestGameService_RateGame(t *testing.T) {
	svc, testDB := newGameService(t)
	repos := repoPostgres.NewRepositories(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	game := testutil.NewGameBuilder().Build(t, testDB.DB)

	require.NoError(t, svc.RateGame(ctx, user.ID, game.ID, 4))

	rating, err := repos.Rating.GetByUserAndGame(ctx, user.ID, game.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, rating.Rating)

	// Rating a game marks it played.
	played, err := repos.Collection.IsPlayed(ctx, user.ID, game.ID)
	require.NoError(t, err)
	assert.True(t, played)

	// Re-rating replaces, never duplicates.
	require.NoError(t, svc.RateGame(ctx, user.ID, game.ID, 2))

	rating, err = repos.Rating.GetByUserAndGame(ctx, user.ID, game.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, rating.Rating)

	var count int64
	require.NoError(t, testDB.DB.Model(&domain.GameRating{}).
		Where("user_id = ? AND game_id = ?", user.ID, game.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestGameService_RateGameBounds(t *testing.T) {
	svc, testDB := newGameService(t)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	game := testutil.NewGameBuilder().Build(t, testDB.DB)

	tests := []struct {
		name    string
		rating  int
		wantErr error
	}{
		{name: "below range", rating: -1, wantErr: domain.ErrInvalidRating},
		{name: "above range", rating: 6, wantErr: domain.ErrInvalidRating},
		{name: "lower bound", rating: 0},
		{name: "upper bound", rating: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.RateGame(ctx, user.ID, game.ID, tt.rating)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}

	err := svc.RateGame(ctx, user.ID, uuid.New(), 3)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGameService_GetAverageRating(t *testing.T) {
	svc, testDB := newGameService(t)
	ctx := context.Background()

	game := testutil.NewGameBuilder().Build(t, testDB.DB)

	// No ratings yet.
	summary, err := svc.GetAverageRating(ctx, game.ID)
	require.NoError(t, err)
	assert.Zero(t, summary.Average)
	assert.Zero(t, summary.Count)

	alice, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	bob, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	require.NoError(t, svc.RateGame(ctx, alice.ID, game.ID, 5))
	require.NoError(t, svc.RateGame(ctx, bob.ID, game.ID, 2))

	summary, err = svc.GetAverageRating(ctx, game.ID)
	require.NoError(t, err)
	assert.InDelta(t, 3.5, summary.Average, 0.001)
	assert.Equal(t, 2, summary.Count)

	_, err = svc.GetAverageRating(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
