package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/gameboxed/gameboxed/internal/domain"
	"github.com/gameboxed/gameboxed/internal/repository/postgres"
	"github.com/gameboxed/gameboxed/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_Create(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	roleRepo := postgres.NewRoleRepository(testDB.DB)
	ctx := context.Background()

	role, err := roleRepo.GetOrCreateByName(ctx, domain.RoleUser)
	require.NoError(t, err)

	first := &domain.User{
		ID:           uuid.New(),
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "hashedpassword",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	require.NoError(t, repo.Create(ctx, first, role.ID))

	tests := []struct {
		name    string
		user    *domain.User
		wantErr error
	}{
		{
			name: "duplicate username",
			user: &domain.User{
				ID:           uuid.New(),
				Username:     "alice", // Same as above
				Email:        "other@example.com",
				PasswordHash: "hashedpassword2",
			},
			wantErr: domain.ErrDuplicateCredential,
		},
		{
			name: "duplicate email",
			user: &domain.User{
				ID:           uuid.New(),
				Username:     "bob",
				Email:        "alice@example.com", // Same as above
				PasswordHash: "hashedpassword2",
			},
			wantErr: domain.ErrDuplicateCredential,
		},
		{
			name: "distinct credentials",
			user: &domain.User{
				ID:           uuid.New(),
				Username:     "carol",
				Email:        "carol@example.com",
				PasswordHash: "hashedpassword3",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.Create(ctx, tt.user, role.ID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestUserRepository_DuplicateRollsBackAssignment(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	roleRepo := postgres.NewRoleRepository(testDB.DB)
	ctx := context.Background()

	role, err := roleRepo.GetOrCreateByName(ctx, domain.RoleUser)
	require.NoError(t, err)

	user, _ := testutil.NewUserBuilder().WithUsername("dup_user").Build(t, testDB.DB)

	clash := &domain.User{
		ID:           uuid.New(),
		Username:     user.Username,
		Email:        "unused@example.com",
		PasswordHash: "hash",
	}
	require.ErrorIs(t, repo.Create(ctx, clash, role.ID), domain.ErrDuplicateCredential)

	// The failed insert must not leave a role assignment behind.
	var count int64
	require.NoError(t, testDB.DB.Model(&domain.UserRole{}).Where("user_id = ?", clash.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUserRepository_GetByUsername(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().WithUsername("lookup_user").Build(t, testDB.DB)

	tests := []struct {
		name     string
		username string
		wantErr  error
	}{
		{name: "existing user", username: "lookup_user"},
		{name: "non-existent user", username: "nonexistent", wantErr: domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.GetByUsername(ctx, tt.username)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, user.ID, got.ID)
			assert.Equal(t, user.Username, got.Username)
		})
	}
}

func TestUserRepository_GetByID(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().WithUsername("getbyid_user").Build(t, testDB.DB)

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserRepository_GetAll(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	users, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	testutil.NewUserBuilder().WithUsername("zoe").Build(t, testDB.DB)
	testutil.NewUserBuilder().WithUsername("adam").Build(t, testDB.DB)

	users, err = repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	// Ordered by username.
	assert.Equal(t, "adam", users[0].Username)
	assert.Equal(t, "zoe", users[1].Username)
}

func TestUserRepository_GetRoles(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().
		WithUsername("roles_user").
		WithRoles(domain.RoleUser, domain.RoleAdmin).
		Build(t, testDB.DB)

	roles, err := repo.GetRoles(ctx, user.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{domain.RoleUser, domain.RoleAdmin}, roles)

	// Unknown user simply has no roles.
	roles, err = repo.GetRoles(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, roles)
}

func TestUserRepository_Update(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().WithUsername("update_user").Build(t, testDB.DB)
	other, _ := testutil.NewUserBuilder().WithUsername("update_other").Build(t, testDB.DB)

	// Plain update
	user.Username = "updated_user"
	require.NoError(t, repo.Update(ctx, user))

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "updated_user", got.Username)

	// Colliding with another user's email hits the constraint
	user.Email = other.Email
	assert.ErrorIs(t, repo.Update(ctx, user), domain.ErrDuplicateCredential)
}

func TestUserRepository_Delete(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().WithUsername("delete_user").Build(t, testDB.DB)

	require.NoError(t, repo.Delete(ctx, user.ID))

	_, err := repo.GetByID(ctx, user.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	roles, err := repo.GetRoles(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, roles)
}
