package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/pawconnect-server/internal/mocks"
	"github.com/dtroode/pawconnect-server/internal/model"
	"github.com/dtroode/pawconnect-server/internal/repository/memory"
	"github.com/dtroode/pawconnect-server/internal/testutil"
)

func TestSeeder_Seed(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	hasher := NewBcryptHasher(bcrypt.MinCost)

	seeded, err := NewSeeder(store, hasher, testutil.MakeNoopLogger()).Seed(ctx)
	require.NoError(t, err)
	assert.True(t, seeded)

	users := store.Stores().Users
	n, err := users.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	admin, err := users.GetByEmail(ctx, "admin@pawconnect.com")
	require.NoError(t, err)
	assert.True(t, admin.HasRole(model.RoleAdmin))
	assert.True(t, admin.AccountVerified)
	assert.True(t, hasher.Verify("admin123", admin.PasswordHash))

	john, err := users.GetByUsername(ctx, "johndoe")
	require.NoError(t, err)
	assert.Equal(t, []model.RoleKind{model.RoleUser}, john.RoleKinds())
	assert.True(t, hasher.Verify("user123", john.PasswordHash))

	adoption, missing, donation := memory.NewListingRepository(store).Counts()
	assert.Equal(t, 5, adoption)
	assert.Equal(t, 4, missing)
	assert.Equal(t, 3, donation)
}

func TestSeeder_ConfiguredAdminPassword(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	hasher := NewBcryptHasher(bcrypt.MinCost)

	seeded, err := NewSeeder(store, hasher, testutil.MakeNoopLogger()).
		WithAdminPassword("s3cret-admin").
		Seed(ctx)
	require.NoError(t, err)
	require.True(t, seeded)

	admin, err := store.Stores().Users.GetByEmail(ctx, "admin@pawconnect.com")
	require.NoError(t, err)
	assert.True(t, hasher.Verify("s3cret-admin", admin.PasswordHash))
	assert.False(t, hasher.Verify(DefaultAdminPassword, admin.PasswordHash))

	john, err := store.Stores().Users.GetByUsername(ctx, "johndoe")
	require.NoError(t, err)
	assert.True(t, hasher.Verify("user123", john.PasswordHash))
}

func TestSeeder_EmptyAdminPasswordKeepsDefault(t *testing.T) {
	s := NewSeeder(memory.NewStore(), mocks.NewPasswordHasher(t), testutil.MakeNoopLogger()).WithAdminPassword("")
	assert.Equal(t, DefaultAdminPassword, s.adminPassword)
}

func TestSeeder_SkipsPopulatedDatabase(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	_, err := store.Stores().Users.Create(ctx, model.User{Email: "ann@paw.test", Username: "ann", Name: "Ann"})
	require.NoError(t, err)

	// The hasher mock has no expectations: nothing may be hashed.
	seeded, err := NewSeeder(store, mocks.NewPasswordHasher(t), testutil.MakeNoopLogger()).Seed(ctx)
	require.NoError(t, err)
	assert.False(t, seeded)

	adoption, _, _ := memory.NewListingRepository(store).Counts()
	assert.Zero(t, adoption)
}

func TestSeeder_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seeder := NewSeeder(store, NewBcryptHasher(bcrypt.MinCost), testutil.MakeNoopLogger())

	first, err := seeder.Seed(ctx)
	require.NoError(t, err)
	second, err := seeder.Seed(ctx)
	require.NoError(t, err)

	assert.True(t, first)
	assert.False(t, second)
	n, err := store.Stores().Users.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
}

func TestSeeder_RollsBackOnFailure(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	hasher := mocks.NewPasswordHasher(t)
	hasher.On("Hash", "admin123").Return("admin-hash", nil).Once()
	hasher.On("Hash", "user123").Return("", errors.New("hasher exhausted")).Once()

	seeded, err := NewSeeder(store, hasher, testutil.MakeNoopLogger()).Seed(ctx)
	require.ErrorContains(t, err, "hasher exhausted")
	assert.False(t, seeded)

	n, err := store.Stores().Users.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = store.Stores().Roles.GetByName(ctx, model.RoleAdmin)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestSeeder_TransactionError(t *testing.T) {
	txm := mocks.NewTxManager(t)
	txm.On("WithinTx", context.Background(), mock.Anything).Return(errors.New("begin failed")).Once()

	seeded, err := NewSeeder(txm, mocks.NewPasswordHasher(t), testutil.MakeNoopLogger()).Seed(context.Background())
	assert.ErrorContains(t, err, "begin failed")
	assert.False(t, seeded)
}
