package memory

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/pawconnect-server/internal/model"
)

func seedRoles(t *testing.T, s *Store) (admin, user model.Role) {
	t.Helper()
	roles := NewRoleRepository(s)
	admin, err := roles.GetOrCreate(context.Background(), model.RoleAdmin)
	require.NoError(t, err)
	user, err = roles.GetOrCreate(context.Background(), model.RoleUser)
	require.NoError(t, err)
	return admin, user
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	_, userRole := seedRoles(t, s)
	users := NewUserRepository(s)

	created, err := users.Create(ctx, model.User{
		Email: "john@pawconnect.com", Username: "johndoe", Name: "John Doe",
		Roles: []model.Role{{Name: model.RoleUser}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, []model.Role{userRole}, created.Roles)

	got, err := users.GetByUsername(ctx, "johndoe")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = users.GetByEmail(ctx, "missing@pawconnect.com")
	assert.ErrorIs(t, err, model.ErrNotFound)

	ok, err := users.ExistsByEmail(ctx, "john@pawconnect.com")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUserRepository_Duplicates(t *testing.T) {
	ctx := context.Background()
	users := NewUserRepository(NewStore())

	_, err := users.Create(ctx, model.User{Email: "a@x.io", Username: "alpha"})
	require.NoError(t, err)

	_, err = users.Create(ctx, model.User{Email: "a@x.io", Username: "beta"})
	var dup *model.DuplicateError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "email", dup.Field)

	_, err = users.Create(ctx, model.User{Email: "b@x.io", Username: "alpha"})
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "username", dup.Field)

	_, err = users.Create(ctx, model.User{Email: "A@X.io", Username: "gamma"})
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "email", dup.Field)
}

func TestUserRepository_SaveMissing(t *testing.T) {
	_, err := NewUserRepository(NewStore()).Save(context.Background(), model.User{ID: 9})
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestUserRepository_List(t *testing.T) {
	ctx := context.Background()
	users := NewUserRepository(NewStore())
	for _, name := range []string{"carol", "alice", "bob"} {
		_, err := users.Create(ctx, model.User{Email: name + "@x.io", Username: name, Name: name})
		require.NoError(t, err)
	}

	page, total, err := users.List(ctx, model.PageRequest{PageNo: 0, PageSize: 2, SortBy: "username", SortDir: model.SortAsc})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page, 2)
	assert.Equal(t, "alice", page[0].Username)
	assert.Equal(t, "bob", page[1].Username)

	page, _, err = users.List(ctx, model.PageRequest{PageNo: 1, PageSize: 2, SortBy: "id", SortDir: model.SortDesc})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, int64(1), page[0].ID)

	page, _, err = users.List(ctx, model.PageRequest{PageNo: 5, PageSize: 2, SortBy: "id"})
	require.NoError(t, err)
	assert.Empty(t, page)

	for _, pageNo := range []int{1<<61 + 1, 1 << 62} {
		page, total, err = users.List(ctx, model.PageRequest{PageNo: pageNo, PageSize: 4, SortBy: "id"})
		require.NoError(t, err)
		assert.Empty(t, page, "page %d", pageNo)
		assert.Equal(t, int64(3), total)
	}
}

func TestTokenRepository_ConsumeOnce(t *testing.T) {
	ctx := context.Background()
	tokens := NewTokenRepository(NewStore())
	hash := []byte("h1")

	require.NoError(t, tokens.Create(ctx, model.AuthToken{
		Hash: hash, Purpose: model.TokenPurposeVerification, UserID: 1, ExpiresAt: time.Now().Add(time.Hour),
	}))

	_, err := tokens.Consume(ctx, hash, model.TokenPurposePasswordReset)
	assert.ErrorIs(t, err, model.ErrNotFound)

	var (
		wg sync.WaitGroup
		ok atomic.Int32
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := tokens.Consume(ctx, hash, model.TokenPurposeVerification); err == nil {
				ok.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), ok.Load())
}

func TestTokenRepository_DeleteByUserAndExpired(t *testing.T) {
	ctx := context.Background()
	tokens := NewTokenRepository(NewStore())
	now := time.Now()

	require.NoError(t, tokens.Create(ctx, model.AuthToken{Hash: []byte("a"), Purpose: model.TokenPurposeVerification, UserID: 1, ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, tokens.Create(ctx, model.AuthToken{Hash: []byte("b"), Purpose: model.TokenPurposePasswordReset, UserID: 1, ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, tokens.Create(ctx, model.AuthToken{Hash: []byte("c"), Purpose: model.TokenPurposeVerification, UserID: 2, ExpiresAt: now.Add(-time.Minute)}))

	require.NoError(t, tokens.DeleteByUser(ctx, 1, model.TokenPurposeVerification))
	_, err := tokens.Consume(ctx, []byte("a"), model.TokenPurposeVerification)
	assert.ErrorIs(t, err, model.ErrNotFound)

	n, err := tokens.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = tokens.Consume(ctx, []byte("b"), model.TokenPurposePasswordReset)
	assert.NoError(t, err)
}

func TestStore_WithinTxRollsBack(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedRoles(t, s)

	errAbort := errors.New("abort")
	err := s.WithinTx(ctx, func(ctx context.Context, st model.Stores) error {
		_, err := st.Users.Create(ctx, model.User{Email: "tx@x.io", Username: "tx"})
		require.NoError(t, err)
		_, err = st.Listings.CreateAdoptionPost(ctx, model.AdoptionPost{Name: "Luna"})
		require.NoError(t, err)
		return errAbort
	})
	require.ErrorIs(t, err, errAbort)

	n, err := NewUserRepository(s).Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	adoption, _, _ := NewListingRepository(s).Counts()
	assert.Zero(t, adoption)
}

func TestStore_WithinTxCommits(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	err := s.WithinTx(ctx, func(ctx context.Context, st model.Stores) error {
		if _, err := st.Roles.GetOrCreate(ctx, model.RoleUser); err != nil {
			return err
		}
		_, err := st.Users.Create(ctx, model.User{Email: "ok@x.io", Username: "ok", Roles: []model.Role{{Name: model.RoleUser}}})
		return err
	})
	require.NoError(t, err)

	u, err := NewUserRepository(s).GetByEmail(ctx, "ok@x.io")
	require.NoError(t, err)
	assert.True(t, u.HasRole(model.RoleUser))
}

func TestStore_WithinTxRestoresOnPanic(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	assert.Panics(t, func() {
		_ = s.WithinTx(ctx, func(ctx context.Context, st model.Stores) error {
			_, _ = st.Users.Create(ctx, model.User{Email: "p@x.io", Username: "p"})
			panic("boom")
		})
	})

	n, _ := NewUserRepository(s).Count(ctx)
	assert.Zero(t, n)
}
