package sessions

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pgmaint/internal/models"
)

const testTTL = 24 * time.Hour

func ownerSession(t *testing.T, now time.Time) *models.Session {
	t.Helper()
	token, err := NewToken()
	require.NoError(t, err)
	return models.NewOwnerSession(token, models.OwnerPrincipal{
		ID:       uuid.New(),
		Username: "admin",
		Name:     "Administrator",
	}, now, testTTL)
}

func TestNewToken_Unique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		tok, err := NewToken()
		require.NoError(t, err)
		assert.Len(t, tok, 43)
		_, dup := seen[tok]
		assert.False(t, dup)
		seen[tok] = struct{}{}
	}
}

func TestDigest_Stable(t *testing.T) {
	assert.Equal(t, Digest("abc"), Digest("abc"))
	assert.NotEqual(t, Digest("abc"), Digest("abd"))
	assert.Len(t, Digest("abc"), 64)
}

func TestMemoryStore_SaveGetDelete(t *testing.T) {
	ctx := context.Background()
	clock := clockwork.NewFakeClock()
	store := NewMemoryStore(clock)
	s := ownerSession(t, clock.Now())

	require.NoError(t, store.Save(ctx, s))

	got, err := store.Get(ctx, s.Token)
	require.NoError(t, err)
	assert.Equal(t, s.Owner.Username, got.Owner.Username)
	assert.Equal(t, models.PrincipalOwner, got.Kind)

	require.NoError(t, store.Delete(ctx, s.Token))
	_, err = store.Get(ctx, s.Token)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// Deleting again is not an error.
	assert.NoError(t, store.Delete(ctx, s.Token))
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	clock := clockwork.NewFakeClock()
	store := NewMemoryStore(clock)
	s := ownerSession(t, clock.Now())
	require.NoError(t, store.Save(ctx, s))

	s.Owner.Name = "mutated after save"
	got, err := store.Get(ctx, s.Token)
	require.NoError(t, err)
	assert.Equal(t, "Administrator", got.Owner.Name)

	got.Owner.Name = "mutated after get"
	again, err := store.Get(ctx, s.Token)
	require.NoError(t, err)
	assert.Equal(t, "Administrator", again.Owner.Name)
}

func TestMemoryStore_ExpiryBoundary(t *testing.T) {
	ctx := context.Background()
	clock := clockwork.NewFakeClock()
	store := NewMemoryStore(clock)
	s := ownerSession(t, clock.Now())
	require.NoError(t, store.Save(ctx, s))

	clock.Advance(testTTL - time.Nanosecond)
	_, err := store.Get(ctx, s.Token)
	require.NoError(t, err, "session must be live just before its TTL")

	clock.Advance(2 * time.Nanosecond)
	_, err = store.Get(ctx, s.Token)
	assert.ErrorIs(t, err, ErrSessionNotFound, "session must be dead just after its TTL")
}

func TestMemoryStore_RejectsMalformed(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(clockwork.NewFakeClock())

	s := ownerSession(t, time.Now())
	s.Tenant = &models.TenantPrincipal{ID: uuid.New()}
	assert.ErrorIs(t, store.Save(ctx, s), models.ErrMalformedSession)

	s = ownerSession(t, time.Now())
	s.Token = ""
	assert.Error(t, store.Save(ctx, s))
}

func TestMemoryStore_SweepAndLen(t *testing.T) {
	ctx := context.Background()
	clock := clockwork.NewFakeClock()
	store := NewMemoryStore(clock)

	old := ownerSession(t, clock.Now())
	require.NoError(t, store.Save(ctx, old))
	clock.Advance(12 * time.Hour)
	fresh := ownerSession(t, clock.Now())
	require.NoError(t, store.Save(ctx, fresh))

	n, err := store.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	clock.Advance(13 * time.Hour)
	n, err = store.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	removed, err := store.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = store.Get(ctx, fresh.Token)
	assert.NoError(t, err)
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	clock := clockwork.NewFakeClock()
	store := NewMemoryStore(clock)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s := models.NewTenantSession(fmt.Sprintf("token-%d", i), models.TenantPrincipal{
				ID:         uuid.New(),
				Name:       "Tenant",
				RoomNumber: "101",
			}, clock.Now(), testTTL)
			assert.NoError(t, store.Save(ctx, s))
			_, err := store.Get(ctx, s.Token)
			assert.NoError(t, err)
			if i%2 == 0 {
				assert.NoError(t, store.Delete(ctx, s.Token))
			}
		}(i)
	}
	wg.Wait()

	n, err := store.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 25, n)
}
