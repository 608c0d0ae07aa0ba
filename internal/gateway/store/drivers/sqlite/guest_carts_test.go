package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/unimarket/gateway/internal/gateway/domain"
	"github.com/unimarket/gateway/internal/gateway/store"
	"github.com/unimarket/gateway/pkg/idx"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "gateway.db") + "?_busy_timeout=5000"
	s, err := NewStore(dsn)
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestGuestCartUpsertAndGet(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()
	carts := s.GuestCarts()

	id := idx.New()
	cart := domain.GuestCart{
		ID:        id,
		Items:     []domain.CartItem{{ProductID: "p5", Quantity: 2}},
		UpdatedAt: time.Now(),
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}
	require.NoError(t, carts.Upsert(ctx, cart))

	got, err := carts.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, id, got.ID)
	require.Equal(t, cart.Items, got.Items)

	t.Run("upsert replaces items", func(t *testing.T) {
		cart.Items = []domain.CartItem{{ProductID: "p5", Quantity: 3}, {ProductID: "p9", Quantity: 1}}
		require.NoError(t, carts.Upsert(ctx, cart))

		got, err := carts.Get(ctx, id)
		require.NoError(t, err)
		require.Len(t, got.Items, 2)
		require.Equal(t, 3, got.Items[0].Quantity)
	})
}

func TestGuestCartGetAbsent(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	_, err := s.GuestCarts().Get(context.Background(), idx.New())
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestGuestCartDeleteIsIdempotent(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()
	carts := s.GuestCarts()

	id := idx.New()
	require.NoError(t, carts.Upsert(ctx, domain.GuestCart{
		ID:        id,
		Items:     []domain.CartItem{{ProductID: "p1", Quantity: 1}},
		UpdatedAt: time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	require.NoError(t, carts.Delete(ctx, id))
	_, err := carts.Get(ctx, id)
	require.ErrorIs(t, err, store.ErrNotFound)

	// Deleting again is fine.
	require.NoError(t, carts.Delete(ctx, id))
}

func TestGuestCartExpiry(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()
	carts := s.GuestCarts()

	expired := domain.GuestCart{
		ID:        idx.New(),
		Items:     []domain.CartItem{{ProductID: "p2", Quantity: 1}},
		UpdatedAt: time.Now().Add(-48 * time.Hour),
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	live := domain.GuestCart{
		ID:        idx.New(),
		Items:     []domain.CartItem{{ProductID: "p3", Quantity: 1}},
		UpdatedAt: time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, carts.Upsert(ctx, expired))
	require.NoError(t, carts.Upsert(ctx, live))

	// An expired row reads as absent even before housekeeping runs.
	_, err := carts.Get(ctx, expired.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	n, err := carts.DeleteExpired(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	_, err = carts.Get(ctx, live.ID)
	require.NoError(t, err)
}
