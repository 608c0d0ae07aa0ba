package service

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/unimarket/gateway/internal/gateway/domain"
	"github.com/unimarket/gateway/internal/gateway/store/drivers/sqlite"
	"github.com/unimarket/gateway/pkg/idx"

	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) *GuestCartService {
	t.Helper()

	st, err := sqlite.NewStore("file:" + filepath.Join(t.TempDir(), "carts.db"))
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	return &GuestCartService{Store: st}
}

func TestSaveIssuesIDForNewGuests(t *testing.T) {
	t.Parallel()

	svc := newService(t)
	ctx := context.Background()

	id, err := svc.Save(ctx, idx.Zero, []domain.CartItem{{ProductID: "p5", Quantity: 2}})
	require.NoError(t, err)
	require.False(t, id.IsZero())

	items, err := svc.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, []domain.CartItem{{ProductID: "p5", Quantity: 2}}, items)

	t.Run("existing id is kept", func(t *testing.T) {
		again, err := svc.Save(ctx, id, []domain.CartItem{{ProductID: "p7", Quantity: 1}})
		require.NoError(t, err)
		require.Equal(t, id, again)

		items, err := svc.Get(ctx, id)
		require.NoError(t, err)
		require.Equal(t, []domain.CartItem{{ProductID: "p7", Quantity: 1}}, items)
	})
}

func TestGetAbsentCart(t *testing.T) {
	t.Parallel()

	svc := newService(t)

	_, err := svc.Get(context.Background(), idx.Zero)
	require.ErrorIs(t, err, ErrCartNotFound)

	_, err = svc.Get(context.Background(), idx.New())
	require.ErrorIs(t, err, ErrCartNotFound)
}

func TestDiscard(t *testing.T) {
	t.Parallel()

	svc := newService(t)
	ctx := context.Background()

	id, err := svc.Save(ctx, idx.Zero, []domain.CartItem{{ProductID: "p1", Quantity: 1}})
	require.NoError(t, err)

	require.NoError(t, svc.Discard(ctx, id))
	_, err = svc.Get(ctx, id)
	require.ErrorIs(t, err, ErrCartNotFound)

	// Zero ids and absent carts are no-ops.
	require.NoError(t, svc.Discard(ctx, idx.Zero))
	require.NoError(t, svc.Discard(ctx, id))
}

func TestHousekeepingSweepsExpiredCarts(t *testing.T) {
	t.Parallel()

	svc := newService(t)
	svc.TTL = time.Millisecond
	ctx := context.Background()

	id, err := svc.Save(ctx, idx.Zero, []domain.CartItem{{ProductID: "p1", Quantity: 1}})
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	hk := NewHousekeepingService(svc.Store, slog.Default(), time.Hour)
	hk.Start()
	hk.Stop()

	_, err = svc.Get(ctx, id)
	require.ErrorIs(t, err, ErrCartNotFound)
}
