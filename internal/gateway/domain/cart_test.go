package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCartItemDecodesBrowserPayload(t *testing.T) {
	t.Parallel()

	// Product ids are opaque strings on the wire, the same shape the
	// marketplace backend issues. A payload like this must round-trip.
	var items []CartItem
	err := json.Unmarshal([]byte(`[{"productId":"p1","quantity":1},{"productId":"p2","quantity":4}]`), &items)
	require.NoError(t, err)
	require.Equal(t, []CartItem{
		{ProductID: "p1", Quantity: 1},
		{ProductID: "p2", Quantity: 4},
	}, items)

	raw, err := json.Marshal(items)
	require.NoError(t, err)
	require.JSONEq(t, `[{"productId":"p1","quantity":1},{"productId":"p2","quantity":4}]`, string(raw))
}

func TestGuestCartExpired(t *testing.T) {
	t.Parallel()

	now := time.Now()

	require.False(t, GuestCart{}.Expired(now), "zero deadline never expires")
	require.False(t, GuestCart{ExpiresAt: now.Add(time.Hour)}.Expired(now))
	require.True(t, GuestCart{ExpiresAt: now.Add(-time.Hour)}.Expired(now))
}
