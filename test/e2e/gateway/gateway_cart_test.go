package gateway_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/unimarket/gateway/pkg/marketsdk"
)

func TestE2E_GuestCartSurvivesUntilMerge(t *testing.T) {
	baseURL := setupStack(t)
	client := marketsdk.NewClient(baseURL)

	// Anonymous browsing: build up a cart before login.
	items := []marketsdk.CartItem{
		{ProductID: "p1", Quantity: 1},
		{ProductID: "p3", Quantity: 2},
	}
	require.NoError(t, client.SaveGuestCart(t.Context(), items))

	got, err := client.GetGuestCart(t.Context())
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Log in and merge the server-side guest cart (nil items).
	_, err = client.Login(t.Context(), seededEmail, seededPassword)
	require.NoError(t, err)
	require.NoError(t, client.MergeCart(t.Context(), nil))

	// The guest cart was consumed by the merge.
	got, err = client.GetGuestCart(t.Context())
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestE2E_MergeRequiresSession(t *testing.T) {
	baseURL := setupStack(t)
	client := marketsdk.NewClient(baseURL)

	err := client.MergeCart(t.Context(), []marketsdk.CartItem{{ProductID: "p1", Quantity: 1}})
	require.ErrorIs(t, err, marketsdk.ErrNotAuthenticated)
}

func TestE2E_ProductsArePublic(t *testing.T) {
	baseURL := setupStack(t)
	client := marketsdk.NewClient(baseURL)

	// No login needed to browse the catalogue through the gateway.
	resp, err := client.HTTPClient.Get(baseURL + "/api/products")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, 200, resp.StatusCode)
}
