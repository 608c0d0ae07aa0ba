/*
Package marketsdk provides a client SDK for the UniMarket gateway.

# Overview

The gateway keeps credentials in HTTP-only cookies, so the SDK's Client wraps
an http.Client with an in-memory cookie jar: tokens issued on login or rotated
on refresh are captured and replayed automatically, the same way a browser
would. Callers never see or handle raw token values.

Create a Client pointed at the gateway:

	client := marketsdk.NewClient("http://localhost:8080")

	// Authenticate; credential cookies land in the jar.
	user, err := client.Login(ctx, "student@uni.edu", "hunter22")

	// Authenticated calls ride on the jar's cookies.
	profile, err := client.GetUser(ctx)
	ok := client.IsAuthenticated(ctx)

	// Pre-login carts survive server-side.
	err = client.SaveGuestCart(ctx, items)
	err = client.MergeCart(ctx, nil)

# Route guarding

Guard wraps an http.Handler and re-checks the session on every request,
redirecting unauthenticated browsers to the login page with the original
path preserved in a redirect query parameter:

	mux.Handle("/account/", marketsdk.Guard("http://localhost:8080", "/auth/login")(accountHandler))

# Error Handling

Failed gateway calls return a typed *APIError carrying the HTTP status and
the gateway's message. Sentinel errors cover the two states callers branch
on: ErrNotAuthenticated and ErrGatewayUnreachable.

	if errors.Is(err, marketsdk.ErrNotAuthenticated) {
		// send the user to login
	}
*/
package marketsdk
