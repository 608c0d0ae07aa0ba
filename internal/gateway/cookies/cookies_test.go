package cookies

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/unimarket/gateway/internal/gateway/domain"
	"github.com/unimarket/gateway/pkg/idx"

	"github.com/stretchr/testify/require"
)

func TestCredentialsAbsentIsNormal(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	pair := Credentials(r)
	require.True(t, pair.IsZero())
}

func TestCredentialsRoundTrip(t *testing.T) {
	t.Parallel()

	jar := Jar{Secure: true}
	rec := httptest.NewRecorder()
	jar.SetCredentials(rec, domain.CredentialPair{AccessToken: "abc", RefreshToken: "def"})

	// Feed the issued cookies back through a request, as a browser would.
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		r.AddCookie(c)
	}

	pair := Credentials(r)
	require.Equal(t, "abc", pair.AccessToken)
	require.Equal(t, "def", pair.RefreshToken)
}

func TestSetCredentialsAttributes(t *testing.T) {
	t.Parallel()

	jar := Jar{Secure: true}
	rec := httptest.NewRecorder()
	jar.SetCredentials(rec, domain.CredentialPair{AccessToken: "abc", RefreshToken: "def"})

	byName := map[string]*http.Cookie{}
	for _, c := range rec.Result().Cookies() {
		byName[c.Name] = c
	}

	access := byName[AccessTokenName]
	require.NotNil(t, access)
	require.True(t, access.HttpOnly)
	require.True(t, access.Secure)
	require.Equal(t, http.SameSiteLaxMode, access.SameSite)
	require.Equal(t, "/", access.Path)
	require.Equal(t, AccessTokenMaxAge, access.MaxAge)

	refresh := byName[RefreshTokenName]
	require.NotNil(t, refresh)
	require.Equal(t, RefreshTokenMaxAge, refresh.MaxAge)
}

func TestClearCredentialsSetsMaxAgeZero(t *testing.T) {
	t.Parallel()

	jar := Jar{}
	rec := httptest.NewRecorder()
	jar.ClearCredentials(rec)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 2)
	for _, c := range cookies {
		require.Empty(t, c.Value)
		require.Negative(t, c.MaxAge) // serialises as Max-Age=0 on the wire
	}
	for _, raw := range rec.Header().Values("Set-Cookie") {
		require.Contains(t, raw, "Max-Age=0")
	}
}

func TestHeaderBuildsVerbatimCookieHeader(t *testing.T) {
	t.Parallel()

	require.Equal(t, "", Header(domain.CredentialPair{}))
	require.Equal(t, "access_token=a", Header(domain.CredentialPair{AccessToken: "a"}))
	require.Equal(t, "refresh_token=r", Header(domain.CredentialPair{RefreshToken: "r"}))
	require.Equal(t,
		"access_token=a; refresh_token=r",
		Header(domain.CredentialPair{AccessToken: "a", RefreshToken: "r"}),
	)
}

func TestRotatedParsesSetCookieHeaders(t *testing.T) {
	t.Parallel()

	h := http.Header{}
	h.Add("Set-Cookie", "access_token=new-access; Path=/; HttpOnly; Max-Age=2700")
	h.Add("Set-Cookie", "refresh_token=new-refresh; Path=/; HttpOnly; Max-Age=604800")
	h.Add("Set-Cookie", "unrelated=x; Path=/")

	pair := Rotated(h)
	require.Equal(t, "new-access", pair.AccessToken)
	require.Equal(t, "new-refresh", pair.RefreshToken)

	t.Run("partial rotation merges over previous pair", func(t *testing.T) {
		h := http.Header{}
		h.Add("Set-Cookie", "access_token=only-access; Path=/")

		prev := domain.CredentialPair{AccessToken: "old-a", RefreshToken: "old-r"}
		merged := prev.Merge(Rotated(h))
		require.Equal(t, "only-access", merged.AccessToken)
		require.Equal(t, "old-r", merged.RefreshToken)
	})
}

func TestGuestCartID(t *testing.T) {
	t.Parallel()

	id := idx.New()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: GuestCartName, Value: id.String()})
	require.Equal(t, id, GuestCartID(r))

	bad := httptest.NewRequest(http.MethodGet, "/", nil)
	bad.AddCookie(&http.Cookie{Name: GuestCartName, Value: "garbage"})
	require.True(t, GuestCartID(bad).IsZero())
}
