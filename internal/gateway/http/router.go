package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/unimarket/gateway/internal/gateway/cookies"
	"github.com/unimarket/gateway/internal/gateway/relay"
	"github.com/unimarket/gateway/internal/gateway/service"
	"github.com/unimarket/gateway/internal/gateway/store"
	"github.com/unimarket/gateway/pkg/httpx"
	"github.com/unimarket/gateway/pkg/slogx"

	_ "github.com/unimarket/gateway/api/gateway" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for the relay's HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	jar          cookies.Jar
	frontendURL  string
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store            store.Store
	Relay            *relay.Client
	GuestCartService *service.GuestCartService
}

func NewRouter(
	buildVersion string,
	jar cookies.Jar,
	frontendURL string,
	st store.Store,
	relayClient *relay.Client,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		jar:          jar,
		frontendURL:  frontendURL,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		store:        st,
		Relay:        relayClient,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerCart()
	r.registerProxy()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			UniMarket Gateway API
//	@version		0.1.0
//	@description	Session relay for the UniMarket campus marketplace. Proxies browser
//	@description	requests to the marketplace backend, forwarding HTTP-only credential
//	@description	cookies and running the refresh-and-retry cycle for guarded calls.
//
//	@contact.name	UniMarket Team
//	@contact.url	https://github.com/unimarket/gateway
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@schemes	http https
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	login := &LoginHandler{Relay: r.Relay}
	r.Mux.Handle("POST /api/auth/login",
		httpx.Chain(login,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	signup := &SignupHandler{Relay: r.Relay}
	r.Mux.Handle("POST /api/auth/signup",
		httpx.Chain(signup,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	logout := &LogoutHandler{Relay: r.Relay, Jar: r.jar}
	r.Mux.Handle("POST /api/auth/logout", logout)

	refresh := &RefreshHandler{Relay: r.Relay}
	r.Mux.Handle("POST /api/auth/refresh",
		httpx.Chain(refresh,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	session := &SessionHandler{Relay: r.Relay}
	r.Mux.Handle("GET /api/auth/session", session)

	me := &MeHandler{Relay: r.Relay}
	r.Mux.Handle("GET /api/auth/me", me)

	callback := &OAuthCallbackHandler{
		Relay:       r.Relay,
		Jar:         r.jar,
		FrontendURL: r.frontendURL,
	}
	r.Mux.Handle("GET /api/auth/oauth/callback", callback)
}

func (r *Router) registerCart() {
	merge := &CartMergeHandler{
		Relay:      r.Relay,
		Jar:        r.jar,
		GuestCarts: r.GuestCartService,
	}
	r.Mux.Handle("POST /api/cart/merge",
		httpx.Chain(merge,
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	guest := &GuestCartHandler{Jar: r.jar, GuestCarts: r.GuestCartService}
	r.Mux.Handle("GET /api/cart/guest", http.HandlerFunc(guest.HandleGet))
	r.Mux.Handle("PUT /api/cart/guest", http.HandlerFunc(guest.HandlePut))
}

func (r *Router) registerProxy() {
	guarded := httpx.Chain(
		&ProxyHandler{Relay: r.Relay},
		httpx.RateLimitByIP(httpx.LenientLimit),
	)

	// Guarded resource proxying. More specific /api/cart/* patterns above
	// take precedence over the subtree patterns here.
	r.Mux.Handle("/api/cart", guarded)
	r.Mux.Handle("/api/cart/", guarded)
	r.Mux.Handle("/api/orders", guarded)
	r.Mux.Handle("/api/orders/", guarded)
	r.Mux.Handle("/api/slots/", guarded)
	r.Mux.Handle("/api/users/", guarded)

	// Product browsing is public: same credential-forwarding, no auth gate.
	public := httpx.Chain(
		&PublicProxyHandler{Relay: r.Relay},
		httpx.RateLimitByIP(httpx.LenientLimit),
	)
	r.Mux.Handle("/api/products", public)
	r.Mux.Handle("/api/products/", public)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.Relay))
}
