// Package httpapi exposes the marketing site and back-office API over HTTP.
// All cross-cutting behavior lives in composable middleware; handlers only
// decode, delegate to a service and encode.
package httpapi

import (
	"context"
	"net/http"

	"crestline.dev/internal/activity"
	"crestline.dev/internal/cms"
	"crestline.dev/internal/obs"
	"crestline.dev/internal/ratelimit"
)

// ReadyProbe reports whether downstream dependencies are reachable.
type ReadyProbe func(ctx context.Context) error

// Options carries the collaborators the API needs. Every field except
// Limiter and Ready is required.
type Options struct {
	Guard       *Guard
	Users       *cms.UserService
	Projects    *cms.ProjectService
	Blogs       *cms.BlogService
	Leads       *cms.LeadService
	Careers     *cms.CareerService
	Activity    *activity.Emitter
	Limiter     *ratelimit.Limiter
	FrontendURL string
	Version     string
	Ready       ReadyProbe
}

// API is the HTTP surface. Construct with New, serve via Handler.
type API struct {
	mux      *http.ServeMux
	guard    *Guard
	users    *cms.UserService
	projects *cms.ProjectService
	blogs    *cms.BlogService
	leads    *cms.LeadService
	careers  *cms.CareerService
	activity *activity.Emitter
	limiter  *ratelimit.Limiter
	frontend string
	version  string
	ready    ReadyProbe
}

func New(opts Options) *API {
	a := &API{
		mux:      http.NewServeMux(),
		guard:    opts.Guard,
		users:    opts.Users,
		projects: opts.Projects,
		blogs:    opts.Blogs,
		leads:    opts.Leads,
		careers:  opts.Careers,
		activity: opts.Activity,
		limiter:  opts.Limiter,
		frontend: opts.FrontendURL,
		version:  opts.Version,
		ready:    opts.Ready,
	}
	a.routes()
	return a
}

func (a *API) routes() {
	mux := a.mux

	mux.HandleFunc("GET /healthz", a.handleHealthz)
	mux.HandleFunc("GET /readyz", a.handleReadyz)
	mux.Handle("GET /metrics", obs.Handler())

	// Rate limiting applies only to the two unauthenticated write paths:
	// credential guessing and contact-form spam.
	limited := a.limit()

	mux.Handle("POST /v1/auth/login", limited(http.HandlerFunc(a.handleLogin)))
	mux.Handle("POST /v1/auth/logout", a.guard.RequireAuthenticated(http.HandlerFunc(a.handleLogout)))
	mux.Handle("GET /v1/me", a.guard.RequireAuthenticated(http.HandlerFunc(a.handleMe)))

	editor := a.guard.RequireEditorOrAbove()
	admin := a.guard.RequireAdmin()

	mux.Handle("GET /v1/projects", a.guard.OptionalAuth(http.HandlerFunc(a.handleListProjects)))
	mux.Handle("GET /v1/projects/{id}", a.guard.OptionalAuth(http.HandlerFunc(a.handleGetProject)))
	mux.Handle("POST /v1/projects", editor(http.HandlerFunc(a.handleCreateProject)))
	mux.Handle("PUT /v1/projects/{id}", editor(http.HandlerFunc(a.handleUpdateProject)))
	mux.Handle("DELETE /v1/projects/{id}", editor(http.HandlerFunc(a.handleDeleteProject)))

	mux.Handle("GET /v1/blog", a.guard.OptionalAuth(http.HandlerFunc(a.handleListPosts)))
	mux.Handle("GET /v1/blog/{id}", a.guard.OptionalAuth(http.HandlerFunc(a.handleGetPost)))
	mux.Handle("POST /v1/blog", editor(http.HandlerFunc(a.handleCreatePost)))
	mux.Handle("PUT /v1/blog/{id}", editor(http.HandlerFunc(a.handleUpdatePost)))
	mux.Handle("DELETE /v1/blog/{id}", editor(http.HandlerFunc(a.handleDeletePost)))

	mux.Handle("POST /v1/leads", limited(http.HandlerFunc(a.handleCreateLead)))
	mux.Handle("GET /v1/leads", admin(http.HandlerFunc(a.handleListLeads)))
	mux.Handle("PUT /v1/leads/{id}/status", admin(http.HandlerFunc(a.handleUpdateLeadStatus)))

	mux.Handle("GET /v1/careers", a.guard.OptionalAuth(http.HandlerFunc(a.handleListJobs)))
	mux.Handle("GET /v1/careers/{id}", a.guard.OptionalAuth(http.HandlerFunc(a.handleGetJob)))
	mux.Handle("POST /v1/careers", admin(http.HandlerFunc(a.handleCreateJob)))
	mux.Handle("PUT /v1/careers/{id}", admin(http.HandlerFunc(a.handleUpdateJob)))
	mux.Handle("DELETE /v1/careers/{id}", admin(http.HandlerFunc(a.handleDeleteJob)))

	mux.Handle("GET /v1/users", admin(http.HandlerFunc(a.handleListUsers)))
	mux.Handle("POST /v1/users", admin(http.HandlerFunc(a.handleCreateUser)))
	// Self-edits are legal for every role, so the route gate stays at
	// "authenticated"; the user service enforces hierarchy per target.
	mux.Handle("PUT /v1/users/{id}", a.guard.RequireAuthenticated(http.HandlerFunc(a.handleUpdateUser)))
	mux.Handle("DELETE /v1/users/{id}", admin(http.HandlerFunc(a.handleDeleteUser)))

	mux.Handle("GET /v1/activity", admin(http.HandlerFunc(a.handleListActivity)))
}

// limit returns the per-route rate-limit middleware, or a no-op when no
// limiter was configured (tests, single-box dev setups).
func (a *API) limit() Middleware {
	if a.limiter == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return RateLimit(a.limiter)
}

// Handler composes the global pipeline around the router. The first listed
// middleware is the outermost: CORS must answer preflights before anything
// else runs, and Recover sits innermost so every handler fault passes
// through it.
func (a *API) Handler() http.Handler {
	return Chain(
		CORS(a.frontend),
		RequestID,
		Logging,
		obs.Instrument,
		Recover,
	)(a.mux)
}
