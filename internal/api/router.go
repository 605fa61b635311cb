package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/widget-api/internal/api/middleware"
	"github.com/phrazzld/widget-api/internal/problem"
	"github.com/phrazzld/widget-api/internal/service"
	"github.com/phrazzld/widget-api/internal/service/auth"
	"github.com/phrazzld/widget-api/internal/store"
	"github.com/phrazzld/widget-api/internal/validation"
)

// RouterDeps are the collaborators and settings of the HTTP surface.
type RouterDeps struct {
	Widgets    service.WidgetService
	Tokens     TokenIssuer
	JWTService auth.JWTService
	Users      store.UserStore
	Builder    *problem.Builder
	Validator  *validation.Validator
	Logger     *slog.Logger

	// RequestTimeout bounds each request; zero disables the timeout.
	RequestTimeout time.Duration
	// TokenRateLimit caps POST /tokens in requests per second; zero disables it.
	TokenRateLimit float64
	TokenRateBurst int
	// Now supplies the clock for the X-Day header; nil means time.Now.
	Now func() time.Time
}

// NewRouter builds the application's HTTP handler.
func NewRouter(deps RouterDeps) http.Handler {
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}
	builder := deps.Builder

	widgets := NewWidgetHandler(deps.Widgets, deps.Validator, log)
	tokens := NewTokenHandler(deps.Tokens, log)
	gate := middleware.NewAuthGate(deps.JWTService, deps.Users, log)
	day := middleware.Day(deps.Now)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Trace(log))
	r.Use(middleware.Recover(builder))
	if deps.RequestTimeout > 0 {
		r.Use(chimw.Timeout(deps.RequestTimeout))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		builder.Write(w, r, problem.MustNew(http.StatusNotFound, ""))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		builder.Write(w, r, problem.MustNew(http.StatusMethodNotAllowed, ""))
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.With(day, middleware.RateLimit(deps.TokenRateLimit, deps.TokenRateBurst, builder)).
		Post("/tokens", Wrap(builder, tokens.Create))

	r.Route("/widgets", func(r chi.Router) {
		r.Use(day)
		r.Use(gate.Authenticate)

		r.Post("/", Wrap(builder, widgets.Create))
		r.Get("/", Wrap(builder, widgets.List))
		r.Get("/{id}", Wrap(builder, widgets.Show))
		r.Put("/{id}", Wrap(builder, widgets.Update))
		r.Patch("/{id}", Wrap(builder, widgets.Update))
		r.Delete("/{id}", Wrap(builder, widgets.Delete))
	})

	return r
}
