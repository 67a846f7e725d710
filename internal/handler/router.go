package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vaultpass/passgen-go/internal/crypto"
	"github.com/vaultpass/passgen-go/internal/middleware"
)

// Routes holds what NewRouter wires together. A nil Audit leaves the audit
// endpoint unregistered.
type Routes struct {
	Generator *GeneratorHandler
	Strength  *StrengthHandler
	Audit     *AuditHandler

	JWTSecret      string
	RateLimitRPS   float64
	RateLimitBurst int
}

// NewRouter builds the HTTP API. Background work started by the middleware
// stops when ctx is cancelled.
func NewRouter(ctx context.Context, rt Routes) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(ctx, rt.RateLimitRPS, rt.RateLimitBurst))
		r.Post("/api/v1/generate", rt.Generator.HandleGenerate)
		r.Post("/api/v1/strength", rt.Strength.HandleStrength)
	})

	if rt.Audit != nil {
		r.Group(func(r chi.Router) {
			r.Use(middleware.JWTAuth(rt.JWTSecret, crypto.ScopeAuditRead))
			r.Get("/api/v1/audit", rt.Audit.HandleList)
		})
	}

	return r
}
