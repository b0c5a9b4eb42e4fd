// internal/app/features/campaigns/routes.go
package campaigns

import (
	"github.com/dalemusser/ecohub/internal/app/system/auth"
	"github.com/dalemusser/ecohub/internal/app/system/ratelimit"
	"github.com/dalemusser/ecohub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// RouteConfig holds per-route limits. Zero limits disable limiting.
type RouteConfig struct {
	JoinLimit  ratelimit.Config
	WriteLimit ratelimit.Config
}

// Routes returns the /campaigns subrouter. The session user must already be
// loaded (sm.LoadSessionUser) by the parent router.
func Routes(h *Handler, sm *auth.SessionManager, cfg RouteConfig) chi.Router {
	r := chi.NewRouter()

	// Public discovery.
	r.Get("/", h.ServeList)
	r.Get("/location/nearby", h.ServeNearby)
	r.Get("/{id}", h.ServeView)

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/user/mycampaigns", h.ServeMine)
		pr.With(ratelimit.Limit(cfg.JoinLimit)).Post("/{id}/join", h.HandleJoin)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireRole(models.RoleProposer, models.RoleAdmin))
		pr.Use(ratelimit.Limit(cfg.WriteLimit))
		pr.Post("/", h.HandleCreate)
		pr.Put("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleDelete)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireRole(models.RoleAdmin))
		pr.Post("/{id}/status", h.HandleTransition)
	})

	return r
}
