/*
server.go - HTTP router and middleware configuration

PURPOSE:

	Configures the HTTP router (chi), middleware stack, and route
	definitions. This is the wiring layer that connects URLs to handlers.

ROUTER: chi

	Chi was chosen for:
	- Lightweight and fast
	- Context-based
	- Middleware support
	- RESTful route patterns

MIDDLEWARE STACK:
 1. Logger:     Request logging
 2. Recoverer:  Panic recovery (500 instead of crash)
 3. RequestID:  Unique ID per request for tracing
 4. CORS:       Cross-origin requests for the dashboard frontend

ROUTE GROUPS:

	/api/auth/login       Public login
	/api/statements       Admin statement upload
	/api/reports/*        Report history (authenticated)
	/api/cycles/*         Cycle calendar (authenticated)
	/api/agents/*         Roster and dashboards
	/api/deals/live       Admin live counters
	/api/vendors          Vendor reference data

SEE ALSO:
  - handlers.go: Handler implementations
  - middleware.go: Session middleware
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		// Public
		r.Post("/auth/login", h.Login)

		// Authenticated
		r.Group(func(r chi.Router) {
			r.Use(h.RequireAuth)

			r.Route("/reports", func(r chi.Router) {
				r.Get("/", h.ListReports)
				r.Get("/latest", h.LatestReport)
				r.Get("/{date}/summaries", h.ReportSummaries)
			})

			r.Route("/cycles", func(r chi.Router) {
				r.Get("/", h.ListCycles)
				r.Get("/current", h.CurrentCycle)
				r.Get("/previous", h.PreviousCycle)
			})

			r.Get("/agents/{id}/dashboard", h.AgentDashboard)
			r.Get("/vendors", h.ListVendors)

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(h.RequireAdmin)

				r.Post("/statements", h.UploadStatement)
				r.Get("/agents", h.ListAgents)
				r.Get("/deals/live", h.LiveDeals)
			})
		})
	})

	return r
}
