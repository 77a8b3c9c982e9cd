package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"rojak/internal/handlers"
	"rojak/internal/service"
	"rojak/internal/session"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	TranslationService service.TranslationService
	HistoryService     service.HistoryService
	AccountService     service.AccountService
	Sessions           *session.Manager
	HealthChecks       map[string]handlers.Pinger
	IndexHTML          string // Embedded HTML content
	AboutHTML          string // Rendered About page
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	// Add chi middleware
	r.Use(middleware.RequestID)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)

	// Add CORS middleware
	r.Use(CORS)

	translateHandler := handlers.NewTranslateHandler(deps.TranslationService)
	historyHandler := handlers.NewHistoryHandler(deps.HistoryService)
	accountHandler := handlers.NewAccountHandler(deps.AccountService, deps.Sessions)
	healthHandler := handlers.NewHealthHandler(deps.HealthChecks)

	// Register API routes
	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", healthHandler)

		r.Group(func(r chi.Router) {
			r.Use(SessionMiddleware(deps.Sessions))

			r.Method(http.MethodPost, "/translate", translateHandler)

			r.Get("/conversation", handlers.GetConversation)
			r.Delete("/conversation", handlers.ClearConversation)

			r.Get("/translations", historyHandler.List)
			r.Delete("/translations/{id}", historyHandler.Delete)

			r.Route("/account", func(r chi.Router) {
				r.Post("/signup", accountHandler.SignUp)
				r.Post("/login", accountHandler.Login)
				r.Post("/logout", accountHandler.Logout)
				r.Post("/password-reset", accountHandler.PasswordReset)
				r.Get("/profile", accountHandler.Profile)
			})
		})
	})

	// Serve HTML pages
	r.Get("/", handlers.HTMLPage(deps.IndexHTML))
	r.Get("/about", handlers.HTMLPage(deps.AboutHTML))

	return r
}
