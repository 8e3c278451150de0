package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"reliefhub-backend/internal/config"
	"reliefhub-backend/internal/handlers"
	"reliefhub-backend/internal/realtime"
)

// RouterDependencies holds all the dependencies required by the router setup,
// primarily handlers and configuration.
type RouterDependencies struct {
	AuthHandler       *handlers.AuthHandler
	ChatHandler       *handlers.ChatHandlers
	BlogHandler       *handlers.BlogHandlers
	RescueTeamHandler *handlers.RescueTeamHandlers
	Hub               *realtime.Hub
	Config            *config.Config
}

// NewRouter creates and configures the main Chi router for the application.
func NewRouter(deps RouterDependencies) *chi.Mux {
	r := chi.NewRouter()

	// --- Base Middleware Stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// --- CORS Configuration ---
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Realtime push channel. Kept outside the timeout middleware: the
	// connection stays open for as long as the client watches the chat.
	r.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		realtime.ServeWS(deps.Hub, w, r)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))

		// --- Public Auth Routes ---
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", deps.AuthHandler.HandleRegister)
			r.Post("/login", deps.AuthHandler.HandleLogin)
			r.With(JwtAuthMiddleware(deps.Config.JWTSecret)).
				Get("/me", deps.AuthHandler.HandleMe)

			r.Route("/rescue-team", func(r chi.Router) {
				r.Post("/register", deps.RescueTeamHandler.HandleRegister)
				r.Get("/", deps.RescueTeamHandler.HandleList)
				r.Get("/{teamID}", deps.RescueTeamHandler.HandleGetByID)
			})
		})

		// --- Community Chat ---
		// Reads are public; posting resolves its actor through the
		// optional JWT middleware and the service enforces the role gate.
		r.Route("/chat", func(r chi.Router) {
			r.Get("/", deps.ChatHandler.HandleGetMessages)
			r.Get("/history", deps.ChatHandler.HandleGetHistory)
			r.With(OptionalJwtAuthMiddleware(deps.Config.JWTSecret)).
				Post("/", deps.ChatHandler.HandlePostMessage)
		})

		// --- Disaster Reports ---
		r.Route("/blogs", func(r chi.Router) {
			r.Get("/", deps.BlogHandler.HandleList)
			r.Get("/user/{authorName}", deps.BlogHandler.HandleListByAuthor)
			r.Get("/{blogID}", deps.BlogHandler.HandleGetByID)
			r.Post("/{blogID}/donate", deps.BlogHandler.HandleDonate)

			// Admin panel operations
			r.Group(func(r chi.Router) {
				r.Use(JwtAuthMiddleware(deps.Config.JWTSecret))
				r.Use(RequireAdmin)
				r.Post("/", deps.BlogHandler.HandleCreate)
				r.Put("/{blogID}", deps.BlogHandler.HandleUpdate)
				r.Delete("/{blogID}", deps.BlogHandler.HandleDelete)
				r.Post("/{blogID}/assign-team", deps.BlogHandler.HandleAssignTeam)
			})
		})
	})

	return r
}
