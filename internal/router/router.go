package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/descubre-app/descubre-api/internal/api/chat"
	"github.com/descubre-app/descubre-api/internal/api/place"
)

// Config contains dependencies needed for the router setup
type Config struct {
	PlaceHandler *place.HandlerImpl
	ChatHandler  *chat.HandlerImpl

	// AuthenticateMiddleware rejects requests without a valid bearer token.
	AuthenticateMiddleware func(http.Handler) http.Handler
	// OptionalAuthenticateMiddleware attaches the identity when a valid
	// token is present but lets anonymous requests through.
	OptionalAuthenticateMiddleware func(http.Handler) http.Handler
}

// SetupRouter initializes and configures the main application router.
// Server-wide middleware (logger, requestID, recoverer) are expected to be
// applied before mounting this router in main.go.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Public place catalog
		r.Get("/places", cfg.PlaceHandler.ListPlaces)
		r.Get("/places/search", cfg.PlaceHandler.SearchPlaces)
		r.Get("/places/{placeID}", cfg.PlaceHandler.GetPlace)
		r.Post("/places", cfg.PlaceHandler.CreatePlace)

		// Chat works anonymously; identified callers get session history.
		r.Group(func(r chi.Router) {
			r.Use(cfg.OptionalAuthenticateMiddleware)
			r.Post("/chat", cfg.ChatHandler.HandleChatMessage)
		})

		r.Group(func(r chi.Router) {
			r.Use(cfg.AuthenticateMiddleware)
			r.Get("/chat/sessions/{sessionID}", cfg.ChatHandler.GetSessionHistory)
		})
	})

	return r
}
