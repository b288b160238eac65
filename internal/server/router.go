package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jobtracker/jobtracker-go/internal/handler"
	"github.com/jobtracker/jobtracker-go/internal/middleware"
	"github.com/jobtracker/jobtracker-go/internal/service"
)

// NewRouter wires the HTTP API onto a chi router.
func NewRouter(authService *service.AuthService, jobService *service.JobService, corsOrigins []string) http.Handler {
	authHandler := handler.NewAuthHandler(authService)
	jobHandler := handler.NewJobHandler(jobService)

	r := chi.NewRouter()
	r.Use(
		chimw.RequestID,
		chimw.RealIP,
		middleware.Logger,
		chimw.Recoverer,
		chimw.Timeout(30*time.Second),
		cors.Handler(cors.Options{
			AllowedOrigins: corsOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Authorization", "Content-Type"},
			MaxAge:         300,
		}),
	)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("backend is alive"))
	})

	r.Post("/register", authHandler.HandleRegister)
	r.Post("/login", authHandler.HandleLogin)

	r.Route("/jobs", func(r chi.Router) {
		r.Use(middleware.RequireAuth(authService))
		r.Get("/", jobHandler.HandleList)
		r.Post("/", jobHandler.HandleCreate)
		r.Patch("/{id}", jobHandler.HandleUpdateStatus)
		r.Delete("/{id}", jobHandler.HandleDelete)
	})

	return r
}
