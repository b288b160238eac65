package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jobtracker/jobtracker-go/internal/config"
	"github.com/jobtracker/jobtracker-go/internal/repository"
	"github.com/jobtracker/jobtracker-go/internal/service"
	"go.mongodb.org/mongo-driver/mongo"
)

// Stores bundles the credential and job stores of one backend.
type Stores struct {
	Users service.UserRepository
	Jobs  service.JobRepository
	close func(context.Context) error
}

// Close releases the backend connection.
func (s Stores) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// OpenStores connects to the backend selected by cfg.StoreDriver.
func OpenStores(ctx context.Context, cfg config.Config) (Stores, error) {
	switch cfg.StoreDriver {
	case repository.DriverMySQL, repository.DriverSQLite:
		db, err := repository.NewDB(ctx, cfg.StoreDriver, cfg.DatabaseDSN)
		if err != nil {
			return Stores{}, err
		}
		if cfg.StoreDriver == repository.DriverSQLite {
			// An embedded database has no separate migration step.
			if err := repository.Migrate(db, cfg.StoreDriver); err != nil {
				_ = db.Close()
				return Stores{}, err
			}
		}
		return Stores{
			Users: repository.NewUserRepository(db),
			Jobs:  repository.NewJobRepository(db),
			close: closeSQL(db),
		}, nil

	case repository.DriverMongo:
		db, err := repository.NewMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return Stores{}, err
		}
		return Stores{
			Users: repository.NewMongoUserRepository(db),
			Jobs:  repository.NewMongoJobRepository(db),
			close: closeMongo(db),
		}, nil

	case repository.DriverMemory:
		slog.Warn("using in-memory store, data is lost on restart")
		return Stores{
			Users: repository.NewMemoryUserRepository(),
			Jobs:  repository.NewMemoryJobRepository(),
		}, nil
	}

	return Stores{}, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
}

func closeSQL(db *sql.DB) func(context.Context) error {
	return func(context.Context) error { return db.Close() }
}

func closeMongo(db *mongo.Database) func(context.Context) error {
	return func(ctx context.Context) error { return db.Client().Disconnect(ctx) }
}

// Server wraps the HTTP server and the stores it serves.
type Server struct {
	httpServer *http.Server
	stores     Stores
}

// New opens the configured stores and builds the HTTP server.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	stores, err := OpenStores(ctx, cfg)
	if err != nil {
		return nil, err
	}

	authService := service.NewAuthService(stores.Users, cfg.JWTSecret, cfg.JWTExpiry)
	jobService := service.NewJobService(stores.Jobs)

	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           NewRouter(authService, jobService, cfg.CORSOrigins),
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      35 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		stores: stores,
	}, nil
}

// Start serves HTTP until Shutdown is called.
func (s *Server) Start() error {
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and closes the stores.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	if cerr := s.stores.Close(ctx); cerr != nil {
		slog.Error("closing store failed", "error", cerr)
	}
	return err
}
