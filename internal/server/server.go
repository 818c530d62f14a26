package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/carmarket/carmarketd/internal/model"
)

// Fixed caller-facing messages. The strings are part of the API contract;
// the frontend surfaces them verbatim.
const (
	msgInvalidURL   = "Invalid Facebook Marketplace URL"
	msgBlocked      = "Facebook blocked scraping or listing is private."
	msgUnauthorized = "Unauthorized"
	msgMissingAuth  = "Authorization header missing"
	msgBadToken     = "Invalid or expired token"
	msgNotFound     = "Car not found"
	msgNotOwner     = "Not authorized"
	msgServerError  = "Server error"
	msgBadBody      = "Invalid request body"
)

// ImportService is the pipeline surface the server exposes.
// Implemented by *importer.Importer.
type ImportService interface {
	Preview(ctx context.Context, url string) (*model.ScrapeResult, error)
	Import(ctx context.Context, url string, identity model.Identity) (*model.Car, error)
}

// CarStore is the listing-lifecycle surface the server exposes.
// Implemented by *storage.Mongo.
type CarStore interface {
	FindCarByID(ctx context.Context, id string) (*model.Car, error)
	DeleteCar(ctx context.Context, id, ownerID string) error
	MarkCarSold(ctx context.Context, id, ownerID string) (*model.Car, error)
}

// UserStore joins seller profiles into listing reads.
type UserStore interface {
	FindUserByID(ctx context.Context, id string) (*model.User, error)
}

// TokenVerifier resolves bearer tokens to identities.
// Implemented by *auth.Verifier.
type TokenVerifier interface {
	Verify(token string) (*model.Identity, error)
}

// Server wires the HTTP routes to the import pipeline and the stores.
type Server struct {
	importer ImportService
	cars     CarStore
	users    UserStore
	verifier TokenVerifier
	logger   *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithUserStore sets the store used to join seller profiles into reads.
func WithUserStore(users UserStore) Option {
	return func(s *Server) {
		s.users = users
	}
}

// New creates a Server.
func New(imp ImportService, cars CarStore, verifier TokenVerifier, opts ...Option) *Server {
	s := &Server{
		importer: imp,
		cars:     cars,
		verifier: verifier,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = slog.Default()
	}

	return s
}

// Handler returns the root HTTP handler with all routes and middleware wired.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleHealth)
	mux.HandleFunc("POST /api/scrape/facebook/preview", s.handlePreview)
	mux.Handle("POST /api/scrape/facebook/import", s.requireAuth(s.handleImport))
	mux.HandleFunc("GET /api/cars/{id}", s.handleGetCar)
	mux.Handle("DELETE /api/cars/{id}", s.requireAuth(s.handleDeleteCar))
	mux.Handle("POST /api/cars/{id}/sold", s.requireAuth(s.handleMarkSold))

	return s.logRequests(mux)
}

// ListenAndServe runs the HTTP server until ctx is cancelled, then shuts
// down gracefully within shutdownTimeout.
func (s *Server) ListenAndServe(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info("server listening", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down", "timeout", shutdownTimeout)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// writeJSON writes v as a JSON response with the given status.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("failed to encode response", "error", err)
	}
}

// writeMessage writes the fixed {"message": ...} error payload.
func (s *Server) writeMessage(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"message": message})
}
