package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/carmarket/carmarketd/internal/importer"
	"github.com/carmarket/carmarketd/internal/model"
	"github.com/carmarket/carmarketd/internal/storage"
)

// scrapeRequest is the body of the preview and import endpoints.
type scrapeRequest struct {
	URL string `json:"url"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "API is running",
	})
}

// handlePreview scrapes a listing and returns the extracted fields without
// persisting anything. No authentication; nothing is written.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeScrapeRequest(w, r)
	if !ok {
		return
	}

	result, err := s.importer.Preview(r.Context(), req.URL)
	if err != nil {
		s.writeScrapeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, result)
}

// handleImport scrapes a listing and persists it as a car owned by the
// authenticated user. Responds 201 with the stored car.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		s.writeMessage(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	req, ok := s.decodeScrapeRequest(w, r)
	if !ok {
		return
	}

	car, err := s.importer.Import(r.Context(), req.URL, identity)
	if err != nil {
		s.writeScrapeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, car)
}

func (s *Server) handleGetCar(w http.ResponseWriter, r *http.Request) {
	car, err := s.cars.FindCarByID(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeStoreError(w, err)
		return
	}

	if s.users != nil && car.Seller == nil {
		if user, err := s.users.FindUserByID(r.Context(), car.SellerID.Hex()); err == nil {
			car.Seller = user.PublicProfile()
		}
	}

	s.writeJSON(w, http.StatusOK, car)
}

func (s *Server) handleDeleteCar(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		s.writeMessage(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	if err := s.cars.DeleteCar(r.Context(), r.PathValue("id"), identity.ID); err != nil {
		s.writeStoreError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"message": "Car deleted"})
}

func (s *Server) handleMarkSold(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		s.writeMessage(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	car, err := s.cars.MarkCarSold(r.Context(), r.PathValue("id"), identity.ID)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, car)
}

// decodeScrapeRequest parses the {"url": ...} body. On failure it writes the
// error response and returns ok=false.
func (s *Server) decodeScrapeRequest(w http.ResponseWriter, r *http.Request) (scrapeRequest, bool) {
	var req scrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeMessage(w, http.StatusBadRequest, msgBadBody)
		return scrapeRequest{}, false
	}
	return req, true
}

// writeScrapeError maps pipeline errors to HTTP responses. Anything that is
// not a bad URL or a missing identity collapses into the uniform
// blocked-or-private message; the distinction lives only in the server log.
func (s *Server) writeScrapeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, importer.ErrInvalidURL):
		s.writeMessage(w, http.StatusBadRequest, msgInvalidURL)
	case errors.Is(err, importer.ErrUnauthorized):
		s.writeMessage(w, http.StatusUnauthorized, msgUnauthorized)
	default:
		s.logger.Error("import pipeline failed", "error", err)
		s.writeMessage(w, http.StatusInternalServerError, msgBlocked)
	}
}

// writeStoreError maps listing-store errors to HTTP responses.
func (s *Server) writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrInvalidID), errors.Is(err, storage.ErrNotFound):
		s.writeMessage(w, http.StatusNotFound, msgNotFound)
	case errors.Is(err, storage.ErrNotOwner):
		s.writeMessage(w, http.StatusForbidden, msgNotOwner)
	default:
		s.logger.Error("store operation failed", "error", err)
		s.writeMessage(w, http.StatusInternalServerError, msgServerError)
	}
}

// identityFrom is a convenience wrapper for handlers behind requireAuth.
func identityFrom(ctx context.Context) (model.Identity, bool) {
	v, ok := ctx.Value(identityKey{}).(model.Identity)
	return v, ok
}
