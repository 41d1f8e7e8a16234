package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rmarques/wishflix/internal/controllers"
	"github.com/rmarques/wishflix/internal/models"
	"github.com/sirupsen/logrus"
)

// MovieHandler serves the wishlist endpoints
type MovieHandler struct {
	wishlist *controllers.WishlistController
	catalog  *controllers.CatalogController
	logger   *logrus.Logger
}

// NewMovieHandler creates a new movie handler
func NewMovieHandler(wishlist *controllers.WishlistController, catalog *controllers.CatalogController, logger *logrus.Logger) *MovieHandler {
	return &MovieHandler{
		wishlist: wishlist,
		catalog:  catalog,
		logger:   logger,
	}
}

type addMovieRequest struct {
	Title string `json:"title"`
}

type updateStateRequest struct {
	State models.State `json:"state"`
}

type rateMovieRequest struct {
	Rating *float64 `json:"rating"`
}

// AddMovie handles POST /movies
func (h *MovieHandler) AddMovie(w http.ResponseWriter, r *http.Request) {
	var req addMovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	movie, err := h.wishlist.AddMovie(r.Context(), req.Title)
	if err != nil {
		h.writeControllerError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, movie)
}

// ListMovies handles GET /movies
func (h *MovieHandler) ListMovies(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	opts := controllers.ListOptions{
		Page:      queryInt(query.Get("page")),
		Limit:     queryInt(query.Get("limit")),
		SortBy:    query.Get("sortBy"),
		SortOrder: query.Get("sortOrder"),
		State:     models.State(query.Get("state")),
		MinRating: queryFloat(query.Get("minRating")),
	}

	result, err := h.catalog.ListMovies(opts)
	if err != nil {
		h.writeControllerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// GetMovie handles GET /movies/{id}
func (h *MovieHandler) GetMovie(w http.ResponseWriter, r *http.Request) {
	movie, err := h.wishlist.GetMovie(chi.URLParam(r, "id"))
	if err != nil {
		h.writeControllerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, movie)
}

// UpdateState handles PATCH /movies/{id}/state
func (h *MovieHandler) UpdateState(w http.ResponseWriter, r *http.Request) {
	var req updateStateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	movie, err := h.wishlist.UpdateState(chi.URLParam(r, "id"), req.State)
	if err != nil {
		h.writeControllerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, movie)
}

// RateMovie handles PATCH /movies/{id}/rating
func (h *MovieHandler) RateMovie(w http.ResponseWriter, r *http.Request) {
	var req rateMovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Rating == nil {
		writeError(w, http.StatusBadRequest, "rating is required")
		return
	}

	movie, err := h.wishlist.Rate(chi.URLParam(r, "id"), *req.Rating)
	if err != nil {
		h.writeControllerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, movie)
}

// GetHistory handles GET /movies/{id}/history
func (h *MovieHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.wishlist.GetHistory(chi.URLParam(r, "id"))
	if err != nil {
		h.writeControllerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, history)
}

// writeControllerError maps operation error kinds to HTTP statuses
func (h *MovieHandler) writeControllerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, controllers.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, controllers.ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, controllers.ErrInvalidTransition),
		errors.Is(err, controllers.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, controllers.ErrUpstreamUnavailable):
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		h.logger.WithError(err).Error("Unhandled operation error")
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

func queryInt(value string) int {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return n
}

func queryFloat(value string) float64 {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return f
}
