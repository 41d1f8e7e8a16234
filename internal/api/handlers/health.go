package handlers

import (
	"net/http"

	"github.com/rmarques/wishflix/internal/models"
	"github.com/sirupsen/logrus"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	db     *models.Database
	logger *logrus.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *models.Database, logger *logrus.Logger) *HealthHandler {
	return &HealthHandler{
		db:     db,
		logger: logger,
	}
}

type healthResponse struct {
	Status        string         `json:"status"`
	TotalMovies   int            `json:"totalMovies"`
	MoviesByState map[string]int `json:"moviesByState"`
}

// ServeHTTP handles the health check endpoint
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	movies, err := h.db.GetMoviesByState("")
	if err != nil {
		h.logger.WithError(err).Error("Failed to read movies for health check")
		writeError(w, http.StatusInternalServerError, "store unavailable")
		return
	}

	response := healthResponse{
		Status:        "healthy",
		TotalMovies:   len(movies),
		MoviesByState: make(map[string]int),
	}
	for _, movie := range movies {
		response.MoviesByState[string(movie.State)]++
	}

	writeJSON(w, http.StatusOK, response)
}
