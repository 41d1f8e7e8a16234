package controllers

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/rmarques/wishflix/internal/models"
	"github.com/rmarques/wishflix/internal/services/tmdb"
	"github.com/sirupsen/logrus"
)

// historyAdded is the action recorded when a movie first enters the wishlist.
const historyAdded = "added to wishlist"

// metadataService is the slice of the TMDB client the wishlist needs
type metadataService interface {
	SearchMovie(ctx context.Context, title string) (*tmdb.Movie, error)
	GenreNames(ctx context.Context, ids []int) ([]string, error)
}

// WishlistController applies lifecycle operations to movies
type WishlistController struct {
	db       *models.Database
	metadata metadataService
	logger   *logrus.Logger
}

// NewWishlistController creates a new wishlist controller
func NewWishlistController(db *models.Database, metadata metadataService, logger *logrus.Logger) *WishlistController {
	return &WishlistController{
		db:       db,
		metadata: metadata,
		logger:   logger,
	}
}

// AddMovie enriches a title through the metadata source and persists the new
// movie in the Queued state. Creation writes in two phases: the movie document
// first, then its initial history entry, so the entry always references a
// persisted id.
func (c *WishlistController) AddMovie(ctx context.Context, title string) (*models.Movie, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidArgument)
	}

	if _, err := c.db.GetMovieByTitle(title); err == nil {
		return nil, fmt.Errorf("%w: title %q", ErrConflict, title)
	} else if !errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for existing title: %w", err)
	}

	result, err := c.metadata.SearchMovie(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("%w: searching %q: %v", ErrUpstreamUnavailable, title, err)
	}

	genres, err := c.metadata.GenreNames(ctx, result.GenreIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: resolving genres: %v", ErrUpstreamUnavailable, err)
	}

	tmdbID := strconv.Itoa(result.ID)
	if _, err := c.db.GetMovieByTMDBID(tmdbID); err == nil {
		return nil, fmt.Errorf("%w: tmdb id %s", ErrConflict, tmdbID)
	} else if !errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for existing tmdb id: %w", err)
	}

	movie := &models.Movie{
		ID:          uuid.NewString(),
		TMDBID:      tmdbID,
		Title:       result.Title,
		Synopsis:    result.Overview,
		ReleaseYear: result.Year(),
		Genres:      genres,
		State:       models.StateQueued,
		OwnerID:     uuid.NewString(),
	}

	if err := c.db.CreateMovie(movie); err != nil {
		return nil, fmt.Errorf("failed to create movie: %w", err)
	}

	movie, err = c.appendCreationHistory(movie.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to record creation history: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"movie_id": movie.ID,
		"title":    movie.Title,
		"tmdb_id":  movie.TMDBID,
	}).Info("Movie added to wishlist")

	return movie, nil
}

// appendCreationHistory records the initial history entry for a movie. It is
// idempotent: a retry after a crash between the two creation writes finds the
// entry already present and appends nothing.
func (c *WishlistController) appendCreationHistory(id string) (*models.Movie, error) {
	movie, err := c.db.GetMovieByID(id)
	if err != nil {
		return nil, err
	}
	if len(movie.History) > 0 {
		return movie, nil
	}

	movie.AppendHistory(historyAdded)
	if err := c.db.UpdateMovie(movie); err != nil {
		return nil, err
	}
	return movie, nil
}

// GetMovie retrieves a single movie by id
func (c *WishlistController) GetMovie(id string) (*models.Movie, error) {
	movie, err := c.db.GetMovieByID(id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get movie: %w", err)
	}
	return movie, nil
}

// UpdateState moves a movie to a target lifecycle state, validating the
// transition against the movie's current persisted state.
func (c *WishlistController) UpdateState(id string, target models.State) (*models.Movie, error) {
	if !models.ValidState(target) {
		return nil, fmt.Errorf("%w: unknown state %q", ErrInvalidArgument, target)
	}

	movie, err := c.GetMovie(id)
	if err != nil {
		return nil, err
	}

	if !models.CanTransition(movie.State, target) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, movie.State, target)
	}

	movie.State = target
	movie.AppendHistory("moved to state: " + string(target))
	if err := c.db.UpdateMovie(movie); err != nil {
		return nil, fmt.Errorf("failed to update movie state: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"movie_id": movie.ID,
		"state":    target,
	}).Info("Movie state updated")

	return movie, nil
}

// Rate sets a movie's rating. Rating never advances the state on its own: a
// movie rated while Watched stays Watched until transitioned explicitly.
func (c *WishlistController) Rate(id string, rating float64) (*models.Movie, error) {
	if rating < 0 || rating > 5 {
		return nil, fmt.Errorf("%w: rating %v outside [0,5]", ErrInvalidArgument, rating)
	}

	movie, err := c.GetMovie(id)
	if err != nil {
		return nil, err
	}

	if movie.State == models.StateQueued {
		return nil, fmt.Errorf("%w: movie must be watched before rating", ErrInvalidTransition)
	}

	movie.Rating = &rating
	movie.AppendHistory("rated: " + strconv.FormatFloat(rating, 'f', -1, 64))
	if err := c.db.UpdateMovie(movie); err != nil {
		return nil, fmt.Errorf("failed to update movie rating: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"movie_id": movie.ID,
		"rating":   rating,
	}).Info("Movie rated")

	return movie, nil
}

// GetHistory returns a movie's audit trail, oldest entry first
func (c *WishlistController) GetHistory(id string) ([]models.HistoryEntry, error) {
	movie, err := c.GetMovie(id)
	if err != nil {
		return nil, err
	}
	return movie.History, nil
}
