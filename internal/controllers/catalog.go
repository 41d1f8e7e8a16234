package controllers

import (
	"fmt"
	"sort"

	"github.com/rmarques/wishflix/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	defaultPage   = 1
	defaultLimit  = 10
	defaultSortBy = "createdAt"
)

// Sort directions accepted by ListOptions.SortOrder. Anything other than
// SortDescending sorts ascending.
const (
	SortAscending  = "asc"
	SortDescending = "desc"
)

// ListOptions configures one catalog listing
type ListOptions struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
	State     models.State // optional exact-match filter
	MinRating float64      // optional inclusive lower bound, 0 disables
}

// ListResult is one page of the catalog
type ListResult struct {
	Movies      []*models.Movie `json:"movies"`
	TotalMovies int             `json:"totalMovies"`
	TotalPages  int             `json:"totalPages"`
	CurrentPage int             `json:"currentPage"`
}

// movieLess holds the comparator for every sortable movie field. SortBy values
// outside this set are rejected, never injected into the store.
var movieLess = map[string]func(a, b *models.Movie) bool{
	"createdAt":   func(a, b *models.Movie) bool { return a.CreatedAt.Before(b.CreatedAt) },
	"updatedAt":   func(a, b *models.Movie) bool { return a.UpdatedAt.Before(b.UpdatedAt) },
	"title":       func(a, b *models.Movie) bool { return a.Title < b.Title },
	"releaseYear": func(a, b *models.Movie) bool { return a.ReleaseYear < b.ReleaseYear },
	"state":       func(a, b *models.Movie) bool { return a.State < b.State },
	// Unrated movies sort before any rated one, matching how the original
	// store ordered documents missing the field.
	"rating": func(a, b *models.Movie) bool {
		if a.Rating == nil {
			return b.Rating != nil
		}
		if b.Rating == nil {
			return false
		}
		return *a.Rating < *b.Rating
	},
}

// CatalogController builds filtered, sorted, paginated views of the wishlist
type CatalogController struct {
	db     *models.Database
	logger *logrus.Logger
}

// NewCatalogController creates a new catalog controller
func NewCatalogController(db *models.Database, logger *logrus.Logger) *CatalogController {
	return &CatalogController{
		db:     db,
		logger: logger,
	}
}

// ListMovies returns one page of the wishlist. TotalMovies and TotalPages are
// computed over the whole collection even when a filter is set; callers
// already depend on that behavior.
func (c *CatalogController) ListMovies(opts ListOptions) (*ListResult, error) {
	if opts.Page < 1 {
		opts.Page = defaultPage
	}
	if opts.Limit < 1 {
		opts.Limit = defaultLimit
	}
	if opts.SortBy == "" {
		opts.SortBy = defaultSortBy
	}

	if opts.State != "" && !models.ValidState(opts.State) {
		return nil, fmt.Errorf("%w: unknown state %q", ErrInvalidArgument, opts.State)
	}
	less, ok := movieLess[opts.SortBy]
	if !ok {
		return nil, fmt.Errorf("%w: unknown sort field %q", ErrInvalidArgument, opts.SortBy)
	}

	movies, err := c.db.GetMoviesByState(opts.State)
	if err != nil {
		return nil, fmt.Errorf("failed to query movies: %w", err)
	}

	if opts.MinRating > 0 {
		var filtered []*models.Movie
		for _, movie := range movies {
			if movie.Rating != nil && *movie.Rating >= opts.MinRating {
				filtered = append(filtered, movie)
			}
		}
		movies = filtered
	}

	sort.SliceStable(movies, func(i, j int) bool {
		if opts.SortOrder == SortDescending {
			return less(movies[j], movies[i])
		}
		return less(movies[i], movies[j])
	})

	total, err := c.db.CountMovies()
	if err != nil {
		return nil, fmt.Errorf("failed to count movies: %w", err)
	}

	skip := (opts.Page - 1) * opts.Limit
	if skip > len(movies) {
		skip = len(movies)
	}
	end := skip + opts.Limit
	if end > len(movies) {
		end = len(movies)
	}

	c.logger.WithFields(logrus.Fields{
		"page":    opts.Page,
		"limit":   opts.Limit,
		"sort_by": opts.SortBy,
		"matched": len(movies),
	}).Debug("Catalog listed")

	return &ListResult{
		Movies:      movies[skip:end],
		TotalMovies: total,
		TotalPages:  (total + opts.Limit - 1) / opts.Limit,
		CurrentPage: opts.Page,
	}, nil
}
