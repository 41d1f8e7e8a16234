package models

import (
	"fmt"
	"time"

	"github.com/timshannon/bolthold"
	"go.etcd.io/bbolt"
)

// ErrNotFound is returned when no document matches a lookup.
var ErrNotFound = bolthold.ErrNotFound

// Database wraps the bolthold store
type Database struct {
	store *bolthold.Store
}

// NewDatabase creates a new database connection
func NewDatabase(path string) (*Database, error) {
	store, err := bolthold.Open(path, 0600, &bolthold.Options{
		Options: &bbolt.Options{
			Timeout: 1 * time.Second,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &Database{store: store}, nil
}

// Close closes the database connection
func (db *Database) Close() error {
	return db.store.Close()
}

// Movie operations

// CreateMovie inserts a new movie keyed by its pre-assigned id
func (db *Database) CreateMovie(movie *Movie) error {
	movie.CreatedAt = time.Now()
	movie.UpdatedAt = time.Now()
	return db.store.Insert(movie.ID, movie)
}

// UpdateMovie updates an existing movie
func (db *Database) UpdateMovie(movie *Movie) error {
	movie.UpdatedAt = time.Now()
	return db.store.Update(movie.ID, movie)
}

// GetMovieByID retrieves a movie by its id
func (db *Database) GetMovieByID(id string) (*Movie, error) {
	var movie Movie
	if err := db.store.Get(id, &movie); err != nil {
		return nil, err
	}
	return &movie, nil
}

// GetMovieByTitle retrieves a movie by its exact title
func (db *Database) GetMovieByTitle(title string) (*Movie, error) {
	var movie Movie
	if err := db.store.FindOne(&movie, bolthold.Where("Title").Eq(title)); err != nil {
		return nil, err
	}
	return &movie, nil
}

// GetMovieByTMDBID retrieves a movie by its TMDB id
func (db *Database) GetMovieByTMDBID(tmdbID string) (*Movie, error) {
	var movie Movie
	if err := db.store.FindOne(&movie, bolthold.Where("TMDBID").Eq(tmdbID)); err != nil {
		return nil, err
	}
	return &movie, nil
}

// GetMoviesByState retrieves movies in a given state; an empty state returns
// the whole wishlist
func (db *Database) GetMoviesByState(state State) ([]*Movie, error) {
	var movies []*Movie
	if state == "" {
		err := db.store.Find(&movies, nil)
		return movies, err
	}
	err := db.store.Find(&movies, bolthold.Where("State").Eq(state))
	return movies, err
}

// CountMovies returns the number of movies in the store, unfiltered
func (db *Database) CountMovies() (int, error) {
	return db.store.Count(&Movie{}, nil)
}

// Request log operations

// CreateRequestLog appends one request log document
func (db *Database) CreateRequestLog(entry *RequestLog) error {
	entry.CreatedAt = time.Now()
	return db.store.Insert(bolthold.NextSequence(), entry)
}

// GetRequestLogsByMovieID retrieves all request logs recorded for a movie
func (db *Database) GetRequestLogsByMovieID(movieID string) ([]*RequestLog, error) {
	var entries []*RequestLog
	err := db.store.Find(&entries, bolthold.Where("MovieID").Eq(movieID))
	return entries, err
}
