package models

import "time"

// HistoryEntry is one immutable audit record of a movie mutation
type HistoryEntry struct {
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

// Movie represents a wishlist item and its audit history
type Movie struct {
	ID     string `boltholdKey:"ID" json:"id"`
	TMDBID string `boltholdIndex:"TMDBID" json:"tmdbId"` // TMDB id, unique across the wishlist

	Title       string   `json:"title"`
	Synopsis    string   `json:"synopsis"`
	ReleaseYear int      `json:"releaseYear"`
	Genres      []string `json:"genres"`

	State  State    `json:"state"`
	Rating *float64 `json:"rating"` // nil until rated, 0 to 5 inclusive

	OwnerID string `json:"ownerId"`

	// History is append-only; insertion order is chronological order.
	History []HistoryEntry `json:"history"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppendHistory records one audit entry for a mutation about to be persisted.
func (m *Movie) AppendHistory(action string) {
	m.History = append(m.History, HistoryEntry{
		Action:    action,
		Timestamp: time.Now(),
	})
}
