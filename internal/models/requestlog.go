package models

import "time"

// RequestLog records one handled API request
type RequestLog struct {
	ID         uint64    `boltholdKey:"ID" json:"id"`
	RequestID  string    `json:"requestId"`
	Method     string    `json:"method"`
	Path       string    `json:"path"`
	StatusCode int       `json:"statusCode"`
	DurationMs int64     `json:"durationMs"`
	MovieID    string    `json:"movieId,omitempty"` // set when the route addressed a single movie
	Timestamp  time.Time `json:"timestamp"`

	CreatedAt time.Time `json:"createdAt"`
}
