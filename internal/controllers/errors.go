package controllers

import "errors"

// Error kinds surfaced at the operation boundary. Handlers translate these
// into HTTP status codes with errors.Is.
var (
	ErrNotFound            = errors.New("movie not found")
	ErrConflict            = errors.New("movie already in wishlist")
	ErrInvalidTransition   = errors.New("invalid state transition")
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrUpstreamUnavailable = errors.New("metadata source unavailable")
)
