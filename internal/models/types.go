package models

// State represents the review lifecycle stage of a movie
type State string

const (
	StateQueued         State = "Queued"
	StateWatched        State = "Watched"
	StateRated          State = "Rated"
	StateRecommended    State = "Recommended"
	StateNotRecommended State = "NotRecommended"
)

// stateRank orders states by lifecycle progress. The two recommendation
// verdicts share a rank: both sit past Rated.
var stateRank = map[State]int{
	StateQueued:         0,
	StateWatched:        1,
	StateRated:          2,
	StateRecommended:    3,
	StateNotRecommended: 3,
}

// ValidState reports whether s is one of the five lifecycle states.
func ValidState(s State) bool {
	_, ok := stateRank[s]
	return ok
}

// CanTransition reports whether a movie currently in from may move to target.
// Rated requires the movie to have been watched first; Recommended and
// NotRecommended require the movie to have reached Rated.
func CanTransition(from, target State) bool {
	switch target {
	case StateRated:
		return from != StateQueued
	case StateRecommended, StateNotRecommended:
		return stateRank[from] >= stateRank[StateRated]
	default:
		return true
	}
}
