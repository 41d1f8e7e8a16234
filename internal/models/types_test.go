package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidState(t *testing.T) {
	for _, state := range []State{StateQueued, StateWatched, StateRated, StateRecommended, StateNotRecommended} {
		assert.True(t, ValidState(state), "state %q should be valid", state)
	}

	assert.False(t, ValidState("Archived"))
	assert.False(t, ValidState(""))
	assert.False(t, ValidState("queued"))
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    State
		target  State
		allowed bool
	}{
		{"watched from queued", StateQueued, StateWatched, true},
		{"watched from rated", StateRated, StateWatched, true},
		{"watched from not recommended", StateNotRecommended, StateWatched, true},
		{"back to queued", StateWatched, StateQueued, true},
		{"rated from queued", StateQueued, StateRated, false},
		{"rated from watched", StateWatched, StateRated, true},
		{"rated from rated", StateRated, StateRated, true},
		{"rated from recommended", StateRecommended, StateRated, true},
		{"recommended from queued", StateQueued, StateRecommended, false},
		{"recommended from watched", StateWatched, StateRecommended, false},
		{"recommended from rated", StateRated, StateRecommended, true},
		{"not recommended from watched", StateWatched, StateNotRecommended, false},
		{"not recommended from rated", StateRated, StateNotRecommended, true},
		{"recommended from not recommended", StateNotRecommended, StateRecommended, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.target))
		})
	}
}
