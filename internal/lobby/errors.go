package lobby

import "errors"

var (
	// ErrLobbyFull is returned by Join when the table already has its
	// maximum number of seated players.
	ErrLobbyFull = errors.New("lobby: full")
	// ErrInProgress is returned by Join when a hand is already running;
	// an in-progress table is not joinable.
	ErrInProgress = errors.New("lobby: hand in progress")
)
