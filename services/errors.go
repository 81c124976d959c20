package services

import (
	"errors"

	"github.com/Dosada05/tournament-bracket/brackets"
)

var (
	// Not found
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrBracketNotFound    = errors.New("bracket not found")

	// Validation
	ErrValidationFailed    = errors.New("validation failed")
	ErrTournamentNameEmpty = errors.New("tournament name is required")

	// State conflicts
	ErrBracketNotGenerated  = errors.New("bracket has not been generated")
	ErrTournamentNotOngoing = errors.New("tournament is not accepting bracket changes")
	ErrTournamentSettled    = errors.New("tournament has already been paid out")
	ErrTournamentExists     = errors.New("tournament already exists")
)

// ErrFinalNotCompleted is re-exported so callers of this package need not
// import brackets to test for it.
var ErrFinalNotCompleted = brackets.ErrFinalNotCompleted

var serviceKinds = map[error]brackets.ErrorKind{
	ErrTournamentNotFound:   brackets.KindNotFound,
	ErrBracketNotFound:      brackets.KindNotFound,
	ErrValidationFailed:     brackets.KindValidation,
	ErrTournamentNameEmpty:  brackets.KindValidation,
	ErrBracketNotGenerated:  brackets.KindConflict,
	ErrTournamentNotOngoing: brackets.KindConflict,
	ErrTournamentSettled:    brackets.KindConflict,
	ErrTournamentExists:     brackets.KindConflict,
}

// KindOf classifies any error returned by the services, including the
// bracket errors they pass through.
func KindOf(err error) brackets.ErrorKind {
	if err == nil {
		return brackets.KindUnknown
	}
	for sentinel, kind := range serviceKinds {
		if errors.Is(err, sentinel) {
			return kind
		}
	}
	return brackets.KindOf(err)
}
