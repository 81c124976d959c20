package brackets

import "errors"

// Validation errors: the request itself is not acceptable for the bracket.
var (
	ErrInsufficientParticipants    = errors.New("at least two participants are required")
	ErrInvalidFormatConfiguration  = errors.New("double elimination requires a power-of-two field of at least 4 participants")
	ErrUnsupportedFormat           = errors.New("unsupported bracket format")
	ErrDuplicateParticipant        = errors.New("participant listed more than once")
	ErrMatchHasNoParticipants      = errors.New("match has no participants")
	ErrMatchRequiresScoresOrWinner = errors.New("match result requires both scores or a winner")
	ErrInvalidWinner               = errors.New("winner is not a participant of this match")
	ErrWinnerChangeNotAllowed      = errors.New("new scores would change the recorded winner")
	ErrSlotMismatch                = errors.New("downstream slot does not hold the previous winner")
	ErrOverrideNotSupported        = errors.New("winner override is only supported for winners-bracket matches of single elimination")
)

// State conflicts: the bracket is not in a state that allows the operation.
var (
	ErrMatchAlreadyCompleted    = errors.New("match already completed")
	ErrMatchNotCompleted        = errors.New("match is not completed")
	ErrDownstreamAlreadyDecided = errors.New("downstream match already decided")
	ErrWinnerAlreadyPropagated  = errors.New("winner already advanced to a downstream match")
	ErrFinalNotCompleted        = errors.New("final placements cannot be determined yet")
)

var ErrMatchNotFound = errors.New("match not found")

// ErrorKind groups errors by how a caller should present them.
type ErrorKind string

const (
	KindUnknown    ErrorKind = ""
	KindValidation ErrorKind = "validation"
	KindConflict   ErrorKind = "conflict"
	KindNotFound   ErrorKind = "not_found"
)

var kinds = map[error]ErrorKind{
	ErrInsufficientParticipants:    KindValidation,
	ErrInvalidFormatConfiguration:  KindValidation,
	ErrUnsupportedFormat:           KindValidation,
	ErrDuplicateParticipant:        KindValidation,
	ErrMatchHasNoParticipants:      KindValidation,
	ErrMatchRequiresScoresOrWinner: KindValidation,
	ErrInvalidWinner:               KindValidation,
	ErrWinnerChangeNotAllowed:      KindValidation,
	ErrSlotMismatch:                KindValidation,
	ErrOverrideNotSupported:        KindValidation,
	ErrMatchAlreadyCompleted:       KindConflict,
	ErrMatchNotCompleted:           KindConflict,
	ErrDownstreamAlreadyDecided:    KindConflict,
	ErrWinnerAlreadyPropagated:     KindConflict,
	ErrFinalNotCompleted:           KindConflict,
	ErrMatchNotFound:               KindNotFound,
}

// KindOf classifies err, following wrapped errors. Errors not raised by
// this package are KindUnknown.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindUnknown
	}
	for sentinel, kind := range kinds {
		if errors.Is(err, sentinel) {
			return kind
		}
	}
	return KindUnknown
}
