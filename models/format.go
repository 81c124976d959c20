package models

// BracketFormat selects the elimination structure generated for a tournament.
type BracketFormat string

const (
	FormatSingleElimination BracketFormat = "single"
	FormatDoubleElimination BracketFormat = "double"
)

func (f BracketFormat) Valid() bool {
	return f == FormatSingleElimination || f == FormatDoubleElimination
}
