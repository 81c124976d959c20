package handlers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_StartBracketRequest(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name    string
		input   startBracketRequest
		wantErr map[string]string
	}{
		{
			name:  "valid",
			input: startBracketRequest{Format: "double", ParticipantIDs: []string{"a", "b", "c", "d"}},
		},
		{
			name:  "format may be omitted",
			input: startBracketRequest{ParticipantIDs: []string{"a", "b"}},
		},
		{
			name:    "missing participants",
			input:   startBracketRequest{},
			wantErr: map[string]string{"participant_ids": "this field is required"},
		},
		{
			name:    "single participant",
			input:   startBracketRequest{ParticipantIDs: []string{"a"}},
			wantErr: map[string]string{"participant_ids": "must contain at least 2 items"},
		},
		{
			name:    "duplicates",
			input:   startBracketRequest{ParticipantIDs: []string{"a", "a"}},
			wantErr: map[string]string{"participant_ids": "must not contain duplicates"},
		},
		{
			name:    "unknown format",
			input:   startBracketRequest{Format: "swiss", ParticipantIDs: []string{"a", "b"}},
			wantErr: map[string]string{"format": "must be one of: single, double"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateStruct(tt.input)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, FormatValidationError(err))
		})
	}
}

func TestValidator_ScoreRequests(t *testing.T) {
	v := NewValidator()
	neg, zero := -1, 0

	err := v.ValidateStruct(editScoresRequest{Score1: &zero})
	require.Error(t, err)
	assert.Equal(t, map[string]string{"score2": "this field is required"}, FormatValidationError(err))

	err = v.ValidateStruct(reportMatchRequest{Score1: &neg, Score2: &zero})
	require.Error(t, err)
	assert.Equal(t, map[string]string{"score1": "must be greater than or equal to 0"}, FormatValidationError(err))

	assert.NoError(t, v.ValidateStruct(reportMatchRequest{}))
}

func TestFormatValidationError_NonValidatorError(t *testing.T) {
	assert.Nil(t, FormatValidationError(nil))
	assert.Equal(t, map[string]string{"error": "invalid request format"}, FormatValidationError(errors.New("boom")))
}
