package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrizePool_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantAmount *float64
		wantText   string
		wantErr    bool
	}{
		{name: "number", input: `1000`, wantAmount: ptr(1000.0)},
		{name: "fraction", input: `99.5`, wantAmount: ptr(99.5)},
		{name: "currency text", input: `"$1,000"`, wantText: "$1,000"},
		{name: "null", input: `null`},
		{name: "object", input: `{"amount":1}`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p PrizePool
			err := json.Unmarshal([]byte(tt.input), &p)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantAmount, p.Amount)
			assert.Equal(t, tt.wantText, p.Text)
		})
	}
}

func TestPrizePool_MarshalKeepsOriginalForm(t *testing.T) {
	raw, err := json.Marshal(NewPrizePoolText("€500"))
	require.NoError(t, err)
	assert.JSONEq(t, `"€500"`, string(raw))

	raw, err = json.Marshal(NewPrizePoolAmount(250))
	require.NoError(t, err)
	assert.JSONEq(t, `250`, string(raw))

	raw, err = json.Marshal(PrizePool{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(raw))
}

func ptr[T any](v T) *T {
	return &v
}
