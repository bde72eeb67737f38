package shared

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHundredths(t *testing.T) {
	tests := []struct {
		in   float64
		want Hundredths
		str  string
	}{
		{19.99, 1999, "19.99"},
		{10, 1000, "10.00"},
		{0.1 + 0.2, 30, "0.30"},
		{-2.5, -250, "-2.50"},
	}
	for _, tt := range tests {
		t.Run(tt.str, func(t *testing.T) {
			h := HundredthsFromFloat(tt.in)
			assert.Equal(t, tt.want, h)
			assert.Equal(t, tt.str, h.String())
		})
	}
}

func TestHundredths_JSON(t *testing.T) {
	var payload struct {
		Price Hundredths `json:"price"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"price": 19.99}`), &payload))
	assert.Equal(t, Hundredths(1999), payload.Price)

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"price": 19.99}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"price": "abc"}`), &payload))
}
