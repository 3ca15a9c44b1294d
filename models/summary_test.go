package models

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentChange(t *testing.T) {
	tests := []struct {
		name     string
		current  int64
		previous int64
		want     float64
	}{
		{"both zero", 0, 0, 0},
		{"growth from zero", 5, 0, math.Inf(1)},
		{"fifty percent up", 150, 100, 50.0},
		{"halved", 50, 100, -50.0},
		{"unchanged", 100, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := float64(PercentChange(tt.current, tt.previous))
			if math.IsInf(tt.want, 1) {
				assert.True(t, math.IsInf(got, 1))
			} else {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestPercentageMarshalJSON(t *testing.T) {
	payload, err := json.Marshal(map[string]Percentage{
		"day":   Percentage(math.Inf(1)),
		"week":  Percentage(12.5),
		"month": 0,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"day":"+Inf","week":12.5,"month":0}`, string(payload))
}
