package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStandardRateTable(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{score: 850, want: "3.5"},
		{score: 800, want: "3.5"},
		{score: 799, want: "4.5"},
		{score: 740, want: "4.5"},
		{score: 739, want: "6.5"},
		{score: 720, want: "6.5"},
		{score: 670, want: "6.5"},
		{score: 669, want: "9.5"},
		{score: 580, want: "9.5"},
		{score: 579, want: "13.5"},
		{score: 500, want: "13.5"},
		{score: 499, want: "18.0"},
		{score: 0, want: "18.0"},
		{score: -20, want: "18.0"},
	}

	for _, tt := range tests {
		got := StandardRateTable.RateFor(tt.score)
		assert.Truef(t, got.Equal(d(tt.want)), "score %d: want %s, got %s", tt.score, tt.want, got)
	}
}

func TestEstimatorRateTable(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{score: 900, want: "2.9"},
		{score: 760, want: "2.9"},
		{score: 759, want: "3.9"},
		{score: 720, want: "3.9"},
		{score: 700, want: "3.9"},
		{score: 699, want: "5.9"},
		{score: 640, want: "5.9"},
		{score: 639, want: "9.9"},
		{score: 300, want: "9.9"},
	}

	for _, tt := range tests {
		got := EstimatorRateTable.RateFor(tt.score)
		assert.Truef(t, got.Equal(d(tt.want)), "score %d: want %s, got %s", tt.score, tt.want, got)
	}
}

func TestRateTableByName(t *testing.T) {
	assert.Equal(t, RateTableEstimator, RateTableByName("estimator").Name())
	assert.Equal(t, RateTableStandard, RateTableByName("standard").Name())
	assert.Equal(t, RateTableStandard, RateTableByName("").Name())
	assert.Equal(t, RateTableStandard, RateTableByName("bogus").Name())
}
