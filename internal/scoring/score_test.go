package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateBestCase(t *testing.T) {
	// Depth at or above 120cm saturates the snow bucket; every other input
	// in its best bucket must land exactly on 100.
	assert.Equal(t, 100, Calculate(120, 10, -6, 11, "low"))
	assert.Equal(t, 100, Calculate(300, 25, -20, 50, "low"))
}

func TestCalculateWorstCase(t *testing.T) {
	// Zero snow, warm, collapsing trend, packed slopes: 0+0+5+0+1.
	assert.Equal(t, 6, Calculate(0, 0, 5, -10, "very_high"))
}

func TestCalculateUnknownCrowdLevel(t *testing.T) {
	// Unknown tier contributes the neutral 5 instead of a tier value.
	assert.Equal(t, 10, Calculate(0, 0, 5, -10, ""))
	assert.Equal(t, 10, Calculate(0, 0, 5, -10, "weird"))
}

func TestCalculateBuckets(t *testing.T) {
	tests := []struct {
		name     string
		depth    int
		newSnow  float64
		avgTemp  float64
		trend    int
		crowd    string
		expected int
	}{
		{"half depth", 60, 0, 5, -10, "very_high", 21},
		{"new snow capped", 0, 20, 5, -10, "very_high", 31},
		{"temp below -5", 0, 0, -5.1, -10, "very_high", 21},
		{"temp below 0", 0, 0, -0.1, -10, "very_high", 16},
		{"temp below 5", 0, 0, 4.9, -10, "very_high", 11},
		{"trend strong rise", 0, 0, 5, 11, "very_high", 21},
		{"trend rise", 0, 0, 5, 1, "very_high", 16},
		{"trend mild decline", 0, 0, 5, -9, "very_high", 11},
		{"medium crowd", 0, 0, 5, -10, "medium", 12},
		{"high crowd", 0, 0, 5, -10, "high", 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Calculate(tt.depth, tt.newSnow, tt.avgTemp, tt.trend, tt.crowd))
		})
	}
}

func TestLabelBoundaries(t *testing.T) {
	tests := []struct {
		score    int
		expected string
	}{
		{100, "excellent"},
		{80, "excellent"},
		{79, "very good"},
		{60, "very good"},
		{59, "good"},
		{40, "good"},
		{39, "fair"},
		{20, "fair"},
		{19, "poor"},
		{0, "poor"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Label(tt.score), "score %d", tt.score)
	}
}

func TestTrendDirection(t *testing.T) {
	assert.Equal(t, "steigend", TrendDirection(40, 43).Label)
	assert.Equal(t, "fallend", TrendDirection(40, 37).Label)
	assert.Equal(t, "stabil", TrendDirection(40, 42).Label)
	assert.Equal(t, "stabil", TrendDirection(40, 38).Label)
	assert.Equal(t, "stabil", TrendDirection(40, 40).Label)

	up := TrendDirection(0, 10)
	assert.Equal(t, "↑", up.Arrow)
	assert.Equal(t, "trend-up", up.Class)
}
