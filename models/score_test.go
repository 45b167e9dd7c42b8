package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreVector_MaximaSumTo100(t *testing.T) {
	total := 0.0
	for _, f := range ScoreFields {
		total += FieldMax(f)
	}
	assert.Equal(t, 100.0, total)
}

func TestScoreVector_Composite(t *testing.T) {
	tests := []struct {
		name   string
		scores ScoreVector
		want   float64
	}{
		{
			name:   "should sum all six fields",
			scores: ScoreVector{Academic: 25, Graduate: 24, ROI: 20, FSR: 13, Transparency: 10, Visibility: 5},
			want:   97.0,
		},
		{
			name:   "should round to one decimal",
			scores: ScoreVector{Academic: 12.33, Graduate: 15.33, ROI: 14.0, FSR: 11.0, Transparency: 7.0, Visibility: 3.0},
			want:   62.7,
		},
		{
			name:   "should handle zero vector",
			scores: ScoreVector{},
			want:   0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.scores.Composite(), 0.0001)
		})
	}
}

func TestScoreVector_Clamp(t *testing.T) {
	tests := []struct {
		name   string
		scores ScoreVector
		want   ScoreVector
	}{
		{
			name:   "should cap fields above their maxima",
			scores: ScoreVector{Academic: 30, Graduate: 26, ROI: 22, FSR: 16, Transparency: 11, Visibility: 6},
			want:   ScoreVector{Academic: 25, Graduate: 25, ROI: 20, FSR: 15, Transparency: 10, Visibility: 5},
		},
		{
			name:   "should floor negative fields at zero",
			scores: ScoreVector{Academic: -3, Graduate: -0.5, ROI: 5, FSR: 5, Transparency: 5, Visibility: 2},
			want:   ScoreVector{Academic: 0, Graduate: 0, ROI: 5, FSR: 5, Transparency: 5, Visibility: 2},
		},
		{
			name:   "should leave in-range fields untouched",
			scores: ScoreVector{Academic: 12, Graduate: 15, ROI: 14, FSR: 11, Transparency: 7, Visibility: 3},
			want:   ScoreVector{Academic: 12, Graduate: 15, ROI: 14, FSR: 11, Transparency: 7, Visibility: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.scores.Clamp()
			assert.Equal(t, tt.want, tt.scores)
		})
	}
}

func TestScoreVector_FieldAccessors(t *testing.T) {
	s := ScoreVector{}
	for i, f := range ScoreFields {
		s.SetField(f, float64(i)+0.5)
	}

	for i, f := range ScoreFields {
		assert.Equal(t, float64(i)+0.5, s.Field(f))
	}
}

func TestRound1(t *testing.T) {
	assert.Equal(t, 84.2, Round1(84.24))
	assert.Equal(t, 84.3, Round1(84.25))
	assert.Equal(t, -1.2, Round1(-1.24))
	assert.Equal(t, 0.0, Round1(0.04))
}
