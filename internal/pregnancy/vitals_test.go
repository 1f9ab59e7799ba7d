package pregnancy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyBP(t *testing.T) {
	tests := []struct {
		name      string
		systolic  int
		diastolic int
		want      BPStatus
	}{
		{"crisis systolic boundary", 180, 70, BPCrisis},
		{"crisis diastolic boundary", 120, 120, BPCrisis},
		{"high systolic boundary", 140, 70, BPHigh},
		{"high diastolic boundary", 120, 90, BPHigh},
		{"elevated systolic boundary", 130, 70, BPElevated},
		{"elevated diastolic boundary", 120, 80, BPElevated},
		{"just below elevated", 129, 79, BPNormal},
		{"low systolic", 89, 65, BPLow},
		{"low diastolic", 100, 59, BPLow},
		{"lower bounds of normal", 90, 60, BPNormal},
		{"typical normal", 115, 75, BPNormal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyBP(tt.systolic, tt.diastolic))
		})
	}
}

func TestClassifyBP_CrisisWinsOverLow(t *testing.T) {
	// A crisis-level systolic with a low diastolic must classify as crisis;
	// rules are evaluated most-severe first.
	assert.Equal(t, BPCrisis, ClassifyBP(185, 55))
}

func TestBMI(t *testing.T) {
	assert.InDelta(t, 24.22, BMI(70, 170), 0.01)
	assert.InDelta(t, 22.86, BMI(70, 175), 0.01)
}

func TestClassifyBMI(t *testing.T) {
	tests := []struct {
		name         string
		weightKg     float64
		heightCm     float64
		wantCategory BMICategory
		wantCritical bool
	}{
		{"severe underweight", 45, 170, BMISevereUnderweight, true},
		{"underweight", 50, 170, BMIUnderweight, false},
		{"normal", 70, 170, BMINormal, false},
		{"overweight", 80, 170, BMIOverweight, false},
		{"obese below critical", 95, 170, BMIObese, false},
		{"obese critical", 110, 170, BMIObese, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ClassifyBMI(tt.weightKg, tt.heightCm)
			assert.Equal(t, tt.wantCategory, result.Category)
			assert.Equal(t, tt.wantCritical, result.Critical)
			assert.InDelta(t, BMI(tt.weightKg, tt.heightCm), result.Value, 0.001)
		})
	}
}
