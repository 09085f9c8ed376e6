package splice

import "testing"

func TestClassifyLossFusion(t *testing.T) {
	tests := []struct {
		loss     float64
		expected Grade
	}{
		{0.0, GradeGood},
		{0.08, GradeGood},
		{0.10, GradeGood}, // boundary is inclusive
		{0.11, GradeAcceptable},
		{0.15, GradeAcceptable},
		{0.16, GradeHigh},
		{0.28, GradeHigh},
		{0.30, GradeHigh},
		{0.31, GradeFailed},
		{0.35, GradeFailed},
	}

	for _, tt := range tests {
		if got := ClassifyLoss(tt.loss, Fusion); got != tt.expected {
			t.Errorf("ClassifyLoss(%v, fusion) = %s, want %s", tt.loss, got, tt.expected)
		}
	}
}

func TestClassifyLossMechanical(t *testing.T) {
	tests := []struct {
		loss     float64
		expected Grade
	}{
		{0.28, GradeGood}, // high for fusion, fine for mechanical
		{0.30, GradeGood},
		{0.45, GradeAcceptable},
		{0.50, GradeAcceptable},
		{0.65, GradeHigh},
		{0.71, GradeFailed},
	}

	for _, tt := range tests {
		if got := ClassifyLoss(tt.loss, Mechanical); got != tt.expected {
			t.Errorf("ClassifyLoss(%v, mechanical) = %s, want %s", tt.loss, got, tt.expected)
		}
	}
}

func TestClassifyLossUnknownTypeUsesFusion(t *testing.T) {
	if got := ClassifyLoss(0.28, "solder"); got != GradeHigh {
		t.Errorf("unknown type should use fusion thresholds, got %s", got)
	}
}

func TestThresholdTableIsData(t *testing.T) {
	// The boundary table is exposed as data so UIs can render it.
	th, ok := LossThresholds[Fusion]
	if !ok {
		t.Fatalf("fusion thresholds missing from table")
	}
	if th.Good != 0.10 || th.Acceptable != 0.15 || th.High != 0.30 {
		t.Errorf("fusion thresholds changed: %+v", th)
	}
	if mech := LossThresholds[Mechanical]; mech.Good <= th.Good {
		t.Errorf("mechanical thresholds should be looser than fusion")
	}
}
