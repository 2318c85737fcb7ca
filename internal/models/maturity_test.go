package models

import (
	"testing"
)

func TestLevelForScore(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		want  MaturityLevel
	}{
		{"zero means not evaluated", 0, MaturityNotEvaluated},
		{"negative clamps to not evaluated", -1, MaturityNotEvaluated},
		{"low scores clamp to Initial", 0.2, MaturityInitial},
		{"1.0 is Initial", 1.0, MaturityInitial},
		{"1.49 is Initial", 1.49, MaturityInitial},
		{"1.50 rounds up to Repeatable", 1.50, MaturityRepeatable},
		{"2.49 is Repeatable", 2.49, MaturityRepeatable},
		{"2.50 rounds up to Defined", 2.50, MaturityDefined},
		{"3.49 is Defined", 3.49, MaturityDefined},
		{"3.50 rounds up to Managed", 3.50, MaturityManaged},
		{"4.49 is Managed", 4.49, MaturityManaged},
		{"4.50 rounds up to Optimized", 4.50, MaturityOptimized},
		{"5.0 is Optimized", 5.0, MaturityOptimized},
		{"above scale clamps to Optimized", 6.3, MaturityOptimized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LevelForScore(tt.score); got != tt.want {
				t.Errorf("LevelForScore(%v) = %v, want %v", tt.score, got, tt.want)
			}
		})
	}
}

func TestMaturityLevelLabel(t *testing.T) {
	tests := []struct {
		level MaturityLevel
		want  string
	}{
		{MaturityNotEvaluated, "Not Evaluated"},
		{MaturityInitial, "Initial"},
		{MaturityRepeatable, "Repeatable"},
		{MaturityDefined, "Defined"},
		{MaturityManaged, "Managed"},
		{MaturityOptimized, "Optimized"},
		{MaturityLevel(42), "Not Evaluated"},
	}

	for _, tt := range tests {
		if got := tt.level.Label(); got != tt.want {
			t.Errorf("MaturityLevel(%d).Label() = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestMaturityLevelIsValid(t *testing.T) {
	if MaturityNotEvaluated.IsValid() {
		t.Error("Not Evaluated must not be a valid assessable level")
	}
	for l := MaturityInitial; l <= MaturityOptimized; l++ {
		if !l.IsValid() {
			t.Errorf("level %d should be valid", l)
		}
	}
	if (MaturityOptimized + 1).IsValid() {
		t.Error("level 6 should be invalid")
	}
}
