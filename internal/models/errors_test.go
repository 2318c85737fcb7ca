package models

import (
	"testing"
)

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"ErrCompanyNotFound", ErrCompanyNotFound, true},
		{"ErrUserNotFound", ErrUserNotFound, true},
		{"ErrDomainNotFound", ErrDomainNotFound, true},
		{"ErrQuestionNotFound", ErrQuestionNotFound, true},
		{"ErrAssessmentNotFound", ErrAssessmentNotFound, true},
		{"ErrResponseNotFound", ErrResponseNotFound, true},
		{"Non-NotFound error", ErrInvalidResponseValue, false},
		{"nil error", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNotFoundError(tt.err); got != tt.expected {
				t.Errorf("IsNotFoundError() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestIsValidationError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"ErrInvalidInput", ErrInvalidInput, true},
		{"ErrInvalidResponseValue", ErrInvalidResponseValue, true},
		{"ErrInvalidMaturityLevel", ErrInvalidMaturityLevel, true},
		{"ErrQuestionOutsidePlan", ErrQuestionOutsidePlan, true},
		{"Non-validation error", ErrAssessmentNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidationError(tt.err); got != tt.expected {
				t.Errorf("IsValidationError() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestIsConflictError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"ErrAlreadyExists", ErrAlreadyExists, true},
		{"ErrAssessmentAlreadyCompleted", ErrAssessmentAlreadyCompleted, true},
		{"ErrAssessmentNotDraft", ErrAssessmentNotDraft, true},
		{"Non-conflict error", ErrUserNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsConflictError(tt.err); got != tt.expected {
				t.Errorf("IsConflictError() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestAssessmentComplete(t *testing.T) {
	a := &Assessment{}
	a.BeforeCreate()

	if err := a.Complete(3.75); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if !a.IsCompleted() {
		t.Error("assessment should be completed")
	}
	if a.OverallScore == nil || *a.OverallScore != 3.75 {
		t.Errorf("OverallScore = %v, want frozen 3.75", a.OverallScore)
	}
	if a.CompletedAt == nil {
		t.Error("CompletedAt should be set")
	}

	if err := a.Complete(4.0); err != ErrAssessmentAlreadyCompleted {
		t.Errorf("second Complete() error = %v, want ErrAssessmentAlreadyCompleted", err)
	}
	if *a.OverallScore != 3.75 {
		t.Errorf("frozen score changed to %v", *a.OverallScore)
	}
}

func TestResponseValidate(t *testing.T) {
	for _, v := range []int{1, 3, 5} {
		r := &Response{Value: v}
		if err := r.Validate(); err != nil {
			t.Errorf("Validate() with value %d: unexpected error %v", v, err)
		}
	}
	for _, v := range []int{0, -2, 6} {
		r := &Response{Value: v}
		if err := r.Validate(); err != ErrInvalidResponseValue {
			t.Errorf("Validate() with value %d: error = %v, want ErrInvalidResponseValue", v, err)
		}
	}
}
