package rubric

import (
	"errors"
	"testing"
)

func TestCheckWeightBudgetWithinLimit(t *testing.T) {
	if err := CheckWeightBudget(70, 30); err != nil {
		t.Fatalf("expected 70+30 to fit the budget, got %v", err)
	}
	if err := CheckWeightBudget(0, 100); err != nil {
		t.Fatalf("expected a single full-budget weight to fit, got %v", err)
	}
}

func TestCheckWeightBudgetOverLimit(t *testing.T) {
	err := CheckWeightBudget(70, 50)
	var overBudget *OverBudgetError
	if !errors.As(err, &overBudget) {
		t.Fatalf("expected OverBudgetError, got %v", err)
	}
	if overBudget.CurrentTotal != 70 {
		t.Fatalf("expected current total 70, got %v", overBudget.CurrentTotal)
	}
	if overBudget.AttemptedTotal != 120 {
		t.Fatalf("expected attempted total 120, got %v", overBudget.AttemptedTotal)
	}
}

func TestCheckWeightBudgetRejectsInvalidWeight(t *testing.T) {
	if err := CheckWeightBudget(0, 0); !errors.Is(err, ErrInvalidWeight) {
		t.Fatalf("expected ErrInvalidWeight for zero, got %v", err)
	}
	if err := CheckWeightBudget(0, -5); !errors.Is(err, ErrInvalidWeight) {
		t.Fatalf("expected ErrInvalidWeight for negative, got %v", err)
	}
	if err := CheckWeightBudget(0, 101); !errors.Is(err, ErrInvalidWeight) {
		t.Fatalf("expected ErrInvalidWeight above 100, got %v", err)
	}
}

func TestBuildWeightSummary(t *testing.T) {
	summary := BuildWeightSummary(65, 3)
	if summary.TotalWeight != 65 || summary.Count != 3 || summary.RemainingWeight != 35 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestDefaultOptions(t *testing.T) {
	binary := DefaultOptions(EvaluationTypeBinary)
	if len(binary) != 2 || binary[0].Value != 0 || binary[1].Value != 1 {
		t.Fatalf("unexpected binary options: %+v", binary)
	}

	scale := DefaultOptions(EvaluationTypeScale14)
	if len(scale) != 4 {
		t.Fatalf("expected 4 scale options, got %d", len(scale))
	}
	for i, option := range scale {
		if option.Value != float64(i+1) {
			t.Fatalf("expected scale value %d at position %d, got %v", i+1, i, option.Value)
		}
	}

	if custom := DefaultOptions(EvaluationTypeCustom); custom != nil {
		t.Fatalf("expected no defaults for custom_options, got %+v", custom)
	}
}
