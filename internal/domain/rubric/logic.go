package rubric

// CheckWeightBudget validates that adding newWeight to the existing sibling
// total stays within the budget. currentTotal excludes the row being updated.
func CheckWeightBudget(currentTotal, newWeight float64) error {
	if newWeight <= 0 || newWeight > WeightBudget {
		return ErrInvalidWeight
	}
	attempted := currentTotal + newWeight
	if attempted > WeightBudget {
		return &OverBudgetError{CurrentTotal: currentTotal, AttemptedTotal: attempted}
	}
	return nil
}

func BuildWeightSummary(totalWeight float64, count int) WeightSummary {
	return WeightSummary{
		TotalWeight:     totalWeight,
		Count:           count,
		RemainingWeight: WeightBudget - totalWeight,
	}
}

// DefaultOptions returns the generated option set for a criterion type.
// custom_options has no defaults; the caller must supply its own.
func DefaultOptions(evaluationType string) []OptionSeed {
	switch evaluationType {
	case EvaluationTypeBinary:
		return []OptionSeed{
			{Text: "Not met", Value: 0, SortOrder: 1},
			{Text: "Met", Value: 1, SortOrder: 2},
		}
	case EvaluationTypeScale14:
		return []OptionSeed{
			{Text: "Well below expected performance", Value: 1, SortOrder: 1},
			{Text: "Below expected performance", Value: 2, SortOrder: 2},
			{Text: "Meets expected performance", Value: 3, SortOrder: 3},
			{Text: "Exceeds expected performance", Value: 4, SortOrder: 4},
		}
	}
	return nil
}
