package rubric

const (
	EvaluationTypeBinary  = "binary"
	EvaluationTypeScale14 = "scale_1_4"
	EvaluationTypeCustom  = "custom_options"

	// WeightBudget is the cap on sibling weights within one parent scope.
	WeightBudget = 100.0
)

func ValidEvaluationType(value string) bool {
	switch value {
	case EvaluationTypeBinary, EvaluationTypeScale14, EvaluationTypeCustom:
		return true
	}
	return false
}
