package scoring

// MaxScore is the ceiling of the 0-4 scale the whole engine operates on.
const MaxScore = 4.0

// TopicAverage computes the weight-adjusted mean committee score of a topic's
// criteria. A topic with no scored criteria averages 0; it still drags the
// total down instead of being excluded.
func TopicAverage(criteria []ScoredCriterion) float64 {
	var weighted, weights float64
	for _, c := range criteria {
		weighted += c.Score * c.Weight
		weights += c.Weight
	}
	if weights == 0 {
		return 0
	}
	return weighted / weights
}

// Grade maps a total score to its band. Bands are inclusive on the lower
// bound.
func Grade(total float64) string {
	switch {
	case total >= 3.5:
		return "excellent"
	case total >= 3.0:
		return "good"
	case total >= 2.5:
		return "fair"
	case total >= 2.0:
		return "needs improvement"
	default:
		return "fail"
	}
}

// Calculate rolls topic inputs up into the period total. Each topic's average
// is scaled by its weight percentage; the total is the sum over all topics and
// stays within 0-4 under well-formed weights.
func Calculate(topics []TopicInput) TotalScore {
	result := TotalScore{
		MaxScore:    MaxScore,
		TopicScores: make([]TopicScore, 0, len(topics)),
	}
	for _, t := range topics {
		avg := TopicAverage(t.Criteria)
		weighted := avg * t.WeightPercentage / 100
		result.TotalScore += weighted
		result.TopicScores = append(result.TopicScores, TopicScore{
			TopicID:          t.TopicID,
			TopicName:        t.TopicName,
			WeightPercentage: t.WeightPercentage,
			Average:          avg,
			Weighted:         weighted,
			ScoredCriteria:   len(t.Criteria),
		})
	}
	result.Percentage = result.TotalScore / MaxScore * 100
	result.Grade = Grade(result.TotalScore)
	return result
}
