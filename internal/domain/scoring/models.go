package scoring

// ScoredCriterion is the slice of an evaluation record the engine needs: the
// committee score and the criterion's weight within its topic.
type ScoredCriterion struct {
	CriteriaID   string  `json:"criteriaId"`
	CriteriaName string  `json:"criteriaName"`
	Weight       float64 `json:"weight"`
	Score        float64 `json:"score"`
}

// TopicInput groups a topic's scored criteria for aggregation.
type TopicInput struct {
	TopicID          string  `json:"topicId"`
	TopicName        string  `json:"topicName"`
	WeightPercentage float64 `json:"weightPercentage"`
	Criteria         []ScoredCriterion
}

// TopicScore is one topic's contribution to the total.
type TopicScore struct {
	TopicID          string  `json:"topicId"`
	TopicName        string  `json:"topicName"`
	WeightPercentage float64 `json:"weightPercentage"`
	Average          float64 `json:"topicAverage"`
	Weighted         float64 `json:"weightedScore"`
	ScoredCriteria   int     `json:"scoredCriteria"`
}

// TotalScore is the full roll-up for one user in one period.
type TotalScore struct {
	TotalScore  float64      `json:"totalScore"`
	MaxScore    float64      `json:"maxScore"`
	Percentage  float64      `json:"percentage"`
	Grade       string       `json:"grade"`
	TopicScores []TopicScore `json:"topicScores"`
}
