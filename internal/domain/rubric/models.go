package rubric

import "time"

type Topic struct {
	ID               string      `json:"id"`
	PeriodID         string      `json:"periodId"`
	Name             string      `json:"name"`
	WeightPercentage float64     `json:"weightPercentage"`
	SortOrder        int         `json:"sortOrder"`
	CreatedAt        time.Time   `json:"createdAt"`
	Criteria         []Criterion `json:"criteria,omitempty"`
}

type Criterion struct {
	ID               string    `json:"id"`
	TopicID          string    `json:"topicId"`
	Name             string    `json:"name"`
	WeightScore      float64   `json:"weightScore"`
	EvaluationType   string    `json:"evaluationType"`
	EvidenceRequired bool      `json:"evidenceRequired"`
	EvidenceTypes    []string  `json:"evidenceTypes,omitempty"`
	SortOrder        int       `json:"sortOrder"`
	CreatedAt        time.Time `json:"createdAt"`
	Options          []Option  `json:"options,omitempty"`
}

type Option struct {
	ID          string  `json:"id"`
	CriterionID string  `json:"criterionId"`
	Text        string  `json:"text"`
	Value       float64 `json:"value"`
	SortOrder   int     `json:"sortOrder"`
}

// OptionSeed is a caller-supplied or generated option before insertion.
type OptionSeed struct {
	Text      string  `json:"text"`
	Value     float64 `json:"value"`
	SortOrder int     `json:"sortOrder"`
}

type WeightSummary struct {
	TotalWeight     float64 `json:"totalWeight"`
	Count           int     `json:"count"`
	RemainingWeight float64 `json:"remainingWeight"`
}
