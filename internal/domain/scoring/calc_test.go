package scoring

import (
	"math"
	"reflect"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestTopicAverage(t *testing.T) {
	t.Run("weighted mean", func(t *testing.T) {
		criteria := []ScoredCriterion{
			{Weight: 60, Score: 4},
			{Weight: 40, Score: 2},
		}
		if got := TopicAverage(criteria); !almostEqual(got, 3.2) {
			t.Fatalf("average = %v, want 3.2", got)
		}
	})

	t.Run("no scored criteria", func(t *testing.T) {
		if got := TopicAverage(nil); got != 0 {
			t.Fatalf("average = %v, want 0", got)
		}
	})

	t.Run("single criterion", func(t *testing.T) {
		if got := TopicAverage([]ScoredCriterion{{Weight: 100, Score: 4}}); got != 4 {
			t.Fatalf("average = %v, want 4", got)
		}
	})
}

func TestGradeBands(t *testing.T) {
	tests := []struct {
		total float64
		want  string
	}{
		{4.0, "excellent"},
		{3.5, "excellent"},
		{3.49, "good"},
		{3.0, "good"},
		{2.99, "fair"},
		{2.5, "fair"},
		{2.49, "needs improvement"},
		{2.4, "needs improvement"},
		{2.0, "needs improvement"},
		{1.99, "fail"},
		{0, "fail"},
	}
	for _, tc := range tests {
		if got := Grade(tc.total); got != tc.want {
			t.Errorf("Grade(%v) = %q, want %q", tc.total, got, tc.want)
		}
	}
}

// A period with two topics where the second has no committee scores yet: the
// unscored topic contributes zero instead of being dropped from the weighting.
func TestCalculateUnscoredTopicDragsTotal(t *testing.T) {
	topics := []TopicInput{
		{
			TopicID:          "t1",
			TopicName:        "Delivery",
			WeightPercentage: 60,
			Criteria:         []ScoredCriterion{{CriteriaID: "c1", Weight: 100, Score: 4}},
		},
		{
			TopicID:          "t2",
			TopicName:        "Teamwork",
			WeightPercentage: 40,
		},
	}

	got := Calculate(topics)

	if !almostEqual(got.TotalScore, 2.4) {
		t.Fatalf("total = %v, want 2.4", got.TotalScore)
	}
	if !almostEqual(got.Percentage, 60) {
		t.Fatalf("percentage = %v, want 60", got.Percentage)
	}
	if got.Grade != "needs improvement" {
		t.Fatalf("grade = %q, want %q", got.Grade, "needs improvement")
	}
	if len(got.TopicScores) != 2 {
		t.Fatalf("topic scores = %d, want 2", len(got.TopicScores))
	}
	if got.TopicScores[0].Average != 4 {
		t.Fatalf("first topic average = %v, want 4", got.TopicScores[0].Average)
	}
	if got.TopicScores[1].Weighted != 0 {
		t.Fatalf("unscored topic contribution = %v, want 0", got.TopicScores[1].Weighted)
	}
}

func TestCalculateFullWeights(t *testing.T) {
	topics := []TopicInput{
		{TopicID: "t1", WeightPercentage: 50, Criteria: []ScoredCriterion{
			{Weight: 50, Score: 3},
			{Weight: 50, Score: 4},
		}},
		{TopicID: "t2", WeightPercentage: 50, Criteria: []ScoredCriterion{
			{Weight: 100, Score: 3},
		}},
	}

	got := Calculate(topics)

	// 3.5*0.5 + 3*0.5 = 3.25
	if !almostEqual(got.TotalScore, 3.25) {
		t.Fatalf("total = %v, want 3.25", got.TotalScore)
	}
	if got.Grade != "good" {
		t.Fatalf("grade = %q, want %q", got.Grade, "good")
	}
}

func TestCalculateIsPure(t *testing.T) {
	topics := []TopicInput{
		{TopicID: "t1", WeightPercentage: 100, Criteria: []ScoredCriterion{
			{Weight: 30, Score: 2},
			{Weight: 70, Score: 3.5},
		}},
	}

	first := Calculate(topics)
	second := Calculate(topics)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("repeated calculation over unchanged input must yield identical output")
	}
}

func TestCalculateEmptyPeriod(t *testing.T) {
	got := Calculate(nil)
	if got.TotalScore != 0 || got.Percentage != 0 {
		t.Fatalf("empty period total = %v, percentage = %v, want 0/0", got.TotalScore, got.Percentage)
	}
	if got.Grade != "fail" {
		t.Fatalf("grade = %q, want %q", got.Grade, "fail")
	}
	if len(got.TopicScores) != 0 {
		t.Fatalf("topic scores = %d, want 0", len(got.TopicScores))
	}
}
