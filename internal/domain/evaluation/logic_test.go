package evaluation

import "testing"

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{StatusDraft, StatusSubmitted, true},
		{StatusSubmitted, StatusEvaluated, true},
		{StatusEvaluated, StatusApproved, true},
		{StatusDraft, StatusEvaluated, false},
		{StatusSubmitted, StatusApproved, false},
		{StatusSubmitted, StatusDraft, false},
		{StatusApproved, StatusEvaluated, false},
		{StatusApproved, StatusApproved, false},
		{"unknown", StatusSubmitted, false},
		{StatusDraft, "unknown", false},
	}
	for _, tc := range tests {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%q, %q) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestValidateScore(t *testing.T) {
	score := func(v float64) *float64 { return &v }

	if err := ValidateScore(nil); err != nil {
		t.Fatalf("nil score: unexpected error %v", err)
	}
	for _, v := range []float64{0, 2.5, 4} {
		if err := ValidateScore(score(v)); err != nil {
			t.Errorf("score %v: unexpected error %v", v, err)
		}
	}
	for _, v := range []float64{-0.1, 4.1, 100} {
		if err := ValidateScore(score(v)); err != ErrScoreOutOfRange {
			t.Errorf("score %v: got %v, want ErrScoreOutOfRange", v, err)
		}
	}
}

func TestBuildStatus(t *testing.T) {
	t.Run("empty rubric", func(t *testing.T) {
		st := BuildStatus(0, 0, 0, 0, 0)
		if st.CanSubmit {
			t.Fatal("empty rubric must not be submittable")
		}
		if st.CompletionRate != 0 {
			t.Fatalf("completion rate = %v, want 0", st.CompletionRate)
		}
	})

	t.Run("drafts remaining", func(t *testing.T) {
		st := BuildStatus(4, 2, 2, 0, 0)
		if st.CanSubmit {
			t.Fatal("drafts remaining must block submission")
		}
		if st.CompletionRate != 50 {
			t.Fatalf("completion rate = %v, want 50", st.CompletionRate)
		}
	})

	t.Run("all submitted", func(t *testing.T) {
		st := BuildStatus(4, 0, 4, 0, 0)
		if !st.CanSubmit {
			t.Fatal("no drafts and non-empty rubric must be submittable")
		}
		if st.CompletionRate != 100 {
			t.Fatalf("completion rate = %v, want 100", st.CompletionRate)
		}
	})

	t.Run("drafts do not count toward completion", func(t *testing.T) {
		st := BuildStatus(8, 6, 2, 0, 0)
		if st.CompletionRate != 25 {
			t.Fatalf("completion rate = %v, want 25", st.CompletionRate)
		}
	})

	t.Run("mixed later states", func(t *testing.T) {
		st := BuildStatus(4, 0, 1, 2, 1)
		if !st.CanSubmit {
			t.Fatal("no drafts must allow submission")
		}
		if st.CompletionRate != 100 {
			t.Fatalf("completion rate = %v, want 100", st.CompletionRate)
		}
	})
}
