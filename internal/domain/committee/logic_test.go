package committee

import "testing"

func TestExpandPairsSkipsSelfPairs(t *testing.T) {
	pairs := ExpandPairs([]string{"1", "2"}, []string{"2", "3"})
	want := []Pair{
		{CommitteeID: "1", EvaluateeID: "2"},
		{CommitteeID: "1", EvaluateeID: "3"},
		{CommitteeID: "2", EvaluateeID: "3"},
	}
	if len(pairs) != len(want) {
		t.Fatalf("expected %d pairs, got %d: %+v", len(want), len(pairs), pairs)
	}
	for i, pair := range pairs {
		if pair != want[i] {
			t.Fatalf("pair %d: got %+v, want %+v", i, pair, want[i])
		}
	}
}

func TestExpandPairsEmptyInputs(t *testing.T) {
	if pairs := ExpandPairs(nil, []string{"1"}); len(pairs) != 0 {
		t.Fatalf("expected no pairs without committees, got %+v", pairs)
	}
	if pairs := ExpandPairs([]string{"1"}, nil); len(pairs) != 0 {
		t.Fatalf("expected no pairs without evaluatees, got %+v", pairs)
	}
}

func TestExpandPairsAllSelf(t *testing.T) {
	if pairs := ExpandPairs([]string{"1"}, []string{"1"}); len(pairs) != 0 {
		t.Fatalf("expected only self pair to be dropped, got %+v", pairs)
	}
}

func TestValidRole(t *testing.T) {
	if !ValidRole(RoleChairman) || !ValidRole(RoleMember) {
		t.Fatal("expected chairman and member to be valid roles")
	}
	if ValidRole("observer") {
		t.Fatal("expected observer to be rejected")
	}
}
