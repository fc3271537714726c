package committee

// ExpandPairs builds the cross product of committee and evaluatee ids,
// silently dropping self-pairs. Order follows the input slices.
func ExpandPairs(committeeIDs, evaluateeIDs []string) []Pair {
	pairs := make([]Pair, 0, len(committeeIDs)*len(evaluateeIDs))
	for _, committeeID := range committeeIDs {
		for _, evaluateeID := range evaluateeIDs {
			if committeeID == evaluateeID {
				continue
			}
			pairs = append(pairs, Pair{CommitteeID: committeeID, EvaluateeID: evaluateeID})
		}
	}
	return pairs
}
