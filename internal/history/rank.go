package history

// Rank reorders candidates so that lines appearing in frequent float to the
// top, in frequent's order. Candidates not in frequent keep their original
// relative order. Frequent entries that are not current candidates are
// dropped rather than resurrected.
func Rank(candidates, frequent []string) []string {
	if len(frequent) == 0 || len(candidates) == 0 {
		return candidates
	}

	present := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		present[c] = true
	}

	ranked := make([]string, 0, len(candidates))
	promoted := make(map[string]bool, len(frequent))
	for _, f := range frequent {
		if present[f] && !promoted[f] {
			ranked = append(ranked, f)
			promoted[f] = true
		}
	}
	for _, c := range candidates {
		if !promoted[c] {
			ranked = append(ranked, c)
		}
	}
	return ranked
}
