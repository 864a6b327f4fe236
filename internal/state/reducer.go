package state

// Merge recursively merges b into a copy of a and returns the result.
// Keys present in both maps whose values are both maps are merged
// recursively; for any other conflicting key, b's value wins. Non-map
// leaves (strings, slices, numbers) are replaced, never concatenated.
//
// Merge is pure and total on well-formed maps, but it is NOT
// commutative: Merge(a, b) != Merge(b, a) in general. Callers are
// responsible for a deterministic application order (the engine applies
// partial results in the order branches complete at the join point).
func Merge(a, b map[string]any) map[string]any {
	merged := make(map[string]any, len(a)+len(b))
	for k, v := range a {
		merged[k] = v
	}
	for k, v := range b {
		existing, ok := merged[k]
		if ok {
			existingMap, okA := existing.(map[string]any)
			newMap, okB := v.(map[string]any)
			if okA && okB {
				merged[k] = Merge(existingMap, newMap)
				continue
			}
		}
		merged[k] = v
	}
	return merged
}
