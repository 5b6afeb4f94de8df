package dom

// Segment splits items into runs. Each run starts at a marker and extends up to, but not
// including, the next marker. Items before the first marker belong to no run.
func Segment[T any](items []T, isMarker func(T) bool) [][]T {
	var runs [][]T
	for _, item := range items {
		if isMarker(item) {
			runs = append(runs, []T{item})
			continue
		}
		if len(runs) > 0 {
			last := len(runs) - 1
			runs[last] = append(runs[last], item)
		}
	}
	return runs
}

// SplitAt cuts items before the first element matching pred. When nothing matches, tail is empty.
func SplitAt[T any](items []T, pred func(T) bool) (head, tail []T) {
	for i, item := range items {
		if pred(item) {
			return items[:i:i], items[i:]
		}
	}
	return items, nil
}

/*
Input: the items, a predicate for the optional lead and one for the anchor. Output: the groups.

Every anchor opens a group. The lead directly before it, if any, is pulled into the group,
and the group then runs to the next lead or anchor. A lead that is not followed by an
anchor opens nothing.
*/
func GroupAround[T any](items []T, isLead, isAnchor func(T) bool) [][]T {
	var groups [][]T
	for i, item := range items {
		if !isAnchor(item) {
			continue
		}
		start := i
		if i > 0 && isLead(items[i-1]) {
			start = i - 1
		}
		end := i + 1
		for end < len(items) && !isLead(items[end]) && !isAnchor(items[end]) {
			end++
		}
		groups = append(groups, items[start:end:end])
	}
	return groups
}
