package content

// siblingRow is the minimal projection used when renumbering siblings.
type siblingRow struct {
	ID        string
	SortOrder int
}

// computeReorder assigns order = index in orderedIDs to each sibling named
// there, then renumbers the remaining siblings after the listed block,
// preserving their prior relative order. This keeps reorder idempotent and
// never leaves two siblings colliding on the same order value. Returns only
// the assignments that differ from the stored value. IDs in orderedIDs that
// are not siblings of the stated parent are ignored.
func computeReorder(rows []siblingRow, orderedIDs []string) map[string]int {
	known := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		known[row.ID] = struct{}{}
	}

	listed := make(map[string]int, len(orderedIDs))
	for idx, id := range orderedIDs {
		if _, ok := known[id]; !ok {
			continue
		}
		if _, seen := listed[id]; seen {
			continue
		}
		listed[id] = idx
	}

	changes := make(map[string]int)
	next := len(orderedIDs)

	for _, row := range rows {
		desired, ok := listed[row.ID]
		if !ok {
			desired = next
			next++
		}
		if desired != row.SortOrder {
			changes[row.ID] = desired
		}
	}

	return changes
}
