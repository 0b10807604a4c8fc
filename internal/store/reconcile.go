package store

import (
	"slices"

	"github.com/sandeepkv93/todo/internal/model"
)

// reconcile merges a proposed order, usually just the visible subset, back
// into the full list. Listed ids take their proposed relative order. Unlisted
// ids get key -1 and, the sort being stable, keep their relative order ahead
// of everything listed. Duplicate ids in order count at their first position.
func reconcile(tasks []model.Task, order []int64) []model.Task {
	pos := make(map[int64]int, len(order))
	for i, id := range order {
		if _, seen := pos[id]; !seen {
			pos[id] = i
		}
	}
	key := func(t model.Task) int {
		if i, ok := pos[t.ID]; ok {
			return i
		}
		return -1
	}
	out := slices.Clone(tasks)
	slices.SortStableFunc(out, func(a, b model.Task) int {
		return key(a) - key(b)
	})
	return out
}
