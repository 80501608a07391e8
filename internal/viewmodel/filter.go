// Package viewmodel derives what the views render — filtered task sets,
// status-grouped boards and breadcrumb trails — as pure functions over
// the store's current snapshots. Nothing here fetches or caches.
package viewmodel

import "github.com/politask/politask/internal/domain"

// FilterAll is the wildcard criterion value: no constraint on that dimension.
const FilterAll = "all"

// Criteria is the active filter selection for a task board. Each
// dimension is independently either FilterAll or a concrete value; use
// NewCriteria, the zero value is not a valid state.
type Criteria struct {
	Status     string
	Priority   string
	AssigneeID string
}

// NewCriteria returns the no-constraint selection.
func NewCriteria() Criteria {
	return Criteria{Status: FilterAll, Priority: FilterAll, AssigneeID: FilterAll}
}

// Matches reports whether the task passes every non-wildcard dimension.
func (c Criteria) Matches(t domain.Task) bool {
	if c.Status != FilterAll && string(t.Status) != c.Status {
		return false
	}
	if c.Priority != FilterAll && string(t.Priority) != c.Priority {
		return false
	}
	if c.AssigneeID != FilterAll && string(t.AssigneeID) != c.AssigneeID {
		return false
	}
	return true
}

// ActiveCount returns how many dimensions carry a concrete constraint,
// for the "Filtros (N)" button label. Zero renders as plain "Filtros".
func (c Criteria) ActiveCount() int {
	n := 0
	if c.Status != FilterAll {
		n++
	}
	if c.Priority != FilterAll {
		n++
	}
	if c.AssigneeID != FilterAll {
		n++
	}
	return n
}

// Apply returns the tasks matching the criteria, preserving input order.
func (c Criteria) Apply(tasks []domain.Task) []domain.Task {
	if c.ActiveCount() == 0 {
		return tasks
	}
	out := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if c.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}
