package viewmodel

import "github.com/politask/politask/internal/domain"

// StatusGroup is one board section: a status and its tasks in input order.
type StatusGroup struct {
	Status domain.TaskStatus
	Tasks  []domain.Task
}

// Count returns the number of tasks in the group, for the "(N)" header.
func (g StatusGroup) Count() int { return len(g.Tasks) }

// GroupByStatus partitions tasks into one group per vocabulary entry, in
// declared vocabulary order. Empty groups are included; tasks keep their
// relative input order within each group. Tasks whose status is outside
// the vocabulary do not appear — ingestion normalization makes that
// impossible for stored tasks, so dropping here would be a bug upstream.
func GroupByStatus(tasks []domain.Task, vocabulary []domain.TaskStatus) []StatusGroup {
	groups := make([]StatusGroup, len(vocabulary))
	index := make(map[domain.TaskStatus]int, len(vocabulary))
	for i, s := range vocabulary {
		groups[i] = StatusGroup{Status: s}
		index[s] = i
	}
	for _, t := range tasks {
		if i, ok := index[t.Status]; ok {
			groups[i].Tasks = append(groups[i].Tasks, t)
		}
	}
	return groups
}

// Visible filters groups for rendering. With includeEmpty set every group
// shows (dashboard-style overview). Otherwise a group is omitted only
// when it is both empty AND collapsed: a user who deliberately expanded
// an empty group keeps seeing it.
func Visible(groups []StatusGroup, open map[domain.TaskStatus]bool, includeEmpty bool) []StatusGroup {
	if includeEmpty {
		return groups
	}
	out := make([]StatusGroup, 0, len(groups))
	for _, g := range groups {
		if len(g.Tasks) == 0 && !open[g.Status] {
			continue
		}
		out = append(out, g)
	}
	return out
}
