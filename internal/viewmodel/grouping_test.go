package viewmodel

import (
	"testing"

	"github.com/politask/politask/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupByStatus_ExhaustiveAndOrdered(t *testing.T) {
	tasks := []domain.Task{
		{ID: "1", Status: domain.StatusPending},
		{ID: "2", Status: domain.StatusDone},
		{ID: "3", Status: domain.StatusPending},
	}
	vocab := []domain.TaskStatus{domain.StatusPending, domain.StatusDone}

	groups := GroupByStatus(tasks, vocab)
	require.Len(t, groups, 2, "one group per vocabulary entry")

	assert.Equal(t, domain.StatusPending, groups[0].Status)
	assert.Equal(t, []domain.ID{"1", "3"}, taskIDs(groups[0].Tasks), "input order preserved")
	assert.Equal(t, domain.StatusDone, groups[1].Status)
	assert.Equal(t, []domain.ID{"2"}, taskIDs(groups[1].Tasks))
}

func TestGroupByStatus_FullVocabulary(t *testing.T) {
	tasks := []domain.Task{{ID: "1", Status: domain.StatusBlocked}}

	groups := GroupByStatus(tasks, domain.StatusOrder)
	require.Len(t, groups, len(domain.StatusOrder))

	total := 0
	for i, g := range groups {
		assert.Equal(t, domain.StatusOrder[i], g.Status, "vocabulary order, never alphabetical")
		for _, task := range g.Tasks {
			assert.Equal(t, g.Status, task.Status)
		}
		total += g.Count()
	}
	assert.Equal(t, len(tasks), total, "union of groups equals input set")
}

func TestGroupByStatus_EmptyInput(t *testing.T) {
	groups := GroupByStatus(nil, domain.StatusOrder)
	require.Len(t, groups, len(domain.StatusOrder))
	for _, g := range groups {
		assert.Zero(t, g.Count())
	}
}

func TestVisible_IncludeEmptyShowsEverything(t *testing.T) {
	groups := GroupByStatus(nil, domain.StatusOrder)
	assert.Len(t, Visible(groups, nil, true), len(domain.StatusOrder))
}

func TestVisible_ElidesOnlyEmptyAndCollapsed(t *testing.T) {
	tasks := []domain.Task{{ID: "1", Status: domain.StatusDone}}
	groups := GroupByStatus(tasks, []domain.TaskStatus{
		domain.StatusPending, domain.StatusInProgress, domain.StatusDone,
	})

	open := map[domain.TaskStatus]bool{
		domain.StatusPending: true, // empty but deliberately expanded: stays
	}

	visible := Visible(groups, open, false)
	require.Len(t, visible, 2)
	assert.Equal(t, domain.StatusPending, visible[0].Status)
	assert.Equal(t, domain.StatusDone, visible[1].Status)
}

func taskIDs(tasks []domain.Task) []domain.ID {
	ids := make([]domain.ID, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	return ids
}
