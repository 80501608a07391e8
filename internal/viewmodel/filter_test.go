package viewmodel

import (
	"testing"

	"github.com/politask/politask/internal/domain"
	"github.com/stretchr/testify/assert"
)

var filterTask = domain.Task{
	ID:         "7",
	Status:     domain.StatusDone,
	Priority:   domain.PriorityHigh,
	AssigneeID: "u1",
}

func TestCriteriaMatches_Conjunction(t *testing.T) {
	cases := []struct {
		name     string
		criteria Criteria
		want     bool
	}{
		{"all wildcards", NewCriteria(), true},
		{"status match", Criteria{Status: "DONE", Priority: FilterAll, AssigneeID: FilterAll}, true},
		{"status mismatch", Criteria{Status: "PENDING", Priority: FilterAll, AssigneeID: FilterAll}, false},
		{"all three match", Criteria{Status: "DONE", Priority: "alta", AssigneeID: "u1"}, true},
		{"assignee mismatch trumps others", Criteria{Status: "DONE", Priority: FilterAll, AssigneeID: "u2"}, false},
		{"priority mismatch trumps others", Criteria{Status: "DONE", Priority: "baja", AssigneeID: "u1"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.criteria.Matches(filterTask))
		})
	}
}

func TestCriteriaMatches_UnassignedTask(t *testing.T) {
	unassigned := domain.Task{Status: domain.StatusPending, Priority: domain.PriorityMedium}
	c := NewCriteria()
	c.AssigneeID = "u1"
	assert.False(t, c.Matches(unassigned))
	assert.True(t, NewCriteria().Matches(unassigned))
}

func TestActiveCount(t *testing.T) {
	assert.Equal(t, 0, NewCriteria().ActiveCount())

	c := NewCriteria()
	c.Status = "DONE"
	assert.Equal(t, 1, c.ActiveCount())

	c.Priority = "alta"
	c.AssigneeID = "u1"
	assert.Equal(t, 3, c.ActiveCount())
}

func TestApply_PreservesOrder(t *testing.T) {
	tasks := []domain.Task{
		{ID: "1", Status: domain.StatusDone, Priority: domain.PriorityLow},
		{ID: "2", Status: domain.StatusPending, Priority: domain.PriorityLow},
		{ID: "3", Status: domain.StatusDone, Priority: domain.PriorityHigh},
	}
	c := NewCriteria()
	c.Status = "DONE"

	got := c.Apply(tasks)
	assert.Equal(t, []domain.ID{"1", "3"}, []domain.ID{got[0].ID, got[1].ID})
}

func TestApply_NoConstraintsReturnsAll(t *testing.T) {
	tasks := []domain.Task{{ID: "1"}, {ID: "2"}}
	assert.Len(t, NewCriteria().Apply(tasks), 2)
}
