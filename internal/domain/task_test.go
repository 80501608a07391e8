package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeStatus(t *testing.T) {
	cases := []struct {
		raw  string
		want TaskStatus
	}{
		{"PENDING", StatusPending},
		{"IN PROGRESS", StatusInProgress},
		{"BLOCKED", StatusBlocked},
		{"IN REVIEW", StatusInReview},
		{"DONE", StatusDone},
		{"REJECTED", StatusRejected},
		{"CLOSED", StatusClosed},
		{"", StatusPending},
		{"STAND BY", StatusPending},
		{"pending", StatusPending}, // vocabulary is case-sensitive
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeStatus(tc.raw), "raw=%q", tc.raw)
	}
}

func TestNormalizePriority(t *testing.T) {
	cases := []struct {
		raw  string
		want TaskPriority
	}{
		{"alta", PriorityHigh},
		{"media", PriorityMedium},
		{"baja", PriorityLow},
		{"", PriorityMedium},
		{"urgente", PriorityMedium},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizePriority(tc.raw), "raw=%q", tc.raw)
	}
}

func TestTaskNormalize_AbsentStatus(t *testing.T) {
	var task Task
	require.NoError(t, json.Unmarshal([]byte(`{"id":5}`), &task))
	task = task.Normalize()
	assert.Equal(t, StatusPending, task.Status)
	assert.Equal(t, PriorityMedium, task.Priority)
	assert.Equal(t, ID("5"), task.ID)
}

func TestTaskNormalize_KeepsKnownValues(t *testing.T) {
	task := Task{Status: StatusDone, Priority: PriorityHigh}.Normalize()
	assert.Equal(t, StatusDone, task.Status)
	assert.Equal(t, PriorityHigh, task.Priority)
}

func TestStatusMeta_UnknownFallsBack(t *testing.T) {
	assert.Equal(t, StatusPending.Meta(), TaskStatus("STAND BY").Meta())
}

func TestStatusOrder_CoversVocabulary(t *testing.T) {
	require.Len(t, StatusOrder, len(statusMeta))
	seen := make(map[TaskStatus]bool)
	for _, s := range StatusOrder {
		assert.True(t, s.Valid(), "status %q missing metadata", s)
		assert.False(t, seen[s], "status %q listed twice", s)
		seen[s] = true
	}
}

func TestIDDecoding(t *testing.T) {
	var task Task
	require.NoError(t, json.Unmarshal([]byte(`{"id":42,"assignee_id":"u1"}`), &task))
	assert.Equal(t, ID("42"), task.ID)
	assert.Equal(t, ID("u1"), task.AssigneeID)

	data, err := json.Marshal(ID("42"))
	require.NoError(t, err)
	assert.Equal(t, "42", string(data), "numeric ids round-trip as numbers")
}

func TestTimestampDecoding(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`"2025-05-01T09:30:00"`, "2025-05-01T09:30:00Z"},
		{`"2025-05-01T09:30:00.123456"`, "2025-05-01T09:30:00Z"},
		{`"2025-05-01T09:30:00Z"`, "2025-05-01T09:30:00Z"},
	}
	for _, tc := range cases {
		var ts Timestamp
		require.NoError(t, json.Unmarshal([]byte(tc.in), &ts), "in=%s", tc.in)
		assert.Equal(t, tc.want, ts.UTC().Format("2006-01-02T15:04:05Z"), "in=%s", tc.in)
	}
}

func TestTaskPatch_OmitsNilFields(t *testing.T) {
	status := StatusDone
	data, err := json.Marshal(TaskPatch{Status: &status})
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"DONE"}`, string(data))
}
