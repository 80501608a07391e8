package domain

type Task struct {
	ID            ID           `json:"id"`
	ProjectID     ID           `json:"project_id"`
	Title         string       `json:"title"`
	Description   string       `json:"description,omitempty"`
	Status        TaskStatus   `json:"status,omitempty"`
	Priority      TaskPriority `json:"priority,omitempty"`
	AssigneeID    ID           `json:"assignee_id,omitempty"`
	DueDate       *Timestamp   `json:"due_date,omitempty"`
	CreatedAt     Timestamp    `json:"created_at"`
	UpdatedAt     Timestamp    `json:"updated_at"`
	CommentsCount int          `json:"comments_count"`
}

// Normalize returns a copy of t with absent or out-of-vocabulary status
// and priority replaced by their defaults. Every task entering the store
// passes through here, so views never see an unknown status.
func (t Task) Normalize() Task {
	t.Status = NormalizeStatus(string(t.Status))
	t.Priority = NormalizePriority(string(t.Priority))
	return t
}

// Assigned reports whether the task has an assignee.
func (t Task) Assigned() bool { return t.AssigneeID != "" }

// TaskPatch is a partial update sent to PUT /api/tasks/{id}. Nil fields
// are omitted from the request body and left untouched by the server.
type TaskPatch struct {
	Title       *string       `json:"title,omitempty"`
	Description *string       `json:"description,omitempty"`
	Status      *TaskStatus   `json:"status,omitempty"`
	Priority    *TaskPriority `json:"priority,omitempty"`
	AssigneeID  *ID           `json:"assignee_id,omitempty"`
	DueDate     *Timestamp    `json:"due_date,omitempty"`
}
