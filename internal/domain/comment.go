package domain

type Comment struct {
	ID        ID        `json:"id"`
	TaskID    ID        `json:"task_id"`
	UserID    ID        `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt Timestamp `json:"created_at"`
}
