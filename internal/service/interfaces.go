package service

import (
	"context"

	"github.com/politask/politask/internal/api"
	"github.com/politask/politask/internal/domain"
)

// TaskService coordinates task mutations: validate client-side, send, and
// on success merge the server echo into the store. On failure the store
// is left untouched and the typed failure surfaces to the caller.
type TaskService interface {
	Create(ctx context.Context, req api.CreateTaskRequest) (*domain.Task, error)
	Update(ctx context.Context, id domain.ID, patch domain.TaskPatch) (*domain.Task, error)
	SetStatus(ctx context.Context, id domain.ID, status domain.TaskStatus) (*domain.Task, error)
	SetPriority(ctx context.Context, id domain.ID, priority domain.TaskPriority) (*domain.Task, error)
}

type ProjectService interface {
	Create(ctx context.Context, req api.CreateProjectRequest) (*domain.Project, error)
}

type CommentService interface {
	Create(ctx context.Context, taskID domain.ID, content string) (*domain.Comment, error)
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (*api.AuthResult, error)
	Register(ctx context.Context, name, email, password string) (*api.AuthResult, error)
	ChangePassword(ctx context.Context, current, updated string) error
	Logout() error
	Authenticated() bool
}

type SearchService interface {
	Search(ctx context.Context, query string) (*api.SearchResult, error)
}

// TaskGateway is the slice of the api client used by task mutations.
type TaskGateway interface {
	CreateTask(ctx context.Context, req api.CreateTaskRequest) (*domain.Task, error)
	UpdateTask(ctx context.Context, id domain.ID, patch domain.TaskPatch) (*domain.Task, error)
}

// ProjectGateway is the slice of the api client used by project mutations.
type ProjectGateway interface {
	CreateProject(ctx context.Context, req api.CreateProjectRequest) (*domain.Project, error)
}

// CommentGateway is the slice of the api client used by comment mutations.
type CommentGateway interface {
	CreateComment(ctx context.Context, taskID domain.ID, content string) (*domain.Comment, error)
}
