package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/politask/politask/internal/api"
	"github.com/politask/politask/internal/domain"
	"github.com/politask/politask/internal/store"
)

type taskService struct {
	gw    TaskGateway
	store *store.Store
}

func NewTaskService(gw TaskGateway, st *store.Store) TaskService {
	return &taskService{gw: gw, store: st}
}

func (s *taskService) Create(ctx context.Context, req api.CreateTaskRequest) (*domain.Task, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("el título es obligatorio")
	}
	if req.ProjectID == "" {
		return nil, fmt.Errorf("task create: project id is required")
	}
	// Mirror the server's defaulting up front so the request is always
	// well-formed; the echo below remains the source of truth regardless.
	req.Status = domain.NormalizeStatus(string(req.Status))
	req.Priority = domain.NormalizePriority(string(req.Priority))

	created, err := s.gw.CreateTask(ctx, req)
	if err != nil {
		return nil, err
	}
	echo := created.Normalize()
	s.store.ApplyTaskCreated(echo)
	return &echo, nil
}

func (s *taskService) Update(ctx context.Context, id domain.ID, patch domain.TaskPatch) (*domain.Task, error) {
	if id == "" {
		return nil, fmt.Errorf("task update: id is required")
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, fmt.Errorf("el título es obligatorio")
	}

	// The sequence token is issued before the request goes out, so a
	// response overtaken by a later edit gets discarded on arrival.
	seq := s.store.NextTaskSeq(id)

	updated, err := s.gw.UpdateTask(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	echo := updated.Normalize()
	s.store.ApplyTaskUpdated(echo, seq)
	return &echo, nil
}

func (s *taskService) SetStatus(ctx context.Context, id domain.ID, status domain.TaskStatus) (*domain.Task, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("unknown status %q", status)
	}
	return s.Update(ctx, id, domain.TaskPatch{Status: &status})
}

func (s *taskService) SetPriority(ctx context.Context, id domain.ID, priority domain.TaskPriority) (*domain.Task, error) {
	if !priority.Valid() {
		return nil, fmt.Errorf("unknown priority %q", priority)
	}
	return s.Update(ctx, id, domain.TaskPatch{Priority: &priority})
}
