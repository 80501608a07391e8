// Package store holds the in-memory snapshot of remote entities for the
// active page. Collections are replaced wholesale on load and patched by
// id after confirmed mutations; views read copies and never mutate.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/politask/politask/internal/domain"
)

// Gateway is the read surface the store populates itself from. The api
// client satisfies it; tests substitute a stub.
type Gateway interface {
	ListProjects(ctx context.Context) ([]domain.Project, error)
	ListTasks(ctx context.Context) ([]domain.Task, error)
	ListTasksByProject(ctx context.Context, projectID domain.ID) ([]domain.Task, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	ListCommentsByTask(ctx context.Context, taskID domain.ID) ([]domain.Comment, error)
}

// Store owns the canonical client-side copies of projects, tasks, users
// and comments. A load either fully replaces a collection or, on failure,
// leaves the previous snapshot untouched.
type Store struct {
	mu sync.RWMutex
	gw Gateway

	projects []domain.Project
	tasks    []domain.Task
	users    []domain.User
	comments []domain.Comment

	// Per-task update sequencing: responses that resolve out of order are
	// discarded instead of clobbering a newer confirmed state.
	issuedSeq  map[domain.ID]uint64
	appliedSeq map[domain.ID]uint64
}

func New(gw Gateway) *Store {
	return &Store{
		gw:         gw,
		issuedSeq:  make(map[domain.ID]uint64),
		appliedSeq: make(map[domain.ID]uint64),
	}
}

// ── loads ────────────────────────────────────────────────────────────────────

// LoadProjects replaces the project snapshot from the remote list.
func (s *Store) LoadProjects(ctx context.Context) error {
	projects, err := s.gw.ListProjects(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.projects = projects
	s.mu.Unlock()
	return nil
}

// LoadProjectsBestEffort is the degraded variant used by secondary UI
// (breadcrumb prefetch). On failure the prior snapshot survives and the
// caller only learns that the data may be stale.
func (s *Store) LoadProjectsBestEffort(ctx context.Context) bool {
	return s.LoadProjects(ctx) == nil
}

// LoadAllTasks replaces the task snapshot with every task visible to the
// user, normalized at the ingestion boundary.
func (s *Store) LoadAllTasks(ctx context.Context) error {
	tasks, err := s.gw.ListTasks(ctx)
	if err != nil {
		return err
	}
	s.replaceTasks(tasks)
	return nil
}

func (s *Store) LoadAllTasksBestEffort(ctx context.Context) bool {
	return s.LoadAllTasks(ctx) == nil
}

// LoadProjectTasks replaces the task snapshot with one project's tasks.
func (s *Store) LoadProjectTasks(ctx context.Context, projectID domain.ID) error {
	tasks, err := s.gw.ListTasksByProject(ctx, projectID)
	if err != nil {
		return err
	}
	s.replaceTasks(tasks)
	return nil
}

// LoadUsers replaces the user snapshot. Failure degrades: the user list
// only feeds avatars and the assignee filter dropdown.
func (s *Store) LoadUsers(ctx context.Context) bool {
	users, err := s.gw.ListUsers(ctx)
	if err != nil {
		return false
	}
	s.mu.Lock()
	s.users = users
	s.mu.Unlock()
	return true
}

// LoadTaskComments replaces the comment snapshot with one task's thread.
func (s *Store) LoadTaskComments(ctx context.Context, taskID domain.ID) error {
	comments, err := s.gw.ListCommentsByTask(ctx, taskID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.comments = comments
	s.mu.Unlock()
	return nil
}

func (s *Store) replaceTasks(tasks []domain.Task) {
	normalized := make([]domain.Task, len(tasks))
	for i, t := range tasks {
		normalized[i] = t.Normalize()
	}
	s.mu.Lock()
	s.tasks = normalized
	s.mu.Unlock()
}

// ── reads ────────────────────────────────────────────────────────────────────

func (s *Store) Projects() []domain.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Project(nil), s.projects...)
}

func (s *Store) Tasks() []domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Task(nil), s.tasks...)
}

func (s *Store) Users() []domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.User(nil), s.users...)
}

func (s *Store) Comments() []domain.Comment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Comment(nil), s.comments...)
}

func (s *Store) ProjectByID(id domain.ID) (domain.Project, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.projects {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Project{}, false
}

func (s *Store) TaskByID(id domain.ID) (domain.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return domain.Task{}, false
}

func (s *Store) UserByID(id domain.ID) (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return domain.User{}, false
}

// ── mutations ────────────────────────────────────────────────────────────────

// ApplyProjectCreated prepends a confirmed new project.
func (s *Store) ApplyProjectCreated(p domain.Project) {
	s.mu.Lock()
	s.projects = append([]domain.Project{p}, s.projects...)
	s.mu.Unlock()
}

// ApplyTaskCreated prepends a confirmed new task, then re-sorts the
// snapshot by creation time (newest first), matching the board ordering.
func (s *Store) ApplyTaskCreated(t domain.Task) {
	t = t.Normalize()
	s.mu.Lock()
	s.tasks = append([]domain.Task{t}, s.tasks...)
	sort.SliceStable(s.tasks, func(i, j int) bool {
		return s.tasks[i].CreatedAt.After(s.tasks[j].CreatedAt.Time)
	})
	s.mu.Unlock()
}

// NextTaskSeq issues the sequence token for an update about to be sent.
func (s *Store) NextTaskSeq(id domain.ID) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issuedSeq[id]++
	return s.issuedSeq[id]
}

// ApplyTaskUpdated replaces the task with matching id, preserving the
// position of every other task. The seq token must come from NextTaskSeq;
// a response older than the last applied one is discarded and the method
// reports false.
func (s *Store) ApplyTaskUpdated(t domain.Task, seq uint64) bool {
	t = t.Normalize()
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq < s.appliedSeq[t.ID] {
		return false
	}
	s.appliedSeq[t.ID] = seq
	for i := range s.tasks {
		if s.tasks[i].ID == t.ID {
			s.tasks[i] = t
			return true
		}
	}
	// Task not in the current snapshot (e.g. detail page loaded directly):
	// the caller still gets the echo back, there is just nothing to patch.
	return true
}

// ApplyCommentCreated appends a confirmed new comment and bumps the
// owning task's informational comment count.
func (s *Store) ApplyCommentCreated(c domain.Comment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comments = append(s.comments, c)
	for i := range s.tasks {
		if s.tasks[i].ID == c.TaskID {
			s.tasks[i].CommentsCount++
			return
		}
	}
}
