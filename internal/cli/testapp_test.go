package cli

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/politask/politask/internal/api"
	"github.com/politask/politask/internal/domain"
	"github.com/politask/politask/internal/service"
	"github.com/politask/politask/internal/store"
)

// fakeServer is an in-memory PoliTask API backed by httptest.
type fakeServer struct {
	mu       sync.Mutex
	projects []domain.Project
	tasks    []domain.Task
	users    []domain.User
	comments []domain.Comment
	nextID   int

	srv *httptest.Server
}

func newFakeServer() *fakeServer {
	f := &fakeServer{nextID: 100}
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"token": "tok-1", "id": 1, "name": "Ana López", "email": "ana@example.com"})
	})
	mux.HandleFunc("POST /api/auth/register", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"token": "tok-2", "id": 2, "name": "Bruno Díaz", "email": "bruno@example.com"})
	})

	mux.HandleFunc("GET /api/users", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(w, f.users)
	})

	mux.HandleFunc("GET /api/projects", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(w, f.projects)
	})
	mux.HandleFunc("POST /api/projects", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name        string    `json:"name"`
			Description string    `json:"description"`
			OwnerID     domain.ID `json:"owner_id"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		f.mu.Lock()
		p := domain.Project{ID: f.newID(), Name: req.Name, Description: req.Description, OwnerID: req.OwnerID}
		f.projects = append(f.projects, p)
		f.mu.Unlock()
		writeJSON(w, p)
	})

	mux.HandleFunc("GET /api/tasks", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(w, f.tasks)
	})
	mux.HandleFunc("GET /api/tasks/project/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := domain.ID(r.PathValue("id"))
		f.mu.Lock()
		defer f.mu.Unlock()
		if !f.projectExists(id) {
			http.Error(w, `{"message":"Proyecto no encontrado"}`, http.StatusNotFound)
			return
		}
		own := []domain.Task{}
		for _, t := range f.tasks {
			if t.ProjectID == id {
				own = append(own, t)
			}
		}
		writeJSON(w, own)
	})
	mux.HandleFunc("POST /api/tasks", func(w http.ResponseWriter, r *http.Request) {
		var req api.CreateTaskRequest
		json.NewDecoder(r.Body).Decode(&req)
		f.mu.Lock()
		t := domain.Task{
			ID:        f.newID(),
			ProjectID: req.ProjectID,
			Title:     req.Title,
			Status:    req.Status,
			Priority:  req.Priority,
		}
		f.tasks = append(f.tasks, t)
		f.mu.Unlock()
		writeJSON(w, t)
	})
	mux.HandleFunc("PUT /api/tasks/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := domain.ID(r.PathValue("id"))
		var patch domain.TaskPatch
		json.NewDecoder(r.Body).Decode(&patch)
		f.mu.Lock()
		defer f.mu.Unlock()
		for i, t := range f.tasks {
			if t.ID != id {
				continue
			}
			if patch.Status != nil {
				t.Status = *patch.Status
			}
			if patch.Priority != nil {
				t.Priority = *patch.Priority
			}
			if patch.Title != nil {
				t.Title = *patch.Title
			}
			f.tasks[i] = t
			writeJSON(w, t)
			return
		}
		http.Error(w, `{"message":"Tarea no encontrada"}`, http.StatusNotFound)
	})

	mux.HandleFunc("GET /api/comments/task/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := domain.ID(r.PathValue("id"))
		f.mu.Lock()
		defer f.mu.Unlock()
		own := []domain.Comment{}
		for _, c := range f.comments {
			if c.TaskID == id {
				own = append(own, c)
			}
		}
		writeJSON(w, own)
	})
	mux.HandleFunc("POST /api/comments", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			TaskID  domain.ID `json:"task_id"`
			Content string    `json:"content"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		f.mu.Lock()
		c := domain.Comment{ID: f.newID(), TaskID: req.TaskID, UserID: "1", Content: req.Content}
		f.comments = append(f.comments, c)
		f.mu.Unlock()
		writeJSON(w, c)
	})

	mux.HandleFunc("GET /api/search", func(w http.ResponseWriter, r *http.Request) {
		q := strings.ToLower(r.URL.Query().Get("q"))
		f.mu.Lock()
		defer f.mu.Unlock()
		res := api.SearchResult{Projects: []domain.Project{}, Tasks: []domain.Task{}}
		for _, p := range f.projects {
			if strings.Contains(strings.ToLower(p.Name), q) {
				res.Projects = append(res.Projects, p)
			}
		}
		for _, t := range f.tasks {
			if strings.Contains(strings.ToLower(t.Title), q) {
				res.Tasks = append(res.Tasks, t)
			}
		}
		writeJSON(w, res)
	})

	f.srv = httptest.NewServer(mux)
	return f
}

func (f *fakeServer) newID() domain.ID {
	f.nextID++
	return domain.ID(fmt.Sprintf("%d", f.nextID))
}

func (f *fakeServer) projectExists(id domain.ID) bool {
	for _, p := range f.projects {
		if p.ID == id {
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// testApp wires a full App against a fresh fake server with an
// authenticated in-memory session.
func testApp(t *testing.T) (*App, *fakeServer) {
	t.Helper()
	f := newFakeServer()
	t.Cleanup(f.srv.Close)

	cfg := api.DefaultConfig()
	cfg.BaseURL = f.srv.URL
	session := api.NewMemorySession()
	session.SetAuth(api.AuthResult{Token: "tok-1", ID: "1", Name: "Ana López", Email: "ana@example.com"})

	client := api.NewClient(cfg, session, api.NoopObserver{})
	st := store.New(client)

	app := &App{
		Auth:          service.NewAuthService(client),
		Tasks:         service.NewTaskService(client, st),
		Projects:      service.NewProjectService(client, st),
		Comments:      service.NewCommentService(client, st),
		Search:        service.NewSearchService(client),
		Store:         st,
		Session:       session,
		IsInteractive: func() bool { return false },
	}
	return app, f
}

// seedBoard loads the fake server with one project, three tasks and a user.
func seedBoard(f *fakeServer) domain.ID {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users = []domain.User{{ID: "1", Name: "Ana López", Email: "ana@example.com"}}
	f.projects = []domain.Project{{ID: "10", Name: "Website", OwnerID: "1"}}
	f.tasks = []domain.Task{
		{ID: "20", ProjectID: "10", Title: "Fix bug", Status: domain.StatusPending, Priority: domain.PriorityHigh, AssigneeID: "1"},
		{ID: "21", ProjectID: "10", Title: "Write docs", Status: domain.StatusInProgress, Priority: domain.PriorityMedium},
		{ID: "22", ProjectID: "10", Title: "Ship release", Status: domain.StatusDone, Priority: domain.PriorityLow},
	}
	return "10"
}
