package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/politask/politask/internal/domain"
)

// Client is the typed gateway to the PoliTask REST API. One method per
// resource/verb pair; every method normalizes transport and HTTP failures
// into the package's error taxonomy.
type Client struct {
	cfg      Config
	http     *http.Client
	session  *Session
	observer Observer
}

// NewClient creates a gateway client bound to a session. The session
// supplies the bearer token for authenticated calls; login and register
// write the received token back into it.
func NewClient(cfg Config, session *Session, observer Observer) *Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &Client{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		session:  session,
		observer: observer,
	}
}

// Session returns the session the client authenticates with.
func (c *Client) Session() *Session { return c.session }

// ── auth ─────────────────────────────────────────────────────────────────────

// AuthResult is the flat body returned by login and register.
type AuthResult struct {
	Token string    `json:"token"`
	ID    domain.ID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account and persists the returned bearer token.
func (c *Client) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	var res AuthResult
	err := c.post(ctx, "/api/auth/register", registerRequest{Name: name, Email: email, Password: password}, &res)
	if err != nil {
		return nil, err
	}
	if err := c.session.SetAuth(res); err != nil {
		return nil, fmt.Errorf("persisting credentials: %w", err)
	}
	return &res, nil
}

// Login authenticates and persists the returned bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	var res AuthResult
	err := c.post(ctx, "/api/auth/login", loginRequest{Email: email, Password: password}, &res)
	if err != nil {
		return nil, err
	}
	if err := c.session.SetAuth(res); err != nil {
		return nil, fmt.Errorf("persisting credentials: %w", err)
	}
	return &res, nil
}

// Logout clears the stored credential. Purely local: the server keeps no
// session state beyond the token's own expiry.
func (c *Client) Logout() error {
	return c.session.Clear()
}

// ── users ────────────────────────────────────────────────────────────────────

func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := c.get(ctx, "/api/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) GetUser(ctx context.Context, id domain.ID) (*domain.User, error) {
	if id == "" {
		return nil, fmt.Errorf("user id is required")
	}
	var user domain.User
	if err := c.get(ctx, "/api/users/"+url.PathEscape(id.String()), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) ListProjectUsers(ctx context.Context, projectID domain.ID) ([]domain.User, error) {
	if projectID == "" {
		return nil, fmt.Errorf("project id is required")
	}
	var users []domain.User
	if err := c.get(ctx, "/api/project-users/"+url.PathEscape(projectID.String()), &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ── projects ─────────────────────────────────────────────────────────────────

func (c *Client) ListProjects(ctx context.Context) ([]domain.Project, error) {
	var projects []domain.Project
	if err := c.get(ctx, "/api/projects", &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (c *Client) GetProject(ctx context.Context, id domain.ID) (*domain.Project, error) {
	if id == "" {
		return nil, fmt.Errorf("project id is required")
	}
	var p domain.Project
	if err := c.get(ctx, "/api/projects/"+url.PathEscape(id.String()), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProjectRequest is the body for POST /api/projects.
type CreateProjectRequest struct {
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	OwnerID     domain.ID `json:"owner_id"`
}

// CreateProject requires an authenticated session.
func (c *Client) CreateProject(ctx context.Context, req CreateProjectRequest) (*domain.Project, error) {
	if !c.session.Authenticated() {
		return nil, ErrUnauthorized
	}
	var p domain.Project
	if err := c.post(ctx, "/api/projects", req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ── tasks ────────────────────────────────────────────────────────────────────

func (c *Client) ListTasks(ctx context.Context) ([]domain.Task, error) {
	var tasks []domain.Task
	if err := c.get(ctx, "/api/tasks", &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) GetTask(ctx context.Context, id domain.ID) (*domain.Task, error) {
	if id == "" {
		return nil, fmt.Errorf("task id is required")
	}
	var t domain.Task
	if err := c.get(ctx, "/api/tasks/"+url.PathEscape(id.String()), &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) ListTasksByProject(ctx context.Context, projectID domain.ID) ([]domain.Task, error) {
	if projectID == "" {
		return nil, fmt.Errorf("project id is required")
	}
	var tasks []domain.Task
	if err := c.get(ctx, "/api/tasks/project/"+url.PathEscape(projectID.String()), &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTaskRequest is the body for POST /api/tasks.
type CreateTaskRequest struct {
	Title       string              `json:"title"`
	Description string              `json:"description,omitempty"`
	Priority    domain.TaskPriority `json:"priority"`
	Status      domain.TaskStatus   `json:"status"`
	ProjectID   domain.ID           `json:"project_id"`
	AssigneeID  domain.ID           `json:"assignee_id,omitempty"`
	DueDate     *domain.Timestamp   `json:"due_date,omitempty"`
}

func (c *Client) CreateTask(ctx context.Context, req CreateTaskRequest) (*domain.Task, error) {
	var t domain.Task
	if err := c.post(ctx, "/api/tasks", req, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) UpdateTask(ctx context.Context, id domain.ID, patch domain.TaskPatch) (*domain.Task, error) {
	if id == "" {
		return nil, fmt.Errorf("task id is required")
	}
	var t domain.Task
	if err := c.do(ctx, http.MethodPut, "/api/tasks/"+url.PathEscape(id.String()), patch, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// ── comments ─────────────────────────────────────────────────────────────────

func (c *Client) ListCommentsByTask(ctx context.Context, taskID domain.ID) ([]domain.Comment, error) {
	if taskID == "" {
		return nil, fmt.Errorf("task id is required")
	}
	var comments []domain.Comment
	if err := c.get(ctx, "/api/comments/task/"+url.PathEscape(taskID.String()), &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

type createCommentRequest struct {
	TaskID  domain.ID `json:"task_id"`
	Content string    `json:"content"`
}

func (c *Client) CreateComment(ctx context.Context, taskID domain.ID, content string) (*domain.Comment, error) {
	if taskID == "" {
		return nil, fmt.Errorf("task id is required")
	}
	var cm domain.Comment
	if err := c.post(ctx, "/api/comments", createCommentRequest{TaskID: taskID, Content: content}, &cm); err != nil {
		return nil, err
	}
	return &cm, nil
}

// ── search ───────────────────────────────────────────────────────────────────

// SearchResult is the body of GET /api/search.
type SearchResult struct {
	Projects []domain.Project `json:"projects"`
	Tasks    []domain.Task    `json:"tasks"`
}

func (c *Client) Search(ctx context.Context, query string) (*SearchResult, error) {
	var res SearchResult
	path := "/api/search?q=" + url.QueryEscape(query)
	if err := c.get(ctx, path, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ── transport ────────────────────────────────────────────────────────────────

func (c *Client) get(ctx context.Context, path string, out any) error {
	// GETs are idempotent, so transport failures are retried.
	var lastErr error
	attempts := 1 + c.cfg.MaxRetries
	for i := 0; i < attempts; i++ {
		lastErr = c.do(ctx, http.MethodGet, path, nil, out)
		if lastErr == nil || !errors.Is(lastErr, ErrUnavailable) {
			return lastErr
		}
		if ctx.Err() != nil {
			break
		}
	}
	return lastErr
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	start := time.Now()
	status, err := c.roundTrip(ctx, method, path, body, out)
	event := CallEvent{
		Method:    method,
		Path:      path,
		Status:    status,
		LatencyMs: time.Since(start).Milliseconds(),
	}
	if err != nil {
		event.Err = err.Error()
	}
	c.observer.OnCallComplete(event)
	return err
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body, out any) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TimeoutMs)*time.Millisecond)
	defer cancel()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reader)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	// Correlation id for matching client calls against server logs.
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return 0, ErrTimeout
		}
		var netErr *net.OpError
		if errors.As(err, &netErr) {
			return 0, ErrUnavailable
		}
		if errors.Is(err, context.Canceled) {
			return 0, context.Canceled
		}
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, classifyStatus(resp.StatusCode, respBody)
	}

	if out != nil && len(bytes.TrimSpace(respBody)) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return resp.StatusCode, fmt.Errorf("decoding response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

// classifyStatus maps a non-2xx response onto the error taxonomy. The
// server's error bodies carry either {"message": "..."} or a map of
// field names to validation messages.
func classifyStatus(status int, body []byte) error {
	switch status {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	}
	return &Error{StatusCode: status, Message: serverMessage(body)}
}

func serverMessage(body []byte) string {
	var fields map[string]string
	if err := json.Unmarshal(body, &fields); err == nil {
		if msg, ok := fields["message"]; ok {
			return msg
		}
		// Field-keyed validation errors: surface the first one.
		for _, v := range fields {
			return v
		}
		return ""
	}
	var msg string
	if err := json.Unmarshal(body, &msg); err == nil {
		return msg
	}
	return ""
}
