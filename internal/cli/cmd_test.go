package cli

import (
	"bytes"
	"testing"

	"github.com/politask/politask/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCommand executes the cobra tree with args and returns the combined
// output.
func runCommand(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	root := NewRootCmd(app)
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestProjectsCommandListsProjects(t *testing.T) {
	app, f := testApp(t)
	seedBoard(f)

	out, err := runCommand(t, app, "projects")
	require.NoError(t, err)
	assert.Contains(t, out, "Website")
	// Two of the three seeded tasks are still open.
	assert.Contains(t, out, "2")
}

func TestProjectsCreateCommand(t *testing.T) {
	app, f := testApp(t)
	seedBoard(f)

	out, err := runCommand(t, app, "projects", "create", "--name", "Backend", "--description", "API nueva")
	require.NoError(t, err)
	assert.Contains(t, out, "Backend")

	f.mu.Lock()
	require.Len(t, f.projects, 2)
	assert.Equal(t, domain.ID("1"), f.projects[1].OwnerID)
	f.mu.Unlock()
}

func TestProjectsCreateRequiresNameNonInteractive(t *testing.T) {
	app, f := testApp(t)
	seedBoard(f)

	_, err := runCommand(t, app, "projects", "create")
	require.Error(t, err)

	f.mu.Lock()
	assert.Len(t, f.projects, 1)
	f.mu.Unlock()
}

func TestTasksCommandListsTable(t *testing.T) {
	app, f := testApp(t)
	seedBoard(f)

	out, err := runCommand(t, app, "tasks")
	require.NoError(t, err)
	assert.Contains(t, out, "Fix bug")
	assert.Contains(t, out, "Write docs")
	assert.Contains(t, out, "Ana López")
	assert.Contains(t, out, "Sin asignar")
}

func TestTasksCommandStatusFilter(t *testing.T) {
	app, f := testApp(t)
	seedBoard(f)

	out, err := runCommand(t, app, "tasks", "--status", "PENDING")
	require.NoError(t, err)
	assert.Contains(t, out, "Fix bug")
	assert.NotContains(t, out, "Write docs")
}

func TestTasksCommandRejectsUnknownStatus(t *testing.T) {
	app, f := testApp(t)
	seedBoard(f)

	_, err := runCommand(t, app, "tasks", "--status", "WAITING")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WAITING")
}

func TestTasksCommandGroupedShowsEveryStatus(t *testing.T) {
	app, f := testApp(t)
	seedBoard(f)

	out, err := runCommand(t, app, "tasks", "--grouped")
	require.NoError(t, err)
	for _, s := range domain.StatusOrder {
		assert.Contains(t, out, s.Meta().Label)
	}
}

func TestTasksCreateCommandNormalizesDefaults(t *testing.T) {
	app, f := testApp(t)
	seedBoard(f)

	out, err := runCommand(t, app, "tasks", "create", "--project", "10", "--title", "Deploy")
	require.NoError(t, err)
	assert.Contains(t, out, "Deploy")

	f.mu.Lock()
	created := f.tasks[len(f.tasks)-1]
	f.mu.Unlock()
	assert.Equal(t, domain.StatusPending, created.Status)
	assert.Equal(t, domain.PriorityMedium, created.Priority)
}

func TestTasksStatusCommand(t *testing.T) {
	app, f := testApp(t)
	seedBoard(f)

	out, err := runCommand(t, app, "tasks", "status", "20", "DONE")
	require.NoError(t, err)
	assert.Contains(t, out, "Terminada")

	f.mu.Lock()
	assert.Equal(t, domain.StatusDone, f.tasks[0].Status)
	f.mu.Unlock()
}

func TestTasksStatusCommandRejectsBadVocabulary(t *testing.T) {
	app, f := testApp(t)
	seedBoard(f)

	_, err := runCommand(t, app, "tasks", "status", "20", "ARCHIVED")
	require.Error(t, err)

	f.mu.Lock()
	assert.Equal(t, domain.StatusPending, f.tasks[0].Status)
	f.mu.Unlock()
}

func TestTasksCommentCommand(t *testing.T) {
	app, f := testApp(t)
	seedBoard(f)

	_, err := runCommand(t, app, "tasks", "comment", "20", "Revisado")
	require.NoError(t, err)

	f.mu.Lock()
	require.Len(t, f.comments, 1)
	assert.Equal(t, "Revisado", f.comments[0].Content)
	f.mu.Unlock()
}

func TestSearchCommandPrintsBothSections(t *testing.T) {
	app, f := testApp(t)
	seedBoard(f)

	out, err := runCommand(t, app, "search", "web")
	require.NoError(t, err)
	assert.Contains(t, out, "PROYECTOS")
	assert.Contains(t, out, "Website")

	out, err = runCommand(t, app, "search", "fix")
	require.NoError(t, err)
	assert.Contains(t, out, "TAREAS")
	assert.Contains(t, out, "Fix bug")
}

func TestSearchCommandNoResults(t *testing.T) {
	app, f := testApp(t)
	seedBoard(f)

	out, err := runCommand(t, app, "search", "zzz")
	require.NoError(t, err)
	assert.Contains(t, out, "Sin resultados")
}

func TestLoginCommandStoresSession(t *testing.T) {
	app, f := testApp(t)
	seedBoard(f)
	require.NoError(t, app.Session.Clear())

	out, err := runCommand(t, app, "login", "--email", "ana@example.com", "--password", "secreto1")
	require.NoError(t, err)
	assert.Contains(t, out, "Ana López")
	assert.True(t, app.Auth.Authenticated())
}

func TestLoginCommandRequiresFlagsNonInteractive(t *testing.T) {
	app, f := testApp(t)
	seedBoard(f)
	require.NoError(t, app.Session.Clear())

	_, err := runCommand(t, app, "login")
	require.Error(t, err)
	assert.False(t, app.Auth.Authenticated())
}

func TestChangePasswordCommandReportsUnavailable(t *testing.T) {
	app, f := testApp(t)
	seedBoard(f)

	_, err := runCommand(t, app, "change-password", "--current", "viejo1", "--new", "nuevo123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no está disponible")

	_, err = runCommand(t, app, "change-password", "--current", "viejo1", "--new", "corta")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "al menos 6")
}

func TestLogoutCommandClearsSession(t *testing.T) {
	app, f := testApp(t)
	seedBoard(f)

	out, err := runCommand(t, app, "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Sesión cerrada")
	assert.False(t, app.Auth.Authenticated())
}
