package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/politask/politask/internal/api"
	"github.com/politask/politask/internal/cli/formatter"
	"github.com/politask/politask/internal/domain"
)

type taskDetailLoadedMsg struct {
	gen int
	err error
}

type taskUpdatedMsg struct {
	task *domain.Task
	err  error
}

type commentCreatedMsg struct {
	err error
}

// taskDetailView shows one task's fields and comment thread, and lets
// the user cycle status and priority or add a comment.
type taskDetailView struct {
	state     *SharedState
	projectID domain.ID
	taskID    domain.ID
	loading   bool
	loadGen   int
	errText   string

	commenting bool
	commentIn  textinput.Model
}

func newTaskDetailView(state *SharedState, projectID, taskID domain.ID) *taskDetailView {
	in := textinput.New()
	in.Placeholder = "Escribe un comentario"
	in.CharLimit = 500
	return &taskDetailView{
		state:     state,
		projectID: projectID,
		taskID:    taskID,
		loading:   true,
		commentIn: in,
	}
}

func (v *taskDetailView) ID() ViewID { return ViewTaskDetail }
func (v *taskDetailView) Path() string {
	return "/project/" + v.projectID.String() + "/task/" + v.taskID.String()
}

func (v *taskDetailView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "cambiar estado")),
		key.NewBinding(key.WithKeys("P"), key.WithHelp("P", "cambiar prioridad")),
		key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "comentar")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "recargar")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "volver")),
	}
}

func (v *taskDetailView) CapturesInput() bool { return v.commenting }

func (v *taskDetailView) Init() tea.Cmd { return v.load() }

func (v *taskDetailView) load() tea.Cmd {
	v.loading = true
	v.loadGen++
	gen := v.loadGen
	st := v.state.Store
	projectID, taskID := v.projectID, v.taskID
	return func() tea.Msg {
		ctx := context.Background()
		if err := st.LoadProjectTasks(ctx, projectID); err != nil {
			return taskDetailLoadedMsg{gen: gen, err: err}
		}
		if _, ok := st.TaskByID(taskID); !ok {
			return taskDetailLoadedMsg{gen: gen, err: api.ErrNotFound}
		}
		st.LoadUsers(ctx)
		if err := st.LoadTaskComments(ctx, taskID); err != nil {
			return taskDetailLoadedMsg{gen: gen, err: err}
		}
		return taskDetailLoadedMsg{gen: gen}
	}
}

// cycleStatus sends the next status in display order to the server; the
// store only changes when the echo lands.
func (v *taskDetailView) cycleStatus(t domain.Task) tea.Cmd {
	app := v.state.App
	next := domain.StatusOrder[0]
	for i, s := range domain.StatusOrder {
		if s == t.Status {
			next = domain.StatusOrder[(i+1)%len(domain.StatusOrder)]
			break
		}
	}
	id := t.ID
	return func() tea.Msg {
		updated, err := app.Tasks.SetStatus(context.Background(), id, next)
		return taskUpdatedMsg{task: updated, err: err}
	}
}

func (v *taskDetailView) cyclePriority(t domain.Task) tea.Cmd {
	app := v.state.App
	order := []domain.TaskPriority{domain.PriorityLow, domain.PriorityMedium, domain.PriorityHigh}
	next := order[0]
	for i, p := range order {
		if p == t.Priority {
			next = order[(i+1)%len(order)]
			break
		}
	}
	id := t.ID
	return func() tea.Msg {
		updated, err := app.Tasks.SetPriority(context.Background(), id, next)
		return taskUpdatedMsg{task: updated, err: err}
	}
}

func (v *taskDetailView) submitComment() tea.Cmd {
	app := v.state.App
	taskID := v.taskID
	content := strings.TrimSpace(v.commentIn.Value())
	return func() tea.Msg {
		_, err := app.Comments.Create(context.Background(), taskID, content)
		return commentCreatedMsg{err: err}
	}
}

func (v *taskDetailView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case taskDetailLoadedMsg:
		if msg.gen != v.loadGen {
			return v, nil
		}
		v.loading = false
		if msg.err != nil {
			if isNotFound(msg.err) {
				return v, tea.Batch(
					notifyError("Tarea no encontrada"),
					replaceView(newDashboardView(v.state)),
				)
			}
			v.errText = "No se pudo cargar la tarea"
			return v, nil
		}
		v.errText = ""
		return v, nil

	case taskUpdatedMsg:
		if msg.err != nil {
			return v, notifyError(api.UserMessage(msg.err))
		}
		return v, notify("Tarea actualizada")

	case commentCreatedMsg:
		if msg.err != nil {
			return v, notifyError(api.UserMessage(msg.err))
		}
		v.commenting = false
		v.commentIn.SetValue("")
		return v, notify("Comentario añadido")

	case tea.KeyMsg:
		if v.commenting {
			switch msg.String() {
			case "esc":
				v.commenting = false
				v.commentIn.SetValue("")
				return v, nil
			case "enter":
				if strings.TrimSpace(v.commentIn.Value()) == "" {
					return v, notifyError("el comentario no puede estar vacío")
				}
				return v, v.submitComment()
			}
			var cmd tea.Cmd
			v.commentIn, cmd = v.commentIn.Update(msg)
			return v, cmd
		}

		t, ok := v.state.Store.TaskByID(v.taskID)
		switch msg.String() {
		case "S":
			if ok {
				return v, v.cycleStatus(t)
			}
		case "P":
			if ok {
				return v, v.cyclePriority(t)
			}
		case "c":
			v.commenting = true
			v.commentIn.Focus()
			return v, textinput.Blink
		case "r":
			return v, v.load()
		}
	}
	return v, nil
}

func (v *taskDetailView) View() string {
	if v.loading {
		return "  " + formatter.Dim("Cargando...")
	}
	if v.errText != "" {
		return "  " + formatter.Errorf("%s", v.errText)
	}

	t, ok := v.state.Store.TaskByID(v.taskID)
	if !ok {
		return "  " + formatter.Dim("Tarea no encontrada")
	}

	users := v.state.Store.Users()
	var b strings.Builder
	b.WriteString(formatter.Header(t.Title))
	b.WriteString("\n\n")

	rows := [][]string{
		{"Estado", formatter.StatusBadge(t.Status)},
		{"Prioridad", formatter.PriorityMarker(t.Priority) + " " + t.Priority.Meta().Label},
		{"Asignada a", formatter.AssigneeName(t, users)},
		{"Fecha límite", formatter.DueDate(t.DueDate)},
		{"Creada", t.CreatedAt.Format("02/01/2006 15:04")},
	}
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("  %s %s\n", formatter.Dim(r[0]+":"), r[1]))
	}

	if t.Description != "" {
		b.WriteString("\n" + formatter.RenderBox("Descripción", t.Description) + "\n")
	}

	b.WriteString("\n" + formatter.StyleBold.Render(fmt.Sprintf("Comentarios (%d)", t.CommentsCount)) + "\n")
	comments := v.state.Store.Comments()
	if len(comments) == 0 {
		b.WriteString("  " + formatter.Dim("Sin comentarios") + "\n")
	}
	for _, c := range comments {
		if c.TaskID != t.ID {
			continue
		}
		author := "Usuario " + c.UserID.String()
		var avatar string
		if u, ok := v.state.Store.UserByID(c.UserID); ok {
			author = u.Name
			avatar = formatter.Avatar(u) + " "
		}
		b.WriteString(fmt.Sprintf("  %s%s %s\n", avatar, formatter.StyleBold.Render(author),
			formatter.Dim(c.CreatedAt.Format("02/01/2006 15:04"))))
		b.WriteString("    " + c.Content + "\n")
	}

	if v.commenting {
		b.WriteString("\n  " + v.commentIn.View() + "\n")
	}
	return b.String()
}
