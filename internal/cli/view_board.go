package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/politask/politask/internal/api"
	"github.com/politask/politask/internal/cli/formatter"
	"github.com/politask/politask/internal/domain"
	"github.com/politask/politask/internal/viewmodel"
)

type boardLoadedMsg struct {
	gen int
	err error
}

type taskCreatedMsg struct {
	task *domain.Task
	err  error
}

// boardRow is a flattened row of the grouped board: either a status
// group header or a task line.
type boardRow struct {
	isHeader bool
	status   domain.TaskStatus
	count    int
	task     domain.Task
}

// boardView shows one project's tasks, grouped by status or as a flat
// list, with conjunctive status/priority/assignee filters.
type boardView struct {
	state     *SharedState
	projectID domain.ID
	loading   bool
	loadGen   int
	errText   string

	grouped  bool
	criteria viewmodel.Criteria
	open     map[domain.TaskStatus]bool
	cursor   int

	creating bool
	titleIn  textinput.Model
}

func newBoardView(state *SharedState, projectID domain.ID) *boardView {
	open := make(map[domain.TaskStatus]bool)
	for _, s := range domain.StatusOrder {
		open[s] = true
	}
	in := textinput.New()
	in.Placeholder = "Título de la tarea"
	in.CharLimit = 200
	return &boardView{
		state:     state,
		projectID: projectID,
		loading:   true,
		grouped:   true,
		criteria:  viewmodel.NewCriteria(),
		open:      open,
		titleIn:   in,
	}
}

func (v *boardView) ID() ViewID   { return ViewBoard }
func (v *boardView) Path() string { return "/project/" + v.projectID.String() }

func (v *boardView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "abrir/plegar")),
		key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "agrupar")),
		key.NewBinding(key.WithKeys("s"), key.WithHelp("s/p/a", "filtros")),
		key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "limpiar filtros")),
		key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "nueva tarea")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "recargar")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "volver")),
	}
}

func (v *boardView) CapturesInput() bool { return v.creating }

func (v *boardView) Init() tea.Cmd { return v.load() }

func (v *boardView) load() tea.Cmd {
	v.loading = true
	v.loadGen++
	gen := v.loadGen
	st := v.state.Store
	projectID := v.projectID
	return func() tea.Msg {
		ctx := context.Background()
		if err := st.LoadProjectTasks(ctx, projectID); err != nil {
			return boardLoadedMsg{gen: gen, err: err}
		}
		st.LoadUsers(ctx)
		return boardLoadedMsg{gen: gen}
	}
}

// projectTasks returns the project's tasks after applying the active
// filter criteria.
func (v *boardView) projectTasks() []domain.Task {
	var own []domain.Task
	for _, t := range v.state.Store.Tasks() {
		if t.ProjectID == v.projectID {
			own = append(own, t)
		}
	}
	return v.criteria.Apply(own)
}

// rows flattens the current display mode into selectable rows. In
// grouped mode every status appears as a header; a group hides its rows
// while collapsed and disappears entirely only when empty and collapsed.
func (v *boardView) rows() []boardRow {
	tasks := v.projectTasks()
	if !v.grouped {
		rows := make([]boardRow, 0, len(tasks))
		for _, t := range tasks {
			rows = append(rows, boardRow{task: t})
		}
		return rows
	}
	groups := viewmodel.Visible(viewmodel.GroupByStatus(tasks, domain.StatusOrder), v.open, true)
	var rows []boardRow
	for _, g := range groups {
		rows = append(rows, boardRow{isHeader: true, status: g.Status, count: g.Count()})
		if !v.open[g.Status] {
			continue
		}
		for _, t := range g.Tasks {
			rows = append(rows, boardRow{task: t})
		}
	}
	return rows
}

func (v *boardView) clampCursor() {
	if n := len(v.rows()); v.cursor >= n {
		v.cursor = n - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

// cycleStatus advances the status filter through all -> each status -> all.
func (v *boardView) cycleStatus() {
	if v.criteria.Status == viewmodel.FilterAll {
		v.criteria.Status = string(domain.StatusOrder[0])
		return
	}
	for i, s := range domain.StatusOrder {
		if string(s) == v.criteria.Status {
			if i == len(domain.StatusOrder)-1 {
				v.criteria.Status = viewmodel.FilterAll
			} else {
				v.criteria.Status = string(domain.StatusOrder[i+1])
			}
			return
		}
	}
	v.criteria.Status = viewmodel.FilterAll
}

func (v *boardView) cyclePriority() {
	order := []domain.TaskPriority{domain.PriorityHigh, domain.PriorityMedium, domain.PriorityLow}
	if v.criteria.Priority == viewmodel.FilterAll {
		v.criteria.Priority = string(order[0])
		return
	}
	for i, p := range order {
		if string(p) == v.criteria.Priority {
			if i == len(order)-1 {
				v.criteria.Priority = viewmodel.FilterAll
			} else {
				v.criteria.Priority = string(order[i+1])
			}
			return
		}
	}
	v.criteria.Priority = viewmodel.FilterAll
}

// cycleAssignee advances the assignee filter through the loaded users.
func (v *boardView) cycleAssignee() {
	users := v.state.Store.Users()
	if len(users) == 0 {
		return
	}
	if v.criteria.AssigneeID == viewmodel.FilterAll {
		v.criteria.AssigneeID = users[0].ID.String()
		return
	}
	for i, u := range users {
		if u.ID.String() == v.criteria.AssigneeID {
			if i == len(users)-1 {
				v.criteria.AssigneeID = viewmodel.FilterAll
			} else {
				v.criteria.AssigneeID = users[i+1].ID.String()
			}
			return
		}
	}
	v.criteria.AssigneeID = viewmodel.FilterAll
}

func (v *boardView) submitCreate() tea.Cmd {
	app := v.state.App
	title := strings.TrimSpace(v.titleIn.Value())
	projectID := v.projectID
	return func() tea.Msg {
		t, err := app.Tasks.Create(context.Background(), api.CreateTaskRequest{
			Title:     title,
			ProjectID: projectID,
		})
		return taskCreatedMsg{task: t, err: err}
	}
}

func (v *boardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case boardLoadedMsg:
		if msg.gen != v.loadGen {
			return v, nil
		}
		v.loading = false
		if msg.err != nil {
			if isNotFound(msg.err) {
				return v, tea.Batch(
					notifyError("Proyecto no encontrado"),
					replaceView(newDashboardView(v.state)),
				)
			}
			v.errText = "No se pudieron cargar las tareas del proyecto"
			return v, nil
		}
		v.errText = ""
		v.clampCursor()
		return v, nil

	case taskCreatedMsg:
		if msg.err != nil {
			return v, notifyError(api.UserMessage(msg.err))
		}
		v.creating = false
		v.titleIn.SetValue("")
		v.clampCursor()
		return v, notify("Tarea \"" + msg.task.Title + "\" creada")

	case tea.KeyMsg:
		if v.creating {
			switch msg.String() {
			case "esc":
				v.creating = false
				v.titleIn.SetValue("")
				return v, nil
			case "enter":
				if strings.TrimSpace(v.titleIn.Value()) == "" {
					return v, notifyError("el título es obligatorio")
				}
				return v, v.submitCreate()
			}
			var cmd tea.Cmd
			v.titleIn, cmd = v.titleIn.Update(msg)
			return v, cmd
		}

		switch msg.String() {
		case "j", "down":
			if v.cursor < len(v.rows())-1 {
				v.cursor++
			}
		case "k", "up":
			if v.cursor > 0 {
				v.cursor--
			}
		case "enter":
			rows := v.rows()
			if v.cursor >= len(rows) {
				return v, nil
			}
			row := rows[v.cursor]
			if row.isHeader {
				v.open[row.status] = !v.open[row.status]
				v.clampCursor()
				return v, nil
			}
			return v, pushView(newTaskDetailView(v.state, v.projectID, row.task.ID))
		case "g":
			v.grouped = !v.grouped
			v.cursor = 0
		case "s":
			v.cycleStatus()
			v.cursor = 0
		case "p":
			v.cyclePriority()
			v.cursor = 0
		case "a":
			v.cycleAssignee()
			v.cursor = 0
		case "c":
			v.criteria = viewmodel.NewCriteria()
			v.cursor = 0
		case "n":
			v.creating = true
			v.titleIn.Focus()
			return v, textinput.Blink
		case "r":
			return v, v.load()
		}
	}
	return v, nil
}

func (v *boardView) View() string {
	var b strings.Builder

	title := "Tablero"
	if p, ok := v.state.Store.ProjectByID(v.projectID); ok {
		title = p.Name
	}
	b.WriteString(formatter.Header(title))
	b.WriteString("  " + formatter.FilterButton(v.criteria.ActiveCount()))
	b.WriteString("\n")
	b.WriteString(v.renderFilterLine())
	b.WriteString("\n")

	if v.creating {
		b.WriteString("  Nueva tarea: " + v.titleIn.View() + "\n\n")
	}

	if v.loading {
		b.WriteString("  " + formatter.Dim("Cargando...") + "\n")
		return b.String()
	}
	if v.errText != "" {
		b.WriteString("  " + formatter.Errorf("%s", v.errText) + "\n")
		return b.String()
	}

	rows := v.rows()
	if len(rows) == 0 {
		b.WriteString("  " + formatter.Dim("No hay tareas que coincidan") + "\n")
		return b.String()
	}

	users := v.state.Store.Users()
	for i, row := range rows {
		selected := i == v.cursor
		if row.isHeader {
			marker := "▾"
			if !v.open[row.status] {
				marker = "▸"
			}
			cursor := "  "
			if selected {
				cursor = formatter.StyleHeader.Render("▸ ")
			}
			b.WriteString(fmt.Sprintf("%s%s %s %s\n",
				cursor, marker, formatter.StatusBadge(row.status),
				formatter.Dim(fmt.Sprintf("(%d)", row.count))))
			continue
		}
		b.WriteString(v.renderBoardTask(row.task, users, selected))
	}
	return b.String()
}

func (v *boardView) renderFilterLine() string {
	var parts []string
	if v.criteria.Status != viewmodel.FilterAll {
		parts = append(parts, "estado: "+domain.TaskStatus(v.criteria.Status).Meta().Label)
	}
	if v.criteria.Priority != viewmodel.FilterAll {
		parts = append(parts, "prioridad: "+domain.TaskPriority(v.criteria.Priority).Meta().Label)
	}
	if v.criteria.AssigneeID != viewmodel.FilterAll {
		name := "usuario " + v.criteria.AssigneeID
		if u, ok := v.state.Store.UserByID(domain.ID(v.criteria.AssigneeID)); ok {
			name = u.Name
		}
		parts = append(parts, "asignada a: "+name)
	}
	if len(parts) == 0 {
		return formatter.Dim("  sin filtros")
	}
	return formatter.Dim("  " + strings.Join(parts, " · "))
}

func (v *boardView) renderBoardTask(t domain.Task, users []domain.User, selected bool) string {
	cursor := "    "
	if selected {
		cursor = "  " + formatter.StyleHeader.Render("▸ ")
	}
	line := cursor + formatter.PriorityMarker(t.Priority) + " " + formatter.Truncate(t.Title, 50)
	if !v.grouped {
		line += " " + formatter.StatusBadge(t.Status)
	}
	line += " " + formatter.Dim(formatter.AssigneeName(t, users))
	if t.CommentsCount > 0 {
		line += " " + formatter.Dim(fmt.Sprintf("🗨 %d", t.CommentsCount))
	}
	return line + "\n"
}

func isNotFound(err error) bool {
	return errors.Is(err, api.ErrNotFound)
}
