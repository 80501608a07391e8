package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/politask/politask/internal/cli/formatter"
	"github.com/politask/politask/internal/domain"
	"github.com/politask/politask/internal/viewmodel"
)

// dashboardLoadedMsg carries the result of the dashboard refresh. gen
// identifies the load that produced it; responses from superseded loads
// are dropped.
type dashboardLoadedMsg struct {
	gen int
	err error
}

// dashboardView is the landing view: the session user's tasks grouped
// by status, with empty groups elided. No collapse state here: groups
// are always expanded, and an empty one simply does not render.
type dashboardView struct {
	state   *SharedState
	loading bool
	loadGen int
	errText string
	cursor  int
}

func newDashboardView(state *SharedState) *dashboardView {
	return &dashboardView{state: state, loading: true}
}

func (v *dashboardView) ID() ViewID   { return ViewDashboard }
func (v *dashboardView) Path() string { return "/dashboard" }

func (v *dashboardView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "abrir tarea")),
		key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "proyectos")),
		key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "buscar")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "recargar")),
	}
}

func (v *dashboardView) Init() tea.Cmd { return v.load() }

func (v *dashboardView) load() tea.Cmd {
	v.loading = true
	v.loadGen++
	gen := v.loadGen
	st := v.state.Store
	return func() tea.Msg {
		ctx := context.Background()
		if err := st.LoadAllTasks(ctx); err != nil {
			return dashboardLoadedMsg{gen: gen, err: err}
		}
		st.LoadProjectsBestEffort(ctx)
		st.LoadUsers(ctx)
		return dashboardLoadedMsg{gen: gen}
	}
}

// myTasks returns the session user's tasks in store order.
func (v *dashboardView) myTasks() []domain.Task {
	me := v.state.App.Session.User()
	var mine []domain.Task
	for _, t := range v.state.Store.Tasks() {
		if t.AssigneeID != "" && t.AssigneeID == me.ID {
			mine = append(mine, t)
		}
	}
	return mine
}

// visibleGroups groups the user's tasks by status, eliding empty groups.
func (v *dashboardView) visibleGroups() []viewmodel.StatusGroup {
	groups := viewmodel.GroupByStatus(v.myTasks(), domain.StatusOrder)
	return viewmodel.Visible(groups, nil, false)
}

// rowCount counts selectable task rows across visible groups.
func (v *dashboardView) rowCount() int {
	n := 0
	for _, g := range v.visibleGroups() {
		n += len(g.Tasks)
	}
	return n
}

// taskAtCursor resolves the cursor to a task across the visible groups.
func (v *dashboardView) taskAtCursor() (domain.Task, bool) {
	i := 0
	for _, g := range v.visibleGroups() {
		for _, t := range g.Tasks {
			if i == v.cursor {
				return t, true
			}
			i++
		}
	}
	return domain.Task{}, false
}

func (v *dashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		if msg.gen != v.loadGen {
			return v, nil
		}
		v.loading = false
		if msg.err != nil {
			v.errText = "No se pudieron cargar las tareas"
			return v, nil
		}
		v.errText = ""
		if n := v.rowCount(); v.cursor >= n && n > 0 {
			v.cursor = n - 1
		}
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if v.cursor < v.rowCount()-1 {
				v.cursor++
			}
		case "k", "up":
			if v.cursor > 0 {
				v.cursor--
			}
		case "enter":
			if t, ok := v.taskAtCursor(); ok {
				return v, pushView(newTaskDetailView(v.state, t.ProjectID, t.ID))
			}
		case "p":
			return v, pushView(newProjectsView(v.state))
		case "/":
			return v, pushView(newSearchView(v.state))
		case "r":
			return v, v.load()
		}
	}
	return v, nil
}

func (v *dashboardView) View() string {
	var b strings.Builder
	b.WriteString(formatter.Header("Mis Tareas"))
	b.WriteString("\n\n")

	if v.loading {
		b.WriteString("  " + formatter.Dim("Cargando...") + "\n")
		return b.String()
	}
	if v.errText != "" {
		b.WriteString("  " + formatter.Errorf("%s", v.errText) + "\n")
		return b.String()
	}

	groups := v.visibleGroups()
	if len(groups) == 0 {
		b.WriteString("  " + formatter.Dim("No tienes tareas asignadas") + "\n")
		return b.String()
	}

	i := 0
	for _, g := range groups {
		b.WriteString(fmt.Sprintf("%s %s\n", formatter.StatusBadge(g.Status), formatter.Dim(fmt.Sprintf("(%d)", g.Count()))))
		for _, t := range g.Tasks {
			b.WriteString(renderTaskRow(t, v.state.Store.Projects(), i == v.cursor))
			i++
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderTaskRow renders one selectable task line with its priority marker
// and owning project name.
func renderTaskRow(t domain.Task, projects []domain.Project, selected bool) string {
	project := ""
	for _, p := range projects {
		if p.ID == t.ProjectID {
			project = p.Name
			break
		}
	}
	cursor := "  "
	if selected {
		cursor = formatter.StyleHeader.Render("▸ ")
	}
	line := fmt.Sprintf("%s%s %s", cursor, formatter.PriorityMarker(t.Priority), formatter.Truncate(t.Title, 50))
	if project != "" {
		line += " " + formatter.Dim("· "+project)
	}
	if t.DueDate != nil {
		line += " " + formatter.Dim(formatter.DueDate(t.DueDate))
	}
	return line + "\n"
}
