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

type searchDoneMsg struct {
	gen    int
	result *api.SearchResult
	err    error
}

// searchRow is a selectable search result: a project or a task.
type searchRow struct {
	isProject bool
	project   domain.Project
	task      domain.Task
}

// searchView runs a global search over projects and tasks.
type searchView struct {
	state          *SharedState
	queryIn        textinput.Model
	submittedQuery string
	searching      bool
	searchGen      int
	result         *api.SearchResult
	errText        string
	cursor         int
	typing         bool
}

func newSearchView(state *SharedState) *searchView {
	in := textinput.New()
	in.Placeholder = "Buscar proyectos y tareas"
	in.CharLimit = 200
	in.Focus()
	return &searchView{state: state, queryIn: in, typing: true}
}

func (v *searchView) ID() ViewID { return ViewSearch }

func (v *searchView) Path() string { return "/search" }

func (v *searchView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "buscar/abrir")),
		key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "editar búsqueda")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "volver")),
	}
}

func (v *searchView) CapturesInput() bool { return v.typing }

func (v *searchView) Init() tea.Cmd { return textinput.Blink }

func (v *searchView) submit() tea.Cmd {
	app := v.state.App
	query := strings.TrimSpace(v.queryIn.Value())
	v.searchGen++
	gen := v.searchGen
	return func() tea.Msg {
		res, err := app.Search.Search(context.Background(), query)
		return searchDoneMsg{gen: gen, result: res, err: err}
	}
}

func (v *searchView) rows() []searchRow {
	if v.result == nil {
		return nil
	}
	var rows []searchRow
	for _, p := range v.result.Projects {
		rows = append(rows, searchRow{isProject: true, project: p})
	}
	for _, t := range v.result.Tasks {
		rows = append(rows, searchRow{task: t})
	}
	return rows
}

func (v *searchView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case searchDoneMsg:
		if msg.gen != v.searchGen {
			return v, nil
		}
		v.searching = false
		if msg.err != nil {
			v.errText = api.UserMessage(msg.err)
			return v, nil
		}
		v.errText = ""
		v.result = msg.result
		v.cursor = 0
		return v, nil

	case tea.KeyMsg:
		if v.typing {
			switch msg.String() {
			case "esc":
				if v.result != nil {
					v.typing = false
					v.queryIn.Blur()
					return v, nil
				}
				return v, popView()
			case "enter":
				q := strings.TrimSpace(v.queryIn.Value())
				if q == "" {
					return v, notifyError("escribe algo que buscar")
				}
				v.submittedQuery = q
				v.searching = true
				v.typing = false
				v.queryIn.Blur()
				return v, v.submit()
			}
			var cmd tea.Cmd
			v.queryIn, cmd = v.queryIn.Update(msg)
			return v, cmd
		}

		switch msg.String() {
		case "/":
			v.typing = true
			v.queryIn.Focus()
			return v, textinput.Blink
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
			if row.isProject {
				return v, pushView(newBoardView(v.state, row.project.ID))
			}
			return v, pushView(newTaskDetailView(v.state, row.task.ProjectID, row.task.ID))
		}
	}
	return v, nil
}

func (v *searchView) View() string {
	var b strings.Builder
	b.WriteString(formatter.Header("Búsqueda"))
	b.WriteString("\n\n  " + v.queryIn.View() + "\n\n")

	if v.searching {
		b.WriteString("  " + formatter.Dim("Buscando...") + "\n")
		return b.String()
	}
	if v.errText != "" {
		b.WriteString("  " + formatter.Errorf("%s", v.errText) + "\n")
		return b.String()
	}
	if v.result == nil {
		return b.String()
	}

	rows := v.rows()
	if len(rows) == 0 {
		b.WriteString("  " + formatter.Dim(fmt.Sprintf("Sin resultados para %q", v.submittedQuery)) + "\n")
		return b.String()
	}

	for i, row := range rows {
		cursor := "  "
		if i == v.cursor {
			cursor = formatter.StyleHeader.Render("▸ ")
		}
		if row.isProject {
			b.WriteString(fmt.Sprintf("%s▤ %s %s\n", cursor,
				formatter.StyleBold.Render(row.project.Name), formatter.Dim("proyecto")))
			continue
		}
		b.WriteString(fmt.Sprintf("%s%s %s %s\n", cursor,
			formatter.PriorityMarker(row.task.Priority),
			formatter.Truncate(row.task.Title, 50),
			formatter.StatusBadge(row.task.Status)))
	}
	return b.String()
}
