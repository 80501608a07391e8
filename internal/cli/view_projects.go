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

type projectsLoadedMsg struct {
	gen int
	err error
}

type projectCreatedMsg struct {
	project *domain.Project
	err     error
}

// projectsView lists every project and lets the user open its board or
// create a new one inline.
type projectsView struct {
	state   *SharedState
	loading bool
	loadGen int
	errText string
	cursor  int

	creating bool
	nameIn   textinput.Model
}

func newProjectsView(state *SharedState) *projectsView {
	in := textinput.New()
	in.Placeholder = "Nombre del proyecto"
	in.CharLimit = 120
	return &projectsView{state: state, loading: true, nameIn: in}
}

func (v *projectsView) ID() ViewID   { return ViewProjects }
func (v *projectsView) Path() string { return "/projects" }

func (v *projectsView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "abrir tablero")),
		key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "nuevo proyecto")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "recargar")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "volver")),
	}
}

func (v *projectsView) CapturesInput() bool { return v.creating }

func (v *projectsView) Init() tea.Cmd { return v.load() }

func (v *projectsView) load() tea.Cmd {
	v.loading = true
	v.loadGen++
	gen := v.loadGen
	st := v.state.Store
	return func() tea.Msg {
		ctx := context.Background()
		err := st.LoadProjects(ctx)
		return projectsLoadedMsg{gen: gen, err: err}
	}
}

func (v *projectsView) submitCreate() tea.Cmd {
	app := v.state.App
	name := strings.TrimSpace(v.nameIn.Value())
	owner := app.Session.User().ID
	return func() tea.Msg {
		p, err := app.Projects.Create(context.Background(), api.CreateProjectRequest{
			Name:    name,
			OwnerID: owner,
		})
		return projectCreatedMsg{project: p, err: err}
	}
}

func (v *projectsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case projectsLoadedMsg:
		if msg.gen != v.loadGen {
			return v, nil
		}
		v.loading = false
		if msg.err != nil {
			v.errText = "No se pudieron cargar los proyectos"
			return v, nil
		}
		v.errText = ""
		if n := len(v.state.Store.Projects()); v.cursor >= n && n > 0 {
			v.cursor = n - 1
		}
		return v, nil

	case projectCreatedMsg:
		if msg.err != nil {
			return v, notifyError(api.UserMessage(msg.err))
		}
		v.creating = false
		v.nameIn.SetValue("")
		v.cursor = 0
		return v, notify("Proyecto \"" + msg.project.Name + "\" creado")

	case tea.KeyMsg:
		if v.creating {
			switch msg.String() {
			case "esc":
				v.creating = false
				v.nameIn.SetValue("")
				return v, nil
			case "enter":
				if strings.TrimSpace(v.nameIn.Value()) == "" {
					return v, notifyError("el nombre del proyecto es obligatorio")
				}
				return v, v.submitCreate()
			}
			var cmd tea.Cmd
			v.nameIn, cmd = v.nameIn.Update(msg)
			return v, cmd
		}

		projects := v.state.Store.Projects()
		switch msg.String() {
		case "j", "down":
			if v.cursor < len(projects)-1 {
				v.cursor++
			}
		case "k", "up":
			if v.cursor > 0 {
				v.cursor--
			}
		case "enter":
			if v.cursor < len(projects) {
				p := projects[v.cursor]
				return v, pushView(newBoardView(v.state, p.ID))
			}
		case "n":
			v.creating = true
			v.nameIn.Focus()
			return v, textinput.Blink
		case "r":
			return v, v.load()
		}
	}
	return v, nil
}

func (v *projectsView) View() string {
	var b strings.Builder
	b.WriteString(formatter.Header("Proyectos"))
	b.WriteString("\n\n")

	if v.creating {
		b.WriteString("  Nuevo proyecto: " + v.nameIn.View() + "\n\n")
	}

	if v.loading {
		b.WriteString("  " + formatter.Dim("Cargando...") + "\n")
		return b.String()
	}
	if v.errText != "" {
		b.WriteString("  " + formatter.Errorf("%s", v.errText) + "\n")
		return b.String()
	}

	projects := v.state.Store.Projects()
	if len(projects) == 0 {
		b.WriteString("  " + formatter.Dim("No hay proyectos todavía") + "\n")
		return b.String()
	}

	tasks := v.state.Store.Tasks()
	for i, p := range projects {
		cursor := "  "
		if i == v.cursor {
			cursor = formatter.StyleHeader.Render("▸ ")
		}
		open := 0
		for _, t := range tasks {
			if t.ProjectID == p.ID && t.Status != domain.StatusDone && t.Status != domain.StatusClosed {
				open++
			}
		}
		line := fmt.Sprintf("%s%s", cursor, formatter.StyleBold.Render(p.Name))
		if p.Description != "" {
			line += " " + formatter.Dim(formatter.Truncate(p.Description, 40))
		}
		line += " " + formatter.Dim(fmt.Sprintf("· %d abiertas", open))
		b.WriteString(line + "\n")
	}
	return b.String()
}
