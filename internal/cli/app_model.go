package cli

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/politask/politask/internal/cli/formatter"
	"github.com/politask/politask/internal/viewmodel"
)

// appModel is the root bubbletea Model. It manages a view stack and
// renders the breadcrumb trail for the active view's route.
type appModel struct {
	state     *SharedState
	viewStack []View
	notice    string
	noticeErr bool
	quitting  bool
}

func newAppModel(app *App) appModel {
	state := &SharedState{App: app, Store: app.Store, CrumbsLoading: true}

	m := appModel{state: state}
	if app.Auth.Authenticated() {
		m.viewStack = []View{newDashboardView(state)}
	} else {
		m.viewStack = []View{newLoginView(state)}
	}
	return m
}

// runUI starts the TUI event loop.
func runUI(app *App) error {
	p := tea.NewProgram(newAppModel(app), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// crumbsLoadedMsg signals the breadcrumb prefetch finished.
type crumbsLoadedMsg struct{}

// loadCrumbData prefetches the project and task snapshots the breadcrumb
// deriver resolves names against. Both loads are best-effort: a failure
// leaves stale labels, never an error state.
func (m appModel) loadCrumbData() tea.Cmd {
	st := m.state.Store
	return func() tea.Msg {
		ctx := context.Background()
		st.LoadProjectsBestEffort(ctx)
		st.LoadAllTasksBestEffort(ctx)
		return crumbsLoadedMsg{}
	}
}

func (m *appModel) activeView() View {
	if len(m.viewStack) == 0 {
		return nil
	}
	return m.viewStack[len(m.viewStack)-1]
}

func (m *appModel) setActiveView(v View) {
	if len(m.viewStack) > 0 {
		m.viewStack[len(m.viewStack)-1] = v
	}
}

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m appModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadCrumbData()}
	if v := m.activeView(); v != nil {
		cmds = append(cmds, v.Init())
	}
	return tea.Batch(cmds...)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		if v := m.activeView(); v != nil {
			updated, cmd := v.Update(msg)
			m.setActiveView(updated.(View))
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case crumbsLoadedMsg:
		m.state.CrumbsLoading = false
		return m, nil

	case pushViewMsg:
		m.notice = ""
		m.viewStack = append(m.viewStack, msg.view)
		return m, msg.view.Init()

	case replaceViewMsg:
		// The notice survives a replace: redirects pair with one.
		if len(m.viewStack) > 0 {
			m.viewStack[len(m.viewStack)-1] = msg.view
		} else {
			m.viewStack = append(m.viewStack, msg.view)
		}
		return m, msg.view.Init()

	case popViewMsg:
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		return m, nil

	case noticeMsg:
		m.notice = msg.text
		m.noticeErr = msg.isErr
		return m, nil
	}

	// Forward everything else (spinners, load results) to the active view.
	if v := m.activeView(); v != nil {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}
	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	// Views with focused text inputs consume every key.
	if v := m.activeView(); v != nil && viewCapturesInput(v) {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}

	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit

	case "esc":
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
			m.notice = ""
		}
		return m, nil
	}

	if v := m.activeView(); v != nil {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}
	return m, nil
}

// inputCapturer is implemented by views that own a focused text input.
type inputCapturer interface{ CapturesInput() bool }

func viewCapturesInput(v View) bool {
	if c, ok := v.(inputCapturer); ok {
		return c.CapturesInput()
	}
	return false
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}

	var sections []string
	sections = append(sections, m.renderHeader())

	if v := m.activeView(); v != nil {
		sections = append(sections, v.View())
	}

	if m.notice != "" {
		if m.noticeErr {
			sections = append(sections, formatter.Errorf("%s", m.notice))
		} else {
			sections = append(sections, formatter.Successf("%s", m.notice))
		}
	}

	sections = append(sections, m.renderFooter())
	return strings.Join(sections, "\n")
}

// renderHeader derives the breadcrumb trail from the active view's route
// and the store's current snapshots, on every frame. No caching: the
// derivation is pure and the snapshots are the single source of truth.
func (m appModel) renderHeader() string {
	path := "/dashboard"
	searchQuery := ""
	if v := m.activeView(); v != nil {
		path = v.Path()
		if sv, ok := v.(*searchView); ok {
			searchQuery = sv.submittedQuery
		}
	}
	crumbs := viewmodel.DeriveBreadcrumbs(
		path, searchQuery,
		m.state.Store.Projects(), m.state.Store.Tasks(),
		m.state.CrumbsLoading,
	)
	bar := formatter.Crumbs(crumbs)
	line := formatter.StyleDim.Render(strings.Repeat("─", max(1, m.state.Width)))
	return bar + "\n" + line
}

func (m appModel) renderFooter() string {
	var hints []string
	if v := m.activeView(); v != nil {
		for _, b := range v.ShortHelp() {
			h := b.Help()
			hints = append(hints, formatter.StyleBold.Render(h.Key)+" "+formatter.Dim(h.Desc))
		}
	}
	hints = append(hints, formatter.StyleBold.Render("q")+" "+formatter.Dim("salir"))
	line := formatter.StyleDim.Render(strings.Repeat("─", max(1, m.state.Width)))
	return line + "\n" + lipgloss.NewStyle().Render(strings.Join(hints, "  "))
}
