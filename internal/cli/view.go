package cli

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ViewID identifies each type of view in the TUI.
type ViewID int

const (
	ViewLogin ViewID = iota
	ViewDashboard
	ViewProjects
	ViewBoard
	ViewTaskDetail
	ViewSearch
)

// View is the interface all TUI views implement. It extends tea.Model
// with navigation metadata: Path feeds the breadcrumb deriver.
type View interface {
	tea.Model
	ID() ViewID
	Path() string             // route path of this view, e.g. /project/42
	ShortHelp() []key.Binding // key hints shown in the bottom bar
}

// ── navigation messages ──────────────────────────────────────────────────────

// pushViewMsg pushes a view onto the stack.
type pushViewMsg struct{ view View }

// replaceViewMsg swaps the top of the stack.
type replaceViewMsg struct{ view View }

// popViewMsg pops the top of the stack.
type popViewMsg struct{}

// noticeMsg shows a transient user-visible notification line.
type noticeMsg struct {
	text  string
	isErr bool
}

func pushView(v View) tea.Cmd {
	return func() tea.Msg { return pushViewMsg{view: v} }
}

func replaceView(v View) tea.Cmd {
	return func() tea.Msg { return replaceViewMsg{view: v} }
}

func popView() tea.Cmd {
	return func() tea.Msg { return popViewMsg{} }
}

func notify(text string) tea.Cmd {
	return func() tea.Msg { return noticeMsg{text: text} }
}

func notifyError(text string) tea.Cmd {
	return func() tea.Msg { return noticeMsg{text: text, isErr: true} }
}
