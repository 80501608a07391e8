package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/politask/politask/internal/domain"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(1, 2)

	if title != "" {
		inner := StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content
		return boxStyle.Render(inner)
	}
	return boxStyle.Render(content)
}

// DueDate renders a task's due date, or the "no date" placeholder.
func DueDate(ts *domain.Timestamp) string {
	if ts == nil || ts.IsZero() {
		return Dim("Sin fecha")
	}
	return ts.Format("02/01/2006")
}

// AssigneeName resolves a task's assignee against the user snapshot.
func AssigneeName(task domain.Task, users []domain.User) string {
	if !task.Assigned() {
		return Dim("Sin asignar")
	}
	for _, u := range users {
		if u.ID == task.AssigneeID {
			return u.Name
		}
	}
	return Dim("Usuario " + task.AssigneeID.String())
}

// Truncate shortens s to max visible cells, appending an ellipsis. The cut
// accumulates display width per rune, so double-width characters count as
// two cells and never overflow a table column.
func Truncate(s string, max int) string {
	if max <= 1 || lipgloss.Width(s) <= max {
		return s
	}
	var b strings.Builder
	width := 0
	for _, r := range s {
		rw := lipgloss.Width(string(r))
		if width+rw > max-1 {
			break
		}
		b.WriteRune(r)
		width += rw
	}
	return b.String() + "…"
}
