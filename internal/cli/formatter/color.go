package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/politask/politask/internal/domain"
	"github.com/politask/politask/internal/viewmodel"
)

// Base palette.
var (
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorDim    = lipgloss.Color("#928374")
	ColorHeader = lipgloss.Color("#fe8019")
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorYellow = lipgloss.Color("#fabd2f")
)

var (
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
	StyleError  = lipgloss.NewStyle().Foreground(ColorRed).Bold(true)
	StyleOK     = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleNotice = lipgloss.NewStyle().Foreground(ColorYellow)
)

// StatusBadge renders "◔ Pendiente" in the status color. All status
// styling flows through the single domain metadata table.
func StatusBadge(s domain.TaskStatus) string {
	meta := s.Meta()
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(meta.Color)).Bold(true)
	return style.Render(meta.Icon + " " + meta.Label)
}

// PriorityMarker renders "▲ Alta" in the priority color.
func PriorityMarker(p domain.TaskPriority) string {
	meta := p.Meta()
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(meta.Color))
	return style.Render(meta.Icon + " " + meta.Label)
}

// Avatar renders the user's initials on their deterministic color.
func Avatar(u domain.User) string {
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#1d2021")).
		Background(lipgloss.Color(u.AvatarColor())).
		Bold(true)
	return style.Render(" " + u.Initials() + " ")
}

// Crumbs renders a breadcrumb trail: linked ancestors in the foreground
// color, the current location bold, separated by chevrons.
func Crumbs(crumbs []viewmodel.Crumb) string {
	parts := make([]string, len(crumbs))
	for i, c := range crumbs {
		label := c.Label
		if c.Icon != "" {
			label = c.Icon + " " + label
		}
		if i == len(crumbs)-1 {
			parts[i] = StyleBold.Render(label)
		} else {
			parts[i] = StyleFg.Render(label)
		}
	}
	return strings.Join(parts, StyleDim.Render(" › "))
}

// FilterButton renders the filter popover trigger label: "Filtros" with
// the active-constraint count when nonzero.
func FilterButton(active int) string {
	if active == 0 {
		return "Filtros"
	}
	return fmt.Sprintf("Filtros (%d)", active)
}

// Header renders a section header with an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the dim style.
func Dim(text string) string { return StyleDim.Render(text) }

// Errorf renders a user-visible error line.
func Errorf(format string, args ...any) string {
	return StyleError.Render("✗ " + fmt.Sprintf(format, args...))
}

// Successf renders a user-visible confirmation line.
func Successf(format string, args ...any) string {
	return StyleOK.Render("✓ " + fmt.Sprintf(format, args...))
}
