package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/politask/politask/internal/cli/formatter"
	"github.com/politask/politask/internal/domain"
)

// politaskHuhTheme returns a custom huh theme using the Gruvbox palette.
func politaskHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s es obligatorio", field)
		}
		return nil
	}
}

// credentialsForm collects email and password, plus the display name in
// register mode.
func credentialsForm(register bool, name, email, password *string) *huh.Form {
	fields := []huh.Field{}
	if register {
		fields = append(fields, huh.NewInput().
			Title("Nombre").
			Value(name).
			Validate(validateRequired("el nombre")))
	}
	fields = append(fields,
		huh.NewInput().
			Title("Email").
			Placeholder("ana@example.com").
			Value(email).
			Validate(validateRequired("el email")),
		huh.NewInput().
			Title("Contraseña").
			EchoMode(huh.EchoModePassword).
			Value(password).
			Validate(validateRequired("la contraseña")),
	)
	return huh.NewForm(huh.NewGroup(fields...)).
		WithTheme(politaskHuhTheme()).WithShowHelp(false)
}

// projectForm collects the fields for a new project.
func projectForm(name, description *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Nombre del proyecto").
				Value(name).
				Validate(validateRequired("el nombre del proyecto")),
			huh.NewInput().
				Title("Descripción (opcional)").
				Value(description),
		),
	).WithTheme(politaskHuhTheme()).WithShowHelp(false)
}

// taskForm collects the fields for a new task. Status and priority offer
// the full vocabulary with the defaults preselected.
func taskForm(title, description *string, status *domain.TaskStatus, priority *domain.TaskPriority) *huh.Form {
	statusOpts := make([]huh.Option[domain.TaskStatus], 0, len(domain.StatusOrder))
	for _, s := range domain.StatusOrder {
		statusOpts = append(statusOpts, huh.NewOption(s.Meta().Label, s))
	}
	priorityOpts := make([]huh.Option[domain.TaskPriority], 0, len(domain.PriorityOrder))
	for _, p := range domain.PriorityOrder {
		priorityOpts = append(priorityOpts, huh.NewOption(p.Meta().Label, p))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Título").
				Value(title).
				Validate(validateRequired("el título")),
			huh.NewInput().
				Title("Descripción (opcional)").
				Value(description),
			huh.NewSelect[domain.TaskStatus]().
				Title("Estado").
				Options(statusOpts...).
				Value(status),
			huh.NewSelect[domain.TaskPriority]().
				Title("Prioridad").
				Options(priorityOpts...).
				Value(priority),
		),
	).WithTheme(politaskHuhTheme()).WithShowHelp(false)
}
