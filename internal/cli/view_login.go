package cli

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/politask/politask/internal/api"
	"github.com/politask/politask/internal/cli/formatter"
)

// authDoneMsg signals the login or register request finished.
type authDoneMsg struct {
	res *api.AuthResult
	err error
}

// loginView collects credentials and authenticates against the server.
// Tab toggles between login and register modes.
type loginView struct {
	state      *SharedState
	inputs     []textinput.Model
	focus      int
	register   bool
	submitting bool
	errText    string
}

const (
	fieldName = iota
	fieldEmail
	fieldPassword
)

func newLoginView(state *SharedState) *loginView {
	name := textinput.New()
	name.Placeholder = "Nombre"
	name.CharLimit = 80

	email := textinput.New()
	email.Placeholder = "Email"
	email.CharLimit = 120

	password := textinput.New()
	password.Placeholder = "Contraseña"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 80

	v := &loginView{state: state, inputs: []textinput.Model{name, email, password}}
	v.setFocus(fieldEmail)
	return v
}

func (v *loginView) ID() ViewID   { return ViewLogin }
func (v *loginView) Path() string { return "/login" }

func (v *loginView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "entrar")),
		key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "siguiente campo")),
		key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "registro")),
	}
}

func (v *loginView) CapturesInput() bool { return true }

func (v *loginView) Init() tea.Cmd { return textinput.Blink }

func (v *loginView) setFocus(i int) {
	v.focus = i
	for j := range v.inputs {
		if j == i {
			v.inputs[j].Focus()
		} else {
			v.inputs[j].Blur()
		}
	}
}

// visibleFields returns the field indexes shown in the current mode.
func (v *loginView) visibleFields() []int {
	if v.register {
		return []int{fieldName, fieldEmail, fieldPassword}
	}
	return []int{fieldEmail, fieldPassword}
}

func (v *loginView) nextField() {
	fields := v.visibleFields()
	for i, f := range fields {
		if f == v.focus {
			v.setFocus(fields[(i+1)%len(fields)])
			return
		}
	}
	v.setFocus(fields[0])
}

func (v *loginView) submit() tea.Cmd {
	app := v.state.App
	name := strings.TrimSpace(v.inputs[fieldName].Value())
	email := strings.TrimSpace(v.inputs[fieldEmail].Value())
	password := v.inputs[fieldPassword].Value()
	register := v.register
	return func() tea.Msg {
		ctx := context.Background()
		var res *api.AuthResult
		var err error
		if register {
			res, err = app.Auth.Register(ctx, name, email, password)
		} else {
			res, err = app.Auth.Login(ctx, email, password)
		}
		return authDoneMsg{res: res, err: err}
	}
}

func (v *loginView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case authDoneMsg:
		v.submitting = false
		if msg.err != nil {
			v.errText = api.UserMessage(msg.err)
			return v, nil
		}
		return v, tea.Batch(
			replaceView(newDashboardView(v.state)),
			notify("Sesión iniciada como "+msg.res.Name),
		)

	case tea.KeyMsg:
		if v.submitting {
			return v, nil
		}
		switch msg.String() {
		case "ctrl+c":
			return v, tea.Quit
		case "ctrl+r":
			v.register = !v.register
			v.errText = ""
			if !v.register && v.focus == fieldName {
				v.setFocus(fieldEmail)
			}
			return v, nil
		case "tab", "shift+tab", "down", "up":
			v.nextField()
			return v, nil
		case "enter":
			v.errText = ""
			v.submitting = true
			return v, v.submit()
		}
	}

	var cmd tea.Cmd
	v.inputs[v.focus], cmd = v.inputs[v.focus].Update(msg)
	return v, cmd
}

func (v *loginView) View() string {
	var b strings.Builder
	if v.register {
		b.WriteString(formatter.Header("Crear cuenta"))
	} else {
		b.WriteString(formatter.Header("Iniciar sesión"))
	}
	b.WriteString("\n\n")

	for _, f := range v.visibleFields() {
		b.WriteString("  " + v.inputs[f].View() + "\n")
	}

	if v.submitting {
		b.WriteString("\n  " + formatter.Dim("Conectando..."))
	}
	if v.errText != "" {
		b.WriteString("\n  " + formatter.Errorf("%s", v.errText))
	}
	return b.String()
}
