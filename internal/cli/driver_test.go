package cli

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// testDriver runs the appModel synchronously: it calls Update directly
// and drains returned Cmds in place, so TUI flows are testable without
// a running tea.Program. Load Cmds hit the fake server over loopback
// and resolve within the drain timeout; cursor blink Cmds block on a
// timer channel and are skipped instead.
type testDriver struct {
	t        *testing.T
	model    tea.Model
	quitting bool
}

const (
	maxDrainDepth = 100
	drainTimeout  = 250 * time.Millisecond
)

func newTestDriver(t *testing.T, app *App) *testDriver {
	t.Helper()
	d := &testDriver{t: t, model: newAppModel(app)}
	d.send(tea.WindowSizeMsg{Width: 100, Height: 30})
	d.drain(d.model.Init(), 0)
	return d
}

func (d *testDriver) app() appModel { return d.model.(appModel) }

func (d *testDriver) activeViewID() ViewID {
	m := d.app()
	return m.viewStack[len(m.viewStack)-1].ID()
}

func (d *testDriver) stackLen() int { return len(d.app().viewStack) }

func (d *testDriver) view() string { return d.model.View() }

func (d *testDriver) send(msg tea.Msg) {
	d.t.Helper()
	if d.quitting {
		return
	}
	updated, cmd := d.model.Update(msg)
	d.model = updated
	d.drain(cmd, 0)
}

func (d *testDriver) press(r rune) {
	d.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func (d *testDriver) typeText(s string) {
	for _, r := range s {
		d.press(r)
	}
}

func keyTab() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyTab} }

func (d *testDriver) pressEnter() { d.send(tea.KeyMsg{Type: tea.KeyEnter}) }
func (d *testDriver) pressEsc()   { d.send(tea.KeyMsg{Type: tea.KeyEsc}) }
func (d *testDriver) pressDown()  { d.send(tea.KeyMsg{Type: tea.KeyDown}) }

func (d *testDriver) drain(cmd tea.Cmd, depth int) {
	d.t.Helper()
	if cmd == nil || depth >= maxDrainDepth {
		if depth >= maxDrainDepth {
			d.t.Logf("testDriver: drain depth limit (%d) reached", maxDrainDepth)
		}
		return
	}

	msg := runCmd(cmd)
	if msg == nil || isBlinkMsg(msg) {
		return
	}

	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, sub := range batch {
			if sub != nil {
				d.drain(sub, depth+1)
			}
		}
		return
	}

	if _, isQuit := msg.(tea.QuitMsg); isQuit {
		d.quitting = true
		updated, _ := d.model.Update(msg)
		d.model = updated
		return
	}

	updated, next := d.model.Update(msg)
	d.model = updated
	d.drain(next, depth+1)
}

// runCmd executes a Cmd with a timeout so blocking Cmds (cursor blink
// timers) cannot hang the test.
func runCmd(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(drainTimeout):
		return nil
	}
}

// isBlinkMsg detects the unexported blink messages from bubbles/cursor,
// which chain into blocking timer Cmds when processed.
func isBlinkMsg(msg tea.Msg) bool {
	return strings.Contains(strings.ToLower(fmt.Sprintf("%T", msg)), "blink")
}
