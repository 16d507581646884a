package teatest

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

type echoMsg string

// recorder records the keys it sees and answers "ping" with an echo.
type recorder struct {
	keys   []string
	echoes []string
	width  int
}

func (r *recorder) Init() tea.Cmd {
	return func() tea.Msg { return echoMsg("init") }
}

func (r *recorder) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.width = msg.Width
	case echoMsg:
		r.echoes = append(r.echoes, string(msg))
	case tea.KeyMsg:
		r.keys = append(r.keys, msg.String())
		switch msg.String() {
		case "ping":
			return r, tea.Batch(
				func() tea.Msg { return echoMsg("pong") },
				func() tea.Msg { time.Sleep(time.Second); return echoMsg("late") },
			)
		case "q":
			return r, tea.Quit
		}
	}
	return r, nil
}

func (r *recorder) View() string {
	return "\x1b[1mkeys:\x1b[0m " + strings.Join(r.keys, ",")
}

func TestDriver_DrainsInitAndBatches(t *testing.T) {
	r := &recorder{}
	d := New(t, r, WithSize(80, 24))
	d.DrainInit()

	assert.Equal(t, 80, r.width)
	assert.Equal(t, []string{"init"}, r.echoes)

	d.Press("ping")
	assert.Equal(t, []string{"init", "pong"}, r.echoes, "slow commands are skipped")
}

func TestDriver_KeysAndView(t *testing.T) {
	r := &recorder{}
	d := New(t, r)

	d.Press("enter", "ctrl+s", "up")
	d.Type("ab")
	assert.Equal(t, []string{"enter", "ctrl+s", "up", "a", "b"}, r.keys)
	assert.Equal(t, "keys: enter,ctrl+s,up,a,b", d.PlainView())
	d.RequireViewContains("ctrl+s")
}

func TestDriver_StopsAfterQuit(t *testing.T) {
	r := &recorder{}
	d := New(t, r)

	d.Press("q", "x")
	assert.True(t, d.Quitting)
	assert.Equal(t, []string{"q"}, r.keys)
}

func TestKey(t *testing.T) {
	assert.Equal(t, tea.KeyMsg{Type: tea.KeyEsc}, Key("esc"))
	assert.Equal(t, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("F")}, Key("F"))
}
