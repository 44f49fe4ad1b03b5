package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/withley/courier/internal/engine"
)

type sessionState int

const (
	statePlaying sessionState = iota
	stateDone
	stateInterrupted
)

type model struct {
	state     sessionState
	ctrl      *engine.Controller
	textInput textinput.Model
	viewport  viewport.Model
	ready     bool
	gameLog   string
	width     int
	height    int
}

var (
	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#5F5F87")).
			Bold(true).
			PaddingLeft(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	stateStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)

	toneColors = map[engine.Tone]lipgloss.Color{
		engine.ToneNarrative: lipgloss.Color("#FFFFFF"),
		engine.ToneHeading:   lipgloss.Color("#5FD7FF"),
		engine.ToneFlavor:    lipgloss.Color("#D787D7"),
		engine.ToneHighlight: lipgloss.Color("#FFD75F"),
		engine.ToneCalm:      lipgloss.Color("#87AFFF"),
		engine.ToneAlert:     lipgloss.Color("#FF5F5F"),
		engine.ToneSuccess:   lipgloss.Color("#87D787"),
		engine.ToneCaution:   lipgloss.Color("#FFAF5F"),
		engine.ToneMystic:    lipgloss.Color("#AF87FF"),
	}

	levelColors = map[engine.Level]lipgloss.Color{
		engine.LevelStable:   lipgloss.Color("#87D787"),
		engine.LevelSpicy:    lipgloss.Color("#FFD75F"),
		engine.LevelCritical: lipgloss.Color("#FF5F5F"),
	}
)

func NewModel(ctrl *engine.Controller) model {
	ti := textinput.New()
	ti.Placeholder = "Type a choice and press Enter..."
	ti.Focus()
	ti.CharLimit = 64
	ti.Width = 40

	return model{
		state:     statePlaying,
		ctrl:      ctrl,
		textInput: ti,
		gameLog:   renderScreen(ctrl.Screen(), 72),
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) logWidth() int {
	if m.width == 0 {
		return 72
	}
	return int(float64(m.width) * 0.75)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			if m.state == statePlaying {
				m.state = stateInterrupted
			}
			return m, tea.Quit

		case tea.KeyEnter:
			if m.state == stateDone {
				return m, tea.Quit
			}
			input := m.textInput.Value()
			m.textInput.Reset()

			m.gameLog += "\n" + userStyle.Width(m.logWidth()).Render("> "+input) + "\n\n"
			m.ctrl.Submit(input)
			scr := m.ctrl.Screen()
			if scr.Notice != "" {
				m.gameLog += toneStyle(engine.ToneAlert).Render(scr.Notice) + "\n"
			} else {
				m.gameLog += renderScreen(scr, m.logWidth())
			}
			if m.ctrl.Done() {
				m.state = stateDone
				m.textInput.Placeholder = "Press Enter to close the courier link."
			}
			m.refresh()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(m.logWidth(), msg.Height-6)
			m.ready = true
		} else {
			m.viewport.Width = m.logWidth()
			m.viewport.Height = msg.Height - 6
		}
		m.refresh()
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m *model) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.gameLog)
	m.viewport.GotoBottom()
}

func (m model) View() string {
	if !m.ready {
		return "\n  Threading through adjacent maybes...\n"
	}

	mainView := lipgloss.JoinHorizontal(lipgloss.Top,
		m.viewport.View(),
		m.renderState(),
	)

	prompt := titleStyle.UnsetUnderline().Render(m.ctrl.Screen().Prompt)
	help := helpStyle.Render("Enter submits. Esc or Ctrl+C closes the courier link.")

	s := lipgloss.JoinVertical(lipgloss.Left,
		mainView,
		"\n"+prompt+m.textInput.View(),
		"\n"+help,
	)
	return "\n" + s + "\n"
}

func (m model) renderState() string {
	sess := m.ctrl.Session()
	st := engine.Status(sess.RippleIndex, m.ctrl.Engine().Catalog().Narrative.RippleNotes)

	ripple := titleStyle.Render("RIPPLE") + "\n" +
		lipgloss.NewStyle().Foreground(levelColors[st.Level]).Render(fmt.Sprintf("%s %d/%d", st.Bar(), st.Value, st.Max)) +
		"\n" + st.Note + "\n\n"

	stats := titleStyle.Render("COURIER") + "\n" +
		fmt.Sprintf("Turn: %d\nDeliveries: %d\nParadoxes: %d/%d\n\n",
			sess.Turn, len(sess.Deliveries), sess.ParadoxesResolved, sess.ParadoxesTriggered)

	var civs strings.Builder
	civs.WriteString(titleStyle.Render("TIMELINES") + "\n")
	for _, c := range m.ctrl.Engine().Catalog().Civilizations {
		cs := sess.Civ(c.ID)
		fmt.Fprintf(&civs, "%s\n  %+d / %+d %s\n", c.Name, cs.Harmony, cs.Chaos, cs.Mood())
	}

	stateWidth := int(float64(m.width) * 0.23)
	return stateStyle.Width(stateWidth).Height(m.viewport.Height).Render(ripple + stats + civs.String())
}

func toneStyle(t engine.Tone) lipgloss.Style {
	st := lipgloss.NewStyle().Foreground(toneColors[t])
	switch t {
	case engine.ToneHeading, engine.ToneHighlight, engine.ToneAlert:
		st = st.Bold(true)
	case engine.ToneFlavor:
		st = st.Italic(true)
	}
	return st
}

// renderScreen turns a screen into log text. Typing animation is not used
// here; the whole screen appears at once.
func renderScreen(s engine.Screen, width int) string {
	var b strings.Builder
	if s.Heading != "" {
		b.WriteString(toneStyle(engine.ToneHeading).Render(s.Heading) + "\n\n")
	}
	for _, blk := range s.Blocks {
		switch blk.Kind {
		case engine.BlockBox:
			head := toneStyle(blk.Tone).Bold(true).Render(blk.Title)
			b.WriteString(lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(toneColors[blk.Tone]).
				Padding(0, 1).
				Width(width-2).
				Render(head+"\n\n"+strings.Join(blk.Lines, "\n")) + "\n")
		case engine.BlockArt:
			b.WriteString(toneStyle(blk.Tone).Render(strings.Join(blk.Lines, "\n")) + "\n")
		case engine.BlockStatus:
			b.WriteString(lipgloss.NewStyle().Foreground(levelColors[blk.Status.Level]).Bold(true).Render(blk.Status.String()) + "\n")
			b.WriteString(toneStyle(engine.ToneFlavor).Render(blk.Status.Note) + "\n")
		default:
			b.WriteString(toneStyle(blk.Tone).Width(width).Render(strings.Join(blk.Lines, "\n")) + "\n")
		}
		b.WriteString("\n")
	}
	for _, o := range s.Options {
		b.WriteString(toneStyle(engine.ToneHighlight).Render(fmt.Sprintf("[%s] %s", o.Key, o.Label)) + "\n")
		if o.Detail != "" {
			b.WriteString("    " + o.Detail + "\n")
		}
	}
	return b.String()
}

// Run plays ctrl full-screen until it finishes or the player leaves. An
// interrupted session prints the farewell to out and is not an error.
func Run(ctx context.Context, ctrl *engine.Controller, out io.Writer) error {
	p := tea.NewProgram(NewModel(ctrl), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		if ctx.Err() != nil || errors.Is(err, tea.ErrProgramKilled) {
			fmt.Fprintln(out, ctrl.Farewell())
			return nil
		}
		return err
	}
	if fm, ok := final.(model); ok && fm.state == stateInterrupted {
		fmt.Fprintln(out, ctrl.Farewell())
	}
	return nil
}
