package console

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/withley/courier/internal/engine"
)

var toneColors = map[engine.Tone]lipgloss.Color{
	engine.ToneNarrative: lipgloss.Color("7"),
	engine.ToneHeading:   lipgloss.Color("6"),
	engine.ToneFlavor:    lipgloss.Color("5"),
	engine.ToneHighlight: lipgloss.Color("3"),
	engine.ToneCalm:      lipgloss.Color("4"),
	engine.ToneAlert:     lipgloss.Color("1"),
	engine.ToneSuccess:   lipgloss.Color("2"),
	engine.ToneCaution:   lipgloss.Color("3"),
	engine.ToneMystic:    lipgloss.Color("5"),
}

type styles struct {
	tones  map[engine.Tone]lipgloss.Style
	levels map[engine.Level]lipgloss.Style
	prompt lipgloss.Style
	re     *lipgloss.Renderer
}

func newStyles(re *lipgloss.Renderer) styles {
	s := styles{
		tones:  make(map[engine.Tone]lipgloss.Style, len(toneColors)),
		prompt: re.NewStyle().Foreground(lipgloss.Color("6")).Bold(true),
		re:     re,
	}
	for tone, color := range toneColors {
		st := re.NewStyle().Foreground(color)
		switch tone {
		case engine.ToneHeading, engine.ToneHighlight, engine.ToneAlert:
			st = st.Bold(true)
		case engine.ToneFlavor:
			st = st.Italic(true)
		}
		s.tones[tone] = st
	}
	s.levels = map[engine.Level]lipgloss.Style{
		engine.LevelStable:   re.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		engine.LevelSpicy:    re.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
		engine.LevelCritical: re.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
	return s
}

func (s styles) tone(t engine.Tone) lipgloss.Style {
	if st, ok := s.tones[t]; ok {
		return st
	}
	return s.tones[engine.ToneNarrative]
}

func (s styles) level(l engine.Level) lipgloss.Style {
	return s.levels[l]
}

// box draws a titled, bordered panel width columns wide.
func (s styles) box(t engine.Tone, title string, lines []string, width int) string {
	color := toneColors[t]
	inner := width - 4
	head := s.re.NewStyle().Bold(true).Foreground(color).Width(inner).Align(lipgloss.Center).Render(title)
	body := s.re.NewStyle().Width(inner).Render(strings.Join(lines, "\n"))
	return s.re.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 1).
		Render(head + "\n\n" + body)
}
