package emulator

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"quantumtie/internal/domain"
)

type frameMsg domain.Frame

type statusMsg string

// Model is the bubbletea model of the emulated matrix.
type Model struct {
	title  string
	frame  domain.Frame
	status string
	events chan<- domain.StickEvent
	theme  theme
}

// NewModel returns a model that sends joystick events on events.
func NewModel(title string, events chan<- domain.StickEvent) Model {
	return Model{title: title, events: events, theme: defaultTheme()}
}

// Frame returns the frame currently drawn.
func (m Model) Frame() domain.Frame { return m.frame }

// Status returns the status line.
func (m Model) Status() string { return m.status }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.frame = domain.Frame(msg)
	case statusMsg:
		m.status = string(msg)
	case tea.KeyMsg:
		switch msg.String() {
		case "up":
			m.emit(domain.StickUp, domain.ActionPressed)
		case "down":
			m.emit(domain.StickDown, domain.ActionPressed)
		case "left":
			m.emit(domain.StickLeft, domain.ActionPressed)
		case "right":
			m.emit(domain.StickRight, domain.ActionPressed)
		case "enter", " ":
			m.emit(domain.StickMiddle, domain.ActionPressed)
		case "x":
			m.emit(domain.StickMiddle, domain.ActionHeld)
		case "q", "esc":
			m.emit(domain.StickLeft, domain.ActionHeld)
		case "ctrl+c":
			m.emit(domain.StickLeft, domain.ActionHeld)
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m Model) emit(d domain.Direction, a domain.StickAction) {
	if m.events == nil {
		return
	}
	select {
	case m.events <- domain.StickEvent{Direction: d, Action: a}:
	default:
	}
}

func (m Model) View() string {
	var rows []string
	for y := 0; y < 8; y++ {
		var b strings.Builder
		for x := 0; x < 8; x++ {
			b.WriteString(cell(m.frame[y*8+x]))
		}
		rows = append(rows, b.String())
	}
	grid := m.theme.Frame.Render(strings.Join(rows, "\n"))

	parts := []string{m.theme.Header.Render(m.title), grid}
	if m.status != "" {
		parts = append(parts, m.theme.Status.Render(m.status))
	}
	parts = append(parts, m.theme.Muted.Render("enter: run now  x: power off  q: stop  ctrl+c: quit"))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func cell(p domain.Pixel) string {
	c := colorful.Color{R: float64(p.R) / 255, G: float64(p.G) / 255, B: float64(p.B) / 255}
	return lipgloss.NewStyle().Background(lipgloss.Color(c.Hex())).Render("  ")
}
