// Package analyzer is the historical view: pick a time window, query the
// sample store, render one line chart per metric.
package analyzer

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"vitals/internal/domain"
	"vitals/internal/tui/widgets"
)

type viewState int

const (
	statePicker viewState = iota
	stateLoading
	stateCharts
	stateError
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Back   key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "plot")),
	Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

type queryResultMsg struct {
	window  domain.Window
	start   time.Time
	end     time.Time
	samples []domain.Sample
	err     error
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#22C55E"))
	faintStyle    = lipgloss.NewStyle().Faint(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
)

// Model is the bubbletea model for the analyzer.
type Model struct {
	repo domain.SampleRepository

	state   viewState
	windows []domain.Window
	cursor  int

	window  domain.Window
	start   time.Time
	end     time.Time
	samples []domain.Sample
	err     error

	width  int
	height int

	now func() time.Time
}

func NewModel(repo domain.SampleRepository) Model {
	return Model{
		repo:    repo,
		state:   statePicker,
		windows: domain.Windows(),
		now:     time.Now,
	}
}

// NewModelWithWindow skips the picker and queries w immediately.
func NewModelWithWindow(repo domain.SampleRepository, w domain.Window) Model {
	m := NewModel(repo)
	m.state = stateLoading
	m.window = w
	return m
}

func (m Model) Init() tea.Cmd {
	if m.state == stateLoading {
		return m.query(m.window)
	}
	return nil
}

// query runs the window query off the update loop.
func (m Model) query(w domain.Window) tea.Cmd {
	return func() tea.Msg {
		now := m.now()

		start := time.Time{}
		if d := w.Duration(); d > 0 {
			start = now.Add(-d)
		}

		samples, err := m.repo.QueryWindow(context.Background(), w, now)

		return queryResultMsg{
			window:  w,
			start:   start,
			end:     now,
			samples: samples,
			err:     err,
		}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, keys.Up):
			if m.state == statePicker && m.cursor > 0 {
				m.cursor--
			}

		case key.Matches(msg, keys.Down):
			if m.state == statePicker && m.cursor < len(m.windows)-1 {
				m.cursor++
			}

		case key.Matches(msg, keys.Select):
			if m.state == statePicker {
				m.state = stateLoading
				m.window = m.windows[m.cursor]
				return m, m.query(m.window)
			}

		case key.Matches(msg, keys.Back):
			if m.state == stateCharts || m.state == stateError {
				m.state = statePicker
				m.err = nil
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case queryResultMsg:
		m.window = msg.window
		m.start = msg.start
		m.end = msg.end
		m.samples = msg.samples
		m.err = msg.err

		if msg.err != nil {
			m.state = stateError
		} else {
			m.state = stateCharts
		}
	}

	return m, nil
}

func (m Model) View() string {
	switch m.state {
	case statePicker:
		return m.pickerView()
	case stateLoading:
		return titleStyle.Render("System Metrics Plotter") + "\n\n" + faintStyle.Render("Querying "+m.window.Label()+"...")
	case stateError:
		return titleStyle.Render("System Metrics Plotter") + "\n\n" +
			errorStyle.Render(fmt.Sprintf("query failed: %v", m.err)) + "\n\n" +
			faintStyle.Render("esc to go back · q to quit")
	}
	return m.chartsView()
}

func (m Model) pickerView() string {
	var rows []string

	rows = append(rows, titleStyle.Render("System Metrics Plotter"), "", "Select a time window:")

	for i, w := range m.windows {
		line := "  " + w.Label()
		if i == m.cursor {
			line = selectedStyle.Render("> " + w.Label())
		}
		rows = append(rows, line)
	}

	rows = append(rows, "", faintStyle.Render("↑/↓ select · enter plot · q quit"))

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) chartsView() string {
	header := titleStyle.Render("System Metrics Plotter") + "  " + faintStyle.Render(m.window.Label())

	if len(m.samples) == 0 {
		return header + "\n\n" +
			faintStyle.Render("No samples in the selected window.") + "\n\n" +
			faintStyle.Render("esc to go back · q to quit")
	}

	chartWidth := m.chartWidth()
	chartHeight := m.chartHeight()

	cpu := make([]float64, len(m.samples))
	ram := make([]float64, len(m.samples))
	read := make([]float64, len(m.samples))
	write := make([]float64, len(m.samples))
	var gpu []float64

	for i, s := range m.samples {
		cpu[i] = s.CPUPercent
		ram[i] = s.RAMPercent
		read[i] = s.DiskReadBPS / 1024 / 1024
		write[i] = s.DiskWriteBPS / 1024 / 1024
		if s.GPUPercent != nil {
			gpu = append(gpu, *s.GPUPercent)
		}
	}

	charts := []string{
		widgets.LineChart{
			Title: "CPU Usage", Unit: "%", YMax: 100,
			Series: []widgets.Series{{Name: "CPU", Data: cpu, Color: lipgloss.Color("#22C55E")}},
			Width:  chartWidth, Height: chartHeight,
			Start: m.start, End: m.end,
		}.Render(),
		widgets.LineChart{
			Title: "GPU Usage", Unit: "%", YMax: 100,
			Series: []widgets.Series{{Name: "GPU", Data: gpu, Color: lipgloss.Color("#EF4444")}},
			Width:  chartWidth, Height: chartHeight,
			Start: m.start, End: m.end,
		}.Render(),
		widgets.LineChart{
			Title: "RAM Usage", Unit: "%", YMax: 100,
			Series: []widgets.Series{{Name: "RAM", Data: ram, Color: lipgloss.Color("#3B82F6")}},
			Width:  chartWidth, Height: chartHeight,
			Start: m.start, End: m.end,
		}.Render(),
		widgets.LineChart{
			Title: "Disk Read/Write", Unit: "MB/s",
			Series: []widgets.Series{
				{Name: "Read", Data: read, Color: lipgloss.Color("#D946EF")},
				{Name: "Write", Data: write, Color: lipgloss.Color("#06B6D4")},
			},
			Width: chartWidth, Height: chartHeight,
			Start: m.start, End: m.end,
		}.Render(),
	}

	footer := faintStyle.Render(fmt.Sprintf("%d samples · esc to go back · q to quit", len(m.samples)))

	rows := append([]string{header, ""}, charts...)
	rows = append(rows, footer)

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) chartWidth() int {
	if m.width > 80 {
		return m.width - 20
	}
	return 60
}

func (m Model) chartHeight() int {
	if m.height > 50 {
		return 8
	}
	return 5
}
