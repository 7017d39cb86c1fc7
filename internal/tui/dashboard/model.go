// Package dashboard is the collector's live view: the most recent sample
// rendered as gauges plus a short sparkline history, redrawn once per
// collection cycle.
package dashboard

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"vitals/internal/domain"
	"vitals/internal/tui/widgets"
)

// historyLen is how many samples each sparkline retains.
const historyLen = 60

type sampleMsg domain.Sample

type feedClosedMsg struct{}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	faintStyle  = lipgloss.NewStyle().Faint(true)
	labelColors = struct {
		cpu, gpu, ram, read, write lipgloss.Color
	}{
		cpu:   lipgloss.Color("#22C55E"),
		gpu:   lipgloss.Color("#EF4444"),
		ram:   lipgloss.Color("#3B82F6"),
		read:  lipgloss.Color("#D946EF"),
		write: lipgloss.Color("#06B6D4"),
	}
)

// Model is the bubbletea model for the live dashboard.
type Model struct {
	samples <-chan domain.Sample

	latest  *domain.Sample
	history struct {
		cpu, gpu, ram, read, write []float64
	}

	width  int
	height int
	ready  bool
}

func NewModel(samples <-chan domain.Sample) Model {
	return Model{samples: samples}
}

// Init starts waiting for the first sample.
func (m Model) Init() tea.Cmd {
	return m.waitForSample()
}

// waitForSample blocks on the hub subscription and converts the next
// sample into a message.
func (m Model) waitForSample() tea.Cmd {
	return func() tea.Msg {
		s, ok := <-m.samples
		if !ok {
			return feedClosedMsg{}
		}
		return sampleMsg(s)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case sampleMsg:
		s := domain.Sample(msg)
		m.latest = &s

		m.history.cpu = appendTrimmed(m.history.cpu, s.CPUPercent)
		m.history.ram = appendTrimmed(m.history.ram, s.RAMPercent)
		if s.GPUPercent != nil {
			m.history.gpu = appendTrimmed(m.history.gpu, *s.GPUPercent)
		}
		m.history.read = appendTrimmed(m.history.read, s.DiskReadBPS)
		m.history.write = appendTrimmed(m.history.write, s.DiskWriteBPS)

		return m, m.waitForSample()

	case feedClosedMsg:
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var rows []string

	rows = append(rows, titleStyle.Render("System Resource Monitor"), "")

	if m.latest == nil {
		rows = append(rows, faintStyle.Render("Waiting for first sample..."))
		return lipgloss.JoinVertical(lipgloss.Left, rows...)
	}

	s := m.latest

	rows = append(rows,
		m.gaugeRow("CPU", s.CPUPercent, false, m.history.cpu, labelColors.cpu),
		m.gaugeRow("GPU", value(s.GPUPercent), !s.HasGPU(), m.history.gpu, labelColors.gpu),
		m.gaugeRow("RAM", s.RAMPercent, false, m.history.ram, labelColors.ram),
		"",
		m.rateRow("Read", s.DiskReadBPS, m.history.read, labelColors.read),
		m.rateRow("Write", s.DiskWriteBPS, m.history.write, labelColors.write),
		"",
		faintStyle.Render(fmt.Sprintf("last sample %s  ·  q to quit", s.Timestamp.Local().Format(time.TimeOnly))),
	)

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) gaugeRow(label string, percent float64, absent bool, history []float64, color lipgloss.Color) string {
	gauge := widgets.Gauge{
		Label:      label,
		LabelWidth: 6,
		Width:      m.barWidth(),
		Percent:    percent,
		Absent:     absent,
	}

	spark := widgets.Sparkline{
		Data:  history,
		Width: historyLen,
		Min:   0,
		Max:   100,
		Color: color,
	}

	return gauge.Render() + "  " + spark.Render()
}

func (m Model) rateRow(label string, bps float64, history []float64, color lipgloss.Color) string {
	spark := widgets.Sparkline{
		Data:  history,
		Width: historyLen,
		Color: color,
	}

	return fmt.Sprintf("%-6s %12s  %s", label, formatRate(bps), spark.Render())
}

func (m Model) barWidth() int {
	if m.width >= 100 {
		return 30
	}
	return 20
}

func appendTrimmed(history []float64, v float64) []float64 {
	history = append(history, v)
	if len(history) > historyLen {
		history = history[len(history)-historyLen:]
	}
	return history
}

func value(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// formatRate renders a bytes-per-second rate with a binary unit.
func formatRate(bps float64) string {
	switch {
	case bps >= 1024*1024*1024:
		return fmt.Sprintf("%.1f GB/s", bps/1024/1024/1024)
	case bps >= 1024*1024:
		return fmt.Sprintf("%.1f MB/s", bps/1024/1024)
	case bps >= 1024:
		return fmt.Sprintf("%.1f KB/s", bps/1024)
	}
	return fmt.Sprintf("%.0f B/s", bps)
}
