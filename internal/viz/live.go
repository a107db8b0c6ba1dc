package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ambientai/feen-go/internal/ailee"
	"github.com/ambientai/feen-go/internal/resonator"
)

const historyCapacity = 600

type TickMsg time.Time

// Model is the live terminal view of one driven resonator: it steps the
// physics at the frame rate and shows displacement/energy history plus the
// running Δv.
type Model struct {
	cfg     resonator.Config
	exc     resonator.Excitation
	state   resonator.State
	initial resonator.State
	metric  *ailee.Metric
	dt      float64
	t       float64
	running bool
	err     error

	xHistory      []float64
	energyHistory []float64
}

// NewModel seeds a live view from a run configuration.
func NewModel(cfg resonator.Config, exc resonator.Excitation, init resonator.State, params ailee.Params, dt float64) Model {
	return Model{
		cfg:           cfg,
		exc:           exc,
		state:         init,
		initial:       init,
		metric:        ailee.NewMetric(params),
		dt:            dt,
		running:       true,
		xHistory:      make([]float64, 0, historyCapacity),
		energyHistory: make([]float64, 0, historyCapacity),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.state = m.initial
			m.t = 0
			m.metric.Reset()
			m.xHistory = m.xHistory[:0]
			m.energyHistory = m.energyHistory[:0]
			m.err = nil
		case "+", "=":
			m.exc.Amplitude *= 1.05
		case "-", "_":
			m.exc.Amplitude *= 0.95
		}
	case TickMsg:
		if m.running && m.err == nil {
			m.step()
		}
		return m, tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) step() {
	next, err := resonator.Simulate(m.cfg, m.state, m.exc, m.dt, 1)
	if err != nil {
		m.err = err
		m.running = false
		return
	}

	m.metric.Integrate(ailee.NewSample(
		m.exc.Amplitude*m.exc.Amplitude,
		math.Abs(m.exc.FrequencyHz-m.cfg.FrequencyHz),
		math.Abs(next.V),
		1.0,
		m.dt,
	))

	m.state = next
	m.t += m.dt

	m.xHistory = appendBounded(m.xHistory, next.X)
	m.energyHistory = appendBounded(m.energyHistory, next.Energy)
}

func (m Model) View() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render("FEEN RESONATOR") + "\n")

	status := "RUNNING"
	if m.err != nil {
		status = "FAILED: " + m.err.Error()
	} else if !m.running {
		status = "PAUSED"
	}
	s.WriteString(status + "\n")

	if chart := Plot(m.xHistory, "Displacement", 60, 8); chart != "" {
		s.WriteString(chart + "\n")
	}
	if chart := Plot(m.energyHistory, "Energy", 60, 4); chart != "" {
		s.WriteString(chart + "\n")
	}

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.t)) + "\n")
	s.WriteString(labelStyle.Render("x") + valueStyle.Render(fmt.Sprintf("%+.4f", m.state.X)) + "\n")
	s.WriteString(labelStyle.Render("v") + valueStyle.Render(fmt.Sprintf("%+.4f", m.state.V)) + "\n")
	s.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%.4f", m.state.Energy)) + "\n")
	s.WriteString(labelStyle.Render("Phase") + valueStyle.Render(fmt.Sprintf("%.3f", m.state.Phase)) + "\n")
	s.WriteString(labelStyle.Render("Drive amp") + valueStyle.Render(fmt.Sprintf("%.3f", m.exc.Amplitude)) + "\n")
	s.WriteString(labelStyle.Render("Δv") + valueStyle.Render(fmt.Sprintf("%.6f", m.metric.DeltaV())) + "\n")

	s.WriteString(helpStyle.Render("SP:Pause R:Reset +/-:Drive Q:Quit"))
	return s.String()
}

func appendBounded(hist []float64, v float64) []float64 {
	if len(hist) >= historyCapacity {
		hist = hist[1:]
	}
	return append(hist, v)
}
