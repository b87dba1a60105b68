// Package tui renders a running simulation in the terminal: a total-energy
// trace, the current thermodynamic readouts, and a progress line, updated at
// a bounded frame rate while the engine runs in the background.
package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/molsim/internal/energy"
	"github.com/san-kum/molsim/internal/sim"
)

const historyLen = 120

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

// Sample is one frame's worth of simulation readouts.
type Sample struct {
	Label       string
	Progress    float64 // 0..1
	Total       float64
	Potential   float64
	Temperature float64
	Done        bool
}

// Reporter adapts the engine's output hook into frame-rate-gated samples on
// a channel, forwarding every call to the wrapped reporter untouched.
type Reporter struct {
	inner     sim.Reporter
	ch        chan<- Sample
	frameGap  time.Duration
	lastFrame time.Time
}

// NewReporter wraps inner so the live view sees at most fps samples per
// second. inner may be nil.
func NewReporter(inner sim.Reporter, ch chan<- Sample, fps int) *Reporter {
	if inner == nil {
		inner = sim.NopReporter{}
	}
	if fps <= 0 {
		fps = 30
	}
	return &Reporter{inner: inner, ch: ch, frameGap: time.Second / time.Duration(fps)}
}

func (r *Reporter) Report(st *sim.State, res energy.Result, force bool) error {
	if force || time.Since(r.lastFrame) >= r.frameGap {
		r.lastFrame = time.Now()
		// The viewer may have quit or fallen behind; a dropped frame is
		// invisible, a blocked engine is not.
		select {
		case r.ch <- makeSample(st, res):
		default:
		}
	}
	return r.inner.Report(st, res, force)
}

func (r *Reporter) Close() error {
	close(r.ch)
	return r.inner.Close()
}

func makeSample(st *sim.State, res energy.Result) Sample {
	s := Sample{
		Total:       res.Total,
		Potential:   res.Potential,
		Temperature: res.Temperature,
	}
	switch st.Mode {
	case sim.MolecularDynamics:
		s.Label = fmt.Sprintf("%.4f / %.4f ps", st.Time, st.TotalTime)
		if st.TotalTime > 0 {
			s.Progress = st.Time / st.TotalTime
		}
	case sim.MonteCarlo:
		s.Label = fmt.Sprintf("%d / %d confs", st.Conf, st.TotalConfs)
		if st.TotalConfs > 0 {
			s.Progress = float64(st.Conf) / float64(st.TotalConfs)
		}
	}
	return s
}

type model struct {
	title   string
	ch      <-chan Sample
	latest  Sample
	history []float64
	done    bool
}

type sampleMsg Sample
type closedMsg struct{}

func waitForSample(ch <-chan Sample) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return closedMsg{}
		}
		return sampleMsg(s)
	}
}

func (m model) Init() tea.Cmd {
	return waitForSample(m.ch)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	case sampleMsg:
		m.latest = Sample(msg)
		m.history = append(m.history, m.latest.Total)
		if len(m.history) > historyLen {
			m.history = m.history[len(m.history)-historyLen:]
		}
		return m, waitForSample(m.ch)
	case closedMsg:
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m model) View() string {
	view := headerStyle.Render("molsim " + m.title)

	if len(m.history) >= 2 {
		chart := asciigraph.Plot(m.history,
			asciigraph.Height(8), asciigraph.Width(60),
			asciigraph.Caption("e_total [kcal/mol]"))
		view += "\n" + graphStyle.Render(chart)
	}

	rows := [][2]string{
		{"progress", fmt.Sprintf("%s (%.0f%%)", m.latest.Label, 100*m.latest.Progress)},
		{"e_total", fmt.Sprintf("%.5f kcal/mol", m.latest.Total)},
		{"e_pot", fmt.Sprintf("%.5f kcal/mol", m.latest.Potential)},
		{"temp", fmt.Sprintf("%.2f K", m.latest.Temperature)},
	}
	for _, r := range rows {
		view += "\n" + labelStyle.Render(r[0]) + valueStyle.Render(r[1])
	}

	view += "\n" + helpStyle.Render("q to quit")
	return view + "\n"
}

// Run drives the live view until the sample channel closes or the user
// quits. title names the run in the header.
func Run(title string, ch <-chan Sample) error {
	p := tea.NewProgram(model{title: title, ch: ch})
	_, err := p.Run()
	return err
}
