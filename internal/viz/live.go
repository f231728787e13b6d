package viz

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/gassim/internal/config"
	"github.com/san-kum/gassim/internal/gas"
	"github.com/san-kum/gassim/internal/metrics"
)

const (
	canvasWidth     = 80
	canvasHeight    = 24
	historyCapacity = 600

	// frameInterval is the host loop cadence; the core itself is
	// cadence-unaware and just gets ticked once per frame.
	frameInterval = 40 * time.Millisecond
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(45)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Model drives the live animation: it owns the host loop cadence and
// renders position snapshots after every tick.
type Model struct {
	stepper *gas.Stepper
	params  gas.Params
	dt      float64
	seed    int64

	canvas        *Canvas
	t             float64
	running       bool
	energyHistory []float64
	showHelp      bool
}

// NewModel builds a live view over a freshly seeded simulation.
func NewModel(cfg *config.Config, seed int64) (Model, error) {
	state, err := gas.NewState(cfg.Params(), rand.New(rand.NewSource(seed)))
	if err != nil {
		return Model{}, err
	}

	return Model{
		stepper:       gas.NewStepper(state),
		params:        cfg.Params(),
		dt:            cfg.Dt,
		seed:          seed,
		canvas:        NewCanvas(canvasWidth, canvasHeight),
		running:       true,
		energyHistory: make([]float64, 0, historyCapacity),
	}, nil
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and steps the simulation once per frame.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "?":
			m.showHelp = !m.showHelp
		}
		return m, nil

	case TickMsg:
		if m.running {
			m.stepper.Tick(m.dt)
			m.t += m.dt

			energy := metrics.TotalKineticEnergy(m.stepper.Particles())
			if len(m.energyHistory) >= historyCapacity {
				m.energyHistory = m.energyHistory[1:]
			}
			m.energyHistory = append(m.energyHistory, energy)
		}
		return m, tea.Tick(frameInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
	}

	return m, nil
}

func (m *Model) reset() {
	state, err := gas.NewState(m.params, rand.New(rand.NewSource(m.seed)))
	if err != nil {
		return
	}
	m.stepper = gas.NewStepper(state)
	m.t = 0
	m.energyHistory = m.energyHistory[:0]
	m.running = true
}

func (m *Model) draw() {
	m.canvas.Clear()

	subW := float64(canvasWidth*2 - 1)
	subH := float64(canvasHeight*4 - 1)
	m.canvas.DrawBox(0, 0, int(subW), int(subH))

	width, height := m.stepper.Bounds()
	for _, p := range m.stepper.Particles() {
		x := int(p.Pos.X / width * subW)
		y := int(p.Pos.Y / height * subH)
		m.canvas.Set(x, y)
	}
}

func (m Model) View() string {
	if m.showHelp {
		return helpOverlay
	}

	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}

	var s strings.Builder
	s.WriteString(headerStyle.Render("GAS") + "\n")
	s.WriteString(status + "\n\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory,
			asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Kinetic energy"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	energy := 0.0
	if len(m.energyHistory) > 0 {
		energy = m.energyHistory[len(m.energyHistory)-1]
	}

	width, height := m.stepper.Bounds()
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.1fs", m.t)) + "\n")
	s.WriteString(labelStyle.Render("Ticks") + valueStyle.Render(fmt.Sprintf("%d", m.stepper.Ticks())) + "\n")
	s.WriteString(labelStyle.Render("Particles") + valueStyle.Render(fmt.Sprintf("%d", m.stepper.Len())) + "\n")
	s.WriteString(labelStyle.Render("Domain") + valueStyle.Render(fmt.Sprintf("%.0fx%.0f", width, height)) + "\n")
	s.WriteString(labelStyle.Render("Collisions") + valueStyle.Render(fmt.Sprintf("%d", m.stepper.LastCollisions())) + "\n")
	s.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%.1f", energy)) + "\n")

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Reset Q:Quit ?:Help"))

	statsView := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}

const helpOverlay = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume simulation  ║
║  R        - Reset (same seed)        ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
`

// RunLive starts the live terminal animation and blocks until the user
// quits.
func RunLive(cfg *config.Config, seed int64) error {
	m, err := NewModel(cfg, seed)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m)
	_, err = p.Run()
	return err
}
