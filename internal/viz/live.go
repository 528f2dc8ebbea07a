package viz

import (
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/kinesim/internal/config"
	"github.com/san-kum/kinesim/internal/control"
	"github.com/san-kum/kinesim/internal/input"
	"github.com/san-kum/kinesim/internal/pool"
	"github.com/san-kum/kinesim/internal/scene"
	"github.com/san-kum/kinesim/internal/sim"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600

	// terminals report key presses but not releases, so a press holds the
	// key for this many simulated seconds
	keyHold   = 0.2
	turnStep  = 0.1
	throwLift = 0.25
)

type viewMode int

const (
	topDown viewMode = iota
	chase
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// events keeps the last few simulation log lines for the panel.
type events struct {
	lines []string
}

func (e *events) Write(p []byte) (int, error) {
	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		e.lines = append(e.lines, line)
	}
	if len(e.lines) > 4 {
		e.lines = e.lines[len(e.lines)-4:]
	}
	return len(p), nil
}

// Model is the live view: one simulation driven by the keyboard.
type Model struct {
	sim    *sim.Simulation
	manual *control.Manual
	scene  *scene.Scene
	world  *Wireframe
	events *events

	canvas        *Canvas
	camera        *Camera
	width, height int
	mode          viewMode
	scale         float64

	running     bool
	held        map[string]float64
	charging    bool
	chargeStart float64
	target      int
	last        time.Time

	heights  []float64
	speeds   []float64
	history  []sim.View
	playHead int

	recorder  *Recorder
	recording bool
	showHelp  bool
}

// New builds a simulation for sc from cfg and wraps it in a live view.
func New(cfg *config.Config, sc *scene.Scene) (Model, error) {
	ev := &events{}
	s, err := sim.New(cfg.ToSim(sc.Spawn), sc.Index(), sim.WithLogger(log.New(ev, "", 0)))
	if err != nil {
		return Model{}, err
	}
	m := NewModel(s, sc, control.NewManual())
	m.events = ev
	return m, nil
}

func NewModel(s *sim.Simulation, sc *scene.Scene, manual *control.Manual) Model {
	return Model{
		sim:      s,
		manual:   manual,
		scene:    sc,
		world:    MeshWireframe(sc.Triangles),
		events:   &events{},
		canvas:   NewCanvas(width, height),
		camera:   NewCamera(),
		width:    width,
		height:   height,
		scale:    4,
		running:  true,
		held:     make(map[string]float64),
		heights:  make([]float64, 0, historyCapacity),
		speeds:   make([]float64, 0, historyCapacity),
		history:  make([]sim.View, 0, historyCapacity),
		playHead: -1,
		recorder: &Recorder{},
	}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg.String())
	case TickMsg:
		now := time.Time(msg)
		delta := 1.0 / 60
		if !m.last.IsZero() {
			delta = now.Sub(m.last).Seconds()
		}
		m.last = now

		if m.running {
			if m.playHead == -1 {
				m.step(delta)
			} else {
				m.playHead++
				if m.playHead >= len(m.history) {
					m.playHead = -1
				}
			}
		}
		m.draw()
		if m.recording {
			m.recorder.Capture(m.canvas)
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) hold(keys ...string) {
	until := m.sim.Now() + keyHold
	for _, k := range keys {
		m.held[k] = until
	}
}

func (m *Model) handleKey(key string) tea.Cmd {
	switch key {
	case "q", "ctrl+c":
		if m.recording {
			m.recorder.Save("kinesim.gif")
		}
		return tea.Quit
	case "w":
		m.hold(input.KeyForward)
	case "s":
		m.hold(input.KeyBack)
	case "a":
		m.hold(input.KeyLeft)
	case "d":
		m.hold(input.KeyRight)
	case "W":
		m.hold(input.KeyForward, input.KeyRun)
	case "S":
		m.hold(input.KeyBack, input.KeyRun)
	case "A":
		m.hold(input.KeyLeft, input.KeyRun)
	case "D":
		m.hold(input.KeyRight, input.KeyRun)
	case " ":
		m.hold(input.KeyJump)
	case "left", "h":
		m.manual.Turn(turnStep)
	case "right", "l":
		m.manual.Turn(-turnStep)
	case "f":
		m.throw()
	case "tab":
		if n := len(m.scene.Objects); n > 0 {
			m.target = (m.target + 1) % n
		}
	case "enter":
		if target, ok := m.scene.Target(m.target); ok {
			m.manual.QueueTeleport(target)
		}
	case "p":
		m.running = !m.running
	case "[":
		m.scrub(-1)
	case "]":
		m.scrub(1)
	case "v":
		if m.mode == topDown {
			m.mode = chase
		} else {
			m.mode = topDown
		}
	case "+", "=":
		m.scale = math.Min(32, m.scale*1.25)
		m.camera.ZoomIn()
	case "-", "_":
		m.scale = math.Max(0.25, m.scale/1.25)
		m.camera.ZoomOut()
	case "t":
		NextTheme()
	case "g":
		if m.recording {
			m.recorder.Save("kinesim.gif")
		}
		m.recording = !m.recording
	case "?":
		m.showHelp = !m.showHelp
	}
	return nil
}

// throw starts charging on the first press and releases on the second.
func (m *Model) throw() {
	now := m.sim.Now()
	if !m.charging {
		m.charging = true
		m.chargeStart = now
		return
	}
	m.charging = false
	aim := control.Forward(m.manual.Azimuth).Add(mgl64.Vec3{0, throwLift, 0})
	m.manual.QueueThrow(aim, now-m.chargeStart)
}

func (m *Model) charge() float64 {
	if !m.charging {
		return 0
	}
	return m.sim.Now() - m.chargeStart
}

// step advances the simulation by one rendered frame.
func (m *Model) step(delta float64) {
	now := m.sim.Now()
	m.manual.ReleaseAll()
	for k, until := range m.held {
		if until > now {
			m.manual.Press(k)
		} else {
			delete(m.held, k)
		}
	}

	sample := m.sim.Frame(delta, m.manual.Command(m.sim.Observation()))

	m.heights = appendCapped(m.heights, sample.Feet.Y())
	m.speeds = appendCapped(m.speeds, math.Hypot(sample.Velocity.X(), sample.Velocity.Z()))
	m.history = append(m.history, m.sim.View())
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}
}

func appendCapped(xs []float64, v float64) []float64 {
	xs = append(xs, v)
	if len(xs) > historyCapacity {
		xs = xs[1:]
	}
	return xs
}

// scrub changes the playback position in history.
func (m *Model) scrub(dir int) {
	if m.playHead == -1 {
		if len(m.history) == 0 {
			return
		}
		m.playHead = len(m.history) - 1
		m.running = false
	}
	m.playHead += dir
	if m.playHead < 0 {
		m.playHead = 0
	}
	if m.playHead >= len(m.history) {
		m.playHead = -1
	}
}

func (m *Model) current() sim.View {
	if m.playHead >= 0 && m.playHead < len(m.history) {
		return m.history[m.playHead]
	}
	return m.sim.View()
}

func (m *Model) draw() {
	v := m.current()
	m.canvas.Clear()
	switch m.mode {
	case topDown:
		m.drawTopDown(v)
	case chase:
		m.drawChase(v)
	}
}

func visible(sphere, feet mgl64.Vec3) bool {
	return sphere.Y() > pool.Hidden.Y()+1 && math.Abs(sphere.Y()-feet.Y()) < 50
}

func (m *Model) drawTopDown(v sim.View) {
	vp := Viewport{Center: v.Feet, Scale: m.scale}
	TopDown(m.canvas, m.world, vp)

	px, py := vp.Project(m.canvas, v.Feet)
	r := v.Capsule.Radius * m.scale
	m.canvas.Circle(px, py, r)
	fx, fy := vp.Project(m.canvas, v.Feet.Add(v.Facing.Mul(v.Capsule.Radius*2.5)))
	m.canvas.DrawLine(px, py, fx, fy)

	for _, c := range v.Spheres {
		if !visible(c, v.Feet) {
			continue
		}
		sx, sy := vp.Project(m.canvas, c)
		m.canvas.Circle(sx, sy, m.sim.Config().SphereRadius*m.scale)
	}
}

func (m *Model) drawChase(v sim.View) {
	m.camera.Follow(v.Capsule.Center(), m.manual.Azimuth)
	Render3D(m.canvas, m.world, m.camera)
	Render3D(m.canvas, CapsuleWireframe(v.Capsule), m.camera)

	dots := NewWireframe()
	for _, c := range v.Spheres {
		if visible(c, v.Feet) {
			dots.AddPoint(c)
		}
	}
	Render3D(m.canvas, dots, m.camera)
}

func (m Model) status() string {
	switch {
	case m.playHead != -1 && len(m.history) > 0:
		back := m.history[m.playHead].Time - m.history[len(m.history)-1].Time
		if m.running {
			return fmt.Sprintf("REPLAYING (%.1fs)", back)
		}
		return fmt.Sprintf("REPLAY PAUSED (%.1fs)", back)
	case !m.running:
		return "PAUSED"
	case m.recording:
		return fmt.Sprintf("REC %d", m.recorder.Len())
	}
	return "RUNNING"
}

// View renders the TUI interface.
func (m Model) View() string {
	v := m.current()
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(title().Render("KINESIM · "+strings.ToUpper(m.scene.Name)) + "\n")
	s.WriteString(accent().Render(m.status()) + "\n\n")

	if len(m.heights) > 1 {
		trace := m.heights
		if len(trace) > 240 {
			trace = trace[len(trace)-240:]
		}
		chart := asciigraph.Plot(trace, asciigraph.Height(5), asciigraph.Width(32), asciigraph.Caption("feet height"))
		s.WriteString(chart + "\n\n")
	}

	row := func(name, val string) {
		s.WriteString(label().Render(name) + value().Render(val) + "\n")
	}
	speed := math.Hypot(v.Velocity.X(), v.Velocity.Z())
	row("Time", fmt.Sprintf("%.2fs", v.Time))
	row("Feet", fmt.Sprintf("%.2f %.2f %.2f", v.Feet.X(), v.Feet.Y(), v.Feet.Z()))
	row("Speed", fmt.Sprintf("%.2f m/s", speed))
	row("", SparklineChart(m.speeds, 30))
	row("State", v.State.String())
	row("Animation", string(v.Animation))
	row("Jump lock", fmt.Sprintf("%t", v.Jumping))
	row("Thrown", fmt.Sprintf("%d", m.sim.Pool().Thrown()))
	row("Respawns", fmt.Sprintf("%d (y=%.1f)", v.Respawns, v.RespawnHeight))

	held := m.charge()
	impulse := pool.ThrowImpulse(held)
	row("Throw", ProgressBar((impulse-15)/30, 20)+fmt.Sprintf(" %.0f", impulse))

	if n := len(m.scene.Objects); n > 0 {
		name := m.scene.Objects[m.target].Name
		if name == "" {
			name = fmt.Sprintf("object %d", m.target)
		}
		row("Target", fmt.Sprintf("%s (%d/%d)", name, m.target+1, n))
	}

	if len(m.events.lines) > 0 {
		s.WriteString("\n" + Separator(40) + "\n")
		for _, line := range m.events.lines {
			s.WriteString(value().Render(line) + "\n")
		}
	}

	s.WriteString(hint().Render("wasd:move WASD:run space:jump h/l:turn\nf:charge/throw tab/enter:teleport v:view\np:pause [ ]:replay g:record ?:help q:quit"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, panel().Render(s.String()))
	if m.showHelp {
		return helpText + "\n\n" + mainView
	}
	return mainView
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  w a s d  - Walk (camera relative)   ║
║  W A S D  - Run                      ║
║  Space    - Jump                     ║
║  h / l    - Turn camera              ║
║  f        - Charge, then throw       ║
║  Tab      - Next teleport target     ║
║  Enter    - Teleport                 ║
║  v        - Top-down / chase view    ║
║  + / -    - Zoom                     ║
║  p        - Pause                    ║
║  [ / ]    - Replay history           ║
║  t        - Cycle themes             ║
║  g        - Toggle GIF recording     ║
║  q        - Quit                     ║
╚══════════════════════════════════════╝`

// Run starts a bubbletea program on the alternate screen.
func Run(m tea.Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
