package viz

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/gomega"

	"github.com/san-kum/kinesim/internal/config"
	"github.com/san-kum/kinesim/internal/geom"
	"github.com/san-kum/kinesim/internal/scene"
)

func TestCanvasSetAndLit(t *testing.T) {
	g := NewWithT(t)

	c := NewCanvas(4, 2)
	w, h := c.Pixels()
	g.Expect(w).To(Equal(8))
	g.Expect(h).To(Equal(8))

	c.Set(3, 5)
	c.Set(-1, 0)
	c.Set(100, 100)
	g.Expect(c.Lit(3, 5)).To(BeTrue())
	g.Expect(c.Lit(2, 5)).To(BeFalse())
	g.Expect(c.Grid[1][1]).To(Equal(rune(blank | 0x10)))

	c.Clear()
	g.Expect(c.Lit(3, 5)).To(BeFalse())
	g.Expect(strings.Count(c.String(), "\n")).To(Equal(2))
}

func TestDrawLine(t *testing.T) {
	g := NewWithT(t)

	c := NewCanvas(10, 5)
	c.DrawLine(0, 0, 19, 19)
	for i := 0; i < 20; i++ {
		g.Expect(c.Lit(i, i)).To(BeTrue(), "pixel %d", i)
	}

	// entirely off canvas
	c.Clear()
	c.DrawLine(-10, -10, -1, -5)
	g.Expect(c.String()).To(Equal(NewCanvas(10, 5).String()))
}

func TestViewportProject(t *testing.T) {
	g := NewWithT(t)

	c := NewCanvas(40, 20)
	vp := Viewport{Center: mgl64.Vec3{5, 3, 5}, Scale: 2}

	x, y := vp.Project(c, mgl64.Vec3{5, -40, 5})
	g.Expect(x).To(Equal(40))
	g.Expect(y).To(Equal(40))

	// north is up, east is right
	x, y = vp.Project(c, mgl64.Vec3{6, 0, 4})
	g.Expect(x).To(Equal(42))
	g.Expect(y).To(Equal(38))
}

func TestCameraProjection(t *testing.T) {
	g := NewWithT(t)

	cam := NewCamera()
	cam.Follow(mgl64.Vec3{0, 1, 0}, 0)

	x, y, ok := cam.Project(cam.RotatePoint(mgl64.Vec3{0, 1, 0}), 160, 96)
	g.Expect(ok).To(BeTrue())
	g.Expect(x).To(Equal(80))
	g.Expect(y).To(BeNumerically(">", 48))

	_, _, ok = cam.Project(cam.RotatePoint(mgl64.Vec3{0, 1, 20}), 160, 96)
	g.Expect(ok).To(BeFalse())

	// turning a quarter left puts -X straight ahead
	cam.Follow(mgl64.Vec3{}, 0.5*3.141592653589793)
	x, _, ok = cam.Project(cam.RotatePoint(mgl64.Vec3{-10, 0, 0}), 160, 96)
	g.Expect(ok).To(BeTrue())
	g.Expect(x).To(BeNumerically("~", 80, 1))
}

func TestCameraClip(t *testing.T) {
	g := NewWithT(t)

	cam := NewCamera()
	a, b, ok := cam.clip(mgl64.Vec3{0, 0, 5}, mgl64.Vec3{0, 0, -5})
	g.Expect(ok).To(BeTrue())
	g.Expect(a.Z()).To(BeNumerically("~", -cam.Near, 1e-12))
	g.Expect(b).To(Equal(mgl64.Vec3{0, 0, -5}))

	_, _, ok = cam.clip(mgl64.Vec3{0, 0, 5}, mgl64.Vec3{0, 0, 1})
	g.Expect(ok).To(BeFalse())
}

func TestMeshWireframeDedupesSharedEdges(t *testing.T) {
	g := NewWithT(t)

	a, b, c, d := mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{1, 0, 1}, mgl64.Vec3{0, 0, 1}
	w := MeshWireframe([]geom.Triangle{{A: a, B: b, C: c}, {A: a, B: c, C: d}})
	g.Expect(w.Edges).To(HaveLen(5))

	cam := NewCamera()
	canvas := NewCanvas(40, 20)
	Render3D(canvas, w, cam)
	g.Expect(canvas.String()).NotTo(Equal(NewCanvas(40, 20).String()))
}

func TestCapsuleWireframe(t *testing.T) {
	g := NewWithT(t)

	w := CapsuleWireframe(geom.NewCapsule(mgl64.Vec3{}, 1.8, 0.5))
	g.Expect(w.Edges).To(HaveLen(12*2 + 4 + 1))
}

func TestRecorder(t *testing.T) {
	g := NewWithT(t)

	path := filepath.Join(t.TempDir(), "out.gif")
	r := &Recorder{}
	g.Expect(r.Save(path)).To(Succeed())
	_, err := os.Stat(path)
	g.Expect(os.IsNotExist(err)).To(BeTrue())

	c := NewCanvas(8, 4)
	c.DrawLine(0, 0, 15, 15)
	r.Capture(c)
	r.Capture(c)
	g.Expect(r.Len()).To(Equal(2))

	g.Expect(r.Save(path)).To(Succeed())
	g.Expect(r.Len()).To(Equal(0))
	info, err := os.Stat(path)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(info.Size()).To(BeNumerically(">", 0))
}

func TestProgressBarClamps(t *testing.T) {
	g := NewWithT(t)

	g.Expect(ProgressBar(-1, 10)).To(ContainSubstring(strings.Repeat("░", 10)))
	g.Expect(ProgressBar(2, 10)).To(ContainSubstring(strings.Repeat("█", 10)))
}

// liveModel is a flat-scene model with a fake clock ticking at 60 fps.
type liveModel struct {
	m   Model
	now time.Time
}

func newLiveModel(t *testing.T) *liveModel {
	t.Helper()
	sc, ok := scene.Builtin("flat")
	if !ok {
		t.Fatal("flat scene missing")
	}
	m, err := New(config.DefaultConfig(), sc)
	if err != nil {
		t.Fatal(err)
	}
	return &liveModel{m: m, now: time.Unix(0, 0)}
}

func (l *liveModel) send(msg tea.Msg) tea.Cmd {
	next, cmd := l.m.Update(msg)
	l.m = next.(Model)
	return cmd
}

func (l *liveModel) key(k string) tea.Cmd {
	switch k {
	case " ":
		return l.send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	case "tab":
		return l.send(tea.KeyMsg{Type: tea.KeyTab})
	case "enter":
		return l.send(tea.KeyMsg{Type: tea.KeyEnter})
	}
	return l.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
}

func (l *liveModel) ticks(n int) {
	for i := 0; i < n; i++ {
		l.now = l.now.Add(time.Second / 60)
		l.send(TickMsg(l.now))
	}
}

func TestLiveWalkHoldsKeyBriefly(t *testing.T) {
	g := NewWithT(t)

	l := newLiveModel(t)
	l.ticks(120)
	g.Expect(l.m.sim.View().OnFloor).To(BeTrue())
	before := l.m.sim.View().Feet

	l.key("w")
	l.ticks(12)
	moved := l.m.sim.View().Feet.Sub(before)
	g.Expect(moved.Z()).To(BeNumerically("<", -0.3))

	// the hold has expired, so the player stops
	l.ticks(30)
	g.Expect(l.m.sim.View().Velocity.Z()).To(BeNumerically("~", 0, 1e-6))
	g.Expect(l.m.held).To(BeEmpty())
}

func TestLivePauseAndScrub(t *testing.T) {
	g := NewWithT(t)

	l := newLiveModel(t)
	l.ticks(30)
	now := l.m.sim.Now()

	l.key("p")
	l.ticks(10)
	g.Expect(l.m.sim.Now()).To(Equal(now))
	g.Expect(l.m.status()).To(Equal("PAUSED"))

	l.key("[")
	l.key("[")
	g.Expect(l.m.playHead).To(Equal(len(l.m.history) - 3))
	g.Expect(l.m.current().Time).To(BeNumerically("<", now))
	g.Expect(l.m.status()).To(HavePrefix("REPLAY PAUSED"))

	// replay runs forward to the live frame, then stepping resumes
	l.key("p")
	l.ticks(3)
	g.Expect(l.m.playHead).To(Equal(-1))
	l.ticks(1)
	g.Expect(l.m.sim.Now()).To(BeNumerically(">", now))
}

func TestLiveThrowAndTeleport(t *testing.T) {
	g := NewWithT(t)

	l := newLiveModel(t)
	l.ticks(60)

	l.key("f")
	l.ticks(30)
	g.Expect(l.m.charge()).To(BeNumerically("~", 0.5, 0.02))
	l.key("f")
	l.ticks(1)
	g.Expect(l.m.sim.Pool().Thrown()).To(Equal(1))
	g.Expect(l.m.charge()).To(BeZero())

	l.key("tab")
	g.Expect(l.m.target).To(Equal(1))
	target, _ := l.m.scene.Target(1)
	l.key("enter")
	l.ticks(1)
	g.Expect(l.m.sim.View().Feet.Sub(target).Len()).To(BeNumerically("<", 0.1))
	g.Expect(l.m.sim.View().RespawnHeight).To(Equal(target.Y()))
	g.Expect(l.m.events.lines).NotTo(BeEmpty())
}

func TestLiveViewAndQuit(t *testing.T) {
	g := NewWithT(t)

	l := newLiveModel(t)
	l.ticks(5)
	g.Expect(l.m.View()).To(ContainSubstring("KINESIM"))

	l.key("v")
	g.Expect(l.m.mode).To(Equal(chase))
	l.ticks(1)
	g.Expect(l.m.View()).To(ContainSubstring("FLAT"))

	cmd := l.key("q")
	g.Expect(cmd).NotTo(BeNil())
	g.Expect(cmd()).To(Equal(tea.Quit()))
}

func TestInteractiveFlow(t *testing.T) {
	g := NewWithT(t)

	var m tea.Model = NewInteractiveApp(nil)
	press := func(msg tea.KeyMsg) {
		m, _ = m.Update(msg)
	}
	press(tea.KeyMsg{Type: tea.KeyEnter})

	app := m.(model)
	g.Expect(app.state).To(Equal(stateConfig))
	g.Expect(app.selected).To(Equal(scene.Names()[0]))

	before, _ := app.cfg.GetParam(editable[0])
	press(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}})
	after, _ := m.(model).cfg.GetParam(editable[0])
	g.Expect(after).To(BeNumerically("~", before+0.1, 1e-9))

	press(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	g.Expect(m.(model).state).To(Equal(stateSim))
	g.Expect(m.View()).To(ContainSubstring("KINESIM"))
}

func TestSnapshotFitsScene(t *testing.T) {
	g := NewWithT(t)

	sc, _ := scene.Builtin("room")
	c := Snapshot(sc, 40, 20)
	w, h := c.Pixels()

	lit := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if c.Lit(x, y) {
				lit++
			}
		}
	}
	g.Expect(lit).To(BeNumerically(">", 50))
	// the scene is centered, so both halves are drawn
	g.Expect(c.Lit(w/2, 2) || c.Lit(w/2, 1) || c.Lit(w/2, 3)).To(BeTrue())
}
