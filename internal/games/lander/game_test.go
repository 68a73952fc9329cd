package lander

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-lander/internal/config"
	"github.com/vovakirdan/tui-lander/internal/core"
	"github.com/vovakirdan/tui-lander/internal/level"
)

// fakeSource serves levels from memory.
type fakeSource map[int]*level.Level

func (f fakeSource) LoadByNumber(n int) (*level.Level, error) {
	lvl, ok := f[n]
	if !ok {
		return nil, fmt.Errorf("%w: level %d", level.ErrNotFound, n)
	}
	return lvl, nil
}

// recordingAudio remembers every cue and the last thrust volume.
type recordingAudio struct {
	cues   []core.Cue
	volume float64
}

func (r *recordingAudio) PlayCue(c core.Cue)        { r.cues = append(r.cues, c) }
func (r *recordingAudio) SetThrustVolume(v float64) { r.volume = v }

func (r *recordingAudio) count(c core.Cue) int {
	n := 0
	for _, got := range r.cues {
		if got == c {
			n++
		}
	}
	return n
}

func rect(minX, minY, maxX, maxY float64) core.Polygon {
	return core.Polygon{core.V(minX, minY), core.V(maxX, minY), core.V(maxX, maxY), core.V(minX, maxY)}
}

func trig(id uint32, minX, minY, maxX, maxY float64) level.Trigger {
	return level.Trigger{ID: id, MinX: minX, MaxX: maxX, MinY: minY, MaxY: maxY}
}

func mustLevel(t *testing.T, n int, polys []core.Polygon, triggers []level.Trigger) *level.Level {
	t.Helper()
	lvl, err := level.New(n, fmt.Sprintf("test %d", n), polys, triggers)
	if err != nil {
		t.Fatalf("level.New failed: %v", err)
	}
	return lvl
}

func testSource(t *testing.T) fakeSource {
	floor := rect(-128, -128, 128, -60)
	return fakeSource{
		1: mustLevel(t, 1, []core.Polygon{floor}, []level.Trigger{
			trig(0, -5, 45, 5, 55),
			trig(1, -20, 30, 20, 60),
			trig(2, -20, -40, 20, -20), // no story entry
			trig(3, 100, 100, 120, 120),
		}),
		2: mustLevel(t, 2, []core.Polygon{floor}, []level.Trigger{
			trig(0, -5, 45, 5, 55),
			trig(1, -120, 100, -100, 120),
		}),
	}
}

func testConfig() config.LanderConfig {
	cfg := config.DefaultLanderConfig()
	cfg.Collision.Width = 256
	cfg.Collision.Height = 256
	cfg.Collision.Extents = core.Extents{Left: -128, Bottom: -128, Width: 256, Height: 256}
	cfg.Story = config.StoryConfig{Levels: []config.StoryLevel{
		{Level: 1, Triggers: []config.StoryTrigger{
			{ID: 1, Text: "Engine", EnableThrust: true},
			{ID: 3, Text: "Done", Complete: true},
		}},
		{Level: 2, Triggers: []config.StoryTrigger{
			{ID: 1, Complete: true},
		}},
	}}
	return cfg
}

func newGame(t *testing.T, start int) (*Game, *recordingAudio) {
	t.Helper()
	audio := &recordingAudio{}
	g, err := New(testConfig(), testSource(t), WithAudio(audio))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := g.Load(start); err != nil {
		t.Fatalf("Load(%d) failed: %v", start, err)
	}
	return g, audio
}

var (
	idle    = core.NewInputFrame()
	confirm = core.NewInputFrame(core.ActionConfirm)
	thrust  = core.NewInputFrame(core.ActionThrust)
)

// ack presses and releases Enter.
func ack(g *Game) {
	g.Step(confirm)
	g.Step(idle)
}

func TestLoadLocksControls(t *testing.T) {
	g, _ := newGame(t, 1)

	s := g.Ship()
	if s.Position != core.V(0, 50) {
		t.Errorf("spawn = %v, expected (0, 50)", s.Position)
	}
	if s.TurningEnabled || s.ThrustEnabled {
		t.Error("capabilities should start locked")
	}
	if g.Story().FiredCount() != 0 {
		t.Errorf("FiredCount() = %d, expected 0", g.Story().FiredCount())
	}
	if g.CollisionMap().Count() == 0 {
		t.Error("collision map should contain the floor")
	}
}

func TestLoadErrors(t *testing.T) {
	g, err := New(testConfig(), fakeSource{
		5: mustLevel(t, 5, nil, []level.Trigger{trig(1, 0, 0, 1, 1)}),
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if err := g.Load(4); !errors.Is(err, level.ErrNotFound) {
		t.Errorf("Load(4) error = %v, expected ErrNotFound", err)
	}
	if err := g.Load(5); !errors.Is(err, level.ErrNoSpawn) {
		t.Errorf("Load(5) error = %v, expected ErrNoSpawn", err)
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Collision.Threshold = 0
	if _, err := New(cfg, testSource(t)); err == nil {
		t.Error("New() should reject an invalid config")
	}
}

func TestFirstTicksFireSpawnThenStory(t *testing.T) {
	g, audio := newGame(t, 1)

	res := g.Step(idle)
	if res.Ticks != 1 {
		t.Fatalf("Ticks = %d, expected 1", res.Ticks)
	}
	if !g.Story().Fired(0) || res.State.Message != "" {
		t.Fatalf("tick 1: spawn fired = %v, message = %q", g.Story().Fired(0), res.State.Message)
	}

	res = g.Step(idle)
	if res.State.Message != "Engine" {
		t.Errorf("Message = %q, expected %q", res.State.Message, "Engine")
	}
	if !g.Ship().ThrustEnabled || g.Ship().TurningEnabled {
		t.Error("trigger 1 should enable thrust only")
	}
	if audio.count(core.CuePing) != 1 {
		t.Errorf("ping cues = %d, expected 1", audio.count(core.CuePing))
	}
}

func TestPendingTextFreezesPhysics(t *testing.T) {
	g, _ := newGame(t, 1)
	g.Step(idle)
	g.Step(idle)

	before := g.Ship().Snapshot()
	for range 30 {
		if res := g.Update(20*time.Millisecond, thrust); res.Ticks != 0 {
			t.Fatalf("Ticks = %d while text is pending", res.Ticks)
		}
	}
	// Thrust is still sampled, but the ship must not move.
	after := g.Ship().Snapshot()
	if after.X != before.X || after.Y != before.Y || after.VX != before.VX || after.VY != before.VY {
		t.Errorf("ship moved while paused: %+v -> %+v", before, after)
	}
	if after.Thrust == 0 {
		t.Error("controls should still be sampled while paused")
	}

	ack(g)
	if g.State().Message != "" {
		t.Errorf("Message = %q after acknowledge", g.State().Message)
	}
	if g.Ship().Position == core.V(before.X, before.Y) {
		t.Error("ship should move again after acknowledge")
	}
}

func TestTriggerHitAbortsFrame(t *testing.T) {
	g, _ := newGame(t, 1)

	// Enough time for many ticks; the story trigger on tick 2 stops the frame.
	res := g.Update(200*time.Millisecond, idle)
	if res.Ticks != 2 {
		t.Errorf("Ticks = %d, expected 2", res.Ticks)
	}
	if res.State.Message != "Engine" {
		t.Errorf("Message = %q, expected %q", res.State.Message, "Engine")
	}
}

func TestAccumulator(t *testing.T) {
	g, _ := newGame(t, 2)

	if res := g.Update(55*time.Millisecond, idle); res.Ticks != 3 {
		t.Errorf("55ms: Ticks = %d, expected 3", res.Ticks)
	}
	// Capped at MaxFrameTime: 0.25s plus the 5ms carried over.
	if res := g.Update(time.Second, idle); res.Ticks != 15 {
		t.Errorf("1s: Ticks = %d, expected 15", res.Ticks)
	}
	if res := g.Update(5*time.Millisecond, idle); res.Ticks != 0 {
		t.Errorf("5ms: Ticks = %d, expected 0", res.Ticks)
	}
}

func TestUserPause(t *testing.T) {
	g, _ := newGame(t, 2)
	pause := core.NewInputFrame(core.ActionPause)

	g.Step(pause)
	if !g.State().Paused {
		t.Fatal("game should be paused")
	}
	// Holding P does not toggle again.
	if res := g.Step(pause); res.Ticks != 0 || !res.State.Paused {
		t.Errorf("held pause: Ticks = %d, Paused = %v", res.Ticks, res.State.Paused)
	}
	g.Step(idle)
	g.Step(pause)
	if res := g.Step(idle); res.Ticks != 1 {
		t.Errorf("after unpause Ticks = %d, expected 1", res.Ticks)
	}
}

// fallToDeath steps until the ship crashes, acknowledging any text on the way.
func fallToDeath(t *testing.T, g *Game) []string {
	t.Helper()
	var seen []string
	for range 5000 {
		if !g.Ship().Alive {
			return seen
		}
		if msg := g.State().Message; msg != "" {
			seen = append(seen, msg)
			ack(g)
			continue
		}
		g.Step(idle)
	}
	t.Fatal("ship never crashed")
	return nil
}

func TestDeadAcknowledgeRespawnsAndKeepsFiredTriggers(t *testing.T) {
	g, audio := newGame(t, 1)

	seen := fallToDeath(t, g)
	if len(seen) != 2 || seen[0] != "Engine" || seen[1] != "BUG: no story for trigger 2 on level 1" {
		t.Errorf("messages on the way down = %q", seen)
	}
	if audio.count(core.CueExplosion) != 1 {
		t.Errorf("explosion cues = %d, expected 1", audio.count(core.CueExplosion))
	}

	// The crash prompt appears only after the delay.
	if g.State().Message != "" {
		t.Fatalf("crash prompt shown immediately: %q", g.State().Message)
	}
	wreck := g.Ship().Position
	for range 200 {
		if g.State().Message != "" {
			break
		}
		g.Step(thrust)
	}
	if g.State().Message != CrashText {
		t.Fatalf("Message = %q, expected crash prompt", g.State().Message)
	}
	if g.Ship().Position != wreck {
		t.Error("wreck moved while dead")
	}

	firedBefore := g.Story().FiredIDs()
	ack(g)

	s := g.Ship()
	if !s.Alive || s.Position.Sub(core.V(0, 50)).Len() > 1 || s.Velocity.Len() > 2 {
		t.Errorf("after respawn: alive=%v pos=%v vel=%v", s.Alive, s.Position, s.Velocity)
	}
	if !s.ThrustEnabled {
		t.Error("thrust capability should survive respawn")
	}
	if g.State().Deaths != 1 {
		t.Errorf("Deaths = %d, expected 1", g.State().Deaths)
	}
	firedAfter := g.Story().FiredIDs()
	if len(firedAfter) != len(firedBefore) || len(firedAfter) != 3 {
		t.Errorf("fired triggers = %v, expected %v", firedAfter, firedBefore)
	}

	// Sitting in the already-fired chamber does not fire it again.
	for range 3 {
		g.Step(idle)
	}
	if g.State().Message != "" {
		t.Errorf("Message = %q, expected no re-fire", g.State().Message)
	}
}

func TestZeroDeathDelayPromptsAndRespawns(t *testing.T) {
	cfg := testConfig()
	cfg.Physics.DeathDelay = 0
	g, err := New(cfg, testSource(t))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := g.Load(1); err != nil {
		t.Fatalf("Load(1) failed: %v", err)
	}

	fallToDeath(t, g)
	if g.State().Message != CrashText {
		t.Fatalf("Message = %q, expected crash prompt on the crash tick", g.State().Message)
	}

	ack(g)
	if !g.Ship().Alive {
		t.Error("Alive = false after acknowledging the crash prompt")
	}
	if g.State().Deaths != 1 {
		t.Errorf("Deaths = %d, expected 1", g.State().Deaths)
	}
}

func TestLevelCompleteAdvancesAndFinishes(t *testing.T) {
	g, _ := newGame(t, 1)

	g.Ship().Position = core.V(110, 110)
	res := g.Step(idle)
	if !res.State.LevelComplete || res.State.Message != "Done" {
		t.Fatalf("State = %+v, expected level complete prompt", res.State)
	}

	ack(g)
	st := g.State()
	if st.Level != 2 || st.LevelComplete || st.Deaths != 0 {
		t.Errorf("after advance: %+v", st)
	}
	if g.Ship().ThrustEnabled {
		t.Error("capabilities should reset on level load")
	}

	g.Ship().Position = core.V(-110, 110)
	res = g.Step(idle)
	if res.State.Message != CompleteText {
		t.Errorf("Message = %q, expected %q", res.State.Message, CompleteText)
	}

	ack(g)
	if !g.State().Finished {
		t.Error("game should be finished after the last level")
	}
	if g.Err() != nil {
		t.Errorf("Err() = %v, expected nil", g.Err())
	}
	if res := g.Step(idle); res.Ticks != 0 {
		t.Errorf("finished game ran %d ticks", res.Ticks)
	}
}

func TestThrustVolume(t *testing.T) {
	g, audio := newGame(t, 1)
	g.Step(idle)
	g.Step(idle) // "Engine" pending, thrust unlocked

	g.Step(thrust)
	if want := 0.6 * 0.25; !almost(audio.volume, want) {
		t.Errorf("paused volume = %v, expected %v", audio.volume, want)
	}

	g.Step(core.NewInputFrame(core.ActionConfirm, core.ActionThrust))
	if !almost(audio.volume, 0.6) {
		t.Errorf("volume = %v, expected 0.6", audio.volume)
	}

	g.Step(idle)
	if audio.volume != 0 {
		t.Errorf("idle volume = %v, expected 0", audio.volume)
	}
}

func almost(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}

func TestDeterminism(t *testing.T) {
	script := func(i int) core.InputFrame {
		switch {
		case i%90 == 5:
			return confirm
		case i%7 < 3:
			return thrust
		default:
			return idle
		}
	}

	run := func(frames int, alt bool) uint64 {
		g, _ := newGame(t, 1)
		for i := range frames {
			in := script(i)
			if alt && i == 100 {
				in = idle
			}
			g.Update(time.Duration(10+i%13)*time.Millisecond, in)
		}
		snap := g.Snapshot()
		return snap.Hash()
	}

	a, b := run(400, false), run(400, false)
	if a != b {
		t.Errorf("same inputs produced different hashes: %x vs %x", a, b)
	}
	if c := run(400, true); c == a {
		t.Error("different inputs produced the same hash")
	}
}

func TestDrawListAndCamera(t *testing.T) {
	g, _ := newGame(t, 1)
	g.Ship().Position = core.V(0, 0)

	list, cam := g.DrawList(2)
	if !almost(cam.Height(), g.cfg.Camera.ViewHeight) || !almost(cam.Width(), 2*g.cfg.Camera.ViewHeight) {
		t.Errorf("camera = %+v", cam)
	}
	if cam.Center() != g.Ship().Position {
		t.Errorf("camera center = %v, expected ship %v", cam.Center(), g.Ship().Position)
	}

	var fills, strokes, points int
	for _, item := range list {
		switch item.Kind {
		case core.DrawFill:
			fills++
		case core.DrawStroke:
			strokes++
		case core.DrawPoints:
			points++
		}
	}
	if fills != 1 || strokes != 3 || points != 0 {
		t.Errorf("fills=%d strokes=%d points=%d, expected 1 3 0", fills, strokes, points)
	}

	g.cfg.Camera.Debug = true
	list, _ = g.DrawList(2)
	if list[len(list)-1].Kind != core.DrawPoints {
		t.Error("debug mode should append collider samples")
	}
	outlines := 0
	for _, item := range list {
		if item.Kind == core.DrawStroke && item.Color == ColliderColor {
			outlines++
		}
	}
	if want := len(g.Ship().WorldCollider()); outlines != want || want == 0 {
		t.Errorf("collider outlines = %d, expected %d", outlines, want)
	}
}

func TestRender(t *testing.T) {
	g, _ := newGame(t, 1)
	g.cfg.Camera.ViewHeight = 300 // tall enough to see the floor from spawn
	screen := core.NewScreen(80, 24)

	g.Render(screen)
	if !strings.Contains(screen.Row(0), "Level 1") || !strings.Contains(screen.Row(0), "beacons 0/4") {
		t.Errorf("HUD = %q", screen.Row(0))
	}
	if !strings.Contains(screen.String(), string(ShipChar)) {
		t.Error("ship not drawn")
	}
	if !strings.Contains(screen.String(), string(RockChar)) {
		t.Error("floor not drawn")
	}

	g.Step(idle)
	g.Step(idle)
	screen.Clear()
	g.Render(screen)
	if !strings.Contains(screen.String(), "Engine") {
		t.Error("pending message not drawn")
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  []string
	}{
		{"", 10, []string{""}},
		{"short", 10, []string{"short"}},
		{"one two three", 7, []string{"one two", "three"}},
		{"abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
	}

	for _, tc := range tests {
		got := wrap(tc.text, tc.width)
		if strings.Join(got, "|") != strings.Join(tc.want, "|") {
			t.Errorf("wrap(%q, %d) = %q, expected %q", tc.text, tc.width, got, tc.want)
		}
	}
}
