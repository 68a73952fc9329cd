package lander

import (
	"time"

	"github.com/vovakirdan/tui-lander/internal/core"
)

// Update runs one rendered frame: acknowledge input, control sampling, then
// as many fixed ticks as the elapsed time pays for.
func (g *Game) Update(elapsed time.Duration, in core.InputFrame) core.StepResult {
	return g.frame(min(elapsed.Seconds(), g.cfg.Physics.MaxFrameTime), in)
}

// Step advances exactly one fixed tick of time.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	return g.frame(g.dt, in)
}

func (g *Game) frame(seconds float64, in core.InputFrame) core.StepResult {
	if g.level == nil || g.finished {
		return core.StepResult{State: g.State()}
	}

	confirm := in.Has(core.ActionConfirm) && !g.confirmHeld
	g.confirmHeld = in.Has(core.ActionConfirm)
	pause := in.Has(core.ActionPause) && !g.pauseHeld
	g.pauseHeld = in.Has(core.ActionPause)

	if confirm && g.acknowledge() {
		if g.finished || g.level == nil {
			return core.StepResult{State: g.State()}
		}
	}
	if pause && !g.story.Paused() {
		g.userPaused = !g.userPaused
	}

	g.ship.ApplyControls(in)

	ran := 0
	switch {
	case g.story.Paused() || g.userPaused:
		g.acc = 0
	default:
		g.acc += seconds
		for g.acc >= g.dt {
			g.acc -= g.dt
			ran++
			if g.tick() {
				g.acc = 0
				break
			}
		}
	}

	g.updateThrustVolume()
	return core.StepResult{State: g.State(), Ticks: ran}
}

// acknowledge dismisses pending text and applies its consequence.
func (g *Game) acknowledge() bool {
	if !g.story.Acknowledge() {
		return false
	}

	switch {
	case !g.ship.Alive:
		g.deaths++
		g.ship.Reset(g.level.MustSpawn())
		g.logger.Info("ship respawned", "level", g.level.Number(), "deaths", g.deaths)
	case g.completing:
		g.completing = false
		g.advance()
	}
	return true
}

// tick runs one fixed step. It reports whether the rest of the frame's ticks
// must be dropped because something now needs the player's attention.
func (g *Game) tick() bool {
	g.ticks++
	res := g.ship.Tick(g.dt, g.cmap)

	if res.Died {
		g.audio.PlayCue(core.CueExplosion)
		g.logger.Info("ship destroyed",
			"level", g.level.Number(),
			"x", g.ship.Position.X,
			"y", g.ship.Position.Y,
		)
	}
	if res.GameOverDue {
		g.showText(CrashText)
		return true
	}
	if !g.ship.Alive {
		return false
	}

	ev, ok := g.story.Check(g.ship.Position)
	if !ok || !ev.HasEffect {
		return false
	}

	eff := ev.Effect
	if eff.EnableTurning {
		g.ship.TurningEnabled = true
	}
	if eff.EnableThrust {
		g.ship.ThrustEnabled = true
	}
	if eff.Complete {
		g.completing = true
		g.complete = true
		g.logger.Info("level complete",
			"level", g.level.Number(),
			"ticks", g.ticks,
			"deaths", g.deaths,
		)
	}
	switch {
	case eff.Text != "":
		g.showText(eff.Text)
	case eff.Complete:
		g.showText(CompleteText)
	}
	return true
}

func (g *Game) showText(text string) {
	g.story.Show(text)
	g.audio.PlayCue(core.CuePing)
}

func (g *Game) updateThrustVolume() {
	a := g.cfg.Audio
	v := g.ship.Thrust / g.ship.Params().ThrustAccel * a.ThrustVolume
	switch {
	case g.userPaused:
		v = 0
	case g.story.Paused():
		v *= a.PausedVolumeScale
	}
	g.audio.SetThrustVolume(v)
}
