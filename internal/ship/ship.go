// Package ship integrates the lander's rigid-body motion at a fixed tick and
// detects crashes against a solidity query.
package ship

import (
	"math"

	"github.com/vovakirdan/tui-lander/internal/core"
)

// Params holds the physics constants of the ship.
type Params struct {
	Gravity       float64 // world units / s^2, pulls toward -y
	Damping       float64 // fraction of velocity kept per second
	ThrustAccel   float64 // acceleration while the engine fires
	TurnSpeed     float64 // rad/s
	DeathDelay    float64 // seconds from crash to game-over prompt
	SampleSpacing float64 // collider edge sample spacing in world units
}

// DefaultParams returns the stock tuning.
func DefaultParams() Params {
	return Params{
		Gravity:       40,
		Damping:       0.6,
		ThrustAccel:   100,
		TurnSpeed:     3,
		DeathDelay:    1.5,
		SampleSpacing: 2,
	}
}

// InitialAngle points the nose straight up.
const InitialAngle = math.Pi / 2

// Solidity answers whether a world point is inside level rock.
type Solidity interface {
	IsSolid(p core.Vec2) bool
}

// TickResult reports state transitions that happened during one tick.
type TickResult struct {
	Died        bool // the ship crashed this tick
	GameOverDue bool // dead time just reached the prompt delay
}

// Ship is the player's lander.
type Ship struct {
	Position        core.Vec2
	Velocity        core.Vec2
	Angle           float64
	AngularVelocity float64
	Thrust          float64
	Alive           bool
	DeadTime        float64
	TurningEnabled  bool
	ThrustEnabled   bool

	params   Params
	visual   []core.Polygon
	collider []core.Polygon
}

// New creates a ship at the origin. Call Reset to place it at a spawn point.
func New(p Params, visual, collider []core.Polygon) *Ship {
	return &Ship{
		Angle:    InitialAngle,
		Alive:    true,
		params:   p,
		visual:   visual,
		collider: collider,
	}
}

// Params returns the physics constants.
func (s *Ship) Params() Params {
	return s.params
}

// ApplyControls recomputes angular velocity and thrust from held controls.
// It runs once per rendered frame, independent of how many ticks follow.
func (s *Ship) ApplyControls(in core.InputFrame) {
	s.AngularVelocity = 0
	s.Thrust = 0
	if !s.Alive {
		return
	}

	if s.TurningEnabled {
		if in.Has(core.ActionTurnLeft) {
			s.AngularVelocity += s.params.TurnSpeed
		}
		if in.Has(core.ActionTurnRight) {
			s.AngularVelocity -= s.params.TurnSpeed
		}
	}
	if s.ThrustEnabled && in.Has(core.ActionThrust) {
		s.Thrust = s.params.ThrustAccel
	}
}

// Tick advances the ship by dt seconds.
func (s *Ship) Tick(dt float64, solid Solidity) TickResult {
	if !s.Alive {
		before := s.DeadTime
		s.DeadTime += dt
		return TickResult{
			GameOverDue: before < s.params.DeathDelay && s.DeadTime >= s.params.DeathDelay,
		}
	}

	s.Angle = core.WrapAngle(s.Angle + s.AngularVelocity*dt)
	s.Velocity = s.Velocity.Scale(math.Pow(s.params.Damping, dt))

	sin, cos := math.Sincos(s.Angle)
	accel := core.V(s.Thrust*cos, s.Thrust*sin-s.params.Gravity)
	s.Velocity = s.Velocity.Add(accel.Scale(dt))
	s.Position = s.Position.Add(s.Velocity.Scale(dt))

	if solid != nil && s.collides(solid) {
		s.kill()
		// With no delay the prompt is due on the crash tick itself.
		return TickResult{Died: true, GameOverDue: s.params.DeathDelay <= 0}
	}
	return TickResult{}
}

func (s *Ship) collides(solid Solidity) bool {
	for _, p := range s.ColliderSamples() {
		if solid.IsSolid(p) {
			return true
		}
	}
	return false
}

func (s *Ship) kill() {
	s.Alive = false
	s.DeadTime = 0
	s.AngularVelocity = 0
	s.Thrust = 0
}

// GameOver reports whether the crash prompt should be visible.
func (s *Ship) GameOver() bool {
	return !s.Alive && s.DeadTime >= s.params.DeathDelay
}

// Reset puts the ship back at spawn, alive and at rest.
// Capability flags are left alone; level loads clear them explicitly.
func (s *Ship) Reset(spawn core.Vec2) {
	s.Position = spawn
	s.Velocity = core.Vec2{}
	s.Angle = InitialAngle
	s.AngularVelocity = 0
	s.Thrust = 0
	s.Alive = true
	s.DeadTime = 0
}

// DisableControls clears both capability flags.
func (s *Ship) DisableControls() {
	s.TurningEnabled = false
	s.ThrustEnabled = false
}

// ColliderSamples returns the world-space points tested against the map:
// every collider vertex plus points along each edge at most SampleSpacing apart.
func (s *Ship) ColliderSamples() []core.Vec2 {
	spacing := s.params.SampleSpacing
	var out []core.Vec2
	for _, poly := range s.collider {
		world := poly.Transform(s.Position, s.Angle)
		for i, a := range world {
			b := world[(i+1)%len(world)]
			out = append(out, a)
			if spacing <= 0 {
				continue
			}
			edge := b.Sub(a)
			n := int(math.Ceil(edge.Len() / spacing))
			for k := 1; k < n; k++ {
				out = append(out, a.Add(edge.Scale(float64(k)/float64(n))))
			}
		}
	}
	return out
}

// WorldVisual returns the visual mesh at the current pose.
func (s *Ship) WorldVisual() []core.Polygon {
	out := make([]core.Polygon, len(s.visual))
	for i, poly := range s.visual {
		out[i] = poly.Transform(s.Position, s.Angle)
	}
	return out
}

// WorldCollider returns the collider mesh at the current pose.
func (s *Ship) WorldCollider() []core.Polygon {
	out := make([]core.Polygon, len(s.collider))
	for i, poly := range s.collider {
		out[i] = poly.Transform(s.Position, s.Angle)
	}
	return out
}

// Snapshot is a plain copy of the ship's dynamic state.
type Snapshot struct {
	X, Y            float64
	VX, VY          float64
	Angle           float64
	AngularVelocity float64
	Thrust          float64
	Alive           bool
	DeadTime        float64
	TurningEnabled  bool
	ThrustEnabled   bool
}

// Snapshot returns the current dynamic state.
func (s *Ship) Snapshot() Snapshot {
	return Snapshot{
		X:               s.Position.X,
		Y:               s.Position.Y,
		VX:              s.Velocity.X,
		VY:              s.Velocity.Y,
		Angle:           s.Angle,
		AngularVelocity: s.AngularVelocity,
		Thrust:          s.Thrust,
		Alive:           s.Alive,
		DeadTime:        s.DeadTime,
		TurningEnabled:  s.TurningEnabled,
		ThrustEnabled:   s.ThrustEnabled,
	}
}
