package input

import "github.com/ByteArena/box2d"

// Spring trails a target point with a damped rigid body, giving the lens a
// slight inertia instead of hard-locking to the pointer. Pixels are used as
// world units directly.
type Spring struct {
	world     box2d.B2World
	body      *box2d.B2Body
	stiffness float64
}

// NewSpring builds a one-body world with no gravity. Stiffness is the pull
// force per pixel of separation; damping bleeds velocity so the lens settles.
func NewSpring(stiffness, damping float64) *Spring {
	s := &Spring{
		world:     box2d.MakeB2World(box2d.MakeB2Vec2(0, 0)),
		stiffness: stiffness,
	}
	def := box2d.NewB2BodyDef()
	def.Type = box2d.B2BodyType.B2_dynamicBody
	def.Awake = true
	s.body = s.world.CreateBody(def)

	shape := box2d.MakeB2PolygonShape()
	shape.SetAsBox(0.5, 0.5)
	fd := box2d.MakeB2FixtureDef()
	fd.Shape = &shape
	fd.Density = 1
	s.body.CreateFixtureFromDef(&fd)
	s.body.SetLinearDamping(damping)
	return s
}

// Step pulls the body toward the target for dt seconds and returns its new
// position.
func (s *Spring) Step(targetX, targetY, dt float64) (float64, float64) {
	pos := s.body.GetPosition()
	s.body.ApplyForceToCenter(box2d.B2Vec2{
		X: s.stiffness * (targetX - pos.X),
		Y: s.stiffness * (targetY - pos.Y),
	}, true)
	s.world.Step(dt, 8, 3)
	pos = s.body.GetPosition()
	return pos.X, pos.Y
}

// Teleport snaps the body to a position and zeroes its velocity.
func (s *Spring) Teleport(x, y float64) {
	s.body.SetTransform(box2d.B2Vec2{X: x, Y: y}, 0)
	s.body.SetLinearVelocity(box2d.B2Vec2{})
}
