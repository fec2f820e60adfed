package movement

import (
	"git.lost.host/meutraa/runbeat/internal/game"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	DefaultFactor = 0.5

	// UnitsPerSecond and OriginX place DefaultLayout nodes along the x axis.
	UnitsPerSecond = 220
	OriginX        = 50
)

// Node is a position the player passes through at a given time.
type Node struct {
	Position mgl32.Vec3
	Time     float64
}

// Layout places a beat event in the world.
type Layout func(e game.BeatEvent) mgl32.Vec3

// DefaultLayout lays beat events out along the x axis.
func DefaultLayout(e game.BeatEvent) mgl32.Vec3 {
	return mgl32.Vec3{float32(e.Time*UnitsPerSecond + OriginX), 140, 1}
}

// TimeAt is the inverse of DefaultLayout along x.
func TimeAt(x float32) float64 {
	return (float64(x) - OriginX) / UnitsPerSecond
}

func Nodes(events []game.BeatEvent, layout Layout) []Node {
	if layout == nil {
		layout = DefaultLayout
	}
	nodes := make([]Node, len(events))
	for i, e := range events {
		nodes[i] = Node{Position: layout(e), Time: e.Time}
	}
	return nodes
}

// Interpolator moves the player from the last node it reached towards the node
// of the next unconsumed beat event. Reaching a node takes Factor times the gap
// between the two node times, and the player waits there until the event is consumed.
type Interpolator struct {
	Factor float64

	last  Node
	nodes []Node
	head  int
}

func NewInterpolator(start mgl32.Vec3, nodes []Node, factor float64) *Interpolator {
	if factor <= 0 {
		factor = DefaultFactor
	}
	ns := make([]Node, len(nodes))
	copy(ns, nodes)
	return &Interpolator{
		Factor: factor,
		last:   Node{Position: start, Time: 0},
		nodes:  ns,
	}
}

// Sync drops every node whose beat event has left the queue. head is the
// current queue front, ok is false when the queue is empty.
func (m *Interpolator) Sync(head game.BeatEvent, ok bool) {
	for m.head < len(m.nodes) {
		front := m.nodes[m.head]
		if ok && front.Time == head.Time {
			return
		}
		m.last = front
		m.head++
	}
}

// Position returns where the player is at time now. It only depends on the last
// node reached, the next node and now, so calling it twice in a tick is harmless.
func (m *Interpolator) Position(now float64) mgl32.Vec3 {
	target, ok := m.Target()
	if !ok {
		return m.last.Position
	}
	return lerp(m.last.Position, target.Position, m.alpha(target, now))
}

// Update moves the player to its position at now. Once the target is reached it
// becomes the last node. It reports true when there are no nodes left to travel to.
func (m *Interpolator) Update(now float64) (mgl32.Vec3, bool) {
	target, ok := m.Target()
	if !ok {
		return m.last.Position, true
	}
	pos := m.Position(now)
	if m.alpha(target, now) >= 1 {
		m.last = target
		pos = target.Position
	}
	return pos, false
}

// Target is the node the player is moving towards.
func (m *Interpolator) Target() (Node, bool) {
	if m.head >= len(m.nodes) {
		return Node{}, false
	}
	return m.nodes[m.head], true
}

func (m *Interpolator) Last() Node {
	return m.last
}

func (m *Interpolator) Remaining() int {
	return len(m.nodes) - m.head
}

func (m *Interpolator) alpha(target Node, now float64) float64 {
	duration := (target.Time - m.last.Time) * m.Factor
	if duration <= 0 {
		return 1
	}
	a := (now - m.last.Time) / duration
	if a < 0 {
		return 0
	}
	if a > 1 {
		return 1
	}
	return a
}

func lerp(a, b mgl32.Vec3, t float64) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(float32(t)))
}
