package game

import "github.com/go-gl/mathgl/mgl32"

const (
	DefaultHealth   int32   = 10
	DefaultVelocity float32 = 1.0
)

type Player struct {
	Position mgl32.Vec3
	Health   int32
	Velocity float32
}

func NewPlayer(position mgl32.Vec3, health int32) Player {
	if health <= 0 {
		health = DefaultHealth
	}
	return Player{
		Position: position,
		Health:   health,
		Velocity: DefaultVelocity,
	}
}

func (p *Player) Alive() bool {
	return p.Health > 0
}
