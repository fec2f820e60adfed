package judge

import "git.lost.host/meutraa/runbeat/internal/game"

const DefaultHitWindow = 0.2

// Matcher decides what happens to the beat queue as time passes and keys are pressed.
// Every event it pops is reported to onJudge exactly once.
type Matcher interface {
	// Expire pops every event whose window closed before now.
	Expire(queue *game.BeatQueue, now float64, onJudge func(game.Outcome)) int

	// Apply judges one directional press against the queue head.
	Apply(queue *game.BeatQueue, now float64, pressed game.Direction, onJudge func(game.Outcome)) bool
}
