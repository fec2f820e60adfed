package judge

import "git.lost.host/meutraa/runbeat/internal/game"

// DefaultMatcher matches presses against the queue head inside a symmetric
// window of Window seconds. A press before the window is ignored, unless
// EarlyWindow is set and the press falls within EarlyWindow seconds before
// the window opens, in which case the event is lost as MissEarly.
type DefaultMatcher struct {
	Window      float64
	EarlyWindow float64
}

func NewDefaultMatcher(window, earlyWindow float64) *DefaultMatcher {
	if window <= 0 {
		window = DefaultHitWindow
	}
	if earlyWindow < 0 {
		earlyWindow = 0
	}
	return &DefaultMatcher{Window: window, EarlyWindow: earlyWindow}
}

func (m *DefaultMatcher) Expire(queue *game.BeatQueue, now float64, onJudge func(game.Outcome)) int {
	expired := 0
	for {
		head, ok := queue.Peek()
		if !ok || head.Time+m.Window >= now {
			return expired
		}
		queue.PopFront()
		expired++
		onJudge(game.Outcome{Time: head.Time, Result: game.MissLate})
	}
}

func (m *DefaultMatcher) Apply(queue *game.BeatQueue, now float64, pressed game.Direction, onJudge func(game.Outcome)) bool {
	head, ok := queue.Peek()
	if !ok {
		return false
	}

	opens := head.Time - m.Window
	if now < opens {
		if m.EarlyWindow <= 0 || now < opens-m.EarlyWindow {
			return false
		}
		queue.PopFront()
		onJudge(game.Outcome{Time: head.Time, Result: game.MissEarly})
		return true
	}

	queue.PopFront()
	result := game.Hit
	if pressed != head.Direction {
		result = game.MissWrongKey
	}
	onJudge(game.Outcome{Time: head.Time, Result: result})
	return true
}

// Distance is how far now is from the event, negative when early.
func Distance(e game.BeatEvent, now float64) float64 {
	return now - e.Time
}
