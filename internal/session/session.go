package session

import (
	"time"

	"git.lost.host/meutraa/runbeat/internal/game"
	"git.lost.host/meutraa/runbeat/internal/judge"
	"git.lost.host/meutraa/runbeat/internal/movement"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StartDelay is the time between starting a session and its first second.
const StartDelay = 3 * time.Second

type Options struct {
	HitWindow           float64
	EarlyWindow         float64
	InterpolationFactor float64
	StartHealth         int32
	StartPosition       mgl32.Vec3
	Health              HealthPolicy
	Layout              movement.Layout
	Now                 func() time.Time
}

// Session owns everything that changes while a beatmap is played.
type Session struct {
	ID      uuid.UUID
	Beatmap *game.Beatmap
	Queue   *game.BeatQueue
	Clock   *game.Clock
	Player  game.Player
	Result  game.GameplayResult

	matcher judge.Matcher
	mover   *movement.Interpolator
	status  StatusMachine
	health  HealthPolicy
	aborted bool
	ticks   uint64
	log     *zap.Logger
}

func New(b *game.Beatmap, opts Options, log *zap.Logger) (*Session, error) {
	if err := game.Validate(b.BeatPoints); nil != err {
		return nil, err
	}
	if nil == log {
		log = zap.NewNop()
	}
	health := opts.Health
	if nil == health {
		health = NoPenalty
	}

	id := uuid.New()
	s := &Session{
		ID:      id,
		Beatmap: b,
		Queue:   game.NewBeatQueue(b.BeatPoints),
		Clock:   game.NewClock(opts.Now),
		Player:  game.NewPlayer(opts.StartPosition, opts.StartHealth),
		matcher: judge.NewDefaultMatcher(opts.HitWindow, opts.EarlyWindow),
		mover: movement.NewInterpolator(
			opts.StartPosition,
			movement.Nodes(b.BeatPoints, opts.Layout),
			opts.InterpolationFactor,
		),
		health: health,
		log:    log.With(zap.String("session", id.String()), zap.String("beatmap", b.Name)),
	}
	s.Result.Results = make([]game.Outcome, 0, len(b.BeatPoints))
	return s, nil
}

// Start begins the session clock after delay.
func (s *Session) Start(delay time.Duration) {
	s.Clock.Start(delay)
	s.log.Info("session started",
		zap.Int("beats", s.Queue.Len()),
		zap.Duration("delay", delay),
	)
}

// Tick advances the clock and runs one step with the key events received since
// the last tick. A paused or finished session ignores the tick.
func (s *Session) Tick(events []game.KeyEvent) {
	if s.Done() || s.Clock.Paused() {
		return
	}
	s.Step(s.Clock.Advance(), game.Presses(events))
}

// Step runs the pipeline for one tick at relative time now: expire late events,
// judge the presses in arrival order, move the player, then check the status.
func (s *Session) Step(now float64, presses []game.Direction) {
	if s.Done() {
		return
	}
	s.ticks++

	s.matcher.Expire(s.Queue, now, s.judged)
	for _, d := range presses {
		s.matcher.Apply(s.Queue, now, d, s.judged)
	}

	s.mover.Sync(s.Queue.Peek())
	pos, finished := s.mover.Update(now)
	s.Player.Position = pos

	if !s.Player.Alive() {
		if s.status.Fail() {
			s.finish()
		}
		return
	}
	if finished && s.status.Complete() {
		s.finish()
	}
}

func (s *Session) judged(o game.Outcome) {
	s.Result.Record(o)
	if delta := s.health(o.Result); delta != 0 {
		s.Player.Health += delta
	}
	s.log.Debug("judged",
		zap.Float64("time", o.Time),
		zap.Stringer("result", o.Result),
		zap.Int32("health", s.Player.Health),
	)
}

func (s *Session) finish() {
	s.Result.Status = s.status.Status()
	s.log.Info("session finished",
		zap.Stringer("status", s.Result.Status),
		zap.Int("results", len(s.Result.Results)),
		zap.Uint64("ticks", s.ticks),
	)
}

// TogglePause pauses a running session or resumes a paused one.
func (s *Session) TogglePause() bool {
	if s.Clock.Paused() {
		s.Clock.Resume()
		s.log.Info("session resumed")
		return false
	}
	s.Clock.Pause()
	s.log.Info("session paused", zap.Float64("at", s.Clock.Relative()))
	return true
}

func (s *Session) Paused() bool {
	return s.Clock.Paused()
}

// Abort ends the session without a result.
func (s *Session) Abort() {
	if s.Done() {
		return
	}
	s.aborted = true
	s.log.Info("session aborted", zap.Int("results", len(s.Result.Results)))
}

func (s *Session) Aborted() bool {
	return s.aborted
}

func (s *Session) Status() game.SessionStatus {
	return s.status.Status()
}

// Done reports whether the session will not change anymore.
func (s *Session) Done() bool {
	return s.aborted || s.status.Status().Terminal()
}

// Target is the node the player is heading to.
func (s *Session) Target() (movement.Node, bool) {
	return s.mover.Target()
}
