package session

import (
	"math/rand"
	"testing"
	"time"

	"git.lost.host/meutraa/runbeat/internal/game"
	"git.lost.host/meutraa/runbeat/internal/score"
	"git.lost.host/meutraa/runbeat/internal/testdata"
	"github.com/go-gl/mathgl/mgl32"
)

func beatmap(points ...game.BeatEvent) *game.Beatmap {
	return &game.Beatmap{Name: "test", BeatPoints: points}
}

func newSession(t *testing.T, b *game.Beatmap, opts Options) *Session {
	s, err := New(b, opts, nil)
	if nil != err {
		t.Fatalf("new session: %v", err)
	}
	return s
}

func TestStepScenarios(t *testing.T) {
	tests := map[string]struct {
		Event    game.BeatEvent
		Now      float64
		Presses  []game.Direction
		Expected game.Outcome
	}{
		"hit": {
			Event:    game.BeatEvent{Direction: game.Up, Time: 1.0},
			Now:      1.05,
			Presses:  []game.Direction{game.Up},
			Expected: game.Outcome{Time: 1.0, Result: game.Hit},
		},
		"late": {
			Event:    game.BeatEvent{Direction: game.Up, Time: 1.0},
			Now:      1.25,
			Expected: game.Outcome{Time: 1.0, Result: game.MissLate},
		},
		"wrong key": {
			Event:    game.BeatEvent{Direction: game.Left, Time: 1.0},
			Now:      1.0,
			Presses:  []game.Direction{game.Right},
			Expected: game.Outcome{Time: 1.0, Result: game.MissWrongKey},
		},
	}
	for name, test := range tests {
		s := newSession(t, beatmap(test.Event), Options{HitWindow: 0.2})
		s.Step(test.Now, test.Presses)

		if len(s.Result.Results) != 1 || s.Result.Results[0] != test.Expected {
			t.Errorf("%s: results %v, want %v", name, s.Result.Results, test.Expected)
		}
		if !s.Queue.IsEmpty() {
			t.Errorf("%s: queue still has %d events", name, s.Queue.Len())
		}
		if s.Status() != game.Completed || s.Result.Status != game.Completed {
			t.Errorf("%s: status %v, want completed", name, s.Status())
		}
	}
}

func TestExpiredEventCannotBeHitInTheSameTick(t *testing.T) {
	s := newSession(t, beatmap(
		game.BeatEvent{Direction: game.Up, Time: 1.0},
		game.BeatEvent{Direction: game.Down, Time: 2.0},
	), Options{HitWindow: 0.2})

	s.Step(1.3, []game.Direction{game.Up})
	if len(s.Result.Results) != 1 || s.Result.Results[0].Result != game.MissLate {
		t.Fatalf("results = %v", s.Result.Results)
	}
	// The press was too early for the event at 2.
	if s.Queue.Len() != 1 {
		t.Fatalf("queue len = %d, want 1", s.Queue.Len())
	}
}

func TestEveryBeatYieldsOneOutcome(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for round := 0; round < 20; round++ {
		points := []game.BeatEvent{}
		at := 0.5
		for i := 0; i < 30; i++ {
			at += 0.1 + rng.Float64()
			points = append(points, game.BeatEvent{Direction: game.Directions[rng.Intn(4)], Time: at})
		}
		s := newSession(t, beatmap(points...), Options{HitWindow: 0.2})

		for now := 0.0; !s.Done(); now += 1.0 / 60 {
			var presses []game.Direction
			for rng.Intn(8) == 0 {
				presses = append(presses, game.Directions[rng.Intn(4)])
			}
			s.Step(now, presses)
			if now > at+10 {
				t.Fatal("session never finished")
			}
		}
		if s.Status() != game.Completed {
			t.Fatalf("status = %v", s.Status())
		}
		if len(s.Result.Results) != len(points) {
			t.Fatalf("round %d: %d outcomes for %d beats", round, len(s.Result.Results), len(points))
		}
		for i, o := range s.Result.Results {
			if o.Time != points[i].Time {
				t.Fatalf("outcome %d judged %v, want event at %v", i, o.Time, points[i].Time)
			}
		}
	}
}

func TestPlayerFollowsNodes(t *testing.T) {
	s := newSession(t, beatmap(
		game.BeatEvent{Direction: game.Up, Time: 1.0},
		game.BeatEvent{Direction: game.Up, Time: 2.0},
	), Options{HitWindow: 0.2, InterpolationFactor: 0.5})

	s.Step(0.25, nil)
	// Half way from the origin to x=270 at time 1.
	if !s.Player.Position.ApproxEqual(mgl32.Vec3{135, 70, 0.5}) {
		t.Fatalf("position = %v", s.Player.Position)
	}
	s.Step(0.9, []game.Direction{game.Up})
	target, ok := s.Target()
	if !ok || target.Time != 2 {
		t.Fatalf("target = %v", target)
	}
	s.Step(0.9, nil)
	if !s.Player.Position.ApproxEqual(mgl32.Vec3{270, 140, 1}) {
		t.Fatalf("position after hit = %v", s.Player.Position)
	}
}

func TestStrictPenaltyFails(t *testing.T) {
	points := []game.BeatEvent{}
	for i := 1; i <= 5; i++ {
		points = append(points, game.BeatEvent{Direction: game.Left, Time: float64(i)})
	}
	s := newSession(t, beatmap(points...), Options{
		HitWindow:   0.2,
		StartHealth: 2,
		Health:      StrictPenalty,
	})

	s.Step(1.0, []game.Direction{game.Right})
	if s.Done() || s.Player.Health != 1 {
		t.Fatalf("health %d done %v", s.Player.Health, s.Done())
	}
	s.Step(2.5, nil)
	if s.Status() != game.Failed || s.Result.Status != game.Failed {
		t.Fatalf("status = %v, want failed", s.Status())
	}
	n := len(s.Result.Results)
	s.Step(10, nil)
	if len(s.Result.Results) != n || s.Status() != game.Failed {
		t.Fatal("failed session kept changing")
	}
}

func TestNoPenaltyNeverFails(t *testing.T) {
	s := newSession(t, beatmap(
		game.BeatEvent{Direction: game.Up, Time: 1},
		game.BeatEvent{Direction: game.Up, Time: 2},
	), Options{StartHealth: 1})
	s.Step(100, nil)
	if s.Status() != game.Completed || s.Player.Health != 1 {
		t.Fatalf("status %v health %d", s.Status(), s.Player.Health)
	}
}

func TestStatusMachineIsTerminal(t *testing.T) {
	var m StatusMachine
	if m.Status() != game.Running {
		t.Fatalf("initial status = %v", m.Status())
	}
	if !m.Complete() {
		t.Fatal("first completion did not transition")
	}
	if m.Complete() || m.Fail() {
		t.Fatal("terminal status transitioned again")
	}
	if m.Status() != game.Completed {
		t.Fatalf("status = %v", m.Status())
	}
}

type fakeNow struct {
	t time.Time
}

func (f *fakeNow) now() time.Time { return f.t }

func TestTickUsesClockAndPause(t *testing.T) {
	f := &fakeNow{t: time.Unix(0, 0)}
	s := newSession(t, beatmap(game.BeatEvent{Direction: game.Down, Time: 1.0}), Options{
		HitWindow: 0.2,
		Now:       f.now,
	})
	s.Start(time.Second)

	f.t = f.t.Add(1500 * time.Millisecond)
	s.Tick(nil)
	if len(s.Result.Results) != 0 {
		t.Fatalf("results before the beat: %v", s.Result.Results)
	}

	if !s.TogglePause() {
		t.Fatal("expected pause")
	}
	f.t = f.t.Add(time.Minute)
	s.Tick([]game.KeyEvent{{Key: game.KeyDown, Pressed: true}})
	if len(s.Result.Results) != 0 || s.Queue.Len() != 1 {
		t.Fatal("paused session changed")
	}
	if s.TogglePause() {
		t.Fatal("expected resume")
	}

	f.t = f.t.Add(500 * time.Millisecond)
	s.Tick([]game.KeyEvent{
		{Key: game.KeyPause, Pressed: true},
		{Key: game.KeyDown, Pressed: false},
		{Key: game.KeyDown, Pressed: true},
	})
	if len(s.Result.Results) != 1 || s.Result.Results[0].Result != game.Hit {
		t.Fatalf("results = %v", s.Result.Results)
	}
}

func TestAbort(t *testing.T) {
	s := newSession(t, beatmap(game.BeatEvent{Direction: game.Up, Time: 1}), Options{})
	s.Abort()
	s.Step(5, nil)
	if !s.Aborted() || !s.Done() || len(s.Result.Results) != 0 || s.Status() != game.Running {
		t.Fatalf("aborted session changed: %v %v", s.Result.Results, s.Status())
	}
}

func TestNewRejectsInvalidBeatmaps(t *testing.T) {
	if _, err := New(beatmap(), Options{}, nil); err != game.ErrEmptyBeatmap {
		t.Fatalf("err = %v", err)
	}
	b := beatmap(game.BeatEvent{Time: 2}, game.BeatEvent{Time: 1})
	if _, err := New(b, Options{}, nil); err != game.ErrUnsortedBeatmap {
		t.Fatalf("err = %v", err)
	}
}

func TestParseHealthPolicy(t *testing.T) {
	for _, name := range []string{"", "none", "strict"} {
		if _, err := ParseHealthPolicy(name); nil != err {
			t.Errorf("%q: %v", name, err)
		}
	}
	if _, err := ParseHealthPolicy("brutal"); nil == err {
		t.Fatal("expected an error for an unknown policy")
	}
}

func TestPerfectPlay(t *testing.T) {
	b, err := testdata.GetBeatmap()
	if nil != err {
		t.Fatalf("unable to load beatmap: %v", err)
	}
	s := newSession(t, b, Options{HitWindow: 0.2})

	next := 0
	for now := 0.0; !s.Done(); now += 0.01 {
		var presses []game.Direction
		if next < len(b.BeatPoints) && now >= b.BeatPoints[next].Time {
			presses = append(presses, b.BeatPoints[next].Direction)
			next++
		}
		s.Step(now, presses)
	}

	summary := score.Summarize(&s.Result)
	if summary.Grade != score.GradeS || summary.Score != uint32(1000*len(b.BeatPoints)) {
		t.Fatalf("summary = %+v", summary)
	}
}
