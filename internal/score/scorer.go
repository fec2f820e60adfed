package score

import (
	"time"

	"git.lost.host/meutraa/runbeat/internal/game"
	"github.com/google/uuid"
)

type Scorer interface {
	Init() error
	Deinit()

	// Save the result of a finished session
	Save(beatmap *game.Beatmap, result *game.GameplayResult, rate float64) (*History, error)

	// Load previous plays of the beatmap, best first
	Load(beatmap *game.Beatmap) ([]History, error)

	Summarize(result *game.GameplayResult) Summary
}

type History struct {
	ID       uuid.UUID
	Sum      string
	Rate     float64
	Score    uint32
	Grade    Grade
	Status   game.SessionStatus
	Results  []game.Outcome
	PlayedAt time.Time
}

type Summary struct {
	Title   string
	Score   uint32
	Grade   Grade
	Comment string
	Ratio   float64
	Counts  map[game.HitResult]int
	Total   int
}

func Summarize(r *game.GameplayResult) Summary {
	s := Summary{
		Title:  "Oh no!",
		Score:  Compute(r),
		Ratio:  Ratio(r),
		Counts: make(map[game.HitResult]int, len(game.HitResults)),
		Total:  len(r.Results),
	}
	for _, h := range game.HitResults {
		s.Counts[h] = r.Count(h)
	}
	if r.Status == game.Completed {
		s.Title = "Congratulations!"
	}
	// An empty completed session gets an F rather than an error on the score screen.
	s.Grade, _ = GradeOf(r)
	s.Comment = s.Grade.Comment()
	return s
}

// Record saves a finished play and returns it with the best earlier play of
// the same chart, which is nil on a first play.
func Record(s Scorer, b *game.Beatmap, r *game.GameplayResult, rate float64) (*History, *History, error) {
	previous, err := s.Load(b)
	if nil != err {
		return nil, nil, err
	}
	saved, err := s.Save(b, r, rate)
	if nil != err {
		return nil, nil, err
	}
	var best *History
	if h, ok := Best(previous); ok {
		best = &h
	}
	return saved, best, nil
}
