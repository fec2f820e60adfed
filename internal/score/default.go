package score

import (
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"time"

	"git.lost.host/meutraa/runbeat/internal/game"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

type DefaultScorer struct {
	Path string
	Log  *zap.Logger

	db *sql.DB
}

// ResultsCompact groups the outcome times of one result kind. Order holds the
// position of each outcome in the session, parallel to Times.
type ResultsCompact struct {
	Result game.HitResult
	Times  []float64
	Order  []int `json:",omitempty"`
}

func compactResults(results []game.Outcome) []ResultsCompact {
	kinds := 0
	for _, o := range results {
		if int(o.Result) >= kinds {
			kinds = int(o.Result) + 1
		}
	}
	rs := make([]ResultsCompact, kinds)
	for i := range rs {
		rs[i].Result = game.HitResult(i)
		rs[i].Times = []float64{}
		rs[i].Order = []int{}
	}
	for i, o := range results {
		rs[o.Result].Times = append(rs[o.Result].Times, o.Time)
		rs[o.Result].Order = append(rs[o.Result].Order, i)
	}
	return rs
}

// uncompactResults restores outcomes in session order. Plays saved without
// Order come back in time order.
func uncompactResults(results []ResultsCompact) []game.Outcome {
	type indexed struct {
		order int
		game.Outcome
	}
	ordered := true
	ins := []indexed{}
	for _, r := range results {
		if len(r.Order) != len(r.Times) {
			ordered = false
		}
		for i, t := range r.Times {
			in := indexed{Outcome: game.Outcome{Time: t, Result: r.Result}}
			if i < len(r.Order) {
				in.order = r.Order[i]
			}
			ins = append(ins, in)
		}
	}
	sort.SliceStable(ins, func(i, j int) bool {
		if ordered {
			return ins[i].order < ins[j].order
		}
		return ins[i].Time < ins[j].Time
	})

	outs := make([]game.Outcome, len(ins))
	for i, in := range ins {
		outs[i] = in.Outcome
	}
	return outs
}

func (s *DefaultScorer) Init() error {
	path := s.Path
	if path == "" {
		path = "./scores.db"
	}
	if nil == s.Log {
		s.Log = zap.NewNop()
	}

	db, err := sql.Open("sqlite3", path)
	if nil != err {
		return fmt.Errorf("unable to open score database: %w", err)
	}

	initStatement := `
	create table if not exists plays
	  (
		  id text not null primary key,
		  sum text not null,
		  rate real not null,
		  score integer not null,
		  grade text not null,
		  status integer not null,
		  results blob,
		  played_at datetime not null
	  );
	create index if not exists idx_plays_sum on plays(sum);
	`
	if _, err = db.Exec(initStatement); nil != err {
		db.Close()
		return fmt.Errorf("unable to create score tables: %w", err)
	}

	s.db = db
	return nil
}

func (s *DefaultScorer) Deinit() {
	if nil != s.db {
		if err := s.db.Close(); nil != err {
			s.Log.Warn("unable to close score database", zap.Error(err))
		}
		s.db = nil
	}
}

// hashBeatmap identifies the chart, so plays at any rate or offset share a key.
func hashBeatmap(b *game.Beatmap) string {
	b = b.Chart()
	h := sha256.New()
	h.Write([]byte(b.Name))
	h.Write([]byte(b.Difficulty.Name))
	buf := make([]byte, 9)
	for _, p := range b.BeatPoints {
		buf[0] = byte(p.Direction)
		binary.LittleEndian.PutUint64(buf[1:], math.Float64bits(p.Time))
		h.Write(buf)
	}
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

func (s *DefaultScorer) Summarize(r *game.GameplayResult) Summary {
	return Summarize(r)
}

func (s *DefaultScorer) Save(b *game.Beatmap, r *game.GameplayResult, rate float64) (*History, error) {
	if nil == s.db {
		return nil, fmt.Errorf("score database is not open")
	}
	if !r.Status.Terminal() {
		return nil, ErrInvalidState
	}
	data, err := json.Marshal(compactResults(r.Results))
	if nil != err {
		return nil, fmt.Errorf("unable to marshal results: %w", err)
	}

	sum := Summarize(r)
	h := &History{
		ID:       uuid.New(),
		Sum:      hashBeatmap(b),
		Rate:     rate,
		Score:    sum.Score,
		Grade:    sum.Grade,
		Status:   r.Status,
		Results:  r.Results,
		PlayedAt: time.Now().UTC(),
	}
	_, err = s.db.Exec(
		"insert into plays(id, sum, rate, score, grade, status, results, played_at) values(?, ?, ?, ?, ?, ?, ?, ?)",
		h.ID.String(), h.Sum, h.Rate, h.Score, h.Grade.String(), int(h.Status), data, h.PlayedAt,
	)
	if nil != err {
		return nil, fmt.Errorf("unable to save play: %w", err)
	}
	s.Log.Info("saved play",
		zap.String("id", h.ID.String()),
		zap.String("beatmap", b.Name),
		zap.Uint32("score", h.Score),
		zap.Stringer("grade", h.Grade),
	)
	return h, nil
}

func (s *DefaultScorer) Load(b *game.Beatmap) ([]History, error) {
	if nil == s.db {
		return nil, fmt.Errorf("score database is not open")
	}
	histories := []History{}
	rows, err := s.db.Query(
		"select id, sum, rate, score, grade, status, results, played_at from plays where sum = ? order by score desc, played_at asc",
		hashBeatmap(b),
	)
	if nil != err {
		return nil, fmt.Errorf("unable to load plays: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id, sum, grade string
			rate           float64
			score          uint32
			status         int
			data           []byte
			playedAt       time.Time
		)
		if err := rows.Scan(&id, &sum, &rate, &score, &grade, &status, &data, &playedAt); nil != err {
			return nil, fmt.Errorf("unable to read play: %w", err)
		}
		var rs []ResultsCompact
		if err := json.Unmarshal(data, &rs); nil != err {
			s.Log.Warn("unable to unmarshal play results", zap.String("id", id), zap.Error(err))
			continue
		}
		pid, err := uuid.Parse(id)
		if nil != err {
			s.Log.Warn("play has an invalid id", zap.String("id", id), zap.Error(err))
			continue
		}
		histories = append(histories, History{
			ID:       pid,
			Sum:      sum,
			Rate:     rate,
			Score:    score,
			Grade:    ParseGrade(grade),
			Status:   game.SessionStatus(status),
			Results:  uncompactResults(rs),
			PlayedAt: playedAt,
		})
	}
	return histories, rows.Err()
}

// Best returns the highest scoring play, if any.
func Best(histories []History) (History, bool) {
	if len(histories) == 0 {
		return History{}, false
	}
	best := histories[0]
	for _, h := range histories[1:] {
		if h.Score > best.Score {
			best = h
		}
	}
	return best, true
}
