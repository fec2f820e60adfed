package render

import (
	"fmt"
	"strings"

	"git.lost.host/meutraa/runbeat/internal/game"
	"git.lost.host/meutraa/runbeat/internal/judge"
	"git.lost.host/meutraa/runbeat/internal/movement"
	"git.lost.host/meutraa/runbeat/internal/score"
	"git.lost.host/meutraa/runbeat/internal/session"
	"git.lost.host/meutraa/runbeat/internal/theme"
)

const (
	// DefaultSpeed is the number of columns a beat travels per second.
	DefaultSpeed = 24.0
	hitColumn    = 8
	resultFrames = 90
)

// Scene draws a session onto a Renderer, one lane per direction.
type Scene struct {
	Renderer Renderer
	Theme    theme.Theme
	Speed    float64

	seen int
}

func NewScene(r Renderer, t theme.Theme) *Scene {
	return &Scene{Renderer: r, Theme: t, Speed: DefaultSpeed}
}

func (s *Scene) laneRow(rows int, lane int) uint16 {
	top := rows/2 - len(game.Directions)/2
	if top < 4 {
		top = 4
	}
	return uint16(top + lane)
}

// beatColumn places e relative to the hit column, ahead of it while the event
// is still upcoming.
func (s *Scene) beatColumn(e game.BeatEvent, now float64) int {
	return hitColumn + int(-judge.Distance(e, now)*s.Speed)
}

// Draw renders one frame of the session at its current clock time.
func (s *Scene) Draw(sess *session.Session) {
	r := s.Renderer
	cols, rows := r.Size()
	now := sess.Clock.Relative()

	blank := strings.Repeat(" ", cols)
	for lane := range game.Directions {
		row := s.laneRow(rows, lane)
		r.Fill(row, 1, blank)
		r.Fill(row, hitColumn, s.Theme.RenderHitField(lane))
	}

	for _, e := range sess.Queue.Upcoming(-1) {
		col := s.beatColumn(e, now)
		if col >= cols {
			break
		}
		if col < 1 {
			continue
		}
		r.Fill(s.laneRow(rows, e.Direction.Lane()), uint16(col), s.Theme.RenderBeat(e.Direction))
	}

	p := sess.Player
	markerRow := s.laneRow(rows, 0) - 1
	r.Fill(markerRow, 1, blank)
	if col := hitColumn + int((movement.TimeAt(p.Position.X())-now)*s.Speed); col >= 1 && col < cols {
		r.Fill(markerRow, uint16(col), s.Theme.RenderPlayer(p.Health))
	}

	r.Fill(1, 1, blank)
	r.Fill(1, 1, fmt.Sprintf("%v  %6.2fs  %v %v  (%.0f, %.0f)",
		sess.Beatmap.Name, now, s.Theme.RenderPlayer(p.Health), p.Health, p.Position.X(), p.Position.Y()))
	r.Fill(2, 1, blank)
	r.Fill(2, 1, fmt.Sprintf("%v/%v  score %v",
		sess.Queue.Consumed(), len(sess.Beatmap.BeatPoints), score.Compute(&sess.Result)))

	if s.seen > len(sess.Result.Results) {
		s.seen = 0
	}
	for _, o := range sess.Result.Results[s.seen:] {
		r.AddDecoration(hitColumn, s.laneRow(rows, len(game.Directions))+1,
			Colorize(s.Theme.ResultColor(o.Result), fmt.Sprintf("%-5v", s.Theme.RenderResult(o.Result))), resultFrames)
	}
	s.seen = len(sess.Result.Results)

	status := ""
	if sess.Paused() {
		status = "Paused (space to resume)"
	}
	r.Fill(uint16(rows), 1, blank)
	r.Fill(uint16(rows), 1, status)
}

// DrawSummary renders the score screen. best may be nil when there is no
// previous play.
func (s *Scene) DrawSummary(name string, sum score.Summary, best *score.History) {
	r := s.Renderer
	r.Clear()
	s.seen = 0

	row := uint16(2)
	line := func(format string, args ...interface{}) {
		r.Fill(row, 4, fmt.Sprintf(format, args...))
		row++
	}
	line("%v", sum.Title)
	line("%v", name)
	row++
	r.FillColor(row, 4, s.Theme.GradeColor(sum.Grade), sum.Grade.String())
	r.Fill(row, 6, sum.Comment)
	row += 2
	line("Score  %v", sum.Score)
	line("Ratio  %.2f%%", sum.Ratio*100)
	for _, h := range game.HitResults {
		r.FillColor(row, 4, s.Theme.ResultColor(h), fmt.Sprintf("%-6v %v", s.Theme.RenderResult(h), sum.Counts[h]))
		row++
	}
	if nil != best {
		row++
		line("Best   %v (%v) at %.2fx", best.Score, best.Grade, best.Rate)
	}
	row++
	line("r to retry, esc to quit")
}
