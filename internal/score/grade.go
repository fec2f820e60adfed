package score

import (
	"errors"

	"git.lost.host/meutraa/runbeat/internal/game"
)

var ErrInvalidState = errors.New("grade requires a completed session with results")

type Grade uint8

const (
	GradeF Grade = iota
	GradeC
	GradeB
	GradeA
	GradeS
)

func (g Grade) String() string {
	switch g {
	case GradeS:
		return "S"
	case GradeA:
		return "A"
	case GradeB:
		return "B"
	case GradeC:
		return "C"
	}
	return "F"
}

func (g Grade) Comment() string {
	switch g {
	case GradeS:
		return "Awesome!"
	case GradeA:
		return "Not bad!"
	case GradeB:
		return "Okay!"
	case GradeC:
		return "That's a start"
	}
	return ""
}

func ParseGrade(s string) Grade {
	for _, g := range []Grade{GradeS, GradeA, GradeB, GradeC} {
		if g.String() == s {
			return g
		}
	}
	return GradeF
}

func Weight(h game.HitResult) uint32 {
	switch h {
	case game.Hit:
		return 1000
	case game.MissWrongKey:
		return 100
	}
	return 10
}

// Compute sums the weight of every outcome.
func Compute(r *game.GameplayResult) uint32 {
	var total uint32
	for _, o := range r.Results {
		total += Weight(o.Result)
	}
	return total
}

// GradeOf grades a finished session. Anything but a completed session is an F.
func GradeOf(r *game.GameplayResult) (Grade, error) {
	if r.Status != game.Completed {
		return GradeF, nil
	}
	if len(r.Results) == 0 {
		return GradeF, ErrInvalidState
	}
	return GradeForRatio(Ratio(r)), nil
}

func GradeForRatio(ratio float64) Grade {
	switch {
	case ratio < 0.40:
		return GradeC
	case ratio < 0.70:
		return GradeB
	case ratio < 0.97:
		return GradeA
	}
	return GradeS
}

// Ratio is the fraction of outcomes that are hits.
func Ratio(r *game.GameplayResult) float64 {
	if len(r.Results) == 0 {
		return 0
	}
	return float64(r.Count(game.Hit)) / float64(len(r.Results))
}
