package game

import "fmt"

type HitResult uint8

const (
	Hit HitResult = iota
	MissWrongKey
	MissEarly
	MissLate
)

var HitResults = [...]HitResult{Hit, MissWrongKey, MissEarly, MissLate}

func (h HitResult) String() string {
	switch h {
	case Hit:
		return "hit"
	case MissWrongKey:
		return "miss-wrong-key"
	case MissEarly:
		return "miss-early"
	case MissLate:
		return "miss-late"
	}
	return fmt.Sprintf("hit-result(%d)", uint8(h))
}

func (h HitResult) IsMiss() bool {
	return h != Hit
}

// Outcome is the judgement of one consumed beat event.
type Outcome struct {
	Time   float64 // Nominal time of the consumed event
	Result HitResult
}

type SessionStatus uint8

const (
	Running SessionStatus = iota
	Completed
	Failed
)

func (s SessionStatus) String() string {
	switch s {
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("status(%d)", uint8(s))
}

func (s SessionStatus) Terminal() bool {
	return s == Completed || s == Failed
}

type GameplayResult struct {
	Results []Outcome
	Status  SessionStatus
}

func (r *GameplayResult) Record(o Outcome) {
	r.Results = append(r.Results, o)
}

// Count returns how many outcomes have the given result.
func (r *GameplayResult) Count(h HitResult) int {
	n := 0
	for _, o := range r.Results {
		if o.Result == h {
			n++
		}
	}
	return n
}
