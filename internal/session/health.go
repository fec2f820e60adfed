package session

import (
	"fmt"

	"git.lost.host/meutraa/runbeat/internal/game"
)

// HealthPolicy returns the health change caused by an outcome.
type HealthPolicy func(game.HitResult) int32

func NoPenalty(game.HitResult) int32 {
	return 0
}

func StrictPenalty(h game.HitResult) int32 {
	if h.IsMiss() {
		return -1
	}
	return 0
}

var healthPolicies = map[string]HealthPolicy{
	"none":   NoPenalty,
	"strict": StrictPenalty,
}

func ParseHealthPolicy(name string) (HealthPolicy, error) {
	if name == "" {
		return NoPenalty, nil
	}
	p, ok := healthPolicies[name]
	if !ok {
		return nil, fmt.Errorf("unknown health policy %q", name)
	}
	return p, nil
}
