package parser

import (
	"errors"

	"git.lost.host/meutraa/runbeat/internal/game"
)

var ErrNoChart = errors.New("no playable chart found")

type Parser interface {
	Parse(file string) ([]*game.Beatmap, error)
}
