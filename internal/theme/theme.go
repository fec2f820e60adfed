package theme

import (
	"image/color"

	"git.lost.host/meutraa/runbeat/internal/game"
	"git.lost.host/meutraa/runbeat/internal/score"
)

type Theme interface {
	RenderBeat(d game.Direction) string
	RenderPlayer(health int32) string
	RenderHitField(lane int) string
	RenderResult(h game.HitResult) string
	ResultColor(h game.HitResult) color.RGBA
	GradeColor(g score.Grade) color.RGBA
}
