package theme

import (
	"fmt"
	"image/color"

	"git.lost.host/meutraa/runbeat/internal/game"
	"git.lost.host/meutraa/runbeat/internal/score"
)

type DefaultTheme struct {
}

func (t *DefaultTheme) RenderBeat(d game.Direction) string {
	c := getBeatColor(d)
	return fmt.Sprintf("\033[38;2;%v;%v;%vm%v\033[0m", c.R, c.G, c.B, syms[d])
}

func (t *DefaultTheme) RenderPlayer(health int32) string {
	if health <= 2 {
		return "\033[1;31m" + playerSym + "\033[0m"
	}
	return "\033[1;37m" + playerSym + "\033[0m"
}

func (t *DefaultTheme) RenderHitField(lane int) string {
	if lane < 0 || lane >= len(barSyms) {
		return " "
	}
	return barSyms[lane]
}

func (t *DefaultTheme) RenderResult(h game.HitResult) string {
	name, ok := resultNames[h]
	if !ok {
		return h.String()
	}
	return name
}

func (t *DefaultTheme) ResultColor(h game.HitResult) color.RGBA {
	c, ok := resultColors[h]
	if !ok {
		return white
	}
	return c
}

func (t *DefaultTheme) GradeColor(g score.Grade) color.RGBA {
	c, ok := gradeColors[g]
	if !ok {
		return white
	}
	return c
}

const (
	playerSym = "◆"
)

var (
	white = color.RGBA{255, 255, 255, 255}
	syms  = map[game.Direction]string{
		game.Up:    "↑",
		game.Down:  "↓",
		game.Left:  "←",
		game.Right: "→",
	}
	barSyms    = [...]string{"-", "-", "-", "-"}
	beatColors = map[game.Direction]color.RGBA{
		game.Left:  {236, 30, 0, 255},  // red
		game.Down:  {0, 118, 236, 255}, // blue
		game.Up:    {0, 236, 128, 255}, // green
		game.Right: {236, 195, 0, 255}, // yellow
	}
	resultNames = map[game.HitResult]string{
		game.Hit:          "Hit",
		game.MissWrongKey: "Wrong",
		game.MissEarly:    "Early",
		game.MissLate:     "Late",
	}
	resultColors = map[game.HitResult]color.RGBA{
		game.Hit:          {0, 236, 128, 255},
		game.MissWrongKey: {236, 128, 0, 255},
		game.MissEarly:    {106, 0, 236, 255},
		game.MissLate:     {236, 30, 0, 255},
	}
	gradeColors = map[score.Grade]color.RGBA{
		score.GradeS: {236, 195, 0, 255},
		score.GradeA: {0, 236, 128, 255},
		score.GradeB: {0, 118, 236, 255},
		score.GradeC: {173, 236, 236, 255},
		score.GradeF: {236, 30, 0, 255},
	}
)

func getBeatColor(d game.Direction) color.RGBA {
	c, ok := beatColors[d]
	if !ok {
		return white
	}
	return c
}
