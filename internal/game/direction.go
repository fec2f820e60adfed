package game

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownDirection = errors.New("unknown direction")

type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions in lane order, left to right.
var Directions = [...]Direction{Left, Down, Up, Right}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("direction(%d)", uint8(d))
}

// Lane is the column index of the direction in Directions.
func (d Direction) Lane() int {
	for i, l := range Directions {
		if l == d {
			return i
		}
	}
	return -1
}

func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "u":
		return Up, nil
	case "down", "d":
		return Down, nil
	case "left", "l":
		return Left, nil
	case "right", "r":
		return Right, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
}
