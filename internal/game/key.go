package game

// Key is a logical key after bindings have been applied.
type Key uint8

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyPause
	KeyQuit
	KeyRetry
)

type KeyEvent struct {
	Key     Key
	Pressed bool
}

// Direction reports the beat direction a key stands for. Only the four
// directional keys have one.
func (k Key) Direction() (Direction, bool) {
	switch k {
	case KeyUp:
		return Up, true
	case KeyDown:
		return Down, true
	case KeyLeft:
		return Left, true
	case KeyRight:
		return Right, true
	}
	return 0, false
}

func (k Key) String() string {
	switch k {
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyPause:
		return "pause"
	case KeyQuit:
		return "quit"
	case KeyRetry:
		return "retry"
	}
	return "none"
}

// Presses returns the directions of the pressed directional keys in arrival order.
func Presses(events []KeyEvent) []Direction {
	dirs := make([]Direction, 0, len(events))
	for _, ev := range events {
		if !ev.Pressed {
			continue
		}
		if d, ok := ev.Key.Direction(); ok {
			dirs = append(dirs, d)
		}
	}
	return dirs
}
