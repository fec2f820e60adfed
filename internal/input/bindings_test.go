package input

import (
	"errors"
	"testing"

	"git.lost.host/meutraa/runbeat/internal/config"
	"git.lost.host/meutraa/runbeat/internal/game"
	"github.com/eiannone/keyboard"
	"go.uber.org/zap"
)

var defaultKeys = config.KeySettings{
	Up:    []string{"up", "w"},
	Down:  []string{"down", "s"},
	Left:  []string{"left", "a"},
	Right: []string{"right", "d"},
	Pause: []string{"space"},
	Quit:  []string{"esc", "q"},
	Retry: []string{"r"},
}

var translateTests = map[keyboard.KeyEvent]game.Key{
	{Key: keyboard.KeyArrowUp}:    game.KeyUp,
	{Key: keyboard.KeyArrowLeft}:  game.KeyLeft,
	{Rune: 'd'}:                   game.KeyRight,
	{Rune: 's'}:                   game.KeyDown,
	{Key: keyboard.KeySpace}:      game.KeyPause,
	{Key: keyboard.KeyEsc}:        game.KeyQuit,
	{Key: keyboard.KeyCtrlC}:      game.KeyQuit,
	{Rune: 'r'}:                   game.KeyRetry,
	{Rune: 'x'}:                   game.KeyNone,
	{Rune: ' '}:                   game.KeyPause,
	{Key: keyboard.KeyArrowRight}: game.KeyRight,
}

func TestTranslate(t *testing.T) {
	b, err := NewBindings(defaultKeys)
	if nil != err {
		t.Fatalf("bindings: %v", err)
	}
	for ev, expected := range translateTests {
		if key := b.Translate(ev); key != expected {
			t.Log("event   ", ev)
			t.Log("key     ", key)
			t.Log("expected", expected)
			t.Fail()
		}
	}
}

func TestBindingErrors(t *testing.T) {
	tests := map[string]config.KeySettings{
		"conflicting rune": {Up: []string{"w"}, Down: []string{"w"}},
		"conflicting key":  {Pause: []string{"esc"}, Quit: []string{"escape"}},
		"unknown name":     {Up: []string{"pageup"}},
	}
	for name, ks := range tests {
		if _, err := NewBindings(ks); nil == err {
			t.Errorf("%s: expected an error", name)
		}
	}
}

func TestDrain(t *testing.T) {
	b, err := NewBindings(defaultKeys)
	if nil != err {
		t.Fatal(err)
	}
	events := make(chan keyboard.KeyEvent, 8)
	events <- keyboard.KeyEvent{Key: keyboard.KeyArrowDown}
	events <- keyboard.KeyEvent{Rune: 'x'}
	events <- keyboard.KeyEvent{Err: errors.New("broken")}
	events <- keyboard.KeyEvent{Rune: 'a'}

	out := drain(events, b, zap.NewNop())
	expected := []game.KeyEvent{{Key: game.KeyDown, Pressed: true}, {Key: game.KeyLeft, Pressed: true}}
	if len(out) != len(expected) || out[0] != expected[0] || out[1] != expected[1] {
		t.Fatalf("drained %v, want %v", out, expected)
	}
	if len(events) != 0 {
		t.Fatalf("%d events left", len(events))
	}
	if out := drain(events, b, zap.NewNop()); len(out) != 0 {
		t.Fatalf("drained %v from an empty channel", out)
	}
}
