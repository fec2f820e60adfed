package input

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"git.lost.host/meutraa/runbeat/internal/config"
	"git.lost.host/meutraa/runbeat/internal/game"
	"github.com/eiannone/keyboard"
)

var namedKeys = map[string]keyboard.Key{
	"up":     keyboard.KeyArrowUp,
	"down":   keyboard.KeyArrowDown,
	"left":   keyboard.KeyArrowLeft,
	"right":  keyboard.KeyArrowRight,
	"space":  keyboard.KeySpace,
	"esc":    keyboard.KeyEsc,
	"escape": keyboard.KeyEsc,
	"enter":  keyboard.KeyEnter,
	"tab":    keyboard.KeyTab,
}

// Bindings translate terminal keys into game keys.
type Bindings struct {
	keys  map[keyboard.Key]game.Key
	runes map[rune]game.Key
}

func NewBindings(ks config.KeySettings) (*Bindings, error) {
	b := &Bindings{
		keys:  map[keyboard.Key]game.Key{keyboard.KeyCtrlC: game.KeyQuit},
		runes: map[rune]game.Key{},
	}
	actions := []struct {
		key   game.Key
		names []string
	}{
		{game.KeyUp, ks.Up},
		{game.KeyDown, ks.Down},
		{game.KeyLeft, ks.Left},
		{game.KeyRight, ks.Right},
		{game.KeyPause, ks.Pause},
		{game.KeyQuit, ks.Quit},
		{game.KeyRetry, ks.Retry},
	}
	for _, a := range actions {
		for _, name := range a.names {
			if err := b.bind(name, a.key); nil != err {
				return nil, err
			}
		}
	}
	return b, nil
}

func (b *Bindings) bind(name string, key game.Key) error {
	if k, ok := namedKeys[strings.ToLower(name)]; ok {
		if old, ok := b.keys[k]; ok && old != key {
			return fmt.Errorf("key %q is bound to both %v and %v", name, old, key)
		}
		b.keys[k] = key
		if k == keyboard.KeySpace {
			// Some terminals report space as a rune.
			b.runes[' '] = key
		}
		return nil
	}
	if utf8.RuneCountInString(name) != 1 {
		return fmt.Errorf("unknown key %q", name)
	}
	r, _ := utf8.DecodeRuneInString(name)
	if old, ok := b.runes[r]; ok && old != key {
		return fmt.Errorf("key %q is bound to both %v and %v", name, old, key)
	}
	b.runes[r] = key
	return nil
}

func (b *Bindings) Translate(ev keyboard.KeyEvent) game.Key {
	if ev.Key != 0 {
		return b.keys[ev.Key]
	}
	return b.runes[ev.Rune]
}
