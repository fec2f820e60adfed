package input

import (
	"sync/atomic"

	"git.lost.host/meutraa/runbeat/internal/game"
	"github.com/eiannone/keyboard"
	"go.uber.org/zap"
)

// Keyboard reads key presses from the terminal. The terminal only reports
// presses, so every event it produces is a press.
type Keyboard struct {
	events   <-chan keyboard.KeyEvent
	bindings atomic.Pointer[Bindings]
	log      *zap.Logger
}

func Open(b *Bindings, log *zap.Logger) (*Keyboard, error) {
	events, err := keyboard.GetKeys(128)
	if nil != err {
		return nil, err
	}
	k := &Keyboard{events: events, log: log}
	k.bindings.Store(b)
	return k, nil
}

// Rebind swaps the bindings, it is safe to call from another goroutine.
func (k *Keyboard) Rebind(b *Bindings) {
	k.bindings.Store(b)
}

// Poll returns the key events received since the last poll without blocking.
func (k *Keyboard) Poll() []game.KeyEvent {
	return drain(k.events, k.bindings.Load(), k.log)
}

// Wait blocks until a bound key is pressed.
func (k *Keyboard) Wait() game.Key {
	for ev := range k.events {
		if nil != ev.Err {
			k.log.Warn("unable to read key", zap.Error(ev.Err))
			continue
		}
		if key := k.bindings.Load().Translate(ev); key != game.KeyNone {
			return key
		}
	}
	return game.KeyQuit
}

func (k *Keyboard) Close() error {
	return keyboard.Close()
}

func drain(events <-chan keyboard.KeyEvent, b *Bindings, log *zap.Logger) []game.KeyEvent {
	out := []game.KeyEvent{}
	for i := len(events); i > 0; i-- {
		ev := <-events
		if nil != ev.Err {
			log.Warn("unable to read key", zap.Error(ev.Err))
			continue
		}
		key := b.Translate(ev)
		if key == game.KeyNone {
			continue
		}
		out = append(out, game.KeyEvent{Key: key, Pressed: true})
	}
	return out
}
