package main

import (
	"fmt"
	"io"
	"sync"
	"time"

	"git.lost.host/meutraa/runbeat/internal/audio"
	"git.lost.host/meutraa/runbeat/internal/config"
	"git.lost.host/meutraa/runbeat/internal/game"
	"git.lost.host/meutraa/runbeat/internal/input"
	"git.lost.host/meutraa/runbeat/internal/logging"
	"git.lost.host/meutraa/runbeat/internal/movement"
	"git.lost.host/meutraa/runbeat/internal/parser"
	"git.lost.host/meutraa/runbeat/internal/render"
	"git.lost.host/meutraa/runbeat/internal/score"
	"git.lost.host/meutraa/runbeat/internal/session"
	"git.lost.host/meutraa/runbeat/internal/theme"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type Program struct {
	Flags    *config.Flags
	Settings *config.Settings

	Renderer render.Renderer
	Scorer   score.Scorer
	Theme    theme.Theme

	mu       sync.Mutex // guards Settings, which reload swaps
	log      *zap.Logger
	viper    *viper.Viper
	keyboard *input.Keyboard
	song     *audio.Song
	scene    *render.Scene
	beatmap  *game.Beatmap
}

func (p *Program) Init() error {
	var err error
	p.Settings, p.viper, err = config.LoadSettings(p.Flags.Settings)
	if nil != err {
		return err
	}
	p.log, err = logging.Init(p.Settings.Logging, p.Flags.LogLevel, p.Flags.NoRender)
	if nil != err {
		return err
	}

	song, err := parser.Find(p.Flags.Directory)
	if nil != err {
		return err
	}
	beatmaps, err := song.Parser.Parse(song.ChartFile)
	if nil != err {
		return fmt.Errorf("unable to parse %v: %w", song.ChartFile, err)
	}
	if p.Flags.Difficulty < 0 || p.Flags.Difficulty >= len(beatmaps) {
		return fmt.Errorf("difficulty %v out of range, %v available", p.Flags.Difficulty, len(beatmaps))
	}
	p.beatmap = beatmaps[p.Flags.Difficulty].AtRate(p.Flags.Rate, p.Flags.Offset.Seconds())
	if p.beatmap.MusicPath == "" {
		p.beatmap.MusicPath = song.AudioFile
	}
	p.log.Info("loaded beatmap",
		zap.String("name", p.beatmap.Name),
		zap.String("difficulty", p.beatmap.Difficulty.Name),
		zap.Int("beats", len(p.beatmap.BeatPoints)),
		zap.Float64("duration", p.beatmap.Duration()),
		zap.Float64("rate", p.Flags.Rate),
	)

	p.Scorer = &score.DefaultScorer{Path: p.Flags.Database, Log: p.log}
	if err := p.Scorer.Init(); nil != err {
		return err
	}

	if !p.Flags.NoAudio && p.beatmap.MusicPath != "" {
		p.song, err = audio.Open(p.beatmap.MusicPath)
		if nil != err {
			return err
		}
		p.log.Info("opened song",
			zap.String("file", p.beatmap.MusicPath),
			zap.Duration("length", p.song.Length()),
		)
	}

	bindings, err := input.NewBindings(p.Settings.Keys)
	if nil != err {
		return err
	}
	p.keyboard, err = input.Open(bindings, p.log)
	if nil != err {
		return fmt.Errorf("unable to open keyboard: %w", err)
	}
	config.Watch(p.viper, p.log, p.reload)

	r := &render.DefaultRenderer{}
	if p.Flags.NoRender {
		r.Out = io.Discard
	}
	p.Renderer = r
	p.Theme = &theme.DefaultTheme{}
	p.scene = render.NewScene(p.Renderer, p.Theme)
	return p.Renderer.Init()
}

// reload applies the key bindings of changed settings. Gameplay settings take
// effect on the next attempt.
func (p *Program) reload(s *config.Settings) {
	bindings, err := input.NewBindings(s.Keys)
	if nil != err {
		p.log.Warn("ignoring key bindings", zap.Error(err))
		return
	}
	p.keyboard.Rebind(bindings)
	p.mu.Lock()
	p.Settings = s
	p.mu.Unlock()
}

func (p *Program) Deinit() {
	if nil == p.log {
		p.log = zap.NewNop()
	}
	if nil != p.Renderer {
		if err := p.Renderer.Deinit(); nil != err {
			p.log.Warn("unable to restore terminal", zap.Error(err))
		}
	}
	if nil != p.keyboard {
		if err := p.keyboard.Close(); nil != err {
			p.log.Warn("unable to close keyboard", zap.Error(err))
		}
	}
	if nil != p.song {
		p.song.Close()
	}
	if nil != p.Scorer {
		p.Scorer.Deinit()
	}
	p.log.Sync()
}

func (p *Program) options() (session.Options, error) {
	p.mu.Lock()
	s := *p.Settings
	p.mu.Unlock()

	health, err := session.ParseHealthPolicy(s.HealthPolicy)
	if nil != err {
		return session.Options{}, err
	}
	return session.Options{
		HitWindow:           s.HitWindow,
		EarlyWindow:         s.EarlyWindow,
		InterpolationFactor: s.InterpolationFactor,
		StartHealth:         s.StartHealth,
		StartPosition:       movement.DefaultLayout(game.BeatEvent{}),
		Health:              health,
		Layout:              movement.DefaultLayout,
	}, nil
}

// Run plays the beatmap until the player quits from the score screen or
// aborts a session.
func (p *Program) Run() error {
	for {
		sess, err := p.play()
		if nil != err {
			return err
		}
		if sess.Aborted() {
			return nil
		}
		if err := p.summarize(sess); nil != err {
			return err
		}
		if !p.waitForRetry() {
			return nil
		}
		p.log.Info("retrying", zap.String("beatmap", p.beatmap.Name))
	}
}

func (p *Program) play() (*session.Session, error) {
	opts, err := p.options()
	if nil != err {
		return nil, err
	}
	sess, err := session.New(p.beatmap, opts, p.log)
	if nil != err {
		return nil, err
	}

	p.Renderer.Clear()
	sess.Start(p.Flags.Delay)
	if nil != p.song {
		until := p.Flags.Delay + time.Duration(p.beatmap.AudioOffset*float64(time.Second))
		if err := p.song.Play(p.Flags.Rate, until); nil != err {
			return nil, err
		}
	}

	p.Renderer.RenderLoop(p.Flags.FramePeriod, func(time.Duration) bool {
		events := p.keyboard.Poll()
		for _, ev := range events {
			switch ev.Key {
			case game.KeyPause:
				paused := sess.TogglePause()
				if nil != p.song {
					p.song.SetPaused(paused)
				}
			case game.KeyQuit:
				sess.Abort()
			}
		}
		sess.Tick(events)
		p.scene.Draw(sess)
		return !sess.Done()
	})

	if nil != p.song {
		p.song.Stop()
	}
	return sess, nil
}

func (p *Program) summarize(sess *session.Session) error {
	sum := p.Scorer.Summarize(&sess.Result)
	_, best, err := score.Record(p.Scorer, p.beatmap.Chart(), &sess.Result, p.Flags.Rate)
	if nil != err {
		return err
	}

	p.log.Info("score",
		zap.Uint32("score", sum.Score),
		zap.Stringer("grade", sum.Grade),
		zap.Float64("ratio", sum.Ratio),
	)
	p.scene.DrawSummary(p.beatmap.Name, sum, best)
	// A single frame that returns false flushes the summary.
	p.Renderer.RenderLoop(p.Flags.FramePeriod, func(time.Duration) bool { return false })
	return nil
}

func (p *Program) waitForRetry() bool {
	for {
		switch p.keyboard.Wait() {
		case game.KeyRetry:
			return true
		case game.KeyQuit:
			return false
		}
	}
}
