package parser

import (
	"fmt"
	"os"
	"path/filepath"

	"git.lost.host/meutraa/runbeat/internal/game"
	"gopkg.in/yaml.v3"
)

// MapParser reads the native map.yaml beatmap descriptor.
type MapParser struct{}

type mapFile struct {
	Name        string      `yaml:"name"`
	MusicPath   string      `yaml:"music_path"`
	AudioOffset float64     `yaml:"audio_offset"`
	Difficulty  string      `yaml:"difficulty,omitempty"`
	BeatPoints  []beatPoint `yaml:"beat_points"`
}

type beatPoint struct {
	Direction string  `yaml:"direction"`
	Time      float64 `yaml:"time"`
}

func (p *MapParser) Parse(file string) ([]*game.Beatmap, error) {
	data, err := os.ReadFile(file)
	if nil != err {
		return nil, err
	}
	b, err := p.decode(data)
	if nil != err {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	if b.MusicPath != "" && !filepath.IsAbs(b.MusicPath) {
		b.MusicPath = filepath.Join(filepath.Dir(file), b.MusicPath)
	}
	if b.Name == "" {
		b.Name = filepath.Base(filepath.Dir(file))
	}
	return []*game.Beatmap{b}, nil
}

func (p *MapParser) decode(data []byte) (*game.Beatmap, error) {
	var mf mapFile
	if err := yaml.Unmarshal(data, &mf); nil != err {
		return nil, fmt.Errorf("unable to decode beatmap: %w", err)
	}

	points := make([]game.BeatEvent, 0, len(mf.BeatPoints))
	for i, bp := range mf.BeatPoints {
		d, err := game.ParseDirection(bp.Direction)
		if nil != err {
			return nil, fmt.Errorf("beat point %d: %w", i, err)
		}
		if bp.Time < 0 {
			return nil, fmt.Errorf("beat point %d: negative time %v", i, bp.Time)
		}
		points = append(points, game.BeatEvent{Direction: d, Time: bp.Time})
	}
	points = game.Normalize(points)
	if len(points) == 0 {
		return nil, ErrNoChart
	}

	name := mf.Difficulty
	if name == "" {
		name = "Normal"
	}
	return &game.Beatmap{
		Name:        mf.Name,
		MusicPath:   mf.MusicPath,
		AudioOffset: mf.AudioOffset,
		BeatPoints:  points,
		Difficulty:  game.Difficulty{Name: name},
	}, nil
}
