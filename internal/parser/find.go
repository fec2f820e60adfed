package parser

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Song is what a song directory provides.
type Song struct {
	ChartFile string
	AudioFile string
	Parser    Parser
}

// Find walks a song directory for a chart and an audio file. A map.yaml
// descriptor is preferred over a .sm chart.
func Find(dir string) (*Song, error) {
	var mapFile, smFile, audioFile string

	if err := filepath.Walk(dir, func(p string, info os.FileInfo, err error) error {
		if nil != err {
			return err
		}
		if info.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(info.Name())) {
		case ".ogg", ".mp3", ".wav":
			audioFile = p
		case ".sm":
			smFile = p
		case ".yaml", ".yml":
			if strings.TrimSuffix(info.Name(), filepath.Ext(info.Name())) == "map" {
				mapFile = p
			}
		}
		return nil
	}); nil != err {
		return nil, fmt.Errorf("unable to walk song directory: %w", err)
	}

	switch {
	case mapFile != "":
		return &Song{ChartFile: mapFile, AudioFile: audioFile, Parser: &MapParser{}}, nil
	case smFile != "":
		return &Song{ChartFile: smFile, AudioFile: audioFile, Parser: &DefaultParser{}}, nil
	}
	return nil, errors.New("unable to find a map.yaml or .sm file in the given directory")
}
