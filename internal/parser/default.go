package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"git.lost.host/meutraa/runbeat/internal/game"
)

// DefaultParser reads StepMania .sm charts.
type DefaultParser struct{}

type bpm struct {
	StartingBeat float64
	Value        float64
}

func (p *DefaultParser) getSecondsPerNote(rates []bpm, currentBeat float64, bpn float64) float64 {
	sel := 0.0
	for _, r := range rates {
		if currentBeat >= r.StartingBeat {
			sel = r.Value
		} else {
			break
		}
	}
	if sel <= 0 {
		return 0
	}
	return bpn * 60.0 / sel
}

// mapToBeat reports whether a note character starts a beat: taps (1), hold
// heads (2) and roll heads (4). Tails, mines, lifts and fakes do not.
func (p *DefaultParser) mapToBeat(ch byte) bool {
	return ch == '1' || ch == '2' || ch == '4'
}

func metaValue(line, key string) (string, bool) {
	if !strings.HasPrefix(line, key+":") {
		return "", false
	}
	v := strings.TrimPrefix(line, key+":")
	return strings.TrimSpace(strings.TrimSuffix(v, ";")), true
}

func (p *DefaultParser) Parse(file string) ([]*game.Beatmap, error) {
	data, err := os.ReadFile(file)
	if nil != err {
		return nil, err
	}

	str := strings.ReplaceAll(string(data), "\r", "")
	sections := strings.Split(str, "#NOTES:")
	meta := sections[0]
	difficulties := []game.Difficulty{}
	for _, section := range sections[1:] {
		lines := strings.SplitN(section, "\n", 7)
		if len(lines) < 7 {
			continue
		}
		chartType := strings.TrimSpace(lines[1])
		chartType = strings.TrimSuffix(chartType, ":")
		if !game.ChartTypes[chartType] {
			continue
		}
		difficulties = append(difficulties, game.Difficulty{
			Name:    strings.TrimSuffix(strings.TrimSpace(lines[3]), ":"),
			Meter:   strings.TrimSuffix(strings.TrimSpace(lines[4]), ":"),
			Section: lines[6],
		})
	}
	if len(difficulties) == 0 {
		return nil, fmt.Errorf("%s: %w", file, ErrNoChart)
	}

	offset := 0.0
	bpms := []bpm{}
	title := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	music := ""

	for _, mdl := range strings.Split(meta, "\n#") {
		mdl = strings.TrimPrefix(strings.TrimSpace(mdl), "#")
		if v, ok := metaValue(mdl, "TITLE"); ok && v != "" {
			title = v
		} else if v, ok := metaValue(mdl, "MUSIC"); ok && v != "" {
			music = filepath.Join(filepath.Dir(file), v)
		} else if v, ok := metaValue(mdl, "OFFSET"); ok {
			offs, err := strconv.ParseFloat(v, 64)
			if nil != err {
				return nil, fmt.Errorf("invalid offset %q: %w", v, err)
			}
			offset = -offs
		} else if v, ok := metaValue(mdl, "BPMS"); ok {
			v = strings.ReplaceAll(v, "\n", "")
			for _, b := range strings.Split(v, ",") {
				as := strings.Split(strings.TrimSpace(b), "=")
				if len(as) != 2 {
					return nil, fmt.Errorf("invalid bpm %q", b)
				}
				sb, err := strconv.ParseFloat(as[0], 64)
				if nil != err {
					return nil, err
				}
				value, err := strconv.ParseFloat(as[1], 64)
				if nil != err {
					return nil, err
				}
				bpms = append(bpms, bpm{StartingBeat: sb, Value: value})
			}
		}
	}

	beatmaps := []*game.Beatmap{}
	for _, difficulty := range difficulties {
		// Start time of first note
		seconds := offset
		currentBeat := 0.0
		points := []game.BeatEvent{}

		blocks := strings.Split(difficulty.Section, "\n,")
		for _, block := range blocks {
			lines := []string{}
			for _, l := range strings.Split(block, "\n") {
				if strings.HasPrefix(l, " ") || strings.Contains(l, "-") {
					continue
				}
				l = strings.TrimSpace(l)
				if len(l) == len(game.Directions) {
					lines = append(lines, l)
				}
			}
			if len(lines) == 0 {
				continue
			}

			// Beat count is 4 per block
			beatsPerNote := 4.0 / float64(len(lines)) // 1/4, 1/8, 1/16, 1/24 etc

			for _, line := range lines {
				// A jump keeps its leftmost arrow, one direction per beat.
				for i := 0; i < len(line); i++ {
					if p.mapToBeat(line[i]) {
						points = append(points, game.BeatEvent{
							Direction: game.Directions[i],
							Time:      seconds,
						})
						break
					}
				}
				seconds += p.getSecondsPerNote(bpms, currentBeat, beatsPerNote)
				currentBeat += beatsPerNote
			}
		}

		if len(points) == 0 {
			continue
		}
		beatmaps = append(beatmaps, &game.Beatmap{
			Name:       title,
			MusicPath:  music,
			BeatPoints: game.Normalize(points),
			Difficulty: difficulty,
		})
	}
	if len(beatmaps) == 0 {
		return nil, fmt.Errorf("%s: %w", file, ErrNoChart)
	}

	return beatmaps, nil
}
