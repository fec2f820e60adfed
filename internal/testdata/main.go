package testdata

import (
	"encoding/json"
	"os"
	"path/filepath"

	"git.lost.host/meutraa/runbeat/internal/game"
)

// Chart is a dance-single chart at 120 bpm whose first beat is at 0.5s.
const Chart = `#TITLE:Test Song;
#ARTIST:Nobody;
#MUSIC:song.ogg;
#OFFSET:-0.500;
#BPMS:0.000=120.000;
#NOTES:
     dance-single:
     :
     Beginner:
     1:
     0,0,0,0:
1000
0100
0010
0001
,
1100
0000
M000
0030
;
#NOTES:
     dance-double:
     :
     Hard:
     9:
     0,0,0,0:
10000000
;
`

// Map is a native beatmap descriptor with an unsorted, repeated beat point.
const Map = `name: Test Map
music_path: audio.mp3
audio_offset: 0.25
beat_points:
  - direction: up
    time: 1.0
  - direction: left
    time: 2.0
  - direction: down
    time: 1.5
  - direction: up
    time: 1.0
`

const beatmap = `{
	"Name": "Fixture",
	"AudioOffset": 0,
	"BeatPoints": [
		{"Direction": 0, "Time": 1.0},
		{"Direction": 2, "Time": 1.5},
		{"Direction": 3, "Time": 2.0},
		{"Direction": 1, "Time": 2.75},
		{"Direction": 0, "Time": 3.5}
	]
}`

func GetBeatmap() (*game.Beatmap, error) {
	var b game.Beatmap
	if err := json.Unmarshal([]byte(beatmap), &b); nil != err {
		return nil, err
	}
	return &b, nil
}

// WriteSong writes a song directory holding the given file and an empty audio file.
func WriteSong(dir, name, content string) (string, error) {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); nil != err {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(dir, "song.ogg"), nil, 0o644); nil != err {
		return "", err
	}
	return path, nil
}
