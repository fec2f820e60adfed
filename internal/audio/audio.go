package audio

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
)

// Song plays a beatmap's music on the speaker.
type Song struct {
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
}

func decode(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if nil != err {
		return nil, beep.Format{}, err
	}
	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".ogg":
		streamer, format, err = vorbis.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	default:
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("unsupported audio file %q", filepath.Base(path))
	}
	if nil != err {
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("unable to decode %q: %w", filepath.Base(path), err)
	}
	return streamer, format, nil
}

func Open(path string) (*Song, error) {
	streamer, format, err := decode(path)
	if nil != err {
		return nil, err
	}
	return &Song{streamer: streamer, format: format}, nil
}

// outputRate is the speaker rate that plays the song rate times faster.
func outputRate(sr beep.SampleRate, rate float64) beep.SampleRate {
	return beep.SampleRate(math.Round(float64(sr) * rate))
}

// lead returns how many output samples of silence come before the song, and
// how many song samples to skip when the song should already be playing.
func lead(sr beep.SampleRate, rate float64, until time.Duration) (silence int, skip int) {
	if until >= 0 {
		return outputRate(sr, rate).N(until), 0
	}
	return 0, outputRate(sr, rate).N(-until)
}

// Play starts the song so that its beginning is heard after until, which is
// negative when the song should have started already. A song that is already
// playing starts over.
func (s *Song) Play(rate float64, until time.Duration) error {
	s.Stop()
	if rate <= 0 {
		rate = 1
	}
	out := outputRate(s.format.SampleRate, rate)
	if err := speaker.Init(out, out.N(time.Second/60)); nil != err {
		return fmt.Errorf("unable to open speaker: %w", err)
	}

	silence, skip := lead(s.format.SampleRate, rate, until)
	if skip >= s.streamer.Len() {
		return nil
	}
	if err := s.streamer.Seek(skip); nil != err {
		return fmt.Errorf("unable to seek song: %w", err)
	}
	s.ctrl = &beep.Ctrl{Streamer: beep.Seq(beep.Silence(silence), s.streamer)}
	speaker.Play(s.ctrl)
	return nil
}

func (s *Song) SetPaused(paused bool) {
	if nil == s.ctrl {
		return
	}
	speaker.Lock()
	s.ctrl.Paused = paused
	speaker.Unlock()
}

// Length is the song duration at normal rate.
func (s *Song) Length() time.Duration {
	return s.format.SampleRate.D(s.streamer.Len())
}

// Stop silences the song, Play starts it again.
func (s *Song) Stop() {
	if nil == s.ctrl {
		return
	}
	speaker.Lock()
	s.ctrl.Streamer = nil
	speaker.Unlock()
	s.ctrl = nil
}

func (s *Song) Close() error {
	s.Stop()
	return s.streamer.Close()
}
