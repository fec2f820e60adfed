package game

type Beatmap struct {
	Name        string
	MusicPath   string
	AudioOffset float64 // Seconds after session start at which the music begins
	BeatPoints  []BeatEvent
	Difficulty  Difficulty

	// Source is the beatmap as loaded when this one came from AtRate.
	Source *Beatmap `json:"-"`
}

// Chart returns the beatmap as loaded, before any rate or offset was applied.
func (b *Beatmap) Chart() *Beatmap {
	if nil != b.Source {
		return b.Source
	}
	return b
}

// AtRate returns a copy of the beatmap played at the given rate, with every
// beat time shifted by offset seconds.
func (b *Beatmap) AtRate(rate float64, offset float64) *Beatmap {
	if rate <= 0 {
		rate = 1
	}
	points := make([]BeatEvent, len(b.BeatPoints))
	for i, p := range b.BeatPoints {
		points[i] = BeatEvent{
			Direction: p.Direction,
			Time:      p.Time/rate + offset,
		}
	}
	nb := *b
	nb.Source = b.Chart()
	nb.BeatPoints = points
	nb.AudioOffset = b.AudioOffset / rate
	return &nb
}

// Duration is the time of the last beat point.
func (b *Beatmap) Duration() float64 {
	if len(b.BeatPoints) == 0 {
		return 0
	}
	return b.BeatPoints[len(b.BeatPoints)-1].Time
}
