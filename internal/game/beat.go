package game

import (
	"errors"
	"sort"
)

var (
	ErrEmptyBeatmap    = errors.New("beatmap has no beat points")
	ErrUnsortedBeatmap = errors.New("beatmap beat points are not sorted by time")
)

type BeatEvent struct {
	Direction Direction
	Time      float64 // Seconds from session start
}

// Sorted reports whether events are in ascending time order.
func Sorted(events []BeatEvent) bool {
	return sort.SliceIsSorted(events, func(i, j int) bool {
		return events[i].Time < events[j].Time
	})
}

// Normalize sorts events by time, keeping the relative order of equal times,
// and drops repeated identical (direction, time) pairs.
func Normalize(events []BeatEvent) []BeatEvent {
	out := make([]BeatEvent, len(events))
	copy(out, events)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Time < out[j].Time
	})

	seen := make(map[BeatEvent]struct{}, len(out))
	n := 0
	for _, e := range out {
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		out[n] = e
		n++
	}
	return out[:n]
}

// Validate checks the loader guarantees a session relies on.
func Validate(events []BeatEvent) error {
	if len(events) == 0 {
		return ErrEmptyBeatmap
	}
	if !Sorted(events) {
		return ErrUnsortedBeatmap
	}
	return nil
}
