package audio

import (
	"context"
	"time"
)

// Sound identifies one of the five chime clips.
type Sound int

const (
	QuarterHour Sound = iota
	HalfHour
	ThreeQuarterHour
	HourStrike
	HourCount
)

func (s Sound) String() string {
	switch s {
	case QuarterHour:
		return "quarter_hour"
	case HalfHour:
		return "half_hour"
	case ThreeQuarterHour:
		return "three_quarter_hour"
	case HourStrike:
		return "hour_strike"
	case HourCount:
		return "hour_count"
	}
	return "unknown"
}

// scale is the per-sound loudness balance relative to the user volume. The
// count bell is recorded hot and is dropped to 80%; the quarter chime to 90%.
func (s Sound) scale() float64 {
	switch s {
	case HourCount:
		return 0.80
	case QuarterHour:
		return 0.90
	}
	return 1.0
}

// Player is implemented by anything that can start a clip. Play blocks until
// audio begins and returns the expected clip length so callers can pace
// themselves; it never blocks for the whole clip.
type Player interface {
	Play(ctx context.Context, s Sound) (time.Duration, error)
	SetVolume(percent int)
}
