package chime

import (
	"testing"
	"time"
)

func tickAt(hour, minute int) time.Time {
	return time.Date(2025, 3, 1, hour, minute, 0, 0, time.UTC)
}

func TestEventAt_KindByMinute(t *testing.T) {
	cases := []struct {
		minute int
		want   Kind
	}{
		{0, Hour},
		{15, Quarter},
		{30, Half},
		{45, ThreeQuarter},
	}
	for _, c := range cases {
		ev, ok := EventAt(tickAt(10, c.minute))
		if !ok {
			t.Fatalf("minute %d: no event", c.minute)
		}
		if ev.Kind != c.want {
			t.Fatalf("minute %d: kind %v, want %v", c.minute, ev.Kind, c.want)
		}
	}
}

func TestEventAt_OffBoundaryMinutesFireNothing(t *testing.T) {
	for minute := 0; minute < 60; minute++ {
		if minute%15 == 0 {
			continue
		}
		if _, ok := EventAt(tickAt(10, minute)); ok {
			t.Fatalf("minute %d generated an event", minute)
		}
	}
}

func TestBellCount_RunsOneAhead(t *testing.T) {
	cases := []struct {
		hour int
		want int
	}{
		{0, 1},   // midnight strikes one
		{11, 12}, // 11 AM strikes twelve
		{12, 1},  // noon strikes one
		{23, 12},
		{5, 6},
		{17, 6},
	}
	for _, c := range cases {
		ev, ok := EventAt(tickAt(c.hour, 0))
		if !ok || ev.Kind != Hour {
			t.Fatalf("hour %d: not an hour event", c.hour)
		}
		if ev.Bells != c.want {
			t.Fatalf("hour %d: %d bells, want %d", c.hour, ev.Bells, c.want)
		}
	}
}

func TestEventAt_QuarterHasNoBells(t *testing.T) {
	ev, _ := EventAt(tickAt(10, 15))
	if ev.Bells != 0 {
		t.Fatalf("quarter event carries bells: %d", ev.Bells)
	}
}
