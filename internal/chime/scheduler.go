package chime

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/dlawton/chimeclock/internal/audio"
	"github.com/dlawton/chimeclock/internal/device"
	"github.com/dlawton/chimeclock/internal/display"
	"github.com/dlawton/chimeclock/internal/metrics"
	"github.com/dlawton/chimeclock/internal/weather"
)

const (
	// bellInterval is the pause between count-bell strikes, tuned by ear to
	// the swing period of the bells the clips were recorded from.
	bellInterval = 4290 * time.Millisecond

	// joinWait bounds how long a tick waits for a lingering playback before
	// giving up. A playback that outlives it is skipped over, never killed.
	joinWait = time.Second

	// tickRest is the coarse sleep at the bottom of each loop pass. The loop
	// re-reads the wall clock every pass, so sleep accuracy does not matter.
	tickRest = 2 * time.Second
)

// Poller is the weather refresh the scheduler runs after each chime window.
type Poller interface {
	Poll(ctx context.Context) weather.Reading
}

// Scheduler drives the clock: it refreshes the face once a minute, fires the
// right chime on quarter-hour boundaries, and keeps at most one playback in
// flight.
type Scheduler struct {
	log    *zap.Logger
	state  *device.State
	player audio.Player
	render display.Renderer
	poller Poller

	// Now and Sleep are the wall clock; replaceable in tests.
	Now   func() time.Time
	Sleep func(d time.Duration)

	// JoinWait bounds the wait for a lingering playback (joinWait default).
	JoinWait time.Duration

	// inflight is the running playback, nil when idle. Owned by the loop
	// goroutine; closed by the playback goroutine when it finishes.
	inflight chan struct{}
}

func New(log *zap.Logger, state *device.State, player audio.Player, render display.Renderer, poller Poller) *Scheduler {
	return &Scheduler{
		log:    log,
		state:  state,
		player: player,
		render: render,
		poller: poller,
		Now:    time.Now,
		Sleep:  time.Sleep,

		JoinWait: joinWait,
	}
}

// Run is the principal control loop. It returns when ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	s.log.Info("scheduler_started")
	for {
		if !s.waitForMinute(ctx) {
			s.log.Info("scheduler_stopped")
			return
		}
		now := s.Now()
		s.tick(ctx, now)
		s.Sleep(tickRest)
	}
}

// tick is one minute boundary: refresh the face, reap the previous playback,
// maybe strike.
func (s *Scheduler) tick(ctx context.Context, now time.Time) {
	snap := s.state.Snapshot()
	if err := s.render.Render(display.At(now, snap.TempC, snap.AQI)); err != nil {
		s.log.Warn("render_failed", zap.Error(err))
	}

	switch now.Minute() % 15 {
	case 2:
		// Opportunistic reap a couple of minutes after the trigger, so the
		// next strike rarely has to wait at all.
		s.join(s.JoinWait)
	case 0:
		if ev, ok := EventAt(now); ok {
			s.strike(ctx, ev)
		}
	}
}

// waitForMinute blocks until the wall clock crosses a minute boundary.
// Coarse one-second polls carry it to the final second, then a few-millisecond
// spin lands the return as close to second zero as the host allows. The spin
// burns a little CPU for under a second per minute; chime alignment is worth
// it.
func (s *Scheduler) waitForMinute(ctx context.Context) bool {
	for {
		if ctx.Err() != nil {
			return false
		}
		switch sec := s.Now().Second(); {
		case sec == 0:
			return true
		case sec == 59:
			s.Sleep(2 * time.Millisecond)
		default:
			s.Sleep(time.Second)
		}
	}
}

// strike hands ev to a fresh playback goroutine, provided the previous one
// is done. A still-running playback means this trigger is skipped: two
// overlapping chimes sound worse than one missing.
func (s *Scheduler) strike(ctx context.Context, ev Event) {
	if !s.join(s.JoinWait) {
		s.log.Info("chime_skipped_busy",
			zap.String("kind", ev.Kind.String()),
			zap.Int("hour", ev.HourOfDay),
			zap.Int("minute", ev.Minute),
		)
		metrics.ChimesSkipped.Inc()
		return
	}
	done := make(chan struct{})
	s.inflight = done
	go func() {
		defer close(done)
		s.playChimes(ctx, ev)
	}()
}

// join waits up to wait for the in-flight playback. True means idle.
func (s *Scheduler) join(wait time.Duration) bool {
	if s.inflight == nil {
		return true
	}
	select {
	case <-s.inflight:
		s.inflight = nil
		return true
	case <-time.After(wait):
		return false
	}
}

// playChimes runs one playback. Mute skips every audio call but the weather
// refresh still happens, so the face keeps updating while silenced.
func (s *Scheduler) playChimes(ctx context.Context, ev Event) {
	defer s.refresh(ctx)

	if s.state.Muted() {
		s.log.Info("chime_muted", zap.String("kind", ev.Kind.String()))
		return
	}

	switch ev.Kind {
	case Quarter:
		s.playAndWait(ctx, audio.QuarterHour)
	case Half:
		s.playAndWait(ctx, audio.HalfHour)
	case ThreeQuarter:
		s.playAndWait(ctx, audio.ThreeQuarterHour)
	case Hour:
		s.playAndWait(ctx, audio.HourStrike)
		for i := 0; i < ev.Bells; i++ {
			if ctx.Err() != nil {
				return
			}
			if _, err := s.player.Play(ctx, audio.HourCount); err != nil {
				s.log.Warn("chime_play_failed", zap.String("sound", audio.HourCount.String()), zap.Error(err))
				return
			}
			s.Sleep(bellInterval)
		}
	}

	s.log.Info("chime_played",
		zap.String("kind", ev.Kind.String()),
		zap.Int("bells", ev.Bells),
	)
	metrics.ChimesPlayed.WithLabelValues(ev.Kind.String()).Inc()
}

func (s *Scheduler) playAndWait(ctx context.Context, snd audio.Sound) {
	d, err := s.player.Play(ctx, snd)
	if err != nil {
		s.log.Warn("chime_play_failed", zap.String("sound", snd.String()), zap.Error(err))
		return
	}
	s.Sleep(d)
}

// refresh runs one poll cycle and stores only readings above the validity
// floor; a failed fetch leaves the previous cached value on the face.
func (s *Scheduler) refresh(ctx context.Context) {
	if s.poller == nil {
		return
	}
	r := s.poller.Poll(ctx)
	if r.TempC > -100 {
		s.state.SetTempC(r.TempC)
	}
	if r.AQI > -100 {
		s.state.SetAQI(r.AQI)
	}
}
