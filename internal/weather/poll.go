package weather

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/dlawton/chimeclock/internal/metrics"
)

// Sentinel is what a failed fetch yields. Real readings never go below -100;
// callers filter on that floor, not on equality.
const Sentinel = -1000

// Reading is one poll cycle's output. Either field may hold Sentinel.
type Reading struct {
	TempC float64
	AQI   int
}

type TemperatureSource interface {
	Temperature(ctx context.Context) (float64, error)
}

type AQISource interface {
	AQI(ctx context.Context) (int, error)
}

// Poller runs one round of temperature and AQI retrieval, and once an hour
// hands off to the alert reconciler. All collaborator failures are absorbed
// here; callers only ever see values or sentinels.
type Poller struct {
	Log     *zap.Logger
	Weather TemperatureSource
	Air     AQISource
	Recon   *Reconciler

	// Now is the wall clock; replaceable in tests.
	Now func() time.Time
}

func NewPoller(log *zap.Logger, w TemperatureSource, a AQISource, recon *Reconciler) *Poller {
	return &Poller{
		Log:     log,
		Weather: w,
		Air:     a,
		Recon:   recon,
		Now:     time.Now,
	}
}

// hourlyWindow is how many minutes past the hour still count as "top of the
// hour" for the alert pass. Ticks can land late; five minutes of slack keeps
// one pass per hour without ever skipping one.
const hourlyWindow = 5

func (p *Poller) Poll(ctx context.Context) Reading {
	r := Reading{TempC: Sentinel, AQI: Sentinel}

	if p.Weather != nil {
		if t, err := p.Weather.Temperature(ctx); err != nil {
			p.Log.Warn("weather_fetch_failed", zap.Error(err))
			metrics.PollFailures.WithLabelValues("weather").Inc()
		} else {
			r.TempC = t
		}
	}

	if p.Air != nil {
		if aqi, err := p.Air.AQI(ctx); err != nil {
			p.Log.Warn("aqi_fetch_failed", zap.Error(err))
			metrics.PollFailures.WithLabelValues("aqi").Inc()
		} else {
			r.AQI = aqi
		}
	}

	if p.Recon != nil && p.Now().Minute() < hourlyWindow {
		if err := p.Recon.Reconcile(ctx); err != nil {
			p.Log.Warn("alert_reconcile_failed", zap.Error(err))
		}
	}

	return r
}
