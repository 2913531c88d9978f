// Package display defines what the clock face needs per refresh. Actual
// pixel drawing lives behind the Renderer port; the daemon works the same
// against the panel driver or a log line.
package display

import (
	"time"

	"go.uber.org/zap"
)

// Frame is everything one refresh of the face shows.
type Frame struct {
	Hour12 int
	Minute int
	PM     bool
	TempC  float64
	TempF  int
	AQI    int
	Date   time.Time
}

type Renderer interface {
	Render(f Frame) error
}

// At builds the frame for a wall-clock instant and the cached readings.
func At(t time.Time, tempC float64, aqi int) Frame {
	h := t.Hour() % 12
	if h == 0 {
		h = 12
	}
	return Frame{
		Hour12: h,
		Minute: t.Minute(),
		PM:     t.Hour() >= 12,
		TempC:  tempC,
		TempF:  int(tempC*9.0/5.0) + 32,
		AQI:    aqi,
		Date:   t,
	}
}

// Console logs each frame; the default backend off the appliance hardware.
type Console struct {
	Log *zap.Logger
}

func (c *Console) Render(f Frame) error {
	ap := "AM"
	if f.PM {
		ap = "PM"
	}
	c.Log.Info("frame",
		zap.Int("hour", f.Hour12),
		zap.Int("minute", f.Minute),
		zap.String("ampm", ap),
		zap.Float64("temp_c", f.TempC),
		zap.Int("temp_f", f.TempF),
		zap.Int("aqi", f.AQI),
	)
	return nil
}
