package buttons

import (
	"sync"
	"time"

	"github.com/stianeikeland/go-rpio/v4"
	"go.uber.org/zap"

	"github.com/dlawton/chimeclock/internal/device"
)

// BCM pin assignments on the current board revision.
var pinMap = map[uint8]device.Button{
	5:  device.ButtonVolumeUp,
	6:  device.ButtonVolumeDown,
	16: device.ButtonMute,
	20: device.ButtonReserved,
}

const (
	scanInterval = 10 * time.Millisecond
	debounce     = 150 * time.Millisecond
)

var _ Source = (*GPIO)(nil)

// GPIO polls the pins for falling edges. The buttons pull to ground, so pins
// idle high with the internal pull-up.
type GPIO struct {
	log    *zap.Logger
	events chan device.Button
	stop   chan struct{}
	once   sync.Once
}

func NewGPIO(log *zap.Logger) (*GPIO, error) {
	if err := rpio.Open(); err != nil {
		return nil, err
	}
	g := &GPIO{
		log:    log,
		events: make(chan device.Button, 8),
		stop:   make(chan struct{}),
	}

	pins := make(map[rpio.Pin]device.Button, len(pinMap))
	for bcm, btn := range pinMap {
		pin := rpio.Pin(bcm)
		pin.Input()
		pin.PullUp()
		pin.Detect(rpio.FallEdge)
		pins[pin] = btn
	}

	go g.scan(pins)
	return g, nil
}

func (g *GPIO) scan(pins map[rpio.Pin]device.Button) {
	lastFire := make(map[rpio.Pin]time.Time, len(pins))
	t := time.NewTicker(scanInterval)
	defer t.Stop()

	for {
		select {
		case <-g.stop:
			return
		case now := <-t.C:
			for pin, btn := range pins {
				if !pin.EdgeDetected() {
					continue
				}
				if now.Sub(lastFire[pin]) < debounce {
					continue
				}
				lastFire[pin] = now
				select {
				case g.events <- btn:
					g.log.Info("button_pressed", zap.String("button", btn.String()))
				default:
					// Consumer wedged; dropping a press beats blocking the scan.
					g.log.Warn("button_dropped", zap.String("button", btn.String()))
				}
			}
		}
	}
}

func (g *GPIO) Events() <-chan device.Button {
	return g.events
}

func (g *GPIO) Close() error {
	g.once.Do(func() {
		close(g.stop)
		for pin := range pinMap {
			rpio.Pin(pin).Detect(rpio.NoEdge)
		}
		close(g.events)
	})
	return rpio.Close()
}
