// Package buttons turns the case buttons into a stream of device.Button
// events. The GPIO backend needs real hardware; everything downstream only
// sees the Source port.
package buttons

import "github.com/dlawton/chimeclock/internal/device"

type Source interface {
	// Events yields one value per debounced press. The channel closes when
	// the source is closed.
	Events() <-chan device.Button
	Close() error
}
