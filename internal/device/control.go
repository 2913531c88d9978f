package device

// Button is the closed set of physical inputs on the case.
type Button int

const (
	ButtonVolumeUp Button = iota
	ButtonVolumeDown
	ButtonMute
	ButtonReserved // wired but unassigned on current hardware
)

func (b Button) String() string {
	switch b {
	case ButtonVolumeUp:
		return "volume_up"
	case ButtonVolumeDown:
		return "volume_down"
	case ButtonMute:
		return "mute"
	case ButtonReserved:
		return "reserved"
	}
	return "unknown"
}

// volumeStep matches the feel of the physical buttons: twenty presses end to end.
const volumeStep = 5

func (s *State) VolumeUp() {
	s.SetVolume(s.Volume() + volumeStep)
}

func (s *State) VolumeDown() {
	s.SetVolume(s.Volume() - volumeStep)
}

// HandleButton dispatches one press. Unknown and reserved buttons are no-ops.
func (s *State) HandleButton(b Button) {
	switch b {
	case ButtonVolumeUp:
		s.VolumeUp()
	case ButtonVolumeDown:
		s.VolumeDown()
	case ButtonMute:
		s.ToggleMute()
	}
}
