package device

import "sync"

// State is the single shared record behind the clock: chime volume, mute
// flag, and the last good weather readings. The control surface is the only
// writer of the volume/mute fields; the scheduler and the status API read
// snapshots. One mutex guards the whole record so readers never see a torn
// volume/mute pair.
type State struct {
	mu      sync.Mutex
	volume  int
	preMute int
	muted   bool
	tempC   float64
	aqi     int

	sink interface{ SetVolume(percent int) }
}

// Snapshot is a consistent copy of the record for readers.
type Snapshot struct {
	Volume int     `json:"volume"`
	Muted  bool    `json:"muted"`
	TempC  float64 `json:"temp_c"`
	AQI    int     `json:"aqi"`
}

// NewState seeds the record with the configured startup volume and pushes it
// to the audio sink. sink may be nil (tests, headless runs).
func NewState(volume int, sink interface{ SetVolume(percent int) }) *State {
	s := &State{sink: sink}
	s.SetVolume(volume)
	return s
}

func clampVolume(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// SetVolume clamps v to [0,100], stores it, and propagates it to the audio
// sink. Out-of-range values are clamped, never rejected.
func (s *State) SetVolume(v int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.volume = clampVolume(v)
	s.propagate()
}

func (s *State) Volume() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.volume
}

func (s *State) Muted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.muted
}

// ToggleMute flips between the two states. Muting parks the current volume
// and drives the sink to zero; unmuting restores the parked volume exactly.
func (s *State) ToggleMute() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.muted {
		s.muted = false
		s.volume = s.preMute
	} else {
		s.preMute = s.volume
		s.muted = true
		s.volume = 0
	}
	s.propagate()
}

// propagate pushes the effective volume to the sink. Callers hold s.mu; the
// sink must not call back into State.
func (s *State) propagate() {
	if s.sink == nil {
		return
	}
	if s.muted {
		s.sink.SetVolume(0)
		return
	}
	s.sink.SetVolume(s.volume)
}

// SetTempC stores the latest temperature. Callers are expected to have
// filtered out failure sentinels already.
func (s *State) SetTempC(t float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tempC = t
}

func (s *State) SetAQI(aqi int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.aqi = aqi
}

func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Volume: s.volume,
		Muted:  s.muted,
		TempC:  s.tempC,
		AQI:    s.aqi,
	}
}
