package audio

import (
	"context"
	"encoding/binary"
	"errors"
	"io"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
)

// paplay expresses volume as a fraction of 65536.
const paplayFullVolume = 65536

var defaultFiles = map[Sound]string{
	QuarterHour:      "QuarterHourChime.wav",
	HalfHour:         "HalfHourChime.wav",
	ThreeQuarterHour: "3QuarterChime.wav",
	HourStrike:       "HourChime.wav",
	HourCount:        "HourCountChime.wav",
}

// ExecPlayer starts clips through the PulseAudio command line player. The
// clock only ever plays one clip at a time, so there is no queueing here.
type ExecPlayer struct {
	log *zap.Logger
	dir string

	mu    sync.Mutex
	gains map[Sound]float64
}

func NewExecPlayer(log *zap.Logger, soundDir string) *ExecPlayer {
	return &ExecPlayer{
		log:   log,
		dir:   soundDir,
		gains: make(map[Sound]float64, len(defaultFiles)),
	}
}

// SetVolume maps the user volume onto per-sound gains, keeping the relative
// loudness balance between clips.
func (p *ExecPlayer) SetVolume(percent int) {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	for s := range defaultFiles {
		p.gains[s] = float64(percent) / 100.0 * s.scale()
	}
}

// Play starts the clip and returns its length read from the wav header.
func (p *ExecPlayer) Play(ctx context.Context, s Sound) (time.Duration, error) {
	name, ok := defaultFiles[s]
	if !ok {
		return 0, fmt.Errorf("no clip for sound %v", s)
	}
	path := filepath.Join(p.dir, name)

	d, err := wavDuration(path)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", name, err)
	}

	p.mu.Lock()
	gain := p.gains[s]
	p.mu.Unlock()

	vol := int(gain * paplayFullVolume)
	cmd := exec.CommandContext(ctx, "paplay", fmt.Sprintf("--volume=%d", vol), path)
	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("paplay: %w", err)
	}
	go func() {
		if err := cmd.Wait(); err != nil && ctx.Err() == nil {
			p.log.Warn("paplay_exit", zap.String("sound", s.String()), zap.Error(err))
		}
	}()
	return d, nil
}

// wavDuration walks the RIFF chunks and computes data length / byte rate.
func wavDuration(path string) (time.Duration, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	var riff [12]byte
	if _, err := f.Read(riff[:]); err != nil {
		return 0, err
	}
	if string(riff[0:4]) != "RIFF" || string(riff[8:12]) != "WAVE" {
		return 0, errors.New("not a wav file")
	}

	var byteRate uint32
	var dataSize uint32
	var hdr [8]byte
	for {
		if _, err := f.Read(hdr[:]); err != nil {
			break
		}
		id := string(hdr[0:4])
		size := binary.LittleEndian.Uint32(hdr[4:8])
		switch id {
		case "fmt ":
			var fm [16]byte
			if _, err := f.Read(fm[:]); err != nil {
				return 0, err
			}
			byteRate = binary.LittleEndian.Uint32(fm[8:12])
			if size > 16 {
				if _, err := f.Seek(int64(size-16), io.SeekCurrent); err != nil {
					return 0, err
				}
			}
		case "data":
			dataSize = size
			if _, err := f.Seek(int64(size), io.SeekCurrent); err != nil {
				return 0, err
			}
		default:
			if _, err := f.Seek(int64(size), io.SeekCurrent); err != nil {
				return 0, err
			}
		}
		if byteRate != 0 && dataSize != 0 {
			break
		}
	}
	if byteRate == 0 || dataSize == 0 {
		return 0, errors.New("wav header missing fmt or data chunk")
	}
	secs := float64(dataSize) / float64(byteRate)
	return time.Duration(secs * float64(time.Second)), nil
}
