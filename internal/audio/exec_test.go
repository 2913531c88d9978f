package audio

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
)

// writeWav produces a minimal canonical wav: 44100 Hz, 16-bit mono, with
// enough data bytes for the requested length.
func writeWav(t *testing.T, path string, length time.Duration) {
	t.Helper()
	const sampleRate = 44100
	const blockAlign = 2
	byteRate := uint32(sampleRate * blockAlign)
	dataSize := uint32(float64(byteRate) * length.Seconds())

	buf := make([]byte, 0, 44+int(dataSize))
	buf = append(buf, "RIFF"...)
	buf = binary.LittleEndian.AppendUint32(buf, 36+dataSize)
	buf = append(buf, "WAVE"...)
	buf = append(buf, "fmt "...)
	buf = binary.LittleEndian.AppendUint32(buf, 16)
	buf = binary.LittleEndian.AppendUint16(buf, 1) // PCM
	buf = binary.LittleEndian.AppendUint16(buf, 1) // mono
	buf = binary.LittleEndian.AppendUint32(buf, sampleRate)
	buf = binary.LittleEndian.AppendUint32(buf, byteRate)
	buf = binary.LittleEndian.AppendUint16(buf, blockAlign)
	buf = binary.LittleEndian.AppendUint16(buf, 16)
	buf = append(buf, "data"...)
	buf = binary.LittleEndian.AppendUint32(buf, dataSize)
	buf = append(buf, make([]byte, dataSize)...)

	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestWavDuration(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clip.wav")
	writeWav(t, path, 2*time.Second)

	d, err := wavDuration(path)
	if err != nil {
		t.Fatalf("wavDuration: %v", err)
	}
	if d < 1900*time.Millisecond || d > 2100*time.Millisecond {
		t.Fatalf("duration = %v, want ~2s", d)
	}
}

func TestWavDuration_NotWav(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "junk.wav")
	if err := os.WriteFile(path, []byte("definitely not riff data"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := wavDuration(path); err == nil {
		t.Fatal("expected error for non-wav file")
	}
}

func TestSetVolume_ScalesPerSound(t *testing.T) {
	p := NewExecPlayer(zap.NewNop(), t.TempDir())
	p.SetVolume(100)

	p.mu.Lock()
	defer p.mu.Unlock()
	if g := p.gains[HourStrike]; g != 1.0 {
		t.Fatalf("hour strike gain = %v, want 1.0", g)
	}
	if g := p.gains[HourCount]; g != 0.80 {
		t.Fatalf("hour count gain = %v, want 0.80", g)
	}
	if g := p.gains[QuarterHour]; g != 0.90 {
		t.Fatalf("quarter gain = %v, want 0.90", g)
	}
}

func TestSetVolume_ClampsInput(t *testing.T) {
	p := NewExecPlayer(zap.NewNop(), t.TempDir())
	p.SetVolume(250)
	p.mu.Lock()
	g := p.gains[HalfHour]
	p.mu.Unlock()
	if g != 1.0 {
		t.Fatalf("gain = %v, want clamp to 1.0", g)
	}
}
