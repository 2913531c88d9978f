// cmd/preflight/main.go
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dlawton/chimeclock/internal/config"
)

var soundFiles = []string{
	"QuarterHourChime.wav",
	"HalfHourChime.wav",
	"3QuarterChime.wav",
	"HourChime.wav",
	"HourCountChime.wav",
}

func main() {
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	cfg, err := config.Load()
	if err != nil {
		fail(fmt.Sprintf("config: %v", err))
	}
	ok("config loads")

	if cfg.WeatherKey == "" {
		warn("weather_key is empty (temperature will read as unavailable).")
	}
	if cfg.AirKey == "" {
		warn("air_key is empty (AQI will read as unavailable).")
	}
	if cfg.ProwlKey == "" {
		warn("prowl_key is empty (severe-weather pushes disabled).")
	}
	if cfg.Zip == "" {
		warn("zip is empty (weather lookups will fail).")
	}
	if cfg.Latitude == 0 && cfg.Longitude == 0 {
		warn("latitude/longitude unset (AQI and alert lookups will fail).")
	}
	if cfg.ContactEmail == "" {
		warn("contact_email is empty (the alert API may rate-limit anonymous clients).")
	}

	missing := 0
	for _, name := range soundFiles {
		if _, err := os.Stat(filepath.Join(cfg.SoundDir, name)); err != nil {
			warn(fmt.Sprintf("sound missing: %s", name))
			missing++
		}
	}
	if missing == 0 {
		ok("all five chime sounds present")
	} else if missing == len(soundFiles) {
		fail(fmt.Sprintf("no chime sounds in %s", cfg.SoundDir))
	}

	dir := filepath.Dir(cfg.StorePath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		fail(fmt.Sprintf("store dir %s not writable: %v", dir, err))
	}
	probe := filepath.Join(dir, ".preflight")
	if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
		fail(fmt.Sprintf("store dir %s not writable: %v", dir, err))
	}
	os.Remove(probe)
	ok("alert store path writable")

	ok("preflight passed")
}
