package config

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr          string        `yaml:"addr"`            // status API bind address
	LogDir        string        `yaml:"log_dir"`         // logs directory
	SoundDir      string        `yaml:"sound_dir"`       // directory holding the chime wav files
	DefaultVolume int           `yaml:"default_volume"`  // chime volume at startup, 0-100
	Latitude      float64       `yaml:"latitude"`        // for AQI and alert lookups
	Longitude     float64       `yaml:"longitude"`       //
	Zip           string        `yaml:"zip"`             // "12345,us" for the weather lookup
	WeatherKey    string        `yaml:"weather_key"`     // OpenWeatherMap API key
	AirKey        string        `yaml:"air_key"`         // AirVisual API key
	ProwlKey      string        `yaml:"prowl_key"`       // empty disables push notifications
	StoreDriver   string        `yaml:"store_driver"`    // "file" or "sqlite"
	StorePath     string        `yaml:"store_path"`      // seen-alert store location
	ContactEmail  string        `yaml:"contact_email"`   // the NWS API wants one in the User-Agent
	FetchTimeout  time.Duration `yaml:"fetch_timeout"`   // per external call
}

// Load builds the configuration from defaults, then the yaml file named by
// CLOCK_CONFIG (if any), then individual environment overrides.
func Load() (Config, error) {
	cfg := Config{
		Addr:          "127.0.0.1:8080",
		LogDir:        "logs",
		SoundDir:      "/var/lib/chimeclock/sounds",
		DefaultVolume: 40,
		StoreDriver:   "file",
		StorePath:     "/var/lib/chimeclock/alerts.json",
		FetchTimeout:  10 * time.Second,
	}

	if path := os.Getenv("CLOCK_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}

	if v := os.Getenv("CLOCK_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("LOG_DIR"); v != "" {
		cfg.LogDir = v
	}
	if v := os.Getenv("SOUND_DIR"); v != "" {
		cfg.SoundDir = v
	}
	if v := os.Getenv("DEFAULT_VOLUME"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.DefaultVolume = n
		}
	}
	if v := os.Getenv("CLOCK_LAT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Latitude = f
		}
	}
	if v := os.Getenv("CLOCK_LON"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Longitude = f
		}
	}
	if v := os.Getenv("CLOCK_ZIP"); v != "" {
		cfg.Zip = v
	}
	if v := os.Getenv("OPENWEATHER_KEY"); v != "" {
		cfg.WeatherKey = v
	}
	if v := os.Getenv("AIRVISUAL_KEY"); v != "" {
		cfg.AirKey = v
	}
	if v := os.Getenv("PROWL_KEY"); v != "" {
		cfg.ProwlKey = v
	}
	if v := os.Getenv("STORE_DRIVER"); v != "" {
		cfg.StoreDriver = v
	}
	if v := os.Getenv("STORE_PATH"); v != "" {
		cfg.StorePath = v
	}
	if v := os.Getenv("CONTACT_EMAIL"); v != "" {
		cfg.ContactEmail = v
	}
	if v := os.Getenv("FETCH_TIMEOUT_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			cfg.FetchTimeout = time.Duration(ms) * time.Millisecond
		}
	}

	return cfg, nil
}
