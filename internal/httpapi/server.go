package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/dlawton/chimeclock/internal/device"
)

// Server is the LAN status surface: read the clock's state, nudge the
// volume, toggle mute. It only ever touches DeviceState through its public
// operations, so anything invalid is clamped, not rejected.
type Server struct {
	Logger *zap.Logger
	State  *device.State
}

func NewServer(l *zap.Logger, st *device.State) *Server {
	return &Server{Logger: l, State: st}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/api/status", s.handleStatus)
	r.Post("/api/mute", s.handleMute)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

type statusPayload struct {
	Volume int     `json:"volume"`
	Muted  bool    `json:"muted"`
	TempC  float64 `json:"temp_c"`
	TempF  int     `json:"temp_f"`
	AQI    int     `json:"aqi"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if v := r.URL.Query().Get("volume"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "volume must be an integer", http.StatusBadRequest)
			return
		}
		s.State.SetVolume(n)
		s.Logger.Info("volume_set_via_api", zap.Int("requested", n), zap.Int("volume", s.State.Volume()))
	}

	snap := s.State.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(statusPayload{
		Volume: snap.Volume,
		Muted:  snap.Muted,
		TempC:  snap.TempC,
		TempF:  int(snap.TempC*9.0/5.0) + 32,
		AQI:    snap.AQI,
	})
}

func (s *Server) handleMute(w http.ResponseWriter, r *http.Request) {
	s.State.ToggleMute()
	snap := s.State.Snapshot()
	s.Logger.Info("mute_toggled_via_api", zap.Bool("muted", snap.Muted))
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]bool{"muted": snap.Muted})
}
