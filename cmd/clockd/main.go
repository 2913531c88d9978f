package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/dlawton/chimeclock/internal/audio"
	"github.com/dlawton/chimeclock/internal/buttons"
	"github.com/dlawton/chimeclock/internal/chime"
	"github.com/dlawton/chimeclock/internal/config"
	"github.com/dlawton/chimeclock/internal/device"
	"github.com/dlawton/chimeclock/internal/display"
	"github.com/dlawton/chimeclock/internal/httpapi"
	"github.com/dlawton/chimeclock/internal/logging"
	"github.com/dlawton/chimeclock/internal/metrics"
	"github.com/dlawton/chimeclock/internal/notify"
	storefile "github.com/dlawton/chimeclock/internal/store/file"
	storesqlite "github.com/dlawton/chimeclock/internal/store/sqlite"
	"github.com/dlawton/chimeclock/internal/weather"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger, err := logging.NewLogger(cfg.LogDir)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()
	logger.Info("clockd_starting")

	metrics.Register()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	player := audio.NewExecPlayer(logger, cfg.SoundDir)
	state := device.NewState(cfg.DefaultVolume, player)

	var store weather.AlertStore
	if cfg.StoreDriver == "sqlite" {
		s, err := storesqlite.Open(cfg.StorePath)
		if err != nil {
			log.Fatal(err)
		}
		defer s.Close()
		store = s
	} else {
		store = storefile.New(cfg.StorePath)
	}

	feed := weather.NewNWS(cfg.Latitude, cfg.Longitude, cfg.ContactEmail, cfg.FetchTimeout)
	notifier := notify.Multi{notify.NewProwl(cfg.ProwlKey, "")}
	recon := weather.NewReconciler(logger, store, feed, notifier)
	poller := weather.NewPoller(logger,
		weather.NewOpenWeather(cfg.WeatherKey, cfg.Zip, cfg.FetchTimeout),
		weather.NewAirVisual(cfg.AirKey, cfg.Latitude, cfg.Longitude, cfg.FetchTimeout),
		recon,
	)

	// Buttons are optional: off the appliance there is no GPIO chip.
	if src, err := buttons.NewGPIO(logger); err != nil {
		logger.Warn("buttons_unavailable", zap.Error(err))
	} else {
		defer src.Close()
		go func() {
			for b := range src.Events() {
				state.HandleButton(b)
			}
		}()
	}

	api := httpapi.NewServer(logger, state)
	go func() {
		logger.Info("api_listen", zap.String("addr", cfg.Addr))
		if err := http.ListenAndServe(cfg.Addr, api.Router()); err != nil {
			logger.Error("api_stopped", zap.Error(err))
		}
	}()

	// Warm the cached readings so the first face refresh shows weather.
	r := poller.Poll(ctx)
	if r.TempC > -100 {
		state.SetTempC(r.TempC)
	}
	if r.AQI > -100 {
		state.SetAQI(r.AQI)
	}

	sched := chime.New(logger, state, player, &display.Console{Log: logger}, poller)
	sched.Run(ctx)
	logger.Info("clockd_stopped")
}
