package main

import (
	"errors"
	"flag"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/GiaredL/audioviz/internal/app"
	"github.com/GiaredL/audioviz/internal/audio"
	"github.com/GiaredL/audioviz/internal/config"
	"github.com/GiaredL/audioviz/internal/logging"
	"github.com/GiaredL/audioviz/internal/particles"
	"github.com/GiaredL/audioviz/internal/permissions"
	"github.com/GiaredL/audioviz/internal/scene"
)

func main() {
	cfg := config.Default()
	flag.StringVar(&cfg.Device, "device", cfg.Device, "input device name (empty = default input)")
	flag.BoolVar(&cfg.Burst, "burst", cfg.Burst, "start in burst mode")
	flag.IntVar(&cfg.ParticleCount, "particles", cfg.ParticleCount, "number of particles")
	flag.IntVar(&cfg.SampleRate, "sample-rate", cfg.SampleRate, "capture sample rate")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	flag.Parse()

	log := logging.New(cfg.LogLevel)

	// A denied microphone only costs the audio reactivity; the field still
	// renders, so none of these failures are fatal.
	if err := permissions.EnsureMicrophone(); err != nil {
		log.Warn().Err(err).Msg("microphone permission missing, continuing without audio")
	}

	capture, err := audio.New(cfg.SampleRate, cfg.FFTSize)
	if err != nil {
		log.Error().Err(err).Msg("audio init failed, continuing without audio")
		capture = audio.Unavailable()
	}
	defer capture.Close()

	mode := particles.ModeLinear
	if cfg.Burst {
		mode = particles.ModeBurst
	}

	pipeline := app.New(app.Config{
		Capture: capture,
		Device:  cfg.Device,
		Mode:    mode,
		Logger:  log,
	})
	pipeline.Start()
	defer pipeline.Close()

	field := particles.New(cfg.ParticleCount, time.Now().UnixNano())

	ebiten.SetWindowSize(cfg.WindowWidth, cfg.WindowHeight)
	ebiten.SetWindowTitle("audioviz - Space: mode, D: devices, Esc/Q: quit")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	s := scene.New(log, pipeline, field, cfg.WindowWidth, cfg.WindowHeight)
	if err := ebiten.RunGame(s); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal().Err(err).Msg("render loop failed")
	}
	log.Info().Msg("shutting down")
}
