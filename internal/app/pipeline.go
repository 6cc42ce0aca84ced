package app

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/GiaredL/audioviz/internal/audio"
	"github.com/GiaredL/audioviz/internal/particles"
)

// Config bundles the collaborators a Pipeline needs.
type Config struct {
	Capture audio.Capture
	Device  string
	Mode    particles.Mode
	Logger  zerolog.Logger
}

// Pipeline owns the capture lifecycle. Changing the device or the motion
// mode tears the current capture down and reopens it; opens run
// asynchronously and are stamped with a generation so a slow open that
// resolves after a newer selection is discarded instead of installed.
type Pipeline struct {
	capture audio.Capture
	log     zerolog.Logger

	mu         sync.Mutex
	source     audio.Source
	deviceID   string
	mode       particles.Mode
	generation uint64
	closed     bool
}

func New(cfg Config) *Pipeline {
	return &Pipeline{
		capture:  cfg.Capture,
		log:      cfg.Logger,
		deviceID: cfg.Device,
		mode:     cfg.Mode,
	}
}

// Start opens the initial capture.
func (p *Pipeline) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rebuildLocked()
}

// rebuildLocked releases the current capture and kicks off a new open for
// the current device. Callers hold p.mu.
func (p *Pipeline) rebuildLocked() {
	if p.source != nil {
		if err := p.source.Close(); err != nil {
			p.log.Warn().Err(err).Msg("closing capture")
		}
		p.source = nil
	}
	if p.closed {
		return
	}

	p.generation++
	gen := p.generation
	device := p.deviceID

	go func() {
		src, err := p.capture.Open(device)
		if err != nil {
			p.log.Error().Err(err).Str("device", device).Msg("capture open failed, running silent")
			return
		}

		p.mu.Lock()
		if p.closed || gen != p.generation {
			p.mu.Unlock()
			// A newer selection superseded this open.
			src.Close()
			return
		}
		p.source = src
		p.mu.Unlock()
		p.log.Info().Str("device", device).Msg("capture started")
	}()
}

// SetDevice switches the input device and rebuilds the capture.
func (p *Pipeline) SetDevice(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.deviceID == id {
		return
	}
	p.deviceID = id
	p.rebuildLocked()
}

// SetMode switches the motion mode. The capture is rebuilt as well, matching
// the original behavior where either dependency changing re-established the
// whole pipeline. Particle state is untouched.
func (p *Pipeline) SetMode(m particles.Mode) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.mode == m {
		return
	}
	p.mode = m
	p.rebuildLocked()
}

// Snapshot returns the latest frequency bins, or nil while no capture is
// running (open in flight, open failed, or closed).
func (p *Pipeline) Snapshot() []byte {
	p.mu.Lock()
	src := p.source
	p.mu.Unlock()
	if src == nil {
		return nil
	}
	return src.Snapshot()
}

func (p *Pipeline) Mode() particles.Mode {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mode
}

func (p *Pipeline) Device() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.deviceID
}

// Devices enumerates the available input devices.
func (p *Pipeline) Devices() ([]audio.Device, error) {
	return p.capture.ListDevices()
}

// Close releases the capture and invalidates any open still in flight.
func (p *Pipeline) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	p.generation++
	if p.source != nil {
		err := p.source.Close()
		p.source = nil
		return err
	}
	return nil
}
