package audio

import "errors"

// Capture errors. Open wraps one of these so callers can classify the
// failure; on any of them the visualizer carries on without audio.
var (
	ErrDeviceUnavailable = errors.New("audio: device unavailable")
	ErrPermissionDenied  = errors.New("audio: microphone permission denied")
	ErrUnsupported       = errors.New("audio: platform audio unavailable")
)

// Device represents an audio input device.
type Device struct {
	ID      string
	Name    string
	Default bool
}

// Source yields the most recent frequency magnitudes of a running capture.
type Source interface {
	// Snapshot returns a copy of the latest magnitude bins (0-255 per bin).
	// It never blocks.
	Snapshot() []byte
	// Close stops the capture and releases the device.
	Close() error
}

// Capture defines the interface for audio capture.
type Capture interface {
	// Open acquires the named input device and starts frequency analysis.
	// An empty deviceID selects the platform default input.
	Open(deviceID string) (Source, error)
	ListDevices() ([]Device, error)
	Close() error
}
