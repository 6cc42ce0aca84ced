package audio

import (
	"context"
	"fmt"

	"github.com/gordonklaus/portaudio"
)

type portAudioCapture struct {
	sampleRate int
	fftSize    int
}

// New initializes PortAudio and returns a capture bound to the given sample
// rate and transform size.
func New(sampleRate, fftSize int) (Capture, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}
	if fftSize <= 0 {
		fftSize = DefaultFFTSize
	}
	return &portAudioCapture{sampleRate: sampleRate, fftSize: fftSize}, nil
}

func (p *portAudioCapture) Open(deviceID string) (Source, error) {
	var device *portaudio.DeviceInfo
	if deviceID == "" {
		var err error
		device, err = portaudio.DefaultInputDevice()
		if err != nil {
			return nil, fmt.Errorf("%w: no default input: %v", ErrDeviceUnavailable, err)
		}
	} else {
		devices, err := portaudio.Devices()
		if err != nil {
			return nil, fmt.Errorf("%w: enumerating devices: %v", ErrDeviceUnavailable, err)
		}
		for _, d := range devices {
			if d.Name == deviceID {
				device = d
				break
			}
		}
	}
	if device == nil {
		return nil, fmt.Errorf("%w: %q", ErrDeviceUnavailable, deviceID)
	}

	// Mono capture, one transform window per buffer.
	buffer := make([]float32, p.fftSize)
	stream, err := portaudio.OpenStream(portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Device:   device,
			Channels: 1,
			Latency:  device.DefaultLowInputLatency,
		},
		SampleRate:      float64(p.sampleRate),
		FramesPerBuffer: len(buffer),
	}, buffer)
	if err != nil {
		return nil, fmt.Errorf("%w: opening stream on %q: %v", ErrDeviceUnavailable, device.Name, err)
	}

	if err := stream.Start(); err != nil {
		stream.Close()
		return nil, fmt.Errorf("%w: starting stream on %q: %v", ErrDeviceUnavailable, device.Name, err)
	}

	analyzer := NewAnalyzer(p.fftSize)
	ctx, cancel := context.WithCancel(context.Background())

	// Read loop. The analyzer sees every buffer the device delivers; frames
	// pull whatever bins are current at the time.
	go func() {
		defer stream.Close()
		for {
			select {
			case <-ctx.Done():
				return
			default:
				if err := stream.Read(); err != nil {
					return
				}
				analyzer.Process(buffer)
			}
		}
	}()

	analyzer.stop = func() error {
		cancel()
		return stream.Stop()
	}
	return analyzer, nil
}

func (p *portAudioCapture) ListDevices() ([]Device, error) {
	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}

	result := make([]Device, 0, len(devices))
	defaultDevice, _ := portaudio.DefaultInputDevice()

	for _, d := range devices {
		if d.MaxInputChannels > 0 {
			result = append(result, Device{
				ID:      d.Name,
				Name:    d.Name,
				Default: d == defaultDevice,
			})
		}
	}
	return result, nil
}

func (p *portAudioCapture) Close() error {
	portaudio.Terminate()
	return nil
}

type unavailableCapture struct{}

// Unavailable returns a Capture whose opens always fail. It stands in when
// PortAudio cannot be initialized, so the visualizer still runs in silence.
func Unavailable() Capture { return unavailableCapture{} }

func (unavailableCapture) Open(string) (Source, error)    { return nil, ErrUnsupported }
func (unavailableCapture) ListDevices() ([]Device, error) { return nil, nil }
func (unavailableCapture) Close() error                   { return nil }
