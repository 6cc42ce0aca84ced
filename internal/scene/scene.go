package scene

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/rs/zerolog"

	"github.com/GiaredL/audioviz/internal/app"
	"github.com/GiaredL/audioviz/internal/audio"
	"github.com/GiaredL/audioviz/internal/particles"
)

const (
	// rotationStep is the constant field rotation per frame, radians
	// around the vertical axis.
	rotationStep = 0.0009

	pointRadius = 2

	// Checkbox for the motion mode
	checkX, checkY, checkSize = 20, 20, 14

	// Device panel
	panelX, panelY = 20, 46
	rowWidth       = 300
	rowHeight      = 18
	panelButtonW   = 120
	panelButtonH   = 20
)

// Scene is the frame loop: each tick it pulls the latest frequency snapshot,
// updates the particle field, advances the rotation, and draws one pass of
// the point cloud plus the control glue.
type Scene struct {
	log      zerolog.Logger
	pipeline *app.Pipeline
	field    *particles.Field
	camera   *Camera

	yaw        float64
	haveSignal bool

	devices     []audio.Device
	showDevices bool
}

func New(log zerolog.Logger, pipeline *app.Pipeline, field *particles.Field, width, height int) *Scene {
	s := &Scene{
		log:      log,
		pipeline: pipeline,
		field:    field,
		camera:   NewCamera(width, height),
	}
	s.refreshDevices()
	return s
}

func (s *Scene) refreshDevices() {
	devices, err := s.pipeline.Devices()
	if err != nil {
		s.log.Warn().Err(err).Msg("enumerating devices")
		return
	}
	s.devices = devices
}

func (s *Scene) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		s.toggleMode()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		s.toggleDevicePanel()
	}
	s.handleClicks()

	s.yaw += rotationStep

	snapshot := s.pipeline.Snapshot()
	s.haveSignal = snapshot != nil
	s.field.Update(snapshot, s.pipeline.Mode())

	return nil
}

func (s *Scene) toggleMode() {
	if s.pipeline.Mode() == particles.ModeBurst {
		s.pipeline.SetMode(particles.ModeLinear)
	} else {
		s.pipeline.SetMode(particles.ModeBurst)
	}
}

func (s *Scene) toggleDevicePanel() {
	s.showDevices = !s.showDevices
	if s.showDevices {
		s.refreshDevices()
	}
}

func (s *Scene) handleClicks() {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()

	if mx >= checkX && mx <= checkX+checkSize+90 && my >= checkY && my <= checkY+checkSize {
		s.toggleMode()
		return
	}
	if mx >= panelX && mx <= panelX+panelButtonW && my >= panelY && my <= panelY+panelButtonH {
		s.toggleDevicePanel()
		return
	}
	if s.showDevices {
		top := panelY + panelButtonH + 4
		for i, d := range s.devices {
			y := top + i*rowHeight
			if mx >= panelX && mx <= panelX+rowWidth && my >= y && my <= y+rowHeight {
				s.log.Info().Str("device", d.ID).Msg("input device selected")
				s.pipeline.SetDevice(d.ID)
				s.showDevices = false
				return
			}
		}
	}
}

func (s *Scene) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 8, G: 10, B: 18, A: 255})

	s.drawParticles(screen)
	s.drawControls(screen)
}

func (s *Scene) drawParticles(screen *ebiten.Image) {
	rot := mgl32.HomogRotate3DY(float32(s.yaw))
	n := s.field.Len()
	for i := range s.field.P {
		world := mgl32.TransformCoordinate(s.field.P[i].Pos, rot)
		x, y, depth, ok := s.camera.Project(world)
		if !ok {
			continue
		}

		hue := float64(i) / float64(n) * 360
		r, g, b := hsvToRgb(hue, 0.55, 1.0-0.4*float64(depth))
		vector.DrawFilledCircle(screen, x, y, pointRadius, color.RGBA{R: r, G: g, B: b, A: 255}, false)
	}
}

func (s *Scene) drawControls(screen *ebiten.Image) {
	// Mode checkbox
	border := color.RGBA{R: 150, G: 170, B: 200, A: 255}
	vector.StrokeRect(screen, checkX, checkY, checkSize, checkSize, 1, border, false)
	if s.pipeline.Mode() == particles.ModeBurst {
		vector.DrawFilledRect(screen, checkX+3, checkY+3, checkSize-6, checkSize-6, border, false)
	}
	ebitenutil.DebugPrintAt(screen, "burst mode", checkX+checkSize+6, checkY)

	// Device panel toggle
	vector.DrawFilledRect(screen, panelX, panelY, panelButtonW, panelButtonH, color.RGBA{R: 40, G: 50, B: 70, A: 255}, false)
	vector.StrokeRect(screen, panelX, panelY, panelButtonW, panelButtonH, 1, border, false)
	ebitenutil.DebugPrintAt(screen, "input device", panelX+8, panelY+2)

	if s.showDevices {
		top := panelY + panelButtonH + 4
		current := s.pipeline.Device()
		for i, d := range s.devices {
			y := top + i*rowHeight
			vector.DrawFilledRect(screen, panelX, float32(y), rowWidth, rowHeight, color.RGBA{R: 25, G: 30, B: 45, A: 230}, false)
			label := "  " + d.Name
			if d.ID == current || (current == "" && d.Default) {
				label = "> " + d.Name
			}
			ebitenutil.DebugPrintAt(screen, label, panelX+4, y+2)
		}
	}

	status := fmt.Sprintf("mode: %s", s.pipeline.Mode())
	if !s.haveSignal {
		status += " | no audio (select a device with D)"
	}
	ebitenutil.DebugPrintAt(screen, status, 12, screen.Bounds().Dy()-20)
}

func (s *Scene) Layout(outsideWidth, outsideHeight int) (int, int) {
	s.camera.SetViewport(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
