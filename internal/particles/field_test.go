package particles

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNewInitialRanges(t *testing.T) {
	for _, count := range []int{1, 128, 500} {
		f := New(count, 42)
		if f.Len() != count {
			t.Fatalf("expected %d particles, got %d", count, f.Len())
		}
		for i, p := range f.P {
			for axis := 0; axis < 3; axis++ {
				if p.Pos[axis] < -5 || p.Pos[axis] > 5 {
					t.Fatalf("particle %d axis %d spawned at %f, outside [-5,5]", i, axis, p.Pos[axis])
				}
			}
			if p.Vel[0] < -1 || p.Vel[0] > 1 {
				t.Fatalf("particle %d velocity x %f outside [-1,1]", i, p.Vel[0])
			}
			if p.Vel[1] != 0 || p.Vel[2] != 0 {
				t.Fatalf("particle %d velocity y/z not zero: %v", i, p.Vel)
			}
		}
	}
}

func TestDefaultCount(t *testing.T) {
	if got := New(0, 1).Len(); got != DefaultCount {
		t.Fatalf("expected default count %d, got %d", DefaultCount, got)
	}
}

func TestLinearTouchesOnlyY(t *testing.T) {
	f := New(100, 7)
	before := make([]Particle, len(f.P))
	copy(before, f.P)

	snapshot := make([]byte, 32)
	for i := range snapshot {
		snapshot[i] = byte(i * 8)
	}
	f.Update(snapshot, ModeLinear)

	for i, p := range f.P {
		if p.Pos[0] != before[i].Pos[0] || p.Pos[2] != before[i].Pos[2] {
			t.Fatalf("particle %d x/z changed in linear mode: %v -> %v", i, before[i].Pos, p.Pos)
		}
		want := float32(snapshot[i%len(snapshot)]) / 255 * 3
		if math.Abs(float64(p.Pos[1]-want)) > 1e-6 {
			t.Fatalf("particle %d y = %f, want %f", i, p.Pos[1], want)
		}
	}
}

func TestBurstStaysInsideBoundary(t *testing.T) {
	f := New(200, 9)
	// Park some particles right at the edge so the respawn path runs.
	for i := 0; i < 50; i++ {
		f.P[i].Pos[0] = 9.99
		f.P[i].Vel[0] = 1
	}
	snapshot := make([]byte, 128)
	for i := range snapshot {
		snapshot[i] = 255
	}

	for frame := 0; frame < 100; frame++ {
		f.Update(snapshot, ModeBurst)
		for i, p := range f.P {
			for axis := 0; axis < 3; axis++ {
				if p.Pos[axis] > Boundary || p.Pos[axis] < -Boundary {
					t.Fatalf("frame %d particle %d axis %d at %f, outside boundary", frame, i, axis, p.Pos[axis])
				}
			}
		}
	}
}

func TestSnapshotIndexWraparound(t *testing.T) {
	f := New(500, 3)
	snapshot := make([]byte, 128)
	snapshot[0] = 200

	f.Update(snapshot, ModeLinear)

	// Particle 128 wraps to bin 0, as does 256 and 384.
	want := float32(200) / 255 * 3
	for _, i := range []int{0, 128, 256, 384} {
		if math.Abs(float64(f.P[i].Pos[1]-want)) > 1e-6 {
			t.Fatalf("particle %d y = %f, want %f (bin 0)", i, f.P[i].Pos[1], want)
		}
	}
	if f.P[1].Pos[1] != 0 {
		t.Fatalf("particle 1 y = %f, want 0 (bin 1 is silent)", f.P[1].Pos[1])
	}
}

func TestNilSnapshotIsSilence(t *testing.T) {
	f := New(50, 11)
	f.Update(nil, ModeLinear)
	for i, p := range f.P {
		if p.Pos[1] != 0 {
			t.Fatalf("particle %d y = %f, want 0 with no snapshot", i, p.Pos[1])
		}
	}

	before := make([]Particle, len(f.P))
	copy(before, f.P)
	f.Update(nil, ModeBurst)
	for i, p := range f.P {
		if p.Pos != before[i].Pos {
			t.Fatalf("particle %d moved in burst mode with no snapshot: %v -> %v", i, before[i].Pos, p.Pos)
		}
	}
}

func TestModeSwitchKeepsState(t *testing.T) {
	f := New(64, 5)
	snapshot := make([]byte, 64)
	for i := range snapshot {
		snapshot[i] = 128
	}

	for frame := 0; frame < 10; frame++ {
		f.Update(snapshot, ModeBurst)
	}
	before := make([]Particle, len(f.P))
	copy(before, f.P)

	// Switching the mode must not reset anything; only the rule changes.
	f.Update(snapshot, ModeLinear)
	for i, p := range f.P {
		if p.Pos[0] != before[i].Pos[0] || p.Pos[2] != before[i].Pos[2] {
			t.Fatalf("particle %d x/z reset across mode switch", i)
		}
		if p.Vel != before[i].Vel {
			t.Fatalf("particle %d velocity changed across mode switch", i)
		}
	}
}

func TestBurstAdvance(t *testing.T) {
	f := New(4, 1)
	for i := range f.P {
		f.P[i].Pos = mgl32.Vec3{}
		f.P[i].Vel = mgl32.Vec3{1, 0, 0}
	}

	f.Update([]byte{255, 0, 255, 0}, ModeBurst)

	want := []float32{1, 0, 1, 0}
	for i, p := range f.P {
		if p.Pos[0] != want[i] {
			t.Fatalf("particle %d x = %f, want %f", i, p.Pos[0], want[i])
		}
		if p.Pos[1] != 0 || p.Pos[2] != 0 {
			t.Fatalf("particle %d y/z moved in burst mode: %v", i, p.Pos)
		}
	}
}
