package particles

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

// Mode selects the motion policy applied on each update.
type Mode int

const (
	// ModeLinear pins every particle's height to its frequency bin.
	ModeLinear Mode = iota
	// ModeBurst advances particles along x by velocity scaled with their
	// bin, respawning any axis that leaves the boundary cube.
	ModeBurst
)

func (m Mode) String() string {
	if m == ModeBurst {
		return "burst"
	}
	return "linear"
}

const (
	// DefaultCount is the particle count when none is configured.
	DefaultCount = 500

	// Boundary is the half-width of the cube particles live in under
	// burst mode.
	Boundary = 10.0

	spawnRange = 5.0
	liftScale  = 3.0
)

// Particle is one point of the field. Velocity y and z are reserved and stay
// zero; only x drives motion under the current policies.
type Particle struct {
	Pos mgl32.Vec3
	Vel mgl32.Vec3
}

// Field holds a fixed-size particle array. It is created once and never
// resized; Update mutates positions in place.
type Field struct {
	P   []Particle
	rng *rand.Rand
}

// New creates a field of count particles with uniform random positions in
// [-5,5]^3 and uniform random x velocities in [-1,1].
func New(count int, seed int64) *Field {
	if count <= 0 {
		count = DefaultCount
	}
	f := &Field{
		P:   make([]Particle, count),
		rng: rand.New(rand.NewSource(seed)),
	}
	for i := range f.P {
		p := &f.P[i]
		p.Pos = mgl32.Vec3{f.spawn(), f.spawn(), f.spawn()}
		p.Vel = mgl32.Vec3{f.rng.Float32()*2 - 1, 0, 0}
	}
	return f
}

func (f *Field) spawn() float32 {
	return (f.rng.Float32()*2 - 1) * spawnRange
}

// Len returns the particle count.
func (f *Field) Len() int { return len(f.P) }

// Update applies one frame of motion. Each particle i reads bin i modulo the
// snapshot length, scaled to [0,1]; a nil or empty snapshot means silence and
// every scale is zero. It never allocates and never returns an error.
func (f *Field) Update(snapshot []byte, mode Mode) {
	for i := range f.P {
		p := &f.P[i]

		var scale float32
		if len(snapshot) > 0 {
			scale = float32(snapshot[i%len(snapshot)]) / 255
		}

		switch mode {
		case ModeBurst:
			p.Pos[0] += p.Vel[0] * scale
			// Any axis past the boundary respawns on its own. Only x
			// can actually get there, but y and z are checked the same
			// way on purpose.
			for axis := 0; axis < 3; axis++ {
				if p.Pos[axis] > Boundary || p.Pos[axis] < -Boundary {
					p.Pos[axis] = f.spawn()
				}
			}
		default:
			p.Pos[1] = scale * liftScale
		}
	}
}
