package spin

import (
	"math"
	"testing"

	"github.com/taigrr/orbitview/pkg/math3d"
)

func TestVelocityDecays(t *testing.T) {
	s := New(60)
	s.ApplyImpulse(0, 1, 0)

	prev := s.Yaw.Velocity
	for i := range 600 {
		s.Update()
		v := s.Yaw.Velocity
		if v < 0 {
			t.Fatalf("frame %d: velocity overshot to %v", i, v)
		}
		if v > prev {
			t.Fatalf("frame %d: velocity grew from %v to %v", i, prev, v)
		}
		prev = v
	}

	if s.Moving() {
		t.Errorf("still moving after 10s: yaw velocity %v", s.Yaw.Velocity)
	}
	if s.Yaw.Position <= 1 {
		t.Errorf("yaw position %v, want more than the first frame's step", s.Yaw.Position)
	}
	if s.Pitch.Position != 0 || s.Roll.Position != 0 {
		t.Errorf("untouched axes moved: pitch %v roll %v", s.Pitch.Position, s.Roll.Position)
	}
}

func TestImpulsesAccumulate(t *testing.T) {
	s := New(30)
	s.ApplyImpulse(0.5, -0.25, 1)
	s.ApplyImpulse(0.5, -0.25, 1)

	if s.Pitch.Velocity != 1 || s.Yaw.Velocity != -0.5 || s.Roll.Velocity != 2 {
		t.Errorf("velocities = %v, %v, %v", s.Pitch.Velocity, s.Yaw.Velocity, s.Roll.Velocity)
	}
}

func TestReset(t *testing.T) {
	s := New(60)
	s.ApplyImpulse(1, 2, 3)
	for range 10 {
		s.Update()
	}
	s.Reset()

	for name, a := range map[string]Axis{"pitch": s.Pitch, "yaw": s.Yaw, "roll": s.Roll} {
		if a.Position != 0 || a.Velocity != 0 {
			t.Errorf("%s = %+v after reset", name, a)
		}
	}
	if s.Transform() != math3d.Identity() {
		t.Error("transform after reset is not identity")
	}
	if s.Moving() {
		t.Error("Moving() after reset")
	}
}

func TestTransform(t *testing.T) {
	s := New(60)
	s.Yaw.Position = math.Pi / 2

	// Quarter turn around +Y takes +X to -Z.
	got := s.Transform().MulVec3(math3d.V3(1, 0, 0))
	if math.Abs(got.X) > 1e-12 || math.Abs(got.Y) > 1e-12 || math.Abs(got.Z+1) > 1e-12 {
		t.Errorf("yaw π/2 maps +X to %v, want (0, 0, -1)", got)
	}
}
