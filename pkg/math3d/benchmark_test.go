package math3d

import "testing"

var (
	sinkVec3  Vec3
	sinkVec4  Vec4
	sinkMat4  Mat4
	sinkFloat float64
)

// BenchmarkOrbitStep is the per-frame math of an orbiting camera: clamp the
// angles, convert to an offset and add the target.
func BenchmarkOrbitStep(b *testing.B) {
	s := NewSpherical(4, 0.5, 1.0)
	target := V3(0.25, 0, -1)

	for b.Loop() {
		s.Phi -= 0.01
		s.MakeSafe()
		sinkVec3 = target.Add(s.ToVec3())
	}
}

func BenchmarkSpherical(b *testing.B) {
	v := V3(1, 2, 3)
	s := NewSpherical(10, 0.7, 1.1)

	b.Run("ToVec3", func(b *testing.B) {
		for b.Loop() {
			sinkVec3 = s.ToVec3()
		}
	})
	b.Run("SetFromVec3", func(b *testing.B) {
		var out Spherical
		for b.Loop() {
			out.SetFromVec3(v)
		}
		sinkFloat = out.Radius
	})
}

func BenchmarkVec3(b *testing.B) {
	u, v := V3(1, 2, 3), V3(-4, 5, 0.5)

	b.Run("Normalize", func(b *testing.B) {
		for b.Loop() {
			sinkVec3 = u.Normalize()
		}
	})
	b.Run("Cross", func(b *testing.B) {
		for b.Loop() {
			sinkVec3 = u.Cross(v)
		}
	})
	b.Run("Lerp", func(b *testing.B) {
		for b.Loop() {
			sinkVec3 = u.Lerp(v, 0.3)
		}
	})
	b.Run("Dot", func(b *testing.B) {
		for b.Loop() {
			sinkFloat = u.Dot(v)
		}
	})
}

func BenchmarkModelViewProjection(b *testing.B) {
	model := RotateX(0.2).Mul(RotateY(0.4)).Mul(RotateZ(0.1))
	view := RotateX(-0.5).Mul(Translate(V3(0, -1, -6)))
	proj := Perspective(1.0, 4.0/3.0, 0.05, 500)
	p := V4(0.5, 0.5, -0.5, 1)

	b.Run("Compose", func(b *testing.B) {
		for b.Loop() {
			sinkMat4 = proj.Mul(view).Mul(model)
		}
	})

	mvp := proj.Mul(view).Mul(model)
	b.Run("Project", func(b *testing.B) {
		for b.Loop() {
			sinkVec4 = mvp.MulVec4(p)
		}
	})
}
