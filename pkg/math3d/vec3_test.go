package math3d

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec3Cross(t *testing.T) {
	tests := []struct {
		name string
		a, b Vec3
		want Vec3
	}{
		{"x cross y", V3(1, 0, 0), V3(0, 1, 0), V3(0, 0, 1)},
		{"y cross x", V3(0, 1, 0), V3(1, 0, 0), V3(0, 0, -1)},
		{"parallel", V3(2, 0, 0), V3(5, 0, 0), Vec3{}},
		{"general", V3(1, 2, 3), V3(4, 5, 6), V3(-3, 6, -3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Cross(tt.b))
		})
	}
}

func TestVec3Normalize(t *testing.T) {
	n := V3(3, 0, 4).Normalize()
	assert.InDelta(t, 1.0, n.Len(), 1e-12)
	assert.InDelta(t, 0.6, n.X, 1e-12)
	assert.InDelta(t, 0.8, n.Z, 1e-12)

	assert.Equal(t, Vec3{}, Vec3{}.Normalize(), "zero vector must not produce NaN")
}

func TestVec3MinMax(t *testing.T) {
	a := V3(1, -2, 3)
	b := V3(-1, 2, math.Inf(1))
	assert.Equal(t, V3(-1, -2, 3), a.Min(b))
	assert.Equal(t, V3(1, 2, math.Inf(1)), a.Max(b))
}

func TestVec3SwapYZ(t *testing.T) {
	v := V3(1, 2, 3)
	assert.Equal(t, V3(1, 3, 2), v.SwapYZ())
	assert.Equal(t, v, v.SwapYZ().SwapYZ())
}
