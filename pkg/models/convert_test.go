package models

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/objparse/pkg/math3d"
)

const skewedOBJ = `v 1 2 3
v 4 -1 0
v 2 5 -2
v 3 0 7
vn 0.6 0.8 0
vn 0 0 1
vn 1 0 0
vn 0 -1 0
f 1//1 2//2 3//3 4//4
f 4 3 1
`

// revertFromRHS undoes ConvertToRHS given the converted box.
func revertFromRHS(mesh *Mesh, box math3d.Aabb) {
	orig := box.SwapYZ()
	offset := orig.Max.X + orig.Min.X
	for i := range mesh.Vertices {
		v := &mesh.Vertices[i]
		v.Position.X = -(v.Position.X - offset)
		v.Position = v.Position.SwapYZ()
		v.Normal.X = -v.Normal.X
		v.Normal = v.Normal.SwapYZ()
	}
}

func TestConvertToRHSRoundTrip(t *testing.T) {
	var origBox math3d.Aabb
	orig, err := NewOBJLoader().Load(strings.NewReader(skewedOBJ), "skew", &origBox)
	require.NoError(t, err)

	loader := NewOBJLoader()
	loader.ConvertToRHS = true
	var box math3d.Aabb
	conv, err := loader.Load(strings.NewReader(skewedOBJ), "skew", &box)
	require.NoError(t, err)
	require.Equal(t, orig.VertexCount(), conv.VertexCount())

	assert.Equal(t, origBox.SwapYZ(), box, "box gets Y and Z swapped")

	revertFromRHS(conv, box)
	for i := range orig.Vertices {
		assert.True(t, orig.Vertices[i].Position.ApproxEqual(conv.Vertices[i].Position, 1e-9),
			"position %d: %v != %v", i, orig.Vertices[i].Position, conv.Vertices[i].Position)
		assert.True(t, orig.Vertices[i].Normal.ApproxEqual(conv.Vertices[i].Normal, 1e-9),
			"normal %d: %v != %v", i, orig.Vertices[i].Normal, conv.Vertices[i].Normal)
	}
}

func TestConvertToRHSMirrorsAboutCenter(t *testing.T) {
	mesh := NewMesh("m")
	mesh.Vertices = []MeshVertex{
		{Position: math3d.V3(1, 2, 3), Normal: math3d.V3(1, 0, 0)},
		{Position: math3d.V3(5, 6, 7), Normal: math3d.V3(0, 1, 0)},
	}
	mesh.Bounds = math3d.NewAabb(math3d.V3(1, 2, 3), math3d.V3(5, 6, 7))

	ConvertToRHS(mesh, nil)

	// X mirrored about 3 = (1+5)/2, Y/Z swapped.
	assert.Equal(t, math3d.V3(5, 3, 2), mesh.Vertices[0].Position)
	assert.Equal(t, math3d.V3(1, 7, 6), mesh.Vertices[1].Position)
	assert.Equal(t, math3d.V3(-1, 0, 0), mesh.Vertices[0].Normal)
	assert.Equal(t, math3d.V3(0, 0, 1), mesh.Vertices[1].Normal)

	assert.Equal(t, math3d.V3(1, 3, 2), mesh.Bounds.Min)
	assert.Equal(t, math3d.V3(5, 7, 6), mesh.Bounds.Max)
	for _, v := range mesh.Vertices {
		assert.True(t, mesh.Bounds.Contains(v.Position))
	}
}

func TestConvertToRHSUsesCallerBox(t *testing.T) {
	mesh := NewMesh("m")
	mesh.Vertices = []MeshVertex{{Position: math3d.V3(1, 0, 0)}}
	mesh.Bounds = math3d.NewAabb(math3d.V3(1, 0, 0))

	// A shared box spanning another file too.
	box := math3d.NewAabb(math3d.V3(0, 0, 0), math3d.V3(10, 1, 2))
	ConvertToRHS(mesh, &box)

	assert.Equal(t, math3d.V3(9, 0, 0), mesh.Vertices[0].Position)
	assert.Equal(t, math3d.V3(10, 2, 1), box.Max)
	assert.Equal(t, math3d.NewAabb(math3d.V3(9, 0, 0)), mesh.Bounds)
}

func TestLoadOBJRHSWithoutBox(t *testing.T) {
	loader := NewOBJLoader()
	loader.ConvertToRHS = true
	mesh, err := loader.Load(strings.NewReader(skewedOBJ), "skew", nil)
	require.NoError(t, err)

	for _, v := range mesh.Vertices {
		assert.True(t, mesh.Bounds.Contains(v.Position), "%v outside %v", v.Position, mesh.Bounds)
	}
}

func TestLoadOBJRHS(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skew.obj")
	require.NoError(t, os.WriteFile(path, []byte(skewedOBJ), 0o644))

	plain, err := LoadOBJ(path)
	require.NoError(t, err)
	conv, err := LoadOBJRHS(path)
	require.NoError(t, err)

	offset := plain.Bounds.Max.X + plain.Bounds.Min.X
	require.Equal(t, len(plain.Vertices), len(conv.Vertices))
	for i, v := range plain.Vertices {
		want := math3d.V3(offset-v.Position.X, v.Position.Z, v.Position.Y)
		assert.True(t, want.ApproxEqual(conv.Vertices[i].Position, 1e-9), "vertex %d", i)
	}
	assert.Equal(t, plain.Bounds.Min.Z, conv.Bounds.Min.Y)
	assert.Equal(t, plain.Bounds.Max.Y, conv.Bounds.Max.Z)

	_, err = LoadOBJRHS(filepath.Join(t.TempDir(), "missing.obj"))
	var re *ReadError
	require.ErrorAs(t, err, &re)
}
