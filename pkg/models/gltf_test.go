package models

import (
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quadOBJ = `v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
f 1/1 2/2 3/3 4/4
`

func TestGLTFDocument(t *testing.T) {
	mesh := loadString(t, quadOBJ)
	mat := &Material{Name: "wood", Roughness: 0.4, IndexOfRefraction: 1.5, DiffuseTexture: "wood.png"}

	doc, err := GLTFDocument(mesh, mat)
	require.NoError(t, err)

	require.Len(t, doc.Meshes, 1)
	prim := doc.Meshes[0].Primitives[0]
	require.NotNil(t, prim.Indices)
	assert.Equal(t, 6, doc.Accessors[*prim.Indices].Count)
	assert.Equal(t, 4, doc.Accessors[prim.Attributes[gltf.POSITION]].Count)
	assert.Equal(t, 4, doc.Accessors[prim.Attributes[gltf.NORMAL]].Count)
	assert.Equal(t, 4, doc.Accessors[prim.Attributes[gltf.TEXCOORD_0]].Count)

	require.NotNil(t, prim.Material)
	m := doc.Materials[*prim.Material]
	assert.Equal(t, "wood", m.Name)
	assert.InDelta(t, 0.4, *m.PBRMetallicRoughness.RoughnessFactor, 1e-12)
	require.NotNil(t, m.PBRMetallicRoughness.BaseColorTexture)
	require.Len(t, doc.Images, 1)
	assert.Equal(t, "wood.png", doc.Images[0].URI)

	require.Len(t, doc.Nodes, 1)
	assert.Equal(t, []int{0}, doc.Scenes[0].Nodes)
}

func TestGLTFDocumentEmptyMesh(t *testing.T) {
	_, err := GLTFDocument(NewMesh("empty"), nil)
	assert.Error(t, err)
}

func TestWriteGLTFRoundTrip(t *testing.T) {
	mesh := loadString(t, quadOBJ)
	dir := t.TempDir()

	for _, name := range []string{"quad.glb", "quad.gltf"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, WriteGLTF(path, mesh, nil))

			doc, err := gltf.Open(path)
			require.NoError(t, err)
			require.Len(t, doc.Meshes, 1)
			prim := doc.Meshes[0].Primitives[0]
			assert.Equal(t, 6, doc.Accessors[*prim.Indices].Count)
			assert.Nil(t, prim.Material)
		})
	}
}
