package models

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// GLTFDocument builds a single-mesh glTF document from mesh. mat may be
// nil; when present it becomes the primitive's material, with Ns clamped
// to [0,1] as the roughness factor and Ni kept in the material extras.
func GLTFDocument(mesh *Mesh, mat *Material) (*gltf.Document, error) {
	if mesh.VertexCount() == 0 || mesh.TriangleCount() == 0 {
		return nil, fmt.Errorf("mesh %q has no triangles", mesh.Name)
	}

	positions := make([][3]float32, len(mesh.Vertices))
	normals := make([][3]float32, len(mesh.Vertices))
	uvs := make([][2]float32, len(mesh.Vertices))
	for i, v := range mesh.Vertices {
		positions[i] = [3]float32{float32(v.Position.X), float32(v.Position.Y), float32(v.Position.Z)}
		normals[i] = [3]float32{float32(v.Normal.X), float32(v.Normal.Y), float32(v.Normal.Z)}
		uvs[i] = [2]float32{float32(v.UV.X), float32(v.UV.Y)}
	}

	doc := gltf.NewDocument()
	prim := &gltf.Primitive{
		Mode:    gltf.PrimitiveTriangles,
		Indices: gltf.Index(modeler.WriteIndices(doc, mesh.Indices)),
		Attributes: map[string]int{
			gltf.POSITION:   modeler.WritePosition(doc, positions),
			gltf.NORMAL:     modeler.WriteNormal(doc, normals),
			gltf.TEXCOORD_0: modeler.WriteTextureCoord(doc, uvs),
		},
	}

	if mat != nil {
		prim.Material = gltf.Index(addMaterial(doc, mat))
	}

	doc.Meshes = append(doc.Meshes, &gltf.Mesh{Name: mesh.Name, Primitives: []*gltf.Primitive{prim}})
	doc.Nodes = append(doc.Nodes, &gltf.Node{Name: mesh.Name, Mesh: gltf.Index(len(doc.Meshes) - 1)})
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, len(doc.Nodes)-1)
	return doc, nil
}

func addMaterial(doc *gltf.Document, mat *Material) int {
	roughness := min(max(mat.Roughness, 0), 1)
	pbr := &gltf.PBRMetallicRoughness{
		MetallicFactor:  gltf.Float(0),
		RoughnessFactor: gltf.Float(roughness),
	}

	if mat.HasTexture() {
		doc.Images = append(doc.Images, &gltf.Image{URI: filepath.ToSlash(mat.DiffuseTexture)})
		doc.Textures = append(doc.Textures, &gltf.Texture{Source: gltf.Index(len(doc.Images) - 1)})
		pbr.BaseColorTexture = &gltf.TextureInfo{Index: len(doc.Textures) - 1}
	}

	doc.Materials = append(doc.Materials, &gltf.Material{
		Name:                 mat.Name,
		PBRMetallicRoughness: pbr,
		Extras:               map[string]any{"ior": mat.IndexOfRefraction},
	})
	return len(doc.Materials) - 1
}

// WriteGLTF writes mesh to path. A .glb extension produces binary glTF;
// anything else produces JSON glTF with the buffer embedded as a data URI.
func WriteGLTF(path string, mesh *Mesh, mat *Material) error {
	doc, err := GLTFDocument(mesh, mat)
	if err != nil {
		return err
	}

	if strings.EqualFold(filepath.Ext(path), ".glb") {
		if err := gltf.SaveBinary(doc, path); err != nil {
			return fmt.Errorf("save glb: %w", err)
		}
		return nil
	}

	for _, b := range doc.Buffers {
		b.EmbeddedResource()
	}
	if err := gltf.Save(doc, path); err != nil {
		return fmt.Errorf("save gltf: %w", err)
	}
	return nil
}
