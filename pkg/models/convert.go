package models

import "github.com/taigrr/objparse/pkg/math3d"

// ConvertToRHS remaps a Y-up mesh to the Z-up convention: Y and Z are
// swapped on every position and normal, positions are mirrored in X about
// the center of box, and normals have X negated.
//
// box must be the final box accumulated from the unconverted positions;
// a nil box means mesh.Bounds. On return box has Y and Z swapped on both
// corners and mesh.Bounds encloses the converted positions.
func ConvertToRHS(mesh *Mesh, box *math3d.Aabb) {
	ref := mesh.Bounds
	if box != nil {
		ref = *box
	}
	// (max + min) - x reflects x about the center (max + min) / 2.
	offset := ref.Max.X + ref.Min.X

	for i := range mesh.Vertices {
		v := &mesh.Vertices[i]

		v.Position = v.Position.SwapYZ()
		v.Position.X = -v.Position.X + offset

		v.Normal = v.Normal.SwapYZ()
		v.Normal.X = -v.Normal.X
	}

	if box != nil && box != &mesh.Bounds {
		*box = box.SwapYZ()
	}
	if b := mesh.Bounds; b.Valid {
		mesh.Bounds = math3d.Aabb{
			Min:   math3d.V3(offset-b.Max.X, b.Min.Z, b.Min.Y),
			Max:   math3d.V3(offset-b.Min.X, b.Max.Z, b.Max.Y),
			Valid: true,
		}
	}
}
