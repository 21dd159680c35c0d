package models

import (
	"fmt"
	"math"
	"strconv"

	"github.com/taigrr/objparse/pkg/math3d"
)

const maxFaceVertices = 4

// faceRef is one v[/vt][/vn] reference, already converted to 0-based.
type faceRef struct {
	pos, tex, norm  int
	hasTex, hasNorm bool
}

// scanFaceVertex reads one reference in any of the forms v, v/vt, v//vn
// and v/vt/vn, leaving the cursor on the whitespace that follows it.
func scanFaceVertex(c *lineCursor) (faceRef, error) {
	var ref faceRef
	var err error

	if ref.pos, err = c.index("position index"); err != nil {
		return ref, err
	}
	if !c.consume('/') {
		return ref, expectBoundary(c)
	}

	if !c.consume('/') {
		if ref.tex, err = c.index("texture index"); err != nil {
			return ref, err
		}
		ref.hasTex = true
		if !c.consume('/') {
			return ref, expectBoundary(c)
		}
	}

	if ref.norm, err = c.index("normal index"); err != nil {
		return ref, err
	}
	ref.hasNorm = true
	return ref, expectBoundary(c)
}

func expectBoundary(c *lineCursor) error {
	if c.eol() || isBlank(c.peek()) {
		return nil
	}
	return &syntaxError{expected: "whitespace after face vertex", found: c.found()}
}

// faceBuilder collects the references of a single f line.
type faceBuilder struct {
	refs     [maxFaceVertices]faceRef
	count    int
	texCount int
	nrmCount int
}

// scan reads every reference on the rest of the line and checks that the
// face is a triangle or quad with all-or-nothing texture and normal indices.
func (f *faceBuilder) scan(c *lineCursor) error {
	*f = faceBuilder{}
	for c.skipBlanks() {
		if f.count == maxFaceVertices {
			return &syntaxError{expected: "at most 4 face vertices", found: "more"}
		}
		ref, err := scanFaceVertex(c)
		if err != nil {
			return err
		}
		f.refs[f.count] = ref
		f.count++
		if ref.hasTex {
			f.texCount++
		}
		if ref.hasNorm {
			f.nrmCount++
		}
	}

	if f.count < 3 {
		return &syntaxError{expected: "at least 3 face vertices", found: strconv.Itoa(f.count)}
	}
	if f.texCount != 0 && f.texCount != f.count {
		return &syntaxError{
			expected: fmt.Sprintf("texture indices on all %d vertices or none", f.count),
			found:    fmt.Sprintf("%d with texture indices", f.texCount),
		}
	}
	if f.nrmCount != 0 && f.nrmCount != f.count {
		return &syntaxError{
			expected: fmt.Sprintf("normal indices on all %d vertices or none", f.count),
			found:    fmt.Sprintf("%d with normal indices", f.nrmCount),
		}
	}
	return nil
}

// attributePools hold v, vt and vn data in file order.
type attributePools struct {
	positions []math3d.Vec3
	uvs       []math3d.Vec2
	normals   []math3d.Vec3
}

func checkRange(what string, idx, size int) error {
	if idx < size {
		return nil
	}
	return &syntaxError{
		expected: fmt.Sprintf("%s at most %d", what, size),
		found:    strconv.Itoa(idx + 1),
	}
}

func (f *faceBuilder) validate(p *attributePools) error {
	for _, ref := range f.refs[:f.count] {
		if err := checkRange("position index", ref.pos, len(p.positions)); err != nil {
			return err
		}
		if ref.hasTex {
			if err := checkRange("texture index", ref.tex, len(p.uvs)); err != nil {
				return err
			}
		}
		if ref.hasNorm {
			if err := checkRange("normal index", ref.norm, len(p.normals)); err != nil {
				return err
			}
		}
	}
	return nil
}

// emit triangulates the face into mesh. Every reference becomes a fresh
// vertex; identical vertices from other faces are not shared.
func (f *faceBuilder) emit(mesh *Mesh, p *attributePools) error {
	if err := f.validate(p); err != nil {
		return err
	}
	if uint64(len(mesh.Vertices)+f.count) > math.MaxUint32 {
		return &syntaxError{expected: "fewer than 2^32 vertices", found: "more"}
	}

	base := uint32(len(mesh.Vertices))
	mesh.Indices = append(mesh.Indices, base, base+1, base+2)
	if f.count == 4 {
		mesh.Indices = append(mesh.Indices, base, base+2, base+3)
	}

	var flat math3d.Vec3
	if f.nrmCount == 0 {
		p0 := p.positions[f.refs[0].pos]
		p1 := p.positions[f.refs[1].pos]
		p2 := p.positions[f.refs[2].pos]
		flat = p1.Sub(p0).Cross(p2.Sub(p0)).Normalize()
	}

	for _, ref := range f.refs[:f.count] {
		v := MeshVertex{
			Position: p.positions[ref.pos],
			Normal:   flat,
		}
		if ref.hasNorm {
			v.Normal = p.normals[ref.norm]
		}
		if ref.hasTex {
			v.UV = p.uvs[ref.tex]
		}
		mesh.Vertices = append(mesh.Vertices, v)
	}
	return nil
}
