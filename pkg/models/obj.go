package models

import (
	"errors"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/taigrr/objparse/pkg/math3d"
)

// OBJLoader loads Wavefront OBJ geometry into an indexed triangle mesh.
type OBJLoader struct {
	// Options
	ConvertToRHS  bool // If true, swap Y/Z and mirror X once the whole file is read
	MaxLineLength int  // Longest accepted line in bytes (0 = DefaultMaxLineLength)

	Logger *zap.Logger
}

// NewOBJLoader creates a new OBJ loader with default settings.
func NewOBJLoader() *OBJLoader {
	return &OBJLoader{
		MaxLineLength: DefaultMaxLineLength,
		Logger:        zap.NewNop(),
	}
}

// LoadFile loads an OBJ file from disk. See Load for the meaning of box.
func (l *OBJLoader) LoadFile(path string, box *math3d.Aabb) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ReadError{Source: path, Err: err}
	}
	defer f.Close()

	return l.Load(f, path, box)
}

// Load parses OBJ data from r. If box is non-nil every parsed position is
// folded into it; the caller owns the box and may share it across files.
// When ConvertToRHS is set, box (or the mesh's own bounds if box is nil)
// must already be final, which is why the conversion runs after the pass.
func (l *OBJLoader) Load(r io.Reader, name string, box *math3d.Aabb) (*Mesh, error) {
	log := l.Logger
	if log == nil {
		log = zap.NewNop()
	}

	p := &objParser{
		mesh:    NewMesh(name),
		box:     box,
		skipped: make(map[string]int),
	}

	scanner := newLineScanner(r, l.MaxLineLength)
	for scanner.Scan() {
		p.line++
		if err := p.parseLine(scanner.Text()); err != nil {
			return nil, promote(err, name, p.line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &ReadError{Source: name, Err: err}
	}

	if l.ConvertToRHS {
		ConvertToRHS(p.mesh, box)
	}

	log.Debug("parsed OBJ",
		zap.String("source", name),
		zap.Int("lines", p.line),
		zap.Int("positions", len(p.pools.positions)),
		zap.Int("uvs", len(p.pools.uvs)),
		zap.Int("normals", len(p.pools.normals)),
		zap.Int("faces", p.faces),
		zap.Int("vertices", p.mesh.VertexCount()),
		zap.Int("triangles", p.mesh.TriangleCount()),
		zap.Any("skipped", p.skipped),
	)

	return p.mesh, nil
}

// objParser is the working set of a single Load call.
type objParser struct {
	mesh    *Mesh
	box     *math3d.Aabb
	pools   attributePools
	face    faceBuilder
	line    int
	faces   int
	skipped map[string]int
}

func (p *objParser) parseLine(line string) error {
	c := newLineCursor(line)
	if !c.skipBlanks() {
		return nil
	}

	tag := c.token()
	switch tag {
	case "v": // Vertex position
		var xyz [3]float64
		if err := expectFloats(c, xyz[:], "position coordinates"); err != nil {
			return err
		}
		pos := math3d.V3(xyz[0], xyz[1], xyz[2])
		if p.box != nil {
			p.box.Extend(pos)
		}
		p.mesh.Bounds.Extend(pos)
		p.pools.positions = append(p.pools.positions, pos)

	case "vt": // Texture coordinate, only u and v are kept
		var uv [2]float64
		if err := expectFloats(c, uv[:], "texture coordinates"); err != nil {
			return err
		}
		p.pools.uvs = append(p.pools.uvs, math3d.V2(uv[0], uv[1]))

	case "vn": // Vertex normal
		var xyz [3]float64
		if err := expectFloats(c, xyz[:], "normal components"); err != nil {
			return err
		}
		p.pools.normals = append(p.pools.normals, math3d.V3(xyz[0], xyz[1], xyz[2]))

	case "f":
		if err := p.face.scan(c); err != nil {
			return err
		}
		if err := p.face.emit(p.mesh, &p.pools); err != nil {
			return err
		}
		p.faces++

	case "mtllib":
		p.mesh.MaterialLibs = append(p.mesh.MaterialLibs, strings.Fields(c.rest())...)

	default:
		if !strings.HasPrefix(tag, "#") {
			p.skipped[tag]++
		}
	}
	return nil
}

// promote attaches the source and line to a scanner error.
func promote(err error, source string, line int) error {
	var se *syntaxError
	if errors.As(err, &se) {
		return &FormatError{Source: source, Line: line, Expected: se.expected, Found: se.found}
	}
	return err
}

// LoadOBJ is a convenience function to load an OBJ file with default settings.
func LoadOBJ(path string) (*Mesh, error) {
	return NewOBJLoader().LoadFile(path, nil)
}

// LoadOBJRHS loads an OBJ file and converts it to the Z-up axis convention
// (see ConvertToRHS).
func LoadOBJRHS(path string) (*Mesh, error) {
	loader := NewOBJLoader()
	loader.ConvertToRHS = true
	return loader.LoadFile(path, nil)
}
