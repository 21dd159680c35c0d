package models

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
)

// Material is the subset of an MTL material the pipeline consumes.
// Fields keep their zero value until a matching statement is read.
type Material struct {
	Name              string  // newmtl
	Roughness         float64 // Ns
	IndexOfRefraction float64 // Ni
	DiffuseTexture    string  // map_Kd path, empty if absent
}

// HasTexture reports whether a diffuse texture path was given.
func (m *Material) HasTexture() bool {
	return m.DiffuseTexture != ""
}

// MTLLoader loads Wavefront MTL material descriptions. A file describing
// several materials collapses into one record: later statements overwrite
// earlier ones.
type MTLLoader struct {
	MaxLineLength int

	Logger *zap.Logger
}

// NewMTLLoader creates a new MTL loader with default settings.
func NewMTLLoader() *MTLLoader {
	return &MTLLoader{
		MaxLineLength: DefaultMaxLineLength,
		Logger:        zap.NewNop(),
	}
}

// LoadFile loads an MTL file from disk.
func (l *MTLLoader) LoadFile(path string) (*Material, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ReadError{Source: path, Err: err}
	}
	defer f.Close()

	return l.Load(f, path)
}

// Load parses MTL data from r.
func (l *MTLLoader) Load(r io.Reader, name string) (*Material, error) {
	log := l.Logger
	if log == nil {
		log = zap.NewNop()
	}

	mat := &Material{}
	scanner := newLineScanner(r, l.MaxLineLength)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		if err := parseMaterialLine(mat, scanner.Text()); err != nil {
			return nil, promote(err, name, lineNum)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &ReadError{Source: name, Err: err}
	}

	log.Debug("parsed MTL",
		zap.String("source", name),
		zap.String("material", mat.Name),
		zap.Float64("roughness", mat.Roughness),
		zap.Float64("ior", mat.IndexOfRefraction),
		zap.String("texture", mat.DiffuseTexture),
	)
	return mat, nil
}

func parseMaterialLine(mat *Material, line string) error {
	c := newLineCursor(line)
	if !c.skipBlanks() {
		return nil
	}

	var val [1]float64
	switch c.token() {
	case "Ns":
		if err := expectFloats(c, val[:], "roughness value"); err != nil {
			return err
		}
		mat.Roughness = val[0]

	case "Ni":
		if err := expectFloats(c, val[:], "index of refraction"); err != nil {
			return err
		}
		mat.IndexOfRefraction = val[0]

	case "map_Kd":
		// Paths may contain spaces, so take the rest of the line verbatim.
		c.skipBlanks()
		path := strings.TrimRight(c.rest(), " \t\v\f")
		if path == "" {
			return &syntaxError{expected: "texture path", found: "end of line"}
		}
		mat.DiffuseTexture = path

	case "newmtl":
		c.skipBlanks()
		mat.Name = strings.TrimRight(c.rest(), " \t\v\f")
	}
	return nil
}

// LoadMTL is a convenience function to load an MTL file with default settings.
func LoadMTL(path string) (*Material, error) {
	return NewMTLLoader().LoadFile(path)
}
