package models

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/taigrr/objparse/pkg/math3d"
)

const stlHeaderSize = 80

// WriteSTL writes mesh as binary STL: an 80-byte header, a little-endian
// triangle count, then per triangle a face normal, three vertices and a
// zero attribute word. Winding is kept as parsed.
func WriteSTL(w io.Writer, mesh *Mesh) error {
	bw := bufio.NewWriter(w)

	header := make([]byte, stlHeaderSize)
	copy(header, "objparse "+mesh.Name)
	if _, err := bw.Write(header); err != nil {
		return fmt.Errorf("write STL header: %w", err)
	}

	triCount := mesh.TriangleCount()
	if uint64(triCount) > math.MaxUint32 {
		return fmt.Errorf("mesh %q has too many triangles for STL: %d", mesh.Name, triCount)
	}

	var rec [50]byte
	binary.LittleEndian.PutUint32(rec[:4], uint32(triCount))
	if _, err := bw.Write(rec[:4]); err != nil {
		return fmt.Errorf("write STL triangle count: %w", err)
	}

	for i := range triCount {
		t := mesh.Triangle(i)
		v0 := mesh.Vertices[t[0]].Position
		v1 := mesh.Vertices[t[1]].Position
		v2 := mesh.Vertices[t[2]].Position
		normal := v1.Sub(v0).Cross(v2.Sub(v0)).Normalize()

		putVec3(rec[0:], normal)
		putVec3(rec[12:], v0)
		putVec3(rec[24:], v1)
		putVec3(rec[36:], v2)
		binary.LittleEndian.PutUint16(rec[48:], 0)

		if _, err := bw.Write(rec[:]); err != nil {
			return fmt.Errorf("write STL triangle %d: %w", i, err)
		}
	}
	return bw.Flush()
}

// putVec3 writes v as three little-endian float32s.
func putVec3(dst []byte, v math3d.Vec3) {
	binary.LittleEndian.PutUint32(dst[0:], math.Float32bits(float32(v.X)))
	binary.LittleEndian.PutUint32(dst[4:], math.Float32bits(float32(v.Y)))
	binary.LittleEndian.PutUint32(dst[8:], math.Float32bits(float32(v.Z)))
}

// WriteSTLFile writes mesh as binary STL to path.
func WriteSTLFile(path string, mesh *Mesh) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create STL file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return WriteSTL(f, mesh)
}
