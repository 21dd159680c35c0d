package math3d

// Aabb is an axis-aligned bounding box accumulator. The zero value is an
// empty box that holds no points; the first Extend call initializes it.
type Aabb struct {
	Min, Max Vec3
	Valid    bool
}

// NewAabb returns a box enclosing exactly the given points.
func NewAabb(points ...Vec3) Aabb {
	var b Aabb
	for _, p := range points {
		b.Extend(p)
	}
	return b
}

// Extend grows the box so that it contains p.
func (b *Aabb) Extend(p Vec3) {
	if !b.Valid {
		b.Min, b.Max, b.Valid = p, p, true
		return
	}
	b.Min = b.Min.Min(p)
	b.Max = b.Max.Max(p)
}

// Join returns the smallest box containing both b and o.
func (b Aabb) Join(o Aabb) Aabb {
	switch {
	case !o.Valid:
		return b
	case !b.Valid:
		return o
	}
	return Aabb{Min: b.Min.Min(o.Min), Max: b.Max.Max(o.Max), Valid: true}
}

// Contains reports whether p lies inside the box, boundary included.
func (b Aabb) Contains(p Vec3) bool {
	return b.Valid &&
		p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Center returns the center of the box.
func (b Aabb) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the dimensions of the box.
func (b Aabb) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

// SwapYZ returns the box with Y and Z exchanged on both corners.
func (b Aabb) SwapYZ() Aabb {
	return Aabb{Min: b.Min.SwapYZ(), Max: b.Max.SwapYZ(), Valid: b.Valid}
}
