// Package fixedmath provides the planet-scale fixed-point vector type and
// distance test the terrain skeleton uses for positions and thresholds.
// World positions are stored as 64-bit integers with an implicit scale of
// 2^scale per axis, so a planet many thousands of kilometers across can be
// addressed to sub-millimeter precision without the precision loss a
// float64 would suffer far from the origin.
package fixedmath

import "github.com/Faultbox/terraskel/pkg/math"

// Vec3L is a 3D vector of 64-bit fixed-point components, scale implied by
// context (carried on the owning Terrain, not on the vector itself).
type Vec3L struct {
	X, Y, Z int64
}

// Add returns v + other.
func (v Vec3L) Add(other Vec3L) Vec3L {
	return Vec3L{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub returns v - other.
func (v Vec3L) Sub(other Vec3L) Vec3L {
	return Vec3L{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// DivScalar divides each component by n, truncating toward zero.
func (v Vec3L) DivScalar(n int64) Vec3L {
	return Vec3L{v.X / n, v.Y / n, v.Z / n}
}

// FromVec3Scaled converts a float vector to fixed point at the given scale,
// i.e. v * 2^scale component-wise, truncated toward zero.
func FromVec3Scaled(v math.Vec3, scale uint) Vec3L {
	factor := float32(Int2Pow(scale))
	return Vec3L{
		X: int64(v.X * factor),
		Y: int64(v.Y * factor),
		Z: int64(v.Z * factor),
	}
}

// ToVec3 converts a fixed-point vector back to float32 world units at the
// given scale. Used only at the edges (debug export, callback math), never
// inside the hot subdivision loop.
func (v Vec3L) ToVec3(scale uint) math.Vec3 {
	factor := float32(Int2Pow(scale))
	return math.Vec3{
		X: float32(v.X) / factor,
		Y: float32(v.Y) / factor,
		Z: float32(v.Z) / factor,
	}
}

// FromFloatScaled converts a scalar distance to fixed point at the given
// scale, i.e. f * 2^scale truncated toward zero. Used to convert decimal-meter thresholds
// read from configuration into the fixed-point units IsDistanceNear expects.
func FromFloatScaled(f float64, scale uint) int64 {
	return int64(f * float64(Int2Pow(scale)))
}

// Int2Pow returns 2^n as an int64. n is expected to be small (scale
// exponents are in the 0-32 range for this module's use).
func Int2Pow(n uint) int64 {
	return int64(1) << n
}

// IsDistanceNear reports whether b is within threshold of a, compared by
// squared Euclidean distance. Squaring avoids a square root in the
// floodfill hot path and keeps the comparison in integer arithmetic (the
// low bits of each difference are dropped first, see below);
// the reference C++ source never takes a square root either. threshold is
// itself a (non-squared) fixed-point distance; callers precompute
// threshold*threshold once per level rather than per triangle.
func IsDistanceNear(a, b Vec3L, thresholdSq int64) bool {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z
	// Components can be large relative to a planet's radius; shift down
	// before squaring to stay well inside int64 range, matching the halved-
	// sum-before-add overflow avoidance used throughout the original source.
	const shift = 10
	sx := dx >> shift
	sy := dy >> shift
	sz := dz >> shift
	distSq := sx*sx + sy*sy + sz*sz
	return distSq <= (thresholdSq >> (2 * shift))
}
