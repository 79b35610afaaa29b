// Package physics provides collision detection and distance utilities.
package physics

import "math"

// Vec is a point or direction in arena coordinates.
type Vec struct {
	X, Y float64
}

// Add returns v+o.
func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }

// Sub returns v-o.
func (v Vec) Sub(o Vec) Vec { return Vec{v.X - o.X, v.Y - o.Y} }

// Scale returns v multiplied by s.
func (v Vec) Scale(s float64) Vec { return Vec{v.X * s, v.Y * s} }

// Len returns the length of v.
func (v Vec) Len() float64 { return math.Hypot(v.X, v.Y) }

// Angle returns the direction of v in radians.
func (v Vec) Angle() float64 { return math.Atan2(v.Y, v.X) }

// Normalize returns v scaled to unit length, or the zero vector.
func (v Vec) Normalize() Vec {
	l := v.Len()
	if l == 0 {
		return Vec{}
	}
	return Vec{v.X / l, v.Y / l}
}

// FromAngle returns a vector of the given length pointing at angle.
func FromAngle(angle, length float64) Vec {
	return Vec{math.Cos(angle) * length, math.Sin(angle) * length}
}

// Distance calculates the Euclidean distance between two points.
func Distance(a, b Vec) float64 {
	return math.Sqrt(DistanceSquared(a, b))
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(a, b Vec) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return dx*dx + dy*dy
}

// PointInCircle checks if a point is within radius of a target position.
func PointInCircle(p, c Vec, radius float64) bool {
	return DistanceSquared(p, c) <= radius*radius
}

// CirclesOverlap checks if two circles overlap. Touching circles do not overlap.
func CirclesOverlap(c1 Vec, r1 float64, c2 Vec, r2 float64) bool {
	minDist := r1 + r2
	return DistanceSquared(c1, c2) < minDist*minDist
}

// SegmentCircleIntersect reports whether the segment p1-p2 touches the circle.
// It solves |p1 + t(p2-p1) - c|^2 = r^2 and accepts a root with t in [0,1].
// A zero-length segment is treated as a point.
func SegmentCircleIntersect(p1, p2, center Vec, radius float64) bool {
	d := p2.Sub(p1)
	f := p1.Sub(center)

	a := d.X*d.X + d.Y*d.Y
	if a == 0 {
		return PointInCircle(p1, center, radius)
	}
	b := 2 * (f.X*d.X + f.Y*d.Y)
	c := f.X*f.X + f.Y*f.Y - radius*radius

	disc := b*b - 4*a*c
	if disc < 0 {
		return false
	}
	disc = math.Sqrt(disc)
	t1 := (-b - disc) / (2 * a)
	t2 := (-b + disc) / (2 * a)

	return (t1 >= 0 && t1 <= 1) || (t2 >= 0 && t2 <= 1)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
