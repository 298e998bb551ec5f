package core

import "math"

// Vec2 is a point or direction in world space (pixel units).
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }
func (v Vec2) LenSq() float64 { return v.X*v.X + v.Y*v.Y }
func (v Vec2) Len() float64 { return math.Sqrt(v.LenSq()) }
func (v Vec2) DistSq(o Vec2) float64 { return v.Sub(o).LenSq() }
func (v Vec2) IsZero() bool { return v.X == 0 && v.Y == 0 }
func (v Vec2) Angle() float64 { return math.Atan2(v.Y, v.X) }

// Normalize returns the unit vector, or the zero vector for zero input.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// FromAngle returns the unit vector pointing at angle a (radians).
func FromAngle(a float64) Vec2 {
	return Vec2{math.Cos(a), math.Sin(a)}
}

// Body is what proximity queries need to know about an entity.
type Body struct {
	Pos    Vec2
	Radius float64
}
