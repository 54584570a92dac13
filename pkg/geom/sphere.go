package geom

import "math"

// BoundingSphere is a center plus a non-negative radius. The zero value is the
// degenerate sphere, which acts as the identity for Merge.
type BoundingSphere struct {
	Center Vector3
	Radius float64
}

func NewBoundingSphere(center Vector3, radius float64) BoundingSphere {
	return BoundingSphere{Center: center, Radius: radius}
}

// Degenerate reports whether the sphere encloses no volume.
func (b BoundingSphere) Degenerate() bool {
	return b.Radius <= 0
}

// Merge returns the smallest sphere enclosing both b and rhs. A degenerate
// argument yields the other sphere; if one contains the other, the container
// is returned unchanged. Otherwise the new center lies on the line between
// the two centers.
func (b BoundingSphere) Merge(rhs BoundingSphere) BoundingSphere {
	if rhs.Degenerate() {
		return b
	}
	if b.Degenerate() {
		return rhs
	}

	centerDist := rhs.Center.Sub(b.Center).Length()
	if centerDist+b.Radius <= rhs.Radius {
		return rhs
	}
	if centerDist+rhs.Radius <= b.Radius {
		return b
	}

	newRadius := (b.Radius + centerDist + rhs.Radius) * 0.5
	ratio := (newRadius - b.Radius) / centerDist
	newCenter := b.Center.Add(rhs.Center.Sub(b.Center).Scale(ratio))
	return BoundingSphere{Center: newCenter, Radius: newRadius}
}

// Contains reports whether rhs lies entirely inside b.
func (b BoundingSphere) Contains(rhs BoundingSphere) bool {
	centersLen := b.Center.Sub(rhs.Center).Length()
	return b.Radius >= centersLen+rhs.Radius
}

func (b BoundingSphere) Volume() float64 {
	if b.Degenerate() {
		return 0
	}
	return 4.0 / 3.0 * math.Pi * b.Radius * b.Radius * b.Radius
}
