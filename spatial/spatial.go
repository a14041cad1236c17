// Package spatial computes distance attenuation and stereo panning for
// point sources around a single listener. It is plain geometry with no
// engine types, so the results can feed any volume/pan effect pair.
package spatial

import "math"

const epsilon = 1e-9

// Listener is the single point of reference for all spatialized sounds.
type Listener struct {
	Position Vec3
	Forward  Vec3
	Up       Vec3
}

// DefaultListener sits at the origin looking down the negative Z axis,
// matching the usual audio engine convention.
func DefaultListener() Listener {
	return Listener{
		Forward: Vec3{0, 0, -1},
		Up:      Vec3{0, 1, 0},
	}
}

// Attenuation describes an inverse-distance-clamped rolloff curve:
// sources closer than RefDistance are unattenuated, distances are clamped
// to MaxDistance, and in between the gain is
// Ref / (Ref + Rolloff*(d-Ref)).
type Attenuation struct {
	RefDistance float64
	MaxDistance float64
	Rolloff     float64
}

// DefaultAttenuation matches the defaults of common mixing engines:
// reference distance 1, unbounded max distance, rolloff factor 1.
func DefaultAttenuation() Attenuation {
	return Attenuation{
		RefDistance: 1,
		MaxDistance: math.Inf(1),
		Rolloff:     1,
	}
}

// Gain returns the distance attenuation factor in [0, 1] for a source at
// src heard by l.
func Gain(l Listener, src Vec3, a Attenuation) float64 {
	d := src.Sub(l.Position).Len()
	if d <= a.RefDistance {
		return 1
	}
	if d > a.MaxDistance {
		d = a.MaxDistance
	}
	g := a.RefDistance / (a.RefDistance + a.Rolloff*(d-a.RefDistance))
	return clamp(g, 0, 1)
}

// Pan returns the stereo position in [-1, 1] of a source at src relative
// to the listener's orientation: -1 fully left, 1 fully right. A source
// co-located with the listener, or a degenerate orientation, pans center.
func Pan(l Listener, src Vec3) float64 {
	dir := src.Sub(l.Position)
	if dir.Len() < epsilon {
		return 0
	}
	right := l.Forward.Cross(l.Up).Norm()
	if right.Len() < epsilon {
		return 0
	}
	return clamp(dir.Norm().Dot(right), -1, 1)
}

// Spatialize combines Gain and Pan in one call.
func Spatialize(l Listener, src Vec3, a Attenuation) (gain, pan float64) {
	return Gain(l, src, a), Pan(l, src)
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
