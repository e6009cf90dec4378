package globe

import "math"

// Rotation is a three-axis sphere rotation in degrees
// Lambda spins around the polar axis, Phi tilts toward the viewer and Gamma
// rolls around the view axis; the view centre is (-Phi, -Lambda) in lat/lon
type Rotation struct {
	Lambda float64
	Phi    float64
	Gamma  float64
}

// rotator applies a Rotation to spherical coordinates given in radians
// dLambda is reduced to within one turn so a single wrapPi keeps results in range
type rotator struct {
	dLambda   float64
	cosDPhi   float64
	sinDPhi   float64
	cosDGamma float64
	sinDGamma float64
}

func newRotator(r Rotation) rotator {
	dPhi := r.Phi * radians
	dGamma := r.Gamma * radians
	return rotator{
		dLambda:   math.Mod(r.Lambda, 360) * radians,
		cosDPhi:   math.Cos(dPhi),
		sinDPhi:   math.Sin(dPhi),
		cosDGamma: math.Cos(dGamma),
		sinDGamma: math.Sin(dGamma),
	}
}

// forward spins by lambda first, then tilts and rolls
func (r rotator) forward(lambda, phi float64) (float64, float64) {
	lambda = wrapPi(lambda + r.dLambda)

	cosPhi := math.Cos(phi)
	x := math.Cos(lambda) * cosPhi
	y := math.Sin(lambda) * cosPhi
	z := math.Sin(phi)
	k := z*r.cosDPhi + x*r.sinDPhi

	return math.Atan2(y*r.cosDGamma-k*r.sinDGamma, x*r.cosDPhi-z*r.sinDPhi),
		asin(k*r.cosDGamma + y*r.sinDGamma)
}

// invert undoes forward
func (r rotator) invert(lambda, phi float64) (float64, float64) {
	cosPhi := math.Cos(phi)
	x := math.Cos(lambda) * cosPhi
	y := math.Sin(lambda) * cosPhi
	z := math.Sin(phi)
	k := z*r.cosDGamma - y*r.sinDGamma

	lambda = math.Atan2(y*r.cosDGamma+z*r.sinDGamma, x*r.cosDPhi+k*r.sinDPhi)
	phi = asin(k*r.cosDPhi - x*r.sinDPhi)

	return wrapPi(lambda - r.dLambda), phi
}

const radians = math.Pi / 180

// wrapPi wraps an angle into [-π, π]
func wrapPi(a float64) float64 {
	if a > math.Pi {
		return a - 2*math.Pi
	}
	if a < -math.Pi {
		return a + 2*math.Pi
	}
	return a
}

// asin clamps its argument so rounding never yields NaN
func asin(x float64) float64 {
	if x > 1 {
		return math.Pi / 2
	}
	if x < -1 {
		return -math.Pi / 2
	}
	return math.Asin(x)
}
