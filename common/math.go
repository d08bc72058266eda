package common

import (
	"math"

	"github.com/jakecoffman/cp"
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Sign returns -1 for negative values and +1 otherwise.
func Sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

// SmoothDamp moves current toward target with a critically damped spring.
// velocity carries the spring's derivative between calls and must be the same
// pointer every step. smoothTime is roughly the time to reach the target.
func SmoothDamp(current, target cp.Vector, velocity *cp.Vector, smoothTime, dt float64) cp.Vector {
	if velocity == nil || dt <= 0 {
		return current
	}
	smoothTime = math.Max(0.0001, smoothTime)
	omega := 2.0 / smoothTime

	x := omega * dt
	exp := 1.0 / (1.0 + x + 0.48*x*x + 0.235*x*x*x)

	change := current.Sub(target)
	originalTo := target

	temp := velocity.Add(change.Mult(omega)).Mult(dt)
	*velocity = velocity.Sub(temp.Mult(omega)).Mult(exp)
	output := target.Add(change.Add(temp).Mult(exp))

	// never overshoot the target
	if originalTo.Sub(current).Dot(output.Sub(originalTo)) > 0 {
		output = originalTo
		*velocity = cp.Vector{}
	}
	return output
}
