// Package numeric holds the small numeric helpers shared by the stress models.
package numeric

import "math"

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// SafeDivide returns fallback when den is zero or the result is not finite.
func SafeDivide(num, den, fallback float64) float64 {
	if den == 0 {
		return fallback
	}
	out := num / den
	if math.IsNaN(out) || math.IsInf(out, 0) {
		return fallback
	}
	return out
}

// LinearRecencyAverage weights values[i] by (i+1)/n, oldest first.
// An empty slice averages to zero.
func LinearRecencyAverage(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	var sum, weights float64
	for i, v := range values {
		w := float64(i+1) / float64(n)
		sum += v * w
		weights += w
	}
	return SafeDivide(sum, weights, 0)
}

// ExponentialRecencyAverage weights values by exp(-age/tau) where age 0 is
// the newest (last) value. tau <= 0 weights only the newest value.
func ExponentialRecencyAverage(values []float64, tau float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	if tau <= 0 {
		return values[n-1]
	}
	var sum, weights float64
	for i, v := range values {
		age := float64(n - 1 - i)
		w := math.Exp(-age / tau)
		sum += v * w
		weights += w
	}
	return SafeDivide(sum, weights, 0)
}
