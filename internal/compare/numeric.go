// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package compare

import "math"

const (
	// RelativeTolerance scales the larger magnitude of two numbers into the
	// allowed absolute difference.
	RelativeTolerance = 1e-10

	// ZeroTolerance is the allowed difference when both magnitudes are zero.
	ZeroTolerance = 1e-15
)

// NumbersEqual applies the numeric equality rule. The tolerance is relative to
// max(|e|, |a|) and only falls back to ZeroTolerance when that maximum is
// exactly zero. Values that overflowed to ±Inf only equal an identical
// infinity.
func NumbersEqual(e, a float64) bool {
	if e == a {
		return true
	}
	if math.IsInf(e, 0) || math.IsInf(a, 0) || math.IsNaN(e) || math.IsNaN(a) {
		return false
	}
	return math.Abs(e-a) <= tolerance(e, a)
}

func tolerance(e, a float64) float64 {
	magnitude := math.Max(math.Abs(e), math.Abs(a))
	if magnitude == 0 {
		return ZeroTolerance
	}
	return magnitude * RelativeTolerance
}
