package corr

// is2D reports whether m is truly two-dimensional: both of its dimensions
// are at least 2 (§4.5).
func is2D(m Matrix) bool {
	return m.H >= 2 && m.W >= 2
}

// skipQuarter decides, for one (A, B) pair, whether the two quarter
// rotations should be skipped under smart mode: they are skipped unless at
// least one operand is truly two-dimensional.
func skipQuarter(a, b Matrix) bool {
	return !(is2D(a) || is2D(b))
}

// anyTrulyA2D is the coarse pre-scan §4.5 describes: true if any A in the
// run is truly 2-D. The B-pack preprocessor uses it to decide whether it is
// worth eagerly materializing quarter-rotation buffers for a given B at
// all, the way NewMapper (nes/mapper.go) picks a mapper implementation once
// per cartridge instead of re-deciding per bus access.
func anyTrulyA2D(aList []Matrix) bool {
	for _, a := range aList {
		if is2D(a) {
			return true
		}
	}
	return false
}
