package corr

// Rotation is a clockwise rotation applied to B before it is slid over A.
//
// The remap from rotated coordinate (by, bx) back into B's own (row, col)
// mirrors the teacher's sprite flip flags (nes/ram.go's sprite
// horizontalFlip/verticalFlip and nes/mapper0.go's bank/address remaps):
// both are "read through a coordinate transform instead of materializing a
// copy" — except here we do materialize the transform once per B, up front,
// in the B-pack preprocessor below, so the kernel itself never has to know
// about rotation.
type Rotation int

const (
	R0 Rotation = iota
	R90
	R180
	R270
)

// rotations in dispatcher visit order (§5: R0, R90, R180, R270).
var allRotations = [4]Rotation{R0, R90, R180, R270}

func (r Rotation) String() string {
	switch r {
	case R0:
		return "R0"
	case R90:
		return "R90"
	case R180:
		return "R180"
	case R270:
		return "R270"
	default:
		return "R?"
	}
}

// quarter reports whether r is one of the two quarter turns, the rotations
// smart mode (§4.5) may skip per pair.
func (r Rotation) quarter() bool {
	return r == R90 || r == R270
}

// inverse returns the rotation that undoes r, used by the rotation
// round-trip test in §8.
func (r Rotation) inverse() Rotation {
	switch r {
	case R90:
		return R270
	case R270:
		return R90
	default:
		return r
	}
}

// rotatedShape returns the logical (height, width) of B after rotation r,
// per the table in §3.
func rotatedShape(hb, wb int, r Rotation) (h, w int) {
	if r.quarter() {
		return wb, hb
	}
	return hb, wb
}

// remap translates a rotated coordinate (by, bx) in the rotated logical
// frame back into B's own (row, col), per the table in §3.
func remap(by, bx, hb, wb int, r Rotation) (row, col int) {
	switch r {
	case R0:
		return by, bx
	case R90:
		return hb - 1 - bx, by
	case R180:
		return hb - 1 - by, wb - 1 - bx
	case R270:
		return bx, wb - 1 - by
	default:
		return by, bx
	}
}

// rotateMatrix materializes rotation r of b into a fresh contiguous
// row-major Matrix, the one-shot transform the B-pack preprocessor (§4.3)
// performs so that only the 0 kernel ever runs at dispatch time. The
// allocation is guarded through checkedSize (§7(b)).
func rotateMatrix(b Matrix, r Rotation) (Matrix, error) {
	h, w := rotatedShape(b.H, b.W, r)
	n, err := checkedSize(h, w)
	if err != nil {
		return Matrix{}, err
	}
	data := make([]byte, n)
	for by := 0; by < h; by++ {
		for bx := 0; bx < w; bx++ {
			row, col := remap(by, bx, b.H, b.W, r)
			data[by*w+bx] = b.At(row, col)
		}
	}
	return Matrix{H: h, W: w, S0: w, S1: 1, Data: data}, nil
}
