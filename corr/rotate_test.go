package corr

import (
	"reflect"
	"testing"
)

// TestRotationRoundTrip reproduces spec.md §8's rotation round-trip law:
// rotating a matrix by r and then by r.inverse() reproduces the original.
func TestRotationRoundTrip(t *testing.T) {
	m := NewMatrix([][]byte{
		{1, 2, 3},
		{4, 5, 6},
	})
	for _, r := range allRotations {
		rotated, err := rotateMatrix(m, r)
		if err != nil {
			t.Fatalf("rotateMatrix(%s): %v", r, err)
		}
		back, err := rotateMatrix(rotated, r.inverse())
		if err != nil {
			t.Fatalf("rotateMatrix(%s): %v", r.inverse(), err)
		}
		if !reflect.DeepEqual(back.Rows(), m.Rows()) {
			t.Errorf("rotation %s round trip: got %v, want %v", r, back.Rows(), m.Rows())
		}
	}
}

func TestRotatedShape(t *testing.T) {
	tests := []struct {
		r            Rotation
		wantH, wantW int
	}{
		{R0, 2, 3},
		{R90, 3, 2},
		{R180, 2, 3},
		{R270, 3, 2},
	}
	for _, tt := range tests {
		h, w := rotatedShape(2, 3, tt.r)
		if h != tt.wantH || w != tt.wantW {
			t.Errorf("rotatedShape(2,3,%s) = (%d,%d), want (%d,%d)", tt.r, h, w, tt.wantH, tt.wantW)
		}
	}
}

// TestRotateMatrixKnownValues pins down the four rotations of a small
// asymmetric matrix against the remap table in spec.md §3, so a future
// change to remap can't silently swap two rotations and still pass the
// round-trip test above.
func TestRotateMatrixKnownValues(t *testing.T) {
	m := NewMatrix([][]byte{
		{1, 2},
		{3, 4},
		{5, 6},
	})
	tests := []struct {
		r    Rotation
		want [][]byte
	}{
		{R0, [][]byte{{1, 2}, {3, 4}, {5, 6}}},
		{R90, [][]byte{{5, 3, 1}, {6, 4, 2}}},
		{R180, [][]byte{{6, 5}, {4, 3}, {2, 1}}},
		{R270, [][]byte{{2, 4, 6}, {1, 3, 5}}},
	}
	for _, tt := range tests {
		rotated, err := rotateMatrix(m, tt.r)
		if err != nil {
			t.Fatalf("rotateMatrix(%s): %v", tt.r, err)
		}
		got := rotated.Rows()
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("rotateMatrix(%s) = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func TestQuarterAndInverse(t *testing.T) {
	if R0.quarter() || R180.quarter() {
		t.Error("R0 and R180 are not quarter turns")
	}
	if !R90.quarter() || !R270.quarter() {
		t.Error("R90 and R270 are quarter turns")
	}
	if R90.inverse() != R270 || R270.inverse() != R90 {
		t.Error("R90/R270 must be mutual inverses")
	}
	if R0.inverse() != R0 || R180.inverse() != R180 {
		t.Error("R0 and R180 are self-inverse")
	}
}
