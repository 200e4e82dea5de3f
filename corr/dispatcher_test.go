package corr

import (
	"errors"
	"reflect"
	"testing"
)

// TestComputeEmptyLists reproduces SPEC_FULL.md's supplemented empty-list
// fast exit: no A's or no B's succeeds immediately with empty containers,
// never touching the kernel.
func TestComputeEmptyLists(t *testing.T) {
	opts := Options{
		Rotations:   RotationFlags{R0: true},
		Aggregators: AggregatorFlags{Full: true, Worst: true},
	}
	result, err := Compute(nil, []Matrix{NewMatrix([][]byte{{1}})}, opts)
	if err != nil {
		t.Fatalf("Compute with empty A_list: %v", err)
	}
	if result.Worst == nil || result.Worst.MaxVal != minInt32 {
		t.Errorf("empty-list worst result = %+v, want untouched minInt32", result.Worst)
	}
	if len(result.Rotations[R0].Cells) != 0 {
		t.Errorf("empty-list full cells = %v, want none", result.Rotations[R0].Cells)
	}
}

// TestComputeValidatesBeforeMutating reproduces §7(a): a bad element in
// either list reports every violation found, aggregated into one
// *ShapeError, without computing anything.
func TestComputeValidatesBeforeMutating(t *testing.T) {
	bad := Matrix{H: 2, W: 2, S0: 2, S1: 1, Data: []byte{1, 2}} // declares 4 cells, backs 2
	aList := []Matrix{bad, NewMatrix([][]byte{{1}})}
	bList := []Matrix{{H: -1, W: 1, S0: 1, S1: 1}}

	_, err := Compute(aList, bList, Options{Rotations: RotationFlags{R0: true}})
	if err == nil {
		t.Fatal("expected a *ShapeError, got nil")
	}
	var shapeErr *ShapeError
	if !errors.As(err, &shapeErr) {
		t.Fatalf("error = %v, want *ShapeError", err)
	}
	if len(shapeErr.Violations) != 2 {
		t.Errorf("violations = %v, want 2 entries", shapeErr.Violations)
	}
	if !errors.Is(err, ErrInvalidMatrix) {
		t.Error("ShapeError must unwrap to ErrInvalidMatrix")
	}
}

// TestComputeIdentityFullMap exercises Compute end to end against scenario 2
// of spec.md §8 with only the R0 rotation and the full-map aggregator
// requested.
func TestComputeIdentityFullMap(t *testing.T) {
	a := NewMatrix([][]byte{{1, 0}, {0, 1}})
	b := NewMatrix([][]byte{{1}})
	opts := Options{
		Rotations:   RotationFlags{R0: true},
		Aggregators: AggregatorFlags{Full: true},
	}
	result, err := Compute([]Matrix{a}, []Matrix{b}, opts)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	got := result.Rotations[R0].Cells[0][0]
	want := [][]int32{{1, 0}, {0, 1}}
	gotRows := make([][]int32, got.H)
	for r := 0; r < got.H; r++ {
		row := make([]int32, got.W)
		for c := 0; c < got.W; c++ {
			row[c] = got.At(r, c)
		}
		gotRows[r] = row
	}
	if !reflect.DeepEqual(gotRows, want) {
		t.Errorf("full map = %v, want %v", gotRows, want)
	}
	if result.Rotations[R90].Requested || result.Rotations[R90].Cells != nil {
		t.Error("R90 was not requested and must stay empty")
	}
}

// TestComputeMaxBounding reproduces §8's max-bounding property: every
// translation's match count is between 0 and min(Ho*Wo, Hb*Wb).
func TestComputeMaxBounding(t *testing.T) {
	a := NewMatrix([][]byte{{1, 2, 1}, {2, 1, 2}})
	b := NewMatrix([][]byte{{1, 2}, {2, 1}})
	opts := Options{
		Rotations:   RotationFlags{R0: true, R90: true, R180: true, R270: true},
		Aggregators: AggregatorFlags{Full: true},
	}
	result, err := Compute([]Matrix{a}, []Matrix{b}, opts)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	limit := int32(b.H * b.W)
	for _, rr := range result.Rotations {
		if !rr.Requested {
			continue
		}
		m := rr.Cells[0][0]
		for _, v := range m.Data {
			if v < 0 || v > limit {
				t.Errorf("match count %d out of bounds [0,%d]", v, limit)
			}
		}
	}
}

// TestComputeWorstOnNewMaxHook confirms Options.OnNewMax fires exactly when
// the global maximum strictly increases, the hook sonify.Sonifier relies on.
func TestComputeWorstOnNewMaxHook(t *testing.T) {
	var seen []int
	opts := Options{
		Rotations:   RotationFlags{R0: true},
		Aggregators: AggregatorFlags{Worst: true},
		OnNewMax: func(acc int) {
			seen = append(seen, acc)
		},
	}
	aList := []Matrix{
		NewMatrix([][]byte{{1, 2}, {3, 4}}),
		NewMatrix([][]byte{{4, 3}, {2, 1}}),
	}
	bList := []Matrix{NewMatrix([][]byte{{1}})}
	if _, err := Compute(aList, bList, opts); err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if len(seen) != 1 || seen[0] != 1 {
		t.Errorf("OnNewMax calls = %v, want exactly one call with 1", seen)
	}
}

// TestComputeSmartModeSkipsQuarterForOneDOperands reproduces §4.5: with
// smart mode on and every operand one-dimensional, the quarter rotations are
// never even allocated into the result.
func TestComputeSmartModeSkipsQuarterForOneDOperands(t *testing.T) {
	a := NewMatrix([][]byte{{1, 2, 3}})
	b := NewMatrix([][]byte{{1, 2}})
	opts := Options{
		Rotations:   RotationFlags{R0: true, R90: true, R180: true, R270: true},
		Aggregators: AggregatorFlags{Full: true},
		SmartMode:   true,
	}
	result, err := Compute([]Matrix{a}, []Matrix{b}, opts)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if result.Rotations[R90].Cells[0][0] != nil {
		t.Error("R90 must be skipped for two 1-D operands under smart mode")
	}
	if result.Rotations[R270].Cells[0][0] != nil {
		t.Error("R270 must be skipped for two 1-D operands under smart mode")
	}
	if result.Rotations[R0].Cells[0][0] == nil || result.Rotations[R180].Cells[0][0] == nil {
		t.Error("R0 and R180 are always computed regardless of smart mode")
	}
}
