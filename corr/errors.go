package corr

import (
	"errors"
	"fmt"
)

// ErrInvalidMatrix is the sentinel wrapped by ShapeError; it is what callers
// should errors.Is against rather than matching on error text, mirroring
// the teacher's own wrapped fmt.Errorf("...: %w", err) convention
// (nes/mapper0.go, ui/ui.go's newProgram).
var ErrInvalidMatrix = errors.New("corr: invalid matrix")

// ErrAllocation wraps the one other failure category §7 names: an
// allocation that cannot be satisfied. Go has no direct OOM signal for a
// plain make(), so this sentinel instead guards the output-shape product
// overflow check before the allocation is attempted.
var ErrAllocation = errors.New("corr: allocation failed")

// maxAllocElems caps a single make() at a size well under where an int
// overflow becomes possible on a 32-bit platform, the bound checkedSize
// enforces ahead of every allocation driven by a matrix shape.
const maxAllocElems = 1 << 30

// checkedSize multiplies dims together, reporting ErrAllocation instead of
// returning a bogus or dangerously large element count: a negative
// dimension, or a product exceeding maxAllocElems, is rejected before any
// make() call sees it.
func checkedSize(dims ...int) (int, error) {
	total := int64(1)
	for _, d := range dims {
		if d < 0 {
			return 0, fmt.Errorf("%w: negative dimension %d", ErrAllocation, d)
		}
		if d > 0 && total > maxAllocElems/int64(d) {
			return 0, fmt.Errorf("%w: shape %v exceeds %d elements", ErrAllocation, dims, maxAllocElems)
		}
		total *= int64(d)
	}
	return int(total), nil
}

// ShapeError reports every input-shape or element-type violation found
// across both lists by a single validation pass (§7(a)), rather than
// failing on the first one — see SPEC_FULL.md's "supplemented features".
type ShapeError struct {
	Violations []ShapeViolation
}

// ShapeViolation names one bad element: which list, which index, and why.
type ShapeViolation struct {
	List  string // "A" or "B"
	Index int
	Cause string
}

func (e *ShapeError) Error() string {
	if len(e.Violations) == 1 {
		v := e.Violations[0]
		return fmt.Sprintf("corr: %s_list[%d]: %s", v.List, v.Index, v.Cause)
	}
	return fmt.Sprintf("corr: %d invalid matrices (first: %s_list[%d]: %s)",
		len(e.Violations), e.Violations[0].List, e.Violations[0].Index, e.Violations[0].Cause)
}

func (e *ShapeError) Unwrap() error {
	return ErrInvalidMatrix
}

// ValidateLists walks every element of both lists up front and aggregates
// all violations into one *ShapeError, so a run fails before any
// aggregator state is mutated (§7(a)) and the caller sees every problem at
// once instead of one-at-a-time.
func ValidateLists(aList, bList []Matrix) error {
	var violations []ShapeViolation
	check := func(list string, ms []Matrix) {
		for i, m := range ms {
			switch {
			case m.H < 0 || m.W < 0:
				violations = append(violations, ShapeViolation{list, i, "negative dimension"})
			case m.H > 0 && m.W > 0 && len(m.Data) < (m.H-1)*m.S0+(m.W-1)*m.S1+1:
				violations = append(violations, ShapeViolation{list, i, "data buffer too small for declared shape/strides"})
			}
		}
	}
	check("A", aList)
	check("B", bList)
	if len(violations) > 0 {
		return &ShapeError{Violations: violations}
	}
	return nil
}
