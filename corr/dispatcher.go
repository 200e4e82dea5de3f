package corr

import "github.com/golang/glog"

// RotationFlags selects which of the four clockwise rotations of B are
// requested for a run.
type RotationFlags struct {
	R0, R90, R180, R270 bool
}

func (f RotationFlags) asArray() [4]bool {
	return [4]bool{f.R0, f.R90, f.R180, f.R270}
}

// AggregatorFlags selects which of the three optional sinks a run fills in.
type AggregatorFlags struct {
	Hist, Full, Worst bool
}

// Options configures one Compute run. SmartMode corresponds to do_smart
// (§4.5); when false the behavior is as if it were absent (spec.md §6).
type Options struct {
	Rotations   RotationFlags
	Aggregators AggregatorFlags
	SmartMode   bool

	// OnNewMax, if non-nil, is called synchronously every time the
	// worst-tracker's global maximum strictly increases. It exists purely
	// so outer layers (the sonify package) can subscribe without the core
	// kernel or dispatcher taking an audio dependency; it costs nothing
	// when nil and is never required by §§1-9.
	OnNewMax func(acc int)
}

// RotationResult is one requested rotation's nA x nB result container
// (§4.4, §6). Cell is nil when that rotation was not requested, or — under
// smart mode — when that particular pair skipped it (§4.5).
type RotationResult struct {
	Requested bool
	Cells     [][]*FullMap // [iA][iB]
}

// WorstResult bundles the worst-tracker's output together with its maximum,
// the convenience accessor SPEC_FULL.md's supplemented features describe
// (mirroring the original binding's max_val_obj alongside the pair list).
type WorstResult struct {
	MaxVal int32
	Pairs  [][2]int
}

// Result is the ordered bundle §6 specifies: histogram, one RotationResult
// per rotation in R0,R90,R180,R270 order, and the worst-pairs result. A
// disabled feature leaves its slot at its zero value (Requested=false /
// nil).
type Result struct {
	Histogram *Histogram // nil if !Aggregators.Hist
	Rotations [4]RotationResult
	Worst     *WorstResult // nil if !Aggregators.Worst
}

// Compute is the public entry point (spec.md §6): for every (A, B) pair in
// aList x bList and every requested rotation, slide rotated B over A and
// feed every requested aggregator. It validates both lists up front (§7(a))
// and returns a *ShapeError before mutating any aggregator state if either
// list contains a bad element.
func Compute(aList, bList []Matrix, opts Options) (Result, error) {
	if err := ValidateLists(aList, bList); err != nil {
		return Result{}, err
	}

	nA, nB := len(aList), len(bList)
	want := opts.Rotations.asArray()

	histLen := 1
	for _, b := range bList {
		if n := b.H * b.W; n+1 > histLen {
			histLen = n + 1
		}
	}

	var hist *Histogram
	if opts.Aggregators.Hist {
		h, err := NewHistogram(histLen)
		if err != nil {
			return Result{}, err
		}
		hist = h
	}

	var worst *WorstTracker
	if opts.Aggregators.Worst {
		worst = NewWorstTracker(nA, nB)
		worst.onNewMax = opts.OnNewMax
	}

	var result Result
	result.Histogram = hist
	if opts.Aggregators.Worst {
		result.Worst = &WorstResult{MaxVal: minInt32}
	}

	for _, r := range allRotations {
		result.Rotations[r].Requested = want[r]
		if opts.Aggregators.Full && want[r] {
			cells := make([][]*FullMap, nA)
			for i := range cells {
				cells[i] = make([]*FullMap, nB)
			}
			result.Rotations[r].Cells = cells
		}
	}

	if nA == 0 || nB == 0 {
		// Supplemented edge case (SPEC_FULL.md): an empty list builds
		// empty containers and succeeds without doing any work.
		if worst != nil {
			result.Worst.MaxVal = worst.MaxVal()
			result.Worst.Pairs = worst.Pairs()
		}
		return result, nil
	}

	anyA2D := anyTrulyA2D(aList)
	packs, err := buildBPacks(bList, want, opts.SmartMode, anyA2D)
	if err != nil {
		return Result{}, err
	}

	s := &sinks{hist: hist, full: nil, worst: worst}

	for i, a := range aList {
		for j, b := range bList {
			s.ia, s.ib = i, j
			skipQ := opts.SmartMode && skipQuarter(a, b)
			for _, r := range allRotations {
				if !want[r] {
					continue
				}
				if r.quarter() && skipQ {
					glog.V(2).Infof("corr: pair (%d,%d) skips %s under smart mode", i, j, r)
					continue
				}
				rb := packs[j].rot[r]

				var full *FullMap
				if opts.Aggregators.Full {
					ho, wo := a.H+rb.H-1, a.W+rb.W-1
					f, err := NewFullMap(ho, wo)
					if err != nil {
						return Result{}, err
					}
					full = f
					result.Rotations[r].Cells[i][j] = full
				}
				s.full = full
				glog.V(1).Infof("corr: pair (%d,%d) rotation %s: A=%dx%d B=%dx%d", i, j, r, a.H, a.W, rb.H, rb.W)
				dispatchKernel(a, rb, opts.Aggregators.Hist, opts.Aggregators.Full, opts.Aggregators.Worst, s)
			}
		}
	}

	if worst != nil {
		result.Worst.MaxVal = worst.MaxVal()
		result.Worst.Pairs = worst.Pairs()
	}
	return result, nil
}
