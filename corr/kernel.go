package corr

// modeFlag marks a kernel instantiation's compile-time decision to run (or
// skip) one of the three aggregator writes. on/off are zero-size types so
// that enabled() on a flag's zero value is a constant the compiler can fold, the same
// "generic type parameter stands in for a runtime branch" idiom
// go-highway's contrib/algo package leans on (e.g. BaseFind[T hwy.Lanes]
// picking a SIMD width at compile time instead of a runtime switch) —
// adapted here from a type-width axis to a feature-flag axis.
type modeFlag interface {
	enabled() bool
}

type on struct{}

func (on) enabled() bool { return true }

type off struct{}

func (off) enabled() bool { return false }

// sinks are the three pluggable aggregators a kernel run writes into. A nil
// field is simply never touched by the instantiation that has the matching
// flag set to off.
type sinks struct {
	hist   *Histogram
	full   *FullMap
	worst  *WorstTracker
	ia, ib int
}

// runKernel visits every output coordinate (oy, ox) of sliding b over a
// exactly once, computes the overlap match count, and routes it to
// whichever of H, F, W is "on". Three orthogonal type parameters give the
// seven useful combinations (all-off is never instantiated) without a
// per-cell runtime test of which aggregators are active — the three
// parameterized booleans of spec.md §4.1 ("DO_HIST, DO_FULL, DO_WORST") are
// expressed as Go generics instead of C preprocessor macros.
//
// a and b must already be in the kernel's 0 frame: b is expected to be a
// B-pack buffer already rotated by the caller (§4.3), so this function only
// ever implements the R0 indexing math of spec.md §4.1.
func runKernel[H, F, W modeFlag](a, b Matrix, s *sinks) {
	ha, wa := a.H, a.W
	hb, wb := b.H, b.W
	ho := ha + hb - 1
	wo := wa + wb - 1
	// No special-casing for zero-sized operands: the border-clip math below
	// (by0/by1/bx0/bx1) already yields an empty overlap — and so acc == 0 —
	// for every translation whenever either operand has a zero dimension,
	// including the Hk*Wk == 0 case where every one of the Ho*Wo
	// translations is such a miss (spec.md §4.1's documented edge case).
	contiguous := a.contiguous() && b.contiguous()
	var hFlag H
	var fFlag F
	var wFlag W
	for oy := 0; oy < ho; oy++ {
		by0 := (hb - 1) - oy
		if by0 < 0 {
			by0 = 0
		}
		by1 := ha + hb - 2 - oy
		if by1 > hb-1 {
			by1 = hb - 1
		}
		for ox := 0; ox < wo; ox++ {
			bx0 := (wb - 1) - ox
			if bx0 < 0 {
				bx0 = 0
			}
			bx1 := wa + wb - 2 - ox
			if bx1 > wb-1 {
				bx1 = wb - 1
			}
			acc := 0
			if by1 >= by0 && bx1 >= bx0 {
				if contiguous {
					for by := by0; by <= by1; by++ {
						ay := oy - (hb - 1) + by
						ap := ay*a.S0 + (ox - (wb - 1) + bx0)
						bp := by*b.S0 + bx0
						arow := a.Data[ap:]
						brow := b.Data[bp:]
						n := bx1 - bx0 + 1
						for i := 0; i < n; i++ {
							av, bv := arow[i], brow[i]
							if av != 0 && bv != 0 && av == bv {
								acc++
							}
						}
					}
				} else {
					for by := by0; by <= by1; by++ {
						ay := oy - (hb - 1) + by
						for bx := bx0; bx <= bx1; bx++ {
							ax := ox - (wb - 1) + bx
							av := a.Data[ay*a.S0+ax*a.S1]
							bv := b.Data[by*b.S0+bx*b.S1]
							if av != 0 && bv != 0 && av == bv {
								acc++
							}
						}
					}
				}
			}
			if wFlag.enabled() && s.worst != nil {
				s.worst.observe(s.ia, s.ib, acc)
			}
			if hFlag.enabled() && s.hist != nil {
				s.hist.add(acc)
			}
			if fFlag.enabled() && s.full != nil {
				s.full.set(oy, ox, int32(acc))
			}
		}
	}
}

// dispatchKernel picks one of the seven non-empty (doHist, doFull, doWorst)
// instantiations at runtime. This is the one place a flag is tested at
// runtime; the kernel body itself never re-tests it per cell.
func dispatchKernel(a, b Matrix, doHist, doFull, doWorst bool, s *sinks) {
	switch {
	case doHist && doFull && doWorst:
		runKernel[on, on, on](a, b, s)
	case doHist && doFull && !doWorst:
		runKernel[on, on, off](a, b, s)
	case doHist && !doFull && doWorst:
		runKernel[on, off, on](a, b, s)
	case doHist && !doFull && !doWorst:
		runKernel[on, off, off](a, b, s)
	case !doHist && doFull && doWorst:
		runKernel[off, on, on](a, b, s)
	case !doHist && doFull && !doWorst:
		runKernel[off, on, off](a, b, s)
	case !doHist && !doFull && doWorst:
		runKernel[off, off, on](a, b, s)
	default:
		// nothing enabled: no aggregator can observe the run, skip it.
	}
}
