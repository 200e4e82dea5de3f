package corr

// bpack holds every requested rotation of one B, pre-materialized into a
// contiguous row-major buffer (§4.3), the same "do the remap once, read
// straight after" trade nes/mapper0.go makes when it resolves a PRG-ROM
// bank address once per access rather than re-deriving it inside the CPU's
// hot read path.
type bpack struct {
	rot [4]Matrix // indexed by Rotation; zero value if not requested/allocated
	has [4]bool
}

// buildBPacks runs the B-pack preprocessor over bList: for every B and
// every rotation actually requested anywhere in this run, materialize the
// rotated buffer once. Under smart mode, a given B's quarter-rotation
// buffers are skipped only when neither side of any pair involving it could
// ever need them: that requires both that no A in the run is truly 2-D
// (anyA2D) and that this particular B is not truly 2-D either (§4.5's
// anyA2D pre-scan, mirrored per-B as the open question in SPEC_FULL.md
// notes).
func buildBPacks(bList []Matrix, want [4]bool, doSmart, anyA2D bool) ([]bpack, error) {
	packs := make([]bpack, len(bList))
	for i, b := range bList {
		skip := doSmart && !anyA2D && !is2D(b)
		for _, r := range allRotations {
			if !want[r] {
				continue
			}
			if skip && r.quarter() {
				continue
			}
			rb, err := rotateMatrix(b, r)
			if err != nil {
				return nil, err
			}
			packs[i].rot[r] = rb
			packs[i].has[r] = true
		}
	}
	return packs, nil
}
