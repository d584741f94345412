package vpl

// Amortized weighting spreads an O(N²) nearest-neighbour distance pass over
// many frames: each frame inspects one (current, other) pair in row-major
// order. When the inner scan of a row completes, the row's VPL receives its
// minimum squared distance to any other VPL as importance weight, so widely
// spaced proxies count for more. The cursor lives on the evaluator so separate
// evaluators never share schedule state.

// advanceWeightSchedule inspects one pair of the N×N schedule and commits the
// accumulated minimum when the row completes. Self-pairs are skipped but still
// advance the schedule counter.
func (e *Evaluator) advanceWeightSchedule() {
	n := len(e.vpls)
	if n == 0 {
		return
	}
	if n == 1 {
		e.vpls[0].Weight = 1
		return
	}
	if e.current >= n || e.other >= n {
		// VPL set shrank since the last frame; restart the schedule
		e.current, e.other = 0, 0
	}

	if e.other == 0 {
		e.minDistSq = 0
		e.minDistSqValid = false
	}

	if e.other != e.current {
		d := e.vpls[e.current].Position.Subtract(e.vpls[e.other].Position).LengthSquared()
		if !e.minDistSqValid || d < e.minDistSq {
			e.minDistSq = d
			e.minDistSqValid = true
		}
	}

	if e.other == n-1 {
		if e.minDistSqValid {
			e.vpls[e.current].Weight = e.minDistSq
		}
		e.current = (e.current + 1) % n
		e.other = 0
	} else {
		e.other++
	}
}

// weight returns the importance factor for one VPL under the active mode
func (e *Evaluator) weight(v *VPLProxy) float64 {
	if e.cfg.AutomaticWeights && len(e.vpls) == 1 {
		return 1
	}
	return v.Weight
}
