package shrink

// BeforeMergeSizes computes the target sizes for shrinking factors i
// and j ahead of a merge (SPEC_FULL.md §4.6 "Combined shrink-before-
// merge"):
//  1. target_i = min(sizeI, maxBeforeMerge); target_j likewise.
//  2. If target_i * target_j > maxStates, recompute balanced sizes:
//     the smaller side is capped at sqrt(maxStates), the other at
//     maxStates / (the capped smaller side).
//
// The caller (mas's main loop) then shrinks factor i (resp. j) only if
// its current size exceeds min(target, threshold) — that final
// "shrink only if worthwhile" decision is left to the caller since it
// needs both the threshold and the live factor, neither of which this
// pure sizing function touches.
func BeforeMergeSizes(sizeI, sizeJ, maxStates, maxBeforeMerge int) (targetI, targetJ int) {
	targetI = min(sizeI, maxBeforeMerge)
	targetJ = min(sizeJ, maxBeforeMerge)

	if targetI*targetJ <= maxStates {
		return targetI, targetJ
	}

	// Rebalance: cap the smaller side at sqrt(maxStates), compressing
	// it as tightly as a whole partition count allows, then give the
	// other side as much of the budget as remains.
	small, large := &targetI, &targetJ
	if targetJ < targetI {
		small, large = &targetJ, &targetI
	}
	capped := isqrt(maxStates)
	if *small > capped {
		*small = capped
	}
	if *small < 1 {
		*small = 1
	}
	*large = maxStates / *small

	return targetI, targetJ
}

// isqrt returns floor(sqrt(n)) for n >= 0, via Newton's method —
// avoids a float64 round-trip for the modest integer sizes this
// module ever operates on (mirrors matrix package's preference for
// integer-exact numeric helpers over math.Sqrt where precision
// matters).
func isqrt(n int) int {
	if n <= 0 {
		return 0
	}
	x := n
	y := (x + 1) / 2
	for y < x {
		x = y
		y = (x + n/x) / 2
	}
	return x
}
