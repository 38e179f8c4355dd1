package pricing

import "math"

// Imposition returns how many jobW x jobH pieces fit on a parentW x parentH
// sheet. Pieces are laid out on a straight grid, either all in the job's
// orientation or all rotated 90 degrees; mixed-orientation nesting is not
// attempted, so the count is a grid upper bound rather than an optimal nest.
// A non-positive job dimension yields 0 and the count saturates at
// MaxImposition.
func Imposition(parentW, parentH, jobW, jobH float64) int {
	if jobW <= 0 || jobH <= 0 || parentW <= 0 || parentH <= 0 {
		return 0
	}
	fit1 := fitAlong(parentW, jobW) * fitAlong(parentH, jobH)
	fit2 := fitAlong(parentW, jobH) * fitAlong(parentH, jobW)
	return min(max(fit1, fit2), MaxImposition)
}

// fitAlong is capped before the int conversion so the product of two axes
// stays representable.
func fitAlong(parent, piece float64) int {
	n := math.Floor(parent / piece)
	switch {
	case math.IsNaN(n) || n <= 0:
		return 0
	case n >= MaxImposition:
		return MaxImposition
	}
	return int(n)
}

// sheetImposition imposes a piece onto the stock's parent sheet.
func sheetImposition(p PaperStock, w, h float64) int {
	return Imposition(p.ParentWidth, p.ParentHeight, w, h)
}
