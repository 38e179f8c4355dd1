package pricing

import "math"

// Input bounds. Together they keep quantity*leaves and per-sheet counts well
// inside int range.
const (
	MaxQuantity   = 1_000_000
	MaxBandPages  = 5_000
	MinTrimInches = 0.5
	MaxImposition = 10_000
)

// ValidateInput rejects specifications that are malformed regardless of the
// papers chosen.
func ValidateInput(job JobSpecification) error {
	if job.Quantity <= 0 {
		return invalidf("quantity must be a positive number")
	}
	if job.Quantity > MaxQuantity {
		return invalidf("quantity must be at most %d", MaxQuantity)
	}
	if !finite(job.FinishedWidth) || !finite(job.FinishedHeight) || job.FinishedWidth <= 0 || job.FinishedHeight <= 0 {
		return invalidf("finished width and height must be positive")
	}
	if job.FinishedWidth < MinTrimInches || job.FinishedHeight < MinTrimInches {
		return invalidf("finished width and height must be at least %g inches", MinTrimInches)
	}
	if job.BWPages < 0 || job.ColorPages < 0 {
		return invalidf("page counts cannot be negative")
	}
	if job.BWPages > MaxBandPages || job.ColorPages > MaxBandPages {
		return invalidf("page counts must be at most %d per band", MaxBandPages)
	}
	switch job.BindingMethod {
	case BindingNone, BindingPerfectBound, BindingSaddleStitch:
	default:
		return invalidf("unsupported binding method %q", job.BindingMethod)
	}
	switch job.LaminationType {
	case LaminationNone, LaminationGloss, LaminationMatte:
	default:
		return invalidf("unsupported lamination type %q", job.LaminationType)
	}
	switch job.CoverPrintColor {
	case PrintColorColor, PrintColorBW, "":
	default:
		return invalidf("unsupported cover print color %q", job.CoverPrintColor)
	}
	return nil
}

// ValidateFeasibility rejects jobs that cannot be physically produced: a
// saddle-stitched page count that is not a multiple of four, or a selected
// paper whose parent sheet cannot hold a single finished piece. Missing
// papers are not an error; they simply contribute nothing.
func ValidateFeasibility(job JobSpecification, papers Papers, spineWidth float64) error {
	total := job.TotalPages()
	if total > 0 && job.BindingMethod == BindingSaddleStitch && total%4 != 0 {
		return invalidf("saddle-stitch page count must be a multiple of 4, got %d", total)
	}
	if bw, ok := papers.BW.Get(); ok && job.BWPages > 0 {
		if sheetImposition(bw, job.FinishedWidth, job.FinishedHeight) <= 0 {
			return invalidf("finished size %gx%g does not fit on b/w paper %s (%gx%g)",
				job.FinishedWidth, job.FinishedHeight, bw.SKU, bw.ParentWidth, bw.ParentHeight)
		}
	}
	if color, ok := papers.Color.Get(); ok && job.ColorPages > 0 {
		if sheetImposition(color, job.FinishedWidth, job.FinishedHeight) <= 0 {
			return invalidf("finished size %gx%g does not fit on color paper %s (%gx%g)",
				job.FinishedWidth, job.FinishedHeight, color.SKU, color.ParentWidth, color.ParentHeight)
		}
	}
	if cover, ok := papers.Cover.Get(); ok && job.HasCover {
		spreadW := coverSpreadWidth(job, spineWidth)
		if sheetImposition(cover, spreadW, job.FinishedHeight) <= 0 {
			return invalidf("cover spread %.4gx%g does not fit on cover paper %s (%gx%g)",
				spreadW, job.FinishedHeight, cover.SKU, cover.ParentWidth, cover.ParentHeight)
		}
	}
	return nil
}

func coverSpreadWidth(job JobSpecification, spineWidth float64) float64 {
	return 2*job.FinishedWidth + spineWidth
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
