package pricing

const (
	coatedCaliperFactor   = 0.9
	uncoatedCaliperFactor = 1.3
	micronsPerInch        = 25400.0
)

// PaperThicknessInches approximates a sheet's caliper from its basis weight.
// The factor is empirical: 0.9 microns per gsm for coated stock, 1.3 for
// uncoated.
func PaperThicknessInches(p PaperStock) float64 {
	factor := uncoatedCaliperFactor
	if p.Type == PaperCoated {
		factor = coatedCaliperFactor
	}
	return p.GSM * factor / micronsPerInch
}

// Leaves returns the number of physical leaves needed for a page count.
func Leaves(pages int) int {
	if pages <= 0 {
		return 0
	}
	return (pages + 1) / 2
}

// Spine is the spine width breakdown of a job.
type Spine struct {
	BWThickness    float64
	ColorThickness float64
	Internal       float64
	CoverAllowance float64
	Width          float64
}

// SpineFor computes the spine of a job. Only perfect-bound books have a
// spine; saddle-stitched and unbound jobs report zero width. A job without a
// cover keeps its internal block measurement for audit but has no spine width.
func SpineFor(job JobSpecification, papers Papers, rules BusinessRules) Spine {
	var s Spine
	if bw, ok := papers.BW.Get(); ok {
		s.BWThickness = PaperThicknessInches(bw)
	}
	if color, ok := papers.Color.Get(); ok {
		s.ColorThickness = PaperThicknessInches(color)
	}
	if job.BindingMethod != BindingPerfectBound {
		return s
	}
	s.Internal = float64(Leaves(job.BWPages))*s.BWThickness + float64(Leaves(job.ColorPages))*s.ColorThickness
	if !job.HasCover {
		return s
	}
	if cover, ok := papers.Cover.Get(); ok {
		s.CoverAllowance = PaperThicknessInches(cover)
		if laminated(job) {
			s.CoverAllowance += 2 * rules.LaminationThicknessInches
		}
	}
	s.Width = s.Internal + s.CoverAllowance
	return s
}
