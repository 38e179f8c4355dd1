package pricing

import "math"

const (
	// laminatorSpeedMetersPerMin is the fixed lamination line speed.
	laminatorSpeedMetersPerMin = 5.0
	inchToMeter                = 0.0254
)

// ceilDiv returns ceil(a/b) for positive integers.
func ceilDiv(a, b int) int {
	if b <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

// withSpoilage inflates a raw sheet count by the spoilage percentage and
// rounds up a second time.
func withSpoilage(raw int, spoilagePercent float64) int {
	if raw <= 0 {
		return 0
	}
	return int(math.Ceil(float64(raw) * (100 + spoilagePercent) / 100))
}

func clickRate(rules BusinessRules, color PrintColor) float64 {
	if color == PrintColorBW {
		return rules.BWClickCost
	}
	return rules.ColorClickCost
}

// interiorCost prices one interior band. It returns nil when the paper slot is
// empty or the band has no pages.
func interiorCost(job JobSpecification, paper PaperOption, pages int, rate, spoilage float64) *ComponentDetail {
	stock, ok := paper.Get()
	if !ok || pages <= 0 {
		return nil
	}
	imp := sheetImposition(stock, job.FinishedWidth, job.FinishedHeight)
	if imp <= 0 {
		return nil
	}
	sheets := withSpoilage(ceilDiv(job.Quantity*Leaves(pages), imp), spoilage)
	clicks := sheets * 2
	return &ComponentDetail{
		Imposition:  imp,
		PressSheets: sheets,
		Clicks:      clicks,
		PaperCost:   float64(sheets) * stock.CostPerSheet,
		PrintCost:   float64(clicks) * rate,
	}
}

// coverCost prices the cover spread, one per book.
func coverCost(job JobSpecification, paper PaperOption, spineWidth float64, rules BusinessRules, spoilage float64) *ComponentDetail {
	stock, ok := paper.Get()
	if !ok || !job.HasCover {
		return nil
	}
	imp := sheetImposition(stock, coverSpreadWidth(job, spineWidth), job.FinishedHeight)
	if imp <= 0 {
		return nil
	}
	sheets := withSpoilage(ceilDiv(job.Quantity, imp), spoilage)
	sides := 1
	if job.CoverPrintsOnBothSides {
		sides = 2
	}
	clicks := sheets * sides
	return &ComponentDetail{
		Imposition:  imp,
		PressSheets: sheets,
		Clicks:      clicks,
		PaperCost:   float64(sheets) * stock.CostPerSheet,
		PrintCost:   float64(clicks) * clickRate(rules, job.CoverPrintColor),
	}
}

func laminated(job JobSpecification) bool {
	return job.LaminationType != LaminationNone && job.LaminationType != ""
}

func laminationCost(job JobSpecification, rules BusinessRules) float64 {
	switch job.LaminationType {
	case LaminationGloss:
		return rules.GlossLaminateCostPerCover * float64(job.Quantity)
	case LaminationMatte:
		return rules.MatteLaminateCostPerCover * float64(job.Quantity)
	}
	return 0
}

func bindingParams(method BindingMethod, rules BusinessRules) (setupMins, booksPerHour float64) {
	switch method {
	case BindingPerfectBound:
		return rules.PerfectBinderSetupMins, rules.PerfectBinderSpeedBPH
	case BindingSaddleStitch:
		return rules.SaddleStitcherSetupMins, rules.SaddleStitcherSpeedBPH
	}
	return 0, 0
}

// productionTime builds the time-and-motion breakdown. cover may be nil.
func productionTime(job JobSpecification, rules BusinessRules, totalSheets int, cover *ComponentDetail, coverStock PaperOption) ProductionDetail {
	var p ProductionDetail
	p.BasePrepMins = rules.BasePrepTimeMins

	if rules.PrintingSpeedSPM > 0 {
		p.PrintingMins = float64(totalSheets) / rules.PrintingSpeedSPM
	}

	if cover != nil && laminated(job) {
		if stock, ok := coverStock.Get(); ok {
			runMeters := float64(cover.PressSheets) * stock.ParentHeight * inchToMeter
			p.LaminatingMins = runMeters / laminatorSpeedMetersPerMin
		}
	}

	setup, bph := bindingParams(job.BindingMethod, rules)
	p.BindingSetupMins = setup
	if bph > 0 {
		p.BindingMins = float64(job.Quantity) / bph * 60 * rules.BindingInefficiencyFactor
	}

	p.TrimmingMins = rules.TrimmingSetupMins
	if rules.TrimmingBooksPerCycle > 0 {
		cycles := math.Ceil(float64(job.Quantity) / rules.TrimmingBooksPerCycle)
		p.TrimmingMins += cycles * rules.TrimmingCycleTimeMins
	}

	sum := p.BasePrepMins + p.BindingSetupMins + p.PrintingMins + p.LaminatingMins + p.BindingMins + p.TrimmingMins
	p.TotalMins = sum * (1 + rules.WastageFactor)
	return p
}
