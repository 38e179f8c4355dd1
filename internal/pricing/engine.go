package pricing

// Calculate prices a job against resolved papers and a rules snapshot. It is a
// pure function: identical inputs always produce an identical result, and no
// partial result is returned on error.
func Calculate(job JobSpecification, papers Papers, rules BusinessRules, overrides Overrides) (CalculationResult, error) {
	if err := ValidateInput(job); err != nil {
		return CalculationResult{}, err
	}
	rates := rules.Resolve(overrides)
	if rates.SpoilagePercent < 0 || rates.MarkupPercent < 0 || rates.LaborRate < 0 {
		return CalculationResult{}, invalidf("labor rate, markup and spoilage cannot be negative")
	}

	spine := SpineFor(job, papers, rules)
	if err := ValidateFeasibility(job, papers, spine.Width); err != nil {
		return CalculationResult{}, err
	}

	bw := interiorCost(job, papers.BW, job.BWPages, rules.BWClickCost, rates.SpoilagePercent)
	color := interiorCost(job, papers.Color, job.ColorPages, rules.ColorClickCost, rates.SpoilagePercent)
	cover := coverCost(job, papers.Cover, spine.Width, rules, rates.SpoilagePercent)

	var material, printCost float64
	var totalSheets int
	for _, c := range []*ComponentDetail{bw, color, cover} {
		if c == nil {
			continue
		}
		material += c.PaperCost
		printCost += c.PrintCost
		totalSheets += c.PressSheets
	}

	var lamination float64
	if cover != nil {
		lamination = laminationCost(job, rules)
	}

	production := productionTime(job, rules, totalSheets, cover, papers.Cover)
	hours := production.TotalMins / 60
	labor := hours * rates.LaborRate

	subtotal := material + printCost + lamination + labor
	markup := subtotal * rates.MarkupPercent / 100

	return CalculationResult{
		TotalPrice:          subtotal + markup,
		SpineWidthInches:    spine.Width,
		ProductionTimeHours: hours,
		Details: CalculationDetails{
			BWPaperThicknessInches:    spine.BWThickness,
			ColorPaperThicknessInches: spine.ColorThickness,
			InternalSpineInches:       spine.Internal,
			CoverSpineAllowanceInches: spine.CoverAllowance,
			TotalMaterialCost:         material,
			TotalPrintCost:            printCost,
			LaminationCost:            lamination,
			LaborCost:                 labor,
			Subtotal:                  subtotal,
			MarkupAmount:              markup,
			LaborRate:                 rates.LaborRate,
			MarkupPercent:             rates.MarkupPercent,
			SpoilagePercent:           rates.SpoilagePercent,
			BW:                        bw,
			Color:                     color,
			Cover:                     cover,
			Production:                production,
		},
	}, nil
}
