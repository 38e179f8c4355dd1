package pricing_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-cetak/internal/pricing"
)

func seedRules() pricing.BusinessRules {
	return pricing.BusinessRules{
		Version:                   1,
		ColorClickCost:            0.039,
		BWClickCost:               0.009,
		GlossLaminateCostPerCover: 0.30,
		MatteLaminateCostPerCover: 0.60,
		PrintingSpeedSPM:          15,
		PerfectBinderSetupMins:    15,
		PerfectBinderSpeedBPH:     300,
		SaddleStitcherSetupMins:   10,
		SaddleStitcherSpeedBPH:    400,
		BasePrepTimeMins:          20,
		WastageFactor:             0.15,
		BindingInefficiencyFactor: 1.20,
		TrimmingSetupMins:         10,
		TrimmingBooksPerCycle:     250,
		TrimmingCycleTimeMins:     5,
		SqInchToSqMeter:           0.00064516,
		GramsToLbs:                0.00220462,
		LaminationThicknessInches: 0.0015,
		DefaultLaborRate:          50,
		DefaultMarkupPercent:      35,
		DefaultSpoilagePercent:    5,
	}
}

var (
	textStock = pricing.PaperStock{
		SKU: "1301737", Name: "Accent 50# Opaque Text 12x18", GSM: 74, Type: pricing.PaperUncoated,
		ParentWidth: 12, ParentHeight: 18, CostPerSheet: 0.05, Usage: pricing.UsageBWText,
	}
	colorStock = pricing.PaperStock{
		SKU: "1106245", Name: "Kelly Dig 100# Gloss Text 12x18", GSM: 148, Type: pricing.PaperCoated,
		ParentWidth: 12, ParentHeight: 18, CostPerSheet: 0.08, Usage: pricing.UsageInternalColor,
	}
	coverStock = pricing.PaperStock{
		SKU: "1107404", Name: "Kelly Dig 130# Gloss Cover 13x19", GSM: 350, Type: pricing.PaperCoated,
		ParentWidth: 13, ParentHeight: 19, CostPerSheet: 0.23, Usage: pricing.UsageCovers,
	}
)

func novelJob() pricing.JobSpecification {
	return pricing.JobSpecification{
		Quantity:        100,
		FinishedWidth:   6,
		FinishedHeight:  9,
		BWPages:         200,
		BWPaperSKU:      textStock.SKU,
		CoverPaperSKU:   coverStock.SKU,
		HasCover:        true,
		CoverPrintColor: pricing.PrintColorColor,
		LaminationType:  pricing.LaminationGloss,
		BindingMethod:   pricing.BindingPerfectBound,
	}
}

func TestCalculatePerfectBoundNovel(t *testing.T) {
	papers := pricing.Papers{BW: pricing.Some(textStock), Cover: pricing.Some(coverStock)}

	res, err := pricing.Calculate(novelJob(), papers, seedRules(), pricing.Overrides{})
	require.NoError(t, err)

	d := res.Details
	require.NotNil(t, d.BW)
	require.Equal(t, 4, d.BW.Imposition)
	require.Equal(t, 2625, d.BW.PressSheets)
	require.Equal(t, 5250, d.BW.Clicks)
	require.NotNil(t, d.Cover)
	require.Equal(t, 2, d.Cover.Imposition)
	require.Equal(t, 53, d.Cover.PressSheets)
	require.Equal(t, 53, d.Cover.Clicks)
	require.Nil(t, d.Color)

	require.InDelta(t, 0.378740157, d.InternalSpineInches, 1e-9)
	require.InDelta(t, 0.015401575, d.CoverSpineAllowanceInches, 1e-9)
	require.InDelta(t, d.InternalSpineInches+d.CoverSpineAllowanceInches, res.SpineWidthInches, 1e-12)

	require.InDelta(t, 143.44, d.TotalMaterialCost, 1e-9)
	require.InDelta(t, 49.317, d.TotalPrintCost, 1e-9)
	require.InDelta(t, 30.0, d.LaminationCost, 1e-9)
	require.InDelta(t, 296.296227333, d.Production.TotalMins, 1e-6)
	require.InDelta(t, 4.938270456, res.ProductionTimeHours, 1e-6)
	require.InDelta(t, 469.670522778, d.Subtotal, 1e-6)
	require.InDelta(t, 634.055205750, res.TotalPrice, 1e-6)
}

func TestCalculateAggregationProperties(t *testing.T) {
	job := novelJob()
	job.ColorPages = 24
	job.ColorPaperSKU = colorStock.SKU
	papers := pricing.Papers{BW: pricing.Some(textStock), Color: pricing.Some(colorStock), Cover: pricing.Some(coverStock)}

	markup := 20.0
	res, err := pricing.Calculate(job, papers, seedRules(), pricing.Overrides{MarkupPercent: &markup})
	require.NoError(t, err)

	d := res.Details
	var material, printCost float64
	for _, c := range []*pricing.ComponentDetail{d.BW, d.Color, d.Cover} {
		require.NotNil(t, c)
		material += c.PaperCost
		printCost += c.PrintCost
	}
	require.InDelta(t, material, d.TotalMaterialCost, 1e-9)
	require.InDelta(t, printCost, d.TotalPrintCost, 1e-9)
	require.InDelta(t, d.TotalMaterialCost+d.TotalPrintCost+d.LaminationCost+d.LaborCost, d.Subtotal, 1e-9)
	require.InDelta(t, d.Subtotal*(1+markup/100), res.TotalPrice, 1e-9)
	require.Equal(t, markup, d.MarkupPercent)
}

func TestCalculateOverridesFallBackToDefaults(t *testing.T) {
	papers := pricing.Papers{BW: pricing.Some(textStock), Cover: pricing.Some(coverStock)}
	labor := 80.0
	spoilage := 0.0

	res, err := pricing.Calculate(novelJob(), papers, seedRules(), pricing.Overrides{LaborRate: &labor, SpoilagePercent: &spoilage})
	require.NoError(t, err)
	require.Equal(t, 80.0, res.Details.LaborRate)
	require.Equal(t, 35.0, res.Details.MarkupPercent)
	require.Equal(t, 0.0, res.Details.SpoilagePercent)
	require.Equal(t, 2500, res.Details.BW.PressSheets)
	require.Equal(t, 50, res.Details.Cover.PressSheets)
}

func TestCalculateIsIdempotent(t *testing.T) {
	papers := pricing.Papers{BW: pricing.Some(textStock), Cover: pricing.Some(coverStock)}

	first, err := pricing.Calculate(novelJob(), papers, seedRules(), pricing.Overrides{})
	require.NoError(t, err)
	second, err := pricing.Calculate(novelJob(), papers, seedRules(), pricing.Overrides{})
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestCalculateSpine(t *testing.T) {
	rules := seedRules()

	t.Run("saddle stitch has no spine", func(t *testing.T) {
		job := novelJob()
		job.BindingMethod = pricing.BindingSaddleStitch
		job.BWPages = 48
		res, err := pricing.Calculate(job, pricing.Papers{BW: pricing.Some(textStock), Cover: pricing.Some(coverStock)}, rules, pricing.Overrides{})
		require.NoError(t, err)
		require.Zero(t, res.SpineWidthInches)
		require.Zero(t, res.Details.InternalSpineInches)
		require.Equal(t, 10.0, res.Details.Production.BindingSetupMins)
	})

	t.Run("perfect bound without cover paper adds no allowance", func(t *testing.T) {
		res, err := pricing.Calculate(novelJob(), pricing.Papers{BW: pricing.Some(textStock), Cover: pricing.None()}, rules, pricing.Overrides{})
		require.NoError(t, err)
		require.Zero(t, res.Details.CoverSpineAllowanceInches)
		require.Equal(t, res.Details.InternalSpineInches, res.SpineWidthInches)
		require.Nil(t, res.Details.Cover)
		require.Zero(t, res.Details.LaminationCost)
	})

	t.Run("no cover means no spine", func(t *testing.T) {
		job := novelJob()
		job.HasCover = false
		res, err := pricing.Calculate(job, pricing.Papers{BW: pricing.Some(textStock), Cover: pricing.Some(coverStock)}, rules, pricing.Overrides{})
		require.NoError(t, err)
		require.Zero(t, res.SpineWidthInches)
		require.Nil(t, res.Details.Cover)
	})

	t.Run("unlaminated cover allowance is one sheet", func(t *testing.T) {
		job := novelJob()
		job.LaminationType = pricing.LaminationNone
		res, err := pricing.Calculate(job, pricing.Papers{BW: pricing.Some(textStock), Cover: pricing.Some(coverStock)}, rules, pricing.Overrides{})
		require.NoError(t, err)
		require.InDelta(t, pricing.PaperThicknessInches(coverStock), res.Details.CoverSpineAllowanceInches, 1e-12)
		require.Zero(t, res.Details.Production.LaminatingMins)
	})
}

func TestCalculateMissingPapersDegrade(t *testing.T) {
	res, err := pricing.Calculate(novelJob(), pricing.Papers{}, seedRules(), pricing.Overrides{})
	require.NoError(t, err)
	require.Zero(t, res.Details.TotalMaterialCost)
	require.Zero(t, res.Details.TotalPrintCost)
	require.Zero(t, res.Details.Production.PrintingMins)
	require.Greater(t, res.TotalPrice, 0.0, "labor still applies")
}

func TestCalculateRejects(t *testing.T) {
	rules := seedRules()
	papers := pricing.Papers{BW: pricing.Some(textStock), Cover: pricing.Some(coverStock)}

	cases := []struct {
		name   string
		mutate func(*pricing.JobSpecification)
		papers pricing.Papers
	}{
		{"zero quantity", func(j *pricing.JobSpecification) { j.Quantity = 0 }, papers},
		{"negative width", func(j *pricing.JobSpecification) { j.FinishedWidth = -1 }, papers},
		{"negative pages", func(j *pricing.JobSpecification) { j.ColorPages = -2 }, papers},
		{"quantity above max", func(j *pricing.JobSpecification) { j.Quantity = pricing.MaxQuantity + 1 }, papers},
		{"quantity near int max", func(j *pricing.JobSpecification) { j.Quantity = 1 << 62 }, papers},
		{"pages above max", func(j *pricing.JobSpecification) { j.BWPages = pricing.MaxBandPages + 2 }, papers},
		{"microscopic trim", func(j *pricing.JobSpecification) {
			j.FinishedWidth = 1e-9
			j.FinishedHeight = 1e-9
		}, papers},
		{"trim below minimum", func(j *pricing.JobSpecification) { j.FinishedWidth = pricing.MinTrimInches / 2 }, papers},
		{"NaN width", func(j *pricing.JobSpecification) { j.FinishedWidth = math.NaN() }, papers},
		{"infinite height", func(j *pricing.JobSpecification) { j.FinishedHeight = math.Inf(1) }, papers},
		{"unknown binding", func(j *pricing.JobSpecification) { j.BindingMethod = "spiral" }, papers},
		{"saddle stitch 13 pages", func(j *pricing.JobSpecification) {
			j.BindingMethod = pricing.BindingSaddleStitch
			j.BWPages = 13
		}, papers},
		{"interior too large", func(j *pricing.JobSpecification) {
			j.FinishedWidth = 13
			j.FinishedHeight = 19
		}, papers},
		{"cover spread too large", func(j *pricing.JobSpecification) {
			j.FinishedWidth = 8.5
			j.FinishedHeight = 11
			j.BWPages = 1200
		}, pricing.Papers{BW: pricing.Some(textStock), Cover: pricing.Some(coverStock)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			job := novelJob()
			tc.mutate(&job)
			res, err := pricing.Calculate(job, tc.papers, rules, pricing.Overrides{})
			require.Error(t, err)
			require.True(t, errors.Is(err, pricing.ErrInvalidArgument), err.Error())
			require.Equal(t, pricing.CalculationResult{}, res)
		})
	}
}

func TestSaddleStitchMultipleOfFourAccepted(t *testing.T) {
	job := novelJob()
	job.BindingMethod = pricing.BindingSaddleStitch
	job.BWPages = 12
	job.ColorPages = 4
	job.ColorPaperSKU = colorStock.SKU
	_, err := pricing.Calculate(job, pricing.Papers{BW: pricing.Some(textStock), Color: pricing.Some(colorStock)}, seedRules(), pricing.Overrides{})
	require.NoError(t, err)
}

func TestMessageStripsKind(t *testing.T) {
	job := novelJob()
	job.Quantity = 0
	_, err := pricing.Calculate(job, pricing.Papers{}, seedRules(), pricing.Overrides{})
	require.Equal(t, "quantity must be a positive number", pricing.Message(err))
}

func TestCalculateAtInputBoundsPricesEverySheet(t *testing.T) {
	papers := pricing.Papers{BW: pricing.Some(textStock), Cover: pricing.Some(coverStock)}

	cases := []struct {
		name   string
		mutate func(*pricing.JobSpecification)
	}{
		{"smallest trim", func(j *pricing.JobSpecification) {
			j.FinishedWidth = pricing.MinTrimInches
			j.FinishedHeight = pricing.MinTrimInches
		}},
		{"largest run", func(j *pricing.JobSpecification) {
			j.Quantity = pricing.MaxQuantity
			j.BWPages = pricing.MaxBandPages
			j.HasCover = false // a 5000-page spine would not fit any cover sheet
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			job := novelJob()
			tc.mutate(&job)
			res, err := pricing.Calculate(job, papers, seedRules(), pricing.Overrides{})
			require.NoError(t, err)
			bw := res.Details.BW
			require.NotNil(t, bw)
			require.Positive(t, bw.Imposition)
			require.Positive(t, bw.PressSheets)
			require.Positive(t, bw.PaperCost)
		})
	}
}
