package pricing_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-cetak/internal/pricing"
)

func TestImposition(t *testing.T) {
	require.Equal(t, 2, pricing.Imposition(12, 18, 8.5, 11))
	require.Equal(t, 4, pricing.Imposition(12, 18, 6, 9))
	require.Equal(t, 0, pricing.Imposition(12, 18, 13, 19))
	require.Equal(t, 0, pricing.Imposition(12, 18, 0, 9))
	require.Equal(t, 0, pricing.Imposition(12, 18, 6, -1))
	require.Equal(t, 0, pricing.Imposition(12, 18, math.NaN(), 9))

	sizes := [][2]float64{{8.5, 11}, {5.8, 8.3}, {7, 10}, {4, 6}, {11, 17}, {3.5, 2}, {20, 1}}
	sheets := [][2]float64{{12, 18}, {13, 19}, {11, 17}, {19, 12.5}, {8.5, 11}}
	for _, s := range sheets {
		for _, z := range sizes {
			require.Equal(t,
				pricing.Imposition(s[0], s[1], z[0], z[1]),
				pricing.Imposition(s[0], s[1], z[1], z[0]),
				"rotating %v on %v", z, s)
		}
	}
}

func TestImpositionSaturates(t *testing.T) {
	require.Equal(t, pricing.MaxImposition, pricing.Imposition(12, 18, 1e-9, 1e-9))
	require.Equal(t, pricing.MaxImposition, pricing.Imposition(12, 18, math.SmallestNonzeroFloat64, 1))
	require.Equal(t, 24*36, pricing.Imposition(12, 18, 0.5, 0.5))
}

func TestPaperThickness(t *testing.T) {
	coated := pricing.PaperStock{GSM: 148, Type: pricing.PaperCoated}
	require.InDelta(t, 0.005244, pricing.PaperThicknessInches(coated), 1e-6)

	uncoated := pricing.PaperStock{GSM: 148, Type: pricing.PaperUncoated}
	require.InDelta(t, 148*1.3/25400, pricing.PaperThicknessInches(uncoated), 1e-12)
}

func TestLeaves(t *testing.T) {
	require.Equal(t, 0, pricing.Leaves(0))
	require.Equal(t, 1, pricing.Leaves(1))
	require.Equal(t, 1, pricing.Leaves(2))
	require.Equal(t, 7, pricing.Leaves(13))
}

func TestSpineForSaddleStitchIsAlwaysZero(t *testing.T) {
	papers := pricing.Papers{BW: pricing.Some(textStock), Cover: pricing.Some(coverStock)}
	for _, pages := range []int{4, 16, 64, 400} {
		job := novelJob()
		job.BindingMethod = pricing.BindingSaddleStitch
		job.BWPages = pages
		require.Zero(t, pricing.SpineFor(job, papers, seedRules()).Width)
	}
}
