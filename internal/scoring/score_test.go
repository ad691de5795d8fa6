package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propwell/server/internal/models"
)

func floatPtr(v float64) *float64 {
	return &v
}

func intPtr(v int) *int {
	return &v
}

func subject() models.SubjectProperty {
	return models.SubjectProperty{
		Address:   "612 Ferndale Ave",
		City:      "Orlando",
		State:     "FL",
		ZipCode:   "32805",
		Bedrooms:  3,
		Bathrooms: 2,
		Sqft:      1500,
	}
}

func compSet() models.CompResult {
	comps := []models.Comp{
		{Address: "1349 Arlington St", Bedrooms: 3, Bathrooms: 2, Sqft: 1480, Rent: 2495, Ppsqft: 2495.0 / 1480, DOM: intPtr(20)},
		{Address: "729 Hayden Ln", Bedrooms: 3, Bathrooms: 2, Sqft: 1520, Rent: 2650, Ppsqft: 2650.0 / 1520, DOM: intPtr(25)},
		{Address: "741 Cordova Dr", Bedrooms: 3, Bathrooms: 2.5, Sqft: 1550, Rent: 2550, Ppsqft: 2550.0 / 1550, DOM: intPtr(30)},
	}

	var rent, ppsqft, dom float64
	for _, c := range comps {
		rent += c.Rent
		ppsqft += c.Ppsqft
		dom += float64(*c.DOM)
	}
	n := float64(len(comps))

	return models.CompResult{
		Comps:          comps,
		ExpansionLevel: 0,
		AvgRent:        rent / n,
		AvgPpsqft:      ppsqft / n,
		AvgDOM:         floatPtr(dom / n),
	}
}

func rentRec(comps models.CompResult) models.RentRecommendation {
	recommended := comps.AvgPpsqft * 1500
	return models.RentRecommendation{
		PpsqftMethod:    recommended,
		DirectAverage:   comps.AvgRent,
		AvmRent:         recommended * 1.02,
		BenchmarkMedian: recommended * 0.98,
		RecommendedRent: recommended,
		AvgPpsqft:       comps.AvgPpsqft,
		SubjectSqft:     1500,
	}
}

func vacancyResult(marketRate float64) models.VacancyResult {
	return models.VacancyResult{
		MarketRate:    marketRate,
		DailyRevenue:  marketRate / 30,
		MonthlySpread: marketRate * 0.2,
		BreakevenDays: 6,
	}
}

func TestScoreProperty_HealthyAnalysis(t *testing.T) {
	comps := compSet()
	rec := rentRec(comps)
	benchmark := &models.RentBenchmark{Median: rec.BenchmarkMedian}

	score := ScoreProperty(subject(), comps, rec, vacancyResult(rec.RecommendedRent), benchmark)

	assert.GreaterOrEqual(t, score.TotalScore, 60)
	assert.LessOrEqual(t, score.TotalScore, 100)
	assert.Empty(t, score.RedFlags)
	assert.Contains(t, score.Strengths, "Rent aligned across validation sources")
	assert.Contains(t, score.Strengths, "Healthy comp supply within close radius")
	assert.Equal(t, 60, score.MarketHealthScore)
	assert.Equal(t, ModelVersion, score.ModelVersion)

	// Comps + AVM + benchmark = 3 of 4 sources
	assert.Equal(t, 8, score.ConfidenceBand)
	assert.InDelta(t, 0.75, score.DataCompleteness, 1e-9)
}

func TestScoreProperty_NoComps(t *testing.T) {
	empty := models.CompResult{ExpansionLevel: 0}
	rec := models.RentRecommendation{RecommendedRent: 2500, SubjectSqft: 1500}

	score := ScoreProperty(subject(), empty, rec, vacancyResult(2500), nil)

	assert.Contains(t, score.RedFlags, "Insufficient market data")
	assert.LessOrEqual(t, score.TotalScore, 50)
	assert.Contains(t, score.WatchItems, "Limited comp data available")

	// Comps are the only source and they are empty: widest band
	assert.Equal(t, 20, score.ConfidenceBand)
	assert.InDelta(t, 0.25, score.DataCompleteness, 1e-9)
}

func TestScoreProperty_OverpricingRedFlag(t *testing.T) {
	comps := compSet()
	rec := models.RentRecommendation{
		RecommendedRent: comps.AvgRent * 1.5,
		AvmRent:         comps.AvgRent,
		BenchmarkMedian: comps.AvgRent,
		AvgPpsqft:       comps.AvgPpsqft,
		SubjectSqft:     1500,
	}
	benchmark := &models.RentBenchmark{Median: comps.AvgRent}

	score := ScoreProperty(subject(), comps, rec, vacancyResult(comps.AvgRent), benchmark)

	assert.Contains(t, score.RedFlags, "Significant overpricing risk")
	assert.LessOrEqual(t, score.TotalScore, 45)
}

func TestScoreProperty_Idempotent(t *testing.T) {
	comps := compSet()
	rec := rentRec(comps)
	benchmark := &models.RentBenchmark{Median: rec.BenchmarkMedian}
	vac := vacancyResult(rec.RecommendedRent)

	first := ScoreProperty(subject(), comps, rec, vac, benchmark)
	second := ScoreProperty(subject(), comps, rec, vac, benchmark)

	assert.Equal(t, first, second)
}

func TestScoreProperty_ExpansionWatchItem(t *testing.T) {
	comps := compSet()
	comps.ExpansionLevel = 3
	rec := rentRec(comps)

	score := ScoreProperty(subject(), comps, rec, vacancyResult(rec.RecommendedRent), nil)

	assert.Contains(t, score.WatchItems, "Comps required wide geographic expansion")
	assert.NotContains(t, score.Strengths, "Healthy comp supply within close radius")
}

func TestGradeFromScore(t *testing.T) {
	tests := []struct {
		score    int
		expected string
	}{
		{100, "A"},
		{80, "A"},
		{79, "B"},
		{60, "B"},
		{59, "C"},
		{40, "C"},
		{39, "D"},
		{20, "D"},
		{19, "F"},
		{0, "F"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, gradeFromScore(tt.score), "score %d", tt.score)
	}
}

func TestScorePpsqftVsMarket(t *testing.T) {
	tests := []struct {
		name     string
		subject  float64
		market   float64
		expected int
	}{
		{"At market", 1.70, 1.70, 100},
		{"Within five percent", 1.64, 1.70, 100},
		{"Slightly below market", 1.564, 1.70, 88},
		{"Well below market", 1.445, 1.70, 70},
		{"Deep discount", 1.275, 1.70, 56},
		{"Slightly above market", 1.836, 1.70, 62},
		{"Well above market", 2.04, 1.70, 30},
		{"No market data", 1.70, 0, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, scorePpsqftVsMarket(tt.subject, tt.market))
		})
	}
}

func TestScoreRentVsBenchmark(t *testing.T) {
	assert.Equal(t, 100, scoreRentVsBenchmark(2500, 2450))
	assert.Equal(t, 80, scoreRentVsBenchmark(2500, 2300))
	assert.Equal(t, 60, scoreRentVsBenchmark(2500, 2200))
	assert.Equal(t, 40, scoreRentVsBenchmark(2500, 2000))
	assert.Equal(t, 60, scoreRentVsBenchmark(2500, 0))
}

func TestScoreBedBathMatch(t *testing.T) {
	comps := []models.Comp{
		{Bedrooms: 3, Bathrooms: 2},
		{Bedrooms: 4, Bathrooms: 2},
	}

	t.Run("Exact config match", func(t *testing.T) {
		assert.Equal(t, 100, scoreBedBathMatch(3, 2, comps))
	})

	t.Run("One bed off", func(t *testing.T) {
		assert.Equal(t, 75, scoreBedBathMatch(5, 2, comps))
	})

	t.Run("One bath off", func(t *testing.T) {
		assert.Equal(t, 85, scoreBedBathMatch(3, 3, []models.Comp{{Bedrooms: 3, Bathrooms: 2}}))
	})

	t.Run("No comps", func(t *testing.T) {
		assert.Equal(t, 60, scoreBedBathMatch(3, 2, nil))
	})

	t.Run("No near match", func(t *testing.T) {
		assert.Equal(t, 50, scoreBedBathMatch(6, 4, comps))
	})
}

func TestScoreCompCount(t *testing.T) {
	tests := []struct {
		name           string
		count          int
		expansionLevel int
		expected       int
	}{
		{"Ideal count no expansion", 4, 0, 100},
		{"Ideal count with expansion", 4, 2, 85},
		{"Thin comp set", 2, 0, 60},
		{"No comps", 0, 0, 30},
		{"Oversupply", 12, 0, 70},
		{"Between bands", 8, 1, 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, scoreCompCount(tt.count, tt.expansionLevel))
		})
	}
}

func TestScoreDomVsMedian(t *testing.T) {
	assert.Equal(t, 70, scoreDomVsMedian(nil, nil), "missing DOM data")
	assert.Equal(t, 100, scoreDomVsMedian(floatPtr(10), nil))
	assert.Equal(t, 80, scoreDomVsMedian(floatPtr(30), nil))
	assert.Equal(t, 60, scoreDomVsMedian(floatPtr(45), nil))
	assert.Equal(t, 40, scoreDomVsMedian(floatPtr(60), nil))
	assert.Equal(t, 80, scoreDomVsMedian(floatPtr(50), floatPtr(60)), "explicit median")
}

func TestScorePricePremium(t *testing.T) {
	assert.Equal(t, 100, scorePricePremium(2500, 2500))
	assert.Equal(t, 80, scorePricePremium(2600, 2500))
	assert.Equal(t, 60, scorePricePremium(2700, 2500))
	assert.Equal(t, 40, scorePricePremium(2900, 2500))
	assert.Equal(t, 80, scorePricePremium(2300, 2500), "below market")
	assert.Equal(t, 60, scorePricePremium(2500, 0), "no market rate")
}

func TestScoreBreakevenDays(t *testing.T) {
	assert.Equal(t, 100, scoreBreakevenDays(0), "no spread never breaks even")
	assert.Equal(t, 100, scoreBreakevenDays(-10), "negative spread never breaks even")
	assert.Equal(t, 100, scoreBreakevenDays(120))
	assert.Equal(t, 80, scoreBreakevenDays(75))
	assert.Equal(t, 60, scoreBreakevenDays(45))
	assert.Equal(t, 40, scoreBreakevenDays(10))
}

func TestScoreSqftVsCompAvg(t *testing.T) {
	assert.Equal(t, 100, scoreSqftVsCompAvg(1500, 1450))
	assert.Equal(t, 75, scoreSqftVsCompAvg(1500, 1300))
	assert.Equal(t, 50, scoreSqftVsCompAvg(1500, 1200))
	assert.Equal(t, 25, scoreSqftVsCompAvg(1500, 1000))
	assert.Equal(t, 60, scoreSqftVsCompAvg(1500, 0))
}

func TestScoreProperty_BenchmarkWatchItem(t *testing.T) {
	comps := compSet()
	rec := rentRec(comps)
	// Benchmark far enough from recommended to push rentVsBenchmark
	// below 80
	benchmark := &models.RentBenchmark{Median: rec.RecommendedRent * 0.85}
	rec.BenchmarkMedian = benchmark.Median

	score := ScoreProperty(subject(), comps, rec, vacancyResult(rec.RecommendedRent), benchmark)

	var found bool
	for _, item := range score.WatchItems {
		if item == "Benchmark median 18% from recommended" {
			found = true
		}
	}
	require.True(t, found, "expected benchmark watch item, got %v", score.WatchItems)
}
