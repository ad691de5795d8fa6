// Package scoring grades a subject property against its comp set, rent
// recommendation, and vacancy model. Like the underwriting engine it is
// pure: no I/O, no state, identical inputs give identical scores.
package scoring

import (
	"fmt"
	"math"

	"propwell/server/internal/models"
)

// ModelVersion tags every emitted score with the scoring model revision.
const ModelVersion = "1.0.0-sprint1"

// Sub-dimension weights. They sum to 1.
const (
	weightRentPositioning = 0.35
	weightMarketHealth    = 0.25
	weightCompetitiveness = 0.20
	weightVacancyRisk     = 0.20
)

// PropertyScore is the weighted 0-100 grade of a property with its
// supporting narrative.
type PropertyScore struct {
	TotalScore           int      `json:"total_score"`
	Grade                string   `json:"grade"`
	ConfidenceBand       int      `json:"confidence_band"`
	RentPositioningScore int      `json:"rent_positioning_score"`
	MarketHealthScore    int      `json:"market_health_score"`
	CompetitivenessScore int      `json:"competitiveness_score"`
	VacancyRiskScore     int      `json:"vacancy_risk_score"`
	Strengths            []string `json:"strengths"`
	WatchItems           []string `json:"watch_items"`
	RedFlags             []string `json:"red_flags"`
	DataCompleteness     float64  `json:"data_completeness"`
	ModelVersion         string   `json:"model_version"`
}

// scorePpsqftVsMarket bands the subject's rent-per-sqft against the comp
// market median. Within ±5% is a perfect score; pricing above market
// degrades faster than pricing below it.
func scorePpsqftVsMarket(subjectPpsqft, marketMedianPpsqft float64) int {
	if marketMedianPpsqft == 0 {
		return 60
	}
	ratio := subjectPpsqft / marketMedianPpsqft

	if ratio >= 0.95 && ratio <= 1.05 {
		return 100
	}
	if ratio < 0.95 {
		if ratio >= 0.90 {
			return 80 + round((ratio-0.90)/0.05*20)
		}
		if ratio >= 0.80 {
			return 60 + round((ratio-0.80)/0.10*20)
		}
		return maxInt(40, round(ratio/0.80*60))
	}
	if ratio <= 1.10 {
		return 80 - round((ratio-1.05)/0.05*30)
	}
	return maxInt(30, 50-round((ratio-1.10)/0.10*20))
}

func scoreRentVsBenchmark(rent, benchmark float64) int {
	if benchmark == 0 {
		return 60
	}
	ratio := math.Abs(rent-benchmark) / benchmark

	switch {
	case ratio <= 0.05:
		return 100
	case ratio <= 0.10:
		return 80
	case ratio <= 0.15:
		return 60
	default:
		return 40
	}
}

func scoreSqftVsCompAvg(subjectSqft, compAvgSqft float64) int {
	if compAvgSqft == 0 {
		return 60
	}
	diff := math.Abs(subjectSqft-compAvgSqft) / compAvgSqft

	switch {
	case diff <= 0.10:
		return 100
	case diff <= 0.20:
		return 75
	case diff <= 0.30:
		return 50
	default:
		return 25
	}
}

// scoreBedBathMatch rewards a subject whose bed/bath configuration
// appears in the comp set, with partial credit for being one bed or one
// bath off.
func scoreBedBathMatch(subjectBeds, subjectBaths float64, comps []models.Comp) int {
	if len(comps) == 0 {
		return 60
	}

	for _, c := range comps {
		if c.Bedrooms == subjectBeds && c.Bathrooms == subjectBaths {
			return 100
		}
	}

	var bedOff, bathOff bool
	for _, c := range comps {
		if math.Abs(c.Bedrooms-subjectBeds) == 1 && c.Bathrooms == subjectBaths {
			bedOff = true
		}
		if c.Bedrooms == subjectBeds && math.Abs(c.Bathrooms-subjectBaths) <= 1 {
			bathOff = true
		}
	}

	switch {
	case bedOff && !bathOff:
		return 75
	case bathOff && !bedOff:
		return 85
	default:
		return 50
	}
}

// scoreCompCount rewards 3-5 comps found without geographic expansion.
func scoreCompCount(count, expansionLevel int) int {
	switch {
	case expansionLevel == 0 && count >= 3 && count <= 5:
		return 100
	case count >= 3 && count <= 5:
		return 85
	case count >= 1 && count <= 2:
		return 60
	case count == 0:
		return 30
	case count > 10:
		return 70
	default:
		return 80
	}
}

func scoreDomVsMedian(avgDom *float64, medianDom *float64) int {
	if avgDom == nil {
		return 70
	}
	median := 30.0
	if medianDom != nil {
		median = *medianDom
	}

	ratio := *avgDom / median
	switch {
	case ratio < 0.5:
		return 100
	case ratio <= 1.0:
		return 80
	case ratio <= 1.5:
		return 60
	default:
		return 40
	}
}

func scorePricePremium(recommendedRent, marketRate float64) int {
	if marketRate == 0 {
		return 60
	}
	premium := (recommendedRent - marketRate) / marketRate

	switch {
	case math.Abs(premium) < 0.01:
		return 100
	case premium > 0 && premium <= 0.05:
		return 80
	case premium > 0.05 && premium <= 0.10:
		return 60
	case premium > 0.10:
		return 40
	default:
		// Below market
		return 80
	}
}

// scoreBreakevenDays bands premium-rent breakeven against a 90-day
// horizon. A non-positive spread never breaks even and carries no
// premium risk.
func scoreBreakevenDays(breakevenDays float64) int {
	switch {
	case breakevenDays <= 0:
		return 100
	case breakevenDays > 90:
		return 100
	case breakevenDays >= 60:
		return 80
	case breakevenDays >= 30:
		return 60
	default:
		return 40
	}
}

func gradeFromScore(score int) string {
	switch {
	case score >= 80:
		return "A"
	case score >= 60:
		return "B"
	case score >= 40:
		return "C"
	case score >= 20:
		return "D"
	default:
		return "F"
	}
}

// ScoreProperty computes the weighted property score from the assembled
// analysis inputs. benchmark may be nil when no third-party rent data
// was available.
func ScoreProperty(
	subject models.SubjectProperty,
	compResult models.CompResult,
	rentRec models.RentRecommendation,
	vacancy models.VacancyResult,
	benchmark *models.RentBenchmark,
) PropertyScore {
	benchmarkMedian := 0.0
	if benchmark != nil {
		benchmarkMedian = benchmark.Median
	}

	// Rent positioning (35%)
	ppsqftScore := scorePpsqftVsMarket(rentRec.AvgPpsqft, compResult.AvgPpsqft)
	rentVsAvm := scoreRentVsBenchmark(rentRec.RecommendedRent, rentRec.AvmRent)
	rentVsBenchmark := scoreRentVsBenchmark(rentRec.RecommendedRent, benchmarkMedian)

	rentPositioningScore := round(float64(ppsqftScore)*0.4 + float64(rentVsAvm)*0.3 + float64(rentVsBenchmark)*0.3)

	// Market health (25%): unscored this iteration, fixed at 60 until a
	// market data source is wired in.
	marketHealthScore := 60

	// Competitiveness (20%)
	var compAvgSqft float64
	if len(compResult.Comps) > 0 {
		var total float64
		for _, c := range compResult.Comps {
			total += c.Sqft
		}
		compAvgSqft = total / float64(len(compResult.Comps))
	}

	sqftScore := scoreSqftVsCompAvg(subject.Sqft, compAvgSqft)
	bedBathScore := scoreBedBathMatch(subject.Bedrooms, subject.Bathrooms, compResult.Comps)
	compCountScore := scoreCompCount(len(compResult.Comps), compResult.ExpansionLevel)

	competitivenessScore := round(float64(sqftScore)*0.35 + float64(bedBathScore)*0.35 + float64(compCountScore)*0.30)

	// Vacancy risk (20%)
	domScore := scoreDomVsMedian(compResult.AvgDOM, nil)
	premiumScore := scorePricePremium(rentRec.RecommendedRent, vacancy.MarketRate)
	breakevenScore := scoreBreakevenDays(vacancy.BreakevenDays)

	vacancyRiskScore := round(float64(domScore)*0.4 + float64(premiumScore)*0.3 + float64(breakevenScore)*0.3)

	totalScore := round(
		float64(rentPositioningScore)*weightRentPositioning +
			float64(marketHealthScore)*weightMarketHealth +
			float64(competitivenessScore)*weightCompetitiveness +
			float64(vacancyRiskScore)*weightVacancyRisk,
	)

	var strengths, watchItems, redFlags []string

	if rentPositioningScore >= 80 {
		strengths = append(strengths, "Rent aligned across validation sources")
	}
	if competitivenessScore >= 80 {
		strengths = append(strengths, "Strong comp match (size, beds, baths)")
	}
	if vacancyRiskScore >= 80 {
		strengths = append(strengths, "Low vacancy risk at current pricing")
	}
	if len(compResult.Comps) >= 3 && compResult.ExpansionLevel <= 1 {
		strengths = append(strengths, "Healthy comp supply within close radius")
	}

	if marketHealthScore <= 60 {
		watchItems = append(watchItems, "Market health unscored (Sprint 1)")
	}
	if rentVsBenchmark < 80 && benchmark != nil && benchmark.Median > 0 {
		diff := round(math.Abs(rentRec.RecommendedRent-benchmark.Median) / benchmark.Median * 100)
		watchItems = append(watchItems, fmt.Sprintf("Benchmark median %d%% from recommended", diff))
	}
	if compResult.ExpansionLevel >= 3 {
		watchItems = append(watchItems, "Comps required wide geographic expansion")
	}
	if len(compResult.Comps) < 3 {
		watchItems = append(watchItems, "Limited comp data available")
	}

	// Red-flag ceilings. These only ever pull the total down.
	allAbove120 := rentRec.AvmRent > 0 &&
		rentRec.RecommendedRent > rentRec.AvmRent*1.2 &&
		benchmarkMedian > 0 &&
		rentRec.RecommendedRent > benchmarkMedian*1.2 &&
		compResult.AvgRent > 0 &&
		rentRec.RecommendedRent > compResult.AvgRent*1.2

	if allAbove120 {
		redFlags = append(redFlags, "Significant overpricing risk")
		totalScore = minInt(totalScore, 45)
	}

	if len(compResult.Comps) == 0 {
		redFlags = append(redFlags, "Insufficient market data")
		totalScore = minInt(totalScore, 50)
	}

	// Confidence band widens as independent data sources drop out. Comps
	// always count; a fourth source is reserved for a future revision.
	dataSources := 1
	if rentRec.AvmRent > 0 {
		dataSources++
	}
	if benchmark != nil && benchmark.Median > 0 {
		dataSources++
	}

	var confidenceBand int
	switch {
	case dataSources >= 4:
		confidenceBand = 5
	case dataSources >= 3:
		confidenceBand = 8
	case dataSources >= 2:
		confidenceBand = 12
	default:
		confidenceBand = 20
	}

	return PropertyScore{
		TotalScore:           totalScore,
		Grade:                gradeFromScore(totalScore),
		ConfidenceBand:       confidenceBand,
		RentPositioningScore: rentPositioningScore,
		MarketHealthScore:    marketHealthScore,
		CompetitivenessScore: competitivenessScore,
		VacancyRiskScore:     vacancyRiskScore,
		Strengths:            strengths,
		WatchItems:           watchItems,
		RedFlags:             redFlags,
		DataCompleteness:     float64(dataSources) / 4,
		ModelVersion:         ModelVersion,
	}
}

func round(v float64) int {
	return int(math.Round(v))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
