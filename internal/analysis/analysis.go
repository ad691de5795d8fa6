// Package analysis runs the full property analysis pipeline: comp
// assembly, rent recommendation, vacancy model, and score. Both the
// HTTP handler and the batch workers go through here so a queued job
// produces the same report as an interactive request.
package analysis

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"propwell/server/internal/comps"
	"propwell/server/internal/models"
	"propwell/server/internal/scoring"
	"propwell/server/internal/vacancy"
)

// Request carries a subject property plus the raw market data an
// upstream sourcing service already fetched for it.
type Request struct {
	Subject        models.SubjectProperty `json:"subject"`
	Listings       []models.Listing       `json:"listings"`
	ExpansionLevel int                    `json:"expansion_level"`
	AvmRent        float64                `json:"avm_rent"`
	Benchmark      *models.RentBenchmark  `json:"benchmark"`
	PremiumRent    *float64               `json:"premium_rent"`
}

// Report is the assembled output of one analysis run.
type Report struct {
	Subject            models.SubjectProperty    `json:"subject"`
	CompResult         models.CompResult         `json:"comp_result"`
	RentRecommendation models.RentRecommendation `json:"rent_recommendation"`
	Vacancy            models.VacancyResult      `json:"vacancy"`
	Score              scoring.PropertyScore     `json:"score"`
	AnalysisDate       string                    `json:"analysis_date"`
}

// Run executes the pipeline for one request. asOf anchors days-on-market
// derivation and the report date.
func Run(req Request, carryCostPerMonth float64, asOf time.Time) Report {
	compResult := comps.BuildCompResult(req.Subject, req.Listings, req.ExpansionLevel, asOf)
	rentRec := comps.BuildRentRecommendation(req.Subject, compResult, req.AvmRent, req.Benchmark)
	vacancyResult := vacancy.Calculate(rentRec.RecommendedRent, req.PremiumRent, carryCostPerMonth)
	score := scoring.ScoreProperty(req.Subject, compResult, rentRec, vacancyResult, req.Benchmark)

	return Report{
		Subject:            req.Subject,
		CompResult:         compResult,
		RentRecommendation: rentRec,
		Vacancy:            vacancyResult,
		Score:              score,
		AnalysisDate:       asOf.Format("2006-01-02"),
	}
}

// BuildRecord serializes a report into its persistence row.
func BuildRecord(req Request, report Report) (*models.AnalysisRecord, error) {
	compsJSON, err := json.Marshal(report.CompResult)
	if err != nil {
		return nil, err
	}
	vacancyJSON, err := json.Marshal(report.Vacancy)
	if err != nil {
		return nil, err
	}
	scoreJSON, err := json.Marshal(report.Score)
	if err != nil {
		return nil, err
	}
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return nil, err
	}

	record := &models.AnalysisRecord{
		ID:              uuid.NewString(),
		Address:         req.Subject.Address,
		RecommendedRent: report.RentRecommendation.RecommendedRent,
		CompsData:       string(compsJSON),
		VacancyData:     string(vacancyJSON),
		ScoreData:       string(scoreJSON),
		ReportJSON:      string(reportJSON),
	}

	if req.Benchmark != nil {
		benchmarkJSON, err := json.Marshal(req.Benchmark)
		if err != nil {
			return nil, err
		}
		record.BenchmarkData = string(benchmarkJSON)
	}

	return record, nil
}
