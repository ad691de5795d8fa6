package models

import "time"

// UnderwritingRecord is a saved underwriting run. Inputs, results, and the
// recommendation are stored as opaque JSON blobs; the store never
// interprets their contents.
type UnderwritingRecord struct {
	ID             string    `gorm:"primaryKey" json:"id"`
	InvestmentType string    `json:"investment_type"`
	PropertyID     *string   `json:"property_id"`
	Inputs         string    `gorm:"type:text" json:"inputs"`
	Results        string    `gorm:"type:text" json:"results"`
	Recommendation string    `gorm:"type:text" json:"recommendation"`
	CreatedAt      time.Time `json:"created_at"`
}

// AnalysisRecord is a saved comp/score analysis, also stored as opaque
// JSON blobs.
type AnalysisRecord struct {
	ID              string    `gorm:"primaryKey" json:"id"`
	Address         string    `json:"address"`
	RecommendedRent float64   `json:"recommended_rent"`
	CompsData       string    `gorm:"type:text" json:"comps_data"`
	VacancyData     string    `gorm:"type:text" json:"vacancy_data"`
	ScoreData       string    `gorm:"type:text" json:"score_data"`
	BenchmarkData   string    `gorm:"type:text" json:"benchmark_data"`
	ReportJSON      string    `gorm:"type:text" json:"report_json"`
	CreatedAt       time.Time `json:"created_at"`
}
