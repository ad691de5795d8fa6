package models

// SubjectProperty is the property being analyzed and scored.
type SubjectProperty struct {
	Address      string   `json:"address"`
	City         string   `json:"city"`
	State        string   `json:"state"`
	ZipCode      string   `json:"zip_code"`
	Bedrooms     float64  `json:"bedrooms"`
	Bathrooms    float64  `json:"bathrooms"`
	Sqft         float64  `json:"sqft"`
	YearBuilt    *int     `json:"year_built"`
	PropertyType string   `json:"property_type"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	Comments     string   `json:"comments"`
	Link         string   `json:"link"`
}

// Listing is a raw rental listing row as delivered by an upstream comp
// source. The comp assembler filters and converts these into Comps.
type Listing struct {
	Address       string   `json:"address"`
	City          string   `json:"city"`
	ZipCode       string   `json:"zip_code"`
	State         string   `json:"state"`
	Bedrooms      float64  `json:"bedrooms"`
	Bathrooms     float64  `json:"bathrooms"`
	Sqft          float64  `json:"sqft"`
	Rent          float64  `json:"rent"`
	ListDate      string   `json:"list_date"`
	Link          string   `json:"link"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	DistanceMiles *float64 `json:"distance_miles"`
}

// Comp is one comparable listing benchmarked against the subject.
type Comp struct {
	Address       string   `json:"address"`
	City          string   `json:"city"`
	ZipCode       string   `json:"zip_code"`
	State         string   `json:"state"`
	Bedrooms      float64  `json:"bedrooms"`
	Bathrooms     float64  `json:"bathrooms"`
	Sqft          float64  `json:"sqft"`
	Rent          float64  `json:"rent"`
	Ppsqft        float64  `json:"ppsqft"`
	ListDate      string   `json:"list_date"`
	DOM           *int     `json:"dom"`
	Link          string   `json:"link"`
	Comments      string   `json:"comments"`
	DistanceMiles *float64 `json:"distance_miles"`
}

// CompResult is the ranked comp set plus derived averages. Comps are in
// relevance order (closest first, then size similarity).
type CompResult struct {
	Comps          []Comp   `json:"comps"`
	ExpansionLevel int      `json:"expansion_level"`
	AvgRent        float64  `json:"avg_rent"`
	AvgPpsqft      float64  `json:"avg_ppsqft"`
	AvgDOM         *float64 `json:"avg_dom"`
}

// RentRecommendation carries every rent estimation method plus the chosen
// figure. RecommendedRent is always the ppsqft method result; the other
// methods are informational.
type RentRecommendation struct {
	PpsqftMethod    float64 `json:"ppsqft_method"`
	DirectAverage   float64 `json:"direct_average"`
	AvmRent         float64 `json:"avm_rent"`
	BenchmarkMedian float64 `json:"benchmark_median"`
	RecommendedRent float64 `json:"recommended_rent"`
	AvgPpsqft       float64 `json:"avg_ppsqft"`
	SubjectSqft     float64 `json:"subject_sqft"`
}

// VacancyScenario is one rent/vacancy combination in the loss model. Cost
// lines (lost revenue, lease fee, carry) are stored negated.
type VacancyScenario struct {
	Name          string  `json:"name"`
	Rent          float64 `json:"rent"`
	DaysVacant    int     `json:"days_vacant"`
	LostRevenue   float64 `json:"lost_revenue"`
	LeaseFee      float64 `json:"lease_fee"`
	CarryCosts    float64 `json:"carry_costs"`
	AnnualRevenue float64 `json:"annual_revenue"`
	NetRevenue    float64 `json:"net_revenue"`
	Variance      float64 `json:"variance"`
}

// VacancyPoint is one step on a loss curve.
type VacancyPoint struct {
	Period int     `json:"period"`
	Amount float64 `json:"amount"`
}

type VacancyResult struct {
	MarketRate            float64           `json:"market_rate"`
	DailyRevenue          float64           `json:"daily_revenue"`
	Scenarios             []VacancyScenario `json:"scenarios"`
	MonthlySpread         float64           `json:"monthly_spread"`
	BreakevenDays         float64           `json:"breakeven_days"`
	LossTable             map[int]float64   `json:"loss_table"`
	PremiumBreakevenTable map[int]float64   `json:"premium_breakeven_table"`
	DailyVacancyCurve     []VacancyPoint    `json:"daily_vacancy_curve"`
	MonthlySpreadLoss     []VacancyPoint    `json:"monthly_spread_loss"`
}

// RentBenchmark is aggregate rent data from a third-party benchmark
// service, passed through to scoring when available.
type RentBenchmark struct {
	Mean         float64         `json:"mean"`
	Median       float64         `json:"median"`
	MinRent      float64         `json:"min_rent"`
	MaxRent      float64         `json:"max_rent"`
	Percentile25 float64         `json:"percentile_25"`
	Percentile75 float64         `json:"percentile_75"`
	StdDev       float64         `json:"std_dev"`
	SampleCount  int             `json:"sample_count"`
	RadiusMiles  float64         `json:"radius_miles"`
	NearbyComps  []BenchmarkComp `json:"nearby_comps"`
}

type BenchmarkComp struct {
	Address      string  `json:"address"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Distance     float64 `json:"distance"`
	Price        float64 `json:"price"`
	Bedrooms     float64 `json:"bedrooms"`
	Baths        float64 `json:"baths"`
	PropertyType string  `json:"property_type"`
	Sqft         float64 `json:"sqft"`
	DollarSqft   float64 `json:"dollar_sqft"`
}
