// Package underwriting computes deal-level cash flow projections and
// return metrics for a property acquisition. Every function in this
// package is pure: the same inputs always produce the same outputs, and
// degenerate inputs (zero price, zero equity, zero hold period) produce
// zeroed metrics rather than errors.
package underwriting

// InvestmentType selects which income model and projection path a deal
// uses.
type InvestmentType string

const (
	LongTermHold    InvestmentType = "Long Term Hold"
	FixAndFlip      InvestmentType = "Fix and Flip"
	ShortTermRental InvestmentType = "Short Term Rental"
)

// PropertyDetails describes the physical asset.
type PropertyDetails struct {
	StreetAddress string  `json:"street_address"`
	City          string  `json:"city"`
	State         string  `json:"state"`
	Zip           string  `json:"zip"`
	Bedrooms      float64 `json:"bedrooms"`
	Bathrooms     float64 `json:"bathrooms"`
	SquareFeet    float64 `json:"square_feet"`
	Units         int     `json:"units"`
	ImageURL      string  `json:"image_url"`
}

// Acquisition holds the uses side of the deal.
type Acquisition struct {
	PurchasePrice float64 `json:"purchase_price"`
	ClosingCosts  float64 `json:"closing_costs"`
	Renovations   float64 `json:"renovations"`
	Reserves      float64 `json:"reserves"`
}

// Financing holds the loan terms. InterestRate is an annual percentage
// (7 means 7%).
type Financing struct {
	LoanAmount        float64 `json:"loan_amount"`
	InterestRate      float64 `json:"interest_rate"`
	LoanTermYears     int     `json:"loan_term_years"`
	AmortizationYears int     `json:"amortization_years"`
	InterestOnly      bool    `json:"interest_only"`
}

// OperatingExpenses are annual fixed cost line items. Management is a
// flat dollar figure; short-term rentals ignore it and use the
// percentage fees on their own payload instead.
type OperatingExpenses struct {
	PropertyTaxes float64 `json:"property_taxes"`
	Insurance     float64 `json:"insurance"`
	Maintenance   float64 `json:"maintenance"`
	Management    float64 `json:"management"`
	Utilities     float64 `json:"utilities"`
	OtherExpenses float64 `json:"other_expenses"`
}

// Disposition holds hold-period and exit assumptions. Rates are annual
// percentages.
type Disposition struct {
	HoldPeriodYears    int     `json:"hold_period_years"`
	AnnualAppreciation float64 `json:"annual_appreciation"`
	AnnualRentGrowth   float64 `json:"annual_rent_growth"`
	SellingCosts       float64 `json:"selling_costs"`
	ExitCapRate        float64 `json:"exit_cap_rate"`
}

// RentalAssumptions is the income payload for long-term holds.
type RentalAssumptions struct {
	GrossMonthlyRent   float64 `json:"gross_monthly_rent"`
	OtherMonthlyIncome float64 `json:"other_monthly_income"`
	VacancyRate        float64 `json:"vacancy_rate"`
}

// FlipAssumptions is the payload for fix-and-flip deals.
type FlipAssumptions struct {
	AfterRepairValue    float64 `json:"after_repair_value"`
	MonthsToComplete    int     `json:"months_to_complete"`
	HoldingCostsMonthly float64 `json:"holding_costs_monthly"`
}

// STRAssumptions is the payload for short-term rentals. PlatformFee and
// Management are percentages of gross income.
type STRAssumptions struct {
	AvgNightlyRate     float64 `json:"avg_nightly_rate"`
	OccupancyRate      float64 `json:"occupancy_rate"`
	CleaningFeePerStay float64 `json:"cleaning_fee_per_stay"`
	AvgStayDuration    float64 `json:"avg_stay_duration"`
	PlatformFee        float64 `json:"platform_fee"`
	Management         float64 `json:"management"`
}

// DealInputs is the full set of underwriting assumptions for one deal.
// Exactly one strategy payload (Rental, Flip, STR) matching Type should
// be populated; a nil payload reads as all zeroes.
type DealInputs struct {
	Type        InvestmentType     `json:"type"`
	Property    PropertyDetails    `json:"property"`
	Acquisition Acquisition        `json:"acquisition"`
	Financing   Financing          `json:"financing"`
	Expenses    OperatingExpenses  `json:"expenses"`
	Disposition Disposition        `json:"disposition"`
	Rental      *RentalAssumptions `json:"rental,omitempty"`
	Flip        *FlipAssumptions   `json:"flip,omitempty"`
	STR         *STRAssumptions    `json:"str,omitempty"`
}

func (d DealInputs) rental() RentalAssumptions {
	if d.Rental == nil {
		return RentalAssumptions{}
	}
	return *d.Rental
}

func (d DealInputs) flip() FlipAssumptions {
	if d.Flip == nil {
		return FlipAssumptions{}
	}
	return *d.Flip
}

func (d DealInputs) str() STRAssumptions {
	if d.STR == nil {
		return STRAssumptions{}
	}
	return *d.STR
}

// DefaultInputs returns a starting set of assumptions for the given
// strategy. It is a pure factory; callers get a fresh value every time.
func DefaultInputs(t InvestmentType) DealInputs {
	inputs := DealInputs{
		Type: t,
		Property: PropertyDetails{
			Bedrooms:   3,
			Bathrooms:  2,
			SquareFeet: 1500,
			Units:      1,
		},
		Financing: Financing{
			InterestRate:      7.0,
			LoanTermYears:     30,
			AmortizationYears: 30,
		},
		Disposition: Disposition{
			HoldPeriodYears:    5,
			AnnualAppreciation: 3,
			AnnualRentGrowth:   2,
			SellingCosts:       6,
			ExitCapRate:        7,
		},
	}

	switch t {
	case FixAndFlip:
		inputs.Financing.InterestRate = 10
		inputs.Financing.LoanTermYears = 1
		inputs.Financing.InterestOnly = true
		inputs.Disposition.HoldPeriodYears = 1
		inputs.Flip = &FlipAssumptions{MonthsToComplete: 6}
	case ShortTermRental:
		inputs.STR = &STRAssumptions{
			OccupancyRate:   70,
			AvgStayDuration: 3,
			PlatformFee:     3,
			Management:      20,
		}
	default:
		inputs.Rental = &RentalAssumptions{VacancyRate: 5}
	}

	return inputs
}
