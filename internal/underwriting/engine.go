package underwriting

import "math"

// Results is the full financial snapshot produced by RunUnderwriting.
// Flip and STR fields are only populated for their strategies.
type Results struct {
	TotalProjectCost    float64 `json:"total_project_cost"`
	TotalEquityRequired float64 `json:"total_equity_required"`
	LoanToValue         float64 `json:"loan_to_value"`
	LoanToCost          float64 `json:"loan_to_cost"`

	GrossScheduledIncome float64 `json:"gross_scheduled_income"`
	VacancyLoss          float64 `json:"vacancy_loss"`
	EffectiveGrossIncome float64 `json:"effective_gross_income"`

	TotalOperatingExpenses float64 `json:"total_operating_expenses"`
	ExpenseRatio           float64 `json:"expense_ratio"`

	NOI       float64 `json:"noi"`
	NOIMargin float64 `json:"noi_margin"`

	AnnualDebtService  float64 `json:"annual_debt_service"`
	MonthlyDebtService float64 `json:"monthly_debt_service"`

	CashFlowBeforeDebt float64 `json:"cash_flow_before_debt"`
	CashFlowAfterDebt  float64 `json:"cash_flow_after_debt"`
	MonthlyCashFlow    float64 `json:"monthly_cash_flow"`

	CapRate          float64 `json:"cap_rate"`
	CashOnCash       float64 `json:"cash_on_cash"`
	DSCR             float64 `json:"dscr"`
	EquityMultiple   float64 `json:"equity_multiple"`
	IRR              float64 `json:"irr"`
	TotalProfit      float64 `json:"total_profit"`
	AnnualizedReturn float64 `json:"annualized_return"`

	ProjectedSalePrice float64 `json:"projected_sale_price"`
	NetSaleProceeds    float64 `json:"net_sale_proceeds"`
	LoanBalance        float64 `json:"loan_balance"`

	PricePerUnit float64 `json:"price_per_unit"`
	RentPerUnit  float64 `json:"rent_per_unit"`
	NOIPerUnit   float64 `json:"noi_per_unit"`

	YearlyProjections []YearProjection `json:"yearly_projections"`

	FlipProfit        *float64 `json:"flip_profit,omitempty"`
	FlipROI           *float64 `json:"flip_roi,omitempty"`
	FlipAnnualizedROI *float64 `json:"flip_annualized_roi,omitempty"`

	RevenuePerAvailableNight *float64 `json:"revenue_per_available_night,omitempty"`
	AverageDailyRate         *float64 `json:"average_daily_rate,omitempty"`
}

// YearProjection is one row of the hold-period cash flow table. Year
// starts at 1.
type YearProjection struct {
	Year               int     `json:"year"`
	GrossIncome        float64 `json:"gross_income"`
	OperatingExpenses  float64 `json:"operating_expenses"`
	NOI                float64 `json:"noi"`
	DebtService        float64 `json:"debt_service"`
	CashFlow           float64 `json:"cash_flow"`
	PropertyValue      float64 `json:"property_value"`
	LoanBalance        float64 `json:"loan_balance"`
	Equity             float64 `json:"equity"`
	CumulativeCashFlow float64 `json:"cumulative_cash_flow"`
}

// Operating expenses escalate at a fixed 2%/year in projections,
// independent of the rent growth assumption.
const expenseGrowthRate = 0.02

// CalcMonthlyPayment returns the monthly loan payment for the given
// principal, annual rate (percent), and amortization period.
func CalcMonthlyPayment(principal, annualRate float64, amortYears int, interestOnly bool) float64 {
	if principal <= 0 {
		return 0
	}
	monthlyRate := annualRate / 100 / 12

	if interestOnly {
		return principal * monthlyRate
	}
	if monthlyRate == 0 {
		return principal / (float64(amortYears) * 12)
	}

	n := float64(amortYears) * 12
	return principal * monthlyRate * math.Pow(1+monthlyRate, n) / (math.Pow(1+monthlyRate, n) - 1)
}

// CalcLoanBalance returns the remaining principal after yearsElapsed
// years of payments.
func CalcLoanBalance(principal, annualRate float64, amortYears, yearsElapsed int, interestOnly bool) float64 {
	if principal <= 0 {
		return 0
	}
	if interestOnly {
		return principal
	}

	monthlyRate := annualRate / 100 / 12
	if monthlyRate == 0 {
		return principal - (principal/(float64(amortYears)*12))*float64(yearsElapsed)*12
	}

	p := float64(yearsElapsed) * 12
	payment := CalcMonthlyPayment(principal, annualRate, amortYears, false)

	return principal*math.Pow(1+monthlyRate, p) - payment*((math.Pow(1+monthlyRate, p)-1)/monthlyRate)
}

// CalcIRR finds the internal rate of return for a series of period cash
// flows (index 0 is the time-0 outlay) via Newton-Raphson on the NPV
// function. Degenerate series (fewer than 2 flows, a flat NPV curve, or
// an iterate escaping (-0.99, 10)) yield 0, meaning "no meaningful IRR".
func CalcIRR(cashFlows []float64) float64 {
	const (
		maxIterations = 1000
		tolerance     = 1e-5
	)

	if len(cashFlows) < 2 {
		return 0
	}

	rate := 0.1

	for i := 0; i < maxIterations; i++ {
		var npv, dnpv float64

		for t, cf := range cashFlows {
			denom := math.Pow(1+rate, float64(t))
			npv += cf / denom
			dnpv -= float64(t) * cf / math.Pow(1+rate, float64(t)+1)
		}

		// Flat NPV curve: no meaningful IRR.
		if math.Abs(dnpv) < 1e-10 {
			return 0
		}

		newRate := rate - npv/dnpv

		if math.Abs(newRate-rate) < tolerance {
			return newRate
		}

		rate = newRate

		if rate < -0.99 || rate > 10 {
			return 0
		}
	}

	return rate
}

// RunUnderwriting computes the full deal snapshot from the inputs. It
// never fails: every ratio guards its denominator and substitutes 0.
func RunUnderwriting(inputs DealInputs) Results {
	acq := inputs.Acquisition
	fin := inputs.Financing
	exp := inputs.Expenses
	disp := inputs.Disposition
	rental := inputs.rental()
	flip := inputs.flip()
	str := inputs.str()

	unitCount := float64(inputs.Property.Units)
	if unitCount < 1 {
		unitCount = 1
	}

	// Sources & uses
	totalProjectCost := acq.PurchasePrice + acq.ClosingCosts + acq.Renovations + acq.Reserves
	totalEquityRequired := totalProjectCost - fin.LoanAmount

	var loanToValue, loanToCost float64
	if acq.PurchasePrice > 0 {
		loanToValue = fin.LoanAmount / acq.PurchasePrice * 100
	}
	if totalProjectCost > 0 {
		loanToCost = fin.LoanAmount / totalProjectCost * 100
	}

	// Income
	var grossScheduledIncome float64
	if inputs.Type == ShortTermRental {
		occupiedNights := 365 * (str.OccupancyRate / 100)
		var numberOfStays float64
		if str.AvgStayDuration > 0 {
			numberOfStays = occupiedNights / str.AvgStayDuration
		}
		grossScheduledIncome = occupiedNights*str.AvgNightlyRate + numberOfStays*str.CleaningFeePerStay
	} else {
		grossScheduledIncome = (rental.GrossMonthlyRent + rental.OtherMonthlyIncome) * 12
	}

	// STR vacancy is already embedded in the occupancy assumption.
	var vacancyLoss float64
	if inputs.Type != ShortTermRental {
		vacancyLoss = grossScheduledIncome * (rental.VacancyRate / 100)
	}
	effectiveGrossIncome := grossScheduledIncome - vacancyLoss

	// Expenses
	var totalOperatingExpenses float64
	if inputs.Type == ShortTermRental {
		platformFees := grossScheduledIncome * (str.PlatformFee / 100)
		strMgmt := grossScheduledIncome * (str.Management / 100)
		totalOperatingExpenses = exp.PropertyTaxes + exp.Insurance + exp.Maintenance +
			exp.Utilities + exp.OtherExpenses + platformFees + strMgmt
	} else {
		totalOperatingExpenses = exp.PropertyTaxes + exp.Insurance + exp.Maintenance +
			exp.Management + exp.Utilities + exp.OtherExpenses
	}

	var expenseRatio float64
	if effectiveGrossIncome > 0 {
		expenseRatio = totalOperatingExpenses / effectiveGrossIncome * 100
	}

	// NOI
	noi := effectiveGrossIncome - totalOperatingExpenses
	var noiMargin float64
	if effectiveGrossIncome > 0 {
		noiMargin = noi / effectiveGrossIncome * 100
	}

	// Debt service
	monthlyDebtService := CalcMonthlyPayment(fin.LoanAmount, fin.InterestRate, fin.AmortizationYears, fin.InterestOnly)
	annualDebtService := monthlyDebtService * 12

	// Cash flow
	cashFlowBeforeDebt := noi
	cashFlowAfterDebt := noi - annualDebtService
	monthlyCashFlow := cashFlowAfterDebt / 12

	// Return metrics
	var capRate, cashOnCash, dscr float64
	if acq.PurchasePrice > 0 {
		capRate = noi / acq.PurchasePrice * 100
	}
	if totalEquityRequired > 0 {
		cashOnCash = cashFlowAfterDebt / totalEquityRequired * 100
	}
	if annualDebtService > 0 {
		dscr = noi / annualDebtService
	}

	results := Results{
		TotalProjectCost:       totalProjectCost,
		TotalEquityRequired:    totalEquityRequired,
		LoanToValue:            loanToValue,
		LoanToCost:             loanToCost,
		GrossScheduledIncome:   grossScheduledIncome,
		VacancyLoss:            vacancyLoss,
		EffectiveGrossIncome:   effectiveGrossIncome,
		TotalOperatingExpenses: totalOperatingExpenses,
		ExpenseRatio:           expenseRatio,
		NOI:                    noi,
		NOIMargin:              noiMargin,
		AnnualDebtService:      annualDebtService,
		MonthlyDebtService:     monthlyDebtService,
		CashFlowBeforeDebt:     cashFlowBeforeDebt,
		CashFlowAfterDebt:      cashFlowAfterDebt,
		MonthlyCashFlow:        monthlyCashFlow,
		CapRate:                capRate,
		CashOnCash:             cashOnCash,
		DSCR:                   dscr,
		PricePerUnit:           acq.PurchasePrice / unitCount,
		RentPerUnit:            rental.GrossMonthlyRent / unitCount,
		NOIPerUnit:             noi / unitCount,
	}

	// Flip economics
	if inputs.Type == FixAndFlip {
		months := float64(flip.MonthsToComplete)
		totalFlipCost := acq.PurchasePrice + acq.ClosingCosts + acq.Renovations +
			flip.HoldingCostsMonthly*months +
			annualDebtService/12*months
		sellCosts := flip.AfterRepairValue * (disp.SellingCosts / 100)
		flipProfit := flip.AfterRepairValue - sellCosts - totalFlipCost

		var flipROI float64
		if totalEquityRequired > 0 {
			flipROI = flipProfit / totalEquityRequired * 100
		}

		// A loss beyond the invested equity has no real annualized rate;
		// math.Pow would return NaN, which cannot survive JSON encoding.
		var flipAnnualizedROI float64
		if yearsToComplete := months / 12; yearsToComplete > 0 && 1+flipROI/100 > 0 {
			flipAnnualizedROI = (math.Pow(1+flipROI/100, 1/yearsToComplete) - 1) * 100
		}

		results.FlipProfit = &flipProfit
		results.FlipROI = &flipROI
		results.FlipAnnualizedROI = &flipAnnualizedROI
	}

	// STR revenue metrics
	if inputs.Type == ShortTermRental {
		revPAN := grossScheduledIncome / 365
		adr := str.AvgNightlyRate
		results.RevenuePerAvailableNight = &revPAN
		results.AverageDailyRate = &adr
	}

	// Hold period: flips run until disposition of the renovated asset.
	holdYears := disp.HoldPeriodYears
	if inputs.Type == FixAndFlip {
		holdYears = int(math.Ceil(float64(flip.MonthsToComplete) / 12))
		if holdYears < 1 {
			holdYears = 1
		}
	}

	// Year-by-year projections
	projections := make([]YearProjection, 0, holdYears)
	var cumulativeCashFlow float64

	for year := 1; year <= holdYears; year++ {
		rentGrowthFactor := math.Pow(1+disp.AnnualRentGrowth/100, float64(year-1))
		appreciationFactor := math.Pow(1+disp.AnnualAppreciation/100, float64(year))

		var yearIncome float64
		if inputs.Type != FixAndFlip {
			yearIncome = grossScheduledIncome * rentGrowthFactor
		}

		var yearVacancy float64
		if inputs.Type != ShortTermRental {
			yearVacancy = yearIncome * (rental.VacancyRate / 100)
		}
		yearEGI := yearIncome - yearVacancy

		yearExpenses := totalOperatingExpenses * math.Pow(1+expenseGrowthRate, float64(year-1))
		yearNOI := yearEGI - yearExpenses

		yearCashFlow := yearNOI - annualDebtService
		if inputs.Type == FixAndFlip {
			// Flip years are cost-only: no rental income, just carry.
			yearCashFlow = -flip.HoldingCostsMonthly * 12
		}
		cumulativeCashFlow += yearCashFlow

		propertyValue := acq.PurchasePrice * appreciationFactor
		if inputs.Type == FixAndFlip {
			propertyValue = flip.AfterRepairValue
		}

		yearLoanBalance := CalcLoanBalance(fin.LoanAmount, fin.InterestRate, fin.AmortizationYears, year, fin.InterestOnly)

		projections = append(projections, YearProjection{
			Year:               year,
			GrossIncome:        yearIncome,
			OperatingExpenses:  yearExpenses,
			NOI:                yearNOI,
			DebtService:        annualDebtService,
			CashFlow:           yearCashFlow,
			PropertyValue:      propertyValue,
			LoanBalance:        yearLoanBalance,
			Equity:             propertyValue - yearLoanBalance,
			CumulativeCashFlow: cumulativeCashFlow,
		})
	}
	results.YearlyProjections = projections

	// Disposition
	var projectedSalePrice float64
	switch {
	case inputs.Type == FixAndFlip:
		projectedSalePrice = flip.AfterRepairValue
	case disp.ExitCapRate > 0 && holdYears > 0:
		// Terminal NOI grown one more year beyond the table, divided by
		// the exit cap.
		terminalNOI := projections[holdYears-1].NOI
		projectedSalePrice = terminalNOI * (1 + disp.AnnualRentGrowth/100) / (disp.ExitCapRate / 100)
	default:
		projectedSalePrice = acq.PurchasePrice * math.Pow(1+disp.AnnualAppreciation/100, float64(holdYears))
	}

	sellCostsAmount := projectedSalePrice * (disp.SellingCosts / 100)
	loanBalance := fin.LoanAmount
	if holdYears > 0 {
		loanBalance = CalcLoanBalance(fin.LoanAmount, fin.InterestRate, fin.AmortizationYears, holdYears, fin.InterestOnly)
	}
	netSaleProceeds := projectedSalePrice - sellCostsAmount - loanBalance

	results.ProjectedSalePrice = projectedSalePrice
	results.NetSaleProceeds = netSaleProceeds
	results.LoanBalance = loanBalance

	// IRR: time 0 is the equity outlay, interior years their cash flow,
	// final year augmented by net sale proceeds.
	irrCashFlows := make([]float64, 0, holdYears+1)
	irrCashFlows = append(irrCashFlows, -totalEquityRequired)
	for i := 0; i < holdYears; i++ {
		cf := projections[i].CashFlow
		if i == holdYears-1 {
			cf += netSaleProceeds
		}
		irrCashFlows = append(irrCashFlows, cf)
	}
	results.IRR = CalcIRR(irrCashFlows) * 100

	// Equity multiple and total profit
	totalCashReceived := cumulativeCashFlow + netSaleProceeds
	if totalEquityRequired > 0 {
		results.EquityMultiple = totalCashReceived / totalEquityRequired
	}
	results.TotalProfit = totalCashReceived - totalEquityRequired
	// Overlevered deals can return less cash than the equity put in,
	// leaving a non-positive multiple with no real annualized rate.
	if holdYears > 0 && results.EquityMultiple > 0 {
		results.AnnualizedReturn = (math.Pow(results.EquityMultiple, 1/float64(holdYears)) - 1) * 100
	}

	return results
}
