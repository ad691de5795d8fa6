package underwriting

import "fmt"

type Action string

const (
	ActionBuy  Action = "Buy"
	ActionHold Action = "Hold"
	ActionSell Action = "Sell"
	ActionPass Action = "Pass"
)

type Confidence string

const (
	ConfidenceHigh   Confidence = "High"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceLow    Confidence = "Low"
)

// Recommendation is the qualitative read on a deal, derived entirely
// from the computed results and the strategy.
type Recommendation struct {
	Action     Action     `json:"action"`
	Confidence Confidence `json:"confidence"`
	Summary    string     `json:"summary"`
	Factors    []string   `json:"factors"`
}

// GetRecommendation scores the deal against fixed metric thresholds and
// maps the accumulated score to an action. It is a hand-tuned scorecard,
// not a statistical model.
func GetRecommendation(inputs DealInputs, results Results) Recommendation {
	var factors []string
	score := 0

	if inputs.Type == FixAndFlip {
		flipROI := deref(results.FlipROI)
		flipProfit := deref(results.FlipProfit)

		switch {
		case flipROI > 20:
			score += 2
			factors = append(factors, fmt.Sprintf("Strong flip ROI: %s", FormatPercent(flipROI, 1)))
		case flipROI > 10:
			score++
			factors = append(factors, fmt.Sprintf("Moderate flip ROI: %s", FormatPercent(flipROI, 1)))
		default:
			score--
			factors = append(factors, fmt.Sprintf("Weak flip ROI: %s", FormatPercent(flipROI, 1)))
		}

		if flipProfit > 50000 {
			score++
			factors = append(factors, fmt.Sprintf("Profit > $50K: %s", FormatCurrency(flipProfit)))
		}
		if flipProfit < 0 {
			score -= 2
			factors = append(factors, fmt.Sprintf("Negative profit: %s", FormatCurrency(flipProfit)))
		}
	} else {
		switch {
		case results.CashOnCash > 8:
			score += 2
			factors = append(factors, fmt.Sprintf("Strong cash-on-cash: %s", FormatPercent(results.CashOnCash, 1)))
		case results.CashOnCash > 4:
			score++
			factors = append(factors, fmt.Sprintf("Moderate cash-on-cash: %s", FormatPercent(results.CashOnCash, 1)))
		case results.CashOnCash < 0:
			score -= 2
			factors = append(factors, fmt.Sprintf("Negative cash-on-cash: %s", FormatPercent(results.CashOnCash, 1)))
		default:
			factors = append(factors, fmt.Sprintf("Low cash-on-cash: %s", FormatPercent(results.CashOnCash, 1)))
		}

		switch {
		case results.CapRate > 7:
			score++
			factors = append(factors, fmt.Sprintf("Strong cap rate: %s", FormatPercent(results.CapRate, 1)))
		case results.CapRate > 5:
			factors = append(factors, fmt.Sprintf("Moderate cap rate: %s", FormatPercent(results.CapRate, 1)))
		default:
			score--
			factors = append(factors, fmt.Sprintf("Low cap rate: %s", FormatPercent(results.CapRate, 1)))
		}

		switch {
		case results.DSCR > 1.25:
			score++
			factors = append(factors, fmt.Sprintf("Healthy DSCR: %.2fx", results.DSCR))
		case results.DSCR < 1.0:
			score -= 2
			factors = append(factors, fmt.Sprintf("DSCR below 1.0: %.2fx - negative cash flow", results.DSCR))
		default:
			factors = append(factors, fmt.Sprintf("Tight DSCR: %.2fx", results.DSCR))
		}

		switch {
		case results.IRR > 15:
			score += 2
			factors = append(factors, fmt.Sprintf("Excellent IRR: %s", FormatPercent(results.IRR, 1)))
		case results.IRR > 10:
			score++
			factors = append(factors, fmt.Sprintf("Good IRR: %s", FormatPercent(results.IRR, 1)))
		case results.IRR < 5:
			score--
			factors = append(factors, fmt.Sprintf("Low IRR: %s", FormatPercent(results.IRR, 1)))
		}

		if results.EquityMultiple > 2.0 {
			score++
			factors = append(factors, fmt.Sprintf("Strong equity multiple: %s", FormatMultiple(results.EquityMultiple)))
		}
	}

	rec := Recommendation{Factors: factors}
	switch {
	case score >= 4:
		rec.Action = ActionBuy
		rec.Confidence = ConfidenceHigh
		rec.Summary = "Strong investment fundamentals across all metrics. Recommend acquisition."
	case score >= 2:
		rec.Action = ActionBuy
		rec.Confidence = ConfidenceMedium
		rec.Summary = "Solid investment with some areas to monitor. Recommend acquisition with noted considerations."
	case score >= 0:
		rec.Action = ActionHold
		rec.Confidence = ConfidenceLow
		rec.Summary = "Marginal returns. Consider negotiating better terms or monitoring for market improvements."
	default:
		rec.Action = ActionPass
		rec.Confidence = ConfidenceHigh
		rec.Summary = "Returns do not meet investment thresholds. Recommend passing on this opportunity."
	}

	return rec
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
