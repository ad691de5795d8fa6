package underwriting

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(v float64) *float64 {
	return &v
}

func TestGetRecommendation_RentalThresholds(t *testing.T) {
	tests := []struct {
		name               string
		results            Results
		expectedAction     Action
		expectedConfidence Confidence
	}{
		{
			name: "All high tier checks trigger",
			results: Results{
				CashOnCash:     9,
				CapRate:        8,
				DSCR:           1.3,
				IRR:            16,
				EquityMultiple: 2.1,
			},
			// 2 + 1 + 1 + 2 + 1 = 7
			expectedAction:     ActionBuy,
			expectedConfidence: ConfidenceHigh,
		},
		{
			name: "Moderate metrics",
			results: Results{
				CashOnCash:     5,
				CapRate:        6,
				DSCR:           1.1,
				IRR:            11,
				EquityMultiple: 1.6,
			},
			// 1 + 0 + 0 + 1 = 2
			expectedAction:     ActionBuy,
			expectedConfidence: ConfidenceMedium,
		},
		{
			name: "Marginal deal holds",
			results: Results{
				CashOnCash:     5,
				CapRate:        4,
				DSCR:           1.1,
				IRR:            8,
				EquityMultiple: 1.3,
			},
			// 1 - 1 + 0 + 0 = 0
			expectedAction:     ActionHold,
			expectedConfidence: ConfidenceLow,
		},
		{
			name: "Weak deal passes",
			results: Results{
				CashOnCash:     -2,
				CapRate:        3,
				DSCR:           0.8,
				IRR:            2,
				EquityMultiple: 0.9,
			},
			// -2 - 1 - 2 - 1 = -6
			expectedAction:     ActionPass,
			expectedConfidence: ConfidenceHigh,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inputs := DealInputs{Type: LongTermHold}
			rec := GetRecommendation(inputs, tt.results)

			assert.Equal(t, tt.expectedAction, rec.Action)
			assert.Equal(t, tt.expectedConfidence, rec.Confidence)
			assert.NotEmpty(t, rec.Summary)
			assert.NotEmpty(t, rec.Factors)
		})
	}
}

func TestGetRecommendation_FlipThresholds(t *testing.T) {
	tests := []struct {
		name               string
		results            Results
		expectedAction     Action
		expectedConfidence Confidence
	}{
		{
			name: "Strong ROI and profit",
			results: Results{
				FlipROI:    ptr(25.0),
				FlipProfit: ptr(60000.0),
			},
			// 2 + 1 = 3
			expectedAction:     ActionBuy,
			expectedConfidence: ConfidenceMedium,
		},
		{
			name: "Moderate ROI",
			results: Results{
				FlipROI:    ptr(15.0),
				FlipProfit: ptr(30000.0),
			},
			// 1
			expectedAction:     ActionHold,
			expectedConfidence: ConfidenceLow,
		},
		{
			name: "Negative profit",
			results: Results{
				FlipROI:    ptr(-5.0),
				FlipProfit: ptr(-20000.0),
			},
			// -1 - 2 = -3
			expectedAction:     ActionPass,
			expectedConfidence: ConfidenceHigh,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inputs := DealInputs{Type: FixAndFlip}
			rec := GetRecommendation(inputs, tt.results)

			assert.Equal(t, tt.expectedAction, rec.Action)
			assert.Equal(t, tt.expectedConfidence, rec.Confidence)
		})
	}
}

func TestGetRecommendation_FlipWithNilMetrics(t *testing.T) {
	// Flip metrics missing from the results read as zero
	rec := GetRecommendation(DealInputs{Type: FixAndFlip}, Results{})

	assert.Equal(t, ActionPass, rec.Action)
	assert.Contains(t, rec.Factors[0], "Weak flip ROI")
}

func TestGetRecommendation_FactorWording(t *testing.T) {
	results := Results{
		CashOnCash:     9,
		CapRate:        8,
		DSCR:           1.3,
		IRR:            16,
		EquityMultiple: 2.1,
	}

	rec := GetRecommendation(DealInputs{Type: LongTermHold}, results)

	assert.Len(t, rec.Factors, 5)
	assert.Contains(t, rec.Factors[0], "Strong cash-on-cash")
	assert.Contains(t, rec.Factors[1], "Strong cap rate")
	assert.Contains(t, rec.Factors[2], "Healthy DSCR")
	assert.Contains(t, rec.Factors[3], "Excellent IRR")
	assert.Contains(t, rec.Factors[4], "Strong equity multiple")
}
