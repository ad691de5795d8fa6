// Package vacancy models revenue lost to vacancy when holding out for a
// premium rent versus leasing at market.
package vacancy

import (
	"math"

	"propwell/server/internal/models"
)

// DefaultCarryCostMonthly is the assumed monthly carry while a unit sits
// vacant (utilities, lawn, insurance riders).
const DefaultCarryCostMonthly = 250.0

var lossDays = []int{7, 14, 30, 45, 60, 90}

// Calculate builds the vacancy loss model for a market rent. premiumRent
// is optional; when nil it defaults to market +20%, rounded to the
// nearest $50. The Market@30 scenario is the variance baseline.
func Calculate(marketRate float64, premiumRent *float64, carryCostPerMonth float64) models.VacancyResult {
	premium := 0.0
	if premiumRent != nil {
		premium = *premiumRent
	} else {
		premium = math.Round(marketRate*1.2/50) * 50
	}

	dailyRevenue := marketRate / 30.0
	mediumRent := (marketRate + premium) / 2.0

	buildScenario := func(name string, rent float64, daysVacant int) models.VacancyScenario {
		lostRevenue := dailyRevenue * float64(daysVacant)
		leaseFee := rent // one month rent
		monthsVacant := float64(daysVacant) / 30.0
		carry := carryCostPerMonth * monthsVacant
		annualRevenue := rent * 12

		return models.VacancyScenario{
			Name:          name,
			Rent:          rent,
			DaysVacant:    daysVacant,
			LostRevenue:   -lostRevenue,
			LeaseFee:      -leaseFee,
			CarryCosts:    -carry,
			AnnualRevenue: annualRevenue,
			NetRevenue:    annualRevenue - lostRevenue - leaseFee - carry,
		}
	}

	market30 := buildScenario("Market", marketRate, 30)
	premium90 := buildScenario("Premium", premium, 90)
	medium90 := buildScenario("Medium", mediumRent, 90)
	market90 := buildScenario("Market", marketRate, 90)

	baseline := market30.NetRevenue
	premium90.Variance = premium90.NetRevenue - baseline
	medium90.Variance = medium90.NetRevenue - baseline
	market90.Variance = market90.NetRevenue - baseline

	monthlySpread := premium - marketRate

	var breakevenDays float64
	if dailyRevenue > 0 {
		breakevenDays = monthlySpread / dailyRevenue
	}

	lossTable := make(map[int]float64, len(lossDays))
	premiumBreakevenTable := make(map[int]float64, len(lossDays))
	for _, d := range lossDays {
		lossTable[d] = dailyRevenue * float64(d)
		if monthlySpread > 0 {
			premiumBreakevenTable[d] = dailyRevenue * float64(d) / monthlySpread
		} else {
			premiumBreakevenTable[d] = 0
		}
	}

	dailyVacancyCurve := make([]models.VacancyPoint, 0, 30)
	for d := 1; d <= 30; d++ {
		dailyVacancyCurve = append(dailyVacancyCurve, models.VacancyPoint{Period: d, Amount: dailyRevenue * float64(d)})
	}

	monthlySpreadLoss := make([]models.VacancyPoint, 0, 12)
	for m := 1; m <= 12; m++ {
		monthlySpreadLoss = append(monthlySpreadLoss, models.VacancyPoint{Period: m, Amount: monthlySpread * float64(m)})
	}

	return models.VacancyResult{
		MarketRate:            marketRate,
		DailyRevenue:          dailyRevenue,
		Scenarios:             []models.VacancyScenario{market30, premium90, medium90, market90},
		MonthlySpread:         monthlySpread,
		BreakevenDays:         breakevenDays,
		LossTable:             lossTable,
		PremiumBreakevenTable: premiumBreakevenTable,
		DailyVacancyCurve:     dailyVacancyCurve,
		MonthlySpreadLoss:     monthlySpreadLoss,
	}
}
