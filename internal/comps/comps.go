// Package comps assembles a ranked comparable set and a rent
// recommendation from already-fetched listing rows. Sourcing the rows is
// the caller's problem; everything here is deterministic given the rows
// and the as-of date.
package comps

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"propwell/server/internal/models"
)

// MaxComps caps the ranked comp set.
const MaxComps = 5

const metersPerMile = 1609.344

// BuildCompResult filters, annotates, and ranks raw listings into a comp
// set for the subject. Ranking is distance first (unknown distance sorts
// last), then size similarity. asOf anchors days-on-market derivation.
func BuildCompResult(subject models.SubjectProperty, listings []models.Listing, expansionLevel int, asOf time.Time) models.CompResult {
	var comps []models.Comp

	for _, listing := range listings {
		comp, ok := listingToComp(listing, subject, asOf)
		if !ok || isDuplicate(comp, comps) {
			continue
		}
		comps = append(comps, comp)
	}

	sort.SliceStable(comps, func(i, j int) bool {
		distI := distanceOrFar(comps[i].DistanceMiles)
		distJ := distanceOrFar(comps[j].DistanceMiles)
		if distI != distJ {
			return distI < distJ
		}
		return math.Abs(comps[i].Sqft-subject.Sqft) < math.Abs(comps[j].Sqft-subject.Sqft)
	})

	if len(comps) > MaxComps {
		comps = comps[:MaxComps]
	}

	avgRent, avgPpsqft, avgDOM := averages(comps)

	return models.CompResult{
		Comps:          comps,
		ExpansionLevel: expansionLevel,
		AvgRent:        avgRent,
		AvgPpsqft:      avgPpsqft,
		AvgDOM:         avgDOM,
	}
}

// BuildRentRecommendation derives every rent method from the comp set.
// The recommended figure is always the ppsqft method; the direct
// average, AVM, and benchmark median ride along for validation.
func BuildRentRecommendation(subject models.SubjectProperty, compResult models.CompResult, avmRent float64, benchmark *models.RentBenchmark) models.RentRecommendation {
	ppsqftMethod := compResult.AvgPpsqft * subject.Sqft

	benchmarkMedian := 0.0
	if benchmark != nil {
		benchmarkMedian = benchmark.Median
	}

	return models.RentRecommendation{
		PpsqftMethod:    ppsqftMethod,
		DirectAverage:   compResult.AvgRent,
		AvmRent:         avmRent,
		BenchmarkMedian: benchmarkMedian,
		RecommendedRent: ppsqftMethod,
		AvgPpsqft:       compResult.AvgPpsqft,
		SubjectSqft:     subject.Sqft,
	}
}

func listingToComp(listing models.Listing, subject models.SubjectProperty, asOf time.Time) (models.Comp, bool) {
	if listing.Rent <= 0 {
		return models.Comp{}, false
	}

	var ppsqft float64
	if listing.Sqft > 0 {
		ppsqft = listing.Rent / listing.Sqft
	}

	return models.Comp{
		Address:       listing.Address,
		City:          listing.City,
		ZipCode:       listing.ZipCode,
		State:         listing.State,
		Bedrooms:      listing.Bedrooms,
		Bathrooms:     listing.Bathrooms,
		Sqft:          listing.Sqft,
		Rent:          listing.Rent,
		Ppsqft:        ppsqft,
		ListDate:      listing.ListDate,
		DOM:           daysOnMarket(listing.ListDate, asOf),
		Link:          listing.Link,
		Comments:      autoComment(listing, subject),
		DistanceMiles: compDistance(listing, subject),
	}, true
}

// daysOnMarket returns whole days between the list date and asOf, nil
// when the list date is missing or unparseable.
func daysOnMarket(listDate string, asOf time.Time) *int {
	if listDate == "" {
		return nil
	}
	if len(listDate) > 10 {
		listDate = listDate[:10]
	}

	listed, err := time.Parse("2006-01-02", listDate)
	if err != nil {
		return nil
	}

	days := int(math.Floor(asOf.Sub(listed).Hours() / 24))
	return &days
}

// compDistance prefers the distance reported by the listing source and
// falls back to great-circle distance when both sides have coordinates.
func compDistance(listing models.Listing, subject models.SubjectProperty) *float64 {
	if listing.DistanceMiles != nil {
		return listing.DistanceMiles
	}
	if listing.Latitude == nil || listing.Longitude == nil ||
		subject.Latitude == nil || subject.Longitude == nil {
		return nil
	}

	meters := geo.Distance(
		orb.Point{*listing.Longitude, *listing.Latitude},
		orb.Point{*subject.Longitude, *subject.Latitude},
	)
	miles := meters / metersPerMile
	return &miles
}

// autoComment notes how a listing differs from the subject.
func autoComment(listing models.Listing, subject models.SubjectProperty) string {
	var notes []string

	if listing.Bedrooms != subject.Bedrooms {
		diff := listing.Bedrooms - subject.Bedrooms
		sign := ""
		if diff > 0 {
			sign = "+"
		}
		notes = append(notes, fmt.Sprintf("%s%g bed", sign, diff))
	}
	if listing.Bathrooms != subject.Bathrooms {
		if listing.Bathrooms > subject.Bathrooms {
			notes = append(notes, "extra bath")
		} else {
			notes = append(notes, "fewer bath")
		}
	}
	if listing.Sqft > 0 && subject.Sqft > 0 {
		if listing.Sqft > subject.Sqft*1.1 {
			notes = append(notes, "larger")
		} else if listing.Sqft < subject.Sqft*0.9 {
			notes = append(notes, "smaller")
		}
	}
	if listing.ZipCode != "" && listing.ZipCode != subject.ZipCode {
		notes = append(notes, "different zip")
	}

	return strings.Join(notes, ", ")
}

func isDuplicate(comp models.Comp, existing []models.Comp) bool {
	addr := strings.ToLower(strings.TrimSpace(comp.Address))
	for _, c := range existing {
		if strings.ToLower(strings.TrimSpace(c.Address)) == addr {
			return true
		}
	}
	return false
}

func distanceOrFar(d *float64) float64 {
	if d == nil {
		return 99
	}
	return *d
}

func averages(comps []models.Comp) (avgRent, avgPpsqft float64, avgDOM *float64) {
	if len(comps) == 0 {
		return 0, 0, nil
	}

	var rentTotal, ppsqftTotal float64
	var domTotal float64
	var domCount int

	for _, c := range comps {
		rentTotal += c.Rent
		ppsqftTotal += c.Ppsqft
		if c.DOM != nil {
			domTotal += float64(*c.DOM)
			domCount++
		}
	}

	avgRent = rentTotal / float64(len(comps))
	avgPpsqft = ppsqftTotal / float64(len(comps))
	if domCount > 0 {
		avg := domTotal / float64(domCount)
		avgDOM = &avg
	}
	return avgRent, avgPpsqft, avgDOM
}
