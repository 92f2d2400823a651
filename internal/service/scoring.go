package service

import (
	"strings"

	"github.com/khapung280/RENTNEST-sub000/internal/model"
)

// Best-for audience labels
const (
	BestForFamily        = "Family"
	BestForStudents      = "Students"
	BestForProfessionals = "Professionals"
	BestForQuietLiving   = "Quiet Living"
)

// Scoring constants. These are the canonical thresholds; all consumers share
// this one implementation.
const (
	benchmarkPricePerSqft = 12.0

	verifiedBonus    = 30
	fairFlexBonus    = 20
	fairFlexMaxPrice = 20000.0
	fairFlexMinBeds  = 3

	amenityMinBedrooms  = 3
	amenityMinBathrooms = 2
	amenityMinAreaSqft  = 1500.0
	amenityMaxPrice     = 18000.0
)

// fairFlexDiscounts maps stay duration in months to its discount percentage.
var fairFlexDiscounts = map[int]int{1: 0, 3: 5, 6: 10, 12: 15}

// CalculateConfidence computes the 0-100 trust/value score for a listing.
// Pure and total: a non-positive area simply contributes no fairness credit.
func CalculateConfidence(p *model.Property) int {
	score := 0

	if p.Verified {
		score += verifiedBonus
	}

	if p.AreaSqft > 0 {
		pricePerSqft := p.Price / p.AreaSqft
		switch {
		case pricePerSqft <= benchmarkPricePerSqft*0.8:
			score += 30
		case pricePerSqft <= benchmarkPricePerSqft:
			score += 20
		case pricePerSqft <= benchmarkPricePerSqft*1.2:
			score += 10
		}
	}

	if fairFlexEligible(p) {
		score += fairFlexBonus
	}

	amenities := 0
	if p.Bedrooms >= amenityMinBedrooms {
		amenities++
	}
	if p.Bathrooms >= amenityMinBathrooms {
		amenities++
	}
	if p.AreaSqft >= amenityMinAreaSqft {
		amenities++
	}
	if p.Price <= amenityMaxPrice {
		amenities++
	}
	switch {
	case amenities >= 3:
		score += 20
	case amenities >= 2:
		score += 15
	case amenities >= 1:
		score += 10
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}

// BestForLabel assigns a coarse audience classification using an ordered
// decision list; the first matching rule wins.
func BestForLabel(p *model.Property) string {
	if p.Bedrooms >= 3 && p.Bathrooms >= 2 && p.AreaSqft >= 1800 {
		return BestForFamily
	}
	if p.Price <= 12000 && p.Bedrooms <= 2 && p.AreaSqft <= 1200 {
		return BestForStudents
	}
	if p.Price >= 12000 && p.Price <= 20000 && p.Bedrooms >= 2 &&
		locationIn(p.Location, "Kathmandu", "Lalitpur", "Pokhara") {
		return BestForProfessionals
	}
	if p.Price <= 16000 && p.Bedrooms <= 3 &&
		locationIn(p.Location, "Bhaktapur", "Chitwan") {
		return BestForQuietLiving
	}

	switch {
	case p.Price <= 15000:
		return BestForStudents
	case p.Price >= 25000:
		return BestForFamily
	default:
		return BestForProfessionals
	}
}

// FairFlexFor computes the tiered long-stay discount breakdown for a listing
// at the chosen duration. The breakdown is always computed; callers that make
// the discount effective must gate on Eligible.
func FairFlexFor(p *model.Property, months int) *model.FairFlexSavings {
	percent := fairFlexDiscounts[months]
	monthlySavings := p.Price * float64(percent) / 100

	return &model.FairFlexSavings{
		Eligible:        fairFlexEligible(p),
		DurationMonths:  months,
		DiscountPercent: percent,
		MonthlyPrice:    p.Price,
		DiscountedPrice: p.Price - monthlySavings,
		MonthlySavings:  monthlySavings,
		TotalSavings:    monthlySavings * float64(months),
	}
}

// ScoreProperty decorates a property with all derived recommendation fields
func ScoreProperty(p model.Property, durationMonths int) model.ScoredProperty {
	return model.ScoredProperty{
		Property:        p,
		ConfidenceScore: CalculateConfidence(&p),
		BestFor:         BestForLabel(&p),
		FairFlex:        FairFlexFor(&p, durationMonths),
	}
}

func fairFlexEligible(p *model.Property) bool {
	return p.Price <= fairFlexMaxPrice || p.Bedrooms >= fairFlexMinBeds
}

func locationIn(location string, cities ...string) bool {
	for _, city := range cities {
		if strings.EqualFold(location, city) {
			return true
		}
	}
	return false
}
