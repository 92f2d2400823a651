package service

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/khapung280/RENTNEST-sub000/internal/model"
)

// knownCities is the fixed gazetteer of city tokens, scanned in order.
var knownCities = []string{
	"kathmandu",
	"lalitpur",
	"bhaktapur",
	"pokhara",
	"chitwan",
	"butwal",
	"biratnagar",
	"dharan",
	"hetauda",
}

// neighborhoodCity maps neighborhood tokens to their parent city.
var neighborhoodCity = []struct {
	token string
	city  string
}{
	{"thamel", "Kathmandu"},
	{"baneshwor", "Kathmandu"},
	{"boudha", "Kathmandu"},
	{"kalanki", "Kathmandu"},
	{"maharajgunj", "Kathmandu"},
	{"patan", "Lalitpur"},
	{"jawalakhel", "Lalitpur"},
	{"sanepa", "Lalitpur"},
	{"pulchowk", "Lalitpur"},
	{"lakeside", "Pokhara"},
	{"sauraha", "Chitwan"},
}

type priceBound int

const (
	boundMax priceBound = iota
	boundMin
)

// pricePatterns are tried in order; the first match wins.
var pricePatterns = []struct {
	re    *regexp.Regexp
	bound priceBound
}{
	{regexp.MustCompile(`(?i)(?:under|below|less than|max|up to)\s*(?:rs\.?\s*)?(\d+)\s*(k)?`), boundMax},
	{regexp.MustCompile(`(?i)(?:above|over|more than|min|at least)\s*(?:rs\.?\s*)?(\d+)\s*(k)?`), boundMin},
	{regexp.MustCompile(`(?i)(?:budget|price|cost)\s*(?:of|is|around|:)?\s*(?:rs\.?\s*)?(\d+)\s*(k)?`), boundMax},
	{regexp.MustCompile(`(?i)(\d+)\s*(k)?\s*per\s*month`), boundMax},
}

var (
	houseRe     = regexp.MustCompile(`(?i)\b(house|home|bungalow|villa)\b`)
	apartmentRe = regexp.MustCompile(`(?i)\b(flat|apartment|apt)\b`)
	bedroomsRe  = regexp.MustCompile(`(?i)(\d+)\s*(?:bed(?:room)?s?|bhk)`)
	studioRe    = regexp.MustCompile(`(?i)\b(studio|single)\b`)
	durationRe  = regexp.MustCompile(`(?i)(\d+)\s*months?`)
)

// preferencePatterns are tested independently; every matching group adds its tag.
var preferencePatterns = []struct {
	re  *regexp.Regexp
	tag string
}{
	{regexp.MustCompile(`(?i)\b(family|families|kids|children)\b`), model.PrefFamily},
	{regexp.MustCompile(`(?i)\b(students?|college|university)\b`), model.PrefStudents},
	{regexp.MustCompile(`(?i)\b(professionals?|office|working)\b`), model.PrefProfessionals},
	{regexp.MustCompile(`(?i)\b(quiet|peaceful|calm)\b`), model.PrefQuiet},
	{regexp.MustCompile(`(?i)\b(verified|trusted)\b`), model.PrefVerified},
	{regexp.MustCompile(`(?i)\bfurnished\b`), model.PrefFurnished},
}

// validDurations are the only bookable stay lengths; anything else is discarded.
var validDurations = map[int]bool{1: true, 3: true, 6: true, 12: true}

// ParseQuery extracts structured filters from free-text input. It is a total
// function: unmatched fields resolve to nil and it never fails.
func ParseQuery(text string) *model.ParsedQuery {
	parsed := &model.ParsedQuery{Preferences: []string{}}

	text = strings.TrimSpace(text)
	if text == "" {
		return parsed
	}
	lower := strings.ToLower(text)

	parsed.Location = parseLocation(lower)
	parsed.MinPrice, parsed.MaxPrice = parsePrice(lower)
	parsed.Type = parseType(lower)
	parsed.Bedrooms = parseBedrooms(lower)
	parsed.Duration = parseDuration(lower)

	for _, p := range preferencePatterns {
		if p.re.MatchString(lower) {
			parsed.Preferences = append(parsed.Preferences, p.tag)
		}
	}

	return parsed
}

// IsSearchQuery reports whether the parsed query carries at least one
// property filter. Queries without any are treated as conversational.
func IsSearchQuery(q *model.ParsedQuery) bool {
	return q.Location != nil ||
		q.MinPrice != nil ||
		q.MaxPrice != nil ||
		q.Type != nil ||
		q.Bedrooms != nil ||
		len(q.Preferences) > 0
}

func parseLocation(lower string) *string {
	for _, city := range knownCities {
		if strings.Contains(lower, city) {
			loc := titleCase(city)
			return &loc
		}
	}
	for _, n := range neighborhoodCity {
		if strings.Contains(lower, n.token) {
			loc := n.city
			return &loc
		}
	}
	return nil
}

func parsePrice(lower string) (minPrice, maxPrice *float64) {
	for _, p := range pricePatterns {
		m := p.re.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		raw, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		amount := float64(raw)
		// Shorthand amounts: "20k" or bare "18" both mean thousands.
		if m[2] != "" || raw < 100 {
			amount *= 1000
		}
		if p.bound == boundMax {
			return nil, &amount
		}
		return &amount, nil
	}
	return nil, nil
}

func parseType(lower string) *string {
	if houseRe.MatchString(lower) {
		t := model.TypeHouse
		return &t
	}
	if apartmentRe.MatchString(lower) {
		t := model.TypeFlatApartment
		return &t
	}
	return nil
}

func parseBedrooms(lower string) *int {
	if m := bedroomsRe.FindStringSubmatch(lower); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return &n
		}
	}
	if studioRe.MatchString(lower) {
		n := 1
		return &n
	}
	return nil
}

func parseDuration(lower string) *int {
	m := durationRe.FindStringSubmatch(lower)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || !validDurations[n] {
		return nil
	}
	return &n
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
