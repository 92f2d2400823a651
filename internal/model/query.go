package model

// Preference tags extracted from free-text queries
const (
	PrefFamily        = "family"
	PrefStudents      = "students"
	PrefProfessionals = "professionals"
	PrefQuiet         = "quiet"
	PrefVerified      = "verified"
	PrefFurnished     = "furnished"
)

// ParsedQuery represents structured filters extracted from a natural language query.
// Unmatched fields stay nil; the parser never fails.
type ParsedQuery struct {
	Location    *string  `json:"location,omitempty"`
	MinPrice    *float64 `json:"min_price,omitempty"`
	MaxPrice    *float64 `json:"max_price,omitempty"`
	Type        *string  `json:"type,omitempty"`
	Bedrooms    *int     `json:"bedrooms,omitempty"`
	Duration    *int     `json:"duration,omitempty"`
	Preferences []string `json:"preferences,omitempty"`
}

// HasPreference reports whether the given tag was extracted from the query
func (q *ParsedQuery) HasPreference(tag string) bool {
	for _, p := range q.Preferences {
		if p == tag {
			return true
		}
	}
	return false
}

// SearchRequest represents a search query request
type SearchRequest struct {
	Query   string         `json:"query"`
	Filters *SearchFilters `json:"filters,omitempty"`
}

// SearchFilters represents explicit structured search filters
type SearchFilters struct {
	Location *string  `json:"location,omitempty"`
	MinPrice *float64 `json:"min_price,omitempty"`
	MaxPrice *float64 `json:"max_price,omitempty"`
	Type     *string  `json:"type,omitempty"`
	Bedrooms *int     `json:"bedrooms,omitempty"`
	Duration *int     `json:"duration,omitempty"`
	Verified *bool    `json:"verified,omitempty"`
}

// SearchResponse represents a search result response
type SearchResponse struct {
	Results []ScoredProperty `json:"results"`
	Total   int              `json:"total"`
	Parsed  *ParsedQuery     `json:"parsed,omitempty"`
	Took    int64            `json:"took_ms"`
}
