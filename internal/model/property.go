package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/pgvector/pgvector-go"
)

// Property type values
const (
	TypeHouse         = "house"
	TypeFlatApartment = "flat_apartment"
)

// Property listing status values
const (
	PropertyStatusPending  = "pending"
	PropertyStatusApproved = "approved"
	PropertyStatusRejected = "rejected"
)

// Property represents a rental property listing
type Property struct {
	ID          int64           `json:"id" db:"id"`
	OwnerID     int64           `json:"owner_id" db:"owner_id"`
	Title       string          `json:"title" db:"title"`
	Description *string         `json:"description,omitempty" db:"description"`
	Location    string          `json:"location" db:"location"`
	Address     *string         `json:"address,omitempty" db:"address"`
	Type        string          `json:"type" db:"type"`
	Price       float64         `json:"price" db:"price"`
	Bedrooms    int             `json:"bedrooms" db:"bedrooms"`
	Bathrooms   int             `json:"bathrooms" db:"bathrooms"`
	AreaSqft    float64         `json:"area_sqft" db:"area_sqft"`
	Amenities   JSONArray       `json:"amenities,omitempty" db:"amenities"`
	Verified    bool            `json:"verified" db:"verified"`
	IsActive    bool            `json:"is_active" db:"is_active"`
	Status      string          `json:"status" db:"status"`
	Features    pgvector.Vector `json:"-" db:"features"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

// FairFlexSavings is the tiered long-stay discount breakdown for a chosen duration
type FairFlexSavings struct {
	Eligible        bool    `json:"eligible"`
	DurationMonths  int     `json:"duration_months"`
	DiscountPercent int     `json:"discount_percent"`
	MonthlyPrice    float64 `json:"monthly_price"`
	DiscountedPrice float64 `json:"discounted_price"`
	MonthlySavings  float64 `json:"monthly_savings"`
	TotalSavings    float64 `json:"total_savings"`
}

// ScoredProperty is a property decorated with derived recommendation fields.
// The derived fields are recomputed on every read and never persisted.
type ScoredProperty struct {
	Property
	ConfidenceScore int              `json:"confidence_score"`
	BestFor         string           `json:"best_for"`
	FairFlex        *FairFlexSavings `json:"fair_flex,omitempty"`
}

// CreatePropertyRequest is the owner-facing listing creation payload
type CreatePropertyRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Location    string   `json:"location" binding:"required"`
	Address     string   `json:"address"`
	Type        string   `json:"type" binding:"required,oneof=house flat_apartment"`
	Price       float64  `json:"price" binding:"required,gt=0"`
	Bedrooms    int      `json:"bedrooms" binding:"required,min=1"`
	Bathrooms   int      `json:"bathrooms" binding:"required,min=1"`
	AreaSqft    float64  `json:"area_sqft" binding:"required,gt=0"`
	Amenities   []string `json:"amenities"`
}

// UpdatePropertyRequest carries partial updates to an existing listing
type UpdatePropertyRequest struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Location    *string  `json:"location,omitempty"`
	Address     *string  `json:"address,omitempty"`
	Type        *string  `json:"type,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Bedrooms    *int     `json:"bedrooms,omitempty"`
	Bathrooms   *int     `json:"bathrooms,omitempty"`
	AreaSqft    *float64 `json:"area_sqft,omitempty"`
	Amenities   []string `json:"amenities,omitempty"`
	IsActive    *bool    `json:"is_active,omitempty"`
}

// JSONArray represents a JSON array field
type JSONArray []string

// Value implements driver.Valuer interface
func (j JSONArray) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner interface
func (j *JSONArray) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return json.Unmarshal([]byte(value.(string)), j)
	}
	return json.Unmarshal(bytes, j)
}

// JSONInt64Array represents a JSON array of numeric ids
type JSONInt64Array []int64

// Value implements driver.Valuer interface
func (j JSONInt64Array) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner interface
func (j *JSONInt64Array) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return json.Unmarshal([]byte(value.(string)), j)
	}
	return json.Unmarshal(bytes, j)
}
