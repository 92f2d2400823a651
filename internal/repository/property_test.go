package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khapung280/RENTNEST-sub000/internal/model"
)

func propertyRows(ids ...int64) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "owner_id", "title", "description", "location", "address", "type", "price",
		"bedrooms", "bathrooms", "area_sqft", "amenities", "verified", "is_active", "status",
		"created_at", "updated_at",
	})
	now := time.Now()
	for _, id := range ids {
		rows.AddRow(id, int64(10), "Listing", nil, "Kathmandu", nil, model.TypeFlatApartment, 15000.0,
			2, 1, 900.0, nil, true, true, model.PropertyStatusApproved, now, now)
	}
	return rows
}

func TestPropertyRepository_Search_BaseFilters(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPropertyRepository(db)

	// With no filters only the live-listing conditions apply.
	mock.ExpectQuery(`WHERE status = 'approved' AND is_active = true\s+ORDER BY created_at DESC\s+LIMIT \$1`).
		WithArgs(20).
		WillReturnRows(propertyRows(1, 2))

	properties, err := repo.Search(context.Background(), nil, 20)
	require.NoError(t, err)
	assert.Len(t, properties, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertyRepository_Search_AllFilters(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPropertyRepository(db)

	location := "Kathmandu"
	minPrice := 5000.0
	maxPrice := 20000.0
	ptype := model.TypeFlatApartment
	bedrooms := 2
	verified := true

	mock.ExpectQuery(`location ILIKE \$1 AND price >= \$2 AND price <= \$3 AND type = \$4 AND bedrooms >= \$5 AND verified = \$6`).
		WithArgs("%Kathmandu%", minPrice, maxPrice, ptype, bedrooms, verified, 20).
		WillReturnRows(propertyRows(1))

	filters := &model.SearchFilters{
		Location: &location,
		MinPrice: &minPrice,
		MaxPrice: &maxPrice,
		Type:     &ptype,
		Bedrooms: &bedrooms,
		Verified: &verified,
	}
	properties, err := repo.Search(context.Background(), filters, 20)
	require.NoError(t, err)
	assert.Len(t, properties, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertyRepository_GetByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPropertyRepository(db)

	mock.ExpectQuery(`FROM properties\s+WHERE id = \$1`).
		WithArgs(int64(42)).
		WillReturnRows(propertyRows())

	property, err := repo.GetByID(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, property)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertyRepository_CountLive(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPropertyRepository(db)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM properties WHERE status = 'approved' AND is_active = true`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

	count, err := repo.CountLive(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertyRepository_FindSimilar(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPropertyRepository(db)

	mock.ExpectQuery(`ORDER BY features <-> \(SELECT features FROM properties WHERE id = \$1\)`).
		WithArgs(int64(1), 5).
		WillReturnRows(propertyRows(2, 3))

	properties, err := repo.FindSimilar(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.Len(t, properties, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFeatureVector(t *testing.T) {
	p := &model.Property{Price: 20000, Bedrooms: 2, Bathrooms: 1, AreaSqft: 1000, Verified: true}
	vec := featureVector(p)

	slice := vec.Slice()
	require.Len(t, slice, 5)
	assert.InDelta(t, 0.2, slice[0], 0.0001)
	assert.InDelta(t, 0.2, slice[1], 0.0001)
	assert.InDelta(t, 0.2, slice[2], 0.0001)
	assert.InDelta(t, 0.2, slice[3], 0.0001)
	assert.InDelta(t, 1.0, slice[4], 0.0001)

	p.Verified = false
	assert.InDelta(t, 0.0, featureVector(p).Slice()[4], 0.0001)
}
