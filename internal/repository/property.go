package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pgvector/pgvector-go"

	"github.com/khapung280/RENTNEST-sub000/internal/model"
)

// PropertyRepository handles property persistence
type PropertyRepository struct {
	db *sqlx.DB
}

// NewPropertyRepository creates a new property repository
func NewPropertyRepository(db *sqlx.DB) *PropertyRepository {
	return &PropertyRepository{db: db}
}

const propertyColumns = `
	id, owner_id, title, description, location, address, type, price,
	bedrooms, bathrooms, area_sqft, amenities, verified, is_active, status,
	created_at, updated_at
`

// Create inserts a new property listing
func (r *PropertyRepository) Create(ctx context.Context, p *model.Property) error {
	query := `
		INSERT INTO properties (
			owner_id, title, description, location, address, type, price,
			bedrooms, bathrooms, area_sqft, amenities, verified, is_active, status, features
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		p.OwnerID, p.Title, p.Description, p.Location, p.Address, p.Type, p.Price,
		p.Bedrooms, p.Bathrooms, p.AreaSqft, p.Amenities, p.Verified, p.IsActive, p.Status,
		featureVector(p),
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create property: %w", err)
	}
	return nil
}

// Update rewrites a property listing and refreshes its feature vector
func (r *PropertyRepository) Update(ctx context.Context, p *model.Property) error {
	query := `
		UPDATE properties SET
			title = $1, description = $2, location = $3, address = $4, type = $5,
			price = $6, bedrooms = $7, bathrooms = $8, area_sqft = $9, amenities = $10,
			is_active = $11, features = $12, updated_at = NOW()
		WHERE id = $13
	`
	_, err := r.db.ExecContext(ctx, query,
		p.Title, p.Description, p.Location, p.Address, p.Type,
		p.Price, p.Bedrooms, p.Bathrooms, p.AreaSqft, p.Amenities,
		p.IsActive, featureVector(p), p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update property: %w", err)
	}
	return nil
}

// GetByID retrieves a single property by its id
func (r *PropertyRepository) GetByID(ctx context.Context, id int64) (*model.Property, error) {
	var property model.Property
	query := fmt.Sprintf(`SELECT %s FROM properties WHERE id = $1`, propertyColumns)
	err := r.db.GetContext(ctx, &property, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get property: %w", err)
	}
	return &property, nil
}

// Search performs a filtered search over live listings, newest first
func (r *PropertyRepository) Search(ctx context.Context, f *model.SearchFilters, limit int) ([]model.Property, error) {
	whereClauses := []string{"status = 'approved'", "is_active = true"}
	args := []interface{}{}
	argIndex := 1

	if f != nil {
		if f.Location != nil {
			whereClauses = append(whereClauses, fmt.Sprintf("location ILIKE $%d", argIndex))
			args = append(args, "%"+*f.Location+"%")
			argIndex++
		}
		if f.MinPrice != nil {
			whereClauses = append(whereClauses, fmt.Sprintf("price >= $%d", argIndex))
			args = append(args, *f.MinPrice)
			argIndex++
		}
		if f.MaxPrice != nil {
			whereClauses = append(whereClauses, fmt.Sprintf("price <= $%d", argIndex))
			args = append(args, *f.MaxPrice)
			argIndex++
		}
		if f.Type != nil {
			whereClauses = append(whereClauses, fmt.Sprintf("type = $%d", argIndex))
			args = append(args, *f.Type)
			argIndex++
		}
		if f.Bedrooms != nil {
			whereClauses = append(whereClauses, fmt.Sprintf("bedrooms >= $%d", argIndex))
			args = append(args, *f.Bedrooms)
			argIndex++
		}
		if f.Verified != nil {
			whereClauses = append(whereClauses, fmt.Sprintf("verified = $%d", argIndex))
			args = append(args, *f.Verified)
			argIndex++
		}
	}

	query := fmt.Sprintf(`
		SELECT %s FROM properties
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d
	`, propertyColumns, strings.Join(whereClauses, " AND "), argIndex)
	args = append(args, limit)

	var properties []model.Property
	if err := r.db.SelectContext(ctx, &properties, query, args...); err != nil {
		return nil, fmt.Errorf("failed to search properties: %w", err)
	}
	return properties, nil
}

// CountLive counts approved, active listings
func (r *PropertyRepository) CountLive(ctx context.Context) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM properties WHERE status = 'approved' AND is_active = true`
	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("failed to count properties: %w", err)
	}
	return count, nil
}

// ListByOwner returns all listings belonging to the owner
func (r *PropertyRepository) ListByOwner(ctx context.Context, ownerID int64) ([]model.Property, error) {
	var properties []model.Property
	query := fmt.Sprintf(`SELECT %s FROM properties WHERE owner_id = $1 ORDER BY created_at DESC`, propertyColumns)
	if err := r.db.SelectContext(ctx, &properties, query, ownerID); err != nil {
		return nil, fmt.Errorf("failed to list properties by owner: %w", err)
	}
	return properties, nil
}

// ListByStatus returns listings with the given moderation status
func (r *PropertyRepository) ListByStatus(ctx context.Context, status string, limit int) ([]model.Property, error) {
	var properties []model.Property
	query := fmt.Sprintf(`SELECT %s FROM properties WHERE status = $1 ORDER BY created_at ASC LIMIT $2`, propertyColumns)
	if err := r.db.SelectContext(ctx, &properties, query, status, limit); err != nil {
		return nil, fmt.Errorf("failed to list properties by status: %w", err)
	}
	return properties, nil
}

// SetStatus updates a listing's moderation status
func (r *PropertyRepository) SetStatus(ctx context.Context, id int64, status string) error {
	query := `UPDATE properties SET status = $1, updated_at = NOW() WHERE id = $2`
	if _, err := r.db.ExecContext(ctx, query, status, id); err != nil {
		return fmt.Errorf("failed to set property status: %w", err)
	}
	return nil
}

// SetVerified updates a listing's verification flag. The flag feeds the
// feature vector, so it is recomputed from the full row.
func (r *PropertyRepository) SetVerified(ctx context.Context, id int64, verified bool) error {
	property, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if property == nil {
		return model.ErrPropertyNotFound
	}
	property.Verified = verified

	query := `UPDATE properties SET verified = $1, features = $2, updated_at = NOW() WHERE id = $3`
	if _, err := r.db.ExecContext(ctx, query, verified, featureVector(property), id); err != nil {
		return fmt.Errorf("failed to set property verified: %w", err)
	}
	return nil
}

// FindSimilar ranks live listings by feature-vector distance to the given one
func (r *PropertyRepository) FindSimilar(ctx context.Context, id int64, limit int) ([]model.Property, error) {
	var properties []model.Property
	query := fmt.Sprintf(`
		SELECT %s FROM properties
		WHERE id <> $1 AND status = 'approved' AND is_active = true
		ORDER BY features <-> (SELECT features FROM properties WHERE id = $1)
		LIMIT $2
	`, propertyColumns)
	if err := r.db.SelectContext(ctx, &properties, query, id, limit); err != nil {
		return nil, fmt.Errorf("failed to find similar properties: %w", err)
	}
	return properties, nil
}

// featureVector derives the similarity embedding from listing attributes.
// Dimensions are scaled to comparable ranges so no single attribute dominates
// the L2 distance.
func featureVector(p *model.Property) pgvector.Vector {
	verified := float32(0)
	if p.Verified {
		verified = 1
	}
	return pgvector.NewVector([]float32{
		float32(p.Price) / 100000,
		float32(p.Bedrooms) / 10,
		float32(p.Bathrooms) / 5,
		float32(p.AreaSqft) / 5000,
		verified,
	})
}
