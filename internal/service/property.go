package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/khapung280/RENTNEST-sub000/internal/model"
)

// PropertyService handles listing lifecycle: owners create and maintain
// listings, admins moderate them, renters browse approved active ones.
type PropertyService struct {
	store           PropertyStore
	defaultDuration int
	logger          *zap.Logger
}

// NewPropertyService creates a new property service
func NewPropertyService(store PropertyStore, defaultDuration int, logger *zap.Logger) *PropertyService {
	return &PropertyService{
		store:           store,
		defaultDuration: defaultDuration,
		logger:          logger,
	}
}

// Create registers a new listing for moderation
func (s *PropertyService) Create(ctx context.Context, ownerID int64, req *model.CreatePropertyRequest) (*model.Property, error) {
	property := &model.Property{
		OwnerID:   ownerID,
		Title:     req.Title,
		Location:  req.Location,
		Type:      req.Type,
		Price:     req.Price,
		Bedrooms:  req.Bedrooms,
		Bathrooms: req.Bathrooms,
		AreaSqft:  req.AreaSqft,
		Amenities: req.Amenities,
		IsActive:  true,
		Status:    model.PropertyStatusPending,
	}
	if req.Description != "" {
		property.Description = &req.Description
	}
	if req.Address != "" {
		property.Address = &req.Address
	}

	if err := s.store.Create(ctx, property); err != nil {
		return nil, err
	}

	s.logger.Info("property created",
		zap.Int64("property_id", property.ID),
		zap.Int64("owner_id", ownerID))
	return property, nil
}

// Update applies owner edits to a listing
func (s *PropertyService) Update(ctx context.Context, ownerID, propertyID int64, req *model.UpdatePropertyRequest) (*model.Property, error) {
	property, err := s.store.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, model.ErrPropertyNotFound
	}
	if property.OwnerID != ownerID {
		return nil, model.ErrNotPropertyOwner
	}

	if req.Title != nil {
		property.Title = *req.Title
	}
	if req.Description != nil {
		property.Description = req.Description
	}
	if req.Location != nil {
		property.Location = *req.Location
	}
	if req.Address != nil {
		property.Address = req.Address
	}
	if req.Type != nil {
		property.Type = *req.Type
	}
	if req.Price != nil {
		property.Price = *req.Price
	}
	if req.Bedrooms != nil {
		property.Bedrooms = *req.Bedrooms
	}
	if req.Bathrooms != nil {
		property.Bathrooms = *req.Bathrooms
	}
	if req.AreaSqft != nil {
		property.AreaSqft = *req.AreaSqft
	}
	if req.Amenities != nil {
		property.Amenities = req.Amenities
	}
	if req.IsActive != nil {
		property.IsActive = *req.IsActive
	}

	if err := s.store.Update(ctx, property); err != nil {
		return nil, err
	}
	return property, nil
}

// Get returns a single scored listing
func (s *PropertyService) Get(ctx context.Context, propertyID int64) (*model.ScoredProperty, error) {
	property, err := s.store.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, model.ErrPropertyNotFound
	}
	scored := ScoreProperty(*property, s.defaultDuration)
	return &scored, nil
}

// Similar returns listings closest to the given one by feature distance
func (s *PropertyService) Similar(ctx context.Context, propertyID int64, limit int) ([]model.ScoredProperty, error) {
	properties, err := s.store.FindSimilar(ctx, propertyID, limit)
	if err != nil {
		return nil, err
	}

	results := make([]model.ScoredProperty, 0, len(properties))
	for _, p := range properties {
		results = append(results, ScoreProperty(p, s.defaultDuration))
	}
	return results, nil
}

// ListByOwner returns all of the owner's listings regardless of status
func (s *PropertyService) ListByOwner(ctx context.Context, ownerID int64) ([]model.Property, error) {
	return s.store.ListByOwner(ctx, ownerID)
}

// ListPending returns listings awaiting admin moderation
func (s *PropertyService) ListPending(ctx context.Context, limit int) ([]model.Property, error) {
	return s.store.ListByStatus(ctx, model.PropertyStatusPending, limit)
}

// Moderate approves or rejects a pending listing
func (s *PropertyService) Moderate(ctx context.Context, propertyID int64, approve bool) error {
	property, err := s.store.GetByID(ctx, propertyID)
	if err != nil {
		return err
	}
	if property == nil {
		return model.ErrPropertyNotFound
	}

	status := model.PropertyStatusRejected
	if approve {
		status = model.PropertyStatusApproved
	}
	if err := s.store.SetStatus(ctx, propertyID, status); err != nil {
		return err
	}

	s.logger.Info("property moderated",
		zap.Int64("property_id", propertyID),
		zap.String("status", status))
	return nil
}

// SetVerified marks a listing's verification flag
func (s *PropertyService) SetVerified(ctx context.Context, propertyID int64, verified bool) error {
	property, err := s.store.GetByID(ctx, propertyID)
	if err != nil {
		return err
	}
	if property == nil {
		return model.ErrPropertyNotFound
	}
	return s.store.SetVerified(ctx, propertyID, verified)
}
