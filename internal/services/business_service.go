package services

import (
	"context"

	"localdeals/internal/models"
	"localdeals/internal/repositories/interfaces"
	"localdeals/pkg/geocode"
	"localdeals/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BusinessService struct {
	businesses interfaces.BusinessRepository
	promotions interfaces.PromotionRepository
	reviews    interfaces.ReviewRepository
	geocoder   geocode.Geocoder
	logger     *logger.Logger
}

// NewBusinessService accepts a nil geocoder; registration then keeps
// whatever coordinates the caller supplied.
func NewBusinessService(
	businesses interfaces.BusinessRepository,
	promotions interfaces.PromotionRepository,
	reviews interfaces.ReviewRepository,
	geocoder geocode.Geocoder,
	log *logger.Logger,
) *BusinessService {
	return &BusinessService{
		businesses: businesses,
		promotions: promotions,
		reviews:    reviews,
		geocoder:   geocoder,
		logger:     log,
	}
}

type RegisterBusinessInput struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Address     string   `json:"address"`
	City        string   `json:"city"`
	State       string   `json:"state"`
	WhatsApp    string   `json:"whatsapp"`
	Phone       string   `json:"phone"`
	LogoURL     string   `json:"logo_url"`
	Latitude    *float64 `json:"lat"`
	Longitude   *float64 `json:"lng"`
}

func (s *BusinessService) Register(ctx context.Context, input *RegisterBusinessInput) (*models.Business, error) {
	business := &models.Business{
		Name:        input.Name,
		Category:    input.Category,
		Description: input.Description,
		Address:     input.Address,
		City:        input.City,
		State:       input.State,
		WhatsApp:    input.WhatsApp,
		Phone:       input.Phone,
		LogoURL:     input.LogoURL,
		PlanType:    models.PlanTypeFree,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
	}

	if !business.HasCoordinates() && s.geocoder != nil && input.Address != "" {
		address := input.Address
		if input.City != "" {
			address += ", " + input.City
		}
		if input.State != "" {
			address += " - " + input.State
		}

		result, err := s.geocoder.Geocode(ctx, address)
		if err != nil {
			// Geocoding is best effort; the business can fix its pin later.
			s.logger.WithError(err).WithField("address", address).Warn("Geocoding failed during registration")
		} else {
			business.Latitude = &result.Latitude
			business.Longitude = &result.Longitude
		}
	}

	if err := s.businesses.Create(ctx, business); err != nil {
		return nil, err
	}

	s.logger.WithBusinessID(business.ID).Info("Business registered")
	return business, nil
}

func (s *BusinessService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Business, error) {
	return s.businesses.GetByID(ctx, id)
}

func (s *BusinessService) List(ctx context.Context) ([]*models.Business, error) {
	return s.businesses.List(ctx)
}

func (s *BusinessService) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	return s.businesses.Update(ctx, id, updates)
}

// ListReviews returns the reviews left on a business, newest first.
func (s *BusinessService) ListReviews(ctx context.Context, businessID primitive.ObjectID) ([]*models.Review, error) {
	if _, err := s.businesses.GetByID(ctx, businessID); err != nil {
		return nil, err
	}
	return s.reviews.ListByBusiness(ctx, businessID)
}

func (s *BusinessService) Verify(ctx context.Context, id primitive.ObjectID) error {
	if err := s.businesses.SetVerified(ctx, id, true); err != nil {
		return err
	}
	s.logger.WithBusinessID(id).Info("Business verified")
	return nil
}

// Delete removes the business together with all of its promotions and
// reviews so no orphaned records linger.
func (s *BusinessService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.businesses.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.promotions.DeleteByBusiness(ctx, id); err != nil {
		return err
	}
	if err := s.reviews.DeleteByBusiness(ctx, id); err != nil {
		return err
	}
	if err := s.businesses.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.WithBusinessID(id).Info("Business deleted")
	return nil
}
