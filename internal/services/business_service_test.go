package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"localdeals/internal/models"
	"localdeals/internal/repositories/memory"
	"localdeals/pkg/geocode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeGeocoder struct {
	result *geocode.Result
	err    error
	calls  int
}

func (f *fakeGeocoder) Geocode(ctx context.Context, address string) (*geocode.Result, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func TestRegisterBusinessGeocodesAddress(t *testing.T) {
	businesses := memory.NewBusinessRepository()
	promotions := memory.NewPromotionRepository()
	geocoder := &fakeGeocoder{result: &geocode.Result{Latitude: -23.5505, Longitude: -46.6333}}
	svc := NewBusinessService(businesses, promotions, memory.NewReviewRepository(), geocoder, testLogger(t))

	business, err := svc.Register(context.Background(), &RegisterBusinessInput{
		Name:     "Hortifruti São José",
		Category: "hortifruti",
		Address:  "Rua das Flores, 100",
		City:     "São Paulo",
		State:    "SP",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, geocoder.calls)
	require.True(t, business.HasCoordinates())
	assert.Equal(t, -23.5505, *business.Latitude)
	assert.False(t, business.Verified)
	assert.Equal(t, models.PlanTypeFree, business.PlanType)
}

func TestRegisterBusinessKeepsSuppliedCoordinates(t *testing.T) {
	businesses := memory.NewBusinessRepository()
	promotions := memory.NewPromotionRepository()
	geocoder := &fakeGeocoder{result: &geocode.Result{Latitude: 0, Longitude: 0}}
	svc := NewBusinessService(businesses, promotions, memory.NewReviewRepository(), geocoder, testLogger(t))

	lat, lng := -22.9068, -43.1729
	business, err := svc.Register(context.Background(), &RegisterBusinessInput{
		Name:      "Mercadinho Carioca",
		Category:  "mercearia",
		Address:   "Av. Atlântica, 500",
		Latitude:  &lat,
		Longitude: &lng,
	})
	require.NoError(t, err)
	assert.Zero(t, geocoder.calls)
	assert.Equal(t, lat, *business.Latitude)
}

func TestRegisterBusinessSurvivesGeocodingFailure(t *testing.T) {
	businesses := memory.NewBusinessRepository()
	promotions := memory.NewPromotionRepository()
	geocoder := &fakeGeocoder{err: errors.New("quota exceeded")}
	svc := NewBusinessService(businesses, promotions, memory.NewReviewRepository(), geocoder, testLogger(t))

	business, err := svc.Register(context.Background(), &RegisterBusinessInput{
		Name:     "Padaria Pão Quente",
		Category: "padaria",
		Address:  "Rua do Trigo, 7",
	})
	require.NoError(t, err)
	assert.False(t, business.HasCoordinates())
}

func TestRegisterBusinessWithoutGeocoder(t *testing.T) {
	businesses := memory.NewBusinessRepository()
	promotions := memory.NewPromotionRepository()
	svc := NewBusinessService(businesses, promotions, memory.NewReviewRepository(), nil, testLogger(t))

	business, err := svc.Register(context.Background(), &RegisterBusinessInput{
		Name:     "Farmácia Central",
		Category: "farmacia",
		Address:  "Praça Matriz, 12",
	})
	require.NoError(t, err)
	assert.False(t, business.HasCoordinates())
}

func TestDeleteBusinessCascadesPromotionsAndReviews(t *testing.T) {
	businesses := memory.NewBusinessRepository()
	promotions := memory.NewPromotionRepository()
	reviews := memory.NewReviewRepository()
	svc := NewBusinessService(businesses, promotions, reviews, nil, testLogger(t))
	ctx := context.Background()

	business, err := svc.Register(ctx, &RegisterBusinessInput{
		Name:     "Açougue Bom Corte",
		Category: "acougue",
	})
	require.NoError(t, err)

	seedPromotion(t, promotions, func(p *models.Promotion) {
		p.BusinessID = business.ID
	})
	require.NoError(t, reviews.Create(ctx, &models.Review{
		BusinessID: business.ID,
		UserID:     primitive.NewObjectID(),
		UserName:   "Carlos",
		Rating:     5,
		Comment:    "Carne sempre fresca.",
	}))

	require.NoError(t, svc.Delete(ctx, business.ID))

	_, err = svc.GetByID(ctx, business.ID)
	assert.ErrorIs(t, err, models.ErrBusinessNotFound)

	orphans, err := promotions.ListByBusiness(ctx, business.ID)
	require.NoError(t, err)
	assert.Empty(t, orphans)

	left, err := reviews.ListByBusiness(ctx, business.ID)
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestListReviewsNewestFirst(t *testing.T) {
	businesses := memory.NewBusinessRepository()
	reviews := memory.NewReviewRepository()
	svc := NewBusinessService(businesses, memory.NewPromotionRepository(), reviews, nil, testLogger(t))
	ctx := context.Background()

	business, err := svc.Register(ctx, &RegisterBusinessInput{
		Name:     "Hortifruti da Esquina",
		Category: "hortifruti",
	})
	require.NoError(t, err)

	older := &models.Review{
		BusinessID: business.ID,
		UserID:     primitive.NewObjectID(),
		UserName:   "Ana",
		Rating:     4,
		Comment:    "Bom atendimento.",
		CreatedAt:  time.Now().Add(-48 * time.Hour),
	}
	newer := &models.Review{
		BusinessID: business.ID,
		UserID:     primitive.NewObjectID(),
		UserName:   "Bruno",
		Rating:     5,
		Comment:    "Preços ótimos!",
		CreatedAt:  time.Now().Add(-time.Hour),
	}
	require.NoError(t, reviews.Create(ctx, older))
	require.NoError(t, reviews.Create(ctx, newer))

	listed, err := svc.ListReviews(ctx, business.ID)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "Bruno", listed[0].UserName)
	assert.Equal(t, "Ana", listed[1].UserName)
}

func TestListReviewsUnknownBusiness(t *testing.T) {
	svc := NewBusinessService(
		memory.NewBusinessRepository(),
		memory.NewPromotionRepository(),
		memory.NewReviewRepository(),
		nil,
		testLogger(t),
	)

	_, err := svc.ListReviews(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, models.ErrBusinessNotFound)
}
