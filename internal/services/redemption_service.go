package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"localdeals/internal/models"
	"localdeals/internal/repositories/interfaces"
	"localdeals/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	msgCodeNotFound     = "Código inválido ou oferta não encontrada."
	msgExpired          = "Oferta expirada em %s"
	msgExpiredNoDate    = "Oferta expirada."
	msgOutOfStock       = "Estoque esgotado para esta oferta."
	msgRedeemed         = "Oferta validada com sucesso!"
	msgRedeemedLastUnit = "Validado! Atenção: Estoque acabou."

	expiryDateLayout = "02/01/2006"
)

// RedemptionService validates scanned codes at the point of sale.
type RedemptionService struct {
	promotions interfaces.PromotionRepository
	logger     *logger.Logger
	// now is swappable for tests.
	now func() time.Time
}

func NewRedemptionService(promotions interfaces.PromotionRepository, log *logger.Logger) *RedemptionService {
	return &RedemptionService{
		promotions: promotions,
		logger:     log,
		now:        time.Now,
	}
}

// Redeem consumes one unit for the promotion behind the scanned code. The
// repository handles the atomic mutation; this layer normalizes the input,
// classifies failures into POS-facing messages and records the outcome.
// Failures never mutate the promotion.
func (s *RedemptionService) Redeem(ctx context.Context, rawCode string) (*models.RedemptionResult, error) {
	code := models.NormalizeCode(rawCode)
	now := s.now()

	promotion, err := s.promotions.Redeem(ctx, code, now)
	if err == nil {
		finalUnit := promotion.IsLimited() && promotion.StockCount == 0
		message := msgRedeemed
		if finalUnit {
			message = msgRedeemedLastUnit
		}
		s.logger.LogRedemption(promotion.ID, code, true, "")
		return &models.RedemptionResult{
			Success:   true,
			Message:   message,
			Promotion: promotion,
			FinalUnit: finalUnit,
		}, nil
	}

	switch {
	case errors.Is(err, models.ErrCodeNotFound):
		s.logger.LogRedemption(primitive.NilObjectID, code, false, string(models.RedemptionFailureNotFound))
		return &models.RedemptionResult{
			Success: false,
			Failure: models.RedemptionFailureNotFound,
			Message: msgCodeNotFound,
		}, nil

	case errors.Is(err, models.ErrPromotionExpired):
		// The expiry date comes from a follow-up read; if it fails the
		// message stays a generic expired one, matching the failure kind.
		message := msgExpiredNoDate
		promotionID := primitive.NilObjectID
		if promotion, lookupErr := s.promotions.GetByCode(ctx, code); lookupErr == nil {
			message = fmt.Sprintf(msgExpired, promotion.ValidUntil.Format(expiryDateLayout))
			promotionID = promotion.ID
		}
		s.logger.LogRedemption(promotionID, code, false, string(models.RedemptionFailureExpired))
		return &models.RedemptionResult{
			Success: false,
			Failure: models.RedemptionFailureExpired,
			Message: message,
		}, nil

	case errors.Is(err, models.ErrOutOfStock):
		if promotion, lookupErr := s.promotions.GetByCode(ctx, code); lookupErr == nil {
			s.logger.LogRedemption(promotion.ID, code, false, string(models.RedemptionFailureOutOfStock))
		}
		return &models.RedemptionResult{
			Success: false,
			Failure: models.RedemptionFailureOutOfStock,
			Message: msgOutOfStock,
		}, nil
	}

	return nil, err
}
