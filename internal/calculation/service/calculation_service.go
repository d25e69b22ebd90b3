package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tariffsheriff/tariffsheriff/internal/calculation/model"
	tariffmodel "github.com/tariffsheriff/tariffsheriff/internal/tariff/model"
	tariffservice "github.com/tariffsheriff/tariffsheriff/internal/tariff/service"
	"github.com/tariffsheriff/tariffsheriff/utils"
)

// DutyCalculator computes a duty result for a calculation request.
type DutyCalculator interface {
	Calculate(ctx context.Context, req *tariffmodel.CalculationRequest) (*tariffmodel.CalculationResult, error)
}

// CalculationService persists user-scoped duty calculations. Results are
// recomputed server-side before saving; client figures are kept only as an
// audit trail.
type CalculationService struct {
	db         *gorm.DB
	calculator DutyCalculator
}

// NewCalculationService creates a new CalculationService instance
func NewCalculationService(db *gorm.DB, calculator DutyCalculator) *CalculationService {
	return &CalculationService{db: db, calculator: calculator}
}

// SaveForUser recomputes the duty for the request input and persists the
// calculation under the given user.
func (s *CalculationService) SaveForUser(ctx context.Context, userID string, req *model.SaveCalculationRequest) (*model.SavedCalculation, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID cannot be empty")
	}
	if req == nil || req.Input == nil {
		return nil, tariffservice.ErrInvalidInput
	}

	result, err := s.calculator.Calculate(ctx, req.Input)
	if err != nil {
		return nil, err
	}

	input := req.Input
	calc := &model.SavedCalculation{
		UserID:         userID,
		Name:           req.Name,
		Notes:          req.Notes,
		HsCode:         input.HsCode,
		ImporterIso3:   input.ImporterIso3,
		OriginIso3:     input.OriginIso3,
		Quantity:       input.Quantity,
		TotalValue:     nullDecimal(input.TotalValue),
		MaterialCost:   nullDecimal(input.MaterialCost),
		LabourCost:     nullDecimal(input.LabourCost),
		OverheadCost:   nullDecimal(input.OverheadCost),
		Profit:         nullDecimal(input.Profit),
		OtherCosts:     nullDecimal(input.OtherCosts),
		Fob:            nullDecimal(input.Fob),
		NonOriginValue: nullDecimal(input.NonOriginValue),
		RvcThreshold:   nullDecimal(result.RvcThreshold),
		AgreementID:    input.AgreementID,

		Basis:       result.Basis,
		AppliedRate: decimal.NewNullDecimal(result.AppliedRate),
		TotalDuty:   decimal.NewNullDecimal(result.TotalDuty),
		RvcComputed: decimal.NewNullDecimal(result.Rvc),
	}

	if req.Submitted != nil {
		calc.SubmittedBasis = req.Submitted.Basis
		calc.SubmittedRate = nullDecimal(req.Submitted.AppliedRate)
		calc.SubmittedDuty = nullDecimal(req.Submitted.TotalDuty)
		calc.SubmittedRvc = nullDecimal(req.Submitted.Rvc)

		if req.Submitted.TotalDuty != nil && !req.Submitted.TotalDuty.Equal(result.TotalDuty) {
			slog.InfoContext(ctx, "client-submitted duty differs from server result",
				"user_id", userID,
				"submitted_duty", *req.Submitted.TotalDuty,
				"computed_duty", result.TotalDuty,
			)
		}
	}

	if err := s.db.WithContext(ctx).Create(calc).Error; err != nil {
		return nil, fmt.Errorf("failed to save calculation: %w", err)
	}
	return calc, nil
}

// ListForUser returns the user's saved calculations, newest first.
func (s *CalculationService) ListForUser(ctx context.Context, userID string, offset, limit *int) (*model.SavedCalculationListResult, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID cannot be empty")
	}

	finalOffset, finalLimit := utils.GetPaginationParams(offset, limit)
	query := s.db.WithContext(ctx).Model(&model.SavedCalculation{}).Where("user_id = ?", userID)

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count calculations: %w", err)
	}

	var calculations []model.SavedCalculation
	if err := query.Order("created_at DESC").Offset(finalOffset).Limit(finalLimit).Find(&calculations).Error; err != nil {
		return nil, fmt.Errorf("failed to list calculations: %w", err)
	}

	return &model.SavedCalculationListResult{
		TotalCount:   totalCount,
		Calculations: calculations,
		Offset:       finalOffset,
		Limit:        finalLimit,
	}, nil
}

// GetForUser returns one saved calculation, scoped to its owner.
func (s *CalculationService) GetForUser(ctx context.Context, userID string, id uuid.UUID) (*model.SavedCalculation, error) {
	var calc model.SavedCalculation
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&calc).Error
	if err != nil {
		return nil, err
	}
	return &calc, nil
}

// DeleteForUser removes one saved calculation, scoped to its owner.
// Returns true when a row was deleted.
func (s *CalculationService) DeleteForUser(ctx context.Context, userID string, id uuid.UUID) (bool, error) {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.SavedCalculation{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete calculation %s: %w", id, result.Error)
	}
	return result.RowsAffected > 0, nil
}

func nullDecimal(value *decimal.Decimal) decimal.NullDecimal {
	if value == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*value)
}
