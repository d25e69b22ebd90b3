package service

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/tariffsheriff/tariffsheriff/internal/tariff/model"
	"github.com/tariffsheriff/tariffsheriff/utils"
)

// AgreementService provides business logic for trade agreement reference data.
type AgreementService struct {
	db *gorm.DB
}

// NewAgreementService creates a new AgreementService instance
func NewAgreementService(db *gorm.DB) *AgreementService {
	return &AgreementService{db: db}
}

// ListAgreements returns agreements with pagination, optionally restricted
// to agreements a given country (ISO-3) is party to.
func (s *AgreementService) ListAgreements(ctx context.Context, countryIso3 string, offset, limit *int) ([]model.Agreement, error) {
	finalOffset, finalLimit := utils.GetPaginationParams(offset, limit)

	query := s.db.WithContext(ctx).Model(&model.Agreement{})
	if countryIso3 != "" {
		code := strings.ToUpper(strings.TrimSpace(countryIso3))
		query = query.
			Joins("JOIN agreement_parties ON agreement_parties.agreement_id = agreements.id").
			Joins("JOIN countries ON countries.id = agreement_parties.country_id").
			Where("countries.iso3 = ?", code)
	}

	var agreements []model.Agreement
	if err := query.Order("agreements.id").Offset(finalOffset).Limit(finalLimit).Find(&agreements).Error; err != nil {
		return nil, fmt.Errorf("failed to list agreements: %w", err)
	}
	return agreements, nil
}

// GetAgreementByID returns a single agreement with its party countries.
func (s *AgreementService) GetAgreementByID(ctx context.Context, id int64) (*model.Agreement, error) {
	var agreement model.Agreement
	if err := s.db.WithContext(ctx).Preload("Parties").First(&agreement, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &agreement, nil
}

// CreateAgreement persists a new agreement.
func (s *AgreementService) CreateAgreement(ctx context.Context, agreement *model.Agreement) (*model.Agreement, error) {
	if err := validateAgreement(agreement); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(agreement).Error; err != nil {
		return nil, fmt.Errorf("failed to create agreement: %w", err)
	}
	return agreement, nil
}

// UpdateAgreement updates the name and RVC threshold of an existing agreement.
func (s *AgreementService) UpdateAgreement(ctx context.Context, id int64, update *model.Agreement) (*model.Agreement, error) {
	if err := validateAgreement(update); err != nil {
		return nil, err
	}

	existing, err := s.GetAgreementByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Name = update.Name
	existing.RvcThreshold = update.RvcThreshold
	if err := s.db.WithContext(ctx).Save(existing).Error; err != nil {
		return nil, fmt.Errorf("failed to update agreement %d: %w", id, err)
	}
	return existing, nil
}

// DeleteAgreement removes an agreement.
func (s *AgreementService) DeleteAgreement(ctx context.Context, id int64) error {
	existing, err := s.GetAgreementByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(existing).Error; err != nil {
		return fmt.Errorf("failed to delete agreement %d: %w", id, err)
	}
	return nil
}

func validateAgreement(agreement *model.Agreement) error {
	if agreement == nil {
		return invalidInput("agreement is required")
	}
	if strings.TrimSpace(agreement.Name) == "" {
		return invalidInput("agreement name is required")
	}
	if agreement.RvcThreshold.Valid && agreement.RvcThreshold.Decimal.IsNegative() {
		return invalidInput("rvcThreshold must not be negative")
	}
	return nil
}
