package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/tariffsheriff/tariffsheriff/internal/tariff/model"
	"github.com/tariffsheriff/tariffsheriff/utils"
)

// CountryService provides business logic for country reference data.
type CountryService struct {
	db *gorm.DB
}

// NewCountryService creates a new CountryService instance
func NewCountryService(db *gorm.DB) *CountryService {
	return &CountryService{db: db}
}

// ListCountries returns countries matching the filter with pagination.
func (s *CountryService) ListCountries(ctx context.Context, filter model.CountryFilter) (*model.CountryListResult, error) {
	finalOffset, finalLimit := utils.GetPaginationParams(filter.Offset, filter.Limit)

	query := s.db.WithContext(ctx).Model(&model.Country{})
	if filter.NameContains != nil && *filter.NameContains != "" {
		query = query.Where("name ILIKE ?", "%"+*filter.NameContains+"%")
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count countries: %w", err)
	}

	var countries []model.Country
	if err := query.Order("name").Offset(finalOffset).Limit(finalLimit).Find(&countries).Error; err != nil {
		return nil, fmt.Errorf("failed to list countries: %w", err)
	}

	return &model.CountryListResult{
		TotalCount: totalCount,
		Countries:  countries,
		Offset:     finalOffset,
		Limit:      finalLimit,
	}, nil
}

// GetCountryByID returns a single country.
func (s *CountryService) GetCountryByID(ctx context.Context, id int64) (*model.Country, error) {
	var country model.Country
	if err := s.db.WithContext(ctx).First(&country, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &country, nil
}

// GetCountryByIso3 returns the country for an ISO-3 code.
func (s *CountryService) GetCountryByIso3(ctx context.Context, iso3 string) (*model.Country, error) {
	code := strings.ToUpper(strings.TrimSpace(iso3))
	if len(code) != 3 {
		return nil, invalidInput("country code %q is not a valid ISO-3 code", iso3)
	}

	var country model.Country
	if err := s.db.WithContext(ctx).First(&country, "iso3 = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to query country %q: %w", code, err)
	}
	return &country, nil
}

// CreateCountry persists a new country after normalizing its ISO codes.
func (s *CountryService) CreateCountry(ctx context.Context, country *model.Country) (*model.Country, error) {
	if err := normalizeCountry(country); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(country).Error; err != nil {
		return nil, fmt.Errorf("failed to create country: %w", err)
	}
	return country, nil
}

// UpdateCountry updates the ISO codes and name of an existing country.
func (s *CountryService) UpdateCountry(ctx context.Context, id int64, update *model.Country) (*model.Country, error) {
	if err := normalizeCountry(update); err != nil {
		return nil, err
	}

	existing, err := s.GetCountryByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Iso2 = update.Iso2
	existing.Iso3 = update.Iso3
	existing.Name = update.Name
	if err := s.db.WithContext(ctx).Save(existing).Error; err != nil {
		return nil, fmt.Errorf("failed to update country %d: %w", id, err)
	}
	return existing, nil
}

// DeleteCountry removes a country from the reference data.
func (s *CountryService) DeleteCountry(ctx context.Context, id int64) error {
	existing, err := s.GetCountryByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(existing).Error; err != nil {
		return fmt.Errorf("failed to delete country %d: %w", id, err)
	}
	return nil
}

func normalizeCountry(country *model.Country) error {
	if country == nil {
		return invalidInput("country is required")
	}
	country.Iso2 = strings.ToUpper(strings.TrimSpace(country.Iso2))
	country.Iso3 = strings.ToUpper(strings.TrimSpace(country.Iso3))
	country.Name = strings.TrimSpace(country.Name)

	if len(country.Iso2) != 2 {
		return invalidInput("iso2 must be a 2-letter code")
	}
	if len(country.Iso3) != 3 {
		return invalidInput("iso3 must be a 3-letter code")
	}
	if country.Name == "" {
		return invalidInput("name is required")
	}
	return nil
}
