package service

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/tariffsheriff/tariffsheriff/internal/tariff/model"
)

const (
	searchLimitDefault = 10
	searchLimitMax     = 25
)

// HsProductService provides HS product search over the tariff schedule.
type HsProductService struct {
	db *gorm.DB
}

// NewHsProductService creates a new HsProductService instance
func NewHsProductService(db *gorm.DB) *HsProductService {
	return &HsProductService{db: db}
}

// Search finds HS products matching the query. Numeric queries first try a
// digit-prefix match with separator punctuation ignored, then a literal
// prefix match on the stored code; any remaining capacity is filled with a
// case-insensitive substring match against the product label. Results are
// deduplicated by product id and truncated at the limit.
func (s *HsProductService) Search(ctx context.Context, query string, limit int) ([]model.HsProduct, error) {
	clean := strings.TrimSpace(query)
	if clean == "" {
		return []model.HsProduct{}, nil
	}

	if limit <= 0 {
		limit = searchLimitDefault
	}
	limit = min(limit, searchLimitMax)

	results := make([]model.HsProduct, 0, limit)
	seen := make(map[int64]struct{})

	appendUnique := func(products []model.HsProduct) {
		for _, p := range products {
			if len(results) >= limit {
				return
			}
			if _, ok := seen[p.ID]; ok {
				continue
			}
			seen[p.ID] = struct{}{}
			results = append(results, p)
		}
	}

	if digits := stripSeparators(clean); digits != "" && isNumeric(digits) {
		byDigits, err := s.findByDigitPrefix(ctx, digits, limit)
		if err != nil {
			return nil, err
		}
		appendUnique(byDigits)

		if len(results) < limit {
			byPrefix, err := s.findByCodePrefix(ctx, clean, limit)
			if err != nil {
				return nil, err
			}
			appendUnique(byPrefix)
		}
	}

	if len(results) < limit {
		byLabel, err := s.findByLabel(ctx, clean, limit)
		if err != nil {
			return nil, err
		}
		appendUnique(byLabel)
	}

	return results, nil
}

// GetByCode returns the HS product for a destination country and HS code,
// preferring the newest HS version.
func (s *HsProductService) GetByCode(ctx context.Context, destinationID int64, hsCode string) (*model.HsProduct, error) {
	var product model.HsProduct
	err := s.db.WithContext(ctx).
		Where("destination_id = ? AND hs_code = ?", destinationID, strings.TrimSpace(hsCode)).
		Order("hs_version DESC").
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *HsProductService) findByDigitPrefix(ctx context.Context, digits string, limit int) ([]model.HsProduct, error) {
	var products []model.HsProduct
	err := s.db.WithContext(ctx).
		Where("replace(replace(replace(hs_code, '.', ''), '-', ''), ' ', '') LIKE ?", digits+"%").
		Order("hs_code").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search HS codes by digit prefix: %w", err)
	}
	return products, nil
}

func (s *HsProductService) findByCodePrefix(ctx context.Context, prefix string, limit int) ([]model.HsProduct, error) {
	var products []model.HsProduct
	err := s.db.WithContext(ctx).
		Where("hs_code LIKE ?", prefix+"%").
		Order("hs_code").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search HS codes by prefix: %w", err)
	}
	return products, nil
}

func (s *HsProductService) findByLabel(ctx context.Context, query string, limit int) ([]model.HsProduct, error) {
	var products []model.HsProduct
	err := s.db.WithContext(ctx).
		Where("hs_label ILIKE ?", "%"+query+"%").
		Order("hs_code").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search HS products by label: %w", err)
	}
	return products, nil
}

// stripSeparators removes the punctuation commonly used inside HS codes so
// "8504.40" and "8504 40" match the same digit prefix.
func stripSeparators(value string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '.', '-', ' ':
			return -1
		}
		return r
	}, value)
}

func isNumeric(value string) bool {
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(value) > 0
}
