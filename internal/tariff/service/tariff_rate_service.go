package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tariffsheriff/tariffsheriff/internal/tariff/model"
	"github.com/tariffsheriff/tariffsheriff/utils"
)

var oneHundred = decimal.NewFromInt(100)

// rvcScale is the number of fractional digits kept when dividing the cost
// breakdown by FOB. The half-up rounding happens at this step only; the
// final duty multiplication is not re-rounded.
const rvcScale = 6

// TariffRateService resolves tariff rate rows and computes duty.
// Resolution reads reference data that is immutable during a request and
// calculation is pure arithmetic, so the service carries no state beyond
// the database handle and is safe for concurrent use.
type TariffRateService struct {
	db *gorm.DB
}

// NewTariffRateService creates a new TariffRateService instance
func NewTariffRateService(db *gorm.DB) *TariffRateService {
	return &TariffRateService{db: db}
}

// ListTariffRates returns tariff rate rows with pagination.
func (s *TariffRateService) ListTariffRates(ctx context.Context, offset, limit *int) ([]model.TariffRate, error) {
	finalOffset, finalLimit := utils.GetPaginationParams(offset, limit)

	var rates []model.TariffRate
	if err := s.db.WithContext(ctx).
		Order("id").
		Offset(finalOffset).
		Limit(finalLimit).
		Find(&rates).Error; err != nil {
		return nil, fmt.Errorf("failed to list tariff rates: %w", err)
	}
	return rates, nil
}

// GetTariffRateByID returns a single tariff rate row.
func (s *TariffRateService) GetTariffRateByID(ctx context.Context, id int64) (*model.TariffRate, error) {
	var rate model.TariffRate
	if err := s.db.WithContext(ctx).First(&rate, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &RateNotFoundError{}
		}
		return nil, fmt.Errorf("failed to query tariff rate %d: %w", id, err)
	}
	return &rate, nil
}

// Resolve finds the applicable MFN and preferential rate rows for the given
// importer, origin and HS code, and attaches the preferential row's
// agreement best-effort. Both lookups fall back from the origin-specific row
// to the origin-agnostic row; a miss on both steps fails the resolution.
// There is no silent fallback: a missing preferential row is an error, not
// an implicit zero-duty or MFN substitution.
func (s *TariffRateService) Resolve(ctx context.Context, importerID, originID int64, hsCode string) (*model.TariffRateLookup, error) {
	product, err := s.findProduct(ctx, importerID, hsCode)
	if err != nil {
		return nil, err
	}

	mfn, err := s.findRate(ctx, importerID, originID, product.ID, model.TariffBasisMFN)
	if err != nil {
		return nil, err
	}

	pref, err := s.findRate(ctx, importerID, originID, product.ID, model.TariffBasisPref)
	if err != nil {
		return nil, err
	}

	lookup := &model.TariffRateLookup{Mfn: mfn, Pref: pref}
	if pref.AgreementID != nil {
		lookup.Agreement = s.findAgreement(ctx, *pref.AgreementID)
	}
	return lookup, nil
}

// LookupByIso3 resolves rates using ISO-3 country codes, the canonical
// external identifier scheme. The origin is optional; without it only the
// origin-agnostic MFN row is resolved and no preferential row is returned.
func (s *TariffRateService) LookupByIso3(ctx context.Context, importerIso3, originIso3, hsCode string) (*model.TariffRateLookup, error) {
	importerID, err := s.countryIDByIso3(ctx, importerIso3)
	if err != nil {
		return nil, err
	}

	if originIso3 == "" {
		product, err := s.findProduct(ctx, importerID, hsCode)
		if err != nil {
			return nil, err
		}
		mfn, err := s.findOriginAgnosticRate(ctx, importerID, product.ID, model.TariffBasisMFN)
		if err != nil {
			return nil, err
		}
		return &model.TariffRateLookup{Mfn: mfn}, nil
	}

	originID, err := s.countryIDByIso3(ctx, originIso3)
	if err != nil {
		return nil, err
	}
	return s.Resolve(ctx, importerID, originID, hsCode)
}

// Calculate resolves the applicable rates for the request and computes the
// duty owed. The caller-supplied RVC threshold, when present, overrides the
// agreement's stored threshold; the override is logged for auditability.
func (s *TariffRateService) Calculate(ctx context.Context, req *model.CalculationRequest) (*model.CalculationResult, error) {
	if req == nil {
		return nil, invalidInput("request body is required")
	}
	if req.ImporterIso3 == "" || req.OriginIso3 == "" || req.HsCode == "" {
		return nil, invalidInput("importerIso3, originIso3 and hsCode are required")
	}

	importerID, err := s.countryIDByIso3(ctx, req.ImporterIso3)
	if err != nil {
		return nil, err
	}
	originID, err := s.countryIDByIso3(ctx, req.OriginIso3)
	if err != nil {
		return nil, err
	}

	lookup, err := s.Resolve(ctx, importerID, originID, req.HsCode)
	if err != nil {
		return nil, err
	}

	threshold := req.ThresholdOverride()
	if threshold != nil {
		attrs := []any{"override_threshold", *threshold}
		if lookup.Agreement != nil {
			attrs = append(attrs, "agreement_id", lookup.Agreement.ID)
			if lookup.Agreement.RvcThreshold.Valid {
				attrs = append(attrs, "agreement_threshold", lookup.Agreement.RvcThreshold.Decimal)
			}
		}
		slog.InfoContext(ctx, "caller override of RVC threshold", attrs...)
	} else if lookup.Agreement != nil && lookup.Agreement.RvcThreshold.Valid {
		threshold = &lookup.Agreement.RvcThreshold.Decimal
	}

	return ComputeDuty(lookup.Mfn, lookup.Pref, threshold, req)
}

// ComputeDuty computes the regional value content of the cost breakdown,
// picks the preferential rate when the RVC meets the threshold (inclusive),
// and returns the total duty. It is a pure function over its arguments.
//
//	rvc%    = (material + labour + overhead + profit + other) / fob * 100
//	applied = pref when rvc% >= threshold, mfn otherwise
//	duty    = totalValue * appliedRate            (ad valorem)
//
// A nil threshold means preferential treatment cannot be established and the
// MFN rate applies.
func ComputeDuty(mfn, pref *model.TariffRate, rvcThreshold *decimal.Decimal, req *model.CalculationRequest) (*model.CalculationResult, error) {
	if mfn == nil || pref == nil {
		return nil, &RateNotFoundError{}
	}
	if err := validateCostBreakdown(req); err != nil {
		return nil, err
	}

	sum := req.MaterialCost.
		Add(*req.LabourCost).
		Add(*req.OverheadCost).
		Add(*req.Profit).
		Add(*req.OtherCosts)
	// DivRound rounds half away from zero, which is half-up for the
	// non-negative amounts allowed here.
	rvcPercent := sum.DivRound(*req.Fob, rvcScale).Mul(oneHundred)

	applied := mfn
	if rvcThreshold != nil && rvcPercent.Cmp(*rvcThreshold) >= 0 {
		applied = pref
	}

	return &model.CalculationResult{
		Basis:        applied.Basis,
		AppliedRate:  applied.AdValoremRate.Decimal,
		TotalDuty:    dutyFor(applied, req),
		Rvc:          rvcPercent,
		RvcThreshold: rvcThreshold,
	}, nil
}

func validateCostBreakdown(req *model.CalculationRequest) error {
	required := map[string]*decimal.Decimal{
		"totalValue":   req.TotalValue,
		"materialCost": req.MaterialCost,
		"labourCost":   req.LabourCost,
		"overheadCost": req.OverheadCost,
		"profit":       req.Profit,
		"otherCosts":   req.OtherCosts,
		"fob":          req.Fob,
	}
	for field, value := range required {
		if value == nil {
			return invalidInput("missing required field %q", field)
		}
		if value.IsNegative() {
			return invalidInput("field %q must not be negative", field)
		}
	}
	if req.Quantity != nil && *req.Quantity < 0 {
		return invalidInput("field %q must not be negative", "quantity")
	}
	if req.NonOriginValue != nil && req.NonOriginValue.IsNegative() {
		return invalidInput("field %q must not be negative", "nonOriginValue")
	}
	if req.Fob.Sign() <= 0 {
		return invalidInput("fob must be strictly positive")
	}
	return nil
}

// dutyFor applies the rate row's type to the request amounts. Specific and
// compound rows contribute their per-unit amount only when both the amount
// and the shipment quantity are present.
func dutyFor(rate *model.TariffRate, req *model.CalculationRequest) decimal.Decimal {
	duty := decimal.Zero
	switch rate.RateType {
	case model.TariffRateTypeAdValorem:
		if rate.AdValoremRate.Valid {
			duty = req.TotalValue.Mul(rate.AdValoremRate.Decimal)
		}
	case model.TariffRateTypeSpecific:
		if rate.SpecificAmount.Valid && req.Quantity != nil {
			duty = rate.SpecificAmount.Decimal.Mul(decimal.NewFromInt(*req.Quantity))
		}
	case model.TariffRateTypeCompound:
		if rate.AdValoremRate.Valid {
			duty = req.TotalValue.Mul(rate.AdValoremRate.Decimal)
		}
		if rate.SpecificAmount.Valid && req.Quantity != nil {
			duty = duty.Add(rate.SpecificAmount.Decimal.Mul(decimal.NewFromInt(*req.Quantity)))
		}
	}
	return duty
}

func (s *TariffRateService) findProduct(ctx context.Context, importerID int64, hsCode string) (*model.HsProduct, error) {
	code := strings.TrimSpace(hsCode)
	if code == "" {
		return nil, invalidInput("hsCode is required")
	}

	var product model.HsProduct
	err := s.db.WithContext(ctx).
		Where("destination_id = ? AND hs_code = ?", importerID, code).
		Order("hs_version DESC").
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &RateNotFoundError{}
		}
		return nil, fmt.Errorf("failed to query HS product: %w", err)
	}
	return &product, nil
}

// findRate performs the two-step lookup for one basis: the origin-specific
// row wins over the origin-agnostic row whenever both exist.
func (s *TariffRateService) findRate(ctx context.Context, importerID, originID, productID int64, basis model.TariffBasis) (*model.TariffRate, error) {
	var rate model.TariffRate
	err := s.db.WithContext(ctx).
		Where("importer_id = ? AND origin_id = ? AND hs_product_id = ? AND basis = ?", importerID, originID, productID, basis).
		Order("valid_from DESC").
		First(&rate).Error
	if err == nil {
		return &rate, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to query %s tariff rate: %w", basis, err)
	}
	return s.findOriginAgnosticRate(ctx, importerID, productID, basis)
}

func (s *TariffRateService) findOriginAgnosticRate(ctx context.Context, importerID, productID int64, basis model.TariffBasis) (*model.TariffRate, error) {
	var rate model.TariffRate
	err := s.db.WithContext(ctx).
		Where("importer_id = ? AND origin_id IS NULL AND hs_product_id = ? AND basis = ?", importerID, productID, basis).
		Order("valid_from DESC").
		First(&rate).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &RateNotFoundError{Basis: basis}
		}
		return nil, fmt.Errorf("failed to query %s tariff rate: %w", basis, err)
	}
	return &rate, nil
}

// findAgreement fetches the agreement referenced by a preferential row.
// Agreement display is best-effort: a dangling reference yields nil rather
// than an error.
func (s *TariffRateService) findAgreement(ctx context.Context, agreementID int64) *model.Agreement {
	var agreement model.Agreement
	err := s.db.WithContext(ctx).First(&agreement, "id = ?", agreementID).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			slog.ErrorContext(ctx, "failed to fetch agreement for preferential rate",
				"agreement_id", agreementID,
				"error", err,
			)
		}
		return nil
	}
	return &agreement
}

func (s *TariffRateService) countryIDByIso3(ctx context.Context, iso3 string) (int64, error) {
	code := strings.ToUpper(strings.TrimSpace(iso3))
	if len(code) != 3 {
		return 0, invalidInput("country code %q is not a valid ISO-3 code", iso3)
	}

	var country model.Country
	err := s.db.WithContext(ctx).First(&country, "iso3 = ?", code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, invalidInput("unknown country code %q", code)
		}
		return 0, fmt.Errorf("failed to query country %q: %w", code, err)
	}
	return country.ID, nil
}
