package service

import (
	"errors"
	"fmt"

	"github.com/tariffsheriff/tariffsheriff/internal/tariff/model"
)

// ErrInvalidInput marks caller input errors: missing required numeric fields,
// non-positive FOB, malformed identifiers. Terminal, surfaced as 400.
var ErrInvalidInput = errors.New("invalid input")

// ErrRateNotFound marks a failed rate resolution. Terminal, surfaced as 404.
var ErrRateNotFound = errors.New("tariff rate not found")

// RateNotFoundError reports which lookup failed so callers can distinguish
// "no MFN rate" from "no preferential rate configured".
type RateNotFoundError struct {
	Basis model.TariffBasis // empty when the HS product itself is unknown
}

func (e *RateNotFoundError) Error() string {
	switch e.Basis {
	case model.TariffBasisMFN:
		return "no MFN rate found for the requested importer and HS code"
	case model.TariffBasisPref:
		return "no preferential rate configured for the requested importer, origin and HS code"
	default:
		return "no tariff schedule entry found for the requested importer and HS code"
	}
}

func (e *RateNotFoundError) Unwrap() error {
	return ErrRateNotFound
}

func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
