package model

import "github.com/shopspring/decimal"

// CalculationRequest carries the shipment identifiers and cost breakdown for
// a duty calculation. All monetary fields are arbitrary-precision decimals;
// FOB must be strictly positive since it is used as a divisor.
type CalculationRequest struct {
	ImporterIso3 string `json:"importerIso3"`
	OriginIso3   string `json:"originIso3"`
	HsCode       string `json:"hsCode"`

	Quantity       *int64           `json:"quantity,omitempty"`
	TotalValue     *decimal.Decimal `json:"totalValue"`
	MaterialCost   *decimal.Decimal `json:"materialCost"`
	LabourCost     *decimal.Decimal `json:"labourCost"`
	OverheadCost   *decimal.Decimal `json:"overheadCost"`
	Profit         *decimal.Decimal `json:"profit"`
	OtherCosts     *decimal.Decimal `json:"otherCosts"`
	Fob            *decimal.Decimal `json:"fob"`
	NonOriginValue *decimal.Decimal `json:"nonOriginValue,omitempty"`

	// RvcThreshold overrides the agreement's stored threshold when supplied.
	// LegacyRvcThreshold accepts the older field name for the same value.
	RvcThreshold       *decimal.Decimal `json:"rvcThreshold,omitempty"`
	LegacyRvcThreshold *decimal.Decimal `json:"rvc,omitempty"`

	// AgreementID is accepted but currently unused in the arithmetic.
	AgreementID *int64 `json:"agreementId,omitempty"`
}

// ThresholdOverride returns the caller-supplied RVC threshold, honouring the
// legacy field name, or nil when the caller supplied none.
func (r *CalculationRequest) ThresholdOverride() *decimal.Decimal {
	if r.RvcThreshold != nil {
		return r.RvcThreshold
	}
	return r.LegacyRvcThreshold
}

// CalculationResult is the structured outcome of a duty calculation so the
// client can render which basis was applied.
type CalculationResult struct {
	Basis        TariffBasis      `json:"basis"`
	AppliedRate  decimal.Decimal  `json:"appliedRate"`
	TotalDuty    decimal.Decimal  `json:"totalDuty"`
	Rvc          decimal.Decimal  `json:"rvc"`          // percent
	RvcThreshold *decimal.Decimal `json:"rvcThreshold"` // percent, nil when no threshold was available
}
