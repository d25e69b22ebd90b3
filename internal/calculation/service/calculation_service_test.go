package service

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tariffsheriff/tariffsheriff/internal/calculation/model"
	tariffmodel "github.com/tariffsheriff/tariffsheriff/internal/tariff/model"
	tariffservice "github.com/tariffsheriff/tariffsheriff/internal/tariff/service"
)

// stubCalculator returns a canned result and records the request it received.
type stubCalculator struct {
	result *tariffmodel.CalculationResult
	err    error
	gotReq *tariffmodel.CalculationRequest
}

func (s *stubCalculator) Calculate(ctx context.Context, req *tariffmodel.CalculationRequest) (*tariffmodel.CalculationResult, error) {
	s.gotReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func dec(value string) decimal.Decimal {
	d, err := decimal.NewFromString(value)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(value string) *decimal.Decimal {
	d := dec(value)
	return &d
}

func saveRequest() *model.SaveCalculationRequest {
	return &model.SaveCalculationRequest{
		Name: "EV inverter shipment",
		Input: &tariffmodel.CalculationRequest{
			ImporterIso3: "SGP",
			OriginIso3:   "KOR",
			HsCode:       "8504.40",
			TotalValue:   decPtr("1000"),
			MaterialCost: decPtr("120"),
			LabourCost:   decPtr("80"),
			OverheadCost: decPtr("40"),
			Profit:       decPtr("100"),
			OtherCosts:   decPtr("40"),
			Fob:          decPtr("1000"),
		},
	}
}

func stubResult() *tariffmodel.CalculationResult {
	threshold := dec("35")
	return &tariffmodel.CalculationResult{
		Basis:        tariffmodel.TariffBasisPref,
		AppliedRate:  dec("0.02"),
		TotalDuty:    dec("20"),
		Rvc:          dec("38"),
		RvcThreshold: &threshold,
	}
}

func TestCalculationService_SaveForUser_PersistsRecomputedResult(t *testing.T) {
	db, sqlMock := setupTestDB(t)
	calculator := &stubCalculator{result: stubResult()}
	service := NewCalculationService(db, calculator)

	sqlMock.ExpectBegin()
	sqlMock.ExpectExec(`INSERT INTO "saved_calculations"`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	sqlMock.ExpectCommit()

	req := saveRequest()
	saved, err := service.SaveForUser(context.Background(), "user-1", req)
	require.NoError(t, err)

	assert.Equal(t, req.Input, calculator.gotReq)
	assert.NotEqual(t, uuid.Nil, saved.ID)
	assert.Equal(t, tariffmodel.TariffBasisPref, saved.Basis)
	assert.True(t, saved.TotalDuty.Valid)
	assert.True(t, saved.TotalDuty.Decimal.Equal(dec("20")))
	assert.True(t, saved.RvcComputed.Decimal.Equal(dec("38")))
	assert.True(t, saved.RvcThreshold.Decimal.Equal(dec("35")))
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestCalculationService_SaveForUser_KeepsSubmittedFiguresAsAudit(t *testing.T) {
	db, sqlMock := setupTestDB(t)
	service := NewCalculationService(db, &stubCalculator{result: stubResult()})

	sqlMock.ExpectBegin()
	sqlMock.ExpectExec(`INSERT INTO "saved_calculations"`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	sqlMock.ExpectCommit()

	req := saveRequest()
	req.Submitted = &model.SubmittedResult{
		Basis:       "MFN",
		AppliedRate: decPtr("0.05"),
		TotalDuty:   decPtr("50"),
	}

	saved, err := service.SaveForUser(context.Background(), "user-1", req)
	require.NoError(t, err)

	// Stored result columns come from the server computation, not the client.
	assert.True(t, saved.TotalDuty.Decimal.Equal(dec("20")))
	assert.Equal(t, tariffmodel.TariffBasisPref, saved.Basis)
	assert.Equal(t, "MFN", saved.SubmittedBasis)
	assert.True(t, saved.SubmittedDuty.Decimal.Equal(dec("50")))
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestCalculationService_SaveForUser_PropagatesCalculatorError(t *testing.T) {
	db, _ := setupTestDB(t)
	calcErr := &tariffservice.RateNotFoundError{Basis: tariffmodel.TariffBasisMFN}
	service := NewCalculationService(db, &stubCalculator{err: calcErr})

	_, err := service.SaveForUser(context.Background(), "user-1", saveRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, tariffservice.ErrRateNotFound)
}

func TestCalculationService_SaveForUser_RejectsMissingInput(t *testing.T) {
	db, _ := setupTestDB(t)
	service := NewCalculationService(db, &stubCalculator{result: stubResult()})

	_, err := service.SaveForUser(context.Background(), "user-1", &model.SaveCalculationRequest{Name: "empty"})
	require.Error(t, err)
	assert.ErrorIs(t, err, tariffservice.ErrInvalidInput)

	_, err = service.SaveForUser(context.Background(), "", saveRequest())
	require.Error(t, err)
}

func TestCalculationService_ListForUser_ScopesToOwner(t *testing.T) {
	db, sqlMock := setupTestDB(t)
	service := NewCalculationService(db, &stubCalculator{result: stubResult()})

	sqlMock.ExpectQuery(`SELECT count\(\*\) FROM "saved_calculations" WHERE user_id = \$1`).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	sqlMock.ExpectQuery(`SELECT \* FROM "saved_calculations" WHERE user_id = \$1 ORDER BY created_at DESC`).
		WithArgs("user-1", 20).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "hs_code"}).
			AddRow(uuid.New(), "user-1", "8504.40").
			AddRow(uuid.New(), "user-1", "8504.90"))

	result, err := service.ListForUser(context.Background(), "user-1", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.TotalCount)
	assert.Len(t, result.Calculations, 2)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestCalculationService_GetForUser_FiltersByOwner(t *testing.T) {
	db, sqlMock := setupTestDB(t)
	service := NewCalculationService(db, &stubCalculator{result: stubResult()})

	id := uuid.New()
	sqlMock.ExpectQuery(`SELECT \* FROM "saved_calculations" WHERE id = \$1 AND user_id = \$2`).
		WithArgs(id, "user-1", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "hs_code"}).
			AddRow(id, "user-1", "8504.40"))

	calc, err := service.GetForUser(context.Background(), "user-1", id)
	require.NoError(t, err)
	assert.Equal(t, "8504.40", calc.HsCode)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestCalculationService_DeleteForUser(t *testing.T) {
	db, sqlMock := setupTestDB(t)
	service := NewCalculationService(db, &stubCalculator{result: stubResult()})

	id := uuid.New()
	sqlMock.ExpectBegin()
	sqlMock.ExpectExec(`DELETE FROM "saved_calculations" WHERE id = \$1 AND user_id = \$2`).
		WithArgs(id, "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	sqlMock.ExpectCommit()

	deleted, err := service.DeleteForUser(context.Background(), "user-1", id)
	require.NoError(t, err)
	assert.True(t, deleted)

	sqlMock.ExpectBegin()
	sqlMock.ExpectExec(`DELETE FROM "saved_calculations" WHERE id = \$1 AND user_id = \$2`).
		WithArgs(id, "other-user").
		WillReturnResult(sqlmock.NewResult(0, 0))
	sqlMock.ExpectCommit()

	deleted, err = service.DeleteForUser(context.Background(), "other-user", id)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}
