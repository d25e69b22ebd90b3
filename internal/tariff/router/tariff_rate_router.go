package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tariffsheriff/tariffsheriff/internal/tariff/model"
)

// HandleListTariffRates handles GET /api/tariff-rates requests
// Optional Query Filters: offset, limit
func (tr *TariffRouter) HandleListTariffRates(c *gin.Context) {
	offset, ok := parseOptionalIntQuery(c, "offset")
	if !ok {
		return
	}
	limit, ok := parseOptionalIntQuery(c, "limit")
	if !ok {
		return
	}

	rates, err := tr.rates.ListTariffRates(c.Request.Context(), offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rates)
}

// HandleGetTariffRate handles GET /api/tariff-rates/{id} requests
func (tr *TariffRouter) HandleGetTariffRate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	rate, err := tr.rates.GetTariffRateByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rate)
}

// HandleLookupTariffRate handles GET /api/tariff-rates/lookup requests
// Query params: importerIso3 (required), originIso3, hsCode (required)
func (tr *TariffRouter) HandleLookupTariffRate(c *gin.Context) {
	importerIso3 := c.Query("importerIso3")
	originIso3 := c.Query("originIso3")
	hsCode := c.Query("hsCode")

	if importerIso3 == "" || hsCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameters: importerIso3, hsCode"})
		return
	}

	lookup, err := tr.rates.LookupByIso3(c.Request.Context(), importerIso3, originIso3, hsCode)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lookup)
}

// HandleCalculate handles POST /api/tariff-rates/calculate requests
func (tr *TariffRouter) HandleCalculate(c *gin.Context) {
	var req model.CalculationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	result, err := tr.rates.Calculate(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
