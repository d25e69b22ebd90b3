package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tariffsheriff/tariffsheriff/internal/tariff/model"
)

// HandleListAgreements handles GET /api/agreements requests
// Optional Query Filters: countryIso3, offset, limit
func (tr *TariffRouter) HandleListAgreements(c *gin.Context) {
	offset, ok := parseOptionalIntQuery(c, "offset")
	if !ok {
		return
	}
	limit, ok := parseOptionalIntQuery(c, "limit")
	if !ok {
		return
	}

	agreements, err := tr.agreements.ListAgreements(c.Request.Context(), c.Query("countryIso3"), offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, agreements)
}

// HandleGetAgreement handles GET /api/agreements/{id} requests
func (tr *TariffRouter) HandleGetAgreement(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	agreement, err := tr.agreements.GetAgreementByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, agreement)
}

// HandleCreateAgreement handles POST /api/agreements requests
func (tr *TariffRouter) HandleCreateAgreement(c *gin.Context) {
	var agreement model.Agreement
	if err := c.ShouldBindJSON(&agreement); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	created, err := tr.agreements.CreateAgreement(c.Request.Context(), &agreement)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// HandleUpdateAgreement handles PUT /api/agreements/{id} requests
func (tr *TariffRouter) HandleUpdateAgreement(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var agreement model.Agreement
	if err := c.ShouldBindJSON(&agreement); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	updated, err := tr.agreements.UpdateAgreement(c.Request.Context(), id, &agreement)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// HandleDeleteAgreement handles DELETE /api/agreements/{id} requests
func (tr *TariffRouter) HandleDeleteAgreement(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := tr.agreements.DeleteAgreement(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
