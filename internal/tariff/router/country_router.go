package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tariffsheriff/tariffsheriff/internal/tariff/model"
)

// HandleListCountries handles GET /api/countries requests
// Optional Query Filters: q, offset, limit
func (tr *TariffRouter) HandleListCountries(c *gin.Context) {
	var filter model.CountryFilter

	if q := c.Query("q"); q != "" {
		filter.NameContains = &q
	}

	offset, ok := parseOptionalIntQuery(c, "offset")
	if !ok {
		return
	}
	filter.Offset = offset

	limit, ok := parseOptionalIntQuery(c, "limit")
	if !ok {
		return
	}
	filter.Limit = limit

	result, err := tr.countries.ListCountries(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// HandleGetCountry handles GET /api/countries/{id} requests
func (tr *TariffRouter) HandleGetCountry(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	country, err := tr.countries.GetCountryByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, country)
}

// HandleCreateCountry handles POST /api/countries requests
func (tr *TariffRouter) HandleCreateCountry(c *gin.Context) {
	var country model.Country
	if err := c.ShouldBindJSON(&country); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	created, err := tr.countries.CreateCountry(c.Request.Context(), &country)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// HandleUpdateCountry handles PUT /api/countries/{id} requests
func (tr *TariffRouter) HandleUpdateCountry(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var country model.Country
	if err := c.ShouldBindJSON(&country); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	updated, err := tr.countries.UpdateCountry(c.Request.Context(), id, &country)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// HandleDeleteCountry handles DELETE /api/countries/{id} requests
func (tr *TariffRouter) HandleDeleteCountry(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := tr.countries.DeleteCountry(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
