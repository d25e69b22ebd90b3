package router

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tariffsheriff/tariffsheriff/internal/tariff/service"
)

// TariffRouter wires the tariff reference data and calculation endpoints.
type TariffRouter struct {
	countries  *service.CountryService
	agreements *service.AgreementService
	hsProducts *service.HsProductService
	rates      *service.TariffRateService
}

// NewTariffRouter creates a new TariffRouter instance
func NewTariffRouter(
	countries *service.CountryService,
	agreements *service.AgreementService,
	hsProducts *service.HsProductService,
	rates *service.TariffRateService,
) *TariffRouter {
	return &TariffRouter{
		countries:  countries,
		agreements: agreements,
		hsProducts: hsProducts,
		rates:      rates,
	}
}

// Register mounts all tariff endpoints under the given group.
func (tr *TariffRouter) Register(api *gin.RouterGroup) {
	countries := api.Group("/countries")
	countries.GET("", tr.HandleListCountries)
	countries.GET("/:id", tr.HandleGetCountry)
	countries.POST("", tr.HandleCreateCountry)
	countries.PUT("/:id", tr.HandleUpdateCountry)
	countries.DELETE("/:id", tr.HandleDeleteCountry)

	agreements := api.Group("/agreements")
	agreements.GET("", tr.HandleListAgreements)
	agreements.GET("/:id", tr.HandleGetAgreement)
	agreements.POST("", tr.HandleCreateAgreement)
	agreements.PUT("/:id", tr.HandleUpdateAgreement)
	agreements.DELETE("/:id", tr.HandleDeleteAgreement)

	api.GET("/hs-products/search", tr.HandleSearchHsProducts)

	rates := api.Group("/tariff-rates")
	rates.GET("", tr.HandleListTariffRates)
	rates.GET("/lookup", tr.HandleLookupTariffRate)
	rates.GET("/:id", tr.HandleGetTariffRate)
	rates.POST("/calculate", tr.HandleCalculate)
}

// respondError maps service errors onto HTTP statuses: RateNotFound and
// missing records surface as 404 with a basis-specific message, invalid
// input as 400, anything else as 500.
func respondError(c *gin.Context, err error) {
	var rateNotFound *service.RateNotFoundError
	switch {
	case errors.As(err, &rateNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": rateNotFound.Error()})
	case errors.Is(err, service.ErrRateNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		slog.ErrorContext(c.Request.Context(), "request failed",
			"path", c.Request.URL.Path,
			"error", err,
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// parseIDParam parses the :id path parameter as an int64.
func parseIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id, must be an integer"})
		return 0, false
	}
	return id, true
}

// parseOptionalIntQuery parses an optional integer query parameter.
func parseOptionalIntQuery(c *gin.Context, name string) (*int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid '" + name + "' query parameter, must be an integer"})
		return nil, false
	}
	return &value, true
}
