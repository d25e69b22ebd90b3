package router

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tariffsheriff/tariffsheriff/internal/auth"
	"github.com/tariffsheriff/tariffsheriff/internal/calculation/model"
	"github.com/tariffsheriff/tariffsheriff/internal/calculation/service"
	tariffservice "github.com/tariffsheriff/tariffsheriff/internal/tariff/service"
)

// CalculationRouter wires the saved-calculation endpoints. All endpoints are
// user-scoped and expect the auth middleware to have injected the user ID.
type CalculationRouter struct {
	calculations *service.CalculationService
}

// NewCalculationRouter creates a new CalculationRouter instance
func NewCalculationRouter(calculations *service.CalculationService) *CalculationRouter {
	return &CalculationRouter{calculations: calculations}
}

// Register mounts the saved-calculation endpoints under the given group.
func (cr *CalculationRouter) Register(api *gin.RouterGroup) {
	calculations := api.Group("/calculations", auth.RequireUser())
	calculations.POST("", cr.HandleSaveCalculation)
	calculations.GET("", cr.HandleListCalculations)
	calculations.GET("/:id", cr.HandleGetCalculation)
	calculations.DELETE("/:id", cr.HandleDeleteCalculation)
}

// HandleSaveCalculation handles POST /api/calculations requests.
// The duty figures are recomputed server-side before persisting.
func (cr *CalculationRouter) HandleSaveCalculation(c *gin.Context) {
	userID, ok := auth.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user identity"})
		return
	}

	var req model.SaveCalculationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	saved, err := cr.calculations.SaveForUser(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// HandleListCalculations handles GET /api/calculations requests
// Optional Query Params: offset, limit
func (cr *CalculationRouter) HandleListCalculations(c *gin.Context) {
	userID, ok := auth.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user identity"})
		return
	}

	var offset, limit *int
	if raw := c.Query("offset"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'offset' query parameter, must be an integer"})
			return
		}
		offset = &value
	}
	if raw := c.Query("limit"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'limit' query parameter, must be an integer"})
			return
		}
		limit = &value
	}

	result, err := cr.calculations.ListForUser(c.Request.Context(), userID, offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// HandleGetCalculation handles GET /api/calculations/{id} requests
func (cr *CalculationRouter) HandleGetCalculation(c *gin.Context) {
	userID, ok := auth.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user identity"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id: " + err.Error()})
		return
	}

	calc, err := cr.calculations.GetForUser(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, calc)
}

// HandleDeleteCalculation handles DELETE /api/calculations/{id} requests
func (cr *CalculationRouter) HandleDeleteCalculation(c *gin.Context) {
	userID, ok := auth.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user identity"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id: " + err.Error()})
		return
	}

	deleted, err := cr.calculations.DeleteForUser(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

func respondError(c *gin.Context, err error) {
	var rateNotFound *tariffservice.RateNotFoundError
	switch {
	case errors.As(err, &rateNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": rateNotFound.Error()})
	case errors.Is(err, tariffservice.ErrRateNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, tariffservice.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		slog.ErrorContext(c.Request.Context(), "request failed",
			"path", c.Request.URL.Path,
			"error", err,
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
