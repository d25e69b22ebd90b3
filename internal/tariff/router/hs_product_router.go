package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HandleSearchHsProducts handles GET /api/hs-products/search requests
// Query params: q (required), limit
func (tr *TariffRouter) HandleSearchHsProducts(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameter: q"})
		return
	}

	limit, ok := parseOptionalIntQuery(c, "limit")
	if !ok {
		return
	}
	finalLimit := 0
	if limit != nil {
		finalLimit = *limit
	}

	products, err := tr.hsProducts.Search(c.Request.Context(), query, finalLimit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}
