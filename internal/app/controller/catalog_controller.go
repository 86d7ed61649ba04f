package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/asif-dev/machbazar-storefront/internal/app/service"
	"github.com/asif-dev/machbazar-storefront/internal/errors"
	"github.com/asif-dev/machbazar-storefront/pkg/commerce"
)

type CatalogController struct {
	catalogService service.CatalogService
}

func NewCatalogController(catalogService service.CatalogService) *CatalogController {
	return &CatalogController{catalogService: catalogService}
}

// ListProducts proxies the upstream catalog with normalized products
// GET /api/products
func (ctrl *CatalogController) ListProducts(c *gin.Context) {
	params := commerce.ProductListParams{
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil && page > 0 {
		params.Page = page
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil && limit > 0 {
		params.Limit = limit
	}

	page, err := ctrl.catalogService.ListProducts(c.Request.Context(), params)
	if err != nil {
		errors.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"products": page.Products,
		"total":    page.Total,
		"page":     page.Page,
	})
}

// GetProduct returns one normalized product
// GET /api/products/:id
func (ctrl *CatalogController) GetProduct(c *gin.Context) {
	product, err := ctrl.catalogService.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		errors.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"product": product,
	})
}
