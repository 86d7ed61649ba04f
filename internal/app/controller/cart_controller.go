package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/asif-dev/machbazar-storefront/internal/app/model"
	"github.com/asif-dev/machbazar-storefront/internal/app/service"
	"github.com/asif-dev/machbazar-storefront/internal/errors"
	"github.com/asif-dev/machbazar-storefront/internal/middleware"
)

type CartController struct {
	cartService    service.CartService
	catalogService service.CatalogService
}

func NewCartController(cartService service.CartService, catalogService service.CatalogService) *CartController {
	return &CartController{
		cartService:    cartService,
		catalogService: catalogService,
	}
}

type addItemRequest struct {
	ProductID string  `json:"productId" binding:"required"`
	VariantID string  `json:"variantId"`
	Quantity  float64 `json:"quantity" binding:"required,gt=0"`
}

type updateItemRequest struct {
	ProductID string  `json:"productId" binding:"required"`
	VariantID string  `json:"variantId"`
	Quantity  float64 `json:"quantity"`
}

type removeItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	VariantID string `json:"variantId"`
}

// GetCart returns the current cart snapshot
// GET /api/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	cartKey := middleware.GetCartKey(c)

	snapshot, err := ctrl.cartService.Snapshot(cartKey)
	if err != nil {
		errors.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"cart":    snapshot,
	})
}

// AddItem adds a product selection to the cart
// POST /api/cart/items
func (ctrl *CartController) AddItem(c *gin.Context) {
	cartKey := middleware.GetCartKey(c)

	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, "productId and a positive quantity are required")
		return
	}

	// price, stock, and measurement are snapshotted from the live catalog,
	// never trusted from the client
	product, err := ctrl.catalogService.GetProduct(c.Request.Context(), req.ProductID)
	if err != nil {
		errors.HandleServiceError(c, err)
		return
	}

	if req.VariantID != "" && product.FindVariant(req.VariantID) == nil && !hasSizeCategory(product.SizeCategories, req.VariantID) {
		errors.RespondWithError(c, http.StatusBadRequest, errors.CatalogInvalidVariant, "Unknown variant for this product")
		return
	}

	snapshot, err := ctrl.cartService.Add(cartKey, product, req.VariantID, req.Quantity)
	if err != nil {
		errors.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"cart":    snapshot,
	})
}

// UpdateItem sets a line's quantity; zero or below removes the line
// PUT /api/cart/items
func (ctrl *CartController) UpdateItem(c *gin.Context) {
	cartKey := middleware.GetCartKey(c)

	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, "productId is required")
		return
	}

	snapshot, err := ctrl.cartService.UpdateQuantity(cartKey, req.ProductID, req.VariantID, req.Quantity)
	if err != nil {
		errors.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"cart":    snapshot,
	})
}

// RemoveItem removes one line from the cart
// DELETE /api/cart/items
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	cartKey := middleware.GetCartKey(c)

	var req removeItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, "productId is required")
		return
	}

	snapshot, err := ctrl.cartService.Remove(cartKey, req.ProductID, req.VariantID)
	if err != nil {
		errors.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"cart":    snapshot,
	})
}

// ClearCart drops every line
// DELETE /api/cart
func (ctrl *CartController) ClearCart(c *gin.Context) {
	cartKey := middleware.GetCartKey(c)

	if err := ctrl.cartService.Clear(cartKey); err != nil {
		errors.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Cart cleared",
	})
}

// hasSizeCategory reports whether the id names one of the product's fish
// size bands; size selections arrive through the same variantId field.
func hasSizeCategory(categories []model.SizeCategory, id string) bool {
	for i := range categories {
		if categories[i].ID == id {
			return true
		}
	}
	return false
}
