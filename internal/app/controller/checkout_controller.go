package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/asif-dev/machbazar-storefront/internal/app/model"
	"github.com/asif-dev/machbazar-storefront/internal/app/service"
	"github.com/asif-dev/machbazar-storefront/internal/errors"
	"github.com/asif-dev/machbazar-storefront/internal/middleware"
)

type CheckoutController struct {
	quoteService    service.QuoteService
	checkoutService service.CheckoutService
}

func NewCheckoutController(quoteService service.QuoteService, checkoutService service.CheckoutService) *CheckoutController {
	return &CheckoutController{
		quoteService:    quoteService,
		checkoutService: checkoutService,
	}
}

type quoteRequest struct {
	Address model.ShippingAddress `json:"shippingAddress"`
	Zone    model.ShippingZone    `json:"shippingZone" binding:"required"`
}

type submitRequest struct {
	Address       model.ShippingAddress `json:"shippingAddress"`
	Zone          model.ShippingZone    `json:"shippingZone"`
	PaymentMethod model.PaymentMethod   `json:"paymentMethod"`
	GuestInfo     *model.GuestInfo      `json:"guestInfo,omitempty"`
	Notes         string                `json:"notes,omitempty"`
}

// RequestQuote computes a fresh shipping quote for the current cart
// POST /api/checkout/quote
func (ctrl *CheckoutController) RequestQuote(c *gin.Context) {
	cartKey := middleware.GetCartKey(c)

	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.RespondWithError(c, http.StatusBadRequest, errors.QuoteZoneRequired, "shippingZone is required")
		return
	}

	quote, err := ctrl.quoteService.Refresh(c.Request.Context(), cartKey, req.Address, req.Zone)
	if err != nil {
		errors.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"quote":   quote,
	})
}

// CurrentQuote returns the standing quote, if any
// GET /api/checkout/quote
func (ctrl *CheckoutController) CurrentQuote(c *gin.Context) {
	cartKey := middleware.GetCartKey(c)

	quote, err := ctrl.quoteService.Current(c.Request.Context(), cartKey)
	if err != nil {
		errors.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"quote":   quote,
	})
}

// Submit turns the cart into upstream orders
// POST /api/checkout
func (ctrl *CheckoutController) Submit(c *gin.Context) {
	cartKey := middleware.GetCartKey(c)

	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, "Invalid checkout payload")
		return
	}

	input := service.SubmitInput{
		Address:       req.Address,
		Zone:          req.Zone,
		PaymentMethod: req.PaymentMethod,
		GuestInfo:     req.GuestInfo,
		Notes:         req.Notes,
	}
	if userID, ok := middleware.GetUserID(c); ok {
		input.UserID = &userID
	}

	result, err := ctrl.checkoutService.Submit(c.Request.Context(), cartKey, input)
	if err != nil {
		errors.HandleServiceError(c, err)
		return
	}

	status := http.StatusCreated
	if result.Status == model.SubmissionPartial {
		// the regular order exists but the cart still holds the fish lines
		status = http.StatusMultiStatus
	}

	c.JSON(status, gin.H{
		"success": true,
		"result":  result,
	})
}
