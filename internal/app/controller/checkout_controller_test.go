package controller

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asif-dev/machbazar-storefront/internal/app/service"
)

func quotePayload() gin.H {
	return gin.H{
		"shippingAddress": gin.H{
			"name":    "Karim",
			"phone":   "01800000000",
			"address": "House 7, Road 2, Mirpur",
		},
		"shippingZone": "inside_dhaka",
	}
}

func submitPayload() gin.H {
	return gin.H{
		"shippingAddress": gin.H{
			"name":    "Karim",
			"phone":   "01800000000",
			"address": "House 7, Road 2, Mirpur",
		},
		"shippingZone":  "inside_dhaka",
		"paymentMethod": "cash_on_delivery",
		"guestInfo":     gin.H{"name": "Karim", "phone": "01800000000"},
	}
}

func TestCheckoutAPI_QuoteLifecycle(t *testing.T) {
	f := setupAPI(t)

	// no quote before one is requested
	w := f.do(t, http.MethodGet, "/api/checkout/quote", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "QUOTE_NOT_READY")

	f.do(t, http.MethodPost, "/api/cart/items", gin.H{"productId": "p-rice", "quantity": 2})

	w = f.do(t, http.MethodPost, "/api/checkout/quote", quotePayload())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"shippingFee":60`)

	w = f.do(t, http.MethodGet, "/api/checkout/quote", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// any cart mutation drops the standing quote
	f.do(t, http.MethodPost, "/api/cart/items", gin.H{"productId": "p-rice", "quantity": 1})
	w = f.do(t, http.MethodGet, "/api/checkout/quote", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCheckoutAPI_QuoteRequiresZone(t *testing.T) {
	f := setupAPI(t)
	f.do(t, http.MethodPost, "/api/cart/items", gin.H{"productId": "p-rice", "quantity": 1})

	w := f.do(t, http.MethodPost, "/api/checkout/quote", gin.H{
		"shippingAddress": gin.H{"address": "Mirpur"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "QUOTE_ZONE_REQUIRED")
}

func TestCheckoutAPI_SubmitMixedCart(t *testing.T) {
	f := setupAPI(t)

	f.do(t, http.MethodPost, "/api/cart/items", gin.H{"productId": "p-rice", "quantity": 2})
	f.do(t, http.MethodPost, "/api/cart/items", gin.H{"productId": "p-rui", "quantity": 2})
	w := f.do(t, http.MethodPost, "/api/checkout/quote", quotePayload())
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodPost, "/api/checkout", submitPayload())
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Success bool                 `json:"success"`
		Result  service.SubmitResult `json:"result"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ord-1", resp.Result.RegularOrderID)
	assert.Equal(t, "fish-1", resp.Result.FishOrderID)

	// cart emptied by the submission
	w = f.do(t, http.MethodGet, "/api/cart", nil)
	assert.Contains(t, w.Body.String(), `"lines":[]`)
}

func TestCheckoutAPI_SubmitWithoutQuote(t *testing.T) {
	f := setupAPI(t)
	f.do(t, http.MethodPost, "/api/cart/items", gin.H{"productId": "p-rice", "quantity": 2})

	w := f.do(t, http.MethodPost, "/api/checkout", submitPayload())
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "QUOTE_NOT_READY")
}

func TestCheckoutAPI_SubmitEmptyCart(t *testing.T) {
	f := setupAPI(t)

	w := f.do(t, http.MethodPost, "/api/checkout", submitPayload())
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "CART_EMPTY")
}

func TestCheckoutAPI_GuestWithoutContactInfo(t *testing.T) {
	f := setupAPI(t)

	f.do(t, http.MethodPost, "/api/cart/items", gin.H{"productId": "p-rice", "quantity": 2})
	w := f.do(t, http.MethodPost, "/api/checkout/quote", quotePayload())
	require.Equal(t, http.StatusOK, w.Code)

	payload := submitPayload()
	delete(payload, "guestInfo")
	w = f.do(t, http.MethodPost, "/api/checkout", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "CHECKOUT_GUEST_INFO_REQUIRED")
}

func TestCheckoutAPI_FishOnlinePaymentRejected(t *testing.T) {
	f := setupAPI(t)

	f.do(t, http.MethodPost, "/api/cart/items", gin.H{"productId": "p-rui", "quantity": 2})
	w := f.do(t, http.MethodPost, "/api/checkout/quote", quotePayload())
	require.Equal(t, http.StatusOK, w.Code)

	payload := submitPayload()
	payload["paymentMethod"] = "online"
	w = f.do(t, http.MethodPost, "/api/checkout", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "CHECKOUT_FISH_ONLINE_UNSUPPORTED")
}
