package commerce

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexFloat is a float64 that tolerates the upstream catalog's loose
// measurement data: JSON numbers, numeric strings, and anything else,
// which decodes to zero instead of failing the whole payload.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*f = 0
		return nil
	}
	if len(s) >= 2 && s[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			*f = 0
			return nil
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = FlexFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		*f = 0
		return nil
	}
	*f = FlexFloat(v)
	return nil
}

// FlexID is an identifier that may arrive as a JSON string or number.
type FlexID string

func (id *FlexID) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*id = ""
		return nil
	}
	if len(s) >= 2 && s[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*id = FlexID(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = FlexID(n.String())
	return nil
}

// SizeCategory is a fish-specific purchasable size band
type SizeCategory struct {
	ID         FlexID    `json:"id"`
	Name       string    `json:"name"`
	PricePerKG FlexFloat `json:"pricePerKg"`
	IsDefault  bool      `json:"isDefault"`
}

// Variant is a purchasable sub-option of a product
type Variant struct {
	ID          FlexID    `json:"id"`
	Name        string    `json:"name"`
	Price       FlexFloat `json:"price"`
	Stock       FlexFloat `json:"stock"`
	Measurement FlexFloat `json:"measurement"`
	Unit        string    `json:"unit"`
}

// Product is a catalog item as served by the upstream API
type Product struct {
	ID             FlexID         `json:"id"`
	Name           string         `json:"name"`
	Category       string         `json:"category"`
	Price          FlexFloat      `json:"price"`
	Stock          FlexFloat      `json:"stock"`
	Measurement    FlexFloat      `json:"measurement"`
	Unit           string         `json:"unit"`
	ImageURL       string         `json:"imageUrl"`
	IsFish         bool           `json:"isFish"`
	Variants       []Variant      `json:"variants,omitempty"`
	SizeCategories []SizeCategory `json:"sizeCategories,omitempty"`
}

// ProductListResponse wraps the upstream product listing
type ProductListResponse struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Page     int       `json:"page"`
}

// ShippingAddress mirrors the address fields the upstream API expects
type ShippingAddress struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Area     string `json:"area,omitempty"`
	City     string `json:"city,omitempty"`
	Postcode string `json:"postcode,omitempty"`
}

// GuestInfo identifies an unauthenticated buyer
type GuestInfo struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// QuoteItem is one cart line in a shipping quote request
type QuoteItem struct {
	Product   string  `json:"product"`
	Quantity  float64 `json:"quantity"`
	VariantID string  `json:"variantId,omitempty"`
}

// QuoteRequest asks for the delivery fee for a set of items in a zone
type QuoteRequest struct {
	OrderItems      []QuoteItem     `json:"orderItems"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	ShippingZone    string          `json:"shippingZone"`
}

// QuoteResponse is the upstream answer to a quote request
type QuoteResponse struct {
	ShippingFee   float64 `json:"shippingFee"`
	TotalWeightKg float64 `json:"totalWeightKg"`
	Zone          string  `json:"zone"`
}

// OrderItem is one line of a regular order
type OrderItem struct {
	Product   string  `json:"product"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	VariantID string  `json:"variantId,omitempty"`
}

// OrderRequest creates a regular order upstream
type OrderRequest struct {
	OrderItems       []OrderItem     `json:"orderItems"`
	ShippingAddress  ShippingAddress `json:"shippingAddress"`
	PaymentMethod    string          `json:"paymentMethod"`
	TotalPrice       float64         `json:"totalPrice"`
	TotalAmount      float64         `json:"totalAmount"`
	ShippingFee      float64         `json:"shippingFee"`
	ShippingZone     string          `json:"shippingZone"`
	ShippingWeightKg float64         `json:"shippingWeightKg"`
	GuestInfo        *GuestInfo      `json:"guestInfo,omitempty"`
}

// FishOrderItem is one line of a fish order; fish lines are denominated in
// size category and requested weight rather than flat quantity/price
type FishOrderItem struct {
	FishProduct     string  `json:"fishProduct"`
	SizeCategoryID  string  `json:"sizeCategoryId"`
	RequestedWeight float64 `json:"requestedWeight"`
	Notes           string  `json:"notes,omitempty"`
}

// FishOrderRequest creates a fish order upstream
type FishOrderRequest struct {
	OrderItems      []FishOrderItem `json:"orderItems"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
	TotalPrice      float64         `json:"totalPrice"`
	GuestInfo       *GuestInfo      `json:"guestInfo,omitempty"`
}

// PaymentSessionRequest starts an online payment for an order
type PaymentSessionRequest struct {
	OrderID       string `json:"orderId"`
	PaymentMethod string `json:"paymentMethod"`
}

// PaymentSessionResponse carries the gateway redirect URL
type PaymentSessionResponse struct {
	Success    bool   `json:"success"`
	PaymentURL string `json:"paymentUrl"`
}

// orderCreatedResponse covers the shapes order-creation responses arrive
// in: a top-level id, or an id nested under order, data, or fishOrder.
type orderCreatedResponse struct {
	ID        FlexID `json:"id"`
	OrderID   FlexID `json:"orderId"`
	Order     *struct {
		ID FlexID `json:"id"`
	} `json:"order"`
	Data *struct {
		ID FlexID `json:"id"`
	} `json:"data"`
	FishOrder *struct {
		ID FlexID `json:"id"`
	} `json:"fishOrder"`
}

func (r *orderCreatedResponse) orderID() string {
	if r.ID != "" {
		return string(r.ID)
	}
	if r.OrderID != "" {
		return string(r.OrderID)
	}
	if r.Order != nil && r.Order.ID != "" {
		return string(r.Order.ID)
	}
	if r.Data != nil && r.Data.ID != "" {
		return string(r.Data.ID)
	}
	if r.FishOrder != nil && r.FishOrder.ID != "" {
		return string(r.FishOrder.ID)
	}
	return ""
}

// ErrorResponse represents an error body from the upstream API
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func (e *ErrorResponse) String() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

func (e *ErrorResponse) Format(status int) string {
	return fmt.Sprintf("status=%d message=%s", status, e.String())
}
