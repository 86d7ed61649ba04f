package service

import (
	"context"

	"github.com/asif-dev/machbazar-storefront/pkg/commerce"
)

// stubGateway records requests and plays back canned responses.
type stubGateway struct {
	products    *commerce.ProductListResponse
	product     *commerce.Product
	productErr  error
	quote       *commerce.QuoteResponse
	quoteErr    error
	quoteCalls  int
	quoteReqs   []commerce.QuoteRequest
	orderID     string
	orderErr    error
	orderReqs   []commerce.OrderRequest
	fishID      string
	fishErr     error
	fishReqs    []commerce.FishOrderRequest
	session     *commerce.PaymentSessionResponse
	sessionErr  error
	sessionReqs []commerce.PaymentSessionRequest

	// beforeQuoteReply runs after the request is recorded and before the
	// canned response returns, simulating a concurrent cart change.
	beforeQuoteReply func()
}

var _ commerce.Gateway = (*stubGateway)(nil)

func quoteReply(fee, weightKg float64) *commerce.QuoteResponse {
	return &commerce.QuoteResponse{
		ShippingFee:   fee,
		TotalWeightKg: weightKg,
		Zone:          "inside_dhaka",
	}
}

func (g *stubGateway) GetProducts(ctx context.Context, params commerce.ProductListParams) (*commerce.ProductListResponse, error) {
	if g.products == nil {
		return &commerce.ProductListResponse{}, nil
	}
	return g.products, nil
}

func (g *stubGateway) GetProduct(ctx context.Context, productID string) (*commerce.Product, error) {
	if g.productErr != nil {
		return nil, g.productErr
	}
	return g.product, nil
}

func (g *stubGateway) GetShippingQuote(ctx context.Context, req commerce.QuoteRequest) (*commerce.QuoteResponse, error) {
	g.quoteCalls++
	g.quoteReqs = append(g.quoteReqs, req)
	if g.beforeQuoteReply != nil {
		g.beforeQuoteReply()
	}
	if g.quoteErr != nil {
		return nil, g.quoteErr
	}
	if g.quote == nil {
		return &commerce.QuoteResponse{}, nil
	}
	return g.quote, nil
}

func (g *stubGateway) CreateOrder(ctx context.Context, req commerce.OrderRequest) (string, error) {
	g.orderReqs = append(g.orderReqs, req)
	if g.orderErr != nil {
		return "", g.orderErr
	}
	return g.orderID, nil
}

func (g *stubGateway) CreateFishOrder(ctx context.Context, req commerce.FishOrderRequest) (string, error) {
	g.fishReqs = append(g.fishReqs, req)
	if g.fishErr != nil {
		return "", g.fishErr
	}
	return g.fishID, nil
}

func (g *stubGateway) CreatePaymentSession(ctx context.Context, req commerce.PaymentSessionRequest) (*commerce.PaymentSessionResponse, error) {
	g.sessionReqs = append(g.sessionReqs, req)
	if g.sessionErr != nil {
		return nil, g.sessionErr
	}
	if g.session == nil {
		return &commerce.PaymentSessionResponse{Success: true, PaymentURL: "https://pay.example.com/session"}, nil
	}
	return g.session, nil
}
