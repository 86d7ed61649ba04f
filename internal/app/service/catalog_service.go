package service

import (
	"context"

	"github.com/asif-dev/machbazar-storefront/internal/app/model"
	"github.com/asif-dev/machbazar-storefront/pkg/commerce"
)

// ProductPage is one page of normalized catalog products.
type ProductPage struct {
	Products []model.Product `json:"products"`
	Total    int             `json:"total"`
	Page     int             `json:"page"`
}

// CatalogService proxies the upstream catalog and normalizes every product
// at the boundary: tolerant numeric fields become plain floats and the
// order-group kind is tagged once, here, so nothing downstream re-runs the
// classification heuristics.
type CatalogService interface {
	ListProducts(ctx context.Context, params commerce.ProductListParams) (*ProductPage, error)
	GetProduct(ctx context.Context, productID string) (*model.Product, error)
}

type catalogService struct {
	gateway commerce.Gateway
}

func NewCatalogService(gateway commerce.Gateway) CatalogService {
	return &catalogService{gateway: gateway}
}

func (s *catalogService) ListProducts(ctx context.Context, params commerce.ProductListParams) (*ProductPage, error) {
	resp, err := s.gateway.GetProducts(ctx, params)
	if err != nil {
		return nil, err
	}

	page := &ProductPage{
		Products: make([]model.Product, 0, len(resp.Products)),
		Total:    resp.Total,
		Page:     resp.Page,
	}
	for i := range resp.Products {
		page.Products = append(page.Products, normalizeProduct(&resp.Products[i]))
	}
	return page, nil
}

func (s *catalogService) GetProduct(ctx context.Context, productID string) (*model.Product, error) {
	upstream, err := s.gateway.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	product := normalizeProduct(upstream)
	return &product, nil
}

func normalizeProduct(p *commerce.Product) model.Product {
	product := model.Product{
		ID:          string(p.ID),
		Name:        p.Name,
		Category:    p.Category,
		Price:       float64(p.Price),
		Stock:       float64(p.Stock),
		Measurement: float64(p.Measurement),
		Unit:        p.Unit,
		ImageURL:    p.ImageURL,
		IsFish:      p.IsFish,
	}

	for i := range p.Variants {
		product.Variants = append(product.Variants, model.Variant{
			ID:          string(p.Variants[i].ID),
			Name:        p.Variants[i].Name,
			Price:       float64(p.Variants[i].Price),
			Stock:       float64(p.Variants[i].Stock),
			Measurement: float64(p.Variants[i].Measurement),
			Unit:        p.Variants[i].Unit,
		})
	}
	for i := range p.SizeCategories {
		product.SizeCategories = append(product.SizeCategories, model.SizeCategory{
			ID:         string(p.SizeCategories[i].ID),
			Name:       p.SizeCategories[i].Name,
			PricePerKG: float64(p.SizeCategories[i].PricePerKG),
			IsDefault:  p.SizeCategories[i].IsDefault,
		})
	}

	product.Kind = ClassifyProduct(&product)
	return product
}
