package service

import (
	"math"

	"github.com/asif-dev/machbazar-storefront/internal/app/model"
	"github.com/asif-dev/machbazar-storefront/internal/app/repository"
	"github.com/asif-dev/machbazar-storefront/internal/websocket"
	"github.com/asif-dev/machbazar-storefront/pkg/logger"
)

// QuoteInvalidator discards any shipping quote held for a cart key. The
// cart service calls it on every mutation so a fee computed for a previous
// cart state can never be shown for the current one.
type QuoteInvalidator interface {
	Invalidate(cartKey string)
}

// CartService owns the line collection for each cart key. All aggregate
// values are derived from the lines on read; nothing is stored twice.
type CartService interface {
	Snapshot(cartKey string) (model.CartSnapshot, error)
	Add(cartKey string, product *model.Product, variantID string, quantity float64) (model.CartSnapshot, error)
	UpdateQuantity(cartKey, productID, variantID string, quantity float64) (model.CartSnapshot, error)
	Remove(cartKey, productID, variantID string) (model.CartSnapshot, error)
	RemoveLines(cartKey string, drop []model.CartLine) (model.CartSnapshot, error)
	Clear(cartKey string) error
}

type cartService struct {
	cartRepo repository.CartRepository
	quotes   QuoteInvalidator
	hub      *websocket.Hub
}

func NewCartService(cartRepo repository.CartRepository, quotes QuoteInvalidator, hub *websocket.Hub) CartService {
	return &cartService{
		cartRepo: cartRepo,
		quotes:   quotes,
		hub:      hub,
	}
}

func (s *cartService) Snapshot(cartKey string) (model.CartSnapshot, error) {
	lines, err := s.cartRepo.Load(cartKey)
	if err != nil {
		return model.CartSnapshot{}, err
	}
	return model.NewCartSnapshot(cartKey, lines), nil
}

// Add merges a product selection into the cart. An existing line with the
// same product and variant identity has its quantity increased; anything
// else starts a new line with price, stock, measurement, and unit
// snapshotted from the catalog at this moment.
func (s *cartService) Add(cartKey string, product *model.Product, variantID string, quantity float64) (model.CartSnapshot, error) {
	lines, err := s.cartRepo.Load(cartKey)
	if err != nil {
		return model.CartSnapshot{}, err
	}

	measurement, unit := ResolveMeasurement(product, variantID)

	price := product.Price
	stock := product.Stock
	var snapshot *model.Variant
	if variant := product.FindVariant(variantID); variant != nil {
		if variant.Price > 0 {
			price = variant.Price
		}
		stock = variant.Stock
		v := *variant
		snapshot = &v
	}

	found := false
	for i := range lines {
		if lines[i].Matches(product.ID, variantID) {
			lines[i].Quantity = clampQuantity(lines[i].Quantity+quantity, lines[i].Stock, unit)
			lines[i].TotalMeasurement = measurement * lines[i].Quantity
			found = true
			break
		}
	}

	if !found {
		line := model.CartLine{
			ProductID:       product.ID,
			VariantID:       variantID,
			Name:            product.Name,
			Category:        product.Category,
			ImageURL:        product.ImageURL,
			IsFish:          product.IsFish,
			SizeCategories:  product.SizeCategories,
			VariantSnapshot: snapshot,
			Quantity:        clampQuantity(quantity, stock, unit),
			UnitPrice:       price,
			Stock:           stock,
			Measurement:     measurement,
			Unit:            unit,
		}
		// the kind tag is stamped with the selected variant in view, so a
		// by-piece variant of a fish-category product lands in the
		// regular group
		line.Kind = ClassifyLine(&line)
		line.TotalMeasurement = measurement * line.Quantity
		lines = append(lines, line)
	}

	return s.commit(cartKey, lines)
}

// UpdateQuantity sets a line's quantity. A target below one removes the
// line entirely; there is no zero-quantity line state.
func (s *cartService) UpdateQuantity(cartKey, productID, variantID string, quantity float64) (model.CartSnapshot, error) {
	if quantity < 1 {
		return s.Remove(cartKey, productID, variantID)
	}

	lines, err := s.cartRepo.Load(cartKey)
	if err != nil {
		return model.CartSnapshot{}, err
	}

	found := false
	for i := range lines {
		if lines[i].Matches(productID, variantID) {
			lines[i].Quantity = clampQuantity(quantity, lines[i].Stock, lines[i].Unit)
			measurement, _ := ResolveLineMeasurement(&lines[i])
			lines[i].TotalMeasurement = measurement * lines[i].Quantity
			found = true
			break
		}
	}
	if !found {
		// unknown identity is a no-op; the caller gets the cart as is
		return model.NewCartSnapshot(cartKey, lines), nil
	}

	return s.commit(cartKey, lines)
}

func (s *cartService) Remove(cartKey, productID, variantID string) (model.CartSnapshot, error) {
	lines, err := s.cartRepo.Load(cartKey)
	if err != nil {
		return model.CartSnapshot{}, err
	}

	kept := make([]model.CartLine, 0, len(lines))
	for _, line := range lines {
		if !line.Matches(productID, variantID) {
			kept = append(kept, line)
		}
	}

	return s.commit(cartKey, kept)
}

// RemoveLines drops the given lines from the cart by identity. Checkout
// uses it after a partial success to keep only the lines whose order group
// failed.
func (s *cartService) RemoveLines(cartKey string, drop []model.CartLine) (model.CartSnapshot, error) {
	lines, err := s.cartRepo.Load(cartKey)
	if err != nil {
		return model.CartSnapshot{}, err
	}

	kept := make([]model.CartLine, 0, len(lines))
	for _, line := range lines {
		dropped := false
		for i := range drop {
			if line.Matches(drop[i].ProductID, drop[i].VariantID) {
				dropped = true
				break
			}
		}
		if !dropped {
			kept = append(kept, line)
		}
	}

	return s.commit(cartKey, kept)
}

func (s *cartService) Clear(cartKey string) error {
	if err := s.cartRepo.Delete(cartKey); err != nil {
		return err
	}
	if s.quotes != nil {
		s.quotes.Invalidate(cartKey)
	}
	if s.hub != nil {
		s.hub.Publish(cartKey, websocket.CartEvent{
			Type:    websocket.EventCartCleared,
			CartKey: cartKey,
		})
	}
	return nil
}

// commit persists the new line collection, drops any standing quote, and
// notifies open tabs. A persistence failure is logged but does not fail
// the mutation; the caller still gets the computed snapshot.
func (s *cartService) commit(cartKey string, lines []model.CartLine) (model.CartSnapshot, error) {
	if err := s.cartRepo.Save(cartKey, lines); err != nil {
		logger.Error("failed to persist cart", err, map[string]interface{}{
			"cart_key": cartKey,
			"lines":    len(lines),
		})
	}

	if s.quotes != nil {
		s.quotes.Invalidate(cartKey)
	}

	snapshot := model.NewCartSnapshot(cartKey, lines)

	if s.hub != nil {
		s.hub.Publish(cartKey, websocket.CartEvent{
			Type:    websocket.EventCartUpdated,
			CartKey: cartKey,
			Payload: snapshot,
		})
	}

	return snapshot, nil
}

// clampQuantity enforces the stock ceiling and, for piece-denominated
// lines, whole quantities of at least one.
func clampQuantity(quantity, stock float64, unit string) float64 {
	if stock > 0 && quantity > stock {
		quantity = stock
	}
	if unit == model.UnitPiece {
		quantity = math.Floor(quantity)
		if quantity < 1 {
			quantity = 1
		}
	}
	if quantity < 0 {
		quantity = 0
	}
	return quantity
}
