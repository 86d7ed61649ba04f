package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/asif-dev/machbazar-storefront/internal/app/model"
	"github.com/asif-dev/machbazar-storefront/internal/app/repository"
	"github.com/asif-dev/machbazar-storefront/internal/websocket"
	"github.com/asif-dev/machbazar-storefront/pkg/commerce"
	"github.com/asif-dev/machbazar-storefront/pkg/logger"
	"github.com/asif-dev/machbazar-storefront/pkg/redis"
)

// submissionLockTTL bounds how long a distributed submission lock can
// outlive a crashed instance.
const submissionLockTTL = 30 * time.Second

// SubmitInput carries everything the buyer chose at checkout.
type SubmitInput struct {
	UserID        *uint
	GuestInfo     *model.GuestInfo
	Address       model.ShippingAddress
	Zone          model.ShippingZone
	PaymentMethod model.PaymentMethod
	Notes         string
}

// SubmitResult reports what the submission produced. After a partial
// success the regular order id is real and the cart retains only the fish
// lines, so the buyer can retry just the failed group.
type SubmitResult struct {
	Status         model.SubmissionStatus `json:"status"`
	RegularOrderID string                 `json:"regularOrderId,omitempty"`
	FishOrderID    string                 `json:"fishOrderId,omitempty"`
	PaymentURL     string                 `json:"paymentUrl,omitempty"`
	Message        string                 `json:"message,omitempty"`
}

// CheckoutService turns the current cart into upstream orders. Fish and
// regular lines go to separate order endpoints; the regular order is
// always submitted first.
type CheckoutService interface {
	Submit(ctx context.Context, cartKey string, input SubmitInput) (*SubmitResult, error)
}

type checkoutService struct {
	gateway        commerce.Gateway
	cartService    CartService
	quoteService   QuoteService
	cartRepo       repository.CartRepository
	submissionRepo repository.SubmissionRepository
	hub            *websocket.Hub

	mu       sync.Mutex
	inFlight map[string]bool
}

func NewCheckoutService(
	gateway commerce.Gateway,
	cartService CartService,
	quoteService QuoteService,
	cartRepo repository.CartRepository,
	submissionRepo repository.SubmissionRepository,
	hub *websocket.Hub,
) CheckoutService {
	return &checkoutService{
		gateway:        gateway,
		cartService:    cartService,
		quoteService:   quoteService,
		cartRepo:       cartRepo,
		submissionRepo: submissionRepo,
		hub:            hub,
		inFlight:       make(map[string]bool),
	}
}

// Submit validates the checkout input, splits the cart into its order
// groups, and submits them upstream: regular first, then fish. A fish
// failure after a regular success is a partial success, not a rollback;
// the surviving order stands and only the fish lines remain in the cart.
func (s *checkoutService) Submit(ctx context.Context, cartKey string, input SubmitInput) (*SubmitResult, error) {
	if !s.acquire(ctx, cartKey) {
		return nil, ErrSubmissionInFlight
	}
	defer s.release(ctx, cartKey)

	lines, err := s.cartRepo.Load(cartKey)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrCartEmpty
	}

	if input.Address.Empty() {
		return nil, ErrAddressRequired
	}
	if !input.Zone.Valid() {
		return nil, ErrZoneRequired
	}
	if !input.PaymentMethod.Valid() {
		return nil, ErrPaymentMethodRequired
	}
	if input.UserID == nil && !input.GuestInfo.Complete() {
		return nil, ErrGuestInfoRequired
	}

	quote, err := s.quoteService.Current(ctx, cartKey)
	if err != nil {
		return nil, err
	}
	if quote.Zone != input.Zone || quote.Address != input.Address {
		return nil, ErrQuoteNotReady
	}

	regularLines, fishLines := PartitionLines(lines)

	// Fish orders settle on delivery once the catch is weighed, so an
	// online payment cannot cover them. A mixed cart still goes through:
	// the regular order takes the online session and the fish group
	// settles on delivery.
	if len(fishLines) > 0 && len(regularLines) == 0 && input.PaymentMethod == model.PaymentOnline {
		return nil, ErrFishOnlinePaymentUnsupported
	}

	journal := &model.OrderSubmission{
		CartKey:       cartKey,
		UserID:        input.UserID,
		Zone:          input.Zone,
		PaymentMethod: input.PaymentMethod,
		ItemCount:     len(lines),
		ShippingFee:   quote.ShippingFee,
		WeightKg:      quote.TotalWeightKg,
	}
	for i := range lines {
		journal.Subtotal += lines[i].LineTotal()
	}
	journal.TotalAmount = journal.Subtotal + quote.ShippingFee

	result := &SubmitResult{}

	// Regular order first. The shipping fee always rides the regular
	// order; a fish-only checkout folds it into the fish total instead.
	if len(regularLines) > 0 {
		orderID, err := s.submitRegularOrder(ctx, regularLines, input, quote)
		if err != nil {
			journal.Status = model.SubmissionFailed
			journal.FailureDetail = fmt.Sprintf("regular order: %v", err)
			s.record(journal)
			return nil, fmt.Errorf("regular order submission failed: %w", err)
		}
		result.RegularOrderID = orderID
		journal.RegularOrderID = orderID
	}

	if len(fishLines) > 0 {
		orderID, err := s.submitFishOrder(ctx, fishLines, input, quote, len(regularLines) == 0)
		if err != nil {
			if result.RegularOrderID != "" {
				// Partial success: the regular order stands. Keep only
				// the fish lines so the buyer can retry that group.
				if _, dropErr := s.cartService.RemoveLines(cartKey, regularLines); dropErr != nil {
					logger.Error("failed to trim cart after partial success", dropErr, map[string]interface{}{
						"cart_key": cartKey,
					})
				}
				journal.Status = model.SubmissionPartial
				journal.FailureDetail = fmt.Sprintf("fish order: %v", err)
				s.record(journal)

				result.Status = model.SubmissionPartial
				result.Message = fmt.Sprintf("Your regular order %s was placed, but the fish order failed: %v", result.RegularOrderID, err)
				s.progress(cartKey, result)
				return result, nil
			}

			journal.Status = model.SubmissionFailed
			journal.FailureDetail = fmt.Sprintf("fish order: %v", err)
			s.record(journal)
			return nil, fmt.Errorf("fish order submission failed: %w", err)
		}
		result.FishOrderID = orderID
		journal.FishOrderID = orderID
	}

	if err := s.cartService.Clear(cartKey); err != nil {
		logger.Error("failed to clear cart after checkout", err, map[string]interface{}{
			"cart_key": cartKey,
		})
	}

	result.Status = model.SubmissionCompleted
	journal.Status = model.SubmissionCompleted

	// The session always targets the regular order; a fish-only cart
	// cannot reach the online branch.
	if input.PaymentMethod == model.PaymentOnline {
		session, err := s.gateway.CreatePaymentSession(ctx, commerce.PaymentSessionRequest{
			OrderID:       result.RegularOrderID,
			PaymentMethod: string(input.PaymentMethod),
		})
		if err != nil {
			logger.Error("failed to create payment session", err, map[string]interface{}{
				"cart_key": cartKey,
				"order_id": result.RegularOrderID,
			})
			journal.FailureDetail = fmt.Sprintf("payment session: %v", err)
			result.Message = "Order placed, but starting the online payment failed. Pay from your order page."
		} else {
			result.PaymentURL = session.PaymentURL
		}
	}

	s.record(journal)
	s.progress(cartKey, result)
	return result, nil
}

func (s *checkoutService) submitRegularOrder(ctx context.Context, lines []model.CartLine, input SubmitInput, quote *model.ShippingQuote) (string, error) {
	var subtotal float64
	req := commerce.OrderRequest{
		ShippingAddress:  toCommerceAddress(input.Address),
		PaymentMethod:    string(input.PaymentMethod),
		ShippingFee:      quote.ShippingFee,
		ShippingZone:     string(input.Zone),
		ShippingWeightKg: quote.TotalWeightKg,
		GuestInfo:        toCommerceGuest(input.GuestInfo),
	}
	for i := range lines {
		subtotal += lines[i].LineTotal()
		req.OrderItems = append(req.OrderItems, commerce.OrderItem{
			Product:   lines[i].ProductID,
			Quantity:  lines[i].Quantity,
			UnitPrice: lines[i].UnitPrice,
			VariantID: lines[i].VariantID,
		})
	}
	req.TotalPrice = subtotal
	req.TotalAmount = subtotal + quote.ShippingFee

	return s.gateway.CreateOrder(ctx, req)
}

// submitFishOrder builds and sends the fish order. feeRides is true for a
// fish-only checkout, where the shipping fee has no regular order to ride
// on and is folded into the fish total instead.
func (s *checkoutService) submitFishOrder(ctx context.Context, lines []model.CartLine, input SubmitInput, quote *model.ShippingQuote, feeRides bool) (string, error) {
	// the upstream fish endpoint only settles on delivery; under an online
	// checkout the session covers the regular order and this one stays COD
	paymentMethod := input.PaymentMethod
	if paymentMethod == model.PaymentOnline {
		paymentMethod = model.PaymentCashOnDelivery
	}

	var subtotal float64
	req := commerce.FishOrderRequest{
		ShippingAddress: toCommerceAddress(input.Address),
		PaymentMethod:   string(paymentMethod),
		GuestInfo:       toCommerceGuest(input.GuestInfo),
	}
	for i := range lines {
		sizeCategoryID, err := resolveSizeCategory(&lines[i])
		if err != nil {
			return "", err
		}
		subtotal += lines[i].LineTotal()
		req.OrderItems = append(req.OrderItems, commerce.FishOrderItem{
			FishProduct:     lines[i].ProductID,
			SizeCategoryID:  sizeCategoryID,
			RequestedWeight: LineWeightKg(&lines[i]),
			Notes:           input.Notes,
		})
	}
	req.TotalPrice = subtotal
	if feeRides {
		req.TotalPrice += quote.ShippingFee
	}

	return s.gateway.CreateFishOrder(ctx, req)
}

// resolveSizeCategory finds the size category id for a fish line: the
// selected variant if it names one, then the snapshotted variant, then the
// default band, then the first band. A fish line with no resolvable band
// aborts the whole fish order.
func resolveSizeCategory(line *model.CartLine) (string, error) {
	if line.VariantID != "" {
		for i := range line.SizeCategories {
			if line.SizeCategories[i].ID == line.VariantID {
				return line.VariantID, nil
			}
		}
	}
	if line.VariantSnapshot != nil {
		for i := range line.SizeCategories {
			if line.SizeCategories[i].ID == line.VariantSnapshot.ID {
				return line.VariantSnapshot.ID, nil
			}
		}
	}
	for i := range line.SizeCategories {
		if line.SizeCategories[i].IsDefault {
			return line.SizeCategories[i].ID, nil
		}
	}
	if len(line.SizeCategories) > 0 {
		return line.SizeCategories[0].ID, nil
	}
	return "", fmt.Errorf("%w for %s", ErrSizeCategoryUnresolved, line.Name)
}

// progress tells any open tabs watching this cart how the submission
// ended, so they can move off the checkout screen without polling.
func (s *checkoutService) progress(cartKey string, result *SubmitResult) {
	if s.hub == nil {
		return
	}
	s.hub.Publish(cartKey, websocket.CartEvent{
		Type:    websocket.EventOrderProgress,
		CartKey: cartKey,
		Payload: result,
	})
}

func (s *checkoutService) record(journal *model.OrderSubmission) {
	if err := s.submissionRepo.Create(journal); err != nil {
		logger.Error("failed to record order submission", err, map[string]interface{}{
			"cart_key": journal.CartKey,
			"status":   journal.Status,
		})
	}
}

// acquire takes the per-cart submission guard: the in-process flag plus,
// when redis is configured, a distributed lock shared across instances.
func (s *checkoutService) acquire(ctx context.Context, cartKey string) bool {
	s.mu.Lock()
	if s.inFlight[cartKey] {
		s.mu.Unlock()
		return false
	}
	s.inFlight[cartKey] = true
	s.mu.Unlock()

	ok, err := redis.AcquireSubmissionLock(ctx, cartKey, submissionLockTTL)
	if err != nil || !ok {
		s.mu.Lock()
		delete(s.inFlight, cartKey)
		s.mu.Unlock()
		return false
	}
	return true
}

func (s *checkoutService) release(ctx context.Context, cartKey string) {
	s.mu.Lock()
	delete(s.inFlight, cartKey)
	s.mu.Unlock()

	redis.ReleaseSubmissionLock(ctx, cartKey)
}

func toCommerceAddress(a model.ShippingAddress) commerce.ShippingAddress {
	return commerce.ShippingAddress{
		Name:     a.Name,
		Phone:    a.Phone,
		Address:  a.Address,
		Area:     a.Area,
		City:     a.City,
		Postcode: a.Postcode,
	}
}

func toCommerceGuest(g *model.GuestInfo) *commerce.GuestInfo {
	if g == nil {
		return nil
	}
	return &commerce.GuestInfo{Name: g.Name, Phone: g.Phone}
}
