package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/asif-dev/machbazar-storefront/internal/app/model"
	"github.com/asif-dev/machbazar-storefront/internal/app/repository"
	"github.com/asif-dev/machbazar-storefront/internal/websocket"
	"github.com/asif-dev/machbazar-storefront/pkg/commerce"
	"github.com/asif-dev/machbazar-storefront/pkg/redis"
)

// QuoteService holds at most one shipping quote per cart key and guarantees
// it was computed for the cart's current contents, address, and zone. Every
// cart mutation and every new refresh bumps a per-key generation counter; a
// quote response arriving for an older generation is discarded, never
// stored.
type QuoteService interface {
	QuoteInvalidator
	Refresh(ctx context.Context, cartKey string, address model.ShippingAddress, zone model.ShippingZone) (*model.ShippingQuote, error)
	Current(ctx context.Context, cartKey string) (*model.ShippingQuote, error)
}

// quoteMirror shares quote state across replicas. The redis-backed
// implementation degrades to a no-op when no client is configured.
type quoteMirror interface {
	Store(ctx context.Context, cartKey string, quote *model.ShippingQuote, ttl time.Duration)
	Fetch(ctx context.Context, cartKey string) *model.ShippingQuote
	Drop(ctx context.Context, cartKey string)
}

type redisQuoteMirror struct{}

func (redisQuoteMirror) Store(ctx context.Context, cartKey string, quote *model.ShippingQuote, ttl time.Duration) {
	payload, err := json.Marshal(quote)
	if err != nil {
		return
	}
	redis.MirrorQuote(ctx, cartKey, payload, ttl)
}

func (redisQuoteMirror) Fetch(ctx context.Context, cartKey string) *model.ShippingQuote {
	payload, err := redis.GetMirroredQuote(ctx, cartKey)
	if err != nil || payload == nil {
		return nil
	}
	var quote model.ShippingQuote
	if err := json.Unmarshal(payload, &quote); err != nil {
		return nil
	}
	return &quote
}

func (redisQuoteMirror) Drop(ctx context.Context, cartKey string) {
	redis.DropQuote(ctx, cartKey)
}

type quoteState struct {
	quote      model.ShippingQuote
	generation uint64
	fetchedAt  time.Time
}

type quoteService struct {
	gateway  commerce.Gateway
	cartRepo repository.CartRepository
	ttl      time.Duration
	hub      *websocket.Hub
	mirror   quoteMirror

	mu          sync.Mutex
	generations map[string]uint64
	quotes      map[string]quoteState
}

func NewQuoteService(gateway commerce.Gateway, cartRepo repository.CartRepository, ttl time.Duration, hub *websocket.Hub) QuoteService {
	return &quoteService{
		gateway:     gateway,
		cartRepo:    cartRepo,
		ttl:         ttl,
		hub:         hub,
		mirror:      redisQuoteMirror{},
		generations: make(map[string]uint64),
		quotes:      make(map[string]quoteState),
	}
}

// Refresh computes a fresh quote for the cart's current contents. The zone
// must be chosen explicitly; there is no default. No upstream call is made
// for an empty cart or a missing zone.
func (s *quoteService) Refresh(ctx context.Context, cartKey string, address model.ShippingAddress, zone model.ShippingZone) (*model.ShippingQuote, error) {
	if !zone.Valid() {
		return nil, ErrZoneRequired
	}

	lines, err := s.cartRepo.Load(cartKey)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrCartEmpty
	}

	// every refresh supersedes any in-flight request for the key, so a
	// late response computed for an older zone or address can never land
	// on top of a newer one
	s.mu.Lock()
	s.generations[cartKey]++
	generation := s.generations[cartKey]
	s.mu.Unlock()

	// the superseded mirror must not serve reads while this request is in
	// flight; it is re-stored on success
	s.mirror.Drop(ctx, cartKey)

	req := commerce.QuoteRequest{
		ShippingZone: string(zone),
		ShippingAddress: commerce.ShippingAddress{
			Name:     address.Name,
			Phone:    address.Phone,
			Address:  address.Address,
			Area:     address.Area,
			City:     address.City,
			Postcode: address.Postcode,
		},
	}
	for i := range lines {
		req.OrderItems = append(req.OrderItems, commerce.QuoteItem{
			Product:   lines[i].ProductID,
			Quantity:  lines[i].Quantity,
			VariantID: lines[i].VariantID,
		})
	}

	resp, err := s.gateway.GetShippingQuote(ctx, req)
	if err != nil {
		return nil, err
	}

	quote := model.ShippingQuote{
		ShippingFee:   resp.ShippingFee,
		TotalWeightKg: resp.TotalWeightKg,
		Zone:          zone,
		Address:       address,
	}

	s.mu.Lock()
	if s.generations[cartKey] != generation {
		s.mu.Unlock()
		return nil, ErrQuoteSuperseded
	}
	s.quotes[cartKey] = quoteState{
		quote:      quote,
		generation: generation,
		fetchedAt:  time.Now(),
	}
	s.mu.Unlock()

	s.mirror.Store(ctx, cartKey, &quote, s.ttl)

	if s.hub != nil {
		s.hub.Publish(cartKey, websocket.CartEvent{
			Type:    websocket.EventQuoteUpdated,
			CartKey: cartKey,
			Payload: quote,
		})
	}

	return &quote, nil
}

// Current returns the standing quote for a cart key, if one exists for the
// cart's current generation and has not aged out.
func (s *quoteService) Current(ctx context.Context, cartKey string) (*model.ShippingQuote, error) {
	s.mu.Lock()
	state, ok := s.quotes[cartKey]
	generation := s.generations[cartKey]
	s.mu.Unlock()

	if ok && state.generation == generation && time.Since(state.fetchedAt) < s.ttl {
		quote := state.quote
		return &quote, nil
	}

	// another replica may hold the quote. A mutation anywhere drops the
	// mirror, so a hit here is as trustworthy as a local one.
	if quote := s.mirror.Fetch(ctx, cartKey); quote != nil {
		return quote, nil
	}

	return nil, ErrQuoteNotReady
}

// Invalidate bumps the cart's generation and drops any standing quote.
// Called on every cart mutation and when the address or zone changes.
func (s *quoteService) Invalidate(cartKey string) {
	s.mu.Lock()
	s.generations[cartKey]++
	delete(s.quotes, cartKey)
	s.mu.Unlock()

	s.mirror.Drop(context.Background(), cartKey)
}
