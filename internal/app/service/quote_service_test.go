package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asif-dev/machbazar-storefront/internal/app/model"
	"github.com/asif-dev/machbazar-storefront/internal/app/repository"
	"github.com/asif-dev/machbazar-storefront/internal/db"
	"github.com/asif-dev/machbazar-storefront/internal/websocket"
	"github.com/asif-dev/machbazar-storefront/pkg/commerce"
)

func setupQuoteService(t *testing.T, gateway *stubGateway) (QuoteService, repository.CartRepository) {
	t.Helper()
	repo := repository.NewCartRepository(db.NewTestDB(t))
	return NewQuoteService(gateway, repo, 15*time.Minute, nil), repo
}

// memoryQuoteMirror stands in for the redis mirror shared by replicas.
type memoryQuoteMirror struct {
	quotes map[string]model.ShippingQuote
}

func newMemoryQuoteMirror() *memoryQuoteMirror {
	return &memoryQuoteMirror{quotes: make(map[string]model.ShippingQuote)}
}

func (m *memoryQuoteMirror) Store(_ context.Context, cartKey string, quote *model.ShippingQuote, _ time.Duration) {
	m.quotes[cartKey] = *quote
}

func (m *memoryQuoteMirror) Fetch(_ context.Context, cartKey string) *model.ShippingQuote {
	quote, ok := m.quotes[cartKey]
	if !ok {
		return nil
	}
	return &quote
}

func (m *memoryQuoteMirror) Drop(_ context.Context, cartKey string) {
	delete(m.quotes, cartKey)
}

func seedCart(t *testing.T, repo repository.CartRepository, cartKey string) {
	t.Helper()
	require.NoError(t, repo.Save(cartKey, []model.CartLine{
		{ProductID: "p-rice", Quantity: 2, UnitPrice: 82, Measurement: 1, Unit: model.UnitKilogram},
	}))
}

func dhakaAddress() model.ShippingAddress {
	return model.ShippingAddress{Name: "Asif", Phone: "01700000000", Address: "Mirpur 10, Dhaka"}
}

func TestQuoteService_RefreshRequiresZone(t *testing.T) {
	gateway := &stubGateway{}
	svc, repo := setupQuoteService(t, gateway)
	seedCart(t, repo, "user:1")

	_, err := svc.Refresh(context.Background(), "user:1", dhakaAddress(), "")
	assert.ErrorIs(t, err, ErrZoneRequired)

	_, err = svc.Refresh(context.Background(), "user:1", dhakaAddress(), "somewhere_else")
	assert.ErrorIs(t, err, ErrZoneRequired)

	// no upstream call happens without a valid zone
	assert.Zero(t, gateway.quoteCalls)
}

func TestQuoteService_RefreshEmptyCart(t *testing.T) {
	gateway := &stubGateway{}
	svc, _ := setupQuoteService(t, gateway)

	_, err := svc.Refresh(context.Background(), "user:1", dhakaAddress(), model.ZoneInsideDhaka)
	assert.ErrorIs(t, err, ErrCartEmpty)
	assert.Zero(t, gateway.quoteCalls)
}

func TestQuoteService_RefreshStoresQuote(t *testing.T) {
	gateway := &stubGateway{
		quote: &commerce.QuoteResponse{ShippingFee: 60, TotalWeightKg: 2, Zone: "inside_dhaka"},
	}
	svc, repo := setupQuoteService(t, gateway)
	seedCart(t, repo, "user:1")

	quote, err := svc.Refresh(context.Background(), "user:1", dhakaAddress(), model.ZoneInsideDhaka)
	require.NoError(t, err)
	assert.Equal(t, float64(60), quote.ShippingFee)
	assert.Equal(t, float64(2), quote.TotalWeightKg)
	assert.Equal(t, model.ZoneInsideDhaka, quote.Zone)

	// the request carried every cart line
	require.Len(t, gateway.quoteReqs, 1)
	require.Len(t, gateway.quoteReqs[0].OrderItems, 1)
	assert.Equal(t, "p-rice", gateway.quoteReqs[0].OrderItems[0].Product)

	current, err := svc.Current(context.Background(), "user:1")
	require.NoError(t, err)
	assert.Equal(t, float64(60), current.ShippingFee)
}

func TestQuoteService_StaleResponseIsDiscarded(t *testing.T) {
	gateway := &stubGateway{
		quote: &commerce.QuoteResponse{ShippingFee: 60, TotalWeightKg: 2, Zone: "inside_dhaka"},
	}
	svc, repo := setupQuoteService(t, gateway)
	seedCart(t, repo, "user:1")

	// the cart mutates while the quote request is in flight
	gateway.beforeQuoteReply = func() {
		svc.Invalidate("user:1")
	}

	_, err := svc.Refresh(context.Background(), "user:1", dhakaAddress(), model.ZoneInsideDhaka)
	assert.ErrorIs(t, err, ErrQuoteSuperseded)

	_, err = svc.Current(context.Background(), "user:1")
	assert.ErrorIs(t, err, ErrQuoteNotReady)
}

func TestQuoteService_ZoneChangeSupersedesInFlightRefresh(t *testing.T) {
	gateway := &stubGateway{
		quote: &commerce.QuoteResponse{ShippingFee: 60, TotalWeightKg: 2, Zone: "inside_dhaka"},
	}
	svc, repo := setupQuoteService(t, gateway)
	seedCart(t, repo, "user:1")

	// while the inside-Dhaka request is in flight the buyer switches
	// zones, and that refresh completes first
	gateway.beforeQuoteReply = func() {
		gateway.beforeQuoteReply = nil
		gateway.quote = &commerce.QuoteResponse{ShippingFee: 120, TotalWeightKg: 2, Zone: "outside_dhaka"}
		_, err := svc.Refresh(context.Background(), "user:1", dhakaAddress(), model.ZoneOutsideDhaka)
		require.NoError(t, err)
	}

	_, err := svc.Refresh(context.Background(), "user:1", dhakaAddress(), model.ZoneInsideDhaka)
	assert.ErrorIs(t, err, ErrQuoteSuperseded)

	// the late inside-Dhaka response never overwrites the newer quote
	current, err := svc.Current(context.Background(), "user:1")
	require.NoError(t, err)
	assert.Equal(t, model.ZoneOutsideDhaka, current.Zone)
	assert.Equal(t, float64(120), current.ShippingFee)
}

func TestQuoteService_RefreshRecordsAddress(t *testing.T) {
	gateway := &stubGateway{quote: quoteReply(60, 2)}
	svc, repo := setupQuoteService(t, gateway)
	seedCart(t, repo, "user:1")

	quote, err := svc.Refresh(context.Background(), "user:1", dhakaAddress(), model.ZoneInsideDhaka)
	require.NoError(t, err)
	assert.Equal(t, dhakaAddress(), quote.Address)

	current, err := svc.Current(context.Background(), "user:1")
	require.NoError(t, err)
	assert.Equal(t, dhakaAddress(), current.Address)
}

func TestQuoteService_RefreshPublishesQuoteEvent(t *testing.T) {
	gateway := &stubGateway{quote: quoteReply(60, 2)}
	repo := repository.NewCartRepository(db.NewTestDB(t))
	hub := websocket.NewHub()
	go hub.Run()
	svc := NewQuoteService(gateway, repo, 15*time.Minute, hub)
	seedCart(t, repo, "user:1")

	watcher := &websocket.Client{Hub: hub, CartKey: "user:1", Send: make(chan []byte, 4)}
	hub.Register(watcher)
	require.Eventually(t, func() bool { return hub.Watchers("user:1") == 1 }, time.Second, 5*time.Millisecond)

	_, err := svc.Refresh(context.Background(), "user:1", dhakaAddress(), model.ZoneInsideDhaka)
	require.NoError(t, err)

	select {
	case raw := <-watcher.Send:
		var event websocket.CartEvent
		require.NoError(t, json.Unmarshal(raw, &event))
		assert.Equal(t, websocket.EventQuoteUpdated, event.Type)
		assert.Equal(t, "user:1", event.CartKey)
	case <-time.After(time.Second):
		t.Fatal("no quote event delivered")
	}
}

func TestQuoteService_CurrentFallsBackToMirroredQuote(t *testing.T) {
	gateway := &stubGateway{quote: quoteReply(60, 2)}
	repo := repository.NewCartRepository(db.NewTestDB(t))
	mirror := newMemoryQuoteMirror()
	seedCart(t, repo, "user:1")

	replicaA := NewQuoteService(gateway, repo, 15*time.Minute, nil).(*quoteService)
	replicaA.mirror = mirror
	_, err := replicaA.Refresh(context.Background(), "user:1", dhakaAddress(), model.ZoneInsideDhaka)
	require.NoError(t, err)

	// a replica with no in-process state serves the mirrored quote
	replicaB := NewQuoteService(gateway, repo, 15*time.Minute, nil).(*quoteService)
	replicaB.mirror = mirror
	current, err := replicaB.Current(context.Background(), "user:1")
	require.NoError(t, err)
	assert.Equal(t, float64(60), current.ShippingFee)

	// a mutation drops the mirror for every replica
	replicaA.Invalidate("user:1")
	_, err = replicaB.Current(context.Background(), "user:1")
	assert.ErrorIs(t, err, ErrQuoteNotReady)
}

func TestQuoteService_InvalidateDropsStandingQuote(t *testing.T) {
	gateway := &stubGateway{
		quote: &commerce.QuoteResponse{ShippingFee: 120, Zone: "outside_dhaka"},
	}
	svc, repo := setupQuoteService(t, gateway)
	seedCart(t, repo, "user:1")

	_, err := svc.Refresh(context.Background(), "user:1", dhakaAddress(), model.ZoneOutsideDhaka)
	require.NoError(t, err)

	svc.Invalidate("user:1")

	_, err = svc.Current(context.Background(), "user:1")
	assert.ErrorIs(t, err, ErrQuoteNotReady)
}

func TestQuoteService_QuoteAgesOut(t *testing.T) {
	gateway := &stubGateway{
		quote: &commerce.QuoteResponse{ShippingFee: 60, Zone: "inside_dhaka"},
	}
	repo := repository.NewCartRepository(db.NewTestDB(t))
	svc := NewQuoteService(gateway, repo, 10*time.Millisecond, nil)
	seedCart(t, repo, "user:1")

	_, err := svc.Refresh(context.Background(), "user:1", dhakaAddress(), model.ZoneInsideDhaka)
	require.NoError(t, err)

	time.Sleep(25 * time.Millisecond)

	_, err = svc.Current(context.Background(), "user:1")
	assert.ErrorIs(t, err, ErrQuoteNotReady)
}

func TestQuoteService_QuotesAreIsolatedPerCartKey(t *testing.T) {
	gateway := &stubGateway{
		quote: &commerce.QuoteResponse{ShippingFee: 60, Zone: "inside_dhaka"},
	}
	svc, repo := setupQuoteService(t, gateway)
	seedCart(t, repo, "user:1")
	seedCart(t, repo, "user:2")

	_, err := svc.Refresh(context.Background(), "user:1", dhakaAddress(), model.ZoneInsideDhaka)
	require.NoError(t, err)
	_, err = svc.Refresh(context.Background(), "user:2", dhakaAddress(), model.ZoneInsideDhaka)
	require.NoError(t, err)

	svc.Invalidate("user:1")

	_, err = svc.Current(context.Background(), "user:1")
	assert.ErrorIs(t, err, ErrQuoteNotReady)

	_, err = svc.Current(context.Background(), "user:2")
	assert.NoError(t, err)
}
