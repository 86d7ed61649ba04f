package model

import "time"

// CartLine is one entry in the cart: a product (and optional variant) at a
// given quantity, with price/stock/measurement snapshotted at add time.
// The snapshot never tracks later catalog changes.
type CartLine struct {
	ProductID        string         `json:"productId"`
	VariantID        string         `json:"variantId,omitempty"`
	Name             string         `json:"name"`
	Category         string         `json:"category,omitempty"`
	ImageURL         string         `json:"imageUrl,omitempty"`
	Kind             ProductKind    `json:"kind,omitempty"`
	IsFish           bool           `json:"isFish,omitempty"`
	SizeCategories   []SizeCategory `json:"sizeCategories,omitempty"`
	VariantSnapshot  *Variant       `json:"variantSnapshot,omitempty"`
	Quantity         float64        `json:"quantity"`
	UnitPrice        float64        `json:"unitPrice"`
	Stock            float64        `json:"stock"`
	Measurement      float64        `json:"measurement"`
	Unit             string         `json:"unit"`
	TotalMeasurement float64        `json:"totalMeasurement"`
}

// Matches reports whether this line is the line for the given product and
// variant. Identity is strict: a line without a variant only matches a
// lookup without a variant.
func (l *CartLine) Matches(productID, variantID string) bool {
	return l.ProductID == productID && l.VariantID == variantID
}

// PieceDenominated reports whether the line is sold by piece, which forces
// whole quantities of at least one.
func (l *CartLine) PieceDenominated() bool {
	return l.Unit == UnitPiece
}

// LineTotal is unit price times quantity
func (l *CartLine) LineTotal() float64 {
	return l.UnitPrice * l.Quantity
}

// CartSnapshot is the ordered line collection at a point in time plus its
// derived aggregates. Aggregates are always recomputed from the lines,
// never stored independently.
type CartSnapshot struct {
	CartKey   string     `json:"cartKey"`
	Lines     []CartLine `json:"lines"`
	CartTotal float64    `json:"cartTotal"`
	CartCount float64    `json:"cartCount"`
}

// NewCartSnapshot computes the derived aggregates for a line collection
func NewCartSnapshot(cartKey string, lines []CartLine) CartSnapshot {
	snapshot := CartSnapshot{
		CartKey: cartKey,
		Lines:   lines,
	}
	for i := range lines {
		snapshot.CartTotal += lines[i].LineTotal()
		snapshot.CartCount += lines[i].Quantity
	}
	return snapshot
}

// CartRecord is the persisted form of a cart: the full line collection
// serialized as one JSON payload per cart key, mirroring how the web client
// stored the cart as a single local-storage value. A corrupt payload reads
// back as an empty cart.
type CartRecord struct {
	CartKey   string    `gorm:"primaryKey;size:120" json:"cart_key"`
	Payload   string    `gorm:"type:text" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `gorm:"index" json:"updated_at"`
}

func (CartRecord) TableName() string {
	return "carts"
}
