package model

// ProductKind is the normalized order-group tag assigned at the catalog
// ingestion boundary. Cart lines written before the tag existed carry an
// empty Kind and fall back to the heuristic classifier.
type ProductKind string

const (
	KindRegular ProductKind = "regular"
	KindFish    ProductKind = "fish"
)

// FishCategoryName is the catalog category the heuristic classifier treats
// as fish when the explicit markers are absent.
const FishCategoryName = "Fish"

// Units of sale
const (
	UnitKilogram   = "kg"
	UnitGram       = "g"
	UnitLiter      = "l"
	UnitMilliliter = "ml"
	UnitPiece      = "pcs"
)

// SizeCategory is a fish-specific purchasable size band
type SizeCategory struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	PricePerKG float64 `json:"pricePerKg"`
	IsDefault  bool    `json:"isDefault"`
}

// Variant is a purchasable sub-option of a product with its own price,
// stock, measurement, and unit. Zero-valued fields fall back to the parent
// product's values.
type Variant struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Stock       float64 `json:"stock"`
	Measurement float64 `json:"measurement"`
	Unit        string  `json:"unit"`
}

// Product is a catalog item normalized from the upstream commerce API
type Product struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Category       string         `json:"category"`
	Price          float64        `json:"price"`
	Stock          float64        `json:"stock"`
	Measurement    float64        `json:"measurement"`
	Unit           string         `json:"unit"`
	ImageURL       string         `json:"imageUrl,omitempty"`
	IsFish         bool           `json:"isFish"`
	Kind           ProductKind    `json:"kind"`
	Variants       []Variant      `json:"variants,omitempty"`
	SizeCategories []SizeCategory `json:"sizeCategories,omitempty"`
}

// FindVariant returns the variant with the given id, or nil
func (p *Product) FindVariant(variantID string) *Variant {
	if variantID == "" {
		return nil
	}
	for i := range p.Variants {
		if p.Variants[i].ID == variantID {
			return &p.Variants[i]
		}
	}
	return nil
}
