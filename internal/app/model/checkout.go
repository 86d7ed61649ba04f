package model

type ShippingZone string
type PaymentMethod string

const (
	ZoneInsideDhaka  ShippingZone = "inside_dhaka"
	ZoneOutsideDhaka ShippingZone = "outside_dhaka"

	PaymentCashOnDelivery PaymentMethod = "cash_on_delivery"
	PaymentOnline         PaymentMethod = "online"
)

// Valid reports whether the zone is one of the known delivery zones. There
// is no default zone; the user must choose one explicitly.
func (z ShippingZone) Valid() bool {
	return z == ZoneInsideDhaka || z == ZoneOutsideDhaka
}

func (m PaymentMethod) Valid() bool {
	return m == PaymentCashOnDelivery || m == PaymentOnline
}

// ShippingAddress is the destination for an order
type ShippingAddress struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Area     string `json:"area,omitempty"`
	City     string `json:"city,omitempty"`
	Postcode string `json:"postcode,omitempty"`
}

// Empty reports whether no usable address was supplied
func (a *ShippingAddress) Empty() bool {
	return a.Address == ""
}

// GuestInfo identifies an unauthenticated buyer; required when no access
// token accompanies the checkout request
type GuestInfo struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

func (g *GuestInfo) Complete() bool {
	return g != nil && g.Name != "" && g.Phone != ""
}

// ShippingQuote is the transient delivery-fee answer for the current cart,
// address, and zone. It is invalidated whenever any of those change.
type ShippingQuote struct {
	ShippingFee   float64         `json:"shippingFee"`
	TotalWeightKg float64         `json:"totalWeightKg"`
	Zone          ShippingZone    `json:"zone"`
	Address       ShippingAddress `json:"address"`
}
