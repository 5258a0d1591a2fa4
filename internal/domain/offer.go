package domain

type OfferKind string

const (
	OfferKindPackage OfferKind = "PACKAGE"
	OfferKindFlight  OfferKind = "FLIGHT"
)

// Offer is a purchasable catalog item. The catalog owns offers; the booking
// core only ever reads them.
type Offer struct {
	ID                string    `json:"id"`
	Kind              OfferKind `json:"kind"`
	Title             string    `json:"title"`
	UnitPriceUSD      float64   `json:"unit_price_usd"`
	CapacityAvailable int       `json:"capacity_available"`

	// Destination package fields.
	Destination  string   `json:"destination,omitempty"`
	Country      string   `json:"country,omitempty"`
	DurationDays int      `json:"duration_days,omitempty"`
	Included     []string `json:"included,omitempty"`

	// Flight fields.
	FromCode   string `json:"from_code,omitempty"`
	FromCity   string `json:"from_city,omitempty"`
	ToCode     string `json:"to_code,omitempty"`
	ToCity     string `json:"to_city,omitempty"`
	FlightNo   string `json:"flight_no,omitempty"`
	CabinClass string `json:"cabin_class,omitempty"`
	DepartTime string `json:"depart_time,omitempty"`
	ArriveTime string `json:"arrive_time,omitempty"`
}
