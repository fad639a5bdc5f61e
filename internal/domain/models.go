package domain

// VehicleClass identifies a service class.
type VehicleClass string

// Known vehicle classes. Any other value is priced with a neutral multiplier.
const (
	ClassComfort  VehicleClass = "comfort"
	ClassBusiness VehicleClass = "business"
	ClassXL       VehicleClass = "xl"
)

// CurrencyRUB is the only currency the engine prices in.
const CurrencyRUB = "RUB"

// PricingRequest is a validated fare request.
type PricingRequest struct {
	DistanceM float64
	EtaSec    float64
	Class     VehicleClass
	BasePrice *int64 // overrides the configured base price when set
}

// Breakdown itemizes how a price was derived.
type Breakdown struct {
	Base               float64 `json:"base"`
	Distance           float64 `json:"distance"`
	Time               float64 `json:"time"`
	Subtotal           float64 `json:"subtotal"`
	ClassMultiplier    float64 `json:"classMultiplier"`
	DistanceMultiplier float64 `json:"distanceMultiplier"`
	TimeMultiplier     float64 `json:"timeMultiplier"`
	DemandCoeff        float64 `json:"demandCoeff"`
}

// PricingResult is the engine output.
type PricingResult struct {
	Price     int64     `json:"price"`
	Currency  string    `json:"currency"`
	Breakdown Breakdown `json:"breakdown"`
}
