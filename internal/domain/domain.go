package domain

// Coordinate is an immutable geographic point. The zero value is the
// "unset" sentinel used before a session has a location fix.
type Coordinate struct {
	Lat float64
	Lng float64
}

// IsZero reports whether the coordinate is the unset sentinel.
func (c Coordinate) IsZero() bool {
	return c.Lat == 0 && c.Lng == 0
}

// Station is a fuel-station candidate returned by a place source for one
// ranking pass. Stations are never persisted; their lifetime is the pass
// that produced them.
type Station struct {
	ID       string
	Name     string
	Location Coordinate
}

// RankedStation is a Station annotated with its distance from the origin.
type RankedStation struct {
	Station
	DistanceKm float64
}

type FuelType string

const (
	FuelPetrol FuelType = "petrol"
	FuelDiesel FuelType = "diesel"
)

// UnitPrice returns the per-liter price bound to the fuel type. The enum
// value and its price live in this single switch so the two cannot
// diverge: a fuel type without a price here is not a valid fuel type.
func (f FuelType) UnitPrice() (float64, bool) {
	switch f {
	case FuelPetrol:
		return 102.50, true
	case FuelDiesel:
		return 89.75, true
	default:
		return 0, false
	}
}

func (f FuelType) Valid() bool {
	_, ok := f.UnitPrice()
	return ok
}

type DeliveryOption string

const (
	DeliveryASAP      DeliveryOption = "asap"
	DeliveryWithin2h  DeliveryOption = "2hours"
	DeliveryWithin4h  DeliveryOption = "4hours"
	DeliveryScheduled DeliveryOption = "scheduled"
)

// Label returns the display label shown to the user. Delivery options are
// purely descriptive and never affect the bill.
func (d DeliveryOption) Label() (string, bool) {
	switch d {
	case DeliveryASAP:
		return "As Soon As Possible (30-45 mins)", true
	case DeliveryWithin2h:
		return "Within 2 Hours", true
	case DeliveryWithin4h:
		return "Within 4 Hours", true
	case DeliveryScheduled:
		return "Schedule for Later", true
	default:
		return "", false
	}
}

func (d DeliveryOption) Valid() bool {
	_, ok := d.Label()
	return ok
}

// OrderConfiguration holds the in-progress order fields. It is mutated
// only by explicit user edits, serialized by the owning session.
type OrderConfiguration struct {
	SelectedStation *Station
	FuelType        *FuelType
	QuantityLiters  *float64
	Delivery        DeliveryOption
}

// NewOrderConfiguration returns the default (empty) configuration.
func NewOrderConfiguration() OrderConfiguration {
	return OrderConfiguration{Delivery: DeliveryASAP}
}

// Complete reports whether the configuration can be billed: fuel type and
// a positive quantity are mandatory, station selection is not.
func (c OrderConfiguration) Complete() bool {
	if c.FuelType == nil || !c.FuelType.Valid() {
		return false
	}
	if c.QuantityLiters == nil || *c.QuantityLiters <= 0 {
		return false
	}
	return true
}

// BillBreakdown is the itemized price of a complete configuration. All
// amounts are full precision; rounding happens at the presentation
// boundary only.
type BillBreakdown struct {
	BaseAmount     float64
	DeliveryCharge float64
	GST            float64
	Total          float64
}

type OrderState string

const (
	OrderStateIdle        OrderState = "IDLE"
	OrderStateConfiguring OrderState = "CONFIGURING"
	OrderStateSubmitted   OrderState = "SUBMITTED"
)
