package domain

import (
	"fmt"
	"math"
)

func ValidateCoordinate(c Coordinate) error {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lng) {
		return fmt.Errorf("coordinate is not a number")
	}
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("lat out of range")
	}
	if c.Lng < -180 || c.Lng > 180 {
		return fmt.Errorf("lng out of range")
	}
	return nil
}

// ValidateQuantity enforces the input boundary for order quantities:
// only finite values of at least one liter are accepted.
func ValidateQuantity(liters float64) error {
	if math.IsNaN(liters) || math.IsInf(liters, 0) {
		return fmt.Errorf("quantity is not a number")
	}
	if liters < 1 {
		return fmt.Errorf("quantity must be at least 1 liter")
	}
	return nil
}
