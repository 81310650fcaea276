package model

import "fmt"

// Coolant is the supply/return temperature pair of a coil's coolant.
type Coolant struct {
	supplyTemperature float64
	returnTemperature float64
}

// NewCoolant validates both temperatures against the coolant domain.
func NewCoolant(supplyTemperature, returnTemperature float64) (Coolant, error) {
	if err := checkRange("coolant supply temperature", supplyTemperature, MinCoolantTemperature, MaxCoolantTemperature); err != nil {
		return Coolant{}, err
	}
	if err := checkRange("coolant return temperature", returnTemperature, MinCoolantTemperature, MaxCoolantTemperature); err != nil {
		return Coolant{}, err
	}
	return Coolant{supplyTemperature: supplyTemperature, returnTemperature: returnTemperature}, nil
}

func (c Coolant) SupplyTemperature() float64 { return c.supplyTemperature }
func (c Coolant) ReturnTemperature() float64 { return c.returnTemperature }

// MeanTemperature is the coil wall temperature.
func (c Coolant) MeanTemperature() float64 {
	return (c.supplyTemperature + c.returnTemperature) / 2
}

func (c Coolant) String() string {
	return fmt.Sprintf("Coolant{supply=%.2f °C, return=%.2f °C}", c.supplyTemperature, c.returnTemperature)
}
