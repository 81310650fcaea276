package model

import (
	"fmt"

	"hvac/property"
)

// Fluid is anything a Flow can carry.
type Fluid interface {
	Density() float64
}

// DryAir is the dry-air component of a humid-air state.
type DryAir struct {
	pressure    float64
	temperature float64
	density     float64
}

// NewDryAir validates pressure and temperature.
func NewDryAir(pressure, temperature float64) (DryAir, error) {
	if err := checkRange("pressure", pressure, MinPressure, MaxPressure); err != nil {
		return DryAir{}, err
	}
	if err := checkRange("dry air temperature", temperature, MinTemperature, MaxTemperature); err != nil {
		return DryAir{}, err
	}
	return DryAir{
		pressure:    pressure,
		temperature: temperature,
		density:     property.DryAirDensity(temperature, pressure),
	}, nil
}

func (a DryAir) Pressure() float64    { return a.pressure }
func (a DryAir) Temperature() float64 { return a.temperature }
func (a DryAir) Density() float64     { return a.density }

// SpecificEnthalpy, kJ/kg.
func (a DryAir) SpecificEnthalpy() float64 {
	return property.DryAirEnthalpy(a.temperature)
}

// LiquidWater carries condensate.
type LiquidWater struct {
	temperature float64
	density     float64
}

// NewLiquidWater validates the temperature; water below 0 °C is not accepted.
func NewLiquidWater(temperature float64) (LiquidWater, error) {
	if err := checkRange("water temperature", temperature, 0, MaxTemperature); err != nil {
		return LiquidWater{}, err
	}
	return LiquidWater{
		temperature: temperature,
		density:     property.WaterDensity(temperature),
	}, nil
}

func (w LiquidWater) Temperature() float64 { return w.temperature }
func (w LiquidWater) Density() float64     { return w.density }

// SpecificEnthalpy, kJ/kg.
func (w LiquidWater) SpecificEnthalpy() float64 {
	return property.WaterEnthalpy(w.temperature)
}

func (w LiquidWater) String() string {
	return fmt.Sprintf("LiquidWater{t=%.3f °C}", w.temperature)
}
