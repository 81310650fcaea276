package model

import (
	"fmt"

	"hvac/property"
)

// VapourStatus classifies where the water content sits relative to saturation.
type VapourStatus int

const (
	Unsaturated VapourStatus = iota
	Saturated
	WaterFog
	IceFog
)

func (s VapourStatus) String() string {
	switch s {
	case Unsaturated:
		return "UNSATURATED"
	case Saturated:
		return "SATURATED"
	case WaterFog:
		return "WATER_FOG"
	case IceFog:
		return "ICE_FOG"
	}
	return fmt.Sprintf("VapourStatus(%d)", int(s))
}

// HumidAirParams configures NewHumidAir.
type HumidAirParams struct {
	// Pressure in Pa; property.StandardPressure when zero.
	Pressure float64
	// DryBulbTemperature in °C.
	DryBulbTemperature float64
	// HumidityRatio in kg/kg, ignored when RelativeHumidity is set.
	HumidityRatio float64
	// RelativeHumidity in %.
	RelativeHumidity *float64
}

// HumidAir is an immutable humid-air state. Every derived property is computed once
// by the constructor.
type HumidAir struct {
	pressure      float64
	temperature   float64
	humidityRatio float64

	saturationPressure  float64
	maxHumidityRatio    float64
	relativeHumidity    float64
	wetBulbTemperature  float64
	dewPointTemperature float64
	specificEnthalpy    float64
	status              VapourStatus

	density             float64
	specificHeat        float64
	dynamicViscosity    float64
	thermalConductivity float64
}

// NewHumidAir validates params and derives the full state.
func NewHumidAir(params HumidAirParams) (HumidAir, error) {
	p := params.Pressure
	if p == 0 {
		p = property.StandardPressure
	}
	t := params.DryBulbTemperature
	if err := checkRange("pressure", p, MinPressure, MaxPressure); err != nil {
		return HumidAir{}, err
	}
	if err := checkRange("dry bulb temperature", t, MinTemperature, MaxTemperature); err != nil {
		return HumidAir{}, err
	}
	ps := property.SaturationPressure(t)
	if ps >= p {
		return HumidAir{}, Invalid("saturation pressure", ps, "must be lower than pressure %g Pa at %g °C", p, t)
	}

	x := params.HumidityRatio
	if params.RelativeHumidity != nil {
		rh := *params.RelativeHumidity
		if err := checkRange("relative humidity", rh, 0, 100); err != nil {
			return HumidAir{}, err
		}
		x = property.HumidityRatioFromRH(rh, t, p)
	}
	if err := checkRange("humidity ratio", x, 0, HumidityRatioCeiling); err != nil {
		return HumidAir{}, err
	}

	tdp, err := property.DewPointTemperature(t, x, p)
	if err != nil {
		return HumidAir{}, fmt.Errorf("dew point at %g °C, x=%g: %w", t, x, err)
	}
	twb, err := property.WetBulbTemperature(t, x, p)
	if err != nil {
		return HumidAir{}, fmt.Errorf("wet bulb at %g °C, x=%g: %w", t, x, err)
	}

	xMax := property.MaxHumidityRatio(ps, p)
	return HumidAir{
		pressure:            p,
		temperature:         t,
		humidityRatio:       x,
		saturationPressure:  ps,
		maxHumidityRatio:    xMax,
		relativeHumidity:    property.RelativeHumidity(x, t, p),
		wetBulbTemperature:  twb,
		dewPointTemperature: tdp,
		specificEnthalpy:    property.HumidAirEnthalpy(t, x, p),
		status:              vapourStatus(t, x, xMax),
		density:             property.HumidAirDensity(t, x, p),
		specificHeat:        property.HumidAirSpecificHeat(x),
		dynamicViscosity:    property.HumidAirDynamicViscosity(t, x, p),
		thermalConductivity: property.HumidAirThermalConductivity(t, x, p),
	}, nil
}

func vapourStatus(t, x, xMax float64) VapourStatus {
	switch {
	case x == xMax:
		return Saturated
	case x > xMax && t > 0:
		return WaterFog
	case x > xMax:
		return IceFog
	}
	return Unsaturated
}

// HumidAirOf builds a state from pressure, dry bulb temperature and humidity ratio.
func HumidAirOf(pressure, temperature, humidityRatio float64) (HumidAir, error) {
	return NewHumidAir(HumidAirParams{
		Pressure:           pressure,
		DryBulbTemperature: temperature,
		HumidityRatio:      humidityRatio,
	})
}

// HumidAirOfRH builds a state from pressure, dry bulb temperature and relative humidity.
func HumidAirOfRH(pressure, temperature, relativeHumidity float64) (HumidAir, error) {
	return NewHumidAir(HumidAirParams{
		Pressure:           pressure,
		DryBulbTemperature: temperature,
		RelativeHumidity:   &relativeHumidity,
	})
}

func (a HumidAir) Pressure() float64            { return a.pressure }
func (a HumidAir) DryBulbTemperature() float64  { return a.temperature }
func (a HumidAir) HumidityRatio() float64       { return a.humidityRatio }
func (a HumidAir) SaturationPressure() float64  { return a.saturationPressure }
func (a HumidAir) MaxHumidityRatio() float64    { return a.maxHumidityRatio }
func (a HumidAir) RelativeHumidity() float64    { return a.relativeHumidity }
func (a HumidAir) WetBulbTemperature() float64  { return a.wetBulbTemperature }
func (a HumidAir) DewPointTemperature() float64 { return a.dewPointTemperature }
func (a HumidAir) SpecificEnthalpy() float64    { return a.specificEnthalpy }
func (a HumidAir) VapourStatus() VapourStatus   { return a.status }
func (a HumidAir) Density() float64             { return a.density }
func (a HumidAir) SpecificHeat() float64        { return a.specificHeat }
func (a HumidAir) DynamicViscosity() float64    { return a.dynamicViscosity }
func (a HumidAir) ThermalConductivity() float64 { return a.thermalConductivity }

// KinematicViscosity, m²/s.
func (a HumidAir) KinematicViscosity() float64 {
	return a.dynamicViscosity / a.density
}

// ThermalDiffusivity, m²/s.
func (a HumidAir) ThermalDiffusivity() float64 {
	return a.thermalConductivity / (a.density * a.specificHeat * 1000)
}

// PrandtlNumber of the mixture.
func (a HumidAir) PrandtlNumber() float64 {
	return a.dynamicViscosity * a.specificHeat * 1000 / a.thermalConductivity
}

// WithDryBulbTemperature returns the state at temperature t with the same humidity ratio.
func (a HumidAir) WithDryBulbTemperature(t float64) (HumidAir, error) {
	return HumidAirOf(a.pressure, t, a.humidityRatio)
}

// WithHumidityRatio returns the state with humidity ratio x at the same temperature.
func (a HumidAir) WithHumidityRatio(x float64) (HumidAir, error) {
	return HumidAirOf(a.pressure, a.temperature, x)
}

// WithRelativeHumidity returns the state with relative humidity rh at the same temperature.
func (a HumidAir) WithRelativeHumidity(rh float64) (HumidAir, error) {
	return HumidAirOfRH(a.pressure, a.temperature, rh)
}

// WithPressure returns the state at pressure p with the same humidity ratio.
func (a HumidAir) WithPressure(p float64) (HumidAir, error) {
	return HumidAirOf(p, a.temperature, a.humidityRatio)
}

func (a HumidAir) String() string {
	return fmt.Sprintf("HumidAir{p=%.0f Pa, t=%.3f °C, x=%.6f kg/kg, RH=%.3f %%, %v}",
		a.pressure, a.temperature, a.humidityRatio, a.relativeHumidity, a.status)
}
