package property

import (
	"math"

	"hvac/solver"
)

const enthalpyAccuracy = 1e-10 // kJ/kg

// DryAirEnthalpy, kJ/kg, zero at 0 °C.
func DryAirEnthalpy(t float64) float64 {
	return SpecificHeatDryAir * t
}

// VapourEnthalpy, kJ/kg, referenced to liquid water at 0 °C.
func VapourEnthalpy(t float64) float64 {
	return LatentHeatOfVaporization + SpecificHeatVapour*t
}

// WaterEnthalpy of liquid water, kJ/kg.
func WaterEnthalpy(t float64) float64 {
	return SpecificHeatWater * t
}

// IceEnthalpy, kJ/kg.
func IceEnthalpy(t float64) float64 {
	return -LatentHeatOfFusion + SpecificHeatIce*t
}

// CondensedWaterEnthalpy picks liquid water above 0 °C and ice otherwise.
func CondensedWaterEnthalpy(t float64) float64 {
	if t > 0 {
		return WaterEnthalpy(t)
	}
	return IceEnthalpy(t)
}

// HumidAirEnthalpy per kilogram of dry air. Water above saturation is
// counted as liquid (t > 0) or ice (t <= 0) fog.
func HumidAirEnthalpy(t, x, p float64) float64 {
	xs := MaxHumidityRatio(SaturationPressure(t), p)
	if x <= xs {
		return DryAirEnthalpy(t) + x*VapourEnthalpy(t)
	}
	return DryAirEnthalpy(t) + xs*VapourEnthalpy(t) + (x-xs)*CondensedWaterEnthalpy(t)
}

// DryBulbTemperature inverts HumidAirEnthalpy. Unsaturated air has a closed form;
// fog falls back to the solver, searching upward from the closed-form value.
func DryBulbTemperature(h, x, p float64) (float64, error) {
	t := (h - x*LatentHeatOfVaporization) / (SpecificHeatDryAir + x*SpecificHeatVapour)
	if x <= MaxHumidityRatio(SaturationPressure(t), p) {
		return t, nil
	}
	upper := math.Min(t+100, MaxSaturationTemperature)
	opts := solver.DefaultOptions()
	opts.Tolerance = enthalpyAccuracy
	opts.Min, opts.Max = t, MaxSaturationTemperature
	opts.Quantity = "fog enthalpy"
	opts.Target = h
	sol, err := solver.Find(opts, t, upper, func(tt float64) (float64, struct{}, error) {
		return h - HumidAirEnthalpy(tt, x, p), struct{}{}, nil
	})
	if err != nil {
		return 0, err
	}
	return sol.X, nil
}
