package property

import (
	"math"

	"hvac/solver"
)

const saturationAccuracy = 1e-13 // relative, on saturation pressure

// SaturationPressure of water vapour over water (t >= 0) or ice (t < 0), Pa.
// Hyland-Wexler formulation as published by ASHRAE.
func SaturationPressure(t float64) float64 {
	tk := Kelvin(t)
	if t >= 0 {
		return math.Exp(-5.8002206e3/tk + 1.3914993 - 4.8640239e-2*tk + 4.1764768e-5*tk*tk -
			1.4452093e-8*tk*tk*tk + 6.5459673*math.Log(tk))
	}
	return math.Exp(-5.6745359e3/tk + 6.3925247 - 9.677843e-3*tk + 6.2215701e-7*tk*tk +
		2.0747825e-9*tk*tk*tk - 9.484024e-13*tk*tk*tk*tk + 4.1635019*math.Log(tk))
}

// SaturationTemperature inverts SaturationPressure.
// Pressures at or below the correlation's lower end map to MinSaturationTemperature.
func SaturationTemperature(ps float64) (float64, error) {
	if ps <= SaturationPressure(MinSaturationTemperature) {
		return MinSaturationTemperature, nil
	}
	opts := solver.DefaultOptions()
	opts.Tolerance = saturationAccuracy
	opts.MaxIterations = 200
	opts.Min, opts.Max = MinSaturationTemperature, MaxSaturationTemperature
	opts.Quantity = "saturation pressure"
	opts.Target = ps
	opts.Scale = ps
	sol, err := solver.Find(opts, MinSaturationTemperature, MaxSaturationTemperature,
		func(t float64) (float64, struct{}, error) {
			return (ps - SaturationPressure(t)) / ps, struct{}{}, nil
		})
	if err != nil {
		return 0, err
	}
	return sol.X, nil
}

// HumidityRatio from partial vapour pressure pv at total pressure p, kg/kg.
func HumidityRatio(pv, p float64) float64 {
	if pv >= p {
		return math.Inf(1)
	}
	return MolarMassRatio * pv / (p - pv)
}

// HumidityRatioFromRH converts relative humidity (%) at temperature t.
func HumidityRatioFromRH(rh, t, p float64) float64 {
	return HumidityRatio(rh/100*SaturationPressure(t), p)
}

// MaxHumidityRatio is the humidity ratio at saturation.
func MaxHumidityRatio(ps, p float64) float64 {
	return HumidityRatio(ps, p)
}

// VapourPressure is the partial pressure of water vapour for humidity ratio x, Pa.
func VapourPressure(x, p float64) float64 {
	return x * p / (MolarMassRatio + x)
}

// RelativeHumidity in %, capped at 100 for fog.
func RelativeHumidity(x, t, p float64) float64 {
	ps := SaturationPressure(t)
	if x >= MaxHumidityRatio(ps, p) {
		return 100
	}
	return VapourPressure(x, p) / ps * 100
}

// DewPointTemperature at humidity ratio x; never above t.
func DewPointTemperature(t, x, p float64) (float64, error) {
	if x >= MaxHumidityRatio(SaturationPressure(t), p) {
		return t, nil
	}
	return SaturationTemperature(VapourPressure(x, p))
}

// WetBulbTemperature from the adiabatic saturation balance
//
//	h(t, x) = h(tw, xs(tw)) - (xs(tw) - x) * h_liquid(tw)
func WetBulbTemperature(t, x, p float64) (float64, error) {
	if x >= MaxHumidityRatio(SaturationPressure(t), p) {
		return t, nil
	}
	h := HumidAirEnthalpy(t, x, p)
	residual := func(tw float64) (float64, struct{}, error) {
		xs := MaxHumidityRatio(SaturationPressure(tw), p)
		actual := HumidAirEnthalpy(tw, xs, p) - (xs-x)*CondensedWaterEnthalpy(tw)
		return h - actual, struct{}{}, nil
	}
	// very cold, dry air has its wet bulb below the correlation range
	if r, _, _ := residual(MinSaturationTemperature); r <= 0 {
		return MinSaturationTemperature, nil
	}
	opts := solver.DefaultOptions()
	opts.Min, opts.Max = MinSaturationTemperature, t
	opts.MaxIterations = 200
	opts.Quantity = "wet bulb enthalpy"
	opts.Target = h
	sol, err := solver.Find(opts, MinSaturationTemperature, t, residual)
	if err != nil {
		return 0, err
	}
	return sol.X, nil
}
