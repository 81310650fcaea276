package property

import "math"

// DryAirDensity from the ideal gas law, kg/m³.
func DryAirDensity(t, p float64) float64 {
	return p / (GasConstantDryAir * Kelvin(t))
}

// VapourDensity of water vapour at partial pressure pv, kg/m³.
func VapourDensity(t, pv float64) float64 {
	return pv / (GasConstantVapour * Kelvin(t))
}

// HumidAirDensity is the reciprocal of the specific volume per kilogram of dry
// air, v = Rda*T*(1 + x/eps)/p, in kg/m³. Volumetric flows of humid air convert
// through it. Fog droplets beyond saturation are not counted in the volume.
func HumidAirDensity(t, x, p float64) float64 {
	xv := math.Min(x, MaxHumidityRatio(SaturationPressure(t), p))
	return p / (GasConstantDryAir * Kelvin(t) * (1 + xv/MolarMassRatio))
}

// WaterDensity of liquid water, kg/m³ (fit around the 4 °C maximum).
func WaterDensity(t float64) float64 {
	return 1000 - 0.0178*math.Pow(math.Abs(t-4), 1.7)
}

// HumidAirSpecificHeat per kilogram of moist air, kJ/(kg K).
func HumidAirSpecificHeat(x float64) float64 {
	return (SpecificHeatDryAir + x*SpecificHeatVapour) / (1 + x)
}

// DryAirDynamicViscosity from Sutherland's law, Pa s.
func DryAirDynamicViscosity(t float64) float64 {
	tk := Kelvin(t)
	return 1.458e-6 * math.Pow(tk, 1.5) / (tk + 110.4)
}

// VapourDynamicViscosity, Pa s.
func VapourDynamicViscosity(t float64) float64 {
	return 8.02e-6 + 4.0e-8*t
}

// DryAirThermalConductivity, W/(m K).
func DryAirThermalConductivity(t float64) float64 {
	tk := Kelvin(t)
	return 2.334e-3 * math.Pow(tk, 1.5) / (tk + 164.54)
}

// VapourThermalConductivity, W/(m K).
func VapourThermalConductivity(t float64) float64 {
	return 0.0176 + 5.87e-5*t
}

// vapourMoleFraction of humid air with humidity ratio x (vapour part only).
func vapourMoleFraction(x float64) float64 {
	return x / (x + MolarMassRatio)
}

// wilke combines a dry-air and a vapour transport property by the Wilke mixing rule.
func wilke(x, da, v float64) float64 {
	yv := vapourMoleFraction(x)
	yda := 1 - yv
	if yv == 0 {
		return da
	}
	phi := func(mi, mj, mui, muj float64) float64 {
		n := 1 + math.Sqrt(mui/muj)*math.Pow(mj/mi, 0.25)
		return n * n / math.Sqrt(8*(1+mi/mj))
	}
	phiDaV := phi(MolarMassDryAir, MolarMassVapour, da, v)
	phiVDa := phi(MolarMassVapour, MolarMassDryAir, v, da)
	return yda*da/(yda+yv*phiDaV) + yv*v/(yv+yda*phiVDa)
}

// HumidAirDynamicViscosity, Pa s.
func HumidAirDynamicViscosity(t, x, p float64) float64 {
	xv := math.Min(x, MaxHumidityRatio(SaturationPressure(t), p))
	return wilke(xv, DryAirDynamicViscosity(t), VapourDynamicViscosity(t))
}

// HumidAirThermalConductivity, W/(m K).
func HumidAirThermalConductivity(t, x, p float64) float64 {
	xv := math.Min(x, MaxHumidityRatio(SaturationPressure(t), p))
	return wilke(xv, DryAirThermalConductivity(t), VapourThermalConductivity(t))
}
