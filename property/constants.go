// Package property holds the closed-form correlations for dry air, water vapour, liquid
// water, ice and their mixture.
//
// Every function is pure and deterministic. Inversions without a closed form
// (saturation temperature, wet bulb, fog temperature) run the Brent solver.
package property

const (
	StandardPressure = 101325.0 // Pa

	GasConstantDryAir = 287.055 // J/(kg K)
	GasConstantVapour = 461.52  // J/(kg K)
	// ratio of the molar masses of water and dry air
	MolarMassRatio = GasConstantDryAir / GasConstantVapour

	MolarMassDryAir = 28.9645  // g/mol
	MolarMassVapour = 18.01528 // g/mol

	SpecificHeatDryAir = 1.005 // kJ/(kg K)
	SpecificHeatVapour = 1.86  // kJ/(kg K)
	SpecificHeatWater  = 4.19  // kJ/(kg K)
	SpecificHeatIce    = 2.09  // kJ/(kg K)

	LatentHeatOfVaporization = 2501.0 // kJ/kg at 0 °C
	LatentHeatOfFusion       = 333.5  // kJ/kg at 0 °C

	KelvinOffset = 273.15

	// validity range of the saturation-pressure correlation
	MinSaturationTemperature = -100.0
	MaxSaturationTemperature = 200.0
)

// Kelvin converts a Celsius temperature.
func Kelvin(t float64) float64 {
	return t + KelvinOffset
}
