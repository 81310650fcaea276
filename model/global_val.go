package model

// Domain limits of the value types. Values outside them fail construction.
const (
	// MassFlowCeiling only rejects corrupted input; it is not a physical limit.
	MassFlowCeiling = 5e9 // kg/s

	MinPressure = 30_000.0    // Pa
	MaxPressure = 5_000_000.0 // Pa

	MinTemperature = -100.0 // °C
	MaxTemperature = 200.0  // °C

	HumidityRatioCeiling = 10.0 // kg/kg

	MinCoolantTemperature = 0.0  // °C
	MaxCoolantTemperature = 90.0 // °C
)
