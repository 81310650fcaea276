package model

import "fmt"

// Flow is an immutable sample of a fluid moving at a mass flow rate. The volumetric
// flow is derived from the fluid's density and never stored independently of it.
type Flow[F Fluid] struct {
	fluid          F
	massFlow       float64
	volumetricFlow float64
}

// NewFlow builds a flow from a mass flow in kg/s.
func NewFlow[F Fluid](fluid F, massFlow float64) (Flow[F], error) {
	if err := checkRange("mass flow", massFlow, 0, MassFlowCeiling); err != nil {
		return Flow[F]{}, err
	}
	return Flow[F]{
		fluid:          fluid,
		massFlow:       massFlow,
		volumetricFlow: massFlow / fluid.Density(),
	}, nil
}

// NewFlowOfVolume builds a flow from a volumetric flow in m³/s.
func NewFlowOfVolume[F Fluid](fluid F, volumetricFlow float64) (Flow[F], error) {
	if volumetricFlow != volumetricFlow || volumetricFlow < 0 {
		return Flow[F]{}, Invalid("volumetric flow", volumetricFlow, "must not be negative")
	}
	return NewFlow(fluid, volumetricFlow*fluid.Density())
}

func (f Flow[F]) Fluid() F                { return f.fluid }
func (f Flow[F]) MassFlow() float64       { return f.massFlow }
func (f Flow[F]) VolumetricFlow() float64 { return f.volumetricFlow }

// HumidAirFlow is a flow of moist air together with its dry-air equivalent.
type HumidAirFlow struct {
	Flow[HumidAir]
	dryAir Flow[DryAir]
}

// NewHumidAirFlow builds a flow from the moist-air mass flow.
func NewHumidAirFlow(air HumidAir, massFlow float64) (HumidAirFlow, error) {
	moist, err := NewFlow(air, massFlow)
	if err != nil {
		return HumidAirFlow{}, err
	}
	return withDryAir(moist, massFlow/(1+air.HumidityRatio()))
}

// NewHumidAirFlowOfDryAir builds a flow from the dry-air mass flow.
func NewHumidAirFlowOfDryAir(air HumidAir, massFlowDryAir float64) (HumidAirFlow, error) {
	if err := checkRange("dry air mass flow", massFlowDryAir, 0, MassFlowCeiling); err != nil {
		return HumidAirFlow{}, err
	}
	moist, err := NewFlow(air, massFlowDryAir*(1+air.HumidityRatio()))
	if err != nil {
		return HumidAirFlow{}, err
	}
	return withDryAir(moist, massFlowDryAir)
}

// NewHumidAirFlowOfVolume builds a flow from the moist-air volumetric flow in m³/s.
func NewHumidAirFlowOfVolume(air HumidAir, volumetricFlow float64) (HumidAirFlow, error) {
	moist, err := NewFlowOfVolume(air, volumetricFlow)
	if err != nil {
		return HumidAirFlow{}, err
	}
	return withDryAir(moist, moist.MassFlow()/(1+air.HumidityRatio()))
}

func withDryAir(moist Flow[HumidAir], massFlowDryAir float64) (HumidAirFlow, error) {
	air := moist.Fluid()
	dry, err := NewDryAir(air.Pressure(), air.DryBulbTemperature())
	if err != nil {
		return HumidAirFlow{}, err
	}
	dryFlow, err := NewFlow(dry, massFlowDryAir)
	if err != nil {
		return HumidAirFlow{}, err
	}
	return HumidAirFlow{Flow: moist, dryAir: dryFlow}, nil
}

// Air is the humid-air state of the flow.
func (f HumidAirFlow) Air() HumidAir {
	return f.Fluid()
}

// DryAirFlow is the dry-air equivalent sub-sample.
func (f HumidAirFlow) DryAirFlow() Flow[DryAir] {
	return f.dryAir
}

// DryAirMassFlow, kg/s.
func (f HumidAirFlow) DryAirMassFlow() float64 {
	return f.dryAir.MassFlow()
}

// WithAir returns a flow of air keeping the dry-air mass flow.
func (f HumidAirFlow) WithAir(air HumidAir) (HumidAirFlow, error) {
	return NewHumidAirFlowOfDryAir(air, f.DryAirMassFlow())
}

// WithMassFlow returns the same air at moist-air mass flow m.
func (f HumidAirFlow) WithMassFlow(m float64) (HumidAirFlow, error) {
	return NewHumidAirFlow(f.Air(), m)
}

// WithDryAirMassFlow returns the same air at dry-air mass flow m.
func (f HumidAirFlow) WithDryAirMassFlow(m float64) (HumidAirFlow, error) {
	return NewHumidAirFlowOfDryAir(f.Air(), m)
}

func (f HumidAirFlow) String() string {
	return fmt.Sprintf("HumidAirFlow{%v, m=%.6f kg/s, mDa=%.6f kg/s, V=%.6f m³/s}",
		f.Air(), f.MassFlow(), f.DryAirMassFlow(), f.VolumetricFlow())
}
