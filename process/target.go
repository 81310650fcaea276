package process

import "hvac/model"

// Power is a heat flow in W. Heating takes positive values, cooling negative ones.
type Power float64

// Temperature is an outlet dry bulb temperature in °C.
type Temperature float64

// RelativeHumidity is an outlet relative humidity in %.
type RelativeHumidity float64

// HeatingTarget is one of Power, Temperature or RelativeHumidity.
type HeatingTarget interface{ heatingTarget() }

// CoolingTarget is one of Power, Temperature or RelativeHumidity.
type CoolingTarget interface{ coolingTarget() }

// DryCoolingTarget is one of Power or Temperature.
type DryCoolingTarget interface{ dryCoolingTarget() }

func (Power) heatingTarget()            {}
func (Temperature) heatingTarget()      {}
func (RelativeHumidity) heatingTarget() {}

func (Power) coolingTarget()            {}
func (Temperature) coolingTarget()      {}
func (RelativeHumidity) coolingTarget() {}

func (Power) dryCoolingTarget()       {}
func (Temperature) dryCoolingTarget() {}

// MixingTarget is one of SecondFlow, RecirculationFlows or OutletTemperature.
type MixingTarget interface{ mixingTarget() }

// SecondFlow mixes the inlet with one fixed flow.
type SecondFlow struct {
	Flow *model.HumidAirFlow
}

// RecirculationFlows mixes the inlet with any number of fixed flows.
type RecirculationFlows []*model.HumidAirFlow

// OutletTemperature splits a fixed total dry-air flow between the inlet and the
// recirculation so the mix reaches Temperature. The dry-air flows of the inlet and of
// Recirculation are the minimum each stream must keep.
type OutletTemperature struct {
	Recirculation    *model.HumidAirFlow
	OutletDryAirFlow float64 // kg/s
	Temperature      float64 // °C
}

func (SecondFlow) mixingTarget()         {}
func (RecirculationFlows) mixingTarget() {}
func (OutletTemperature) mixingTarget()  {}
