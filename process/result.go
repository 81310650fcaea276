package process

import (
	"fmt"

	"hvac/model"
)

type Kind int

const (
	KindHeating Kind = iota + 1
	KindCooling
	KindMixing
)

func (k Kind) String() string {
	switch k {
	case KindHeating:
		return "heating"
	case KindCooling:
		return "cooling"
	case KindMixing:
		return "mixing"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Result is the outcome of one process stage.
type Result interface {
	Kind() Kind
	OutletFlow() model.HumidAirFlow
	// HeatOfProcess in W; positive when heat is added to the air.
	HeatOfProcess() float64
}

type HeatingResult struct {
	Outlet model.HumidAirFlow
	Heat   float64 // W
}

func (r *HeatingResult) Kind() Kind                     { return KindHeating }
func (r *HeatingResult) OutletFlow() model.HumidAirFlow { return r.Outlet }
func (r *HeatingResult) HeatOfProcess() float64         { return r.Heat }

type CoolingResult struct {
	Outlet       model.HumidAirFlow
	Heat         float64 // W, never positive
	Condensate   model.Flow[model.LiquidWater]
	BypassFactor float64
}

func (r *CoolingResult) Kind() Kind                     { return KindCooling }
func (r *CoolingResult) OutletFlow() model.HumidAirFlow { return r.Outlet }
func (r *CoolingResult) HeatOfProcess() float64         { return r.Heat }

type MixingResult struct {
	Inlet          model.HumidAirFlow
	Outlet         model.HumidAirFlow
	Recirculations []model.HumidAirFlow
}

func (r *MixingResult) Kind() Kind                     { return KindMixing }
func (r *MixingResult) OutletFlow() model.HumidAirFlow { return r.Outlet }

// HeatOfProcess is always zero: mixing is adiabatic.
func (r *MixingResult) HeatOfProcess() float64 { return 0 }
