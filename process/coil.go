package process

import (
	"fmt"
	"math"

	"hvac/model"
	"hvac/property"
)

// coil models a cooling coil whose wall sits at the coolant mean temperature. The
// bypassed part of the air leaves at inlet state, the rest touches the wall and leaves
// at wall temperature, saturated when the wall is below the inlet dew point.
type coil struct {
	inlet   model.HumidAirFlow
	coolant model.Coolant
}

func (c coil) wallTemperature() float64 {
	return c.coolant.MeanTemperature()
}

// bypassFactor of an outlet at t2, clamped to [0, 1].
func (c coil) bypassFactor(t2 float64) float64 {
	t1 := c.inlet.Air().DryBulbTemperature()
	tw := c.wallTemperature()
	if t1 == tw {
		return 1
	}
	return math.Max(0, math.Min(1, (t2-tw)/(t1-tw)))
}

// checkWall rejects a wall that is not colder than the inlet.
func (c coil) checkWall() error {
	t1 := c.inlet.Air().DryBulbTemperature()
	if tw := c.wallTemperature(); tw >= t1 {
		return model.Invalid("coolant mean temperature", tw, "must be below inlet temperature %g °C", t1)
	}
	return nil
}

// at is the real-cooling result for outlet temperature t2.
func (c coil) at(t2 float64) (*CoolingResult, error) {
	air := c.inlet.Air()
	t1, x1, p := air.DryBulbTemperature(), air.HumidityRatio(), air.Pressure()
	if t2 >= t1 {
		return c.unchanged()
	}
	tw := c.wallTemperature()
	bf := c.bypassFactor(t2)
	mDa := c.inlet.DryAirMassFlow()
	direct := (1 - bf) * mDa

	xWall := x1
	if tw < air.DewPointTemperature() {
		xWall = property.MaxHumidityRatio(property.SaturationPressure(tw), p)
	}
	mCond := math.Max(direct*(x1-xWall), 0)
	x2 := x1
	if mDa > 0 {
		x2 = math.Max(x1-mCond/mDa, 0)
	}

	hWall := property.HumidAirEnthalpy(tw, xWall, p)
	heat := (direct*(hWall-air.SpecificEnthalpy()) + mCond*property.WaterEnthalpy(tw)) * 1000

	outAir, err := model.HumidAirOf(p, t2, x2)
	if err != nil {
		return nil, fmt.Errorf("cooling outlet air at %g °C: %w", t2, err)
	}
	outlet, err := model.NewHumidAirFlowOfDryAir(outAir, mDa)
	if err != nil {
		return nil, fmt.Errorf("cooling outlet flow: %w", err)
	}
	cond, err := condensate(tw, mCond)
	if err != nil {
		return nil, err
	}
	return &CoolingResult{Outlet: outlet, Heat: math.Min(heat, 0), Condensate: cond, BypassFactor: bf}, nil
}

// unchanged passes the inlet through with no heat and no condensate.
func (c coil) unchanged() (*CoolingResult, error) {
	cond, err := condensate(c.wallTemperature(), 0)
	if err != nil {
		return nil, err
	}
	return &CoolingResult{Outlet: c.inlet, Condensate: cond, BypassFactor: 1}, nil
}

func condensate(t, massFlow float64) (model.Flow[model.LiquidWater], error) {
	water, err := model.NewLiquidWater(t)
	if err != nil {
		return model.Flow[model.LiquidWater]{}, fmt.Errorf("condensate: %w", err)
	}
	flow, err := model.NewFlow(water, massFlow)
	if err != nil {
		return model.Flow[model.LiquidWater]{}, fmt.Errorf("condensate: %w", err)
	}
	return flow, nil
}

// maxCoolingPower is the heat in W to bring inlet down to 0 °C, condensing what
// saturation at 0 °C cannot hold.
func maxCoolingPower(inlet model.HumidAirFlow) float64 {
	air := inlet.Air()
	p := air.Pressure()
	x0 := math.Min(air.HumidityRatio(), property.MaxHumidityRatio(property.SaturationPressure(0), p))
	return inlet.DryAirMassFlow() * (air.SpecificEnthalpy() - property.HumidAirEnthalpy(0, x0, p)) * 1000
}
