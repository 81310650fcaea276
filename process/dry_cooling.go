package process

import (
	"fmt"

	"hvac/model"
	"hvac/property"
)

// NewDryCooling picks the dry-cooling variant from the type of target. Dry cooling keeps
// the humidity ratio and never goes below the inlet dew point.
func NewDryCooling(inlet *model.HumidAirFlow, coolant *model.Coolant, target DryCoolingTarget) (Cooling, error) {
	if inlet == nil {
		return nil, model.Missing("dry cooling inlet flow")
	}
	if coolant == nil {
		return nil, model.Missing("coolant")
	}
	c := coil{inlet: *inlet, coolant: *coolant}
	switch tg := target.(type) {
	case nil:
		return nil, model.Missing("dry cooling target")
	case Power:
		return newDryCoolingFromPower(c, float64(tg))
	case Temperature:
		return newDryCoolingFromTemperature(c, float64(tg))
	default:
		return nil, fmt.Errorf("%w: unsupported dry cooling target %T", model.ErrInvalidArgument, target)
	}
}

type dryCooling struct {
	coil  coil
	t2    float64
	power float64
	// exact is set when power was given and must be reported unchanged.
	exact bool
}

func newDryCoolingFromTemperature(c coil, t2 float64) (Cooling, error) {
	air := c.inlet.Air()
	t1 := air.DryBulbTemperature()
	if t2 != t2 {
		return nil, model.Invalid("dry cooling target temperature", t2, "not a number")
	}
	if t2 > t1 {
		return nil, model.Invalid("dry cooling target temperature", t2, "must not exceed inlet temperature %g °C", t1)
	}
	if err := checkDryOutlet(c, "dry cooling target temperature", t2, t2); err != nil {
		return nil, err
	}
	return &dryCooling{coil: c, t2: t2}, nil
}

func newDryCoolingFromPower(c coil, power float64) (Cooling, error) {
	if power != power || power > 0 {
		return nil, model.Invalid("dry cooling power", power, "must not be positive")
	}
	t1 := c.inlet.Air().DryBulbTemperature()
	if power == 0 {
		return &dryCooling{coil: c, t2: t1, exact: true}, nil
	}
	if c.inlet.DryAirMassFlow() == 0 {
		return nil, model.Invalid("dry cooling power", power, "requires a positive dry air flow")
	}
	if limit := maxCoolingPower(c.inlet); -power > limit {
		return nil, model.Invalid("dry cooling power", power, "exceeds %g W needed to bring the flow to 0 °C", limit)
	}
	t2, err := sensibleOutletTemperature(c.inlet, power)
	if err != nil {
		return nil, err
	}
	if err := checkDryOutlet(c, "dry cooling power", power, t2); err != nil {
		return nil, err
	}
	return &dryCooling{coil: c, t2: t2, power: power, exact: true}, nil
}

// checkDryOutlet rejects outlets below the dew point or the coil wall.
func checkDryOutlet(c coil, name string, value, t2 float64) error {
	air := c.inlet.Air()
	if t2 == air.DryBulbTemperature() {
		return nil
	}
	if err := c.checkWall(); err != nil {
		return err
	}
	if tdp := air.DewPointTemperature(); t2 < tdp {
		return model.Invalid(name, value, "outlet %g °C below inlet dew point %g °C", t2, tdp)
	}
	if tw := c.wallTemperature(); t2 < tw {
		return model.Invalid(name, value, "outlet %g °C below coil wall temperature %g °C", t2, tw)
	}
	return nil
}

func (s *dryCooling) Apply() (*CoolingResult, error) {
	inlet := s.coil.inlet
	air := inlet.Air()
	if s.t2 == air.DryBulbTemperature() {
		return s.coil.unchanged()
	}
	outAir, err := air.WithDryBulbTemperature(s.t2)
	if err != nil {
		return nil, fmt.Errorf("dry cooling outlet air: %w", err)
	}
	outlet, err := inlet.WithAir(outAir)
	if err != nil {
		return nil, fmt.Errorf("dry cooling outlet flow: %w", err)
	}
	heat := s.power
	if !s.exact {
		heat = inlet.DryAirMassFlow() * (outAir.SpecificEnthalpy() - air.SpecificEnthalpy()) * 1000
	}
	cond, err := condensate(s.coil.wallTemperature(), 0)
	if err != nil {
		return nil, err
	}
	res := &CoolingResult{Outlet: outlet, Heat: heat, Condensate: cond, BypassFactor: s.coil.bypassFactor(s.t2)}
	if s.exact {
		logCooling("dry power", s.power, res)
	} else {
		logCooling("dry temperature", s.t2, res)
	}
	return res, nil
}

// sensibleOutletTemperature removes power (W, negative) at constant humidity ratio.
func sensibleOutletTemperature(inlet model.HumidAirFlow, power float64) (float64, error) {
	air := inlet.Air()
	h2 := air.SpecificEnthalpy() + power/(inlet.DryAirMassFlow()*1000)
	t2, err := property.DryBulbTemperature(h2, air.HumidityRatio(), air.Pressure())
	if err != nil {
		return 0, fmt.Errorf("sensible cooling outlet temperature: %w", err)
	}
	return t2, nil
}
