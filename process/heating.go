package process

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"hvac/model"
	"hvac/property"
)

// Heating adds heat at constant humidity ratio.
type Heating interface {
	Apply() (*HeatingResult, error)
}

// NewHeating picks the heating variant from the type of target.
func NewHeating(inlet *model.HumidAirFlow, target HeatingTarget) (Heating, error) {
	if inlet == nil {
		return nil, model.Missing("heating inlet flow")
	}
	switch tg := target.(type) {
	case nil:
		return nil, model.Missing("heating target")
	case Power:
		return newHeatingFromPower(*inlet, float64(tg))
	case Temperature:
		return newHeatingFromTemperature(*inlet, float64(tg))
	case RelativeHumidity:
		return newHeatingFromRH(*inlet, float64(tg))
	default:
		return nil, fmt.Errorf("%w: unsupported heating target %T", model.ErrInvalidArgument, target)
	}
}

type heatingFromPower struct {
	inlet model.HumidAirFlow
	power float64
	t2    float64
}

func newHeatingFromPower(inlet model.HumidAirFlow, power float64) (Heating, error) {
	if power != power || power < 0 {
		return nil, model.Invalid("heating power", power, "must not be negative")
	}
	s := &heatingFromPower{inlet: inlet, power: power, t2: inlet.Air().DryBulbTemperature()}
	if power == 0 {
		return s, nil
	}
	mDa := inlet.DryAirMassFlow()
	if mDa == 0 {
		return nil, model.Invalid("heating power", power, "requires a positive dry air flow")
	}
	air := inlet.Air()
	h2 := air.SpecificEnthalpy() + power/(mDa*1000)
	t2, err := property.DryBulbTemperature(h2, air.HumidityRatio(), air.Pressure())
	if err != nil {
		return nil, fmt.Errorf("heating outlet temperature: %w", err)
	}
	if err := checkHeatingOutlet("heating power", power, t2, air.Pressure()); err != nil {
		return nil, err
	}
	s.t2 = t2
	return s, nil
}

func (s *heatingFromPower) Apply() (*HeatingResult, error) {
	if s.power == 0 {
		return unchangedHeating(s.inlet), nil
	}
	res, err := heatTo(s.inlet, s.t2)
	if err != nil {
		return nil, err
	}
	res.Heat = s.power
	logHeating("power", s.power, res)
	return res, nil
}

type heatingFromTemperature struct {
	inlet model.HumidAirFlow
	t2    float64
}

func newHeatingFromTemperature(inlet model.HumidAirFlow, t2 float64) (Heating, error) {
	t1 := inlet.Air().DryBulbTemperature()
	if t2 != t2 {
		return nil, model.Invalid("heating target temperature", t2, "not a number")
	}
	if t2 < t1 {
		return nil, model.Invalid("heating target temperature", t2, "must not be below inlet temperature %g °C", t1)
	}
	if err := checkHeatingOutlet("heating target temperature", t2, t2, inlet.Air().Pressure()); err != nil {
		return nil, err
	}
	return &heatingFromTemperature{inlet: inlet, t2: t2}, nil
}

func (s *heatingFromTemperature) Apply() (*HeatingResult, error) {
	if s.t2 == s.inlet.Air().DryBulbTemperature() {
		return unchangedHeating(s.inlet), nil
	}
	res, err := heatTo(s.inlet, s.t2)
	if err != nil {
		return nil, err
	}
	logHeating("temperature", s.t2, res)
	return res, nil
}

// heatingFromRH resolves the outlet temperature at construction: the vapour pressure
// is fixed, so the outlet saturation pressure is pv*100/rh.
type heatingFromRH struct {
	inlet model.HumidAirFlow
	rh    float64
	t2    float64
}

func newHeatingFromRH(inlet model.HumidAirFlow, rh float64) (Heating, error) {
	air := inlet.Air()
	rh1 := air.RelativeHumidity()
	if rh != rh || rh <= 0 {
		return nil, model.Invalid("heating target relative humidity", rh, "must be positive")
	}
	if rh > rh1 {
		return nil, model.Invalid("heating target relative humidity", rh, "must not exceed inlet relative humidity %g %%", rh1)
	}
	s := &heatingFromRH{inlet: inlet, rh: rh, t2: air.DryBulbTemperature()}
	if rh == rh1 {
		return s, nil
	}
	p := air.Pressure()
	ps := property.VapourPressure(air.HumidityRatio(), p) * 100 / rh
	if ps >= p {
		return nil, model.Invalid("heating target relative humidity", rh, "needs saturation pressure %g Pa above pressure %g Pa", ps, p)
	}
	if limit := property.SaturationPressure(property.MaxSaturationTemperature); ps > limit {
		return nil, model.Invalid("heating target relative humidity", rh, "needs outlet above %g °C", property.MaxSaturationTemperature)
	}
	t2, err := property.SaturationTemperature(ps)
	if err != nil {
		return nil, fmt.Errorf("heating outlet temperature for %g %% RH: %w", rh, err)
	}
	if err := checkHeatingOutlet("heating target relative humidity", rh, t2, p); err != nil {
		return nil, err
	}
	s.t2 = t2
	return s, nil
}

func (s *heatingFromRH) Apply() (*HeatingResult, error) {
	if s.rh == s.inlet.Air().RelativeHumidity() {
		return unchangedHeating(s.inlet), nil
	}
	res, err := heatTo(s.inlet, s.t2)
	if err != nil {
		return nil, err
	}
	logHeating("relative humidity", s.rh, res)
	return res, nil
}

// checkHeatingOutlet rejects outlet temperatures outside the domain or whose saturation
// pressure reaches the total pressure.
func checkHeatingOutlet(name string, value, t2, p float64) error {
	if t2 > model.MaxTemperature {
		return model.Invalid(name, value, "outlet temperature %g °C exceeds %g °C", t2, model.MaxTemperature)
	}
	if ps := property.SaturationPressure(t2); ps >= p {
		return model.Invalid(name, value, "outlet saturation pressure %g Pa at %g °C reaches pressure %g Pa", ps, t2, p)
	}
	return nil
}

// heatTo heats inlet to t2 at constant humidity ratio and dry-air flow.
func heatTo(inlet model.HumidAirFlow, t2 float64) (*HeatingResult, error) {
	air := inlet.Air()
	outAir, err := air.WithDryBulbTemperature(t2)
	if err != nil {
		return nil, fmt.Errorf("heating outlet air: %w", err)
	}
	outlet, err := inlet.WithAir(outAir)
	if err != nil {
		return nil, fmt.Errorf("heating outlet flow: %w", err)
	}
	heat := inlet.DryAirMassFlow() * (outAir.SpecificEnthalpy() - air.SpecificEnthalpy()) * 1000
	return &HeatingResult{Outlet: outlet, Heat: heat}, nil
}

func unchangedHeating(inlet model.HumidAirFlow) *HeatingResult {
	return &HeatingResult{Outlet: inlet}
}

func logHeating(target string, value float64, res *HeatingResult) {
	log.WithFields(log.Fields{
		"target":      target,
		"value":       value,
		"temperature": res.Outlet.Air().DryBulbTemperature(),
		"heat":        res.Heat,
	}).Debug("heating applied")
}
