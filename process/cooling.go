package process

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"hvac/model"
	"hvac/solver"
)

// Cooling removes heat from the inlet flow.
type Cooling interface {
	Apply() (*CoolingResult, error)
}

// NewCooling picks the real-cooling variant from the type of target. Real cooling
// condenses water on the coil wall when the wall is below the inlet dew point.
func NewCooling(inlet *model.HumidAirFlow, coolant *model.Coolant, target CoolingTarget) (Cooling, error) {
	if inlet == nil {
		return nil, model.Missing("cooling inlet flow")
	}
	if coolant == nil {
		return nil, model.Missing("coolant")
	}
	c := coil{inlet: *inlet, coolant: *coolant}
	switch tg := target.(type) {
	case nil:
		return nil, model.Missing("cooling target")
	case Power:
		return newCoolingFromPower(c, float64(tg))
	case Temperature:
		return newCoolingFromTemperature(c, float64(tg))
	case RelativeHumidity:
		return newCoolingFromRH(c, float64(tg))
	default:
		return nil, fmt.Errorf("%w: unsupported cooling target %T", model.ErrInvalidArgument, target)
	}
}

type coolingFromTemperature struct {
	coil coil
	t2   float64
}

func newCoolingFromTemperature(c coil, t2 float64) (Cooling, error) {
	t1 := c.inlet.Air().DryBulbTemperature()
	if t2 != t2 {
		return nil, model.Invalid("cooling target temperature", t2, "not a number")
	}
	if t2 > t1 {
		return nil, model.Invalid("cooling target temperature", t2, "must not exceed inlet temperature %g °C", t1)
	}
	if t2 == t1 {
		return &coolingFromTemperature{coil: c, t2: t2}, nil
	}
	if err := c.checkWall(); err != nil {
		return nil, err
	}
	if tw := c.wallTemperature(); t2 < tw {
		return nil, model.Invalid("cooling target temperature", t2, "must not be below coil wall temperature %g °C", tw)
	}
	return &coolingFromTemperature{coil: c, t2: t2}, nil
}

func (s *coolingFromTemperature) Apply() (*CoolingResult, error) {
	res, err := s.coil.at(s.t2)
	if err != nil {
		return nil, err
	}
	logCooling("temperature", s.t2, res)
	return res, nil
}

// coolingFromRH solves for the outlet temperature between the coil wall and the inlet.
// Outlets below the inlet dew point are reachable as long as they stay above the wall.
type coolingFromRH struct {
	coil coil
	rh   float64
}

func newCoolingFromRH(c coil, rh float64) (Cooling, error) {
	air := c.inlet.Air()
	rh1 := air.RelativeHumidity()
	limit := settings.Limits.MaxCoolingRelativeHumidity
	if rh != rh {
		return nil, model.Invalid("cooling target relative humidity", rh, "not a number")
	}
	if rh < rh1 {
		return nil, model.Invalid("cooling target relative humidity", rh, "must not be below inlet relative humidity %g %%", rh1)
	}
	if rh > limit {
		return nil, model.Invalid("cooling target relative humidity", rh, "must not exceed %g %%", limit)
	}
	s := &coolingFromRH{coil: c, rh: rh}
	if rh == rh1 {
		return s, nil
	}
	if err := c.checkWall(); err != nil {
		return nil, err
	}
	reach, err := c.at(c.wallTemperature())
	if err != nil {
		return nil, err
	}
	if reachable := reach.Outlet.Air().RelativeHumidity(); rh > reachable+settings.Solver.HumidityAccuracy {
		return nil, model.Invalid("cooling target relative humidity", rh,
			"above %g %% reachable with coil wall at %g °C", reachable, c.wallTemperature())
	}
	return s, nil
}

func (s *coolingFromRH) Apply() (*CoolingResult, error) {
	air := s.coil.inlet.Air()
	if s.rh == air.RelativeHumidity() {
		return s.coil.unchanged()
	}
	t1, tw := air.DryBulbTemperature(), s.coil.wallTemperature()
	opts := solverOptions(settings.Solver.HumidityAccuracy, "cooling relative humidity", s.rh, tw, t1)
	sol, err := solver.Find(opts, tw, t1, func(t2 float64) (float64, *CoolingResult, error) {
		res, err := s.coil.at(t2)
		if err != nil {
			return 0, nil, err
		}
		return s.rh - res.Outlet.Air().RelativeHumidity(), res, nil
	})
	if err != nil {
		return nil, fmt.Errorf("cooling to %g %% RH: %w", s.rh, err)
	}
	logCooling("relative humidity", s.rh, sol.State)
	return sol.State, nil
}

type coolingFromPower struct {
	coil  coil
	power float64
}

func newCoolingFromPower(c coil, power float64) (Cooling, error) {
	if power != power || power > 0 {
		return nil, model.Invalid("cooling power", power, "must not be positive")
	}
	s := &coolingFromPower{coil: c, power: power}
	if power == 0 {
		return s, nil
	}
	if c.inlet.DryAirMassFlow() == 0 {
		return nil, model.Invalid("cooling power", power, "requires a positive dry air flow")
	}
	if err := c.checkWall(); err != nil {
		return nil, err
	}
	if limit := maxCoolingPower(c.inlet); -power > limit {
		return nil, model.Invalid("cooling power", power, "exceeds %g W needed to bring the flow to 0 °C", limit)
	}
	reach, err := c.at(c.wallTemperature())
	if err != nil {
		return nil, err
	}
	if reach.Heat > power+settings.Solver.PowerAccuracy {
		return nil, model.Invalid("cooling power", power,
			"exceeds coil capacity %g W with wall at %g °C", reach.Heat, c.wallTemperature())
	}
	return s, nil
}

func (s *coolingFromPower) Apply() (*CoolingResult, error) {
	if s.power == 0 {
		return s.coil.unchanged()
	}
	t1, tw := s.coil.inlet.Air().DryBulbTemperature(), s.coil.wallTemperature()
	opts := solverOptions(settings.Solver.PowerAccuracy, "cooling power", s.power, tw, t1)
	sol, err := solver.Find(opts, t1, tw, func(t2 float64) (float64, *CoolingResult, error) {
		res, err := s.coil.at(t2)
		if err != nil {
			return 0, nil, err
		}
		return s.power - res.Heat, res, nil
	})
	if err != nil {
		return nil, fmt.Errorf("cooling with %g W: %w", s.power, err)
	}
	logCooling("power", s.power, sol.State)
	return sol.State, nil
}

func logCooling(target string, value float64, res *CoolingResult) {
	log.WithFields(log.Fields{
		"target":        target,
		"value":         value,
		"temperature":   res.Outlet.Air().DryBulbTemperature(),
		"heat":          res.Heat,
		"condensate":    res.Condensate.MassFlow(),
		"bypass_factor": res.BypassFactor,
	}).Debug("cooling applied")
}
