package process

import (
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"hvac/model"
	"hvac/property"
	"hvac/solver"
)

// Mixing blends the inlet with recirculated flows adiabatically.
type Mixing interface {
	Apply() (*MixingResult, error)
}

// NewMixing picks the mixing variant from the type of target.
func NewMixing(inlet *model.HumidAirFlow, target MixingTarget) (Mixing, error) {
	if inlet == nil {
		return nil, model.Missing("mixing inlet flow")
	}
	switch tg := target.(type) {
	case nil:
		return nil, model.Missing("mixing target")
	case SecondFlow:
		if tg.Flow == nil {
			return nil, model.Missing("second flow")
		}
		return &mixingOfFlows{inlet: *inlet, recirculations: []model.HumidAirFlow{*tg.Flow}}, nil
	case RecirculationFlows:
		recs := make([]model.HumidAirFlow, 0, len(tg))
		for i, f := range tg {
			if f == nil {
				return nil, model.Missing(fmt.Sprintf("recirculation flow %d", i))
			}
			recs = append(recs, *f)
		}
		return &mixingOfFlows{inlet: *inlet, recirculations: recs}, nil
	case OutletTemperature:
		return newMixingToTemperature(*inlet, tg)
	default:
		return nil, fmt.Errorf("%w: unsupported mixing target %T", model.ErrInvalidArgument, target)
	}
}

type mixingOfFlows struct {
	inlet          model.HumidAirFlow
	recirculations []model.HumidAirFlow
}

func (s *mixingOfFlows) Apply() (*MixingResult, error) {
	res, err := mix(s.inlet, s.recirculations)
	if err != nil {
		return nil, err
	}
	logMixing("flows", float64(len(s.recirculations)), res)
	return res, nil
}

// mix balances dry air, water and enthalpy of all streams at the inlet pressure.
func mix(inlet model.HumidAirFlow, recirculations []model.HumidAirFlow) (*MixingResult, error) {
	n := len(recirculations) + 1
	mDa := make([]float64, 0, n)
	x := make([]float64, 0, n)
	h := make([]float64, 0, n)
	for _, f := range append([]model.HumidAirFlow{inlet}, recirculations...) {
		mDa = append(mDa, f.DryAirMassFlow())
		x = append(x, f.Air().HumidityRatio())
		h = append(h, f.Air().SpecificEnthalpy())
	}
	res := &MixingResult{Inlet: inlet, Recirculations: recirculations, Outlet: inlet}
	total := floats.Sum(mDa)
	if total == 0 {
		return res, nil
	}
	if total > model.MassFlowCeiling {
		return nil, model.Invalid("mixed dry air flow", total, "exceeds %g kg/s", model.MassFlowCeiling)
	}

	p := inlet.Air().Pressure()
	x2 := floats.Dot(mDa, x) / total
	h2 := floats.Dot(mDa, h) / total
	t2, err := property.DryBulbTemperature(h2, x2, p)
	if err != nil {
		return nil, fmt.Errorf("mixing outlet temperature: %w", err)
	}
	outAir, err := model.HumidAirOf(p, t2, x2)
	if err != nil {
		return nil, fmt.Errorf("mixing outlet air: %w", err)
	}
	outlet, err := model.NewHumidAirFlowOfDryAir(outAir, total)
	if err != nil {
		return nil, fmt.Errorf("mixing outlet flow: %w", err)
	}
	res.Outlet = outlet
	return res, nil
}

type mixingToTemperature struct {
	inlet         model.HumidAirFlow
	recirculation model.HumidAirFlow
	total         float64
	target        float64
	// inlet dry-air flow range keeping both streams above their minimum
	low, high float64
}

func newMixingToTemperature(inlet model.HumidAirFlow, tg OutletTemperature) (Mixing, error) {
	if tg.Recirculation == nil {
		return nil, model.Missing("recirculation flow")
	}
	total, target := tg.OutletDryAirFlow, tg.Temperature
	if total != total || total <= 0 || total > model.MassFlowCeiling {
		return nil, model.Invalid("outlet dry air flow", total, "outside (0, %g]", model.MassFlowCeiling)
	}
	if target != target || target < model.MinTemperature || target > model.MaxTemperature {
		return nil, model.Invalid("mixing target temperature", target, "outside [%g, %g]", model.MinTemperature, model.MaxTemperature)
	}
	minFirst := inlet.DryAirMassFlow()
	minSecond := tg.Recirculation.DryAirMassFlow()
	if minFirst+minSecond > total {
		return nil, model.Invalid("outlet dry air flow", total, "below the minimum flows %g + %g kg/s", minFirst, minSecond)
	}
	return &mixingToTemperature{
		inlet:         inlet,
		recirculation: *tg.Recirculation,
		total:         total,
		target:        target,
		low:           minFirst,
		high:          total - minSecond,
	}, nil
}

// at mixes m1 kg/s of dry air from the inlet with the rest of the total from recirculation.
func (s *mixingToTemperature) at(m1 float64) (*MixingResult, error) {
	first, err := s.inlet.WithDryAirMassFlow(m1)
	if err != nil {
		return nil, err
	}
	second, err := s.recirculation.WithDryAirMassFlow(math.Max(s.total-m1, 0))
	if err != nil {
		return nil, err
	}
	return mix(first, []model.HumidAirFlow{second})
}

func (s *mixingToTemperature) Apply() (*MixingResult, error) {
	atLow, err := s.at(s.low)
	if err != nil {
		return nil, err
	}
	atHigh, err := s.at(s.high)
	if err != nil {
		return nil, err
	}
	tLow := atLow.Outlet.Air().DryBulbTemperature()
	tHigh := atHigh.Outlet.Air().DryBulbTemperature()
	accuracy := settings.Solver.TemperatureAccuracy

	switch {
	case math.Abs(s.target-tLow) < accuracy:
		return atLow, nil
	case math.Abs(s.target-tHigh) < accuracy:
		return atHigh, nil
	case s.target < math.Min(tLow, tHigh) || s.target > math.Max(tLow, tHigh):
		best := atLow
		if math.Abs(s.target-tHigh) < math.Abs(s.target-tLow) {
			best = atHigh
		}
		log.WithFields(log.Fields{
			"target":  s.target,
			"reached": best.Outlet.Air().DryBulbTemperature(),
		}).Warn("mixing target temperature out of reach, using the closest split")
		return best, nil
	}

	opts := solverOptions(accuracy, "mixing outlet temperature", s.target, s.low, s.high)
	sol, err := solver.Find(opts, s.low, s.high, func(m1 float64) (float64, *MixingResult, error) {
		res, err := s.at(m1)
		if err != nil {
			return 0, nil, err
		}
		return s.target - res.Outlet.Air().DryBulbTemperature(), res, nil
	})
	if err != nil {
		return nil, fmt.Errorf("mixing to %g °C: %w", s.target, err)
	}
	logMixing("temperature", s.target, sol.State)
	return sol.State, nil
}

func logMixing(target string, value float64, res *MixingResult) {
	log.WithFields(log.Fields{
		"target":      target,
		"value":       value,
		"temperature": res.Outlet.Air().DryBulbTemperature(),
		"dry_air":     res.Outlet.DryAirMassFlow(),
	}).Debug("mixing applied")
}
