package scenario

import (
	"hvac/model"
	"hvac/pipeline"
	"hvac/process"
)

// allocators build a block from its decoded params, keyed by block type.
var allocators = map[string]func(params map[string]interface{}, pressure float64) (pipeline.Block, error){}

func init() {
	allocators["heating"] = newHeating
	allocators["cooling"] = newCooling
	allocators["dry_cooling"] = newDryCooling
	allocators["mixing"] = newMixing
}

// Types lists the known block types.
func Types() []string {
	return []string{"heating", "cooling", "dry_cooling", "mixing"}
}

// TargetSpec sets exactly one outlet target.
type TargetSpec struct {
	Power            *float64 `mapstructure:"power"`             // W
	Temperature      *float64 `mapstructure:"temperature"`       // °C
	RelativeHumidity *float64 `mapstructure:"relative_humidity"` // %
}

type CoolantSpec struct {
	Supply float64 `mapstructure:"supply"`
	Return float64 `mapstructure:"return"`
}

type heatingParams struct {
	Target TargetSpec `mapstructure:"target"`
}

type coolingParams struct {
	Coolant *CoolantSpec `mapstructure:"coolant"`
	Target  TargetSpec   `mapstructure:"target"`
}

type mixingParams struct {
	Recirculation []FlowSpec `mapstructure:"recirculation"`
	Outlet        *struct {
		DryAirMassFlow float64 `mapstructure:"dry_air_mass_flow"`
		Temperature    float64 `mapstructure:"temperature"`
	} `mapstructure:"outlet"`
}

func (t TargetSpec) count() int {
	n := 0
	for _, v := range []*float64{t.Power, t.Temperature, t.RelativeHumidity} {
		if v != nil {
			n++
		}
	}
	return n
}

func (t TargetSpec) heating() (process.HeatingTarget, error) {
	if t.count() != 1 {
		return nil, model.Missing("exactly one of power, temperature, relative_humidity")
	}
	switch {
	case t.Power != nil:
		return process.Power(*t.Power), nil
	case t.Temperature != nil:
		return process.Temperature(*t.Temperature), nil
	}
	return process.RelativeHumidity(*t.RelativeHumidity), nil
}

func (t TargetSpec) cooling() (process.CoolingTarget, error) {
	if t.count() != 1 {
		return nil, model.Missing("exactly one of power, temperature, relative_humidity")
	}
	switch {
	case t.Power != nil:
		return process.Power(*t.Power), nil
	case t.Temperature != nil:
		return process.Temperature(*t.Temperature), nil
	}
	return process.RelativeHumidity(*t.RelativeHumidity), nil
}

func (t TargetSpec) dryCooling() (process.DryCoolingTarget, error) {
	if t.RelativeHumidity != nil {
		return nil, model.Invalid("relative_humidity", *t.RelativeHumidity, "dry cooling keeps the humidity ratio")
	}
	if t.count() != 1 {
		return nil, model.Missing("exactly one of power, temperature")
	}
	if t.Power != nil {
		return process.Power(*t.Power), nil
	}
	return process.Temperature(*t.Temperature), nil
}

func (c *CoolantSpec) coolant() (model.Coolant, error) {
	if c == nil {
		return model.Coolant{}, model.Missing("coolant")
	}
	return model.NewCoolant(c.Supply, c.Return)
}

func newHeating(params map[string]interface{}, _ float64) (pipeline.Block, error) {
	var p heatingParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	target, err := p.Target.heating()
	if err != nil {
		return nil, err
	}
	return pipeline.NewHeatingBlock(target), nil
}

func newCooling(params map[string]interface{}, _ float64) (pipeline.Block, error) {
	var p coolingParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	coolant, err := p.Coolant.coolant()
	if err != nil {
		return nil, err
	}
	target, err := p.Target.cooling()
	if err != nil {
		return nil, err
	}
	return pipeline.NewCoolingBlock(coolant, target), nil
}

func newDryCooling(params map[string]interface{}, _ float64) (pipeline.Block, error) {
	var p coolingParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	coolant, err := p.Coolant.coolant()
	if err != nil {
		return nil, err
	}
	target, err := p.Target.dryCooling()
	if err != nil {
		return nil, err
	}
	return pipeline.NewDryCoolingBlock(coolant, target), nil
}

func newMixing(params map[string]interface{}, pressure float64) (pipeline.Block, error) {
	var p mixingParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	flows := make([]*model.HumidAirFlow, 0, len(p.Recirculation))
	for _, spec := range p.Recirculation {
		f, err := spec.flow(pressure)
		if err != nil {
			return nil, err
		}
		flows = append(flows, &f)
	}

	if p.Outlet != nil {
		if len(flows) != 1 {
			return nil, model.Invalid("recirculation", float64(len(flows)), "outlet temperature mixing takes exactly one recirculation flow")
		}
		return pipeline.NewMixingBlock(process.OutletTemperature{
			Recirculation:    flows[0],
			OutletDryAirFlow: p.Outlet.DryAirMassFlow,
			Temperature:      p.Outlet.Temperature,
		}), nil
	}
	if len(flows) == 1 {
		return pipeline.NewMixingBlock(process.SecondFlow{Flow: flows[0]}), nil
	}
	return pipeline.NewMixingBlock(process.RecirculationFlows(flows)), nil
}
