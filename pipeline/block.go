package pipeline

import (
	"fmt"

	"hvac/connector"
	"hvac/model"
	"hvac/process"
)

// Block is one process stage with a single inlet and a single outlet.
type Block interface {
	Kind() process.Kind
	Input() *connector.Input[model.HumidAirFlow]
	Output() *connector.Output[model.HumidAirFlow]
	// Run pulls the inlet, applies the process and writes the outlet.
	Run() (process.Result, error)
	LastResult() process.Result
}

type ports struct {
	input  connector.Input[model.HumidAirFlow]
	output connector.Output[model.HumidAirFlow]
	last   process.Result
}

func (p *ports) Input() *connector.Input[model.HumidAirFlow]   { return &p.input }
func (p *ports) Output() *connector.Output[model.HumidAirFlow] { return &p.output }
func (p *ports) LastResult() process.Result                    { return p.last }

func (p *ports) pull(kind process.Kind) (model.HumidAirFlow, error) {
	flow, ok := p.input.Pull()
	if !ok {
		return model.HumidAirFlow{}, fmt.Errorf("%v block: %w", kind, ErrNoInletFlow)
	}
	return flow, nil
}

func (p *ports) publish(res process.Result) process.Result {
	p.output.Write(res.OutletFlow())
	p.last = res
	return res
}

// HeatingBlock heats its inlet towards Target.
type HeatingBlock struct {
	ports
	Target process.HeatingTarget
}

func NewHeatingBlock(target process.HeatingTarget) *HeatingBlock {
	return &HeatingBlock{Target: target}
}

func (b *HeatingBlock) Kind() process.Kind { return process.KindHeating }

func (b *HeatingBlock) Run() (process.Result, error) {
	inlet, err := b.pull(b.Kind())
	if err != nil {
		return nil, err
	}
	h, err := process.NewHeating(&inlet, b.Target)
	if err != nil {
		return nil, err
	}
	res, err := h.Apply()
	if err != nil {
		return nil, err
	}
	return b.publish(res), nil
}

// CoolingBlock cools its inlet on a coil fed with Coolant, condensing water when the
// wall is below the dew point.
type CoolingBlock struct {
	ports
	Coolant model.Coolant
	Target  process.CoolingTarget
}

func NewCoolingBlock(coolant model.Coolant, target process.CoolingTarget) *CoolingBlock {
	return &CoolingBlock{Coolant: coolant, Target: target}
}

func (b *CoolingBlock) Kind() process.Kind { return process.KindCooling }

func (b *CoolingBlock) Run() (process.Result, error) {
	inlet, err := b.pull(b.Kind())
	if err != nil {
		return nil, err
	}
	c, err := process.NewCooling(&inlet, &b.Coolant, b.Target)
	if err != nil {
		return nil, err
	}
	res, err := c.Apply()
	if err != nil {
		return nil, err
	}
	return b.publish(res), nil
}

// DryCoolingBlock cools its inlet at constant humidity ratio.
type DryCoolingBlock struct {
	ports
	Coolant model.Coolant
	Target  process.DryCoolingTarget
}

func NewDryCoolingBlock(coolant model.Coolant, target process.DryCoolingTarget) *DryCoolingBlock {
	return &DryCoolingBlock{Coolant: coolant, Target: target}
}

func (b *DryCoolingBlock) Kind() process.Kind { return process.KindCooling }

func (b *DryCoolingBlock) Run() (process.Result, error) {
	inlet, err := b.pull(b.Kind())
	if err != nil {
		return nil, err
	}
	c, err := process.NewDryCooling(&inlet, &b.Coolant, b.Target)
	if err != nil {
		return nil, err
	}
	res, err := c.Apply()
	if err != nil {
		return nil, err
	}
	return b.publish(res), nil
}

// MixingBlock mixes its inlet with the flows named by Target.
type MixingBlock struct {
	ports
	Target process.MixingTarget
}

func NewMixingBlock(target process.MixingTarget) *MixingBlock {
	return &MixingBlock{Target: target}
}

func (b *MixingBlock) Kind() process.Kind { return process.KindMixing }

func (b *MixingBlock) Run() (process.Result, error) {
	inlet, err := b.pull(b.Kind())
	if err != nil {
		return nil, err
	}
	m, err := process.NewMixing(&inlet, b.Target)
	if err != nil {
		return nil, err
	}
	res, err := m.Apply()
	if err != nil {
		return nil, err
	}
	return b.publish(res), nil
}
