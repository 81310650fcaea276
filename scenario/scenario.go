// Package scenario reads YAML descriptions of air-handling processes and builds the
// matching pipeline.
package scenario

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"hvac/config"
	"hvac/model"
	"hvac/pipeline"
)

// Scenario is the decoded document.
type Scenario struct {
	Name string `yaml:"name"`
	// Pressure in Pa; the configured pressure when zero.
	Pressure float64     `yaml:"pressure"`
	Inlet    FlowSpec    `yaml:"inlet"`
	Blocks   []BlockSpec `yaml:"blocks"`
}

// BlockSpec names a block type and carries its raw parameters.
type BlockSpec struct {
	Type   string                 `yaml:"type"`
	Params map[string]interface{} `yaml:"params"`
}

// FlowSpec describes a humid-air flow. Exactly one of RelativeHumidity and HumidityRatio
// and exactly one of the three flow rates must be set.
type FlowSpec struct {
	Temperature      float64  `yaml:"temperature" mapstructure:"temperature"`
	RelativeHumidity *float64 `yaml:"relative_humidity" mapstructure:"relative_humidity"`
	HumidityRatio    *float64 `yaml:"humidity_ratio" mapstructure:"humidity_ratio"`
	// VolumetricFlow in m³/h.
	VolumetricFlow *float64 `yaml:"volumetric_flow" mapstructure:"volumetric_flow"`
	// MassFlow and DryAirMassFlow in kg/s.
	MassFlow       *float64 `yaml:"mass_flow" mapstructure:"mass_flow"`
	DryAirMassFlow *float64 `yaml:"dry_air_mass_flow" mapstructure:"dry_air_mass_flow"`
}

// Load reads and parses the file at path.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a YAML document.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if len(s.Blocks) == 0 {
		return nil, fmt.Errorf("%w: no blocks", pipeline.ErrNoProcess)
	}
	return &s, nil
}

// Build turns the scenario into a pipeline with its inlet flow set.
func (s *Scenario) Build(cfg config.Config) (*pipeline.Pipeline, error) {
	pressure := s.Pressure
	if pressure == 0 {
		pressure = cfg.Pressure
	}
	inlet, err := s.Inlet.flow(pressure)
	if err != nil {
		return nil, fmt.Errorf("inlet: %w", err)
	}

	p := pipeline.New()
	for i, spec := range s.Blocks {
		alloc, ok := allocators[spec.Type]
		if !ok {
			return nil, fmt.Errorf("block %d: %w", i, model.Invalid("block type", 0, "unknown type %q", spec.Type))
		}
		b, err := alloc(spec.Params, pressure)
		if err != nil {
			return nil, fmt.Errorf("block %d (%s): %w", i, spec.Type, err)
		}
		if _, err := p.AddBlock(b); err != nil {
			return nil, err
		}
	}
	if err := p.SetInletFlow(inlet); err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"scenario": s.Name,
		"blocks":   p.Len(),
		"pressure": pressure,
	}).Info("scenario built")
	return p, nil
}

func (f FlowSpec) air(pressure float64) (model.HumidAir, error) {
	switch {
	case f.RelativeHumidity != nil && f.HumidityRatio != nil:
		return model.HumidAir{}, model.Invalid("humidity ratio", *f.HumidityRatio, "relative_humidity and humidity_ratio are exclusive")
	case f.RelativeHumidity != nil:
		return model.HumidAirOfRH(pressure, f.Temperature, *f.RelativeHumidity)
	case f.HumidityRatio != nil:
		return model.HumidAirOf(pressure, f.Temperature, *f.HumidityRatio)
	}
	return model.HumidAir{}, model.Missing("relative_humidity or humidity_ratio")
}

func (f FlowSpec) flow(pressure float64) (model.HumidAirFlow, error) {
	air, err := f.air(pressure)
	if err != nil {
		return model.HumidAirFlow{}, err
	}
	set := 0
	for _, v := range []*float64{f.VolumetricFlow, f.MassFlow, f.DryAirMassFlow} {
		if v != nil {
			set++
		}
	}
	if set != 1 {
		return model.HumidAirFlow{}, model.Missing("exactly one of volumetric_flow, mass_flow, dry_air_mass_flow")
	}
	switch {
	case f.VolumetricFlow != nil:
		return model.NewHumidAirFlowOfVolume(air, *f.VolumetricFlow/3600)
	case f.MassFlow != nil:
		return model.NewHumidAirFlow(air, *f.MassFlow)
	}
	return model.NewHumidAirFlowOfDryAir(air, *f.DryAirMassFlow)
}

func decodeParams(params map[string]interface{}, out interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(params); err != nil {
		return fmt.Errorf("params: %w", err)
	}
	return nil
}
