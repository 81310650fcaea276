package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hvac/config"
	"hvac/model"
	"hvac/pipeline"
	"hvac/process"
)

func TestLoad_SummerUnit(t *testing.T) {
	s, err := Load("../conf/scenarios/ahu.yaml")
	require.NoError(t, err)
	assert.Equal(t, "summer-ahu", s.Name)
	require.Len(t, s.Blocks, 3)

	p, err := s.Build(config.Default())
	require.NoError(t, err)
	res, err := p.Run()
	require.NoError(t, err)

	out := res.OutletFlow().Air()
	assert.InDelta(t, 40.7, out.DryBulbTemperature(), 0.1)
	assert.InDelta(t, 30, out.RelativeHumidity(), 1e-9)
	assert.Len(t, p.Results(), 3)
	assert.IsType(t, &pipeline.MixingBlock{}, p.Block(0))
	assert.IsType(t, &pipeline.CoolingBlock{}, p.Block(1))
}

func TestLoad_WinterUnit(t *testing.T) {
	s, err := Load("../conf/scenarios/winter.yaml")
	require.NoError(t, err)

	p, err := s.Build(config.Default())
	require.NoError(t, err)
	res, err := p.Run()
	require.NoError(t, err)

	mixing := pipeline.ResultsOf[*process.MixingResult](p)
	require.Len(t, mixing, 1)
	assert.InDelta(t, 12, mixing[0].Outlet.Air().DryBulbTemperature(), 1e-8)
	assert.InDelta(t, 0.6, mixing[0].Outlet.DryAirMassFlow(), 1e-12)

	heating := pipeline.ResultsOf[*process.HeatingResult](p)
	require.Len(t, heating, 1)
	assert.Equal(t, 6000.0, heating[0].Heat)

	assert.Equal(t, 20.0, res.OutletFlow().Air().DryBulbTemperature())
	assert.Less(t, res.HeatOfProcess(), 0.0)
}

func TestParse_PressureOverride(t *testing.T) {
	doc := `
pressure: 90000
inlet: {temperature: 20, humidity_ratio: 0.006, mass_flow: 1}
blocks:
  - type: heating
    params: {target: {temperature: 30}}
`
	s, err := Parse([]byte(doc))
	require.NoError(t, err)
	p, err := s.Build(config.Default())
	require.NoError(t, err)
	res, err := p.Run()
	require.NoError(t, err)
	assert.Equal(t, 90000.0, res.OutletFlow().Air().Pressure())
	assert.Equal(t, 0.006, res.OutletFlow().Air().HumidityRatio())
}

func TestParse_Rejects(t *testing.T) {
	cases := map[string]string{
		"no blocks": `inlet: {temperature: 20, relative_humidity: 50, mass_flow: 1}`,
		"bad yaml":  `blocks: [`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}

	_, err := Parse([]byte(cases["no blocks"]))
	assert.ErrorIs(t, err, pipeline.ErrNoProcess)
}

func TestBuild_Rejects(t *testing.T) {
	inlet := "inlet: {temperature: 20, relative_humidity: 50, volumetric_flow: 500}\n"
	cases := []struct {
		name string
		doc  string
		want error
	}{
		{"unknown type", inlet + "blocks: [{type: humidifier}]", model.ErrInvalidArgument},
		{"two targets", inlet + "blocks: [{type: heating, params: {target: {power: 1, temperature: 30}}}]", model.ErrMissingArgument},
		{"no coolant", inlet + "blocks: [{type: cooling, params: {target: {temperature: 15}}}]", model.ErrMissingArgument},
		{"dry cooling to humidity", inlet + "blocks: [{type: dry_cooling, params: {coolant: {supply: 7, return: 12}, target: {relative_humidity: 60}}}]", model.ErrInvalidArgument},
		{"coolant out of range", inlet + "blocks: [{type: cooling, params: {coolant: {supply: -3, return: 12}, target: {temperature: 15}}}]", model.ErrInvalidArgument},
		{"both humidities", "inlet: {temperature: 20, relative_humidity: 50, humidity_ratio: 0.01, mass_flow: 1}\nblocks: [{type: heating, params: {target: {temperature: 30}}}]", model.ErrInvalidArgument},
		{"no flow rate", "inlet: {temperature: 20, relative_humidity: 50}\nblocks: [{type: heating, params: {target: {temperature: 30}}}]", model.ErrMissingArgument},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s, err := Parse([]byte(c.doc))
			require.NoError(t, err)
			_, err = s.Build(config.Default())
			assert.ErrorIs(t, err, c.want)
		})
	}
}

func TestBuild_UnknownParam(t *testing.T) {
	doc := "inlet: {temperature: 20, relative_humidity: 50, mass_flow: 1}\n" +
		"blocks: [{type: heating, params: {target: {temperature: 30}, speed: 3}}]"
	s, err := Parse([]byte(doc))
	require.NoError(t, err)
	_, err = s.Build(config.Default())
	assert.ErrorContains(t, err, "speed")
}

func TestTypes_AllRegistered(t *testing.T) {
	for _, name := range Types() {
		assert.Contains(t, allocators, name)
	}
	assert.Len(t, allocators, len(Types()))
}
