package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats/scalar"

	"hvac/model"
	"hvac/process"
	"hvac/property"
)

func flowOf(t *testing.T, temp, rh, volumePerHour float64) model.HumidAirFlow {
	t.Helper()
	air, err := model.HumidAirOfRH(property.StandardPressure, temp, rh)
	require.NoError(t, err)
	f, err := model.NewHumidAirFlowOfVolume(air, volumePerHour/3600)
	require.NoError(t, err)
	return f
}

// airHandlingUnit mixes outdoor and return air, cools the mix to 25 °C and reheats it
// to 30 % RH.
func airHandlingUnit(t *testing.T) (*Pipeline, model.HumidAirFlow, model.HumidAirFlow) {
	t.Helper()
	outdoor := flowOf(t, 35, 55, 1000)
	recirculated := flowOf(t, 25, 70, 1000)
	coolant, err := model.NewCoolant(7, 14)
	require.NoError(t, err)

	p := New()
	for i, b := range []Block{
		NewMixingBlock(process.SecondFlow{Flow: &recirculated}),
		NewCoolingBlock(coolant, process.Temperature(25)),
		NewHeatingBlock(process.RelativeHumidity(30)),
	} {
		idx, err := p.AddBlock(b)
		require.NoError(t, err)
		require.Equal(t, i, idx)
	}
	require.NoError(t, p.SetInletFlow(outdoor))
	return p, outdoor, recirculated
}

func TestPipeline_AirHandlingUnit(t *testing.T) {
	p, outdoor, recirculated := airHandlingUnit(t)

	res, err := p.Run()
	require.NoError(t, err)

	heating, ok := res.(*process.HeatingResult)
	require.True(t, ok)
	out := heating.Outlet.Air()
	assert.InDelta(t, 40.7, out.DryBulbTemperature(), 0.1)
	assert.True(t, scalar.EqualWithinAbs(out.RelativeHumidity(), 30, 1e-11), "RH %v", out.RelativeHumidity())
	assert.InDelta(t, outdoor.DryAirMassFlow()+recirculated.DryAirMassFlow(), heating.Outlet.DryAirMassFlow(), 1e-12)
	assert.InDelta(t, 10_000, heating.Heat, 100)

	cooling := ResultsOf[*process.CoolingResult](p)
	require.Len(t, cooling, 1)
	assert.InDelta(t, 25, cooling[0].Outlet.Air().DryBulbTemperature(), 1e-12)
	assert.InDelta(t, 0.0013791, cooling[0].Condensate.MassFlow(), 1e-7)
}

func TestPipeline_Cardinality(t *testing.T) {
	p, _, _ := airHandlingUnit(t)

	last, err := p.Run()
	require.NoError(t, err)

	results := p.Results()
	require.Len(t, results, p.Len())
	assert.Equal(t, []process.Kind{process.KindMixing, process.KindCooling, process.KindHeating},
		[]process.Kind{results[0].Kind(), results[1].Kind(), results[2].Kind()})
	assert.Same(t, results[len(results)-1], p.LastResult())
	assert.Same(t, last, p.LastResult())
	assert.Len(t, p.ResultsOfKind(process.KindHeating), 1)
	assert.Empty(t, ResultsOf[*process.HeatingResult](New()))

	for i := 1; i < p.Len(); i++ {
		upstream, ok := p.Block(i - 1).Output().Read()
		require.True(t, ok)
		pulled, ok := p.Block(i).Input().Value()
		require.True(t, ok)
		assert.Equal(t, upstream, pulled)
		assert.Same(t, results[i], p.Block(i).LastResult())
	}
}

func TestPipeline_RerunReplacesResults(t *testing.T) {
	p, _, _ := airHandlingUnit(t)
	_, err := p.Run()
	require.NoError(t, err)
	first := p.Results()

	require.NoError(t, p.SetInletFlow(flowOf(t, 33, 50, 1500)))
	_, err = p.Run()
	require.NoError(t, err)

	second := p.Results()
	require.Len(t, second, len(first))
	assert.NotEqual(t,
		first[0].OutletFlow().Air().DryBulbTemperature(),
		second[0].OutletFlow().Air().DryBulbTemperature())
	assert.InDelta(t, 25, second[1].OutletFlow().Air().DryBulbTemperature(), 1e-12)
}

func TestPipeline_UsageErrors(t *testing.T) {
	p := New()
	_, err := p.Run()
	assert.ErrorIs(t, err, ErrNoProcess)
	assert.ErrorIs(t, err, ErrUsage)
	assert.ErrorIs(t, p.SetInletFlow(flowOf(t, 20, 50, 100)), ErrNoProcess)

	_, err = p.AddBlock(nil)
	assert.ErrorIs(t, err, model.ErrMissingArgument)

	_, err = p.AddBlock(NewHeatingBlock(process.Temperature(30)))
	require.NoError(t, err)
	_, err = p.Run()
	assert.ErrorIs(t, err, ErrNoInletFlow)
	assert.Nil(t, p.LastResult())
}

func TestPipeline_BlockErrorsAreWrapped(t *testing.T) {
	p := New()
	_, err := p.AddBlock(NewHeatingBlock(process.Temperature(30)))
	require.NoError(t, err)
	_, err = p.AddBlock(NewHeatingBlock(process.Temperature(25)))
	require.NoError(t, err)
	require.NoError(t, p.SetInletFlow(flowOf(t, 20, 50, 100)))

	_, err = p.Run()
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "block 1 (heating)")
	assert.Len(t, p.Results(), 1)
}

func TestPipeline_FailedRerunClearsDownstreamOutputs(t *testing.T) {
	p := New()
	for _, b := range []Block{
		NewHeatingBlock(process.Power(1000)),
		NewHeatingBlock(process.Temperature(35)),
		NewHeatingBlock(process.Temperature(40)),
	} {
		_, err := p.AddBlock(b)
		require.NoError(t, err)
	}
	require.NoError(t, p.SetInletFlow(flowOf(t, 20, 50, 1000)))
	_, err := p.Run()
	require.NoError(t, err)
	for i := 0; i < p.Len(); i++ {
		_, ok := p.Block(i).Output().Read()
		assert.True(t, ok, "block %d", i)
	}

	// the first block now heats past the second block's target
	require.NoError(t, p.SetInletFlow(flowOf(t, 34, 30, 1000)))
	_, err = p.Run()
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "block 1 (heating)")
	assert.Len(t, p.Results(), 1)

	first, ok := p.Block(0).Output().Read()
	require.True(t, ok)
	assert.Greater(t, first.Air().DryBulbTemperature(), 34.0)
	for i := 1; i < p.Len(); i++ {
		_, ok := p.Block(i).Output().Read()
		assert.False(t, ok, "block %d still holds a stale outlet", i)
	}
}

func TestPipeline_DisconnectedBlockIsUsageError(t *testing.T) {
	p, _, _ := airHandlingUnit(t)
	p.Block(1).Input().ConnectTo(nil)

	_, err := p.Run()
	assert.ErrorIs(t, err, ErrUsage)
	assert.Contains(t, err.Error(), "block 1 input is not connected")
	assert.Nil(t, p.LastResult())
}

func TestPipeline_DryCoolingBlock(t *testing.T) {
	coolant, err := model.NewCoolant(7, 14)
	require.NoError(t, err)

	p := New()
	_, err = p.AddBlock(NewHeatingBlock(process.Power(2500)))
	require.NoError(t, err)
	_, err = p.AddBlock(NewDryCoolingBlock(coolant, process.Power(-2500)))
	require.NoError(t, err)
	require.NoError(t, p.SetInletFlow(flowOf(t, 18, 45, 800)))

	res, err := p.Run()
	require.NoError(t, err)
	assert.InDelta(t, 18, res.OutletFlow().Air().DryBulbTemperature(), 1e-9)
	assert.Equal(t, -2500.0, res.HeatOfProcess())
	assert.Len(t, p.ResultsOfKind(process.KindCooling), 1)
}
