package process

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hvac/config"
	"hvac/model"
)

func TestCooling_FromTemperature(t *testing.T) {
	inlet := mixedSupply(t)
	coolant := coolantOf(t, 7, 14)

	c, err := NewCooling(&inlet, &coolant, Temperature(25))
	require.NoError(t, err)
	res, err := c.Apply()
	require.NoError(t, err)

	out := res.Outlet.Air()
	assert.Equal(t, 25.0, out.DryBulbTemperature())
	assert.InDelta(t, 0.7472, res.BypassFactor, 1e-4)
	assert.InDelta(t, 0.014468, out.HumidityRatio(), 1e-6)
	assert.InDelta(t, 72.68, out.RelativeHumidity(), 0.01)
	assert.InDelta(t, 0.0013791, res.Condensate.MassFlow(), 1e-7)
	assert.Equal(t, 10.5, res.Condensate.Fluid().Temperature())
	assert.InDelta(t, -6566.2, res.Heat, 0.5)
	assert.Equal(t, inlet.DryAirMassFlow(), res.Outlet.DryAirMassFlow())
	assert.Equal(t, KindCooling, res.Kind())
}

func TestCooling_WaterBalance(t *testing.T) {
	inlet := mixedSupply(t)
	coolant := coolantOf(t, 7, 14)

	c, err := NewCooling(&inlet, &coolant, Temperature(23))
	require.NoError(t, err)
	res, err := c.Apply()
	require.NoError(t, err)

	removed := inlet.DryAirMassFlow() * (inlet.Air().HumidityRatio() - res.Outlet.Air().HumidityRatio())
	assert.InDelta(t, removed, res.Condensate.MassFlow(), 1e-12)
}

func TestCooling_PowerRoundTrip(t *testing.T) {
	inlet := mixedSupply(t)
	coolant := coolantOf(t, 7, 14)

	byTemp, err := NewCooling(&inlet, &coolant, Temperature(25))
	require.NoError(t, err)
	first, err := byTemp.Apply()
	require.NoError(t, err)

	byPower, err := NewCooling(&inlet, &coolant, Power(first.Heat))
	require.NoError(t, err)
	second, err := byPower.Apply()
	require.NoError(t, err)

	assert.InDelta(t, 25, second.Outlet.Air().DryBulbTemperature(), 1e-6)
	assert.InDelta(t, first.Heat, second.Heat, 1e-6)
	assert.InDelta(t, first.Condensate.MassFlow(), second.Condensate.MassFlow(), 1e-9)
}

func TestCooling_RelativeHumidityRoundTrip(t *testing.T) {
	inlet := mixedSupply(t)
	coolant := coolantOf(t, 7, 14)

	byTemp, err := NewCooling(&inlet, &coolant, Temperature(24))
	require.NoError(t, err)
	first, err := byTemp.Apply()
	require.NoError(t, err)

	rh := first.Outlet.Air().RelativeHumidity()
	byRH, err := NewCooling(&inlet, &coolant, RelativeHumidity(rh))
	require.NoError(t, err)
	second, err := byRH.Apply()
	require.NoError(t, err)

	assert.InDelta(t, rh, second.Outlet.Air().RelativeHumidity(), 1e-9)
	assert.InDelta(t, 24, second.Outlet.Air().DryBulbTemperature(), 1e-6)
}

func TestCooling_RelativeHumidityAtInletIsNoop(t *testing.T) {
	inlet := mixedSupply(t)
	coolant := coolantOf(t, 7, 14)

	c, err := NewCooling(&inlet, &coolant, RelativeHumidity(inlet.Air().RelativeHumidity()))
	require.NoError(t, err)
	res, err := c.Apply()
	require.NoError(t, err)

	assert.Zero(t, res.Heat)
	assert.Zero(t, res.Condensate.MassFlow())
	assert.Equal(t, inlet, res.Outlet)
}

func TestCooling_Rejects(t *testing.T) {
	inlet := mixedSupply(t)
	coolant := coolantOf(t, 7, 14)
	warm := coolantOf(t, 30, 40)

	cases := []struct {
		name    string
		coolant model.Coolant
		target  CoolingTarget
	}{
		{"positive power", coolant, Power(1)},
		{"power beyond zero degrees", coolant, Power(-1e6)},
		{"temperature above inlet", coolant, Temperature(31)},
		{"temperature below wall", coolant, Temperature(10)},
		{"humidity below inlet", coolant, RelativeHumidity(50)},
		{"humidity above limit", coolant, RelativeHumidity(99)},
		{"wall warmer than inlet", warm, Temperature(25)},
		{"wall warmer than inlet, power", warm, Power(-100)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := NewCooling(&inlet, &c.coolant, c.target)
			assert.ErrorIs(t, err, model.ErrInvalidArgument)
		})
	}

	_, err := NewCooling(&inlet, nil, Power(-1))
	assert.ErrorIs(t, err, model.ErrMissingArgument)
	_, err = NewCooling(&inlet, &coolant, nil)
	assert.ErrorIs(t, err, model.ErrMissingArgument)
}

func TestCooling_BracketIsMonotone(t *testing.T) {
	inlet := mixedSupply(t)
	c := coil{inlet: inlet, coolant: coolantOf(t, 7, 14)}
	lower := c.wallTemperature()
	upper := inlet.Air().DryBulbTemperature()

	prev, err := c.at(lower)
	require.NoError(t, err)
	for i := 1; i <= 40; i++ {
		next, err := c.at(lower + (upper-lower)*float64(i)/40)
		require.NoError(t, err)
		assert.LessOrEqual(t, next.Outlet.Air().RelativeHumidity(), prev.Outlet.Air().RelativeHumidity())
		assert.GreaterOrEqual(t, next.Heat, prev.Heat)
		assert.LessOrEqual(t, next.Condensate.MassFlow(), prev.Condensate.MassFlow())
		prev = next
	}
}

// Outlets between the coil wall and the inlet dew point must stay reachable.
func TestCooling_ReachableTargetsAcrossInletStates(t *testing.T) {
	coolants := []model.Coolant{coolantOf(t, 7, 14), coolantOf(t, 12, 18), coolantOf(t, 4, 9)}
	acc := Settings().Solver
	limit := Settings().Limits.MaxCoolingRelativeHumidity

	for temp := 16.0; temp <= 45; temp += 3 {
		for _, rh := range []float64{10, 25, 40, 55, 70, 85, 95} {
			inlet := dryFlowOf(t, temp, rh, 0.5)
			for i := range coolants {
				coolant := coolants[i]
				c := coil{inlet: inlet, coolant: coolant}
				tw := c.wallTemperature()
				if tw >= temp {
					continue
				}
				name := fmt.Sprintf("inlet %g °C/%g %%, wall %g °C", temp, rh, tw)
				atWall, err := c.at(tw)
				require.NoError(t, err, name)

				rh1 := inlet.Air().RelativeHumidity()
				rhWall := math.Min(atWall.Outlet.Air().RelativeHumidity(), limit)
				for _, f := range []float64{0.2, 0.6, 1} {
					target := rh1 + f*(rhWall-rh1)
					if target <= rh1 {
						continue
					}
					cooling, err := NewCooling(&inlet, &coolant, RelativeHumidity(target))
					require.NoError(t, err, "%s, target %g %%", name, target)
					res, err := cooling.Apply()
					require.NoError(t, err, "%s, target %g %%", name, target)
					assert.InDelta(t, target, res.Outlet.Air().RelativeHumidity(), acc.HumidityAccuracy, name)
					assert.GreaterOrEqual(t, res.Outlet.Air().DryBulbTemperature(), tw, name)
				}

				for _, f := range []float64{0.1, 0.5, 0.9, 1} {
					power := f * atWall.Heat
					cooling, err := NewCooling(&inlet, &coolant, Power(power))
					require.NoError(t, err, "%s, power %g W", name, power)
					res, err := cooling.Apply()
					require.NoError(t, err, "%s, power %g W", name, power)
					assert.InDelta(t, power, res.Heat, acc.PowerAccuracy, name)
					assert.GreaterOrEqual(t, res.Outlet.Air().DryBulbTemperature(), tw, name)
				}

				_, err = NewCooling(&inlet, &coolant, Power(atWall.Heat-1))
				assert.ErrorIs(t, err, model.ErrInvalidArgument, name)
			}
		}
	}
}

func TestCooling_OutletBelowDewPointIsReachable(t *testing.T) {
	coolant := coolantOf(t, 12, 18)

	humid := dryFlowOf(t, 40, 80, 0.5)
	c := coil{inlet: humid, coolant: coolant}
	at20, err := c.at(20)
	require.NoError(t, err)
	require.Less(t, 20.0, humid.Air().DewPointTemperature())
	byPower, err := NewCooling(&humid, &coolant, Power(at20.Heat))
	require.NoError(t, err)
	res, err := byPower.Apply()
	require.NoError(t, err)
	assert.InDelta(t, 20, res.Outlet.Air().DryBulbTemperature(), 1e-6)

	warm := dryFlowOf(t, 43, 45, 0.5)
	c = coil{inlet: warm, coolant: coolant}
	at18, err := c.at(18)
	require.NoError(t, err)
	require.Less(t, 18.0, warm.Air().DewPointTemperature())
	rh := at18.Outlet.Air().RelativeHumidity()
	byRH, err := NewCooling(&warm, &coolant, RelativeHumidity(rh))
	require.NoError(t, err)
	res, err = byRH.Apply()
	require.NoError(t, err)
	assert.InDelta(t, 18, res.Outlet.Air().DryBulbTemperature(), 1e-6)
}

func TestConfigure_CoolingHumidityLimit(t *testing.T) {
	prev := Settings()
	t.Cleanup(func() { Configure(prev) })

	cfg := config.Default()
	cfg.Limits.MaxCoolingRelativeHumidity = 80
	Configure(cfg)

	inlet := mixedSupply(t)
	coolant := coolantOf(t, 7, 14)
	_, err := NewCooling(&inlet, &coolant, RelativeHumidity(85))
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
	_, err = NewCooling(&inlet, &coolant, RelativeHumidity(75))
	assert.NoError(t, err)
}

func TestDryCooling_RoundTripWithHeating(t *testing.T) {
	inlet := flowOf(t, 20, 50, 1000*cubicMetrePerHour)
	coolant := coolantOf(t, 7, 14)

	h, err := NewHeating(&inlet, Power(3000))
	require.NoError(t, err)
	heated, err := h.Apply()
	require.NoError(t, err)

	c, err := NewDryCooling(&heated.Outlet, &coolant, Power(-3000))
	require.NoError(t, err)
	cooled, err := c.Apply()
	require.NoError(t, err)

	assert.InDelta(t, 20, cooled.Outlet.Air().DryBulbTemperature(), 1e-9)
	assert.Equal(t, inlet.Air().HumidityRatio(), cooled.Outlet.Air().HumidityRatio())
	assert.Equal(t, -3000.0, cooled.Heat)
	assert.Zero(t, cooled.Condensate.MassFlow())
}

func TestDryCooling_FromTemperature(t *testing.T) {
	inlet := flowOf(t, 30, 40, 1000*cubicMetrePerHour)
	coolant := coolantOf(t, 7, 14)

	c, err := NewDryCooling(&inlet, &coolant, Temperature(20))
	require.NoError(t, err)
	res, err := c.Apply()
	require.NoError(t, err)

	out := res.Outlet.Air()
	assert.Equal(t, 20.0, out.DryBulbTemperature())
	assert.Equal(t, inlet.Air().HumidityRatio(), out.HumidityRatio())
	assert.Less(t, res.Heat, 0.0)
	assert.InDelta(t, (20-10.5)/(30-10.5), res.BypassFactor, 1e-12)
}

func TestDryCooling_RejectsBelowDewPoint(t *testing.T) {
	inlet := flowOf(t, 30, 80, 1000*cubicMetrePerHour)
	coolant := coolantOf(t, 7, 14)
	require.Greater(t, inlet.Air().DewPointTemperature(), 25.0)

	_, err := NewDryCooling(&inlet, &coolant, Temperature(25))
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
	_, err = NewDryCooling(&inlet, &coolant, Power(-5000))
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
}
