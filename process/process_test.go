package process

import (
	"testing"

	"github.com/stretchr/testify/require"

	"hvac/model"
	"hvac/property"
)

const cubicMetrePerHour = 1.0 / 3600

func flowOf(t *testing.T, temp, rh, volume float64) model.HumidAirFlow {
	t.Helper()
	air, err := model.HumidAirOfRH(property.StandardPressure, temp, rh)
	require.NoError(t, err)
	f, err := model.NewHumidAirFlowOfVolume(air, volume)
	require.NoError(t, err)
	return f
}

func dryFlowOf(t *testing.T, temp, rh, dryAir float64) model.HumidAirFlow {
	t.Helper()
	air, err := model.HumidAirOfRH(property.StandardPressure, temp, rh)
	require.NoError(t, err)
	f, err := model.NewHumidAirFlowOfDryAir(air, dryAir)
	require.NoError(t, err)
	return f
}

func coolantOf(t *testing.T, supply, ret float64) model.Coolant {
	t.Helper()
	c, err := model.NewCoolant(supply, ret)
	require.NoError(t, err)
	return c
}

// mixedSupply is 1000 m³/h of outdoor air at 35 °C/55 % mixed with 1000 m³/h of
// return air at 25 °C/70 %.
func mixedSupply(t *testing.T) model.HumidAirFlow {
	t.Helper()
	outdoor := flowOf(t, 35, 55, 1000*cubicMetrePerHour)
	recirculated := flowOf(t, 25, 70, 1000*cubicMetrePerHour)
	m, err := NewMixing(&outdoor, SecondFlow{Flow: &recirculated})
	require.NoError(t, err)
	res, err := m.Apply()
	require.NoError(t, err)
	return res.Outlet
}
