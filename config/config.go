// Package config loads the engine settings from an ini file.
package config

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"
)

type Config struct {
	// Pressure is the default absolute pressure of scenario air, Pa.
	Pressure float64
	LogLevel string

	Solver SolverConfig
	Limits LimitsConfig
}

// SolverConfig holds the accuracy of every solver usage, in the unit of its residual.
type SolverConfig struct {
	MaxIterations       int
	TemperatureAccuracy float64 // °C
	HumidityAccuracy    float64 // %
	PowerAccuracy       float64 // W
}

type LimitsConfig struct {
	// MaxCoolingRelativeHumidity caps cooling targets; approaching 100 % needs an
	// infinitely large coil.
	MaxCoolingRelativeHumidity float64 // %
}

// Default is the configuration used when no file is given.
func Default() Config {
	return Config{
		Pressure: 101325,
		LogLevel: "info",
		Solver: SolverConfig{
			MaxIterations:       100,
			TemperatureAccuracy: 1e-9,
			HumidityAccuracy:    1e-9,
			PowerAccuracy:       1e-6,
		},
		Limits: LimitsConfig{
			MaxCoolingRelativeHumidity: 98,
		},
	}
}

// Load reads path; keys absent from the file keep their defaults.
func Load(path string) (Config, error) {
	file, err := ini.Load(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	cfg := loadCfg(file)
	log.WithFields(log.Fields{
		"path":          path,
		"pressure":      cfg.Pressure,
		"maxIterations": cfg.Solver.MaxIterations,
		"maxCoolingRH":  cfg.Limits.MaxCoolingRelativeHumidity,
	}).Debug("config loaded")
	return cfg, cfg.Validate()
}

func loadCfg(file *ini.File) Config {
	def := Default()
	air := file.Section("air")
	solver := file.Section("solver")
	limits := file.Section("limits")
	return Config{
		Pressure: air.Key("pressure").MustFloat64(def.Pressure),
		LogLevel: file.Section("log").Key("level").MustString(def.LogLevel),
		Solver: SolverConfig{
			MaxIterations:       solver.Key("max_iterations").MustInt(def.Solver.MaxIterations),
			TemperatureAccuracy: solver.Key("temperature_accuracy").MustFloat64(def.Solver.TemperatureAccuracy),
			HumidityAccuracy:    solver.Key("humidity_accuracy").MustFloat64(def.Solver.HumidityAccuracy),
			PowerAccuracy:       solver.Key("power_accuracy").MustFloat64(def.Solver.PowerAccuracy),
		},
		Limits: LimitsConfig{
			MaxCoolingRelativeHumidity: limits.Key("max_cooling_rh").MustFloat64(def.Limits.MaxCoolingRelativeHumidity),
		},
	}
}

// Validate rejects settings the solver cannot work with.
func (c Config) Validate() error {
	if c.Pressure <= 0 {
		return fmt.Errorf("config: air.pressure must be positive, got %g", c.Pressure)
	}
	if c.Solver.MaxIterations <= 0 {
		return fmt.Errorf("config: solver.max_iterations must be positive, got %d", c.Solver.MaxIterations)
	}
	for name, v := range map[string]float64{
		"solver.temperature_accuracy": c.Solver.TemperatureAccuracy,
		"solver.humidity_accuracy":    c.Solver.HumidityAccuracy,
		"solver.power_accuracy":       c.Solver.PowerAccuracy,
	} {
		if v <= 0 {
			return fmt.Errorf("config: %s must be positive, got %g", name, v)
		}
	}
	if c.Limits.MaxCoolingRelativeHumidity <= 0 || c.Limits.MaxCoolingRelativeHumidity > 100 {
		return fmt.Errorf("config: limits.max_cooling_rh must be in (0, 100], got %g", c.Limits.MaxCoolingRelativeHumidity)
	}
	return nil
}
