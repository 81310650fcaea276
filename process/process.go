// Package process turns an inlet humid-air flow into the outlet of a heating, cooling or
// mixing stage.
//
// Each family is a closed set of variants chosen by the type of the target handed to its
// factory (NewHeating, NewCooling, NewDryCooling, NewMixing). Factories validate eagerly;
// Apply computes either in closed form or through the solver.
//
// Strategies and the package settings are not safe for concurrent mutation. A host that
// shares them across goroutines must synchronize externally.
package process

import (
	"hvac/config"
	"hvac/solver"
)

var settings = config.Default()

// Configure replaces the solver accuracies and plausibility limits used by new strategies.
func Configure(cfg config.Config) {
	settings = cfg
}

// Settings returns the configuration in use.
func Settings() config.Config {
	return settings
}

func solverOptions(accuracy float64, quantity string, target, min, max float64) solver.Options {
	opts := solver.DefaultOptions()
	opts.Tolerance = accuracy
	opts.MaxIterations = settings.Solver.MaxIterations
	opts.Quantity = quantity
	opts.Target = target
	opts.Min, opts.Max = min, max
	return opts
}
