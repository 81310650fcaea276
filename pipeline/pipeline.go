// Package pipeline chains process blocks so that each one consumes the outlet of the
// block before it.
//
// A Pipeline and its blocks are plain mutable values with no locking; a host running
// them from several goroutines must synchronize externally.
package pipeline

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"hvac/model"
	"hvac/process"
)

var (
	// ErrUsage is matched by every misuse of a Pipeline.
	ErrUsage       = errors.New("pipeline usage")
	ErrNoProcess   = fmt.Errorf("%w: no process", ErrUsage)
	ErrNoInletFlow = fmt.Errorf("%w: no inlet flow", ErrUsage)
)

// Pipeline is an append-only sequence of blocks.
type Pipeline struct {
	blocks  []Block
	results []process.Result
}

func New() *Pipeline {
	return &Pipeline{}
}

// AddBlock appends b, wires its input to the previous block's output and returns its index.
func (p *Pipeline) AddBlock(b Block) (int, error) {
	if b == nil {
		return -1, model.Missing("block")
	}
	if n := len(p.blocks); n > 0 {
		b.Input().ConnectTo(p.blocks[n-1].Output())
	}
	p.blocks = append(p.blocks, b)
	return len(p.blocks) - 1, nil
}

// SetInletFlow supplies the input of the first block.
func (p *Pipeline) SetInletFlow(flow model.HumidAirFlow) error {
	if len(p.blocks) == 0 {
		return ErrNoProcess
	}
	p.blocks[0].Input().Set(flow)
	return nil
}

func (p *Pipeline) Len() int {
	return len(p.blocks)
}

// Block returns the block at index i.
func (p *Pipeline) Block(i int) Block {
	return p.blocks[i]
}

// Run executes the blocks in insertion order and returns the result of the last one.
// The result list is rebuilt on every run; a failing block leaves the results of the
// blocks before it, and its own output and every output after it are cleared.
func (p *Pipeline) Run() (process.Result, error) {
	if len(p.blocks) == 0 {
		return nil, ErrNoProcess
	}
	if _, ok := p.blocks[0].Input().Pull(); !ok {
		return nil, ErrNoInletFlow
	}
	for i, b := range p.blocks[1:] {
		if !b.Input().Connected() {
			return nil, fmt.Errorf("%w: block %d input is not connected", ErrUsage, i+1)
		}
	}
	p.results = p.results[:0]
	for i, b := range p.blocks {
		res, err := b.Run()
		if err != nil {
			for _, stale := range p.blocks[i:] {
				stale.Output().Clear()
			}
			return nil, fmt.Errorf("block %d (%v): %w", i, b.Kind(), err)
		}
		out := res.OutletFlow()
		log.WithFields(log.Fields{
			"block":       i,
			"kind":        res.Kind(),
			"temperature": out.Air().DryBulbTemperature(),
			"rh":          out.Air().RelativeHumidity(),
			"heat":        res.HeatOfProcess(),
		}).Debug("block finished")
		p.results = append(p.results, res)
	}
	return p.results[len(p.results)-1], nil
}

// Results returns a copy of the results of the last run.
func (p *Pipeline) Results() []process.Result {
	return append([]process.Result(nil), p.results...)
}

// ResultsOfKind filters Results by kind, keeping order.
func (p *Pipeline) ResultsOfKind(kind process.Kind) []process.Result {
	var out []process.Result
	for _, r := range p.results {
		if r.Kind() == kind {
			out = append(out, r)
		}
	}
	return out
}

// ResultsOf returns the results of concrete type R, keeping order.
func ResultsOf[R process.Result](p *Pipeline) []R {
	var out []R
	for _, r := range p.results {
		if typed, ok := r.(R); ok {
			out = append(out, typed)
		}
	}
	return out
}

// LastResult is the most recent result of the last run, or nil when there is none.
func (p *Pipeline) LastResult() process.Result {
	if len(p.results) == 0 {
		return nil
	}
	return p.results[len(p.results)-1]
}
