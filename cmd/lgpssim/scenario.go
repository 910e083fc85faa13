package main

import (
	"errors"
	"math/rand"

	"github.com/lgong30/lgps/trace"
)

// Scenario mirrors the teacher's sim/exp.go TestCase: a .TOML input file
// configuring one experimental run. If TraceFile is provided, the random
// generation parameters are ignored and the trace is parsed from disk;
// otherwise a synthetic trace is generated from the Num*/Min*/Max* fields.
type Scenario struct {
	Name       string
	Policy     string
	Iterations int
	Seed       int64

	TraceFile string

	NumPackets      int
	NumFlows        int
	MaxInterArrival float64
	MinLength       float64
	MaxLength       float64
	MinWeight       float64
	MaxWeight       float64
}

func (sc *Scenario) validate() error {
	if sc.Iterations < 1 {
		return errors.New("iterations must be >= 1")
	}
	if sc.TraceFile == "" {
		if sc.NumPackets < 1 {
			return errors.New("NumPackets must be >= 1 when no TraceFile is given")
		}
		if sc.NumFlows < 1 {
			return errors.New("NumFlows must be >= 1 when no TraceFile is given")
		}
	}
	return nil
}

// packets returns the scenario's trace, either parsed from TraceFile or
// freshly generated.
func (sc *Scenario) packets() ([]trace.Packet, error) {
	if sc.TraceFile != "" {
		return trace.ParseFile(sc.TraceFile)
	}
	rnd := rand.New(rand.NewSource(sc.Seed))
	return trace.GenerateRandom(trace.GenConfig{
		NumPackets:      sc.NumPackets,
		NumFlows:        sc.NumFlows,
		MaxInterArrival: sc.MaxInterArrival,
		MinLength:       sc.MinLength,
		MaxLength:       sc.MaxLength,
		MinWeight:       sc.MinWeight,
		MaxWeight:       sc.MaxWeight,
	}, rnd)
}
