// Package wfq implements the packet dispatch policy spec.md names as the
// motivating external consumer of the core: Worst-case Fair Weighted Fair
// Queueing, which orders packet transmissions by the expected departure
// virtual time lgps.Simulator.HandleArrival returns. Grounded on the
// teacher's Reducer/ApplyReduceAlgo enum-dispatch pattern (reduce.go),
// generalized from a log-compaction strategy enum to a scheduling-policy
// enum.
package wfq

import (
	"fmt"
	"sort"

	"github.com/lgong30/lgps"
	"github.com/lgong30/lgps/flowtable"
	"github.com/lgong30/lgps/trace"
)

// Policy indexes the dispatch policies a Scheduler can apply.
type Policy int8

const (
	// FinishOrder dispatches packets in nondecreasing expected departure
	// virtual time order, ties broken by arrival order. This is the
	// baseline WF2Q policy: the one that achieves the one-maximum-packet
	// deviation bound from the GPS fluid ideal.
	FinishOrder Policy = iota
)

// Departure pairs an arrived packet with the expected departure virtual
// time the simulator computed for it.
type Departure struct {
	Packet      trace.Packet
	DepartVTime float64
}

// Scheduler drives a lgps.Simulator over a packet trace and produces a
// transmission order. It owns no state of its own beyond the simulator and
// flow table references it is constructed with.
type Scheduler struct {
	sim   *lgps.Simulator
	flows *flowtable.Table
}

// New returns a Scheduler driving sim, tracking flows in flows.
func New(sim *lgps.Simulator, flows *flowtable.Table) *Scheduler {
	return &Scheduler{sim: sim, flows: flows}
}

// Run feeds pkts through the simulator in order and returns the resulting
// departures ordered per policy. pkts must already be sorted by
// ArrivalTime (spec.md §7: out-of-order arrivals are a caller
// precondition, not something the core or this dispatcher corrects).
func (s *Scheduler) Run(pkts []trace.Packet, policy Policy) ([]Departure, error) {
	for i := 1; i < len(pkts); i++ {
		if pkts[i].ArrivalTime < pkts[i-1].ArrivalTime {
			return nil, fmt.Errorf("packet %d arrives before packet %d: trace must be sorted by arrival time", i, i-1)
		}
	}

	switch policy {
	case FinishOrder:
		return s.runFinishOrder(pkts), nil
	default:
		return nil, fmt.Errorf("unsupported dispatch policy: %v", policy)
	}
}

func (s *Scheduler) runFinishOrder(pkts []trace.Packet) []Departure {
	deps := make([]Departure, len(pkts))
	for i, p := range pkts {
		ref := s.flows.Ref(p.FlowID)
		v := s.sim.HandleArrival(p.ArrivalTime, p.Length, p.Weight, ref)
		s.flows.Set(p.FlowID, *ref)
		deps[i] = Departure{Packet: p, DepartVTime: v}
	}

	sort.SliceStable(deps, func(i, j int) bool {
		return deps[i].DepartVTime < deps[j].DepartVTime
	})
	return deps
}
