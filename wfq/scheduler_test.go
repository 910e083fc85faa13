package wfq

import (
	"testing"

	"github.com/lgong30/lgps"
	"github.com/lgong30/lgps/flowtable"
	"github.com/lgong30/lgps/trace"
)

func TestSchedulerFinishOrder(t *testing.T) {
	sim := lgps.NewSimulator()
	var flows flowtable.Table
	sched := New(sim, &flows)

	pkts := []trace.Packet{
		{ArrivalTime: 0.0, Length: 10.0, FlowID: "a", Weight: 1.0},
		{ArrivalTime: 0.0, Length: 2.0, FlowID: "b", Weight: 1.0},
	}

	deps, err := sched.Run(pkts, FinishOrder)
	if err != nil {
		t.Log(err.Error())
		t.FailNow()
	}
	if len(deps) != 2 {
		t.Log("expected 2 departures, got", len(deps))
		t.FailNow()
	}
	// flow b's shorter packet must depart (in virtual time) before flow a's.
	if deps[0].Packet.FlowID != "b" {
		t.Log("expected flow b to depart first, got", deps[0].Packet.FlowID)
		t.FailNow()
	}
}

func TestSchedulerRejectsUnsortedTrace(t *testing.T) {
	sim := lgps.NewSimulator()
	var flows flowtable.Table
	sched := New(sim, &flows)

	pkts := []trace.Packet{
		{ArrivalTime: 5.0, Length: 1.0, FlowID: "a", Weight: 1.0},
		{ArrivalTime: 0.0, Length: 1.0, FlowID: "a", Weight: 1.0},
	}
	if _, err := sched.Run(pkts, FinishOrder); err == nil {
		t.Log("expected error for out-of-order trace")
		t.FailNow()
	}
}

func TestSchedulerRejectsUnknownPolicy(t *testing.T) {
	sim := lgps.NewSimulator()
	var flows flowtable.Table
	sched := New(sim, &flows)

	if _, err := sched.Run(nil, Policy(99)); err == nil {
		t.Log("expected error for unknown policy")
		t.FailNow()
	}
}
