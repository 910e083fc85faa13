package main

import "testing"

func TestScenarioValidateRequiresIterations(t *testing.T) {
	sc := &Scenario{Iterations: 0, NumPackets: 10, NumFlows: 2}
	if err := sc.validate(); err == nil {
		t.Log("expected error for zero iterations")
		t.FailNow()
	}
}

func TestScenarioValidateAllowsTraceFileWithoutGenParams(t *testing.T) {
	sc := &Scenario{Iterations: 1, TraceFile: "some/trace.txt"}
	if err := sc.validate(); err != nil {
		t.Log(err.Error())
		t.FailNow()
	}
}

func TestScenarioValidateRejectsMissingGenParams(t *testing.T) {
	sc := &Scenario{Iterations: 1}
	if err := sc.validate(); err == nil {
		t.Log("expected error when neither trace file nor generation params are set")
		t.FailNow()
	}
}

func TestScenarioPacketsGeneratesDeterministically(t *testing.T) {
	sc := &Scenario{
		Iterations:      1,
		Seed:            3,
		NumPackets:      50,
		NumFlows:        3,
		MaxInterArrival: 2.0,
		MinLength:       1.0,
		MaxLength:       10.0,
		MinWeight:       1.0,
		MaxWeight:       3.0,
	}
	a, err := sc.packets()
	if err != nil {
		t.Log(err.Error())
		t.FailNow()
	}
	b, err := sc.packets()
	if err != nil {
		t.Log(err.Error())
		t.FailNow()
	}
	if len(a) != len(b) {
		t.Log("repeated generation produced different lengths")
		t.FailNow()
	}
	for i := range a {
		if a[i] != b[i] {
			t.Log("same seed produced different packet at", i)
			t.FailNow()
		}
	}
}
