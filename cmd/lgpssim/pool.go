package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lgong30/lgps"
	"github.com/lgong30/lgps/flowtable"
	"github.com/lgong30/lgps/wfq"
)

// Result is the outcome of running one Scenario iteration.
type Result struct {
	Scenario   string
	Iteration  int
	Departures []wfq.Departure
	Duration   time.Duration
	Err        error
}

// runPool runs every scenario's every iteration concurrently, bounded by
// concLevel simultaneous goroutines. This is the worker-pool counterpart of
// the teacher's ConcTable: independent Simulator instances (§5 "Multiple
// simulator instances are independent and may be run in parallel without
// synchronization") driven off a context-scoped goroutine group, instead of
// ConcTable's concurrent views of one shared log.
func runPool(ctx context.Context, scenarios []*Scenario, concLevel int) []Result {
	if concLevel < 1 {
		concLevel = 1
	}

	type job struct {
		idx int
		sc  *Scenario
		it  int
	}

	var jobs []job
	for _, sc := range scenarios {
		for i := 0; i < sc.Iterations; i++ {
			jobs = append(jobs, job{idx: len(jobs), sc: sc, it: i})
		}
	}

	jobCh := make(chan job, len(jobs))
	for _, j := range jobs {
		jobCh <- j
	}
	close(jobCh)

	results := make([]Result, len(jobs))
	var wg sync.WaitGroup

	for w := 0; w < concLevel; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobCh {
				select {
				case <-ctx.Done():
					return
				default:
				}
				results[j.idx] = runOne(j.sc, j.it)
			}
		}()
	}
	wg.Wait()
	return results
}

func runOne(sc *Scenario, iteration int) Result {
	pkts, err := sc.packets()
	if err != nil {
		return Result{Scenario: sc.Name, Iteration: iteration, Err: err}
	}

	sim := lgps.NewSimulator()
	var flows flowtable.Table
	sched := wfq.New(sim, &flows)

	policy, err := parsePolicy(sc.Policy)
	if err != nil {
		return Result{Scenario: sc.Name, Iteration: iteration, Err: err}
	}

	start := time.Now()
	deps, err := sched.Run(pkts, policy)
	dur := time.Since(start)
	if err != nil {
		return Result{Scenario: sc.Name, Iteration: iteration, Err: err}
	}
	return Result{Scenario: sc.Name, Iteration: iteration, Departures: deps, Duration: dur}
}

func parsePolicy(name string) (wfq.Policy, error) {
	switch name {
	case "", "finish_order":
		return wfq.FinishOrder, nil
	default:
		return 0, fmt.Errorf("unsupported policy %q", name)
	}
}
