package lgps

import (
	"fmt"
	"math"
	"sync"
)

// Simulator is the exact GPS timing oracle of §4.C: it holds the anchors of
// the last processed event (old_v_time, old_r_time, sum_weight) and owns one
// breakPointTree of pending break points and expected break points. A single
// logical driver is expected to call HandleArrival in nondecreasing
// arrival-real-time order; the embedded mutex makes that safe to do from
// whichever goroutine currently owns the driving event loop, matching every
// Structure implementation in the teacher corpus, without changing the
// single-driver contract itself (see §5).
type Simulator struct {
	mu sync.RWMutex

	oldVTime  float64
	oldRTime  float64
	sumWeight float64

	tree breakPointTree
}

// NewSimulator returns an empty simulator with all three anchors explicitly
// initialized to 0, per the resolved open question in §9 (the source
// initializes old_r_time twice and leaves old_v_time implicit).
func NewSimulator() *Simulator {
	return &Simulator{}
}

// RTimeToVTime converts a real time into the corresponding virtual time, by
// a single root-to-leaf descent of the break-point tree guided by the
// augmented deltaRTime/deltaWeightSum fields (§4.B). It returns 0 for an
// empty tree or while sumWeight is effectively zero (idle system).
func (s *Simulator) RTimeToVTime(newRTime float64) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rTimeToVTimeLocked(newRTime)
}

func (s *Simulator) rTimeToVTimeLocked(newRTime float64) float64 {
	if s.tree.root == nil || math.Abs(s.sumWeight) <= Epsilon {
		return 0
	}

	vt, rt, w := s.oldVTime, s.oldRTime, s.sumWeight
	node := s.tree.root
	for !node.isLeaf() {
		l := node.left
		rtLMax := rt + (l.key()-vt)*w - subtreeRTime(l)

		if newRTime < rtLMax {
			node = node.left
			continue
		}
		w += leafWeightSum(l)
		vt = l.key()
		rt = rtLMax
		node = node.right
	}
	return vt + (newRTime-rt)/w
}

// HandleArrival processes the arrival of a packet: it converts the arrival
// real time to virtual time, computes the packet's virtual start/finish
// time against the flow's previous departure, inserts the corresponding
// break point (arrival) and expected break point (departure), sweeping past
// break points after each insertion, and returns the packet's expected
// departure virtual time. flowLastDepartVTime is both read (the flow's
// state from its previous packet, 0 if the flow was idle) and updated in
// place to the new departure time, per §6's in-out contract.
func (s *Simulator) HandleArrival(arrivalRTime, packetLength, flowWeight float64, flowLastDepartVTime *float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	curVTime := s.rTimeToVTimeLocked(arrivalRTime)

	pktStartVTime := curVTime
	if *flowLastDepartVTime > pktStartVTime {
		pktStartVTime = *flowLastDepartVTime
	}
	pktFinishVTime := pktStartVTime + packetLength/flowWeight
	*flowLastDepartVTime = pktFinishVTime

	// arrival-side insert precedes the departure-side insert so any
	// intervening sweep observes sumWeight consistent with the flow having
	// become active (§4.C "Ordering of the two inserts").
	s.tree.insert(pktStartVTime, flowWeight)
	s.sweep(curVTime)

	s.tree.insert(pktFinishVTime, -flowWeight)
	s.sweep(curVTime)

	return pktFinishVTime
}

// sweep repeatedly removes the leftmost leaf while its key is <= curVTime,
// advancing the anchors on every removal. The source only swept once per
// insert; a loop is required for correctness under bursts where more than
// one leaf becomes past in a single step (§9, flagged source bug).
func (s *Simulator) sweep(curVTime float64) {
	for {
		v, dw, ok := s.tree.removeLeftmostLeafIfNecessary(curVTime)
		if !ok {
			return
		}
		s.oldRTime += s.sumWeight * (v - s.oldVTime)
		s.oldVTime = v
		s.sumWeight += dw
	}
}

// OldVTime, OldRTime and SumWeight expose the simulator's anchors read-only,
// for testing/inspection (§6 "Tree accessor").
func (s *Simulator) OldVTime() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.oldVTime
}

func (s *Simulator) OldRTime() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.oldRTime
}

func (s *Simulator) SumWeight() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sumWeight
}

// Len returns the number of break points currently held in the tree.
func (s *Simulator) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tree.Len()
}

// Str returns a breadth-first debug dump of the underlying tree.
func (s *Simulator) Str() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tree.Str()
}

// PruneZeroWeight removes every break point whose delta weight has
// cancelled to (near) zero, e.g. after an insert(v,+w) is later fully
// offset by insert(v,-w) without an intervening sweep. Pruning is optional
// per §9 and must only be called between HandleArrival calls, never from
// within one. It returns the number of leaves removed.
func (s *Simulator) PruneZeroWeight() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.pruneZeroWeight()
}

// CheckInvariants verifies the tree's five structural invariants (§3) and
// additionally that sumWeight is finite and oldRTime/oldVTime are
// non-negative, the simulator-level piece of the invariant properties in
// §8. It is a read-only diagnostic, not part of the production path.
func (s *Simulator) CheckInvariants() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if math.IsNaN(s.sumWeight) || math.IsInf(s.sumWeight, 0) {
		return fmt.Errorf("sumWeight is not finite: %v", s.sumWeight)
	}
	if s.oldRTime < 0 || s.oldVTime < 0 {
		return fmt.Errorf("negative anchor: oldRTime=%v oldVTime=%v", s.oldRTime, s.oldVTime)
	}
	return s.tree.CheckInvariants()
}
