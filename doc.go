// Package lgps implements the core of an exact Generalized Processor
// Sharing (GPS) simulator: the virtual-time bookkeeping and augmented
// break-point tree that a worst-case fair packet scheduler uses to decide
// departure order with the minimum achievable deviation from the fluid GPS
// ideal.
//
// The core operations are NewSimulator, HandleArrival and RTimeToVTime; the
// other exported names are the Epsilon tolerance, read-only inspection and
// diagnostics (OldVTime, OldRTime, SumWeight, Len, Str, CheckInvariants) and
// the opt-in PruneZeroWeight. Everything else (trace parsing, flow bookkeeping beyond
// a single last-departure value, the dispatch policy that orders
// transmissions) lives in the sibling packages flowtable, trace and wfq.
package lgps
