// Package votingsystem manages the proposal lifecycle: creation by
// authorized principals, one vote per principal inside a block-height
// window, and a single terminal transition to passed or failed.
//
// The module never reads wall-clock time for gating. All time comparisons
// run against an injected block height, and authorization decisions are
// delegated to the access-control module through a narrow provider port.
package votingsystem
