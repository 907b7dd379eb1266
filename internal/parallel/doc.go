// Package parallel runs image sweeps across a small work-stealing goroutine
// pool. A sweep is split into contiguous row or column spans so that each
// span can keep its own sequential cursor state.
package parallel
