package model

import "time"

// WorldOption defines the interface for world options.
//
// OnSystemRun can be called from multiple goroutines at once when independent
// systems run concurrently; implementations must be safe for that.
type WorldOption interface {
	// New initialises the world option.
	New() error

	// PrepareSystem runs when a system is registered.
	PrepareSystem(system *SystemInfo) error

	// OnSystemRun runs after every successful system run.
	OnSystemRun(system *SystemInfo, elapsed time.Duration) error

	// Finish runs after all systems of a run have finished.
	Finish() error
}
