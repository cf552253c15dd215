package fetch

import "errors"

// ErrCycleInProgress indicates that RunCycle was invoked while a previous
// cycle was still running. The overlapping invocation is skipped, never
// queued: overlapping cycles would interleave cursor updates and cause
// duplicate or missed deliveries.
var ErrCycleInProgress = errors.New("fetch cycle already in progress")
