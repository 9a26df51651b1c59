package vm

import "time"

// ---------------------------------------------------------------------------
// Timestamp resources
// ---------------------------------------------------------------------------

// timestampResource captures a monotonic start point. time.Time
// carries Go's monotonic clock reading, so elapsed queries are immune
// to wall-clock adjustments.
type timestampResource struct {
	start time.Time
}

func (*timestampResource) ResourceKind() ResourceKind { return ResourceTimestamp }

// Now inserts a timestamp capturing the current instant and returns
// its handle.
func (r *Registry) Now() int64 {
	return r.insert(&timestampResource{start: time.Now()})
}

// ElapsedMS returns whole milliseconds since the timestamp was
// created. A missing or wrong-kind handle returns the -1 sentinel.
func (r *Registry) ElapsedMS(id int64) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	res := r.lookupLocked("elapsed_ms", id, ResourceTimestamp)
	if res == nil {
		return InvalidHandle
	}
	return time.Since(res.(*timestampResource).start).Milliseconds()
}
