package vm

// ---------------------------------------------------------------------------
// Counter resources
// ---------------------------------------------------------------------------

// counterResource is a host-side integer counter mutated in place.
type counterResource struct {
	count int64
}

func (*counterResource) ResourceKind() ResourceKind { return ResourceCounter }

// CreateCounter inserts a counter starting at zero and returns its
// handle.
func (r *Registry) CreateCounter() int64 {
	return r.insert(&counterResource{})
}

// Increment adds one to the counter. A missing or wrong-kind handle
// is a logged no-op.
func (r *Registry) Increment(id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res := r.lookupLocked("increment", id, ResourceCounter)
	if res == nil {
		return
	}
	res.(*counterResource).count++
}

// CounterValue reads the counter without mutating it. A missing or
// wrong-kind handle returns the -1 sentinel.
func (r *Registry) CounterValue(id int64) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	res := r.lookupLocked("get_value", id, ResourceCounter)
	if res == nil {
		return InvalidHandle
	}
	return res.(*counterResource).count
}
