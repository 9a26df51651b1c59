package vm

import (
	"sync"

	"github.com/tliron/commonlog"
)

var registryLog = commonlog.GetLogger("knoten.registry")

// InvalidHandle is the universal sentinel returned by failed creation
// calls and handle-returning reads on absent entries.
const InvalidHandle int64 = -1

// ---------------------------------------------------------------------------
// Resource kinds
// ---------------------------------------------------------------------------

// ResourceKind identifies which capability a registry entry holds.
// The set is closed; the registry rejects operations on a mismatched
// kind rather than risking undefined behavior.
type ResourceKind uint8

const (
	ResourceCounter ResourceKind = iota
	ResourceTimestamp
	ResourceFile
	ResourceWindow
	ResourceGpuContext
	ResourceVoxelWorld
)

var resourceKindNames = [...]string{
	ResourceCounter:    "Counter",
	ResourceTimestamp:  "Timestamp",
	ResourceFile:       "File",
	ResourceWindow:     "Window",
	ResourceGpuContext: "GpuContext",
	ResourceVoxelWorld: "VoxelWorld",
}

func (k ResourceKind) String() string { return resourceKindNames[k] }

// Resource is one native object exclusively owned by a registry
// entry. No resource is ever referenced by two handles.
type Resource interface {
	ResourceKind() ResourceKind
}

// entry pairs a resource with its reference count. An entry exists in
// the table if and only if its refCount is greater than zero.
type entry struct {
	res      Resource
	refCount uint
}

// ---------------------------------------------------------------------------
// Registry
// ---------------------------------------------------------------------------

// Registry owns every native resource reachable from evaluated
// programs. One mutex guards the handle table; every operation holds
// it for the duration of the call and none re-enters it. Handle ids
// come from a single monotonic counter shared by all kinds, starting
// at 1; an id is consumed only when an entry is actually inserted.
//
// Registry failures are uniformly non-fatal: a missing or wrong-kind
// handle logs a diagnostic and returns a sentinel to the caller.
type Registry struct {
	mu      sync.Mutex
	entries map[int64]*entry
	nextID  int64

	display DisplayBackend
	gpu     GPUBackend
	ui      *uiWorker

	// uiWin is the single immediate-mode UI surface, separate from the
	// handle table: programs address it through the ui module, not
	// through a handle.
	uiWin *uiWindow
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithDisplayBackend wires a display backend for Window and
// VoxelWorld resources. Without one, window creation fails with the
// -1 sentinel.
func WithDisplayBackend(b DisplayBackend) RegistryOption {
	return func(r *Registry) { r.display = b }
}

// WithGPUBackend wires a GPU backend. Without one, gpu_init fails
// with the -1 sentinel.
func WithGPUBackend(b GPUBackend) RegistryOption {
	return func(r *Registry) { r.gpu = b }
}

// NewRegistry creates an empty registry and starts its UI worker.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		entries: make(map[int64]*entry),
		nextID:  1,
		ui:      newUIWorker(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Close frees every live entry and stops the UI worker. The registry
// must not be used afterwards.
func (r *Registry) Close() {
	r.mu.Lock()
	for id, e := range r.entries {
		delete(r.entries, id)
		r.destroyLocked(e.res)
	}
	if r.uiWin != nil {
		surf := r.uiWin.surface
		r.ui.do(func() any { surf.Close(); return nil })
		r.uiWin = nil
	}
	r.mu.Unlock()
	r.ui.stop()
}

// insert allocates the next handle id and stores res with an initial
// reference count of 1.
func (r *Registry) insert(res Resource) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextID
	r.nextID++
	r.entries[id] = &entry{res: res, refCount: 1}
	return id
}

// lookupLocked returns the resource for id if it exists and matches
// kind; otherwise it logs a diagnostic and returns nil. Callers must
// hold r.mu.
func (r *Registry) lookupLocked(op string, id int64, kind ResourceKind) Resource {
	e, ok := r.entries[id]
	if !ok {
		registryLog.Errorf("%s: handle %d not found", op, id)
		return nil
	}
	if e.res.ResourceKind() != kind {
		registryLog.Errorf("%s: handle %d is a %s, not a %s", op, id, e.res.ResourceKind(), kind)
		return nil
	}
	return e.res
}

// removeLocked deletes the entry and tears down its resource. The
// delete and the teardown happen under the same lock acquisition, so
// removal is atomic with the ref-count transition that triggered it.
func (r *Registry) removeLocked(id int64, e *entry) {
	delete(r.entries, id)
	r.destroyLocked(e.res)
}

// destroyLocked releases whatever the resource holds outside the
// table: file descriptors close, surfaces and devices go back to
// their backend on the UI worker. Counters and timestamps hold
// nothing.
func (r *Registry) destroyLocked(res Resource) {
	switch res := res.(type) {
	case *fileResource:
		if err := res.file.Close(); err != nil {
			fileLog.Errorf("close %s: %v", res.path, err)
		}
	case *windowResource:
		r.ui.do(func() any { res.surface.Close(); return nil })
	case *voxelResource:
		r.ui.do(func() any { res.surface.Close(); return nil })
	case *gpuResource:
		r.ui.do(func() any { res.device.Release(); return nil })
	}
}

// ---------------------------------------------------------------------------
// Lifecycle
// ---------------------------------------------------------------------------

// Retain increments the reference count of an existing handle.
// Retaining an absent handle is a logged no-op.
func (r *Registry) Retain(id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		registryLog.Warningf("retain: handle %d not found", id)
		return
	}
	e.refCount++
}

// Release decrements the reference count and removes the entry when
// it reaches zero. Releasing an absent handle is a logged no-op; the
// count clamps at zero and never underflows.
func (r *Registry) Release(id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		registryLog.Warningf("release: handle %d not found", id)
		return
	}
	if e.refCount > 0 {
		e.refCount--
	}
	if e.refCount == 0 {
		r.removeLocked(id, e)
	}
}

// Free removes the entry unconditionally, regardless of reference
// count. Freeing an absent handle logs a double-free diagnostic and
// is otherwise a no-op.
func (r *Registry) Free(id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		registryLog.Warningf("double free or invalid handle %d", id)
		return
	}
	r.removeLocked(id, e)
}

// Dump logs every live entry and returns the live count.
func (r *Registry) Dump() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	registryLog.Notice("--- memory dump ---")
	count := int64(0)
	for id, e := range r.entries {
		registryLog.Noticef("handle %d [type: %s, refCount: %d]", id, e.res.ResourceKind(), e.refCount)
		count++
	}
	registryLog.Noticef("total active: %d", count)
	return count
}

// Len returns the number of live entries.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Contains reports whether a handle is live.
func (r *Registry) Contains(id int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.entries[id]
	return ok
}
