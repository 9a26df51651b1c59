package vm

// ---------------------------------------------------------------------------
// GPU context resources
// ---------------------------------------------------------------------------

// gpuResource owns one acquired device context, released exactly once
// when the entry is removed.
type gpuResource struct {
	device Device
}

func (*gpuResource) ResourceKind() ResourceKind { return ResourceGpuContext }

// GpuInit acquires a GPU device context and returns its handle. If no
// GPU backend is configured or no adapter is available, it logs,
// inserts nothing, consumes no id, and returns -1.
func (r *Registry) GpuInit() int64 {
	if r.gpu == nil {
		registryLog.Errorf("gpu_init: no suitable GPU adapter found")
		return InvalidHandle
	}

	var dev Device
	var err error
	r.ui.do(func() any {
		dev, err = r.gpu.Acquire()
		return nil
	})
	if err != nil {
		registryLog.Errorf("gpu_init: %v", err)
		return InvalidHandle
	}
	registryLog.Infof("gpu_init: adapter %s", dev.AdapterName())
	return r.insert(&gpuResource{device: dev})
}
