package vm

import "github.com/knotenlang/knoten/pkg/raster"

// ---------------------------------------------------------------------------
// VoxelWorld resources
// ---------------------------------------------------------------------------

// voxelResource owns one display surface plus the voxel scene
// rendered into it. Rasterization is delegated to pkg/raster; the
// registry only owns the scene state and the present loop.
type voxelResource struct {
	surface Surface
	buffer  []uint32
	width   int
	height  int
	voxels  []raster.Voxel
}

func (*voxelResource) ResourceKind() ResourceKind { return ResourceVoxelWorld }

// CreateVoxelWorld opens a display surface for an isometric voxel
// scene and returns its handle. Backend failures log, insert nothing,
// consume no id, and return -1.
func (r *Registry) CreateVoxelWorld(width, height int64, title string) int64 {
	if r.display == nil {
		registryLog.Errorf("voxel_world_create: no display backend available")
		return InvalidHandle
	}

	w, h := int(width), int(height)
	var surf Surface
	var err error
	r.ui.do(func() any {
		surf, err = r.display.Open(w, h, title)
		return nil
	})
	if err != nil {
		registryLog.Errorf("voxel_world_create: %v", err)
		return InvalidHandle
	}

	buf := make([]uint32, w*h)
	for i := range buf {
		buf[i] = raster.Background
	}
	return r.insert(&voxelResource{surface: surf, buffer: buf, width: w, height: h})
}

// VoxelAddBlock appends one voxel to the scene. A missing or
// wrong-kind handle is a logged no-op.
func (r *Registry) VoxelAddBlock(id, x, y, z int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res := r.lookupLocked("voxel_add_block", id, ResourceVoxelWorld)
	if res == nil {
		return
	}
	vr := res.(*voxelResource)
	vr.voxels = append(vr.voxels, raster.Voxel{X: int32(x), Y: int32(y), Z: int32(z)})
}

// VoxelRenderFrame rasterizes the scene into the framebuffer,
// presents it, and reports whether the surface is still open. A
// missing or wrong-kind handle returns false.
func (r *Registry) VoxelRenderFrame(id int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	res := r.lookupLocked("voxel_render_frame", id, ResourceVoxelWorld)
	if res == nil {
		return false
	}
	vr := res.(*voxelResource)
	raster.Render(vr.buffer, vr.width, vr.height, vr.voxels)
	open := r.ui.do(func() any {
		return vr.surface.Present(vr.buffer, vr.width, vr.height)
	})
	b, ok := open.(bool)
	return ok && b
}
