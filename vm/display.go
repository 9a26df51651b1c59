package vm

// ---------------------------------------------------------------------------
// Window resources
// ---------------------------------------------------------------------------

// initialWindowColor fills a fresh framebuffer so a window shows
// something before the program draws.
const initialWindowColor uint32 = 0x333333

// windowResource owns one display surface and its framebuffer.
type windowResource struct {
	surface Surface
	buffer  []uint32
	width   int
	height  int
}

func (*windowResource) ResourceKind() ResourceKind { return ResourceWindow }

// CreateWindow opens a display surface and returns its handle. If no
// display backend is configured or the backend refuses, it logs,
// inserts nothing, consumes no id, and returns -1.
func (r *Registry) CreateWindow(width, height int64, title string) int64 {
	if r.display == nil {
		registryLog.Errorf("create_window: no display backend available")
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
		registryLog.Errorf("create_window: %v", err)
		return InvalidHandle
	}

	buf := make([]uint32, w*h)
	for i := range buf {
		buf[i] = initialWindowColor
	}
	return r.insert(&windowResource{surface: surf, buffer: buf, width: w, height: h})
}

// WindowUpdate presents the window's framebuffer and reports whether
// the surface is still open. A missing or wrong-kind handle returns
// false.
func (r *Registry) WindowUpdate(id int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	res := r.lookupLocked("window_update", id, ResourceWindow)
	if res == nil {
		return false
	}
	wr := res.(*windowResource)
	open := r.ui.do(func() any {
		return wr.surface.Present(wr.buffer, wr.width, wr.height)
	})
	b, ok := open.(bool)
	return ok && b
}

// WindowClose frees the window handle; releasing the entry closes the
// underlying surface.
func (r *Registry) WindowClose(id int64) {
	r.Free(id)
}

// FillColor floods the window's framebuffer with an RGB color. Each
// component clamps to [0, 255]. A missing or wrong-kind handle is a
// logged no-op.
func (r *Registry) FillColor(id, red, green, blue int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res := r.lookupLocked("fill_color", id, ResourceWindow)
	if res == nil {
		return
	}
	color := packRGB(red, green, blue)
	buf := res.(*windowResource).buffer
	for i := range buf {
		buf[i] = color
	}
}

// packRGB packs clamped components into the 0x00RRGGBB layout the
// backend contract expects.
func packRGB(red, green, blue int64) uint32 {
	return clampChannel(red)<<16 | clampChannel(green)<<8 | clampChannel(blue)
}

func clampChannel(c int64) uint32 {
	if c < 0 {
		return 0
	}
	if c > 255 {
		return 255
	}
	return uint32(c)
}
