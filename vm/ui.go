package vm

import (
	"github.com/tliron/commonlog"

	"github.com/knotenlang/knoten/pkg/raster"
)

var uiLog = commonlog.GetLogger("knoten.ui")

// ---------------------------------------------------------------------------
// UI: the immediate-mode drawing surface
// ---------------------------------------------------------------------------

// uiBackgroundColor fills a freshly initialized UI framebuffer.
const uiBackgroundColor uint32 = 0x222222

// uiWindow is the state behind the ui module: one surface, one
// framebuffer, drawn into between presents. There is at most one per
// registry; re-initializing replaces it.
type uiWindow struct {
	surface Surface
	buffer  []uint32
	width   int
	height  int
}

// UIInitWindow opens the UI surface and reports success. Without a
// display backend, or if the backend refuses, it logs and returns
// false. A second init closes the previous surface and starts fresh.
func (r *Registry) UIInitWindow(width, height int64, title string) bool {
	if r.display == nil {
		uiLog.Errorf("ui_init_window: no display backend available")
		return false
	}

	w, h := int(width), int(height)
	var surf Surface
	var err error
	r.ui.do(func() any {
		surf, err = r.display.Open(w, h, title)
		return nil
	})
	if err != nil {
		uiLog.Errorf("ui_init_window: %v", err)
		return false
	}

	buf := make([]uint32, w*h)
	for i := range buf {
		buf[i] = uiBackgroundColor
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.uiWin != nil {
		old := r.uiWin.surface
		r.ui.do(func() any { old.Close(); return nil })
	}
	r.uiWin = &uiWindow{surface: surf, buffer: buf, width: w, height: h}
	return true
}

// UIClear floods the framebuffer with a 0xRRGGBB color. Without an
// initialized window this is a logged no-op.
func (r *Registry) UIClear(color int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	win := r.uiWindowLocked("ui_clear")
	if win == nil {
		return
	}
	c := uint32(color)
	for i := range win.buffer {
		win.buffer[i] = c
	}
}

// UIDrawRect fills a rectangle, clipped to the framebuffer.
func (r *Registry) UIDrawRect(x, y, w, h, color int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	win := r.uiWindowLocked("ui_draw_rect")
	if win == nil {
		return
	}
	raster.DrawRect(win.buffer, win.width, win.height,
		int(x), int(y), int(w), int(h), uint32(color))
}

// UIDrawText renders text at (x, y) in the built-in 5x7 font.
func (r *Registry) UIDrawText(x, y int64, text string, color int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	win := r.uiWindowLocked("ui_draw_text")
	if win == nil {
		return
	}
	raster.DrawText(win.buffer, win.width, win.height,
		int(x), int(y), text, uint32(color))
}

// UIPresent pushes the framebuffer to the surface and reports whether
// the UI should keep running: false once the surface is closed or the
// user hits Escape. Without an initialized window it returns false.
func (r *Registry) UIPresent() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	win := r.uiWindowLocked("ui_present")
	if win == nil {
		return false
	}
	open := r.ui.do(func() any {
		return win.surface.Present(win.buffer, win.width, win.height)
	})
	if b, ok := open.(bool); !ok || !b {
		return false
	}
	if ks, ok := win.surface.(KeySource); ok {
		down := r.ui.do(func() any { return ks.IsKeyDown("Escape") })
		if d, ok := down.(bool); ok && d {
			return false
		}
	}
	return true
}

// UIIsKeyDown reports whether the named key is held. Surfaces without
// key input, unknown key names, and a missing window all answer false.
func (r *Registry) UIIsKeyDown(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	win := r.uiWindowLocked("ui_is_key_down")
	if win == nil {
		return false
	}
	ks, ok := win.surface.(KeySource)
	if !ok {
		return false
	}
	down := r.ui.do(func() any { return ks.IsKeyDown(name) })
	d, ok := down.(bool)
	return ok && d
}

// UIGetKeyPressed returns the name of a key newly pressed since the
// last query, or the empty string.
func (r *Registry) UIGetKeyPressed() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	win := r.uiWindowLocked("ui_get_key_pressed")
	if win == nil {
		return ""
	}
	ks, ok := win.surface.(KeySource)
	if !ok {
		return ""
	}
	pressed := r.ui.do(func() any { return ks.KeyPressed() })
	s, ok := pressed.(string)
	if !ok {
		return ""
	}
	return s
}

// uiWindowLocked returns the UI window, logging a diagnostic if none
// has been initialized. Callers must hold r.mu.
func (r *Registry) uiWindowLocked(op string) *uiWindow {
	if r.uiWin == nil {
		uiLog.Warningf("%s: no window initialized", op)
		return nil
	}
	return r.uiWin
}
