// Package soft provides in-memory display and GPU backends.
//
// The display backend owns no OS window: each surface is a plain
// framebuffer that remembers the last presented frame. It exists for
// tests, headless hosts, and the CLI's default configuration, and it
// honors the same open/present/close protocol a real window system
// backend would.
package soft

import (
	"fmt"
	"sync"

	"github.com/knotenlang/knoten/vm"
)

// ---------------------------------------------------------------------------
// Display backend
// ---------------------------------------------------------------------------

// Backend opens software surfaces.
type Backend struct {
	mu        sync.Mutex
	maxFrames int
	surfaces  []*Surface
}

// Option configures a Backend.
type Option func(*Backend)

// WithMaxFrames caps how many frames each surface accepts before it
// reports closed. Zero means unlimited. Render loops polling the open
// flag terminate on their own under a cap, which is what the CLI uses
// to bound demo programs.
func WithMaxFrames(n int) Option {
	return func(b *Backend) { b.maxFrames = n }
}

// NewBackend creates a software display backend.
func NewBackend(opts ...Option) *Backend {
	b := &Backend{}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Open creates a surface. Non-positive dimensions are refused.
func (b *Backend) Open(width, height int, title string) (vm.Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("soft: invalid surface size %dx%d", width, height)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	s := &Surface{
		width:     width,
		height:    height,
		title:     title,
		maxFrames: b.maxFrames,
	}
	b.surfaces = append(b.surfaces, s)
	return s, nil
}

// Surfaces returns every surface this backend has opened, in order.
func (b *Backend) Surfaces() []*Surface {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*Surface(nil), b.surfaces...)
}

// Surface is one software framebuffer.
type Surface struct {
	mu        sync.Mutex
	width     int
	height    int
	title     string
	maxFrames int
	frames    int
	closed    bool
	last      []uint32
	keysDown  map[string]bool
	pressed   []string
}

// Present copies the buffer as the surface's last frame and reports
// whether the surface is still open. A buffer of the wrong size is
// rejected and presents nothing.
func (s *Surface) Present(buf []uint32, width, height int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}
	if width != s.width || height != s.height || len(buf) != width*height {
		return false
	}

	if s.last == nil {
		s.last = make([]uint32, len(buf))
	}
	copy(s.last, buf)
	s.frames++

	if s.maxFrames > 0 && s.frames >= s.maxFrames {
		s.closed = true
	}
	return !s.closed
}

// Close marks the surface closed. Further presents report false.
func (s *Surface) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

// Closed reports whether the surface has been closed.
func (s *Surface) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Frames returns how many frames have been presented.
func (s *Surface) Frames() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

// LastFrame returns a copy of the most recently presented buffer, or
// nil if nothing has been presented.
func (s *Surface) LastFrame() []uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return nil
	}
	return append([]uint32(nil), s.last...)
}

// Title returns the title the surface was opened with.
func (s *Surface) Title() string { return s.title }

// IsKeyDown reports whether the named key is held. There is no real
// keyboard behind a software surface; keys are held only when a test
// sets them with SetKeyDown.
func (s *Surface) IsKeyDown(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.keysDown[name]
}

// KeyPressed pops the oldest injected key press, or returns the
// empty string.
func (s *Surface) KeyPressed() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.pressed) == 0 {
		return ""
	}
	name := s.pressed[0]
	s.pressed = s.pressed[1:]
	return name
}

// SetKeyDown marks a key held or released for IsKeyDown queries.
func (s *Surface) SetKeyDown(name string, down bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.keysDown == nil {
		s.keysDown = make(map[string]bool)
	}
	s.keysDown[name] = down
}

// PushKey queues a key press for KeyPressed queries.
func (s *Surface) PushKey(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pressed = append(s.pressed, name)
}

// ---------------------------------------------------------------------------
// GPU backend
// ---------------------------------------------------------------------------

// GPU is a software GPU backend exposing one always-available adapter.
type GPU struct {
	mu      sync.Mutex
	devices []*Device
}

// NewGPU creates a software GPU backend.
func NewGPU() *GPU {
	return &GPU{}
}

// Acquire hands out a software device context.
func (g *GPU) Acquire() (vm.Device, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	d := &Device{name: "Software Rasterizer"}
	g.devices = append(g.devices, d)
	return d, nil
}

// Devices returns every device this backend has acquired, in order.
func (g *GPU) Devices() []*Device {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]*Device(nil), g.devices...)
}

// Device is a software GPU device context.
type Device struct {
	mu       sync.Mutex
	name     string
	released bool
}

// AdapterName returns the adapter identifier.
func (d *Device) AdapterName() string { return d.name }

// Release returns the device to the backend.
func (d *Device) Release() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.released = true
}

// Released reports whether the device has been released.
func (d *Device) Released() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.released
}
