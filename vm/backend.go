package vm

// ---------------------------------------------------------------------------
// Backend contracts: the registry dispatches to these, it never
// implements a window system or GPU setup itself.
// ---------------------------------------------------------------------------

// Surface is one open display surface. Every surface is owned by
// exactly one registry entry, and all calls on it are made from the
// registry's UI worker goroutine.
type Surface interface {
	// Present pushes a software-rendered pixel buffer (0x00RRGGBB,
	// row-major) and reports whether the surface is still open.
	// Callers must treat false as a termination signal for any render
	// loop built on top of it.
	Present(buf []uint32, width, height int) bool

	// Close releases the surface. Present reports false afterwards.
	Close()
}

// KeySource is optionally implemented by surfaces that can report
// keyboard state. Key names follow the fixed set the UI module
// understands ("0"-"9", "Plus", "Minus", "Asterisk", "Slash",
// "Enter", "Backspace", "Escape", "Period", "C"). Surfaces without
// key input simply omit the interface; the UI module then answers
// every key query with false or the empty string.
type KeySource interface {
	// IsKeyDown reports whether the named key is currently held.
	IsKeyDown(name string) bool

	// KeyPressed returns the name of a key newly pressed since the
	// last call, or the empty string.
	KeyPressed() string
}

// DisplayBackend opens display surfaces for Window, VoxelWorld, and
// UI resources. Open may fail (unsupported backend, headless host);
// the registry turns that into the -1 sentinel with no entry
// inserted.
type DisplayBackend interface {
	Open(width, height int, title string) (Surface, error)
}

// Device is an acquired GPU device context, released exactly once.
type Device interface {
	AdapterName() string
	Release()
}

// GPUBackend acquires GPU device contexts. Acquire may fail (no
// suitable adapter); the registry turns that into the -1 sentinel.
type GPUBackend interface {
	Acquire() (Device, error)
}
