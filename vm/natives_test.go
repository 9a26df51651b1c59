package vm_test

import (
	"testing"

	"github.com/knotenlang/knoten/backend/soft"
	"github.com/knotenlang/knoten/pkg/ast"
	"github.com/knotenlang/knoten/vm"
)

// ---------------------------------------------------------------------------
// Dispatch routing
// ---------------------------------------------------------------------------

func TestCallRoutesCounterOperations(t *testing.T) {
	r := vm.NewRegistry()
	defer r.Close()
	n := vm.NewNatives(r)

	out := n.Call("registry", "create_counter", nil)
	if !out.IsValue() {
		t.Fatalf("create_counter faulted: %s", out.Message())
	}
	id := out.Value()

	n.Call("registry", "increment", []vm.Value{id})
	n.Call("registry", "increment", []vm.Value{id})

	out = n.Call("registry", "get_value", []vm.Value{id})
	if !out.IsValue() || out.Value().Int() != 2 {
		t.Errorf("get_value = %v, want 2", out.Value())
	}

	out = n.Call("registry", "dump", nil)
	if !out.IsValue() || out.Value().Int() != 1 {
		t.Errorf("dump = %v, want 1", out.Value())
	}
}

func TestCallFaults(t *testing.T) {
	r := vm.NewRegistry()
	defer r.Close()
	n := vm.NewNatives(r)

	tests := []struct {
		name     string
		module   string
		function string
		args     []vm.Value
		want     string
	}{
		{
			name:     "unknown module",
			module:   "sys",
			function: "exit",
			want:     "Unknown native function: sys.exit",
		},
		{
			name:     "unknown function",
			module:   "registry",
			function: "destroy_all",
			want:     "Unknown native function: registry.destroy_all",
		},
		{
			name:     "wrong arity",
			module:   "registry",
			function: "increment",
			args:     []vm.Value{vm.IntValue(1), vm.IntValue(2)},
			want:     "Native call registry.increment: expected 1 arguments, got 2",
		},
		{
			name:     "missing argument",
			module:   "registry",
			function: "increment",
			want:     "Native call registry.increment: argument 1 type mismatch",
		},
		{
			name:     "type mismatch",
			module:   "registry",
			function: "get_value",
			args:     []vm.Value{vm.StrValue("1")},
			want:     "Native call registry.get_value: argument 1 type mismatch",
		},
		{
			name:     "later argument mismatch",
			module:   "registry",
			function: "file_write",
			args:     []vm.Value{vm.IntValue(1), vm.IntValue(2)},
			want:     "Native call registry.file_write: argument 2 type mismatch",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := n.Call(tt.module, tt.function, tt.args)
			if !out.IsFault() {
				t.Fatalf("Call() = %v, want fault", out)
			}
			if got := out.Message(); got != tt.want {
				t.Errorf("fault = %q, want %q", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Windows against the software backend
// ---------------------------------------------------------------------------

func TestWindowEndToEnd(t *testing.T) {
	display := soft.NewBackend()
	r := vm.NewRegistry(vm.WithDisplayBackend(display))
	defer r.Close()

	id := r.CreateWindow(8, 4, "demo")
	if id == vm.InvalidHandle {
		t.Fatal("CreateWindow failed")
	}

	surfaces := display.Surfaces()
	if len(surfaces) != 1 {
		t.Fatalf("backend opened %d surfaces, want 1", len(surfaces))
	}
	if got := surfaces[0].Title(); got != "demo" {
		t.Errorf("surface title = %q, want %q", got, "demo")
	}

	r.FillColor(id, 255, 0, 0)
	if !r.WindowUpdate(id) {
		t.Fatal("WindowUpdate reported closed surface")
	}

	frame := surfaces[0].LastFrame()
	if len(frame) != 8*4 {
		t.Fatalf("frame has %d pixels, want %d", len(frame), 8*4)
	}
	for i, px := range frame {
		if px != 0xff0000 {
			t.Fatalf("pixel %d = %#06x, want 0xff0000", i, px)
		}
	}

	r.WindowClose(id)
	if !surfaces[0].Closed() {
		t.Error("closing the handle did not close the surface")
	}
	if r.Contains(id) {
		t.Error("handle still live after window_close")
	}
}

func TestFillColorClampsChannels(t *testing.T) {
	display := soft.NewBackend()
	r := vm.NewRegistry(vm.WithDisplayBackend(display))
	defer r.Close()

	id := r.CreateWindow(2, 2, "clamp")
	r.FillColor(id, 999, -5, 128)
	r.WindowUpdate(id)

	frame := display.Surfaces()[0].LastFrame()
	if frame[0] != 0xff0080 {
		t.Errorf("pixel = %#06x, want 0xff0080", frame[0])
	}
}

func TestWindowUpdateHonorsFrameCap(t *testing.T) {
	display := soft.NewBackend(soft.WithMaxFrames(2))
	r := vm.NewRegistry(vm.WithDisplayBackend(display))
	defer r.Close()

	id := r.CreateWindow(2, 2, "capped")
	if !r.WindowUpdate(id) {
		// Second frame hits the cap, so the first must succeed.
		t.Fatal("first update reported closed")
	}
	if r.WindowUpdate(id) {
		t.Error("update at the frame cap still reported open")
	}
	if r.WindowUpdate(id) {
		t.Error("update past the frame cap reported open")
	}
}

func TestCreateWindowWithoutBackend(t *testing.T) {
	r := vm.NewRegistry()
	defer r.Close()

	if id := r.CreateWindow(640, 480, "nope"); id != vm.InvalidHandle {
		t.Errorf("CreateWindow = %d, want %d", id, vm.InvalidHandle)
	}
	if next := r.CreateCounter(); next != 1 {
		t.Errorf("next handle = %d, want 1", next)
	}
}

func TestCreateWindowRejectedByBackendConsumesNoID(t *testing.T) {
	display := soft.NewBackend()
	r := vm.NewRegistry(vm.WithDisplayBackend(display))
	defer r.Close()

	if id := r.CreateWindow(0, 0, "bad"); id != vm.InvalidHandle {
		t.Errorf("CreateWindow(0, 0) = %d, want %d", id, vm.InvalidHandle)
	}
	if next := r.CreateCounter(); next != 1 {
		t.Errorf("next handle = %d, want 1", next)
	}
}

// ---------------------------------------------------------------------------
// GPU contexts
// ---------------------------------------------------------------------------

func TestGpuInitAndRelease(t *testing.T) {
	gpu := soft.NewGPU()
	r := vm.NewRegistry(vm.WithGPUBackend(gpu))
	defer r.Close()

	id := r.GpuInit()
	if id == vm.InvalidHandle {
		t.Fatal("GpuInit failed")
	}

	devices := gpu.Devices()
	if len(devices) != 1 {
		t.Fatalf("backend acquired %d devices, want 1", len(devices))
	}
	if devices[0].Released() {
		t.Error("device released while the handle is live")
	}

	r.Free(id)
	if !devices[0].Released() {
		t.Error("freeing the handle did not release the device")
	}
}

func TestGpuInitWithoutBackend(t *testing.T) {
	r := vm.NewRegistry()
	defer r.Close()

	if id := r.GpuInit(); id != vm.InvalidHandle {
		t.Errorf("GpuInit = %d, want %d", id, vm.InvalidHandle)
	}
}

// ---------------------------------------------------------------------------
// Voxel worlds
// ---------------------------------------------------------------------------

func TestVoxelWorldEndToEnd(t *testing.T) {
	display := soft.NewBackend()
	r := vm.NewRegistry(vm.WithDisplayBackend(display))
	defer r.Close()

	id := r.CreateVoxelWorld(64, 64, "iso")
	if id == vm.InvalidHandle {
		t.Fatal("CreateVoxelWorld failed")
	}

	r.VoxelAddBlock(id, 0, 0, 0)
	if !r.VoxelRenderFrame(id) {
		t.Fatal("VoxelRenderFrame reported closed surface")
	}

	frame := display.Surfaces()[0].LastFrame()
	drawn := 0
	for _, px := range frame {
		if px != 0x0d1b2a {
			drawn++
		}
	}
	if drawn == 0 {
		t.Error("rendered frame contains no voxel pixels")
	}
}

func TestCreateVoxelWorldWithoutBackend(t *testing.T) {
	r := vm.NewRegistry()
	defer r.Close()

	if id := r.CreateVoxelWorld(64, 64, "nope"); id != vm.InvalidHandle {
		t.Errorf("CreateVoxelWorld = %d, want %d", id, vm.InvalidHandle)
	}
	if next := r.CreateCounter(); next != 1 {
		t.Errorf("next handle = %d, want 1", next)
	}
}

func TestVoxelRenderFrameOnMissingHandle(t *testing.T) {
	r := vm.NewRegistry()
	defer r.Close()

	if r.VoxelRenderFrame(7) {
		t.Error("VoxelRenderFrame on missing handle reported open")
	}
}

// ---------------------------------------------------------------------------
// Full program integration
// ---------------------------------------------------------------------------

// A counting loop driving a counter through native calls, the way a
// compiled program exercises the whole stack.
func TestProgramDrivesRegistry(t *testing.T) {
	r := vm.NewRegistry()
	defer r.Close()

	e := vm.NewEngine(vm.WithDispatcher(vm.NewNatives(r)))
	program := ast.NewBlock(
		ast.NewAssign("c", ast.NewCall("registry", "create_counter")),
		ast.NewAssign("i", ast.NewInt(0)),
		ast.NewWhile(
			ast.NewBinary(ast.Lt, ast.NewIdent("i"), ast.NewInt(5)),
			ast.NewBlock(
				ast.NewCall("registry", "increment", ast.NewIdent("c")),
				ast.NewAssign("i", ast.NewBinary(ast.Add, ast.NewIdent("i"), ast.NewInt(1))),
			),
		),
		ast.NewAssign("total", ast.NewCall("registry", "get_value", ast.NewIdent("c"))),
		ast.NewCall("registry", "release", ast.NewIdent("c")),
		ast.NewIdent("total"),
	)

	got := e.Execute(program)
	want := "Return: 5 (i64), Memory: c = 1, i = 5, total = 5"
	if got != want {
		t.Errorf("Execute() = %q, want %q", got, want)
	}
	if n := r.Len(); n != 0 {
		t.Errorf("registry has %d entries after the program released them, want 0", n)
	}
}

// The render loop idiom: run until the surface reports closed.
func TestProgramRenderLoopTerminatesAtFrameCap(t *testing.T) {
	display := soft.NewBackend(soft.WithMaxFrames(3))
	r := vm.NewRegistry(vm.WithDisplayBackend(display))
	defer r.Close()

	e := vm.NewEngine(vm.WithDispatcher(vm.NewNatives(r)))
	program := ast.NewBlock(
		ast.NewAssign("w", ast.NewCall("registry", "create_window",
			ast.NewInt(4), ast.NewInt(4), ast.NewStr("loop"))),
		ast.NewAssign("open", ast.NewBool(true)),
		ast.NewAssign("frames", ast.NewInt(0)),
		ast.NewWhile(
			ast.NewIdent("open"),
			ast.NewBlock(
				ast.NewAssign("open", ast.NewCall("registry", "window_update", ast.NewIdent("w"))),
				ast.NewAssign("frames", ast.NewBinary(ast.Add, ast.NewIdent("frames"), ast.NewInt(1))),
			),
		),
		ast.NewCall("registry", "window_close", ast.NewIdent("w")),
		ast.NewIdent("frames"),
	)

	got := e.Execute(program)
	want := "Return: 3 (i64), Memory: frames = 3, open = false, w = 1"
	if got != want {
		t.Errorf("Execute() = %q, want %q", got, want)
	}
	if surfaces := display.Surfaces(); len(surfaces) != 1 || surfaces[0].Frames() != 3 {
		t.Error("surface frame count does not match the loop")
	}
}
