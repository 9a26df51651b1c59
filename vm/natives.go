package vm

// ---------------------------------------------------------------------------
// Natives: the dispatch boundary
// ---------------------------------------------------------------------------

// RegistryModule is the module name under which registry operations
// are reachable from evaluated programs.
const RegistryModule = "registry"

// UIModule is the module name under which the immediate-mode UI
// surface is reachable from evaluated programs.
const UIModule = "ui"

// Natives routes (module, function, args) calls from evaluated
// programs to registry and UI operations. It is the only call site
// that mutates host state on behalf of a program.
//
// Marshaling between Values and native argument types happens here;
// a marshaling failure is reported to the evaluator as a
// type-mismatch fault, never as a registry error.
type Natives struct {
	registry *Registry
}

// NewNatives creates the dispatch boundary over a registry.
func NewNatives(r *Registry) *Natives {
	return &Natives{registry: r}
}

// Call resolves one native call to exactly one host operation. An
// unresolvable (module, function) pair faults.
func (n *Natives) Call(module, function string, args []Value) Outcome {
	switch module {
	case RegistryModule:
		return n.callRegistry(function, args)
	case UIModule:
		return n.callUI(function, args)
	default:
		return Faultf("Unknown native function: %s.%s", module, function)
	}
}

func (n *Natives) callRegistry(function string, args []Value) Outcome {
	reg := n.registry
	m := marshaler{module: RegistryModule, function: function, args: args}

	switch function {
	// Lifecycle
	case "retain":
		id := m.intArg(0)
		if out, ok := m.finish(1); !ok {
			return out
		}
		reg.Retain(id)
		return Ok(VoidValue)
	case "release":
		id := m.intArg(0)
		if out, ok := m.finish(1); !ok {
			return out
		}
		reg.Release(id)
		return Ok(VoidValue)
	case "free":
		id := m.intArg(0)
		if out, ok := m.finish(1); !ok {
			return out
		}
		reg.Free(id)
		return Ok(VoidValue)
	case "dump":
		if out, ok := m.finish(0); !ok {
			return out
		}
		return Ok(IntValue(reg.Dump()))

	// Counters
	case "create_counter":
		if out, ok := m.finish(0); !ok {
			return out
		}
		return Ok(IntValue(reg.CreateCounter()))
	case "increment":
		id := m.intArg(0)
		if out, ok := m.finish(1); !ok {
			return out
		}
		reg.Increment(id)
		return Ok(VoidValue)
	case "get_value":
		id := m.intArg(0)
		if out, ok := m.finish(1); !ok {
			return out
		}
		return Ok(IntValue(reg.CounterValue(id)))

	// Timestamps
	case "now":
		if out, ok := m.finish(0); !ok {
			return out
		}
		return Ok(IntValue(reg.Now()))
	case "elapsed_ms":
		id := m.intArg(0)
		if out, ok := m.finish(1); !ok {
			return out
		}
		return Ok(IntValue(reg.ElapsedMS(id)))

	// Files
	case "file_create":
		path := m.strArg(0)
		if out, ok := m.finish(1); !ok {
			return out
		}
		return Ok(IntValue(reg.CreateFile(path)))
	case "file_write":
		id := m.intArg(0)
		content := m.strArg(1)
		if out, ok := m.finish(2); !ok {
			return out
		}
		reg.FileWrite(id, content)
		return Ok(VoidValue)

	// Windows
	case "create_window":
		width := m.intArg(0)
		height := m.intArg(1)
		title := m.strArg(2)
		if out, ok := m.finish(3); !ok {
			return out
		}
		return Ok(IntValue(reg.CreateWindow(width, height, title)))
	case "window_update":
		id := m.intArg(0)
		if out, ok := m.finish(1); !ok {
			return out
		}
		return Ok(BoolValue(reg.WindowUpdate(id)))
	case "window_close":
		id := m.intArg(0)
		if out, ok := m.finish(1); !ok {
			return out
		}
		reg.WindowClose(id)
		return Ok(VoidValue)
	case "fill_color":
		id := m.intArg(0)
		red := m.intArg(1)
		green := m.intArg(2)
		blue := m.intArg(3)
		if out, ok := m.finish(4); !ok {
			return out
		}
		reg.FillColor(id, red, green, blue)
		return Ok(VoidValue)

	// GPU
	case "gpu_init":
		if out, ok := m.finish(0); !ok {
			return out
		}
		return Ok(IntValue(reg.GpuInit()))

	// Voxel worlds
	case "voxel_world_create":
		width := m.intArg(0)
		height := m.intArg(1)
		title := m.strArg(2)
		if out, ok := m.finish(3); !ok {
			return out
		}
		return Ok(IntValue(reg.CreateVoxelWorld(width, height, title)))
	case "voxel_add_block":
		id := m.intArg(0)
		x := m.intArg(1)
		y := m.intArg(2)
		z := m.intArg(3)
		if out, ok := m.finish(4); !ok {
			return out
		}
		reg.VoxelAddBlock(id, x, y, z)
		return Ok(VoidValue)
	case "voxel_render_frame":
		id := m.intArg(0)
		if out, ok := m.finish(1); !ok {
			return out
		}
		return Ok(BoolValue(reg.VoxelRenderFrame(id)))

	default:
		return Faultf("Unknown native function: %s.%s", RegistryModule, function)
	}
}

func (n *Natives) callUI(function string, args []Value) Outcome {
	reg := n.registry
	m := marshaler{module: UIModule, function: function, args: args}

	switch function {
	case "ui_init_window":
		width := m.intArg(0)
		height := m.intArg(1)
		title := m.strArg(2)
		if out, ok := m.finish(3); !ok {
			return out
		}
		return Ok(BoolValue(reg.UIInitWindow(width, height, title)))
	case "ui_clear":
		color := m.intArg(0)
		if out, ok := m.finish(1); !ok {
			return out
		}
		reg.UIClear(color)
		return Ok(VoidValue)
	case "ui_draw_rect":
		x := m.intArg(0)
		y := m.intArg(1)
		w := m.intArg(2)
		h := m.intArg(3)
		color := m.intArg(4)
		if out, ok := m.finish(5); !ok {
			return out
		}
		reg.UIDrawRect(x, y, w, h, color)
		return Ok(VoidValue)
	case "ui_draw_text":
		x := m.intArg(0)
		y := m.intArg(1)
		text := m.strArg(2)
		color := m.intArg(3)
		if out, ok := m.finish(4); !ok {
			return out
		}
		reg.UIDrawText(x, y, text, color)
		return Ok(VoidValue)
	case "ui_present":
		if out, ok := m.finish(0); !ok {
			return out
		}
		return Ok(BoolValue(reg.UIPresent()))
	case "ui_is_key_down":
		name := m.strArg(0)
		if out, ok := m.finish(1); !ok {
			return out
		}
		return Ok(BoolValue(reg.UIIsKeyDown(name)))
	case "ui_get_key_pressed":
		if out, ok := m.finish(0); !ok {
			return out
		}
		return Ok(StrValue(reg.UIGetKeyPressed()))
	default:
		return Faultf("Unknown native function: %s.%s", UIModule, function)
	}
}

// ---------------------------------------------------------------------------
// Argument marshaling
// ---------------------------------------------------------------------------

// marshaler pulls typed arguments out of a Value slice, recording the
// first mismatch. Accessors stay cheap to chain; finish reports the
// recorded fault, or an arity fault if the argument count is wrong.
type marshaler struct {
	module   string
	function string
	args     []Value
	fault    Outcome
	bad      bool
}

func (m *marshaler) intArg(i int) int64 {
	if m.bad {
		return 0
	}
	if i >= len(m.args) || m.args[i].Kind() != KindInt {
		m.mismatch(i)
		return 0
	}
	return m.args[i].Int()
}

func (m *marshaler) strArg(i int) string {
	if m.bad {
		return ""
	}
	if i >= len(m.args) || m.args[i].Kind() != KindStr {
		m.mismatch(i)
		return ""
	}
	return m.args[i].Str()
}

func (m *marshaler) mismatch(i int) {
	m.bad = true
	m.fault = Faultf("Native call %s.%s: argument %d type mismatch",
		m.module, m.function, i+1)
}

func (m *marshaler) finish(arity int) (Outcome, bool) {
	if m.bad {
		return m.fault, false
	}
	if len(m.args) != arity {
		return Faultf("Native call %s.%s: expected %d arguments, got %d",
			m.module, m.function, arity, len(m.args)), false
	}
	return Outcome{}, true
}
