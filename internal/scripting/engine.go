package scripting

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM for tunable game rules.
// Single-goroutine access only (simulation loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from the given directory.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	// core first so feature scripts can use its helpers
	for _, sub := range []string{"core", "ai"} {
		p := filepath.Join(scriptsDir, sub)
		if err := e.loadDir(p); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}

	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// AutopilotContext is the per-tick view handed to autopilot_override.
type AutopilotContext struct {
	X, Y           float64
	VX, VY         float64
	Heading        float64
	Mode           string // "flee", "seek", "wander"
	DesiredHeading float64
	Thrust         bool
	TargetX        float64
	TargetY        float64
	Score          int
	Garbage        int
	Tick           uint64
}

// AutopilotOverride replaces the built-in seek/wander choice for one tick.
type AutopilotOverride struct {
	Heading float64
	Thrust  bool
}

// AutopilotOverride calls Lua autopilot_override(ctx). A nil return, a
// missing function or a script error keeps the built-in decision.
func (e *Engine) AutopilotOverride(ctx AutopilotContext) (AutopilotOverride, bool) {
	fn := e.vm.GetGlobal("autopilot_override")
	if fn == lua.LNil {
		return AutopilotOverride{}, false
	}

	t := e.vm.NewTable()
	t.RawSetString("x", lua.LNumber(ctx.X))
	t.RawSetString("y", lua.LNumber(ctx.Y))
	t.RawSetString("vx", lua.LNumber(ctx.VX))
	t.RawSetString("vy", lua.LNumber(ctx.VY))
	t.RawSetString("heading", lua.LNumber(ctx.Heading))
	t.RawSetString("mode", lua.LString(ctx.Mode))
	t.RawSetString("desired_heading", lua.LNumber(ctx.DesiredHeading))
	t.RawSetString("thrust", lua.LBool(ctx.Thrust))
	t.RawSetString("target_x", lua.LNumber(ctx.TargetX))
	t.RawSetString("target_y", lua.LNumber(ctx.TargetY))
	t.RawSetString("score", lua.LNumber(ctx.Score))
	t.RawSetString("garbage", lua.LNumber(ctx.Garbage))
	t.RawSetString("tick", lua.LNumber(ctx.Tick))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua autopilot_override error", zap.Error(err))
		return AutopilotOverride{}, false
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		return AutopilotOverride{}, false
	}
	out := AutopilotOverride{Heading: ctx.DesiredHeading, Thrust: ctx.Thrust}
	if v, ok := rt.RawGetString("heading").(lua.LNumber); ok {
		h := float64(v)
		if math.IsNaN(h) || math.IsInf(h, 0) {
			e.log.Warn("lua autopilot_override returned a non-finite heading, ignoring")
			return AutopilotOverride{}, false
		}
		out.Heading = h
	}
	if v := rt.RawGetString("thrust"); v != lua.LNil {
		out.Thrust = lua.LVAsBool(v)
	}
	return out, true
}

// GarbagePoints calls Lua garbage_points(size). Defaults to 1 point per item
// when the hook is absent or fails; never negative.
func (e *Engine) GarbagePoints(size float64) int {
	fn := e.vm.GetGlobal("garbage_points")
	if fn == lua.LNil {
		return 1
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lua.LNumber(size)); err != nil {
		e.log.Error("lua garbage_points error", zap.Error(err))
		return 1
	}
	result := e.vm.Get(-1)
	e.vm.Pop(1)
	n, ok := result.(lua.LNumber)
	if !ok || math.IsNaN(float64(n)) || math.IsInf(float64(n), 0) {
		return 1
	}
	return max(int(n), 0)
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
