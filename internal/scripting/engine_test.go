package scripting

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func writeScript(t *testing.T, dir, sub, name, body string) {
	t.Helper()
	p := filepath.Join(dir, sub)
	if err := os.MkdirAll(p, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(p, name), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestHooksFallBackWhenMissing(t *testing.T) {
	e, err := NewEngine(t.TempDir(), zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()
	if got := e.GarbagePoints(20); got != 1 {
		t.Errorf("GarbagePoints default = %d, want 1", got)
	}
	if _, ok := e.AutopilotOverride(AutopilotContext{Mode: "seek"}); ok {
		t.Error("missing autopilot_override must not override")
	}
}

func TestGarbagePointsHook(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "core", "score.lua", `
function garbage_points(size)
  if size > 10 then return 5 end
  return -3
end`)
	e, err := NewEngine(dir, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()
	if got := e.GarbagePoints(12); got != 5 {
		t.Errorf("big item = %d, want 5", got)
	}
	if got := e.GarbagePoints(6); got != 0 {
		t.Errorf("negative result = %d, want clamp to 0", got)
	}
}

func TestAutopilotOverrideHook(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "ai", "autopilot.lua", `
function autopilot_override(ctx)
  if ctx.mode == "wander" then
    return { heading = 45 }
  end
  if ctx.mode == "seek" and ctx.score > 2 then
    return { thrust = false }
  end
  return nil
end`)
	e, err := NewEngine(dir, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()

	o, ok := e.AutopilotOverride(AutopilotContext{Mode: "wander", DesiredHeading: 10, Thrust: true})
	if !ok || o.Heading != 45 || !o.Thrust {
		t.Fatalf("wander override = %+v %v", o, ok)
	}
	o, ok = e.AutopilotOverride(AutopilotContext{Mode: "seek", DesiredHeading: 10, Thrust: true, Score: 3})
	if !ok || o.Heading != 10 || o.Thrust {
		t.Fatalf("seek override = %+v %v", o, ok)
	}
	if _, ok := e.AutopilotOverride(AutopilotContext{Mode: "seek"}); ok {
		t.Fatal("nil return must keep built-in decision")
	}
}

func TestScriptErrorKeepsDefault(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "core", "broken.lua", `function garbage_points(size) error("boom") end`)
	e, err := NewEngine(dir, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()
	if got := e.GarbagePoints(8); got != 1 {
		t.Fatalf("erroring hook = %d, want 1", got)
	}
}

func TestShippedScriptsLoad(t *testing.T) {
	e, err := NewEngine(filepath.Join("..", "..", "scripts"), zap.NewNop())
	if err != nil {
		t.Fatalf("shipped scripts: %v", err)
	}
	defer e.Close()
	if got := e.GarbagePoints(24); got != 3 {
		t.Errorf("GarbagePoints(24) = %d, want 3", got)
	}
	o, ok := e.AutopilotOverride(AutopilotContext{Mode: "seek", VX: 1000, TargetX: 100, DesiredHeading: 0, Thrust: true})
	if !ok || o.Thrust {
		t.Errorf("fast approach should coast: %+v %v", o, ok)
	}
}

func TestLoadErrorReported(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "core", "bad.lua", `function (`)
	if _, err := NewEngine(dir, zap.NewNop()); err == nil {
		t.Fatal("expected syntax error")
	}
}

func TestNonFiniteResultsIgnored(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "ai", "autopilot.lua", `
function autopilot_override(ctx)
  if ctx.mode == "seek" then return { heading = 0/0, thrust = false } end
  return { heading = math.huge }
end`)
	writeScript(t, dir, "core", "score.lua", `function garbage_points(size) return 0/0 end`)
	e, err := NewEngine(dir, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()
	for _, mode := range []string{"seek", "wander"} {
		if out, ok := e.AutopilotOverride(AutopilotContext{Mode: mode, DesiredHeading: 45, Thrust: true}); ok {
			t.Errorf("%s: non-finite heading accepted: %+v", mode, out)
		}
	}
	if got := e.GarbagePoints(10); got != 1 {
		t.Errorf("NaN points = %d, want default 1", got)
	}
}
