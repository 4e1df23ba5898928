package scripting

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Built-in difficulty curve, used whenever a script is missing or fails.
const (
	fallbackUfoSpeedBase      = 20.0
	fallbackUfoSpeedIncrement = 4.0
	fallbackUfoSpeedMax       = 60.0
	fallbackWaveBase          = 2
	fallbackKillScore         = 100
)

// Engine wraps a single gopher-lua VM holding the difficulty formulas.
// Single-goroutine access only (frame loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads every *.lua file in dir.
// A missing directory is not an error: all formulas use their fallbacks.
func NewEngine(dir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}
	if err := e.loadDir(dir); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load scripts: %w", err)
	}
	return e, nil
}

// Close releases the VM.
func (e *Engine) Close() {
	e.vm.Close()
}

func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			e.log.Warn("lua script directory missing, using built-in formulas", zap.String("dir", dir))
			return nil
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

// HasFunction reports whether a global Lua function with that name exists.
func (e *Engine) HasFunction(name string) bool {
	_, ok := e.vm.GetGlobal(name).(*lua.LFunction)
	return ok
}

// callLevel invokes name(level) and returns its numeric result.
func (e *Engine) callLevel(name string, level uint64) (float64, bool) {
	fn := e.vm.GetGlobal(name)
	if fn == lua.LNil {
		return 0, false
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lua.LNumber(level)); err != nil {
		e.log.Error("lua call failed", zap.String("func", name), zap.Error(err))
		return 0, false
	}

	ret := e.vm.Get(-1)
	e.vm.Pop(1)

	n, ok := ret.(lua.LNumber)
	if !ok {
		e.log.Error("lua function returned non-number",
			zap.String("func", name),
			zap.String("type", ret.Type().String()))
		return 0, false
	}
	v := float64(n)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		e.log.Error("lua function returned non-finite number", zap.String("func", name))
		return 0, false
	}
	return v, true
}

// UfoSpeed returns how fast a UFO of the given level chases the player,
// in world units per second.
func (e *Engine) UfoSpeed(level uint64) float64 {
	if v, ok := e.callLevel("ufo_speed", level); ok && v >= 0 {
		return v
	}
	return FallbackUfoSpeed(level)
}

// WaveSize returns how many UFOs spawn for a wave of the given level.
func (e *Engine) WaveSize(level uint64) int {
	if v, ok := e.callLevel("wave_size", level); ok && v >= 1 {
		return int(v)
	}
	return FallbackWaveSize(level)
}

// KillScore returns the score awarded for destroying a UFO of the given level.
func (e *Engine) KillScore(level uint64) uint64 {
	if v, ok := e.callLevel("kill_score", level); ok && v >= 0 {
		return uint64(v)
	}
	return FallbackKillScore(level)
}

func FallbackUfoSpeed(level uint64) float64 {
	if level == 0 {
		level = 1
	}
	return min(fallbackUfoSpeedBase+fallbackUfoSpeedIncrement*float64(level-1), fallbackUfoSpeedMax)
}

func FallbackWaveSize(level uint64) int {
	return fallbackWaveBase + int(level)
}

func FallbackKillScore(level uint64) uint64 {
	return fallbackKillScore * max(level, 1)
}
