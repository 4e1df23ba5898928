package scripting

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zaptest"
)

func newTestEngine(t *testing.T, files map[string]string) *Engine {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	e, err := NewEngine(dir, zaptest.NewLogger(t))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(e.Close)
	return e
}

func TestFallbacksWithoutScripts(t *testing.T) {
	e, err := NewEngine(filepath.Join(t.TempDir(), "none"), zaptest.NewLogger(t))
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()

	tests := []struct {
		level uint64
		speed float64
		wave  int
		score uint64
	}{
		{1, 20, 3, 100},
		{3, 28, 5, 300},
		{50, 60, 52, 5000},
	}
	for _, tt := range tests {
		if got := e.UfoSpeed(tt.level); got != tt.speed {
			t.Errorf("UfoSpeed(%d) = %v, want %v", tt.level, got, tt.speed)
		}
		if got := e.WaveSize(tt.level); got != tt.wave {
			t.Errorf("WaveSize(%d) = %v, want %v", tt.level, got, tt.wave)
		}
		if got := e.KillScore(tt.level); got != tt.score {
			t.Errorf("KillScore(%d) = %v, want %v", tt.level, got, tt.score)
		}
	}
}

func TestScriptOverridesFormula(t *testing.T) {
	e := newTestEngine(t, map[string]string{
		"curve.lua": `
function ufo_speed(level) return level * 10 end
function wave_size(level) return 7 end
`,
		"notes.txt": "ignored",
	})
	if !e.HasFunction("ufo_speed") || e.HasFunction("kill_score") {
		t.Fatal("unexpected function table")
	}
	if got := e.UfoSpeed(4); got != 40 {
		t.Errorf("UfoSpeed = %v", got)
	}
	if got := e.WaveSize(9); got != 7 {
		t.Errorf("WaveSize = %v", got)
	}
	if got := e.KillScore(2); got != FallbackKillScore(2) {
		t.Errorf("KillScore = %v", got)
	}
}

func TestFailingScriptFallsBack(t *testing.T) {
	e := newTestEngine(t, map[string]string{
		"broken.lua": `
function ufo_speed(level) error("boom") end
function wave_size(level) return "many" end
function kill_score(level) return -5 end
`,
	})
	if got := e.UfoSpeed(2); got != FallbackUfoSpeed(2) {
		t.Errorf("UfoSpeed = %v", got)
	}
	if got := e.WaveSize(2); got != FallbackWaveSize(2) {
		t.Errorf("WaveSize = %v", got)
	}
	if got := e.KillScore(2); got != FallbackKillScore(2) {
		t.Errorf("KillScore = %v", got)
	}
	// the VM stays usable after a protected error
	if got := e.UfoSpeed(2); got != FallbackUfoSpeed(2) {
		t.Errorf("second UfoSpeed = %v", got)
	}
}

func TestSyntaxErrorFailsLoad(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.lua"), []byte("function ("), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewEngine(dir, zaptest.NewLogger(t)); err == nil {
		t.Fatal("expected load error")
	}
}

func TestShippedScripts(t *testing.T) {
	e, err := NewEngine(filepath.Join("..", "..", "scripts"), zaptest.NewLogger(t))
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()
	for level := uint64(1); level <= 20; level++ {
		if e.UfoSpeed(level) != FallbackUfoSpeed(level) ||
			e.WaveSize(level) != FallbackWaveSize(level) ||
			e.KillScore(level) != FallbackKillScore(level) {
			t.Fatalf("shipped curve diverges from built-in at level %d", level)
		}
	}
}
