package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bran/ismcts/internal/strategy"
)

func TestDefaultUsesDefaultStrategy(t *testing.T) {
	cfg := Default()
	sc := cfg.ToStrategyConfig()
	if sc.Type != strategy.Default {
		t.Errorf("Type = %v, want Default", sc.Type)
	}
}

func TestLoadOverlaysExplicitZeroAlpha(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	contents := "strategy:\n  type: AGGRESSIVE\n  alpha: 0\n  beta: 1\n  aggression_factor: 0.3\ntime_budget_ms: 250\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	sc := cfg.ToStrategyConfig()
	if sc.Alpha != 0 {
		t.Errorf("Alpha = %v, want 0 (explicit override honored)", sc.Alpha)
	}
	if sc.Beta != 1 {
		t.Errorf("Beta = %v, want 1", sc.Beta)
	}
	if cfg.TimeBudgetMs != 250 {
		t.Errorf("TimeBudgetMs = %d, want 250", cfg.TimeBudgetMs)
	}
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	if _, err := Load("/nonexistent/path.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestToRulesConfig(t *testing.T) {
	cfg := Default()
	cfg.Rules.CanLeadTrump = false
	rc := cfg.ToRulesConfig()
	if rc.CanLeadTrump {
		t.Error("expected CanLeadTrump false after override")
	}
}
