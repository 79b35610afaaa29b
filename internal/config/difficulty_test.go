package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestPresetsLookup(t *testing.T) {
	presets := DefaultPresets()

	p, err := presets.Lookup(" Hard ")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if p.PlayerHealth != 10 || p.Damage != 1.5 {
		t.Errorf("hard preset = %+v", p)
	}

	if _, err := presets.Lookup("nightmare"); !errors.Is(err, ErrUnknownDifficulty) {
		t.Errorf("Lookup(nightmare) err = %v, want ErrUnknownDifficulty", err)
	}

	if _, err := presets.Lookup(DefaultDifficulty); err != nil {
		t.Errorf("default difficulty missing: %v", err)
	}
}

func TestPresetsNamesOrder(t *testing.T) {
	got := DefaultPresets().Names()
	want := []string{"easy", "medium", "hard"}
	if len(got) != len(want) {
		t.Fatalf("Names = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Names = %v, want %v", got, want)
		}
	}
}

func TestLoadPresetsMergesOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	data := []byte(`
medium:
  player_health: 25
brutal:
  player_health: 3
  enemy_speed: 2
  enemy_health: 2
  spawn_rate: 0.5
  damage: 2
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	presets, err := LoadPresets(path)
	if err != nil {
		t.Fatalf("LoadPresets: %v", err)
	}

	medium := presets["medium"]
	if medium.PlayerHealth != 25 {
		t.Errorf("medium health = %d, want 25", medium.PlayerHealth)
	}
	if medium.EnemySpeed != 0.8 {
		t.Errorf("medium enemy speed = %v, want default 0.8", medium.EnemySpeed)
	}
	if b, err := presets.Lookup("brutal"); err != nil || b.Name != "brutal" || b.PlayerHealth != 3 {
		t.Errorf("brutal = %+v, %v", b, err)
	}
}

func TestLoadPresetsRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	if err := os.WriteFile(path, []byte("custom:\n  player_health: 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadPresets(path); err == nil {
		t.Fatal("expected error for preset without multipliers")
	}
}

func TestLoadPresetsEmptyPath(t *testing.T) {
	presets, err := LoadPresets("")
	if err != nil {
		t.Fatalf("LoadPresets: %v", err)
	}
	if len(presets) != 3 {
		t.Fatalf("got %d presets, want 3", len(presets))
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("BC_TEST_PORT", "2222")
	if got := GetEnvInt("BC_TEST_PORT", 1); got != 2222 {
		t.Errorf("GetEnvInt = %d", got)
	}
	t.Setenv("BC_TEST_PORT", "nope")
	if got := GetEnvInt("BC_TEST_PORT", 7); got != 7 {
		t.Errorf("GetEnvInt with bad value = %d, want fallback", got)
	}
}
