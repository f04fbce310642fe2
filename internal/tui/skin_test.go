package tui

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestInitializeSkin_DefaultWithoutFile(t *testing.T) {
	if err := InitializeSkin("default", t.TempDir()); err != nil {
		t.Fatalf("default skin without a file should not error: %v", err)
	}
}

func TestInitializeSkin_MissingNamedSkinFails(t *testing.T) {
	if err := InitializeSkin("nope", t.TempDir()); err == nil {
		t.Fatal("named skin without a file should error")
	}
}

func TestInitializeSkin_AppliesOverrides(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "skins"), 0o755); err != nil {
		t.Fatal(err)
	}

	skin := `name: midnight
colors:
  blue: "27"
  gold: "214"
`
	if err := os.WriteFile(filepath.Join(dir, "skins", "midnight.yaml"), []byte(skin), 0o644); err != nil {
		t.Fatal(err)
	}

	prevBlue, prevGold, prevRed := ColorBlue, ColorGold, ColorRed
	t.Cleanup(func() {
		ColorBlue, ColorGold, ColorRed = prevBlue, prevGold, prevRed
		rebuildStyles()
	})

	if err := InitializeSkin("midnight", dir); err != nil {
		t.Fatalf("loading skin: %v", err)
	}

	if ColorBlue != lipgloss.Color("27") {
		t.Fatalf("blue = %q, want 27", ColorBlue)
	}
	if ColorGold != lipgloss.Color("214") {
		t.Fatalf("gold = %q, want 214", ColorGold)
	}
	// Unset fields keep the built-in value.
	if ColorRed != prevRed {
		t.Fatalf("red = %q, want unchanged %q", ColorRed, prevRed)
	}
}
