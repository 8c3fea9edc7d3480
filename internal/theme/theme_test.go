package theme

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseOverridesDefaults(t *testing.T) {
	src := `# comment
Name: Test
Dim: #00000080
SelectionBorder: #112233
Unknown: #ffffff
`
	th, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if th.Name != "Test" {
		t.Errorf("Name = %q", th.Name)
	}
	if th.Dim != (color.RGBA{0, 0, 0, 0x80}) {
		t.Errorf("Dim = %v", th.Dim)
	}
	if th.SelectionBorder != (color.RGBA{0x11, 0x22, 0x33, 255}) {
		t.Errorf("SelectionBorder = %v", th.SelectionBorder)
	}
	if th.HandleFill != Default().HandleFill {
		t.Errorf("unset keys should keep defaults, HandleFill = %v", th.HandleFill)
	}
}

func TestParseRejectsBadColor(t *testing.T) {
	if _, err := Parse(strings.NewReader("Dim: 000000\n")); err == nil {
		t.Fatalf("expected error for color without #")
	}
	if _, err := Parse(strings.NewReader("Dim: #12345\n")); err == nil {
		t.Fatalf("expected error for short hex")
	}
}

func TestEmbeddedThemesLoad(t *testing.T) {
	l := &Loader{}
	for _, name := range Names() {
		th, err := l.Load(name)
		if err != nil {
			t.Fatalf("Load(%q): %v", name, err)
		}
		if th.SelectionBorder.A == 0 {
			t.Errorf("%s: selection border is transparent", name)
		}
	}
	if len(Names()) < 2 {
		t.Fatalf("expected default and dark themes, got %v", Names())
	}
	def, err := l.Load("default")
	if err != nil {
		t.Fatalf("Load default: %v", err)
	}
	if *def != *Default() {
		t.Errorf("embedded default theme drifted from Default()")
	}
}

func TestLoaderSearchesConfigDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "mine.theme"), []byte("Name: Mine\nBadgeText: #010203\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	l := &Loader{ConfigDir: dir}
	th, err := l.Load("mine")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if th.Name != "Mine" || th.BadgeText != (color.RGBA{1, 2, 3, 255}) {
		t.Fatalf("loaded %+v", th)
	}
	if _, err := l.Load("missing"); err == nil {
		t.Fatalf("expected error for unknown theme")
	}
}
