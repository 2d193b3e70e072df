package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"xypher/internal/modules"
	"xypher/internal/types"
)

func writeManifest(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFindsManifestInParent(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, `
[package]
name = "demo"
main = "main.xyp"

[diagnostics]
max_errors = 3
`)
	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	m, ok, err := Load(nested)
	if err != nil || !ok {
		t.Fatalf("Load: ok=%v err=%v", ok, err)
	}
	if m.Root != root || m.Config.Package.Name != "demo" || m.Config.Diagnostics.MaxErrors != 3 {
		t.Errorf("unexpected manifest %+v", m)
	}
}

func TestLoadWithoutManifest(t *testing.T) {
	_, ok, err := Load(t.TempDir())
	if err != nil || ok {
		t.Errorf("ok=%v err=%v, want no manifest", ok, err)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"no package", "[diagnostics]\nmax_errors = 1\n", "missing [package]"},
		{"no name", "[package]\nmain = \"a.xyp\"\n", "missing [package].name"},
		{"unknown key", "[package]\nname = \"x\"\nflavor = \"mint\"\n", "unknown key"},
		{"bad language", "[package]\nname = \"x\"\nlanguage = \"~>banana\"\n", "invalid [package].language"},
		{"bad param", "[package]\nname = \"x\"\n[[modules.gfx.functions]]\nname = \"xy_draw\"\nparams = [\"pixel\"]\n", "invalid parameter type"},
		{"core reserved", "[package]\nname = \"x\"\n[[modules.core.functions]]\nname = \"xy_x\"\n", "reserved"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeManifest(t, t.TempDir(), tt.body)
			_, err := LoadConfig(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestApplyModules(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `
[package]
name = "gfx-demo"

[[modules.gfx.functions]]
name = "xy_draw"
returns = "i32"
params = ["i32", "i32", "str"]

[[modules.gfx.functions]]
name = "xy_flush"
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	reg := modules.NewRegistry()
	cfg.ApplyModules(reg)

	if !reg.Has("gfx") {
		t.Fatal("module gfx not registered")
	}
	draw, ok := reg.Lookup("xy_draw")
	if !ok || draw.Result != types.I32 || len(draw.Params) != 3 || draw.Params[2] != types.Str || !draw.Checked {
		t.Errorf("xy_draw = %+v", draw)
	}
	flush, _ := reg.Lookup("xy_flush")
	if !flush.Result.IsVoid() || len(flush.Params) != 0 {
		t.Errorf("xy_flush = %+v", flush)
	}
}

func TestCheckLanguage(t *testing.T) {
	cfg := Config{Package: PackageConfig{Name: "x", Language: ">=0.2.0"}}
	if err := cfg.CheckLanguage("0.3.1"); err != nil {
		t.Errorf("0.3.1: %v", err)
	}
	if err := cfg.CheckLanguage("0.1.9"); err == nil {
		t.Error("0.1.9 must not satisfy >=0.2.0")
	}
	if err := (Config{}).CheckLanguage("whatever"); err != nil {
		t.Errorf("empty constraint: %v", err)
	}
}

func TestInitRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path, err := Init(dir, "hello", "0.1.0-dev")
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("generated manifest does not load: %v", err)
	}
	if cfg.Package.Name != "hello" || cfg.Package.Main != "main.xyp" {
		t.Errorf("package = %+v", cfg.Package)
	}
	if err := cfg.CheckLanguage("0.1.0-dev"); err != nil {
		t.Errorf("init constraint rejects its own compiler: %v", err)
	}

	m := &Manifest{Path: path, Root: dir, Config: cfg}
	mainPath, err := m.MainPath()
	if err != nil || filepath.Base(mainPath) != "main.xyp" {
		t.Errorf("MainPath = %q, %v", mainPath, err)
	}

	if _, err := Init(dir, "hello", "0.1.0-dev"); err == nil {
		t.Error("second Init must refuse to overwrite the manifest")
	}
}

func TestDigestOfSeparatesParts(t *testing.T) {
	if DigestOf("ab", "c") == DigestOf("a", "bc") {
		t.Error("parts must be length-prefixed")
	}
	a := DigestOf("x")
	if Combine(a) == Combine(a, a) {
		t.Error("Combine must depend on deps")
	}
}
