package scaffold

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/popcli/pop/internal/manifest"
	"github.com/popcli/pop/internal/templates"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Symbol != "UNIT" {
		t.Errorf("Symbol = %q, want %q", cfg.Symbol, "UNIT")
	}
	if cfg.Decimals != 12 {
		t.Errorf("Decimals = %d, want 12", cfg.Decimals)
	}
	if cfg.InitialEndowment != "1u64 << 60" {
		t.Errorf("InitialEndowment = %q, want %q", cfg.InitialEndowment, "1u64 << 60")
	}
}

func TestNewData(t *testing.T) {
	d := NewData("demo", templates.FPT, Config{Symbol: "GLMR", Decimals: 18, InitialEndowment: "1u128 << 100"})
	if d.Name != "demo" {
		t.Errorf("Name = %q, want %q", d.Name, "demo")
	}
	if d.TemplateName != "Frontier Parachain Template" {
		t.Errorf("TemplateName = %q", d.TemplateName)
	}
	if d.TemplateAlias != "fpt" {
		t.Errorf("TemplateAlias = %q, want %q", d.TemplateAlias, "fpt")
	}
	if d.Template != templates.FPT {
		t.Errorf("Template = %v, want %v", d.Template, templates.FPT)
	}
	if d.Year == 0 {
		t.Error("Year should not be zero")
	}
}

func TestEmbeddedMaterializeAllTemplates(t *testing.T) {
	expectedFiles := []string{
		".gitignore",
		"Cargo.toml",
		"README.md",
		"node/src/chain_spec.rs",
		"runtime/src/lib.rs",
		"template.yaml",
	}
	versions := map[templates.Template]string{
		templates.Base:      "v0.3.0",
		templates.Contracts: "v0.42.0",
		templates.FPT:       "v0.1.0",
	}

	for _, tmpl := range templates.All() {
		t.Run(tmpl.Alias(), func(t *testing.T) {
			outDir := filepath.Join(t.TempDir(), "my-chain")

			result, err := NewEmbedded().Materialize(context.Background(), tmpl, outDir, DefaultConfig())
			if err != nil {
				t.Fatalf("Materialize() error: %v", err)
			}

			assertFiles(t, result, expectedFiles)
			if result.Version != versions[tmpl] {
				t.Errorf("Version = %q, want %q", result.Version, versions[tmpl])
			}
			if len(result.Warnings) > 0 {
				t.Errorf("unexpected warnings: %v", result.Warnings)
			}

			spec := readGenerated(t, outDir, "node/src/chain_spec.rs")
			assertContains(t, spec, `"tokenSymbol".into(), "UNIT".into()`)
			assertContains(t, spec, `"tokenDecimals".into(), 12.into()`)
			assertContains(t, spec, "const ENDOWMENT: u128 = 1u64 << 60;")
			assertContains(t, spec, `.with_name("my-chain Development")`)

			m, err := manifest.Parse(filepath.Join(outDir, manifest.FileName))
			if err != nil {
				t.Fatalf("parsing generated manifest: %v", err)
			}
			if m.Name != "my-chain" || m.Template != tmpl.Alias() {
				t.Errorf("manifest = %+v", m)
			}
		})
	}
}

func TestEmbeddedRendersCustomConfig(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "custom")
	cfg := Config{Symbol: "ROC", Decimals: 10, InitialEndowment: "1_000_000"}

	result, err := NewEmbedded().Materialize(context.Background(), templates.Base, outDir, cfg)
	if err != nil {
		t.Fatalf("Materialize() error: %v", err)
	}

	assertContains(t, readGenerated(t, outDir, "README.md"), "| Symbol   | `ROC` |")
	assertContains(t, readGenerated(t, outDir, "runtime/src/lib.rs"), "10u128.pow(10)")

	m, err := manifest.Parse(filepath.Join(outDir, manifest.FileName))
	if err != nil {
		t.Fatalf("parsing generated manifest: %v", err)
	}
	want := manifest.Token{Symbol: "ROC", Decimals: 10, InitialEndowment: "1_000_000"}
	if m.Token != want {
		t.Errorf("manifest token = %+v, want %+v", m.Token, want)
	}
	if result.Version != "v0.3.0" {
		t.Errorf("Version = %q, want v0.3.0", result.Version)
	}

	// Non-template files are copied verbatim.
	assertContains(t, readGenerated(t, outDir, ".gitignore"), "target/")
	for _, f := range result.Files {
		if strings.HasSuffix(f, ".tmpl") {
			t.Errorf("output file %q kept the template suffix", f)
		}
	}
}

func TestEmbeddedInvalidTemplate(t *testing.T) {
	_, err := NewEmbedded().Materialize(context.Background(), templates.Template(0), t.TempDir(), DefaultConfig())
	if err == nil {
		t.Fatal("expected error for zero template")
	}
}

func TestEmbeddedCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	outDir := filepath.Join(t.TempDir(), "never")

	if _, err := NewEmbedded().Materialize(ctx, templates.Base, outDir, DefaultConfig()); err == nil {
		t.Fatal("expected error for canceled context")
	}
	if _, err := os.Stat(outDir); !os.IsNotExist(err) {
		t.Errorf("output dir should not be created, stat err = %v", err)
	}
}

func TestGenerateNonEmptyDir(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "existing.txt"), []byte("hello"), 0644)

	data := NewData("test", templates.Base, DefaultConfig())
	_, err := Generate(scaffoldFS, "base", data, dir)
	if err == nil {
		t.Fatal("expected error for non-empty output directory")
	}
	if !strings.Contains(err.Error(), "not empty") {
		t.Errorf("error should mention non-empty dir, got: %v", err)
	}
}

func TestGenerateUnknownSet(t *testing.T) {
	data := NewData("test", templates.Base, DefaultConfig())
	if _, err := Generate(scaffoldFS, "evm", data, t.TempDir()); err == nil {
		t.Fatal("expected error for invalid template set")
	}
}

func TestEmbeddedManifestSurvivesAwkwardValues(t *testing.T) {
	tests := []struct {
		name    string
		project string
		cfg     Config
	}{
		{"symbol with colon", "demo", Config{Symbol: "A: B", Decimals: 12, InitialEndowment: "1u64 << 60"}},
		{"boolean-looking name", "true", DefaultConfig()},
		{"endowment with quote", "demo", Config{Symbol: "UNIT", Decimals: 0, InitialEndowment: `1u64 << "60"`}},
		{"comment marker", "demo", Config{Symbol: "#UNIT", Decimals: 255, InitialEndowment: "- 1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outDir := filepath.Join(t.TempDir(), tt.project)

			result, err := NewEmbedded().Materialize(context.Background(), templates.Contracts, outDir, tt.cfg)
			if err != nil {
				t.Fatalf("Materialize() error: %v", err)
			}
			if len(result.Warnings) > 0 {
				t.Errorf("unexpected warnings: %v", result.Warnings)
			}
			if result.Version != "v0.42.0" {
				t.Errorf("Version = %q, want v0.42.0", result.Version)
			}

			m, err := manifest.Parse(filepath.Join(outDir, manifest.FileName))
			if err != nil {
				t.Fatalf("parsing generated manifest: %v", err)
			}
			if m.Name != tt.project {
				t.Errorf("Name = %q, want %q", m.Name, tt.project)
			}
			want := manifest.Token{Symbol: tt.cfg.Symbol, Decimals: int(tt.cfg.Decimals), InitialEndowment: tt.cfg.InitialEndowment}
			if m.Token != want {
				t.Errorf("Token = %+v, want %+v", m.Token, want)
			}
		})
	}
}

func TestGenerateManifestWarnings(t *testing.T) {
	tests := []struct {
		name        string
		manifest    string
		wantWarning string
		wantVersion string
	}{
		{
			name:        "schema violation",
			manifest:    "template: base\nversion: latest\n",
			wantWarning: "/version",
			wantVersion: "latest",
		},
		{
			name:        "template mismatch",
			manifest:    "template: fpt\nversion: v1.0.0\n",
			wantWarning: "/template",
			wantVersion: "v1.0.0",
		},
		{
			name:        "unparseable manifest",
			manifest:    "template: [base\n",
			wantWarning: "Could not validate manifest",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := fstest.MapFS{
				"scaffolds/bad/template.yaml": {Data: []byte(tt.manifest)},
			}
			outDir := filepath.Join(t.TempDir(), "bad")

			result, err := Generate(fsys, "bad", NewData("bad", templates.Base, DefaultConfig()), outDir)
			if err != nil {
				t.Fatalf("Generate() error: %v", err)
			}
			if len(result.Warnings) == 0 {
				t.Fatal("expected warnings")
			}
			if !strings.HasPrefix(result.Warnings[0], tt.wantWarning) {
				t.Errorf("warning = %q, want prefix %q", result.Warnings[0], tt.wantWarning)
			}
			if result.Version != tt.wantVersion {
				t.Errorf("Version = %q, want %q", result.Version, tt.wantVersion)
			}
		})
	}
}

func TestGenerateTemplateError(t *testing.T) {
	fsys := fstest.MapFS{
		"scaffolds/broken/README.md.tmpl": {Data: []byte("{{.Missing}}")},
	}
	_, err := Generate(fsys, "broken", NewData("x", templates.Base, DefaultConfig()), filepath.Join(t.TempDir(), "x"))
	if err == nil {
		t.Fatal("expected error for unknown template field")
	}
	if !strings.Contains(err.Error(), "README.md.tmpl") {
		t.Errorf("error should name the template file, got: %v", err)
	}
}

func TestGenerateWithoutManifest(t *testing.T) {
	fsys := fstest.MapFS{
		"scaffolds/plain/notes.txt": {Data: []byte("{{ left alone }}")},
	}
	outDir := filepath.Join(t.TempDir(), "plain")

	result, err := Generate(fsys, "plain", NewData("plain", templates.Base, DefaultConfig()), outDir)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if result.Version != "" {
		t.Errorf("Version = %q, want empty", result.Version)
	}
	assertContains(t, readGenerated(t, outDir, "notes.txt"), "{{ left alone }}")
}

// ─── Test Helpers ──────────────────────────────────────────────────

func readGenerated(t *testing.T, dir, filename string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(filename)))
	if err != nil {
		t.Fatalf("reading %s: %v", filename, err)
	}
	return string(data)
}

func assertFiles(t *testing.T, result *Result, expected []string) {
	t.Helper()
	if len(result.Files) != len(expected) {
		t.Errorf("got %d files %v, want %d files %v", len(result.Files), result.Files, len(expected), expected)
		return
	}
	for i, f := range expected {
		if result.Files[i] != f {
			t.Errorf("file[%d] = %q, want %q", i, result.Files[i], f)
		}
	}
}

func assertContains(t *testing.T, content, substr string) {
	t.Helper()
	if !strings.Contains(content, substr) {
		t.Errorf("content does not contain %q\n--- content ---\n%s", substr, content)
	}
}
