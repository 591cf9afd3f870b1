package scaffold

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/popcli/pop/internal/manifest"
	"github.com/popcli/pop/internal/templates"
)

//go:embed all:scaffolds
var scaffoldFS embed.FS

// Defaults applied when the user does not choose token parameters.
const (
	DefaultSymbol           = "UNIT"
	DefaultDecimals         = 12
	DefaultInitialEndowment = "1u64 << 60"
)

// Config is the fully-resolved set of token parameters a template is
// rendered with. Every field is always populated.
type Config struct {
	Symbol           string
	Decimals         uint8
	InitialEndowment string
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		Symbol:           DefaultSymbol,
		Decimals:         DefaultDecimals,
		InitialEndowment: DefaultInitialEndowment,
	}
}

// Data holds all template variables available to scaffold templates.
type Data struct {
	Name             string // e.g., "my-parachain"
	Template         templates.Template
	TemplateName     string // e.g., "Base Parachain Template"
	TemplateAlias    string // e.g., "base"
	Symbol           string // e.g., "UNIT"
	Decimals         uint8  // e.g., 12
	InitialEndowment string // e.g., "1u64 << 60"
	Year             int    // Current year
}

// NewData creates the template variables for a project.
func NewData(name string, tmpl templates.Template, cfg Config) *Data {
	return &Data{
		Name:             name,
		Template:         tmpl,
		TemplateName:     tmpl.String(),
		TemplateAlias:    tmpl.Alias(),
		Symbol:           cfg.Symbol,
		Decimals:         cfg.Decimals,
		InitialEndowment: cfg.InitialEndowment,
		Year:             time.Now().Year(),
	}
}

// Result holds the outcome of a materialization.
type Result struct {
	OutputDir string
	Version   string // Template release; empty when unknown
	Files     []string
	Warnings  []string
}

// Embedded materializes templates compiled into the binary.
type Embedded struct {
	fsys fs.FS
}

// NewEmbedded returns a materializer over the built-in scaffolds.
func NewEmbedded() *Embedded {
	return &Embedded{fsys: scaffoldFS}
}

// Materialize renders tmpl into dest. The project name is the last element of dest.
func (e *Embedded) Materialize(ctx context.Context, tmpl templates.Template, dest string, cfg Config) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !tmpl.Valid() {
		return nil, fmt.Errorf("invalid template %d", int(tmpl))
	}
	data := NewData(filepath.Base(dest), tmpl, cfg)
	return Generate(e.fsys, tmpl.Alias(), data, dest)
}

// Generate renders the template set setName from fsys into outputDir.
// fsys must contain a scaffolds/<setName> directory.
func Generate(fsys fs.FS, setName string, data *Data, outputDir string) (*Result, error) {
	root := path.Join("scaffolds", setName)

	// Verify template set exists.
	info, err := fs.Stat(fsys, root)
	if err != nil {
		return nil, fmt.Errorf("template set %q not found: %w", setName, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("template set %q is not a directory", setName)
	}

	if err := prepareOutputDir(outputDir); err != nil {
		return nil, err
	}

	result := &Result{
		OutputDir: outputDir,
	}

	err = fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := relPath(root, p)
		if err != nil || rel == "." {
			return err
		}

		if d.IsDir() {
			return os.MkdirAll(filepath.Join(outputDir, filepath.FromSlash(rel)), 0755)
		}

		content, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("reading template %s: %w", p, err)
		}

		outRel, err := writeRendered(outputDir, rel, content, 0644, data)
		if err != nil {
			return err
		}
		result.Files = append(result.Files, outRel)
		return nil
	})
	if err != nil {
		return nil, err
	}

	inspectManifest(result, data)
	return result, nil
}

// prepareOutputDir creates outputDir and refuses to write into a non-empty one.
func prepareOutputDir(outputDir string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	// Check for existing files to prevent accidental overwrites.
	existingEntries, err := os.ReadDir(outputDir)
	if err == nil && len(existingEntries) > 0 {
		return fmt.Errorf("output directory %s is not empty; remove existing files first", outputDir)
	}
	return nil
}

// inspectManifest validates the generated template.yaml against its schema
// and against the requested template and token, records issues as warnings,
// and lifts the template version into the result.
func inspectManifest(result *Result, data *Data) {
	manifestFile := filepath.Join(result.OutputDir, manifest.FileName)
	if _, err := os.Stat(manifestFile); err != nil {
		return
	}

	valResult, err := manifest.ValidateFile(manifestFile)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Could not validate manifest: %v", err))
		return
	}
	for _, issue := range valResult.Issues {
		result.Warnings = append(result.Warnings, issue.String())
	}

	m, err := manifest.Parse(manifestFile)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Could not read manifest: %v", err))
		return
	}
	for _, issue := range manifest.Verify(m, manifest.Expected{Template: data.Template, Token: tokenOf(data)}) {
		result.Warnings = append(result.Warnings, issue.String())
	}
	if result.Version == "" {
		result.Version = m.Version
	}
}

// completeManifest fills a template's manifest with the project name and
// token parameters and re-encodes it. Template, version and description come
// from the template itself. Content that does not parse is kept as is and
// reported by inspectManifest.
func completeManifest(content []byte, data *Data) []byte {
	m, err := manifest.ParseBytes(content, manifest.FileName)
	if err != nil {
		return content
	}
	m.Name = data.Name
	if m.Template == "" {
		m.Template = data.TemplateAlias
	}
	if m.Description == "" {
		m.Description = "Generated from " + data.TemplateName
	}
	m.Token = tokenOf(data)

	out, err := manifest.Marshal(m)
	if err != nil {
		return content
	}
	return out
}

func tokenOf(data *Data) manifest.Token {
	return manifest.Token{
		Symbol:           data.Symbol,
		Decimals:         int(data.Decimals),
		InitialEndowment: data.InitialEndowment,
	}
}
