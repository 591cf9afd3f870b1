package scaffold

import (
	"bytes"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/popcli/pop/internal/manifest"
)

// templateSuffix marks files rendered with text/template. Everything else is
// copied verbatim, since Rust sources and build files may contain {{ }}.
const templateSuffix = ".tmpl"

// render executes content as a Go template against data.
func render(name string, content []byte, data *Data) ([]byte, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// writeRendered writes one template file under outputDir. rel is slash
// separated. It returns the slash-separated output path relative to outputDir.
func writeRendered(outputDir, rel string, content []byte, mode os.FileMode, data *Data) (string, error) {
	outRel := rel
	if strings.HasSuffix(rel, templateSuffix) {
		outRel = strings.TrimSuffix(rel, templateSuffix)
		rendered, err := render(path.Base(rel), content, data)
		if err != nil {
			return "", err
		}
		content = rendered
	}
	if outRel == manifest.FileName {
		content = completeManifest(content, data)
	}

	outPath := filepath.Join(outputDir, filepath.FromSlash(outRel))
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return "", fmt.Errorf("creating directory for %s: %w", outRel, err)
	}
	if err := os.WriteFile(outPath, content, mode); err != nil {
		return "", fmt.Errorf("writing %s: %w", outPath, err)
	}
	return outRel, nil
}

// relPath returns p relative to root using forward slashes.
func relPath(root, p string) (string, error) {
	if p == root {
		return ".", nil
	}
	if !strings.HasPrefix(p, root+"/") {
		return "", fmt.Errorf("path %s is outside %s", p, root)
	}
	return strings.TrimPrefix(p, root+"/"), nil
}
