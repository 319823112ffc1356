package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

// TestCSSMinification checks that CSS is minified as expected
func TestCSSMinification(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "style.css")
	dst := filepath.Join(dir, "out", "style.css")
	writeFile(t, src, `
		body {
			color: #fff;
			margin: 0  ;
		}
	`)
	if err := minifyFile(newMinifier(), src, dst); err != nil {
		t.Fatalf("minifyFile: %v", err)
	}
	got, _ := os.ReadFile(dst)
	if string(got) != "body{color:#fff;margin:0}" {
		t.Errorf("CSS minification mismatch: %q", got)
	}
}

// TestTemplateActionsSurvive checks Go template actions pass through the HTML minifier.
func TestTemplateActionsSurvive(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "index.html")
	dst := filepath.Join(dir, "out", "index.html")
	writeFile(t, src, `<!DOCTYPE html>
<html>
	<body>
		<p class="{{ .Class }}">   {{ .Message }}   </p>
		{{ range .Rows }}<span>{{ . }}</span>{{ end }}
	</body>
</html>`)
	if err := minifyFile(newMinifier(), src, dst); err != nil {
		t.Fatalf("minifyFile: %v", err)
	}
	got, _ := os.ReadFile(dst)
	for _, want := range []string{"{{ .Class }}", "{{ .Message }}", "{{ range .Rows }}", "{{ end }}"} {
		if !strings.Contains(string(got), want) {
			t.Errorf("minified template lost %q: %s", want, got)
		}
	}
}

func TestMinifyTreeMirrorsLayout(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "static")
	writeFile(t, filepath.Join(src, "css", "style.css"), "a { color : red ; }")
	writeFile(t, filepath.Join(src, "img", "logo.png"), "PNGDATA")

	dst := filepath.Join(dir, "dist", "static")
	n, err := minifyTree(newMinifier(), src, dst)
	if err != nil {
		t.Fatalf("minifyTree: %v", err)
	}
	if n != 2 {
		t.Errorf("minifyTree wrote %d files, want 2", n)
	}
	css, _ := os.ReadFile(filepath.Join(dst, "css", "style.css"))
	if string(css) != "a{color:red}" {
		t.Errorf("css = %q", css)
	}
	png, _ := os.ReadFile(filepath.Join(dst, "img", "logo.png"))
	if string(png) != "PNGDATA" {
		t.Errorf("png should be copied verbatim, got %q", png)
	}
}
