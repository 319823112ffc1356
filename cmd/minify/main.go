package main

import (
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
)

// mediaTypes maps file extensions to the minifier registered for them.
var mediaTypes = map[string]string{
	".html": "text/html",
	".css":  "text/css",
	".js":   "application/javascript",
}

func newMinifier() *minify.M {
	m := minify.New()
	m.Add("text/html", &html.Minifier{
		KeepDocumentTags: true,
		KeepEndTags:      true,
		KeepQuotes:       true,
		TemplateDelims:   html.GoTemplateDelims,
	})
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("application/javascript", js.Minify)
	return m
}

// minifyFile writes the minified form of src to dst. Unknown extensions are copied as-is.
func minifyFile(m *minify.M, src, dst string) error {
	input, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	output := input
	if mediaType, ok := mediaTypes[strings.ToLower(filepath.Ext(src))]; ok {
		output, err = m.Bytes(mediaType, input)
		if err != nil {
			return fmt.Errorf("minify %s: %w", src, err)
		}
	}
	return os.WriteFile(dst, output, 0644)
}

// minifyTree mirrors srcDir under dstDir, minifying what it can. It returns the number of files written.
func minifyTree(m *minify.M, srcDir, dstDir string) (int, error) {
	count := 0
	err := filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		if err := minifyFile(m, path, filepath.Join(dstDir, rel)); err != nil {
			return err
		}
		count++
		return nil
	})
	return count, err
}

func main() {
	var (
		inputFile = flag.String("input", "", "Single input file path")
		output    = flag.String("output", "dist", "Output file, or output directory when minifying the asset tree")
		dirs      = flag.String("dirs", "templates,static", "Comma-separated asset directories to mirror under -output")
	)
	flag.Parse()

	m := newMinifier()

	if *inputFile != "" {
		if err := minifyFile(m, *inputFile, *output); err != nil {
			log.Fatalf("Failed to minify %s: %v", *inputFile, err)
		}
		fmt.Printf("Minified %s -> %s\n", *inputFile, *output)
		return
	}

	for _, dir := range strings.Split(*dirs, ",") {
		dir = strings.TrimSpace(dir)
		if dir == "" {
			continue
		}
		n, err := minifyTree(m, dir, filepath.Join(*output, dir))
		if err != nil {
			log.Fatalf("Failed to minify %s: %v", dir, err)
		}
		fmt.Printf("Minified %d files from %s into %s\n", n, dir, filepath.Join(*output, dir))
	}
}
