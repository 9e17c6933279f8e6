// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert wires the loader, image extractor, classifier,
// interleaver and normalizer into the markdown, docx and images
// operations. Every operation resolves its output paths first, fails
// before touching the filesystem when the input is missing, and deletes
// previous outputs before writing new ones.
package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdfconv/internal/images"
	"github.com/pdiddy/pdfconv/pkg/types"
)

// ErrInputNotFound is returned when the input PDF does not exist.
var ErrInputNotFound = errors.New("input file not found")

// Paths holds the input and the derived output locations of one run.
type Paths struct {
	Input  string
	OutDir string
	Base   string
}

// Resolve checks that input exists and derives the output paths. An empty
// outDir means the input's directory.
func Resolve(input, outDir string) (Paths, error) {
	info, err := os.Stat(input)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Paths{}, fmt.Errorf("%w: %s", ErrInputNotFound, input)
		}
		return Paths{}, fmt.Errorf("checking input %s: %w", input, err)
	}
	if info.IsDir() {
		return Paths{}, fmt.Errorf("input %s is a directory", input)
	}
	if outDir == "" {
		outDir = filepath.Dir(input)
	}
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return Paths{Input: input, OutDir: outDir, Base: base}, nil
}

// Markdown returns <outdir>/<base>.md.
func (p Paths) Markdown() string { return filepath.Join(p.OutDir, p.Base+".md") }

// Docx returns <outdir>/<base>.docx.
func (p Paths) Docx() string { return filepath.Join(p.OutDir, p.Base+".docx") }

// Images returns <outdir>/<base>_images.
func (p Paths) Images() string { return images.DirFor(p.OutDir, p.Base) }

// ImagesRel returns the images directory relative to the Markdown file,
// with forward slashes.
func (p Paths) ImagesRel() string { return p.Base + images.DirSuffix }

// Result is the output of a Markdown conversion.
type Result struct {
	Markdown string
	Metadata types.Metadata
	Images   int
}

// Converter transforms a PDF into Markdown. The layout, plain and
// markitdown backends implement it.
type Converter interface {
	Convert(ctx context.Context, paths Paths) (Result, error)
}

// MarkdownOptions controls WriteMarkdown.
type MarkdownOptions struct {
	Frontmatter bool

	// Now stamps the frontmatter; nil means time.Now.
	Now func() time.Time
}

// WriteMarkdown runs c and writes the result to paths.Markdown(), then
// prints a status line to w. The previous Markdown file and images
// directory are removed first, whichever backend runs.
func WriteMarkdown(ctx context.Context, c Converter, paths Paths, opts MarkdownOptions, w io.Writer) error {
	mdPath := paths.Markdown()
	if err := removeFile(mdPath); err != nil {
		return err
	}
	if err := os.RemoveAll(paths.Images()); err != nil {
		return fmt.Errorf("removing previous images %s: %w", paths.Images(), err)
	}
	if err := os.MkdirAll(paths.OutDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", paths.OutDir, err)
	}

	res, err := c.Convert(ctx, paths)
	if err != nil {
		return fmt.Errorf("converting %s: %w", paths.Input, err)
	}

	content := res.Markdown
	if opts.Frontmatter {
		now := time.Now
		if opts.Now != nil {
			now = opts.Now
		}
		content, err = addFrontmatter(paths, res.Metadata, now(), content)
		if err != nil {
			return err
		}
	}

	if err := os.WriteFile(mdPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", mdPath, err)
	}

	fmt.Fprintf(w, "Converted %s to %s\n", paths.Input, mdPath)
	if res.Images > 0 {
		fmt.Fprintf(w, "images: %d written to %s\n", res.Images, paths.Images())
	}
	return nil
}

// frontmatter is the YAML header prepended to converted Markdown.
type frontmatter struct {
	Source      string `yaml:"source_pdf"`
	Title       string `yaml:"title,omitempty"`
	Author      string `yaml:"author,omitempty"`
	Pages       int    `yaml:"pages,omitempty"`
	ConvertedAt string `yaml:"converted_at"`
}

func addFrontmatter(paths Paths, meta types.Metadata, at time.Time, body string) (string, error) {
	out, err := yaml.Marshal(frontmatter{
		Source:      paths.Input,
		Title:       meta.Title,
		Author:      meta.Author,
		Pages:       meta.PageCount,
		ConvertedAt: at.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return "", fmt.Errorf("marshaling frontmatter: %w", err)
	}
	var b strings.Builder
	b.WriteString("---\n")
	b.Write(out)
	b.WriteString("---\n\n")
	b.WriteString(body)
	return b.String(), nil
}

func removeFile(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing previous output %s: %w", path, err)
	}
	return nil
}
