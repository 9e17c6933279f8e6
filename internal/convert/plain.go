// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"strings"
	"unicode"

	"github.com/pdiddy/pdfconv/internal/classify"
	"github.com/pdiddy/pdfconv/internal/loader"
)

// bulletGlyph is the private-use bullet Symbol-font PDFs extract to.
const bulletGlyph = "\uf0b7"

// Plain emits the text stream line by line: bullet glyphs removed, lines
// starting with a digit dropped (page and line numbers), headings by
// classifier, paragraphs separated by a blank line. No images.
type Plain struct {
	Loader     loader.Loader
	Classifier classify.Classifier
}

// Convert implements Converter.
func (p *Plain) Convert(ctx context.Context, paths Paths) (Result, error) {
	doc, err := p.Loader.Load(ctx, paths.Input)
	if err != nil {
		return Result{}, err
	}

	c := p.Classifier
	if c == nil {
		c = classify.NewKeyword()
	}

	var lines []string
	for _, page := range doc.Pages {
		text := strings.ReplaceAll(page.Text(), bulletGlyph, "")
		for _, raw := range strings.Split(text, "\n") {
			line := strings.TrimSpace(raw)
			if line == "" || startsWithDigit(line) {
				continue
			}
			lines = append(lines, c.Classify(line).Marker()+line)
		}
	}

	return Result{Markdown: strings.Join(lines, "\n\n"), Metadata: doc.Metadata}, nil
}

func startsWithDigit(s string) bool {
	for _, r := range s {
		return unicode.IsDigit(r)
	}
	return false
}

var _ Converter = (*Plain)(nil)
