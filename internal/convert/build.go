// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"path"
	"strings"

	"github.com/pdiddy/pdfconv/internal/classify"
	"github.com/pdiddy/pdfconv/pkg/types"
)

// BuildItems turns the blocks of doc into classified lines. Each block is
// reflowed into one line and followed by a blank line; a separator sits
// between consecutive pages. The blank lines advance the interleaver's
// cursor the same way they take up a rendered line.
func BuildItems(doc *types.Document, c classify.Classifier) types.MarkdownDocument {
	var items types.MarkdownDocument
	blank := types.TextItem("", types.Body)
	for i, page := range doc.Pages {
		if i > 0 {
			items = append(items, types.SeparatorItem(), blank)
		}
		for _, block := range page.Blocks {
			line := reflow(block.Text)
			if line == "" {
				continue
			}
			items = append(items, types.TextItem(line, c.Classify(line)), blank)
		}
	}
	return items
}

// reflow joins the lines of a block with single spaces.
func reflow(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Render writes items as Markdown, one item per line. Image references
// point into imagesRel and are set off by blank lines.
func Render(items []types.Item, imagesRel string) string {
	var b strings.Builder
	for i, it := range items {
		if i > 0 {
			b.WriteByte('\n')
		}
		switch it.Kind {
		case types.ItemHeading:
			b.WriteString(it.Level.Marker())
			b.WriteString(it.Text)
		case types.ItemImage:
			b.WriteString("\n![Image](")
			b.WriteString(path.Join(imagesRel, it.Image.Filename))
			b.WriteString(")\n")
		case types.ItemSeparator:
			b.WriteString("---")
		default:
			b.WriteString(it.Text)
		}
	}
	return b.String()
}
