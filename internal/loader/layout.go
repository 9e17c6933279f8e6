// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package loader

import (
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/pdiddy/pdfconv/pkg/types"
)

const (
	// lineTolerance is the fraction of the font size two baselines may
	// differ by and still be on the same line.
	lineTolerance = 0.5
	// blockGap is the fraction of the font size a vertical gap between two
	// lines may reach before a new block starts.
	blockGap = 0.8
	// wordGap is the fraction of the font size a horizontal gap between two
	// fragments must exceed to be read as a space.
	wordGap = 0.15
	// defaultFontSize is used when a backend reports no size.
	defaultFontSize = 10.0
)

// fragment is a positioned piece of text in page space, top-left origin.
type fragment struct {
	X0, X1   float64
	Top      float64
	Baseline float64
	Size     float64
	Text     string
}

// fromPDF builds a fragment from PDF user-space coordinates (bottom-left
// origin) on a page of the given height.
func fromPDF(x0, x1, bottom, top, size float64, text string, pageHeight float64) fragment {
	if size <= 0 {
		size = max(top-bottom, defaultFontSize)
	}
	if top <= bottom {
		top = bottom + size
	}
	return fragment{
		X0:       x0,
		X1:       max(x1, x0),
		Top:      pageHeight - top,
		Baseline: pageHeight - bottom,
		Size:     size,
		Text:     text,
	}
}

type line struct {
	frags    []fragment
	baseline float64
	top      float64
	x0, x1   float64
	size     float64
}

// groupBlocks turns loose fragments into text blocks: fragments sharing a
// baseline form a line, vertically adjacent lines form a block. Blocks are
// returned ordered by (Y0, X0).
func groupBlocks(frags []fragment) []types.TextBlock {
	if len(frags) == 0 {
		return nil
	}

	sorted := make([]fragment, len(frags))
	copy(sorted, frags)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Baseline < sorted[j].Baseline
	})

	var lines []*line
	for _, f := range sorted {
		if n := len(lines); n > 0 {
			cur := lines[n-1]
			if abs(f.Baseline-cur.baseline) <= lineTolerance*max(cur.size, f.Size) {
				cur.add(f)
				continue
			}
		}
		l := &line{baseline: f.Baseline, top: f.Top, x0: f.X0, x1: f.X1, size: f.Size}
		l.frags = append(l.frags, f)
		lines = append(lines, l)
	}

	var blocks []types.TextBlock
	var cur *types.TextBlock
	var prev *line
	for _, l := range lines {
		text := l.text()
		if text == "" {
			continue
		}
		box := types.BBox{X0: l.x0, Y0: l.top, X1: l.x1, Y1: l.baseline}
		if cur != nil && l.top-prev.baseline <= blockGap*max(prev.size, l.size) {
			cur.Text += "\n" + text
			cur.BBox = cur.BBox.Union(box)
		} else {
			if cur != nil {
				blocks = append(blocks, *cur)
			}
			cur = &types.TextBlock{BBox: box, Text: text}
		}
		prev = l
	}
	if cur != nil {
		blocks = append(blocks, *cur)
	}

	sort.SliceStable(blocks, func(i, j int) bool {
		if blocks[i].BBox.Y0 != blocks[j].BBox.Y0 {
			return blocks[i].BBox.Y0 < blocks[j].BBox.Y0
		}
		return blocks[i].BBox.X0 < blocks[j].BBox.X0
	})
	return blocks
}

func (l *line) add(f fragment) {
	l.frags = append(l.frags, f)
	l.top = min(l.top, f.Top)
	l.x0 = min(l.x0, f.X0)
	l.x1 = max(l.x1, f.X1)
	l.size = max(l.size, f.Size)
}

// text joins the line's fragments left to right. Whitespace-only fragments
// and horizontal gaps wider than wordGap become a single space.
func (l *line) text() string {
	frags := l.frags
	sort.SliceStable(frags, func(i, j int) bool { return frags[i].X0 < frags[j].X0 })

	var b strings.Builder
	space := false
	var lastX1 float64
	for i, f := range frags {
		if strings.TrimSpace(f.Text) == "" {
			space = true
			continue
		}
		if b.Len() > 0 && (space || (i > 0 && f.X0-lastX1 > wordGap*f.Size)) {
			b.WriteByte(' ')
		}
		b.WriteString(f.Text)
		space = false
		lastX1 = max(lastX1, f.X1)
	}
	return cleanText(b.String())
}

// cleanText applies NFKC folding (ligatures, full-width forms) and trims
// the result.
func cleanText(s string) string {
	return strings.TrimSpace(norm.NFKC.String(s))
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
