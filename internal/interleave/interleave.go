// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package interleave merges text lines and extracted images into one
// sequence by approximate vertical position.
//
// Text lines carry no coordinates of their own, so a running cursor stands
// in for the line position: it starts at zero on each page and grows by a
// fixed line height per emitted line. When the cursor passes the page
// height the walk moves on to the next page and the cursor resets to zero.
// Placement is therefore an approximation and images can land a few lines
// away from where they appear in the PDF.
package interleave

import (
	"math"
	"sort"

	"github.com/pdiddy/pdfconv/pkg/types"
)

// DefaultLineHeight is the cursor advance per emitted line, in PDF units.
const DefaultLineHeight = 30.0

// Interleave returns lines with images inserted before the first line whose
// cursor position reaches the image's Y0. Leaving a page flushes the rest
// of its images. Images on pages the text never
// reaches, or below the last line, are appended at the end in page then Y0
// order. A lineHeight <= 0 selects DefaultLineHeight.
func Interleave(lines []types.Item, images []types.ImageRecord, pageHeights []float64, lineHeight float64) []types.Item {
	if lineHeight <= 0 {
		lineHeight = DefaultLineHeight
	}

	pending := byPage(images)
	out := make([]types.Item, 0, len(lines)+len(images))

	flush := func(page int, cursor float64) {
		imgs := pending[page]
		n := 0
		for n < len(imgs) && imgs[n].Y0 <= cursor {
			out = append(out, types.ImageItem(imgs[n]))
			n++
		}
		pending[page] = imgs[n:]
	}

	page := 0
	cursor := 0.0
	for _, line := range lines {
		if page+1 < len(pageHeights) && cursor > pageHeights[page] {
			flush(page, math.Inf(1))
			page++
			cursor = 0
		}
		flush(page, cursor)
		out = append(out, line)
		cursor += lineHeight
	}

	pages := make([]int, 0, len(pending))
	for p := range pending {
		pages = append(pages, p)
	}
	sort.Ints(pages)
	for _, p := range pages {
		for _, img := range pending[p] {
			out = append(out, types.ImageItem(img))
		}
	}
	return out
}

// byPage groups images by page, each group sorted by Y0. Images with equal
// Y0 keep their extraction order.
func byPage(images []types.ImageRecord) map[int][]types.ImageRecord {
	m := make(map[int][]types.ImageRecord)
	for _, img := range images {
		m[img.Page] = append(m[img.Page], img)
	}
	for _, imgs := range m {
		sort.SliceStable(imgs, func(i, j int) bool { return imgs[i].Y0 < imgs[j].Y0 })
	}
	return m
}
