// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package docx renders a Markdown item sequence as a Word document:
// headings get the Heading1 and Heading2 styles, images are placed inline,
// and page separators become page breaks.
package docx

import (
	"fmt"

	"baliance.com/gooxml/common"
	"baliance.com/gooxml/document"
	"baliance.com/gooxml/measurement"

	"github.com/pdiddy/pdfconv/pkg/types"
)

// maxImageWidth is the printable width of a Letter page with 1in margins.
const maxImageWidth = 6.5 * measurement.Inch

// Write renders items into a new document saved at path. Image items must
// point at files that exist until Write returns.
func Write(items []types.Item, path string) error {
	doc := document.New()
	for _, it := range items {
		switch it.Kind {
		case types.ItemHeading:
			p := doc.AddParagraph()
			p.SetStyle(headingStyle(it.Level))
			p.AddRun().AddText(it.Text)
		case types.ItemBody:
			if it.Text == "" {
				continue
			}
			doc.AddParagraph().AddRun().AddText(it.Text)
		case types.ItemImage:
			if err := addImage(doc, it.Image); err != nil {
				return err
			}
		case types.ItemSeparator:
			doc.AddParagraph().AddRun().AddPageBreak()
		}
	}

	if err := doc.SaveToFile(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

func headingStyle(l types.HeadingLevel) string {
	if l == types.H1 {
		return "Heading1"
	}
	return "Heading2"
}

func addImage(doc *document.Document, rec *types.ImageRecord) error {
	img, err := common.ImageFromFile(rec.Path)
	if err != nil {
		return fmt.Errorf("loading image %s: %w", rec.Path, err)
	}
	ref, err := doc.AddImage(img)
	if err != nil {
		return fmt.Errorf("adding image %s: %w", rec.Filename, err)
	}
	inl, err := doc.AddParagraph().AddRun().AddDrawingInline(ref)
	if err != nil {
		return fmt.Errorf("placing image %s: %w", rec.Filename, err)
	}
	w, h := imageSize(rec.BBox, img.Size.X, img.Size.Y)
	inl.SetSize(w, h)
	return nil
}

// imageSize uses the size the image had on the PDF page, or its pixel size
// at 72 dpi, scaled down to fit the printable width.
func imageSize(box types.BBox, px, py int) (measurement.Distance, measurement.Distance) {
	w, h := box.Width(), box.Height()
	if w <= 0 || h <= 0 {
		w, h = float64(px), float64(py)
	}
	if w <= 0 || h <= 0 {
		w, h = 1, 1
	}
	dw := measurement.Distance(w) * measurement.Point
	dh := measurement.Distance(h) * measurement.Point
	if dw > maxImageWidth {
		dh = dh * maxImageWidth / dw
		dw = maxImageWidth
	}
	return dw, dh
}
