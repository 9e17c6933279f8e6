// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package loader

import (
	"bytes"
	"fmt"
	"image/png"
	"os"
	"sync"

	"github.com/unidoc/unipdf/v3/common/license"
	"github.com/unidoc/unipdf/v3/contentstream"
	"github.com/unidoc/unipdf/v3/core"
	"github.com/unidoc/unipdf/v3/extractor"
	"github.com/unidoc/unipdf/v3/model"
	"go.uber.org/zap"

	"github.com/pdiddy/pdfconv/pkg/types"
)

var (
	licenseOnce sync.Once
	licenseErr  error
)

// setLicense registers the unipdf metered key once per process.
func setLicense(key string) error {
	licenseOnce.Do(func() {
		if err := license.SetMeteredKey(key); err != nil {
			licenseErr = fmt.Errorf("setting unidoc license: %w", err)
		}
	})
	return licenseErr
}

// unidocReader opens path with unipdf. The caller closes the file.
func unidocReader(path string) (*os.File, *model.PdfReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", path, err)
	}
	r, err := model.NewPdfReader(f)
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("reading %s with unipdf: %w", path, err)
	}
	return f, r, nil
}

// unidocText replaces the text blocks of pages with those built from the
// unipdf text marks. It fails as a whole so the caller can keep the
// ledongthuc blocks.
func unidocText(path string, pages []types.Page) error {
	f, r, err := unidocReader(path)
	if err != nil {
		return err
	}
	defer f.Close()

	n, err := r.GetNumPages()
	if err != nil {
		return fmt.Errorf("counting pages: %w", err)
	}
	if n != len(pages) {
		return fmt.Errorf("page count mismatch: unipdf %d, ledongthuc %d", n, len(pages))
	}

	blocks := make([][]types.TextBlock, n)
	for i := 0; i < n; i++ {
		page, err := r.GetPage(i + 1)
		if err != nil {
			return fmt.Errorf("page %d: %w", i+1, err)
		}
		ex, err := extractor.New(page)
		if err != nil {
			return fmt.Errorf("page %d: creating extractor: %w", i+1, err)
		}
		pt, _, _, err := ex.ExtractPageText()
		if err != nil {
			return fmt.Errorf("page %d: extracting text: %w", i+1, err)
		}

		h := pages[i].Height
		marks := pt.Marks().Elements()
		frags := make([]fragment, 0, len(marks))
		for _, m := range marks {
			frags = append(frags, fromPDF(m.BBox.Llx, m.BBox.Urx, m.BBox.Lly, m.BBox.Ury, m.BBox.Ury-m.BBox.Lly, m.Text, h))
		}
		blocks[i] = groupBlocks(frags)
	}

	for i := range pages {
		pages[i].Blocks = blocks[i]
	}
	return nil
}

// unidocImages attaches the images painted on every page. DCT images keep
// their original JPEG bytes; everything unipdf can decode is re-encoded as
// PNG.
func unidocImages(path string, pages []types.Page, log *zap.Logger) error {
	f, r, err := unidocReader(path)
	if err != nil {
		return err
	}
	defer f.Close()

	found := make([][]types.RawImage, len(pages))
	for i := range pages {
		page, err := r.GetPage(i + 1)
		if err != nil {
			return fmt.Errorf("page %d: %w", i+1, err)
		}
		imgs, err := unidocPageImages(page, i, pages[i].Height, log)
		if err != nil {
			return fmt.Errorf("page %d: %w", i+1, err)
		}
		found[i] = imgs
	}

	for i := range pages {
		pages[i].Images = found[i]
	}
	return nil
}

func unidocPageImages(page *model.PdfPage, pageIndex int, pageHeight float64, log *zap.Logger) ([]types.RawImage, error) {
	contents, err := page.GetAllContentStreams()
	if err != nil {
		return nil, fmt.Errorf("reading content streams: %w", err)
	}
	ops, err := contentstream.NewContentStreamParser(contents).Parse()
	if err != nil {
		return nil, fmt.Errorf("parsing content stream: %w", err)
	}

	var imgs []types.RawImage
	index := -1
	proc := contentstream.NewContentStreamProcessor(*ops)
	proc.AddHandler(contentstream.HandlerConditionEnumOperand, "Do",
		func(op *contentstream.ContentStreamOperation, gs contentstream.GraphicsState, resources *model.PdfPageResources) error {
			if len(op.Params) < 1 || resources == nil {
				return nil
			}
			name, ok := core.GetName(op.Params[0])
			if !ok {
				return nil
			}
			stream, xtype := resources.GetXObjectByName(*name)
			if stream == nil || xtype != model.XObjectTypeImage {
				return nil
			}
			index++

			data, ext, err := unidocImageData(stream)
			if err != nil {
				log.Warn("skipping image",
					zap.Int("page", pageIndex+1), zap.String("name", name.String()), zap.Error(err))
				return nil
			}

			ox, oy := gs.CTM.Transform(0, 0)
			ax, ay := gs.CTM.Transform(1, 0)
			cx, cy := gs.CTM.Transform(0, 1)
			ctm := matrix{ax - ox, ay - oy, cx - ox, cy - oy, ox, oy}
			imgs = append(imgs, types.RawImage{
				Page:  pageIndex,
				Index: index,
				Data:  data,
				Ext:   ext,
				BBox:  placedBox(ctm, pageHeight),
			})
			return nil
		})
	if err := proc.Process(page.Resources); err != nil {
		return nil, fmt.Errorf("processing content stream: %w", err)
	}
	return imgs, nil
}

func unidocImageData(stream *core.PdfObjectStream) ([]byte, string, error) {
	ximg, err := model.NewXObjectImageFromStream(stream)
	if err != nil {
		return nil, "", fmt.Errorf("loading image xobject: %w", err)
	}
	if ximg.Filter != nil {
		switch ximg.Filter.GetFilterName() {
		case core.StreamEncodingFilterNameDCT:
			return stream.Stream, "jpeg", nil
		case core.StreamEncodingFilterNameJPX:
			return stream.Stream, "jp2", nil
		}
	}

	img, err := ximg.ToImage()
	if err != nil {
		return nil, "", fmt.Errorf("decoding image: %w", err)
	}
	goImg, err := img.ToGoImage()
	if err != nil {
		return nil, "", fmt.Errorf("converting image: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, goImg); err != nil {
		return nil, "", fmt.Errorf("encoding png: %w", err)
	}
	return buf.Bytes(), "png", nil
}
