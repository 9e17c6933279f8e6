// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package loader

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"github.com/pdiddy/pdfconv/pkg/types"
)

// US Letter, used when a page has no usable MediaBox.
const (
	defaultPageWidth  = 612.0
	defaultPageHeight = 792.0
)

// nativeDoc loads page geometry, text and metadata with ledongthuc/pdf.
func nativeDoc(r *pdf.Reader, path string) (*types.Document, error) {
	n := r.NumPage()
	if n == 0 {
		return nil, ErrNoPages
	}

	doc := &types.Document{Source: path, Metadata: nativeMetadata(r)}
	doc.Metadata.PageCount = n

	for i := 1; i <= n; i++ {
		p := r.Page(i)
		page := types.Page{Index: i - 1, Width: defaultPageWidth, Height: defaultPageHeight}
		if p.V.IsNull() {
			doc.Pages = append(doc.Pages, page)
			continue
		}
		page.Width, page.Height = mediaBox(p)
		page.Blocks = groupBlocks(nativeFragments(p, page.Height))
		doc.Pages = append(doc.Pages, page)
	}
	return doc, nil
}

func nativeFragments(p pdf.Page, pageHeight float64) []fragment {
	texts := p.Content().Text
	frags := make([]fragment, 0, len(texts))
	for _, t := range texts {
		frags = append(frags, fromPDF(t.X, t.X+t.W, t.Y, t.Y+t.FontSize, t.FontSize, t.S, pageHeight))
	}
	return frags
}

// mediaBox returns the page width and height, following the Parent chain
// when the box is inherited.
func mediaBox(p pdf.Page) (float64, float64) {
	box := inherited(p.V, "MediaBox")
	if box.Kind() != pdf.Array || box.Len() < 4 {
		return defaultPageWidth, defaultPageHeight
	}
	w := box.Index(2).Float64() - box.Index(0).Float64()
	h := box.Index(3).Float64() - box.Index(1).Float64()
	if w <= 0 || h <= 0 {
		return defaultPageWidth, defaultPageHeight
	}
	return w, h
}

func inherited(v pdf.Value, key string) pdf.Value {
	for depth := 0; depth < 32 && !v.IsNull(); depth++ {
		if val := v.Key(key); !val.IsNull() {
			return val
		}
		v = v.Key("Parent")
	}
	return pdf.Value{}
}

func nativeMetadata(r *pdf.Reader) types.Metadata {
	info := r.Trailer().Key("Info")
	if info.IsNull() {
		return types.Metadata{}
	}
	text := func(key string) string { return cleanText(info.Key(key).Text()) }
	return types.Metadata{
		Title:        text("Title"),
		Author:       text("Author"),
		Subject:      text("Subject"),
		Keywords:     text("Keywords"),
		Creator:      text("Creator"),
		Producer:     text("Producer"),
		CreationDate: text("CreationDate"),
		ModDate:      text("ModDate"),
	}
}

// matrix is a PDF transformation matrix [a b c d e f].
type matrix [6]float64

var identity = matrix{1, 0, 0, 1, 0, 0}

// mul returns m × n, applying m first.
func (m matrix) mul(n matrix) matrix {
	return matrix{
		m[0]*n[0] + m[1]*n[2],
		m[0]*n[1] + m[1]*n[3],
		m[2]*n[0] + m[3]*n[2],
		m[2]*n[1] + m[3]*n[3],
		m[4]*n[0] + m[5]*n[2] + n[4],
		m[4]*n[1] + m[5]*n[3] + n[5],
	}
}

// unitBox maps the unit square through m and returns its bounds in PDF
// space.
func (m matrix) unitBox() (x0, y0, x1, y1 float64) {
	xs := [4]float64{m[4], m[0] + m[4], m[2] + m[4], m[0] + m[2] + m[4]}
	ys := [4]float64{m[5], m[1] + m[5], m[3] + m[5], m[1] + m[3] + m[5]}
	x0, x1 = xs[0], xs[0]
	y0, y1 = ys[0], ys[0]
	for i := 1; i < 4; i++ {
		x0, x1 = min(x0, xs[i]), max(x1, xs[i])
		y0, y1 = min(y0, ys[i]), max(y1, ys[i])
	}
	return x0, y0, x1, y1
}

// placedBox is the top-left origin box of an image painted with CTM m on a
// page of the given height. Flipped and rotated placements are covered by
// mapping all four corners.
func placedBox(m matrix, pageHeight float64) types.BBox {
	x0, y0, x1, y1 := m.unitBox()
	return types.BBox{X0: x0, Y0: pageHeight - y1, X1: x1, Y1: pageHeight - y0}
}

// nativeImages walks every page's content stream, tracking the current
// transformation matrix, and attaches the image XObjects painted with Do.
// Only unfiltered and Flate streams are supported: ledongthuc/pdf decodes
// every stream it reads and has no DCT decoder. Anything else is logged and
// skipped, as is a page whose content stream cannot be read.
func nativeImages(r *pdf.Reader, pages []types.Page, log *zap.Logger) {
	for i := range pages {
		p := r.Page(i + 1)
		if p.V.IsNull() {
			continue
		}
		imgs, err := nativePageImages(p, i, pages[i].Height, log)
		if err != nil {
			log.Warn("skipping page images", zap.Int("page", i+1), zap.Error(err))
			continue
		}
		pages[i].Images = imgs
	}
}

func nativePageImages(p pdf.Page, pageIndex int, pageHeight float64, log *zap.Logger) (imgs []types.RawImage, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("interpreting content stream: %v", r)
		}
	}()

	xobjects := p.Resources().Key("XObject")
	if xobjects.IsNull() {
		return nil, nil
	}

	var placements []placement
	ctm := identity
	var saved []matrix
	visit := func(stk *pdf.Stack, op string) {
		switch op {
		case "q":
			saved = append(saved, ctm)
		case "Q":
			if n := len(saved); n > 0 {
				ctm = saved[n-1]
				saved = saved[:n-1]
			}
		case "cm":
			if stk.Len() < 6 {
				return
			}
			var m matrix
			for k := 5; k >= 0; k-- {
				m[k] = stk.Pop().Float64()
			}
			ctm = m.mul(ctm)
		case "Do":
			if stk.Len() < 1 {
				return
			}
			placements = append(placements, placement{name: stk.Pop().Name(), ctm: ctm})
		}
	}

	contents := p.V.Key("Contents")
	if contents.Kind() == pdf.Array {
		for k := 0; k < contents.Len(); k++ {
			pdf.Interpret(contents.Index(k), visit)
		}
	} else {
		pdf.Interpret(contents, visit)
	}

	index := -1
	for _, pl := range placements {
		xobj := xobjects.Key(pl.name)
		if xobj.Key("Subtype").Name() != "Image" {
			continue
		}
		index++
		data, ext, err := nativeImageData(xobj)
		if err != nil {
			log.Warn("skipping image",
				zap.Int("page", pageIndex+1), zap.String("name", pl.name), zap.Error(err))
			continue
		}
		imgs = append(imgs, types.RawImage{
			Page:  pageIndex,
			Index: index,
			Data:  data,
			Ext:   ext,
			BBox:  placedBox(pl.ctm, pageHeight),
		})
	}
	return imgs, nil
}

type placement struct {
	name string
	ctm  matrix
}

// nativeImageData re-encodes the samples of an image XObject as PNG.
func nativeImageData(xobj pdf.Value) (data []byte, ext string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("reading image stream: %v", r)
		}
	}()

	if filter := filterName(xobj.Key("Filter")); filter != "" && filter != "FlateDecode" {
		return nil, "", fmt.Errorf("unsupported filter %s", filter)
	}

	samples, err := readAll(xobj)
	if err != nil {
		return nil, "", err
	}
	img, err := decodeSamples(xobj, samples)
	if err != nil {
		return nil, "", err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, "", fmt.Errorf("encoding png: %w", err)
	}
	return buf.Bytes(), "png", nil
}

func filterName(v pdf.Value) string {
	switch v.Kind() {
	case pdf.Name:
		return v.Name()
	case pdf.Array:
		if v.Len() == 1 {
			return v.Index(0).Name()
		}
		if v.Len() > 1 {
			return "chain"
		}
	}
	return ""
}

func readAll(v pdf.Value) ([]byte, error) {
	rc := v.Reader()
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("reading stream: %w", err)
	}
	return data, nil
}

// decodeSamples builds an image from 8-bit DeviceGray, DeviceRGB or
// DeviceCMYK samples.
func decodeSamples(xobj pdf.Value, samples []byte) (image.Image, error) {
	w := int(xobj.Key("Width").Int64())
	h := int(xobj.Key("Height").Int64())
	bpc := int(xobj.Key("BitsPerComponent").Int64())
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", w, h)
	}
	if bpc != 8 {
		return nil, fmt.Errorf("unsupported bits per component %d", bpc)
	}

	cs := xobj.Key("ColorSpace").Name()
	var comps int
	switch cs {
	case "DeviceGray":
		comps = 1
	case "DeviceRGB":
		comps = 3
	case "DeviceCMYK":
		comps = 4
	default:
		return nil, fmt.Errorf("unsupported color space %q", cs)
	}
	if len(samples) < w*h*comps {
		return nil, fmt.Errorf("short image data: %d bytes for %dx%dx%d", len(samples), w, h, comps)
	}

	rect := image.Rect(0, 0, w, h)
	switch comps {
	case 1:
		img := image.NewGray(rect)
		copy(img.Pix, samples[:w*h])
		return img, nil
	case 3:
		img := image.NewRGBA(rect)
		for i := 0; i < w*h; i++ {
			img.Pix[i*4] = samples[i*3]
			img.Pix[i*4+1] = samples[i*3+1]
			img.Pix[i*4+2] = samples[i*3+2]
			img.Pix[i*4+3] = 0xff
		}
		return img, nil
	default:
		img := image.NewCMYK(rect)
		copy(img.Pix, samples[:w*h*4])
		return img, nil
	}
}
