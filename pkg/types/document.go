// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the pdfconv pipeline:
// the loaded document (pages, text blocks, raw images), the image records
// written by the extractor, and the Markdown item sequence produced by the
// classifier and interleaver.
package types

// BBox is a rectangle in page space. The origin is the top-left corner of
// the page and Y grows downward, so Y0 is the top edge.
type BBox struct {
	X0 float64 `json:"x0" yaml:"x0"`
	Y0 float64 `json:"y0" yaml:"y0"`
	X1 float64 `json:"x1" yaml:"x1"`
	Y1 float64 `json:"y1" yaml:"y1"`
}

// Width returns the horizontal extent of the box.
func (b BBox) Width() float64 { return b.X1 - b.X0 }

// Height returns the vertical extent of the box.
func (b BBox) Height() float64 { return b.Y1 - b.Y0 }

// Union returns the smallest box containing both b and o.
func (b BBox) Union(o BBox) BBox {
	return BBox{
		X0: min(b.X0, o.X0),
		Y0: min(b.Y0, o.Y0),
		X1: max(b.X1, o.X1),
		Y1: max(b.Y1, o.Y1),
	}
}

// TextBlock is a run of text lines the loader grouped together, with the
// box enclosing them.
type TextBlock struct {
	BBox BBox   `json:"bbox" yaml:"bbox"`
	Text string `json:"text" yaml:"text"`
}

// RawImage is an embedded raster image as yielded by the loader, before it
// has been validated or written anywhere.
type RawImage struct {
	// Page is the 0-based page index.
	Page int `json:"page" yaml:"page"`

	// Index is the 0-based position of the image among the page's images.
	Index int `json:"index" yaml:"index"`

	// Data is the encoded image file content (JPEG, PNG, ...).
	Data []byte `json:"-" yaml:"-"`

	// Ext is the file extension without the dot (e.g. "jpeg", "png").
	Ext string `json:"ext" yaml:"ext"`

	BBox BBox `json:"bbox" yaml:"bbox"`
}

// Page is one page of a loaded document.
type Page struct {
	// Index is the 0-based page number.
	Index int `json:"index" yaml:"index"`

	// Width and Height are in PDF user-space units.
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`

	// Blocks are ordered top-to-bottom, then left-to-right.
	Blocks []TextBlock `json:"blocks" yaml:"blocks"`

	Images []RawImage `json:"images,omitempty" yaml:"images,omitempty"`
}

// Text joins the page's block texts with newlines.
func (p Page) Text() string {
	var n int
	for _, b := range p.Blocks {
		n += len(b.Text) + 1
	}
	buf := make([]byte, 0, n)
	for i, b := range p.Blocks {
		if i > 0 {
			buf = append(buf, '\n')
		}
		buf = append(buf, b.Text...)
	}
	return string(buf)
}

// Metadata holds the document information dictionary.
type Metadata struct {
	Title        string `json:"title,omitempty" yaml:"title,omitempty"`
	Author       string `json:"author,omitempty" yaml:"author,omitempty"`
	Subject      string `json:"subject,omitempty" yaml:"subject,omitempty"`
	Keywords     string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	Creator      string `json:"creator,omitempty" yaml:"creator,omitempty"`
	Producer     string `json:"producer,omitempty" yaml:"producer,omitempty"`
	CreationDate string `json:"creation_date,omitempty" yaml:"creation_date,omitempty"`
	ModDate      string `json:"mod_date,omitempty" yaml:"mod_date,omitempty"`
	PageCount    int    `json:"page_count" yaml:"page_count"`
}

// Document is a loaded PDF.
type Document struct {
	// Source is the path the document was loaded from.
	Source   string   `json:"source" yaml:"source"`
	Pages    []Page   `json:"pages" yaml:"pages"`
	Metadata Metadata `json:"metadata" yaml:"metadata"`
}

// PageHeights returns the height of every page, in page order.
func (d *Document) PageHeights() []float64 {
	heights := make([]float64, len(d.Pages))
	for i, p := range d.Pages {
		heights[i] = p.Height
	}
	return heights
}

// ImageRecord is an image that passed validation and was written to disk.
// Records are created by the image extractor and never modified afterwards.
type ImageRecord struct {
	Page  int    `json:"page" yaml:"page"`
	Index int    `json:"index" yaml:"index"`
	Data  []byte `json:"-" yaml:"-"`
	Ext   string `json:"ext" yaml:"ext"`
	BBox  BBox   `json:"bbox" yaml:"bbox"`

	// Y0 is the vertical position used for interleaving (BBox.Y0).
	Y0 float64 `json:"y0" yaml:"y0"`

	// Filename is the base name, e.g. "image_p1_2.png".
	Filename string `json:"filename" yaml:"filename"`

	// Path is where the file was written.
	Path string `json:"path" yaml:"path"`
}
