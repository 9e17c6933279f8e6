// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package loader opens a PDF and returns a types.Document: page geometry,
// text blocks ordered top-to-bottom then left-to-right, embedded raster
// images with their bounding boxes, and the document information
// dictionary.
//
// ledongthuc/pdf is always used for geometry, metadata and text. unipdf is
// tried first for images, since it keeps JPEG streams intact, and for text
// when a license key is configured; a unipdf failure falls back to
// ledongthuc.
package loader

import (
	"context"
	"errors"
	"fmt"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"github.com/pdiddy/pdfconv/internal/logging"
	"github.com/pdiddy/pdfconv/pkg/types"
)

// ErrNoPages is returned for a PDF without pages.
var ErrNoPages = errors.New("pdf has no pages")

// Loader turns a PDF file into a Document.
type Loader interface {
	Load(ctx context.Context, path string) (*types.Document, error)
}

// Options configures a PDF loader.
type Options struct {
	// Images enables raster image extraction.
	Images bool

	// LicenseKey is a unipdf metered key. Without it unipdf text
	// extraction is skipped.
	LicenseKey string

	Logger *zap.Logger
}

// PDF is the library-backed Loader.
type PDF struct {
	opts Options
	log  *zap.Logger
}

// New returns a PDF loader.
func New(opts Options) *PDF {
	return &PDF{opts: opts, log: logging.OrNop(opts.Logger)}
}

// Load reads path. Library panics on malformed input are returned as
// errors.
func (l *PDF) Load(ctx context.Context, path string) (doc *types.Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, fmt.Errorf("reading %s: malformed pdf: %v", path, r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	doc, err = nativeDoc(r, path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	l.log.Debug("pdf opened", zap.String("path", path), zap.Int("pages", len(doc.Pages)))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if l.opts.LicenseKey != "" {
		if err := l.licensedText(path, doc.Pages); err != nil {
			l.log.Warn("unipdf text extraction failed, using ledongthuc text", zap.Error(err))
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if l.opts.Images {
		if err := l.unidocImages(path, doc.Pages); err != nil {
			l.log.Info("unipdf image extraction failed, using ledongthuc", zap.Error(err))
			nativeImages(r, doc.Pages, l.log)
		}
	}

	return doc, nil
}

func (l *PDF) licensedText(path string, pages []types.Page) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unipdf: %v", r)
		}
	}()
	if err := setLicense(l.opts.LicenseKey); err != nil {
		return err
	}
	return unidocText(path, pages)
}

func (l *PDF) unidocImages(path string, pages []types.Page) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unipdf: %v", r)
		}
	}()
	return unidocImages(path, pages, l.log)
}
