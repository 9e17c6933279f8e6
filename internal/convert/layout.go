// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/pdiddy/pdfconv/internal/classify"
	"github.com/pdiddy/pdfconv/internal/images"
	"github.com/pdiddy/pdfconv/internal/interleave"
	"github.com/pdiddy/pdfconv/internal/loader"
	"github.com/pdiddy/pdfconv/internal/logging"
	"github.com/pdiddy/pdfconv/internal/normalize"
	"github.com/pdiddy/pdfconv/pkg/types"
)

// Layout reconstructs the page layout: blocks in reading order, headings
// by classifier, images placed by approximate vertical position, and the
// result normalized.
type Layout struct {
	Loader     loader.Loader
	Classifier classify.Classifier

	// LineHeight is the interleaver cursor step; zero means the default.
	LineHeight float64

	// Images enables extraction into the images directory.
	Images bool

	Logger *zap.Logger
}

// Convert implements Converter.
func (l *Layout) Convert(ctx context.Context, paths Paths) (Result, error) {
	log := logging.OrNop(l.Logger)

	doc, err := l.Loader.Load(ctx, paths.Input)
	if err != nil {
		return Result{}, err
	}

	var recs []types.ImageRecord
	ex := &images.Extractor{Dir: paths.Images(), Logger: log}
	if l.Images {
		if recs, err = ex.Extract(doc.Pages); err != nil {
			return Result{}, err
		}
	} else if err := os.RemoveAll(ex.Dir); err != nil {
		return Result{}, fmt.Errorf("removing images directory %s: %w", ex.Dir, err)
	}

	c := l.Classifier
	if c == nil {
		c = classify.Case{}
	}
	items := BuildItems(doc, c)
	merged := interleave.Interleave(items, recs, doc.PageHeights(), l.LineHeight)
	log.Debug("layout built",
		zap.Int("pages", len(doc.Pages)), zap.Int("lines", len(items)), zap.Int("images", len(recs)))

	return Result{
		Markdown: normalize.Markdown(Render(merged, paths.ImagesRel())),
		Metadata: doc.Metadata,
		Images:   len(recs),
	}, nil
}
