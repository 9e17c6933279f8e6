// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/pdiddy/pdfconv/internal/images"
	"github.com/pdiddy/pdfconv/internal/loader"
	"github.com/pdiddy/pdfconv/pkg/types"
)

// ExtractImages writes every valid image of the PDF into paths.Images(),
// replacing the directory, and prints one line per image to w.
func ExtractImages(ctx context.Context, l loader.Loader, paths Paths, w io.Writer, log *zap.Logger) ([]types.ImageRecord, error) {
	doc, err := l.Load(ctx, paths.Input)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", paths.Input, err)
	}

	ex := &images.Extractor{Dir: paths.Images(), Logger: log}
	recs, err := ex.Extract(doc.Pages)
	if err != nil {
		return nil, err
	}

	for _, r := range recs {
		fmt.Fprintf(w, "extracted: %s (page %d, y0 %.1f)\n", r.Filename, r.Page+1, r.Y0)
	}
	fmt.Fprintf(w, "images: %d written to %s\n", len(recs), ex.Dir)
	return recs, nil
}
