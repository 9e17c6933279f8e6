// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/pdiddy/pdfconv/internal/classify"
	"github.com/pdiddy/pdfconv/internal/docx"
	"github.com/pdiddy/pdfconv/internal/images"
	"github.com/pdiddy/pdfconv/internal/interleave"
	"github.com/pdiddy/pdfconv/internal/loader"
	"github.com/pdiddy/pdfconv/internal/logging"
	"github.com/pdiddy/pdfconv/pkg/types"
)

// Docx converts a PDF into a Word document through the same item sequence
// the layout Markdown uses. Images are staged in a temporary directory and
// embedded into the document.
type Docx struct {
	Loader     loader.Loader
	Classifier classify.Classifier
	LineHeight float64
	Images     bool
	Logger     *zap.Logger
}

// Write replaces paths.Docx() and prints a status line to w.
func (d *Docx) Write(ctx context.Context, paths Paths, w io.Writer) error {
	log := logging.OrNop(d.Logger)

	out := paths.Docx()
	if err := removeFile(out); err != nil {
		return err
	}
	if err := os.MkdirAll(paths.OutDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", paths.OutDir, err)
	}

	doc, err := d.Loader.Load(ctx, paths.Input)
	if err != nil {
		return fmt.Errorf("converting %s: %w", paths.Input, err)
	}

	var recs []types.ImageRecord
	if d.Images {
		staging, err := os.MkdirTemp("", "pdfconv-docx-*")
		if err != nil {
			return fmt.Errorf("creating image staging directory: %w", err)
		}
		defer os.RemoveAll(staging)

		ex := &images.Extractor{Dir: staging, Logger: log}
		if recs, err = ex.Extract(doc.Pages); err != nil {
			return err
		}
	}

	c := d.Classifier
	if c == nil {
		c = classify.Case{}
	}
	items := interleave.Interleave(BuildItems(doc, c), recs, doc.PageHeights(), d.LineHeight)
	if err := docx.Write(items, out); err != nil {
		return fmt.Errorf("converting %s: %w", paths.Input, err)
	}

	fmt.Fprintf(w, "Converted %s to %s\n", paths.Input, out)
	return nil
}
