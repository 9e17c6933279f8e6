// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package images validates the raster images a loader yields and writes the
// good ones to an images directory. Extraction is best-effort: an image that
// does not decode is logged and skipped. Filesystem errors abort the run.
package images

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder

	"github.com/pdiddy/pdfconv/internal/logging"
	"github.com/pdiddy/pdfconv/pkg/types"
)

// DirSuffix is appended to the document base name to form the images
// directory name, e.g. "report_images".
const DirSuffix = "_images"

// Filename returns the output name for the index-th image on page, both
// 0-based: image_p<page+1>_<index+1>.<ext>.
func Filename(page, index int, ext string) string {
	return fmt.Sprintf("image_p%d_%d.%s", page+1, index+1, ext)
}

// DirFor returns the images directory for a document written to outDir
// under base name.
func DirFor(outDir, base string) string {
	return filepath.Join(outDir, base+DirSuffix)
}

// Extractor writes validated images into Dir.
type Extractor struct {
	Dir    string
	Logger *zap.Logger
}

// Reset removes Dir and everything in it, then recreates it empty.
func (e *Extractor) Reset() error {
	if err := os.RemoveAll(e.Dir); err != nil {
		return fmt.Errorf("removing images directory %s: %w", e.Dir, err)
	}
	if err := os.MkdirAll(e.Dir, 0o755); err != nil {
		return fmt.Errorf("creating images directory %s: %w", e.Dir, err)
	}
	return nil
}

// Extract resets Dir and writes every image of pages that decodes. The
// returned records are in page order, then extraction order.
func (e *Extractor) Extract(pages []types.Page) ([]types.ImageRecord, error) {
	if err := e.Reset(); err != nil {
		return nil, err
	}

	var records []types.ImageRecord
	for _, p := range pages {
		for _, raw := range p.Images {
			rec, ok, err := e.write(raw)
			if err != nil {
				return records, err
			}
			if ok {
				records = append(records, rec)
			}
		}
	}
	return records, nil
}

func (e *Extractor) write(raw types.RawImage) (types.ImageRecord, bool, error) {
	log := logging.OrNop(e.Logger)

	format, err := Validate(raw.Data)
	if err != nil {
		log.Warn("skipping invalid image",
			zap.Int("page", raw.Page+1), zap.Int("index", raw.Index+1), zap.Error(err))
		return types.ImageRecord{}, false, nil
	}

	ext := raw.Ext
	if ext == "" {
		ext = format
	}
	name := Filename(raw.Page, raw.Index, ext)
	path := filepath.Join(e.Dir, name)
	if err := os.WriteFile(path, raw.Data, 0o644); err != nil {
		return types.ImageRecord{}, false, fmt.Errorf("writing image %s: %w", path, err)
	}
	log.Debug("image written", zap.String("file", name), zap.Int("bytes", len(raw.Data)))

	return types.ImageRecord{
		Page:     raw.Page,
		Index:    raw.Index,
		Data:     raw.Data,
		Ext:      ext,
		BBox:     raw.BBox,
		Y0:       raw.BBox.Y0,
		Filename: name,
		Path:     path,
	}, true, nil
}

// Validate decodes the image header and returns the detected format name
// ("jpeg", "png", ...).
func Validate(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty image data")
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decoding image: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return "", fmt.Errorf("image has no pixels (%dx%d)", cfg.Width, cfg.Height)
	}
	return strings.ToLower(format), nil
}
