// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/pdiddy/pdfconv/internal/container"
)

// DefaultMarkitdownImage reads a document on stdin and writes Markdown on
// stdout.
const DefaultMarkitdownImage = "markitdown:latest"

// MarkitdownConverter pipes the PDF through the markitdown container
// image. It produces no images and no metadata.
type MarkitdownConverter struct {
	runtime container.Runtime
	image   string
}

// NewMarkitdownConverter checks that image exists in rt. An empty image
// means DefaultMarkitdownImage.
func NewMarkitdownConverter(ctx context.Context, rt container.Runtime, image string) (*MarkitdownConverter, error) {
	if image == "" {
		image = DefaultMarkitdownImage
	}
	if err := rt.ImageExists(ctx, image); err != nil {
		return nil, fmt.Errorf("markitdown image not available in %s: %w", rt.Name(), err)
	}
	return &MarkitdownConverter{runtime: rt, image: image}, nil
}

// Convert implements Converter.
func (m *MarkitdownConverter) Convert(ctx context.Context, paths Paths) (Result, error) {
	f, err := os.Open(paths.Input)
	if err != nil {
		return Result{}, fmt.Errorf("opening PDF %s: %w", paths.Input, err)
	}
	defer f.Close()

	var out bytes.Buffer
	if err := m.runtime.Run(ctx, container.Spec{Image: m.image, Stdin: f, Stdout: &out}); err != nil {
		return Result{}, fmt.Errorf("converting %s with markitdown: %w", paths.Input, err)
	}
	if out.Len() == 0 {
		return Result{}, fmt.Errorf("markitdown produced empty output for %s", paths.Input)
	}
	return Result{Markdown: out.String()}, nil
}
