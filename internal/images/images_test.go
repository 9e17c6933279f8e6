// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package images

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pdiddy/pdfconv/pkg/types"
)

func testImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.Set(1, 1, color.RGBA{R: 200, A: 255})
	return img
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage()))
	return buf.Bytes()
}

func jpegBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, testImage(), nil))
	return buf.Bytes()
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "image_p1_1.png", Filename(0, 0, "png"))
	assert.Equal(t, "image_p3_12.jpeg", Filename(2, 11, "jpeg"))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		want    string
		wantErr bool
	}{
		{name: "png", data: pngBytes(t), want: "png"},
		{name: "jpeg", data: jpegBytes(t), want: "jpeg"},
		{name: "garbage", data: []byte("not an image"), wantErr: true},
		{name: "empty", data: nil, wantErr: true},
		{name: "truncated png header", data: pngBytes(t)[:10], wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Validate(tt.data)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtract(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "doc_images")
	pages := []types.Page{
		{Index: 0, Images: []types.RawImage{
			{Page: 0, Index: 0, Data: jpegBytes(t), Ext: "jpeg", BBox: types.BBox{Y0: 50, Y1: 80}},
			{Page: 0, Index: 1, Data: []byte("broken"), Ext: "png"},
			{Page: 0, Index: 2, Data: pngBytes(t)},
		}},
		{Index: 1},
		{Index: 2, Images: []types.RawImage{
			{Page: 2, Index: 0, Data: pngBytes(t), Ext: "png", BBox: types.BBox{Y0: 10}},
		}},
	}

	e := &Extractor{Dir: dir}
	recs, err := e.Extract(pages)
	require.NoError(t, err)
	require.Len(t, recs, 3)

	assert.Equal(t, "image_p1_1.jpeg", recs[0].Filename)
	assert.Equal(t, 50.0, recs[0].Y0)
	assert.Equal(t, "image_p1_3.png", recs[1].Filename, "extension taken from decoded format")
	assert.Equal(t, "image_p3_1.png", recs[2].Filename)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)

	pattern := regexp.MustCompile(`^image_p\d+_\d+\.[a-z]+$`)
	seen := map[string]bool{}
	for _, r := range recs {
		assert.Regexp(t, pattern, r.Filename)
		assert.False(t, seen[r.Filename], "duplicate %s", r.Filename)
		seen[r.Filename] = true

		data, err := os.ReadFile(r.Path)
		require.NoError(t, err)
		assert.Equal(t, r.Data, data)
	}
}

func TestExtractLogsSkippedImages(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	e := &Extractor{Dir: filepath.Join(t.TempDir(), "doc_images"), Logger: zap.New(core)}

	recs, err := e.Extract([]types.Page{{Images: []types.RawImage{
		{Page: 0, Index: 0, Data: []byte("broken"), Ext: "png"},
		{Page: 0, Index: 1, Data: pngBytes(t), Ext: "png"},
	}}})
	require.NoError(t, err)
	require.Len(t, recs, 1)

	assert.Equal(t, 1, logs.FilterMessage("skipping invalid image").Len())
	assert.Equal(t, 1, logs.FilterMessage("image written").Len())
}

func TestExtractResetsDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "doc_images")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	stale := filepath.Join(dir, "image_p9_9.png")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0o644))

	e := &Extractor{Dir: dir}
	recs, err := e.Extract(nil)
	require.NoError(t, err)
	assert.Empty(t, recs)

	assert.NoFileExists(t, stale)
	assert.DirExists(t, dir)
}

func TestDirFor(t *testing.T) {
	assert.Equal(t, filepath.Join("out", "report_images"), DirFor("out", "report"))
}
