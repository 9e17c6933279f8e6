// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package loader

import (
	"bytes"
	"compress/zlib"
	"image"
	"image/color"
	"image/jpeg"
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pdiddy/pdfconv/internal/images"
	"github.com/pdiddy/pdfconv/pkg/types"
)

const rgbDict = "/Width 2 /Height 2 /ColorSpace /DeviceRGB /BitsPerComponent 8"

var rgbSamples = []byte{0xff, 0, 0, 0, 0xff, 0, 0, 0, 0xff, 0xff, 0xff, 0xff}

// loadPages reads page geometry with ledongthuc, leaving images empty.
func loadPages(t *testing.T, path string) (*pdf.Reader, []types.Page) {
	t.Helper()
	f, r, err := pdf.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	doc, err := nativeDoc(r, path)
	require.NoError(t, err)
	return r, doc.Pages
}

func nativeFirstPage(t *testing.T, path string, log *zap.Logger) []types.RawImage {
	t.Helper()
	r, pages := loadPages(t, path)
	nativeImages(r, pages, log)
	return pages[0].Images
}

func unidocFirstPage(t *testing.T, path string) []types.RawImage {
	t.Helper()
	_, pages := loadPages(t, path)
	require.NoError(t, unidocImages(path, pages, zap.NewNop()))
	return pages[0].Images
}

func TestImagePlacement(t *testing.T) {
	// Every placement covers PDF x 72..172, y 600..650 on a 792pt page.
	want := types.BBox{X0: 72, Y0: 142, X1: 172, Y1: 192}

	placements := []struct {
		name string
		cm   string
	}{
		{name: "upright", cm: "100 0 0 50 72 600"},
		{name: "flipped vertically", cm: "100 0 0 -50 72 650"},
		{name: "flipped horizontally", cm: "-100 0 0 50 172 600"},
		{name: "rotated 90 degrees", cm: "0 50 -100 0 172 600"},
	}
	backends := []struct {
		name string
		load func(t *testing.T, path string) []types.RawImage
	}{
		{name: "unipdf", load: unidocFirstPage},
		{name: "ledongthuc", load: func(t *testing.T, path string) []types.RawImage {
			return nativeFirstPage(t, path, zap.NewNop())
		}},
	}

	for _, b := range backends {
		for _, p := range placements {
			t.Run(b.name+"/"+p.name, func(t *testing.T) {
				path := writeImagePDF(t, testImage{dict: rgbDict, data: rgbSamples, cm: p.cm})

				got := b.load(t, path)
				require.Len(t, got, 1)
				assert.InDelta(t, want.X0, got[0].BBox.X0, 0.01)
				assert.InDelta(t, want.Y0, got[0].BBox.Y0, 0.01)
				assert.InDelta(t, want.X1, got[0].BBox.X1, 0.01)
				assert.InDelta(t, want.Y1, got[0].BBox.Y1, 0.01)
			})
		}
	}
}

func TestNativeImages(t *testing.T) {
	tests := []struct {
		name  string
		dict  string
		data  []byte
		check func(t *testing.T, img image.Image)
	}{
		{
			name: "raw rgb",
			dict: rgbDict,
			data: rgbSamples,
			check: func(t *testing.T, img image.Image) {
				r, g, b, _ := img.At(0, 0).RGBA()
				assert.Equal(t, [3]uint32{0xffff, 0, 0}, [3]uint32{r, g, b})
			},
		},
		{
			name: "flate rgb",
			dict: rgbDict + " /Filter /FlateDecode",
			data: deflate(t, rgbSamples),
			check: func(t *testing.T, img image.Image) {
				r, g, b, _ := img.At(1, 0).RGBA()
				assert.Equal(t, [3]uint32{0, 0xffff, 0}, [3]uint32{r, g, b})
			},
		},
		{
			name: "gray",
			dict: "/Width 2 /Height 2 /ColorSpace /DeviceGray /BitsPerComponent 8",
			data: []byte{0x00, 0x40, 0x80, 0xff},
			check: func(t *testing.T, img image.Image) {
				assert.Equal(t, color.Gray{Y: 0x80}, color.GrayModel.Convert(img.At(0, 1)))
			},
		},
		{
			name: "cmyk",
			dict: "/Width 1 /Height 1 /ColorSpace /DeviceCMYK /BitsPerComponent 8",
			data: []byte{0, 0, 0, 0xff},
			check: func(t *testing.T, img image.Image) {
				r, g, b, _ := img.At(0, 0).RGBA()
				assert.Equal(t, [3]uint32{0, 0, 0}, [3]uint32{r, g, b})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeImagePDF(t, testImage{dict: tt.dict, data: tt.data, cm: "100 0 0 50 72 600"})

			got := nativeFirstPage(t, path, zap.NewNop())
			require.Len(t, got, 1)
			assert.Equal(t, "png", got[0].Ext)
			assert.InDelta(t, 142, got[0].BBox.Y0, 0.01)

			format, err := images.Validate(got[0].Data)
			require.NoError(t, err)
			assert.Equal(t, "png", format)

			img, _, err := image.Decode(bytes.NewReader(got[0].Data))
			require.NoError(t, err)
			tt.check(t, img)
		})
	}
}

func TestNativeImagesSkipsUnreadable(t *testing.T) {
	path := writeImagePDF(t,
		testImage{dict: rgbDict, data: rgbSamples[:6], cm: "100 0 0 50 72 600"},
		testImage{dict: rgbDict + " /Filter /LZWDecode", data: []byte{0x80, 0x0b}, cm: "100 0 0 50 72 500"},
		testImage{dict: "/Width 8 /Height 8 /ColorSpace /DeviceGray /BitsPerComponent 8 /Filter /DCTDecode", data: jpegSample(t), cm: "100 0 0 50 72 400"},
		testImage{dict: rgbDict, data: rgbSamples, cm: "100 0 0 50 72 300"},
	)

	core, logs := observer.New(zap.WarnLevel)
	got := nativeFirstPage(t, path, zap.New(core))

	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].Index, "skipped images keep their placement index")
	assert.InDelta(t, 442, got[0].BBox.Y0, 0.01)

	skipped := logs.FilterMessage("skipping image").All()
	require.Len(t, skipped, 3)
	assert.Contains(t, skipped[0].ContextMap()["error"], "short image data")
	assert.Contains(t, skipped[1].ContextMap()["error"], "unsupported filter LZWDecode")
	assert.Contains(t, skipped[2].ContextMap()["error"], "unsupported filter DCTDecode")
}

func TestUnidocImagesKeepsJPEG(t *testing.T) {
	data := jpegSample(t)
	path := writeImagePDF(t, testImage{
		dict: "/Width 8 /Height 8 /ColorSpace /DeviceGray /BitsPerComponent 8 /Filter /DCTDecode",
		data: data,
		cm:   "100 0 0 -50 72 650",
	})

	got := unidocFirstPage(t, path)
	require.Len(t, got, 1)
	assert.Equal(t, "jpeg", got[0].Ext)
	assert.Equal(t, data, got[0].Data)
	assert.InDelta(t, 142, got[0].BBox.Y0, 0.01)

	format, err := images.Validate(got[0].Data)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
}

func deflate(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	_, err := zw.Write(data)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func jpegSample(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewGray(image.Rect(0, 0, 8, 8)), nil))
	return buf.Bytes()
}
