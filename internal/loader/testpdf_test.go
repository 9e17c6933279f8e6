// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package loader

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// pdfBuilder assembles a small uncompressed PDF with a correct xref table.
type pdfBuilder struct {
	objects [][]byte
}

func (b *pdfBuilder) add(body string) int {
	b.objects = append(b.objects, []byte(body))
	return len(b.objects)
}

func (b *pdfBuilder) addStream(dict string, data []byte) int {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "<< %s /Length %d >>\nstream\n", dict, len(data))
	buf.Write(data)
	buf.WriteString("\nendstream")
	b.objects = append(b.objects, buf.Bytes())
	return len(b.objects)
}

func (b *pdfBuilder) bytes(trailer string) []byte {
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(b.objects))
	for i, obj := range b.objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n", i+1)
		buf.Write(obj)
		buf.WriteString("\nendobj\n")
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(b.objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d %s >>\nstartxref\n%d\n%%%%EOF\n", len(b.objects)+1, trailer, xref)
	return buf.Bytes()
}

// writeSamplePDF writes a two-page document: page 1 (Letter, inherited
// MediaBox) has an 18pt heading, a 12pt body line and a 2x2 RGB image
// painted at (72, 600) scaled to 100x50; page 2 is A4 with one line.
func writeSamplePDF(t *testing.T) string {
	t.Helper()

	var b pdfBuilder
	b.add("<< /Type /Catalog /Pages 2 0 R >>")
	b.add("<< /Type /Pages /Kids [3 0 R 4 0 R] /Count 2 /MediaBox [0 0 612 792] >>")
	b.add("<< /Type /Page /Parent 2 0 R /Resources << /Font << /F1 5 0 R >> /XObject << /Im1 8 0 R >> >> /Contents 6 0 R >>")
	b.add("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << /Font << /F1 5 0 R >> >> /Contents 7 0 R >>")
	b.add("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")
	b.addStream("", []byte("BT /F1 18 Tf 72 720 Td (INTRODUCTION) Tj ET\n"+
		"BT /F1 12 Tf 72 680 Td (This is the body.) Tj ET\n"+
		"q 100 0 0 50 72 600 cm /Im1 Do Q\n"))
	b.addStream("", []byte("BT /F1 12 Tf 72 760 Td (Second page) Tj ET\n"))
	b.addStream("/Type /XObject /Subtype /Image /Width 2 /Height 2 /ColorSpace /DeviceRGB /BitsPerComponent 8",
		[]byte{0xff, 0, 0, 0, 0xff, 0, 0, 0, 0xff, 0xff, 0xff, 0xff})
	b.add("<< /Title (Test Document) /Author (Jane Roe) >>")

	path := filepath.Join(t.TempDir(), "sample.pdf")
	if err := os.WriteFile(path, b.bytes("/Root 1 0 R /Info 9 0 R"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// testImage is one image XObject painted on a single-page test document.
type testImage struct {
	dict string
	data []byte
	cm   string
}

// writeImagePDF writes a one-page Letter document that paints each image
// with its own cm operator, named Im1, Im2, ... in order.
func writeImagePDF(t *testing.T, imgs ...testImage) string {
	t.Helper()

	var xobjects, content bytes.Buffer
	for i, img := range imgs {
		fmt.Fprintf(&xobjects, "/Im%d %d 0 R ", i+1, i+5)
		fmt.Fprintf(&content, "q %s cm /Im%d Do Q\n", img.cm, i+1)
	}

	var b pdfBuilder
	b.add("<< /Type /Catalog /Pages 2 0 R >>")
	b.add("<< /Type /Pages /Kids [3 0 R] /Count 1 /MediaBox [0 0 612 792] >>")
	b.add("<< /Type /Page /Parent 2 0 R /Resources << /XObject << " + xobjects.String() + ">> >> /Contents 4 0 R >>")
	b.addStream("", content.Bytes())
	for _, img := range imgs {
		b.addStream("/Type /XObject /Subtype /Image "+img.dict, img.data)
	}

	path := filepath.Join(t.TempDir(), "images.pdf")
	if err := os.WriteFile(path, b.bytes("/Root 1 0 R"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
