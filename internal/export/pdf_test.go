package export

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func TestPageOffsets(t *testing.T) {
	tests := []struct {
		name       string
		imgHeight  float64
		pageHeight float64
		want       []float64
	}{
		{"fits one page", 200, 297, []float64{0}},
		{"exactly one page", 297, 297, []float64{0}},
		{"just over one page", 298, 297, []float64{0, -297}},
		{"three pages", 800, 297, []float64{0, -297, -594}},
		{"zero height", 0, 297, []float64{0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pageOffsets(tt.imgHeight, tt.pageHeight)
			if len(got) != len(tt.want) {
				t.Fatalf("pageOffsets(%v, %v) = %v, want %v", tt.imgHeight, tt.pageHeight, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("offset[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func testPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}
	return buf.Bytes()
}

func TestRenderPDF(t *testing.T) {
	// 794x2400 at 210mm width scales to ~634mm, so three A4 pages.
	data, err := renderPDF(testPNG(t, 794, 2400), 210, 297)
	if err != nil {
		t.Fatalf("renderPDF failed: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("output does not start with a PDF header")
	}
	if !bytes.Contains(data, []byte("/Count 3")) {
		t.Error("expected a three page document")
	}
}

func TestRenderPDFRejectsGarbage(t *testing.T) {
	if _, err := renderPDF([]byte("not a png"), 210, 297); err == nil {
		t.Error("invalid capture bytes should fail")
	}
}
