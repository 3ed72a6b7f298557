package export

import (
	"bytes"
	"fmt"
	"image/png"
	"math"

	"github.com/go-pdf/fpdf"
)

// pageOffsets returns the vertical image offset for each output page when an
// image of imgHeight is tiled onto pages of pageHeight. Page n draws the full
// image shifted up by n page heights, so each page shows its own slice.
func pageOffsets(imgHeight, pageHeight float64) []float64 {
	if imgHeight <= 0 || pageHeight <= 0 {
		return []float64{0}
	}
	pages := int(math.Ceil(imgHeight / pageHeight))
	if pages < 1 {
		pages = 1
	}
	offsets := make([]float64, pages)
	for n := range offsets {
		offsets[n] = -float64(n) * pageHeight
	}
	return offsets
}

// renderPDF tiles a PNG capture of the preview onto A4-sized pages. The image
// is scaled to the full page width and split across as many pages as its
// height requires.
func renderPDF(capture []byte, pageWidth, pageHeight float64) ([]byte, error) {
	cfg, err := png.DecodeConfig(bytes.NewReader(capture))
	if err != nil {
		return nil, fmt.Errorf("%w: decoding capture: %v", ErrRender, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: capture has no pixels", ErrRender)
	}

	imgWidth := pageWidth
	imgHeight := float64(cfg.Height) * pageWidth / float64(cfg.Width)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("capture", opts, bytes.NewReader(capture))

	for _, y := range pageOffsets(imgHeight, pageHeight) {
		pdf.AddPage()
		pdf.ImageOptions("capture", 0, y, imgWidth, imgHeight, false, opts, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: writing pdf: %v", ErrRender, err)
	}
	return buf.Bytes(), nil
}
