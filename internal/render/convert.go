package render

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"image/png"

	"github.com/jung-kurt/gofpdf"
)

const jpegQuality = 90

// Convert repackages rendered PNG bytes into the requested output format.
// PNG passes through untouched. HTML is not convertible here since the markup
// backend produces it directly.
func Convert(pngData []byte, format Format) ([]byte, error) {
	switch format {
	case FormatPNG:
		return pngData, nil
	case FormatJPEG:
		return toJPEG(pngData)
	case FormatPDF:
		return toPDF(pngData)
	default:
		return nil, fmt.Errorf("cannot convert PNG to %q", format)
	}
}

func toJPEG(pngData []byte) ([]byte, error) {
	img, err := png.Decode(bytes.NewReader(pngData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode PNG: %w", err)
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

// toPDF wraps the image in a single-page PDF sized to the image at 96 DPI.
func toPDF(pngData []byte) ([]byte, error) {
	cfg, err := png.DecodeConfig(bytes.NewReader(pngData))
	if err != nil {
		return nil, fmt.Errorf("failed to read PNG header: %w", err)
	}

	wPt := float64(cfg.Width) * 72 / 96
	hPt := float64(cfg.Height) * 72 / 96

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: wPt, Ht: hPt},
	})
	pdf.AddPage()
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("calendar", opts, bytes.NewReader(pngData))
	pdf.ImageOptions("calendar", 0, 0, wPt, hPt, false, opts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write PDF: %w", err)
	}
	return buf.Bytes(), nil
}
