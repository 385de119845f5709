package invoicepdf

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// Canvas is the drawing surface the layout writes to. Coordinates are in
// millimetres from the top-left corner of the current page; Text draws at
// the baseline.
type Canvas interface {
	AddPage()
	PageSize() (w, h float64)
	SetFont(style string, size float64)
	SetFillColor(r, g, b int)
	Text(x, y float64, s string)
	TextWidth(s string) float64
	Rect(x, y, w, h float64, style string)
	Line(x1, y1, x2, y2 float64)
	// Image draws img fitted inside the box, keeping its aspect ratio.
	Image(img []byte, x, y, w, h float64) error
}

const fontFamily = "Times"

var errUnsupportedImage = errors.New("invoicepdf: unsupported signature image")

type pdfCanvas struct {
	pdf    *gofpdf.Fpdf
	tr     func(string) string
	images int
}

func newPDFCanvas() *pdfCanvas {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.SetTitle("Tax Invoice", true)
	return &pdfCanvas{
		pdf: pdf,
		tr:  pdf.UnicodeTranslatorFromDescriptor(""),
	}
}

func (c *pdfCanvas) AddPage() {
	c.pdf.AddPage()
}

func (c *pdfCanvas) PageSize() (float64, float64) {
	return c.pdf.GetPageSize()
}

func (c *pdfCanvas) SetFont(style string, size float64) {
	c.pdf.SetFont(fontFamily, style, size)
}

func (c *pdfCanvas) SetFillColor(r, g, b int) {
	c.pdf.SetFillColor(r, g, b)
}

func (c *pdfCanvas) Text(x, y float64, s string) {
	if s == "" {
		return
	}
	c.pdf.Text(x, y, c.tr(s))
}

func (c *pdfCanvas) TextWidth(s string) float64 {
	return c.pdf.GetStringWidth(c.tr(s))
}

func (c *pdfCanvas) Rect(x, y, w, h float64, style string) {
	c.pdf.Rect(x, y, w, h, style)
}

func (c *pdfCanvas) Line(x1, y1, x2, y2 float64) {
	c.pdf.Line(x1, y1, x2, y2)
}

// Image registers the bytes and draws them. A registration failure is
// returned and the document's error state is cleared so drawing can go on.
func (c *pdfCanvas) Image(img []byte, x, y, w, h float64) error {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(img))
	if err != nil {
		return fmt.Errorf("%w: %v", errUnsupportedImage, err)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return errUnsupportedImage
	}

	var imageType string
	switch format {
	case "jpeg":
		imageType = "JPG"
	case "png":
		imageType = "PNG"
	case "gif":
		imageType = "GIF"
	default:
		return fmt.Errorf("%w: %s", errUnsupportedImage, format)
	}

	c.images++
	name := fmt.Sprintf("signature-%d", c.images)
	opts := gofpdf.ImageOptions{ImageType: imageType}
	c.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(img))
	if err := c.pdf.Error(); err != nil {
		c.pdf.ClearError()
		return err
	}

	drawW, drawH := fit(float64(cfg.Width), float64(cfg.Height), w, h)
	c.pdf.ImageOptions(name, x+(w-drawW)/2, y+(h-drawH)/2, drawW, drawH, false, opts, 0, "")
	if err := c.pdf.Error(); err != nil {
		c.pdf.ClearError()
		return err
	}
	return nil
}

func (c *pdfCanvas) output(w io.Writer) error {
	return c.pdf.Output(w)
}

func (c *pdfCanvas) pageCount() int {
	return c.pdf.PageCount()
}

func fit(srcW, srcH, boxW, boxH float64) (float64, float64) {
	scale := boxW / srcW
	if s := boxH / srcH; s < scale {
		scale = s
	}
	return srcW * scale, srcH * scale
}
