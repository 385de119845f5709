package invoicepdf

import (
	"errors"
	"fmt"
	"io"
	"log"
)

// ErrNoTotals is returned when a document has not been run through the
// calculator.
var ErrNoTotals = errors.New("invoicepdf: document has no computed totals")

// Renderer draws invoices in the fixed pad layout.
type Renderer struct{}

// NewRenderer creates a renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render writes doc as a PDF to w.
func (r *Renderer) Render(w io.Writer, doc *Document) (*Result, error) {
	c := newPDFCanvas()
	if err := r.Layout(c, doc); err != nil {
		return nil, err
	}
	if err := c.output(w); err != nil {
		return nil, fmt.Errorf("invoicepdf: failed to write document: %w", err)
	}
	return &Result{Pages: c.pageCount()}, nil
}

// Layout draws doc onto any Canvas, adding pages as space runs out.
func (r *Renderer) Layout(c Canvas, doc *Document) error {
	if doc == nil || doc.Totals == nil {
		return ErrNoTotals
	}
	issuer := doc.Issuer
	if issuer == nil {
		issuer = &Issuer{}
	}

	pageW, pageH := c.PageSize()
	l := &layout{
		c:      c,
		doc:    doc,
		issuer: issuer,
		left:   marginLeft,
		width:  pageW - marginLeft - marginRight,
		pageH:  pageH,
		limit:  pageH - marginTop - bottomGap,
	}

	l.newPage()
	l.drawParties()
	l.drawItemTable()
	l.drawTaxSummary()
	l.drawBottomBlock()

	if l.signatureErr != nil {
		log.Printf("invoicepdf: signature not drawn for invoice %q, using name: %v", doc.InvoiceNo, l.signatureErr)
	}
	return nil
}
