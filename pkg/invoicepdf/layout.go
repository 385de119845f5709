package invoicepdf

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/rgbilling/gst-billing/pkg/gst"
)

// Page geometry in millimetres.
const (
	marginLeft  = 10.0
	marginRight = 10.0
	marginTop   = 8.0
	bottomGap   = 5.0

	// Minimum room needed before each region starts on the current page.
	tableRequired   = 22.0
	summaryRequired = 52.0
	bottomMinHeight = 35.0
	disclaimerSpace = 6.0

	cellPad     = 1.5
	cellLineH   = 4.0
	noteLineH   = 4.0
	taxLineH    = 6.0
	taxLines    = 6
	wordsHeight = 8.0
)

const (
	alignLeft = iota
	alignCenter
	alignRight
)

type column struct {
	title string
	pct   float64
	align int
}

// Fixed share of the content width per column; the shares sum to 100.
var itemColumns = []column{
	{"Sl. No.", 5, alignCenter},
	{"Description of Supply", 25, alignLeft},
	{"HSN / SAC", 8, alignCenter},
	{"Qty.", 6, alignCenter},
	{"Unit", 6, alignCenter},
	{"Rate / Item (Rs.)", 10, alignRight},
	{"Tax %", 9, alignCenter},
	{"Taxable Value (Rs.)", 11, alignRight},
	{"Tax Amount (Rs.)", 10, alignRight},
	{"Total (Rs.)", 10, alignRight},
}

// totalLabelSpan is how many leading columns the "Total Taxable Value" label covers.
const totalLabelSpan = 7

type layout struct {
	c      Canvas
	doc    *Document
	issuer *Issuer

	left  float64
	width float64
	pageH float64
	limit float64

	y       float64
	pages   int
	bodyTop float64

	signatureErr error
}

func (l *layout) remaining() float64 {
	return l.limit - l.y
}

// ensure starts a new page when fewer than need millimetres are left.
func (l *layout) ensure(need float64) bool {
	if l.remaining() >= need {
		return false
	}
	l.newPage()
	return true
}

func (l *layout) newPage() {
	l.c.AddPage()
	l.pages++
	l.c.Rect(l.left, marginTop, l.width, l.pageH-marginTop*2, "D")
	l.y = marginTop + 4
	l.drawHeader()
	l.bodyTop = l.y
}

func (l *layout) drawHeader() {
	is := l.issuer
	right := l.left + l.width

	l.c.SetFont("", 10)
	l.c.Text(l.left+2, l.y, "GST IN : "+is.GSTIN)
	l.c.SetFont("B", 10)
	l.centered(l.y, "TAX INVOICE")
	l.c.SetFont("", 10)
	l.rightAligned(right-2, l.y, "Contact No.: "+is.Contact)
	l.y += 7

	l.c.SetFont("B", 18)
	l.centered(l.y, is.Name)
	l.y += 6

	l.c.SetFont("", 10)
	l.centered(l.y, "Deals in : "+is.DealsIn)
	l.y += 5
	l.centered(l.y, is.Address)
	l.y += 6

	const rowH = 7.0
	l.c.Rect(l.left, l.y-rowH+1, l.width, rowH, "D")
	l.c.Text(l.left+2, l.y, "Invoice No : "+l.doc.InvoiceNo)
	l.c.Text(l.left+l.width/2+2, l.y, "Date : "+l.doc.Date)
	l.y += rowH + 1
}

func (l *layout) drawParties() {
	split := l.width * 0.65
	cust := l.doc.Customer

	l.c.SetFont("", 10)
	addr := l.wrap("Address: "+cust.Address, split-4)
	if len(addr) > 2 {
		addr = addr[:2]
	}
	if len(addr) == 0 {
		addr = []string{"Address: "}
	}
	boxH := 28 + noteLineH*float64(len(addr)-1)

	top := l.y
	l.c.Rect(l.left, top, l.width, boxH, "D")
	l.c.Line(l.left+split, top, l.left+split, top+boxH)

	l.c.SetFont("B", 10)
	l.c.Text(l.left+2, top+5, "Customer Details:")
	l.c.Text(l.left+split+2, top+5, "Transporter Details:")

	l.c.SetFont("", 10)
	lineY := top + 10
	l.c.Text(l.left+2, lineY, l.firstLine("Name: "+cust.Name, split-4))
	lineY += 5
	for _, line := range addr {
		l.c.Text(l.left+2, lineY, line)
		lineY += noteLineH
	}
	lineY++
	l.c.Text(l.left+2, lineY, "GSTIN No.: "+cust.GSTIN)
	lineY += 5
	l.c.Text(l.left+2, lineY, "State Code: "+cust.StateCode)

	l.c.Text(l.left+split+2, top+10, l.firstLine("Work Order No.: "+l.doc.WorkOrderNo, l.width-split-4))

	l.y = top + boxH + 2
}

func (l *layout) drawItemTable() {
	l.ensure(tableRequired)
	l.drawTableHeader()

	t := l.doc.Totals
	for _, it := range t.Items {
		l.drawRow(itemCells(it, t.Rates), false)
	}

	l.c.SetFont("B", 9)
	total := []string{
		"Total Taxable Value", "", "", "", "", "", "",
		gst.FormatINR(t.TaxableAmount),
		gst.FormatINR(t.TotalGST),
		gst.FormatINR(t.GrandTotal),
	}
	l.drawRow(total, true)
	l.y += 4
}

func (l *layout) drawTableHeader() {
	widths := l.columnWidths()

	l.c.SetFont("B", 8)
	cells := make([][]string, len(itemColumns))
	lines := 1
	for i, col := range itemColumns {
		cells[i] = l.wrap(col.title, widths[i]-2*cellPad)
		if len(cells[i]) > lines {
			lines = len(cells[i])
		}
	}
	h := float64(lines)*cellLineH + 2*cellPad

	l.c.SetFillColor(247, 243, 207)
	x := l.left
	for i := range itemColumns {
		l.c.Rect(x, l.y, widths[i], h, "FD")
		for j, line := range cells[i] {
			l.alignedText(x, widths[i], l.y+cellPad+cellLineH*float64(j+1)-1, line, alignCenter)
		}
		x += widths[i]
	}
	l.y += h
}

// drawRow draws one table row, continuing on a new page (header band and
// column header repeated) when the row does not fit. A row taller than a
// whole page is split between pages at line boundaries.
func (l *layout) drawRow(cells []string, total bool) {
	widths := l.columnWidths()
	if !total {
		l.c.SetFont("", 9)
	}

	wrapped := make([][]string, len(cells))
	lines := 1
	if total {
		wrapped[0] = l.wrap(cells[0], l.spanWidth(widths, totalLabelSpan)-2*cellPad)
		lines = len(wrapped[0])
		for i := totalLabelSpan; i < len(cells); i++ {
			wrapped[i] = l.wrap(cells[i], widths[i]-2*cellPad)
			if len(wrapped[i]) > lines {
				lines = len(wrapped[i])
			}
		}
	} else {
		for i, cell := range cells {
			wrapped[i] = l.wrap(cell, widths[i]-2*cellPad)
			if len(wrapped[i]) > lines {
				lines = len(wrapped[i])
			}
		}
	}

	continueTable := func() {
		l.newPage()
		l.drawTableHeader()
		if total {
			l.c.SetFont("B", 9)
		} else {
			l.c.SetFont("", 9)
		}
	}

	if l.remaining() < rowHeight(lines) {
		continueTable()
	}

	for from := 0; from < lines; {
		n := lines - from
		if fit := int((l.remaining() - 2*cellPad) / cellLineH); n > fit {
			n = max(fit, 1)
		}
		h := rowHeight(n)

		x := l.left
		for i := 0; i < len(cells); i++ {
			w := widths[i]
			align := itemColumns[i].align
			if total && i == 0 {
				w = l.spanWidth(widths, totalLabelSpan)
				align = alignLeft
			}
			l.c.Rect(x, l.y, w, h, "D")
			for j, line := range segment(wrapped[i], from, n) {
				l.alignedText(x, w, l.y+cellPad+cellLineH*float64(j+1)-1, line, align)
			}
			x += w
			if total && i == 0 {
				i = totalLabelSpan - 1
			}
		}
		l.y += h

		from += n
		if from < lines {
			continueTable()
		}
	}
}

func rowHeight(lines int) float64 {
	return float64(lines)*cellLineH + 2*cellPad
}

// segment returns up to n lines of a cell starting at from.
func segment(lines []string, from, n int) []string {
	if from >= len(lines) {
		return nil
	}
	return lines[from:min(from+n, len(lines))]
}

func (l *layout) drawTaxSummary() {
	if l.ensure(summaryRequired) {
		l.y += continuationGap
	}

	t := l.doc.Totals
	top := l.y
	right := l.left + l.width
	boxH := taxLineH * taxLines

	// Shade the grand total line before drawing the box over it.
	l.c.SetFillColor(230, 230, 230)
	l.c.Rect(l.left, top+taxLineH*(taxLines-1), l.width, taxLineH, "F")
	l.c.Rect(l.left, top, l.width, boxH, "D")

	lines := []struct {
		label string
		value float64
		bold  bool
	}{
		{"Taxable Amount", t.TaxableAmount, false},
		{"ADD CGST @ " + gst.FormatRate(t.Rates.CGST) + "%", t.CGSTAmount, false},
		{"ADD SGST @ " + gst.FormatRate(t.Rates.SGST) + "%", t.SGSTAmount, false},
		{"ADD IGST @ " + gst.FormatRate(t.Rates.IGST) + "%", t.IGSTAmount, false},
		{"Total GST", t.TotalGST, true},
		{"GRAND TOTAL", t.GrandTotal, true},
	}
	for i, line := range lines {
		y := top + taxLineH*float64(i+1) - 1.5
		if line.bold {
			l.c.SetFont("B", 10)
		} else {
			l.c.SetFont("", 10)
		}
		l.c.Text(l.left+2, y, line.label)
		l.rightAligned(right-2, y, gst.FormatINR(line.value))
	}
	l.y = top + boxH + 4

	l.c.SetFont("", 10)
	l.c.Rect(l.left, l.y, l.width, wordsHeight, "D")
	l.c.Text(l.left+2, l.y+5, l.firstLine("Rupees: "+t.AmountInWords, l.width-4))
	l.y += wordsHeight + 4
}

// noteLine is one line of the notes and bank details column. dy is the
// baseline advance from the previous line; the first line of a box always
// sits noteTopOffset below the box top.
type noteLine struct {
	text string
	bold bool
	dy   float64
}

const (
	noteTopOffset = 5.0
	noteBottomPad = 3.0
	// continuationGap is left between the header band and a region that
	// was pushed to a new page.
	continuationGap = 6.0
)

func (l *layout) noteLines(w float64) []noteLine {
	lines := []noteLine{{text: "Note :", bold: true, dy: noteTopOffset}}

	l.c.SetFont("", 10)
	dy := noteTopOffset
	n := 0
	for _, note := range l.doc.Notes {
		if strings.TrimSpace(note) == "" {
			continue
		}
		n++
		for _, line := range l.wrap(fmt.Sprintf("%d. %s", n, note), w) {
			lines = append(lines, noteLine{text: line, dy: dy})
			dy = noteLineH
		}
	}

	labelDy := noteLineH + 2
	if len(lines) == 1 {
		labelDy = noteTopOffset + 2
	}
	lines = append(lines, noteLine{text: "Bank Details :", bold: true, dy: labelDy})
	for _, line := range l.wrap(l.doc.BankDetails, w) {
		lines = append(lines, noteLine{text: line, dy: noteLineH})
	}
	return lines
}

// notesHeight is the box height holding lines, the first line placed at the
// box top offset.
func notesHeight(lines []noteLine) float64 {
	if len(lines) == 0 {
		return 0
	}
	h := noteTopOffset + noteBottomPad
	for _, line := range lines[1:] {
		h += line.dy
	}
	return h
}

func (l *layout) drawNoteLines(lines []noteLine, top float64) {
	y := top
	for i, line := range lines {
		if i == 0 {
			y += noteTopOffset
		} else {
			y += line.dy
		}
		if line.bold {
			l.c.SetFont("B", 10)
			l.c.Text(l.left+2, y, line.text)
		} else {
			l.c.SetFont("", 10)
			l.c.Text(l.left+5, y, line.text)
		}
	}
}

// drawBottomBlock draws the notes, bank details and signature box. When the
// text is taller than the room left on a fresh page it continues in boxes of
// its own, and the signature box closes the last page.
func (l *layout) drawBottomBlock() {
	leftW := l.width * 0.7
	rightW := l.width - leftW
	lines := l.noteLines(leftW - 7)

	reserve := 0.0
	if l.issuer.Disclaimer != "" {
		reserve = disclaimerSpace
	}
	need := func(lines []noteLine) float64 {
		return max(notesHeight(lines), bottomMinHeight) + reserve
	}

	if need(lines) > l.remaining() &&
		(need(lines) <= l.freshRoom() || l.remaining() < bottomMinHeight+reserve) {
		l.newPage()
		l.y += continuationGap
	}

	for need(lines) > l.remaining() {
		n := 0
		for n < len(lines)-1 && notesHeight(lines[:n+1]) <= l.remaining() {
			n++
		}
		if n == 0 && l.y == l.bodyTop+continuationGap {
			break
		}
		if n > 0 {
			l.c.Rect(l.left, l.y, l.width, notesHeight(lines[:n]), "D")
			l.drawNoteLines(lines[:n], l.y)
			lines = lines[n:]
		}
		l.newPage()
		l.y += continuationGap
	}

	top := l.y
	h := max(notesHeight(lines), bottomMinHeight)
	l.c.Rect(l.left, top, l.width, h, "D")
	l.c.Line(l.left+leftW, top, l.left+leftW, top+h)
	l.drawNoteLines(lines, top)

	right := l.left + l.width
	l.c.SetFont("B", 10)
	l.rightAligned(right-2, top+5, l.firstLine("For "+l.issuer.Name, rightW-4))

	drewImage := false
	if sig := signatureBytes(l.issuer.Signature); len(sig) > 0 {
		if err := l.c.Image(sig, l.left+leftW+2, top+8, rightW-4, bottomMinHeight-19); err != nil {
			l.signatureErr = err
		} else {
			drewImage = true
		}
	}
	if !drewImage && l.issuer.SignatoryName != "" {
		l.c.SetFont("", 10)
		l.rightAligned(right-2, top+h-6, l.issuer.SignatoryName)
	}

	l.c.SetFont("", 9)
	l.rightAligned(right-2, top+h-2, "Authorised Signatory")
	l.y = top + h

	if l.issuer.Disclaimer != "" {
		l.y += 4
		l.c.SetFont("I", 8)
		l.centered(l.y, l.firstLine(l.issuer.Disclaimer, l.width-4))
	}
}

// freshRoom is the height available to a region pushed onto a new page.
func (l *layout) freshRoom() float64 {
	return l.limit - l.bodyTop - continuationGap
}

func (l *layout) columnWidths() []float64 {
	widths := make([]float64, len(itemColumns))
	for i, col := range itemColumns {
		widths[i] = l.width * col.pct / 100
	}
	return widths
}

func (l *layout) spanWidth(widths []float64, n int) float64 {
	var w float64
	for _, cw := range widths[:n] {
		w += cw
	}
	return w
}

func (l *layout) centered(y float64, s string) {
	l.c.Text(l.left+l.width/2-l.c.TextWidth(s)/2, y, s)
}

func (l *layout) rightAligned(xRight, y float64, s string) {
	l.c.Text(xRight-l.c.TextWidth(s), y, s)
}

func (l *layout) alignedText(x, w, y float64, s string, align int) {
	switch align {
	case alignCenter:
		l.c.Text(x+w/2-l.c.TextWidth(s)/2, y, s)
	case alignRight:
		l.c.Text(x+w-cellPad-l.c.TextWidth(s), y, s)
	default:
		l.c.Text(x+cellPad, y, s)
	}
}

func (l *layout) firstLine(s string, w float64) string {
	lines := l.wrap(s, w)
	if len(lines) == 0 {
		return ""
	}
	return lines[0]
}

// wrap breaks s into lines no wider than w in the current font. Words
// wider than a whole line are split by rune.
func (l *layout) wrap(s string, w float64) []string {
	var lines []string
	for _, para := range strings.Split(strings.TrimSpace(s), "\n") {
		line := ""
		for _, word := range strings.Fields(para) {
			candidate := word
			if line != "" {
				candidate = line + " " + word
			}
			if l.c.TextWidth(candidate) <= w {
				line = candidate
				continue
			}
			if line != "" {
				lines = append(lines, line)
			}
			for l.c.TextWidth(word) > w {
				r := []rune(word)
				n := len(r)
				for n > 1 && l.c.TextWidth(string(r[:n])) > w {
					n--
				}
				lines = append(lines, string(r[:n]))
				word = string(r[n:])
			}
			line = word
		}
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func itemCells(it gst.ComputedItem, rates gst.Rates) []string {
	taxPct := ""
	if rate := rates.Combined(it.TaxType); rate != 0 {
		taxPct = gst.FormatRate(rate) + "% " + it.TaxType.Label()
	}
	return []string{
		strconv.Itoa(it.SlNo),
		it.Description,
		it.HSN,
		blankZero(it.Qty, formatQty),
		it.Unit,
		blankZero(it.Rate, gst.FormatINR),
		taxPct,
		blankZero(it.Amount, gst.FormatINR),
		blankZero(it.TaxAmount, gst.FormatINR),
		blankZero(it.LineTotal, gst.FormatINR),
	}
}

func blankZero(v float64, format func(float64) string) string {
	if v == 0 {
		return ""
	}
	return format(v)
}

func formatQty(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// signatureBytes accepts raw image bytes or a base64 data URL.
func signatureBytes(b []byte) []byte {
	if !bytes.HasPrefix(b, []byte("data:")) {
		return b
	}
	_, payload, ok := bytes.Cut(b, []byte(","))
	if !ok {
		return nil
	}
	decoded, err := base64.StdEncoding.DecodeString(string(payload))
	if err != nil {
		return nil
	}
	return decoded
}
