// Package pdf renders estimates and invoices as letter-size PDF documents.
package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"miklean/internal/domain"
	"miklean/internal/port"
)

const (
	pageWidth   = 215.9
	margin      = 18.0
	contentW    = pageWidth - 2*margin
	lineHeight  = 6.0
	contentType = "application/pdf"
)

// Renderer implements port.DocumentRenderer with fpdf.
type Renderer struct {
	now func() time.Time
}

// NewRenderer creates a PDF renderer. now stamps the document date.
func NewRenderer(now func() time.Time) port.DocumentRenderer {
	if now == nil {
		now = time.Now
	}
	return &Renderer{now: now}
}

func (r *Renderer) ContentType() string { return contentType }

// document wraps fpdf with the cp1252 translator the core fonts need.
type document struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func newDocument(title string) *document {
	p := fpdf.New("P", "mm", "Letter", "")
	p.SetMargins(margin, margin, margin)
	p.SetAutoPageBreak(true, margin)
	p.SetTitle(title, true)
	p.SetCreator("miklean", true)
	p.AddPage()
	return &document{pdf: p, tr: p.UnicodeTranslatorFromDescriptor("")}
}

func (d *document) text(style string, size float64, s string) {
	d.pdf.SetFont("Helvetica", style, size)
	d.pdf.MultiCell(contentW, lineHeight, d.tr(s), "", "L", false)
}

func (d *document) row(label, value string) {
	d.pdf.SetFont("Helvetica", "B", 10)
	d.pdf.CellFormat(45, lineHeight, d.tr(label), "", 0, "L", false, 0, "")
	d.pdf.SetFont("Helvetica", "", 10)
	d.pdf.MultiCell(contentW-45, lineHeight, d.tr(value), "", "L", false)
}

func (d *document) rule() {
	d.pdf.Ln(2)
	y := d.pdf.GetY()
	d.pdf.SetDrawColor(200, 200, 200)
	d.pdf.Line(margin, y, pageWidth-margin, y)
	d.pdf.Ln(4)
}

func (d *document) header(profile *domain.BusinessProfile, title, subtitle string) {
	d.pdf.SetTextColor(33, 37, 41)
	d.pdf.SetFont("Helvetica", "B", 18)
	d.pdf.CellFormat(contentW/2, 10, d.tr(profile.DisplayName()), "", 0, "L", false, 0, "")
	d.pdf.SetFont("Helvetica", "B", 16)
	d.pdf.CellFormat(contentW/2, 10, d.tr(title), "", 1, "R", false, 0, "")

	d.pdf.SetFont("Helvetica", "", 10)
	phone := ""
	if profile != nil && profile.BusinessPhone != nil {
		phone = *profile.BusinessPhone
	}
	d.pdf.CellFormat(contentW/2, lineHeight, d.tr(phone), "", 0, "L", false, 0, "")
	d.pdf.CellFormat(contentW/2, lineHeight, d.tr(subtitle), "", 1, "R", false, 0, "")
	d.rule()
}

func (d *document) client(label string, c domain.ClientSummary) {
	d.text("B", 11, label)
	d.text("", 10, c.Name)
	if c.Address != "" {
		d.text("", 10, c.Address)
	}
	d.text("", 10, c.Phone)
	if c.Email != nil && *c.Email != "" {
		d.text("", 10, *c.Email)
	}
	d.pdf.Ln(4)
}

func (d *document) bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *Renderer) RenderEstimate(estimate *domain.EstimateDetail, profile *domain.BusinessProfile, monthlyRate *decimal.Decimal) ([]byte, error) {
	if estimate == nil {
		return nil, fmt.Errorf("pdf.RenderEstimate: nil estimate")
	}
	d := newDocument("Estimate for " + estimate.Client.Name)
	d.header(profile, "ESTIMATE", r.now().Format("January 2, 2006"))
	d.client("Prepared for", estimate.Client)

	d.text("B", 11, "Service")
	d.text("", 10, estimate.Description)
	d.pdf.Ln(3)

	d.row("Frequency", estimate.Frequency.Label())
	d.row("Price per visit", domain.FormatMoney(estimate.PricePerVisit))
	if monthlyRate != nil {
		d.row("Estimated monthly", domain.FormatMoney(*monthlyRate))
	}
	if estimate.PreferredDay != nil {
		d.row("Preferred day", *estimate.PreferredDay)
	}
	if estimate.PreferredTime != nil {
		d.row("Preferred time", domain.DisplayTimeOfDay(*estimate.PreferredTime))
	}

	if estimate.Status == domain.EstimateStatusAccepted && estimate.AcceptedAt != nil {
		d.rule()
		d.text("I", 10, "Accepted on "+estimate.AcceptedAt.Format("January 2, 2006"))
	}
	return d.bytes()
}

func (r *Renderer) RenderInvoice(invoice *domain.InvoiceDetail, lines []domain.InvoiceLine, profile *domain.BusinessProfile) ([]byte, error) {
	if invoice == nil {
		return nil, fmt.Errorf("pdf.RenderInvoice: nil invoice")
	}
	d := newDocument("Invoice " + invoice.InvoiceNumber)
	d.header(profile, "INVOICE", invoice.InvoiceNumber)
	d.row("Date", invoice.CreatedAt.Format("January 2, 2006"))
	if invoice.Status == domain.InvoiceStatusPaid && invoice.PaidAt != nil {
		d.row("Paid", invoice.PaidAt.Format("January 2, 2006"))
	}
	d.pdf.Ln(3)
	d.client("Bill to", invoice.Client)

	dateW, amountW := 40.0, 35.0
	descW := contentW - dateW - amountW
	d.pdf.SetFont("Helvetica", "B", 10)
	d.pdf.SetFillColor(240, 240, 240)
	d.pdf.CellFormat(dateW, 8, "Date", "B", 0, "L", true, 0, "")
	d.pdf.CellFormat(descW, 8, "Description", "B", 0, "L", true, 0, "")
	d.pdf.CellFormat(amountW, 8, "Amount", "B", 1, "R", true, 0, "")

	d.pdf.SetFont("Helvetica", "", 10)
	for i := range lines {
		desc := "Cleaning service"
		if lines[i].Description != nil && strings.TrimSpace(*lines[i].Description) != "" {
			desc = *lines[i].Description
		}
		amount := ""
		if a, ok := lines[i].Amount(); ok {
			amount = domain.FormatMoney(a)
		}
		d.pdf.CellFormat(dateW, 7, lines[i].ScheduledDate.Display(), "", 0, "L", false, 0, "")
		d.pdf.CellFormat(descW, 7, d.tr(truncate(desc, 60)), "", 0, "L", false, 0, "")
		d.pdf.CellFormat(amountW, 7, amount, "", 1, "R", false, 0, "")
	}

	d.rule()
	d.pdf.SetFont("Helvetica", "", 10)
	d.pdf.CellFormat(contentW-amountW, 7, "Subtotal", "", 0, "R", false, 0, "")
	d.pdf.CellFormat(amountW, 7, domain.FormatMoney(invoice.Subtotal), "", 1, "R", false, 0, "")
	d.pdf.SetFont("Helvetica", "B", 12)
	d.pdf.CellFormat(contentW-amountW, 8, "Total", "", 0, "R", false, 0, "")
	d.pdf.CellFormat(amountW, 8, domain.FormatMoney(invoice.Total), "", 1, "R", false, 0, "")

	if profile != nil && profile.PaymentInstructions != nil && *profile.PaymentInstructions != "" {
		d.pdf.Ln(6)
		d.text("B", 11, "Payment")
		d.text("", 10, *profile.PaymentInstructions)
	}
	return d.bytes()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
