package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"miklean/internal/domain"
)

const invoiceSheet = "Invoices"

var invoiceColumns = []string{
	"Invoice Number",
	"Client",
	"Email",
	"Status",
	"Subtotal",
	"Total",
	"Created",
	"Sent",
	"Paid",
}

// WriteInvoiceWorkbook writes an .xlsx workbook with one row per invoice.
// Amount columns are numeric cells so totals can be summed in a spreadsheet.
func WriteInvoiceWorkbook(w io.Writer, invoices []domain.InvoiceDetail) error {
	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck

	if err := f.SetSheetName("Sheet1", invoiceSheet); err != nil {
		return fmt.Errorf("export.WriteInvoiceWorkbook: %w", err)
	}

	header := make([]interface{}, len(invoiceColumns))
	for i, c := range invoiceColumns {
		header[i] = c
	}
	if err := f.SetSheetRow(invoiceSheet, "A1", &header); err != nil {
		return fmt.Errorf("export.WriteInvoiceWorkbook header: %w", err)
	}

	for i := range invoices {
		inv := &invoices[i]
		subtotal, _ := inv.Subtotal.Float64()
		total, _ := inv.Total.Float64()
		row := []interface{}{
			inv.InvoiceNumber,
			inv.Client.Name,
			deref(inv.Client.Email),
			string(inv.Status),
			subtotal,
			total,
			inv.CreatedAt.Format("2006-01-02"),
			formatTime(inv.SentAt),
			formatTime(inv.PaidAt),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("export.WriteInvoiceWorkbook: %w", err)
		}
		if err := f.SetSheetRow(invoiceSheet, cell, &row); err != nil {
			return fmt.Errorf("export.WriteInvoiceWorkbook row %d: %w", i+1, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("export.WriteInvoiceWorkbook write: %w", err)
	}
	return nil
}
