package export

import (
	"encoding/csv"
	"io"
	"time"

	"miklean/internal/domain"
)

// BOM is the UTF-8 byte order mark Excel on Windows needs to detect UTF-8.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// visitColumns defines the CSV header row.
var visitColumns = []string{
	"Date",
	"Time",
	"Client",
	"Phone",
	"Address",
	"Status",
	"Recurring",
	"Frequency",
	"Price",
	"Invoiced",
	"Completion Notes",
	"Completed At",
}

// VisitWriter wraps csv.Writer for exporting visits.
type VisitWriter struct {
	csv *csv.Writer
}

// NewVisitWriter creates a VisitWriter that writes CSV to w.
func NewVisitWriter(w io.Writer) *VisitWriter {
	return &VisitWriter{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *VisitWriter) WriteHeader() error {
	return w.csv.Write(visitColumns)
}

// WriteVisits converts a batch of visits to CSV rows and writes them.
func (w *VisitWriter) WriteVisits(visits []domain.VisitDetail) error {
	for i := range visits {
		if err := w.csv.Write(visitToRow(&visits[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *VisitWriter) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *VisitWriter) Error() error {
	return w.csv.Error()
}

func visitToRow(v *domain.VisitDetail) []string {
	row := make([]string, len(visitColumns))
	row[0] = v.ScheduledDate.String()
	row[1] = deref(v.ScheduledTime)
	row[2] = v.Client.Name
	row[3] = v.Client.Phone
	row[4] = v.Client.Address
	row[5] = string(v.Status)
	row[6] = formatBool(v.IsRecurring)
	if v.Frequency != nil {
		row[7] = v.Frequency.Label()
	}
	if v.Price.Valid {
		row[8] = v.Price.Decimal.StringFixed(2)
	} else if v.Estimate.PricePerVisit.Valid {
		row[8] = v.Estimate.PricePerVisit.Decimal.StringFixed(2)
	}
	row[9] = formatBool(v.InvoiceID != nil)
	row[10] = deref(v.CompletionNotes)
	row[11] = formatTime(v.CompletedAt)
	return row
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatBool(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
