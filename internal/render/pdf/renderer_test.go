package pdf_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"miklean/internal/domain"
	"miklean/internal/render/pdf"
)

func fixedNow() time.Time { return time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC) }

func TestRenderer_RenderEstimate(t *testing.T) {
	r := pdf.NewRenderer(fixedNow)
	name, day := "Sparkle Café", "Tuesday"
	rate := decimal.RequireFromString("519.60")

	out, err := r.RenderEstimate(&domain.EstimateDetail{
		Estimate: domain.Estimate{
			ID:            uuid.New(),
			Description:   "Weekly whole-home clean",
			PricePerVisit: decimal.NewFromInt(120),
			Frequency:     domain.FrequencyWeekly,
			PreferredDay:  &day,
			Status:        domain.EstimateStatusSent,
		},
		Client: domain.ClientSummary{Name: "Jane Doe", Phone: "555-0100", Address: "1 Main St, Austin, TX 78701"},
	}, &domain.BusinessProfile{BusinessName: &name}, &rate)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	assert.Equal(t, "application/pdf", r.ContentType())
}

func TestRenderer_RenderEstimate_NilProfile(t *testing.T) {
	r := pdf.NewRenderer(fixedNow)

	out, err := r.RenderEstimate(&domain.EstimateDetail{
		Estimate: domain.Estimate{Description: "Move-out clean", Frequency: domain.FrequencyOneTime},
	}, nil, nil)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRenderer_RenderInvoice(t *testing.T) {
	r := pdf.NewRenderer(fixedNow)
	payment := "Venmo: @sparkle\nCash accepted"
	desc := "Weekly clean"
	paidAt := fixedNow()

	lines := []domain.InvoiceLine{
		{VisitID: uuid.New(), ScheduledDate: domain.NewDate(2024, time.February, 5), Description: &desc,
			VisitPrice: decimal.NewNullDecimal(decimal.NewFromInt(120))},
		{VisitID: uuid.New(), ScheduledDate: domain.NewDate(2024, time.February, 12),
			EstimatePrice: decimal.NewNullDecimal(decimal.NewFromInt(100))},
	}
	out, err := r.RenderInvoice(&domain.InvoiceDetail{
		Invoice: domain.Invoice{
			InvoiceNumber: "INV-0003",
			Subtotal:      decimal.NewFromInt(220),
			Total:         decimal.NewFromInt(220),
			Status:        domain.InvoiceStatusPaid,
			PaidAt:        &paidAt,
			CreatedAt:     fixedNow(),
		},
		Client: domain.ClientSummary{Name: "Jane Doe", Phone: "555-0100"},
	}, lines, &domain.BusinessProfile{PaymentInstructions: &payment})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRenderer_NilDocument(t *testing.T) {
	r := pdf.NewRenderer(nil)

	_, err := r.RenderEstimate(nil, nil, nil)
	assert.Error(t, err)
	_, err = r.RenderInvoice(nil, nil, nil)
	assert.Error(t, err)
}
