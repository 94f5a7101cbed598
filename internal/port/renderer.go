package port

import (
	"github.com/shopspring/decimal"

	"miklean/internal/domain"
)

// DocumentRenderer turns estimate and invoice read models into printable documents.
type DocumentRenderer interface {
	// RenderEstimate renders an estimate. monthlyRate is nil when no monthly
	// projection should be shown.
	RenderEstimate(estimate *domain.EstimateDetail, profile *domain.BusinessProfile, monthlyRate *decimal.Decimal) ([]byte, error)
	RenderInvoice(invoice *domain.InvoiceDetail, lines []domain.InvoiceLine, profile *domain.BusinessProfile) ([]byte, error)
	ContentType() string
}
