package port

import "context"

// EstimateEmail is the content of an estimate link email.
type EstimateEmail struct {
	ToEmail      string
	ToName       string
	BusinessName string
	AcceptURL    string
}

// InvoiceEmail is the content of an invoice link email.
type InvoiceEmail struct {
	ToEmail             string
	ToName              string
	BusinessName        string
	InvoiceNumber       string
	Total               string
	ViewURL             string
	PaymentInstructions string
}

// EmailSender defines the contract for sending emails.
type EmailSender interface {
	SendEstimateEmail(ctx context.Context, msg EstimateEmail) error
	SendInvoiceEmail(ctx context.Context, msg InvoiceEmail) error
}
