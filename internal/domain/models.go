package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BusinessProfile is the owning business. Its ID is the identity provider's
// subject for the business account and scopes every other record.
type BusinessProfile struct {
	ID                  uuid.UUID `db:"id" json:"id"`
	Email               string    `db:"email" json:"email"`
	BusinessName        *string   `db:"business_name" json:"business_name"`
	BusinessPhone       *string   `db:"business_phone" json:"business_phone"`
	PaymentInstructions *string   `db:"payment_instructions" json:"payment_instructions"`
	LogoURL             *string   `db:"logo_url" json:"logo_url"`
	LogoKey             *string   `db:"logo_key" json:"-"`
	CreatedAt           time.Time `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time `db:"updated_at" json:"updated_at"`
}

// DisplayName returns the business name, or a generic fallback.
func (p *BusinessProfile) DisplayName() string {
	if p == nil || p.BusinessName == nil || *p.BusinessName == "" {
		return "Your cleaning service"
	}
	return *p.BusinessName
}

// Client is a customer or prospective customer of a business.
type Client struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	BusinessID uuid.UUID  `db:"business_id" json:"business_id"`
	Name       string     `db:"name" json:"name"`
	Phone      string     `db:"phone" json:"phone"`
	Email      *string    `db:"email" json:"email"`
	Street1    string     `db:"street1" json:"street1"`
	Street2    *string    `db:"street2" json:"street2"`
	City       string     `db:"city" json:"city"`
	State      string     `db:"state" json:"state"`
	ZipCode    string     `db:"zip_code" json:"zip_code"`
	Address    string     `db:"address" json:"address"`
	Notes      *string    `db:"notes" json:"notes"`
	Type       ClientType `db:"type" json:"type"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`
}

// FormattedAddress builds the one-line address from the structured parts.
func (c *Client) FormattedAddress() string {
	street2 := ""
	if c.Street2 != nil {
		street2 = *c.Street2
	}
	return FormatAddress(c.Street1, street2, c.City, c.State, c.ZipCode)
}

// ClientFilter narrows a client listing.
type ClientFilter struct {
	Type   ClientType
	Search string
}

// ClientCounts is the number of clients per type.
type ClientCounts struct {
	Prospect int `db:"prospect" json:"prospect"`
	Client   int `db:"client" json:"client"`
	Inactive int `db:"inactive" json:"inactive"`
}

// ClientSummary is the client data embedded in visit, estimate and invoice views.
type ClientSummary struct {
	Name    string  `db:"name" json:"name"`
	Phone   string  `db:"phone" json:"phone"`
	Email   *string `db:"email" json:"email"`
	Address string  `db:"address" json:"address"`
}

// Estimate is a priced service proposal sent to a client.
type Estimate struct {
	ID              uuid.UUID       `db:"id" json:"id"`
	BusinessID      uuid.UUID       `db:"business_id" json:"business_id"`
	ClientID        uuid.UUID       `db:"client_id" json:"client_id"`
	Description     string          `db:"description" json:"description"`
	PricePerVisit   decimal.Decimal `db:"price_per_visit" json:"price_per_visit"`
	Frequency       Frequency       `db:"frequency" json:"frequency"`
	PreferredDay    *string         `db:"preferred_day" json:"preferred_day"`
	PreferredTime   *string         `db:"preferred_time" json:"preferred_time"`
	ShowMonthlyRate bool            `db:"show_monthly_rate" json:"show_monthly_rate"`
	Status          EstimateStatus  `db:"status" json:"status"`
	AcceptToken     *string         `db:"accept_token" json:"-"`
	SentAt          *time.Time      `db:"sent_at" json:"sent_at"`
	AcceptedAt      *time.Time      `db:"accepted_at" json:"accepted_at"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updated_at"`
}

// MonthlyRate returns the projected monthly amount for this estimate.
func (e *Estimate) MonthlyRate() (decimal.Decimal, bool) {
	return MonthlyRate(e.PricePerVisit, e.Frequency)
}

// EstimateDetail is an estimate joined with its client.
type EstimateDetail struct {
	Estimate
	Client ClientSummary `db:"client" json:"client"`
}

// EstimateRef is the optional estimate data joined onto a visit.
type EstimateRef struct {
	Description   *string             `db:"description" json:"description"`
	PricePerVisit decimal.NullDecimal `db:"price_per_visit" json:"price_per_visit"`
}

// Visit is a single scheduled, completed or cancelled cleaning appointment.
type Visit struct {
	ID              uuid.UUID           `db:"id" json:"id"`
	BusinessID      uuid.UUID           `db:"business_id" json:"business_id"`
	ClientID        uuid.UUID           `db:"client_id" json:"client_id"`
	EstimateID      *uuid.UUID          `db:"estimate_id" json:"estimate_id"`
	ScheduledDate   Date                `db:"scheduled_date" json:"scheduled_date"`
	ScheduledTime   *string             `db:"scheduled_time" json:"scheduled_time"`
	Status          VisitStatus         `db:"status" json:"status"`
	IsRecurring     bool                `db:"is_recurring" json:"is_recurring"`
	Frequency       *Frequency          `db:"frequency" json:"frequency"`
	Price           decimal.NullDecimal `db:"price" json:"price"`
	InvoiceID       *uuid.UUID          `db:"invoice_id" json:"invoice_id"`
	CompletionNotes *string             `db:"completion_notes" json:"completion_notes"`
	CompletedAt     *time.Time          `db:"completed_at" json:"completed_at"`
	ReminderSentAt  *time.Time          `db:"reminder_sent_at" json:"-"`
	CreatedAt       time.Time           `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time           `db:"updated_at" json:"updated_at"`
}

// VisitDetail is a visit joined with its client and, when present, its estimate.
type VisitDetail struct {
	Visit
	Client   ClientSummary `db:"client" json:"client"`
	Estimate EstimateRef   `db:"estimate" json:"estimate"`
}

// InvoiceLine is a completed visit as it appears on an invoice.
type InvoiceLine struct {
	VisitID       uuid.UUID           `db:"visit_id" json:"visit_id"`
	ScheduledDate Date                `db:"scheduled_date" json:"scheduled_date"`
	CompletedAt   *time.Time          `db:"completed_at" json:"completed_at"`
	Description   *string             `db:"description" json:"description"`
	VisitPrice    decimal.NullDecimal `db:"visit_price" json:"-"`
	EstimatePrice decimal.NullDecimal `db:"estimate_price" json:"-"`
}

// Amount is the price billed for the line: the visit's own price when set,
// otherwise the estimate's price per visit.
func (l *InvoiceLine) Amount() (decimal.Decimal, bool) {
	if l.VisitPrice.Valid {
		return l.VisitPrice.Decimal, true
	}
	if l.EstimatePrice.Valid {
		return l.EstimatePrice.Decimal, true
	}
	return decimal.Zero, false
}

// Invoice bills a client for a set of completed visits.
type Invoice struct {
	ID            uuid.UUID       `db:"id" json:"id"`
	BusinessID    uuid.UUID       `db:"business_id" json:"business_id"`
	ClientID      uuid.UUID       `db:"client_id" json:"client_id"`
	InvoiceNumber string          `db:"invoice_number" json:"invoice_number"`
	Subtotal      decimal.Decimal `db:"subtotal" json:"subtotal"`
	Total         decimal.Decimal `db:"total" json:"total"`
	Status        InvoiceStatus   `db:"status" json:"status"`
	PublicToken   *string         `db:"public_token" json:"-"`
	SentAt        *time.Time      `db:"sent_at" json:"sent_at"`
	PaidAt        *time.Time      `db:"paid_at" json:"paid_at"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updated_at"`
}

// InvoiceDetail is an invoice joined with its client.
type InvoiceDetail struct {
	Invoice
	Client ClientSummary `db:"client" json:"client"`
}

// ReminderCandidate is a scheduled visit due for a day-ahead reminder.
type ReminderCandidate struct {
	VisitID       uuid.UUID `db:"visit_id"`
	BusinessID    uuid.UUID `db:"business_id"`
	ScheduledDate Date      `db:"scheduled_date"`
	ScheduledTime *string   `db:"scheduled_time"`
	ClientName    string    `db:"client_name"`
	ClientPhone   string    `db:"client_phone"`
	BusinessName  *string   `db:"business_name"`
}
