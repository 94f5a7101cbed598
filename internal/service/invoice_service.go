package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"miklean/internal/domain"
	"miklean/internal/export"
	"miklean/internal/port"
)

const textPaymentExcerpt = 100

// CreateInvoiceInput is the DTO for invoicing completed visits.
type CreateInvoiceInput struct {
	BusinessID uuid.UUID
	ClientID   uuid.UUID
	VisitIDs   []uuid.UUID
}

// LineItem is an invoiceable or invoiced visit with its effective price.
// Amount is null when neither the visit nor its estimate carries a price.
type LineItem struct {
	VisitID       uuid.UUID           `json:"visit_id"`
	ScheduledDate domain.Date         `json:"scheduled_date"`
	CompletedAt   *time.Time          `json:"completed_at"`
	Description   *string             `json:"description"`
	Amount        decimal.NullDecimal `json:"amount"`
}

// InvoiceView is an invoice with its client and line items.
type InvoiceView struct {
	Invoice *domain.InvoiceDetail `json:"invoice"`
	Lines   []LineItem            `json:"lines"`
}

// PublicInvoiceView is what a client sees on the shared invoice page.
type PublicInvoiceView struct {
	ID                  uuid.UUID            `json:"id"`
	InvoiceNumber       string               `json:"invoice_number"`
	ClientName          string               `json:"client_name"`
	Status              domain.InvoiceStatus `json:"status"`
	Subtotal            decimal.Decimal      `json:"subtotal"`
	Total               decimal.Decimal      `json:"total"`
	CreatedAt           time.Time            `json:"created_at"`
	Lines               []LineItem           `json:"lines"`
	BusinessName        string               `json:"business_name"`
	BusinessPhone       *string              `json:"business_phone"`
	PaymentInstructions *string              `json:"payment_instructions"`
}

// InvoiceService defines the invoicing contract.
type InvoiceService interface {
	Uninvoiced(ctx context.Context, businessID, clientID uuid.UUID) ([]LineItem, error)
	Create(ctx context.Context, input *CreateInvoiceInput) (*domain.Invoice, error)
	Get(ctx context.Context, businessID, invoiceID uuid.UUID) (*InvoiceView, error)
	ListByClient(ctx context.Context, businessID, clientID uuid.UUID) ([]domain.Invoice, error)
	ListAll(ctx context.Context, businessID uuid.UUID) ([]domain.InvoiceDetail, error)
	Send(ctx context.Context, input *SendInput) (*SendResult, error)
	MarkPaid(ctx context.Context, businessID, invoiceID uuid.UUID) error
	PublicView(ctx context.Context, invoiceID uuid.UUID, token string) (*PublicInvoiceView, error)
	RenderPDF(ctx context.Context, businessID, invoiceID uuid.UUID) (*RenderedDocument, error)
	ExportWorkbook(ctx context.Context, businessID uuid.UUID, w io.Writer) error
}

type invoiceService struct {
	invoiceRepo port.InvoiceRepository
	visitRepo   port.VisitRepository
	clientRepo  port.ClientRepository
	profileRepo port.ProfileRepository
	email       port.EmailSender
	sms         port.SMSSender
	renderer    port.DocumentRenderer
	locks       *KeyedMutex
	appURL      string
	clock       Clock
	log         *logrus.Logger
}

// NewInvoiceService creates a new InvoiceService implementation.
func NewInvoiceService(
	invoiceRepo port.InvoiceRepository,
	visitRepo port.VisitRepository,
	clientRepo port.ClientRepository,
	profileRepo port.ProfileRepository,
	email port.EmailSender,
	sms port.SMSSender,
	renderer port.DocumentRenderer,
	locks *KeyedMutex,
	appURL string,
	clock Clock,
	log *logrus.Logger,
) InvoiceService {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		visitRepo:   visitRepo,
		clientRepo:  clientRepo,
		profileRepo: profileRepo,
		email:       email,
		sms:         sms,
		renderer:    renderer,
		locks:       locks,
		appURL:      strings.TrimSuffix(appURL, "/"),
		clock:       clock,
		log:         log,
	}
}

func toLineItems(lines []domain.InvoiceLine) []LineItem {
	items := make([]LineItem, 0, len(lines))
	for i := range lines {
		item := LineItem{
			VisitID:       lines[i].VisitID,
			ScheduledDate: lines[i].ScheduledDate,
			CompletedAt:   lines[i].CompletedAt,
			Description:   lines[i].Description,
		}
		if amount, ok := lines[i].Amount(); ok {
			item.Amount = decimal.NewNullDecimal(amount)
		}
		items = append(items, item)
	}
	return items
}

func (s *invoiceService) Uninvoiced(ctx context.Context, businessID, clientID uuid.UUID) ([]LineItem, error) {
	if _, err := s.clientRepo.GetByID(ctx, businessID, clientID); err != nil {
		return nil, err
	}
	lines, err := s.visitRepo.ListUninvoiced(ctx, businessID, clientID)
	if err != nil {
		return nil, err
	}
	return toLineItems(lines), nil
}

func (s *invoiceService) Create(ctx context.Context, input *CreateInvoiceInput) (*domain.Invoice, error) {
	if len(input.VisitIDs) == 0 {
		return nil, domain.ErrNoVisitsSelected
	}
	if _, err := s.clientRepo.GetByID(ctx, input.BusinessID, input.ClientID); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(input.BusinessID)
	defer unlock()

	available, err := s.visitRepo.ListUninvoiced(ctx, input.BusinessID, input.ClientID)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*domain.InvoiceLine, len(available))
	for i := range available {
		byID[available[i].VisitID] = &available[i]
	}

	total := decimal.Zero
	seen := make(map[uuid.UUID]bool, len(input.VisitIDs))
	visitIDs := make([]uuid.UUID, 0, len(input.VisitIDs))
	for _, id := range input.VisitIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		line, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("visit %s: %w", id, domain.ErrVisitNotInvoiceable)
		}
		amount, ok := line.Amount()
		if !ok {
			return nil, fmt.Errorf("visit on %s: %w", line.ScheduledDate, domain.ErrVisitPriceMissing)
		}
		total = total.Add(amount)
		visitIDs = append(visitIDs, id)
	}

	last, err := s.invoiceRepo.LatestNumber(ctx, input.BusinessID)
	if err != nil {
		return nil, err
	}
	token, err := newPublicToken()
	if err != nil {
		return nil, err
	}

	invoice := &domain.Invoice{
		BusinessID:    input.BusinessID,
		ClientID:      input.ClientID,
		InvoiceNumber: domain.NextInvoiceNumber(last),
		Subtotal:      total,
		Total:         total,
		Status:        domain.InvoiceStatusDraft,
		PublicToken:   &token,
	}
	if err := s.invoiceRepo.CreateWithVisits(ctx, invoice, visitIDs); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"business_id":    input.BusinessID,
		"client_id":      input.ClientID,
		"invoice_id":     invoice.ID,
		"invoice_number": invoice.InvoiceNumber,
		"visits":         len(visitIDs),
	}).Info("invoice created")
	return invoice, nil
}

func (s *invoiceService) Get(ctx context.Context, businessID, invoiceID uuid.UUID) (*InvoiceView, error) {
	detail, err := s.invoiceRepo.GetDetail(ctx, businessID, invoiceID)
	if err != nil {
		return nil, err
	}
	lines, err := s.visitRepo.ListInvoiceLines(ctx, businessID, invoiceID)
	if err != nil {
		return nil, err
	}
	return &InvoiceView{Invoice: detail, Lines: toLineItems(lines)}, nil
}

func (s *invoiceService) ListByClient(ctx context.Context, businessID, clientID uuid.UUID) ([]domain.Invoice, error) {
	return s.invoiceRepo.ListByClient(ctx, businessID, clientID, 0)
}

func (s *invoiceService) ListAll(ctx context.Context, businessID uuid.UUID) ([]domain.InvoiceDetail, error) {
	return s.invoiceRepo.ListByBusiness(ctx, businessID)
}

func (s *invoiceService) Send(ctx context.Context, input *SendInput) (*SendResult, error) {
	if !input.Method.Valid() {
		return nil, domain.NewValidationError("method must be email or text")
	}

	detail, err := s.invoiceRepo.GetDetail(ctx, input.BusinessID, input.ID)
	if err != nil {
		return nil, err
	}
	if input.Method == domain.SendMethodEmail && (detail.Client.Email == nil || *detail.Client.Email == "") {
		return nil, domain.ErrClientEmailMissing
	}
	if detail.PublicToken == nil {
		return nil, fmt.Errorf("invoiceService.Send: invoice %s has no public token", detail.ID)
	}

	profile, err := s.profileRepo.GetByID(ctx, input.BusinessID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	businessName := profile.DisplayName()
	payment := ""
	if profile != nil && profile.PaymentInstructions != nil {
		payment = *profile.PaymentInstructions
	}

	viewURL := fmt.Sprintf("%s/invoices/view/%s/%s", s.appURL, detail.ID, *detail.PublicToken)
	result := &SendResult{Method: input.Method, URL: viewURL}
	switch input.Method {
	case domain.SendMethodEmail:
		result.Recipient = *detail.Client.Email
		err = s.email.SendInvoiceEmail(ctx, port.InvoiceEmail{
			ToEmail:             result.Recipient,
			ToName:              detail.Client.Name,
			BusinessName:        businessName,
			InvoiceNumber:       detail.InvoiceNumber,
			Total:               domain.FormatMoney(detail.Total),
			ViewURL:             viewURL,
			PaymentInstructions: payment,
		})
	case domain.SendMethodText:
		result.Recipient = detail.Client.Phone
		err = s.sms.SendSMS(ctx, result.Recipient,
			InvoiceTextMessage(detail.Client.Name, detail.InvoiceNumber, detail.Total, businessName, payment, viewURL))
	}
	if err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"business_id": input.BusinessID,
			"invoice_id":  input.ID,
			"method":      input.Method,
		}).Error("invoice delivery failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrDeliveryFailed, err)
	}

	if err := s.invoiceRepo.MarkSent(ctx, input.BusinessID, input.ID, s.clock().UTC()); err != nil {
		return nil, err
	}
	return result, nil
}

// InvoiceTextMessage is the text sent with an invoice link. Payment
// instructions are cut to a short excerpt.
func InvoiceTextMessage(clientName, number string, total decimal.Decimal, businessName, payment, viewURL string) string {
	msg := fmt.Sprintf("Hi %s! Invoice %s for %s from %s.", clientName, number, domain.FormatMoney(total), businessName)
	if payment = strings.TrimSpace(payment); payment != "" {
		if r := []rune(payment); len(r) > textPaymentExcerpt {
			payment = string(r[:textPaymentExcerpt])
		}
		msg += " Payment: " + payment
	}
	return msg + " View: " + viewURL
}

func (s *invoiceService) MarkPaid(ctx context.Context, businessID, invoiceID uuid.UUID) error {
	return s.invoiceRepo.MarkPaid(ctx, businessID, invoiceID, s.clock().UTC())
}

func (s *invoiceService) PublicView(ctx context.Context, invoiceID uuid.UUID, token string) (*PublicInvoiceView, error) {
	detail, err := s.invoiceRepo.GetByToken(ctx, invoiceID, token)
	if err != nil {
		return nil, err
	}
	lines, err := s.visitRepo.ListInvoiceLines(ctx, detail.BusinessID, detail.ID)
	if err != nil {
		return nil, err
	}

	view := &PublicInvoiceView{
		ID:            detail.ID,
		InvoiceNumber: detail.InvoiceNumber,
		ClientName:    detail.Client.Name,
		Status:        detail.Status,
		Subtotal:      detail.Subtotal,
		Total:         detail.Total,
		CreatedAt:     detail.CreatedAt,
		Lines:         toLineItems(lines),
	}
	profile, err := s.profileRepo.GetByID(ctx, detail.BusinessID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	view.BusinessName = profile.DisplayName()
	if profile != nil {
		view.BusinessPhone = profile.BusinessPhone
		view.PaymentInstructions = profile.PaymentInstructions
	}
	return view, nil
}

func (s *invoiceService) RenderPDF(ctx context.Context, businessID, invoiceID uuid.UUID) (*RenderedDocument, error) {
	detail, err := s.invoiceRepo.GetDetail(ctx, businessID, invoiceID)
	if err != nil {
		return nil, err
	}
	lines, err := s.visitRepo.ListInvoiceLines(ctx, businessID, invoiceID)
	if err != nil {
		return nil, err
	}
	profile, err := s.profileRepo.GetByID(ctx, businessID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	body, err := s.renderer.RenderInvoice(detail, lines, profile)
	if err != nil {
		return nil, fmt.Errorf("invoiceService.RenderPDF: %w", err)
	}
	return &RenderedDocument{
		Filename:    export.DocumentFilename(detail.InvoiceNumber, detail.Client.Name, "pdf"),
		ContentType: s.renderer.ContentType(),
		Body:        body,
	}, nil
}

func (s *invoiceService) ExportWorkbook(ctx context.Context, businessID uuid.UUID, w io.Writer) error {
	invoices, err := s.invoiceRepo.ListByBusiness(ctx, businessID)
	if err != nil {
		return err
	}
	return export.WriteInvoiceWorkbook(w, invoices)
}
