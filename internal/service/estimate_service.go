package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"miklean/internal/domain"
	"miklean/internal/export"
	"miklean/internal/port"
)

// EstimateInput is the DTO for creating or updating an estimate.
type EstimateInput struct {
	BusinessID      uuid.UUID
	ClientID        uuid.UUID
	Description     string
	PricePerVisit   string
	Frequency       domain.Frequency
	PreferredDay    string
	PreferredTime   string
	ShowMonthlyRate bool
}

// EstimateView is an estimate with its client and projected monthly rate.
type EstimateView struct {
	Estimate    *domain.EstimateDetail `json:"estimate"`
	MonthlyRate *decimal.Decimal       `json:"monthly_rate"`
}

// PublicEstimateView is what a client sees on the acceptance page.
type PublicEstimateView struct {
	ID              uuid.UUID             `json:"id"`
	ClientName      string                `json:"client_name"`
	Description     string                `json:"description"`
	PricePerVisit   decimal.Decimal       `json:"price_per_visit"`
	Frequency       domain.Frequency      `json:"frequency"`
	PreferredDay    *string               `json:"preferred_day"`
	PreferredTime   *string               `json:"preferred_time"`
	ShowMonthlyRate bool                  `json:"show_monthly_rate"`
	MonthlyRate     *decimal.Decimal      `json:"monthly_rate"`
	Status          domain.EstimateStatus `json:"status"`
	AcceptedAt      *time.Time            `json:"accepted_at"`
	BusinessName    string                `json:"business_name"`
	BusinessPhone   *string               `json:"business_phone"`
}

// SendInput is the DTO for sending an estimate or invoice link.
type SendInput struct {
	BusinessID uuid.UUID
	ID         uuid.UUID
	Method     domain.SendMethod
}

// SendResult reports where a link was delivered.
type SendResult struct {
	Method    domain.SendMethod `json:"method"`
	Recipient string            `json:"recipient"`
	URL       string            `json:"url"`
}

// AcceptResult reports an acceptance. AlreadyAccepted is set when nothing
// changed because the estimate had been accepted before.
type AcceptResult struct {
	EstimateID      uuid.UUID `json:"estimate_id"`
	ClientName      string    `json:"client_name"`
	AlreadyAccepted bool      `json:"already_accepted"`
}

// RenderedDocument is a rendered estimate or invoice ready for download.
type RenderedDocument struct {
	Filename    string
	ContentType string
	Body        []byte
}

// EstimateService defines the estimate management contract.
type EstimateService interface {
	Create(ctx context.Context, input *EstimateInput) (*domain.Estimate, error)
	Update(ctx context.Context, estimateID uuid.UUID, input *EstimateInput) (*domain.Estimate, error)
	Get(ctx context.Context, businessID, estimateID uuid.UUID) (*EstimateView, error)
	ListByClient(ctx context.Context, businessID, clientID uuid.UUID) ([]domain.Estimate, error)
	Send(ctx context.Context, input *SendInput) (*SendResult, error)
	Accept(ctx context.Context, businessID, estimateID uuid.UUID) (*AcceptResult, error)
	PublicView(ctx context.Context, estimateID uuid.UUID, token string) (*PublicEstimateView, error)
	PublicAccept(ctx context.Context, estimateID uuid.UUID, token string) (*AcceptResult, error)
	RenderPDF(ctx context.Context, businessID, estimateID uuid.UUID) (*RenderedDocument, error)
}

type estimateService struct {
	estimateRepo port.EstimateRepository
	clientRepo   port.ClientRepository
	profileRepo  port.ProfileRepository
	email        port.EmailSender
	sms          port.SMSSender
	renderer     port.DocumentRenderer
	appURL       string
	clock        Clock
	log          *logrus.Logger
}

// NewEstimateService creates a new EstimateService implementation.
func NewEstimateService(
	estimateRepo port.EstimateRepository,
	clientRepo port.ClientRepository,
	profileRepo port.ProfileRepository,
	email port.EmailSender,
	sms port.SMSSender,
	renderer port.DocumentRenderer,
	appURL string,
	clock Clock,
	log *logrus.Logger,
) EstimateService {
	return &estimateService{
		estimateRepo: estimateRepo,
		clientRepo:   clientRepo,
		profileRepo:  profileRepo,
		email:        email,
		sms:          sms,
		renderer:     renderer,
		appURL:       strings.TrimSuffix(appURL, "/"),
		clock:        clock,
		log:          log,
	}
}

func parseEstimateInput(input *EstimateInput) (decimal.Decimal, error) {
	verr := &domain.ValidationError{}
	if strings.TrimSpace(input.Description) == "" {
		verr.Add("service description is required")
	}
	price, err := domain.ParsePrice(input.PricePerVisit)
	if err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			verr.Reasons = append(verr.Reasons, ve.Reasons...)
		}
	}
	if !input.Frequency.Valid() {
		verr.Add("frequency must be weekly, biweekly, monthly or one_time")
	}
	return price, verr.OrNil()
}

func applyEstimateInput(e *domain.Estimate, input *EstimateInput, price decimal.Decimal) {
	e.Description = strings.TrimSpace(input.Description)
	e.PricePerVisit = price
	e.Frequency = input.Frequency
	e.PreferredDay = optional(input.PreferredDay)
	e.PreferredTime = optional(input.PreferredTime)
	e.ShowMonthlyRate = input.ShowMonthlyRate && input.Frequency != domain.FrequencyOneTime
}

func (s *estimateService) Create(ctx context.Context, input *EstimateInput) (*domain.Estimate, error) {
	price, err := parseEstimateInput(input)
	if err != nil {
		return nil, err
	}
	if _, err := s.clientRepo.GetByID(ctx, input.BusinessID, input.ClientID); err != nil {
		return nil, err
	}

	estimate := &domain.Estimate{
		BusinessID: input.BusinessID,
		ClientID:   input.ClientID,
		Status:     domain.EstimateStatusDraft,
	}
	applyEstimateInput(estimate, input, price)

	if err := s.estimateRepo.Create(ctx, estimate); err != nil {
		return nil, err
	}
	return estimate, nil
}

func (s *estimateService) Update(ctx context.Context, estimateID uuid.UUID, input *EstimateInput) (*domain.Estimate, error) {
	estimate, err := s.estimateRepo.GetByID(ctx, input.BusinessID, estimateID)
	if err != nil {
		return nil, err
	}
	if !estimate.Status.Editable() {
		return nil, domain.ErrEstimateLocked
	}

	price, err := parseEstimateInput(input)
	if err != nil {
		return nil, err
	}
	applyEstimateInput(estimate, input, price)

	if err := s.estimateRepo.Update(ctx, estimate); err != nil {
		return nil, err
	}
	return estimate, nil
}

func (s *estimateService) Get(ctx context.Context, businessID, estimateID uuid.UUID) (*EstimateView, error) {
	detail, err := s.estimateRepo.GetDetail(ctx, businessID, estimateID)
	if err != nil {
		return nil, err
	}
	return &EstimateView{Estimate: detail, MonthlyRate: monthlyRateOf(&detail.Estimate)}, nil
}

func (s *estimateService) ListByClient(ctx context.Context, businessID, clientID uuid.UUID) ([]domain.Estimate, error) {
	return s.estimateRepo.ListByClient(ctx, businessID, clientID)
}

func (s *estimateService) Send(ctx context.Context, input *SendInput) (*SendResult, error) {
	if !input.Method.Valid() {
		return nil, domain.NewValidationError("method must be email or text")
	}

	detail, err := s.estimateRepo.GetDetail(ctx, input.BusinessID, input.ID)
	if err != nil {
		return nil, err
	}
	if input.Method == domain.SendMethodEmail && (detail.Client.Email == nil || *detail.Client.Email == "") {
		return nil, domain.ErrClientEmailMissing
	}

	fresh, err := newPublicToken()
	if err != nil {
		return nil, err
	}
	token, err := s.estimateRepo.EnsureAcceptToken(ctx, input.BusinessID, input.ID, fresh)
	if err != nil {
		return nil, err
	}
	acceptURL := fmt.Sprintf("%s/accept/%s/%s", s.appURL, input.ID, token)
	businessName := s.businessName(ctx, input.BusinessID)

	result := &SendResult{Method: input.Method, URL: acceptURL}
	switch input.Method {
	case domain.SendMethodEmail:
		result.Recipient = *detail.Client.Email
		err = s.email.SendEstimateEmail(ctx, port.EstimateEmail{
			ToEmail:      result.Recipient,
			ToName:       detail.Client.Name,
			BusinessName: businessName,
			AcceptURL:    acceptURL,
		})
	case domain.SendMethodText:
		result.Recipient = detail.Client.Phone
		err = s.sms.SendSMS(ctx, result.Recipient, EstimateTextMessage(detail.Client.Name, businessName, acceptURL))
	}
	if err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"business_id": input.BusinessID,
			"estimate_id": input.ID,
			"method":      input.Method,
		}).Error("estimate delivery failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrDeliveryFailed, err)
	}

	if err := s.estimateRepo.MarkSent(ctx, input.BusinessID, input.ID, s.clock().UTC()); err != nil {
		return nil, err
	}
	return result, nil
}

// EstimateTextMessage is the text sent with an estimate link.
func EstimateTextMessage(clientName, businessName, acceptURL string) string {
	return fmt.Sprintf("Hi %s! %s sent you an estimate. View and accept here: %s", clientName, businessName, acceptURL)
}

func (s *estimateService) Accept(ctx context.Context, businessID, estimateID uuid.UUID) (*AcceptResult, error) {
	detail, err := s.estimateRepo.GetDetail(ctx, businessID, estimateID)
	if err != nil {
		return nil, err
	}
	return s.accept(ctx, detail)
}

func (s *estimateService) PublicView(ctx context.Context, estimateID uuid.UUID, token string) (*PublicEstimateView, error) {
	detail, err := s.estimateRepo.GetByToken(ctx, estimateID, token)
	if err != nil {
		return nil, err
	}

	view := &PublicEstimateView{
		ID:              detail.ID,
		ClientName:      detail.Client.Name,
		Description:     detail.Description,
		PricePerVisit:   detail.PricePerVisit,
		Frequency:       detail.Frequency,
		PreferredDay:    detail.PreferredDay,
		PreferredTime:   detail.PreferredTime,
		ShowMonthlyRate: detail.ShowMonthlyRate,
		MonthlyRate:     monthlyRateOf(&detail.Estimate),
		Status:          detail.Status,
		AcceptedAt:      detail.AcceptedAt,
	}
	profile, err := s.profileRepo.GetByID(ctx, detail.BusinessID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	view.BusinessName = profile.DisplayName()
	if profile != nil {
		view.BusinessPhone = profile.BusinessPhone
	}
	return view, nil
}

func (s *estimateService) PublicAccept(ctx context.Context, estimateID uuid.UUID, token string) (*AcceptResult, error) {
	detail, err := s.estimateRepo.GetByToken(ctx, estimateID, token)
	if err != nil {
		return nil, err
	}
	return s.accept(ctx, detail)
}

func (s *estimateService) accept(ctx context.Context, detail *domain.EstimateDetail) (*AcceptResult, error) {
	changed, err := s.estimateRepo.Accept(ctx, detail.BusinessID, detail.ID, s.clock().UTC())
	if err != nil {
		return nil, err
	}
	if changed {
		s.log.WithFields(logrus.Fields{
			"business_id": detail.BusinessID,
			"estimate_id": detail.ID,
			"client_id":   detail.ClientID,
		}).Info("estimate accepted")
	}
	return &AcceptResult{
		EstimateID:      detail.ID,
		ClientName:      detail.Client.Name,
		AlreadyAccepted: !changed,
	}, nil
}

func (s *estimateService) RenderPDF(ctx context.Context, businessID, estimateID uuid.UUID) (*RenderedDocument, error) {
	detail, err := s.estimateRepo.GetDetail(ctx, businessID, estimateID)
	if err != nil {
		return nil, err
	}
	profile, err := s.profileRepo.GetByID(ctx, businessID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	var rate *decimal.Decimal
	if detail.ShowMonthlyRate {
		rate = monthlyRateOf(&detail.Estimate)
	}
	body, err := s.renderer.RenderEstimate(detail, profile, rate)
	if err != nil {
		return nil, fmt.Errorf("estimateService.RenderPDF: %w", err)
	}
	return &RenderedDocument{
		Filename:    export.DocumentFilename("Estimate", detail.Client.Name, "pdf"),
		ContentType: s.renderer.ContentType(),
		Body:        body,
	}, nil
}

func (s *estimateService) businessName(ctx context.Context, businessID uuid.UUID) string {
	profile, err := s.profileRepo.GetByID(ctx, businessID)
	if err != nil {
		return (*domain.BusinessProfile)(nil).DisplayName()
	}
	return profile.DisplayName()
}

func monthlyRateOf(e *domain.Estimate) *decimal.Decimal {
	rate, ok := e.MonthlyRate()
	if !ok {
		return nil
	}
	return &rate
}
