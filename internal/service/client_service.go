package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"miklean/internal/domain"
	"miklean/internal/port"
)

const (
	clientDetailVisitLimit   = 10
	clientDetailInvoiceLimit = 10
)

// ClientInput is the DTO for creating or updating a client.
type ClientInput struct {
	BusinessID uuid.UUID
	Name       string
	Phone      string
	Email      string
	Street1    string
	Street2    string
	City       string
	State      string
	ZipCode    string
	Notes      string
	// Type is only honored on update. Empty keeps the current type.
	Type domain.ClientType
}

// ClientList is a filtered client listing with per-type counts.
type ClientList struct {
	Clients []domain.Client     `json:"clients"`
	Counts  domain.ClientCounts `json:"counts"`
	Total   int                 `json:"total"`
}

// ClientDetail is a client with its estimates, recent visits and invoices.
type ClientDetail struct {
	Client         *domain.Client    `json:"client"`
	Estimates      []domain.Estimate `json:"estimates"`
	UpcomingVisits []domain.Visit    `json:"upcoming_visits"`
	PastVisits     []domain.Visit    `json:"past_visits"`
	Invoices       []domain.Invoice  `json:"invoices"`
}

// ClientService defines the client registry contract.
type ClientService interface {
	Create(ctx context.Context, input *ClientInput) (*domain.Client, error)
	Get(ctx context.Context, businessID, clientID uuid.UUID) (*domain.Client, error)
	List(ctx context.Context, businessID uuid.UUID, filter domain.ClientFilter) (*ClientList, error)
	Update(ctx context.Context, clientID uuid.UUID, input *ClientInput) (*domain.Client, error)
	Convert(ctx context.Context, businessID, clientID uuid.UUID) error
	// Deactivate marks the client inactive and, when cancelVisits is set,
	// cancels its scheduled visits from today on. It returns the number of
	// visits cancelled.
	Deactivate(ctx context.Context, businessID, clientID uuid.UUID, cancelVisits bool) (int64, error)
	Detail(ctx context.Context, businessID, clientID uuid.UUID) (*ClientDetail, error)
}

type clientService struct {
	clientRepo   port.ClientRepository
	estimateRepo port.EstimateRepository
	visitRepo    port.VisitRepository
	invoiceRepo  port.InvoiceRepository
	clock        Clock
	log          *logrus.Logger
}

// NewClientService creates a new ClientService implementation.
func NewClientService(
	clientRepo port.ClientRepository,
	estimateRepo port.EstimateRepository,
	visitRepo port.VisitRepository,
	invoiceRepo port.InvoiceRepository,
	clock Clock,
	log *logrus.Logger,
) ClientService {
	return &clientService{
		clientRepo:   clientRepo,
		estimateRepo: estimateRepo,
		visitRepo:    visitRepo,
		invoiceRepo:  invoiceRepo,
		clock:        clock,
		log:          log,
	}
}

func validateClientInput(input *ClientInput) error {
	verr := &domain.ValidationError{}
	required := []struct {
		value, reason string
	}{
		{input.Name, "name is required"},
		{input.Phone, "phone is required"},
		{input.Street1, "street address is required"},
		{input.City, "city is required"},
		{input.State, "state is required"},
		{input.ZipCode, "ZIP code is required"},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			verr.Add(r.reason)
		}
	}
	if email := strings.TrimSpace(input.Email); email != "" && !strings.Contains(email, "@") {
		verr.Add("email must be a valid address")
	}
	if input.Type != "" && !input.Type.Valid() {
		verr.Add("type must be prospect, client or inactive")
	}
	return verr.OrNil()
}

func applyClientInput(c *domain.Client, input *ClientInput) {
	c.Name = strings.TrimSpace(input.Name)
	c.Phone = strings.TrimSpace(input.Phone)
	c.Email = optional(input.Email)
	c.Street1 = strings.TrimSpace(input.Street1)
	c.Street2 = optional(input.Street2)
	c.City = strings.TrimSpace(input.City)
	c.State = strings.TrimSpace(input.State)
	c.ZipCode = strings.TrimSpace(input.ZipCode)
	c.Notes = optional(input.Notes)
	c.Address = c.FormattedAddress()
}

func (s *clientService) Create(ctx context.Context, input *ClientInput) (*domain.Client, error) {
	if err := validateClientInput(input); err != nil {
		return nil, err
	}

	client := &domain.Client{
		BusinessID: input.BusinessID,
		Type:       domain.ClientTypeProspect,
	}
	applyClientInput(client, input)

	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{
		"business_id": client.BusinessID,
		"client_id":   client.ID,
	}).Info("prospect added")
	return client, nil
}

func (s *clientService) Get(ctx context.Context, businessID, clientID uuid.UUID) (*domain.Client, error) {
	return s.clientRepo.GetByID(ctx, businessID, clientID)
}

func (s *clientService) List(ctx context.Context, businessID uuid.UUID, filter domain.ClientFilter) (*ClientList, error) {
	if filter.Type != "" && !filter.Type.Valid() {
		filter.Type = ""
	}
	filter.Search = strings.TrimSpace(filter.Search)

	clients, err := s.clientRepo.List(ctx, businessID, filter)
	if err != nil {
		return nil, err
	}
	counts, err := s.clientRepo.CountByType(ctx, businessID)
	if err != nil {
		return nil, err
	}
	return &ClientList{
		Clients: clients,
		Counts:  *counts,
		Total:   counts.Prospect + counts.Client + counts.Inactive,
	}, nil
}

func (s *clientService) Update(ctx context.Context, clientID uuid.UUID, input *ClientInput) (*domain.Client, error) {
	if err := validateClientInput(input); err != nil {
		return nil, err
	}

	client, err := s.clientRepo.GetByID(ctx, input.BusinessID, clientID)
	if err != nil {
		return nil, err
	}
	applyClientInput(client, input)
	if input.Type != "" {
		client.Type = input.Type
	}

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *clientService) Convert(ctx context.Context, businessID, clientID uuid.UUID) error {
	return s.clientRepo.SetType(ctx, businessID, clientID, domain.ClientTypeClient)
}

func (s *clientService) Deactivate(ctx context.Context, businessID, clientID uuid.UUID, cancelVisits bool) (int64, error) {
	if err := s.clientRepo.SetType(ctx, businessID, clientID, domain.ClientTypeInactive); err != nil {
		return 0, err
	}
	if !cancelVisits {
		return 0, nil
	}

	cancelled, err := s.visitRepo.CancelFutureScheduled(ctx, businessID, clientID, s.clock.Today())
	if err != nil {
		return 0, fmt.Errorf("clientService.Deactivate: %w", err)
	}
	s.log.WithFields(logrus.Fields{
		"business_id": businessID,
		"client_id":   clientID,
		"cancelled":   cancelled,
	}).Info("client deactivated")
	return cancelled, nil
}

func (s *clientService) Detail(ctx context.Context, businessID, clientID uuid.UUID) (*ClientDetail, error) {
	client, err := s.clientRepo.GetByID(ctx, businessID, clientID)
	if err != nil {
		return nil, err
	}

	estimates, err := s.estimateRepo.ListByClient(ctx, businessID, clientID)
	if err != nil {
		return nil, err
	}
	today := s.clock.Today()
	upcoming, err := s.visitRepo.ListUpcoming(ctx, businessID, clientID, today, clientDetailVisitLimit)
	if err != nil {
		return nil, err
	}
	past, err := s.visitRepo.ListPast(ctx, businessID, clientID, today, clientDetailVisitLimit)
	if err != nil {
		return nil, err
	}
	invoices, err := s.invoiceRepo.ListByClient(ctx, businessID, clientID, clientDetailInvoiceLimit)
	if err != nil {
		return nil, err
	}

	return &ClientDetail{
		Client:         client,
		Estimates:      estimates,
		UpcomingVisits: upcoming,
		PastVisits:     past,
		Invoices:       invoices,
	}, nil
}
