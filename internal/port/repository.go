package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"miklean/internal/domain"
)

// ProfileRepository defines the contract for business profile persistence.
type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.BusinessProfile) error
	GetByID(ctx context.Context, businessID uuid.UUID) (*domain.BusinessProfile, error)
	Update(ctx context.Context, profile *domain.BusinessProfile) error
}

// ClientRepository defines the contract for client persistence.
// All query methods include businessID to enforce tenant isolation at the data layer.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	GetByID(ctx context.Context, businessID, clientID uuid.UUID) (*domain.Client, error)
	List(ctx context.Context, businessID uuid.UUID, filter domain.ClientFilter) ([]domain.Client, error)
	CountByType(ctx context.Context, businessID uuid.UUID) (*domain.ClientCounts, error)
	Update(ctx context.Context, client *domain.Client) error
	SetType(ctx context.Context, businessID, clientID uuid.UUID, clientType domain.ClientType) error
}

// EstimateRepository defines the contract for estimate persistence.
type EstimateRepository interface {
	Create(ctx context.Context, estimate *domain.Estimate) error
	GetByID(ctx context.Context, businessID, estimateID uuid.UUID) (*domain.Estimate, error)
	GetDetail(ctx context.Context, businessID, estimateID uuid.UUID) (*domain.EstimateDetail, error)
	ListByClient(ctx context.Context, businessID, clientID uuid.UUID) ([]domain.Estimate, error)
	LatestAccepted(ctx context.Context, businessID, clientID uuid.UUID) (*domain.Estimate, error)
	// Update returns domain.ErrEstimateLocked when the estimate was accepted
	// before the write landed.
	Update(ctx context.Context, estimate *domain.Estimate) error
	// EnsureAcceptToken stores token unless the estimate already has one and
	// returns the token now on record.
	EnsureAcceptToken(ctx context.Context, businessID, estimateID uuid.UUID, token string) (string, error)
	MarkSent(ctx context.Context, businessID, estimateID uuid.UUID, at time.Time) error
	// Accept flips the estimate to accepted and a prospect client to client in
	// one transaction. It reports false when the estimate was already accepted.
	Accept(ctx context.Context, businessID, estimateID uuid.UUID, at time.Time) (bool, error)
	GetByToken(ctx context.Context, estimateID uuid.UUID, token string) (*domain.EstimateDetail, error)
}

// VisitRepository defines the contract for visit persistence.
type VisitRepository interface {
	CreateBatch(ctx context.Context, visits []domain.Visit) error
	GetByID(ctx context.Context, businessID, visitID uuid.UUID) (*domain.Visit, error)
	GetDetail(ctx context.Context, businessID, visitID uuid.UUID) (*domain.VisitDetail, error)
	// Complete, Cancel and Reschedule only touch scheduled visits and return
	// domain.ErrInvalidTransition otherwise.
	Complete(ctx context.Context, businessID, visitID uuid.UUID, notes *string, at time.Time) error
	Cancel(ctx context.Context, businessID, visitID uuid.UUID) error
	Reschedule(ctx context.Context, businessID, visitID uuid.UUID, date domain.Date, scheduledTime *string) error
	// ListFutureRecurring returns the client's scheduled recurring visits dated
	// on or after from, latest first.
	ListFutureRecurring(ctx context.Context, businessID, clientID uuid.UUID, from domain.Date) ([]domain.Visit, error)
	ListByDateRange(ctx context.Context, businessID uuid.UUID, from, to domain.Date) ([]domain.VisitDetail, error)
	ListUpcoming(ctx context.Context, businessID, clientID uuid.UUID, from domain.Date, limit int) ([]domain.Visit, error)
	ListPast(ctx context.Context, businessID, clientID uuid.UUID, before domain.Date, limit int) ([]domain.Visit, error)
	CancelFutureScheduled(ctx context.Context, businessID, clientID uuid.UUID, from domain.Date) (int64, error)
	ListUninvoiced(ctx context.Context, businessID, clientID uuid.UUID) ([]domain.InvoiceLine, error)
	ListInvoiceLines(ctx context.Context, businessID, invoiceID uuid.UUID) ([]domain.InvoiceLine, error)
	ListReminderCandidates(ctx context.Context, date domain.Date) ([]domain.ReminderCandidate, error)
	MarkReminderSent(ctx context.Context, businessID, visitID uuid.UUID, at time.Time) error
}

// InvoiceRepository defines the contract for invoice persistence.
type InvoiceRepository interface {
	// LatestNumber returns the number of the business's most recent invoice,
	// or "" when it has none.
	LatestNumber(ctx context.Context, businessID uuid.UUID) (string, error)
	// CreateWithVisits inserts the invoice and links every visit to it in one
	// transaction. Nothing is written unless every visit can be linked.
	CreateWithVisits(ctx context.Context, invoice *domain.Invoice, visitIDs []uuid.UUID) error
	GetByID(ctx context.Context, businessID, invoiceID uuid.UUID) (*domain.Invoice, error)
	GetDetail(ctx context.Context, businessID, invoiceID uuid.UUID) (*domain.InvoiceDetail, error)
	ListByClient(ctx context.Context, businessID, clientID uuid.UUID, limit int) ([]domain.Invoice, error)
	ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]domain.InvoiceDetail, error)
	MarkSent(ctx context.Context, businessID, invoiceID uuid.UUID, at time.Time) error
	MarkPaid(ctx context.Context, businessID, invoiceID uuid.UUID, at time.Time) error
	GetByToken(ctx context.Context, invoiceID uuid.UUID, token string) (*domain.InvoiceDetail, error)
}

// StatsRepository defines the contract for dashboard aggregates.
type StatsRepository interface {
	GetBusinessStats(ctx context.Context, businessID uuid.UUID, today domain.Date, monthStart time.Time) (*domain.Stats, error)
}
