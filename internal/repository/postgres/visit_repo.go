package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"miklean/internal/domain"
	"miklean/internal/port"
)

const visitDetailSelect = `SELECT v.*,
		c.name AS "client.name", c.phone AS "client.phone",
		c.email AS "client.email", c.address AS "client.address",
		e.description AS "estimate.description", e.price_per_visit AS "estimate.price_per_visit"
	FROM visits v
	JOIN clients c ON c.id = v.client_id AND c.business_id = v.business_id
	LEFT JOIN estimates e ON e.id = v.estimate_id AND e.business_id = v.business_id`

const invoiceLineSelect = `SELECT v.id AS visit_id, v.scheduled_date, v.completed_at,
		e.description, v.price AS visit_price, e.price_per_visit AS estimate_price
	FROM visits v
	LEFT JOIN estimates e ON e.id = v.estimate_id AND e.business_id = v.business_id`

type visitRepo struct {
	db *sqlx.DB
}

// NewVisitRepo creates a new PostgreSQL-backed VisitRepository.
func NewVisitRepo(db *sqlx.DB) port.VisitRepository {
	return &visitRepo{db: db}
}

// CreateBatch inserts all visits in one transaction, assigning IDs and timestamps.
func (r *visitRepo) CreateBatch(ctx context.Context, visits []domain.Visit) error {
	if len(visits) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("visitRepo.CreateBatch begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	query := `INSERT INTO visits (id, business_id, client_id, estimate_id, scheduled_date,
		scheduled_time, status, is_recurring, frequency, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	now := time.Now().UTC()
	for i := range visits {
		v := &visits[i]
		v.ID = uuid.New()
		v.CreatedAt = now
		v.UpdatedAt = now
		if v.Status == "" {
			v.Status = domain.VisitStatusScheduled
		}
		if _, err := tx.ExecContext(ctx, query,
			v.ID, v.BusinessID, v.ClientID, v.EstimateID, v.ScheduledDate,
			v.ScheduledTime, v.Status, v.IsRecurring, v.Frequency, v.Price,
			v.CreatedAt, v.UpdatedAt); err != nil {
			return fmt.Errorf("visitRepo.CreateBatch: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("visitRepo.CreateBatch commit: %w", err)
	}
	return nil
}

func (r *visitRepo) GetByID(ctx context.Context, businessID, visitID uuid.UUID) (*domain.Visit, error) {
	var v domain.Visit
	err := r.db.GetContext(ctx, &v,
		"SELECT * FROM visits WHERE id = $1 AND business_id = $2", visitID, businessID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("visitRepo.GetByID: %w", err)
	}
	return &v, nil
}

func (r *visitRepo) GetDetail(ctx context.Context, businessID, visitID uuid.UUID) (*domain.VisitDetail, error) {
	var d domain.VisitDetail
	err := r.db.GetContext(ctx, &d,
		visitDetailSelect+" WHERE v.id = $1 AND v.business_id = $2", visitID, businessID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("visitRepo.GetDetail: %w", err)
	}
	return &d, nil
}

func (r *visitRepo) Complete(ctx context.Context, businessID, visitID uuid.UUID, notes *string, at time.Time) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE visits SET status = 'completed', completion_notes = $1, completed_at = $2, updated_at = $2
		WHERE id = $3 AND business_id = $4 AND status = 'scheduled'`,
		notes, at, visitID, businessID)
	if err != nil {
		return fmt.Errorf("visitRepo.Complete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return r.missedTransition(ctx, businessID, visitID)
	}
	return nil
}

func (r *visitRepo) Cancel(ctx context.Context, businessID, visitID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE visits SET status = 'cancelled', updated_at = $1
		WHERE id = $2 AND business_id = $3 AND status = 'scheduled'`,
		time.Now().UTC(), visitID, businessID)
	if err != nil {
		return fmt.Errorf("visitRepo.Cancel: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return r.missedTransition(ctx, businessID, visitID)
	}
	return nil
}

// missedTransition explains a status update that touched no rows: the visit
// is either absent for this business or no longer scheduled.
func (r *visitRepo) missedTransition(ctx context.Context, businessID, visitID uuid.UUID) error {
	var status domain.VisitStatus
	err := r.db.GetContext(ctx, &status,
		"SELECT status FROM visits WHERE id = $1 AND business_id = $2", visitID, businessID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("visitRepo.missedTransition: %w", err)
	}
	return domain.ErrInvalidTransition
}

// Reschedule moves a visit to a new date and time whatever its status.

func (r *visitRepo) Reschedule(ctx context.Context, businessID, visitID uuid.UUID, date domain.Date, scheduledTime *string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE visits SET scheduled_date = $1, scheduled_time = $2, reminder_sent_at = NULL, updated_at = $3
		WHERE id = $4 AND business_id = $5`,
		date, scheduledTime, time.Now().UTC(), visitID, businessID)
	if err != nil {
		return fmt.Errorf("visitRepo.Reschedule: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *visitRepo) ListFutureRecurring(ctx context.Context, businessID, clientID uuid.UUID, from domain.Date) ([]domain.Visit, error) {
	visits := []domain.Visit{}
	err := r.db.SelectContext(ctx, &visits,
		`SELECT * FROM visits
		WHERE business_id = $1 AND client_id = $2 AND status = 'scheduled'
			AND is_recurring = TRUE AND scheduled_date >= $3
		ORDER BY scheduled_date DESC`,
		businessID, clientID, from)
	if err != nil {
		return nil, fmt.Errorf("visitRepo.ListFutureRecurring: %w", err)
	}
	return visits, nil
}

// ListByDateRange returns non-cancelled visits in [from, to], ordered by date
// then time with untimed visits last.
func (r *visitRepo) ListByDateRange(ctx context.Context, businessID uuid.UUID, from, to domain.Date) ([]domain.VisitDetail, error) {
	visits := []domain.VisitDetail{}
	err := r.db.SelectContext(ctx, &visits,
		visitDetailSelect+` WHERE v.business_id = $1 AND v.scheduled_date BETWEEN $2 AND $3
			AND v.status <> 'cancelled'
		ORDER BY v.scheduled_date, v.scheduled_time NULLS LAST`,
		businessID, from, to)
	if err != nil {
		return nil, fmt.Errorf("visitRepo.ListByDateRange: %w", err)
	}
	return visits, nil
}

func (r *visitRepo) ListUpcoming(ctx context.Context, businessID, clientID uuid.UUID, from domain.Date, limit int) ([]domain.Visit, error) {
	visits := []domain.Visit{}
	err := r.db.SelectContext(ctx, &visits,
		`SELECT * FROM visits
		WHERE business_id = $1 AND client_id = $2 AND status = 'scheduled' AND scheduled_date >= $3
		ORDER BY scheduled_date, scheduled_time NULLS LAST LIMIT $4`,
		businessID, clientID, from, limit)
	if err != nil {
		return nil, fmt.Errorf("visitRepo.ListUpcoming: %w", err)
	}
	return visits, nil
}

func (r *visitRepo) ListPast(ctx context.Context, businessID, clientID uuid.UUID, before domain.Date, limit int) ([]domain.Visit, error) {
	visits := []domain.Visit{}
	err := r.db.SelectContext(ctx, &visits,
		`SELECT * FROM visits
		WHERE business_id = $1 AND client_id = $2 AND scheduled_date < $3
		ORDER BY scheduled_date DESC LIMIT $4`,
		businessID, clientID, before, limit)
	if err != nil {
		return nil, fmt.Errorf("visitRepo.ListPast: %w", err)
	}
	return visits, nil
}

func (r *visitRepo) CancelFutureScheduled(ctx context.Context, businessID, clientID uuid.UUID, from domain.Date) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE visits SET status = 'cancelled', updated_at = $1
		WHERE business_id = $2 AND client_id = $3 AND status = 'scheduled' AND scheduled_date >= $4`,
		time.Now().UTC(), businessID, clientID, from)
	if err != nil {
		return 0, fmt.Errorf("visitRepo.CancelFutureScheduled: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows, nil
}

func (r *visitRepo) ListUninvoiced(ctx context.Context, businessID, clientID uuid.UUID) ([]domain.InvoiceLine, error) {
	lines := []domain.InvoiceLine{}
	err := r.db.SelectContext(ctx, &lines,
		invoiceLineSelect+` WHERE v.business_id = $1 AND v.client_id = $2
			AND v.status = 'completed' AND v.invoice_id IS NULL
		ORDER BY v.scheduled_date`,
		businessID, clientID)
	if err != nil {
		return nil, fmt.Errorf("visitRepo.ListUninvoiced: %w", err)
	}
	return lines, nil
}

func (r *visitRepo) ListInvoiceLines(ctx context.Context, businessID, invoiceID uuid.UUID) ([]domain.InvoiceLine, error) {
	lines := []domain.InvoiceLine{}
	err := r.db.SelectContext(ctx, &lines,
		invoiceLineSelect+` WHERE v.business_id = $1 AND v.invoice_id = $2
		ORDER BY v.scheduled_date`,
		businessID, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("visitRepo.ListInvoiceLines: %w", err)
	}
	return lines, nil
}

// ListReminderCandidates spans every business: it feeds the scheduled reminder job.
func (r *visitRepo) ListReminderCandidates(ctx context.Context, date domain.Date) ([]domain.ReminderCandidate, error) {
	candidates := []domain.ReminderCandidate{}
	err := r.db.SelectContext(ctx, &candidates,
		`SELECT v.id AS visit_id, v.business_id, v.scheduled_date, v.scheduled_time,
			c.name AS client_name, c.phone AS client_phone, b.business_name
		FROM visits v
		JOIN clients c ON c.id = v.client_id AND c.business_id = v.business_id
		JOIN business_profiles b ON b.id = v.business_id
		WHERE v.scheduled_date = $1 AND v.status = 'scheduled' AND v.reminder_sent_at IS NULL
			AND c.type <> 'inactive'
		ORDER BY v.business_id, v.scheduled_time NULLS LAST`,
		date)
	if err != nil {
		return nil, fmt.Errorf("visitRepo.ListReminderCandidates: %w", err)
	}
	return candidates, nil
}

func (r *visitRepo) MarkReminderSent(ctx context.Context, businessID, visitID uuid.UUID, at time.Time) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE visits SET reminder_sent_at = $1 WHERE id = $2 AND business_id = $3",
		at, visitID, businessID)
	if err != nil {
		return fmt.Errorf("visitRepo.MarkReminderSent: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
