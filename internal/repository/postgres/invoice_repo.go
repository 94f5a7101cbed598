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

const invoiceDetailSelect = `SELECT i.*,
		c.name AS "client.name", c.phone AS "client.phone",
		c.email AS "client.email", c.address AS "client.address"
	FROM invoices i
	JOIN clients c ON c.id = i.client_id AND c.business_id = i.business_id`

type invoiceRepo struct {
	db *sqlx.DB
}

// NewInvoiceRepo creates a new PostgreSQL-backed InvoiceRepository.
func NewInvoiceRepo(db *sqlx.DB) port.InvoiceRepository {
	return &invoiceRepo{db: db}
}

func (r *invoiceRepo) LatestNumber(ctx context.Context, businessID uuid.UUID) (string, error) {
	var number string
	err := r.db.GetContext(ctx, &number,
		`SELECT invoice_number FROM invoices WHERE business_id = $1
		ORDER BY created_at DESC, invoice_number DESC LIMIT 1`,
		businessID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("invoiceRepo.LatestNumber: %w", err)
	}
	return number, nil
}

func (r *invoiceRepo) CreateWithVisits(ctx context.Context, inv *domain.Invoice, visitIDs []uuid.UUID) error {
	if len(visitIDs) == 0 {
		return domain.ErrNoVisitsSelected
	}

	inv.ID = uuid.New()
	now := time.Now().UTC()
	inv.CreatedAt = now
	inv.UpdatedAt = now
	if inv.Status == "" {
		inv.Status = domain.InvoiceStatusDraft
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("invoiceRepo.CreateWithVisits begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx,
		`INSERT INTO invoices (id, business_id, client_id, invoice_number, subtotal, total,
			status, public_token, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		inv.ID, inv.BusinessID, inv.ClientID, inv.InvoiceNumber, inv.Subtotal, inv.Total,
		inv.Status, inv.PublicToken, inv.CreatedAt, inv.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateInvoiceNum
		}
		return fmt.Errorf("invoiceRepo.CreateWithVisits insert: %w", err)
	}

	query, args, err := sqlx.In(
		`UPDATE visits SET invoice_id = ?, updated_at = ?
		WHERE business_id = ? AND client_id = ? AND status = 'completed' AND invoice_id IS NULL
			AND id IN (?)`,
		inv.ID, now, inv.BusinessID, inv.ClientID, visitIDs)
	if err != nil {
		return fmt.Errorf("invoiceRepo.CreateWithVisits build link: %w", err)
	}
	result, err := tx.ExecContext(ctx, tx.Rebind(query), args...)
	if err != nil {
		return fmt.Errorf("invoiceRepo.CreateWithVisits link: %w", err)
	}
	linked, _ := result.RowsAffected()
	if linked != int64(len(visitIDs)) {
		return domain.ErrVisitNotInvoiceable
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("invoiceRepo.CreateWithVisits commit: %w", err)
	}
	return nil
}

func (r *invoiceRepo) GetByID(ctx context.Context, businessID, invoiceID uuid.UUID) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := r.db.GetContext(ctx, &inv,
		"SELECT * FROM invoices WHERE id = $1 AND business_id = $2", invoiceID, businessID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("invoiceRepo.GetByID: %w", err)
	}
	return &inv, nil
}

func (r *invoiceRepo) GetDetail(ctx context.Context, businessID, invoiceID uuid.UUID) (*domain.InvoiceDetail, error) {
	var d domain.InvoiceDetail
	err := r.db.GetContext(ctx, &d,
		invoiceDetailSelect+" WHERE i.id = $1 AND i.business_id = $2", invoiceID, businessID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("invoiceRepo.GetDetail: %w", err)
	}
	return &d, nil
}

// ListByClient returns the client's invoices, newest first. A limit of zero
// returns all of them.
func (r *invoiceRepo) ListByClient(ctx context.Context, businessID, clientID uuid.UUID, limit int) ([]domain.Invoice, error) {
	query := "SELECT * FROM invoices WHERE business_id = $1 AND client_id = $2 ORDER BY created_at DESC"
	args := []interface{}{businessID, clientID}
	if limit > 0 {
		query += " LIMIT $3"
		args = append(args, limit)
	}

	invoices := []domain.Invoice{}
	if err := r.db.SelectContext(ctx, &invoices, query, args...); err != nil {
		return nil, fmt.Errorf("invoiceRepo.ListByClient: %w", err)
	}
	return invoices, nil
}

func (r *invoiceRepo) ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]domain.InvoiceDetail, error) {
	invoices := []domain.InvoiceDetail{}
	err := r.db.SelectContext(ctx, &invoices,
		invoiceDetailSelect+" WHERE i.business_id = $1 ORDER BY i.created_at DESC", businessID)
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.ListByBusiness: %w", err)
	}
	return invoices, nil
}

// MarkSent records a send. A paid invoice keeps its status.
func (r *invoiceRepo) MarkSent(ctx context.Context, businessID, invoiceID uuid.UUID, at time.Time) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE invoices SET
			status = CASE WHEN status = 'paid' THEN status ELSE 'sent' END,
			sent_at = $1, updated_at = $1
		WHERE id = $2 AND business_id = $3`,
		at, invoiceID, businessID)
	if err != nil {
		return fmt.Errorf("invoiceRepo.MarkSent: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MarkPaid is idempotent: the first payment time is kept.
func (r *invoiceRepo) MarkPaid(ctx context.Context, businessID, invoiceID uuid.UUID, at time.Time) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE invoices SET status = 'paid', paid_at = COALESCE(paid_at, $1), updated_at = $1
		WHERE id = $2 AND business_id = $3`,
		at, invoiceID, businessID)
	if err != nil {
		return fmt.Errorf("invoiceRepo.MarkPaid: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *invoiceRepo) GetByToken(ctx context.Context, invoiceID uuid.UUID, token string) (*domain.InvoiceDetail, error) {
	if token == "" {
		return nil, domain.ErrNotFound
	}
	var d domain.InvoiceDetail
	err := r.db.GetContext(ctx, &d,
		invoiceDetailSelect+" WHERE i.id = $1 AND i.public_token = $2", invoiceID, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("invoiceRepo.GetByToken: %w", err)
	}
	return &d, nil
}
