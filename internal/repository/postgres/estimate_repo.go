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

const estimateDetailSelect = `SELECT e.*,
		c.name AS "client.name", c.phone AS "client.phone",
		c.email AS "client.email", c.address AS "client.address"
	FROM estimates e
	JOIN clients c ON c.id = e.client_id AND c.business_id = e.business_id`

type estimateRepo struct {
	db *sqlx.DB
}

// NewEstimateRepo creates a new PostgreSQL-backed EstimateRepository.
func NewEstimateRepo(db *sqlx.DB) port.EstimateRepository {
	return &estimateRepo{db: db}
}

func (r *estimateRepo) Create(ctx context.Context, e *domain.Estimate) error {
	e.ID = uuid.New()
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now
	if e.Status == "" {
		e.Status = domain.EstimateStatusDraft
	}

	query := `INSERT INTO estimates (id, business_id, client_id, description, price_per_visit,
		frequency, preferred_day, preferred_time, show_monthly_rate, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.BusinessID, e.ClientID, e.Description, e.PricePerVisit,
		e.Frequency, e.PreferredDay, e.PreferredTime, e.ShowMonthlyRate, e.Status,
		e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("estimateRepo.Create: %w", err)
	}
	return nil
}

func (r *estimateRepo) GetByID(ctx context.Context, businessID, estimateID uuid.UUID) (*domain.Estimate, error) {
	var e domain.Estimate
	err := r.db.GetContext(ctx, &e,
		"SELECT * FROM estimates WHERE id = $1 AND business_id = $2", estimateID, businessID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("estimateRepo.GetByID: %w", err)
	}
	return &e, nil
}

func (r *estimateRepo) GetDetail(ctx context.Context, businessID, estimateID uuid.UUID) (*domain.EstimateDetail, error) {
	var d domain.EstimateDetail
	err := r.db.GetContext(ctx, &d,
		estimateDetailSelect+" WHERE e.id = $1 AND e.business_id = $2", estimateID, businessID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("estimateRepo.GetDetail: %w", err)
	}
	return &d, nil
}

func (r *estimateRepo) ListByClient(ctx context.Context, businessID, clientID uuid.UUID) ([]domain.Estimate, error) {
	estimates := []domain.Estimate{}
	err := r.db.SelectContext(ctx, &estimates,
		"SELECT * FROM estimates WHERE business_id = $1 AND client_id = $2 ORDER BY created_at DESC",
		businessID, clientID)
	if err != nil {
		return nil, fmt.Errorf("estimateRepo.ListByClient: %w", err)
	}
	return estimates, nil
}

func (r *estimateRepo) LatestAccepted(ctx context.Context, businessID, clientID uuid.UUID) (*domain.Estimate, error) {
	var e domain.Estimate
	err := r.db.GetContext(ctx, &e,
		`SELECT * FROM estimates WHERE business_id = $1 AND client_id = $2 AND status = 'accepted'
		ORDER BY accepted_at DESC NULLS LAST, created_at DESC LIMIT 1`,
		businessID, clientID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("estimateRepo.LatestAccepted: %w", err)
	}
	return &e, nil
}

func (r *estimateRepo) Update(ctx context.Context, e *domain.Estimate) error {
	e.UpdatedAt = time.Now().UTC()
	query := `UPDATE estimates SET description = $1, price_per_visit = $2, frequency = $3,
		preferred_day = $4, preferred_time = $5, show_monthly_rate = $6, updated_at = $7
		WHERE id = $8 AND business_id = $9 AND status <> 'accepted'`
	result, err := r.db.ExecContext(ctx, query,
		e.Description, e.PricePerVisit, e.Frequency, e.PreferredDay, e.PreferredTime,
		e.ShowMonthlyRate, e.UpdatedAt, e.ID, e.BusinessID)
	if err != nil {
		return fmt.Errorf("estimateRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrEstimateLocked
	}
	return nil
}

func (r *estimateRepo) EnsureAcceptToken(ctx context.Context, businessID, estimateID uuid.UUID, token string) (string, error) {
	var stored string
	err := r.db.GetContext(ctx, &stored,
		`UPDATE estimates SET accept_token = COALESCE(accept_token, $1)
		WHERE id = $2 AND business_id = $3 RETURNING accept_token`,
		token, estimateID, businessID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("estimateRepo.EnsureAcceptToken: %w", err)
	}
	return stored, nil
}

// MarkSent records a send. An accepted estimate keeps its status.
func (r *estimateRepo) MarkSent(ctx context.Context, businessID, estimateID uuid.UUID, at time.Time) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE estimates SET
			status = CASE WHEN status = 'accepted' THEN status ELSE 'sent' END,
			sent_at = $1, updated_at = $1
		WHERE id = $2 AND business_id = $3`,
		at, estimateID, businessID)
	if err != nil {
		return fmt.Errorf("estimateRepo.MarkSent: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *estimateRepo) Accept(ctx context.Context, businessID, estimateID uuid.UUID, at time.Time) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("estimateRepo.Accept begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var current struct {
		ClientID uuid.UUID             `db:"client_id"`
		Status   domain.EstimateStatus `db:"status"`
	}
	err = tx.GetContext(ctx, &current,
		"SELECT client_id, status FROM estimates WHERE id = $1 AND business_id = $2 FOR UPDATE",
		estimateID, businessID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, domain.ErrNotFound
		}
		return false, fmt.Errorf("estimateRepo.Accept lookup: %w", err)
	}
	if current.Status == domain.EstimateStatusAccepted {
		return false, nil
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE estimates SET status = 'accepted', accepted_at = $1, updated_at = $1
		WHERE id = $2 AND business_id = $3`,
		at, estimateID, businessID); err != nil {
		return false, fmt.Errorf("estimateRepo.Accept estimate: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE clients SET type = 'client', updated_at = $1
		WHERE id = $2 AND business_id = $3 AND type = 'prospect'`,
		at, current.ClientID, businessID); err != nil {
		return false, fmt.Errorf("estimateRepo.Accept client: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("estimateRepo.Accept commit: %w", err)
	}
	return true, nil
}

func (r *estimateRepo) GetByToken(ctx context.Context, estimateID uuid.UUID, token string) (*domain.EstimateDetail, error) {
	if token == "" {
		return nil, domain.ErrNotFound
	}
	var d domain.EstimateDetail
	err := r.db.GetContext(ctx, &d,
		estimateDetailSelect+" WHERE e.id = $1 AND e.accept_token = $2", estimateID, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("estimateRepo.GetByToken: %w", err)
	}
	return &d, nil
}
