package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"miklean/internal/domain"
	"miklean/internal/port"
)

type statsRepo struct {
	db *sqlx.DB
}

// NewStatsRepo creates a new PostgreSQL-backed StatsRepository.
func NewStatsRepo(db *sqlx.DB) port.StatsRepository {
	return &statsRepo{db: db}
}

const businessStatsQuery = `SELECT
	COUNT(CASE WHEN c.type = 'prospect' THEN 1 END) AS "clients.prospect",
	COUNT(CASE WHEN c.type = 'client' THEN 1 END) AS "clients.client",
	COUNT(CASE WHEN c.type = 'inactive' THEN 1 END) AS "clients.inactive",
	(SELECT COUNT(*) FROM visits v
		WHERE v.business_id = $1 AND v.status <> 'cancelled' AND v.scheduled_date = $2) AS visits_today,
	(SELECT COUNT(*) FROM visits v
		WHERE v.business_id = $1 AND v.status = 'scheduled'
		AND v.scheduled_date >= $2 AND v.scheduled_date < $3) AS visits_next_7_days,
	(SELECT COUNT(*) FROM visits v
		WHERE v.business_id = $1 AND v.status = 'completed' AND v.invoice_id IS NULL) AS uninvoiced_visits,
	(SELECT COUNT(*) FROM invoices i
		WHERE i.business_id = $1 AND i.status = 'sent') AS outstanding_invoices,
	(SELECT COALESCE(SUM(i.total), 0) FROM invoices i
		WHERE i.business_id = $1 AND i.status = 'sent') AS outstanding_total,
	(SELECT COALESCE(SUM(i.total), 0) FROM invoices i
		WHERE i.business_id = $1 AND i.status = 'paid' AND i.paid_at >= $4) AS paid_this_month
FROM clients c WHERE c.business_id = $1`

func (r *statsRepo) GetBusinessStats(ctx context.Context, businessID uuid.UUID, today domain.Date, monthStart time.Time) (*domain.Stats, error) {
	var stats domain.Stats
	if err := r.db.GetContext(ctx, &stats, businessStatsQuery,
		businessID, today, today.AddDays(7), monthStart); err != nil {
		return nil, fmt.Errorf("statsRepo.GetBusinessStats: %w", err)
	}
	return &stats, nil
}
