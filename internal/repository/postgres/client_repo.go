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

type clientRepo struct {
	db *sqlx.DB
}

// NewClientRepo creates a new PostgreSQL-backed ClientRepository.
func NewClientRepo(db *sqlx.DB) port.ClientRepository {
	return &clientRepo{db: db}
}

func (r *clientRepo) Create(ctx context.Context, c *domain.Client) error {
	c.ID = uuid.New()
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	query := `INSERT INTO clients (id, business_id, name, phone, email, street1, street2,
		city, state, zip_code, address, notes, type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.BusinessID, c.Name, c.Phone, c.Email, c.Street1, c.Street2,
		c.City, c.State, c.ZipCode, c.Address, c.Notes, c.Type, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("clientRepo.Create: %w", err)
	}
	return nil
}

func (r *clientRepo) GetByID(ctx context.Context, businessID, clientID uuid.UUID) (*domain.Client, error) {
	var c domain.Client
	err := r.db.GetContext(ctx, &c,
		"SELECT * FROM clients WHERE id = $1 AND business_id = $2", clientID, businessID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("clientRepo.GetByID: %w", err)
	}
	return &c, nil
}

func (r *clientRepo) List(ctx context.Context, businessID uuid.UUID, filter domain.ClientFilter) ([]domain.Client, error) {
	query := "SELECT * FROM clients WHERE business_id = $1"
	args := []interface{}{businessID}

	if filter.Type != "" {
		args = append(args, filter.Type)
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		query += fmt.Sprintf(" AND (name ILIKE $%d OR phone ILIKE $%d OR city ILIKE $%d)", n, n, n)
	}
	query += " ORDER BY name"

	clients := []domain.Client{}
	if err := r.db.SelectContext(ctx, &clients, query, args...); err != nil {
		return nil, fmt.Errorf("clientRepo.List: %w", err)
	}
	return clients, nil
}

func (r *clientRepo) CountByType(ctx context.Context, businessID uuid.UUID) (*domain.ClientCounts, error) {
	var counts domain.ClientCounts
	err := r.db.GetContext(ctx, &counts, `SELECT
			COUNT(*) FILTER (WHERE type = 'prospect') AS prospect,
			COUNT(*) FILTER (WHERE type = 'client') AS client,
			COUNT(*) FILTER (WHERE type = 'inactive') AS inactive
		FROM clients WHERE business_id = $1`, businessID)
	if err != nil {
		return nil, fmt.Errorf("clientRepo.CountByType: %w", err)
	}
	return &counts, nil
}

func (r *clientRepo) Update(ctx context.Context, c *domain.Client) error {
	c.UpdatedAt = time.Now().UTC()
	query := `UPDATE clients SET name = $1, phone = $2, email = $3, street1 = $4, street2 = $5,
		city = $6, state = $7, zip_code = $8, address = $9, notes = $10, type = $11, updated_at = $12
		WHERE id = $13 AND business_id = $14`
	result, err := r.db.ExecContext(ctx, query,
		c.Name, c.Phone, c.Email, c.Street1, c.Street2, c.City, c.State, c.ZipCode,
		c.Address, c.Notes, c.Type, c.UpdatedAt, c.ID, c.BusinessID)
	if err != nil {
		return fmt.Errorf("clientRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *clientRepo) SetType(ctx context.Context, businessID, clientID uuid.UUID, clientType domain.ClientType) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE clients SET type = $1, updated_at = $2 WHERE id = $3 AND business_id = $4",
		clientType, time.Now().UTC(), clientID, businessID)
	if err != nil {
		return fmt.Errorf("clientRepo.SetType: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
