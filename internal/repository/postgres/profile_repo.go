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

type profileRepo struct {
	db *sqlx.DB
}

// NewProfileRepo creates a new PostgreSQL-backed ProfileRepository.
func NewProfileRepo(db *sqlx.DB) port.ProfileRepository {
	return &profileRepo{db: db}
}

// Create inserts the profile. A concurrent first access that already created
// the row is not an error.
func (r *profileRepo) Create(ctx context.Context, p *domain.BusinessProfile) error {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	query := `INSERT INTO business_profiles (id, email, business_name, business_phone,
		payment_instructions, logo_url, logo_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO NOTHING`

	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.Email, p.BusinessName, p.BusinessPhone,
		p.PaymentInstructions, p.LogoURL, p.LogoKey, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("profileRepo.Create: %w", err)
	}
	return nil
}

func (r *profileRepo) GetByID(ctx context.Context, businessID uuid.UUID) (*domain.BusinessProfile, error) {
	var p domain.BusinessProfile
	err := r.db.GetContext(ctx, &p, "SELECT * FROM business_profiles WHERE id = $1", businessID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("profileRepo.GetByID: %w", err)
	}
	return &p, nil
}

func (r *profileRepo) Update(ctx context.Context, p *domain.BusinessProfile) error {
	p.UpdatedAt = time.Now().UTC()
	query := `UPDATE business_profiles SET business_name = $1, business_phone = $2,
		payment_instructions = $3, logo_url = $4, logo_key = $5, updated_at = $6
		WHERE id = $7`
	result, err := r.db.ExecContext(ctx, query,
		p.BusinessName, p.BusinessPhone, p.PaymentInstructions, p.LogoURL, p.LogoKey,
		p.UpdatedAt, p.ID)
	if err != nil {
		return fmt.Errorf("profileRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
