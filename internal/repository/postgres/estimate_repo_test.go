package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"miklean/internal/domain"
	"miklean/internal/repository/postgres"
)

func TestEstimateRepo_Accept(t *testing.T) {
	bizID, estID, clientID := uuid.New(), uuid.New(), uuid.New()
	at := time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC)

	t.Run("flips estimate and prospect", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := postgres.NewEstimateRepo(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT client_id, status FROM estimates WHERE id = \$1 AND business_id = \$2 FOR UPDATE`).
			WithArgs(estID, bizID).
			WillReturnRows(sqlmock.NewRows([]string{"client_id", "status"}).AddRow(clientID.String(), "sent"))
		mock.ExpectExec(`UPDATE estimates SET status = 'accepted'`).
			WithArgs(at, estID, bizID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE clients SET type = 'client'.*type = 'prospect'`).
			WithArgs(at, clientID, bizID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		accepted, err := repo.Accept(context.Background(), bizID, estID, at)
		require.NoError(t, err)
		assert.True(t, accepted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already accepted is a no-op", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := postgres.NewEstimateRepo(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT client_id, status FROM estimates`).
			WithArgs(estID, bizID).
			WillReturnRows(sqlmock.NewRows([]string{"client_id", "status"}).AddRow(clientID.String(), "accepted"))
		mock.ExpectRollback()

		accepted, err := repo.Accept(context.Background(), bizID, estID, at)
		require.NoError(t, err)
		assert.False(t, accepted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := postgres.NewEstimateRepo(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT client_id, status FROM estimates`).
			WillReturnRows(sqlmock.NewRows([]string{"client_id", "status"}))
		mock.ExpectRollback()

		_, err := repo.Accept(context.Background(), bizID, estID, at)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEstimateRepo_Update_LockedOnceAccepted(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewEstimateRepo(db)

	est := &domain.Estimate{
		ID: uuid.New(), BusinessID: uuid.New(), Description: "Deep clean",
		PricePerVisit: decimal.NewFromInt(150), Frequency: domain.FrequencyBiweekly,
	}
	mock.ExpectExec(`UPDATE estimates SET description = \$1.*status <> 'accepted'`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), est)
	assert.ErrorIs(t, err, domain.ErrEstimateLocked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEstimateRepo_EnsureAcceptToken_KeepsExisting(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewEstimateRepo(db)

	bizID, estID := uuid.New(), uuid.New()
	mock.ExpectQuery(`UPDATE estimates SET accept_token = COALESCE\(accept_token, \$1\)`).
		WithArgs("fresh", estID, bizID).
		WillReturnRows(sqlmock.NewRows([]string{"accept_token"}).AddRow("original"))

	got, err := repo.EnsureAcceptToken(context.Background(), bizID, estID, "fresh")
	require.NoError(t, err)
	assert.Equal(t, "original", got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEstimateRepo_GetByToken(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewEstimateRepo(db)

	estID := uuid.New()
	mock.ExpectQuery(`WHERE e.id = \$1 AND e.accept_token = \$2`).
		WithArgs(estID, "wrong").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByToken(context.Background(), estID, "wrong")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
