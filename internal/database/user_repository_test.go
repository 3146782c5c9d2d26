package database

import (
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tripmark/booking-backend/internal/models"
)

var userColumns = []string{
	"id", "name", "email", "password_hash", "role", "status",
	"photo_url", "created_at", "updated_at",
}

func TestCreateUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	t.Run("Success", func(t *testing.T) {
		user := &models.User{
			Name:         "Amal Perera",
			Email:        "amal@example.com",
			PasswordHash: "$2a$12$hash",
			Role:         models.RoleTraveler,
			Status:       models.AccountStatusApproved,
		}

		mock.ExpectExec(`INSERT INTO users`).
			WithArgs(sqlmock.AnyArg(), user.Name, user.Email, user.PasswordHash,
				user.Role, user.Status, user.PhotoURL, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Create(user)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, user.ID)
		assert.False(t, user.CreatedAt.IsZero())

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Duplicate Email", func(t *testing.T) {
		user := &models.User{
			Name:         "Amal Perera",
			Email:        "amal@example.com",
			PasswordHash: "$2a$12$hash",
			Role:         models.RoleTraveler,
			Status:       models.AccountStatusApproved,
		}

		mock.ExpectExec(`INSERT INTO users`).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

		err := repo.Create(user)
		require.Error(t, err)
		assert.True(t, IsUniqueViolation(err))

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database Error", func(t *testing.T) {
		user := &models.User{
			Name:  "Amal Perera",
			Email: "amal@example.com",
			Role:  models.RoleTraveler,
		}

		mock.ExpectExec(`INSERT INTO users`).
			WillReturnError(fmt.Errorf("database error"))

		err := repo.Create(user)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create user")

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetUserByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	t.Run("Success", func(t *testing.T) {
		userID := uuid.New()
		now := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM users`).
			WithArgs("amal@example.com").
			WillReturnRows(sqlmock.NewRows(userColumns).AddRow(
				userID, "Amal Perera", "amal@example.com", "$2a$12$hash",
				"traveler", "approved", nil, now, now,
			))

		user, err := repo.GetByEmail("amal@example.com")
		require.NoError(t, err)
		assert.Equal(t, userID, user.ID)
		assert.Equal(t, models.RoleTraveler, user.Role)
		assert.Equal(t, models.AccountStatusApproved, user.Status)
		assert.False(t, user.PhotoURL.Valid)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM users`).
			WithArgs("missing@example.com").
			WillReturnRows(sqlmock.NewRows(userColumns))

		user, err := repo.GetByEmail("missing@example.com")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Nil(t, user)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCountByRole(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users`).
			WithArgs(models.RoleAdmin).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		count, err := repo.CountByRole(models.RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database Error", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users`).
			WillReturnError(fmt.Errorf("database error"))

		count, err := repo.CountByRole(models.RoleAdmin)
		assert.Error(t, err)
		assert.Equal(t, 0, count)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestListPendingAgents(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	t.Run("Success", func(t *testing.T) {
		now := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM users`).
			WithArgs(models.RoleTravelAgent, models.AccountStatusPending).
			WillReturnRows(sqlmock.NewRows(userColumns).
				AddRow(uuid.New(), "Agent One", "one@agency.com", "hash",
					"travel_agent", "pending", nil, now, now).
				AddRow(uuid.New(), "Agent Two", "two@agency.com", "hash",
					"travel_agent", "pending", nil, now, now))

		agents, err := repo.ListPendingAgents()
		require.NoError(t, err)
		require.Len(t, agents, 2)
		assert.Equal(t, models.AccountStatusPending, agents[0].Status)
		assert.Equal(t, models.RoleTravelAgent, agents[1].Role)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Empty", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM users`).
			WithArgs(models.RoleTravelAgent, models.AccountStatusPending).
			WillReturnRows(sqlmock.NewRows(userColumns))

		agents, err := repo.ListPendingAgents()
		require.NoError(t, err)
		assert.Empty(t, agents)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpdateUserStatus(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	t.Run("Success", func(t *testing.T) {
		agentID := uuid.New()

		mock.ExpectExec(`UPDATE users`).
			WithArgs(models.AccountStatusApproved, sqlmock.AnyArg(), agentID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateStatus(agentID, models.AccountStatusApproved)
		assert.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectExec(`UPDATE users`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateStatus(uuid.New(), models.AccountStatusApproved)
		assert.ErrorIs(t, err, ErrNotFound)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDeleteUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	t.Run("Success", func(t *testing.T) {
		agentID := uuid.New()

		mock.ExpectExec(`DELETE FROM users`).
			WithArgs(agentID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(agentID)
		assert.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM users`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(uuid.New())
		assert.ErrorIs(t, err, ErrNotFound)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

// newMockDB wraps a sqlmock connection in the sqlx-backed DB implementation
func newMockDB(t *testing.T) (DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return &PostgresDB{DB: sqlx.NewDb(db, "sqlmock")}, mock
}
