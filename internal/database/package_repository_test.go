package database

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var packageColumns = []string{
	"id", "agent_id", "name", "description", "destination",
	"unit_price", "duration_days", "max_group_size", "photo_url",
	"created_at", "updated_at",
}

func TestGetPackageByID(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPackageRepository(db)
		packageID := uuid.New()
		agentID := uuid.New()
		now := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM packages`).
			WithArgs(packageID).
			WillReturnRows(sqlmock.NewRows(packageColumns).
				AddRow(packageID, agentID, "Sigiriya Sunrise", "Rock fortress climb", "Sigiriya",
					120.0, 2, 12, nil, now, now))

		pkg, err := repo.GetByID(packageID)
		require.NoError(t, err)
		assert.Equal(t, packageID, pkg.ID)
		assert.Equal(t, agentID, pkg.AgentID)
		assert.Equal(t, "Sigiriya Sunrise", pkg.Name)
		assert.Equal(t, 120.0, pkg.UnitPrice)
		assert.False(t, pkg.PhotoURL.Valid)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPackageRepository(db)

		mock.ExpectQuery(`SELECT (.+) FROM packages`).
			WillReturnRows(sqlmock.NewRows(packageColumns))

		_, err := repo.GetByID(uuid.New())
		assert.ErrorIs(t, err, ErrNotFound)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestListPackages(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPackageRepository(db)
		now := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM packages`).
			WillReturnRows(sqlmock.NewRows(packageColumns).
				AddRow(uuid.New(), uuid.New(), "Ella Highlands", nil, "Ella",
					150.0, 3, 8, nil, now, now).
				AddRow(uuid.New(), uuid.New(), "Galle Fort Walk", nil, "Galle",
					45.0, 1, 20, nil, now, now))

		pkgs, err := repo.List()
		require.NoError(t, err)
		require.Len(t, pkgs, 2)
		assert.Equal(t, "Ella Highlands", pkgs[0].Name)
		assert.Equal(t, "Galle Fort Walk", pkgs[1].Name)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database Error", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPackageRepository(db)

		mock.ExpectQuery(`SELECT (.+) FROM packages`).
			WillReturnError(errors.New("connection lost"))

		_, err := repo.List()
		assert.ErrorContains(t, err, "failed to list packages")

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
