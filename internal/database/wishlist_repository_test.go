package database

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddWishlistEntry(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewWishlistRepository(db)

	travelerID := uuid.New()
	packageID := uuid.New()

	t.Run("Inserted", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO wishlists`).
			WithArgs(sqlmock.AnyArg(), travelerID, packageID, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		added, err := repo.Add(travelerID, packageID)
		require.NoError(t, err)
		assert.True(t, added)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Already Present", func(t *testing.T) {
		// ON CONFLICT DO NOTHING swallows the duplicate; zero rows means a
		// concurrent toggle inserted the pair first.
		mock.ExpectExec(`INSERT INTO wishlists`).
			WithArgs(sqlmock.AnyArg(), travelerID, packageID, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 0))

		added, err := repo.Add(travelerID, packageID)
		require.NoError(t, err)
		assert.False(t, added)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unknown Package", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO wishlists`).
			WillReturnError(&pq.Error{Code: "23503", Constraint: "wishlists_package_id_fkey"})

		added, err := repo.Add(travelerID, uuid.New())
		require.Error(t, err)
		assert.False(t, added)
		assert.True(t, IsForeignKeyViolation(err))

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRemoveWishlistEntry(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewWishlistRepository(db)

	travelerID := uuid.New()
	packageID := uuid.New()

	t.Run("Removed", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM wishlists`).
			WithArgs(travelerID, packageID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		removed, err := repo.Remove(travelerID, packageID)
		require.NoError(t, err)
		assert.True(t, removed)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Already Absent", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM wishlists`).
			WithArgs(travelerID, packageID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		removed, err := repo.Remove(travelerID, packageID)
		require.NoError(t, err)
		assert.False(t, removed)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestListWishlistByTraveler(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewWishlistRepository(db)

	travelerID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT (.+) FROM wishlists w`).
		WithArgs(travelerID).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "traveler_id", "package_id", "created_at",
			"package_name", "unit_price", "destination", "package_photo",
		}).AddRow(uuid.New(), travelerID, uuid.New(), now,
			"Ella Highlands", 150.0, "Ella", nil))

	items, err := repo.ListByTraveler(travelerID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Ella Highlands", items[0].PackageName)
	assert.Equal(t, 150.0, items[0].UnitPrice)

	assert.NoError(t, mock.ExpectationsWereMet())
}
