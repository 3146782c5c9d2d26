package database

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tripmark/booking-backend/internal/models"
)

var feedbackColumns = []string{
	"id", "booking_id", "traveler_id", "agent_id", "guide_id",
	"rating", "comment", "created_at",
}

func TestCreateFeedback(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFeedbackRepository(db)

	t.Run("Package Feedback", func(t *testing.T) {
		feedback := models.NewPackageFeedback(uuid.New(), uuid.New(), uuid.New(), 5, "great trip")

		mock.ExpectExec(`INSERT INTO feedbacks`).
			WithArgs(feedback.ID, feedback.BookingID, feedback.TravelerID,
				feedback.AgentID, feedback.GuideID, feedback.Rating,
				feedback.Comment, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Create(feedback)
		require.NoError(t, err)
		assert.True(t, feedback.IsExclusive())
		assert.Equal(t, models.FeedbackKindPackage, feedback.Kind())

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Guide Feedback", func(t *testing.T) {
		feedback := models.NewGuideFeedback(uuid.New(), uuid.New(), uuid.New(), 4, "")

		mock.ExpectExec(`INSERT INTO feedbacks`).
			WithArgs(feedback.ID, feedback.BookingID, feedback.TravelerID,
				feedback.AgentID, feedback.GuideID, feedback.Rating,
				feedback.Comment, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Create(feedback)
		require.NoError(t, err)
		assert.True(t, feedback.IsExclusive())
		assert.Equal(t, models.FeedbackKindGuide, feedback.Kind())
		assert.False(t, feedback.Comment.Valid)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Duplicate", func(t *testing.T) {
		feedback := models.NewPackageFeedback(uuid.New(), uuid.New(), uuid.New(), 5, "")

		mock.ExpectExec(`INSERT INTO feedbacks`).
			WillReturnError(&pq.Error{Code: "23505"})

		err := repo.Create(feedback)
		require.Error(t, err)
		assert.True(t, IsUniqueViolation(err))

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestExistsForBooking(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFeedbackRepository(db)

	bookingID := uuid.New()

	t.Run("Package Kind Checks Agent Column", func(t *testing.T) {
		mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM feedbacks WHERE booking_id = \$1 AND agent_id IS NOT NULL\)`).
			WithArgs(bookingID).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		exists, err := repo.ExistsForBooking(bookingID, models.FeedbackKindPackage)
		require.NoError(t, err)
		assert.True(t, exists)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Guide Kind Checks Guide Column", func(t *testing.T) {
		mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM feedbacks WHERE booking_id = \$1 AND guide_id IS NOT NULL\)`).
			WithArgs(bookingID).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		exists, err := repo.ExistsForBooking(bookingID, models.FeedbackKindGuide)
		require.NoError(t, err)
		assert.False(t, exists)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestListFeedbackForAgent(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFeedbackRepository(db)

	agentID := uuid.New()
	now := time.Now()

	detailColumns := append(append([]string{}, feedbackColumns...),
		"package_name", "traveler_name", "traveler_photo")

	mock.ExpectQuery(`SELECT (.+) FROM feedbacks f`).
		WithArgs(agentID).
		WillReturnRows(sqlmock.NewRows(detailColumns).
			AddRow(uuid.New(), uuid.New(), uuid.New(), agentID, nil,
				5, "great trip", now, "Ella Highlands", "Amal Perera", nil))

	feedbacks, err := repo.ListForAgent(agentID)
	require.NoError(t, err)
	require.Len(t, feedbacks, 1)
	assert.Equal(t, models.FeedbackKindPackage, feedbacks[0].Kind())
	assert.Equal(t, agentID, feedbacks[0].AgentID.UUID)
	assert.False(t, feedbacks[0].GuideID.Valid)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteFeedback(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFeedbackRepository(db)

	t.Run("Success", func(t *testing.T) {
		feedbackID := uuid.New()

		mock.ExpectExec(`DELETE FROM feedbacks`).
			WithArgs(feedbackID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(feedbackID)
		assert.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM feedbacks`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(uuid.New())
		assert.ErrorIs(t, err, ErrNotFound)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
