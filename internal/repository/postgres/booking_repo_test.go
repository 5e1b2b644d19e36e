package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devevent/internal/domain"
)

var bookingColSet = []string{"id", "event_id", "email", "created_at", "updated_at"}

func TestBookingRepository_Create(t *testing.T) {
	ctx := context.Background()
	eventID := uuid.NewString()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO bookings \(id, event_id, email, created_at, updated_at\)`).
					WithArgs(sqlmock.AnyArg(), eventID, "a@b.com", fixedTime, fixedTime).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO bookings`).WillReturnError(sql.ErrConnDone)
			},
			wantErr: sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			b := domain.NewBooking(eventID, "a@b.com", fixedTime, fixedTime)
			err = NewBookingRepository(FromDB(db)).Create(ctx, b)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, b.ID)
			} else {
				require.NoError(t, err)
				assert.NoError(t, uuid.Validate(b.ID))
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestBookingRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	id, eventID := uuid.NewString(), uuid.NewString()

	t.Run("found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE id = \$1`).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(bookingColSet).AddRow(id, eventID, "a@b.com", fixedTime, fixedTime))

		got, err := NewBookingRepository(FromDB(db)).GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, eventID, got.EventID)
		assert.Equal(t, "a@b.com", got.Email)
	})

	t.Run("missing", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE id = \$1`).
			WithArgs(id).
			WillReturnError(sql.ErrNoRows)

		_, err = NewBookingRepository(FromDB(db)).GetByID(ctx, id)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestBookingRepository_ListByEventID(t *testing.T) {
	ctx := context.Background()
	eventID := uuid.NewString()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE event_id = \$1 ORDER BY created_at DESC`).
		WithArgs(eventID).
		WillReturnRows(sqlmock.NewRows(bookingColSet).
			AddRow(uuid.NewString(), eventID, "one@b.com", fixedTime, fixedTime).
			AddRow(uuid.NewString(), eventID, "two@b.com", fixedTime, fixedTime))

	got, err := NewBookingRepository(FromDB(db)).ListByEventID(ctx, eventID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "two@b.com", got[1].Email)
	require.NoError(t, mock.ExpectationsWereMet())

	empty, err := NewBookingRepository(FromDB(db)).ListByEventID(ctx, "not-a-uuid")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestBookingRepository_Update(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	b := &domain.Booking{ID: uuid.NewString(), EventID: uuid.NewString(), Email: "new@b.com", UpdatedAt: fixedTime}
	mock.ExpectExec(`UPDATE bookings`).
		WithArgs(b.ID, b.EventID, "new@b.com", fixedTime).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = NewBookingRepository(FromDB(db)).Update(ctx, b)
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
