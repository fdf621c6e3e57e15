package repository

import (
	"context"
	"testing"
	"time"
	"venue-booking-backend/cmd/venue-booking/dbtest"
	"venue-booking-backend/cmd/venue-booking/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock database: %v", err)
	}

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})

	if err != nil {
		t.Fatalf("Failed to create GORM instance: %v", err)
	}

	return gormDB, mock
}

var day = time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

// stamp is the update time passed to bulk writes.
var stamp = time.Date(2025, time.March, 10, 0, 5, 0, 0, time.UTC)

func newEvent(club, venue string, date time.Time, status model.EventStatus) *model.Event {
	now := time.Now()
	return &model.Event{
		ID:          uuid.NewString(),
		EventName:   club + " meetup",
		ClubName:    club,
		Email:       "lead@club.edu",
		Date:        model.DateOf(date),
		TimeSlot:    "8:00 A.M. - 10:00 A.M.",
		Venue:       venue,
		Status:      status,
		IsPublished: status == model.Approved,
		CreateDate:  now,
		UpdateDate:  now,
	}
}

func seed(t *testing.T, repo *EventRepo, events ...*model.Event) {
	t.Helper()
	for _, e := range events {
		require.NoError(t, repo.CreateEvent(context.Background(), e))
	}
}

func TestEventRepo_FindEventByID(t *testing.T) {
	repo := NewEventRepo(dbtest.New(t))
	ctx := context.Background()

	event := newEvent("Robotics", "Audi 1", day, model.Pending)
	seed(t, repo, event)

	got, err := repo.FindEventByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, event.EventName, got.EventName)
	assert.Equal(t, day, got.Day())
	assert.Equal(t, model.Pending, got.Status)

	_, err = repo.FindEventByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEventRepo_FindEventByID_NotFoundMapped(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	defer func() {
		sqlDB, _ := gormDB.DB()
		sqlDB.Close()
	}()

	repo := NewEventRepo(gormDB)

	mock.ExpectQuery(`SELECT \* FROM "events"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	event, err := repo.FindEventByID(context.Background(), "event-1")

	assert.Nil(t, event)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepo_FindEventsByStatus_DatabaseError(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	defer func() {
		sqlDB, _ := gormDB.DB()
		sqlDB.Close()
	}()

	repo := NewEventRepo(gormDB)

	mock.ExpectQuery(`SELECT \* FROM "events" WHERE status = \$1`).
		WithArgs("PENDING").
		WillReturnError(errors.New("database connection failed"))

	events, err := repo.FindEventsByStatus(context.Background(), model.Pending)

	assert.Error(t, err)
	assert.Nil(t, events)
	assert.Contains(t, err.Error(), "database connection failed")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepo_BulkUpdateClassification_DatabaseError(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	defer func() {
		sqlDB, _ := gormDB.DB()
		sqlDB.Close()
	}()

	repo := NewEventRepo(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "events" SET`).
		WillReturnError(errors.New("deadlock detected"))
	mock.ExpectRollback()

	n, err := repo.BulkUpdateClassification(context.Background(), Before, day, model.Past, stamp)

	assert.Zero(t, n)
	assert.Contains(t, err.Error(), "classify PAST")
	assert.Contains(t, err.Error(), "deadlock detected")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepo_Listings(t *testing.T) {
	repo := NewEventRepo(dbtest.New(t))
	ctx := context.Background()

	later := newEvent("Drama", "Audi 2", day.AddDate(0, 0, 5), model.Approved)
	sooner := newEvent("Drama", "BSN Hall", day, model.Approved)
	pending := newEvent("Drama", "Audi 1", day, model.Pending)
	other := newEvent("Music", "Audi 1", day, model.Approved)
	rejected := newEvent("Music", "CSE Lab", day, model.Rejected)
	seed(t, repo, later, sooner, pending, other, rejected)

	approved, err := repo.FindEventsByStatus(ctx, model.Approved)
	require.NoError(t, err)
	require.Len(t, approved, 3)
	assert.Equal(t, later.ID, approved[2].ID)

	onDay, err := repo.FindEventsByDateAndStatus(ctx, day, model.Approved)
	require.NoError(t, err)
	assert.Len(t, onDay, 2)

	club, err := repo.FindEventsByClub(ctx, "Drama")
	require.NoError(t, err)
	assert.Len(t, club, 3)

	clubApproved, err := repo.FindApprovedEventsByClub(ctx, "Drama")
	require.NoError(t, err)
	require.Len(t, clubApproved, 2)
	assert.Equal(t, sooner.ID, clubApproved[0].ID)

	published, err := repo.FindPublishedEvents(ctx)
	require.NoError(t, err)
	assert.Len(t, published, 3)

	total, err := repo.CountEvents(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)

	pendingCount, err := repo.CountByStatus(ctx, model.Pending)
	require.NoError(t, err)
	assert.Equal(t, int64(1), pendingCount)
}

func TestEventRepo_UpdateEvent(t *testing.T) {
	repo := NewEventRepo(dbtest.New(t))
	ctx := context.Background()

	event := newEvent("Robotics", "Audi 1", day, model.Pending)
	seed(t, repo, event)

	event.Status = model.Rejected
	event.AdminMessage = "clash with exams"
	require.NoError(t, repo.UpdateEvent(ctx, event))

	got, err := repo.FindEventByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, model.Rejected, got.Status)
	assert.Equal(t, "clash with exams", got.AdminMessage)
}

func TestEventRepo_BulkUpdateClassification(t *testing.T) {
	repo := NewEventRepo(dbtest.New(t))
	ctx := context.Background()

	past := newEvent("A", "Audi 1", day.AddDate(0, 0, -1), model.Approved)
	live := newEvent("B", "Audi 1", day, model.Approved)
	upcoming := newEvent("C", "Audi 1", day.AddDate(0, 0, 1), model.Approved)
	pendingPast := newEvent("D", "Audi 2", day.AddDate(0, 0, -3), model.Pending)
	seed(t, repo, past, live, upcoming, pendingPast)

	n, err := repo.BulkUpdateClassification(ctx, Before, day, model.Past, stamp)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.BulkUpdateClassification(ctx, On, day, model.Live, stamp)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.BulkUpdateClassification(ctx, After, day, model.Upcoming, stamp)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	// second pass finds nothing left to change
	n, err = repo.BulkUpdateClassification(ctx, Before, day, model.Past, stamp)
	require.NoError(t, err)
	assert.Zero(t, n)

	got, err := repo.FindEventByID(ctx, pendingPast.ID)
	require.NoError(t, err)
	assert.Equal(t, model.Unclassified, got.Classification)

	got, err = repo.FindEventByID(ctx, live.ID)
	require.NoError(t, err)
	assert.WithinDuration(t, stamp, got.UpdateDate, time.Second)

	liveCount, err := repo.CountByClassification(ctx, model.Live)
	require.NoError(t, err)
	assert.Equal(t, int64(1), liveCount)
}

func TestEventRepo_DeleteApprovedBefore(t *testing.T) {
	repo := NewEventRepo(dbtest.New(t))
	ctx := context.Background()

	old := newEvent("A", "Audi 1", day.AddDate(0, -2, 0), model.Approved)
	oldRejected := newEvent("B", "Audi 1", day.AddDate(0, -2, 0), model.Rejected)
	recent := newEvent("C", "Audi 1", day, model.Approved)
	seed(t, repo, old, oldRejected, recent)

	n, err := repo.DeleteApprovedBefore(ctx, day.AddDate(0, -1, 0))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = repo.FindEventByID(ctx, old.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.FindEventByID(ctx, oldRejected.ID)
	assert.NoError(t, err)
}
