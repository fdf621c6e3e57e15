package repository

import (
	"context"
	"time"
	"venue-booking-backend/cmd/venue-booking/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// DateMatch selects events relative to a day in bulk updates.
type DateMatch int

const (
	Before DateMatch = iota
	On
	After
)

func (d DateMatch) clause() string {
	switch d {
	case Before:
		return "date < ?"
	case After:
		return "date > ?"
	default:
		return "date = ?"
	}
}

type EventRepo struct {
	db *gorm.DB
}

func NewEventRepo(db *gorm.DB) *EventRepo {
	return &EventRepo{
		db: db,
	}
}

func (r *EventRepo) FindEventsByStatus(ctx context.Context, status model.EventStatus) ([]model.Event, error) {

	var events []model.Event

	result := r.db.
		WithContext(ctx).
		Model(&model.Event{}).
		Where("status = ?", status).
		Order("date ASC").
		Order("create_date ASC").
		Find(&events)

	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

// FindEventsByDateAndStatus returns the events of one calendar day.
func (r *EventRepo) FindEventsByDateAndStatus(ctx context.Context, day time.Time, status model.EventStatus) ([]model.Event, error) {

	var events []model.Event

	result := r.db.
		WithContext(ctx).
		Model(&model.Event{}).
		Where("date = ? AND status = ?", model.DateOf(day), status).
		Order("create_date ASC").
		Find(&events)

	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

func (r *EventRepo) FindEventByID(ctx context.Context, id string) (*model.Event, error) {

	var event model.Event

	result := r.db.
		WithContext(ctx).
		Model(&model.Event{}).
		Where("id = ?", id).
		First(&event)

	if result.Error != nil {
		return nil, mapError(result.Error)
	}

	return &event, nil
}

func (r *EventRepo) FindEventsByClub(ctx context.Context, clubName string) ([]model.Event, error) {

	var events []model.Event

	result := r.db.
		WithContext(ctx).
		Model(&model.Event{}).
		Where("club_name = ?", clubName).
		Order("create_date DESC").
		Find(&events)

	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

func (r *EventRepo) FindApprovedEventsByClub(ctx context.Context, clubName string) ([]model.Event, error) {

	var events []model.Event

	result := r.db.
		WithContext(ctx).
		Model(&model.Event{}).
		Where("club_name = ? AND status = ?", clubName, model.Approved).
		Order("date ASC").
		Find(&events)

	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

// FindPublishedEvents lists what students see: approved events, soonest first.
func (r *EventRepo) FindPublishedEvents(ctx context.Context) ([]model.Event, error) {

	var events []model.Event

	result := r.db.
		WithContext(ctx).
		Model(&model.Event{}).
		Where("status = ? AND is_published = ?", model.Approved, true).
		Order("date ASC").
		Find(&events)

	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

func (r *EventRepo) CreateEvent(ctx context.Context, event *model.Event) error {

	result := r.db.
		WithContext(ctx).
		Create(event)

	if result.Error != nil {
		return result.Error
	}

	return nil
}

// UpdateEvent writes every column of event back.
func (r *EventRepo) UpdateEvent(ctx context.Context, event *model.Event) error {

	result := r.db.
		WithContext(ctx).
		Save(event)

	if result.Error != nil {
		return result.Error
	}

	return nil
}

// BulkUpdateClassification sets classification on approved events matching
// the date condition. Rows already carrying the target are left alone, so the
// returned count only reflects real changes. Changed rows get updatedAt.
func (r *EventRepo) BulkUpdateClassification(ctx context.Context, match DateMatch, today time.Time, classification model.Classification, updatedAt time.Time) (int64, error) {

	result := r.db.
		WithContext(ctx).
		Model(&model.Event{}).
		Where("status = ?", model.Approved).
		Where(match.clause(), model.DateOf(today)).
		Where("(classification <> ? OR classification IS NULL)", classification).
		Updates(map[string]any{
			"classification": classification,
			"update_date":    updatedAt,
		})

	if result.Error != nil {
		return 0, errors.Wrapf(result.Error, "classify %s", classification)
	}

	return result.RowsAffected, nil
}

// DeleteApprovedBefore hard-deletes approved events dated before day.
func (r *EventRepo) DeleteApprovedBefore(ctx context.Context, day time.Time) (int64, error) {

	result := r.db.
		WithContext(ctx).
		Where("status = ? AND date < ?", model.Approved, model.DateOf(day)).
		Delete(&model.Event{})

	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

func (r *EventRepo) CountEvents(ctx context.Context) (int64, error) {

	var n int64

	result := r.db.
		WithContext(ctx).
		Model(&model.Event{}).
		Count(&n)

	if result.Error != nil {
		return 0, result.Error
	}

	return n, nil
}

func (r *EventRepo) CountByStatus(ctx context.Context, status model.EventStatus) (int64, error) {

	var n int64

	result := r.db.
		WithContext(ctx).
		Model(&model.Event{}).
		Where("status = ?", status).
		Count(&n)

	if result.Error != nil {
		return 0, result.Error
	}

	return n, nil
}

// CountByClassification counts approved events with the given classification.
func (r *EventRepo) CountByClassification(ctx context.Context, classification model.Classification) (int64, error) {

	var n int64

	result := r.db.
		WithContext(ctx).
		Model(&model.Event{}).
		Where("status = ? AND classification = ?", model.Approved, classification).
		Count(&n)

	if result.Error != nil {
		return 0, result.Error
	}

	return n, nil
}
