package repository

import (
	"context"
	"venue-booking-backend/cmd/venue-booking/model"

	"gorm.io/gorm"
)

type VenueChangeRepo struct {
	db *gorm.DB
}

func NewVenueChangeRepo(db *gorm.DB) *VenueChangeRepo {
	return &VenueChangeRepo{
		db: db,
	}
}

// CreateVenueChange stores the request and the parent's snapshot in one
// transaction.
func (r *VenueChangeRepo) CreateVenueChange(ctx context.Context, req *model.VenueChangeRequest, event *model.Event) error {

	return r.db.
		WithContext(ctx).
		Transaction(func(tx *gorm.DB) error {
			if err := tx.Omit("Event").Create(req).Error; err != nil {
				return err
			}
			return tx.Save(event).Error
		})
}

func (r *VenueChangeRepo) FindVenueChangeByID(ctx context.Context, id string) (*model.VenueChangeRequest, error) {

	var req model.VenueChangeRequest

	result := r.db.
		WithContext(ctx).
		Model(&model.VenueChangeRequest{}).
		Preload("Event").
		Where("id = ?", id).
		First(&req)

	if result.Error != nil {
		return nil, mapError(result.Error)
	}

	return &req, nil
}

// FindPendingVenueChangeByEvent returns ErrNotFound when the event has no open
// request.
func (r *VenueChangeRepo) FindPendingVenueChangeByEvent(ctx context.Context, eventID string) (*model.VenueChangeRequest, error) {

	var req model.VenueChangeRequest

	result := r.db.
		WithContext(ctx).
		Model(&model.VenueChangeRequest{}).
		Where("event_id = ? AND status = ?", eventID, model.ChangePending).
		First(&req)

	if result.Error != nil {
		return nil, mapError(result.Error)
	}

	return &req, nil
}

func (r *VenueChangeRepo) FindPendingVenueChanges(ctx context.Context) ([]model.VenueChangeRequest, error) {

	var reqs []model.VenueChangeRequest

	result := r.db.
		WithContext(ctx).
		Model(&model.VenueChangeRequest{}).
		Preload("Event").
		Where("status = ?", model.ChangePending).
		Order("create_date ASC").
		Find(&reqs)

	if result.Error != nil {
		return nil, result.Error
	}

	return reqs, nil
}

func (r *VenueChangeRepo) FindVenueChangesByClub(ctx context.Context, clubName string) ([]model.VenueChangeRequest, error) {

	var reqs []model.VenueChangeRequest

	result := r.db.
		WithContext(ctx).
		Model(&model.VenueChangeRequest{}).
		Preload("Event").
		Where("club_name = ?", clubName).
		Order("create_date DESC").
		Find(&reqs)

	if result.Error != nil {
		return nil, result.Error
	}

	return reqs, nil
}

func (r *VenueChangeRepo) CountPendingVenueChanges(ctx context.Context) (int64, error) {

	var n int64

	result := r.db.
		WithContext(ctx).
		Model(&model.VenueChangeRequest{}).
		Where("status = ?", model.ChangePending).
		Count(&n)

	if result.Error != nil {
		return 0, result.Error
	}

	return n, nil
}

// ResolveVenueChange closes a pending request and writes the parent event in
// one transaction. The request row is only updated while still PENDING;
// otherwise nothing is written and ErrStale is returned.
func (r *VenueChangeRepo) ResolveVenueChange(ctx context.Context, req *model.VenueChangeRequest, event *model.Event) error {

	return r.db.
		WithContext(ctx).
		Transaction(func(tx *gorm.DB) error {
			result := tx.
				Model(&model.VenueChangeRequest{}).
				Where("id = ? AND status = ?", req.ID, model.ChangePending).
				Updates(map[string]any{
					"status":        req.Status,
					"admin_comment": req.AdminComment,
					"update_date":   req.UpdateDate,
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return ErrStale
			}
			return tx.Save(event).Error
		})
}

// CancelEvent writes the cancelled event and rejects its pending venue change
// request with comment, in one transaction. It returns how many requests were
// closed.
func (r *VenueChangeRepo) CancelEvent(ctx context.Context, event *model.Event, comment string) (int64, error) {

	var closed int64

	err := r.db.
		WithContext(ctx).
		Transaction(func(tx *gorm.DB) error {
			result := tx.
				Model(&model.VenueChangeRequest{}).
				Where("event_id = ? AND status = ?", event.ID, model.ChangePending).
				Updates(map[string]any{
					"status":        model.ChangeRejected,
					"admin_comment": comment,
					"update_date":   event.UpdateDate,
				})
			if result.Error != nil {
				return result.Error
			}
			closed = result.RowsAffected
			return tx.Save(event).Error
		})
	if err != nil {
		return 0, err
	}

	return closed, nil
}
