package repository

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrStale is returned when a conditional write finds the row already
	// moved on by someone else.
	ErrStale = errors.New("record changed concurrently")
)

func mapError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
