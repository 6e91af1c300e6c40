package booking

import (
	"context"
	"errors"
	"fmt"
	"portrait-backend/internal/common/models"
	database "portrait-backend/internal/pkg/db"

	"gorm.io/gorm"
)

var ErrBookingNotFound = errors.New("booking not found")

type IRepository interface {
	FindByIDWithPayments(ctx context.Context, id string) (*models.Booking, error)
}

type Repository struct {
	db *database.Database
}

func NewRepo(db *database.Database) IRepository {
	return &Repository{db: db}
}

// FindByIDWithPayments loads a booking and its payment rows, oldest first.
func (r *Repository) FindByIDWithPayments(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).
		Preload("Payments", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("created_at ASC")
		}).
		Where("id = ?", id).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("booking %s: %w", id, ErrBookingNotFound)
		}
		return nil, err
	}
	return &booking, nil
}
