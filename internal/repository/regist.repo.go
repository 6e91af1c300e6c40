package repository

import (
	bookingRepo "portrait-backend/internal/repository/booking"
	postRepo "portrait-backend/internal/repository/post"
)

// IRepository is a container for all repository interfaces
type IRepository struct {
	Booking bookingRepo.IRepository
	Post    postRepo.IRepository
}
