package models

import "time"

// Booking is owned by the booking flow; this service only reads it.
type Booking struct {
	ID          string    `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserEmail   string    `json:"user_email" gorm:"type:varchar(255);not null"`
	UserPhone   string    `json:"user_phone" gorm:"type:varchar(50)"`
	PackageID   string    `json:"package_id" gorm:"type:varchar(100);not null"`
	TotalAmount float64   `json:"total_amount" gorm:"type:numeric(12,2);not null"`
	Status      string    `json:"status" gorm:"type:varchar(50);not null;default:'pending';index"`
	Payments    []Payment `json:"payments" gorm:"foreignKey:BookingID"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Booking) TableName() string {
	return "bookings"
}

// Payment is a provider payment row attached to a booking.
type Payment struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BookingID string    `json:"booking_id" gorm:"type:uuid;not null;index"`
	PaymentID string    `json:"payment_id" gorm:"type:varchar(255);not null"`
	Amount    float64   `json:"amount" gorm:"type:numeric(12,2);not null"`
	Currency  string    `json:"currency" gorm:"type:varchar(3);not null"`
	Status    string    `json:"status" gorm:"type:varchar(50)"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Payment) TableName() string {
	return "payments"
}
