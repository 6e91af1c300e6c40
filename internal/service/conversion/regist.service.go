package conversion

import (
	"context"
	conversionPkg "portrait-backend/internal/pkg/conversion"
	"portrait-backend/internal/repository"
)

const QueueBookingConfirmed = "booking.confirmed"

// Reasons for a failed Outcome. They are logged, never sent to clients.
const (
	ReasonInvalidInput    = "invalid_input"
	ReasonBookingNotFound = "booking_not_found"
	ReasonLookupFailed    = "lookup_failed"
	ReasonTrackingFailed  = "tracking_failed"
	ReasonPanic           = "panic"
)

type Service struct {
	rp              repository.IRepository
	client          conversionPkg.IClient
	defaultCurrency string
}

type IService interface {
	ReportPurchase(ctx context.Context, in *ReportInput) Outcome
	ConsumeBookingConfirmed(ctx context.Context, body []byte) error
}

func NewService(rp repository.IRepository, client conversionPkg.IClient, defaultCurrency string) IService {
	if defaultCurrency == "" {
		defaultCurrency = "EUR"
	}
	return &Service{
		rp:              rp,
		client:          client,
		defaultCurrency: defaultCurrency,
	}
}

// ReportInput carries the booking id and the optional ad matching cookies.
type ReportInput struct {
	BookingID      string `json:"booking_id"`
	FBC            string `json:"fbc"`
	FBP            string `json:"fbp"`
	EventSourceURL string `json:"event_source_url"`
}

// Outcome is the only result of a purchase report. Success false covers
// every failure; Reason says which.
type Outcome struct {
	Success bool   `json:"success"`
	Reason  string `json:"-"`
}

func failed(reason string) Outcome {
	return Outcome{Reason: reason}
}
