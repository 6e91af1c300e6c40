package conversion

import (
	"context"
	"encoding/json"
	"errors"
	"portrait-backend/internal/common/models"
	conversionPkg "portrait-backend/internal/pkg/conversion"
	"portrait-backend/internal/pkg/helper"
	"portrait-backend/internal/pkg/logger"
	bookingRepo "portrait-backend/internal/repository/booking"
	"strings"

	"github.com/samber/lo"
)

// ReportPurchase forwards a confirmed booking to the conversion API. It
// never returns an error and never panics; no call is made unless the
// booking resolves.
func (s *Service) ReportPurchase(ctx context.Context, in *ReportInput) (out Outcome) {
	log := logger.With("action", "report_purchase")

	defer func() {
		if r := recover(); r != nil {
			log.Error("purchase report panicked", "panic", r)
			out = failed(ReasonPanic)
		}
	}()

	if in == nil || strings.TrimSpace(in.BookingID) == "" {
		log.Warn("purchase report without booking id")
		return failed(ReasonInvalidInput)
	}
	log = log.With("booking_id", in.BookingID)

	booking, err := s.rp.Booking.FindByIDWithPayments(ctx, in.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			log.Warn("booking not found")
			return failed(ReasonBookingNotFound)
		}
		log.Error("booking lookup failed", "error", err)
		return failed(ReasonLookupFailed)
	}

	amount, transactionID, currency := s.resolvePayment(booking)

	err = s.client.TrackPurchase(ctx, &conversionPkg.PurchaseEvent{
		Email:          booking.UserEmail,
		Phone:          booking.UserPhone,
		ContentID:      booking.PackageID,
		Value:          amount,
		Currency:       currency,
		TransactionID:  transactionID,
		EventSourceURL: in.EventSourceURL,
		Match: conversionPkg.Match{
			FBC:        in.FBC,
			FBP:        in.FBP,
			ExternalID: helper.HashEmail(booking.UserEmail),
		},
	})
	if err != nil {
		log.Error("conversion tracking failed", "error", err)
		return failed(ReasonTrackingFailed)
	}

	log.Info("purchase reported", "transaction_id", transactionID)
	return Outcome{Success: true}
}

// resolvePayment uses the first payment row, falling back to the booking's
// own total and id.
func (s *Service) resolvePayment(booking *models.Booking) (float64, string, string) {
	payment, ok := lo.First(booking.Payments)
	if !ok {
		return booking.TotalAmount, booking.ID, s.defaultCurrency
	}

	transactionID := lo.Ternary(payment.PaymentID != "", payment.PaymentID, booking.ID)
	currency := lo.Ternary(payment.Currency != "", payment.Currency, s.defaultCurrency)
	return payment.Amount, transactionID, currency
}

// ConsumeBookingConfirmed handles a booking.confirmed message. The report
// outcome is logged; only an undecodable body is an error.
func (s *Service) ConsumeBookingConfirmed(ctx context.Context, body []byte) error {
	var in ReportInput
	if err := json.Unmarshal(body, &in); err != nil {
		return err
	}

	out := s.ReportPurchase(ctx, &in)
	if !out.Success {
		logger.With("booking_id", in.BookingID, "reason", out.Reason).Warn("purchase report from queue failed")
	}
	return nil
}
