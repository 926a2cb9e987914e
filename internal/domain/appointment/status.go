package appointment

import (
	"time"

	"github.com/cortemaestro/barbershop-api/internal/httperr"
	"github.com/cortemaestro/barbershop-api/internal/models"
)

// ===============================
// Scheduling status
// ===============================

type Status string

const (
	StatusScheduled Status = "SCHEDULED"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusScheduled, StatusConfirmed, StatusCancelled, StatusCompleted:
		return Status(s), nil
	}
	return "", httperr.ErrBusiness("invalid_status")
}

// CanTransition encodes the scheduling rules: COMPLETED is terminal,
// a cancelled appointment cannot jump straight to COMPLETED, and every
// other move between SCHEDULED, CONFIRMED and CANCELLED is allowed
// (including reactivating a cancelled booking).
func CanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	if from == StatusCompleted {
		return false
	}
	if from == StatusCancelled && to == StatusCompleted {
		return false
	}
	return true
}

// ===============================
// Payment status
// ===============================

type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "UNPAID"
	PaymentPaid     PaymentStatus = "PAID"
	PaymentRefunded PaymentStatus = "REFUNDED"
)

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch PaymentStatus(s) {
	case PaymentUnpaid, PaymentPaid, PaymentRefunded:
		return PaymentStatus(s), nil
	}
	return "", httperr.ErrBusiness("invalid_payment_status")
}

// ===============================
// Transition
// ===============================

// Transition applies a requested status and/or payment change to ap,
// mutating it only when every rule passes. servicePrice is the current
// catalog price, used to backfill a missing snapshot when the booking
// is first marked paid.
//
// Reason codes returned: nothing_to_update, payment_locked,
// status_transition_not_allowed, paid_cannot_reschedule.
func Transition(
	ap *models.Appointment,
	newStatus *Status,
	newPayment *PaymentStatus,
	servicePrice int,
	now time.Time,
) error {

	if newStatus == nil && newPayment == nil {
		return httperr.ErrBusiness("nothing_to_update")
	}

	curStatus := Status(ap.Status)
	curPayment := PaymentStatus(ap.PaymentStatus)

	targetStatus := curStatus
	if newStatus != nil {
		targetStatus = *newStatus
	}

	cancelling := targetStatus == StatusCancelled

	// Payment rules. Once PAID the only way out is the refund that a
	// cancellation forces; explicit downgrades are rejected.
	if newPayment != nil {
		switch *newPayment {
		case PaymentPaid:
			// ok, handled below (idempotent when already paid)
		case PaymentUnpaid:
			if curPayment == PaymentPaid && !cancelling {
				return httperr.ErrBusiness("payment_locked")
			}
		case PaymentRefunded:
			if !cancelling && curStatus != StatusCancelled {
				return httperr.ErrBusiness("payment_locked")
			}
		}
	}

	if newStatus != nil {
		if !CanTransition(curStatus, *newStatus) {
			return httperr.ErrBusiness("status_transition_not_allowed")
		}

		willBePaid := curPayment == PaymentPaid ||
			(newPayment != nil && *newPayment == PaymentPaid)
		if willBePaid && *newStatus == StatusScheduled {
			return httperr.ErrBusiness("paid_cannot_reschedule")
		}
	}

	// All rules passed, apply.

	reactivating := curStatus == StatusCancelled &&
		newStatus != nil && *newStatus != StatusCancelled

	ap.Status = string(targetStatus)

	if newPayment != nil {
		switch *newPayment {
		case PaymentPaid:
			if !cancelling && curPayment != PaymentPaid {
				ap.PaymentStatus = string(PaymentPaid)
				paidAt := now
				ap.PaidAt = &paidAt
				if ap.PriceSnapshot == nil || *ap.PriceSnapshot <= 0 {
					snapshot := servicePrice
					ap.PriceSnapshot = &snapshot
				}
			}
			// Marking an already-paid booking paid again keeps paidAt.
		case PaymentUnpaid, PaymentRefunded:
			// The refund-on-cancel branch below still wins when this
			// update cancels a paid booking.
			ap.PaymentStatus = string(*newPayment)
			ap.PaidAt = nil
		}
	}

	if cancelling {
		paidOrBecomingPaid := curPayment == PaymentPaid ||
			(newPayment != nil && *newPayment == PaymentPaid)
		if paidOrBecomingPaid {
			ap.PaymentStatus = string(PaymentRefunded)
			ap.PaidAt = nil
		}
	}

	if reactivating && newPayment == nil {
		ap.PaymentStatus = string(PaymentUnpaid)
		ap.PaidAt = nil
	}

	return nil
}

// Cancel is the public cancel-by-phone path: same semantics as a
// PATCH that only sets CANCELLED.
func Cancel(ap *models.Appointment, now time.Time) error {
	st := StatusCancelled
	return Transition(ap, &st, nil, 0, now)
}
