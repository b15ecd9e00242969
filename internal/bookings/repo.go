package bookings

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/db/models"
	"github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/enums"
)

// Repository exposes the booking-payment persistence operations the
// reconciler and rollback paths need.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindPendingPaymentForBooking(ctx context.Context, bookingID uuid.UUID, orderID string) (*models.Payment, error)
	FindPendingPaymentsByOrderID(ctx context.Context, orderID string) ([]models.Payment, error)
	UpdatePayment(ctx context.Context, payment *models.Payment) error
	UpdateBookingStatus(ctx context.Context, bookingID uuid.UUID, status enums.BookingStatus) error
	DeleteTicketsByBookingID(ctx context.Context, bookingID uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a bookings repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindPendingPaymentForBooking(ctx context.Context, bookingID uuid.UUID, orderID string) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.WithContext(ctx).
		Where("booking_id = ? AND cashfree_order_id = ? AND status = ?", bookingID, orderID, enums.PaymentStatusPending).
		First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

func (r *repository) FindPendingPaymentsByOrderID(ctx context.Context, orderID string) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.WithContext(ctx).
		Where("cashfree_order_id = ? AND status = ?", orderID, enums.PaymentStatusPending).
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *repository) UpdatePayment(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).Save(payment).Error
}

func (r *repository) UpdateBookingStatus(ctx context.Context, bookingID uuid.UUID, status enums.BookingStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", bookingID).
		Update("status", status).Error
}

func (r *repository) DeleteTicketsByBookingID(ctx context.Context, bookingID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Delete(&models.Ticket{})
	return result.RowsAffected, result.Error
}
