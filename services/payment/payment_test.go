package payment

import (
	"context"
	"errors"
	"testing"

	bookingRepo "ceremo/database/repository/booking"
	paymentRepo "ceremo/database/repository/payment"
	"ceremo/models"
	"ceremo/services/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- in-memory fakes ---

type fakeBookingStore struct {
	bookings map[string]*models.Booking
}

func (r *fakeBookingStore) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookingStore) Create(ctx context.Context, b *models.Booking) error { return nil }
func (r *fakeBookingStore) CreateWithInquiryConversion(ctx context.Context, b *models.Booking, inquiryID string) error {
	return nil
}
func (r *fakeBookingStore) ListByCustomer(ctx context.Context, customerID string) ([]models.Booking, error) {
	return nil, nil
}
func (r *fakeBookingStore) ListByProvider(ctx context.Context, providerID string) ([]models.Booking, error) {
	return nil, nil
}
func (r *fakeBookingStore) SetStatus(ctx context.Context, id, from, to, reason string) error {
	return nil
}
func (r *fakeBookingStore) MarkProviderComplete(ctx context.Context, id string) error    { return nil }
func (r *fakeBookingStore) ConfirmCustomerComplete(ctx context.Context, id string) error { return nil }
func (r *fakeBookingStore) MarkDisputed(ctx context.Context, id string) error            { return nil }

type fakePaymentStore struct {
	payments map[string]*models.Payment
}

func newFakePaymentStore() *fakePaymentStore {
	return &fakePaymentStore{payments: map[string]*models.Payment{}}
}

func (r *fakePaymentStore) Create(ctx context.Context, p *models.Payment) error {
	cp := *p
	r.payments[p.ID] = &cp
	return nil
}

func (r *fakePaymentStore) GetByID(ctx context.Context, id string) (*models.Payment, error) {
	p, ok := r.payments[id]
	if !ok {
		return nil, paymentRepo.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakePaymentStore) ListByBooking(ctx context.Context, bookingID string) ([]models.Payment, error) {
	var out []models.Payment
	for _, p := range r.payments {
		if p.BookingID == bookingID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePaymentStore) GetPendingProviderRequest(ctx context.Context, bookingID string) (*models.Payment, error) {
	for _, p := range r.payments {
		if p.BookingID == bookingID && p.IsProviderRequested && p.Status == models.PaymentStatusPending {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakePaymentStore) UpdatePendingRequest(ctx context.Context, id string, amount float64, paymentType, description string) error {
	p, ok := r.payments[id]
	if !ok {
		return paymentRepo.ErrNotFound
	}
	if p.Status != models.PaymentStatusPending {
		return paymentRepo.ErrNotPending
	}
	p.Amount = amount
	p.PaymentType = paymentType
	p.Description = description
	return nil
}

func (r *fakePaymentStore) SetOutcome(ctx context.Context, id, status, gatewayRef, failureReason string) error {
	p, ok := r.payments[id]
	if !ok {
		return paymentRepo.ErrNotFound
	}
	if p.Status != models.PaymentStatusPending {
		return paymentRepo.ErrNotPending
	}
	p.Status = status
	p.GatewayRef = gatewayRef
	p.FailureReason = failureReason
	return nil
}

type fakeGateway struct {
	status string
	err    error
}

func (g fakeGateway) IntentStatus(ctx context.Context, ref string) (string, error) {
	return g.status, g.err
}

// --- fixture ---

const testBookingID = "bk-1"

var (
	customer = models.Actor{ID: "cust-1", Role: models.RoleCustomer}
	provider = models.Actor{ID: "prov-1", Role: models.RoleProvider}
)

func newTestService(bookingStatus string, gw Gateway) (*DefaultPaymentService, *fakePaymentStore) {
	payments := newFakePaymentStore()
	bookings := &fakeBookingStore{bookings: map[string]*models.Booking{
		testBookingID: {
			ID:         testBookingID,
			CustomerID: customer.ID,
			ProviderID: provider.ID,
			Status:     bookingStatus,
		},
	}}
	svc := &DefaultPaymentService{
		Repo:        payments,
		BookingRepo: bookings,
		Gateway:     gw,
	}
	return svc, payments
}

// --- tests ---

func TestRequestPayment(t *testing.T) {
	svc, _ := newTestService(models.BookingStatusAccepted, fakeGateway{})

	pay, err := svc.RequestPayment(context.Background(), provider, testBookingID, RequestPaymentInput{
		Amount:      5000,
		PaymentType: models.PaymentTypeAdvance,
	})
	require.NoError(t, err)

	assert.Equal(t, models.PaymentStatusPending, pay.Status)
	assert.True(t, pay.IsProviderRequested)
	assert.Equal(t, float64(5000), pay.Amount)
}

func TestRequestPaymentRequiresAcceptedBooking(t *testing.T) {
	svc, _ := newTestService(models.BookingStatusPending, fakeGateway{})

	_, err := svc.RequestPayment(context.Background(), provider, testBookingID, RequestPaymentInput{Amount: 5000})

	var invalid *booking.InvalidTransitionError
	require.ErrorAs(t, err, &invalid)
}

func TestRequestPaymentCustomerForbidden(t *testing.T) {
	svc, _ := newTestService(models.BookingStatusAccepted, fakeGateway{})

	_, err := svc.RequestPayment(context.Background(), customer, testBookingID, RequestPaymentInput{Amount: 5000})

	var notAuth *booking.NotAuthorizedError
	require.ErrorAs(t, err, &notAuth)
}

func TestRequestPaymentEditsPendingInPlace(t *testing.T) {
	svc, payments := newTestService(models.BookingStatusAccepted, fakeGateway{})

	first, err := svc.RequestPayment(context.Background(), provider, testBookingID, RequestPaymentInput{Amount: 5000})
	require.NoError(t, err)

	second, err := svc.RequestPayment(context.Background(), provider, testBookingID, RequestPaymentInput{
		Amount:      7500,
		Description: "includes extra flower arrangements",
	})
	require.NoError(t, err)

	// Same request record, edited; no duplicate pending payment.
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, float64(7500), second.Amount)
	assert.Len(t, payments.payments, 1)
}

func TestVerifyPaymentSucceeded(t *testing.T) {
	svc, _ := newTestService(models.BookingStatusAccepted, fakeGateway{status: "succeeded"})

	pay, err := svc.RequestPayment(context.Background(), provider, testBookingID, RequestPaymentInput{Amount: 5000})
	require.NoError(t, err)

	got, err := svc.VerifyPayment(context.Background(), customer, pay.ID, "pi_123")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCompleted, got.Status)
	assert.Equal(t, "pi_123", got.GatewayRef)
}

func TestVerifyPaymentNonPartyForbidden(t *testing.T) {
	svc, payments := newTestService(models.BookingStatusAccepted, fakeGateway{status: "succeeded"})

	pay, err := svc.RequestPayment(context.Background(), provider, testBookingID, RequestPaymentInput{Amount: 5000})
	require.NoError(t, err)

	// A customer from an unrelated booking cannot settle this payment, even
	// holding a succeeded intent reference of their own.
	stranger := models.Actor{ID: "cust-2", Role: models.RoleCustomer}
	_, err = svc.VerifyPayment(context.Background(), stranger, pay.ID, "pi_other")

	var notAuth *booking.NotAuthorizedError
	require.ErrorAs(t, err, &notAuth)
	assert.Equal(t, models.PaymentStatusPending, payments.payments[pay.ID].Status)

	// The booking's provider cannot settle it either.
	_, err = svc.VerifyPayment(context.Background(), provider, pay.ID, "pi_123")
	require.ErrorAs(t, err, &notAuth)
}

func TestVerifyPaymentFailedAtGateway(t *testing.T) {
	svc, _ := newTestService(models.BookingStatusAccepted, fakeGateway{status: "canceled"})

	pay, err := svc.RequestPayment(context.Background(), provider, testBookingID, RequestPaymentInput{Amount: 5000})
	require.NoError(t, err)

	got, err := svc.VerifyPayment(context.Background(), customer, pay.ID, "pi_123")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusFailed, got.Status)
	assert.NotEmpty(t, got.FailureReason)
}

func TestVerifyPaymentUnsettledStatus(t *testing.T) {
	svc, payments := newTestService(models.BookingStatusAccepted, fakeGateway{status: "processing"})

	pay, err := svc.RequestPayment(context.Background(), provider, testBookingID, RequestPaymentInput{Amount: 5000})
	require.NoError(t, err)

	_, err = svc.VerifyPayment(context.Background(), customer, pay.ID, "pi_123")
	require.Error(t, err)
	assert.Equal(t, models.PaymentStatusPending, payments.payments[pay.ID].Status)
}

func TestVerifyCompletedPaymentRejected(t *testing.T) {
	svc, _ := newTestService(models.BookingStatusAccepted, fakeGateway{status: "succeeded"})

	pay, err := svc.RequestPayment(context.Background(), provider, testBookingID, RequestPaymentInput{Amount: 5000})
	require.NoError(t, err)
	_, err = svc.VerifyPayment(context.Background(), customer, pay.ID, "pi_123")
	require.NoError(t, err)

	// Completed payments are immutable; a second verification is refused.
	_, err = svc.VerifyPayment(context.Background(), customer, pay.ID, "pi_123")
	require.Error(t, err)
}

func TestVerifyPaymentGatewayError(t *testing.T) {
	svc, _ := newTestService(models.BookingStatusAccepted, fakeGateway{err: errors.New("gateway unreachable")})

	pay, err := svc.RequestPayment(context.Background(), provider, testBookingID, RequestPaymentInput{Amount: 5000})
	require.NoError(t, err)

	_, err = svc.VerifyPayment(context.Background(), customer, pay.ID, "pi_123")
	require.Error(t, err)
}

func TestListForBookingPartyCheck(t *testing.T) {
	svc, _ := newTestService(models.BookingStatusAccepted, fakeGateway{})

	_, err := svc.RequestPayment(context.Background(), provider, testBookingID, RequestPaymentInput{Amount: 5000})
	require.NoError(t, err)

	list, err := svc.ListForBooking(context.Background(), customer, testBookingID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = svc.ListForBooking(context.Background(), models.Actor{ID: "cust-2", Role: models.RoleCustomer}, testBookingID)
	var notAuth *booking.NotAuthorizedError
	require.ErrorAs(t, err, &notAuth)
}
