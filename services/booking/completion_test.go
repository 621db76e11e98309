package booking

import (
	"context"
	"testing"

	"ceremo/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) acceptedBooking(t *testing.T) *models.Booking {
	t.Helper()
	b := f.createPendingBooking(t)
	got, err := f.svc.Accept(context.Background(), provider, b.ID)
	require.NoError(t, err)
	return got
}

func TestMarkComplete(t *testing.T) {
	f := newFixture()
	b := f.acceptedBooking(t)

	got, err := f.svc.MarkComplete(context.Background(), provider, b.ID, CompletionInput{
		WorkSummary: "ceremony conducted, decorations dismantled",
		HoursWorked: 6,
	})
	require.NoError(t, err)

	// The booking stays accepted until the customer verifies.
	assert.Equal(t, models.BookingStatusAccepted, got.Status)
	assert.True(t, got.CompletionConfirmedByProvider)
	assert.False(t, got.CompletionConfirmedByCustomer)
	assert.Equal(t, models.CompletionStatusPending, got.CompletionStatus)

	details, err := f.svc.GetCompletionDetails(context.Background(), customer, b.ID)
	require.NoError(t, err)
	require.NotNil(t, details)
	assert.Equal(t, "ceremony conducted, decorations dismantled", details.WorkSummary)
}

func TestMarkCompleteOnPendingBooking(t *testing.T) {
	f := newFixture()
	b := f.createPendingBooking(t)

	_, err := f.svc.MarkComplete(context.Background(), provider, b.ID, CompletionInput{})

	var invalid *InvalidTransitionError
	require.ErrorAs(t, err, &invalid)
}

func TestMarkCompleteTwice(t *testing.T) {
	f := newFixture()
	b := f.acceptedBooking(t)

	_, err := f.svc.MarkComplete(context.Background(), provider, b.ID, CompletionInput{WorkSummary: "done"})
	require.NoError(t, err)

	_, err = f.svc.MarkComplete(context.Background(), provider, b.ID, CompletionInput{WorkSummary: "done again"})
	var outOfOrder *OutOfOrderError
	require.ErrorAs(t, err, &outOfOrder)
}

func TestVerifyComplete(t *testing.T) {
	f := newFixture()
	b := f.acceptedBooking(t)
	_, err := f.svc.MarkComplete(context.Background(), provider, b.ID, CompletionInput{WorkSummary: "done"})
	require.NoError(t, err)

	got, err := f.svc.VerifyComplete(context.Background(), customer, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCompleted, got.Status)
	assert.Equal(t, models.CompletionStatusVerified, got.CompletionStatus)
	assert.True(t, got.CompletionConfirmedByCustomer)
	assert.True(t, got.IsTerminal())
}

func TestVerifyBeforeMarkComplete(t *testing.T) {
	f := newFixture()
	b := f.acceptedBooking(t)

	_, err := f.svc.VerifyComplete(context.Background(), customer, b.ID)

	var outOfOrder *OutOfOrderError
	require.ErrorAs(t, err, &outOfOrder)

	got, err := f.bookings.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusAccepted, got.Status)
	assert.False(t, got.CompletionConfirmedByCustomer)
}

func TestVerifyByProviderForbidden(t *testing.T) {
	f := newFixture()
	b := f.acceptedBooking(t)
	_, err := f.svc.MarkComplete(context.Background(), provider, b.ID, CompletionInput{})
	require.NoError(t, err)

	_, err = f.svc.VerifyComplete(context.Background(), provider, b.ID)

	var notAuth *NotAuthorizedError
	require.ErrorAs(t, err, &notAuth)
}

func TestDisputeBlocksVerification(t *testing.T) {
	f := newFixture()
	b := f.acceptedBooking(t)
	_, err := f.svc.MarkComplete(context.Background(), provider, b.ID, CompletionInput{})
	require.NoError(t, err)

	got, err := f.svc.Dispute(context.Background(), customer, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CompletionStatusDisputed, got.CompletionStatus)
	assert.Equal(t, models.BookingStatusAccepted, got.Status)

	// A disputed completion cannot be verified afterwards.
	_, err = f.svc.VerifyComplete(context.Background(), customer, b.ID)
	var invalid *InvalidTransitionError
	require.ErrorAs(t, err, &invalid)
}

func TestDisputeTwice(t *testing.T) {
	f := newFixture()
	b := f.acceptedBooking(t)
	_, err := f.svc.MarkComplete(context.Background(), provider, b.ID, CompletionInput{})
	require.NoError(t, err)
	_, err = f.svc.Dispute(context.Background(), customer, b.ID)
	require.NoError(t, err)

	_, err = f.svc.Dispute(context.Background(), customer, b.ID)

	var invalid *InvalidTransitionError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, models.BookingStatusAccepted, invalid.From)
	assert.Equal(t, models.CompletionStatusDisputed, invalid.To)
}

func TestDisputeBeforeMarkComplete(t *testing.T) {
	f := newFixture()
	b := f.acceptedBooking(t)

	_, err := f.svc.Dispute(context.Background(), customer, b.ID)

	var outOfOrder *OutOfOrderError
	require.ErrorAs(t, err, &outOfOrder)
}

func TestGetCompletionDetailsThirdPartyForbidden(t *testing.T) {
	f := newFixture()
	b := f.acceptedBooking(t)
	_, err := f.svc.MarkComplete(context.Background(), provider, b.ID, CompletionInput{WorkSummary: "done"})
	require.NoError(t, err)

	_, err = f.svc.GetCompletionDetails(context.Background(), models.Actor{ID: "cust-2", Role: models.RoleCustomer}, b.ID)

	var notAuth *NotAuthorizedError
	require.ErrorAs(t, err, &notAuth)
}
