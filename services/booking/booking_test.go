package booking

import (
	"context"
	"testing"
	"time"

	bookingRepo "ceremo/database/repository/booking"
	completionRepo "ceremo/database/repository/completion"
	inquiryRepo "ceremo/database/repository/inquiry"
	providerRepo "ceremo/database/repository/provider"
	"ceremo/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- in-memory fakes ---

type fakeBookingRepo struct {
	bookings  map[string]*models.Booking
	inquiries *fakeInquiryRepo
}

func newFakeBookingRepo(inquiries *fakeInquiryRepo) *fakeBookingRepo {
	return &fakeBookingRepo{bookings: map[string]*models.Booking{}, inquiries: inquiries}
}

func (r *fakeBookingRepo) Create(ctx context.Context, b *models.Booking) error {
	cp := *b
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	r.bookings[b.ID] = &cp
	return nil
}

func (r *fakeBookingRepo) CreateWithInquiryConversion(ctx context.Context, b *models.Booking, inquiryID string) error {
	conv, ok := r.inquiries.conversations[inquiryID]
	if !ok || conv.Status != models.InquiryStatusOpen {
		return bookingRepo.ErrInquiryNotOpen
	}
	b.InquiryID = inquiryID
	if err := r.Create(ctx, b); err != nil {
		return err
	}
	conv.Status = models.InquiryStatusConverted
	conv.BookingID = b.ID
	return nil
}

func (r *fakeBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookingRepo) ListByCustomer(ctx context.Context, customerID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.CustomerID == customerID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ListByProvider(ctx context.Context, providerID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.ProviderID == providerID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) SetStatus(ctx context.Context, id, from, to, reason string) error {
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	if b.Status != from {
		return bookingRepo.ErrPreconditionFailed
	}
	b.Status = to
	if to == models.BookingStatusRejected {
		b.RejectionReason = reason
	}
	b.UpdatedAt = time.Now()
	return nil
}

func (r *fakeBookingRepo) MarkProviderComplete(ctx context.Context, id string) error {
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	if b.Status != models.BookingStatusAccepted || b.CompletionConfirmedByProvider {
		return bookingRepo.ErrPreconditionFailed
	}
	b.CompletionConfirmedByProvider = true
	b.CompletionStatus = models.CompletionStatusPending
	return nil
}

func (r *fakeBookingRepo) ConfirmCustomerComplete(ctx context.Context, id string) error {
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	if !b.CompletionConfirmedByProvider || b.CompletionConfirmedByCustomer ||
		b.CompletionStatus != models.CompletionStatusPending {
		return bookingRepo.ErrPreconditionFailed
	}
	b.CompletionConfirmedByCustomer = true
	b.CompletionStatus = models.CompletionStatusVerified
	b.Status = models.BookingStatusCompleted
	return nil
}

func (r *fakeBookingRepo) MarkDisputed(ctx context.Context, id string) error {
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	if b.CompletionStatus != models.CompletionStatusPending {
		return bookingRepo.ErrPreconditionFailed
	}
	b.CompletionStatus = models.CompletionStatusDisputed
	return nil
}

type fakeInquiryRepo struct {
	conversations map[string]*models.InquiryConversation
}

func newFakeInquiryRepo() *fakeInquiryRepo {
	return &fakeInquiryRepo{conversations: map[string]*models.InquiryConversation{}}
}

func (r *fakeInquiryRepo) Create(ctx context.Context, c *models.InquiryConversation) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	c.Status = models.InquiryStatusOpen
	r.conversations[c.ID] = c
	return nil
}

func (r *fakeInquiryRepo) GetByID(ctx context.Context, id string) (*models.InquiryConversation, error) {
	c, ok := r.conversations[id]
	if !ok {
		return nil, inquiryRepo.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeInquiryRepo) ListByCustomer(ctx context.Context, customerID string) ([]models.InquiryConversation, error) {
	return nil, nil
}

func (r *fakeInquiryRepo) ListByProvider(ctx context.Context, providerID string) ([]models.InquiryConversation, error) {
	return nil, nil
}

type fakeCompletionRepo struct {
	byBooking map[string]*models.CompletionDetails
}

func newFakeCompletionRepo() *fakeCompletionRepo {
	return &fakeCompletionRepo{byBooking: map[string]*models.CompletionDetails{}}
}

func (r *fakeCompletionRepo) Create(ctx context.Context, d models.CompletionDetails) (string, error) {
	if _, ok := r.byBooking[d.BookingID]; ok {
		return "", completionRepo.ErrAlreadyExists
	}
	r.byBooking[d.BookingID] = &d
	return d.ID, nil
}

func (r *fakeCompletionRepo) GetByBookingID(ctx context.Context, bookingID string) (*models.CompletionDetails, error) {
	return r.byBooking[bookingID], nil
}

type fakeProviderRepo struct {
	providers map[string]*models.Provider
}

func newFakeProviderRepo() *fakeProviderRepo {
	return &fakeProviderRepo{providers: map[string]*models.Provider{}}
}

func (r *fakeProviderRepo) GetByID(ctx context.Context, id string) (*models.Provider, error) {
	p, ok := r.providers[id]
	if !ok {
		return nil, providerRepo.ErrNotFound
	}
	return p, nil
}

func (r *fakeProviderRepo) GetByUserID(ctx context.Context, userID string) (*models.Provider, error) {
	return nil, providerRepo.ErrNotFound
}

func (r *fakeProviderRepo) Create(ctx context.Context, p *models.Provider) error {
	r.providers[p.ID] = p
	return nil
}

func (r *fakeProviderRepo) Update(ctx context.Context, p *models.Provider) error {
	r.providers[p.ID] = p
	return nil
}

func (r *fakeProviderRepo) SetAvailabilityStatus(ctx context.Context, id, status string) error {
	p, ok := r.providers[id]
	if !ok {
		return providerRepo.ErrNotFound
	}
	p.AvailabilityStatus = status
	return nil
}

// fakeAvailability blocks an explicit set of dates.
type fakeAvailability struct {
	blocked map[string]bool
}

func (f *fakeAvailability) IsDateBookable(ctx context.Context, providerID, date string) (bool, error) {
	return !f.blocked[date], nil
}

func (f *fakeAvailability) UnbookableDates(ctx context.Context, providerID string, dates []string) ([]string, error) {
	var out []string
	for _, d := range dates {
		if f.blocked[d] {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeAvailability) AddBlock(ctx context.Context, record *models.AvailabilityRecord) error {
	return nil
}

func (f *fakeAvailability) RemoveBlock(ctx context.Context, id, providerID string) error {
	return nil
}

func (f *fakeAvailability) ListBlocks(ctx context.Context, providerID string) ([]models.AvailabilityRecord, error) {
	return nil, nil
}

// --- fixture ---

const (
	testCustomerID = "cust-1"
	testProviderID = "prov-1"
)

var (
	customer = models.Actor{ID: testCustomerID, Role: models.RoleCustomer}
	provider = models.Actor{ID: testProviderID, Role: models.RoleProvider}
)

type fixture struct {
	svc          *DefaultBookingService
	bookings     *fakeBookingRepo
	inquiries    *fakeInquiryRepo
	completions  *fakeCompletionRepo
	providers    *fakeProviderRepo
	availability *fakeAvailability
}

func newFixture() *fixture {
	inquiries := newFakeInquiryRepo()
	bookings := newFakeBookingRepo(inquiries)
	completions := newFakeCompletionRepo()
	providers := newFakeProviderRepo()
	providers.providers[testProviderID] = &models.Provider{
		ID:     testProviderID,
		Status: models.ProviderStatusApproved,
	}
	avail := &fakeAvailability{blocked: map[string]bool{}}

	return &fixture{
		svc: &DefaultBookingService{
			Repo:            bookings,
			InquiryRepo:     inquiries,
			CompletionRepo:  completions,
			ProviderRepo:    providers,
			AvailabilitySvc: avail,
		},
		bookings:     bookings,
		inquiries:    inquiries,
		completions:  completions,
		providers:    providers,
		availability: avail,
	}
}

func (f *fixture) createPendingBooking(t *testing.T) *models.Booking {
	t.Helper()
	b, err := f.svc.Create(context.Background(), customer, CreateBookingInput{
		ProviderID:  testProviderID,
		ServiceDate: "2026-10-10",
	})
	require.NoError(t, err)
	return b
}

// --- tests ---

func TestCreateBooking(t *testing.T) {
	f := newFixture()

	b := f.createPendingBooking(t)
	assert.Equal(t, models.BookingStatusPending, b.Status)
	assert.Equal(t, models.CompletionStatusNone, b.CompletionStatus)
	assert.Equal(t, testCustomerID, b.CustomerID)
	assert.NotEmpty(t, b.ID)
}

func TestCreateBookingProviderForbidden(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Create(context.Background(), provider, CreateBookingInput{
		ProviderID:  testProviderID,
		ServiceDate: "2026-10-10",
	})

	var notAuth *NotAuthorizedError
	require.ErrorAs(t, err, &notAuth)
}

func TestCreateBookingBlockedDate(t *testing.T) {
	f := newFixture()
	f.availability.blocked["2026-10-10"] = true

	_, err := f.svc.Create(context.Background(), customer, CreateBookingInput{
		ProviderID:  testProviderID,
		ServiceDate: "2026-10-10",
	})

	var unbookable *UnbookableError
	require.ErrorAs(t, err, &unbookable)
	assert.Equal(t, []string{"2026-10-10"}, unbookable.Dates)
	assert.Empty(t, f.bookings.bookings)
}

func TestCreateMultiDayBookingBlockedMidRange(t *testing.T) {
	f := newFixture()
	f.availability.blocked["2026-10-11"] = true

	_, err := f.svc.Create(context.Background(), customer, CreateBookingInput{
		ProviderID: testProviderID,
		StartDate:  "2026-10-10",
		EndDate:    "2026-10-12",
	})

	var unbookable *UnbookableError
	require.ErrorAs(t, err, &unbookable)
	assert.Equal(t, []string{"2026-10-11"}, unbookable.Dates)
}

func TestCreateMultiDayBookingCoversRange(t *testing.T) {
	f := newFixture()

	b, err := f.svc.Create(context.Background(), customer, CreateBookingInput{
		ProviderID: testProviderID,
		StartDate:  "2026-10-10",
		EndDate:    "2026-10-12",
	})
	require.NoError(t, err)

	assert.Equal(t, 3, b.TotalDays)
	assert.Equal(t, []string{"2026-10-10", "2026-10-11", "2026-10-12"}, b.Dates())
}

func TestCreateBookingUnapprovedProvider(t *testing.T) {
	f := newFixture()
	f.providers.providers[testProviderID].Status = models.ProviderStatusPending

	_, err := f.svc.Create(context.Background(), customer, CreateBookingInput{
		ProviderID:  testProviderID,
		ServiceDate: "2026-10-10",
	})
	require.Error(t, err)
}

func TestAcceptBooking(t *testing.T) {
	f := newFixture()
	b := f.createPendingBooking(t)

	got, err := f.svc.Accept(context.Background(), provider, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusAccepted, got.Status)
}

func TestAcceptBookingWrongProvider(t *testing.T) {
	f := newFixture()
	b := f.createPendingBooking(t)

	_, err := f.svc.Accept(context.Background(), models.Actor{ID: "prov-2", Role: models.RoleProvider}, b.ID)

	var notAuth *NotAuthorizedError
	require.ErrorAs(t, err, &notAuth)
}

func TestAcceptBookingTwice(t *testing.T) {
	f := newFixture()
	b := f.createPendingBooking(t)

	_, err := f.svc.Accept(context.Background(), provider, b.ID)
	require.NoError(t, err)

	_, err = f.svc.Accept(context.Background(), provider, b.ID)
	var invalid *InvalidTransitionError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, models.BookingStatusAccepted, invalid.From)
}

func TestRejectBookingStoresReason(t *testing.T) {
	f := newFixture()
	b := f.createPendingBooking(t)

	got, err := f.svc.Reject(context.Background(), provider, b.ID, "fully booked that week")
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusRejected, got.Status)
	assert.Equal(t, "fully booked that week", got.RejectionReason)
}

func TestCancelBooking(t *testing.T) {
	f := newFixture()
	b := f.createPendingBooking(t)

	got, err := f.svc.Cancel(context.Background(), customer, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, got.Status)
}

func TestCancelAcceptedBookingRejected(t *testing.T) {
	f := newFixture()
	b := f.createPendingBooking(t)
	_, err := f.svc.Accept(context.Background(), provider, b.ID)
	require.NoError(t, err)

	_, err = f.svc.Cancel(context.Background(), customer, b.ID)

	var invalid *InvalidTransitionError
	require.ErrorAs(t, err, &invalid)

	got, err := f.bookings.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusAccepted, got.Status)
}

func TestCancelByProviderForbidden(t *testing.T) {
	f := newFixture()
	b := f.createPendingBooking(t)

	_, err := f.svc.Cancel(context.Background(), provider, b.ID)

	var notAuth *NotAuthorizedError
	require.ErrorAs(t, err, &notAuth)
}

func TestTerminalStatesRejectFurtherTransitions(t *testing.T) {
	f := newFixture()
	b := f.createPendingBooking(t)
	_, err := f.svc.Reject(context.Background(), provider, b.ID, "")
	require.NoError(t, err)

	_, err = f.svc.Accept(context.Background(), provider, b.ID)
	var invalid *InvalidTransitionError
	require.ErrorAs(t, err, &invalid)

	_, err = f.svc.Cancel(context.Background(), customer, b.ID)
	require.ErrorAs(t, err, &invalid)
}

func TestGetByIDPartyCheck(t *testing.T) {
	f := newFixture()
	b := f.createPendingBooking(t)

	_, err := f.svc.GetByID(context.Background(), customer, b.ID)
	require.NoError(t, err)

	_, err = f.svc.GetByID(context.Background(), models.Actor{ID: "cust-2", Role: models.RoleCustomer}, b.ID)
	var notAuth *NotAuthorizedError
	require.ErrorAs(t, err, &notAuth)
}
