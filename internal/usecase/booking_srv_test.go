package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"fairshare-booking/internal/data/entity"
	"fairshare-booking/internal/data/repository"
	"fairshare-booking/internal/dto/request"
	"fairshare-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// ==================== IN-MEMORY FAKES ====================

type entKey struct {
	owner    uuid.UUID
	property uuid.UUID
	year     int
}

type fakeStore struct {
	owners       map[uuid.UUID]*entity.Owner
	properties   map[uuid.UUID]*entity.Property
	details      map[uuid.UUID]*entity.PropertyDetails
	holidays     map[uuid.UUID][]*entity.Holiday
	entitlements map[entKey]*entity.Entitlement
	bookings     map[uuid.UUID]*entity.Booking
	history      []*entity.BookingHistory
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		owners:       make(map[uuid.UUID]*entity.Owner),
		properties:   make(map[uuid.UUID]*entity.Property),
		details:      make(map[uuid.UUID]*entity.PropertyDetails),
		holidays:     make(map[uuid.UUID][]*entity.Holiday),
		entitlements: make(map[entKey]*entity.Entitlement),
		bookings:     make(map[uuid.UUID]*entity.Booking),
	}
}

func copyEntitlement(e *entity.Entitlement) *entity.Entitlement {
	c := *e
	return &c
}

func copyBooking(b *entity.Booking) *entity.Booking {
	c := *b
	if b.CancelledAt != nil {
		at := *b.CancelledAt
		c.CancelledAt = &at
	}
	return &c
}

type fakeOwnerRepo struct{ store *fakeStore }

func (f *fakeOwnerRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Owner, error) {
	return f.store.owners[id], nil
}

type fakePropertyRepo struct{ store *fakeStore }

func (f *fakePropertyRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Property, error) {
	return f.store.properties[id], nil
}

func (f *fakePropertyRepo) FindAllActive(_ context.Context, limit, offset int) ([]*entity.Property, error) {
	var active []*entity.Property
	for _, p := range f.store.properties {
		if p.Active {
			active = append(active, p)
		}
	}
	return active, nil
}

func (f *fakePropertyRepo) CountActive(_ context.Context) (int64, error) {
	count := int64(0)
	for _, p := range f.store.properties {
		if p.Active {
			count++
		}
	}
	return count, nil
}

type fakeDetailsRepo struct{ store *fakeStore }

func (f *fakeDetailsRepo) FindByPropertyID(_ context.Context, propertyID uuid.UUID) (*entity.PropertyDetails, error) {
	return f.store.details[propertyID], nil
}

type fakeHolidayRepo struct{ store *fakeStore }

func (f *fakeHolidayRepo) FindByProperty(_ context.Context, propertyID uuid.UUID) ([]*entity.Holiday, error) {
	return f.store.holidays[propertyID], nil
}

type fakeEntitlementRepo struct{ store *fakeStore }

func (f *fakeEntitlementRepo) Find(_ context.Context, ownerID, propertyID uuid.UUID, year int) (*entity.Entitlement, error) {
	if e, ok := f.store.entitlements[entKey{ownerID, propertyID, year}]; ok {
		return copyEntitlement(e), nil
	}
	return nil, nil
}

func (f *fakeEntitlementRepo) FindForUpdate(ctx context.Context, ownerID, propertyID uuid.UUID, year int) (*entity.Entitlement, error) {
	return f.Find(ctx, ownerID, propertyID, year)
}

func (f *fakeEntitlementRepo) Update(_ context.Context, e *entity.Entitlement) error {
	for key, stored := range f.store.entitlements {
		if stored.ID == e.ID {
			f.store.entitlements[key] = copyEntitlement(e)
			return nil
		}
	}
	return fmt.Errorf("entitlement %s not found", e.ID.String())
}

func (f *fakeEntitlementRepo) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]*entity.Entitlement, error) {
	var list []*entity.Entitlement
	for _, e := range f.store.entitlements {
		if e.OwnerID == ownerID {
			list = append(list, copyEntitlement(e))
		}
	}
	return list, nil
}

type fakeBookingRepo struct{ store *fakeStore }

func (f *fakeBookingRepo) Create(_ context.Context, b *entity.Booking) error {
	f.store.bookings[b.ID] = copyBooking(b)
	return nil
}

func (f *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	if b, ok := f.store.bookings[id]; ok {
		return copyBooking(b), nil
	}
	return nil, nil
}

func (f *fakeBookingRepo) FindByOwner(_ context.Context, ownerID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	var list []*entity.Booking
	for _, b := range f.store.bookings {
		if b.OwnerID == ownerID {
			list = append(list, copyBooking(b))
		}
	}
	return list, nil
}

func (f *fakeBookingRepo) CountByOwner(_ context.Context, ownerID uuid.UUID) (int64, error) {
	count := int64(0)
	for _, b := range f.store.bookings {
		if b.OwnerID == ownerID {
			count++
		}
	}
	return count, nil
}

func (f *fakeBookingRepo) Update(_ context.Context, b *entity.Booking) error {
	if _, ok := f.store.bookings[b.ID]; !ok {
		return fmt.Errorf("booking %s not found", b.ID.String())
	}
	f.store.bookings[b.ID] = copyBooking(b)
	return nil
}

func (f *fakeBookingRepo) FindActiveByProperty(_ context.Context, propertyID uuid.UUID) ([]*entity.Booking, error) {
	var list []*entity.Booking
	for _, b := range f.store.bookings {
		if b.PropertyID == propertyID && b.Active() {
			list = append(list, copyBooking(b))
		}
	}
	return list, nil
}

func (f *fakeBookingRepo) FindActiveByOwnerAndProperty(_ context.Context, ownerID, propertyID uuid.UUID) ([]*entity.Booking, error) {
	var list []*entity.Booking
	for _, b := range f.store.bookings {
		if b.OwnerID == ownerID && b.PropertyID == propertyID && b.Active() {
			list = append(list, copyBooking(b))
		}
	}
	return list, nil
}

func (f *fakeBookingRepo) FindOverlapping(_ context.Context, propertyID uuid.UUID, checkin, checkout time.Time) ([]*entity.Booking, error) {
	var list []*entity.Booking
	for _, b := range f.store.bookings {
		if b.PropertyID == propertyID && b.Active() && b.Overlaps(checkin, checkout) {
			list = append(list, copyBooking(b))
		}
	}
	return list, nil
}

func (f *fakeBookingRepo) HighestReference(_ context.Context, propertyID uuid.UUID, year int) (string, error) {
	prefix := fmt.Sprintf("FX%d", year)
	highest := ""
	for _, b := range f.store.bookings {
		if b.PropertyID == propertyID && strings.HasPrefix(b.Reference, prefix) && b.Reference > highest {
			highest = b.Reference
		}
	}
	return highest, nil
}

func (f *fakeBookingRepo) MarkCancelled(_ context.Context, id uuid.UUID, at time.Time) error {
	b, ok := f.store.bookings[id]
	if !ok || !b.Active() {
		return fmt.Errorf("booking %s not found or not active", id.String())
	}
	b.Status = entity.BookingStatusCancelled
	b.CancelledAt = &at
	return nil
}

type fakeHistoryRepo struct{ store *fakeStore }

func (f *fakeHistoryRepo) Append(_ context.Context, h *entity.BookingHistory) error {
	c := *h
	f.store.history = append(f.store.history, &c)
	return nil
}

func (f *fakeHistoryRepo) FindByBookingID(_ context.Context, bookingID uuid.UUID) ([]*entity.BookingHistory, error) {
	var list []*entity.BookingHistory
	for _, h := range f.store.history {
		if h.BookingID == bookingID {
			list = append(list, h)
		}
	}
	return list, nil
}

// fakeTxRunner snapshots the mutable tables before running fn and restores
// them on error, mimicking a real rollback.
type fakeTxRunner struct {
	store *fakeStore
	repo  *repository.Repository
}

func (f *fakeTxRunner) InTx(_ context.Context, fn func(r *repository.Repository) error) error {
	entSnap := make(map[entKey]*entity.Entitlement, len(f.store.entitlements))
	for k, e := range f.store.entitlements {
		entSnap[k] = copyEntitlement(e)
	}
	bookSnap := make(map[uuid.UUID]*entity.Booking, len(f.store.bookings))
	for k, b := range f.store.bookings {
		bookSnap[k] = copyBooking(b)
	}
	historyLen := len(f.store.history)

	if err := fn(f.repo); err != nil {
		f.store.entitlements = entSnap
		f.store.bookings = bookSnap
		f.store.history = f.store.history[:historyLen]
		return err
	}
	return nil
}

type fakeSync struct {
	createCalls []SyncPayload
	updateCalls []string
	cancelCalls []string
	failCreate  error
	nextID      int
}

func (f *fakeSync) CreateReservation(_ context.Context, payload SyncPayload) (string, error) {
	if f.failCreate != nil {
		return "", f.failCreate
	}
	f.createCalls = append(f.createCalls, payload)
	f.nextID++
	return fmt.Sprintf("EXT-%d", f.nextID), nil
}

func (f *fakeSync) UpdateReservation(_ context.Context, externalRef string, _ SyncPayload) error {
	f.updateCalls = append(f.updateCalls, externalRef)
	return nil
}

func (f *fakeSync) CancelReservation(_ context.Context, externalRef string) error {
	f.cancelCalls = append(f.cancelCalls, externalRef)
	return nil
}

type fakeNotifier struct {
	sent []Notification
}

func (f *fakeNotifier) Send(_ context.Context, n Notification) error {
	f.sent = append(f.sent, n)
	return nil
}

// ==================== FIXTURE ====================

type bookingFixture struct {
	store    *fakeStore
	sync     *fakeSync
	notifier *fakeNotifier
	service  *bookingService
	owner    *entity.Owner
	property *entity.Property
	now      time.Time
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()

	store := newFakeStore()
	repo := &repository.Repository{
		Owner:           &fakeOwnerRepo{store},
		Property:        &fakePropertyRepo{store},
		PropertyDetails: &fakeDetailsRepo{store},
		Holiday:         &fakeHolidayRepo{store},
		Entitlement:     &fakeEntitlementRepo{store},
		Booking:         &fakeBookingRepo{store},
		BookingHistory:  &fakeHistoryRepo{store},
	}

	sync := &fakeSync{}
	notifier := &fakeNotifier{}

	f := &bookingFixture{
		store:    store,
		sync:     sync,
		notifier: notifier,
		now:      time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	svc := NewBookingService(repo, &fakeTxRunner{store: store, repo: repo}, nil, sync, notifier, zap.NewNop()).(*bookingService)
	svc.now = func() time.Time { return f.now }
	f.service = svc

	f.owner = &entity.Owner{
		Base:      entity.Base{ID: uuid.New()},
		FirstName: "Alice",
		LastName:  "Nguyen",
		Email:     "alice@example.com",
		Role:      entity.RoleOwner,
	}
	store.owners[f.owner.ID] = f.owner

	f.property = &entity.Property{
		Base:         entity.Base{ID: uuid.New()},
		Code:         7,
		Name:         "Villa Mar Azul",
		Location:     "Costa Blanca",
		MaxGuests:    8,
		MaxPets:      2,
		TotalShares:  8,
		ExternalCode: "VILLA-7",
		Active:       true,
	}
	store.properties[f.property.ID] = f.property

	store.details[f.property.ID] = &entity.PropertyDetails{
		BaseSimple:     entity.BaseSimple{ID: uuid.New()},
		PropertyID:     f.property.ID,
		PeakStartMonth: 6, PeakStartDay: 15,
		PeakEndMonth: 9, PeakEndDay: 15,
		CheckInHour:  16,
		CheckOutHour: 10,
		CleaningFee:  decimal.RequireFromString("150.00"),
		FeePerPet:    decimal.RequireFromString("25.00"),
	}

	store.holidays[f.property.ID] = []*entity.Holiday{
		{
			BaseSimple: entity.BaseSimple{ID: uuid.New()},
			Name:       "Independence Day",
			StartDate:  date(2026, 7, 3),
			EndDate:    date(2026, 7, 5),
		},
	}

	f.seedEntitlement(f.owner.ID, 2026)
	f.seedEntitlement(f.owner.ID, 2027)

	return f
}

// seedEntitlement stores a full yearly ledger. Acquisition in 2021 keeps
// 2026 bookings outside the rebalance window.
func (f *bookingFixture) seedEntitlement(ownerID uuid.UUID, year int) *entity.Entitlement {
	e := testEntitlement(year)
	e.ID = uuid.New()
	e.OwnerID = ownerID
	e.PropertyID = f.property.ID
	e.AcquisitionDate = date(2021, 5, 1)
	f.store.entitlements[entKey{ownerID, f.property.ID, year}] = e
	return e
}

func (f *bookingFixture) entitlement(ownerID uuid.UUID, year int) *entity.Entitlement {
	return f.store.entitlements[entKey{ownerID, f.property.ID, year}]
}

func (f *bookingFixture) createReq(checkin, checkout string) *request.CreateBookingRequest {
	return &request.CreateBookingRequest{
		PropertyID: f.property.ID.String(),
		Checkin:    checkin,
		Checkout:   checkout,
		Guests:     4,
		Pets:       1,
	}
}

// ==================== TESTS ====================

func TestCreateBookingDebitsLedger(t *testing.T) {
	f := newBookingFixture(t)

	resp, err := f.service.CreateBooking(context.Background(), f.owner.ID, f.createReq("2026-10-05", "2026-10-10"))
	require.NoError(t, err)

	assert.Equal(t, "FX20260070001", resp.Reference)
	assert.Equal(t, 5, resp.Nights)
	assert.Equal(t, "175.00", resp.TotalFee)
	assert.Equal(t, "Villa Mar Azul", resp.PropertyName)

	ent := f.entitlement(f.owner.ID, 2026)
	assert.Equal(t, 16, ent.Off.Remaining)
	assert.Equal(t, 5, ent.Off.Booked)

	require.Len(t, f.sync.createCalls, 1)
	assert.Equal(t, "VILLA-7", f.sync.createCalls[0].PropertyCode)

	require.Len(t, f.store.history, 1)
	assert.Equal(t, entity.HistoryActionCreated, f.store.history[0].Action)

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, NotificationBookingConfirmed, f.notifier.sent[0].Kind)
	assert.Equal(t, "alice@example.com", f.notifier.sent[0].To)

	stored, _ := utils.ParseUUID(resp.ID)
	assert.Equal(t, "EXT-1", f.store.bookings[stored].ExternalRef)
}

func TestCreateBookingLastMinute(t *testing.T) {
	f := newBookingFixture(t)

	req := f.createReq("2026-03-03", "2026-03-05")
	req.LastMinute = true

	resp, err := f.service.CreateBooking(context.Background(), f.owner.ID, req)
	require.NoError(t, err)
	assert.True(t, resp.LastMinute)

	ent := f.entitlement(f.owner.ID, 2026)
	assert.Equal(t, 4, ent.LastMinute.Remaining)
	assert.Equal(t, 2, ent.LastMinute.Booked)
	// Seasonal buckets untouched.
	assert.Equal(t, 21, ent.Off.Remaining)
}

func TestCreateBookingSyncPayloadMirrorsStay(t *testing.T) {
	f := newBookingFixture(t)

	req := f.createReq("2026-10-05", "2026-10-10")
	req.Notes = "arriving by ferry"

	_, err := f.service.CreateBooking(context.Background(), f.owner.ID, req)
	require.NoError(t, err)

	require.Len(t, f.sync.createCalls, 1)
	payload := f.sync.createCalls[0]
	assert.Equal(t, "VILLA-7", payload.PropertyCode)
	assert.Equal(t, 16, payload.CheckInHour)
	assert.Equal(t, 10, payload.CheckOutHour)
	assert.Equal(t, "arriving by ferry", payload.Notes)
}

func TestCreateBookingSyncFailureRollsBack(t *testing.T) {
	f := newBookingFixture(t)
	f.sync.failCreate = errors.New("platform unreachable")

	_, err := f.service.CreateBooking(context.Background(), f.owner.ID, f.createReq("2026-10-05", "2026-10-10"))
	require.Error(t, err)

	rej, ok := AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, ReasonExternalSyncFailed, rej.Reason)

	// Nothing committed.
	ent := f.entitlement(f.owner.ID, 2026)
	assert.Equal(t, 21, ent.Off.Remaining)
	assert.Empty(t, f.store.bookings)
	assert.Empty(t, f.store.history)
	assert.Empty(t, f.notifier.sent)
}

func TestCreateBookingConflictRejected(t *testing.T) {
	f := newBookingFixture(t)

	other := &entity.Owner{Base: entity.Base{ID: uuid.New()}, FirstName: "Ben", LastName: "Ito", Email: "ben@example.com"}
	f.store.owners[other.ID] = other

	blocker := confirmedStay(date(2026, 10, 8), date(2026, 10, 12))
	blocker.OwnerID = other.ID
	blocker.PropertyID = f.property.ID
	f.store.bookings[blocker.ID] = blocker

	_, err := f.service.CreateBooking(context.Background(), f.owner.ID, f.createReq("2026-10-05", "2026-10-10"))
	rej, ok := AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, ReasonDatesBooked, rej.Reason)
	assert.Empty(t, f.sync.createCalls)
}

func TestCreateBookingReferenceSequence(t *testing.T) {
	f := newBookingFixture(t)

	prior := confirmedStay(date(2026, 5, 1), date(2026, 5, 6))
	prior.Reference = "FX20260070007"
	prior.OwnerID = uuid.New()
	prior.PropertyID = f.property.ID
	prior.Status = entity.BookingStatusCancelled
	f.store.bookings[prior.ID] = prior

	resp, err := f.service.CreateBooking(context.Background(), f.owner.ID, f.createReq("2026-10-05", "2026-10-10"))
	require.NoError(t, err)
	assert.Equal(t, "FX20260070008", resp.Reference)
}

func TestCancelBookingRestoresNights(t *testing.T) {
	f := newBookingFixture(t)

	resp, err := f.service.CreateBooking(context.Background(), f.owner.ID, f.createReq("2026-10-05", "2026-10-10"))
	require.NoError(t, err)
	bookingID, _ := utils.ParseUUID(resp.ID)

	cancelled, err := f.service.CancelBooking(context.Background(), f.owner.ID, bookingID)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusCancelled, cancelled.Status)
	require.NotNil(t, cancelled.CancelledAt)

	ent := f.entitlement(f.owner.ID, 2026)
	assert.Equal(t, 21, ent.Off.Remaining)
	assert.Equal(t, 0, ent.Off.Booked)
	assert.Equal(t, 5, ent.Off.Cancelled)

	assert.Equal(t, []string{"EXT-1"}, f.sync.cancelCalls)

	require.Len(t, f.notifier.sent, 2)
	assert.Equal(t, NotificationBookingCancelled, f.notifier.sent[1].Kind)
}

func TestCancelBookingLateForfeitsNights(t *testing.T) {
	f := newBookingFixture(t)

	resp, err := f.service.CreateBooking(context.Background(), f.owner.ID, f.createReq("2026-03-10", "2026-03-15"))
	require.NoError(t, err)
	bookingID, _ := utils.ParseUUID(resp.ID)

	// Five days before check-in: inside the late-cancel window.
	f.now = time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)

	_, err = f.service.CancelBooking(context.Background(), f.owner.ID, bookingID)
	require.NoError(t, err)

	ent := f.entitlement(f.owner.ID, 2026)
	assert.Equal(t, 16, ent.Off.Remaining)
	assert.Equal(t, 0, ent.Off.Booked)
	assert.Equal(t, 5, ent.Off.Lost)
}

func TestCancelBookingTwiceRejected(t *testing.T) {
	f := newBookingFixture(t)

	resp, err := f.service.CreateBooking(context.Background(), f.owner.ID, f.createReq("2026-10-05", "2026-10-10"))
	require.NoError(t, err)
	bookingID, _ := utils.ParseUUID(resp.ID)

	_, err = f.service.CancelBooking(context.Background(), f.owner.ID, bookingID)
	require.NoError(t, err)

	_, err = f.service.CancelBooking(context.Background(), f.owner.ID, bookingID)
	rej, ok := AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, ReasonAlreadyCancelled, rej.Reason)
}

func TestCancelLastMinuteRejected(t *testing.T) {
	f := newBookingFixture(t)

	req := f.createReq("2026-03-03", "2026-03-05")
	req.LastMinute = true
	resp, err := f.service.CreateBooking(context.Background(), f.owner.ID, req)
	require.NoError(t, err)
	bookingID, _ := utils.ParseUUID(resp.ID)

	_, err = f.service.CancelBooking(context.Background(), f.owner.ID, bookingID)
	rej, ok := AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, ReasonCannotCancelLastMinute, rej.Reason)
}

func TestUpdateBookingMovesNights(t *testing.T) {
	f := newBookingFixture(t)

	resp, err := f.service.CreateBooking(context.Background(), f.owner.ID, f.createReq("2026-10-05", "2026-10-10"))
	require.NoError(t, err)
	bookingID, _ := utils.ParseUUID(resp.ID)

	updated, err := f.service.UpdateBooking(context.Background(), f.owner.ID, bookingID, &request.UpdateBookingRequest{
		Checkin:  "2026-10-20",
		Checkout: "2026-10-24",
		Guests:   2,
		Pets:     0,
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-10-20", updated.Checkin)
	assert.Equal(t, 4, updated.Nights)
	assert.Equal(t, "150.00", updated.TotalFee)

	ent := f.entitlement(f.owner.ID, 2026)
	assert.Equal(t, 17, ent.Off.Remaining)
	assert.Equal(t, 4, ent.Off.Booked)

	assert.Equal(t, []string{"EXT-1"}, f.sync.updateCalls)

	actions := make([]string, 0, len(f.store.history))
	for _, h := range f.store.history {
		actions = append(actions, h.Action)
	}
	assert.Equal(t, []string{entity.HistoryActionCreated, entity.HistoryActionUpdated}, actions)
}

func TestCreateBookingRebalancesAdjacentYear(t *testing.T) {
	f := newBookingFixture(t)

	// Odd parity: acquisition 2020, booking 2026, evaluated in 2026.
	f.entitlement(f.owner.ID, 2026).AcquisitionDate = date(2020, 5, 1)
	f.entitlement(f.owner.ID, 2027).AcquisitionDate = date(2020, 5, 1)

	// Jul 2 to Jul 6: one peak night, three peak-holiday nights.
	resp, err := f.service.CreateBooking(context.Background(), f.owner.ID, f.createReq("2026-07-02", "2026-07-06"))
	require.NoError(t, err)
	bookingID, _ := utils.ParseUUID(resp.ID)

	assert.Equal(t, 4, f.entitlement(f.owner.ID, 2026).PeakHoliday.Remaining)
	assert.Equal(t, 3, f.entitlement(f.owner.ID, 2026).PeakHoliday.Booked)
	// Mirrored onto the following shared year.
	assert.Equal(t, 4, f.entitlement(f.owner.ID, 2027).PeakHoliday.Remaining)

	_, err = f.service.CancelBooking(context.Background(), f.owner.ID, bookingID)
	require.NoError(t, err)

	assert.Equal(t, 7, f.entitlement(f.owner.ID, 2026).PeakHoliday.Remaining)
	assert.Equal(t, 7, f.entitlement(f.owner.ID, 2027).PeakHoliday.Remaining)
}

func TestAdminCreateDisplacesConflicts(t *testing.T) {
	f := newBookingFixture(t)

	other := &entity.Owner{Base: entity.Base{ID: uuid.New()}, FirstName: "Ben", LastName: "Ito", Email: "ben@example.com"}
	f.store.owners[other.ID] = other
	otherEnt := f.seedEntitlement(other.ID, 2026)
	otherEnt.Off.Remaining = 16
	otherEnt.Off.Booked = 5

	blocker := confirmedStay(date(2026, 10, 7), date(2026, 10, 12))
	blocker.OwnerID = other.ID
	blocker.PropertyID = f.property.ID
	blocker.ExternalRef = "EXT-OLD"
	f.store.bookings[blocker.ID] = blocker

	adminID := uuid.New()
	resp, err := f.service.AdminCreateBooking(context.Background(), adminID, &request.AdminCreateBookingRequest{
		OwnerID:    f.owner.ID.String(),
		PropertyID: f.property.ID.String(),
		Checkin:    "2026-10-05",
		Checkout:   "2026-10-10",
		Guests:     4,
		Pets:       0,
		Reason:     "board-approved maintenance window move",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusConfirmed, resp.Status)

	// Displaced owner made whole.
	displacedEnt := f.entitlement(other.ID, 2026)
	assert.Equal(t, 21, displacedEnt.Off.Remaining)
	assert.Equal(t, 0, displacedEnt.Off.Booked)
	assert.Equal(t, entity.BookingStatusCancelled, f.store.bookings[blocker.ID].Status)
	assert.Equal(t, []string{"EXT-OLD"}, f.sync.cancelCalls)

	// New owner's ledger debited.
	assert.Equal(t, 16, f.entitlement(f.owner.ID, 2026).Off.Remaining)

	actions := make([]string, 0, len(f.store.history))
	for _, h := range f.store.history {
		actions = append(actions, h.Action)
	}
	assert.Contains(t, actions, entity.HistoryActionOverridden)
	assert.Contains(t, actions, entity.HistoryActionCreated)

	require.Len(t, f.notifier.sent, 2)
	assert.Equal(t, NotificationBookingConfirmed, f.notifier.sent[0].Kind)
	assert.Equal(t, NotificationBookingCancelled, f.notifier.sent[1].Kind)
	assert.Equal(t, "ben@example.com", f.notifier.sent[1].To)
}

func TestAdminCreateKeepsBookingGap(t *testing.T) {
	f := newBookingFixture(t)

	// The target owner's own stay starts two nights after the requested
	// checkout. It does not collide, so nothing is displaced, but the
	// spacing rule still applies to an override.
	existing := confirmedStay(date(2026, 10, 12), date(2026, 10, 16))
	existing.OwnerID = f.owner.ID
	existing.PropertyID = f.property.ID
	f.store.bookings[existing.ID] = existing

	_, err := f.service.AdminCreateBooking(context.Background(), uuid.New(), &request.AdminCreateBookingRequest{
		OwnerID:    f.owner.ID.String(),
		PropertyID: f.property.ID.String(),
		Checkin:    "2026-10-05",
		Checkout:   "2026-10-10",
		Guests:     4,
		Pets:       0,
	})
	rej, ok := AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, ReasonInsufficientGap, rej.Reason)
	assert.Equal(t, entity.BookingStatusConfirmed, f.store.bookings[existing.ID].Status)
}

func TestGetBookingByIDOwnership(t *testing.T) {
	f := newBookingFixture(t)

	resp, err := f.service.CreateBooking(context.Background(), f.owner.ID, f.createReq("2026-10-05", "2026-10-10"))
	require.NoError(t, err)
	bookingID, _ := utils.ParseUUID(resp.ID)

	strangerID := uuid.New()
	_, err = f.service.GetBookingByID(context.Background(), strangerID, entity.RoleOwner, bookingID)
	rej, ok := AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, ReasonBookingNotFound, rej.Reason)

	got, err := f.service.GetBookingByID(context.Background(), strangerID, entity.RoleAdmin, bookingID)
	require.NoError(t, err)
	assert.Equal(t, resp.Reference, got.Reference)
	require.Len(t, got.History, 1)
	assert.Equal(t, entity.HistoryActionCreated, got.History[0].Action)
	assert.Equal(t, f.owner.ID.String(), got.History[0].ActorID)
}
