package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fairshare-booking/internal/data/entity"
	"fairshare-booking/internal/data/repository"
	"fairshare-booking/internal/dto/request"
	"fairshare-booking/internal/dto/response"
	"fairshare-booking/pkg/cache"
	"fairshare-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Cancellations fewer than this many days before check-in forfeit the
// booked nights instead of restoring them.
const lateCancelDays = 7

const seasonCacheKeyPrefix = "season:"

type BookingService interface {
	CreateBooking(ctx context.Context, ownerID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	UpdateBooking(ctx context.Context, ownerID, bookingID uuid.UUID, req *request.UpdateBookingRequest) (*response.BookingResponse, error)
	CancelBooking(ctx context.Context, ownerID, bookingID uuid.UUID) (*response.BookingResponse, error)
	AdminCreateBooking(ctx context.Context, adminID uuid.UUID, req *request.AdminCreateBookingRequest) (*response.BookingResponse, error)
	GetOwnerBookings(ctx context.Context, ownerID uuid.UUID, page request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetBookingByID(ctx context.Context, ownerID uuid.UUID, role string, bookingID uuid.UUID) (*response.BookingDetailResponse, error)
}

type bookingService struct {
	repo     *repository.Repository
	tx       repository.TxRunner
	cache    *cache.Cache
	sync     ReservationSync
	notifier NotificationSender
	log      *zap.Logger
	now      func() time.Time
}

func NewBookingService(
	repo *repository.Repository,
	tx repository.TxRunner,
	cache *cache.Cache,
	sync ReservationSync,
	notifier NotificationSender,
	log *zap.Logger,
) BookingService {
	return &bookingService{
		repo:     repo,
		tx:       tx,
		cache:    cache,
		sync:     sync,
		notifier: notifier,
		log:      log.With(zap.String("service", "booking")),
		now:      time.Now,
	}
}

// ==================== LEDGER SET ====================

type ledgerKey struct {
	owner uuid.UUID
	year  int
}

// ledgerSet memoizes the entitlement rows locked within one transaction so
// a row touched by several steps (revert, debit, rebalance) is loaded once
// and written once.
type ledgerSet struct {
	propertyID uuid.UUID
	entries    map[ledgerKey]*entity.Entitlement
}

func newLedgerSet(propertyID uuid.UUID) *ledgerSet {
	return &ledgerSet{
		propertyID: propertyID,
		entries:    make(map[ledgerKey]*entity.Entitlement),
	}
}

// lock returns the row for (owner, year) locked for the transaction, or nil
// when the owner has no entitlement that year.
func (l *ledgerSet) lock(ctx context.Context, r *repository.Repository, ownerID uuid.UUID, year int) (*entity.Entitlement, error) {
	key := ledgerKey{owner: ownerID, year: year}
	if entry, ok := l.entries[key]; ok {
		return entry, nil
	}

	entry, err := r.Entitlement.FindForUpdate(ctx, ownerID, l.propertyID, year)
	if err != nil {
		return nil, err
	}
	l.entries[key] = entry
	return entry, nil
}

func (l *ledgerSet) saveAll(ctx context.Context, r *repository.Repository) error {
	for _, entry := range l.entries {
		if entry == nil {
			continue
		}
		if err := r.Entitlement.Update(ctx, entry); err != nil {
			return err
		}
	}
	return nil
}

// ==================== SHARED STEPS ====================

// loadSeasonInfo resolves the property's classification data, preferring
// the cache. The cached copy only changes when property configuration
// changes, which invalidates the key.
func (s *bookingService) loadSeasonInfo(ctx context.Context, r *repository.Repository, propertyID uuid.UUID) (SeasonInfo, error) {
	key := seasonCacheKeyPrefix + propertyID.String()

	var info SeasonInfo
	if s.cache.Get(ctx, key, &info) {
		return info, nil
	}

	details, err := r.PropertyDetails.FindByPropertyID(ctx, propertyID)
	if err != nil {
		return SeasonInfo{}, err
	}
	if details == nil {
		return SeasonInfo{}, fmt.Errorf("property %s has no season configuration", propertyID.String())
	}

	holidays, err := r.Holiday.FindByProperty(ctx, propertyID)
	if err != nil {
		return SeasonInfo{}, err
	}

	info = NewSeasonInfo(details, holidays)
	s.cache.Set(ctx, key, info)
	return info, nil
}

// lockStayLedgers locks the entitlement rows for the check-in and check-out
// years. second is nil when the stay does not cross Dec 31.
func (s *bookingService) lockStayLedgers(
	ctx context.Context,
	r *repository.Repository,
	ledgers *ledgerSet,
	ownerID uuid.UUID,
	checkin, checkout time.Time,
) (first, second *entity.Entitlement, err error) {
	first, err = ledgers.lock(ctx, r, ownerID, checkin.Year())
	if err != nil {
		return nil, nil, err
	}
	if checkout.Year() != checkin.Year() {
		second, err = ledgers.lock(ctx, r, ownerID, checkout.Year())
		if err != nil {
			return nil, nil, err
		}
	}
	return first, second, nil
}

// applyRebalance mirrors a peak-holiday debit onto the adjacent shared
// year. direction is +1 on commit and -1 on reversal; both sides use the
// same target computation so the adjustment always round-trips.
func (s *bookingService) applyRebalance(
	ctx context.Context,
	r *repository.Repository,
	ledgers *ledgerSet,
	ownerID uuid.UUID,
	counts NightCounts,
	acquisitionYear int,
	direction int,
) error {
	target := rebalanceTargetYear(counts.FirstYearNumber, acquisitionYear, s.now().Year())
	if target == 0 {
		return nil
	}

	entry, err := ledgers.lock(ctx, r, ownerID, target)
	if err != nil {
		return err
	}
	if entry == nil {
		// No ledger issued for the adjacent year yet; nothing to mirror.
		return nil
	}

	entry.PeakHoliday.Remaining -= direction * counts.PeakHoliday.Total()
	return nil
}

func computeFees(info SeasonInfo, pets int) (cleaning, petFee, total decimal.Decimal) {
	cleaning = info.CleaningFee
	petFee = info.FeePerPet.Mul(decimal.NewFromInt(int64(pets)))
	total = cleaning.Add(petFee)
	return cleaning, petFee, total
}

// nextReference issues the next booking reference for a property and year.
// Runs inside the booking transaction so two concurrent bookings cannot
// draw the same sequence.
func nextReference(ctx context.Context, r *repository.Repository, propertyID uuid.UUID, propertyCode, year int) (string, error) {
	highest, err := r.Booking.HighestReference(ctx, propertyID, year)
	if err != nil {
		return "", err
	}
	sequence := utils.ParseReferenceSequence(highest) + 1
	return utils.GenerateBookingReference(year, propertyCode, sequence), nil
}

func appendHistory(ctx context.Context, r *repository.Repository, booking *entity.Booking, action string, actorID uuid.UUID, at time.Time) error {
	snapshot, err := json.Marshal(booking)
	if err != nil {
		return fmt.Errorf("snapshot booking %s: %w", booking.Reference, err)
	}

	return r.BookingHistory.Append(ctx, &entity.BookingHistory{
		BaseSimple: entity.BaseSimple{
			ID:        utils.GenerateUUID(),
			CreatedAt: at,
		},
		BookingID: booking.ID,
		Action:    action,
		ActorID:   actorID,
		Snapshot:  snapshot,
	})
}

// syncFailure maps a transport or platform error from the reservation
// mirror into a rejection, preserving rejections the gateway already built.
func syncFailure(err error) error {
	if _, ok := AsRejection(err); ok {
		return err
	}
	return Reject(ReasonExternalSyncFailed, "%v", err)
}

func (s *bookingService) syncPayload(property *entity.Property, owner *entity.Owner, booking *entity.Booking) SyncPayload {
	return SyncPayload{
		Reference:    booking.Reference,
		PropertyCode: property.ExternalCode,
		OwnerName:    owner.FullName(),
		Checkin:      booking.Checkin,
		Checkout:     booking.Checkout,
		CheckInHour:  booking.CheckInHour,
		CheckOutHour: booking.CheckOutHour,
		Guests:       booking.Guests,
		Pets:         booking.Pets,
		Notes:        booking.Notes,
	}
}

func (s *bookingService) notify(ctx context.Context, kind NotificationKind, owner *entity.Owner, property *entity.Property, booking *entity.Booking) {
	if s.notifier == nil {
		return
	}

	err := s.notifier.Send(ctx, Notification{
		Kind:         kind,
		To:           owner.Email,
		OwnerName:    owner.FullName(),
		PropertyName: property.Name,
		Booking:      *booking,
	})
	if err != nil {
		s.log.Warn("Failed to send booking notification",
			zap.Error(err),
			zap.String("kind", string(kind)),
			zap.String("reference", booking.Reference),
		)
	}
}

// ==================== CREATE ====================

func (s *bookingService) CreateBooking(ctx context.Context, ownerID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	propertyID, err := utils.ParseUUID(req.PropertyID)
	if err != nil {
		return nil, Reject(ReasonNoAccessToProperty, "invalid property id")
	}

	checkin, err := utils.ParseDate(req.Checkin)
	if err != nil {
		return nil, Reject(ReasonDatesOutOfRange, "invalid checkin date %q", req.Checkin)
	}
	checkout, err := utils.ParseDate(req.Checkout)
	if err != nil {
		return nil, Reject(ReasonDatesOutOfRange, "invalid checkout date %q", req.Checkout)
	}

	owner, err := s.repo.Owner.FindByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, fmt.Errorf("owner %s not found", ownerID.String())
	}

	var (
		created  *entity.Booking
		property *entity.Property
	)

	err = s.tx.InTx(ctx, func(r *repository.Repository) error {
		property, err = r.Property.FindByID(ctx, propertyID)
		if err != nil {
			return err
		}
		if property == nil || !property.Active {
			return Reject(ReasonNoAccessToProperty, "property not found or inactive")
		}

		info, err := s.loadSeasonInfo(ctx, r, propertyID)
		if err != nil {
			return err
		}

		ledgers := newLedgerSet(propertyID)
		first, second, err := s.lockStayLedgers(ctx, r, ledgers, ownerID, checkin, checkout)
		if err != nil {
			return err
		}

		ownerBookings, err := r.Booking.FindActiveByOwnerAndProperty(ctx, ownerID, propertyID)
		if err != nil {
			return err
		}
		propertyBookings, err := r.Booking.FindActiveByProperty(ctx, propertyID)
		if err != nil {
			return err
		}

		counts, rej := validateBookingRequest(ValidationInput{
			Now:              s.now(),
			Checkin:          checkin,
			Checkout:         checkout,
			Guests:           req.Guests,
			Pets:             req.Pets,
			LastMinute:       req.LastMinute,
			Property:         property,
			Info:             info,
			First:            first,
			Second:           second,
			OwnerBookings:    ownerBookings,
			PropertyBookings: propertyBookings,
		})
		if rej != nil {
			return rej
		}

		if req.LastMinute {
			if rej := debitLastMinute(first, second, counts); rej != nil {
				return rej
			}
		} else {
			if rej := debitRegular(first, second, counts); rej != nil {
				return rej
			}
			if rebalanceApplies(counts, false) {
				if err := s.applyRebalance(ctx, r, ledgers, ownerID, counts, first.AcquisitionDate.Year(), 1); err != nil {
					return err
				}
			}
		}

		if err := ledgers.saveAll(ctx, r); err != nil {
			return err
		}

		reference, err := nextReference(ctx, r, propertyID, property.Code, checkin.Year())
		if err != nil {
			return err
		}

		now := s.now()
		cleaning, petFee, total := computeFees(info, req.Pets)

		booking := &entity.Booking{
			Base: entity.Base{
				ID:        utils.GenerateUUID(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			Reference:    reference,
			OwnerID:      ownerID,
			PropertyID:   propertyID,
			Checkin:      checkin,
			Checkout:     checkout,
			CheckInHour:  info.CheckInHour,
			CheckOutHour: info.CheckOutHour,
			Guests:       req.Guests,
			Pets:         req.Pets,
			LastMinute:   req.LastMinute,
			Notes:        req.Notes,
			CleaningFee:  cleaning,
			PetFee:       petFee,
			TotalFee:     total,
			Status:       entity.BookingStatusConfirmed,
		}

		externalRef, err := s.sync.CreateReservation(ctx, s.syncPayload(property, owner, booking))
		if err != nil {
			return syncFailure(err)
		}
		booking.ExternalRef = externalRef

		if err := r.Booking.Create(ctx, booking); err != nil {
			return err
		}
		if err := appendHistory(ctx, r, booking, entity.HistoryActionCreated, ownerID, now); err != nil {
			return err
		}

		created = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Booking created",
		zap.String("reference", created.Reference),
		zap.String("owner_id", ownerID.String()),
		zap.Int("nights", created.Nights()),
		zap.Bool("last_minute", created.LastMinute),
	)

	s.notify(ctx, NotificationBookingConfirmed, owner, property, created)

	resp := response.BookingToResponse(created)
	resp.PropertyName = property.Name
	return &resp, nil
}

// ==================== UPDATE ====================

func (s *bookingService) UpdateBooking(ctx context.Context, ownerID, bookingID uuid.UUID, req *request.UpdateBookingRequest) (*response.BookingResponse, error) {
	checkin, err := utils.ParseDate(req.Checkin)
	if err != nil {
		return nil, Reject(ReasonDatesOutOfRange, "invalid checkin date %q", req.Checkin)
	}
	checkout, err := utils.ParseDate(req.Checkout)
	if err != nil {
		return nil, Reject(ReasonDatesOutOfRange, "invalid checkout date %q", req.Checkout)
	}

	owner, err := s.repo.Owner.FindByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, fmt.Errorf("owner %s not found", ownerID.String())
	}

	var (
		updated  *entity.Booking
		property *entity.Property
	)

	err = s.tx.InTx(ctx, func(r *repository.Repository) error {
		booking, err := r.Booking.FindByID(ctx, bookingID)
		if err != nil {
			return err
		}
		if booking == nil || booking.OwnerID != ownerID {
			return Reject(ReasonBookingNotFound, "booking %s", bookingID.String())
		}
		if !booking.Active() {
			return Reject(ReasonAlreadyCancelled, "booking %s is %s", booking.Reference, booking.Status)
		}
		if booking.LastMinute {
			return Reject(ReasonCannotCancelLastMinute, "booking %s cannot be modified or cancelled", booking.Reference)
		}
		if !booking.Checkin.After(utils.NormalizeDate(s.now())) {
			return Reject(ReasonCannotCancelPast, "stay %s has already started", booking.Reference)
		}

		property, err = r.Property.FindByID(ctx, booking.PropertyID)
		if err != nil {
			return err
		}
		if property == nil || !property.Active {
			return Reject(ReasonNoAccessToProperty, "property not found or inactive")
		}

		info, err := s.loadSeasonInfo(ctx, r, booking.PropertyID)
		if err != nil {
			return err
		}

		ledgers := newLedgerSet(booking.PropertyID)

		// Return the original nights first so the new dates validate
		// against the restored balances.
		origCounts := CalculateNightCounts(booking.Checkin, booking.Checkout, info)
		origFirst, origSecond, err := s.lockStayLedgers(ctx, r, ledgers, ownerID, booking.Checkin, booking.Checkout)
		if err != nil {
			return err
		}
		if origFirst == nil {
			return fmt.Errorf("entitlement missing for booking %s year %d", booking.Reference, booking.Checkin.Year())
		}

		creditRegular(origFirst, origSecond, origCounts)
		if rebalanceApplies(origCounts, false) {
			if err := s.applyRebalance(ctx, r, ledgers, ownerID, origCounts, origFirst.AcquisitionDate.Year(), -1); err != nil {
				return err
			}
		}

		first, second, err := s.lockStayLedgers(ctx, r, ledgers, ownerID, checkin, checkout)
		if err != nil {
			return err
		}

		ownerBookings, err := r.Booking.FindActiveByOwnerAndProperty(ctx, ownerID, booking.PropertyID)
		if err != nil {
			return err
		}
		propertyBookings, err := r.Booking.FindActiveByProperty(ctx, booking.PropertyID)
		if err != nil {
			return err
		}

		counts, rej := validateBookingRequest(ValidationInput{
			Now:              s.now(),
			Checkin:          checkin,
			Checkout:         checkout,
			Guests:           req.Guests,
			Pets:             req.Pets,
			Property:         property,
			Info:             info,
			First:            first,
			Second:           second,
			OwnerBookings:    ownerBookings,
			PropertyBookings: propertyBookings,
			ExcludeBookingID: booking.ID,
		})
		if rej != nil {
			return rej
		}

		if rej := debitRegular(first, second, counts); rej != nil {
			return rej
		}
		if rebalanceApplies(counts, false) {
			if err := s.applyRebalance(ctx, r, ledgers, ownerID, counts, first.AcquisitionDate.Year(), 1); err != nil {
				return err
			}
		}

		if err := ledgers.saveAll(ctx, r); err != nil {
			return err
		}

		now := s.now()
		cleaning, petFee, total := computeFees(info, req.Pets)

		booking.Checkin = checkin
		booking.Checkout = checkout
		booking.CheckInHour = info.CheckInHour
		booking.CheckOutHour = info.CheckOutHour
		booking.Guests = req.Guests
		booking.Pets = req.Pets
		booking.Notes = req.Notes
		booking.CleaningFee = cleaning
		booking.PetFee = petFee
		booking.TotalFee = total
		booking.UpdatedAt = now

		if booking.ExternalRef != "" {
			if err := s.sync.UpdateReservation(ctx, booking.ExternalRef, s.syncPayload(property, owner, booking)); err != nil {
				return syncFailure(err)
			}
		}

		if err := r.Booking.Update(ctx, booking); err != nil {
			return err
		}
		if err := appendHistory(ctx, r, booking, entity.HistoryActionUpdated, ownerID, now); err != nil {
			return err
		}

		updated = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Booking updated",
		zap.String("reference", updated.Reference),
		zap.String("owner_id", ownerID.String()),
	)

	s.notify(ctx, NotificationBookingModified, owner, property, updated)

	resp := response.BookingToResponse(updated)
	resp.PropertyName = property.Name
	return &resp, nil
}

// ==================== CANCEL ====================

func (s *bookingService) CancelBooking(ctx context.Context, ownerID, bookingID uuid.UUID) (*response.BookingResponse, error) {
	owner, err := s.repo.Owner.FindByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, fmt.Errorf("owner %s not found", ownerID.String())
	}

	var (
		cancelled *entity.Booking
		property  *entity.Property
	)

	err = s.tx.InTx(ctx, func(r *repository.Repository) error {
		booking, err := r.Booking.FindByID(ctx, bookingID)
		if err != nil {
			return err
		}
		if booking == nil || booking.OwnerID != ownerID {
			return Reject(ReasonBookingNotFound, "booking %s", bookingID.String())
		}
		if !booking.Active() {
			return Reject(ReasonAlreadyCancelled, "booking %s is %s", booking.Reference, booking.Status)
		}
		if booking.LastMinute {
			return Reject(ReasonCannotCancelLastMinute, "booking %s cannot be cancelled", booking.Reference)
		}

		now := s.now()
		today := utils.NormalizeDate(now)
		if !booking.Checkin.After(today) {
			return Reject(ReasonCannotCancelPast, "stay %s has already started", booking.Reference)
		}

		property, err = r.Property.FindByID(ctx, booking.PropertyID)
		if err != nil {
			return err
		}
		if property == nil {
			return fmt.Errorf("property %s not found", booking.PropertyID.String())
		}

		info, err := s.loadSeasonInfo(ctx, r, booking.PropertyID)
		if err != nil {
			return err
		}

		ledgers := newLedgerSet(booking.PropertyID)
		counts := CalculateNightCounts(booking.Checkin, booking.Checkout, info)
		first, second, err := s.lockStayLedgers(ctx, r, ledgers, ownerID, booking.Checkin, booking.Checkout)
		if err != nil {
			return err
		}
		if first == nil {
			return fmt.Errorf("entitlement missing for booking %s year %d", booking.Reference, booking.Checkin.Year())
		}

		// Inside the late-cancel window the nights are forfeited; the
		// mirrored rebalance stays in place because the entitlement was
		// consumed. Otherwise everything round-trips.
		if utils.DaysBetween(today, booking.Checkin) < lateCancelDays {
			markLostRegular(first, second, counts)
		} else {
			creditRegular(first, second, counts)
			recordCancelled(first, second, counts)
			if rebalanceApplies(counts, false) {
				if err := s.applyRebalance(ctx, r, ledgers, ownerID, counts, first.AcquisitionDate.Year(), -1); err != nil {
					return err
				}
			}
		}

		if err := ledgers.saveAll(ctx, r); err != nil {
			return err
		}

		if booking.ExternalRef != "" {
			if err := s.sync.CancelReservation(ctx, booking.ExternalRef); err != nil {
				return syncFailure(err)
			}
		}

		if err := r.Booking.MarkCancelled(ctx, booking.ID, now); err != nil {
			return err
		}
		booking.Status = entity.BookingStatusCancelled
		booking.CancelledAt = &now
		booking.UpdatedAt = now

		if err := appendHistory(ctx, r, booking, entity.HistoryActionCancelled, ownerID, now); err != nil {
			return err
		}

		cancelled = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Booking cancelled",
		zap.String("reference", cancelled.Reference),
		zap.String("owner_id", ownerID.String()),
	)

	s.notify(ctx, NotificationBookingCancelled, owner, property, cancelled)

	resp := response.BookingToResponse(cancelled)
	resp.PropertyName = property.Name
	return &resp, nil
}

// ==================== ADMIN OVERRIDE ====================

type displacedBooking struct {
	owner   *entity.Owner
	booking *entity.Booking
}

// AdminCreateBooking books on behalf of an owner with override semantics:
// confirmed stays that collide with the requested dates are cancelled and
// credited back in the same transaction, and their owners are notified.
func (s *bookingService) AdminCreateBooking(ctx context.Context, adminID uuid.UUID, req *request.AdminCreateBookingRequest) (*response.BookingResponse, error) {
	targetOwnerID, err := utils.ParseUUID(req.OwnerID)
	if err != nil {
		return nil, Reject(ReasonBookingNotFound, "invalid owner id")
	}
	propertyID, err := utils.ParseUUID(req.PropertyID)
	if err != nil {
		return nil, Reject(ReasonNoAccessToProperty, "invalid property id")
	}
	checkin, err := utils.ParseDate(req.Checkin)
	if err != nil {
		return nil, Reject(ReasonDatesOutOfRange, "invalid checkin date %q", req.Checkin)
	}
	checkout, err := utils.ParseDate(req.Checkout)
	if err != nil {
		return nil, Reject(ReasonDatesOutOfRange, "invalid checkout date %q", req.Checkout)
	}

	owner, err := s.repo.Owner.FindByID(ctx, targetOwnerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, Reject(ReasonBookingNotFound, "owner %s not found", targetOwnerID.String())
	}

	var (
		created   *entity.Booking
		property  *entity.Property
		displaced []displacedBooking
	)

	err = s.tx.InTx(ctx, func(r *repository.Repository) error {
		displaced = displaced[:0]

		property, err = r.Property.FindByID(ctx, propertyID)
		if err != nil {
			return err
		}
		if property == nil || !property.Active {
			return Reject(ReasonNoAccessToProperty, "property not found or inactive")
		}

		info, err := s.loadSeasonInfo(ctx, r, propertyID)
		if err != nil {
			return err
		}

		ledgers := newLedgerSet(propertyID)
		now := s.now()

		// Displace colliding stays first so their owners' ledgers are
		// restored before the new stay validates.
		overlapping, err := r.Booking.FindOverlapping(ctx, propertyID, checkin, checkout)
		if err != nil {
			return err
		}
		for _, other := range overlapping {
			if err := s.displaceBooking(ctx, r, ledgers, info, other, adminID, now); err != nil {
				return err
			}

			otherOwner, err := r.Owner.FindByID(ctx, other.OwnerID)
			if err != nil {
				return err
			}
			if otherOwner != nil {
				displaced = append(displaced, displacedBooking{owner: otherOwner, booking: other})
			}
		}

		first, second, err := s.lockStayLedgers(ctx, r, ledgers, targetOwnerID, checkin, checkout)
		if err != nil {
			return err
		}

		// Loaded after displacement so cancelled collisions drop out; the
		// spacing rule still applies to the target owner's other stays.
		ownerBookings, err := r.Booking.FindActiveByOwnerAndProperty(ctx, targetOwnerID, propertyID)
		if err != nil {
			return err
		}

		// Overrides skip only the conflict check; collisions were just
		// displaced.
		counts, rej := validateBookingRequest(ValidationInput{
			Now:           now,
			Checkin:       checkin,
			Checkout:      checkout,
			Guests:        req.Guests,
			Pets:          req.Pets,
			LastMinute:    req.LastMinute,
			Property:      property,
			Info:          info,
			First:         first,
			Second:        second,
			OwnerBookings: ownerBookings,
			SkipConflict:  true,
		})
		if rej != nil {
			return rej
		}

		if req.LastMinute {
			if rej := debitLastMinute(first, second, counts); rej != nil {
				return rej
			}
		} else {
			if rej := debitRegular(first, second, counts); rej != nil {
				return rej
			}
			if rebalanceApplies(counts, false) {
				if err := s.applyRebalance(ctx, r, ledgers, targetOwnerID, counts, first.AcquisitionDate.Year(), 1); err != nil {
					return err
				}
			}
		}

		if err := ledgers.saveAll(ctx, r); err != nil {
			return err
		}

		reference, err := nextReference(ctx, r, propertyID, property.Code, checkin.Year())
		if err != nil {
			return err
		}

		cleaning, petFee, total := computeFees(info, req.Pets)

		booking := &entity.Booking{
			Base: entity.Base{
				ID:        utils.GenerateUUID(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			Reference:    reference,
			OwnerID:      targetOwnerID,
			PropertyID:   propertyID,
			Checkin:      checkin,
			Checkout:     checkout,
			CheckInHour:  info.CheckInHour,
			CheckOutHour: info.CheckOutHour,
			Guests:       req.Guests,
			Pets:         req.Pets,
			LastMinute:   req.LastMinute,
			Notes:        req.Reason,
			CleaningFee:  cleaning,
			PetFee:       petFee,
			TotalFee:     total,
			Status:       entity.BookingStatusConfirmed,
		}

		externalRef, err := s.sync.CreateReservation(ctx, s.syncPayload(property, owner, booking))
		if err != nil {
			return syncFailure(err)
		}
		booking.ExternalRef = externalRef

		if err := r.Booking.Create(ctx, booking); err != nil {
			return err
		}
		if err := appendHistory(ctx, r, booking, entity.HistoryActionCreated, adminID, now); err != nil {
			return err
		}

		created = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Booking created by admin",
		zap.String("reference", created.Reference),
		zap.String("owner_id", targetOwnerID.String()),
		zap.String("admin_id", adminID.String()),
		zap.Int("displaced", len(displaced)),
	)

	s.notify(ctx, NotificationBookingConfirmed, owner, property, created)
	for _, d := range displaced {
		s.notify(ctx, NotificationBookingCancelled, d.owner, property, d.booking)
	}

	resp := response.BookingToResponse(created)
	resp.PropertyName = property.Name
	return &resp, nil
}

// displaceBooking cancels one colliding stay during an admin override. The
// displaced owner is made whole: nights are credited back in full even
// inside the late-cancel window.
func (s *bookingService) displaceBooking(
	ctx context.Context,
	r *repository.Repository,
	ledgers *ledgerSet,
	info SeasonInfo,
	booking *entity.Booking,
	adminID uuid.UUID,
	now time.Time,
) error {
	counts := CalculateNightCounts(booking.Checkin, booking.Checkout, info)
	first, second, err := s.lockStayLedgers(ctx, r, ledgers, booking.OwnerID, booking.Checkin, booking.Checkout)
	if err != nil {
		return err
	}
	if first == nil {
		return fmt.Errorf("entitlement missing for displaced booking %s", booking.Reference)
	}

	if booking.LastMinute {
		creditLastMinute(first, second, counts)
	} else {
		creditRegular(first, second, counts)
		recordCancelled(first, second, counts)
		if rebalanceApplies(counts, false) {
			if err := s.applyRebalance(ctx, r, ledgers, booking.OwnerID, counts, first.AcquisitionDate.Year(), -1); err != nil {
				return err
			}
		}
	}

	if booking.ExternalRef != "" {
		if err := s.sync.CancelReservation(ctx, booking.ExternalRef); err != nil {
			return syncFailure(err)
		}
	}

	if err := r.Booking.MarkCancelled(ctx, booking.ID, now); err != nil {
		return err
	}
	booking.Status = entity.BookingStatusCancelled
	booking.CancelledAt = &now
	booking.UpdatedAt = now

	return appendHistory(ctx, r, booking, entity.HistoryActionOverridden, adminID, now)
}

// ==================== QUERIES ====================

func (s *bookingService) GetOwnerBookings(ctx context.Context, ownerID uuid.UUID, page request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	bookings, err := s.repo.Booking.FindByOwner(ctx, ownerID, page.Limit(), page.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Booking.CountByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	return response.NewPaginatedResponse(
		response.BookingsToResponses(bookings),
		page.Page, page.Limit(), total,
	), nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, ownerID uuid.UUID, role string, bookingID uuid.UUID) (*response.BookingDetailResponse, error) {
	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	// Non-admins only see their own bookings; anything else reads as
	// not found so ownership is never leaked.
	if booking == nil || (role != entity.RoleAdmin && booking.OwnerID != ownerID) {
		return nil, Reject(ReasonBookingNotFound, "booking %s", bookingID.String())
	}

	history, err := s.repo.BookingHistory.FindByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	resp := response.BookingToDetailResponse(booking, history)
	return &resp, nil
}
