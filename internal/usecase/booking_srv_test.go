package usecase

import (
	"context"
	"testing"
	"time"

	"tour-booking/internal/data/entity"
	"tour-booking/internal/dto/request"
	"tour-booking/pkg/utils"
)

func TestCreateBookingGuideHire(t *testing.T) {
	f := newFixture()
	service := NewBookingService(f.repo, testLogger())

	tourist := f.addUser(entity.RoleTourist)
	guide := f.addUser(entity.RoleGuide)

	req := &request.CreateBookingRequest{
		BookingType: "GUIDE_HIRE",
		GuideID:     guide.ID.String(),
		HourlyRate:  30,
		Hours:       5,
		TourDate:    time.Now().Add(48 * time.Hour),
	}

	booking, err := service.CreateBooking(context.Background(), tourist.ID.String(), "TOURIST", req)
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	if booking.Status != "PENDING" {
		t.Errorf("status = %s, want PENDING", booking.Status)
	}
	if booking.PaymentStatus != "UNPAID" {
		t.Errorf("paymentStatus = %s, want UNPAID", booking.PaymentStatus)
	}
	if booking.TotalPrice != 150 {
		t.Errorf("totalPrice = %v, want 150", booking.TotalPrice)
	}
	if len(booking.StatusHistory) != 1 {
		t.Fatalf("history length = %d, want 1", len(booking.StatusHistory))
	}
	entry := booking.StatusHistory[0]
	if entry.Status != "PENDING" || entry.ChangedBy != tourist.ID.String() || entry.Role != "TOURIST" {
		t.Errorf("unexpected seed history entry: %+v", entry)
	}
}

func TestCreateBookingGuideHireGuideMissing(t *testing.T) {
	f := newFixture()
	service := NewBookingService(f.repo, testLogger())

	tourist := f.addUser(entity.RoleTourist)
	otherTourist := f.addUser(entity.RoleTourist)

	cases := []struct {
		name    string
		guideID string
	}{
		{"unknown user", "b3b2a9a0-0000-4000-8000-000000000001"},
		{"user is not a guide", otherTourist.ID.String()},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := &request.CreateBookingRequest{
				BookingType: "GUIDE_HIRE",
				GuideID:     tc.guideID,
				HourlyRate:  30,
				Hours:       5,
				TourDate:    time.Now().Add(48 * time.Hour),
			}

			_, err := service.CreateBooking(context.Background(), tourist.ID.String(), "TOURIST", req)
			expectKind(t, err, utils.KindNotFound)
		})
	}
}

func TestCreateBookingTourPackageCapturesPrice(t *testing.T) {
	f := newFixture()
	service := NewBookingService(f.repo, testLogger())

	tourist := f.addUser(entity.RoleTourist)
	guide := f.addUser(entity.RoleGuide)
	tour := f.addTour(guide.ID, 200)

	req := &request.CreateBookingRequest{
		BookingType: "TOUR_PACKAGE",
		TourID:      tour.ID.String(),
		TourDate:    time.Now().Add(48 * time.Hour),
	}

	booking, err := service.CreateBooking(context.Background(), tourist.ID.String(), "TOURIST", req)
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if booking.TotalPrice != 200 {
		t.Errorf("totalPrice = %v, want 200", booking.TotalPrice)
	}

	// A later catalog price change must not touch the captured total.
	tour.Price = 500
	got, err := service.GetBooking(context.Background(), booking.ID, tourist.ID.String(), "TOURIST")
	if err != nil {
		t.Fatalf("GetBooking: %v", err)
	}
	if got.TotalPrice != 200 {
		t.Errorf("totalPrice after catalog edit = %v, want 200", got.TotalPrice)
	}
}

func TestCreateBookingOnlyTourists(t *testing.T) {
	f := newFixture()
	service := NewBookingService(f.repo, testLogger())

	guide := f.addUser(entity.RoleGuide)

	req := &request.CreateBookingRequest{
		BookingType: "GUIDE_HIRE",
		GuideID:     guide.ID.String(),
		HourlyRate:  30,
		Hours:       5,
		TourDate:    time.Now().Add(48 * time.Hour),
	}

	_, err := service.CreateBooking(context.Background(), guide.ID.String(), "GUIDE", req)
	expectKind(t, err, utils.KindForbidden)
}

func TestUpdateBookingStatusTransitions(t *testing.T) {
	past := time.Now().Add(-24 * time.Hour)
	future := time.Now().Add(24 * time.Hour)

	cases := []struct {
		name     string
		from     entity.BookingStatus
		target   string
		actor    string // "tourist", "guide", "stranger"
		tourDate time.Time
		wantKind utils.ErrorKind // zero value means success
	}{
		{name: "guide confirms pending", from: entity.BookingStatusPending, target: "CONFIRMED", actor: "guide", tourDate: future},
		{name: "guide completes confirmed after tour date", from: entity.BookingStatusConfirmed, target: "COMPLETED", actor: "guide", tourDate: past},
		{name: "guide cancels pending", from: entity.BookingStatusPending, target: "CANCELLED", actor: "guide", tourDate: future},
		{name: "tourist cancels pending", from: entity.BookingStatusPending, target: "CANCELLED", actor: "tourist", tourDate: future},

		{name: "tourist cancels confirmed", from: entity.BookingStatusConfirmed, target: "CANCELLED", actor: "tourist", tourDate: future, wantKind: utils.KindInvalidTransition},
		{name: "tourist cancels completed", from: entity.BookingStatusCompleted, target: "CANCELLED", actor: "tourist", tourDate: past, wantKind: utils.KindInvalidTransition},
		{name: "tourist confirms", from: entity.BookingStatusPending, target: "CONFIRMED", actor: "tourist", tourDate: future, wantKind: utils.KindForbidden},
		{name: "tourist completes", from: entity.BookingStatusConfirmed, target: "COMPLETED", actor: "tourist", tourDate: past, wantKind: utils.KindForbidden},

		{name: "guide cancels confirmed", from: entity.BookingStatusConfirmed, target: "CANCELLED", actor: "guide", tourDate: future, wantKind: utils.KindInvalidTransition},
		{name: "guide confirms completed", from: entity.BookingStatusCompleted, target: "CONFIRMED", actor: "guide", tourDate: past, wantKind: utils.KindInvalidTransition},
		{name: "guide confirms cancelled", from: entity.BookingStatusCancelled, target: "CONFIRMED", actor: "guide", tourDate: future, wantKind: utils.KindInvalidTransition},
		{name: "guide completes pending", from: entity.BookingStatusPending, target: "COMPLETED", actor: "guide", tourDate: past, wantKind: utils.KindInvalidTransition},
		{name: "guide completes before tour date", from: entity.BookingStatusConfirmed, target: "COMPLETED", actor: "guide", tourDate: future, wantKind: utils.KindInvalidTransition},

		{name: "stranger guide confirms", from: entity.BookingStatusPending, target: "CONFIRMED", actor: "stranger", tourDate: future, wantKind: utils.KindForbidden},
		{name: "stranger tourist cancels", from: entity.BookingStatusPending, target: "CANCELLED", actor: "strangerTourist", tourDate: future, wantKind: utils.KindForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			service := NewBookingService(f.repo, testLogger())

			tourist := f.addUser(entity.RoleTourist)
			guide := f.addUser(entity.RoleGuide)
			booking := f.addGuideHireBooking(tourist.ID, guide.ID, tc.from, tc.tourDate)

			var actorID, role string
			switch tc.actor {
			case "tourist":
				actorID, role = tourist.ID.String(), "TOURIST"
			case "guide":
				actorID, role = guide.ID.String(), "GUIDE"
			case "stranger":
				actorID, role = f.addUser(entity.RoleGuide).ID.String(), "GUIDE"
			case "strangerTourist":
				actorID, role = f.addUser(entity.RoleTourist).ID.String(), "TOURIST"
			}

			before := len(booking.StatusHistory)
			req := &request.UpdateBookingStatusRequest{Status: tc.target}
			got, err := service.UpdateBookingStatus(context.Background(), booking.ID.String(), actorID, role, req)

			if tc.wantKind != "" {
				expectKind(t, err, tc.wantKind)
				if booking.Status != tc.from {
					t.Errorf("status mutated on rejected transition: %s", booking.Status)
				}
				if len(booking.StatusHistory) != before {
					t.Errorf("history mutated on rejected transition")
				}
				return
			}

			if err != nil {
				t.Fatalf("UpdateBookingStatus: %v", err)
			}
			if got.Status != tc.target {
				t.Errorf("status = %s, want %s", got.Status, tc.target)
			}
			if len(got.StatusHistory) != before+1 {
				t.Fatalf("history length = %d, want %d", len(got.StatusHistory), before+1)
			}
			last := got.StatusHistory[len(got.StatusHistory)-1]
			if last.Status != tc.target || last.ChangedBy != actorID || last.Role != role {
				t.Errorf("unexpected appended history entry: %+v", last)
			}
		})
	}
}

func TestUpdateBookingStatusIdempotent(t *testing.T) {
	f := newFixture()
	service := NewBookingService(f.repo, testLogger())

	tourist := f.addUser(entity.RoleTourist)
	guide := f.addUser(entity.RoleGuide)
	booking := f.addGuideHireBooking(tourist.ID, guide.ID, entity.BookingStatusConfirmed, time.Now().Add(24*time.Hour))

	before := len(booking.StatusHistory)
	req := &request.UpdateBookingStatusRequest{Status: "CONFIRMED"}
	got, err := service.UpdateBookingStatus(context.Background(), booking.ID.String(), guide.ID.String(), "GUIDE", req)
	if err != nil {
		t.Fatalf("UpdateBookingStatus: %v", err)
	}
	if got.Status != "CONFIRMED" {
		t.Errorf("status = %s, want CONFIRMED", got.Status)
	}
	if len(got.StatusHistory) != before {
		t.Errorf("idempotent no-op appended history: %d -> %d", before, len(got.StatusHistory))
	}
}

func TestUpdateBookingStatusTourPackageOwnership(t *testing.T) {
	f := newFixture()
	service := NewBookingService(f.repo, testLogger())

	tourist := f.addUser(entity.RoleTourist)
	guide := f.addUser(entity.RoleGuide)
	tour := f.addTour(guide.ID, 150)
	booking := f.addTourPackageBooking(tourist.ID, tour.ID, entity.BookingStatusPending, time.Now().Add(24*time.Hour))

	// A guide who does not own the tour cannot act on the booking.
	other := f.addUser(entity.RoleGuide)
	req := &request.UpdateBookingStatusRequest{Status: "CONFIRMED"}
	_, err := service.UpdateBookingStatus(context.Background(), booking.ID.String(), other.ID.String(), "GUIDE", req)
	expectKind(t, err, utils.KindForbidden)

	// The tour's listed guide can.
	got, err := service.UpdateBookingStatus(context.Background(), booking.ID.String(), guide.ID.String(), "GUIDE", req)
	if err != nil {
		t.Fatalf("UpdateBookingStatus: %v", err)
	}
	if got.Status != "CONFIRMED" {
		t.Errorf("status = %s, want CONFIRMED", got.Status)
	}
}

func TestUpdateBookingStatusConcurrentConflict(t *testing.T) {
	f := newFixture()
	service := NewBookingService(f.repo, testLogger())

	tourist := f.addUser(entity.RoleTourist)
	guide := f.addUser(entity.RoleGuide)
	booking := f.addGuideHireBooking(tourist.ID, guide.ID, entity.BookingStatusPending, time.Now().Add(24*time.Hour))

	f.bookings.forceStatusChanged = true
	req := &request.UpdateBookingStatusRequest{Status: "CONFIRMED"}
	_, err := service.UpdateBookingStatus(context.Background(), booking.ID.String(), guide.ID.String(), "GUIDE", req)
	expectKind(t, err, utils.KindConflict)
}

func TestUpdateBookingStatusRejectsPendingTarget(t *testing.T) {
	f := newFixture()
	service := NewBookingService(f.repo, testLogger())

	tourist := f.addUser(entity.RoleTourist)
	guide := f.addUser(entity.RoleGuide)
	booking := f.addGuideHireBooking(tourist.ID, guide.ID, entity.BookingStatusConfirmed, time.Now().Add(24*time.Hour))

	req := &request.UpdateBookingStatusRequest{Status: "PENDING"}
	_, err := service.UpdateBookingStatus(context.Background(), booking.ID.String(), guide.ID.String(), "GUIDE", req)
	expectKind(t, err, utils.KindValidation)
}

func TestGetBookingVisibility(t *testing.T) {
	f := newFixture()
	service := NewBookingService(f.repo, testLogger())

	tourist := f.addUser(entity.RoleTourist)
	guide := f.addUser(entity.RoleGuide)
	admin := f.addUser(entity.RoleAdmin)
	booking := f.addGuideHireBooking(tourist.ID, guide.ID, entity.BookingStatusPending, time.Now().Add(24*time.Hour))

	for _, tc := range []struct {
		name   string
		userID string
		role   string
	}{
		{"owning tourist", tourist.ID.String(), "TOURIST"},
		{"involved guide", guide.ID.String(), "GUIDE"},
		{"admin", admin.ID.String(), "ADMIN"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := service.GetBooking(context.Background(), booking.ID.String(), tc.userID, tc.role); err != nil {
				t.Errorf("GetBooking: %v", err)
			}
		})
	}

	other := f.addUser(entity.RoleTourist)
	_, err := service.GetBooking(context.Background(), booking.ID.String(), other.ID.String(), "TOURIST")
	expectKind(t, err, utils.KindForbidden)
}

func TestGetBookingsNeedingPayment(t *testing.T) {
	f := newFixture()
	service := NewBookingService(f.repo, testLogger())

	tourist := f.addUser(entity.RoleTourist)
	guide := f.addUser(entity.RoleGuide)

	completed := f.addGuideHireBooking(tourist.ID, guide.ID, entity.BookingStatusCompleted, time.Now().Add(-24*time.Hour))
	f.addGuideHireBooking(tourist.ID, guide.ID, entity.BookingStatusPending, time.Now().Add(24*time.Hour))

	paid := f.addGuideHireBooking(tourist.ID, guide.ID, entity.BookingStatusCompleted, time.Now().Add(-24*time.Hour))
	paid.PaymentStatus = entity.PaymentStatusPaid

	page, err := service.GetBookingsNeedingPayment(context.Background(), tourist.ID.String(), &request.PaginatedRequest{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("GetBookingsNeedingPayment: %v", err)
	}
	if len(page.Data) != 1 {
		t.Fatalf("got %d bookings, want 1", len(page.Data))
	}
	if page.Data[0].ID != completed.ID.String() {
		t.Errorf("got booking %s, want %s", page.Data[0].ID, completed.ID)
	}
}
