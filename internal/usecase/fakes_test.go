package usecase

import (
	"context"
	"testing"
	"time"

	"tour-booking/internal/data/entity"
	"tour-booking/internal/data/repository"
	"tour-booking/pkg/gateway"
	"tour-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// In-memory fakes for the repository interfaces, enforcing the same store-level
// guards as the SQL implementations.

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByRole(_ context.Context, role entity.UserRole, limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	for _, user := range f.users {
		if user.Role == role {
			out = append(out, user)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

func (f *fakeUserRepo) CountByRole(_ context.Context, role entity.UserRole) (int64, error) {
	var n int64
	for _, user := range f.users {
		if user.Role == role {
			n++
		}
	}
	return n, nil
}

type fakeTourRepo struct {
	tours map[uuid.UUID]*entity.Tour
}

func (f *fakeTourRepo) Create(_ context.Context, tour *entity.Tour) error {
	f.tours[tour.ID] = tour
	return nil
}

func (f *fakeTourRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Tour, error) {
	return f.tours[id], nil
}

func (f *fakeTourRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.Tour, error) {
	var out []*entity.Tour
	for _, tour := range f.tours {
		out = append(out, tour)
	}
	return out, nil
}

func (f *fakeTourRepo) FindByGuideID(_ context.Context, guideID uuid.UUID, limit, offset int) ([]*entity.Tour, error) {
	var out []*entity.Tour
	for _, tour := range f.tours {
		if tour.GuideID == guideID {
			out = append(out, tour)
		}
	}
	return out, nil
}

func (f *fakeTourRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.tours)), nil
}

func (f *fakeTourRepo) CountByGuideID(_ context.Context, guideID uuid.UUID) (int64, error) {
	var n int64
	for _, tour := range f.tours {
		if tour.GuideID == guideID {
			n++
		}
	}
	return n, nil
}

func (f *fakeTourRepo) Update(_ context.Context, tour *entity.Tour) error {
	f.tours[tour.ID] = tour
	return nil
}

func (f *fakeTourRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.tours, id)
	return nil
}

type fakeBookingRepo struct {
	bookings map[uuid.UUID]*entity.Booking

	// forceStatusChanged makes the next UpdateStatus lose the guarded write.
	forceStatusChanged bool
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *entity.Booking) error {
	f.bookings[booking.ID] = booking
	return nil
}

func (f *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	return f.bookings[id], nil
}

func (f *fakeBookingRepo) List(_ context.Context, filter repository.BookingFilter, limit, offset int) ([]*entity.Booking, error) {
	var out []*entity.Booking
	for _, booking := range f.bookings {
		if f.matches(booking, filter) {
			out = append(out, booking)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) Count(_ context.Context, filter repository.BookingFilter) (int64, error) {
	var n int64
	for _, booking := range f.bookings {
		if f.matches(booking, filter) {
			n++
		}
	}
	return n, nil
}

func (f *fakeBookingRepo) SumTotalPrice(_ context.Context, filter repository.BookingFilter) (float64, error) {
	var sum float64
	for _, booking := range f.bookings {
		if f.matches(booking, filter) {
			sum += booking.TotalPrice
		}
	}
	return sum, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id uuid.UUID, expected, next entity.BookingStatus, history []entity.StatusLog) error {
	if f.forceStatusChanged {
		f.forceStatusChanged = false
		return repository.ErrStatusChanged
	}

	booking, ok := f.bookings[id]
	if !ok || booking.Status != expected {
		return repository.ErrStatusChanged
	}

	booking.Status = next
	booking.StatusHistory = history
	return nil
}

func (f *fakeBookingRepo) matches(booking *entity.Booking, filter repository.BookingFilter) bool {
	if filter.TouristID != nil && booking.TouristID != *filter.TouristID {
		return false
	}
	if filter.GuideID != nil && (booking.GuideID == nil || *booking.GuideID != *filter.GuideID) {
		return false
	}
	if filter.PaymentStatus != nil && booking.PaymentStatus != *filter.PaymentStatus {
		return false
	}
	if len(filter.Statuses) > 0 {
		found := false
		for _, status := range filter.Statuses {
			if booking.Status == status {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

type fakePaymentRepo struct {
	payments map[uuid.UUID]*entity.Payment // keyed by booking ID
	bookings *fakeBookingRepo
}

func (f *fakePaymentRepo) CreateAndMarkPaid(_ context.Context, payment *entity.Payment) error {
	booking, ok := f.bookings.bookings[payment.BookingID]
	if !ok || booking.Status != entity.BookingStatusCompleted || booking.PaymentStatus != entity.PaymentStatusUnpaid {
		return repository.ErrPaymentNotOpen
	}
	if _, exists := f.payments[payment.BookingID]; exists {
		return repository.ErrDuplicatePayment
	}

	booking.PaymentStatus = entity.PaymentStatusPaid
	f.payments[payment.BookingID] = payment
	return nil
}

func (f *fakePaymentRepo) FindByBookingID(_ context.Context, bookingID uuid.UUID) (*entity.Payment, error) {
	return f.payments[bookingID], nil
}

type fakeReviewRepo struct {
	reviews map[uuid.UUID]*entity.Review
}

func (f *fakeReviewRepo) Create(_ context.Context, review *entity.Review) error {
	for _, existing := range f.reviews {
		if existing.BookingID == review.BookingID {
			return repository.ErrDuplicateReview
		}
	}
	f.reviews[review.ID] = review
	return nil
}

func (f *fakeReviewRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Review, error) {
	return f.reviews[id], nil
}

func (f *fakeReviewRepo) FindByBookingID(_ context.Context, bookingID uuid.UUID) (*entity.Review, error) {
	for _, review := range f.reviews {
		if review.BookingID == bookingID {
			return review, nil
		}
	}
	return nil, nil
}

func (f *fakeReviewRepo) FindByTarget(_ context.Context, targetType entity.ReviewTargetType, targetID uuid.UUID, limit, offset int) ([]*entity.Review, error) {
	var out []*entity.Review
	for _, review := range f.reviews {
		if review.TargetType == targetType && review.TargetID == targetID {
			out = append(out, review)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) CountByTarget(_ context.Context, targetType entity.ReviewTargetType, targetID uuid.UUID) (int64, error) {
	var n int64
	for _, review := range f.reviews {
		if review.TargetType == targetType && review.TargetID == targetID {
			n++
		}
	}
	return n, nil
}

func (f *fakeReviewRepo) GetTargetStats(_ context.Context, targetType entity.ReviewTargetType, targetID uuid.UUID) (float64, int64, error) {
	var sum, n int64
	for _, review := range f.reviews {
		if review.TargetType == targetType && review.TargetID == targetID {
			sum += int64(review.Rating)
			n++
		}
	}
	if n == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(n), n, nil
}

func (f *fakeReviewRepo) Update(_ context.Context, review *entity.Review) error {
	f.reviews[review.ID] = review
	return nil
}

func (f *fakeReviewRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.reviews, id)
	return nil
}

type fakeGateway struct {
	lastAmount   float64
	lastCurrency string
	err          error
}

func (f *fakeGateway) CreateIntent(_ context.Context, amount float64, currency string) (*gateway.PaymentIntent, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastAmount = amount
	f.lastCurrency = currency
	return &gateway.PaymentIntent{ID: "pi_test", ClientSecret: "pi_test_secret"}, nil
}

type fixture struct {
	repo     *repository.Repository
	users    *fakeUserRepo
	tours    *fakeTourRepo
	bookings *fakeBookingRepo
	payments *fakePaymentRepo
	reviews  *fakeReviewRepo
}

func newFixture() *fixture {
	users := &fakeUserRepo{users: map[uuid.UUID]*entity.User{}}
	tours := &fakeTourRepo{tours: map[uuid.UUID]*entity.Tour{}}
	bookings := &fakeBookingRepo{bookings: map[uuid.UUID]*entity.Booking{}}
	payments := &fakePaymentRepo{payments: map[uuid.UUID]*entity.Payment{}, bookings: bookings}
	reviews := &fakeReviewRepo{reviews: map[uuid.UUID]*entity.Review{}}

	return &fixture{
		repo: &repository.Repository{
			User:    users,
			Tour:    tours,
			Booking: bookings,
			Payment: payments,
			Review:  reviews,
		},
		users:    users,
		tours:    tours,
		bookings: bookings,
		payments: payments,
		reviews:  reviews,
	}
}

func (f *fixture) addUser(role entity.UserRole) *entity.User {
	user := &entity.User{
		Base:         entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Name:         "Test " + string(role),
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "x",
		Role:         role,
	}
	f.users.users[user.ID] = user
	return user
}

func (f *fixture) addTour(guideID uuid.UUID, price float64) *entity.Tour {
	tour := &entity.Tour{
		Base:     entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		GuideID:  guideID,
		Title:    "City Walk",
		Location: "Lisbon",
		Price:    price,
		Duration: "3h",
		Spots:    10,
	}
	f.tours.tours[tour.ID] = tour
	return tour
}

func (f *fixture) addGuideHireBooking(touristID, guideID uuid.UUID, status entity.BookingStatus, tourDate time.Time) *entity.Booking {
	rate, hours := 25.0, 4.0
	booking := &entity.Booking{
		Base:          entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		BookingType:   entity.BookingTypeGuideHire,
		GuideID:       &guideID,
		HourlyRate:    &rate,
		Hours:         &hours,
		TouristID:     touristID,
		TourDate:      tourDate,
		Status:        status,
		PaymentStatus: entity.PaymentStatusUnpaid,
		TotalPrice:    rate * hours,
		StatusHistory: seedHistory(touristID, status),
	}
	f.bookings.bookings[booking.ID] = booking
	return booking
}

func (f *fixture) addTourPackageBooking(touristID, tourID uuid.UUID, status entity.BookingStatus, tourDate time.Time) *entity.Booking {
	booking := &entity.Booking{
		Base:          entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		BookingType:   entity.BookingTypeTourPackage,
		TourID:        &tourID,
		TouristID:     touristID,
		TourDate:      tourDate,
		Status:        status,
		PaymentStatus: entity.PaymentStatusUnpaid,
		TotalPrice:    150,
		StatusHistory: seedHistory(touristID, status),
	}
	f.bookings.bookings[booking.ID] = booking
	return booking
}

// seedHistory builds a plausible audit trail ending in the given status.
func seedHistory(touristID uuid.UUID, status entity.BookingStatus) []entity.StatusLog {
	history := []entity.StatusLog{
		{Status: entity.BookingStatusPending, ChangedBy: touristID, Role: entity.RoleTourist, ChangedAt: time.Now().Add(-time.Hour)},
	}
	if status != entity.BookingStatusPending {
		history = append(history, entity.StatusLog{
			Status: status, ChangedBy: touristID, Role: entity.RoleTourist, ChangedAt: time.Now(),
		})
	}
	return history
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func expectKind(t *testing.T, err error, kind utils.ErrorKind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", kind)
	}
	appErr, ok := utils.AsAppError(err)
	if !ok {
		t.Fatalf("expected %s error, got %v", kind, err)
	}
	if appErr.Kind != kind {
		t.Fatalf("expected %s error, got %s: %s", kind, appErr.Kind, appErr.Message)
	}
}
