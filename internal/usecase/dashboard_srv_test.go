package usecase

import (
	"context"
	"testing"
	"time"

	"tour-booking/internal/data/entity"
)

func TestGetAdminSummary(t *testing.T) {
	f := newFixture()
	service := NewDashboardService(f.repo, testLogger())

	tourist := f.addUser(entity.RoleTourist)
	guide := f.addUser(entity.RoleGuide)
	f.addUser(entity.RoleAdmin)
	f.addTour(guide.ID, 150)

	paid := f.addGuideHireBooking(tourist.ID, guide.ID, entity.BookingStatusCompleted, time.Now().Add(-24*time.Hour))
	paid.PaymentStatus = entity.PaymentStatusPaid
	f.addGuideHireBooking(tourist.ID, guide.ID, entity.BookingStatusPending, time.Now().Add(24*time.Hour))

	summary, err := service.GetAdminSummary(context.Background())
	if err != nil {
		t.Fatalf("GetAdminSummary: %v", err)
	}

	if summary.TotalUsers != 3 {
		t.Errorf("totalUsers = %d, want 3", summary.TotalUsers)
	}
	if summary.TotalGuides != 1 || summary.TotalTourists != 1 {
		t.Errorf("guides/tourists = %d/%d, want 1/1", summary.TotalGuides, summary.TotalTourists)
	}
	if summary.TotalTours != 1 {
		t.Errorf("totalTours = %d, want 1", summary.TotalTours)
	}
	if summary.TotalCompletedBookings != 1 {
		t.Errorf("completed bookings = %d, want 1", summary.TotalCompletedBookings)
	}
	if summary.TotalRevenue != paid.TotalPrice {
		t.Errorf("revenue = %v, want %v", summary.TotalRevenue, paid.TotalPrice)
	}
}

func TestGetGuideSummary(t *testing.T) {
	f := newFixture()
	service := NewDashboardService(f.repo, testLogger())

	tourist := f.addUser(entity.RoleTourist)
	guide := f.addUser(entity.RoleGuide)
	other := f.addUser(entity.RoleGuide)
	f.addTour(guide.ID, 150)

	paid := f.addGuideHireBooking(tourist.ID, guide.ID, entity.BookingStatusCompleted, time.Now().Add(-24*time.Hour))
	paid.PaymentStatus = entity.PaymentStatusPaid
	f.addGuideHireBooking(tourist.ID, guide.ID, entity.BookingStatusPending, time.Now().Add(24*time.Hour))
	f.addGuideHireBooking(tourist.ID, other.ID, entity.BookingStatusPending, time.Now().Add(24*time.Hour))

	summary, err := service.GetGuideSummary(context.Background(), guide.ID.String())
	if err != nil {
		t.Fatalf("GetGuideSummary: %v", err)
	}

	if summary.MyTours != 1 {
		t.Errorf("myTours = %d, want 1", summary.MyTours)
	}
	if summary.TotalBookings != 2 {
		t.Errorf("totalBookings = %d, want 2", summary.TotalBookings)
	}
	if summary.CompletedBookings != 1 {
		t.Errorf("completedBookings = %d, want 1", summary.CompletedBookings)
	}
	if summary.TotalEarnings != paid.TotalPrice {
		t.Errorf("earnings = %v, want %v", summary.TotalEarnings, paid.TotalPrice)
	}
}

func TestGetTouristSummary(t *testing.T) {
	f := newFixture()
	service := NewDashboardService(f.repo, testLogger())

	tourist := f.addUser(entity.RoleTourist)
	guide := f.addUser(entity.RoleGuide)

	paid := f.addGuideHireBooking(tourist.ID, guide.ID, entity.BookingStatusCompleted, time.Now().Add(-24*time.Hour))
	paid.PaymentStatus = entity.PaymentStatusPaid
	f.addGuideHireBooking(tourist.ID, guide.ID, entity.BookingStatusPending, time.Now().Add(24*time.Hour))

	summary, err := service.GetTouristSummary(context.Background(), tourist.ID.String())
	if err != nil {
		t.Fatalf("GetTouristSummary: %v", err)
	}

	if summary.TotalBookings != 2 {
		t.Errorf("totalBookings = %d, want 2", summary.TotalBookings)
	}
	if summary.PendingBookings != 1 {
		t.Errorf("pendingBookings = %d, want 1", summary.PendingBookings)
	}
	if summary.CompletedBookings != 1 {
		t.Errorf("completedBookings = %d, want 1", summary.CompletedBookings)
	}
	if summary.TotalSpent != paid.TotalPrice {
		t.Errorf("totalSpent = %v, want %v", summary.TotalSpent, paid.TotalPrice)
	}
}
