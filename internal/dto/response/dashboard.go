package response

type AdminSummaryResponse struct {
	TotalUsers             int64   `json:"totalUsers"`
	TotalGuides            int64   `json:"totalGuides"`
	TotalTourists          int64   `json:"totalTourists"`
	TotalTours             int64   `json:"totalTours"`
	TotalCompletedBookings int64   `json:"totalCompletedBookings"`
	TotalRevenue           float64 `json:"totalRevenue"`
}

type GuideSummaryResponse struct {
	MyTours           int64   `json:"myTours"`
	TotalBookings     int64   `json:"totalBookings"`
	CompletedBookings int64   `json:"completedBookings"`
	TotalEarnings     float64 `json:"totalEarnings"`
}

type TouristSummaryResponse struct {
	TotalBookings     int64   `json:"totalBookings"`
	PendingBookings   int64   `json:"pendingBookings"`
	CompletedBookings int64   `json:"completedBookings"`
	TotalSpent        float64 `json:"totalSpent"`
}
