package response

type DashboardResponse struct {
	TotalBookings    int64   `json:"total_bookings"`
	TotalUsers       int64   `json:"total_users"`
	TotalRooms       int64   `json:"total_rooms"`
	BookedNights     int64   `json:"booked_nights"`
	Revenue          int64   `json:"revenue"`
	RevenueFormatted string  `json:"revenue_formatted"`
	ADR              int64   `json:"adr"`
	AR               int64   `json:"ar"`
	RevPAR           int64   `json:"revpar"`
	OccupancyRate    float64 `json:"occupancy_rate"`
}
