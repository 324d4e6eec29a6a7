package usecase

import (
	"context"
	"math"

	"hotel-reservation/internal/data/repository"
	"hotel-reservation/internal/dto/response"
	"hotel-reservation/pkg/utils"

	"go.uber.org/zap"
)

const daysPerYear = 365

type DashboardService interface {
	Stats(ctx context.Context) (*response.DashboardResponse, error)
}

type dashboardService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewDashboardService(repo *repository.Repository, log *zap.Logger) DashboardService {
	return &dashboardService{
		repo: repo,
		log:  log.With(zap.String("service", "dashboard")),
	}
}

func (s *dashboardService) Stats(ctx context.Context) (*response.DashboardResponse, error) {
	bookings, err := s.repo.Booking.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.repo.User.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	rooms, err := s.repo.Room.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	revenue, err := s.repo.Payment.SumCompleted(ctx)
	if err != nil {
		return nil, err
	}
	nights, err := s.repo.Booking.SumBookedNights(ctx)
	if err != nil {
		return nil, err
	}

	return ComputeDashboard(bookings, users, rooms, revenue, nights), nil
}

// ComputeDashboard derives the hotel KPIs; every ratio is 0 on a zero denominator.
func ComputeDashboard(bookings, users, rooms, revenue, nights int64) *response.DashboardResponse {
	stats := &response.DashboardResponse{
		TotalBookings:    bookings,
		TotalUsers:       users,
		TotalRooms:       rooms,
		BookedNights:     nights,
		Revenue:          revenue,
		RevenueFormatted: utils.FormatMinor(revenue),
	}

	if nights > 0 {
		stats.ADR = revenue / nights
	}
	if bookings > 0 {
		stats.AR = revenue / bookings
	}
	if capacity := rooms * daysPerYear; capacity > 0 {
		stats.RevPAR = revenue / capacity
		stats.OccupancyRate = math.Round(float64(nights)/float64(capacity)*100*100) / 100
	}

	return stats
}
