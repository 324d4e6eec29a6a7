package adaptor

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hotel-reservation/internal/data/entity"
	"hotel-reservation/internal/dto/request"
	"hotel-reservation/internal/dto/response"
	"hotel-reservation/internal/usecase"
	"hotel-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockBookingService mocks the guest booking service
type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) CreateBooking(ctx context.Context, cmd usecase.CreateBookingCmd) (*usecase.BookingDetail, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.BookingDetail), args.Error(1)
}

func (m *MockBookingService) GetUserBookings(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.PaginatedResponse[response.BookingResponse]), args.Error(1)
}

func (m *MockBookingService) GetBooking(ctx context.Context, userID, bookingID uuid.UUID) (*usecase.BookingDetail, error) {
	args := m.Called(ctx, userID, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.BookingDetail), args.Error(1)
}

func (m *MockBookingService) CancelOwnBooking(ctx context.Context, userID, bookingID uuid.UUID) (*usecase.BookingDetail, int64, error) {
	args := m.Called(ctx, userID, bookingID)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).(*usecase.BookingDetail), args.Get(1).(int64), args.Error(2)
}

func (m *MockBookingService) ModifyOwnBooking(ctx context.Context, userID, bookingID uuid.UUID, newCheckIn, newCheckOut time.Time) (*usecase.BookingDetail, error) {
	args := m.Called(ctx, userID, bookingID, newCheckIn, newCheckOut)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.BookingDetail), args.Error(1)
}

func (m *MockBookingService) ExpireStalePending(ctx context.Context, olderThan time.Duration) (int, error) {
	args := m.Called(ctx, olderThan)
	return args.Int(0), args.Error(1)
}

// MockAdminBookingService mocks the admin booking service
type MockAdminBookingService struct {
	mock.Mock
}

func (m *MockAdminBookingService) GetBooking(ctx context.Context, id uuid.UUID) (*usecase.BookingDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.BookingDetail), args.Error(1)
}

func (m *MockAdminBookingService) CancelBooking(ctx context.Context, id uuid.UUID) (*usecase.BookingDetail, int64, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).(*usecase.BookingDetail), args.Get(1).(int64), args.Error(2)
}

func (m *MockAdminBookingService) ModifyBooking(ctx context.Context, id uuid.UUID, newCheckIn, newCheckOut time.Time) (*usecase.BookingDetail, error) {
	args := m.Called(ctx, id, newCheckIn, newCheckOut)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.BookingDetail), args.Error(1)
}

func (m *MockAdminBookingService) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) (*usecase.BookingDetail, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.BookingDetail), args.Error(1)
}

func (m *MockAdminBookingService) DeleteBooking(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockDashboardService mocks the dashboard service
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Stats(ctx context.Context) (*response.DashboardResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.DashboardResponse), args.Error(1)
}

// MockPaymentService mocks the payment callback service
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) TransitionToConfirmed(ctx context.Context, bookingID uuid.UUID, confirmation usecase.PaymentConfirmation) (*usecase.BookingDetail, error) {
	args := m.Called(ctx, bookingID, confirmation)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.BookingDetail), args.Error(1)
}

func (m *MockPaymentService) RecordPaymentRejection(ctx context.Context, bookingID uuid.UUID, provider, providerRef string) (*entity.Payment, error) {
	args := m.Called(ctx, bookingID, provider, providerRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Payment), args.Error(1)
}

// MockRoomService mocks the room catalogue service
type MockRoomService struct {
	mock.Mock
}

func (m *MockRoomService) GetRoom(ctx context.Context, id uuid.UUID) (*response.RoomResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.RoomResponse), args.Error(1)
}

func (m *MockRoomService) SearchAvailable(ctx context.Context, roomType string, checkIn, checkOut time.Time) ([]response.RoomResponse, error) {
	args := m.Called(ctx, roomType, checkIn, checkOut)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]response.RoomResponse), args.Error(1)
}

func (m *MockRoomService) QuoteStay(ctx context.Context, checkIn, checkOut time.Time, roomIDs []uuid.UUID) (*response.QuoteResponse, error) {
	args := m.Called(ctx, checkIn, checkOut, roomIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.QuoteResponse), args.Error(1)
}

func (m *MockRoomService) CheckRoomAvailability(ctx context.Context, id uuid.UUID, checkIn, checkOut time.Time) (*response.RoomAvailabilityResponse, error) {
	args := m.Called(ctx, id, checkIn, checkOut)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.RoomAvailabilityResponse), args.Error(1)
}

func (m *MockRoomService) CreateRoom(ctx context.Context, input usecase.RoomInput) (*response.RoomResponse, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.RoomResponse), args.Error(1)
}

func (m *MockRoomService) UpdateRoom(ctx context.Context, id uuid.UUID, input usecase.RoomInput) (*response.RoomResponse, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.RoomResponse), args.Error(1)
}

func (m *MockRoomService) DeleteRoom(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ==================== helpers ====================

type apiResponse struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

// serve routes one request through a chi router so URL params resolve.
func serve(t *testing.T, method, pattern, target string, body any, handler http.HandlerFunc, ctx context.Context) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if ctx != nil {
		req = req.WithContext(ctx)
	}

	r := chi.NewRouter()
	r.MethodFunc(method, pattern, handler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp apiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w, resp
}

func guestContext(userID uuid.UUID) context.Context {
	return utils.SetUserContext(context.Background(), userID, string(entity.RoleGuest))
}

func date(s string) time.Time {
	d, err := utils.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func sampleDetail(userID uuid.UUID, status entity.BookingStatus) *usecase.BookingDetail {
	booking := &entity.Booking{
		UserID:      userID,
		Status:      status,
		CheckIn:     date("2025-06-10"),
		CheckOut:    date("2025-06-13"),
		TotalAmount: 30000,
		Currency:    "USD",
	}
	booking.ID = uuid.New()
	line := &entity.BookingRoom{BookingID: booking.ID, RoomID: uuid.New(), Adults: 2}
	line.ID = uuid.New()
	return &usecase.BookingDetail{Booking: booking, Rooms: []*entity.BookingRoom{line}}
}
