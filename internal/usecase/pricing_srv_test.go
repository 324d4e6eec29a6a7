package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"hotel-reservation/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeStayTotal_TwoNightsAtFlatRate(t *testing.T) {
	env := newTestEnv(t)
	env.addRate("STANDARD", date("2025-06-01"), date("2025-06-02"), 10000, baseNow)

	total, err := env.pricing.ComputeStayTotal(context.Background(), date("2025-06-01"), date("2025-06-03"), []string{"STANDARD"})

	require.NoError(t, err)
	assert.Equal(t, int64(20000), total)
}

func TestComputeStayTotal_NonPositiveRangeIsZero(t *testing.T) {
	env := newTestEnv(t)

	total, err := env.pricing.ComputeStayTotal(context.Background(), date("2025-08-01"), date("2025-08-01"), []string{"STANDARD"})
	require.NoError(t, err)
	assert.Zero(t, total)

	total, err = env.pricing.ComputeStayTotal(context.Background(), date("2025-08-03"), date("2025-08-01"), []string{"STANDARD"})
	require.NoError(t, err)
	assert.Zero(t, total)

	assert.Zero(t, env.store.rateLookups)
}

func TestComputeStayTotal_NoRoomTypesIsZero(t *testing.T) {
	env := newTestEnv(t)

	total, err := env.pricing.ComputeStayTotal(context.Background(), date("2025-06-01"), date("2025-06-05"), nil)

	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestComputeStayTotal_MissingNightFailsWholeCall(t *testing.T) {
	env := newTestEnv(t)
	env.addRate("STANDARD", date("2025-06-01"), date("2025-06-01"), 10000, baseNow)
	env.addRate("DELUXE", date("2025-06-01"), date("2025-06-30"), 25000, baseNow)

	total, err := env.pricing.ComputeStayTotal(context.Background(), date("2025-06-01"), date("2025-06-03"), []string{"DELUXE", "STANDARD"})

	var noRate *NoRateDefinedError
	require.True(t, errors.As(err, &noRate))
	assert.Equal(t, "STANDARD", noRate.RoomType)
	assert.Equal(t, date("2025-06-02"), noRate.Date)
	assert.Zero(t, total)
}

func TestComputeStayTotal_FetchesRatesOncePerType(t *testing.T) {
	env := newTestEnv(t)
	env.addRate("STANDARD", date("2025-06-01"), date("2025-06-30"), 10000, baseNow)

	total, err := env.pricing.ComputeStayTotal(context.Background(), date("2025-06-01"), date("2025-06-08"),
		[]string{"STANDARD", "STANDARD", "STANDARD"})

	require.NoError(t, err)
	assert.Equal(t, int64(7*3*10000), total)
	assert.Equal(t, 1, env.store.rateLookups)
}

func TestComputeStayTotal_IsAdditiveAcrossSeasons(t *testing.T) {
	env := newTestEnv(t)
	env.addRate("STANDARD", date("2025-06-01"), date("2025-06-14"), 10000, baseNow)
	env.addRate("STANDARD", date("2025-06-15"), date("2025-06-30"), 14550, baseNow)
	env.addRate("SUITE", date("2025-06-01"), date("2025-06-30"), 40000, baseNow)
	types := []string{"STANDARD", "SUITE"}
	ctx := context.Background()

	splits := []string{"2025-06-02", "2025-06-14", "2025-06-15", "2025-06-16", "2025-06-20"}
	full, err := env.pricing.ComputeStayTotal(ctx, date("2025-06-01"), date("2025-06-21"), types)
	require.NoError(t, err)

	for _, split := range splits {
		left, err := env.pricing.ComputeStayTotal(ctx, date("2025-06-01"), date(split), types)
		require.NoError(t, err)
		right, err := env.pricing.ComputeStayTotal(ctx, date(split), date("2025-06-21"), types)
		require.NoError(t, err)

		assert.Equal(t, full, left+right, "split at %s", split)
	}
}

func TestResolveNightlyPrice_Precedence(t *testing.T) {
	env := newTestEnv(t)
	older := baseNow.Add(-48 * time.Hour)

	env.addRate("STANDARD", date("2025-01-01"), date("2025-12-31"), 9000, older)
	env.addRate("STANDARD", date("2025-06-10"), date("2025-06-12"), 15000, older)
	env.addRate("STANDARD", date("2025-06-10"), date("2025-06-12"), 16000, baseNow)

	tests := []struct {
		name  string
		night string
		want  int64
	}{
		{"season only", "2025-03-01", 9000},
		{"narrower range wins, newest first", "2025-06-11", 16000},
		{"end date is inclusive", "2025-06-12", 16000},
		{"day after narrow range", "2025-06-13", 9000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price, err := env.pricing.ResolveNightlyPrice(context.Background(), "STANDARD", date(tt.night))
			require.NoError(t, err)
			assert.Equal(t, tt.want, price)
		})
	}
}

func TestResolveNightlyPrice_NoRate(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.pricing.ResolveNightlyPrice(context.Background(), "PENTHOUSE", date("2025-06-01"))

	var noRate *NoRateDefinedError
	require.ErrorAs(t, err, &noRate)
	assert.Equal(t, "PENTHOUSE", noRate.RoomType)
}

func TestComputeTotalForRoomIDs_CountsEachOccurrence(t *testing.T) {
	env := newTestEnv(t)
	standard := env.addRoom("101", "STANDARD")
	suite := env.addRoom("501", "SUITE")
	untyped := env.addRoom("900", "")
	env.addRate("STANDARD", date("2025-06-01"), date("2025-06-30"), 10000, baseNow)
	env.addRate("SUITE", date("2025-06-01"), date("2025-06-30"), 30000, baseNow)

	total, err := env.pricing.ComputeTotalForRoomIDs(context.Background(), date("2025-06-01"), date("2025-06-03"),
		[]uuid.UUID{standard, standard, suite, untyped, uuid.New()})

	require.NoError(t, err)
	assert.Equal(t, int64(2*(10000+10000+30000)), total)
}

func TestComputeTotalForExistingBooking(t *testing.T) {
	env := newTestEnv(t)
	room := env.addRoom("101", "STANDARD")
	env.addRate("STANDARD", date("2025-06-01"), date("2025-06-30"), 12500, baseNow)

	booking := &entity.Booking{
		Base:     entity.Base{ID: uuid.New()},
		CheckIn:  date("2025-06-10"),
		CheckOut: date("2025-06-13"),
	}

	total, err := env.pricing.ComputeTotalForExistingBooking(context.Background(), booking)
	require.NoError(t, err)
	assert.Zero(t, total, "no lines means no rooms to price")

	env.store.lines = append(env.store.lines, &entity.BookingRoom{
		BaseSimple: entity.BaseSimple{ID: uuid.New()},
		BookingID:  booking.ID,
		RoomID:     room,
		Adults:     1,
	})

	total, err = env.pricing.ComputeTotalForExistingBooking(context.Background(), booking)
	require.NoError(t, err)
	assert.Equal(t, int64(3*12500), total)
}
