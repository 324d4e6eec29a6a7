package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"hotel-reservation/internal/data/entity"
	"hotel-reservation/internal/usecase"
	"hotel-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// handleServiceError maps usecase errors to responses. Unknown errors are
// logged and hidden behind a generic 500.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var (
		unavailable *usecase.RoomUnavailableError
		noRate      *usecase.NoRateDefinedError
		transition  *entity.TransitionError
	)

	switch {
	case errors.As(err, &unavailable):
		log.Warn(operation+" failed - room unavailable", zap.Error(err))
		utils.ResponseConflict(w, "Room is not available for the requested dates", map[string]any{
			"room_id":   unavailable.RoomID.String(),
			"night":     utils.FormatDate(unavailable.Night),
			"booked":    unavailable.Booked,
			"allotment": unavailable.Allotment,
			"requested": unavailable.Requested,
		})

	case errors.As(err, &noRate):
		log.Warn(operation+" failed - no rate defined", zap.Error(err))
		utils.ResponseUnprocessable(w, "No rate defined for the requested stay", map[string]string{
			"room_type": noRate.RoomType,
			"date":      utils.FormatDate(noRate.Date),
		})

	case errors.Is(err, usecase.ErrAlreadyCancelled):
		log.Warn(operation+" failed - already cancelled", zap.Error(err))
		utils.ResponseConflict(w, err.Error(), nil)

	case errors.As(err, &transition):
		log.Warn(operation+" failed - invalid state", zap.Error(err))
		utils.ResponseConflict(w, err.Error(), map[string]string{
			"from": string(transition.From),
			"to":   string(transition.To),
		})

	case errors.Is(err, usecase.ErrIllegalTransition),
		errors.Is(err, usecase.ErrTotalAmountMismatch),
		errors.Is(err, usecase.ErrBookingNotModifiable),
		errors.Is(err, usecase.ErrRoomNumberTaken),
		errors.Is(err, usecase.ErrRoomInUse):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrBookingNotFound),
		errors.Is(err, usecase.ErrRoomNotFound),
		errors.Is(err, usecase.ErrUserNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrInvalidDateRange),
		errors.Is(err, usecase.ErrRoomOccupancyMismatch),
		errors.Is(err, usecase.ErrInvalidTotalAmount),
		errors.Is(err, usecase.ErrUnknownStatus),
		errors.Is(err, usecase.ErrCheckInInPast),
		errors.Is(err, usecase.ErrInvalidRoom),
		errors.Is(err, usecase.ErrUnknownRoomStatus):
		log.Warn("Invalid input for "+operation, zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// decodeAndValidate reads a JSON body into req and runs the struct tags.
// It writes the 400 itself and reports false when the request is rejected.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return false
	}
	return true
}

func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := utils.ParseUUID(chi.URLParam(r, name))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid "+name, map[string]string{name: "Must be a valid UUID"})
		return uuid.Nil, false
	}
	return id, true
}

// parseStay parses a check-in/check-out pair already validated as dates.
func parseStay(w http.ResponseWriter, checkIn, checkOut string) (time.Time, time.Time, bool) {
	in, err := utils.ParseDate(checkIn)
	if err != nil {
		utils.ResponseBadRequest(w, "Validation failed", map[string]string{"check_in": err.Error()})
		return time.Time{}, time.Time{}, false
	}
	out, err := utils.ParseDate(checkOut)
	if err != nil {
		utils.ResponseBadRequest(w, "Validation failed", map[string]string{"check_out": err.Error()})
		return time.Time{}, time.Time{}, false
	}
	return in, out, true
}

func parseUUIDs(w http.ResponseWriter, field string, values []string) ([]uuid.UUID, bool) {
	ids := make([]uuid.UUID, len(values))
	for i, v := range values {
		id, err := utils.ParseUUID(v)
		if err != nil {
			utils.ResponseBadRequest(w, "Validation failed", map[string]string{field: "Must be a valid UUID"})
			return nil, false
		}
		ids[i] = id
	}
	return ids, true
}
