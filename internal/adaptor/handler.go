package adaptor

import (
	"net/http"

	"fairshare-booking/internal/usecase"
	"fairshare-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Booking     *BookingHandler
	Entitlement *EntitlementHandler
	Property    *PropertyHandler
	Session     *SessionHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Booking:     NewBookingHandler(service.Booking, log),
		Entitlement: NewEntitlementHandler(service.Entitlement, log),
		Property:    NewPropertyHandler(service.Property, log),
		Session:     NewSessionHandler(service.Session, log),
	}
}

// handleServiceError translates service errors into HTTP responses.
// Business rejections carry their reason code in the message and the human
// detail in errors; anything else is a 500 and gets logged.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	if rej, ok := usecase.AsRejection(err); ok {
		switch rej.Reason {
		case usecase.ReasonBookingNotFound:
			utils.ResponseNotFound(w, rej.Detail)
		case usecase.ReasonNoAccessToProperty:
			utils.ResponseForbidden(w, rej.Detail)
		case usecase.ReasonDatesBooked:
			utils.ResponseConflict(w, rej.Detail)
		case usecase.ReasonExternalSyncFailed:
			utils.ResponseBadGateway(w, rej.Detail)
		case usecase.ReasonCheckinInPast,
			usecase.ReasonCheckoutBeforeCheckin,
			usecase.ReasonDatesOutOfRange,
			usecase.ReasonGuestOrPetLimit:
			utils.ResponseBadRequest(w, string(rej.Reason), rej.Detail)
		default:
			utils.ResponseUnprocessable(w, string(rej.Reason), rej.Detail)
		}
		return
	}

	log.Error("Service error", zap.Error(err), zap.String("operation", operation))
	utils.ResponseInternalError(w, "Internal server error")
}
