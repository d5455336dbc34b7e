package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"fairshare-booking/internal/usecase"
	"fairshare-booking/pkg/utils"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// ReservationClient mirrors bookings onto the external reservation
// platform's REST API. Callers invoke it inside the booking transaction, so
// any error here rolls the whole booking back.
type ReservationClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
	log     *zap.Logger
}

func NewReservationClient(config utils.SyncConfig, log *zap.Logger) *ReservationClient {
	return &ReservationClient{
		baseURL: config.BaseURL,
		apiKey:  config.APIKey,
		client:  &http.Client{Timeout: config.Timeout},
		log:     log.With(zap.String("gateway", "reservation")),
	}
}

func (c *ReservationClient) CreateReservation(ctx context.Context, payload usecase.SyncPayload) (string, error) {
	raw, status, err := c.do(ctx, http.MethodPost, "/reservations", reservationBody(payload))
	if err != nil {
		return "", err
	}

	if status == http.StatusConflict {
		return "", usecase.Reject(usecase.ReasonDatesBooked,
			"platform reports dates unavailable: %s", platformMessage(raw))
	}
	if status < 200 || status >= 300 {
		return "", fmt.Errorf("platform returned %d: %s", status, platformMessage(raw))
	}

	reservationID := gjson.GetBytes(raw, "data.reservation_id").String()
	if reservationID == "" {
		return "", fmt.Errorf("platform response missing reservation id")
	}

	c.log.Info("Reservation mirrored",
		zap.String("reference", payload.Reference),
		zap.String("reservation_id", reservationID),
	)
	return reservationID, nil
}

func (c *ReservationClient) UpdateReservation(ctx context.Context, externalRef string, payload usecase.SyncPayload) error {
	raw, status, err := c.do(ctx, http.MethodPut, "/reservations/"+externalRef, reservationBody(payload))
	if err != nil {
		return err
	}

	if status == http.StatusConflict {
		return usecase.Reject(usecase.ReasonDatesBooked,
			"platform reports dates unavailable: %s", platformMessage(raw))
	}
	if status < 200 || status >= 300 {
		return fmt.Errorf("platform returned %d: %s", status, platformMessage(raw))
	}

	return nil
}

func (c *ReservationClient) CancelReservation(ctx context.Context, externalRef string) error {
	raw, status, err := c.do(ctx, http.MethodDelete, "/reservations/"+externalRef, nil)
	if err != nil {
		return err
	}

	// Already gone on the platform side; the cancellation still proceeds.
	if status == http.StatusNotFound {
		c.log.Warn("Reservation already absent on platform", zap.String("reservation_id", externalRef))
		return nil
	}
	if status < 200 || status >= 300 {
		return fmt.Errorf("platform returned %d: %s", status, platformMessage(raw))
	}

	return nil
}

func (c *ReservationClient) do(ctx context.Context, method, path string, payload any) ([]byte, int, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, 0, fmt.Errorf("marshal platform request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, 0, fmt.Errorf("build platform request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Error("Platform request failed",
			zap.Error(err),
			zap.String("method", method),
			zap.String("path", path),
		)
		return nil, 0, fmt.Errorf("platform request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("read platform response: %w", err)
	}

	return raw, resp.StatusCode, nil
}

func reservationBody(payload usecase.SyncPayload) map[string]any {
	return map[string]any{
		"reference":      payload.Reference,
		"property_code":  payload.PropertyCode,
		"guest_name":     payload.OwnerName,
		"checkin":        payload.Checkin.Format(utils.DateLayout),
		"checkout":       payload.Checkout.Format(utils.DateLayout),
		"check_in_hour":  payload.CheckInHour,
		"check_out_hour": payload.CheckOutHour,
		"guests":         payload.Guests,
		"pets":           payload.Pets,
		"notes":          payload.Notes,
	}
}

func platformMessage(raw []byte) string {
	if message := gjson.GetBytes(raw, "error.message"); message.Exists() {
		return message.String()
	}
	if message := gjson.GetBytes(raw, "message"); message.Exists() {
		return message.String()
	}
	return string(raw)
}
