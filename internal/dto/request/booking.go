package request

type CreateBookingRequest struct {
	PropertyID string `json:"property_id" validate:"required,uuid4"`
	Checkin    string `json:"checkin" validate:"required,datetime=2006-01-02"`
	Checkout   string `json:"checkout" validate:"required,datetime=2006-01-02"`
	Guests     int    `json:"guests" validate:"required,min=1"`
	Pets       int    `json:"pets" validate:"min=0"`
	LastMinute bool   `json:"last_minute"`
	Notes      string `json:"notes" validate:"max=500"`
}

type UpdateBookingRequest struct {
	Checkin  string `json:"checkin" validate:"required,datetime=2006-01-02"`
	Checkout string `json:"checkout" validate:"required,datetime=2006-01-02"`
	Guests   int    `json:"guests" validate:"required,min=1"`
	Pets     int    `json:"pets" validate:"min=0"`
	Notes    string `json:"notes" validate:"max=500"`
}

// AdminCreateBookingRequest books on behalf of an owner. Conflicting
// confirmed stays are cancelled, not rejected, so the reason is mandatory
// for the audit trail.
type AdminCreateBookingRequest struct {
	OwnerID    string `json:"owner_id" validate:"required,uuid4"`
	PropertyID string `json:"property_id" validate:"required,uuid4"`
	Checkin    string `json:"checkin" validate:"required,datetime=2006-01-02"`
	Checkout   string `json:"checkout" validate:"required,datetime=2006-01-02"`
	Guests     int    `json:"guests" validate:"required,min=1"`
	Pets       int    `json:"pets" validate:"min=0"`
	LastMinute bool   `json:"last_minute"`
	Reason     string `json:"reason" validate:"required,max=500"`
}
