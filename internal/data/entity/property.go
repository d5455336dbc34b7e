package entity

type Property struct {
	Base
	Code         int    `db:"code"` // short numeric code, used in booking references
	Name         string `db:"name"`
	Location     string `db:"location"`
	MaxGuests    int    `db:"max_guests"`
	MaxPets      int    `db:"max_pets"`
	TotalShares  int    `db:"total_shares"`
	ExternalCode string `db:"external_code"` // id of this property on the reservation platform
	Active       bool   `db:"active"`
}
