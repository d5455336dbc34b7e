package usecase

import (
	"time"

	"fairshare-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SeasonWindow is the property's peak season expressed as month/day
// boundaries, year-independent. A window whose start is later in the
// calendar than its end wraps across the new year (e.g. Dec 15 – Jan 10).
type SeasonWindow struct {
	StartMonth int `json:"start_month"`
	StartDay   int `json:"start_day"`
	EndMonth   int `json:"end_month"`
	EndDay     int `json:"end_day"`
}

// Contains compares only month and day against the window.
func (w SeasonWindow) Contains(date time.Time) bool {
	md := int(date.Month())*100 + date.Day()
	start := w.StartMonth*100 + w.StartDay
	end := w.EndMonth*100 + w.EndDay

	if start <= end {
		return md >= start && md <= end
	}
	// Window wraps the new year.
	return md >= start || md <= end
}

// SeasonInfo bundles everything the classifier and calculator need about a
// property: the peak window, the check-in/out clock, the fee schedule and
// the holiday calendar. It is JSON-serializable so it can sit in the cache.
type SeasonInfo struct {
	Window       SeasonWindow     `json:"window"`
	CheckInHour  int              `json:"check_in_hour"`
	CheckOutHour int              `json:"check_out_hour"`
	CleaningFee  decimal.Decimal  `json:"cleaning_fee"`
	FeePerPet    decimal.Decimal  `json:"fee_per_pet"`
	Holidays     []entity.Holiday `json:"holidays"`
}

// NewSeasonInfo assembles SeasonInfo from the persisted rows.
func NewSeasonInfo(details *entity.PropertyDetails, holidays []*entity.Holiday) SeasonInfo {
	info := SeasonInfo{
		Window: SeasonWindow{
			StartMonth: details.PeakStartMonth,
			StartDay:   details.PeakStartDay,
			EndMonth:   details.PeakEndMonth,
			EndDay:     details.PeakEndDay,
		},
		CheckInHour:  details.CheckInHour,
		CheckOutHour: details.CheckOutHour,
		CleaningFee:  details.CleaningFee,
		FeePerPet:    details.FeePerPet,
	}
	for _, h := range holidays {
		info.Holidays = append(info.Holidays, *h)
	}
	return info
}

// nightClass is the classification of a single night.
type nightClass struct {
	peak      bool
	holiday   bool
	holidayID uuid.UUID
}

// classifyNight classifies one calendar date. Peak membership is month/day
// only; holiday membership is a year-sensitive range lookup where the first
// matching holiday wins. The counted set records which holiday ids have
// already contributed to this request so a holiday spanning several ranges
// is never attributed twice.
func classifyNight(date time.Time, info SeasonInfo, counted map[uuid.UUID]bool) nightClass {
	class := nightClass{peak: info.Window.Contains(date)}

	for i := range info.Holidays {
		h := &info.Holidays[i]
		if h.Contains(date) {
			class.holiday = true
			class.holidayID = h.ID
			counted[h.ID] = true
			break
		}
	}

	return class
}
