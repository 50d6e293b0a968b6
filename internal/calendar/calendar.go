// Package calendar maps UTC instants onto merchant-local business days.
//
// A business day does not start at local midnight but at a fixed local hour
// (5 a.m. ART by default, which under the fixed -3h offset is 8 a.m. UTC).
// Anything before that hour still belongs to the previous day's books.
// Daylight saving is not modeled, the local offset is a constant.
package calendar

import (
	"fmt"
	"time"
)

// Config holds the business day boundary settings. The all-zero value is
// indistinguishable from an absent config section and selects the merchant
// defaults, so a midnight UTC boundary with no offset is not configurable.
type Config struct {
	DayStartHourUTC  int `mapstructure:"day_start_hour_utc"`
	LocalOffsetHours int `mapstructure:"local_offset_hours"`
}

// DefaultConfig returns the merchant defaults: 5 a.m. ART boundary.
func DefaultConfig() Config {
	return Config{
		DayStartHourUTC:  8,
		LocalOffsetHours: -3,
	}
}

// Calendar converts between UTC instants and business days. The zero value
// is not usable, construct it with New.
type Calendar struct {
	dayStartHourUTC int
	localOffset     time.Duration
	localStartHour  int
}

// New creates a calendar from the config. A nil or unset config uses the
// defaults.
func New(c *Config) Calendar {
	if c == nil || (c.DayStartHourUTC == 0 && c.LocalOffsetHours == 0) {
		dc := DefaultConfig()
		c = &dc
	}
	localStart := (c.DayStartHourUTC + c.LocalOffsetHours) % 24
	if localStart < 0 {
		localStart += 24
	}
	return Calendar{
		dayStartHourUTC: c.DayStartHourUTC,
		localOffset:     time.Duration(c.LocalOffsetHours) * time.Hour,
		localStartHour:  localStart,
	}
}

// Day is one merchant-local business day. Immutable value.
type Day struct {
	Year  int
	Month time.Month
	Date  int
}

// String renders the day as YYYY-MM-DD.
func (d Day) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Date)
}

// AddDays returns the day n calendar days later (negative n goes back).
func (d Day) AddDays(n int) Day {
	t := time.Date(d.Year, d.Month, d.Date+n, 0, 0, 0, 0, time.UTC)
	return Day{Year: t.Year(), Month: t.Month(), Date: t.Day()}
}

// ParseDay parses a YYYY-MM-DD local date.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Day{}, fmt.Errorf("can't parse date %q: %w", s, err)
	}
	return Day{Year: t.Year(), Month: t.Month(), Date: t.Day()}, nil
}

// ToBusinessDay returns the business day the instant belongs to. Every
// instant maps to exactly one day and the mapping never goes backwards.
func (c Calendar) ToBusinessDay(t time.Time) Day {
	local := t.UTC().Add(c.localOffset)
	if local.Hour() < c.localStartHour {
		local = local.AddDate(0, 0, -1)
	}
	return Day{Year: local.Year(), Month: local.Month(), Date: local.Day()}
}

// DayStartUTC returns the UTC instant at which the business day begins.
func (c Calendar) DayStartUTC(d Day) time.Time {
	return time.Date(d.Year, d.Month, d.Date, c.dayStartHourUTC, 0, 0, 0, time.UTC)
}

// LocalDate renders the instant's merchant-local calendar date, without the
// business day shift. Used for window boundary labels.
func (c Calendar) LocalDate(t time.Time) string {
	return t.UTC().Add(c.localOffset).Format("2006-01-02")
}
