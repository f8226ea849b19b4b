// Package market knows the NYSE trading calendar and the 0DTE timing
// guidance attached to recommendations. The analysis time is always an
// explicit parameter; nothing here reads the wall clock.
package market

import (
	"time"

	"github.com/scmhub/calendar"
)

// Entry and exit guidance for 0DTE condors: enter after the opening
// volatility settles, exit before the close ramp.
const (
	entryStartHour, entryStartMinute = 9, 45
	entryEndHour, entryEndMinute     = 10, 30
	exitHour, exitMinute             = 15, 0
)

// Timing is the management guidance for one recommendation.
type Timing struct {
	EntryStart time.Time `json:"entry_start"`
	EntryEnd   time.Time `json:"entry_end"`
	ExitBy     time.Time `json:"exit_by"`

	// Profit target as a percent band of credit received.
	ProfitTargetPct Band `json:"profit_target_pct"`

	// Stop loss as a multiple of credit received.
	StopLossCreditMultiple float64 `json:"stop_loss_credit_multiple"`
}

// Band is a simple (low, high) pair.
type Band struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Session resolves trading days and windows for one exchange timezone.
type Session struct {
	location *time.Location
	nyse     *calendar.Calendar
}

// NewSession creates a session for the given timezone, falling back to
// America/New_York when the name does not resolve.
func NewSession(timezone string) *Session {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc, _ = time.LoadLocation("America/New_York")
	}
	return &Session{
		location: loc,
		nyse:     calendar.XNYS(),
	}
}

// TimingFor returns the entry window and exit cutoff for the session that a
// position opened at now would target: today while the session is still
// tradable, otherwise the next trading day.
func (s *Session) TimingFor(now time.Time) Timing {
	day := s.tradingDayFor(now.In(s.location))

	return Timing{
		EntryStart:             s.at(day, entryStartHour, entryStartMinute),
		EntryEnd:               s.at(day, entryEndHour, entryEndMinute),
		ExitBy:                 s.at(day, exitHour, exitMinute),
		ProfitTargetPct:        Band{Low: 50, High: 70},
		StopLossCreditMultiple: 2,
	}
}

// IsTradingDay reports whether t falls on an NYSE business day.
func (s *Session) IsTradingDay(t time.Time) bool {
	return s.nyse.IsBusinessDay(t.In(s.location))
}

// Location returns the session's timezone.
func (s *Session) Location() *time.Location {
	return s.location
}

func (s *Session) tradingDayFor(now time.Time) time.Time {
	day := time.Date(now.Year(), now.Month(), now.Day(), 12, 0, 0, 0, s.location)

	// Past the exit cutoff there is nothing left to trade today.
	if !now.Before(s.at(day, exitHour, exitMinute)) {
		day = day.AddDate(0, 0, 1)
	}

	for i := 0; i < 10 && !s.nyse.IsBusinessDay(day); i++ {
		day = day.AddDate(0, 0, 1)
	}
	return day
}

func (s *Session) at(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, s.location)
}
