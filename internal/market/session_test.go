package market

import (
	"testing"
	"time"
)

func TestTimingForTradingMorning(t *testing.T) {
	s := NewSession("America/New_York")
	// Tuesday 2026-08-25, 09:30 ET
	now := time.Date(2026, 8, 25, 9, 30, 0, 0, s.Location())

	timing := s.TimingFor(now)

	if timing.EntryStart.Day() != 25 {
		t.Fatalf("entry day: got %v, want same day", timing.EntryStart)
	}
	if timing.EntryStart.Hour() != 9 || timing.EntryStart.Minute() != 45 {
		t.Errorf("entry start: got %v, want 09:45", timing.EntryStart)
	}
	if timing.EntryEnd.Hour() != 10 || timing.EntryEnd.Minute() != 30 {
		t.Errorf("entry end: got %v, want 10:30", timing.EntryEnd)
	}
	if timing.ExitBy.Hour() != 15 || timing.ExitBy.Minute() != 0 {
		t.Errorf("exit by: got %v, want 15:00", timing.ExitBy)
	}
}

func TestTimingForAfterCutoffRollsForward(t *testing.T) {
	s := NewSession("America/New_York")
	// Tuesday 16:30 ET, past the exit cutoff
	now := time.Date(2026, 8, 25, 16, 30, 0, 0, s.Location())

	timing := s.TimingFor(now)

	if timing.EntryStart.Day() != 26 {
		t.Errorf("entry day: got %v, want next trading day (26th)", timing.EntryStart)
	}
}

func TestTimingForWeekendRollsToMonday(t *testing.T) {
	s := NewSession("America/New_York")
	// Saturday 2026-08-29
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, s.Location())

	timing := s.TimingFor(now)

	if timing.EntryStart.Weekday() != time.Monday {
		t.Errorf("entry weekday: got %v, want Monday", timing.EntryStart.Weekday())
	}
	if timing.EntryStart.Day() != 31 {
		t.Errorf("entry day: got %v, want the 31st", timing.EntryStart)
	}
}

func TestTimingGuidanceBands(t *testing.T) {
	s := NewSession("America/New_York")
	timing := s.TimingFor(time.Date(2026, 8, 25, 9, 0, 0, 0, s.Location()))

	if timing.ProfitTargetPct.Low != 50 || timing.ProfitTargetPct.High != 70 {
		t.Errorf("profit target band: got %+v, want 50-70", timing.ProfitTargetPct)
	}
	if timing.StopLossCreditMultiple != 2 {
		t.Errorf("stop loss multiple: got %v, want 2", timing.StopLossCreditMultiple)
	}
}

func TestNewSessionBadTimezoneFallsBack(t *testing.T) {
	s := NewSession("Not/AZone")
	if s.Location().String() != "America/New_York" {
		t.Errorf("fallback location: got %v", s.Location())
	}
}
