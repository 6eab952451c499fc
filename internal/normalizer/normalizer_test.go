package normalizer

import (
	"testing"
	"time"

	"shift-scheduler/internal/config"
	"shift-scheduler/internal/core"
)

func mustDate(t *testing.T, s string) config.Date {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return config.Date{Time: parsed}
}

func trivialSchema(t *testing.T) *config.Schema {
	t.Helper()
	begin := mustDate(t, "2026-01-05") // a Monday
	end := mustDate(t, "2026-01-11")
	return &config.Schema{
		DateRange:     [2]config.Date{begin, end},
		MinRestTime:   12,
		Vacation:      0,
		MaxRestGap:    7,
		MaxPeriodType: 2,
		Periods:       []config.PeriodEntry{{ID: "day", Name: "Day", Begin: 8 * 3600, End: 16 * 3600}},
		Titles:        []config.TitleEntry{{ID: "nurse", Name: "Nurse"}},
		Staff:         []config.StaffEntry{{ID: "alice", Name: "Alice", TitleID: "nurse"}},
		StaffNumbers: []config.StaffNumberEntry{{
			DateRange:   [2]config.Date{begin, end},
			PeriodID:    config.RawIDList{"day"},
			TitleID:     config.RawIDList{"nurse"},
			NumberRange: [2]int{1, 1},
		}},
	}
}

func TestNormalizeTrivial(t *testing.T) {
	c, err := Normalize(trivialSchema(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Days != 7 {
		t.Fatalf("Days = %d, want 7", c.Days)
	}
	if c.Weeks() != 1 {
		t.Fatalf("Weeks() = %d, want 1", c.Weeks())
	}
	if c.MinRestTimeSec != 12*3600 {
		t.Fatalf("MinRestTimeSec = %d, want %d", c.MinRestTimeSec, 12*3600)
	}
	if len(c.Headcount) != 7 {
		t.Fatalf("len(Headcount) = %d, want 7 (one per day)", len(c.Headcount))
	}
	if len(c.StaffOrder) != 1 || c.Staffs[c.StaffOrder[0]].Name != "Alice" {
		t.Fatalf("unexpected staff order: %+v", c.StaffOrder)
	}
}

func TestNormalizeRejectsNonMultipleOfSeven(t *testing.T) {
	s := trivialSchema(t)
	s.DateRange[1] = mustDate(t, "2026-01-10") // 6-day span
	_, err := Normalize(s)
	if err == nil {
		t.Fatal("expected an error for a non-multiple-of-7 horizon")
	}
	if _, ok := err.(*core.ConfigError); !ok {
		t.Fatalf("expected *core.ConfigError, got %T", err)
	}
}

func TestNormalizeRejectsOutOfRangeVacation(t *testing.T) {
	s := trivialSchema(t)
	s.Vacation = 8
	_, err := Normalize(s)
	if err == nil {
		t.Fatal("expected an error for vacation outside [0, 7]")
	}
}

func TestNormalizeUnknownTitleSuggestsCorrection(t *testing.T) {
	s := trivialSchema(t)
	s.Staff[0].TitleID = "nurs" // typo of "nurse"
	_, err := Normalize(s)
	if err == nil {
		t.Fatal("expected an error for an unknown title-id")
	}
	ce, ok := err.(*core.ConfigError)
	if !ok {
		t.Fatalf("expected *core.ConfigError, got %T", err)
	}
	if !containsSubstring(ce.Error(), "nurse") {
		t.Fatalf("expected suggestion to mention %q, got %q", "nurse", ce.Error())
	}
}

func TestNormalizePreferVacationOutOfRange(t *testing.T) {
	s := trivialSchema(t)
	s.PreferVacations = []config.PreferVacationEntry{{
		StaffID: "alice",
		Days:    []config.Date{mustDate(t, "2026-02-01")},
	}}
	_, err := Normalize(s)
	if err == nil {
		t.Fatal("expected an error for a prefer-vacation day outside the horizon")
	}
}

func TestNormalizePairSizeMismatch(t *testing.T) {
	s := trivialSchema(t)
	s.Exclusions = []config.PairEntry{{
		DateRange: s.DateRange,
		StaffID:   []config.RawID{"alice"},
	}}
	_, err := Normalize(s)
	if err == nil {
		t.Fatal("expected an error for a confliction pair without exactly two members")
	}
}

func containsSubstring(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
