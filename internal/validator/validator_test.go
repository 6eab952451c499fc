package validator

import (
	"testing"

	"shift-scheduler/internal/domain"
)

func twoPeriodConstraints() *domain.Constraints {
	day := &domain.Period{ID: 0, Name: "Day", Conflicts: map[domain.PeriodID]struct{}{1: {}}}
	night := &domain.Period{ID: 1, Name: "Night", Conflicts: map[domain.PeriodID]struct{}{}}
	return &domain.Constraints{
		MaxPeriodType: 2,
		MaxRestGap:    7,
		Periods:       map[domain.PeriodID]*domain.Period{0: day, 1: night},
		Staffs: map[domain.StaffID]*domain.Staff{
			0: {ID: 0, Name: "Alice"},
			1: {ID: 1, Name: "Bob"},
		},
		Partners:   map[int][]domain.PartnerPair{0: {{0, 1}}},
		Exclusions: map[int][]domain.ExclusionPair{0: {{0, 1}}},
	}
}

func TestApplyRestoreSymmetry(t *testing.T) {
	c := twoPeriodConstraints()
	v := New(c)

	arr := domain.Arrangement{Day: 0, Period: 0, Staffs: []domain.StaffID{0}}
	vac := domain.Vacation{Week: 0, Staff: 1, Days: []int{0, 1, 2}}

	v.Apply(arr)
	v.Apply(vac)
	v.Restore(vac)
	v.Restore(arr)

	if len(v.staffArrangements[0]) != 0 {
		t.Fatalf("staffArrangements not restored: %+v", v.staffArrangements[0])
	}
	if len(v.staffPeriods[0]) != 0 {
		t.Fatalf("staffPeriods not restored: %+v", v.staffPeriods[0])
	}
	if len(v.staffVacations[1]) != 0 {
		t.Fatalf("staffVacations not restored: %+v", v.staffVacations[1])
	}
}

func TestRestAdjacencyRejection(t *testing.T) {
	c := twoPeriodConstraints()
	v := New(c)

	v.Apply(domain.Arrangement{Day: 0, Period: 0, Staffs: []domain.StaffID{0}})

	if v.Validate(domain.Arrangement{Day: 1, Period: 1, Staffs: []domain.StaffID{0}}) {
		t.Fatal("expected rejection: day (period Day) conflicts with day+1 (period Night)")
	}
	if !v.Validate(domain.Arrangement{Day: 1, Period: 0, Staffs: []domain.StaffID{0}}) {
		t.Fatal("expected acceptance: repeating the same period is not a conflict")
	}
}

func TestMaxPeriodTypeRejection(t *testing.T) {
	c := twoPeriodConstraints()
	c.MaxPeriodType = 1
	v := New(c)

	v.Apply(domain.Arrangement{Day: 0, Period: 0, Staffs: []domain.StaffID{0}})

	if v.Validate(domain.Arrangement{Day: 5, Period: 1, Staffs: []domain.StaffID{0}}) {
		t.Fatal("expected rejection: a second distinct period exceeds max_period_type=1")
	}
	if !v.Validate(domain.Arrangement{Day: 5, Period: 0, Staffs: []domain.StaffID{0}}) {
		t.Fatal("expected acceptance: repeating the already-worked period stays within max_period_type")
	}
}

func TestExclusionRejection(t *testing.T) {
	c := twoPeriodConstraints()
	c.Partners = map[int][]domain.PartnerPair{} // isolate the exclusion check
	v := New(c)

	v.Apply(domain.Arrangement{Day: 0, Period: 0, Staffs: []domain.StaffID{0}})

	if v.Validate(domain.Arrangement{Day: 0, Period: 0, Staffs: []domain.StaffID{1}}) {
		t.Fatal("expected rejection: excluded pair sharing the same period on the same day")
	}
	if !v.Validate(domain.Arrangement{Day: 0, Period: 1, Staffs: []domain.StaffID{1}}) {
		t.Fatal("expected acceptance: excluded pair on different periods is fine")
	}
}

func TestPartnerParityRejection(t *testing.T) {
	c := twoPeriodConstraints()
	c.Exclusions = map[int][]domain.ExclusionPair{} // isolate the partner check
	v := New(c)

	if v.Validate(domain.Arrangement{Day: 0, Period: 0, Staffs: []domain.StaffID{0}}) {
		t.Fatal("expected rejection: only one partner of the pair present")
	}

	if !v.Validate(domain.Arrangement{Day: 0, Period: 0, Staffs: []domain.StaffID{0, 1}}) {
		t.Fatal("expected acceptance: both partners present")
	}
}

func TestVacationGapRejection(t *testing.T) {
	c := twoPeriodConstraints()
	c.MaxRestGap = 2
	v := New(c)

	v.Apply(domain.Vacation{Week: 0, Staff: 0, Days: []int{5, 6}})

	if v.Validate(domain.Vacation{Week: 1, Staff: 0, Days: []int{10, 11}}) {
		t.Fatal("expected rejection: gap of 4 days exceeds max_rest_gap=2")
	}
	if !v.Validate(domain.Vacation{Week: 1, Staff: 0, Days: []int{7, 8}}) {
		t.Fatal("expected acceptance: gap of 1 day is within max_rest_gap=2")
	}
}
