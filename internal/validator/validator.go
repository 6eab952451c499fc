// Package validator implements the incremental "relational" constraint
// checks that cannot be expressed as exact cover: adjacency rest conflicts,
// period-type diversity, partner/exclusion pairing, and vacation-gap
// bounds. The matrix enforces "exactly one"; the Validator enforces
// everything else, sharing the solver's apply/restore stack discipline.
package validator

import "shift-scheduler/internal/domain"

// Validator holds the per-staff side state mutated during DLX descent. It
// must always exactly reflect the union of currently applied row symbols;
// Apply and Restore are exact inverses of each other.
type Validator struct {
	constraints *domain.Constraints

	// staffArrangements[staff][day] = period worked that day.
	staffArrangements map[domain.StaffID]map[int]domain.PeriodID
	// staffVacations[staff][week] = sorted vacation day offsets that week.
	staffVacations map[domain.StaffID]map[int][]int
	// staffPeriods[staff][period] = reference count; zero entries removed.
	staffPeriods map[domain.StaffID]map[domain.PeriodID]int
}

// New builds a Validator with empty side state for every staff member in c.
func New(c *domain.Constraints) *Validator {
	v := &Validator{
		constraints:       c,
		staffArrangements: make(map[domain.StaffID]map[int]domain.PeriodID, len(c.Staffs)),
		staffVacations:    make(map[domain.StaffID]map[int][]int, len(c.Staffs)),
		staffPeriods:      make(map[domain.StaffID]map[domain.PeriodID]int, len(c.Staffs)),
	}
	for id := range c.Staffs {
		v.staffArrangements[id] = make(map[int]domain.PeriodID)
		v.staffVacations[id] = make(map[int][]int)
		v.staffPeriods[id] = make(map[domain.PeriodID]int)
	}
	return v
}

// Validate reports whether applying sym would violate a relational
// constraint. It never mutates state.
func (v *Validator) Validate(sym domain.Symbol) bool {
	switch s := sym.(type) {
	case domain.Arrangement:
		return v.validateArrangement(s)
	case domain.Vacation:
		return v.validateVacation(s)
	default:
		return true
	}
}

func (v *Validator) validateArrangement(a domain.Arrangement) bool {
	c := v.constraints

	for _, staff := range a.Staffs {
		if prev, ok := v.staffArrangements[staff][a.Day-1]; ok {
			if c.Periods[prev].ConflictsWith(a.Period) {
				return false
			}
		}
		if next, ok := v.staffArrangements[staff][a.Day+1]; ok {
			if c.Periods[a.Period].ConflictsWith(next) {
				return false
			}
		}

		distinct := len(v.staffPeriods[staff])
		if _, already := v.staffPeriods[staff][a.Period]; !already {
			distinct++
		}
		if distinct > c.MaxPeriodType {
			return false
		}

		for _, pair := range c.Exclusions[a.Day] {
			other, ok := otherOf(pair, staff)
			if !ok {
				continue
			}
			if p, worked := v.staffArrangements[other][a.Day]; worked && p == a.Period {
				return false
			}
		}
	}

	staffSet := make(map[domain.StaffID]struct{}, len(a.Staffs))
	for _, s := range a.Staffs {
		staffSet[s] = struct{}{}
	}
	for _, pair := range c.Exclusions[a.Day] {
		_, inA := staffSet[pair[0]]
		_, inB := staffSet[pair[1]]
		if inA && inB {
			return false
		}
	}
	for _, pair := range c.Partners[a.Day] {
		_, inA := staffSet[pair[0]]
		_, inB := staffSet[pair[1]]
		if inA != inB {
			return false
		}
	}

	return true
}

func (v *Validator) validateVacation(vac domain.Vacation) bool {
	c := v.constraints

	if prevDays, ok := v.staffVacations[vac.Staff][vac.Week-1]; ok {
		if vac.Days[0]-prevDays[len(prevDays)-1] > c.MaxRestGap {
			return false
		}
	}
	if nextDays, ok := v.staffVacations[vac.Staff][vac.Week+1]; ok {
		if nextDays[0]-vac.Days[len(vac.Days)-1] > c.MaxRestGap {
			return false
		}
	}

	return true
}

// Apply records sym into the side state. Must be followed, eventually, by
// a matching Restore in LIFO order.
func (v *Validator) Apply(sym domain.Symbol) {
	switch s := sym.(type) {
	case domain.Arrangement:
		for _, staff := range s.Staffs {
			v.staffArrangements[staff][s.Day] = s.Period
			v.staffPeriods[staff][s.Period]++
		}
	case domain.Vacation:
		v.staffVacations[s.Staff][s.Week] = s.Days
	}
}

// Restore undoes the effect of the most recent matching Apply(sym).
func (v *Validator) Restore(sym domain.Symbol) {
	switch s := sym.(type) {
	case domain.Arrangement:
		for _, staff := range s.Staffs {
			delete(v.staffArrangements[staff], s.Day)
			v.staffPeriods[staff][s.Period]--
			if v.staffPeriods[staff][s.Period] == 0 {
				delete(v.staffPeriods[staff], s.Period)
			}
		}
	case domain.Vacation:
		delete(v.staffVacations[s.Staff], s.Week)
	}
}

func otherOf(pair domain.ExclusionPair, staff domain.StaffID) (domain.StaffID, bool) {
	switch staff {
	case pair[0]:
		return pair[1], true
	case pair[1]:
		return pair[0], true
	default:
		return 0, false
	}
}
