// Package normalizer resolves the raw input record (internal/config.Schema)
// into the fully indexed, integer-keyed constraint model the matrix
// builder, validator, and emitter all consume (internal/domain).
package normalizer

import (
	"strings"
	"time"

	"shift-scheduler/internal/config"
	"shift-scheduler/internal/core"
	"shift-scheduler/internal/domain"
)

const secondsPerDay = 86400

// resolver maps the raw string/int ids of the input record onto the dense
// integer ids of the domain model, and supplies did-you-mean suggestions
// for unknown references.
type resolver struct {
	periods     map[config.RawID]domain.PeriodID
	periodNames []string
	titles      map[config.RawID]domain.TitleID
	titleNames  []string
	staff       map[config.RawID]domain.StaffID
	staffNames  []string
}

func (r *resolver) period(id config.RawID) (domain.PeriodID, error) {
	if pid, ok := r.periods[id]; ok {
		return pid, nil
	}
	return 0, unknownIDError("period-id", string(id), r.periodNames)
}

func (r *resolver) title(id config.RawID) (domain.TitleID, error) {
	if tid, ok := r.titles[id]; ok {
		return tid, nil
	}
	return 0, unknownIDError("title-id", string(id), r.titleNames)
}

func (r *resolver) member(id config.RawID) (domain.StaffID, error) {
	if sid, ok := r.staff[id]; ok {
		return sid, nil
	}
	return 0, unknownIDError("staff-id", string(id), r.staffNames)
}

// unknownIDError builds the ConfigError for a period-id/title-id/staff-id
// reference that doesn't resolve against the known id set, attaching a
// closest-match suggestion when one is a plausible typo of a known id.
func unknownIDError(field, id string, known []string) error {
	if match := closestID(id, known); match != "" {
		return core.NewConfigError(field, "unknown id %q (did you mean %q?)", id, match)
	}
	return core.NewConfigError(field, "unknown id %q", id)
}

// closestID returns the entry of known with the smallest edit distance to
// id, or "" if nothing is close enough to plausibly be a typo: the distance
// must be at most 4 and under 80% of id's length, which rules out
// suggesting an unrelated short id for a long misspelled one.
func closestID(id string, known []string) string {
	id = strings.ToLower(id)
	best, bestDist := "", len(id)+1
	for _, candidate := range known {
		d := editDistance(id, strings.ToLower(candidate))
		if d == 0 {
			return candidate
		}
		if d < bestDist {
			best, bestDist = candidate, d
		}
	}
	if bestDist <= 4 && float64(bestDist) < float64(len(id))*0.8 {
		return best
	}
	return ""
}

// editDistance is the Levenshtein distance between a and b, computed with a
// single reused row since period/title/staff ids are short.
func editDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	row := make([]int, len(rb)+1)
	for j := range row {
		row[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		prevDiag := row[0]
		row[0] = i
		for j := 1; j <= len(rb); j++ {
			saved := row[j]
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			row[j] = minOf(row[j]+1, row[j-1]+1, prevDiag+cost)
			prevDiag = saved
		}
	}
	return row[len(rb)]
}

func minOf(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

// Normalize turns a decoded Schema into a Constraints record, failing with
// a *core.ConfigError on any schema violation (spec §4.1).
func Normalize(s *config.Schema) (*domain.Constraints, error) {
	begin, end := s.DateRange[0].Time, s.DateRange[1].Time
	days := int(end.Sub(begin).Hours()/24) + 1
	if days <= 0 || days%7 != 0 {
		return nil, core.NewConfigError("date-range", "span must be a positive multiple of 7 days, got %d days", days)
	}
	if s.Vacation < 0 || s.Vacation > 7 {
		return nil, core.NewConfigError("vacation", "must be in [0, 7], got %d", s.Vacation)
	}

	c := &domain.Constraints{
		Begin:           begin,
		Days:            days,
		MinRestTimeSec:  s.MinRestTime * 3600,
		Vacation:        s.Vacation,
		MaxRestGap:      s.MaxRestGap,
		MaxPeriodType:   s.MaxPeriodType,
		Periods:         make(map[domain.PeriodID]*domain.Period, len(s.Periods)),
		Titles:          make(map[domain.TitleID]*domain.Title, len(s.Titles)),
		Staffs:          make(map[domain.StaffID]*domain.Staff, len(s.Staff)),
		Headcount:       make(map[domain.HeadcountKey]domain.HeadcountRange),
		PreferPeriods:   make(map[domain.PreferKey][]domain.PeriodID),
		PreferVacations: make(map[domain.StaffID]map[int]struct{}),
		Partners:        make(map[int][]domain.PartnerPair),
		Exclusions:      make(map[int][]domain.ExclusionPair),
	}

	r := &resolver{
		periods: make(map[config.RawID]domain.PeriodID, len(s.Periods)),
		titles:  make(map[config.RawID]domain.TitleID, len(s.Titles)),
		staff:   make(map[config.RawID]domain.StaffID, len(s.Staff)),
	}

	for i, p := range s.Periods {
		id := domain.PeriodID(i)
		r.periods[p.ID] = id
		r.periodNames = append(r.periodNames, string(p.ID))
		c.Periods[id] = &domain.Period{ID: id, Name: p.Name, BeginSec: p.Begin, EndSec: p.End}
	}
	// Conflicts depend on every period already existing, hence the second pass.
	for id, period := range c.Periods {
		period.Conflicts = make(map[domain.PeriodID]struct{})
		for qid, candidate := range c.Periods {
			if secondsPerDay+candidate.BeginSec-period.EndSec < c.MinRestTimeSec {
				period.Conflicts[qid] = struct{}{}
			}
		}
		c.Periods[id] = period
	}

	for i, t := range s.Titles {
		id := domain.TitleID(i)
		r.titles[t.ID] = id
		r.titleNames = append(r.titleNames, string(t.ID))
		c.Titles[id] = &domain.Title{ID: id, Name: t.Name, Staff: make(map[domain.StaffID]struct{})}
	}

	for i, st := range s.Staff {
		id := domain.StaffID(i)
		r.staff[st.ID] = id
		r.staffNames = append(r.staffNames, string(st.ID))
		titleID, err := r.title(st.TitleID)
		if err != nil {
			return nil, err
		}
		c.Staffs[id] = &domain.Staff{ID: id, Name: st.Name, Title: titleID}
		c.Titles[titleID].Staff[id] = struct{}{}
		c.StaffOrder = append(c.StaffOrder, id)
	}

	if err := normalizeStaffNumbers(c, r, s.StaffNumbers, begin, end); err != nil {
		return nil, err
	}
	if err := normalizePreferPeriods(c, r, s.PreferPeriods, begin, end); err != nil {
		return nil, err
	}
	if err := normalizePreferVacations(c, r, s.PreferVacations, begin, end); err != nil {
		return nil, err
	}
	if err := normalizePartners(c, r, s.Partners, begin, end); err != nil {
		return nil, err
	}
	if err := normalizeExclusions(c, r, s.Exclusions, begin, end); err != nil {
		return nil, err
	}

	return c, nil
}

// dayOffsets converts an inclusive [rangeBegin, rangeEnd] date-range,
// asserted to lie within [begin, end], into a half-open day-offset range.
func dayOffsets(field string, begin, end, rangeBegin, rangeEnd time.Time) (int, int, error) {
	if rangeBegin.Before(begin) || rangeEnd.After(end) || rangeEnd.Before(rangeBegin) {
		return 0, 0, core.NewConfigError(field, "date-range [%s, %s] lies outside the horizon [%s, %s]",
			rangeBegin.Format("2006-01-02"), rangeEnd.Format("2006-01-02"),
			begin.Format("2006-01-02"), end.Format("2006-01-02"))
	}
	from := int(rangeBegin.Sub(begin).Hours() / 24)
	to := int(rangeEnd.Sub(begin).Hours()/24) + 1
	return from, to, nil
}

func normalizeStaffNumbers(c *domain.Constraints, r *resolver, entries []config.StaffNumberEntry, begin, end time.Time) error {
	for _, sn := range entries {
		from, to, err := dayOffsets("staff-number", begin, end, sn.DateRange[0].Time, sn.DateRange[1].Time)
		if err != nil {
			return err
		}

		periodIDs := make([]domain.PeriodID, 0, len(sn.PeriodID))
		for _, pid := range sn.PeriodID {
			resolved, err := r.period(pid)
			if err != nil {
				return err
			}
			periodIDs = append(periodIDs, resolved)
		}
		titleIDs := make([]domain.TitleID, 0, len(sn.TitleID))
		for _, tid := range sn.TitleID {
			resolved, err := r.title(tid)
			if err != nil {
				return err
			}
			titleIDs = append(titleIDs, resolved)
		}

		hc := domain.HeadcountRange{Min: sn.NumberRange[0], Max: sn.NumberRange[1]}
		if hc.Min < 0 || hc.Max < hc.Min {
			return core.NewConfigError("number-range", "invalid range [%d, %d]", hc.Min, hc.Max)
		}

		for day := from; day < to; day++ {
			for _, pid := range periodIDs {
				for _, tid := range titleIDs {
					c.Headcount[domain.HeadcountKey{Day: day, Period: pid, Title: tid}] = hc
				}
			}
		}
	}
	return nil
}

func normalizePreferPeriods(c *domain.Constraints, r *resolver, entries []config.PreferPeriodEntry, begin, end time.Time) error {
	for _, pp := range entries {
		from, to, err := dayOffsets("prefer-period", begin, end, pp.DateRange[0].Time, pp.DateRange[1].Time)
		if err != nil {
			return err
		}
		staffID, err := r.member(pp.StaffID)
		if err != nil {
			return err
		}
		periodIDs := make([]domain.PeriodID, 0, len(pp.PeriodID))
		for _, pid := range pp.PeriodID {
			resolved, err := r.period(pid)
			if err != nil {
				return err
			}
			periodIDs = append(periodIDs, resolved)
		}
		for day := from; day < to; day++ {
			c.PreferPeriods[domain.PreferKey{Day: day, Staff: staffID}] = periodIDs
		}
	}
	return nil
}

func normalizePreferVacations(c *domain.Constraints, r *resolver, entries []config.PreferVacationEntry, begin, end time.Time) error {
	for _, pv := range entries {
		staffID, err := r.member(pv.StaffID)
		if err != nil {
			return err
		}
		days, ok := c.PreferVacations[staffID]
		if !ok {
			days = make(map[int]struct{})
			c.PreferVacations[staffID] = days
		}
		for _, d := range pv.Days {
			if d.Time.Before(begin) || d.Time.After(end) {
				return core.NewConfigError("prefer-vacation", "day %s lies outside the horizon", d.Format("2006-01-02"))
			}
			days[int(d.Time.Sub(begin).Hours()/24)] = struct{}{}
		}
	}
	return nil
}

func normalizePartners(c *domain.Constraints, r *resolver, entries []config.PairEntry, begin, end time.Time) error {
	for _, p := range entries {
		pair, from, to, err := resolvePair("partner", r, p, begin, end)
		if err != nil {
			return err
		}
		for day := from; day < to; day++ {
			c.Partners[day] = append(c.Partners[day], domain.PartnerPair(pair))
		}
	}
	return nil
}

func normalizeExclusions(c *domain.Constraints, r *resolver, entries []config.PairEntry, begin, end time.Time) error {
	for _, p := range entries {
		pair, from, to, err := resolvePair("confliction", r, p, begin, end)
		if err != nil {
			return err
		}
		for day := from; day < to; day++ {
			c.Exclusions[day] = append(c.Exclusions[day], domain.ExclusionPair(pair))
		}
	}
	return nil
}

func resolvePair(field string, r *resolver, p config.PairEntry, begin, end time.Time) ([2]domain.StaffID, int, int, error) {
	var pair [2]domain.StaffID
	if len(p.StaffID) != 2 {
		return pair, 0, 0, core.NewConfigError(field, "staff-id must have exactly two members, got %d", len(p.StaffID))
	}
	from, to, err := dayOffsets(field, begin, end, p.DateRange[0].Time, p.DateRange[1].Time)
	if err != nil {
		return pair, 0, 0, err
	}
	for i, id := range p.StaffID {
		resolved, err := r.member(id)
		if err != nil {
			return pair, 0, 0, err
		}
		pair[i] = resolved
	}
	return pair, from, to, nil
}
